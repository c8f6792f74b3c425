package signature

// 该文件定义签名配置的完整数据模型，序列化字段名与编辑器持久化的 JSON 保持一致。

// Config 描述一个签名实例的全部内容：身份、文本内容与样式。
// Content 与 Style 以匿名嵌入的方式展开，JSON 形态保持为扁平记录。
type Config struct {
	ID          string `json:"id"`
	ProfileName string `json:"profileName"`
	Content
	Style
}

// Content 为签名的文本内容与资源（不属于布局的部分）。
type Content struct {
	FullName       string      `json:"fullName"`
	JobTitle       string      `json:"jobTitle"`
	Email          string      `json:"email"`
	PhoneWork      string      `json:"phoneWork"`
	PhoneMobile    string      `json:"phoneMobile"`
	Address        string      `json:"address"` // 多行，以 \n 分隔
	Website        string      `json:"website"`
	FooterServices string      `json:"footerServices"` // 以 - 分隔的关键词
	LogoURL        string      `json:"logoUrl"`        // 远程 URL 或 data URI
	SocialLinks    SocialLinks `json:"socialLinks"`
}

// Style 为可保存为 Layout 的全部样式字段：尺寸、颜色、偏移、对齐与显示开关。
type Style struct {
	// 尺寸（px，非负）
	LogoWidth        float64 `json:"logoWidth"`
	IconSize         float64 `json:"iconSize"`
	FooterFontSize   float64 `json:"footerFontSize"`
	NameFontSize     float64 `json:"nameFontSize"`
	JobTitleFontSize float64 `json:"jobTitleFontSize"`
	ContactFontSize  float64 `json:"contactFontSize"`
	VerticalSpacing  float64 `json:"verticalSpacing"`
	LogoFooterGap    float64 `json:"logoFooterGap"`
	ColumnGap        float64 `json:"columnGap"`
	DividerWidth     float64 `json:"dividerWidth"`
	DividerHeight    float64 `json:"dividerHeight"`

	// 颜色（十六进制）
	AccentColor      string `json:"accentColor"`
	DividerColor     string `json:"dividerColor"`
	PrimaryTextColor string `json:"primaryTextColor"`
	LogoBgColor      string `json:"logoBgColor"`

	// 偏移（px，可为负）
	NameOffsetX    int `json:"nameOffsetX"`
	NameOffsetY    int `json:"nameOffsetY"`
	ContactOffsetX int `json:"contactOffsetX"`
	ContactOffsetY int `json:"contactOffsetY"`
	LogoOffsetX    int `json:"logoOffsetX"`
	LogoOffsetY    int `json:"logoOffsetY"`
	WebsiteOffsetX int `json:"websiteOffsetX"`
	WebsiteOffsetY int `json:"websiteOffsetY"`

	ShowLogoBackground   bool   `json:"showLogoBackground"`
	ContactVerticalAlign VAlign `json:"contactVerticalAlign"`

	// 显示开关
	ShowFullName    bool `json:"showFullName"`
	ShowJobTitle    bool `json:"showJobTitle"`
	ShowEmail       bool `json:"showEmail"`
	ShowPhoneWork   bool `json:"showPhoneWork"`
	ShowPhoneMobile bool `json:"showPhoneMobile"`
	ShowAddress     bool `json:"showAddress"`
	ShowWebsite     bool `json:"showWebsite"`
	ShowSocialIcons bool `json:"showSocialIcons"`

	// 对齐
	NameTitleAlign   Align `json:"nameTitleAlign"`
	ContactInfoAlign Align `json:"contactInfoAlign"`
	WebsiteAlign     Align `json:"websiteAlign"`
	FooterTextAlign  Align `json:"footerTextAlign"`
	LogoAlign        Align `json:"logoAlign"`

	LayoutMode   LayoutMode   `json:"layoutMode"`
	DividerStyle DividerStyle `json:"dividerStyle"`
}

// Offset 是一个块在对齐定位之后叠加的平移量。
type Offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// LogoOffset 返回 logo 块的偏移。
func (s Style) LogoOffset() Offset { return Offset{X: s.LogoOffsetX, Y: s.LogoOffsetY} }

// NameOffset 返回姓名/职位块的偏移。
func (s Style) NameOffset() Offset { return Offset{X: s.NameOffsetX, Y: s.NameOffsetY} }

// ContactOffset 返回联系方式块的偏移。
func (s Style) ContactOffset() Offset { return Offset{X: s.ContactOffsetX, Y: s.ContactOffsetY} }

// WebsiteOffset 返回网站/社交块的偏移。
func (s Style) WebsiteOffset() Offset { return Offset{X: s.WebsiteOffsetX, Y: s.WebsiteOffsetY} }

// Platform 为社交平台名称。
type Platform string

const (
	Facebook  Platform = "facebook"
	Instagram Platform = "instagram"
	Linkedin  Platform = "linkedin"
	Twitter   Platform = "twitter"
)

// Platforms 按渲染顺序列出全部社交平台。
var Platforms = []Platform{Facebook, Instagram, Linkedin, Twitter}

// SocialLinks 记录各平台的链接，空字符串表示未设置。
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

// URL 返回指定平台的链接。
func (s SocialLinks) URL(p Platform) string {
	switch p {
	case Facebook:
		return s.Facebook
	case Instagram:
		return s.Instagram
	case Linkedin:
		return s.Linkedin
	case Twitter:
		return s.Twitter
	default:
		return ""
	}
}

// Set 设置指定平台的链接，未知平台返回 false。
func (s *SocialLinks) Set(p Platform, url string) bool {
	switch p {
	case Facebook:
		s.Facebook = url
	case Instagram:
		s.Instagram = url
	case Linkedin:
		s.Linkedin = url
	case Twitter:
		s.Twitter = url
	default:
		return false
	}
	return true
}

// Any 判断是否至少设置了一个平台链接。
func (s SocialLinks) Any() bool {
	for _, p := range Platforms {
		if isPresent(s.URL(p)) {
			return true
		}
	}
	return false
}
