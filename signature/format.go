package signature

import (
	"regexp"
	"strings"
	"unicode"
)

// Field 标识一个可单独显示/隐藏的文本字段。
type Field string

const (
	FieldFullName    Field = "fullName"
	FieldJobTitle    Field = "jobTitle"
	FieldEmail       Field = "email"
	FieldPhoneWork   Field = "phoneWork"
	FieldPhoneMobile Field = "phoneMobile"
	FieldAddress     Field = "address"
	FieldWebsite     Field = "website"
)

// ContactFields 按渲染顺序列出联系方式字段。
var ContactFields = []Field{FieldEmail, FieldPhoneWork, FieldPhoneMobile, FieldAddress}

// Value 返回字段的文本内容。
func (c Config) Value(f Field) string {
	switch f {
	case FieldFullName:
		return c.FullName
	case FieldJobTitle:
		return c.JobTitle
	case FieldEmail:
		return c.Email
	case FieldPhoneWork:
		return c.PhoneWork
	case FieldPhoneMobile:
		return c.PhoneMobile
	case FieldAddress:
		return c.Address
	case FieldWebsite:
		return c.Website
	}
	return ""
}

// Shown 返回字段的显示开关。
func (s Style) Shown(f Field) bool {
	switch f {
	case FieldFullName:
		return s.ShowFullName
	case FieldJobTitle:
		return s.ShowJobTitle
	case FieldEmail:
		return s.ShowEmail
	case FieldPhoneWork:
		return s.ShowPhoneWork
	case FieldPhoneMobile:
		return s.ShowPhoneMobile
	case FieldAddress:
		return s.ShowAddress
	case FieldWebsite:
		return s.ShowWebsite
	}
	return false
}

// Visible 字段只有在开关打开且内容非空时才渲染。
func (c Config) Visible(f Field) bool {
	return c.Shown(f) && isPresent(c.Value(f))
}

// SocialVisible 判断社交图标行是否渲染。
func (c Config) SocialVisible() bool {
	return c.ShowSocialIcons && c.SocialLinks.Any()
}

// FooterKeywords 以 - 拆分服务关键词，去掉首尾空白并丢弃空片段。
func (c Config) FooterKeywords() []string {
	return SplitKeywords(c.FooterServices)
}

// SplitKeywords 拆分以 - 分隔的关键词列表。
func SplitKeywords(text string) []string {
	parts := strings.Split(text, "-")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// AddressLines 返回按换行拆分的地址行，保留顺序。
func (c Config) AddressLines() []string {
	text := strings.ReplaceAll(c.Address, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// 国际号码中括号里的国内冠码 0，拨号时需要去掉，例如 +32 (0) 484。
var trunkPrefix = regexp.MustCompile(`\(\s*0\s*\)`)

// TelTarget 生成 tel: 链接目标：去掉国际号码中的 (0)，只保留数字与开头的 +。
func TelTarget(phone string) string {
	phone = strings.TrimSpace(phone)
	international := strings.HasPrefix(phone, "+")
	if international {
		phone = trunkPrefix.ReplaceAllString(phone, "")
	}
	var b strings.Builder
	b.WriteString("tel:")
	if international {
		b.WriteByte('+')
	}
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MailTarget 生成 mailto: 链接目标。
func MailTarget(email string) string {
	return "mailto:" + strings.TrimSpace(email)
}

// URLTarget 为未带协议的网址补上 https://。
func URLTarget(url string) string {
	url = strings.TrimSpace(url)
	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return url
	}
	return "https://" + url
}

func isPresent(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) >= 0
}
