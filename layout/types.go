package layout

import "github.com/ByLCY/sigstudio/signature"

// 该文件定义布局结果，供布局计算、各渲染器与调试 JSON 共用。
// 坐标以 CSS 像素为单位，原点为画布左上角（含外层内边距）。

// Axis 表示主轴方向。
type Axis string

const (
	AxisHorizontal Axis = "horizontal"
	AxisVertical   Axis = "vertical"
)

// SlotKind 标识主轴上的槽位。
type SlotKind string

const (
	SlotLogo    SlotKind = "logo"
	SlotDivider SlotKind = "divider"
	SlotContent SlotKind = "content"
)

// BlockKind 标识一个可定位的块。
type BlockKind string

const (
	BlockLogo    BlockKind = "logo"
	BlockContent BlockKind = "content"
	BlockName    BlockKind = "name"
	BlockContact BlockKind = "contact"
	BlockWebsite BlockKind = "website"
)

// Result 是一次布局的完整结果。
type Result struct {
	Mode       signature.LayoutMode `json:"mode"`
	Axis       Axis                 `json:"axis"`
	Width      float64              `json:"width"`
	Height     float64              `json:"height"`
	Padding    float64              `json:"padding"`
	Background Color                `json:"background"`
	Font       FontResource         `json:"font"`
	Order      []SlotKind           `json:"order"`
	Logo       *Block               `json:"logo"`
	Divider    *Divider             `json:"divider,omitempty"`
	Content    *Block               `json:"content"`
}

// Frame 为矩形区域。
type Frame struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Block 是一个已定位的块。Slot 为分配给它的区域（不受偏移影响），
// Box 为对齐并叠加偏移后的内容区域；元素坐标均为画布坐标。
type Block struct {
	Kind     BlockKind        `json:"kind"`
	Slot     Frame            `json:"slot"`
	Box      Frame            `json:"box"`
	Align    signature.Align  `json:"align"`
	VAlign   signature.VAlign `json:"valign,omitempty"`
	Offset   signature.Offset `json:"offset"`
	Texts    []TextBox        `json:"texts,omitempty"`
	Images   []ImageBox       `json:"images,omitempty"`
	Rects    []Rect           `json:"rects,omitempty"`
	Icons    []IconBox        `json:"icons,omitempty"`
	Children []*Block         `json:"children,omitempty"`

	// Container 仅 logo 块使用：图片外层的容器（背景、圆角与内边距）。
	Container *Container `json:"container,omitempty"`
}

// Container 描述 logo 容器，Frame 含内边距。
type Container struct {
	Frame      Frame   `json:"frame"`
	Padding    float64 `json:"padding"`
	Radius     float64 `json:"radius,omitempty"`
	Background *Color  `json:"background,omitempty"`
}

// Child 返回指定类型的子块。
func (b *Block) Child(kind BlockKind) *Block {
	if b == nil {
		return nil
	}
	for _, c := range b.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// Empty 判断块是否没有任何可绘制内容。
func (b *Block) Empty() bool {
	return b == nil || (len(b.Texts) == 0 && len(b.Images) == 0 && len(b.Rects) == 0 && len(b.Icons) == 0 && len(b.Children) == 0)
}

// Divider 为两列（或两行）之间的分隔条。
type Divider struct {
	Slot        Frame       `json:"slot"`
	Box         Frame       `json:"box"`
	Orientation Orientation `json:"orientation"`
	Thickness   float64     `json:"thickness"`
	Length      float64     `json:"length"`
	Color       Color       `json:"color"`
	Dashed      bool        `json:"dashed,omitempty"`
}

// Orientation 为分隔条方向。
type Orientation string

const (
	OrientationVertical   Orientation = "vertical"
	OrientationHorizontal Orientation = "horizontal"
)

// Role 标识元素在签名中的语义角色。
type Role string

const (
	RoleLogo        Role = "logo"
	RoleLogoBg      Role = "logo-background"
	RolePlaceholder Role = "placeholder"
	RoleFooter      Role = "footer"
	RoleFullName    Role = Role(signature.FieldFullName)
	RoleJobTitle    Role = Role(signature.FieldJobTitle)
	RoleEmail       Role = Role(signature.FieldEmail)
	RolePhoneWork   Role = Role(signature.FieldPhoneWork)
	RolePhoneMobile Role = Role(signature.FieldPhoneMobile)
	RoleAddress     Role = Role(signature.FieldAddress)
	RoleWebsite     Role = Role(signature.FieldWebsite)
	RoleSocial      Role = "social"
)

// FontResource 描述文本使用的字体。Style 为 regular 或 bold。
type FontResource struct {
	Name   string `json:"name"`
	Family string `json:"family"`
	Style  string `json:"style"`
}

// Bold 判断是否为粗体。
func (f FontResource) Bold() bool { return f.Style == "bold" }

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// TextBox 表示一个已经排好坐标的文本块。
type TextBox struct {
	Role       Role            `json:"role"`
	Content    string          `json:"content"`
	X          float64         `json:"x"`
	Y          float64         `json:"y"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	LineHeight float64         `json:"lineHeight"`
	Font       FontResource    `json:"font"`
	FontSize   float64         `json:"fontSize"`
	Color      Color           `json:"color"`
	Opacity    float64         `json:"opacity"`
	Align      signature.Align `json:"align,omitempty"`
	Link       string          `json:"link,omitempty"`
	Lines      []TextLine      `json:"lines"`
}

// TextLine 表示一行文本。X 相对 TextBox 左边缘，Spans 为空时整行使用 Content。
type TextLine struct {
	Content   string  `json:"content"`
	X         float64 `json:"x"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	GapBefore float64 `json:"gapBefore,omitempty"`
	Spans     []Span  `json:"spans,omitempty"`
}

// Span 是行内一段独立着色的文本，X 相对 TextBox 左边缘。
type Span struct {
	Content   string  `json:"content"`
	X         float64 `json:"x"`
	Width     float64 `json:"width"`
	Color     Color   `json:"color"`
	Separator bool    `json:"separator,omitempty"`
}

// ImageBox 用于描述图片位置与尺寸。
type ImageBox struct {
	Role    Role    `json:"role"`
	Src     string  `json:"src"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Fit     string  `json:"fit"`
	Opacity float64 `json:"opacity"`
}

// Rect 表示一个矩形，Radius 为圆角半径。
type Rect struct {
	Role        Role    `json:"role"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Radius      float64 `json:"radius,omitempty"`
	StrokeColor Color   `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`
	FillColor   *Color  `json:"fillColor,omitempty"` // 为空表示不填充
}

// IconKind 为图标种类。
type IconKind string

const (
	IconEmail     IconKind = "email"
	IconPhone     IconKind = "phone"
	IconMobile    IconKind = "mobile"
	IconAddress   IconKind = "address"
	IconFacebook  IconKind = IconKind(signature.Facebook)
	IconInstagram IconKind = IconKind(signature.Instagram)
	IconLinkedin  IconKind = IconKind(signature.Linkedin)
	IconTwitter   IconKind = IconKind(signature.Twitter)
)

// IconBox 是一个正方形图标。
type IconBox struct {
	Role  Role     `json:"role"`
	Kind  IconKind `json:"kind"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Size  float64  `json:"size"`
	Color Color    `json:"color"`
	Link  string   `json:"link,omitempty"`
}
