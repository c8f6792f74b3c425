package signature

import "strings"

// Align 水平对齐方式。
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Valid 判断对齐值是否合法。
func (a Align) Valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return true
	}
	return false
}

// ParseAlign 解析水平对齐，兼容 start/end 写法。
func ParseAlign(s string) (Align, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "start", "flex-start":
		return AlignLeft, true
	case "center", "middle":
		return AlignCenter, true
	case "right", "end", "flex-end":
		return AlignRight, true
	}
	return "", false
}

// VAlign 垂直对齐方式。
type VAlign string

const (
	VAlignTop    VAlign = "top"
	VAlignCenter VAlign = "center"
	VAlignBottom VAlign = "bottom"
)

// Valid 判断垂直对齐值是否合法。
func (v VAlign) Valid() bool {
	switch v {
	case VAlignTop, VAlignCenter, VAlignBottom:
		return true
	}
	return false
}

// ParseVAlign 解析垂直对齐。早期快照使用 flex-start/flex-end 的写法。
func ParseVAlign(s string) (VAlign, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "flex-start", "start":
		return VAlignTop, true
	case "center", "middle":
		return VAlignCenter, true
	case "bottom", "flex-end", "end":
		return VAlignBottom, true
	}
	return "", false
}

// UnmarshalText 在解码时把旧写法折叠为规范值；无法识别的值原样保留，由 Normalized 处理。
func (v *VAlign) UnmarshalText(text []byte) error {
	if parsed, ok := ParseVAlign(string(text)); ok {
		*v = parsed
		return nil
	}
	*v = VAlign(text)
	return nil
}

// LayoutMode 决定 logo 与内容块的排列方向。
type LayoutMode string

const (
	LogoLeft   LayoutMode = "logo-left"
	LogoRight  LayoutMode = "logo-right"
	LogoTop    LayoutMode = "logo-top"
	LogoBottom LayoutMode = "logo-bottom"
)

// LayoutModes 列出全部排列方式。
var LayoutModes = []LayoutMode{LogoLeft, LogoRight, LogoTop, LogoBottom}

// Valid 判断排列方式是否合法。
func (m LayoutMode) Valid() bool {
	switch m {
	case LogoLeft, LogoRight, LogoTop, LogoBottom:
		return true
	}
	return false
}

// Vertical 判断是否为上下堆叠的排列。
func (m LayoutMode) Vertical() bool {
	return m == LogoTop || m == LogoBottom
}

// LogoFirst 判断 logo 是否位于主轴起点。
func (m LayoutMode) LogoFirst() bool {
	return m == LogoLeft || m == LogoTop
}

// DividerStyle 分隔线样式。
type DividerStyle string

const (
	DividerSolid  DividerStyle = "solid"
	DividerDashed DividerStyle = "dashed"
	DividerNone   DividerStyle = "none"
)

// Valid 判断分隔线样式是否合法。
func (d DividerStyle) Valid() bool {
	switch d {
	case DividerSolid, DividerDashed, DividerNone:
		return true
	}
	return false
}
