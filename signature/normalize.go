package signature

import (
	"math"
	"regexp"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Normalized 返回清洗后的副本：负数或非数值尺寸归零，非法枚举与颜色回退为默认值。
// 偏移量允许为负，不做处理。
func (c Config) Normalized() Config {
	out := c
	out.Style = c.Style.Normalized()
	return out
}

// Normalized 对样式执行与 Config.Normalized 相同的清洗。
func (s Style) Normalized() Style {
	def := DefaultStyle()
	out := s

	for _, v := range []*float64{
		&out.LogoWidth, &out.IconSize, &out.FooterFontSize, &out.NameFontSize,
		&out.JobTitleFontSize, &out.ContactFontSize, &out.VerticalSpacing,
		&out.LogoFooterGap, &out.ColumnGap, &out.DividerWidth, &out.DividerHeight,
	} {
		*v = clampSize(*v)
	}

	out.AccentColor = normalizeColor(out.AccentColor, def.AccentColor)
	out.DividerColor = normalizeColor(out.DividerColor, def.DividerColor)
	out.PrimaryTextColor = normalizeColor(out.PrimaryTextColor, def.PrimaryTextColor)
	out.LogoBgColor = normalizeColor(out.LogoBgColor, def.LogoBgColor)

	for _, a := range []*Align{
		&out.NameTitleAlign, &out.ContactInfoAlign, &out.WebsiteAlign,
		&out.FooterTextAlign, &out.LogoAlign,
	} {
		if parsed, ok := ParseAlign(string(*a)); ok {
			*a = parsed
		} else {
			*a = AlignLeft
		}
	}
	if parsed, ok := ParseVAlign(string(out.ContactVerticalAlign)); ok {
		out.ContactVerticalAlign = parsed
	} else {
		out.ContactVerticalAlign = def.ContactVerticalAlign
	}
	if !out.LayoutMode.Valid() {
		out.LayoutMode = def.LayoutMode
	}
	if !out.DividerStyle.Valid() {
		out.DividerStyle = def.DividerStyle
	}
	return out
}

func clampSize(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if math.IsInf(v, 1) {
		return 0
	}
	return v
}

func normalizeColor(value, fallback string) string {
	value = strings.TrimSpace(value)
	if hexColorPattern.MatchString(value) {
		return strings.ToLower(value)
	}
	return fallback
}

// ValidColor 判断字符串是否为 #rgb 或 #rrggbb 颜色。
func ValidColor(value string) bool {
	return hexColorPattern.MatchString(strings.TrimSpace(value))
}
