package preset

import (
	"fmt"
	"strconv"

	"github.com/ByLCY/sigstudio/dsl"
	"github.com/ByLCY/sigstudio/signature"
)

// field 把预设文件中的一个键映射到 Style 字段。alias 为 true 的键只用于解码。
type field struct {
	key    string
	alias  bool
	encode func(s *signature.Style) string
	decode func(s *signature.Style, v *dsl.Value) error
}

var fields = []field{
	modeField("layoutMode", func(s *signature.Style) *signature.LayoutMode { return &s.LayoutMode }),
	dividerField("dividerStyle", func(s *signature.Style) *signature.DividerStyle { return &s.DividerStyle }),

	floatField("logoWidth", func(s *signature.Style) *float64 { return &s.LogoWidth }),
	floatField("iconSize", func(s *signature.Style) *float64 { return &s.IconSize }),
	floatField("footerFontSize", func(s *signature.Style) *float64 { return &s.FooterFontSize }),
	floatField("nameFontSize", func(s *signature.Style) *float64 { return &s.NameFontSize }),
	floatField("jobTitleFontSize", func(s *signature.Style) *float64 { return &s.JobTitleFontSize }),
	floatField("contactFontSize", func(s *signature.Style) *float64 { return &s.ContactFontSize }),
	floatField("verticalSpacing", func(s *signature.Style) *float64 { return &s.VerticalSpacing }),
	floatField("logoFooterGap", func(s *signature.Style) *float64 { return &s.LogoFooterGap }),
	floatField("columnGap", func(s *signature.Style) *float64 { return &s.ColumnGap }),
	floatField("dividerWidth", func(s *signature.Style) *float64 { return &s.DividerWidth }),
	floatField("dividerHeight", func(s *signature.Style) *float64 { return &s.DividerHeight }),

	colorField("accentColor", func(s *signature.Style) *string { return &s.AccentColor }),
	colorField("dividerColor", func(s *signature.Style) *string { return &s.DividerColor }),
	colorField("primaryTextColor", func(s *signature.Style) *string { return &s.PrimaryTextColor }),
	colorField("logoBgColor", func(s *signature.Style) *string { return &s.LogoBgColor }),

	offsetField("logoOffset", func(s *signature.Style) (*int, *int) { return &s.LogoOffsetX, &s.LogoOffsetY }),
	offsetField("nameOffset", func(s *signature.Style) (*int, *int) { return &s.NameOffsetX, &s.NameOffsetY }),
	offsetField("contactOffset", func(s *signature.Style) (*int, *int) { return &s.ContactOffsetX, &s.ContactOffsetY }),
	offsetField("websiteOffset", func(s *signature.Style) (*int, *int) { return &s.WebsiteOffsetX, &s.WebsiteOffsetY }),
	intField("logoOffsetX", func(s *signature.Style) *int { return &s.LogoOffsetX }),
	intField("logoOffsetY", func(s *signature.Style) *int { return &s.LogoOffsetY }),
	intField("nameOffsetX", func(s *signature.Style) *int { return &s.NameOffsetX }),
	intField("nameOffsetY", func(s *signature.Style) *int { return &s.NameOffsetY }),
	intField("contactOffsetX", func(s *signature.Style) *int { return &s.ContactOffsetX }),
	intField("contactOffsetY", func(s *signature.Style) *int { return &s.ContactOffsetY }),
	intField("websiteOffsetX", func(s *signature.Style) *int { return &s.WebsiteOffsetX }),
	intField("websiteOffsetY", func(s *signature.Style) *int { return &s.WebsiteOffsetY }),

	alignField("nameTitleAlign", func(s *signature.Style) *signature.Align { return &s.NameTitleAlign }),
	alignField("contactInfoAlign", func(s *signature.Style) *signature.Align { return &s.ContactInfoAlign }),
	alignField("websiteAlign", func(s *signature.Style) *signature.Align { return &s.WebsiteAlign }),
	alignField("footerTextAlign", func(s *signature.Style) *signature.Align { return &s.FooterTextAlign }),
	alignField("logoAlign", func(s *signature.Style) *signature.Align { return &s.LogoAlign }),
	valignField("contactVerticalAlign", func(s *signature.Style) *signature.VAlign { return &s.ContactVerticalAlign }),

	boolField("showLogoBackground", func(s *signature.Style) *bool { return &s.ShowLogoBackground }),
	boolField("showFullName", func(s *signature.Style) *bool { return &s.ShowFullName }),
	boolField("showJobTitle", func(s *signature.Style) *bool { return &s.ShowJobTitle }),
	boolField("showEmail", func(s *signature.Style) *bool { return &s.ShowEmail }),
	boolField("showPhoneWork", func(s *signature.Style) *bool { return &s.ShowPhoneWork }),
	boolField("showPhoneMobile", func(s *signature.Style) *bool { return &s.ShowPhoneMobile }),
	boolField("showAddress", func(s *signature.Style) *bool { return &s.ShowAddress }),
	boolField("showWebsite", func(s *signature.Style) *bool { return &s.ShowWebsite }),
	boolField("showSocialIcons", func(s *signature.Style) *bool { return &s.ShowSocialIcons }),
}

var fieldIndex = func() map[string]field {
	out := make(map[string]field, len(fields))
	for _, f := range fields {
		out[f.key] = f
	}
	return out
}()

func floatField(key string, ptr func(*signature.Style) *float64) field {
	return field{
		key:    key,
		encode: func(s *signature.Style) string { return formatNumber(*ptr(s)) },
		decode: func(s *signature.Style, v *dsl.Value) error {
			f, ok := v.Float()
			if !ok {
				return fmt.Errorf("期望数字，得到 %s", v.Kind())
			}
			if f < 0 {
				return fmt.Errorf("尺寸不能为负数: %s", formatNumber(f))
			}
			*ptr(s) = f
			return nil
		},
	}
}

func intField(key string, ptr func(*signature.Style) *int) field {
	return field{
		key:   key,
		alias: true,
		decode: func(s *signature.Style, v *dsl.Value) error {
			n, err := intValue(v)
			if err != nil {
				return err
			}
			*ptr(s) = n
			return nil
		},
	}
}

func offsetField(key string, ptr func(*signature.Style) (*int, *int)) field {
	return field{
		key: key,
		encode: func(s *signature.Style) string {
			x, y := ptr(s)
			return "[" + strconv.Itoa(*x) + ", " + strconv.Itoa(*y) + "]"
		},
		decode: func(s *signature.Style, v *dsl.Value) error {
			if v.Array == nil || len(v.Array.Values) != 2 {
				return fmt.Errorf("偏移需要 [x, y] 两个数字")
			}
			x, err := intValue(v.Array.Values[0])
			if err != nil {
				return err
			}
			y, err := intValue(v.Array.Values[1])
			if err != nil {
				return err
			}
			px, py := ptr(s)
			*px, *py = x, y
			return nil
		},
	}
}

func colorField(key string, ptr func(*signature.Style) *string) field {
	return field{
		key:    key,
		encode: func(s *signature.Style) string { return quoteUnless(*ptr(s), signature.ValidColor) },
		decode: func(s *signature.Style, v *dsl.Value) error {
			text, ok := v.Text()
			if !ok || !signature.ValidColor(text) {
				return fmt.Errorf("期望 #rgb 或 #rrggbb 颜色")
			}
			*ptr(s) = text
			return nil
		},
	}
}

func boolField(key string, ptr func(*signature.Style) *bool) field {
	return field{
		key:    key,
		encode: func(s *signature.Style) string { return strconv.FormatBool(*ptr(s)) },
		decode: func(s *signature.Style, v *dsl.Value) error {
			b, ok := v.Bool()
			if !ok {
				return fmt.Errorf("期望 true 或 false")
			}
			*ptr(s) = b
			return nil
		},
	}
}

func alignField(key string, ptr func(*signature.Style) *signature.Align) field {
	return field{
		key:    key,
		encode: func(s *signature.Style) string { return quoteUnless(string(*ptr(s)), isIdent) },
		decode: func(s *signature.Style, v *dsl.Value) error {
			text, _ := v.Text()
			a, ok := signature.ParseAlign(text)
			if !ok {
				return fmt.Errorf("未知的对齐方式 %q", text)
			}
			*ptr(s) = a
			return nil
		},
	}
}

func valignField(key string, ptr func(*signature.Style) *signature.VAlign) field {
	return field{
		key:    key,
		encode: func(s *signature.Style) string { return quoteUnless(string(*ptr(s)), isIdent) },
		decode: func(s *signature.Style, v *dsl.Value) error {
			text, _ := v.Text()
			a, ok := signature.ParseVAlign(text)
			if !ok {
				return fmt.Errorf("未知的垂直对齐方式 %q", text)
			}
			*ptr(s) = a
			return nil
		},
	}
}

func modeField(key string, ptr func(*signature.Style) *signature.LayoutMode) field {
	return field{
		key:    key,
		encode: func(s *signature.Style) string { return quoteUnless(string(*ptr(s)), isIdent) },
		decode: func(s *signature.Style, v *dsl.Value) error {
			text, _ := v.Text()
			m := signature.LayoutMode(text)
			if !m.Valid() {
				return fmt.Errorf("未知的排列方式 %q", text)
			}
			*ptr(s) = m
			return nil
		},
	}
}

func dividerField(key string, ptr func(*signature.Style) *signature.DividerStyle) field {
	return field{
		key:    key,
		encode: func(s *signature.Style) string { return quoteUnless(string(*ptr(s)), isIdent) },
		decode: func(s *signature.Style, v *dsl.Value) error {
			text, _ := v.Text()
			d := signature.DividerStyle(text)
			if !d.Valid() {
				return fmt.Errorf("未知的分隔线样式 %q", text)
			}
			*ptr(s) = d
			return nil
		},
	}
}

func intValue(v *dsl.Value) (int, error) {
	f, ok := v.Float()
	if !ok {
		return 0, fmt.Errorf("期望整数，得到 %s", v.Kind())
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("期望整数，得到 %s", formatNumber(f))
	}
	return int(f), nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func quoteUnless(s string, bare func(string) bool) string {
	if bare(s) {
		return s
	}
	return strconv.Quote(s)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && (r == '-' || (r >= '0' && r <= '9')):
		default:
			return false
		}
	}
	return true
}
