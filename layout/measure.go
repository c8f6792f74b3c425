package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

type measurer struct {
	ts     Typesetter
	images ImageMeasurer
}

// width 优先使用排版后端的测量结果，失败或异常时退回估算值。
func (m measurer) width(content string, font FontResource, fontSize float64) float64 {
	if content == "" || fontSize <= 0 {
		return 0
	}
	if m.ts != nil {
		w, err := m.ts.MeasureText(content, font, fontSize)
		if err == nil && w >= 0 && !math.IsInf(w, 0) && !math.IsNaN(w) {
			return w
		}
	}
	return estimateTextWidth(content, fontSize, font.Bold())
}

func (m measurer) imageHeight(src string, width float64) float64 {
	if m.images != nil {
		if w, h, ok := m.images.ImageSize(src); ok && w > 0 && h > 0 {
			return width * h / w
		}
	}
	return width * logoAspect
}

// estimateTextWidth 在没有排版后端时按字符数粗略估算宽度。
func estimateTextWidth(content string, fontSize float64, bold bool) float64 {
	factor := 0.55
	if bold {
		factor = 0.6
	}
	return fontSize * factor * float64(utf8.RuneCountInString(content))
}

// ParseColor 解析 #rgb / #rrggbb 颜色。
func ParseColor(value string) (Color, error) {
	value = strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(value) {
	case 3:
		return Color{
			R: mustHex(strings.Repeat(value[0:1], 2)),
			G: mustHex(strings.Repeat(value[1:2], 2)),
			B: mustHex(strings.Repeat(value[2:3], 2)),
		}, nil
	case 6, 8:
		return Color{
			R: mustHex(value[0:2]),
			G: mustHex(value[2:4]),
			B: mustHex(value[4:6]),
		}, nil
	default:
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
}

func colorOf(value string) Color {
	c, err := ParseColor(value)
	if err != nil {
		return Color{}
	}
	return c
}

func mustHex(s string) int {
	v, _ := strconv.ParseUint(s, 16, 8)
	return int(v)
}

// Hex 返回 #rrggbb 形式。
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(c.R), clampByte(c.G), clampByte(c.B))
}

func clampByte(v int) int {
	return max(0, min(255, v))
}
