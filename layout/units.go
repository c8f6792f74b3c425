package layout

import (
	"strconv"
	"strings"
)

// 布局几何统一使用 CSS 像素（每英寸 96 像素），canvas 渲染器使用毫米与磅。

// Unit represents the original unit of a length value.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers, read as px
	UnitPX               // CSS pixels
	UnitPT               // points
	UnitMM               // millimeters
)

// Conversion constants between px, pt and mm.
const (
	PxToPt = 0.75
	PtToPx = 1 / PxToPt
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
	PxToMm = PxToPt * PtToMm
	MmToPx = 1.0 / PxToMm
)

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// To converts this length to the target unit.
func (l Length) To(target Unit) float64 {
	px := l.Value
	switch l.Unit {
	case UnitPT:
		px = l.Value * PtToPx
	case UnitMM:
		px = l.Value * MmToPx
	}
	switch target {
	case UnitPT:
		return px * PxToPt
	case UnitMM:
		return px * PxToMm
	default:
		return px
	}
}

func (l Length) ToPX() float64 { return l.To(UnitPX) }

// ParseRawLengthStr parses a length string such as "12", "12px", "9pt" or "3mm".
// ok is false when the numeric part is not a number.
func ParseRawLengthStr(value string) (Length, bool) {
	lower := strings.ToLower(strings.TrimSpace(value))
	if lower == "" {
		return Length{}, false
	}
	unit := UnitNone
	num := lower
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"pt", UnitPT}, {"mm", UnitMM}} {
		if strings.HasSuffix(lower, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(lower, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}
