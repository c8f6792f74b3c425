package canvasrenderer

import (
	"github.com/tdewolff/canvas"

	"github.com/ByLCY/sigstudio/layout"
)

var socialMarks = map[layout.IconKind]string{
	layout.IconFacebook:  "f",
	layout.IconInstagram: "ig",
	layout.IconLinkedin:  "in",
	layout.IconTwitter:   "x",
}

var markColor = layout.Color{R: 255, G: 255, B: 255}

// drawIcon 绘制简化的线性图标；社交图标为实心圆加白色字母。
func (r *Renderer) drawIcon(ctx *canvas.Context, ic layout.IconBox) error {
	if ic.Size <= 0 {
		return nil
	}
	s := toMm(ic.Size)
	x, y := toMm(ic.X), toMm(ic.Y)
	col := colorFromLayout(ic.Color, 1)

	if mark, ok := socialMarks[ic.Kind]; ok {
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.SetFillColor(col)
		ctx.DrawPath(x+s/2, y+s/2, canvas.Circle(s/2))

		face, err := r.fontFace(layout.FontResource{Style: "bold"}, (s*0.5)*layout.MmToPt, markColor, 1)
		if err != nil {
			return err
		}
		m := face.Metrics()
		baseline := y + s/2 + (m.Ascent-m.Descent)/2
		ctx.DrawText(x+s/2, baseline, canvas.NewTextLine(face, mark, canvas.Center))
		return nil
	}

	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(col)
	ctx.SetStrokeWidth(s * 0.09)

	switch ic.Kind {
	case layout.IconEmail:
		ctx.DrawPath(x+s*0.05, y+s*0.2, canvas.Rectangle(s*0.9, s*0.6))
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(s*0.45, s*0.35)
		p.LineTo(s*0.9, 0)
		ctx.DrawPath(x+s*0.05, y+s*0.2, p)
	case layout.IconPhone:
		ctx.DrawPath(x+s*0.2, y+s*0.05, canvas.RoundedRectangle(s*0.6, s*0.9, s*0.12))
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(s*0.2, 0)
		ctx.DrawPath(x+s*0.4, y+s*0.8, p)
	case layout.IconMobile:
		ctx.DrawPath(x+s*0.27, y+s*0.05, canvas.RoundedRectangle(s*0.46, s*0.9, s*0.1))
		ctx.SetFillColor(col)
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.DrawPath(x+s/2, y+s*0.8, canvas.Circle(s*0.05))
	case layout.IconAddress:
		ctx.DrawPath(x+s/2, y+s*0.38, canvas.Circle(s*0.28))
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(0, s*0.3)
		ctx.DrawPath(x+s/2, y+s*0.66, p)
	}
	return nil
}
