package canvasrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/sigstudio/fonts"
	"github.com/ByLCY/sigstudio/internal/logo"
	"github.com/ByLCY/sigstudio/layout"
	"github.com/ByLCY/sigstudio/renderer"
)

// defaultDPMM 为 PNG 预览的分辨率（约 192 DPI，适合高分屏）。
const defaultDPMM = 7.559

var errRemoteImage = errors.New("远程图片不在预览中加载")

// Renderer draws layout results via github.com/tdewolff/canvas.
// Geometry arrives in CSS px and is converted to mm; font sizes go to pt.
type Renderer struct {
	format  renderer.Format
	baseDir string
	dpmm    float64
	assets  *assets
}

var (
	_ renderer.Renderer    = (*Renderer)(nil)
	_ layout.Typesetter    = (*Renderer)(nil)
	_ layout.ImageMeasurer = (*Renderer)(nil)
)

// assets 在同一渲染器派生出的不同格式之间共享字体与图片缓存。
type assets struct {
	fontMu sync.Mutex
	family *canvas.FontFamily

	imageMu sync.Mutex
	images  map[string]imageEntry
}

type imageEntry struct {
	img image.Image
	err error
}

// Options configures the canvas renderer.
type Options struct {
	Format  renderer.Format // svg（默认）、pdf 或 png
	BaseDir string          // 解析相对路径图片的目录
	DPMM    float64         // PNG 分辨率，<=0 时使用默认值
}

// NewRenderer creates a canvas-based renderer.
func NewRenderer(opts Options) *Renderer {
	format := opts.Format
	if format == "" {
		format = renderer.FormatSVG
	}
	dpmm := opts.DPMM
	if dpmm <= 0 {
		dpmm = defaultDPMM
	}
	return &Renderer{
		format:  format,
		baseDir: opts.BaseDir,
		dpmm:    dpmm,
		assets:  &assets{images: map[string]imageEntry{}},
	}
}

// As 返回输出为另一种格式的渲染器，缓存共享。
func (r *Renderer) As(format renderer.Format) *Renderer {
	clone := *r
	clone.format = format
	return &clone
}

// Format 返回当前输出格式。
func (r *Renderer) Format() renderer.Format { return r.format }

// Render renders the result into SVG, PDF or PNG bytes.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	width, height := toMm(result.Width), toMm(result.Height)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效：%gx%g", result.Width, result.Height)
	}

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	if err := r.draw(ctx, result); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch r.format {
	case renderer.FormatPDF:
		writer := pdf.New(&buf, width, height, nil)
		writer.SetInfo("Email signature", "", "", "", "sigstudio")
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	case renderer.FormatSVG:
		writer := svg.New(&buf, width, height, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	case renderer.FormatPNG:
		img := rasterizer.Draw(c, canvas.DPMM(r.dpmm), canvas.DefaultColorSpace)
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("写入 PNG 失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("canvas 渲染器不支持格式 %s", r.format)
	}
	return buf.Bytes(), nil
}

// MeasureText 实现 layout.Typesetter：字号与返回宽度均为 px。
func (r *Renderer) MeasureText(content string, font layout.FontResource, fontSize float64) (float64, error) {
	face, err := r.fontFace(font, toPt(fontSize), layout.Color{}, 1)
	if err != nil {
		return 0, err
	}
	return face.TextWidth(content) * layout.MmToPx, nil
}

// ImageSize 实现 layout.ImageMeasurer，只对可在本地解码的图片生效。
func (r *Renderer) ImageSize(src string) (float64, float64, bool) {
	img, err := r.loadImage(src)
	if err != nil {
		return 0, 0, false
	}
	b := img.Bounds()
	return float64(b.Dx()), float64(b.Dy()), b.Dx() > 0 && b.Dy() > 0
}

func (r *Renderer) draw(ctx *canvas.Context, res *layout.Result) error {
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.SetFillColor(colorFromLayout(res.Background, 1))
	ctx.DrawPath(0, 0, canvas.Rectangle(toMm(res.Width), toMm(res.Height)))

	if err := r.drawBlock(ctx, res.Logo); err != nil {
		return err
	}
	r.drawDivider(ctx, res.Divider)
	return r.drawBlock(ctx, res.Content)
}

func (r *Renderer) drawBlock(ctx *canvas.Context, blk *layout.Block) error {
	if blk == nil {
		return nil
	}
	r.drawRects(ctx, blk.Rects)
	r.drawImages(ctx, blk.Images)
	for _, ic := range blk.Icons {
		if err := r.drawIcon(ctx, ic); err != nil {
			return err
		}
	}
	for _, tb := range blk.Texts {
		if err := r.drawTextBox(ctx, tb); err != nil {
			return err
		}
	}
	for _, child := range blk.Children {
		if err := r.drawBlock(ctx, child); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox) error {
	face, err := r.fontFace(tb.Font, toPt(tb.FontSize), tb.Color, tb.Opacity)
	if err != nil {
		return err
	}
	metrics := face.Metrics()
	glyphH := metrics.Ascent + metrics.Descent

	cursorY := toMm(tb.Y)
	for _, line := range tb.Lines {
		cursorY += toMm(line.GapBefore)
		lineH := toMm(line.Height)
		// 行内垂直居中，与浏览器的半行距规则一致
		baseline := cursorY + (lineH-glyphH)/2 + metrics.Ascent

		if len(line.Spans) == 0 {
			ctx.DrawText(toMm(tb.X+line.X), baseline, canvas.NewTextLine(face, line.Content, canvas.Left))
		}
		for _, sp := range line.Spans {
			spanFace := face
			if sp.Color != tb.Color {
				if spanFace, err = r.fontFace(tb.Font, toPt(tb.FontSize), sp.Color, tb.Opacity); err != nil {
					return err
				}
			}
			ctx.DrawText(toMm(tb.X+sp.X), baseline, canvas.NewTextLine(spanFace, sp.Content, canvas.Left))
		}
		cursorY += lineH
	}
	return nil
}

func (r *Renderer) drawImages(ctx *canvas.Context, images []layout.ImageBox) {
	for _, box := range images {
		if box.Width <= 0 || box.Height <= 0 {
			continue
		}
		img, err := r.loadImage(box.Src)
		if err != nil {
			// 远程或无法解码的 logo 以浅色框占位
			ctx.SetFillColor(canvas.Transparent)
			ctx.SetStrokeColor(canvas.Hex("#cccccc"))
			ctx.SetStrokeWidth(toMm(1))
			ctx.DrawPath(toMm(box.X), toMm(box.Y), canvas.Rectangle(toMm(box.Width), toMm(box.Height)))
			continue
		}
		dpmm := float64(img.Bounds().Dx()) / toMm(box.Width)
		if dpmm <= 0 {
			dpmm = 1
		}
		ctx.DrawImage(toMm(box.X), toMm(box.Y), img, canvas.DPMM(dpmm))
	}
}

// drawRects 绘制矩形（支持圆角）
func (r *Renderer) drawRects(ctx *canvas.Context, rects []layout.Rect) {
	for _, rc := range rects {
		if rc.FillColor != nil {
			ctx.SetFillColor(colorFromLayout(*rc.FillColor, 1))
		} else {
			ctx.SetFillColor(canvas.Transparent)
		}
		if rc.StrokeWidth > 0 {
			ctx.SetStrokeColor(colorFromLayout(rc.StrokeColor, 1))
			ctx.SetStrokeWidth(toMm(rc.StrokeWidth))
		} else {
			ctx.SetStrokeColor(canvas.Transparent)
		}
		w, h := toMm(rc.Width), toMm(rc.Height)
		path := canvas.Rectangle(w, h)
		if rc.Radius > 0 {
			path = canvas.RoundedRectangle(w, h, toMm(rc.Radius))
		}
		ctx.DrawPath(toMm(rc.X), toMm(rc.Y), path)
	}
}

func (r *Renderer) drawDivider(ctx *canvas.Context, d *layout.Divider) {
	if d == nil || d.Box.Width <= 0 || d.Box.Height <= 0 {
		return
	}
	col := colorFromLayout(d.Color, 1)
	x, y := toMm(d.Box.X), toMm(d.Box.Y)
	w, h := toMm(d.Box.Width), toMm(d.Box.Height)
	if !d.Dashed {
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.SetFillColor(col)
		ctx.DrawPath(x, y, canvas.Rectangle(w, h))
		return
	}

	p := &canvas.Path{}
	thickness := toMm(d.Thickness)
	if d.Orientation == layout.OrientationVertical {
		p.MoveTo(0, 0)
		p.LineTo(0, h)
		x += w / 2
	} else {
		p.MoveTo(0, 0)
		p.LineTo(w, 0)
		y += h / 2
	}
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(col)
	ctx.SetStrokeWidth(thickness)
	ctx.SetDashes(0, 3*thickness, 2*thickness)
	ctx.DrawPath(x, y, p)
	ctx.SetDashes(0)
}

func (r *Renderer) fontFace(font layout.FontResource, sizePt float64, col layout.Color, opacity float64) (*canvas.FontFace, error) {
	family, err := r.fontFamily()
	if err != nil {
		return nil, err
	}
	if opacity <= 0 {
		opacity = 1
	}
	return family.Face(sizePt, colorFromLayout(col, opacity), parseFontStyle(font.Style), canvas.FontNormal), nil
}

func (r *Renderer) fontFamily() (*canvas.FontFamily, error) {
	a := r.assets
	a.fontMu.Lock()
	defer a.fontMu.Unlock()
	if a.family != nil {
		return a.family, nil
	}

	family := canvas.NewFontFamily(fonts.Family)
	for _, style := range []canvas.FontStyle{canvas.FontRegular, canvas.FontBold} {
		name := "regular"
		if style == canvas.FontBold {
			name = "bold"
		}
		data, err := fonts.Load(name)
		if err != nil {
			return nil, err
		}
		if err := family.LoadFont(data, 0, style); err != nil {
			return nil, fmt.Errorf("加载字体 %s/%s 失败: %w", fonts.Family, name, err)
		}
	}
	a.family = family
	return family, nil
}

func (r *Renderer) loadImage(src string) (image.Image, error) {
	a := r.assets
	a.imageMu.Lock()
	defer a.imageMu.Unlock()
	if entry, ok := a.images[src]; ok {
		return entry.img, entry.err
	}
	img, err := r.decodeImage(src)
	a.images[src] = imageEntry{img: img, err: err}
	return img, err
}

func (r *Renderer) decodeImage(src string) (image.Image, error) {
	src = strings.TrimSpace(src)
	switch {
	case src == "":
		return nil, fmt.Errorf("图片地址为空")
	case logo.IsDataURI(src):
		data, _, err := logo.Decode(src)
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("解码内联图片失败: %w", err)
		}
		return img, nil
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"), strings.HasPrefix(src, "//"):
		return nil, errRemoteImage
	}

	if r.baseDir == "" && !filepath.IsAbs(src) {
		return nil, fmt.Errorf("未指定资源目录时不允许直接使用路径：%s", src)
	}
	path := src
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("读取图片 %s 失败: %w", src, err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("解码图片 %s 失败: %w", src, err)
	}
	return img, nil
}

func parseFontStyle(style string) canvas.FontStyle {
	if strings.Contains(strings.ToLower(style), "bold") {
		return canvas.FontBold
	}
	return canvas.FontRegular
}

func colorFromLayout(c layout.Color, alpha float64) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, alpha)
}

// toMm 将 CSS 像素(px)转换为毫米(mm)。
func toMm(px float64) float64 { return px * layout.PxToMm }

// toPt 将 CSS 像素(px)转换为点(pt)。
func toPt(px float64) float64 { return px * layout.PxToPt }
