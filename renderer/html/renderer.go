package htmlrenderer

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/svg"

	"github.com/ByLCY/sigstudio/layout"
	"github.com/ByLCY/sigstudio/renderer"
	"github.com/ByLCY/sigstudio/signature"
)

// DefaultFontFamily 为邮件客户端中的字体栈。
const DefaultFontFamily = "Arial, Helvetica, sans-serif"

// Renderer 把布局树输出为可粘贴进邮件客户端的 HTML 片段。
type Renderer struct {
	opts     Options
	tmpl     *template.Template
	minifier *minify.M
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the HTML renderer.
type Options struct {
	Minify     bool   // 压缩输出（复制到剪贴板时使用）
	FontFamily string // 为空时使用 DefaultFontFamily
}

// New creates an HTML renderer.
func New(opts Options) *Renderer {
	if opts.FontFamily == "" {
		opts.FontFamily = DefaultFontFamily
	}
	m := minify.New()
	m.Add("text/html", &minhtml.Minifier{KeepEndTags: true, KeepQuotes: true, KeepDefaultAttrVals: true})
	m.AddFunc("text/css", mincss.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)
	return &Renderer{
		opts:     opts,
		tmpl:     template.Must(template.New("signature").Parse(signatureTemplate)),
		minifier: m,
	}
}

// Render renders the layout tree as an HTML fragment.
func (r *Renderer) Render(res *layout.Result) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "signature", r.page(res)); err != nil {
		return nil, fmt.Errorf("生成 HTML 失败: %w", err)
	}
	if !r.opts.Minify {
		return buf.Bytes(), nil
	}
	out, err := r.minifier.Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("压缩 HTML 失败: %w", err)
	}
	return out, nil
}

type pageView struct {
	Style      template.CSS
	TableStyle template.CSS
	Vertical   bool
	Cells      []cellView
}

type cellView struct {
	Align   string
	VAlign  string
	Style   template.CSS
	Logo    *logoView
	Divider *dividerView
	Content *contentView
}

type logoView struct {
	ContainerStyle   template.CSS
	PlaceholderStyle template.CSS
	Image            *imageView
	Footer           *footerView
}

type imageView struct {
	Src   template.URL
	Width int
	Style template.CSS
}

type footerView struct {
	Style          template.CSS
	SeparatorStyle template.CSS
	Items          []footerItem
}

type footerItem struct {
	Text      string
	Separator bool
}

type dividerView struct {
	Style template.CSS
}

type contentView struct {
	Sections []sectionView
}

type sectionView struct {
	TableStyle template.CSS
	Align      string
	Style      template.CSS
	Name       *nameView
	Contact    *contactView
	Website    *websiteView
}

type nameView struct {
	Lines []textView
}

type textView struct {
	Text  string
	Style template.CSS
}

type contactView struct {
	TableStyle template.CSS
	Rows       []contactRow
}

type contactRow struct {
	VAlign    string
	IconStyle template.CSS
	CellStyle template.CSS
	TextStyle template.CSS
	Icon      template.HTML
	Link      template.URL
	Lines     []string
}

type websiteView struct {
	Site        *linkView
	SocialStyle template.CSS
	Social      []socialView
}

type linkView struct {
	Text  string
	Link  template.URL
	Style template.CSS
}

type socialView struct {
	Style template.CSS
	Link  template.URL
	Icon  template.HTML
}

func (r *Renderer) page(res *layout.Result) pageView {
	pv := pageView{
		Style:      css("background-color", res.Background.Hex(), "padding", px(res.Padding), "display", "inline-block"),
		TableStyle: css("border-collapse", "collapse", "font-family", r.opts.FontFamily),
		Vertical:   res.Axis == layout.AxisVertical,
	}

	first, second := res.Logo, res.Content
	if !res.Mode.LogoFirst() {
		first, second = second, first
	}
	pv.Cells = append(pv.Cells, r.primaryCell(first, pv.Vertical))
	pv.Cells = append(pv.Cells, gapCell(res, first, second, pv.Vertical))
	pv.Cells = append(pv.Cells, r.primaryCell(second, pv.Vertical))
	return pv
}

func (r *Renderer) primaryCell(blk *layout.Block, vertical bool) cellView {
	cell := cellView{Align: string(blk.Align)}
	if vertical {
		cell.Align = string(signature.AlignCenter)
		cell.VAlign = "top"
	} else {
		cell.VAlign = valign(blk.VAlign)
	}
	if blk.Kind == layout.BlockLogo {
		cell.Style = offsetPadding(blk.Offset)
		cell.Logo = r.logo(blk)
		return cell
	}
	cell.Content = r.content(blk)
	return cell
}

// gapCell 生成两个主块之间的单元格：横向为 columnGap 宽的列，纵向为带上下留白的行。
func gapCell(res *layout.Result, first, second *layout.Block, vertical bool) cellView {
	d := res.Divider
	if vertical {
		cell := cellView{Align: string(signature.AlignCenter)}
		if d == nil {
			gap := second.Slot.Y - (first.Slot.Y + first.Slot.Height)
			cell.Style = css("height", px(gap), "line-height", px(gap), "font-size", "0")
			return cell
		}
		pad := (d.Slot.Height - d.Box.Height) / 2
		cell.Style = css("padding", px(pad)+" 0")
		cell.Divider = &dividerView{Style: dividerStyle(d)}
		return cell
	}

	gap := second.Slot.X - (first.Slot.X + first.Slot.Width)
	cell := cellView{VAlign: "middle", Style: css("width", px(gap))}
	if d != nil {
		cell.Divider = &dividerView{Style: dividerStyle(d)}
	}
	return cell
}

func dividerStyle(d *layout.Divider) template.CSS {
	col := d.Color.Hex()
	w, h := px(d.Box.Width), px(d.Box.Height)
	margin := "0 auto"
	if !d.Dashed {
		return css("width", w, "height", h, "background-color", col, "margin", margin)
	}
	border := px(d.Thickness) + " dashed " + col
	if d.Orientation == layout.OrientationVertical {
		return css("width", "0", "height", h, "border-left", border, "margin", margin)
	}
	return css("width", w, "height", "0", "border-top", border, "margin", margin)
}

func (r *Renderer) logo(blk *layout.Block) *logoView {
	lv := &logoView{
		PlaceholderStyle: css("color", "#cccccc", "font-size", "10px", "font-weight", "bold", "text-align", "center"),
	}
	if c := blk.Container; c != nil {
		bg := "transparent"
		if c.Background != nil {
			bg = c.Background.Hex()
		}
		inner := c.Frame.Width - 2*c.Padding
		decls := []string{
			"background-color", bg,
			"width", px(inner),
			"border-radius", px(c.Radius),
			"padding", px(c.Padding),
		}
		for _, tb := range blk.Texts {
			if tb.Role == layout.RoleFooter {
				decls = append(decls, "margin-bottom", px(tb.Y-(c.Frame.Y+c.Frame.Height)))
			}
		}
		lv.ContainerStyle = css(decls...)
	}
	for _, img := range blk.Images {
		if img.Role != layout.RoleLogo {
			continue
		}
		lv.Image = &imageView{
			Src:   safeURL(img.Src),
			Width: int(math.Round(img.Width)),
			Style: css("width", px(img.Width), "display", "block", "border", "0"),
		}
	}
	for _, tb := range blk.Texts {
		if tb.Role != layout.RoleFooter {
			continue
		}
		fv := &footerView{
			Style: css(
				"color", tb.Color.Hex(),
				"font-size", px(tb.FontSize),
				"width", px(tb.Width),
				"text-align", string(tb.Align),
				"font-weight", "bold",
				"line-height", ratio(tb.LineHeight, tb.FontSize),
				"font-family", r.opts.FontFamily,
			),
		}
		for _, ln := range tb.Lines {
			for _, sp := range ln.Spans {
				if sp.Separator && fv.SeparatorStyle == "" {
					fv.SeparatorStyle = css("color", sp.Color.Hex(), "margin", "0 4px")
				}
				fv.Items = append(fv.Items, footerItem{Text: sp.Content, Separator: sp.Separator})
			}
		}
		lv.Footer = fv
	}
	return lv
}

func (r *Renderer) content(blk *layout.Block) *contentView {
	cv := &contentView{}
	var prev *layout.Block
	for _, child := range blk.Children {
		sec := sectionView{
			Align: string(child.Align),
			Style: offsetPadding(child.Offset),
		}
		decls := []string{"border-collapse", "collapse"}
		if prev != nil {
			decls = append(decls, "margin-top", px(child.Slot.Y-(prev.Slot.Y+prev.Slot.Height)))
		}
		decls = append(decls, tableAlign(child.Align)...)
		sec.TableStyle = css(decls...)

		switch child.Kind {
		case layout.BlockName:
			sec.Name = r.name(child)
		case layout.BlockContact:
			sec.Contact = r.contact(child)
		case layout.BlockWebsite:
			sec.Website = r.website(child)
		}
		cv.Sections = append(cv.Sections, sec)
		prev = child
	}
	return cv
}

func (r *Renderer) name(blk *layout.Block) *nameView {
	nv := &nameView{}
	for i, tb := range blk.Texts {
		decls := r.textDecls(tb)
		if i > 0 {
			prev := blk.Texts[i-1]
			decls = append(decls, "margin-top", px(tb.Y-(prev.Y+prev.Height)))
		}
		nv.Lines = append(nv.Lines, textView{Text: tb.Content, Style: css(decls...)})
	}
	return nv
}

func (r *Renderer) contact(blk *layout.Block) *contactView {
	cv := &contactView{TableStyle: css(append([]string{"border-collapse", "collapse"}, tableAlign(blk.Align)...)...)}
	for i, tb := range blk.Texts {
		if i >= len(blk.Icons) {
			break
		}
		icon := blk.Icons[i]
		row := contactRow{
			VAlign:    "middle",
			Icon:      iconSVG(icon.Kind, icon.Size, icon.Color),
			TextStyle: css(append(r.textDecls(tb), "text-decoration", "none")...),
		}
		gap := 0.0
		if i+1 < len(blk.Texts) {
			gap = rowTop(blk, i+1) - rowBottom(blk, i)
		}
		iconDecls := []string{"padding-right", px(tb.X - icon.X - icon.Size)}
		cellDecls := []string{}
		if gap > 0 {
			iconDecls = append(iconDecls, "padding-bottom", px(gap))
			cellDecls = append(cellDecls, "padding-bottom", px(gap))
		}
		if tb.Role == layout.RoleAddress {
			row.VAlign = "top"
			iconDecls = append(iconDecls, "padding-top", px(icon.Y-tb.Y))
		}
		row.IconStyle = css(iconDecls...)
		row.CellStyle = css(cellDecls...)
		for _, ln := range tb.Lines {
			row.Lines = append(row.Lines, ln.Content)
		}
		if len(row.Lines) == 0 {
			row.Lines = []string{tb.Content}
		}
		if tb.Link != "" {
			row.Link = safeURL(tb.Link)
		}
		cv.Rows = append(cv.Rows, row)
	}
	return cv
}

func rowTop(blk *layout.Block, i int) float64 {
	return math.Min(blk.Texts[i].Y, blk.Icons[i].Y)
}

func rowBottom(blk *layout.Block, i int) float64 {
	tb, ic := blk.Texts[i], blk.Icons[i]
	return math.Max(tb.Y+tb.Height, ic.Y+ic.Size)
}

func (r *Renderer) website(blk *layout.Block) *websiteView {
	wv := &websiteView{}
	for _, tb := range blk.Texts {
		if tb.Role != layout.RoleWebsite {
			continue
		}
		wv.Site = &linkView{
			Text:  tb.Content,
			Link:  safeURL(tb.Link),
			Style: css(append(r.textDecls(tb), "text-decoration", "none")...),
		}
	}
	for i, ic := range blk.Icons {
		sv := socialView{Link: safeURL(ic.Link), Icon: iconSVG(ic.Kind, ic.Size, ic.Color)}
		if i+1 < len(blk.Icons) {
			sv.Style = css("padding-right", px(blk.Icons[i+1].X-ic.X-ic.Size))
		}
		wv.Social = append(wv.Social, sv)
	}
	if len(wv.Social) > 0 {
		decls := []string{"border-collapse", "collapse"}
		if wv.Site != nil {
			site := blk.Texts[0]
			decls = append(decls, "margin-top", px(blk.Icons[0].Y-(site.Y+site.Height)))
		}
		wv.SocialStyle = css(append(decls, tableAlign(blk.Align)...)...)
	}
	return wv
}

func (r *Renderer) textDecls(tb layout.TextBox) []string {
	weight := "normal"
	if tb.Font.Bold() {
		weight = "bold"
	}
	decls := []string{
		"color", tb.Color.Hex(),
		"font-size", px(tb.FontSize),
		"font-weight", weight,
		"line-height", ratio(tb.LineHeight, tb.FontSize),
		"font-family", r.opts.FontFamily,
	}
	if tb.Opacity > 0 && tb.Opacity < 1 {
		decls = append(decls, "opacity", num(tb.Opacity))
	}
	return decls
}

// offsetPadding 把偏移写成内边距：正值占用左/上，负值占用右/下。
func offsetPadding(off signature.Offset) template.CSS {
	var decls []string
	if off.X > 0 {
		decls = append(decls, "padding-left", px(float64(off.X)))
	} else if off.X < 0 {
		decls = append(decls, "padding-right", px(float64(-off.X)))
	}
	if off.Y > 0 {
		decls = append(decls, "padding-top", px(float64(off.Y)))
	} else if off.Y < 0 {
		decls = append(decls, "padding-bottom", px(float64(-off.Y)))
	}
	return css(decls...)
}

func tableAlign(a signature.Align) []string {
	switch a {
	case signature.AlignCenter:
		return []string{"margin-left", "auto", "margin-right", "auto"}
	case signature.AlignRight:
		return []string{"margin-left", "auto"}
	}
	return nil
}

func valign(v signature.VAlign) string {
	switch v {
	case signature.VAlignCenter:
		return "middle"
	case signature.VAlignBottom:
		return "bottom"
	default:
		return "top"
	}
}

// safeURL 只放行邮件签名中会出现的协议；其它值交给模板转义。
func safeURL(u string) template.URL {
	lower := strings.ToLower(strings.TrimSpace(u))
	for _, prefix := range []string{"http://", "https://", "mailto:", "tel:", "data:image/"} {
		if strings.HasPrefix(lower, prefix) {
			return template.URL(strings.TrimSpace(u))
		}
	}
	return template.URL("#")
}

// css 由成对的属性/取值拼出内联样式；取值来自布局树（数值或已校验的颜色）。
func css(pairs ...string) template.CSS {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(';')
		}
		b.WriteString(pairs[i])
		b.WriteByte(':')
		b.WriteString(pairs[i+1])
	}
	return template.CSS(b.String())
}

func px(v float64) string {
	return num(v) + "px"
}

func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func ratio(lineHeight, fontSize float64) string {
	if fontSize <= 0 {
		return "normal"
	}
	return num(lineHeight / fontSize)
}
