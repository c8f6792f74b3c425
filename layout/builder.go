package layout

import (
	"math"
	"strings"

	"github.com/ByLCY/sigstudio/signature"
)

const (
	canvasPadding       = 20.0 // 外层容器内边距
	logoBgPadding       = 12.0
	logoBgRadius        = 8.0
	logoAspect          = 0.6 // 无法得知图片尺寸时的默认高宽比
	placeholderFontSize = 10.0
	placeholderText     = "LOGO"
	iconTextGap         = 8.0
	addressIconNudge    = 2.0
	jobTitleGap         = 2.0
	contentWebsiteGap   = 8.0
	websiteSocialGap    = 8.0
	socialIconGap       = 12.0
	socialIconGrow      = 2.0
	stackPadding        = 15.0 // 上下堆叠模式中分隔条两侧的留白
	separatorMargin     = 4.0
	websiteFontRatio    = 0.7
	jobTitleOpacity     = 0.8

	textLineHeight    = 1.2
	nameLineHeight    = 1.1
	footerLineHeight  = 1.3
	addressLineHeight = 1.4
)

var (
	bodyFont = FontResource{Name: "Body", Family: "Arial", Style: "regular"}
	boldFont = FontResource{Name: "Body-Bold", Family: "Arial", Style: "bold"}

	white            = Color{R: 255, G: 255, B: 255}
	placeholderColor = Color{R: 0xcc, G: 0xcc, B: 0xcc}
)

// Build 根据签名配置计算完整的布局树。该函数是纯函数：相同输入总是得到相同结果，
// 任何取值都不会导致错误或 panic（负尺寸按 0 处理）。
func Build(cfg signature.Config, opts BuildOptions) *Result {
	cfg = cfg.Normalized()
	b := &builder{
		cfg:     cfg,
		m:       measurer{ts: opts.Typesetter, images: opts.Images},
		primary: colorOf(cfg.PrimaryTextColor),
		accent:  colorOf(cfg.AccentColor),
	}

	res := &Result{
		Mode:       cfg.LayoutMode,
		Padding:    canvasPadding,
		Background: white,
		Font:       bodyFont,
		Logo:       b.logoBlock(),
		Divider:    b.divider(),
		Content:    b.contentBlock(),
	}
	if cfg.LayoutMode.Vertical() {
		res.Axis = AxisVertical
		b.arrangeStack(res)
	} else {
		res.Axis = AxisHorizontal
		b.arrangeRow(res)
	}
	return res
}

type builder struct {
	cfg     signature.Config
	m       measurer
	primary Color
	accent  Color
}

// arrangeRow 处理 logo-left / logo-right：两列之间为 columnGap 宽的槽位，分隔条居中其中。
func (b *builder) arrangeRow(res *Result) {
	first, second := res.Logo, res.Content
	if !b.cfg.LayoutMode.LogoFirst() {
		first, second = second, first
	}

	gap := b.cfg.ColumnGap
	rowH := math.Max(first.Box.Height, second.Box.Height)
	if res.Divider != nil {
		gap = math.Max(gap, res.Divider.Box.Width)
		rowH = math.Max(rowH, res.Divider.Box.Height)
	}

	x := canvasPadding
	y := canvasPadding
	firstW, secondW := first.Box.Width, second.Box.Width

	b.place(first, Frame{X: x, Y: y, Width: firstW, Height: rowH}, b.cfg.ContactVerticalAlign)
	x += firstW
	res.Order = append(res.Order, slotOf(first))

	if d := res.Divider; d != nil {
		d.Slot = Frame{X: x, Y: y, Width: gap, Height: rowH}
		d.Box.X = x + (gap-d.Box.Width)/2
		d.Box.Y = y + (rowH-d.Box.Height)/2
		res.Order = append(res.Order, SlotDivider)
	}
	x += gap

	b.place(second, Frame{X: x, Y: y, Width: secondW, Height: rowH}, b.cfg.ContactVerticalAlign)
	x += secondW
	res.Order = append(res.Order, slotOf(second))

	res.Width = x + canvasPadding
	res.Height = y + rowH + canvasPadding
}

// arrangeStack 处理 logo-top / logo-bottom：块在交叉轴上居中，
// 之间以固定留白分隔，不使用 contactVerticalAlign。
func (b *builder) arrangeStack(res *Result) {
	first, second := res.Logo, res.Content
	if !b.cfg.LayoutMode.LogoFirst() {
		first, second = second, first
	}

	colW := math.Max(first.Box.Width, second.Box.Width)
	if res.Divider != nil {
		colW = math.Max(colW, res.Divider.Box.Width)
	}

	x := canvasPadding
	y := canvasPadding
	firstH, secondH := first.Box.Height, second.Box.Height

	b.placeCentered(first, Frame{X: x, Y: y, Width: colW, Height: firstH})
	y += firstH
	res.Order = append(res.Order, slotOf(first))

	if d := res.Divider; d != nil {
		d.Slot = Frame{X: x, Y: y, Width: colW, Height: d.Box.Height + 2*stackPadding}
		d.Box.X = x + (colW-d.Box.Width)/2
		d.Box.Y = y + stackPadding
		y += d.Slot.Height
		res.Order = append(res.Order, SlotDivider)
	} else {
		y += stackPadding
	}

	b.placeCentered(second, Frame{X: x, Y: y, Width: colW, Height: secondH})
	y += secondH
	res.Order = append(res.Order, slotOf(second))

	res.Width = x + colW + canvasPadding
	res.Height = y + canvasPadding
}

func slotOf(blk *Block) SlotKind {
	if blk.Kind == BlockLogo {
		return SlotLogo
	}
	return SlotContent
}

// place 把主块放入槽位：水平方向按块自身的对齐，垂直方向按 valign，随后叠加偏移。
func (b *builder) place(blk *Block, slot Frame, valign signature.VAlign) {
	align, off := b.alignOf(blk.Kind), b.offsetOf(blk.Kind)
	position(blk, slot, align, valign, off)
}

func (b *builder) placeCentered(blk *Block, slot Frame) {
	position(blk, slot, signature.AlignCenter, signature.VAlignTop, b.offsetOf(blk.Kind))
	blk.Align = b.alignOf(blk.Kind)
}

func (b *builder) alignOf(kind BlockKind) signature.Align {
	switch kind {
	case BlockLogo:
		return b.cfg.LogoAlign
	case BlockName:
		return b.cfg.NameTitleAlign
	case BlockWebsite:
		return b.cfg.WebsiteAlign
	default:
		return b.cfg.ContactInfoAlign
	}
}

// offsetOf 返回块的偏移。组合内容块本身没有偏移，偏移只作用在它的子块上。
func (b *builder) offsetOf(kind BlockKind) signature.Offset {
	switch kind {
	case BlockLogo:
		return b.cfg.LogoOffset()
	case BlockName:
		return b.cfg.NameOffset()
	case BlockContact:
		return b.cfg.ContactOffset()
	case BlockWebsite:
		return b.cfg.WebsiteOffset()
	default:
		return signature.Offset{}
	}
}

// position 将以 (0,0) 为原点构建的块平移到槽位内的最终位置。
func position(blk *Block, slot Frame, align signature.Align, valign signature.VAlign, off signature.Offset) {
	x := slot.X + alignOffset(slot.Width, blk.Box.Width, align) + float64(off.X)
	y := slot.Y + valignOffset(slot.Height, blk.Box.Height, valign) + float64(off.Y)
	blk.translate(x-blk.Box.X, y-blk.Box.Y)
	blk.Slot = slot
	blk.Align = align
	blk.VAlign = valign
	blk.Offset = off
}

func (blk *Block) translate(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	blk.Box.X += dx
	blk.Box.Y += dy
	blk.Slot.X += dx
	blk.Slot.Y += dy
	for i := range blk.Texts {
		blk.Texts[i].X += dx
		blk.Texts[i].Y += dy
	}
	for i := range blk.Images {
		blk.Images[i].X += dx
		blk.Images[i].Y += dy
	}
	for i := range blk.Rects {
		blk.Rects[i].X += dx
		blk.Rects[i].Y += dy
	}
	for i := range blk.Icons {
		blk.Icons[i].X += dx
		blk.Icons[i].Y += dy
	}
	if blk.Container != nil {
		blk.Container.Frame.X += dx
		blk.Container.Frame.Y += dy
	}
	for _, c := range blk.Children {
		c.translate(dx, dy)
	}
}

func (b *builder) divider() *Divider {
	cfg := b.cfg
	if cfg.DividerWidth <= 0 || cfg.DividerStyle == signature.DividerNone {
		return nil
	}
	d := &Divider{
		Thickness: cfg.DividerWidth,
		Length:    cfg.DividerHeight,
		Color:     colorOf(cfg.DividerColor),
		Dashed:    cfg.DividerStyle == signature.DividerDashed,
	}
	if cfg.LayoutMode.Vertical() {
		d.Orientation = OrientationHorizontal
		d.Box = Frame{Width: d.Length, Height: d.Thickness}
	} else {
		d.Orientation = OrientationVertical
		d.Box = Frame{Width: d.Thickness, Height: d.Length}
	}
	return d
}

// logoBlock 构建 logo 容器（可选圆角背景）与其下方的服务关键词。
func (b *builder) logoBlock() *Block {
	cfg := b.cfg
	blk := &Block{Kind: BlockLogo}

	pad := 0.0
	if cfg.ShowLogoBackground {
		pad = logoBgPadding
	}

	src := strings.TrimSpace(cfg.LogoURL)
	innerW := cfg.LogoWidth
	var innerH float64
	var placeholder TextBox
	if src != "" {
		innerH = b.m.imageHeight(src, innerW)
	} else {
		placeholder = b.text(RolePlaceholder, placeholderText, boldFont, placeholderFontSize, textLineHeight, placeholderColor)
		innerW = math.Max(innerW, placeholder.Width)
		innerH = math.Max(innerW*logoAspect, placeholder.Height)
	}
	containerW := innerW + 2*pad
	containerH := innerH + 2*pad

	var footer *TextBox
	width := containerW
	height := containerH
	if kws := cfg.FooterKeywords(); len(kws) > 0 {
		fb := b.footerText(kws, containerW)
		width = math.Max(width, fb.Width)
		fb.Y = containerH + cfg.LogoFooterGap
		height = fb.Y + fb.Height
		footer = &fb
	}

	cx := alignOffset(width, containerW, cfg.LogoAlign)
	blk.Container = &Container{Frame: Frame{X: cx, Width: containerW, Height: containerH}, Padding: pad}
	if cfg.ShowLogoBackground {
		fill := colorOf(cfg.LogoBgColor)
		blk.Container.Radius = logoBgRadius
		blk.Container.Background = &fill
		blk.Rects = append(blk.Rects, Rect{
			Role:      RoleLogoBg,
			X:         cx,
			Width:     containerW,
			Height:    containerH,
			Radius:    logoBgRadius,
			FillColor: &fill,
		})
	}
	if src != "" {
		blk.Images = append(blk.Images, ImageBox{
			Role:    RoleLogo,
			Src:     src,
			X:       cx + pad,
			Y:       pad,
			Width:   innerW,
			Height:  innerH,
			Fit:     "contain",
			Opacity: 1,
		})
	} else {
		placeholder.X = cx + pad + (innerW-placeholder.Width)/2
		placeholder.Y = pad + (innerH-placeholder.Height)/2
		placeholder.Align = signature.AlignCenter
		blk.Texts = append(blk.Texts, placeholder)
	}
	if footer != nil {
		footer.Width = width
		alignLines(footer, cfg.FooterTextAlign)
		blk.Texts = append(blk.Texts, *footer)
	}
	blk.Box = Frame{Width: width, Height: height}
	return blk
}

// footerText 按关键词贪心折行：每个关键词连同其后的分隔符作为不可拆分的单元。
func (b *builder) footerText(kws []string, width float64) TextBox {
	cfg := b.cfg
	size := cfg.FooterFontSize
	lh := size * footerLineHeight
	dashW := b.m.width("-", boldFont, size)

	type unit struct {
		kw  string
		kwW float64
		sep bool
		w   float64
	}
	units := make([]unit, len(kws))
	for i, kw := range kws {
		u := unit{kw: kw, kwW: b.m.width(kw, boldFont, size), sep: i < len(kws)-1}
		u.w = u.kwW
		if u.sep {
			u.w += dashW + 2*separatorMargin
		}
		units[i] = u
	}

	var groups [][]unit
	var cur []unit
	curW := 0.0
	for _, u := range units {
		if len(cur) > 0 && curW+u.w > width {
			groups = append(groups, cur)
			cur, curW = nil, 0
		}
		cur = append(cur, u)
		curW += u.w
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}

	tb := TextBox{
		Role:       RoleFooter,
		Content:    strings.Join(kws, " - "),
		LineHeight: lh,
		Font:       boldFont,
		FontSize:   size,
		Color:      b.primary,
		Opacity:    1,
		Align:      cfg.FooterTextAlign,
		Width:      width,
	}
	for _, g := range groups {
		line := TextLine{Height: lh}
		var parts []string
		for _, u := range g {
			line.Spans = append(line.Spans, Span{Content: u.kw, X: line.Width, Width: u.kwW, Color: b.primary})
			parts = append(parts, u.kw)
			if u.sep {
				line.Spans = append(line.Spans, Span{
					Content:   "-",
					X:         line.Width + u.kwW + separatorMargin,
					Width:     dashW,
					Color:     b.accent,
					Separator: true,
				})
				parts = append(parts, "-")
			}
			line.Width += u.w
		}
		line.Content = strings.Join(parts, " ")
		tb.Width = math.Max(tb.Width, line.Width)
		tb.Lines = append(tb.Lines, line)
		tb.Height += lh
	}
	return tb
}

// alignLines 在文本框宽度内对齐每一行，并把行偏移写入 span 坐标。
func alignLines(tb *TextBox, align signature.Align) {
	for i := range tb.Lines {
		ln := &tb.Lines[i]
		ln.X = alignOffset(tb.Width, ln.Width, align)
		for j := range ln.Spans {
			ln.Spans[j].X += ln.X
		}
	}
}

func (b *builder) contentBlock() *Block {
	content := &Block{Kind: BlockContent, Align: b.cfg.ContactInfoAlign}
	parts := []*Block{b.nameBlock(), b.contactBlock(), b.websiteBlock()}

	width := 0.0
	for _, p := range parts {
		if p != nil {
			width = math.Max(width, p.Box.Width)
		}
	}
	y := 0.0
	for _, p := range parts {
		if p == nil {
			continue
		}
		if len(content.Children) > 0 {
			y += b.gapBefore(p.Kind)
		}
		h := p.Box.Height
		position(p, Frame{Y: y, Width: width, Height: h}, b.alignOf(p.Kind), signature.VAlignTop, b.offsetOf(p.Kind))
		p.VAlign = ""
		content.Children = append(content.Children, p)
		y += h
	}
	content.Box = Frame{Width: width, Height: y}
	return content
}

func (b *builder) gapBefore(kind BlockKind) float64 {
	if kind == BlockWebsite {
		return contentWebsiteGap
	}
	return b.cfg.VerticalSpacing
}

func (b *builder) nameBlock() *Block {
	cfg := b.cfg
	var texts []TextBox
	if cfg.Visible(signature.FieldFullName) {
		texts = append(texts, b.text(RoleFullName, cfg.FullName, boldFont, cfg.NameFontSize, nameLineHeight, b.primary))
	}
	if cfg.Visible(signature.FieldJobTitle) {
		tb := b.text(RoleJobTitle, cfg.JobTitle, bodyFont, cfg.JobTitleFontSize, textLineHeight, b.primary)
		tb.Opacity = jobTitleOpacity
		texts = append(texts, tb)
	}
	if len(texts) == 0 {
		return nil
	}

	width := 0.0
	for _, tb := range texts {
		width = math.Max(width, tb.Width)
	}
	y := 0.0
	for i := range texts {
		if i > 0 {
			y += jobTitleGap
		}
		texts[i].X = alignOffset(width, texts[i].Width, cfg.NameTitleAlign)
		texts[i].Y = y
		texts[i].Align = cfg.NameTitleAlign
		y += texts[i].Height
	}
	return &Block{Kind: BlockName, Box: Frame{Width: width, Height: y}, Texts: texts}
}

var contactIcons = map[signature.Field]IconKind{
	signature.FieldEmail:       IconEmail,
	signature.FieldPhoneWork:   IconPhone,
	signature.FieldPhoneMobile: IconMobile,
	signature.FieldAddress:     IconAddress,
}

func (b *builder) contactBlock() *Block {
	cfg := b.cfg
	type row struct {
		icon   IconBox
		text   TextBox
		width  float64
		height float64
	}
	var rows []row
	size := cfg.IconSize
	for _, f := range signature.ContactFields {
		if !cfg.Visible(f) {
			continue
		}
		r := row{icon: IconBox{Role: Role(f), Kind: contactIcons[f], Size: size, Color: b.accent}}
		switch f {
		case signature.FieldAddress:
			r.text = b.multiline(Role(f), cfg.AddressLines(), boldFont, cfg.ContactFontSize, addressLineHeight)
			r.height = math.Max(size+addressIconNudge, r.text.Height)
			r.icon.Y = addressIconNudge
		default:
			r.text = b.text(Role(f), strings.TrimSpace(cfg.Value(f)), boldFont, cfg.ContactFontSize, textLineHeight, b.primary)
			r.height = math.Max(size, r.text.Height)
			r.icon.Y = (r.height - size) / 2
			r.text.Y = (r.height - r.text.Height) / 2
			r.text.Link = contactLink(f, cfg.Value(f))
		}
		r.width = size + iconTextGap + r.text.Width
		rows = append(rows, r)
	}
	if len(rows) == 0 {
		return nil
	}

	width := 0.0
	for _, r := range rows {
		width = math.Max(width, r.width)
	}
	blk := &Block{Kind: BlockContact}
	y := 0.0
	for i, r := range rows {
		if i > 0 {
			y += cfg.VerticalSpacing
		}
		x := alignOffset(width, r.width, cfg.ContactInfoAlign)
		r.icon.X = x
		r.icon.Y += y
		r.text.X = x + size + iconTextGap
		r.text.Y += y
		blk.Icons = append(blk.Icons, r.icon)
		blk.Texts = append(blk.Texts, r.text)
		y += r.height
	}
	blk.Box = Frame{Width: width, Height: y}
	return blk
}

func contactLink(f signature.Field, value string) string {
	switch f {
	case signature.FieldEmail:
		return signature.MailTarget(value)
	case signature.FieldPhoneWork, signature.FieldPhoneMobile:
		return signature.TelTarget(value)
	}
	return ""
}

func (b *builder) websiteBlock() *Block {
	cfg := b.cfg
	blk := &Block{Kind: BlockWebsite}
	var site *TextBox
	if cfg.Visible(signature.FieldWebsite) {
		tb := b.text(RoleWebsite, strings.TrimSpace(cfg.Website), boldFont, cfg.NameFontSize*websiteFontRatio, textLineHeight, b.primary)
		tb.Link = signature.URLTarget(cfg.Website)
		site = &tb
	}
	var icons []IconBox
	size := cfg.IconSize + socialIconGrow
	if cfg.SocialVisible() {
		for _, p := range signature.Platforms {
			url := strings.TrimSpace(cfg.SocialLinks.URL(p))
			if url == "" {
				continue
			}
			icons = append(icons, IconBox{Role: RoleSocial, Kind: IconKind(p), Size: size, Color: b.accent, Link: signature.URLTarget(url)})
		}
	}
	if site == nil && len(icons) == 0 {
		return nil
	}

	socialW := 0.0
	if n := len(icons); n > 0 {
		socialW = float64(n)*size + float64(n-1)*socialIconGap
	}
	width := socialW
	if site != nil {
		width = math.Max(width, site.Width)
	}

	y := 0.0
	if site != nil {
		site.X = alignOffset(width, site.Width, cfg.WebsiteAlign)
		site.Align = cfg.WebsiteAlign
		blk.Texts = append(blk.Texts, *site)
		y += site.Height
		if len(icons) > 0 {
			y += websiteSocialGap
		}
	}
	x := alignOffset(width, socialW, cfg.WebsiteAlign)
	for i := range icons {
		icons[i].X = x
		icons[i].Y = y
		x += size + socialIconGap
	}
	blk.Icons = icons
	if len(icons) > 0 {
		y += size
	}
	blk.Box = Frame{Width: width, Height: y}
	return blk
}

// text 生成单行文本框，宽度来自排版后端（缺省时估算）。
func (b *builder) text(role Role, content string, font FontResource, size, factor float64, color Color) TextBox {
	w := b.m.width(content, font, size)
	h := size * factor
	return TextBox{
		Role:       role,
		Content:    content,
		Width:      w,
		Height:     h,
		LineHeight: h,
		Font:       font,
		FontSize:   size,
		Color:      color,
		Opacity:    1,
		Lines:      []TextLine{{Content: content, Width: w, Height: h}},
	}
}

func (b *builder) multiline(role Role, lines []string, font FontResource, size, factor float64) TextBox {
	lh := size * factor
	tb := TextBox{
		Role:       role,
		Content:    strings.Join(lines, "\n"),
		LineHeight: lh,
		Font:       font,
		FontSize:   size,
		Color:      b.primary,
		Opacity:    1,
	}
	for _, l := range lines {
		l = strings.TrimSpace(l)
		w := b.m.width(l, font, size)
		tb.Lines = append(tb.Lines, TextLine{Content: l, Width: w, Height: lh})
		tb.Width = math.Max(tb.Width, w)
		tb.Height += lh
	}
	return tb
}

func alignOffset(container, width float64, align signature.Align) float64 {
	if container <= width {
		return 0
	}
	switch align {
	case signature.AlignCenter:
		return (container - width) / 2
	case signature.AlignRight:
		return container - width
	default:
		return 0
	}
}

func valignOffset(container, height float64, valign signature.VAlign) float64 {
	if container <= height {
		return 0
	}
	switch valign {
	case signature.VAlignCenter:
		return (container - height) / 2
	case signature.VAlignBottom:
		return container - height
	default:
		return 0
	}
}
