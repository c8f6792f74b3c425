package htmlrenderer

import (
	"fmt"
	"html/template"

	"github.com/ByLCY/sigstudio/layout"
)

// 24x24 视图框内的线性图标路径。
var strokeIcons = map[layout.IconKind]string{
	layout.IconEmail:   `<rect x="2" y="4" width="20" height="16" rx="2"/><path d="m22 7-10 6L2 7"/>`,
	layout.IconPhone:   `<path d="M22 16.9v3a2 2 0 0 1-2.2 2 19.8 19.8 0 0 1-8.6-3.1 19.5 19.5 0 0 1-6-6A19.8 19.8 0 0 1 2.1 4.2 2 2 0 0 1 4.1 2h3a2 2 0 0 1 2 1.7c.1.9.4 1.8.7 2.7a2 2 0 0 1-.5 2.1L8 9.8a16 16 0 0 0 6 6l1.3-1.3a2 2 0 0 1 2.1-.4c.9.3 1.8.6 2.7.7a2 2 0 0 1 1.7 2z"/>`,
	layout.IconMobile:  `<rect x="5" y="2" width="14" height="20" rx="2"/><path d="M12 18h.01"/>`,
	layout.IconAddress: `<path d="M20 10c0 6-8 12-8 12s-8-6-8-12a8 8 0 0 1 16 0z"/><circle cx="12" cy="10" r="3"/>`,
}

var socialMarks = map[layout.IconKind]string{
	layout.IconFacebook:  "f",
	layout.IconInstagram: "ig",
	layout.IconLinkedin:  "in",
	layout.IconTwitter:   "x",
}

// iconSVG 生成内联 SVG。颜色来自已校验的布局颜色，内容全部由本包常量构成。
func iconSVG(kind layout.IconKind, size float64, col layout.Color) template.HTML {
	s := num(size)
	hex := col.Hex()
	if mark, ok := socialMarks[kind]; ok {
		return template.HTML(fmt.Sprintf(
			`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 24 24" style="display:block"><circle cx="12" cy="12" r="12" fill="%s"/><text x="12" y="16.5" text-anchor="middle" font-family="Arial, sans-serif" font-size="12" font-weight="bold" fill="#ffffff">%s</text></svg>`,
			s, s, hex, mark))
	}
	body, ok := strokeIcons[kind]
	if !ok {
		return ""
	}
	return template.HTML(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 24 24" fill="none" stroke="%s" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" style="display:block">%s</svg>`,
		s, s, hex, body))
}
