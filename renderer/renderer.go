package renderer

import (
	"fmt"
	"strings"

	"github.com/ByLCY/sigstudio/layout"
)

// Renderer 将布局结果输出为最终文件，例如 HTML 片段、SVG、PDF 或 PNG。
// Render 返回生成的字节数据以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Format 为输出格式。
type Format string

const (
	FormatHTML Format = "html"
	FormatSVG  Format = "svg"
	FormatPDF  Format = "pdf"
	FormatPNG  Format = "png"
)

// Formats 列出全部支持的格式。
var Formats = []Format{FormatHTML, FormatSVG, FormatPDF, FormatPNG}

// ParseFormat 解析格式名称，空字符串视为 html。
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatHTML, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("不支持的输出格式：%s", s)
}

// ContentType 返回格式对应的 MIME 类型。
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	default:
		return "text/html; charset=utf-8"
	}
}

// Ext 返回文件扩展名（含点）。
func (f Format) Ext() string {
	return "." + string(f)
}
