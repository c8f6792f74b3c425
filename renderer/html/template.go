package htmlrenderer

// 邮件客户端只可靠支持嵌套 table 与内联样式，模板据此输出。
const signatureTemplate = `
{{- define "signature" -}}
<div id="signature-container" style="{{.Style}}">
<table border="0" cellpadding="0" cellspacing="0" style="{{.TableStyle}}">
{{- if .Vertical}}
{{- range .Cells}}<tr>{{template "cell" .}}</tr>{{end}}
{{- else}}
<tr>{{range .Cells}}{{template "cell" .}}{{end}}</tr>
{{- end}}
</table>
</div>
{{- end}}

{{- define "cell" -}}
<td{{with .Align}} align="{{.}}"{{end}}{{with .VAlign}} valign="{{.}}"{{end}}{{with .Style}} style="{{.}}"{{end}}>
{{- if .Logo}}{{template "logo" .Logo}}
{{- else if .Divider}}{{template "divider" .Divider}}
{{- else if .Content}}{{template "content" .Content}}
{{- end -}}
</td>
{{- end}}

{{- define "logo" -}}
<div style="{{.ContainerStyle}}">
{{- if .Image}}<img src="{{.Image.Src}}" alt="Logo" width="{{.Image.Width}}" style="{{.Image.Style}}">
{{- else}}<div style="{{.PlaceholderStyle}}">LOGO</div>
{{- end -}}
</div>
{{- with .Footer}}{{$sep := .SeparatorStyle}}<div style="{{.Style}}">
{{- range .Items}}{{if .Separator}}<span style="{{$sep}}">-</span>{{else}}<span style="white-space:nowrap">{{.Text}}</span>{{end}}{{end -}}
</div>{{end}}
{{- end}}

{{- define "divider" -}}
<div style="{{.Style}}"></div>
{{- end}}

{{- define "content" -}}
{{- range .Sections -}}
<table border="0" cellpadding="0" cellspacing="0" style="{{.TableStyle}}"><tr><td{{with .Align}} align="{{.}}"{{end}}{{with .Style}} style="{{.}}"{{end}}>
{{- if .Name}}{{template "name" .Name}}{{end}}
{{- if .Contact}}{{template "contact" .Contact}}{{end}}
{{- if .Website}}{{template "website" .Website}}{{end -}}
</td></tr></table>
{{- end -}}
{{- end}}

{{- define "name" -}}
{{- range .Lines}}<div style="{{.Style}}">{{.Text}}</div>{{end -}}
{{- end}}

{{- define "contact" -}}
<table border="0" cellpadding="0" cellspacing="0" style="{{.TableStyle}}">
{{- range .Rows}}<tr><td valign="{{.VAlign}}" style="{{.IconStyle}}">{{.Icon}}</td><td valign="{{.VAlign}}" style="{{.CellStyle}}">
{{- if .Link}}<a href="{{.Link}}" style="{{.TextStyle}}">{{index .Lines 0}}</a>
{{- else}}<span style="{{.TextStyle}}">{{range $i, $l := .Lines}}{{if $i}}<br>{{end}}{{$l}}{{end}}</span>
{{- end -}}
</td></tr>{{end -}}
</table>
{{- end}}

{{- define "website" -}}
{{- with .Site}}<a href="{{.Link}}" target="_blank" rel="noopener noreferrer" style="{{.Style}}">{{.Text}}</a>{{end}}
{{- if .Social}}<table border="0" cellpadding="0" cellspacing="0" style="{{.SocialStyle}}"><tr>
{{- range .Social}}<td style="{{.Style}}"><a href="{{.Link}}">{{.Icon}}</a></td>{{end -}}
</tr></table>{{end}}
{{- end}}
`
