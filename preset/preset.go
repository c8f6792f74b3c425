package preset

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/sigstudio/dsl"
	"github.com/ByLCY/sigstudio/signature"
)

// Version 为当前支持的预设文件版本。
const Version = "v1"

// IDPrefix 为预设布局 ID 的前缀，与用户保存的布局区分。
const IDPrefix = "preset:"

// Error 为带源码位置的解码错误。
type Error struct {
	Pos lexer.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func errorf(pos lexer.Position, format string, args ...any) error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Load 解析并解码预设文件。
func Load(filename string, r io.Reader) ([]signature.Layout, error) {
	doc, err := dsl.ParseNamed(filename, r)
	if err != nil {
		return nil, fmt.Errorf("解析预设文件失败: %w", err)
	}
	return Decode(doc)
}

// Decode 把语法树转换为布局列表。每个布局以默认样式为底，未出现的键保持默认值。
func Decode(doc *dsl.Document) ([]signature.Layout, error) {
	if doc == nil {
		return nil, fmt.Errorf("预设文档为空")
	}
	if doc.Version != Version {
		return nil, errorf(doc.Pos, "不支持的预设版本 %s（需要 %s）", doc.Version, Version)
	}
	seen := make(map[string]bool, len(doc.Layouts))
	out := make([]signature.Layout, 0, len(doc.Layouts))
	for _, decl := range doc.Layouts {
		name := strings.TrimSpace(string(decl.Name))
		if name == "" {
			return nil, errorf(decl.Pos, "布局名称不能为空")
		}
		key := strings.ToLower(name)
		if seen[key] {
			return nil, errorf(decl.Pos, "布局 %s 重复定义", name)
		}
		seen[key] = true

		l := signature.Layout{ID: IDPrefix + key, Name: name, Style: signature.DefaultStyle()}
		for _, a := range decl.Block.Assignments {
			f, ok := fieldIndex[a.Key]
			if !ok {
				return nil, errorf(a.Pos, "未知属性 %s", a.Key)
			}
			if err := f.decode(&l.Style, a.Value); err != nil {
				return nil, errorf(a.Pos, "%s: %v", a.Key, err)
			}
		}
		out = append(out, l)
	}
	return out, nil
}

// Encode 以预设语法写出布局，输出可被 Decode 读回。
func Encode(w io.Writer, layouts []signature.Layout) error {
	var b strings.Builder
	b.WriteString("presets " + Version + " {\n")
	for i, l := range layouts {
		if i > 0 {
			b.WriteString("\n")
		}
		style := l.Style.Normalized()
		b.WriteString("  layout " + quoteUnless(l.Name, isIdent) + " {\n")
		for _, f := range fields {
			if f.alias {
				continue
			}
			b.WriteString("    " + f.key + ": " + f.encode(&style) + "\n")
		}
		b.WriteString("  }\n")
	}
	b.WriteString("}\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("写出预设失败: %w", err)
	}
	return nil
}

//go:embed builtin.sigl
var builtinSource string

var builtin = mustLoadBuiltin()

func mustLoadBuiltin() []signature.Layout {
	layouts, err := Load("builtin.sigl", strings.NewReader(builtinSource))
	if err != nil {
		panic(fmt.Sprintf("内置预设无效: %v", err))
	}
	return layouts
}

// Builtin 返回内置预设（modern、classic、minimal）的副本。
func Builtin() []signature.Layout {
	out := make([]signature.Layout, len(builtin))
	copy(out, builtin)
	return out
}

// Lookup 按名称（不区分大小写）或 ID 查找内置预设。
func Lookup(name string) (signature.Layout, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, l := range builtin {
		if strings.ToLower(l.Name) == key || l.ID == key {
			return l, true
		}
	}
	return signature.Layout{}, false
}

// Names 返回内置预设名称。
func Names() []string {
	names := make([]string, 0, len(builtin))
	for _, l := range builtin {
		names = append(names, l.Name)
	}
	return names
}
