package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/sigstudio/layout"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)(?:px|pt|mm)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][,;:]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document 是预设文件的根节点：presets <version> { layout ... }。
type Document struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Version string         `parser:"Newline* 'presets' @Ident"`
	Layouts []*LayoutDecl  `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// LayoutDecl 声明一个命名布局。名称可以是标识符或带引号的字符串。
type LayoutDecl struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  Name           `parser:"'layout' @(Ident | String)"`
	Block *Block         `parser:"@@"`
}

// Block is a delimited list of assignments.
type Block struct {
	Assignments []*Assignment `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value *Value         `parser:"':' @@"`
}

// Value represents property values.
type Value struct {
	Pos    lexer.Position `parser:"" json:"-"`
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Ident  *string        `parser:"| @Ident"`
	Array  *ArrayValue    `parser:"| @@"`
}

// ArrayValue captures `[ ... ]` expressions.
type ArrayValue struct {
	Values []*Value `parser:"'[' Newline* ( @@ Newline* ( ',' Newline* @@ Newline* )* )? ']'"`
}

// Kind 返回取值的类别，用于错误信息。
func (v *Value) Kind() string {
	switch {
	case v == nil:
		return "empty"
	case v.String != nil:
		return "string"
	case v.Number != nil:
		return "number"
	case v.Color != nil:
		return "color"
	case v.Ident != nil:
		return "ident"
	case v.Array != nil:
		return "array"
	default:
		return "empty"
	}
}

// Float 解析数字取值并换算为 px。允许 px、pt、mm 后缀，无单位视为 px。
func (v *Value) Float() (float64, bool) {
	if v == nil || v.Number == nil {
		return 0, false
	}
	l, ok := layout.ParseRawLengthStr(*v.Number)
	if !ok {
		return 0, false
	}
	return l.ToPX(), true
}

// Text 返回字符串、标识符或颜色取值的文本。
func (v *Value) Text() (string, bool) {
	switch {
	case v == nil:
		return "", false
	case v.String != nil:
		return string(*v.String), true
	case v.Ident != nil:
		return *v.Ident, true
	case v.Color != nil:
		return *v.Color, true
	}
	return "", false
}

// Bool 解析 true/false 标识符。
func (v *Value) Bool() (bool, bool) {
	if v == nil || v.Ident == nil {
		return false, false
	}
	switch *v.Ident {
	case "true", "yes", "on":
		return true, true
	case "false", "no", "off":
		return false, true
	}
	return false, false
}

// Name 为布局名称，带引号时自动去引号。
type Name string

// Capture implements participle.Capture.
func (n *Name) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("layout name capture requires value")
	}
	raw := values[0]
	if strings.HasPrefix(raw, `"`) {
		val, err := strconv.Unquote(raw)
		if err != nil {
			return err
		}
		raw = val
	}
	*n = Name(raw)
	return nil
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses preset content from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses preset content from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

// ParseNamed 与 Parse 相同，但错误与位置信息中带上文件名。
func ParseNamed(filename string, r io.Reader) (*Document, error) {
	return documentParser.Parse(filename, r)
}
