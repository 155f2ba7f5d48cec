package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	sceneLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		// # 注释需以空白或另一个 # 开头，避免与 #abc 这类颜色混淆
		{Name: "HashComment", Pattern: `#(?:[ \t#][^\n]*)?`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+|\.\d+)(?:px|pt|mm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[:;]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(sceneLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document is the root of a .textbox scene file.
type Document struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"Newline* 'scene' @Ident"`
	Items []*Item        `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Item is one top-level declaration.
type Item struct {
	Surface *SurfaceDecl `parser:"  @@"`
	Font    *FontDecl    `parser:"| @@"`
	Box     *BoxDecl     `parser:"| @@"`
}

// SurfaceDecl sets the drawing surface size and its ambient state
// (background, dir, align).
type SurfaceDecl struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Width  string         `parser:"'surface' @Number"`
	Height string         `parser:"@Number"`
	Block  *Block         `parser:"@@?"`
}

// FontDecl names a font source and size.
type FontDecl struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"'font' @Ident"`
	Block *Block         `parser:"@@"`
}

// BoxDecl places a text box at x y width height.
type BoxDecl struct {
	Pos    lexer.Position `parser:"" json:"-"`
	X      string         `parser:"'box' @Number"`
	Y      string         `parser:"@Number"`
	Width  string         `parser:"@Number"`
	Height string         `parser:"@Number"`
	Block  *Block         `parser:"@@"`
}

// Block is a braced list of statements separated by newlines or ';'.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement is either a property or a bare string (box text shorthand).
type Statement struct {
	Property *Property      `parser:"  @@"`
	Text     *StringLiteral `parser:"| @String"`
}

// Property uses colon syntax (key: value).
type Property struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident ':'"`
	Value *Value         `parser:"Newline* @@"`
}

// Value is a scalar property value.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Ident  *string        `parser:"| @Ident"`
}

// Text returns the value as written, strings unquoted.
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Color != nil:
		return *v.Color
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// Lookup returns the last property named key (case-insensitive).
func (b *Block) Lookup(key string) (*Property, bool) {
	if b == nil {
		return nil, false
	}
	var found *Property
	for _, st := range b.Statements {
		if st.Property != nil && strings.EqualFold(st.Property.Key, key) {
			found = st.Property
		}
	}
	return found, found != nil
}

// Get returns the text of property key, or "".
func (b *Block) Get(key string) string {
	if p, ok := b.Lookup(key); ok {
		return p.Value.Text()
	}
	return ""
}

// Texts returns the bare string statements in order.
func (b *Block) Texts() []string {
	if b == nil {
		return nil
	}
	var out []string
	for _, st := range b.Statements {
		if st.Text != nil {
			out = append(out, string(*st.Text))
		}
	}
	return out
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

// Parse parses a scene from r.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses a scene from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
