package scene

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/bidi"

	"github.com/ByLCY/textbox/binding"
	"github.com/ByLCY/textbox/dsl"
	"github.com/ByLCY/textbox/fonts"
	"github.com/ByLCY/textbox/layout"
)

// 该文件把 DSL 文档转换为渲染器可以直接消费的场景。

const (
	defaultFontName = "Body"
	defaultFontSize = 22.0
	defaultWidth    = 384.0
	defaultHeight   = 224.0
)

// Scene 是一张待绘制的画面：表面尺寸、环境状态与若干文本框。
type Scene struct {
	Name       string              `json:"name"`
	Width      float64             `json:"width"`
	Height     float64             `json:"height"`
	Background Color               `json:"background"`
	Direction  layout.Direction    `json:"direction"`
	Align      layout.TextAlign    `json:"align"`
	Fonts      map[string]FontSpec `json:"fonts"`
	Boxes      []TextBox           `json:"boxes"`
}

// FontSpec 描述字体来源与像素字号。
type FontSpec struct {
	Name string  `json:"name"`
	Src  string  `json:"src"`
	Size float64 `json:"size"`
}

// TextBox 是一个已解析好几何与对齐意图的文本框。
type TextBox struct {
	Box       layout.Box       `json:"box"`
	Text      string           `json:"text"`
	HAlign    string           `json:"halign,omitempty"`
	VAlign    string           `json:"valign,omitempty"`
	Direction layout.Direction `json:"direction"`
	Font      string           `json:"font"`
	Color     Color            `json:"color"`
	Fill      *Color           `json:"fill,omitempty"` // 为空表示不填充
}

// Options 返回绘制该文本框时传给 layout.Draw 的对齐意图。
func (tb TextBox) Options() layout.Options {
	return layout.Options{HAlign: tb.HAlign, VAlign: tb.VAlign, Direction: tb.Direction}
}

// Font 按名称查找字体，找不到时回退到 Body 再回退到内置字体。
func (s *Scene) Font(name string) FontSpec {
	if f, ok := s.Fonts[name]; ok {
		return f
	}
	if f, ok := s.Fonts[defaultFontName]; ok {
		return f
	}
	return FontSpec{Name: defaultFontName, Src: fonts.Default, Size: defaultFontSize}
}

// Build 根据 DSL 文档与绑定数据生成场景。
func Build(doc *dsl.Document, data any) (*Scene, error) {
	if doc == nil {
		return nil, fmt.Errorf("场景文档为空")
	}
	sc := &Scene{
		Name:       doc.Name,
		Width:      defaultWidth,
		Height:     defaultHeight,
		Background: Color{255, 255, 255, 255},
		Direction:  layout.LTR,
		Align:      layout.AlignLeft,
		Fonts:      map[string]FontSpec{},
	}

	// 先收集表面与字体，文本框可能引用它们。
	for _, item := range doc.Items {
		switch {
		case item.Surface != nil:
			if err := applySurface(sc, item.Surface); err != nil {
				return nil, err
			}
		case item.Font != nil:
			f, err := parseFont(item.Font)
			if err != nil {
				return nil, err
			}
			sc.Fonts[f.Name] = f
		}
	}
	if _, ok := sc.Fonts[defaultFontName]; !ok {
		sc.Fonts[defaultFontName] = FontSpec{Name: defaultFontName, Src: fonts.Default, Size: defaultFontSize}
	}

	for _, item := range doc.Items {
		if item.Box == nil {
			continue
		}
		tb, err := parseBox(item.Box, sc, data)
		if err != nil {
			return nil, err
		}
		sc.Boxes = append(sc.Boxes, tb)
	}
	return sc, nil
}

func applySurface(sc *Scene, decl *dsl.SurfaceDecl) error {
	w, err := parsePX(decl.Width, defaultWidth)
	if err != nil {
		return fmt.Errorf("%s: surface 宽度: %w", decl.Pos, err)
	}
	h, err := parsePX(decl.Height, defaultHeight)
	if err != nil {
		return fmt.Errorf("%s: surface 高度: %w", decl.Pos, err)
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%s: surface 尺寸必须为正数: %gx%g", decl.Pos, w, h)
	}
	sc.Width, sc.Height = w, h

	if v := decl.Block.Get("background"); v != "" {
		c, err := ParseColor(v)
		if err != nil {
			return fmt.Errorf("%s: %w", decl.Pos, err)
		}
		sc.Background = c
	}
	if v := decl.Block.Get("dir"); v != "" {
		// 表面方向没有可继承的来源，inherit 与 auto 都按 LTR 处理
		if d := ParseDirection(v, ""); d == layout.RTL {
			sc.Direction = layout.RTL
		}
	}
	if v := decl.Block.Get("align"); v != "" {
		sc.Align = layout.ParseTextAlign(v)
	}
	return nil
}

func parseFont(decl *dsl.FontDecl) (FontSpec, error) {
	f := FontSpec{Name: decl.Name, Src: decl.Block.Get("src"), Size: defaultFontSize}
	if f.Src == "" {
		f.Src = fonts.Default
	}
	size, err := parsePX(decl.Block.Get("size"), defaultFontSize)
	if err != nil {
		return FontSpec{}, fmt.Errorf("%s: font %s 字号: %w", decl.Pos, decl.Name, err)
	}
	if size <= 0 {
		return FontSpec{}, fmt.Errorf("%s: font %s 字号必须为正数", decl.Pos, decl.Name)
	}
	f.Size = size
	return f, nil
}

func parseBox(decl *dsl.BoxDecl, sc *Scene, data any) (TextBox, error) {
	var geom [4]float64
	for i, raw := range []string{decl.X, decl.Y, decl.Width, decl.Height} {
		v, err := parsePX(raw, 0)
		if err != nil {
			return TextBox{}, fmt.Errorf("%s: box 几何: %w", decl.Pos, err)
		}
		geom[i] = v
	}
	block := decl.Block

	text := block.Get("text")
	if text == "" {
		text = strings.Join(block.Texts(), "\n")
	}
	text = binding.Interpolate(text, data)

	tb := TextBox{
		Box:    layout.Box{X: geom[0], Y: geom[1], Width: geom[2], Height: geom[3]},
		Text:   text,
		HAlign: block.Get("halign"),
		VAlign: block.Get("valign"),
		Font:   block.Get("font"),
		Color:  Color{0, 0, 0, 255},
	}
	if tb.Font == "" {
		tb.Font = defaultFontName
	}
	if _, ok := sc.Fonts[tb.Font]; !ok {
		return TextBox{}, fmt.Errorf("%s: 未定义的字体 %s", decl.Pos, tb.Font)
	}
	tb.Direction = ParseDirection(block.Get("dir"), text)

	if v := block.Get("color"); v != "" {
		c, err := ParseColor(v)
		if err != nil {
			return TextBox{}, fmt.Errorf("%s: %w", decl.Pos, err)
		}
		tb.Color = c
	}
	if v := block.Get("fill"); v != "" {
		c, err := ParseColor(v)
		if err != nil {
			return TextBox{}, fmt.Errorf("%s: %w", decl.Pos, err)
		}
		tb.Fill = &c
	}
	return tb, nil
}

// ParseDirection 解析 ltr/rtl/auto/inherit。auto 依据 text 中第一个强方向字符判断，
// 没有强方向字符时继承表面方向；无法识别的值视为 inherit。
func ParseDirection(value, text string) layout.Direction {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "ltr":
		return layout.LTR
	case "rtl":
		return layout.RTL
	case "auto":
		return DetectDirection(text)
	default:
		return layout.DirectionInherit
	}
}

// DetectDirection 返回 text 中第一个强方向字符的方向。
func DetectDirection(text string) layout.Direction {
	for len(text) > 0 {
		props, size := bidi.LookupString(text)
		if size == 0 {
			break
		}
		switch props.Class() {
		case bidi.L:
			return layout.LTR
		case bidi.R, bidi.AL:
			return layout.RTL
		}
		text = text[size:]
	}
	return layout.DirectionInherit
}
