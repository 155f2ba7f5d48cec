package scene

import "github.com/ByLCY/textbox/layout"

// DemoText 是演示页面的默认文本。
const DemoText = "The quick brown fox jumps over the lazy dog.\nPack my box with five dozen liquor jugs."

// Demo 返回演示页面：384x224 的表面上，(64,48) 处一个 256x128 的白色文本框，
// 22px 无衬线字体、红色文字。rtl 为 true 时表面方向为 RTL。
func Demo(text, hAlign, vAlign string, rtl bool) *Scene {
	dir := layout.LTR
	if rtl {
		dir = layout.RTL
	}
	white := Color{255, 255, 255, 255}
	return &Scene{
		Name:       "demo",
		Width:      defaultWidth,
		Height:     defaultHeight,
		Background: Color{221, 221, 221, 255},
		Direction:  dir,
		Align:      layout.AlignLeft,
		Fonts: map[string]FontSpec{
			defaultFontName: {Name: defaultFontName, Src: "sans-serif", Size: defaultFontSize},
		},
		Boxes: []TextBox{{
			Box:    layout.Box{X: 64, Y: 48, Width: 256, Height: 128},
			Text:   text,
			HAlign: hAlign,
			VAlign: vAlign,
			Font:   defaultFontName,
			Color:  Color{255, 0, 0, 255},
			Fill:   &white,
		}},
	}
}
