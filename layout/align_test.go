package layout

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

var demoBox = Box{X: 64, Y: 48, Width: 256, Height: 128}

func TestResolveHorizontalTable(t *testing.T) {
	cases := []struct {
		intent  string
		current TextAlign
		dir     Direction
		want    Mode
	}{
		{"start", AlignLeft, LTR, Near},
		{"start", AlignLeft, RTL, Far},
		{"end", AlignLeft, LTR, Far},
		{"end", AlignLeft, RTL, Near},
		{"START", AlignLeft, DirectionInherit, Near},
		{"c", AlignLeft, LTR, Center},
		{"Center", AlignLeft, RTL, Center},
		{"r", AlignLeft, LTR, Far},
		{"right", AlignLeft, RTL, Far},
		{"near", AlignRight, LTR, Near},
		{"left", AlignRight, LTR, Near},
		{"justify", AlignCenter, LTR, Near},
		{"", AlignCenter, LTR, Center},
		{"", AlignRight, RTL, Far},
		{"", AlignLeft, RTL, Near},
	}
	for _, c := range cases {
		if got := ResolveHorizontal(c.intent, c.current, c.dir); got != c.want {
			t.Fatalf("ResolveHorizontal(%q, %s, %s) = %s, want %s", c.intent, c.current, c.dir, got, c.want)
		}
	}
}

func TestResolveVerticalTable(t *testing.T) {
	cases := map[string]Mode{
		"":       Near,
		"top":    Near,
		"near":   Near,
		"center": Center,
		"MIDDLE": Center,
		"far":    Far,
		"b":      Far,
		"Bottom": Far,
		"weird":  Near,
	}
	for intent, want := range cases {
		if got := ResolveVertical(intent); got != want {
			t.Fatalf("ResolveVertical(%q) = %s, want %s", intent, got, want)
		}
	}
}

func TestModeTextAlign(t *testing.T) {
	if Near.TextAlign() != AlignLeft || Center.TextAlign() != AlignCenter || Far.TextAlign() != AlignRight {
		t.Fatalf("unexpected draw modes: %s %s %s", Near.TextAlign(), Center.TextAlign(), Far.TextAlign())
	}
}

func TestResolveCenterMiddleScenario(t *testing.T) {
	p := Packed{Lines: []Line{{Text: "hello", Width: 50}}, MaxAscent: 16, MaxDescent: 4}
	res := Resolve(p, demoBox, ResolveHorizontal("center", AlignLeft, LTR), ResolveVertical("middle"))
	if res.Mode != Center || res.Mode.TextAlign() != AlignCenter {
		t.Fatalf("expected centered draw mode, got %s", res.Mode)
	}
	want := Point{X: 192, Y: 118} // 48 + (128-20)/2 + 16
	if got := res.Lines[0].Origin; got != want {
		t.Fatalf("origin mismatch: got=%+v want=%+v", got, want)
	}
}

func TestResolveStartSwapsWithDirection(t *testing.T) {
	p := Packed{Lines: []Line{{Text: "x", Width: 10}}, MaxAscent: 16, MaxDescent: 4}

	rtl := Resolve(p, demoBox, ResolveHorizontal("start", AlignLeft, RTL), Near)
	if rtl.Mode != Far || rtl.Lines[0].Origin.X != demoBox.X+demoBox.Width {
		t.Fatalf("rtl start: expected far anchor at %g, got %s", demoBox.X+demoBox.Width, spew.Sdump(rtl))
	}
	ltr := Resolve(p, demoBox, ResolveHorizontal("start", AlignLeft, LTR), Near)
	if ltr.Mode != Near || ltr.Lines[0].Origin.X != demoBox.X {
		t.Fatalf("ltr start: expected near anchor at %g, got %s", demoBox.X, spew.Sdump(ltr))
	}
}

func TestResolveVerticalStacking(t *testing.T) {
	p := Packed{
		Lines:      []Line{{Text: "a"}, {}, {Text: "c"}, {Text: "d"}},
		MaxAscent:  16,
		MaxDescent: 4,
	}
	res := Resolve(p, demoBox, Near, Near)
	if res.BlockHeight != 80 {
		t.Fatalf("expected block height 80, got %g", res.BlockHeight)
	}
	for i, pl := range res.Lines {
		want := demoBox.Y + 16 + float64(i)*20
		if pl.Origin.Y != want || pl.Origin.X != demoBox.X {
			t.Fatalf("line %d origin mismatch: got=%+v want y=%g", i, pl.Origin, want)
		}
	}
}

func TestResolveFarFar(t *testing.T) {
	p := Packed{Lines: []Line{{Text: "a"}, {Text: "b"}}, MaxAscent: 16, MaxDescent: 4}
	res := Resolve(p, demoBox, Far, Far)
	// 块底与框底对齐：第一条基线 = 48 + 128 - 40 + 16
	if got := res.Lines[0].Origin; got != (Point{X: 320, Y: 152}) {
		t.Fatalf("first origin mismatch: %+v", got)
	}
	if got := res.Lines[1].Origin; got != (Point{X: 320, Y: 172}) {
		t.Fatalf("second origin mismatch: %+v", got)
	}
}

// 文本块高于框时居中会产生负偏移，不做裁剪。
func TestResolveOverflowingBlockCenters(t *testing.T) {
	p := Packed{Lines: make([]Line, 10), MaxAscent: 16, MaxDescent: 4}
	res := Resolve(p, demoBox, Near, Center)
	if got, want := res.Lines[0].Origin.Y, 48+(128.0-200)/2+16; got != want {
		t.Fatalf("expected %g, got %g", want, got)
	}
}

func TestLayoutIsIdempotent(t *testing.T) {
	m := &fixedMeasurer{}
	opts := Options{HAlign: "end", VAlign: "bottom", Direction: RTL}
	text := "lorem ipsum dolor sit amet\nconsectetur"
	a := Layout(text, demoBox, opts, m.measure, AlignLeft, LTR)
	b := Layout(text, demoBox, opts, m.measure, AlignLeft, LTR)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("layout not idempotent:\n%s\n%s", spew.Sdump(a), spew.Sdump(b))
	}
	if a.Mode != Near {
		t.Fatalf("rtl end should resolve to near, got %s", a.Mode)
	}
}

func TestLayoutInheritsSurfaceDirection(t *testing.T) {
	m := &fixedMeasurer{}
	res := Layout("word", demoBox, Options{HAlign: "start"}, m.measure, AlignLeft, RTL)
	if res.Mode != Far {
		t.Fatalf("expected inherited rtl to resolve start to far, got %s", res.Mode)
	}
}

func TestLayoutEmptyText(t *testing.T) {
	m := &fixedMeasurer{}
	res := Layout("", demoBox, Options{HAlign: "center", VAlign: "middle"}, m.measure, AlignLeft, LTR)
	if len(res.Lines) != 0 || len(m.calls) != 0 {
		t.Fatalf("expected empty layout without measurements, got %s", spew.Sdump(res))
	}
}

func TestTextMetricsFallback(t *testing.T) {
	m := TextMetrics{Width: 5, FontAscent: 0, ActualAscent: 12, FontDescent: 3, ActualDescent: 9}
	got := m.Metrics()
	if got != (Metrics{Width: 5, Ascent: 12, Descent: 3}) {
		t.Fatalf("unexpected metrics: %+v", got)
	}
}

func TestTextRoundTrip(t *testing.T) {
	for _, m := range []Mode{Near, Center, Far} {
		b, _ := m.MarshalText()
		var got Mode
		if err := got.UnmarshalText(b); err != nil || got != m {
			t.Fatalf("mode %s round trip gave %s (%v)", m, got, err)
		}
	}
	for _, a := range []TextAlign{AlignLeft, AlignCenter, AlignRight} {
		b, _ := a.MarshalText()
		var got TextAlign
		if err := got.UnmarshalText(b); err != nil || got != a {
			t.Fatalf("align %s round trip gave %s (%v)", a, got, err)
		}
	}
	for _, d := range []Direction{DirectionInherit, LTR, RTL} {
		b, _ := d.MarshalText()
		got := RTL
		if err := got.UnmarshalText(b); err != nil || got != d {
			t.Fatalf("direction %s round trip gave %s (%v)", d, got, err)
		}
	}
}
