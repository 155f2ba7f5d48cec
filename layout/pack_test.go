package layout

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
)

// fixedMeasurer 是测试用的等宽测量：每个字符 10 单位宽，上升 16、下降 4。
type fixedMeasurer struct {
	calls []string
}

func (m *fixedMeasurer) measure(s string) Metrics {
	m.calls = append(m.calls, s)
	return Metrics{Width: float64(utf8.RuneCountInString(s)) * 10, Ascent: 16, Descent: 4}
}

func lineTexts(p Packed) []string {
	out := make([]string, 0, len(p.Lines))
	for _, ln := range p.Lines {
		out = append(out, ln.Text)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPackEmptyTextIsNoop(t *testing.T) {
	m := &fixedMeasurer{}
	p := Pack("", 100, m.measure)
	if len(p.Lines) != 0 {
		t.Fatalf("expected no lines, got %s", spew.Sdump(p))
	}
	if len(m.calls) != 0 {
		t.Fatalf("expected no measurement calls, got %v", m.calls)
	}
	if p.LineHeight() != 0 || p.BlockHeight() != 0 {
		t.Fatalf("expected zero heights, got %g/%g", p.LineHeight(), p.BlockHeight())
	}
}

func TestPackGreedyWrap(t *testing.T) {
	m := &fixedMeasurer{}
	// "aaa bbb" 宽 70 可以放下；再加 " cc" 为 100 > 90
	p := Pack("aaa bbb cc dddd", 90, m.measure)
	want := []string{"aaa bbb", "cc dddd"}
	if got := lineTexts(p); !equalStrings(got, want) {
		t.Fatalf("lines mismatch: got=%q want=%q", got, want)
	}
	if p.Lines[0].Width != 70 || p.Lines[1].Width != 70 {
		t.Fatalf("unexpected widths: %s", spew.Sdump(p.Lines))
	}
	if p.LineHeight() != 20 {
		t.Fatalf("expected line height 20, got %g", p.LineHeight())
	}
}

func TestPackMeasuresRejectedMerges(t *testing.T) {
	m := &fixedMeasurer{}
	Pack("aaa bbb cc", 70, m.measure)
	want := []string{"aaa", "aaa bbb", "aaa bbb cc", "cc"}
	if !equalStrings(m.calls, want) {
		t.Fatalf("measurement calls mismatch: got=%q want=%q", m.calls, want)
	}
}

// 被拒绝的试探合并也会抬高行高。
func TestPackRejectedMergeRaisesAscent(t *testing.T) {
	measure := func(s string) Metrics {
		n := float64(len(s))
		return Metrics{Width: n * 10, Ascent: n, Descent: 1}
	}
	p := Pack("aa bbbbbbbb", 50, measure)
	if got := lineTexts(p); !equalStrings(got, []string{"aa", "bbbbbbbb"}) {
		t.Fatalf("lines mismatch: %q", got)
	}
	// "aa bbbbbbbb" 长 11，被拒绝但仍计入最大上升
	if p.MaxAscent != 11 {
		t.Fatalf("expected max ascent 11 from rejected merge, got %g", p.MaxAscent)
	}
}

func TestPackOverlongWordStaysWhole(t *testing.T) {
	m := &fixedMeasurer{}
	p := Pack("hi supercalifragilistic yo", 50, m.measure)
	want := []string{"hi", "supercalifragilistic", "yo"}
	if got := lineTexts(p); !equalStrings(got, want) {
		t.Fatalf("lines mismatch: got=%q want=%q", got, want)
	}
	if p.Lines[1].Width <= 50 {
		t.Fatalf("expected overflowing width, got %g", p.Lines[1].Width)
	}
}

func TestPackForcedBreaks(t *testing.T) {
	m := &fixedMeasurer{}
	p := Pack("foo\n\nbar\n", 1000, m.measure)
	want := []string{"foo", "", "bar", ""}
	if got := lineTexts(p); !equalStrings(got, want) {
		t.Fatalf("lines mismatch: got=%q want=%q", got, want)
	}
	if !p.Lines[1].Blank() || !p.Lines[3].Blank() {
		t.Fatalf("expected blank lines at 1 and 3: %s", spew.Sdump(p.Lines))
	}
	if p.BlockHeight() != 4*20 {
		t.Fatalf("expected block height 80, got %g", p.BlockHeight())
	}
}

func TestPackForcedBreakIgnoresSurroundingSpaces(t *testing.T) {
	m := &fixedMeasurer{}
	for _, text := range []string{"a\nb", "a \n b", "a\t\n b", "a\r\nb"} {
		p := Pack(text, 1000, m.measure)
		if len(p.Lines) < 2 || p.Lines[0].Text != "a" || p.Lines[len(p.Lines)-1].Text != "b" {
			t.Fatalf("text %q: expected a break between a and b, got %q", text, lineTexts(p))
		}
	}
}

func TestPackNewlineClass(t *testing.T) {
	m := &fixedMeasurer{}
	for _, sep := range []string{"\f", "\n", "\r", "\v", "\u0085", "\u2028", "\u2029"} {
		p := Pack("x"+sep+"y", 1000, m.measure)
		if got := lineTexts(p); !equalStrings(got, []string{"x", "y"}) {
			t.Fatalf("separator %U: got %q", []rune(sep)[0], got)
		}
	}
}

func TestPackCollapsesUnicodeSpaces(t *testing.T) {
	m := &fixedMeasurer{}
	text := "one\u00a0 two\u2003three\u202f\u3000four\ufeff\tfive"
	p := Pack(text, 1000, m.measure)
	if got := lineTexts(p); !equalStrings(got, []string{"one two three four five"}) {
		t.Fatalf("unexpected collapse: %q", got)
	}
}

func TestPackWhitespaceOnly(t *testing.T) {
	m := &fixedMeasurer{}
	p := Pack("   \t ", 100, m.measure)
	if len(p.Lines) != 1 || !p.Lines[0].Blank() {
		t.Fatalf("expected a single blank line, got %s", spew.Sdump(p))
	}
	if len(m.calls) != 0 {
		t.Fatalf("expected no measurement for whitespace, got %q", m.calls)
	}
}

// 单词不被拆开，且行内单词顺序与输入一致。
func TestPackWordAtomicityAndOrder(t *testing.T) {
	m := &fixedMeasurer{}
	text := "the quick brown fox jumps over the lazy dog\nand keeps   running far away"
	for _, width := range []float64{0, 30, 55, 80, 120, 1000} {
		p := Pack(text, width, m.measure)
		var words []string
		for _, ln := range p.Lines {
			if ln.Blank() {
				continue
			}
			parts := strings.Split(ln.Text, " ")
			if len(parts) >= 2 && ln.Width > width {
				t.Fatalf("width %g: multi-word line %q exceeds limit (%g)", width, ln.Text, ln.Width)
			}
			words = append(words, parts...)
		}
		if want := strings.Fields(text); !equalStrings(words, want) {
			t.Fatalf("width %g: words reordered or split:\n got=%q\nwant=%q", width, words, want)
		}
	}
}
