package layout

import "strings"

// forcedBreak 标记由换行类字符产生的强制换行，它独占一个 token。
const forcedBreak = "\n"

// Metrics 是一次测量的结果。Width 只属于被测字符串；
// Ascent/Descent 在 Pack 中会被折叠成整段文本的最大值。
type Metrics struct {
	Width   float64 `json:"width"`
	Ascent  float64 `json:"ascent"`
	Descent float64 `json:"descent"`
}

// MeasureFunc 测量字符串在当前字体下的宽度与上升/下降。
type MeasureFunc func(s string) Metrics

// Line 是一行排好的文本。Text 为空表示该行缺省（强制换行产生的空行），
// 它占据高度但不绘制。
type Line struct {
	Text  string  `json:"text"`
	Width float64 `json:"width"`
}

// Blank 报告该行是否为空行。
func (l Line) Blank() bool { return l.Text == "" }

// Packed 是换行结果。MaxAscent/MaxDescent 覆盖所有测量过的字符串，
// 包括被拒绝的试探合并。
type Packed struct {
	Lines      []Line  `json:"lines"`
	MaxAscent  float64 `json:"maxAscent"`
	MaxDescent float64 `json:"maxDescent"`
}

// LineHeight 返回整段共享的行高。
func (p Packed) LineHeight() float64 { return p.MaxAscent + p.MaxDescent }

// BlockHeight 返回整段文本块的高度。
func (p Packed) BlockHeight() float64 { return float64(len(p.Lines)) * p.LineHeight() }

// packer 是贪心换行的折叠状态。
type packer struct {
	width   float64
	measure MeasureFunc
	out     Packed
}

func (p *packer) take(s string) Metrics {
	m := p.measure(s)
	if m.Ascent > p.out.MaxAscent {
		p.out.MaxAscent = m.Ascent
	}
	if m.Descent > p.out.MaxDescent {
		p.out.MaxDescent = m.Descent
	}
	return m
}

func (p *packer) current() *Line { return &p.out.Lines[len(p.out.Lines)-1] }

func (p *packer) word(w string) {
	cur := p.current()
	if cur.Blank() {
		// 独占一行的单词即使超宽也不拆分
		cur.Text = w
		cur.Width = p.take(w).Width
		return
	}
	merged := cur.Text + " " + w
	m := p.take(merged)
	if m.Width <= p.width {
		cur.Text = merged
		cur.Width = m.Width
		return
	}
	p.out.Lines = append(p.out.Lines, Line{Text: w, Width: p.take(w).Width})
}

// Pack 将 text 按 width 贪心折行。
//
// 换行类字符强制换行，连续的空白折叠为一个空格；单词从不被拆开，
// 超宽的单词单独成行并允许溢出。空文本返回空结果且不调用 measure。
//
// 被拒绝的试探合并同样计入最大上升/下降，行高可能因此略大于只测量
// 最终行内容的结果。
func Pack(text string, width float64, measure MeasureFunc) Packed {
	if text == "" {
		return Packed{}
	}
	p := &packer{width: width, measure: measure}
	p.out.Lines = []Line{{}}
	for _, tok := range tokenize(text) {
		switch tok {
		case "":
			// 首尾分隔符产生的空 token 不是单词
		case forcedBreak:
			p.out.Lines = append(p.out.Lines, Line{})
		default:
			p.word(tok)
		}
	}
	return p.out
}

// tokenize 规范化空白与换行后按单个空格切分。
func tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	inSpace := false
	for _, r := range text {
		switch {
		case isNewline(r):
			if !inSpace {
				b.WriteByte(' ')
			}
			b.WriteString(forcedBreak)
			b.WriteByte(' ')
			inSpace = true
		case isBlank(r):
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
		default:
			b.WriteRune(r)
			inSpace = false
		}
	}
	return strings.Split(b.String(), " ")
}

func isNewline(r rune) bool {
	switch r {
	case '\f', '\n', '\r', '\v', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

func isBlank(r rune) bool {
	switch {
	case r == ' ', r == '\t', r == '\u00a0', r == '\u1680':
		return true
	case r >= '\u2000' && r <= '\u200a':
		return true
	case r == '\u202f', r == '\u205f', r == '\u3000', r == '\ufeff':
		return true
	}
	return false
}
