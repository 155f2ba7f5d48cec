package layout

import "math"

// 该文件定义核心排版与外部绘制表面之间的约定。

// TextAlign 是绘制表面当前的文本对齐模式，决定 DrawStringAt 如何解释 x。
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

func (a TextAlign) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

func (a TextAlign) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *TextAlign) UnmarshalText(b []byte) error {
	*a = ParseTextAlign(string(b))
	return nil
}

// ParseTextAlign 解析 left/center/right，无法识别时返回 AlignLeft。
func ParseTextAlign(s string) TextAlign {
	switch normalizeKeyword(s) {
	case "c", "center":
		return AlignCenter
	case "r", "right":
		return AlignRight
	default:
		return AlignLeft
	}
}

// Direction 描述文本的书写方向，仅影响 start/end 的解析。
type Direction int

const (
	DirectionInherit Direction = iota // 沿用绘制表面的当前方向
	LTR
	RTL
)

func (d Direction) String() string {
	switch d {
	case LTR:
		return "ltr"
	case RTL:
		return "rtl"
	default:
		return "inherit"
	}
}

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText 接受 ltr/rtl，其余值视为 inherit。
func (d *Direction) UnmarshalText(b []byte) error {
	switch normalizeKeyword(string(b)) {
	case "ltr":
		*d = LTR
	case "rtl":
		*d = RTL
	default:
		*d = DirectionInherit
	}
	return nil
}

// TextMetrics 是绘制表面对单个字符串的测量结果。
// 表面可以只提供其中一组上升/下降值：Font* 为首选，Actual* 为后备。
type TextMetrics struct {
	Width         float64
	FontAscent    float64
	ActualAscent  float64
	FontDescent   float64
	ActualDescent float64
}

// Metrics 选出首选或后备的上升/下降值。
func (m TextMetrics) Metrics() Metrics {
	return Metrics{
		Width:   m.Width,
		Ascent:  firstPresent(m.FontAscent, m.ActualAscent),
		Descent: firstPresent(m.FontDescent, m.ActualDescent),
	}
}

func firstPresent(primary, fallback float64) float64 {
	if primary == 0 || math.IsNaN(primary) {
		return fallback
	}
	return primary
}

// Surface 是只能绘制单行文本的底层绘制表面。
//
// DrawStringAt 以 (x, y) 作为基线原点绘制一行，并按当前 TextAlign
// 相对于字符串自身宽度解释 x。
type Surface interface {
	MeasureText(s string) TextMetrics
	DrawStringAt(s string, x, y float64) error
	TextAlign() TextAlign
	SetTextAlign(TextAlign)
	Direction() Direction
	SetDirection(Direction)
}
