package layout

import "strings"

// Mode 是与书写方向无关的对齐位置。
type Mode int

const (
	Near Mode = iota
	Center
	Far
)

func (m Mode) String() string {
	switch m {
	case Center:
		return "center"
	case Far:
		return "far"
	default:
		return "near"
	}
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText 使用与垂直对齐相同的关键字表。
func (m *Mode) UnmarshalText(b []byte) error {
	*m = ResolveVertical(string(b))
	return nil
}

// TextAlign 返回与该锚点配套的表面对齐模式。
func (m Mode) TextAlign() TextAlign {
	switch m {
	case Center:
		return AlignCenter
	case Far:
		return AlignRight
	default:
		return AlignLeft
	}
}

// Box 是文本框的几何区域，Y 轴向下。
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point 是一行的基线原点。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Placement 把一行与它的基线原点配对。
type Placement struct {
	Line   Line  `json:"line"`
	Origin Point `json:"origin"`
}

// Result 是一次排版的完整结果。
type Result struct {
	Mode        Mode        `json:"mode"`
	Lines       []Placement `json:"lines"`
	LineHeight  float64     `json:"lineHeight"`
	MaxAscent   float64     `json:"maxAscent"`
	MaxDescent  float64     `json:"maxDescent"`
	BlockHeight float64     `json:"blockHeight"`
}

// Options 是 Layout/Draw 的对齐意图。
type Options struct {
	HAlign    string    // near/start/end/center/c/right/r，空值沿用表面当前对齐
	VAlign    string    // near/center/middle/far/b/bottom，空值为 near
	Direction Direction // DirectionInherit 沿用表面方向
}

func normalizeKeyword(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// ResolveHorizontal 将水平对齐意图解析为锚点位置。
// intent 为空时使用 current 的名称（left/center/right）走同一张表；
// start/end 依据 dir 解析，DirectionInherit 视为 LTR。
func ResolveHorizontal(intent string, current TextAlign, dir Direction) Mode {
	key := normalizeKeyword(intent)
	if key == "" {
		key = current.String()
	}
	switch key {
	case "start":
		if dir == RTL {
			return Far
		}
		return Near
	case "end":
		if dir == RTL {
			return Near
		}
		return Far
	case "c", "center":
		return Center
	case "r", "right":
		return Far
	default:
		return Near
	}
}

// ResolveVertical 将垂直对齐意图解析为锚点位置，默认 Near。
func ResolveVertical(intent string) Mode {
	switch normalizeKeyword(intent) {
	case "center", "middle":
		return Center
	case "far", "b", "bottom":
		return Far
	default:
		return Near
	}
}

// Resolve 计算每一行的基线原点。
//
// 所有行共用一个块偏移：x 对每行都相同，由绘制模式决定表面如何
// 相对行宽解释 x；第一条基线位于块顶加 MaxAscent，之后每行下移 LineHeight。
func Resolve(p Packed, box Box, h, v Mode) Result {
	lineHeight := p.LineHeight()
	blockHeight := p.BlockHeight()

	x := box.X
	switch h {
	case Center:
		x += box.Width / 2
	case Far:
		x += box.Width
	}

	y := box.Y
	switch v {
	case Center:
		y += (box.Height - blockHeight) / 2
	case Far:
		y += box.Height - blockHeight
	}
	y += p.MaxAscent

	res := Result{
		Mode:        h,
		Lines:       make([]Placement, 0, len(p.Lines)),
		LineHeight:  lineHeight,
		MaxAscent:   p.MaxAscent,
		MaxDescent:  p.MaxDescent,
		BlockHeight: blockHeight,
	}
	for _, line := range p.Lines {
		res.Lines = append(res.Lines, Placement{Line: line, Origin: Point{X: x, Y: y}})
		y += lineHeight
	}
	return res
}

// Layout 依次执行换行与对齐，是不接触绘制表面的纯函数。
// current/surfaceDir 是表面的当前对齐与方向，仅用作默认值。
func Layout(text string, box Box, opts Options, measure MeasureFunc, current TextAlign, surfaceDir Direction) Result {
	dir := opts.Direction
	if dir == DirectionInherit {
		dir = surfaceDir
	}
	packed := Pack(text, box.Width, measure)
	return Resolve(packed, box, ResolveHorizontal(opts.HAlign, current, dir), ResolveVertical(opts.VAlign))
}
