package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// 场景中的长度统一换算为像素（96 dpi）。

// Unit 记录长度在场景文件中书写时的单位。
type Unit int

const (
	UnitPX Unit = iota // 像素，未写单位时的默认值
	UnitPT             // 点
	UnitMM             // 毫米
	UnitIN             // 英寸
)

// Conversion constants to pixels.
const (
	PxPerIn = 96.0
	PxPerPt = PxPerIn / 72.0
	PxPerMm = PxPerIn / 25.4
)

func (u Unit) String() string {
	switch u {
	case UnitPT:
		return "pt"
	case UnitMM:
		return "mm"
	case UnitIN:
		return "in"
	default:
		return "px"
	}
}

// Length 保留数值与原始单位。
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// PX 返回以像素表示的长度。
func (l Length) PX() float64 {
	switch l.Unit {
	case UnitPT:
		return l.Value * PxPerPt
	case UnitMM:
		return l.Value * PxPerMm
	case UnitIN:
		return l.Value * PxPerIn
	default:
		return l.Value
	}
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit.String()
}

// ParseLength 解析 "12"、"12px"、"9pt"、"10mm"、"1.5in"。
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("长度为空")
	}
	unit := UnitPX
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"pt", UnitPT}, {"mm", UnitMM}, {"in", UnitIN}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			v = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Length{}, fmt.Errorf("长度 %q 无法解析: %w", value, err)
	}
	return Length{Value: f, Unit: unit}, nil
}

// parsePX 解析长度并换算为像素，value 为空时返回 def。
func parsePX(value string, def float64) (float64, error) {
	if strings.TrimSpace(value) == "" {
		return def, nil
	}
	l, err := ParseLength(value)
	if err != nil {
		return 0, err
	}
	return l.PX(), nil
}
