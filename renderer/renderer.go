package renderer

import (
	"fmt"

	"github.com/ByLCY/textbox/layout"
	"github.com/ByLCY/textbox/scene"
)

// Renderer 将场景输出为最终文件，例如 PNG、PDF 或 SVG。
type Renderer interface {
	Render(sc *scene.Scene) (*Output, error)
}

// Output 是一次渲染的结果：编码后的字节与每个文本框的排版结果。
type Output struct {
	Data    []byte
	Format  string
	Layouts []layout.Result
}

// Target 是渲染后端提供的绘制表面，在 layout.Surface 之上增加填充与字体切换。
type Target interface {
	layout.Surface
	FillRect(box layout.Box, c scene.Color)
	SetFont(font scene.FontSpec) error
	SetColor(c scene.Color)
}

// DrawScene 依次绘制场景中的文本框。
//
// 每个文本框开始前把表面方向恢复为场景方向，避免上一个文本框的 dir 泄漏到下一个。
func DrawScene(sc *scene.Scene, t Target) ([]layout.Result, error) {
	if sc == nil {
		return nil, fmt.Errorf("场景为空")
	}
	t.FillRect(layout.Box{Width: sc.Width, Height: sc.Height}, sc.Background)
	t.SetTextAlign(sc.Align)

	layouts := make([]layout.Result, 0, len(sc.Boxes))
	for i, tb := range sc.Boxes {
		if tb.Fill != nil {
			t.FillRect(tb.Box, *tb.Fill)
		}
		if err := t.SetFont(sc.Font(tb.Font)); err != nil {
			return nil, fmt.Errorf("文本框 %d: %w", i+1, err)
		}
		t.SetColor(tb.Color)
		t.SetDirection(sc.Direction)

		res, err := layout.Draw(t, tb.Text, tb.Box, tb.Options())
		if err != nil {
			return nil, fmt.Errorf("文本框 %d: %w", i+1, err)
		}
		layouts = append(layouts, res)
	}
	return layouts, nil
}
