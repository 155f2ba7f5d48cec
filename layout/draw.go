package layout

import "fmt"

// Draw 在 box 内排版 text 并通过 s 逐行绘制。
//
// 空文本是空操作：不测量、不修改表面。否则先按 opts.Direction 设置表面方向，
// 再把表面对齐切换到解析出的绘制模式，绘制完毕（包括绘制失败）后恢复原对齐。
// 空行占据高度但不产生绘制调用。
func Draw(s Surface, text string, box Box, opts Options) (Result, error) {
	if text == "" {
		return Result{}, nil
	}
	if opts.Direction != DirectionInherit {
		s.SetDirection(opts.Direction)
	}

	saved := s.TextAlign()
	measure := func(str string) Metrics { return s.MeasureText(str).Metrics() }
	res := Layout(text, box, opts, measure, saved, s.Direction())

	Logger().Debug("textbox laid out",
		"lines", len(res.Lines),
		"lineHeight", res.LineHeight,
		"mode", res.Mode.String(),
	)

	s.SetTextAlign(res.Mode.TextAlign())
	defer s.SetTextAlign(saved)

	for i, pl := range res.Lines {
		if pl.Line.Blank() {
			continue
		}
		if err := s.DrawStringAt(pl.Line.Text, pl.Origin.X, pl.Origin.Y); err != nil {
			return res, fmt.Errorf("layout: 绘制第 %d 行失败: %w", i+1, err)
		}
	}
	return res, nil
}
