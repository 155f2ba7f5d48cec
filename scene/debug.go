package scene

import (
	"encoding/json"
	"os"

	"github.com/ByLCY/textbox/layout"
)

// DebugReport 将场景与每个文本框的排版结果放在一起，便于调试或可视化。
type DebugReport struct {
	Scene   *Scene          `json:"scene"`
	Layouts []layout.Result `json:"layouts"`
}

// WriteDebugJSON 将排版结果输出为 JSON。
func WriteDebugJSON(sc *Scene, layouts []layout.Result, path string) error {
	if sc == nil {
		return nil
	}
	data, err := json.MarshalIndent(DebugReport{Scene: sc, Layouts: layouts}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
