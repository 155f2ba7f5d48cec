package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Default 是未指定字体时使用的内置字体。
const Default = "builtin:goregular"

var builtin = map[string][]byte{
	"goregular":    goregular.TTF,
	"gobold":       gobold.TTF,
	"goitalic":     goitalic.TTF,
	"gobolditalic": gobolditalic.TTF,
	"gomedium":     gomedium.TTF,
	"gomono":       gomono.TTF,
	"gomonobold":   gomonobold.TTF,
}

// 通用字体族名映射到内置字体。
var generic = map[string]string{
	"sans-serif": "goregular",
	"sans":       "goregular",
	"serif":      "goregular",
	"monospace":  "gomono",
	"mono":       "gomono",
}

// Builtin 返回所有内置字体名，按字母排序。
func Builtin() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load 返回字体数据。src 可写为 "builtin:goregular"、通用族名（sans-serif/monospace）
// 或字体文件路径；相对路径基于 baseDir 解析，baseDir 为空时拒绝相对路径。
func Load(src, baseDir string) ([]byte, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		src = Default
	}
	if name, ok := generic[strings.ToLower(src)]; ok {
		return builtin[name], nil
	}
	if strings.HasPrefix(src, "builtin:") || strings.HasPrefix(src, "built-in:") {
		name := strings.TrimPrefix(strings.TrimPrefix(src, "builtin:"), "built-in:")
		if data, ok := builtin[strings.ToLower(name)]; ok {
			return data, nil
		}
		return nil, fmt.Errorf("找不到内置字体 %s（可用：%s）", name, strings.Join(Builtin(), ", "))
	}
	path := src
	if !filepath.IsAbs(path) {
		if baseDir == "" {
			return nil, fmt.Errorf("未指定资源目录时不允许使用相对字体路径：%s（请改用 builtin:）", src)
		}
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}
