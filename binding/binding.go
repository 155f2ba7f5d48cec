package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var placeholder = regexp.MustCompile(`\$\{([^}]*)\}`)

// Interpolate 将文本中的 ${path} 替换为 data 中对应的值。
// path 形如 user.name 或 items[0].title；可用 ${path|默认值} 指定缺失时的替代文本。
// 路径不存在且没有默认值时保留原占位符。
func Interpolate(text string, data any) string {
	if !strings.Contains(text, "${") {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		expr := match[2 : len(match)-1]
		path, fallback, hasFallback := strings.Cut(expr, "|")
		path = strings.TrimSpace(path)
		if v, ok := Lookup(data, path); ok && v != nil {
			return format(v)
		}
		if hasFallback {
			return fallback
		}
		return match
	})
}

// Lookup 按路径在 JSON 解码后的数据（map[string]any / []any）中取值。
func Lookup(data any, path string) (any, bool) {
	if data == nil || path == "" {
		return nil, false
	}
	cur := data
	for _, step := range splitPath(path) {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[step]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			idx, err := strconv.Atoi(step)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

// splitPath 把 a.b[0].c 拆成 [a b 0 c]。
func splitPath(path string) []string {
	fields := strings.FieldsFunc(path, func(r rune) bool {
		return r == '.' || r == '[' || r == ']'
	})
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// JSON 数字解码为 float64，整数值去掉小数部分。
func format(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
