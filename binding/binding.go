package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 占位符可以写成 ${path|默认值}：路径不存在或值为空白时使用默认值。
// 没有默认值且路径不存在时保留原占位符。
func Interpolate(text string, data any) string {
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		path, fallback, hasFallback := strings.Cut(groups[1], "|")
		path = strings.TrimSpace(path)
		if path == "" {
			return match
		}
		if val, ok := resolvePath(data, path); ok {
			if s := fmt.Sprint(val); strings.TrimSpace(s) != "" || !hasFallback {
				return s
			}
		}
		if hasFallback {
			return strings.TrimSpace(fallback)
		}
		return match
	})
}

// Fields 按出现顺序返回文本中引用的路径（去重）。
func Fields(text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, groups := range exprPattern.FindAllStringSubmatch(text, -1) {
		path, _, _ := strings.Cut(groups[1], "|")
		path = strings.TrimSpace(path)
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		out = append(out, path)
	}
	return out
}

// step 是路径中的一级：键名或数组下标。
type step struct {
	key   string
	index int
	isIdx bool
}

var stepPattern = regexp.MustCompile(`([^.\[\]]+)|\[(-?\d+)\]`)

// splitPath 把 a.b[0][1] 拆成 a、b、0、1 四级。非法路径返回 nil。
func splitPath(path string) []step {
	var steps []step
	consumed := 0
	for _, m := range stepPattern.FindAllStringSubmatchIndex(path, -1) {
		gap := path[consumed:m[0]]
		if gap != "" && gap != "." {
			return nil
		}
		consumed = m[1]
		if m[2] >= 0 {
			steps = append(steps, step{key: path[m[2]:m[3]]})
			continue
		}
		idx, err := strconv.Atoi(path[m[4]:m[5]])
		if err != nil {
			return nil
		}
		steps = append(steps, step{index: idx, isIdx: true})
	}
	if consumed != len(path) {
		return nil
	}
	return steps
}

func resolvePath(data any, path string) (any, bool) {
	steps := splitPath(path)
	if data == nil || len(steps) == 0 {
		return nil, false
	}
	cur := data
	for _, st := range steps {
		var ok bool
		if st.isIdx {
			cur, ok = at(cur, st.index)
		} else {
			cur, ok = lookup(cur, st.key)
		}
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func lookup(v any, key string) (any, bool) {
	switch m := v.(type) {
	case map[string]any:
		out, ok := m[key]
		return out, ok
	case map[string]string:
		out, ok := m[key]
		return out, ok
	}
	return nil, false
}

func at(v any, i int) (any, bool) {
	switch list := v.(type) {
	case []any:
		if i >= 0 && i < len(list) {
			return list[i], true
		}
	case []string:
		if i >= 0 && i < len(list) {
			return list[i], true
		}
	}
	return nil, false
}
