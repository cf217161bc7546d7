package converter

import "strings"

// 按顺序替换，区分大小写，替换结果不含任何 ASCII 模式，因此不会递归匹配
var typographicReplacements = []struct {
	from string
	to   string
}{
	{"(c)", "©"},
	{"(C)", "©"},
	{"(r)", "®"},
	{"(R)", "®"},
	{"(tm)", "™"},
	{"(TM)", "™"},
	{"+-", "±"},
}

// NormalizeTypography 将 ASCII 近似写法替换为对应的 Unicode 字符
func NormalizeTypography(text string) string {
	for _, r := range typographicReplacements {
		text = strings.ReplaceAll(text, r.from, r.to)
	}
	return text
}
