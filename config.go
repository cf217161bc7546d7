package chatmark

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/riverfjs/chatmark-go/internal/types"
)

// 导出类型别名
type Theme = types.Theme
type Typography = types.Typography
type TextStyle = types.TextStyle
type ColorScheme = types.ColorScheme
type Symbol = types.Symbol
type Color = types.Color

var (
	defaultTheme     *Theme
	defaultThemeOnce sync.Once
)

// DefaultTheme returns the default theme (singleton). Callers must not modify it;
// use LoadTheme or copy the value before changing fields.
func DefaultTheme() *Theme {
	defaultThemeOnce.Do(func() {
		defaultTheme = types.DefaultTheme()
	})
	return defaultTheme
}

// LoadTheme 从 TOML 文件加载主题，未出现的字段保留默认值
//
// 颜色写作 "#RRGGBB" 或 "#RRGGBBAA"：
//
//	code_style = "monokai"
//
//	[colors]
//	primary = "#2A7AE2"
func LoadTheme(path string) (*Theme, error) {
	theme := *DefaultTheme()
	md, err := toml.DecodeFile(path, &theme)
	if err != nil {
		return nil, fmt.Errorf("load theme %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		Logger.Printf("theme %s: ignoring unknown keys %v", path, undecoded)
	}
	return &theme, nil
}

// ParseTheme 从 TOML 文本解析主题，未出现的字段保留默认值
func ParseTheme(data string) (*Theme, error) {
	theme := *DefaultTheme()
	if _, err := toml.Decode(data, &theme); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	return &theme, nil
}
