package types

// TextStyle 排版样式
type TextStyle struct {
	Family FontFamily `toml:"family"`
	Weight FontWeight `toml:"weight"`
	Size   float64    `toml:"size"`
}

// SpanStyle 转换为区间样式（字号由布局层决定）
func (t TextStyle) SpanStyle() SpanStyle {
	return SpanStyle{Family: t.Family, Weight: t.Weight}
}

// Typography 排版集合
type Typography struct {
	Body01 TextStyle    `toml:"body01"` // 正文
	Body02 TextStyle    `toml:"body02"` // 加粗正文、提及
	Body05 TextStyle    `toml:"body05"` // 斜体正文
	Code   TextStyle    `toml:"code"`
	Titles [6]TextStyle `toml:"titles"`
}

// ColorScheme 配色
type ColorScheme struct {
	Primary          Color `toml:"primary"`
	PrimaryVariant   Color `toml:"primary_variant"`
	OnPrimaryVariant Color `toml:"on_primary_variant"`
	OnBackground     Color `toml:"on_background"`
	Background       Color `toml:"background"`
	CodeBackground   Color `toml:"code_background"`
	Muted            Color `toml:"muted"`
}

// Symbol 定义 Markdown 元素的显示符号
type Symbol struct {
	Bullet          string `toml:"bullet"`
	OrderedSuffix   string `toml:"ordered_suffix"`
	Quote           string `toml:"quote"`
	ThematicBreak   string `toml:"thematic_break"`
	TaskCompleted   string `toml:"task_completed"`
	TaskUncompleted string `toml:"task_uncompleted"`
}

// DefaultSymbol 返回默认符号配置
func DefaultSymbol() Symbol {
	return Symbol{
		Bullet:          "•",
		OrderedSuffix:   ".",
		Quote:           "│",
		ThematicBreak:   "—",
		TaskCompleted:   "☑",
		TaskUncompleted: "☐",
	}
}

// Theme 渲染主题
type Theme struct {
	Typography Typography  `toml:"typography"`
	Colors     ColorScheme `toml:"colors"`
	Symbols    Symbol      `toml:"symbols"`
	// CodeStyle chroma 样式名
	CodeStyle string `toml:"code_style"`
}

// DefaultTheme 返回默认主题
func DefaultTheme() *Theme {
	return &Theme{
		Typography: Typography{
			Body01: TextStyle{Family: FamilySans, Weight: WeightNormal, Size: 15},
			Body02: TextStyle{Family: FamilySans, Weight: WeightBold, Size: 15},
			Body05: TextStyle{Family: FamilySans, Weight: WeightNormal, Size: 15},
			Code:   TextStyle{Family: FamilyMonospace, Weight: WeightNormal, Size: 14},
			Titles: [6]TextStyle{
				{Family: FamilySans, Weight: WeightBold, Size: 24},
				{Family: FamilySans, Weight: WeightBold, Size: 20},
				{Family: FamilySans, Weight: WeightBold, Size: 18},
				{Family: FamilySans, Weight: WeightBold, Size: 16},
				{Family: FamilySans, Weight: WeightBold, Size: 15},
				{Family: FamilySans, Weight: WeightBold, Size: 15},
			},
		},
		Colors: ColorScheme{
			Primary:          RGB(0x06, 0x67, 0xC8),
			PrimaryVariant:   RGB(0xDC, 0xE8, 0xF9),
			OnPrimaryVariant: RGB(0x06, 0x67, 0xC8),
			OnBackground:     RGB(0x1C, 0x1E, 0x21),
			Background:       RGB(0xFF, 0xFF, 0xFF),
			CodeBackground:   RGB(0xF1, 0xF2, 0xF3),
			Muted:            RGB(0x67, 0x6B, 0x71),
		},
		Symbols:   DefaultSymbol(),
		CodeStyle: "github",
	}
}

// Title 返回标题级别对应的排版，越界时取最近的级别
func (t *Theme) Title(level int) TextStyle {
	level = min(max(level, 1), len(t.Typography.Titles))
	return t.Typography.Titles[level-1]
}
