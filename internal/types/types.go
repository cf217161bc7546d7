package types

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"
)

// 注解标签，与 UI 层点击分发约定一致
const (
	TagURL     = "linkTag"
	TagMention = "mentionTag"
)

// Color 颜色，A == 0 表示未指定
type Color struct {
	R, G, B, A uint8
}

// RGB 构造不透明颜色
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xff}
}

// IsSet 是否指定了颜色
func (c Color) IsSet() bool {
	return c.A != 0
}

// RGBA implements image/color.Color; the values are alpha-premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Hex 返回 #RRGGBB（不透明）或 #RRGGBBAA
func (c Color) Hex() string {
	if !c.IsSet() {
		return ""
	}
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ParseColor 解析 #RGB、#RRGGBB、#RRGGBBAA，空串返回未指定颜色
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, nil
	}
	raw := strings.TrimPrefix(s, "#")
	if len(raw) == 3 {
		raw = string([]byte{raw[0], raw[0], raw[1], raw[1], raw[2], raw[2]})
	}
	if len(raw) != 6 && len(raw) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	c := Color{R: b[0], G: b[1], B: b[2], A: 0xff}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// FontWeight 字重
type FontWeight int

const (
	WeightUnspecified FontWeight = iota
	WeightNormal
	WeightBold
)

// FontStyle 字形
type FontStyle int

const (
	StyleUnspecified FontStyle = iota
	StyleNormal
	StyleItalic
)

// FontFamily 字体族，空串表示继承
type FontFamily string

const (
	FamilyDefault   FontFamily = ""
	FamilySans      FontFamily = "sans-serif"
	FamilyMonospace FontFamily = "monospace"
)

// Decoration 文本装饰位集合
type Decoration uint8

const (
	DecorationUnderline Decoration = 1 << iota
	DecorationLineThrough
)

// Has reports whether all bits of d2 are set.
func (d Decoration) Has(d2 Decoration) bool {
	return d&d2 == d2
}

// SpanStyle 一段文本的样式属性，零值字段表示未指定
type SpanStyle struct {
	Color      Color
	Background Color
	Weight     FontWeight
	FontStyle  FontStyle
	Family     FontFamily
	Decoration Decoration
}

// Merge 返回 s 叠加 other 后的样式：other 中已指定的字段覆盖 s，装饰取并集
func (s SpanStyle) Merge(other SpanStyle) SpanStyle {
	if other.Color.IsSet() {
		s.Color = other.Color
	}
	if other.Background.IsSet() {
		s.Background = other.Background
	}
	if other.Weight != WeightUnspecified {
		s.Weight = other.Weight
	}
	if other.FontStyle != StyleUnspecified {
		s.FontStyle = other.FontStyle
	}
	if other.Family != FamilyDefault {
		s.Family = other.Family
	}
	s.Decoration |= other.Decoration
	return s
}

// IsZero 是否没有任何属性
func (s SpanStyle) IsZero() bool {
	return s == SpanStyle{}
}

// StyleSpan 样式区间 [Start, End)，单位为 UTF-16 code unit
type StyleSpan struct {
	Start int       `json:"start"`
	End   int       `json:"end"`
	Style SpanStyle `json:"style"`
}

// Annotation 注解区间 [Start, End)，用于链接和提及的点击分发
type Annotation struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// QualifiedID 带域的用户 ID
type QualifiedID struct {
	Value  string `json:"value"`
	Domain string `json:"domain,omitempty"`
}

// String 返回 value 或 value@domain
func (id QualifiedID) String() string {
	if id.Domain == "" {
		return id.Value
	}
	return id.Value + "@" + id.Domain
}

// ParseQualifiedID 解析 value@domain；最后一个 @ 之后为域
func ParseQualifiedID(s string) QualifiedID {
	if i := strings.LastIndexByte(s, '@'); i > 0 {
		return QualifiedID{Value: s[:i], Domain: s[i+1:]}
	}
	return QualifiedID{Value: s}
}

// DisplayMention 需要在文本中定位并高亮的一个提及
type DisplayMention struct {
	MentionUserName string      `json:"mention_user_name"`
	UserID          QualifiedID `json:"user_id"`
	IsSelfMention   bool        `json:"is_self_mention"`
	Length          int         `json:"length"`
}

// MessageMention 消息元数据中的提及：原始文本上的 UTF-16 区间
type MessageMention struct {
	Start  int         `json:"start"`
	Length int         `json:"length"`
	UserID QualifiedID `json:"user_id"`
}

// MentionConsumption 提及描述符的消费策略
type MentionConsumption int

const (
	// ConsumeMatched 仅移除成功匹配的描述符
	ConsumeMatched MentionConsumption = iota
	// ConsumeHead 每成功匹配一次就移除池首元素（兼容旧行为）
	ConsumeHead
)

// String returns the policy name.
func (m MentionConsumption) String() string {
	switch m {
	case ConsumeMatched:
		return "matched"
	case ConsumeHead:
		return "head"
	default:
		return "unknown"
	}
}
