package converter

import (
	"github.com/riverfjs/chatmark-go/internal/types"
)

// DefaultMentionMark 包裹待解析提及用户名的标记字符（私有区码位，解析器不会改写它）
const DefaultMentionMark = "\uE000"

// Highlighter 为代码块生成着色区间
type Highlighter interface {
	Highlight(code, language, style string) []types.StyleSpan
}

// Context 向下传递的不可变渲染上下文
//
// Mentions 为当前子树尚未消费的提及描述符。每次递归返回更新后的列表，
// 由调用方传给后续兄弟节点；原切片从不被修改。
type Context struct {
	Theme      *types.Theme
	Mentions   []types.DisplayMention
	QuoteDepth int
}

// WithMentions 返回替换了提及池的副本
func (c Context) WithMentions(mentions []types.DisplayMention) Context {
	c.Mentions = mentions
	return c
}

// quoted 返回引用层级 +1 的副本
func (c Context) quoted() Context {
	c.QuoteDepth++
	return c
}

// Options 配置 Walker
type Options struct {
	MentionMark string
	Consumption types.MentionConsumption
	Highlighter Highlighter
}

// Walker 遍历 goldmark AST 生成块级元素与带样式文本
//
// Walker 只持有只读配置，可在多个 goroutine 中并发使用。
type Walker struct {
	source      []byte
	mark        string
	consumption types.MentionConsumption
	highlighter Highlighter
}

// NewWalker 创建新的 Walker
func NewWalker(source []byte, opts Options) *Walker {
	return &Walker{
		source:      source,
		mark:        opts.MentionMark,
		consumption: opts.Consumption,
		highlighter: opts.Highlighter,
	}
}
