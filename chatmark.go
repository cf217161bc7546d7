// Package chatmark 将聊天消息的 Markdown 渲染为块级元素和带样式文本
//
// 消息正文由 goldmark 解析为 AST，再逐块渲染：每个块的行内内容是一个
// StyledText，携带样式区间（粗体、斜体、颜色、背景、等宽）和注解
// （超链接与用户提及），偏移量单位为 UTF-16 code unit。
//
// 核心功能：
//   - 块级渲染：段落、标题、嵌套引用、代码块、列表、任务列表、表格、分隔线
//   - 提及解析：定位被标记字符包裹的用户名，去除标记并添加提及注解
//   - 链接检测：URL 与邮箱地址自动添加超链接注解
//   - 排版规范化：(c) (r) (tm) +- 替换为 © ® ™ ±
//   - 代码高亮：chroma 按语言为代码块着色
//
// 主要 API：
//   - Render(): 渲染 Markdown 文本，返回块级元素
//   - RenderDocument(): 渲染已解析的 AST，同时返回未消费的提及
//   - Flatten(): 将块级元素合并为单个 StyledText
//   - MarkMentions(): 由消息元数据中的提及区间生成标记文本和提及描述符
//
// 示例：
//
//	text, mentions := chatmark.MarkMentions(raw, msg.Mentions, selfID)
//	blocks := chatmark.Render(text, mentions)
//	for _, b := range blocks {
//	    switch v := b.(type) {
//	    case *chatmark.Paragraph:
//	        // 绘制 v.Text，点击时查询 v.Text.AnnotationsAt(offset, chatmark.TagURL)
//	    case *chatmark.CodeBlock:
//	        // ...
//	    }
//	}
package chatmark

import (
	"github.com/yuin/goldmark/ast"

	"github.com/riverfjs/chatmark-go/internal/converter"
	"github.com/riverfjs/chatmark-go/internal/highlight"
	"github.com/riverfjs/chatmark-go/internal/parser"
)

// Render 将 Markdown 渲染为块级元素
//
// 参数:
//   - markdown: 消息正文，提及用户名由提及标记包裹
//   - mentions: 待定位的提及描述符，按顺序消费
//   - opts: 渲染选项
//
// 返回:
//   - []Block: 按文档顺序排列的块级元素
func Render(markdown string, mentions []DisplayMention, opts ...Option) []Block {
	doc, source := parser.Parse(markdown)
	blocks, _ := RenderDocument(doc, source, mentions, opts...)
	return blocks
}

// RenderDocument 渲染已解析的 goldmark AST
//
// doc 不会被修改，可重复渲染。返回的提及列表为未能在文本中定位的描述符。
func RenderDocument(doc ast.Node, source []byte, mentions []DisplayMention, opts ...Option) ([]Block, []DisplayMention) {
	options := applyOptions(opts...)
	walker := converter.NewWalker(source, walkerOptions(options))
	ctx := converter.Context{
		Theme:    options.Theme,
		Mentions: mentions,
	}
	blocks, remaining := walker.Blocks(doc, ctx)
	if len(remaining) > 0 && len(mentions) > 0 {
		Logger.Printf("%d of %d mentions not found in message text", len(remaining), len(mentions))
	}
	return blocks, remaining
}

// RenderText 渲染并合并为单个带样式文本
func RenderText(markdown string, mentions []DisplayMention, opts ...Option) StyledText {
	options := applyOptions(opts...)
	return Flatten(Render(markdown, mentions, opts...), options.Theme)
}

func walkerOptions(options *RenderOptions) converter.Options {
	wo := converter.Options{
		MentionMark: options.MentionMark,
		Consumption: options.Consumption,
	}
	if options.Highlight {
		wo.Highlighter = highlight.New(Logger)
	}
	return wo
}
