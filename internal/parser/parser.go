package parser

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// StandardOptions goldmark 扩展配置
//
// 不启用 Linkify：链接检测在提及标记去除之后进行，见 converter.Resolve。
// 不启用脚注、定义列表：这些节点不会被渲染。
var StandardOptions = []goldmark.Option{
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
}

var markdown = goldmark.New(StandardOptions...)

// Parse 仅解析为 AST，返回根节点和源文本
func Parse(source string) (ast.Node, []byte) {
	src := []byte(source)
	return markdown.Parser().Parse(text.NewReader(src)), src
}
