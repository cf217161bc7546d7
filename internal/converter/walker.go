package converter

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/riverfjs/chatmark-go/internal/buffer"
	"github.com/riverfjs/chatmark-go/internal/types"
)

// Blocks 将 parent 的块级子节点按文档顺序渲染为块级元素
//
// 无法识别的节点（HTML 块、脚注等）不产生输出。提及池按文档顺序在所有块之间传递。
func (w *Walker) Blocks(parent ast.Node, ctx Context) ([]types.Block, []types.DisplayMention) {
	var blocks []types.Block
	mentions := ctx.Mentions

	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		cctx := ctx.WithMentions(mentions)

		switch n := child.(type) {
		case *ast.Document:
			var inner []types.Block
			inner, mentions = w.Blocks(n, cctx)
			blocks = append(blocks, inner...)

		case *ast.Blockquote:
			var children []types.Block
			children, mentions = w.Blocks(n, cctx.quoted())
			blocks = append(blocks, &types.BlockQuoteBlock{Children: children})

		case *ast.ThematicBreak:
			blocks = append(blocks, &types.ThematicBreak{})

		case *ast.Heading:
			var text types.StyledText
			text, mentions = w.inlineBlock(n, cctx, cctx.Theme.Title(n.Level).SpanStyle())
			blocks = append(blocks, &types.Heading{Level: n.Level, Text: text})

		case *ast.Paragraph, *ast.TextBlock:
			var text types.StyledText
			text, mentions = w.inlineBlock(n, cctx, paragraphStyle(cctx))
			if !text.IsEmpty() {
				blocks = append(blocks, &types.Paragraph{Text: text})
			}

		case *ast.FencedCodeBlock, *ast.CodeBlock:
			blocks = append(blocks, w.codeBlock(n, cctx))

		case *ast.List:
			var list *types.List
			list, mentions = w.list(n, cctx)
			blocks = append(blocks, list)

		case *east.Table:
			var table *types.Table
			table, mentions = w.table(n, cctx)
			blocks = append(blocks, table)
		}
	}

	return blocks, mentions
}

// paragraphStyle 引用中的段落使用斜体正文
func paragraphStyle(ctx Context) types.SpanStyle {
	if ctx.QuoteDepth == 0 {
		return types.SpanStyle{}
	}
	style := ctx.Theme.Typography.Body01.SpanStyle()
	style.FontStyle = types.StyleItalic
	return style
}

// inlineBlock 在可选的基础样式下渲染 n 的行内子节点
func (w *Walker) inlineBlock(n ast.Node, ctx Context, base types.SpanStyle) (types.StyledText, []types.DisplayMention) {
	b := buffer.NewBuilder()
	mentions := ctx.Mentions
	if base.IsZero() {
		mentions = w.Inline(n, b, ctx)
	} else {
		b.WithStyle(base, func() {
			mentions = w.Inline(n, b, ctx)
		})
	}
	return b.Build(), mentions
}

// --- Code block ---

func (w *Walker) codeBlock(n ast.Node, ctx Context) *types.CodeBlock {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(w.source))
	}
	code := strings.TrimSuffix(sb.String(), "\n")

	block := &types.CodeBlock{Code: code}
	if fenced, ok := n.(*ast.FencedCodeBlock); ok {
		block.Fenced = true
		if info := strings.Fields(string(fenced.Language(w.source))); len(info) > 0 {
			block.Language = strings.Split(info[0], ",")[0]
		}
	}

	block.Text = types.StyledText{Text: code}
	length := types.UTF16Len(code)
	if length > 0 {
		block.Text.Spans = append(block.Text.Spans, types.StyleSpan{
			Start: 0,
			End:   length,
			Style: ctx.Theme.Typography.Code.SpanStyle(),
		})
		if w.highlighter != nil && block.Language != "" {
			block.Text.Spans = append(block.Text.Spans, w.highlighter.Highlight(code, block.Language, ctx.Theme.CodeStyle)...)
		}
	}
	return block
}

// --- Lists ---

func (w *Walker) list(n *ast.List, ctx Context) (*types.List, []types.DisplayMention) {
	list := &types.List{
		Ordered: n.IsOrdered(),
		Start:   n.Start,
		Tight:   n.IsTight,
	}
	mentions := ctx.Mentions
	number := n.Start
	symbols := ctx.Theme.Symbols

	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		li, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		item := types.ListItem{Marker: symbols.Bullet}
		if list.Ordered {
			item.Marker = fmt.Sprintf("%d%s", number, symbols.OrderedSuffix)
			number++
		}
		if box := taskCheckBox(li); box != nil {
			item.Task = true
			item.Checked = box.IsChecked
			item.Marker = symbols.TaskUncompleted
			if box.IsChecked {
				item.Marker = symbols.TaskCompleted
			}
		}
		item.Children, mentions = w.Blocks(li, ctx.WithMentions(mentions))
		list.Items = append(list.Items, item)
	}
	return list, mentions
}

// taskCheckBox 返回列表项首个文本块开头的任务复选框
func taskCheckBox(li *ast.ListItem) *east.TaskCheckBox {
	first := li.FirstChild()
	if first == nil {
		return nil
	}
	if box, ok := first.FirstChild().(*east.TaskCheckBox); ok {
		return box
	}
	return nil
}

// --- Tables ---

var alignments = map[east.Alignment]types.Alignment{
	east.AlignLeft:   types.AlignLeft,
	east.AlignCenter: types.AlignCenter,
	east.AlignRight:  types.AlignRight,
	east.AlignNone:   types.AlignNone,
}

func (w *Walker) table(n *east.Table, ctx Context) (*types.Table, []types.DisplayMention) {
	table := &types.Table{}
	for _, a := range n.Alignments {
		table.Alignments = append(table.Alignments, alignments[a])
	}
	mentions := ctx.Mentions

	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		switch r := row.(type) {
		case *east.TableHeader:
			table.Header, mentions = w.tableCells(r, ctx.WithMentions(mentions), ctx.Theme.Typography.Body02.SpanStyle())
		case *east.TableRow:
			var cells []types.TableCell
			cells, mentions = w.tableCells(r, ctx.WithMentions(mentions), types.SpanStyle{})
			table.Rows = append(table.Rows, cells)
		}
	}
	return table, mentions
}

func (w *Walker) tableCells(row ast.Node, ctx Context, base types.SpanStyle) ([]types.TableCell, []types.DisplayMention) {
	var cells []types.TableCell
	mentions := ctx.Mentions
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*east.TableCell); !ok {
			continue
		}
		var text types.StyledText
		text, mentions = w.inlineBlock(c, ctx.WithMentions(mentions), base)
		cells = append(cells, types.TableCell{Text: text})
	}
	return cells, mentions
}
