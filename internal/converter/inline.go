package converter

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/chatmark-go/internal/buffer"
	"github.com/riverfjs/chatmark-go/internal/types"
)

// Inline 将 parent 的行内子节点写入 b，返回未消费的提及池
//
// 每个样式作用域由 Builder 保证成对开闭，作用域恰好结束于子节点内容末尾。
func (w *Walker) Inline(parent ast.Node, b *buffer.Builder, ctx Context) []types.DisplayMention {
	mentions := ctx.Mentions
	typography := ctx.Theme.Typography

	child := parent.FirstChild()
	for child != nil {
		cctx := ctx.WithMentions(mentions)
		next := child.NextSibling()

		switch n := child.(type) {
		case *ast.Text, *ast.String:
			run, hardBreak, rest := w.textRun(child)
			var st types.StyledText
			st, mentions = w.Resolve(NormalizeTypography(run), cctx)
			b.AppendStyled(st)
			if hardBreak {
				// 作用域由结构保证平衡，此处无需关闭任何样式
				b.Append("\n")
			}
			next = rest

		case *ast.Paragraph, *ast.TextBlock:
			mentions = w.Inline(n, b, cctx)

		case *ast.Image:
			// 图片不加载，目标地址作为文本显示并参与链接检测
			var st types.StyledText
			st, mentions = w.Resolve(string(n.Destination), cctx)
			b.AppendStyled(st)

		case *ast.Emphasis:
			style := typography.Body05.SpanStyle()
			style.Weight = types.WeightUnspecified
			style.FontStyle = types.StyleItalic
			if n.Level >= 2 {
				style = typography.Body02.SpanStyle()
				style.Weight = types.WeightBold
			}
			b.WithStyle(style, func() {
				mentions = w.Inline(n, b, cctx)
			})

		case *ast.CodeSpan:
			b.WithStyle(typography.Code.SpanStyle(), func() {
				b.Append(codeSpanText(n, w.source))
			})

		case *ast.Link:
			w.link(b, cctx, string(n.Destination), func() {
				mentions = w.Inline(n, b, cctx)
			})

		case *ast.AutoLink:
			label := string(n.Label(w.source))
			dest := string(n.URL(w.source))
			if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(dest), "mailto:") {
				dest = "mailto:" + dest
			}
			w.link(b, cctx, dest, func() {
				b.Append(label)
			})

		case *east.Strikethrough:
			b.WithStyle(types.SpanStyle{Decoration: types.DecorationLineThrough}, func() {
				mentions = w.Inline(n, b, cctx)
			})
		}

		child = next
	}

	return mentions
}

// link 以链接样式和 URL 注解包裹 fn 写入的内容
func (w *Walker) link(b *buffer.Builder, ctx Context, destination string, fn func()) {
	b.WithStyle(linkStyle(ctx.Theme.Colors), func() {
		b.WithAnnotation(types.TagURL, destination, fn)
	})
}

// textRun 合并从 start 开始的相邻 Text/String 节点
//
// goldmark 会在分隔符处拆分文本（例如 john_doe 中的 _），合并后提及标记才能完整匹配。
// 软换行写入 '\n'；硬换行结束本段。返回合并文本、是否硬换行以及下一个待处理节点。
func (w *Walker) textRun(start ast.Node) (string, bool, ast.Node) {
	var sb strings.Builder
	for c := start; c != nil; c = c.NextSibling() {
		switch n := c.(type) {
		case *ast.Text:
			sb.Write(textValue(n, w.source))
			if n.HardLineBreak() {
				return sb.String(), true, c.NextSibling()
			}
			if n.SoftLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.String:
			sb.Write(n.Value)
		default:
			return sb.String(), false, c
		}
	}
	return sb.String(), false, nil
}

// textValue 返回文本节点的内容，处理反斜杠转义和字符引用
func textValue(n *ast.Text, source []byte) []byte {
	value := n.Segment.Value(source)
	if n.IsRaw() {
		return value
	}
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	return util.ResolveEntityNames(value)
}

// codeSpanText 提取行内代码的原文
func codeSpanText(n *ast.CodeSpan, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		}
	}
	return sb.String()
}
