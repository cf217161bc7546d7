package chatmark

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/riverfjs/chatmark-go/internal/buffer"
	"github.com/riverfjs/chatmark-go/internal/types"
)

// Flatten 将块级元素合并为单个带样式文本
//
// 块之间以空行分隔；引用每行加前缀符号，列表项加标记并缩进后续行，
// 表格按显示宽度对齐。所有样式区间和注解随内容平移，首尾空白被去除。
func Flatten(blocks []Block, theme *Theme) StyledText {
	if theme == nil {
		theme = DefaultTheme()
	}
	f := &flattener{theme: theme}
	b := buffer.NewBuilder()
	f.blocks(b, blocks, "\n\n")
	return b.Build().TrimSpace()
}

type flattener struct {
	theme *Theme
}

func (f *flattener) blocks(b *buffer.Builder, blocks []Block, sep string) {
	for i, block := range blocks {
		if i > 0 {
			b.Append(sep)
		}
		f.block(b, block)
	}
}

func (f *flattener) block(b *buffer.Builder, block Block) {
	switch v := block.(type) {
	case *types.Paragraph:
		b.AppendStyled(v.Text)

	case *types.Heading:
		b.AppendStyled(v.Text)

	case *types.CodeBlock:
		b.AppendStyled(v.Text)

	case *types.ThematicBreak:
		b.WithStyle(types.SpanStyle{Color: f.theme.Colors.Muted}, func() {
			b.Append(strings.Repeat(f.theme.Symbols.ThematicBreak, 3))
		})

	case *types.BlockQuoteBlock:
		inner := f.sub(func(ib *buffer.Builder) {
			f.blocks(ib, v.Children, "\n\n")
		})
		prefix := f.theme.Symbols.Quote + " "
		f.prefixLines(b, inner, prefix, prefix, true)

	case *types.List:
		sep := "\n\n"
		if v.Tight {
			sep = "\n"
		}
		for i, item := range v.Items {
			if i > 0 {
				b.Append(sep)
			}
			marker := item.Marker + " "
			indent := strings.Repeat(" ", runewidth.StringWidth(marker))
			inner := f.sub(func(ib *buffer.Builder) {
				f.blocks(ib, item.Children, sep)
			})
			f.prefixLines(b, inner, marker, indent, false)
		}

	case *types.Table:
		f.table(b, v)

	default:
		Logger.Printf("flatten: unsupported block %T", block)
	}
}

// sub 在独立的 Builder 中渲染，返回结果供逐行加前缀
func (f *flattener) sub(fn func(*buffer.Builder)) StyledText {
	ib := buffer.NewBuilder()
	fn(ib)
	return ib.Build()
}

// prefixLines 为每行加前缀：首行 first，其余行 rest；空行仅在 always 时加前缀
func (f *flattener) prefixLines(b *buffer.Builder, st StyledText, first, rest string, always bool) {
	muted := types.SpanStyle{Color: f.theme.Colors.Muted}
	for i, line := range st.Lines() {
		if i > 0 {
			b.Append("\n")
		}
		prefix := rest
		if i == 0 {
			prefix = first
		}
		if line.Text == "" && !always && i > 0 {
			continue
		}
		if line.Text == "" {
			prefix = strings.TrimRight(prefix, " ")
		}
		b.WithStyle(muted, func() {
			b.Append(prefix)
		})
		b.AppendStyled(line)
	}
}

func (f *flattener) table(b *buffer.Builder, t *types.Table) {
	cols := t.Columns()
	if cols == 0 {
		return
	}
	widths := make([]int, cols)
	measure := func(cells []types.TableCell) {
		for i, c := range cells {
			if i < cols {
				widths[i] = max(widths[i], runewidth.StringWidth(c.Text.Text))
			}
		}
	}
	measure(t.Header)
	for _, row := range t.Rows {
		measure(row)
	}

	f.tableRow(b, t, t.Header, widths)
	b.Append("\n")
	parts := make([]string, cols)
	for i, w := range widths {
		parts[i] = strings.Repeat("-", max(w, 1))
	}
	b.WithStyle(types.SpanStyle{Color: f.theme.Colors.Muted}, func() {
		b.Append(strings.Join(parts, "-+-"))
	})
	for _, row := range t.Rows {
		b.Append("\n")
		f.tableRow(b, t, row, widths)
	}
}

func (f *flattener) tableRow(b *buffer.Builder, t *types.Table, cells []types.TableCell, widths []int) {
	for i, w := range widths {
		if i > 0 {
			b.Append(" | ")
		}
		var cell StyledText
		if i < len(cells) {
			cell = cells[i].Text
		}
		pad := w - runewidth.StringWidth(cell.Text)
		left, right := 0, pad
		switch alignmentOf(t, i) {
		case types.AlignRight:
			left, right = pad, 0
		case types.AlignCenter:
			left = pad / 2
			right = pad - left
		}
		b.Append(strings.Repeat(" ", left))
		b.AppendStyled(cell)
		if i < len(widths)-1 {
			b.Append(strings.Repeat(" ", right))
		}
	}
}

func alignmentOf(t *types.Table, col int) types.Alignment {
	if col < len(t.Alignments) {
		return t.Alignments[col]
	}
	return types.AlignNone
}

// Describe 返回块的简短描述，用于日志和调试输出
func Describe(block Block) string {
	switch v := block.(type) {
	case *types.Heading:
		return fmt.Sprintf("%s(%d) %q", v.Kind(), v.Level, v.Text.Text)
	case *types.Paragraph:
		return fmt.Sprintf("%s %q", v.Kind(), v.Text.Text)
	case *types.CodeBlock:
		return fmt.Sprintf("%s[%s] %d lines", v.Kind(), v.Language, strings.Count(v.Code, "\n")+1)
	case *types.BlockQuoteBlock:
		return fmt.Sprintf("%s depth=%d", v.Kind(), v.Depth())
	case *types.List:
		return fmt.Sprintf("%s items=%d", v.Kind(), len(v.Items))
	case *types.Table:
		return fmt.Sprintf("%s %dx%d", v.Kind(), len(v.Rows), v.Columns())
	default:
		return block.Kind().String()
	}
}
