package converter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverfjs/chatmark-go/internal/parser"
	"github.com/riverfjs/chatmark-go/internal/types"
)

type fakeHighlighter struct {
	calls []string
}

func (f *fakeHighlighter) Highlight(code, language, style string) []types.StyleSpan {
	f.calls = append(f.calls, language+"/"+style)
	return []types.StyleSpan{{Start: 0, End: 1, Style: types.SpanStyle{Color: types.RGB(1, 2, 3)}}}
}

func render(t *testing.T, md string, mentions ...types.DisplayMention) ([]types.Block, []types.DisplayMention) {
	t.Helper()
	doc, src := parser.Parse(md)
	w := NewWalker(src, Options{MentionMark: mark})
	return w.Blocks(doc, Context{Theme: types.DefaultTheme(), Mentions: mentions})
}

func paragraph(t *testing.T, b types.Block) types.StyledText {
	t.Helper()
	p, ok := b.(*types.Paragraph)
	require.True(t, ok, "want paragraph, got %T", b)
	return p.Text
}

// spanText 返回区间覆盖的文本
func spanText(st types.StyledText, start, end int) string {
	return st.Slice(start, end).Text
}

func TestNormalizeTypography(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(c) 2024", "© 2024"},
		{"(C)(r)(R)", "©®®"},
		{"brand(tm) and BRAND(TM)", "brand™ and BRAND™"},
		{"+-5", "±5"},
		{"(Tm) (cr)", "(Tm) (cr)"},
		{"no change", "no change"},
	}
	for _, tt := range tests {
		got := NormalizeTypography(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, got, NormalizeTypography(got), "normalising twice must be a no-op")
	}
}

func TestInline_TextRunNormalised(t *testing.T) {
	blocks, _ := render(t, "Copyright (c) ACME +- 1")
	require.Len(t, blocks, 1)
	st := paragraph(t, blocks[0])
	assert.Equal(t, "Copyright © ACME ± 1", st.Text)
	assert.Empty(t, st.Spans)
}

func TestInline_EmphasisSpansEndExactly(t *testing.T) {
	blocks, _ := render(t, "a *it* **bo** ~~st~~ z")
	st := paragraph(t, blocks[0])
	require.Equal(t, "a it bo st z", st.Text)
	require.Len(t, st.Spans, 3)

	italic, bold, strike := st.Spans[0], st.Spans[1], st.Spans[2]
	assert.Equal(t, types.StyleItalic, italic.Style.FontStyle)
	assert.Equal(t, "it", spanText(st, italic.Start, italic.End))
	assert.Equal(t, types.WeightBold, bold.Style.Weight)
	assert.Equal(t, "bo", spanText(st, bold.Start, bold.End))
	assert.True(t, strike.Style.Decoration.Has(types.DecorationLineThrough))
	assert.Equal(t, "st", spanText(st, strike.Start, strike.End))
}

func TestInline_NestedEmphasis(t *testing.T) {
	blocks, _ := render(t, "**bold *both* bold**")
	st := paragraph(t, blocks[0])
	require.Equal(t, "bold both bold", st.Text)
	require.Len(t, st.Spans, 2)
	assert.Equal(t, 0, st.Spans[0].Start)
	assert.Equal(t, 14, st.Spans[0].End)
	assert.Equal(t, "both", spanText(st, st.Spans[1].Start, st.Spans[1].End))

	merged := st.StyleAt(6)
	assert.Equal(t, types.WeightBold, merged.Weight)
	assert.Equal(t, types.StyleItalic, merged.FontStyle)
}

func TestInline_CodeSpanVerbatim(t *testing.T) {
	blocks, _ := render(t, "run `(c) https://x.io` now")
	st := paragraph(t, blocks[0])
	assert.Equal(t, "run (c) https://x.io now", st.Text)
	require.Len(t, st.Spans, 1)
	assert.Equal(t, types.FamilyMonospace, st.Spans[0].Style.Family)
	assert.Equal(t, "(c) https://x.io", spanText(st, st.Spans[0].Start, st.Spans[0].End))
	assert.Empty(t, st.Annotations, "no link detection inside code")
}

func TestInline_Link(t *testing.T) {
	blocks, _ := render(t, "[site](https://x.io) end")
	st := paragraph(t, blocks[0])
	assert.Equal(t, "site end", st.Text)
	require.Len(t, st.Annotations, 1)
	assert.Equal(t, types.Annotation{Tag: types.TagURL, Value: "https://x.io", Start: 0, End: 4}, st.Annotations[0])
	require.Len(t, st.Spans, 1)
	assert.True(t, st.Spans[0].Style.Decoration.Has(types.DecorationUnderline))
	assert.Equal(t, 4, st.Spans[0].End)
}

func TestInline_AutoLinkEmail(t *testing.T) {
	blocks, _ := render(t, "<bob@example.com>")
	st := paragraph(t, blocks[0])
	assert.Equal(t, "bob@example.com", st.Text)
	urls := annotationsOf(st, types.TagURL)
	require.NotEmpty(t, urls)
	assert.Equal(t, "mailto:bob@example.com", urls[0].Value)
}

func TestInline_ImageShowsLinkifiedURL(t *testing.T) {
	blocks, _ := render(t, "![cat](http://example.com/x.png)")
	st := paragraph(t, blocks[0])
	assert.Equal(t, "http://example.com/x.png", st.Text)
	require.Len(t, st.Annotations, 1)
	assert.Equal(t, types.Annotation{Tag: types.TagURL, Value: "http://example.com/x.png", Start: 0, End: 24}, st.Annotations[0])
}

func TestInline_HardAndSoftBreaks(t *testing.T) {
	blocks, _ := render(t, "*one  \ntwo*\nthree")
	st := paragraph(t, blocks[0])
	assert.Equal(t, "one\ntwo\nthree", st.Text)
	require.Len(t, st.Spans, 1)
	// 硬换行不会提前关闭外层斜体
	assert.True(t, strings.HasPrefix(spanText(st, st.Spans[0].Start, st.Spans[0].End), "one\ntwo"))

	// 软换行保留为 '\n'，其后的提及偏移包含该字符
	blocks, remaining := render(t, "see\n"+marked("Ann")+" now", mention("Ann", "a", false))
	st = paragraph(t, blocks[0])
	assert.Equal(t, "see\nAnn now", st.Text)
	assert.Empty(t, remaining)
	got := annotationsOf(st, types.TagMention)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Start)
	assert.Equal(t, 7, got[0].End)

	// 标记跨越软换行时，两侧文本合并后仍能匹配
	blocks, remaining = render(t, "hi "+marked("Ann\nLee")+"!", mention("Ann\nLee", "al", false))
	st = paragraph(t, blocks[0])
	assert.Equal(t, "hi Ann\nLee!", st.Text)
	assert.Empty(t, remaining)
	got = annotationsOf(st, types.TagMention)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Start)
	assert.Equal(t, 10, got[0].End)
}

func TestInline_EscapesAndEntities(t *testing.T) {
	blocks, _ := render(t, `\*not emphasis\* &amp; &#169;`)
	st := paragraph(t, blocks[0])
	assert.Equal(t, "*not emphasis* & ©", st.Text)
}

func TestInline_MentionAcrossSplitText(t *testing.T) {
	blocks, remaining := render(t, "hey "+marked("john_doe")+"!", mention("john_doe", "j", false))
	st := paragraph(t, blocks[0])
	assert.Equal(t, "hey john_doe!", st.Text)
	assert.Empty(t, remaining)
	got := annotationsOf(st, types.TagMention)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Start)
	assert.Equal(t, 12, got[0].End)
}

func TestInline_MentionInsideEmphasis(t *testing.T) {
	blocks, _ := render(t, "**hi "+marked("Ann")+"**", mention("Ann", "a", false))
	st := paragraph(t, blocks[0])
	assert.Equal(t, "hi Ann", st.Text)
	got := annotationsOf(st, types.TagMention)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Start)
}

func TestBlocks_MentionPoolThreadedAcrossBlocks(t *testing.T) {
	md := "Hi " + marked("Bob") + "\n\n- again " + marked("Bob") + "\n- " + marked("Eve")
	blocks, remaining := render(t, md, mention("Bob", "b", false), mention("Eve", "e", false))
	require.Len(t, blocks, 2)
	assert.Empty(t, remaining)

	first := paragraph(t, blocks[0])
	assert.Len(t, annotationsOf(first, types.TagMention), 1)

	list := blocks[1].(*types.List)
	require.Len(t, list.Items, 2)
	second := paragraph(t, list.Items[0].Children[0])
	assert.Equal(t, "again "+marked("Bob"), second.Text, "consumed descriptor must not match again")
	assert.Empty(t, annotationsOf(second, types.TagMention))

	third := paragraph(t, list.Items[1].Children[0])
	assert.Equal(t, "Eve", third.Text)
	assert.Len(t, annotationsOf(third, types.TagMention), 1)
}

func TestBlocks_NestedBlockQuote(t *testing.T) {
	blocks, _ := render(t, "> outer\n>\n> > inner")
	require.Len(t, blocks, 1)
	quote, ok := blocks[0].(*types.BlockQuoteBlock)
	require.True(t, ok)
	assert.Equal(t, 2, quote.Depth())
	require.Len(t, quote.Children, 2)

	outer := paragraph(t, quote.Children[0])
	assert.Equal(t, "outer", outer.Text)
	require.Len(t, outer.Spans, 1)
	assert.Equal(t, types.StyleItalic, outer.Spans[0].Style.FontStyle)

	inner, ok := quote.Children[1].(*types.BlockQuoteBlock)
	require.True(t, ok)
	require.Len(t, inner.Children, 1)
	assert.Equal(t, "inner", paragraph(t, inner.Children[0]).Text)
}

func TestBlocks_KindsInOrder(t *testing.T) {
	md := strings.Join([]string{
		"# Title",
		"<div>html is skipped</div>",
		"para",
		"---",
		"```go\nx := 1\n```",
		"    indented",
		"3. three\n4. four",
		"- [x] done\n- [ ] todo",
		"| h1 | h2 |\n|:--|--:|\n| a | b |",
	}, "\n\n")
	blocks, _ := render(t, md)

	var kinds []types.BlockKind
	for _, b := range blocks {
		kinds = append(kinds, b.Kind())
	}
	assert.Equal(t, []types.BlockKind{
		types.BlockHeading,
		types.BlockParagraph,
		types.BlockThematicBreak,
		types.BlockCode,
		types.BlockCode,
		types.BlockOrderedList,
		types.BlockBulletList,
		types.BlockTable,
	}, kinds)

	heading := blocks[0].(*types.Heading)
	assert.Equal(t, 1, heading.Level)
	assert.Equal(t, "Title", heading.Text.Text)
	require.Len(t, heading.Text.Spans, 1)
	assert.Equal(t, types.WeightBold, heading.Text.Spans[0].Style.Weight)

	fenced := blocks[3].(*types.CodeBlock)
	assert.True(t, fenced.Fenced)
	assert.Equal(t, "go", fenced.Language)
	assert.Equal(t, "x := 1", fenced.Code)

	indented := blocks[4].(*types.CodeBlock)
	assert.False(t, indented.Fenced)
	assert.Equal(t, "indented", indented.Code)

	ordered := blocks[5].(*types.List)
	assert.Equal(t, 3, ordered.Start)
	assert.Equal(t, "3.", ordered.Items[0].Marker)
	assert.Equal(t, "4.", ordered.Items[1].Marker)

	tasks := blocks[6].(*types.List)
	require.Len(t, tasks.Items, 2)
	assert.True(t, tasks.Items[0].Task)
	assert.True(t, tasks.Items[0].Checked)
	assert.Equal(t, "☑", tasks.Items[0].Marker)
	assert.False(t, tasks.Items[1].Checked)
	assert.Equal(t, "done", strings.TrimSpace(paragraph(t, tasks.Items[0].Children[0]).Text))

	table := blocks[7].(*types.Table)
	assert.Equal(t, []types.Alignment{types.AlignLeft, types.AlignRight}, table.Alignments)
	require.Len(t, table.Header, 2)
	assert.Equal(t, "h1", table.Header[0].Text.Text)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "b", table.Rows[0][1].Text.Text)
	assert.Equal(t, 2, table.Columns())
}

func TestBlocks_CodeHighlighting(t *testing.T) {
	doc, src := parser.Parse("```kotlin\nval x = 1\n```\n\n```\nplain\n```")
	fake := &fakeHighlighter{}
	w := NewWalker(src, Options{Highlighter: fake})
	blocks, _ := w.Blocks(doc, Context{Theme: types.DefaultTheme()})
	require.Len(t, blocks, 2)

	code := blocks[0].(*types.CodeBlock)
	require.Len(t, code.Text.Spans, 2)
	assert.Equal(t, types.FamilyMonospace, code.Text.Spans[0].Style.Family)
	assert.Equal(t, 9, code.Text.Spans[0].End)
	assert.Equal(t, []string{"kotlin/github"}, fake.calls, "blocks without language are not highlighted")

	plain := blocks[1].(*types.CodeBlock)
	assert.Len(t, plain.Text.Spans, 1)
}

func TestBlocks_InputTreeUnchanged(t *testing.T) {
	doc, src := parser.Parse("a *b* [c](d)")
	before := doc.FirstChild().ChildCount()
	w := NewWalker(src, Options{MentionMark: mark})
	ctx := Context{Theme: types.DefaultTheme()}
	first, _ := w.Blocks(doc, ctx)
	second, _ := w.Blocks(doc, ctx)
	assert.Equal(t, before, doc.FirstChild().ChildCount())
	assert.Equal(t, first, second)
}
