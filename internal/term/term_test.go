package term

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverfjs/chatmark-go/internal/converter"
	"github.com/riverfjs/chatmark-go/internal/parser"
	"github.com/riverfjs/chatmark-go/internal/types"
)

func blocksOf(md string) []types.Block {
	doc, src := parser.Parse(md)
	blocks, _ := converter.NewWalker(src, converter.Options{MentionMark: converter.DefaultMentionMark}).
		Blocks(doc, converter.Context{Theme: types.DefaultTheme()})
	return blocks
}

func plain(md string, width int) string {
	return Render(blocksOf(md), Options{Width: width, Profile: termenv.Ascii})
}

func TestRender_PlainLayout(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want string
	}{
		{"heading and paragraph", "# Title\n\nHello *world*", "Title\n\nHello\nworld"},
		{"quote", "> quoted\n>\n> > deeper", "│ quoted\n│ \n│ │ deeper"},
		{"thematic break", "---", strings.Repeat("—", 10)},
		{"tight list", "- a\n- b", "• a\n• b"},
		{"ordered list", "7. x\n8. y", "7. x\n8. y"},
		{"table", "| a | bb |\n|---|--:|\n| ccc | d |", "a   │ bb\n────┼───\nccc │  d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plain(tt.md, 10))
		})
	}
}

func TestRender_TaskMarker(t *testing.T) {
	out := plain("- [x] done\n- [ ] todo", 20)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "☑ "))
	assert.Equal(t, "done", strings.TrimSpace(strings.TrimPrefix(lines[0], "☑")))
	assert.True(t, strings.HasPrefix(lines[1], "☐ "))
}

func TestRender_CodeBlockBox(t *testing.T) {
	out := plain("```go\nx := 1\ny\n```", 40)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "go", lines[0])
	assert.Equal(t, " x := 1 ", lines[1])
	assert.Equal(t, " y      ", lines[2], "box lines are padded to equal width")
}

func TestRender_WrapsLongParagraph(t *testing.T) {
	out := plain("one two three four five", 9)
	assert.Equal(t, "one two\nthree\nfour five", out)
}

func TestRender_ExactFitNotWrapped(t *testing.T) {
	// "Hello world" 恰好 11 列
	assert.Equal(t, "Hello world", plain("Hello *world*", 11))
	assert.Equal(t, "Hello\nworld", plain("Hello *world*", 10))
	assert.Equal(t, []string{"abc"}, lineTexts(Wrap(types.Plain("abc"), 3)))
}

func lineTexts(lines []types.StyledText) []string {
	var texts []string
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	return texts
}

func TestRender_ListContinuationIndent(t *testing.T) {
	out := plain("- alpha beta gamma", 10)
	assert.Equal(t, "• alpha\n  beta\n  gamma", out)
}

func TestRender_Hyperlinks(t *testing.T) {
	blocks := blocksOf("see [docs](https://x.io)")
	out := Render(blocks, Options{Profile: termenv.Ascii, Hyperlinks: true})
	assert.Contains(t, out, "8;;https://x.io")
	assert.Contains(t, out, "docs")

	out = Render(blocks, Options{Profile: termenv.Ascii})
	assert.Equal(t, "see docs", out)
}

func TestRender_ColourProfileEmitsEscapes(t *testing.T) {
	out := Render(blocksOf("**bold**"), Options{Profile: termenv.TrueColor})
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "bold")
}

func TestRenderText(t *testing.T) {
	st := types.StyledText{
		Text:  "ab cd",
		Spans: []types.StyleSpan{{Start: 0, End: 5, Style: types.SpanStyle{Weight: types.WeightBold}}},
	}
	assert.Equal(t, "ab\ncd", RenderText(st, Options{Width: 3, Profile: termenv.Ascii}))
}

func TestWrap(t *testing.T) {
	st := types.StyledText{
		Text:        "hello wide 世界 world",
		Spans:       []types.StyleSpan{{Start: 6, End: 13, Style: types.SpanStyle{FontStyle: types.StyleItalic}}},
		Annotations: []types.Annotation{{Tag: types.TagURL, Value: "u", Start: 14, End: 19}},
	}
	lines := Wrap(st, 10)
	var texts []string
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	assert.Equal(t, []string{"hello wide", "世界 world"}, texts)

	// 区间按行裁剪并平移
	require.Len(t, lines[0].Spans, 1)
	assert.Equal(t, types.StyleSpan{Start: 6, End: 10, Style: types.SpanStyle{FontStyle: types.StyleItalic}}, lines[0].Spans[0])
	require.Len(t, lines[1].Spans, 1)
	assert.Equal(t, 0, lines[1].Spans[0].Start)
	assert.Equal(t, 2, lines[1].Spans[0].End)
	require.Len(t, lines[1].Annotations, 1)
	assert.Equal(t, 3, lines[1].Annotations[0].Start)
	assert.Equal(t, 8, lines[1].Annotations[0].End)
}

func TestWrap_HardBreakLongWord(t *testing.T) {
	lines := Wrap(types.Plain("abcdefgh"), 3)
	var texts []string
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	assert.Equal(t, []string{"abc", "def", "gh"}, texts)
}
