package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverfjs/chatmark-go/internal/types"
)

func TestTextBuffer_Offsets(t *testing.T) {
	tb := New()
	tb.Write("a📌")
	tb.Write("")
	tb.Write("b\n\n")

	assert.Equal(t, 6, tb.UTF16Offset())
	assert.Equal(t, len("a📌b\n\n"), tb.ByteOffset())
	assert.Equal(t, "a📌b\n\n", tb.String())
}

func TestBuilder_NestedScopes(t *testing.T) {
	bold := types.SpanStyle{Weight: types.WeightBold}
	italic := types.SpanStyle{FontStyle: types.StyleItalic}

	b := NewBuilder()
	b.Append("a ")
	b.WithStyle(bold, func() {
		b.Append("b ")
		b.WithStyle(italic, func() {
			b.Append("c")
		})
	})
	b.Append(" d")
	st := b.Build()

	require.Equal(t, "a b c d", st.Text)
	require.Len(t, st.Spans, 2)
	// outer first
	assert.Equal(t, types.StyleSpan{Start: 2, End: 5, Style: bold}, st.Spans[0])
	assert.Equal(t, types.StyleSpan{Start: 4, End: 5, Style: italic}, st.Spans[1])
}

func TestBuilder_EmptyScopeDropped(t *testing.T) {
	b := NewBuilder()
	b.WithStyle(types.SpanStyle{Weight: types.WeightBold}, func() {})
	b.WithAnnotation(types.TagURL, "https://x", func() {})
	st := b.Build()
	assert.Empty(t, st.Spans)
	assert.Empty(t, st.Annotations)
}

func TestBuilder_AppendStyledShifts(t *testing.T) {
	b := NewBuilder()
	b.Append("👋 ")
	b.WithAnnotation(types.TagURL, "https://example.com", func() {
		b.AppendStyled(types.StyledText{
			Text:        "hi @Ann",
			Spans:       []types.StyleSpan{{Start: 3, End: 7, Style: types.SpanStyle{Weight: types.WeightBold}}},
			Annotations: []types.Annotation{{Tag: types.TagMention, Value: "u1", Start: 3, End: 7}},
		})
	})
	st := b.Build()

	require.Len(t, st.Spans, 1)
	assert.Equal(t, 6, st.Spans[0].Start)
	assert.Equal(t, 10, st.Spans[0].End)
	require.Len(t, st.Annotations, 2)
	assert.Equal(t, types.Annotation{Tag: types.TagURL, Value: "https://example.com", Start: 3, End: 10}, st.Annotations[0])
	assert.Equal(t, types.Annotation{Tag: types.TagMention, Value: "u1", Start: 6, End: 10}, st.Annotations[1])
}

func TestBuilder_ScopeClosesOnPanic(t *testing.T) {
	b := NewBuilder()
	func() {
		defer func() { _ = recover() }()
		b.WithStyle(types.SpanStyle{Weight: types.WeightBold}, func() {
			b.Append("x")
			panic("boom")
		})
	}()
	b.Append("y")
	st := b.Build()
	require.Len(t, st.Spans, 1)
	assert.Equal(t, 1, st.Spans[0].End)
}
