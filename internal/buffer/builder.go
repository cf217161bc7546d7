package buffer

import (
	"github.com/riverfjs/chatmark-go/internal/types"
)

// Builder accumulates styled text. Style and annotation scopes are opened
// and closed by WithStyle / WithAnnotation, so every push has exactly one pop.
//
// Spans are recorded in push order: an outer scope precedes the scopes it
// encloses, which lets later spans override earlier ones when merged.
type Builder struct {
	buf         *TextBuffer
	spans       []types.StyleSpan
	annotations []types.Annotation
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{buf: New()}
}

// Offset returns the current UTF-16 offset.
func (b *Builder) Offset() int {
	return b.buf.UTF16Offset()
}

// Append writes unstyled text; open scopes extend over it.
func (b *Builder) Append(text string) {
	b.buf.Write(text)
}

// AppendStyled writes st, shifting its spans and annotations to the current offset.
func (b *Builder) AppendStyled(st types.StyledText) {
	base := b.Offset()
	b.buf.Write(st.Text)
	for _, sp := range st.Spans {
		b.AddStyle(sp.Style, base+sp.Start, base+sp.End)
	}
	for _, a := range st.Annotations {
		b.AddAnnotation(a.Tag, a.Value, base+a.Start, base+a.End)
	}
}

// AddStyle records a closed style span. Empty ranges are ignored.
func (b *Builder) AddStyle(style types.SpanStyle, start, end int) {
	if end <= start {
		return
	}
	b.spans = append(b.spans, types.StyleSpan{Start: start, End: end, Style: style})
}

// AddAnnotation records a closed annotation. Empty ranges are ignored.
func (b *Builder) AddAnnotation(tag, value string, start, end int) {
	if end <= start {
		return
	}
	b.annotations = append(b.annotations, types.Annotation{Tag: tag, Value: value, Start: start, End: end})
}

// WithStyle applies style to everything fn writes. The span ends exactly at
// the offset reached when fn returns; nothing is recorded if fn wrote nothing.
func (b *Builder) WithStyle(style types.SpanStyle, fn func()) {
	idx := len(b.spans)
	start := b.Offset()
	b.spans = append(b.spans, types.StyleSpan{Start: start, End: start, Style: style})
	defer func() {
		b.spans[idx].End = b.Offset()
	}()
	fn()
}

// WithAnnotation tags everything fn writes with (tag, value).
func (b *Builder) WithAnnotation(tag, value string, fn func()) {
	idx := len(b.annotations)
	start := b.Offset()
	b.annotations = append(b.annotations, types.Annotation{Tag: tag, Value: value, Start: start, End: start})
	defer func() {
		b.annotations[idx].End = b.Offset()
	}()
	fn()
}

// Build returns the accumulated styled text. Empty spans and annotations are dropped.
func (b *Builder) Build() types.StyledText {
	st := types.StyledText{Text: b.buf.String()}
	for _, sp := range b.spans {
		if sp.End > sp.Start {
			st.Spans = append(st.Spans, sp)
		}
	}
	for _, a := range b.annotations {
		if a.End > a.Start {
			st.Annotations = append(st.Annotations, a)
		}
	}
	return st
}
