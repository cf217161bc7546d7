package buffer

import (
	"strings"

	"github.com/riverfjs/chatmark-go/internal/types"
)

// TextBuffer accumulates plain text and tracks the current UTF-16 offset.
type TextBuffer struct {
	parts       []string
	utf16Offset int
}

// New creates a new TextBuffer.
func New() *TextBuffer {
	return &TextBuffer{
		parts: make([]string, 0),
	}
}

// Write appends text to the buffer.
func (tb *TextBuffer) Write(text string) {
	if text == "" {
		return
	}
	tb.parts = append(tb.parts, text)
	tb.utf16Offset += types.UTF16Len(text)
}

// UTF16Offset returns the current UTF-16 offset.
func (tb *TextBuffer) UTF16Offset() int {
	return tb.utf16Offset
}

// ByteOffset returns the current byte offset (total string length).
func (tb *TextBuffer) ByteOffset() int {
	total := 0
	for _, p := range tb.parts {
		total += len(p)
	}
	return total
}

// String returns the accumulated text.
func (tb *TextBuffer) String() string {
	var sb strings.Builder
	sb.Grow(tb.ByteOffset())
	for _, p := range tb.parts {
		sb.WriteString(p)
	}
	return sb.String()
}
