// Package highlight colours fenced code blocks with chroma.
package highlight

import (
	"io"
	"log"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/riverfjs/chatmark-go/internal/types"
	"github.com/riverfjs/chatmark-go/internal/util"
)

// Highlighter produces per-token style spans for code.
type Highlighter struct {
	logger *log.Logger
}

// New creates a Highlighter. A nil logger discards diagnostics.
func New(logger *log.Logger) *Highlighter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Highlighter{logger: logger}
}

// Highlight returns colour/weight spans for code in the given language using
// the named chroma style. Unknown languages yield no spans.
func (h *Highlighter) Highlight(code, language, style string) []types.StyleSpan {
	name := util.NormalizeLanguage(language)
	if name == "" || code == "" {
		return nil
	}
	lexer := lexers.Get(name)
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	chromaStyle := styles.Get(style)
	if chromaStyle == nil {
		chromaStyle = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		h.logger.Printf("highlight %s: %v", name, err)
		return nil
	}

	var spans []types.StyleSpan
	offset := 0
	for token := iterator(); token != chroma.EOF; token = iterator() {
		length := types.UTF16Len(token.Value)
		style, ok := spanStyle(chromaStyle.Get(token.Type))
		if ok && length > 0 {
			spans = append(spans, types.StyleSpan{Start: offset, End: offset + length, Style: style})
		}
		offset += length
	}
	return spans
}

func spanStyle(entry chroma.StyleEntry) (types.SpanStyle, bool) {
	var style types.SpanStyle
	if entry.Colour.IsSet() {
		style.Color = types.RGB(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
	}
	if entry.Bold == chroma.Yes {
		style.Weight = types.WeightBold
	}
	if entry.Italic == chroma.Yes {
		style.FontStyle = types.StyleItalic
	}
	if entry.Underline == chroma.Yes {
		style.Decoration |= types.DecorationUnderline
	}
	return style, !style.IsZero()
}
