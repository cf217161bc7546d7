package term

import (
	"github.com/mattn/go-runewidth"

	"github.com/riverfjs/chatmark-go/internal/types"
)

// Wrap splits st into lines no wider than width cells, breaking at spaces
// where possible. Explicit newlines always break. Spans and annotations are
// clipped to each line.
func Wrap(st types.StyledText, width int) []types.StyledText {
	var out []types.StyledText
	for _, line := range st.Lines() {
		if width <= 0 || runewidth.StringWidth(line.Text) <= width {
			out = append(out, line)
			continue
		}
		out = append(out, wrapLine(line, width)...)
	}
	return out
}

func wrapLine(line types.StyledText, width int) []types.StyledText {
	var out []types.StyledText
	start, off, col := 0, 0, 0
	lastSpace := -1

	for _, r := range line.Text {
		w := runewidth.RuneWidth(r)
		n := 1
		if r > 0xFFFF {
			n = 2
		}

		if col+w > width && off > start {
			switch {
			case r == ' ':
				// 溢出处恰好是空格：在此断行并丢弃空格
				out = append(out, line.Slice(start, off))
				start, col, lastSpace = off+n, 0, -1
				off += n
				continue
			case lastSpace > start:
				out = append(out, line.Slice(start, lastSpace))
				start = lastSpace + 1
			default:
				out = append(out, line.Slice(start, off))
				start = off
			}
			lastSpace = -1
			col = runewidth.StringWidth(line.Slice(start, off).Text)
		}

		if r == ' ' {
			lastSpace = off
		}
		col += w
		off += n
	}
	if off > start || len(out) == 0 {
		out = append(out, line.Slice(start, off))
	}
	return out
}
