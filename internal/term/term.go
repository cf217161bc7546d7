// Package term renders message blocks for a terminal.
//
// Styled runs become lipgloss styles, links optionally become OSC 8
// hyperlinks, and layout (wrapping, list indentation, table columns) is
// measured with go-runewidth so wide characters line up.
package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/riverfjs/chatmark-go/internal/types"
)

// DefaultWidth is used when Options.Width is not positive.
const DefaultWidth = 80

// Options controls terminal rendering.
type Options struct {
	// Width is the wrap width in cells.
	Width int
	// Hyperlinks emits OSC 8 escape sequences for link annotations.
	Hyperlinks bool
	// Profile selects the colour depth. termenv.Ascii renders plain text.
	Profile termenv.Profile
	// Theme supplies colours and symbols; nil uses the default theme.
	Theme *types.Theme
}

// Render renders blocks into a string ready to be written to a terminal.
func Render(blocks []types.Block, opts Options) string {
	r := newRenderer(opts)
	return strings.Join(r.blocks(blocks, r.width), "\n")
}

// RenderText renders a single styled text with wrapping.
func RenderText(st types.StyledText, opts Options) string {
	r := newRenderer(opts)
	return strings.Join(r.paragraph(st, r.width, lipgloss.Style{}), "\n")
}

type renderer struct {
	lg         *lipgloss.Renderer
	theme      *types.Theme
	width      int
	hyperlinks bool
}

func newRenderer(opts Options) *renderer {
	lg := lipgloss.NewRenderer(io.Discard)
	lg.SetColorProfile(opts.Profile)
	theme := opts.Theme
	if theme == nil {
		theme = types.DefaultTheme()
	}
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	return &renderer{lg: lg, theme: theme, width: width, hyperlinks: opts.Hyperlinks}
}

func (r *renderer) blocks(blocks []types.Block, width int) []string {
	var lines []string
	for i, b := range blocks {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, r.block(b, width)...)
	}
	return lines
}

func (r *renderer) block(block types.Block, width int) []string {
	switch v := block.(type) {
	case *types.Paragraph:
		return r.paragraph(v.Text, width, lipgloss.Style{})

	case *types.Heading:
		base := r.lg.NewStyle().Bold(true).Foreground(color(r.theme.Colors.Primary))
		if v.Level == 1 {
			base = base.Underline(true)
		}
		return r.paragraph(v.Text, width, base)

	case *types.BlockQuoteBlock:
		gutter := r.muted().Render(r.theme.Symbols.Quote) + " "
		inner := r.blocks(v.Children, max(width-2, 1))
		for i, line := range inner {
			inner[i] = gutter + line
		}
		return inner

	case *types.ThematicBreak:
		sym := r.theme.Symbols.ThematicBreak
		n := max(width/max(runewidth.StringWidth(sym), 1), 1)
		return []string{r.muted().Render(strings.Repeat(sym, n))}

	case *types.CodeBlock:
		return r.code(v)

	case *types.List:
		return r.list(v, width)

	case *types.Table:
		return r.table(v)
	}
	return nil
}

func (r *renderer) muted() lipgloss.Style {
	return r.lg.NewStyle().Foreground(color(r.theme.Colors.Muted))
}

func (r *renderer) paragraph(st types.StyledText, width int, base lipgloss.Style) []string {
	var lines []string
	for _, line := range Wrap(st, width) {
		lines = append(lines, r.styled(line, base))
	}
	return lines
}

func (r *renderer) code(c *types.CodeBlock) []string {
	var body []string
	for _, line := range c.Text.Lines() {
		body = append(body, r.styled(line, lipgloss.Style{}))
	}
	box := r.lg.NewStyle().
		Background(color(r.theme.Colors.CodeBackground)).
		Padding(0, 1).
		Render(strings.Join(body, "\n"))
	lines := strings.Split(box, "\n")
	if c.Language != "" {
		lines = append([]string{r.muted().Render(c.Language)}, lines...)
	}
	return lines
}

func (r *renderer) list(l *types.List, width int) []string {
	var lines []string
	for i, item := range l.Items {
		if i > 0 && !l.Tight {
			lines = append(lines, "")
		}
		marker := item.Marker + " "
		mw := runewidth.StringWidth(marker)
		indent := strings.Repeat(" ", mw)

		var inner []string
		if l.Tight {
			for _, child := range item.Children {
				inner = append(inner, r.block(child, max(width-mw, 1))...)
			}
		} else {
			inner = r.blocks(item.Children, max(width-mw, 1))
		}
		if len(inner) == 0 {
			inner = []string{""}
		}
		markerStyle := r.lg.NewStyle().Foreground(color(r.theme.Colors.Primary))
		for j, line := range inner {
			if j == 0 {
				lines = append(lines, markerStyle.Render(item.Marker)+" "+line)
			} else if line == "" {
				lines = append(lines, "")
			} else {
				lines = append(lines, indent+line)
			}
		}
	}
	return lines
}

func (r *renderer) table(t *types.Table) []string {
	cols := t.Columns()
	if cols == 0 {
		return nil
	}
	widths := make([]int, cols)
	for _, row := range append([][]types.TableCell{t.Header}, t.Rows...) {
		for i, c := range row {
			if i < cols {
				widths[i] = max(widths[i], runewidth.StringWidth(c.Text.Text))
			}
		}
	}

	sep := r.muted().Render(" │ ")
	row := func(cells []types.TableCell) string {
		parts := make([]string, cols)
		for i := range parts {
			var cell types.StyledText
			if i < len(cells) {
				cell = cells[i].Text
			}
			pad := widths[i] - runewidth.StringWidth(cell.Text)
			left := 0
			switch alignment(t, i) {
			case types.AlignRight:
				left = pad
			case types.AlignCenter:
				left = pad / 2
			}
			parts[i] = strings.Repeat(" ", left) + r.styled(cell, lipgloss.Style{}) + strings.Repeat(" ", pad-left)
		}
		return strings.Join(parts, sep)
	}

	rules := make([]string, cols)
	for i, w := range widths {
		rules[i] = strings.Repeat("─", w)
	}
	lines := []string{row(t.Header), r.muted().Render(strings.Join(rules, "─┼─"))}
	for _, cells := range t.Rows {
		lines = append(lines, row(cells))
	}
	return lines
}

func alignment(t *types.Table, col int) types.Alignment {
	if col < len(t.Alignments) {
		return t.Alignments[col]
	}
	return types.AlignNone
}

// styled renders one line of styled text; base applies underneath every run.
func (r *renderer) styled(st types.StyledText, base lipgloss.Style) string {
	var sb strings.Builder
	for _, run := range st.Runs() {
		style := r.lipglossStyle(base, st.StyleAt(run.Start))
		out := style.Render(st.RunText(run))
		if r.hyperlinks {
			if links := st.AnnotationsAt(run.Start, types.TagURL); len(links) > 0 {
				out = termenv.Hyperlink(links[0].Value, out)
			}
		}
		sb.WriteString(out)
	}
	return sb.String()
}

func (r *renderer) lipglossStyle(base lipgloss.Style, s types.SpanStyle) lipgloss.Style {
	style := r.lg.NewStyle().Inherit(base)
	if s.Weight == types.WeightBold {
		style = style.Bold(true)
	}
	if s.FontStyle == types.StyleItalic {
		style = style.Italic(true)
	}
	if s.Decoration.Has(types.DecorationUnderline) {
		style = style.Underline(true)
	}
	if s.Decoration.Has(types.DecorationLineThrough) {
		style = style.Strikethrough(true)
	}
	if s.Color.IsSet() {
		style = style.Foreground(color(s.Color))
	}
	if s.Background.IsSet() {
		style = style.Background(color(s.Background))
	}
	return style
}

func color(c types.Color) lipgloss.TerminalColor {
	if !c.IsSet() {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}
