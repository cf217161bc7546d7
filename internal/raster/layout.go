package raster

import (
	"strings"
	"unicode"

	"golang.org/x/image/font"

	"github.com/riverfjs/chatmark-go/internal/types"
)

// frag 一段同样式、同行的文本
type frag struct {
	text      string
	x, width  int
	face      font.Face
	fg, bg    types.Color
	underline bool
	strike    bool
}

type lineKind int

const (
	lineText lineKind = iota
	lineCode
	lineRule
	lineGap
)

// line 排版后的一行
type line struct {
	kind   lineKind
	frags  []frag
	bars   []int // 引用竖线的 x 坐标
	indent int
	height int
	ascent int
}

// layout 将块级元素排成行
type layout struct {
	faces    *faceCache
	theme    *types.Theme
	size     float64
	maxX     int
	lines    []line
	bars     []int
	blockGap int
}

func (l *layout) bodyFace() font.Face {
	return l.faces.face(regular, l.size)
}

func (l *layout) blocks(blocks []types.Block, indent int) {
	for i, b := range blocks {
		if i > 0 {
			l.gap(l.blockGap)
		}
		l.block(b, indent)
	}
}

func (l *layout) gap(height int) {
	l.lines = append(l.lines, line{kind: lineGap, height: height, bars: l.barsCopy()})
}

func (l *layout) barsCopy() []int {
	if len(l.bars) == 0 {
		return nil
	}
	return append([]int(nil), l.bars...)
}

func (l *layout) block(block types.Block, indent int) {
	switch v := block.(type) {
	case *types.Paragraph:
		l.text(v.Text, indent, 1, lineText, true)

	case *types.Heading:
		body := l.theme.Typography.Body01.Size
		title := l.theme.Title(v.Level).Size
		scale := 1.0
		if body > 0 && title > 0 {
			scale = title / body
		}
		l.text(v.Text, indent, scale, lineText, true)

	case *types.BlockQuoteBlock:
		bar := l.size * 0.8
		l.bars = append(l.bars, indent+int(bar/2))
		l.blocks(v.Children, indent+int(bar*1.5))
		l.bars = l.bars[:len(l.bars)-1]

	case *types.ThematicBreak:
		l.lines = append(l.lines, line{kind: lineRule, indent: indent, height: int(l.size), bars: l.barsCopy()})

	case *types.CodeBlock:
		pad := int(l.size / 2)
		for _, ln := range v.Text.Lines() {
			l.text(ln, indent+pad, 1, lineCode, false)
		}

	case *types.List:
		l.list(v, indent)

	case *types.Table:
		l.table(v, indent)
	}
}

func (l *layout) list(list *types.List, indent int) {
	face := l.bodyFace()
	for i, item := range list.Items {
		if i > 0 && !list.Tight {
			l.gap(l.blockGap)
		}
		marker := item.Marker + " "
		mw := font.MeasureString(face, marker).Ceil()
		first := len(l.lines)
		if list.Tight {
			for _, child := range item.Children {
				l.block(child, indent+mw)
			}
		} else {
			l.blocks(item.Children, indent+mw)
		}
		if first == len(l.lines) {
			l.lines = append(l.lines, l.newLine(lineText, indent))
		}
		ln := &l.lines[first]
		ln.frags = append([]frag{{
			text:  item.Marker,
			x:     indent,
			width: font.MeasureString(face, item.Marker).Ceil(),
			face:  face,
			fg:    l.theme.Colors.Primary,
		}}, ln.frags...)
		l.fit(ln)
	}
}

func (l *layout) table(t *types.Table, indent int) {
	cols := t.Columns()
	if cols == 0 {
		return
	}
	pad := int(l.size)
	widths := make([]int, cols)
	rows := append([][]types.TableCell{t.Header}, t.Rows...)
	for _, row := range rows {
		for i, c := range row {
			if i < cols {
				widths[i] = max(widths[i], l.measure(c.Text, 1))
			}
		}
	}

	for r, row := range rows {
		ln := l.newLine(lineText, indent)
		x := indent
		for i := 0; i < cols; i++ {
			if i < len(row) {
				w := l.measure(row[i].Text, 1)
				left := 0
				if i < len(t.Alignments) {
					switch t.Alignments[i] {
					case types.AlignRight:
						left = widths[i] - w
					case types.AlignCenter:
						left = (widths[i] - w) / 2
					}
				}
				cx := x + left
				for _, f := range l.frags(row[i].Text, 1) {
					f.x = cx
					cx += f.width
					ln.frags = append(ln.frags, f)
				}
			}
			x += widths[i] + pad
		}
		l.fit(&ln)
		l.lines = append(l.lines, ln)
		if r == 0 {
			l.lines = append(l.lines, line{kind: lineRule, indent: indent, height: pad / 2, bars: l.barsCopy()})
		}
	}
}

func (l *layout) newLine(kind lineKind, indent int) line {
	return line{kind: kind, indent: indent, bars: l.barsCopy()}
}

// text 排版带样式文本；wrap 为 false 时不折行
func (l *layout) text(st types.StyledText, indent int, scale float64, kind lineKind, wrap bool) {
	ln := l.newLine(kind, indent)
	x := indent
	flush := func() {
		l.fit(&ln)
		l.lines = append(l.lines, ln)
		ln = l.newLine(kind, indent)
		x = indent
	}

	for _, f := range l.frags(st, scale) {
		for _, tok := range tokens(f.text) {
			if tok == "\n" {
				flush()
				continue
			}
			w := font.MeasureString(f.face, tok).Ceil()
			space := strings.TrimSpace(tok) == ""
			if wrap && x+w > l.maxX && x > indent {
				if space {
					flush()
					continue
				}
				flush()
			}
			piece := f
			piece.text, piece.x, piece.width = tok, x, w
			ln.frags = append(ln.frags, piece)
			x += w
		}
	}
	flush()
}

// frags 按样式边界切分文本，不处理位置
func (l *layout) frags(st types.StyledText, scale float64) []frag {
	var out []frag
	for _, r := range st.Runs() {
		text := st.RunText(r)
		style := st.StyleAt(r.Start)
		face := l.faces.face(variantOf(style), l.size*scale)
		fg := style.Color
		if !fg.IsSet() {
			fg = l.theme.Colors.OnBackground
		}
		out = append(out, frag{
			text:      text,
			width:     font.MeasureString(face, text).Ceil(),
			face:      face,
			fg:        fg,
			bg:        style.Background,
			underline: style.Decoration.Has(types.DecorationUnderline),
			strike:    style.Decoration.Has(types.DecorationLineThrough),
		})
	}
	return out
}

func (l *layout) measure(st types.StyledText, scale float64) int {
	w := 0
	for _, f := range l.frags(st, scale) {
		w += f.width
	}
	return w
}

// fit 根据行内字体计算行高和基线
func (l *layout) fit(ln *line) {
	faces := []font.Face{l.bodyFace()}
	for _, f := range ln.frags {
		faces = append(faces, f.face)
	}
	ascent, descent := 0, 0
	for _, face := range faces {
		m := face.Metrics()
		ascent = max(ascent, m.Ascent.Ceil())
		descent = max(descent, m.Descent.Ceil())
	}
	lead := (ascent + descent) / 5
	ln.ascent = ascent + lead/2
	ln.height = ascent + descent + lead
}

// tokens 将文本拆为单词、空白和换行
func tokens(s string) []string {
	var out []string
	start := 0
	inSpace := false
	for i, r := range s {
		if r == '\n' {
			if i > start {
				out = append(out, s[start:i])
			}
			out = append(out, "\n")
			start = i + 1
			inSpace = false
			continue
		}
		sp := unicode.IsSpace(r)
		if i > start && sp != inSpace {
			out = append(out, s[start:i])
			start = i
		}
		inSpace = sp
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
