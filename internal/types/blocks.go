package types

// BlockKind represents the type of a block-level element.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockQuote
	BlockThematicBreak
	BlockCode
	BlockBulletList
	BlockOrderedList
	BlockTable
)

// String returns the string representation of BlockKind.
func (k BlockKind) String() string {
	switch k {
	case BlockParagraph:
		return "paragraph"
	case BlockHeading:
		return "heading"
	case BlockQuote:
		return "block_quote"
	case BlockThematicBreak:
		return "thematic_break"
	case BlockCode:
		return "code_block"
	case BlockBulletList:
		return "bullet_list"
	case BlockOrderedList:
		return "ordered_list"
	case BlockTable:
		return "table"
	default:
		return "unknown"
	}
}

// Block is a block-level visual element ready for layout.
type Block interface {
	Kind() BlockKind
}

// Paragraph is a run of inline content.
type Paragraph struct {
	Text StyledText
}

// Kind returns BlockParagraph.
func (p *Paragraph) Kind() BlockKind { return BlockParagraph }

// Heading is a heading of level 1 to 6.
type Heading struct {
	Level int
	Text  StyledText
}

// Kind returns BlockHeading.
func (h *Heading) Kind() BlockKind { return BlockHeading }

// BlockQuoteBlock groups quoted blocks; nesting is kept as nested values.
type BlockQuoteBlock struct {
	Children []Block
}

// Kind returns BlockQuote.
func (q *BlockQuoteBlock) Kind() BlockKind { return BlockQuote }

// Depth returns the maximum quote nesting depth, counting q itself.
func (q *BlockQuoteBlock) Depth() int {
	depth := 0
	for _, c := range q.Children {
		if inner, ok := c.(*BlockQuoteBlock); ok {
			depth = max(depth, inner.Depth())
		}
	}
	return depth + 1
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// Kind returns BlockThematicBreak.
func (t *ThematicBreak) Kind() BlockKind { return BlockThematicBreak }

// CodeBlock is a fenced or indented code block. Text carries the code with
// a monospace span and, when highlighted, per-token colour spans.
type CodeBlock struct {
	Language string
	Code     string
	Fenced   bool
	Text     StyledText
}

// Kind returns BlockCode.
func (c *CodeBlock) Kind() BlockKind { return BlockCode }

// ListItem is one entry of a list.
type ListItem struct {
	Marker   string
	Task     bool
	Checked  bool
	Children []Block
}

// List is a bullet or ordered list.
type List struct {
	Ordered bool
	Start   int
	Tight   bool
	Items   []ListItem
}

// Kind returns BlockOrderedList or BlockBulletList.
func (l *List) Kind() BlockKind {
	if l.Ordered {
		return BlockOrderedList
	}
	return BlockBulletList
}

// Alignment is a table column alignment.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// TableCell is one rendered cell.
type TableCell struct {
	Text StyledText
}

// Table is a GFM table.
type Table struct {
	Alignments []Alignment
	Header     []TableCell
	Rows       [][]TableCell
}

// Kind returns BlockTable.
func (t *Table) Kind() BlockKind { return BlockTable }

// Columns returns the widest row's cell count.
func (t *Table) Columns() int {
	n := len(t.Header)
	for _, r := range t.Rows {
		n = max(n, len(r))
	}
	return n
}
