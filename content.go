package chatmark

import "github.com/riverfjs/chatmark-go/internal/types"

// Block is one block-level element of a rendered message.
type Block = types.Block

// BlockKind identifies the concrete type of a Block.
type BlockKind = types.BlockKind

const (
	BlockParagraph     = types.BlockParagraph
	BlockHeading       = types.BlockHeading
	BlockQuote         = types.BlockQuote
	BlockThematicBreak = types.BlockThematicBreak
	BlockCode          = types.BlockCode
	BlockBulletList    = types.BlockBulletList
	BlockOrderedList   = types.BlockOrderedList
	BlockTable         = types.BlockTable
)

// 块级元素类型别名
type (
	Paragraph       = types.Paragraph
	Heading         = types.Heading
	BlockQuoteBlock = types.BlockQuoteBlock
	ThematicBreak   = types.ThematicBreak
	CodeBlock       = types.CodeBlock
	List            = types.List
	ListItem        = types.ListItem
	Table           = types.Table
	TableCell       = types.TableCell
	Alignment       = types.Alignment
)

const (
	AlignNone   = types.AlignNone
	AlignLeft   = types.AlignLeft
	AlignCenter = types.AlignCenter
	AlignRight  = types.AlignRight
)
