package chatmark

import "github.com/riverfjs/chatmark-go/internal/types"

// 导出类型别名
type (
	StyledText     = types.StyledText
	StyleSpan      = types.StyleSpan
	SpanStyle      = types.SpanStyle
	Annotation     = types.Annotation
	QualifiedID    = types.QualifiedID
	DisplayMention = types.DisplayMention
	MessageMention = types.MessageMention
)

// Annotation tags attached to rendered text.
const (
	// TagURL marks a hyperlink; the value is the destination.
	TagURL = types.TagURL
	// TagMention marks a resolved user mention; the value is the user id.
	TagMention = types.TagMention
)

// UTF16Len returns the length of text measured in UTF-16 code units.
//
// All span and annotation offsets use this unit. Characters outside the BMP
// take 2 code units (a surrogate pair); all others take 1.
func UTF16Len(text string) int {
	return types.UTF16Len(text)
}

// ParseQualifiedID parses "value" or "value@domain".
func ParseQualifiedID(s string) QualifiedID {
	return types.ParseQualifiedID(s)
}
