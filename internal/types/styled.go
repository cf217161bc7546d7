package types

import (
	"slices"
	"strings"
)

// UTF16Len returns the length of text measured in UTF-16 code units.
//
// Span offsets are UTF-16 code units, the unit the rendering widgets index
// text by. Characters outside the BMP take 2 code units; all others take 1.
func UTF16Len(text string) int {
	count := 0
	for _, r := range text {
		if r > 0xFFFF {
			count += 2
		} else {
			count++
		}
	}
	return count
}

// ByteIndex converts a UTF-16 offset into a byte index of text.
// Offsets inside a surrogate pair snap to the start of the rune; offsets past
// the end return len(text).
func ByteIndex(text string, utf16Offset int) int {
	if utf16Offset <= 0 {
		return 0
	}
	cum := 0
	for i, r := range text {
		next := cum + 1
		if r > 0xFFFF {
			next++
		}
		if next > utf16Offset {
			return i
		}
		cum = next
	}
	return len(text)
}

// StyledText 纯文本 + 样式区间 + 注解区间
type StyledText struct {
	Text        string       `json:"text"`
	Spans       []StyleSpan  `json:"spans,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Plain 创建无样式文本
func Plain(text string) StyledText {
	return StyledText{Text: text}
}

// Len 返回 UTF-16 长度
func (st StyledText) Len() int {
	return UTF16Len(st.Text)
}

// IsEmpty reports whether there is no text.
func (st StyledText) IsEmpty() bool {
	return st.Text == ""
}

// AnnotationsAt 返回覆盖 offset 的指定 tag 注解；tag 为空时返回所有
func (st StyledText) AnnotationsAt(offset int, tag string) []Annotation {
	var result []Annotation
	for _, a := range st.Annotations {
		if tag != "" && a.Tag != tag {
			continue
		}
		if offset >= a.Start && offset < a.End {
			result = append(result, a)
		}
	}
	return result
}

// StyleAt 返回 offset 处所有样式区间按顺序叠加的结果
func (st StyledText) StyleAt(offset int) SpanStyle {
	var s SpanStyle
	for _, sp := range st.Spans {
		if offset >= sp.Start && offset < sp.End {
			s = s.Merge(sp.Style)
		}
	}
	return s
}

// Slice 提取 [start, end) 的子串及其重叠的区间，区间被裁剪并平移到新起点
func (st StyledText) Slice(start, end int) StyledText {
	total := st.Len()
	start = max(0, start)
	end = min(end, total)
	if start >= end {
		return StyledText{}
	}
	out := StyledText{Text: st.Text[ByteIndex(st.Text, start):ByteIndex(st.Text, end)]}
	for _, sp := range st.Spans {
		s, e, ok := clip(sp.Start, sp.End, start, end)
		if !ok {
			continue
		}
		out.Spans = append(out.Spans, StyleSpan{Start: s - start, End: e - start, Style: sp.Style})
	}
	for _, a := range st.Annotations {
		s, e, ok := clip(a.Start, a.End, start, end)
		if !ok {
			continue
		}
		out.Annotations = append(out.Annotations, Annotation{Tag: a.Tag, Value: a.Value, Start: s - start, End: e - start})
	}
	return out
}

func clip(s, e, lo, hi int) (int, int, bool) {
	if e <= lo || s >= hi {
		return 0, 0, false
	}
	s = max(s, lo)
	e = min(e, hi)
	return s, e, e > s
}

// Lines 按 '\n' 拆分，换行符本身不保留
func (st StyledText) Lines() []StyledText {
	if st.Text == "" {
		return []StyledText{{}}
	}
	var lines []StyledText
	offset := 0
	for _, part := range strings.Split(st.Text, "\n") {
		n := UTF16Len(part)
		lines = append(lines, st.Slice(offset, offset+n))
		offset += n + 1
	}
	return lines
}

// TrimSpace removes leading and trailing whitespace while adjusting spans.
func (st StyledText) TrimSpace() StyledText {
	trimmed := strings.TrimSpace(st.Text)
	if trimmed == st.Text {
		return st
	}
	if trimmed == "" {
		return StyledText{}
	}
	lead := UTF16Len(st.Text[:strings.Index(st.Text, trimmed)])
	return st.Slice(lead, lead+UTF16Len(trimmed))
}

// Run 样式和注解都不变的区间 [Start, End)
type Run struct {
	Start, End int
}

// Runs splits the text at every span and annotation boundary.
func (st StyledText) Runs() []Run {
	total := st.Len()
	if total == 0 {
		return nil
	}
	cuts := []int{0, total}
	for _, sp := range st.Spans {
		cuts = append(cuts, sp.Start, sp.End)
	}
	for _, a := range st.Annotations {
		cuts = append(cuts, a.Start, a.End)
	}
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)

	runs := make([]Run, 0, len(cuts))
	for i := 1; i < len(cuts); i++ {
		if cuts[i-1] >= 0 && cuts[i] <= total {
			runs = append(runs, Run{cuts[i-1], cuts[i]})
		}
	}
	return runs
}

// RunText returns the text covered by r.
func (st StyledText) RunText(r Run) string {
	return st.Text[ByteIndex(st.Text, r.Start):ByteIndex(st.Text, r.End)]
}
