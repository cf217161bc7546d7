package converter

import (
	"strings"

	"github.com/riverfjs/chatmark-go/internal/linkify"
	"github.com/riverfjs/chatmark-go/internal/types"
)

// locatedMention 已在工作副本中定位的提及，start 为字节偏移
type locatedMention struct {
	start   int
	mention types.DisplayMention
}

// Resolve 去除提及标记、检测链接，返回带样式文本与剩余提及池
//
// 提及按池中顺序匹配各自在文本中的首次出现；被消费的描述符不会再次匹配。
func (w *Walker) Resolve(text string, ctx Context) (types.StyledText, []types.DisplayMention) {
	working, found, remaining := w.spliceMentions(text, ctx.Mentions)

	st := types.StyledText{Text: working}
	utf16At := func(byteOffset int) int {
		return types.UTF16Len(working[:byteOffset])
	}
	total := types.UTF16Len(working)
	colors := ctx.Theme.Colors

	for _, l := range linkify.Find(working) {
		start, end := utf16At(l.Start), utf16At(l.End)
		if end-start <= 0 {
			continue
		}
		st.Spans = append(st.Spans, types.StyleSpan{
			Start: start,
			End:   end,
			Style: linkStyle(colors),
		})
		st.Annotations = append(st.Annotations, types.Annotation{
			Tag:   types.TagURL,
			Value: l.URL,
			Start: start,
			End:   end,
		})
	}

	for _, f := range found {
		start := utf16At(f.start)
		length := f.mention.Length
		if length <= 0 || start >= total || start+length > total {
			continue
		}
		style := types.SpanStyle{
			Weight: ctx.Theme.Typography.Body02.Weight,
			Color:  colors.OnPrimaryVariant,
		}
		if f.mention.IsSelfMention {
			style.Background = colors.PrimaryVariant
		}
		st.Spans = append(st.Spans, types.StyleSpan{Start: start, End: start + length, Style: style})
		st.Annotations = append(st.Annotations, types.Annotation{
			Tag:   types.TagMention,
			Value: f.mention.UserID.String(),
			Start: start,
			End:   start + length,
		})
	}

	return st, remaining
}

// spliceMentions 把 MARK+name+MARK 替换为 name，记录最终偏移
func (w *Walker) spliceMentions(text string, pool []types.DisplayMention) (string, []locatedMention, []types.DisplayMention) {
	if w.mark == "" || len(pool) == 0 || !strings.Contains(text, w.mark) {
		return text, nil, pool
	}

	working := text
	var found []locatedMention
	matched := make([]bool, len(pool))
	shift := 2 * len(w.mark)

	for i, dm := range pool {
		if dm.MentionUserName == "" {
			continue
		}
		token := w.mark + dm.MentionUserName + w.mark
		idx := strings.Index(working, token)
		if idx < 0 {
			continue
		}
		working = working[:idx] + dm.MentionUserName + working[idx+len(token):]
		// 之前定位的提及若位于替换点之后，需减去被删除的两个标记
		for j := range found {
			if found[j].start > idx {
				found[j].start -= shift
			}
		}
		found = append(found, locatedMention{start: idx, mention: dm})
		matched[i] = true
	}

	return working, found, w.consume(pool, matched, len(found))
}

// consume 按消费策略返回新的提及池
func (w *Walker) consume(pool []types.DisplayMention, matched []bool, count int) []types.DisplayMention {
	if count == 0 {
		return pool
	}
	if w.consumption == types.ConsumeHead {
		// 兼容旧行为：每次成功匹配都移除池首
		return append([]types.DisplayMention(nil), pool[min(count, len(pool)):]...)
	}
	remaining := make([]types.DisplayMention, 0, len(pool)-count)
	for i, dm := range pool {
		if !matched[i] {
			remaining = append(remaining, dm)
		}
	}
	return remaining
}

func linkStyle(colors types.ColorScheme) types.SpanStyle {
	return types.SpanStyle{
		Color:      colors.Primary,
		Decoration: types.DecorationUnderline,
	}
}
