package chatmark

import (
	"sort"
	"strings"

	"github.com/riverfjs/chatmark-go/internal/types"
)

// MarkMentions 将消息元数据中的提及区间转换为带标记的文本和提及描述符
//
// 区间以 UTF-16 code unit 表示并覆盖原始文本。越界、长度非正或与前一区间重叠的
// 区间被丢弃。返回的描述符按区间起点排序，可直接传给 Render。
func MarkMentions(text string, mentions []MessageMention, self QualifiedID) (string, []DisplayMention) {
	return MarkMentionsWith(text, mentions, self, DefaultMentionMark)
}

// MarkMentionsWith 与 MarkMentions 相同，但使用自定义标记
func MarkMentionsWith(text string, mentions []MessageMention, self QualifiedID, mark string) (string, []DisplayMention) {
	if len(mentions) == 0 || mark == "" {
		return text, nil
	}

	sorted := make([]MessageMention, len(mentions))
	copy(sorted, mentions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	total := types.UTF16Len(text)
	var (
		sb       strings.Builder
		result   []DisplayMention
		lastEnd  int
		lastByte int
	)
	for _, m := range sorted {
		end := m.Start + m.Length
		if m.Start < lastEnd || m.Length <= 0 || end > total {
			Logger.Printf("dropping mention of %s at [%d,%d): invalid range", m.UserID, m.Start, end)
			continue
		}
		startByte := types.ByteIndex(text, m.Start)
		endByte := types.ByteIndex(text, end)
		name := text[startByte:endByte]

		sb.WriteString(text[lastByte:startByte])
		sb.WriteString(mark)
		sb.WriteString(name)
		sb.WriteString(mark)

		result = append(result, DisplayMention{
			MentionUserName: name,
			UserID:          m.UserID,
			IsSelfMention:   self.Value != "" && m.UserID == self,
			Length:          types.UTF16Len(name),
		})
		lastEnd = end
		lastByte = endByte
	}
	sb.WriteString(text[lastByte:])
	return sb.String(), result
}
