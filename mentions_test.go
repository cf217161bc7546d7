package chatmark

import (
	"testing"
)

// TestMarkMentions_RoundTrip 元数据提及标记后再渲染，偏移保持一致
func TestMarkMentions_RoundTrip(t *testing.T) {
	self := QualifiedID{Value: "b", Domain: "wire.com"}
	raw := "hi Zoë and 😀 Bob"
	meta := []MessageMention{
		{Start: 14, Length: 3, UserID: self},
		{Start: 3, Length: 3, UserID: QualifiedID{Value: "z"}},
		{Start: 4, Length: 2, UserID: QualifiedID{Value: "overlap"}},
		{Start: 16, Length: 5, UserID: QualifiedID{Value: "too-long"}},
		{Start: 0, Length: 0, UserID: QualifiedID{Value: "empty"}},
	}

	marked, mentions := MarkMentions(raw, meta, self)
	m := DefaultMentionMark
	wantMarked := "hi " + m + "Zoë" + m + " and 😀 " + m + "Bob" + m
	if marked != wantMarked {
		t.Errorf("MarkMentions() text = %q, want %q", marked, wantMarked)
	}
	if len(mentions) != 2 {
		t.Fatalf("MarkMentions() mentions = %d, want 2", len(mentions))
	}
	if mentions[0].MentionUserName != "Zoë" || mentions[0].IsSelfMention {
		t.Errorf("mentions[0] = %+v", mentions[0])
	}
	if mentions[1].MentionUserName != "Bob" || !mentions[1].IsSelfMention || mentions[1].Length != 3 {
		t.Errorf("mentions[1] = %+v", mentions[1])
	}

	st := firstParagraph(t, Render(marked, mentions))
	if st.Text != raw {
		t.Errorf("Render() text = %q, want %q", st.Text, raw)
	}
	got := findAnnotations(st, TagMention)
	if len(got) != 2 {
		t.Fatalf("mention annotations = %d, want 2", len(got))
	}
	if got[0].Start != 3 || got[0].End != 6 || got[0].Value != "z" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Start != 14 || got[1].End != 17 || got[1].Value != "b@wire.com" {
		t.Errorf("got[1] = %+v", got[1])
	}
	// 自己被提及时带背景色
	if bg := st.StyleAt(15).Background; bg != DefaultTheme().Colors.PrimaryVariant {
		t.Errorf("self mention background = %v", bg)
	}
}

// TestMarkMentions_Empty 无提及时原样返回
func TestMarkMentions_Empty(t *testing.T) {
	text, mentions := MarkMentions("plain", nil, QualifiedID{})
	if text != "plain" || mentions != nil {
		t.Errorf("MarkMentions() = %q, %v", text, mentions)
	}
}

// TestMarkMentionsWith_CustomMark 自定义标记与 WithMentionMark 配合
func TestMarkMentionsWith_CustomMark(t *testing.T) {
	text, mentions := MarkMentionsWith("ping Ann", []MessageMention{{Start: 5, Length: 3, UserID: QualifiedID{Value: "a"}}}, QualifiedID{}, "#")
	if text != "ping #Ann#" {
		t.Errorf("MarkMentionsWith() = %q", text)
	}
	st := firstParagraph(t, Render(text, mentions, WithMentionMark("#")))
	if st.Text != "ping Ann" {
		t.Errorf("Render() text = %q", st.Text)
	}
	if findAnnotation(st, TagMention) == nil {
		t.Error("Render() should have mention annotation")
	}
}
