package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/riverfjs/chatmark-go"
)

// message 消息正文及其提及元数据
type message struct {
	Text     string
	Mentions []chatmark.MessageMention
}

// parseMessage 解析消息 JSON
//
// user_id 可以是 "value@domain" 字符串或 {"value": ..., "domain": ...} 对象；
// 缺失时生成随机 ID，保证提及仍被渲染。
func parseMessage(data []byte) (*message, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("message: invalid JSON")
	}
	root := gjson.ParseBytes(data)
	text := root.Get("text")
	if !text.Exists() {
		return nil, errors.New("message: missing \"text\"")
	}

	msg := &message{Text: text.String()}
	var err error
	root.Get("mentions").ForEach(func(i, m gjson.Result) bool {
		start, length := m.Get("start"), m.Get("length")
		if !start.Exists() || !length.Exists() {
			err = fmt.Errorf("message: mention %d: start and length are required", i.Int())
			return false
		}
		msg.Mentions = append(msg.Mentions, chatmark.MessageMention{
			Start:  int(start.Int()),
			Length: int(length.Int()),
			UserID: userID(m.Get("user_id")),
		})
		return true
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func userID(r gjson.Result) chatmark.QualifiedID {
	switch {
	case r.IsObject():
		id := chatmark.QualifiedID{Value: r.Get("value").String(), Domain: r.Get("domain").String()}
		if id.Value != "" {
			return id
		}
	case r.String() != "":
		return chatmark.ParseQualifiedID(r.String())
	}
	return chatmark.QualifiedID{Value: uuid.NewString()}
}
