// Package linkify detects web URLs and e-mail addresses in plain text.
package linkify

import (
	"strings"

	"mvdan.cc/xurls/v2"
)

// relaxed 同时匹配带协议的 URL、无协议域名（www.example.com、example.org）和邮箱
var relaxed = xurls.Relaxed()

// webSchemes 允许的协议，其余协议（file:、magnet: 等）不生成链接
var webSchemes = []string{"https://", "http://", "ftp://", "mailto:"}

// Kind of a detected link.
type Kind int

const (
	KindURL Kind = iota
	KindEmail
)

// Link is a detected link over the byte range [Start, End) of the scanned text.
type Link struct {
	Kind  Kind
	Start int
	End   int
	// URL is the normalised destination: scheme-less links get http://, e-mails get mailto:.
	URL string
}

// Find returns all links in text ordered by start offset. E-mail addresses
// inside a URL are not reported separately.
func Find(text string) []Link {
	if text == "" {
		return nil
	}
	var links []Link
	for _, m := range relaxed.FindAllStringIndex(text, -1) {
		end := m[0] + trimTrailing(text[m[0]:m[1]])
		if end <= m[0] {
			continue
		}
		if l, ok := classify(text[m[0]:end]); ok {
			l.Start, l.End = m[0], end
			links = append(links, l)
		}
	}
	return links
}

// classify 根据协议判断链接类型并补全目标地址
func classify(raw string) (Link, bool) {
	lower := strings.ToLower(raw)
	for _, scheme := range webSchemes {
		if !strings.HasPrefix(lower, scheme) {
			continue
		}
		if len(raw) == len(scheme) {
			return Link{}, false
		}
		if scheme == "mailto:" {
			return Link{Kind: KindEmail, URL: raw}, true
		}
		return Link{Kind: KindURL, URL: raw}, true
	}
	if hasScheme(raw) {
		return Link{}, false
	}
	if strings.Contains(raw, "@") && !strings.Contains(raw, "/") {
		return Link{Kind: KindEmail, URL: "mailto:" + raw}, true
	}
	return Link{Kind: KindURL, URL: "http://" + raw}, true
}

// hasScheme 判断 raw 是否以 "scheme:" 开头；host:port 形式的域名不算
func hasScheme(raw string) bool {
	i := strings.IndexByte(raw, ':')
	if i <= 0 {
		return false
	}
	for _, r := range raw[:i] {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '+', r == '-':
		default:
			return false
		}
	}
	return true
}

// trimTrailing returns the length of s without trailing punctuation and
// without closing brackets that have no opening partner inside s.
func trimTrailing(s string) int {
	end := len(s)
	for end > 0 {
		c := s[end-1]
		switch c {
		case '.', ',', ';', ':', '!', '?', '\'', '*', '_', '~':
			end--
			continue
		case ')':
			if strings.Count(s[:end], "(") < strings.Count(s[:end], ")") {
				end--
				continue
			}
		case ']':
			if strings.Count(s[:end], "[") < strings.Count(s[:end], "]") {
				end--
				continue
			}
		}
		break
	}
	return end
}
