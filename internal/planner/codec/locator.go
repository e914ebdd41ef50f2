package codec

import (
	"net/url"
	"strings"
)

// BuildLocator 生成分享链接：base 去掉原有 fragment 后拼上 "#payload"。
func BuildLocator(base, payload string) string {
	if i := strings.IndexByte(base, '#'); i >= 0 {
		base = base[:i]
	}
	return base + "#" + payload
}

// ParseLocator 接受裸 payload、"#payload" 或完整 URL，返回 payload。
func ParseLocator(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	if u, err := url.Parse(s); err == nil && u.Scheme != "" && u.Host != "" {
		// 没有 fragment 的链接
		return ""
	}
	return s
}
