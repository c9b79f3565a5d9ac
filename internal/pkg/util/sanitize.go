package util

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// 评论与举报只保留纯文本
var textPolicy = bluemonday.StrictPolicy()

const maxSanitizePasses = 4

// SanitizeText 去除 HTML 标签并裁剪首尾空白。
// 反转义后可能重新出现标签（如 &lt;b&gt;），因此重复处理直到结果稳定。
func SanitizeText(raw string) string {
	text := raw
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(textPolicy.Sanitize(text))
		if next == text {
			break
		}
		text = next
	}
	return strings.TrimSpace(text)
}
