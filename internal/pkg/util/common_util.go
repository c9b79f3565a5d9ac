package util

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseID 解析路径中的正整数 ID
func ParseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// RuneLen 按字符计算长度
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
