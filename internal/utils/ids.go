package utils

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const (
	letterBytes   = "0123456789abcdefghijklmnopqrstuvwxyz"
	letterIdxBits = 6
	letterIdxMask = 1<<letterIdxBits - 1
	letterIdxMax  = 63 / letterIdxBits
)

// RandStringBytesMaskImpr 生成长度为 n 的随机字符串（数字+小写字母）
func RandStringBytesMaskImpr(n int) string {
	b := make([]byte, n)
	for i, cache, remain := n-1, rand.Int63(), letterIdxMax; i >= 0; {
		if remain == 0 {
			cache, remain = rand.Int63(), letterIdxMax
		}
		if idx := int(cache & letterIdxMask); idx < len(letterBytes) {
			b[i] = letterBytes[idx]
			i--
		}
		cache >>= letterIdxBits
		remain--
	}
	return string(b)
}

// NewCommentID returns a base36 millisecond timestamp followed by five
// random base36 characters. Two ids only collide when generated in the same
// millisecond with the same suffix (1 in 36^5).
func NewCommentID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 36) + RandStringBytesMaskImpr(5)
}

// NewArticleID returns "A" + the millisecond timestamp without its two
// leading digits + a short random suffix.
func NewArticleID(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 2 {
		ms = ms[2:]
	}
	var sb strings.Builder
	sb.WriteString("A")
	sb.WriteString(ms)
	sb.WriteString(RandStringBytesMaskImpr(3))
	return sb.String()
}
