package utils

import "time"

// CreateTimeLayout 文章展示时间格式
const CreateTimeLayout = "2006.01.02 15:04"

func FormatCreateTime(t time.Time) string {
	return t.Format(CreateTimeLayout)
}
