package respond

import "time"

const timeLayout = "2006-01-02 15:04:05"

// FormatTime 统一时间格式，nil 返回空字符串
func FormatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}
