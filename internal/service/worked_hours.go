package service

import (
	"fmt"
	"time"
)

// WorkedHour 由签到、签退时间（HH:MM 或 HH:MM:SS）计算工时，返回 HH:MM。
// 签退早于签到视为跨零点。
func WorkedHour(clockIn, clockOut string) (string, error) {
	in, err := parseClock(clockIn)
	if err != nil {
		return "", err
	}
	out, err := parseClock(clockOut)
	if err != nil {
		return "", err
	}

	d := out - in
	if d < 0 {
		d += 24 * time.Hour
	}
	return FormatHour(d), nil
}

// FormatHour 将时长格式化为 HH:MM（舍去秒）
func FormatHour(d time.Duration) string {
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// parseClock 返回自零点起的时长
func parseClock(s string) (time.Duration, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("无效的时间格式: %q", s)
}
