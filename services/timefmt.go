package services

import (
	"fmt"
	"time"
)

// FormatRelativeTime renders t relative to now: "just now" under a minute,
// "{n}m ago" under an hour, "{n}h ago" under a day, else the date in
// month/day/year form. Minutes and hours are floored.
func FormatRelativeTime(now, t time.Time) string {
	elapsed := now.Sub(t)
	minutes := int(elapsed / time.Minute)
	if minutes < 1 {
		return "just now"
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	return t.Format("1/2/2006")
}
