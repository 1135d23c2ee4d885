package util

import (
	"fmt"
	"time"
)

// FormatMinutes formats a duration in minutes for display.
// Examples: 45 -> "45m", 60 -> "1h", 95 -> "1h 35m"
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatAverage formats an optional average in minutes. Nil means no data.
func FormatAverage(avg *float64) string {
	if avg == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f min", *avg)
}

// FormatDateTime formats a timestamp to date-time format (2006-01-02 15:04).
func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// FormatDateISO formats a timestamp to ISO date format (2006-01-02).
func FormatDateISO(t time.Time) string {
	return t.Format("2006-01-02")
}

// Truncate shortens s to max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
