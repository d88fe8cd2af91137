package ui

import (
	"fmt"
	"time"
)

// DateLayout is how dates are shown in tables.
const DateLayout = "2006-01-02 15:04"

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	duration = duration.Truncate(time.Second)
	seconds := int64(duration.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	return fmt.Sprintf("%dd", days)
}

// FormatMinutes renders a whole number of minutes like "1h 05m".
func FormatMinutes(minutes int64) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

// FormatDue describes a due date relative to now: "in 2d", "3h overdue" or
// "-" when there is none.
func FormatDue(due *time.Time, now time.Time) string {
	if due == nil {
		return "-"
	}
	if due.Before(now) {
		return FormatDurationShort(now.Sub(*due)) + " overdue"
	}
	return "in " + FormatDurationShort(due.Sub(now))
}

// FormatDate renders an optional timestamp in local time, or "-".
func FormatDate(value *time.Time) string {
	if value == nil || value.IsZero() {
		return "-"
	}
	return value.Local().Format(DateLayout)
}
