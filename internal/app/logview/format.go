package logview

import "time"

// TimestampLayout is the default display layout, second granularity
const TimestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders t in the local zone using layout (TimestampLayout when empty).
// The zero time renders as an empty string.
func FormatTimestamp(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}

	if layout == "" {
		layout = TimestampLayout
	}

	return t.Local().Format(layout)
}
