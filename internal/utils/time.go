package utils

import (
	"fmt"
	"time"
)

// DisplayDateLayout is the layout of the date strings stored on records,
// e.g. "Sun Jun 16 2024".
const DisplayDateLayout = "Mon Jan 02 2006"

var dateLayouts = []string{
	DisplayDateLayout,
	"Mon Jan 2 2006",
	"2006-01-02",
	time.RFC3339,
}

// ParseDisplayDate parses a stored record date. Besides the display layout
// it accepts ISO dates and RFC3339 timestamps written by older clients.
func ParseDisplayDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDisplayDate renders t the way records store it
func FormatDisplayDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// DurationMinutes converts an hours/minutes pair to total minutes
func DurationMinutes(hours, minutes int) int {
	return hours*60 + minutes
}

// FormatDuration renders a duration as h:mm:00
func FormatDuration(hours, minutes int) string {
	return fmt.Sprintf("%d:%02d:00", hours, minutes)
}
