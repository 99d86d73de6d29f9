package obituary

import (
	"strings"
	"time"
)

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// ParseDate accepts the date and timestamp shapes the sources emit.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateOnly drops the time of day, keeping the calendar date as written.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ClockTime returns "15:04" for a timestamp carrying a time of day, and false
// for a bare date at midnight.
func ClockTime(t time.Time) (string, bool) {
	if t.IsZero() || (t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0) {
		return "", false
	}
	return t.Format("15:04"), true
}
