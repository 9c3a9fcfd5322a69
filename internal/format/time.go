// Package format converts wire timestamps into the short display strings
// used by the chat list, message thread and requirement panels.
package format

import (
	"fmt"
	"time"
)

// Layouts seen in the wild: RFC3339 with and without fraction, and the
// zone-less ISO form some backends emit.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses an ISO-8601 wire timestamp. Zone-less forms are
// interpreted in local time.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ChatTime formats a chat-list preview timestamp relative to now: clock
// time for today, weekday within the last week, month/day otherwise.
func ChatTime(s string, now time.Time) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return ""
	}

	sameDay := t.Year() == now.Year() && t.YearDay() == now.YearDay()
	if now.Sub(t) < 24*time.Hour && sameDay {
		return t.Format("15:04")
	}
	if now.Sub(t) < 7*24*time.Hour {
		return t.Weekday().String()[:3]
	}
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
}

// DateDivider formats the date separator inserted between message days.
func DateDivider(s string, now time.Time) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return ""
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
	switch int(today.Sub(day).Hours() / 24) {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// ClockTime formats a message timestamp as HH:MM.
func ClockTime(s string) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return ""
	}
	return t.Format("15:04")
}

// DateTime formats a requirement timestamp as M/D HH:MM.
func DateTime(s string) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d/%d %s", int(t.Month()), t.Day(), t.Format("15:04"))
}

// Day returns the calendar-date part of a wire timestamp, used to decide
// where date dividers go. Unparsable input returns the raw string so
// messages with equal garbage timestamps still share one divider.
func Day(s string) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return s
	}
	return t.Format("2006-01-02")
}
