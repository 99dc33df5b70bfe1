package event

import (
	"strings"
	"time"
)

// Layouts carrying their own zone offset
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z0700",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04Z0700",
}

// Date-only layouts, interpreted as UTC midnight
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
}

// Layouts without an offset, interpreted in local time
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDateTime parses the value of a datetime attribute.
// Returns time.Time{} (zero value) if parsing fails.
// Date-only values ("2026-03-13", "2026-03", "2026") are taken as UTC midnight; date-time values
// without an offset are taken in local time.
func ParseDateTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}

	return time.Time{}
}
