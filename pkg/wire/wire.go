// Package wire holds the defaulting helpers used when mapping loosely typed
// backend payloads into domain records. Every helper is total.
package wire

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used on the wire.
const DateLayout = "2006-01-02"

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// Str returns *p, or def when p is nil or blank.
func Str(p *string, def string) string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return def
	}
	return *p
}

// Int returns *p, or def when p is nil.
func Int(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// Float returns *p, or def when p is nil.
func Float(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Bool returns *p, or def when p is nil.
func Bool(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Time parses a backend timestamp. Unknown formats and nil give the zero time.
func Time(p *string) time.Time {
	if p == nil {
		return time.Time{}
	}
	s := strings.TrimSpace(*p)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseDate parses a YYYY-MM-DD calendar date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

var clockLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "3:04:05 PM"}

// ClockMinutes parses a time of day such as "09:30" or "2:00 PM" into
// minutes after midnight.
func ClockMinutes(s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}
	return 0, false
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// List decodes either a bare JSON array or an object holding the array under
// key. A null or empty payload gives an empty slice.
func List[T any](raw json.RawMessage, key string) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, err
	}
	inner, ok := wrapped[key]
	if !ok {
		return []T{}, nil
	}
	return List[T](inner, key)
}
