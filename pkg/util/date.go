package util

import (
    "strings"
    "time"
)

// dateLayouts are the calendar-date formats accepted from CSV input and
// query parameters.
var dateLayouts = []string{
    "2006-01-02",
    "02-01-2006",
    "2006/01/02",
    time.RFC3339,
}

// ParseDate tries the supported calendar-date layouts. Returns (t, true) if any worked.
// The result is truncated to midnight UTC.
func ParseDate(s string) (time.Time, bool) {
    s = strings.TrimSpace(s)
    if s == "" {
        return time.Time{}, false
    }
    for _, layout := range dateLayouts {
        if t, err := time.Parse(layout, s); err == nil {
            y, m, d := t.Date()
            return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
        }
    }
    return time.Time{}, false
}

// ParseDateDefault parses a date or returns default if empty/invalid.
func ParseDateDefault(s string, def time.Time) time.Time {
    if t, ok := ParseDate(s); ok {
        return t
    }
    return def
}

// ParseMonth parses a "January 2006" month label.
func ParseMonth(s string) (time.Time, bool) {
    t, err := time.Parse("January 2006", strings.TrimSpace(s))
    if err != nil {
        return time.Time{}, false
    }
    return t, true
}
