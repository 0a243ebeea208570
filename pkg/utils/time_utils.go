// utils/timeutil.go
package utils

import "time"

// DateLayout is the calendar date format used on forms, in session state and in prompts.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string as a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// DateOnly drops the clock part of t, keeping its calendar day in t's location,
// and returns it as a UTC midnight.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInclusive counts calendar days from start to end, both included.
// A single-day trip (start == end) is 1 day. Counted on Unix seconds since a
// time.Duration overflows past roughly 292 years.
func DaysInclusive(start, end time.Time) int {
	return int((DateOnly(end).Unix()-DateOnly(start).Unix())/secondsPerDay) + 1
}

const secondsPerDay = 24 * 60 * 60
