package domain

import "time"

// DateOnly drops the clock part, keeping the calendar day of t in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// DateKey formats the calendar day of t.
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// WithinHorizon reports whether date lies in [today, today+days] relative to now.
func WithinHorizon(date, now time.Time, days int) bool {
	d := DateOnly(date)
	today := DateOnly(now)
	return !d.Before(today) && !d.After(today.AddDate(0, 0, days))
}
