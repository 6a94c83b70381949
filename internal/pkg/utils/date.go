package utils

import "time"

const DateLayout = "2006-01-02"

// TruncateDay drops the clock part of t and returns midnight UTC of the same calendar date.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "YYYY-MM-DD" string as a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddMonthsClamped moves t forward by n calendar months, keeping the day of month
// but clamping it to the last day of the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// WorkingDaysBetween counts Monday..Friday dates in [start, end], both inclusive.
// Returns 0 when end is before start.
func WorkingDaysBetween(start, end time.Time) int {
	start, end = TruncateDay(start), TruncateDay(end)
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			days++
		}
	}
	return days
}

// WithinRange reports whether t falls in [start, end] at day granularity.
func WithinRange(t, start, end time.Time) bool {
	d := TruncateDay(t)
	return !d.Before(TruncateDay(start)) && !d.After(TruncateDay(end))
}

// DaysUntil returns the number of whole calendar days from now to t.
// The result is negative when t is in the past.
func DaysUntil(now, t time.Time) int {
	return int(TruncateDay(t).Sub(TruncateDay(now)).Hours() / 24)
}
