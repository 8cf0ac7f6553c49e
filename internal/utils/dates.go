package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// DaysInMonth returns the number of days in a given month
func DaysInMonth(year int, month time.Month) int {
	if month == time.February {
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}

	if month == time.April || month == time.June || month == time.September || month == time.November {
		return 30
	}

	return 31
}

// AddMonths adds calendar months to t, keeping the time of day. When the target
// month is shorter than t's day, the result clamps to that month's last day
// (Jan 31 + 1 month = Feb 28/29), unlike time.AddDate which would roll into March.
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + months
	y += total / 12
	total %= 12
	if total < 0 {
		total += 12
		y--
	}
	target := time.Month(total + 1)
	if last := DaysInMonth(y, target); d > last {
		d = last
	}
	return time.Date(y, target, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DayBounds returns [start of day, start of next day) for t in its own location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// ParseDate parses a yyyy-mm-dd string in loc.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, dateStr, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd: %w", err)
	}
	return t, nil
}

// WholeMonthsBetween counts the complete calendar months from start to end.
func WholeMonthsBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if AddMonths(start, months).After(end) {
		months--
	}
	return months
}
