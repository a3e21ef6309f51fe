package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// ISODate is the layout used for all calendar dates exchanged with callers.
const ISODate = "2006-01-02"

// ParseISODate parses an ISO 8601 calendar date ("2025-06-15"). A full
// RFC 3339 timestamp is accepted as well; only its calendar date is kept.
// The result is midnight UTC so that day arithmetic is exact.
func ParseISODate(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(ISODate, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO date %q", value)
	}
	return Date(t.Year(), t.Month(), t.Day()), nil
}

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CompletedYears returns the number of whole years elapsed from start to at,
// decremented by one when start's month/day has not yet recurred by at.
func CompletedYears(start, at time.Time) int {
	years := at.Year() - start.Year()
	if at.Month() < start.Month() ||
		(at.Month() == start.Month() && at.Day() < start.Day()) {
		years--
	}
	return years
}

// InclusiveDays counts calendar days from start through end, both included.
// It returns 0 when end precedes start.
func InclusiveDays(start, end time.Time) int {
	s := Date(start.Year(), start.Month(), start.Day())
	e := Date(end.Year(), end.Month(), end.Day())
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// AddMonths returns the first day of the month that lies n months after t's month.
func AddMonths(t time.Time, n int) time.Time {
	return Date(t.Year(), t.Month()+time.Month(n), 1)
}

// MinDate returns the earlier of two dates
func MinDate(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxDate returns the later of two dates
func MaxDate(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// BeginningOfYear returns January 1 of year at midnight UTC
func BeginningOfYear(year int) time.Time {
	return Date(year, time.January, 1)
}

// EndOfYear returns December 31 of year at midnight UTC
func EndOfYear(year int) time.Time {
	return Date(year, time.December, 31)
}
