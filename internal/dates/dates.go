package dates

import (
	"fmt"
	"time"
)

// Layout is the storage format for all calendar dates.
const Layout = "2006-01-02"

// Parse parses a YYYY-MM-DD string into a time at midnight UTC.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// Format formats a time as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Normalize parses and re-formats a date string, rejecting anything that is
// not a valid YYYY-MM-DD calendar date.
func Normalize(s string) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Format(t), nil
}

// IsWorkingDay reports whether t falls on Monday through Friday.
func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// SprintEnd walks forward from start one calendar day at a time, counting
// only working days, and returns the date on which the count reaches
// workingDays. The start day itself counts as day one when it is a working
// day, so a Monday start with workingDays=10 ends on the Friday of the
// following week.
func SprintEnd(start time.Time, workingDays int) time.Time {
	d := start
	counted := 0
	for {
		if IsWorkingDay(d) {
			counted++
			if counted >= workingDays {
				return d
			}
		}
		d = d.AddDate(0, 0, 1)
	}
}

// CountWorkingDays counts the working days in the inclusive range [from, to].
// Returns 0 when to is before from.
func CountWorkingDays(from, to time.Time) int {
	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d) {
			count++
		}
	}
	return count
}
