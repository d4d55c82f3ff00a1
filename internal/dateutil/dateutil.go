// Package dateutil provides day-granular date helpers for the planner.
//
// All functions operate on the calendar day only; the time-of-day and
// location of the input are discarded so that two timestamps on the same
// local day always agree.
package dateutil

import (
	"fmt"
	"iter"
	"time"
)

// ISODate is the wire format for calendar dates (no time component).
const ISODate = "2006-01-02"

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var shortMonthNames = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var weekdayNames = [...]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

var shortWeekdayNames = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DayFloor truncates t to midnight of its calendar day.
func DayFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns midnight on the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns midnight on the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}

// AddMonths shifts t by the given number of months, rolling over year
// boundaries. Day-of-month overflow normalizes forward the same way
// time.Date does.
func AddMonths(t time.Time, amount int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(amount), t.Day(), 0, 0, 0, 0, t.Location())
}

// SubMonths shifts t back by the given number of months.
func SubMonths(t time.Time, amount int) time.Time {
	return AddMonths(t, -amount)
}

// StartOfWeek returns midnight on the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	d := DayFloor(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// EndOfWeek returns midnight on the Saturday on or after t.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}

// IsSameDay reports whether a and b fall on the same calendar day.
func IsSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// IsSameMonth reports whether a and b fall in the same calendar month.
func IsSameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// EachDayOfInterval yields one midnight per day from start through end,
// inclusive of both ends. The sequence is empty when start is after end,
// and can be ranged over more than once.
func EachDayOfInterval(start, end time.Time) iter.Seq[time.Time] {
	from := DayFloor(start)
	to := DayFloor(end)
	return func(yield func(time.Time) bool) {
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// Format renders t using one of the fixed patterns inherited from the web
// client. Unknown patterns fall back to RFC 3339.
func Format(t time.Time, pattern string) string {
	switch pattern {
	case "yyyy-MM-dd":
		return t.Format(ISODate)
	case "MMMM yyyy":
		return fmt.Sprintf("%s %d", monthNames[t.Month()-1], t.Year())
	case "MMMM":
		return monthNames[t.Month()-1]
	case "EEEE, MMM d":
		return fmt.Sprintf("%s, %s %d", weekdayNames[t.Weekday()], shortMonthNames[t.Month()-1], t.Day())
	case "EEE, MMM d":
		return fmt.Sprintf("%s, %s %d", shortWeekdayNames[t.Weekday()], shortMonthNames[t.Month()-1], t.Day())
	case "d":
		return fmt.Sprintf("%d", t.Day())
	default:
		return t.Format(time.RFC3339)
	}
}

// ParseISO parses a yyyy-MM-dd calendar date.
func ParseISO(s string) (time.Time, error) {
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want yyyy-MM-dd: %w", s, err)
	}
	return t, nil
}
