// Package calendar builds the month grid for the planner view.
package calendar

import (
	"time"

	"madfood/internal/dateutil"
)

// DayCell is one cell of the month grid. Cells are ephemeral: recomputed on
// every build and never persisted.
type DayCell struct {
	Date    time.Time `json:"date"`
	ISO     string    `json:"iso"`
	InMonth bool      `json:"inMonth"`
	IsToday bool      `json:"isToday"`
}

// WeekdayLabels are the column headers, Sunday first.
var WeekdayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// BuildMonthGrid returns the Sunday-aligned grid of full weeks covering the
// month of monthDate: from the Sunday on or before the 1st through the
// Saturday on or after the last day, always a multiple of 7 cells.
//
// now is compared by calendar day only and must be supplied by the caller so
// the grid is reproducible for a given (monthDate, now) pair.
func BuildMonthGrid(monthDate, now time.Time) []DayCell {
	monthStart := dateutil.StartOfMonth(monthDate)
	monthEnd := dateutil.EndOfMonth(monthDate)
	gridStart := dateutil.StartOfWeek(monthStart)
	gridEnd := dateutil.EndOfWeek(monthEnd)

	cells := make([]DayCell, 0, 42)
	for day := range dateutil.EachDayOfInterval(gridStart, gridEnd) {
		cells = append(cells, DayCell{
			Date:    day,
			ISO:     dateutil.Format(day, "yyyy-MM-dd"),
			InMonth: dateutil.IsSameMonth(day, monthDate),
			IsToday: dateutil.IsSameDay(day, now),
		})
	}
	return cells
}
