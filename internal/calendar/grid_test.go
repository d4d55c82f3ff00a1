package calendar

import (
	"testing"
	"time"
)

func TestBuildMonthGridFebruary2024(t *testing.T) {
	// Leap-year February starting on a Thursday: the grid needs five full
	// weeks, padded back to Sunday Jan 28 and forward to Saturday Mar 2.
	month := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.February, 14, 15, 4, 5, 0, time.UTC)

	cells := BuildMonthGrid(month, now)

	if len(cells) != 35 {
		t.Fatalf("got %d cells, want 35", len(cells))
	}
	if cells[0].ISO != "2024-01-28" {
		t.Errorf("first cell = %s, want 2024-01-28", cells[0].ISO)
	}
	if cells[len(cells)-1].ISO != "2024-03-02" {
		t.Errorf("last cell = %s, want 2024-03-02", cells[len(cells)-1].ISO)
	}

	for i := 0; i < 4; i++ {
		if cells[i].InMonth {
			t.Errorf("cell %s should be out of month", cells[i].ISO)
		}
	}
	if !cells[4].InMonth || cells[4].ISO != "2024-02-01" {
		t.Errorf("cell 4 = %s inMonth=%v, want Feb 1 in month", cells[4].ISO, cells[4].InMonth)
	}

	var today []string
	for _, c := range cells {
		if c.IsToday {
			today = append(today, c.ISO)
		}
	}
	if len(today) != 1 || today[0] != "2024-02-14" {
		t.Errorf("isToday cells = %v, want exactly [2024-02-14]", today)
	}
}

func TestBuildMonthGridDeterministic(t *testing.T) {
	month := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.June, 3, 8, 0, 0, 0, time.UTC)

	a := BuildMonthGrid(month, now)
	b := BuildMonthGrid(month, now)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("cell %d differs between identical builds", i)
		}
	}
	if len(a)%7 != 0 {
		t.Errorf("grid length %d is not a multiple of 7", len(a))
	}
}

func TestBuildMonthGridSixWeekMonth(t *testing.T) {
	// March 2024 starts on a Friday and ends on a Sunday: six grid weeks.
	month := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	cells := BuildMonthGrid(month, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC))
	if len(cells) != 42 {
		t.Fatalf("got %d cells, want 42", len(cells))
	}
}
