package motivation

import (
	"testing"
	"time"
)

func TestForDay(t *testing.T) {
	t.Run("JanuaryFirst", func(t *testing.T) {
		got := ForDay(time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC))
		if got.Quote != quotes[0] {
			t.Errorf("quote = %q, want %q", got.Quote, quotes[0])
		}
		if got.Encouragement != encouragements[1] {
			t.Errorf("encouragement = %q, want %q", got.Encouragement, encouragements[1])
		}
	})

	t.Run("StableWithinADay", func(t *testing.T) {
		morning := ForDay(time.Date(2024, time.February, 14, 6, 0, 0, 0, time.UTC))
		evening := ForDay(time.Date(2024, time.February, 14, 23, 59, 0, 0, time.UTC))
		if morning != evening {
			t.Errorf("morning %v != evening %v", morning, evening)
		}
	})

	t.Run("RotatesAcrossDays", func(t *testing.T) {
		day1 := ForDay(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
		day2 := ForDay(time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC))
		if day1 == day2 {
			t.Error("consecutive days returned the same pair")
		}
	})

	t.Run("SeedFormula", func(t *testing.T) {
		// 2024-02-14 is day 45, seed 44.
		got := ForDay(time.Date(2024, time.February, 14, 12, 0, 0, 0, time.UTC))
		if got.Quote != quotes[44%len(quotes)] {
			t.Errorf("quote = %q", got.Quote)
		}
		if got.Encouragement != encouragements[(44*3+1)%len(encouragements)] {
			t.Errorf("encouragement = %q", got.Encouragement)
		}
	})
}
