package money

import (
	"math"
	"testing"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.01},
		{1.004, 1.0},
		{3.80, 3.80},
		{0, 0},
		{2.675, 2.68},
		{-1.005, -1.01},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRound2Idempotent(t *testing.T) {
	// Rounding an already-rounded product must not move it again.
	pairs := [][2]float64{{2, 1.5}, {3, 0.33}, {1.25, 4.4}, {0.1, 0.7}}
	for _, p := range pairs {
		once := Round2(p[0] * p[1])
		if got := Round2(once); got != once {
			t.Errorf("Round2 not idempotent for %v*%v: %v -> %v", p[0], p[1], once, got)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-4); got != 0 {
		t.Errorf("Clamp(-4) = %v", got)
	}
	if got := Clamp(math.NaN()); got != 0 {
		t.Errorf("Clamp(NaN) = %v", got)
	}
	if got := Clamp(math.Inf(1)); got != 0 {
		t.Errorf("Clamp(+Inf) = %v", got)
	}
	if got := Clamp(2.5); got != 2.5 {
		t.Errorf("Clamp(2.5) = %v", got)
	}
}

func TestLineTotal(t *testing.T) {
	if got := LineTotal(2, 1.5); got != 3 {
		t.Errorf("LineTotal = %v", got)
	}
	if got := LineTotal(-2, 1.5); got != 0 {
		t.Errorf("LineTotal with negative quantity = %v, want 0", got)
	}
}

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{3.8, "$3.80"},
		{1234.56, "$1,234.56"},
		{1000000, "$1,000,000.00"},
		{-12.5, "-$12.50"},
	}
	for _, tc := range cases {
		if got := FormatUSD(tc.in); got != tc.want {
			t.Errorf("FormatUSD(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
