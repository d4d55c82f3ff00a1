// Package money holds the canonical USD rounding rules.
//
// Every currency-bearing aggregate in the application sums unrounded terms
// and rounds exactly once at the end; rounding intermediate terms compounds
// drift and is never done.
package money

import (
	"fmt"
	"math"
	"strings"
)

// Round2 rounds v to two decimals, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clamp coerces malformed numeric input to something safe for arithmetic:
// negative or non-finite values become 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// LineTotal is quantity times unit price with both inputs clamped first.
func LineTotal(quantity, price float64) float64 {
	return Clamp(quantity) * Clamp(price)
}

// FormatUSD renders a two-decimal dollar amount with thousands separators,
// e.g. $1,234.56.
func FormatUSD(v float64) string {
	v = Round2(v)
	neg := math.Signbit(v)
	cents := int64(math.Round(math.Abs(v) * 100))

	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var sb strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}

	sign := ""
	if neg && cents > 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%02d", sign, sb.String(), frac)
}
