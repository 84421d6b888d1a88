package utils

import "math"

// RoundCents rounds to 2 decimal places using round-half-up.
func RoundCents(amount float64) float64 {
	return math.Floor(amount*100+0.5) / 100
}

// ToCents converts a dollar amount to integer cents for the payment
// processor, rounding half-up.
func ToCents(amount float64) int64 {
	return int64(math.Floor(amount*100 + 0.5))
}
