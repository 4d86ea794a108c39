package pipeline

import "math"

// DiscountPercentage computes the saving between an original and a
// discounted price as a percentage, rounded to 2 decimal places.
// It is the single source of truth for the percentage shown anywhere in the
// UI: the value is derived from current prices on every read, never stored.
// Inputs that make no sense (non-positive original, discounted at or above
// original) yield 0 rather than an error.
func DiscountPercentage(originalPrice, discountedPrice float64) float64 {
	if originalPrice <= 0 || discountedPrice < 0 || discountedPrice >= originalPrice {
		return 0
	}
	return math.Round((originalPrice-discountedPrice)/originalPrice*100*100) / 100
}
