package rule

import (
	"math"
	"strconv"
)

// RoundToNice keeps floor(log10(zoom))+1 decimals of value's mantissa, so a
// closer look snaps to a finer value. Invalid values come back unchanged.
func RoundToNice(value, zoom float64) float64 {
	if !Valid(value) {
		return value
	}
	if !(zoom >= 1) {
		zoom = 1
	}
	// Log10 of an exact power of ten can land a hair below the integer.
	precision := int(math.Floor(math.Log10(zoom)+1e-9)) + 1
	// 'e' formatting rounds the mantissa to precision decimals and parses
	// back to the nearest double of the decimal result.
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(value, 'e', precision, 64), 64)
	if err != nil || !Valid(rounded) {
		return value
	}
	return rounded
}

// RoundReciprocal rounds in reciprocal space, for the divide-mode offset whose
// displayed divisor is 1/value.
func RoundReciprocal(value, zoom float64) float64 {
	if !Valid(value) {
		return value
	}
	r := RoundToNice(1/value, zoom)
	if !Valid(r) {
		return value
	}
	return 1 / r
}
