// Package rule holds the math of a circular slide rule: the logarithmic
// angle mapping, the adaptive tick generator, value snapping and the view
// model that the interaction layer mutates.
package rule

import "math"

// Factor converts natural-log units to radians so that one decade is one
// full turn.
var Factor = 2 * math.Pi / math.Ln10

// Valid reports whether v can sit on a logarithmic scale.
func Valid(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// RingOffset is the angle subtracted from ln(v)*Factor so that reference
// lands at the top of the circle.
func RingOffset(reference float64) float64 {
	return math.Log(reference)*Factor + math.Pi/2
}

// ValueToAngle maps value onto a ring whose top (angle -π/2) shows reference.
func ValueToAngle(value, reference float64) float64 {
	return math.Log(value)*Factor - RingOffset(reference)
}

// AngleToValue is the inverse of ValueToAngle for angles taken without
// wrapping.
func AngleToValue(angle, reference float64) float64 {
	return math.Exp((angle + RingOffset(reference)) / Factor)
}

// WrapAngle folds an angle delta into [-π, π].
func WrapAngle(a float64) float64 {
	if a < -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// RotationFactor is the multiplier that a rotation of delta radians applies
// to a ring's reference value.
func RotationFactor(delta float64) float64 {
	return math.Exp(delta / Factor)
}
