package mathutil

import "math"

// RoundHalfUp rounds to the nearest integer with ties toward +Inf.
// math.Round sends -2.5 to -3; this gives -2.
func RoundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
