package rating

import "math"

// Mean calculates the arithmetic mean
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// RoundHalfUp rounds to the nearest integer with .5 rounding towards +Inf
func RoundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// ClampInt constrains a value to a range
func ClampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampScore constrains a score to [0, 100]
func ClampScore(value int) int {
	return ClampInt(value, 0, 100)
}
