package pipeline

import (
	"math"
	"slices"
)

// Median finds the median value in a slice of floats.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	// Work on a copy to avoid mutating the original
	temp := make([]float64, len(values))
	copy(temp, values)
	slices.Sort(temp)

	n := len(temp)
	if n%2 == 1 {
		return temp[n/2]
	}
	return (temp[n/2-1] + temp[n/2]) / 2.0
}

// Quantile computes the q-th quantile (0 <= q <= 1) with linear
// interpolation between the two nearest ranks.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}

	temp := make([]float64, len(values))
	copy(temp, values)
	slices.Sort(temp)

	if q <= 0 {
		return temp[0]
	}
	if q >= 1 {
		return temp[len(temp)-1]
	}

	pos := q * float64(len(temp)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return temp[lo]
	}
	frac := pos - float64(lo)
	return temp[lo] + (temp[hi]-temp[lo])*frac
}

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
