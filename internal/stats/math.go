package stats

import "slices"

// Median returns the middle value of values, or the mean of the two middle
// values for an even count. Empty input yields 0. The input is not modified.
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

// Average returns the arithmetic mean of values, or 0 for empty input.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Central applies the statistic selected by mode.
func Central(values []float64, mode StatMode) float64 {
	if mode == StatAverage {
		return Average(values)
	}
	return Median(values)
}
