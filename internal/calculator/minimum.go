package calculator

import (
	"errors"
	"math"
)

// ArgMin returns the smallest value and the index of its first occurrence.
func ArgMin(values []float64) (lowest float64, index int, err error) {
	if len(values) == 0 {
		return 0, -1, errors.New("no values provided")
	}
	lowest = math.Inf(1)
	index = -1
	for i, v := range values {
		if v < lowest {
			lowest = v
			index = i
		}
	}
	if index < 0 {
		// all values NaN or +Inf
		return values[0], 0, nil
	}
	return lowest, index, nil
}
