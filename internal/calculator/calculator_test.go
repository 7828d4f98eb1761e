package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitIndexed_Linear(t *testing.T) {
	fit, err := FitIndexed([]float64{100, 102, 104, 106, 108, 110, 112})
	require.NoError(t, err)
	assert.Equal(t, 2.0, fit.Slope)
	assert.Equal(t, 100.0, fit.Intercept)
	assert.Equal(t, 126.0, fit.At(13))
}

func TestFitIndexed_ConstantIsFlat(t *testing.T) {
	for _, c := range []float64{0, 0.1, 100, 37.37} {
		ys := make([]float64, 9)
		for i := range ys {
			ys[i] = c
		}
		fit, err := FitIndexed(ys)
		require.NoError(t, err)
		assert.Equal(t, 0.0, fit.Slope)
		for x := 9; x < 16; x++ {
			assert.Equal(t, c, fit.At(float64(x)))
		}
	}
}

func TestFitLinear_Noisy(t *testing.T) {
	// y = 3 + 0.5x with symmetric noise
	xs := []float64{0, 1, 2, 3, 4, 5}
	ys := []float64{3.1, 3.4, 4.1, 4.4, 5.1, 5.4}
	fit, err := FitLinear(xs, ys)
	require.NoError(t, err)
	assert.InDelta(t, 0.4829, fit.Slope, 1e-4)
	assert.InDelta(t, 3.0429, fit.Intercept, 1e-4)
}

func TestFitLinear_Errors(t *testing.T) {
	_, err := FitLinear([]float64{1, 2}, []float64{1})
	assert.Error(t, err)
	_, err = FitLinear(nil, nil)
	assert.Error(t, err)
}

func TestFitLinear_SameXDoesNotDivideByZero(t *testing.T) {
	fit, err := FitLinear([]float64{2, 2, 2}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 0.0, fit.Slope)
	assert.Equal(t, 2.0, fit.Intercept)
}

func TestArgMin(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		min    float64
		index  int
	}{
		{"increasing", []float64{114, 116, 118}, 114, 0},
		{"decreasing", []float64{10, 9, 8}, 8, 2},
		{"valley", []float64{5, 3, 4}, 3, 1},
		{"tie picks first", []float64{7, 5, 5, 6}, 5, 1},
		{"all equal", []float64{100, 100, 100}, 100, 0},
		{"all NaN", []float64{math.NaN(), math.NaN()}, math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lowest, idx, err := ArgMin(tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.index, idx)
			if math.IsNaN(tt.min) {
				assert.True(t, math.IsNaN(lowest))
			} else {
				assert.Equal(t, tt.min, lowest)
			}
		})
	}

	_, _, err := ArgMin(nil)
	assert.Error(t, err)
}

func TestRoundWhole(t *testing.T) {
	assert.Equal(t, 126.0, RoundWhole(125.6))
	assert.Equal(t, 125.0, RoundWhole(125.4))
	assert.Equal(t, 124.0, RoundWhole(124.5))
	assert.Equal(t, 126.0, RoundWhole(125.5))
	assert.Equal(t, -3.0, RoundWhole(-2.6))
}

func TestPercentChange(t *testing.T) {
	pct, err := PercentChange(112, 126)
	require.NoError(t, err)
	assert.Equal(t, 12.5, pct)

	pct, err = PercentChange(100, 103)
	require.NoError(t, err)
	assert.Equal(t, 3.0, pct)

	pct, err = PercentChange(100, 97)
	require.NoError(t, err)
	assert.Equal(t, -3.0, pct)

	_, err = PercentChange(0, 10)
	assert.Error(t, err)
}
