package calculator

import "errors"

// LinearFit is a fitted line y = Intercept + Slope*x.
type LinearFit struct {
	Slope     float64
	Intercept float64
}

// At evaluates the fitted line at x.
func (f LinearFit) At(x float64) float64 {
	return f.Intercept + f.Slope*x
}

// FitIndexed fits an ordinary least-squares line of ys against their
// zero-based positions 0..len(ys)-1.
func FitIndexed(ys []float64) (LinearFit, error) {
	xs := make([]float64, len(ys))
	for i := range ys {
		xs[i] = float64(i)
	}
	return FitLinear(xs, ys)
}

// FitLinear computes the closed-form simple linear regression of ys on xs.
// A constant response yields a flat line through that constant.
func FitLinear(xs, ys []float64) (LinearFit, error) {
	if len(xs) != len(ys) {
		return LinearFit{}, errors.New("xs and ys must have the same length")
	}
	if len(ys) == 0 {
		return LinearFit{}, errors.New("no data for linear fit")
	}
	if isConstant(ys) {
		return LinearFit{Slope: 0, Intercept: ys[0]}, nil
	}

	n := float64(len(xs))
	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var sxy, sxx float64
	for i := range xs {
		dx := xs[i] - meanX
		sxy += dx * (ys[i] - meanY)
		sxx += dx * dx
	}
	if sxx == 0 {
		// every x identical: no slope can be identified
		return LinearFit{Slope: 0, Intercept: meanY}, nil
	}

	slope := sxy / sxx
	return LinearFit{Slope: slope, Intercept: meanY - slope*meanX}, nil
}

func isConstant(ys []float64) bool {
	for _, y := range ys[1:] {
		if y != ys[0] {
			return false
		}
	}
	return true
}
