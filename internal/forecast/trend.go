// Package forecast fits a linear trend over a price series and projects it forward.
package forecast

import (
	"errors"
	"fmt"
	"time"

	"BuyOrWait/internal/calculator"
	"BuyOrWait/internal/model"
)

// DefaultHorizon is the number of days projected past the last observation.
const DefaultHorizon = 7

// ErrInvalidHorizon is returned for a horizon below one day.
var ErrInvalidHorizon = errors.New("horizon must be at least 1")

// FitAndProject regresses price on the zero-based day index of each observation
// (calendar gaps are ignored) and projects horizon further indices. Future dates
// step one calendar day at a time from the last observation.
func FitAndProject(series model.PriceSeries, horizon int) (*model.ForecastResult, error) {
	if horizon < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHorizon, horizon)
	}
	prices := series.Prices()
	fit, err := calculator.FitIndexed(prices)
	if err != nil {
		return nil, fmt.Errorf("fit trend: %w", err)
	}

	n := len(prices)
	result := &model.ForecastResult{
		DayIndex:         make([]int, n+horizon),
		HistoricalPrices: prices,
		PredictedPrices:  make([]float64, horizon),
		FutureDates:      make([]time.Time, horizon),
		Slope:            fit.Slope,
		Intercept:        fit.Intercept,
	}
	for i := range result.DayIndex {
		result.DayIndex[i] = i
	}

	last := series.LastDate()
	for i := 0; i < horizon; i++ {
		result.PredictedPrices[i] = fit.At(float64(n + i))
		result.FutureDates[i] = last.AddDate(0, 0, i+1)
	}
	return result, nil
}
