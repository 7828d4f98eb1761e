package model

import "time"

// ForecastResult is the fitted trend for one series projected over the horizon.
type ForecastResult struct {
	DayIndex         []int // 0..n+horizon-1
	HistoricalPrices []float64
	PredictedPrices  []float64
	FutureDates      []time.Time
	Slope            float64
	Intercept        float64
}

// Horizon returns the number of projected days.
func (f *ForecastResult) Horizon() int { return len(f.PredictedPrices) }
