package model

import "time"

// PriceObservation is one row of the historical price table.
type PriceObservation struct {
	Date      time.Time
	Region    string
	Commodity string
	Price     float64
}

// PriceSeries holds the observations of one (region, commodity) selection,
// ordered ascending by date.
type PriceSeries struct {
	Region       string
	Commodity    string
	Observations []PriceObservation
}

// Len returns the number of observations in the series.
func (s PriceSeries) Len() int { return len(s.Observations) }

// Prices returns the price column in series order.
func (s PriceSeries) Prices() []float64 {
	prices := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		prices[i] = o.Price
	}
	return prices
}

// LastDate returns the date of the most recent observation.
func (s PriceSeries) LastDate() time.Time {
	if len(s.Observations) == 0 {
		return time.Time{}
	}
	return s.Observations[len(s.Observations)-1].Date
}

// LastPrice returns the price of the most recent observation.
func (s PriceSeries) LastPrice() float64 {
	if len(s.Observations) == 0 {
		return 0
	}
	return s.Observations[len(s.Observations)-1].Price
}
