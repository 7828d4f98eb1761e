package model

import "time"

// Action is the discrete buy/wait decision derived from the expected price change.
type Action string

const (
	ActionBuyNow Action = "BUY_NOW"
	ActionWait   Action = "WAIT"
	ActionStable Action = "STABLE"
)

// Label returns the human-readable form shown to users.
func (a Action) Label() string {
	switch a {
	case ActionBuyNow:
		return "BUY NOW"
	case ActionWait:
		return "WAIT"
	default:
		return "STABLE"
	}
}

// Recommendation is derived from a series and its forecast.
type Recommendation struct {
	CurrentPrice      float64
	PredictedPrice    float64 // last projected price, rounded to a whole unit
	PercentChange     float64
	Action            Action
	MinPredictedPrice float64 // minimum over the horizon, rounded to a whole unit
	BestDay           time.Time
	WaitDays          int
}

// Analysis bundles everything computed for one selection.
type Analysis struct {
	Region         string
	Commodity      string
	Series         PriceSeries
	Forecast       *ForecastResult
	Recommendation *Recommendation
}
