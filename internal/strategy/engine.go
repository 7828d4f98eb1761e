package strategy

import (
	"errors"
	"fmt"
	"math"

	"BuyOrWait/internal/calculator"
	"BuyOrWait/internal/model"
)

// Fixed decision thresholds on the expected percentage change. Both are strict:
// a change of exactly +3 or -3 percent is STABLE.
const (
	BuyThreshold  = 3.0
	WaitThreshold = -3.0
)

// ErrZeroCurrentPrice is returned when the last historical price is zero and
// the percentage change is undefined.
var ErrZeroCurrentPrice = errors.New("current price is zero")

// ErrNonFinitePrice is returned when the series or its projection holds NaN or
// infinite prices.
var ErrNonFinitePrice = errors.New("non-finite price")

// Actions maps percentage changes to actions, first match wins.
var Actions = []struct {
	Matches func(pct float64) bool
	Action  model.Action
}{
	{func(pct float64) bool { return pct > BuyThreshold }, model.ActionBuyNow},
	{func(pct float64) bool { return pct < WaitThreshold }, model.ActionWait},
}

// DefaultAction applies when no threshold is crossed.
const DefaultAction = model.ActionStable

// ClassifyAction maps a percentage change to an action.
func ClassifyAction(pct float64) model.Action {
	for _, a := range Actions {
		if a.Matches(pct) {
			return a.Action
		}
	}
	return DefaultAction
}

// Recommend derives the buy/wait decision and the cheapest projected day.
//
// The action looks only at the last day of the horizon, while the best day is
// the minimum across the whole horizon; the two may disagree.
func Recommend(series model.PriceSeries, fc *model.ForecastResult) (*model.Recommendation, error) {
	if series.Len() == 0 {
		return nil, errors.New("empty price series")
	}
	if fc == nil || fc.Horizon() == 0 {
		return nil, errors.New("empty forecast")
	}

	current := series.LastPrice()
	if !finite(current) || !finite(fc.PredictedPrices...) {
		return nil, fmt.Errorf("%w: %s / %s", ErrNonFinitePrice, series.Region, series.Commodity)
	}
	predicted := calculator.RoundWhole(fc.PredictedPrices[fc.Horizon()-1])
	if current == 0 {
		return nil, fmt.Errorf("%w: %s / %s", ErrZeroCurrentPrice, series.Region, series.Commodity)
	}
	pct, err := calculator.PercentChange(current, predicted)
	if err != nil {
		return nil, fmt.Errorf("percent change: %w", err)
	}

	lowest, idx, err := calculator.ArgMin(fc.PredictedPrices)
	if err != nil {
		return nil, fmt.Errorf("best day: %w", err)
	}
	bestDay := fc.FutureDates[idx]

	return &model.Recommendation{
		CurrentPrice:      current,
		PredictedPrice:    predicted,
		PercentChange:     pct,
		Action:            ClassifyAction(pct),
		MinPredictedPrice: calculator.RoundWhole(lowest),
		BestDay:           bestDay,
		WaitDays:          idx + 1,
	}, nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
