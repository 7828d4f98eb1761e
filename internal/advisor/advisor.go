package advisor

import (
	"fmt"

	"BuyOrWait/internal/collector"
	"BuyOrWait/internal/forecast"
	"BuyOrWait/internal/model"
	"BuyOrWait/internal/strategy"
)

// Advisor runs the full pipeline for a selection: load the series, fit and
// project the trend, then derive the recommendation. It only reads the table
// and is safe for concurrent use.
type Advisor struct {
	Table   *collector.Table
	Horizon int
}

// New creates an advisor over table with the default horizon.
func New(table *collector.Table) *Advisor {
	return &Advisor{Table: table, Horizon: forecast.DefaultHorizon}
}

// Analyze computes the analysis for region and commodity. Either every step
// succeeds or an error is returned and nothing is produced.
func (a *Advisor) Analyze(region, commodity string) (*model.Analysis, error) {
	series, err := a.Table.LoadSeries(region, commodity)
	if err != nil {
		return nil, err
	}
	fc, err := forecast.FitAndProject(series, a.Horizon)
	if err != nil {
		return nil, fmt.Errorf("forecast %s / %s: %w", region, commodity, err)
	}
	rec, err := strategy.Recommend(series, fc)
	if err != nil {
		return nil, fmt.Errorf("recommend %s / %s: %w", region, commodity, err)
	}
	return &model.Analysis{
		Region:         region,
		Commodity:      commodity,
		Series:         series,
		Forecast:       fc,
		Recommendation: rec,
	}, nil
}
