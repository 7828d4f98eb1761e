package collector

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"BuyOrWait/internal/logger"
	"BuyOrWait/internal/model"
)

// MinObservations is the shortest series the forecaster accepts.
const MinObservations = 7

var (
	// ErrInsufficientData is returned when a selection has fewer than
	// MinObservations rows.
	ErrInsufficientData = errors.New("not enough historical data")
	// ErrUnknownSelection is returned when the region/commodity pair does not
	// occur in the table.
	ErrUnknownSelection = errors.New("unknown region/commodity selection")
)

// MockFetcher returns fixed observations for development and testing.
type MockFetcher struct {
	Observations []model.PriceObservation
	Err          error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchObservations(_ context.Context) ([]model.PriceObservation, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Observations, nil
}

type seriesKey struct {
	region, commodity string
}

// Table is an immutable snapshot of the historical price table. It is safe for
// concurrent readers.
type Table struct {
	source  string
	total   int
	series  map[seriesKey][]model.PriceObservation
	regions []string
	byState map[string][]string
}

// Load fetches all observations once and builds the snapshot.
func Load(ctx context.Context, fetcher Fetcher) (*Table, error) {
	obs, err := fetcher.FetchObservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch observations from %s: %w", fetcher.Name(), err)
	}
	t := NewTable(fetcher.Name(), obs)
	logger.Log.Infof("loaded %d observations (%d regions) from %s", t.total, len(t.regions), t.source)
	return t, nil
}

// NewTable groups observations by (region, commodity) and orders each group by date.
func NewTable(source string, obs []model.PriceObservation) *Table {
	t := &Table{
		source:  source,
		total:   len(obs),
		series:  make(map[seriesKey][]model.PriceObservation),
		byState: make(map[string][]string),
	}
	for _, o := range obs {
		k := seriesKey{o.Region, o.Commodity}
		if _, ok := t.series[k]; !ok {
			t.byState[o.Region] = append(t.byState[o.Region], o.Commodity)
		}
		t.series[k] = append(t.series[k], o)
	}
	for k, s := range t.series {
		sort.SliceStable(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
		t.series[k] = s
	}
	for region, commodities := range t.byState {
		sort.Strings(commodities)
		t.regions = append(t.regions, region)
	}
	sort.Strings(t.regions)
	return t
}

// Source names where the snapshot was loaded from.
func (t *Table) Source() string { return t.source }

// Len returns the total number of observations.
func (t *Table) Len() int { return t.total }

// Regions returns the sorted distinct regions.
func (t *Table) Regions() []string {
	return append([]string(nil), t.regions...)
}

// Commodities returns the sorted distinct commodities observed in region.
func (t *Table) Commodities(region string) []string {
	return append([]string(nil), t.byState[region]...)
}

// Has reports whether the table contains the selection.
func (t *Table) Has(region, commodity string) bool {
	_, ok := t.series[seriesKey{region, commodity}]
	return ok
}

// LoadSeries returns the date-ordered series for the selection. It fails with
// ErrUnknownSelection when the pair is absent and ErrInsufficientData when it
// has fewer than MinObservations rows.
func (t *Table) LoadSeries(region, commodity string) (model.PriceSeries, error) {
	obs, ok := t.series[seriesKey{region, commodity}]
	if !ok {
		return model.PriceSeries{}, fmt.Errorf("%w: %s / %s", ErrUnknownSelection, region, commodity)
	}
	if len(obs) < MinObservations {
		return model.PriceSeries{}, fmt.Errorf("%w: %s / %s has %d of %d observations",
			ErrInsufficientData, region, commodity, len(obs), MinObservations)
	}
	return model.PriceSeries{
		Region:       region,
		Commodity:    commodity,
		Observations: append([]model.PriceObservation(nil), obs...),
	}, nil
}
