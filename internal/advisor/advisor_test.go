package advisor

import (
	"errors"
	"testing"
	"time"

	"BuyOrWait/internal/collector"
	"BuyOrWait/internal/model"
	"BuyOrWait/internal/strategy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jan1 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func observations(region, commodity string, prices ...float64) []model.PriceObservation {
	obs := make([]model.PriceObservation, len(prices))
	for i, p := range prices {
		obs[i] = model.PriceObservation{Date: jan1.AddDate(0, 0, i), Region: region, Commodity: commodity, Price: p}
	}
	return obs
}

func newTestAdvisor() *Advisor {
	var obs []model.PriceObservation
	obs = append(obs, observations("Kerala", "Tomato", 100, 102, 104, 106, 108, 110, 112)...)
	obs = append(obs, observations("Kerala", "Onion", 100, 100, 100, 100, 100, 100, 100)...)
	obs = append(obs, observations("Goa", "Potato", 20, 21, 22, 23, 24, 25)...)
	obs = append(obs, observations("Goa", "Garlic", 5, 4, 3, 2, 1, 1, 0)...)
	return New(collector.NewTable("test", obs))
}

func TestAnalyze(t *testing.T) {
	a := newTestAdvisor()

	got, err := a.Analyze("Kerala", "Tomato")
	require.NoError(t, err)
	assert.Equal(t, "Kerala", got.Region)
	assert.Equal(t, "Tomato", got.Commodity)
	assert.Equal(t, 7, got.Series.Len())
	assert.Equal(t, 7, got.Forecast.Horizon())
	assert.Equal(t, model.ActionBuyNow, got.Recommendation.Action)
	assert.Equal(t, 126.0, got.Recommendation.PredictedPrice)

	flat, err := a.Analyze("Kerala", "Onion")
	require.NoError(t, err)
	assert.Equal(t, model.ActionStable, flat.Recommendation.Action)
	assert.Equal(t, 0.0, flat.Recommendation.PercentChange)
}

func TestAnalyze_Errors(t *testing.T) {
	a := newTestAdvisor()

	_, err := a.Analyze("Goa", "Potato")
	assert.True(t, errors.Is(err, collector.ErrInsufficientData))

	_, err = a.Analyze("Goa", "Tomato")
	assert.True(t, errors.Is(err, collector.ErrUnknownSelection))

	_, err = a.Analyze("Goa", "Garlic")
	assert.True(t, errors.Is(err, strategy.ErrZeroCurrentPrice))
}

func TestAnalyze_Idempotent(t *testing.T) {
	a := newTestAdvisor()
	first, err := a.Analyze("Kerala", "Tomato")
	require.NoError(t, err)
	second, err := a.Analyze("Kerala", "Tomato")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
