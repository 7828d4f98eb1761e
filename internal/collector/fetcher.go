package collector

import (
	"context"

	"BuyOrWait/internal/model"
)

// Fetcher defines the interface for reading the historical price table.
type Fetcher interface {
	FetchObservations(ctx context.Context) ([]model.PriceObservation, error)
	Name() string
}
