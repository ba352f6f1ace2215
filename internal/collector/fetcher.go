package collector

import (
	"context"

	"PriceChart/internal/model"
)

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	// FetchDailyCloses returns one observation per trading day over rng
	// (e.g. "1y", "5y", "max"). Order is not guaranteed.
	FetchDailyCloses(ctx context.Context, symbol, rng string) ([]model.Observation, error)
	Name() string
}
