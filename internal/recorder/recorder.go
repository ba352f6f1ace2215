package recorder

import (
	"context"
	"errors"

	"PriceChart/internal/model"
)

// ErrUnknownSymbol is returned when no observations are stored for a symbol.
var ErrUnknownSymbol = errors.New("unknown symbol")

// Recorder persists daily price observations per symbol.
type Recorder interface {
	// SaveObservations upserts observations keyed by symbol and date.
	SaveObservations(ctx context.Context, symbol string, obs []model.Observation) error
	// LoadObservations returns the stored observations ordered by date.
	LoadObservations(ctx context.Context, symbol string) ([]model.Observation, error)
	// Symbols lists every symbol with stored data, sorted.
	Symbols(ctx context.Context) ([]string, error)
	Close() error
}
