package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"PriceChart/internal/model"
	"PriceChart/internal/recorder"

	"github.com/rs/zerolog/log"
)

// ErrNoData is returned when a source has no usable observations.
var ErrNoData = errors.New("no data returned")

// StaticFetcher serves fixed observations for development and testing.
type StaticFetcher struct {
	Data map[string][]model.Observation
	Err  error
}

func (s *StaticFetcher) Name() string { return "static" }

func (s *StaticFetcher) FetchDailyCloses(_ context.Context, symbol, _ string) ([]model.Observation, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	obs, ok := s.Data[symbol]
	if !ok || len(obs) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoData)
	}
	out := make([]model.Observation, len(obs))
	copy(out, obs)
	return out, nil
}

// LoadStaticFile reads a JSON object mapping symbols to observation lists,
// e.g. {"AAPL": [{"date": "2024-01-02", "price": 185.6}]}.
func LoadStaticFile(path string) (*StaticFetcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read static data: %w", err)
	}
	var bySymbol map[string][]model.Observation
	if err := json.Unmarshal(data, &bySymbol); err != nil {
		return nil, fmt.Errorf("parse static data: %w", err)
	}
	return &StaticFetcher{Data: bySymbol}, nil
}

// Collector moves price history from a Fetcher into a Recorder.
type Collector struct {
	Fetcher  Fetcher
	Recorder recorder.Recorder
	Range    string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, rec recorder.Recorder, rng string) *Collector {
	return &Collector{Fetcher: fetcher, Recorder: rec, Range: rng}
}

// Collect fetches the configured range for symbol and stores it. It returns
// the number of observations saved.
func (c *Collector) Collect(ctx context.Context, symbol string) (int, error) {
	obs, err := c.Fetcher.FetchDailyCloses(ctx, symbol, c.Range)
	if err != nil {
		return 0, fmt.Errorf("fetch %s from %s: %w", symbol, c.Fetcher.Name(), err)
	}
	if err := c.Recorder.SaveObservations(ctx, symbol, obs); err != nil {
		return 0, fmt.Errorf("save %s: %w", symbol, err)
	}
	log.Info().Str("symbol", symbol).Str("source", c.Fetcher.Name()).Int("observations", len(obs)).Msg("price history collected")
	return len(obs), nil
}

// CollectAll runs Collect for every symbol, logging failures and carrying on.
// The returned error joins every failure.
func (c *Collector) CollectAll(ctx context.Context, symbols []string) error {
	var errs []error
	for _, sym := range symbols {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := c.Collect(ctx, sym); err != nil {
			log.Error().Err(err).Str("symbol", sym).Msg("collect failed")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
