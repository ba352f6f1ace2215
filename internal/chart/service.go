// Package chart assembles the payload a price chart needs: the normalized
// series for the selected window, its axis ticks and the price axis.
package chart

import (
	"context"
	"fmt"

	"PriceChart/internal/calculator"
	"PriceChart/internal/model"
	"PriceChart/internal/series"
)

// axisSteps is the target number of price axis steps when no interval is
// configured.
const axisSteps = 10

// Source supplies raw observations for a symbol.
type Source interface {
	LoadObservations(ctx context.Context, symbol string) ([]model.Observation, error)
}

// Options are the service-wide defaults.
type Options struct {
	Window        series.Window
	TickCount     int
	PriceInterval float64 // 0 derives one from the max price
	Duplicates    series.DuplicatePolicy
}

// Request selects what to show for one chart.
type Request struct {
	Window        series.Window
	Ticks         int // 0 uses Options.TickCount
	Zoom          *model.DateRange
	MovingAverage int // period in days, 0 for none
}

// View is everything a renderer needs for one chart.
type View struct {
	Symbol        string              `json:"symbol"`
	Window        series.Window       `json:"window"`
	Zoom          *model.DateRange    `json:"zoom,omitempty"`
	Series        series.Series       `json:"series"`
	Ticks         []model.Tick        `json:"ticks"`
	PriceAxis     []float64           `json:"priceAxis"`
	MovingAverage []model.Observation `json:"movingAverage,omitempty"`
}

// Service builds chart views from an injected observation source.
type Service struct {
	source Source
	opts   Options
}

func NewService(source Source, opts Options) *Service {
	if opts.TickCount < 1 {
		opts.TickCount = series.DefaultTickCount
	}
	return &Service{source: source, opts: opts}
}

// Defaults returns the options the service was built with.
func (s *Service) Defaults() Options { return s.opts }

// Build loads symbol, fills it, cuts the requested view and plans its axes.
func (s *Service) Build(ctx context.Context, symbol string, req Request) (*View, error) {
	ticks := req.Ticks
	if ticks == 0 {
		ticks = s.opts.TickCount
	}
	if ticks < 1 {
		return nil, fmt.Errorf("%w: got %d", series.ErrInvalidTickCount, ticks)
	}

	raw, err := s.source.LoadObservations(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", symbol, err)
	}
	full, err := series.FillWithPolicy(raw, s.opts.Duplicates)
	if err != nil {
		return nil, fmt.Errorf("fill %s: %w", symbol, err)
	}

	visible := series.View(full, req.Window, req.Zoom)
	planned, err := series.PlanTicks(visible, req.Window, ticks)
	if err != nil {
		return nil, err
	}

	// the price axis stays fixed across windows, so it spans the full history
	high, _, err := calculator.SeriesRange(full.Prices())
	if err != nil {
		return nil, err
	}
	interval := s.opts.PriceInterval
	if interval <= 0 {
		interval = calculator.NiceInterval(high, axisSteps)
	}
	axis, err := calculator.PriceRange(0, high, interval)
	if err != nil {
		return nil, fmt.Errorf("price axis: %w", err)
	}

	v := &View{
		Symbol:    symbol,
		Window:    req.Window,
		Zoom:      req.Zoom,
		Series:    visible,
		Ticks:     planned,
		PriceAxis: axis,
	}
	if req.MovingAverage > 0 {
		v.MovingAverage = movingAverage(visible, req.MovingAverage)
	}
	return v, nil
}

// movingAverage dates each average by the last day of its period. Views
// shorter than the period get none.
func movingAverage(s series.Series, period int) []model.Observation {
	avg, err := calculator.MovingAverage(s.Prices(), period)
	if err != nil {
		return nil
	}
	out := make([]model.Observation, len(avg))
	for i, p := range avg {
		out[i] = model.Observation{Date: s[i+period-1].Date, Price: p}
	}
	return out
}
