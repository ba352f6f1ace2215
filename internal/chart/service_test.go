package chart

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"PriceChart/internal/model"
	"PriceChart/internal/recorder"
	"PriceChart/internal/series"
)

// weekdays returns one observation per weekday between from and to, the
// shape of exchange data before filling.
func weekdays(from, to string) []model.Observation {
	var out []model.Observation
	start, end := model.MustParseDate(from), model.MustParseDate(to)
	for d, i := start, 0; d <= end; d, i = d.AddDays(1), i+1 {
		switch d.Time().Weekday().String() {
		case "Saturday", "Sunday":
			continue
		}
		out = append(out, model.Observation{Date: d, Price: float64(50 + i%150)})
	}
	return out
}

func newService(t *testing.T, obs []model.Observation, opts Options) *Service {
	t.Helper()
	rec := recorder.NewMemoryRecorder()
	if obs != nil {
		if err := rec.SaveObservations(context.Background(), "ACME", obs); err != nil {
			t.Fatal(err)
		}
	}
	return NewService(rec, opts)
}

func TestBuild_LastYear(t *testing.T) {
	svc := newService(t, weekdays("2022-09-12", "2024-09-13"), Options{})
	v, err := svc.Build(context.Background(), "ACME", Request{Window: series.LastYear})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !v.Series.IsContiguous() {
		t.Error("view should be gap-free")
	}
	if v.Series.First().Date != model.MustParseDate("2023-09-13") {
		t.Errorf("view starts %s", v.Series.First().Date)
	}
	if len(v.Ticks) != 4 {
		t.Errorf("expected 4 ticks, got %d", len(v.Ticks))
	}
	for _, tk := range v.Ticks {
		if !v.Series.Contains(tk.Date) {
			t.Errorf("tick %s not in view", tk.Date)
		}
	}
	if v.PriceAxis[0] != 0 || v.PriceAxis[len(v.PriceAxis)-1] < 199 {
		t.Errorf("price axis = %v", v.PriceAxis)
	}
}

func TestBuild_ZoomAndMovingAverage(t *testing.T) {
	svc := newService(t, weekdays("2024-01-01", "2024-09-13"), Options{PriceInterval: 25})
	zoom := &model.DateRange{From: model.MustParseDate("2024-08-01"), To: model.MustParseDate("2024-08-10")}
	v, err := svc.Build(context.Background(), "ACME", Request{
		Window:        series.LastThreeMonths,
		Zoom:          zoom,
		MovingAverage: 3,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(v.Series) != 10 {
		t.Errorf("zoomed view has %d days, want 10", len(v.Series))
	}
	if len(v.MovingAverage) != 8 {
		t.Errorf("moving average has %d points, want 8", len(v.MovingAverage))
	}
	if v.MovingAverage[0].Date != model.MustParseDate("2024-08-03") {
		t.Errorf("moving average starts %s", v.MovingAverage[0].Date)
	}
	if v.PriceAxis[1] != 25 {
		t.Errorf("configured interval not used: %v", v.PriceAxis)
	}
}

func TestBuild_Errors(t *testing.T) {
	svc := newService(t, nil, Options{})
	if _, err := svc.Build(context.Background(), "NOPE", Request{}); !errors.Is(err, recorder.ErrUnknownSymbol) {
		t.Errorf("expected ErrUnknownSymbol, got %v", err)
	}

	svc = newService(t, weekdays("2024-01-01", "2024-01-31"), Options{})
	if _, err := svc.Build(context.Background(), "ACME", Request{Ticks: -2}); !errors.Is(err, series.ErrInvalidTickCount) {
		t.Errorf("expected ErrInvalidTickCount, got %v", err)
	}
}

func TestRenderHTML(t *testing.T) {
	svc := newService(t, weekdays("2024-01-01", "2024-03-31"), Options{})
	v, err := svc.Build(context.Background(), "ACME", Request{Window: series.All, MovingAverage: 5})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := RenderHTML(&buf, v); err != nil {
		t.Fatalf("render: %v", err)
	}
	page := buf.String()
	if !strings.Contains(page, "ACME") {
		t.Error("page should mention the symbol")
	}
	if !strings.Contains(page, v.Ticks[0].Label) {
		t.Errorf("page should carry tick label %q", v.Ticks[0].Label)
	}
}

func TestAxisLabels(t *testing.T) {
	s := []model.Observation{
		{Date: model.MustParseDate("2024-01-01")},
		{Date: model.MustParseDate("2024-01-02")},
		{Date: model.MustParseDate("2024-01-03")},
	}
	ticks := []model.Tick{{Date: model.MustParseDate("2024-01-02"), Label: "Jan 2"}}
	got := axisLabels(s, ticks)
	if got[0] != "" || got[1] != "Jan 2" || got[2] != "" {
		t.Errorf("labels = %q", got)
	}
}
