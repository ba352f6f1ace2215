package series

import (
	"testing"

	"PriceChart/internal/model"
)

func date(s string) model.Date { return model.MustParseDate(s) }

func obs(d string, price float64) model.Observation {
	return model.Observation{Date: date(d), Price: price}
}

// daily builds a contiguous fixture whose price is the day index.
func daily(t *testing.T, from, to string) Series {
	t.Helper()
	start, end := date(from), date(to)
	if end < start {
		t.Fatalf("bad fixture range %s..%s", from, to)
	}
	out := make(Series, 0, start.DaysUntil(end)+1)
	for d, i := start, 0; d <= end; d, i = d.AddDays(1), i+1 {
		out = append(out, model.Observation{Date: d, Price: float64(100 + i)})
	}
	return out
}
