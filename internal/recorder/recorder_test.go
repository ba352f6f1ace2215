package recorder

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"PriceChart/internal/model"
)

func fixture() []model.Observation {
	return []model.Observation{
		{Date: model.MustParseDate("2024-01-03"), Price: 12},
		{Date: model.MustParseDate("2024-01-01"), Price: 10},
		{Date: model.MustParseDate("2024-01-02"), Price: 11},
	}
}

func exerciseRecorder(t *testing.T, r Recorder) {
	t.Helper()
	ctx := context.Background()

	if _, err := r.LoadObservations(ctx, "AAPL"); !errors.Is(err, ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol before save, got %v", err)
	}

	if err := r.SaveObservations(ctx, "AAPL", fixture()); err != nil {
		t.Fatalf("save: %v", err)
	}
	// upsert replaces the price for an existing date
	if err := r.SaveObservations(ctx, "AAPL", []model.Observation{
		{Date: model.MustParseDate("2024-01-02"), Price: 99},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := r.SaveObservations(ctx, "MSFT", fixture()[:1]); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := r.LoadObservations(ctx, "AAPL")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []model.Observation{
		{Date: model.MustParseDate("2024-01-01"), Price: 10},
		{Date: model.MustParseDate("2024-01-02"), Price: 99},
		{Date: model.MustParseDate("2024-01-03"), Price: 12},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	syms, err := r.Symbols(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(syms, []string{"AAPL", "MSFT"}) {
		t.Errorf("symbols = %v", syms)
	}
}

func TestMemoryRecorder(t *testing.T) {
	r := NewMemoryRecorder()
	defer r.Close()
	exerciseRecorder(t, r)
}

func TestSQLiteRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	exerciseRecorder(t, r)
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	// data survives reopening
	r, err = NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer r.Close()
	got, err := r.LoadObservations(context.Background(), "MSFT")
	if err != nil || len(got) != 1 {
		t.Errorf("after reopen: %v, %v", got, err)
	}
}
