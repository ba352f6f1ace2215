package series

import (
	"errors"
	"testing"

	"PriceChart/internal/model"
)

func TestFilterWindow_LastYear(t *testing.T) {
	s := daily(t, "2022-09-15", "2024-09-15")
	got := FilterWindow(s, LastYear)
	if got.First().Date != date("2023-09-15") || got.Last().Date != date("2024-09-15") {
		t.Errorf("range = %s..%s, want 2023-09-15..2024-09-15", got.First().Date, got.Last().Date)
	}
	if len(got) != 367 {
		t.Errorf("expected 367 days (leap year), got %d", len(got))
	}
}

func TestFilterWindow_LastThreeMonths(t *testing.T) {
	s := daily(t, "2024-01-01", "2024-09-15")
	got := FilterWindow(s, LastThreeMonths)
	if got.First().Date != date("2024-06-15") || got.Last().Date != date("2024-09-15") {
		t.Errorf("range = %s..%s", got.First().Date, got.Last().Date)
	}
}

func TestFilterWindow_AllIsCopy(t *testing.T) {
	s := daily(t, "2024-01-01", "2024-01-10")
	got := FilterWindow(s, All)
	if len(got) != len(s) {
		t.Fatalf("len = %d, want %d", len(got), len(s))
	}
	got[0].Price = -1
	if s[0].Price == -1 {
		t.Error("FilterWindow result shares memory with its input")
	}
}

func TestFilterWindow_ShortSeriesKeptWhole(t *testing.T) {
	s := daily(t, "2024-08-01", "2024-08-20")
	for _, w := range []Window{LastThreeMonths, LastYear, All} {
		if got := FilterWindow(s, w); len(got) != len(s) {
			t.Errorf("%s: len = %d, want %d", w, len(got), len(s))
		}
	}
}

func TestFilterWindow_NeverBelowTwo(t *testing.T) {
	single := Series{obs("2024-05-10", 42)}
	for _, w := range []Window{LastThreeMonths, LastYear, All} {
		got := FilterWindow(single, w)
		if len(got) != 2 {
			t.Fatalf("%s: expected 2 observations, got %d", w, len(got))
		}
		if got[1].Date != date("2024-05-11") || got[1].Price != 42 {
			t.Errorf("%s: padding = %v", w, got[1])
		}
	}
	if got := FilterWindow(nil, LastYear); len(got) != 0 {
		t.Errorf("empty input: got %v", got)
	}
}

func TestZoom(t *testing.T) {
	s := daily(t, "2024-01-01", "2024-03-31")
	got := Zoom(s, date("2024-02-10"), date("2024-02-20"))
	if len(got) != 11 || got.First().Date != date("2024-02-10") {
		t.Errorf("got %d observations from %s", len(got), got.First().Date)
	}

	swapped := Zoom(s, date("2024-02-20"), date("2024-02-10"))
	if len(swapped) != 11 {
		t.Errorf("reversed bounds: got %d observations", len(swapped))
	}

	tiny := Zoom(s, date("2024-02-10"), date("2024-02-10"))
	if len(tiny) != 2 || tiny.First().Date != date("2024-01-01") {
		t.Errorf("single-day zoom should fall back to head of series, got %v", tiny)
	}

	outside := Zoom(s, date("2025-01-01"), date("2025-02-01"))
	if len(outside) != 2 {
		t.Errorf("zoom outside series: got %d", len(outside))
	}
}

func TestView(t *testing.T) {
	s := daily(t, "2022-01-01", "2024-09-15")

	got := View(s, LastYear, nil)
	if got.First().Date != date("2023-09-15") {
		t.Errorf("window only: starts %s", got.First().Date)
	}

	zoom := &model.DateRange{From: date("2024-01-01"), To: date("2024-01-31")}
	got = View(s, LastYear, zoom)
	if len(got) != 31 {
		t.Errorf("window+zoom: got %d", len(got))
	}

	// zoom outside the window falls back to the unfiltered head
	zoom = &model.DateRange{From: date("2022-02-01"), To: date("2022-02-28")}
	got = View(s, LastThreeMonths, zoom)
	if len(got) != 2 || got.First().Date != date("2022-01-01") {
		t.Errorf("fallback: got %v", got)
	}
}

func TestParseWindow(t *testing.T) {
	for in, want := range map[string]Window{
		"3m":           LastThreeMonths,
		"option-one":   LastThreeMonths,
		"1Y":           LastYear,
		"option-two":   LastYear,
		"all":          All,
		"option-three": All,
	} {
		got, err := ParseWindow(in)
		if err != nil || got != want {
			t.Errorf("ParseWindow(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseWindow("5d"); !errors.Is(err, ErrUnknownWindow) {
		t.Errorf("expected ErrUnknownWindow, got %v", err)
	}
}
