package series

import (
	"fmt"
	"strings"

	"PriceChart/internal/model"
)

// Window names a trailing sub-range of a series.
type Window int

const (
	LastThreeMonths Window = iota
	LastYear
	All
)

func (w Window) String() string {
	switch w {
	case LastThreeMonths:
		return "3m"
	case LastYear:
		return "1y"
	case All:
		return "all"
	default:
		return fmt.Sprintf("Window(%d)", int(w))
	}
}

// ParseWindow accepts "3m", "1y", "all" and the option-one/two/three names
// used by the chart's range selector.
func ParseWindow(s string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "3m", "3mo", "option-one":
		return LastThreeMonths, nil
	case "1y", "year", "option-two":
		return LastYear, nil
	case "all", "max", "option-three":
		return All, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownWindow, s)
	}
}

// MarshalText lets a Window appear by name in JSON and YAML.
func (w Window) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

func (w *Window) UnmarshalText(b []byte) error {
	parsed, err := ParseWindow(string(b))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// minViewLen is the smallest series handed to charting or tick planning.
const minViewLen = 2

// FilterWindow keeps the observations inside w, measured back from the last
// date of s. Both bounds are inclusive. If fewer than two observations
// remain the result falls back to the first two of s.
func FilterWindow(s Series, w Window) Series {
	return guard(applyWindow(s, w), s)
}

// Zoom keeps the observations between from and to inclusive, with the same
// fallback as FilterWindow. Reversed bounds are swapped.
func Zoom(s Series, from, to model.Date) Series {
	return guard(applyRange(s, from, to), s)
}

// View applies the window and then the optional zoom range, falling back to
// the head of s once at the end.
func View(s Series, w Window, zoom *model.DateRange) Series {
	out := applyWindow(s, w)
	if zoom != nil {
		out = applyRange(out, zoom.From, zoom.To)
	}
	return guard(out, s)
}

func applyWindow(s Series, w Window) Series {
	if len(s) == 0 {
		return nil
	}
	latest := s.Last().Date
	switch w {
	case LastThreeMonths:
		return applyRange(s, latest.AddMonths(-3), latest)
	case LastYear:
		return applyRange(s, latest.AddYears(-1), latest)
	default:
		return s.Clone()
	}
}

func applyRange(s Series, from, to model.Date) Series {
	if from > to {
		from, to = to, from
	}
	lo := s.search(from)
	hi := s.search(to.AddDays(1))
	if lo >= hi {
		return Series{}
	}
	return s[lo:hi].Clone()
}

// guard enforces the two-point minimum. A single-observation source is
// padded with a forward-filled next day.
func guard(filtered, source Series) Series {
	if len(filtered) >= minViewLen {
		return filtered
	}
	switch len(source) {
	case 0:
		return Series{}
	case 1:
		only := source[0]
		return Series{only, {Date: only.Date.AddDays(1), Price: only.Price}}
	default:
		return source[:minViewLen].Clone()
	}
}
