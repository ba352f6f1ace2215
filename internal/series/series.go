// Package series normalizes sparse price observations into gap-free daily
// series and plans axis ticks for them.
//
// Every function here is pure: inputs are never modified and results never
// share a backing array with their inputs.
package series

import (
	"errors"
	"sort"

	"PriceChart/internal/model"
)

var (
	ErrEmptyInput       = errors.New("series: no observations")
	ErrDuplicateDate    = errors.New("series: duplicate observation date")
	ErrInvalidTickCount = errors.New("series: tick count must be at least 1")
	ErrUnknownWindow    = errors.New("series: unknown window")
	ErrUnknownPolicy    = errors.New("series: unknown duplicate policy")
)

// Series is an ordered, gap-free run of daily observations.
type Series []model.Observation

// First returns the earliest observation. The series must not be empty.
func (s Series) First() model.Observation { return s[0] }

// Last returns the latest observation. The series must not be empty.
func (s Series) Last() model.Observation { return s[len(s)-1] }

// Clone returns a copy that shares no memory with s.
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// Dates returns the dates of the series in order.
func (s Series) Dates() []model.Date {
	out := make([]model.Date, len(s))
	for i, o := range s {
		out[i] = o.Date
	}
	return out
}

// Prices returns the prices of the series in order.
func (s Series) Prices() []float64 {
	out := make([]float64, len(s))
	for i, o := range s {
		out[i] = o.Price
	}
	return out
}

// Contains reports whether d is one of the series dates.
func (s Series) Contains(d model.Date) bool {
	i := s.search(d)
	return i < len(s) && s[i].Date == d
}

// Nearest returns the series date closest to d. Ties go to the earlier date.
// The series must not be empty.
func (s Series) Nearest(d model.Date) model.Date {
	i := s.search(d)
	switch {
	case i == 0:
		return s[0].Date
	case i == len(s):
		return s[len(s)-1].Date
	case s[i].Date == d:
		return d
	}
	before, after := s[i-1].Date, s[i].Date
	if before.DaysUntil(d) <= d.DaysUntil(after) {
		return before
	}
	return after
}

// IsContiguous reports whether s is strictly increasing with no missing days.
func (s Series) IsContiguous() bool {
	for i := 1; i < len(s); i++ {
		if s[i].Date != s[i-1].Date.AddDays(1) {
			return false
		}
	}
	return true
}

func (s Series) search(d model.Date) int {
	return sort.Search(len(s), func(i int) bool { return s[i].Date >= d })
}
