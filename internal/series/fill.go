package series

import (
	"fmt"
	"sort"
	"strings"

	"PriceChart/internal/model"
)

// DuplicatePolicy decides what Fill does with several observations on the
// same date.
type DuplicatePolicy int

const (
	// RejectDuplicates fails with ErrDuplicateDate.
	RejectDuplicates DuplicatePolicy = iota
	// KeepFirst keeps the observation that came first in the input.
	KeepFirst
	// KeepLast keeps the observation that came last in the input.
	KeepLast
	// Average replaces them with one observation at their mean price.
	Average
)

func (p DuplicatePolicy) String() string {
	switch p {
	case RejectDuplicates:
		return "reject"
	case KeepFirst:
		return "first"
	case KeepLast:
		return "last"
	case Average:
		return "average"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
	}
}

// ParseDuplicatePolicy maps a config value to a policy. Empty means reject.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return RejectDuplicates, nil
	case "first":
		return KeepFirst, nil
	case "last":
		return KeepLast, nil
	case "average", "avg", "mean":
		return Average, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Fill sorts observations by date and forward-fills every missing day with
// the price of the most recent real observation. Duplicate dates are
// rejected.
func Fill(observations []model.Observation) (Series, error) {
	return FillWithPolicy(observations, RejectDuplicates)
}

// FillWithPolicy is Fill with an explicit duplicate-date policy.
func FillWithPolicy(observations []model.Observation, policy DuplicatePolicy) (Series, error) {
	if len(observations) == 0 {
		return nil, ErrEmptyInput
	}

	sorted := make([]model.Observation, len(observations))
	copy(sorted, observations)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	sorted, err := collapseDuplicates(sorted, policy)
	if err != nil {
		return nil, err
	}

	first, last := sorted[0].Date, sorted[len(sorted)-1].Date
	out := make(Series, 0, first.DaysUntil(last)+1)
	for i := 0; i < len(sorted)-1; i++ {
		current, next := sorted[i], sorted[i+1]
		out = append(out, current)
		for d := current.Date.AddDays(1); d < next.Date; d = d.AddDays(1) {
			out = append(out, model.Observation{Date: d, Price: current.Price})
		}
	}
	out = append(out, sorted[len(sorted)-1])
	return out, nil
}

// collapseDuplicates expects input sorted stably by date.
func collapseDuplicates(sorted []model.Observation, policy DuplicatePolicy) ([]model.Observation, error) {
	out := make([]model.Observation, 0, len(sorted))
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && sorted[j].Date == sorted[i].Date {
			j++
		}
		if j-i == 1 {
			out = append(out, sorted[i])
			i = j
			continue
		}

		group := sorted[i:j]
		switch policy {
		case RejectDuplicates:
			return nil, fmt.Errorf("%w: %s appears %d times", ErrDuplicateDate, group[0].Date, len(group))
		case KeepFirst:
			out = append(out, group[0])
		case KeepLast:
			out = append(out, group[len(group)-1])
		case Average:
			sum := 0.0
			for _, o := range group {
				sum += o.Price
			}
			out = append(out, model.Observation{Date: group[0].Date, Price: sum / float64(len(group))})
		default:
			return nil, fmt.Errorf("%w: %v", ErrUnknownPolicy, policy)
		}
		i = j
	}
	return out, nil
}
