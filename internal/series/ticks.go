package series

import (
	"fmt"
	"math"

	"PriceChart/internal/model"
)

// DefaultTickCount is the tick count the chart asks for when none is given.
const DefaultTickCount = 4

const (
	dayLabel   = "Jan 2"
	monthLabel = "Jan 2006"
)

// minLeadDays is the smallest gap between the first date and the next month
// start that still leaves room for a label on the partial leading month.
const minLeadDays = 7

// PlanTicks chooses axis ticks for s. The strategy depends on the window and
// on the calendar-month span of s so that roughly desired labels are shown
// whether the series covers days or years. Every returned tick date is a
// date of s, ticks are strictly increasing, and an empty series yields no
// ticks.
func PlanTicks(s Series, w Window, desired int) ([]model.Tick, error) {
	if desired < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTickCount, desired)
	}
	if len(s) == 0 {
		return []model.Tick{}, nil
	}

	p := planner{
		series: s,
		first:  s.First().Date,
		last:   s.Last().Date,
		count:  desired,
	}
	months := p.first.MonthsUntil(p.last)

	switch {
	case w == LastThreeMonths && months < 2:
		return p.days(), nil
	case w == LastThreeMonths:
		return p.months(), nil
	case months >= 11 && months <= 13:
		return p.year(), nil
	case months >= desired:
		return p.snap(p.interpolate(), monthLabel), nil
	case float64(months) <= float64(desired)/2:
		return p.days(), nil
	default:
		return p.months(), nil
	}
}

type planner struct {
	series      Series
	first, last model.Date
	count       int
}

// days puts a tick on every day of a short span, otherwise spreads count
// ticks evenly.
func (p planner) days() []model.Tick {
	span := p.first.DaysUntil(p.last)
	if span > p.count {
		return p.snap(p.interpolate(), dayLabel)
	}
	dates := make([]model.Date, 0, span+1)
	for d := p.first; d <= p.last; d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return p.snap(dates, dayLabel)
}

// year steps through the twelve months after the first date's month. Month
// starts past the last date are dropped rather than pulled back onto it.
func (p planner) year() []model.Tick {
	step := 12 / p.count
	if step < 1 {
		step = 1
	}
	start := p.first.FirstOfMonth().AddMonths(1)
	dates := make([]model.Date, 0, 12/step+1)
	for i := 0; i < 12; i += step {
		m := start.AddMonths(i)
		if m > p.last {
			break
		}
		dates = append(dates, m)
	}
	return p.snap(dates, monthLabel)
}

// months marks every month start for small counts; larger counts fall back
// to evenly spread day ticks. A partial leading month is labelled on the
// first date unless the next month start is too close to it.
func (p planner) months() []model.Tick {
	if p.count > DefaultTickCount {
		return p.snap(p.interpolate(), dayLabel)
	}
	var dates []model.Date
	m := p.first.FirstOfMonth()
	if next := m.AddMonths(1); m < p.first && next <= p.last && p.first.DaysUntil(next) < minLeadDays {
		m = next
	}
	for ; m <= p.last; m = m.AddMonths(1) {
		dates = append(dates, m)
	}
	return p.snap(dates, monthLabel)
}

// interpolate returns count dates at first + i/(count-1) of the span.
func (p planner) interpolate() []model.Date {
	if p.count == 1 {
		return []model.Date{p.first}
	}
	span := float64(p.first.DaysUntil(p.last))
	dates := make([]model.Date, p.count)
	for i := range dates {
		offset := math.Round(float64(i) * span / float64(p.count-1))
		dates[i] = p.first.AddDays(int(offset))
	}
	return dates
}

// snap moves every candidate to the nearest series date and drops repeats.
// Candidates arrive in ascending order, so repeats are always adjacent.
func (p planner) snap(candidates []model.Date, layout string) []model.Tick {
	ticks := make([]model.Tick, 0, len(candidates))
	for _, c := range candidates {
		d := p.series.Nearest(c)
		if n := len(ticks); n > 0 && ticks[n-1].Date == d {
			continue
		}
		ticks = append(ticks, model.Tick{Date: d, Label: d.Time().Format(layout)})
	}
	return ticks
}
