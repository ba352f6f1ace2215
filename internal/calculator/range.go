package calculator

import (
	"errors"
	"math"
)

var (
	ErrNoPrices        = errors.New("no prices provided")
	ErrInvalidInterval = errors.New("interval must be positive")
)

// maxAxisSteps bounds PriceRange so a tiny interval cannot blow up the axis.
const maxAxisSteps = 1000

// PriceRange returns axis values from min stepping by interval up to and
// including max+interval, leaving one cushion step above the highest price.
func PriceRange(min, max, interval float64) ([]float64, error) {
	if interval <= 0 || math.IsNaN(interval) || math.IsInf(interval, 0) {
		return nil, ErrInvalidInterval
	}
	if max < min {
		return nil, errors.New("max must be >= min")
	}
	top := max + interval
	steps := int(math.Floor((top-min)/interval)) + 1
	if steps > maxAxisSteps {
		return nil, errors.New("interval too small for price range")
	}
	values := make([]float64, 0, steps)
	for i := 0; i < steps; i++ {
		values = append(values, min+float64(i)*interval)
	}
	return values, nil
}

// SeriesRange scans prices and returns the high and low.
func SeriesRange(prices []float64) (high, low float64, err error) {
	if len(prices) == 0 {
		return 0, 0, ErrNoPrices
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, p := range prices {
		if p > high {
			high = p
		}
		if p < low {
			low = p
		}
	}
	return high, low, nil
}

// NiceInterval picks a 1/2/5 x 10^k step that splits [0, max] into at most
// steps parts.
func NiceInterval(max float64, steps int) float64 {
	if steps < 1 {
		steps = 1
	}
	if max <= 0 {
		return 1
	}
	raw := max / float64(steps)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*mag >= raw {
			return m * mag
		}
	}
	return 10 * mag
}
