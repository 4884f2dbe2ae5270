package yearset

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// DefaultReturnPeriods are the return periods, in years, used when a
// frequency curve request does not name its own.
var DefaultReturnPeriods = []float64{5, 10, 20, 50, 100, 250}

// Curve is an exceedance frequency curve: the impact expected to be met
// or exceeded once per return period.
type Curve struct {
	ReturnPeriods []float64 `json:"return_periods"`
	Impacts       []float64 `json:"impacts"`
}

// FrequencyCurve derives the exceedance curve for a set of impacts with
// annual occurrence frequencies. Impacts are ranked ascending and the
// frequencies accumulated from the most severe impact down, so each
// impact pairs with the expected years between events at least that
// severe. With returnPeriods set, the curve is linearly interpolated at
// those periods, clamping beyond the sampled range; nil returns the full
// unresampled curve.
func FrequencyCurve(impacts, frequencies, returnPeriods []float64) (Curve, error) {
	n := len(impacts)
	if n == 0 {
		return Curve{}, fmt.Errorf("%w: no impacts to build a curve from", ErrInvalidParameter)
	}
	if len(frequencies) != n {
		return Curve{}, fmt.Errorf("%w: %d impacts vs %d frequencies",
			ErrInvalidParameter, n, len(frequencies))
	}
	for i, f := range frequencies {
		if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return Curve{}, fmt.Errorf("%w: frequency[%d] = %g, curve needs positive frequencies",
				ErrInvalidParameter, i, f)
		}
	}

	sorted := make([]float64, n)
	copy(sorted, impacts)
	inds := make([]int, n)
	floats.Argsort(sorted, inds)

	periods := make([]float64, n)
	cum := 0.0
	for k := n - 1; k >= 0; k-- {
		cum += frequencies[inds[k]]
		periods[k] = 1 / cum
	}

	if returnPeriods == nil {
		return Curve{ReturnPeriods: periods, Impacts: sorted}, nil
	}

	out := make([]float64, len(returnPeriods))
	if n == 1 {
		for i := range out {
			out[i] = sorted[0]
		}
		return Curve{ReturnPeriods: returnPeriods, Impacts: out}, nil
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(periods, sorted); err != nil {
		return Curve{}, fmt.Errorf("%w: return periods are not strictly increasing: %v",
			ErrInvalidParameter, err)
	}
	for i, rp := range returnPeriods {
		out[i] = pl.Predict(rp)
	}
	return Curve{ReturnPeriods: returnPeriods, Impacts: out}, nil
}
