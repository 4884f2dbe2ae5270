package yearset

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// CorrectionFactor returns the catalog's expected annual impact divided by
// the mean of the sampled series. [Build] divides every year of the series
// by this factor when correction is enabled. A zero-mean series leaves the
// factor undefined and is rejected rather than propagating NaN.
func CorrectionFactor(cat Catalog, series []float64) (float64, error) {
	if len(series) == 0 {
		return 0, fmt.Errorf("%w: series is empty", ErrDegenerateSeries)
	}
	m := stat.Mean(series, nil)
	if m == 0 {
		return 0, fmt.Errorf("%w: sampled series has zero mean", ErrDegenerateSeries)
	}
	return cat.ExpectedAnnualImpact() / m, nil
}
