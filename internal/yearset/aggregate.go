package yearset

import "fmt"

// AggregateYears sums catalog impacts over each year's selected indices.
// A duplicated index contributes its impact once per occurrence, and an
// empty year sums to exactly 0. Deterministic: no randomness is involved.
func AggregateYears(impacts []float64, rec Record) ([]float64, error) {
	series := make([]float64, len(rec))
	for y, events := range rec {
		var sum float64
		for _, idx := range events {
			if idx < 0 || idx >= len(impacts) {
				return nil, fmt.Errorf("%w: year %d references event %d, catalog has %d",
					ErrMalformedSamplingRecord, y, idx, len(impacts))
			}
			sum += impacts[idx]
		}
		series[y] = sum
	}
	return series, nil
}
