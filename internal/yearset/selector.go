package yearset

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Record is a sampling record: one entry per sampled year holding the
// ordered catalog indices drawn for that year. Duplicates within a year
// mean the event occurred more than once.
type Record [][]int

// SelectEvents draws the events occurring in each year. Year y receives
// counts[y] indices drawn with replacement, index i chosen with
// probability frequencies[i]/Σfrequencies, so frequent events recur more
// often within any sampled year. A zero count yields an empty year.
func SelectEvents(counts []int, frequencies []float64, src rand.Source) (Record, error) {
	if len(frequencies) == 0 {
		return nil, fmt.Errorf("%w: no events to select from", ErrInvalidCatalog)
	}
	total := 0.0
	for i, f := range frequencies {
		if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: frequency[%d] = %g", ErrInvalidCatalog, i, f)
		}
		total += f
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: all frequencies are zero", ErrInvalidCatalog)
	}

	dist := distuv.NewCategorical(frequencies, src)
	rec := make(Record, len(counts))
	for y, n := range counts {
		if n < 0 {
			return nil, fmt.Errorf("%w: event count for year %d is %d", ErrInvalidParameter, y, n)
		}
		year := make([]int, n)
		for j := range year {
			year[j] = int(dist.Rand())
		}
		rec[y] = year
	}
	return rec, nil
}
