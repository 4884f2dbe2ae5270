package yearset

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Catalog is an ordered set of stochastic events given as parallel impact
// and annual-frequency slices. Index correspondence is the only ordering
// that matters; the catalog is never mutated.
type Catalog struct {
	Impacts     []float64
	Frequencies []float64
}

// Len returns the number of events.
func (c Catalog) Len() int { return len(c.Impacts) }

// Validate reports whether the catalog can support frequency-weighted
// sampling. Individual zero frequencies are allowed (the event is simply
// never drawn); a catalog whose frequencies sum to zero is not.
func (c Catalog) Validate() error {
	if len(c.Impacts) == 0 {
		return fmt.Errorf("%w: no events", ErrInvalidCatalog)
	}
	if len(c.Impacts) != len(c.Frequencies) {
		return fmt.Errorf("%w: %d impacts vs %d frequencies",
			ErrInvalidCatalog, len(c.Impacts), len(c.Frequencies))
	}
	total := 0.0
	for i, f := range c.Frequencies {
		if imp := c.Impacts[i]; imp < 0 || math.IsNaN(imp) || math.IsInf(imp, 0) {
			return fmt.Errorf("%w: impact[%d] = %g", ErrInvalidCatalog, i, imp)
		}
		if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: frequency[%d] = %g", ErrInvalidCatalog, i, f)
		}
		total += f
	}
	if total == 0 {
		return fmt.Errorf("%w: all frequencies are zero", ErrInvalidCatalog)
	}
	return nil
}

// ExpectedAnnualImpact returns Σ impact[i]·frequency[i], the long-run
// impact the catalog produces per year. Impacts and Frequencies must be
// the same length.
func (c Catalog) ExpectedAnnualImpact() float64 {
	return floats.Dot(c.Impacts, c.Frequencies)
}
