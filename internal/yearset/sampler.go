package yearset

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// SampleEventCounts draws one event count per target year, each an
// independent Poisson(lam) sample. lam == 0 is valid and deterministically
// yields all-zero counts. Draws come from src so repeated runs with the
// same source state are identical.
func SampleEventCounts(n int, lam float64, src rand.Source) ([]int, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: target years must be >= 1, got %d", ErrInvalidParameter, n)
	}
	if lam < 0 || math.IsNaN(lam) || math.IsInf(lam, 0) {
		return nil, fmt.Errorf("%w: poisson intensity must be finite and >= 0, got %g", ErrInvalidParameter, lam)
	}

	counts := make([]int, n)
	if lam == 0 {
		return counts, nil
	}

	dist := distuv.Poisson{Lambda: lam, Src: src}
	for i := range counts {
		counts[i] = int(dist.Rand())
	}
	return counts, nil
}
