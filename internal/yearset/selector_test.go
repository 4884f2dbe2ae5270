package yearset

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectEvents(t *testing.T) {
	freqs := []float64{0.2, 0.3, 0.5}

	t.Run("record shape follows the counts", func(t *testing.T) {
		rec, err := SelectEvents([]int{3, 0, 2}, freqs, rand.NewPCG(1, 1))
		require.NoError(t, err)
		require.Len(t, rec, 3)
		assert.Len(t, rec[0], 3)
		assert.NotNil(t, rec[1])
		assert.Empty(t, rec[1])
		assert.Len(t, rec[2], 2)
	})

	t.Run("indices stay inside the catalog", func(t *testing.T) {
		rec, err := SelectEvents([]int{500}, freqs, rand.NewPCG(2, 2))
		require.NoError(t, err)
		for _, idx := range rec[0] {
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, len(freqs))
		}
	})

	t.Run("zero frequency events are never selected", func(t *testing.T) {
		rec, err := SelectEvents([]int{2000}, []float64{0, 1, 0}, rand.NewPCG(3, 3))
		require.NoError(t, err)
		for _, idx := range rec[0] {
			require.Equal(t, 1, idx)
		}
	})

	t.Run("same seed reproduces the record", func(t *testing.T) {
		a, err := SelectEvents([]int{5, 2, 9}, freqs, rand.NewPCG(42, 42))
		require.NoError(t, err)
		b, err := SelectEvents([]int{5, 2, 9}, freqs, rand.NewPCG(42, 42))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("selection follows the frequency weights", func(t *testing.T) {
		weights := []float64{0.1, 0.3, 0.6}
		const draws = 200000
		rec, err := SelectEvents([]int{draws}, weights, rand.NewPCG(7, 7))
		require.NoError(t, err)
		hits := make([]int, len(weights))
		for _, idx := range rec[0] {
			hits[idx]++
		}
		for i, w := range weights {
			got := float64(hits[i]) / draws
			assert.InDelta(t, w, got, 0.01, "event %d", i)
		}
	})

	t.Run("rejects bad inputs", func(t *testing.T) {
		tests := []struct {
			name   string
			counts []int
			freqs  []float64
			want   error
		}{
			{"no events", []int{1}, nil, ErrInvalidCatalog},
			{"negative frequency", []int{1}, []float64{0.5, -0.1}, ErrInvalidCatalog},
			{"nan frequency", []int{1}, []float64{math.NaN()}, ErrInvalidCatalog},
			{"all zero frequencies", []int{1}, []float64{0, 0}, ErrInvalidCatalog},
			{"negative count", []int{-1}, []float64{0.5}, ErrInvalidParameter},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := SelectEvents(tt.counts, tt.freqs, rand.NewPCG(1, 1))
				assert.ErrorIs(t, err, tt.want)
			})
		}
	})
}
