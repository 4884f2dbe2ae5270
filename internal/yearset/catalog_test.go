package yearset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogValidate(t *testing.T) {
	tests := []struct {
		name string
		cat  Catalog
		want string
	}{
		{"valid", demoCatalog(), ""},
		{"zero frequency event allowed", Catalog{Impacts: []float64{1, 2}, Frequencies: []float64{0, 0.5}}, ""},
		{"empty", Catalog{}, "no events"},
		{"length mismatch", Catalog{Impacts: []float64{1}, Frequencies: []float64{0.1, 0.2}}, "impacts vs"},
		{"negative impact", Catalog{Impacts: []float64{-1}, Frequencies: []float64{0.1}}, "impact[0]"},
		{"nan impact", Catalog{Impacts: []float64{math.NaN()}, Frequencies: []float64{0.1}}, "impact[0]"},
		{"negative frequency", Catalog{Impacts: []float64{1}, Frequencies: []float64{-0.1}}, "frequency[0]"},
		{"infinite frequency", Catalog{Impacts: []float64{1}, Frequencies: []float64{math.Inf(1)}}, "frequency[0]"},
		{"all frequencies zero", Catalog{Impacts: []float64{1, 2}, Frequencies: []float64{0, 0}}, "all frequencies are zero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cat.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidCatalog)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestExpectedAnnualImpact(t *testing.T) {
	assert.InDelta(t, 110, demoCatalog().ExpectedAnnualImpact(), 1e-12)

	cat := Catalog{Impacts: []float64{3, 11}, Frequencies: []float64{0.4, 1.1}}
	assert.InDelta(t, 0.4*3+1.1*11, cat.ExpectedAnnualImpact(), 1e-12)
}
