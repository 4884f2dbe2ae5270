package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/impact-yearset-service/internal/yearset"
)

func testBuildInputs() (CatalogRequest, yearset.Catalog, yearset.Result) {
	req := CatalogRequest{
		CatalogID:   testCatalogID,
		HazardGroup: "atl-2030",
		Seed:        7,
	}
	cat := yearset.Catalog{
		Impacts:     []float64{100, 200},
		Frequencies: []float64{0.5, 0.25},
	}
	res := yearset.Result{
		Series:           []float64{100, 0, 300},
		Record:           yearset.Record{{0}, {}, {0, 1}},
		Lambda:           0.75,
		Corrected:        true,
		CorrectionFactor: 0.9,
	}
	return req, cat, res
}

func TestNewYearsetResult(t *testing.T) {
	fixedTime := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer SetClock(nil)

	req, cat, res := testBuildInputs()
	out := NewYearsetResult(req, cat, res, nil, RecordSourceFresh)

	assert.Contains(t, out.ID, "yearset-")
	assert.Equal(t, testCatalogID, out.CatalogID)
	assert.Equal(t, "atl-2030", out.HazardGroup)
	assert.Equal(t, 3, out.Years)
	assert.Equal(t, []int{1, 2, 3}, out.YearLabels)
	assert.Equal(t, res.Series, out.Series)
	assert.InDelta(t, 1.0/3.0, out.PerYearFrequency, 1e-12)
	assert.Equal(t, res.Record, out.SamplingRecord)
	assert.Equal(t, RecordSourceFresh, out.RecordSource)
	assert.Equal(t, uint64(7), out.Seed)
	assert.Equal(t, 0.75, out.Lambda)
	assert.True(t, out.Corrected)
	assert.Equal(t, 0.9, out.CorrectionFactor)
	assert.InDelta(t, 100, out.ExpectedAnnualImpact, 1e-12)
	assert.Nil(t, out.FrequencyCurve)
	assert.Equal(t, fixedTime, out.GeneratedAt)
}

func TestNewYearsetResultKeepsSuppliedLabels(t *testing.T) {
	req, cat, res := testBuildInputs()
	res.Labels = []int{2030, 2031, 2032}

	out := NewYearsetResult(req, cat, res, nil, RecordSourceFresh)

	assert.Equal(t, []int{2030, 2031, 2032}, out.YearLabels)
	assert.InDelta(t, 1.0/3.0, out.PerYearFrequency, 1e-12)
}

func TestGenerateIDDeterminism(t *testing.T) {
	req, cat, res := testBuildInputs()

	a := NewYearsetResult(req, cat, res, nil, RecordSourceFresh)
	b := NewYearsetResult(req, cat, res, nil, RecordSourceFresh)
	assert.Equal(t, a.ID, b.ID)

	cached := NewYearsetResult(req, cat, res, nil, RecordSourceCached)
	assert.NotEqual(t, a.ID, cached.ID)

	req.Seed = 8
	reseeded := NewYearsetResult(req, cat, res, nil, RecordSourceFresh)
	assert.NotEqual(t, a.ID, reseeded.ID)
}

func TestSerializeYearsetResult(t *testing.T) {
	fixedTime := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer SetClock(nil)

	req, cat, res := testBuildInputs()
	curve := &yearset.Curve{ReturnPeriods: []float64{10, 50}, Impacts: []float64{150, 200}}
	out := NewYearsetResult(req, cat, res, curve, RecordSourceReused)

	msg, err := SerializeYearsetResult(out)
	require.NoError(t, err)

	assert.Equal(t, []byte(testCatalogID), msg.Key)
	assert.Equal(t, testCatalogID, msg.Headers["catalog_id"])
	assert.Equal(t, RecordSourceReused, msg.Headers["record_source"])
	assert.Equal(t, "2026-03-14T09:30:00Z", msg.Headers["generated_at"])

	var roundtrip YearsetResult
	require.NoError(t, json.Unmarshal(msg.Value, &roundtrip))
	assert.Equal(t, out, roundtrip)
}
