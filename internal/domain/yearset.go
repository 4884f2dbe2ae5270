package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/couchcryptid/impact-yearset-service/internal/yearset"
)

// Record provenance values carried on every result.
const (
	// RecordSourceFresh marks a record drawn from the request's seed.
	RecordSourceFresh = "fresh"
	// RecordSourceReused marks a record supplied verbatim in the request.
	RecordSourceReused = "reused"
	// RecordSourceCached marks a record shared through the hazard group.
	RecordSourceCached = "cached"
)

// YearsetResult is the outbound JSON document for one sampled yearset.
type YearsetResult struct {
	ID          string `json:"id"`
	CatalogID   string `json:"catalog_id"`
	HazardGroup string `json:"hazard_group,omitempty"`

	Years      int       `json:"years"`
	YearLabels []int     `json:"year_labels"`
	Series     []float64 `json:"series"`

	// PerYearFrequency is the annual occurrence weight of each sampled
	// year, 1/Years: the series is an equally weighted sample of possible
	// years.
	PerYearFrequency float64 `json:"per_year_frequency"`

	SamplingRecord yearset.Record `json:"sampling_record"`
	RecordSource   string         `json:"record_source"`
	Seed           uint64         `json:"seed"`
	Lambda         float64        `json:"lambda,omitempty"`

	Corrected            bool    `json:"corrected"`
	CorrectionFactor     float64 `json:"correction_factor,omitempty"`
	ExpectedAnnualImpact float64 `json:"expected_annual_impact"`

	FrequencyCurve *yearset.Curve `json:"frequency_curve,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// NewYearsetResult assembles the result envelope for a finished build.
// recordSource names where the sampling record came from, one of the
// RecordSource constants.
func NewYearsetResult(req CatalogRequest, cat yearset.Catalog, res yearset.Result, curve *yearset.Curve, recordSource string) YearsetResult {
	labels := res.Labels
	if len(labels) == 0 {
		// Requests without explicit labels still get labeled output, 1..N.
		labels = make([]int, len(res.Series))
		for i := range labels {
			labels[i] = i + 1
		}
	}

	return YearsetResult{
		ID:          generateID(req.CatalogID, req.Seed, len(res.Series), recordSource, res.Corrected),
		CatalogID:   req.CatalogID,
		HazardGroup: req.HazardGroup,

		Years:      len(res.Series),
		YearLabels: labels,
		Series:     res.Series,

		PerYearFrequency: 1 / float64(len(res.Series)),

		SamplingRecord: res.Record,
		RecordSource:   recordSource,
		Seed:           req.Seed,
		Lambda:         res.Lambda,

		Corrected:            res.Corrected,
		CorrectionFactor:     res.CorrectionFactor,
		ExpectedAnnualImpact: cat.ExpectedAnnualImpact(),

		FrequencyCurve: curve,

		GeneratedAt: clock.Now(),
	}
}

// SerializeYearsetResult marshals a result for the sink topic. The message
// key is the catalog ID so all yearsets of one catalog land on the same
// partition in order.
func SerializeYearsetResult(res YearsetResult) (OutputMessage, error) {
	value, err := json.Marshal(res)
	if err != nil {
		return OutputMessage{}, fmt.Errorf("serialize yearset result: %w", err)
	}

	return OutputMessage{
		Key:   []byte(res.CatalogID),
		Value: value,
		Headers: map[string]string{
			"catalog_id":    res.CatalogID,
			"record_source": res.RecordSource,
			"generated_at":  res.GeneratedAt.UTC().Format(time.RFC3339),
		},
	}, nil
}

// generateID produces a deterministic result ID from the request's
// identifying fields. Reprocessing the same request yields the same ID, so
// downstream sinks can upsert without coordination.
func generateID(catalogID string, seed uint64, years int, recordSource string, corrected bool) string {
	input := fmt.Sprintf("%s|%d|%d|%s|%t", catalogID, seed, years, recordSource, corrected)
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	return "yearset-" + short
}
