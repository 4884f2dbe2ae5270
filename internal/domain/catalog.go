// Package domain models the message contract of the yearset service:
// event catalogs in, sampled yearsets out.
//
// # Catalog requests
//
// Producers publish one JSON document per catalog to the source topic. A
// request carries the event impacts and annual frequencies plus optional
// sampling controls:
//
//	years / year_labels   sampling horizon (labels win when both are set)
//	lambda                Poisson intensity override
//	apply_correction      toggles the expected-impact rescaling
//	seed                  stream seed for reproducible sampling
//	sampling_record       verbatim record to reuse instead of sampling
//	hazard_group          correlation key, see below
//
// Requests without a catalog_id get a deterministic one derived from the
// payload, so replays of the same document always name the same catalog.
//
// # Hazard groups
//
// Catalogs describing perils that strike together (say wind and surge from
// the same storm set) can share a hazard_group. The service then reuses one
// sampling record across the group, so event occurrence lines up year by
// year across their yearsets. See [RecordSourceCached].
//
// # Yearset results
//
// Each result embeds the series, the sampling record that produced it, the
// correction diagnostics, and an exceedance curve. Result IDs hash the
// request's identifying fields ([generateID]), which keeps reprocessing
// idempotent for downstream sinks.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/impact-yearset-service/internal/yearset"
)

// CatalogRequest is the inbound JSON document describing one event catalog
// and how to sample it.
type CatalogRequest struct {
	CatalogID   string `json:"catalog_id"`
	HazardGroup string `json:"hazard_group,omitempty"`

	Impacts     []float64 `json:"impacts"`
	Frequencies []float64 `json:"frequencies"`

	Years      int   `json:"years,omitempty"`
	YearLabels []int `json:"year_labels,omitempty"`

	Lambda          *float64       `json:"lambda,omitempty"`
	ApplyCorrection *bool          `json:"apply_correction,omitempty"`
	Seed            uint64         `json:"seed,omitempty"`
	SamplingRecord  yearset.Record `json:"sampling_record,omitempty"`
	ReturnPeriods   []float64      `json:"return_periods,omitempty"`

	RawPayload []byte `json:"-"`
}

// ParseCatalogRequest deserializes a RawMessage's value into a
// CatalogRequest. Missing catalog IDs are filled with a hash of the payload.
// Numeric validation is left to the sampling core, which reports it per
// field.
func ParseCatalogRequest(raw RawMessage) (CatalogRequest, error) {
	var req CatalogRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return CatalogRequest{}, fmt.Errorf("parse catalog request: %w", err)
	}

	if req.CatalogID == "" {
		req.CatalogID = payloadID(raw.Value)
	}
	req.RawPayload = raw.Value
	return req, nil
}

// TargetYears resolves the sampling horizon: explicit year labels win, then
// the years field, then the span of a supplied record, then fallback.
func (c CatalogRequest) TargetYears(fallback int) int {
	switch {
	case len(c.YearLabels) > 0:
		return len(c.YearLabels)
	case c.Years > 0:
		return c.Years
	case len(c.SamplingRecord) > 0:
		return len(c.SamplingRecord)
	default:
		return fallback
	}
}

// CorrectionEnabled reports whether the series should be rescaled, using
// fallback when the request leaves apply_correction unset.
func (c CatalogRequest) CorrectionEnabled(fallback bool) bool {
	if c.ApplyCorrection == nil {
		return fallback
	}
	return *c.ApplyCorrection
}

// payloadID derives a catalog ID from the raw document so replays of an
// unnamed catalog stay idempotent.
func payloadID(payload []byte) string {
	hash := sha256.Sum256(payload)
	return "catalog-" + hex.EncodeToString(hash[:8])
}
