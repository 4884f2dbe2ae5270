package yearset

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// Source selects how [Build] obtains its sampling record: a fresh draw
// from a seeded stream, or verbatim reuse of a record returned by an
// earlier build. The zero value is Fresh(0).
type Source struct {
	record Record
	reuse  bool
	lam    float64
	hasLam bool
	seed   uint64
}

// Fresh draws a new record from an independent PCG stream seeded with
// seed. The Poisson intensity defaults to the sum of catalog frequencies.
func Fresh(seed uint64) Source { return Source{seed: seed} }

// FreshWithLambda is [Fresh] with an explicit Poisson intensity.
func FreshWithLambda(lam float64, seed uint64) Source {
	return Source{seed: seed, lam: lam, hasLam: true}
}

// Reuse bypasses sampling and aggregates over rec. Builds sharing a
// record produce fully correlated event occurrence across catalogs,
// independent of any seed. The record is validated against the catalog
// and year count before use and is never modified.
func Reuse(rec Record) Source { return Source{record: rec, reuse: true} }

// Request describes one yearset build.
type Request struct {
	// Years is the number of years to sample. Ignored when Labels is set.
	Years int

	// Labels optionally names the target years; the count of labels then
	// determines the series length. Labels are carried to the result and
	// never affect the draw.
	Labels []int

	// Source selects fresh sampling or record reuse.
	Source Source

	// ApplyCorrection divides the aggregated series by the correction
	// factor before it is returned.
	ApplyCorrection bool
}

// Result is the yearly impact series together with the sampling record
// that produced it.
type Result struct {
	// Series holds one aggregate impact per target year, corrected when
	// the request asked for it.
	Series []float64

	// Record is the sampling record actually used, freshly drawn or the
	// one passed in, so callers can persist it and correlate later builds.
	Record Record

	// Labels echoes Request.Labels.
	Labels []int

	// Lambda is the Poisson intensity used for fresh sampling, 0 when the
	// record was reused.
	Lambda float64

	// CorrectionFactor is the expected annual impact over the uncorrected
	// series mean, 0 when correction was not applied.
	CorrectionFactor float64

	// Corrected reports whether Series was divided by CorrectionFactor.
	Corrected bool
}

// Build generates the yearly impact series for one catalog. With a fresh
// source it draws per-year event counts, selects events by frequency
// weight, and aggregates; with a reused record it aggregates directly.
// Correction, when requested, rescales the series only; the record is
// returned untouched either way.
func Build(cat Catalog, req Request) (Result, error) {
	if err := cat.Validate(); err != nil {
		return Result{}, err
	}

	years := req.Years
	if len(req.Labels) > 0 {
		years = len(req.Labels)
	}
	if years < 1 {
		return Result{}, fmt.Errorf("%w: target years must be >= 1, got %d", ErrInvalidParameter, years)
	}

	res := Result{Labels: req.Labels}

	if req.Source.reuse {
		if err := validateRecord(req.Source.record, years, cat.Len()); err != nil {
			return Result{}, err
		}
		res.Record = req.Source.record
	} else {
		lam := req.Source.lam
		if !req.Source.hasLam {
			lam = floats.Sum(cat.Frequencies)
		}
		src := rand.NewPCG(req.Source.seed, req.Source.seed)
		counts, err := SampleEventCounts(years, lam, src)
		if err != nil {
			return Result{}, err
		}
		rec, err := SelectEvents(counts, cat.Frequencies, src)
		if err != nil {
			return Result{}, err
		}
		res.Record = rec
		res.Lambda = lam
	}

	series, err := AggregateYears(cat.Impacts, res.Record)
	if err != nil {
		return Result{}, err
	}

	if req.ApplyCorrection {
		factor, err := CorrectionFactor(cat, series)
		if err != nil {
			return Result{}, err
		}
		for i := range series {
			series[i] /= factor
		}
		res.CorrectionFactor = factor
		res.Corrected = true
	}

	res.Series = series
	return res, nil
}

// validateRecord rejects reused records up front rather than letting a
// bad index surface mid-aggregation.
func validateRecord(rec Record, years, catalogLen int) error {
	if len(rec) != years {
		return fmt.Errorf("%w: record covers %d years, requested %d",
			ErrMalformedSamplingRecord, len(rec), years)
	}
	for y, events := range rec {
		for _, idx := range events {
			if idx < 0 || idx >= catalogLen {
				return fmt.Errorf("%w: year %d references event %d, catalog has %d",
					ErrMalformedSamplingRecord, y, idx, catalogLen)
			}
		}
	}
	return nil
}
