// Command validate performs end-to-end data integrity checks on the mock
// catalog fixture: request parsing, sampling reproducibility, correction
// arithmetic, and sink envelope alignment. Every yearset is rebuilt through
// the actual sampling core rather than trusting precomputed values.
//
// Usage:
//
//	go run ./cmd/validate -fixture data/mock/catalog_requests.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/impact-yearset-service/internal/config"
	"github.com/couchcryptid/impact-yearset-service/internal/domain"
	"github.com/couchcryptid/impact-yearset-service/internal/yearset"
	"github.com/jonboulle/clockwork"
	"gonum.org/v1/gonum/stat"
)

// defaults supplies the target year and correction fallbacks the service
// would apply to the same requests.
var defaults = config.New()

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	fixture := flag.String("fixture", "", "path to the catalog request fixture")
	flag.Parse()

	if *fixture == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*fixture); code != 0 {
		os.Exit(code)
	}
}

func run(fixturePath string) int {
	// Set a fixed clock matching genmock so envelopes reproduce byte for byte.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	fmt.Println("=== Catalog Fixture Integrity Validation ===")
	fmt.Println()

	reqs, err := loadJSON[domain.CatalogRequest](fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load fixture: %v\n", err)
		return 1
	}

	// ── Run validation phases ──
	phases := []*phase{
		validateCatalogSanity(reqs),
		validateSamplingReproducibility(reqs),
		validateCorrectionArithmetic(reqs),
		validateEnvelopeAlignment(reqs),
	}

	// ── Report results ──
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-48s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Catalogs: %d requests, %d sampled years total\n", len(reqs), totalYears(reqs))

	// Print detailed errors.
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Data loading ──

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// buildEnvelope mirrors the pipeline's source resolution, minus the hazard
// group cache, and returns the full result envelope for one request.
func buildEnvelope(req domain.CatalogRequest) (domain.YearsetResult, error) {
	cat := yearset.Catalog{Impacts: req.Impacts, Frequencies: req.Frequencies}

	source := yearset.Fresh(req.Seed)
	recordSource := domain.RecordSourceFresh
	if req.Lambda != nil {
		source = yearset.FreshWithLambda(*req.Lambda, req.Seed)
	}
	if len(req.SamplingRecord) > 0 {
		source = yearset.Reuse(req.SamplingRecord)
		recordSource = domain.RecordSourceReused
	}

	res, err := yearset.Build(cat, yearset.Request{
		Years:           req.TargetYears(defaults.DefaultTargetYears),
		Labels:          req.YearLabels,
		Source:          source,
		ApplyCorrection: req.CorrectionEnabled(defaults.ApplyCorrection),
	})
	if err != nil {
		return domain.YearsetResult{}, err
	}

	var curve *yearset.Curve
	periods := req.ReturnPeriods
	if periods == nil {
		periods = yearset.DefaultReturnPeriods
	}
	if c, curveErr := yearset.FrequencyCurve(req.Impacts, req.Frequencies, periods); curveErr == nil {
		curve = &c
	}

	return domain.NewYearsetResult(req, cat, res, curve, recordSource), nil
}

func totalYears(reqs []domain.CatalogRequest) int {
	n := 0
	for _, req := range reqs {
		n += req.TargetYears(defaults.DefaultTargetYears)
	}
	return n
}

// ── Phase 1: Catalog Sanity ──
// Validates fixture structure: parseability, unique IDs, sane catalogs.

func validateCatalogSanity(reqs []domain.CatalogRequest) *phase {
	p := &phase{name: "Phase 1: Catalog Sanity (fixture)"}

	if len(reqs) == 0 {
		p.errorf("fixture contains no catalog requests")
		return p
	}

	seen := map[string]bool{}
	for i, req := range reqs {
		if req.CatalogID == "" {
			p.errorf("request %d: missing catalog_id", i)
			continue
		}
		if seen[req.CatalogID] {
			p.errorf("request %d: duplicate catalog_id %q", i, req.CatalogID)
		}
		seen[req.CatalogID] = true

		checkRequestRoundtrip(p, req)
		checkCatalogShape(p, req)
	}
	return p
}

func checkRequestRoundtrip(p *phase, req domain.CatalogRequest) {
	data, err := json.Marshal(req)
	if err != nil {
		p.errorf("%s: marshal: %v", req.CatalogID, err)
		return
	}
	parsed, err := domain.ParseCatalogRequest(domain.RawMessage{Value: data})
	if err != nil {
		p.errorf("%s: reparse: %v", req.CatalogID, err)
		return
	}
	if parsed.CatalogID != req.CatalogID {
		p.errorf("%s: reparse changed catalog_id to %q", req.CatalogID, parsed.CatalogID)
	}
}

func checkCatalogShape(p *phase, req domain.CatalogRequest) {
	cat := yearset.Catalog{Impacts: req.Impacts, Frequencies: req.Frequencies}
	if err := cat.Validate(); err != nil {
		p.errorf("%s: %v", req.CatalogID, err)
		return
	}

	years := req.TargetYears(defaults.DefaultTargetYears)
	if len(req.SamplingRecord) > 0 && len(req.SamplingRecord) != years {
		p.errorf("%s: sampling record covers %d years, request targets %d",
			req.CatalogID, len(req.SamplingRecord), years)
	}
	for y, events := range req.SamplingRecord {
		for _, idx := range events {
			if idx < 0 || idx >= cat.Len() {
				p.errorf("%s: record year %d: event index %d out of range (%d events)",
					req.CatalogID, y, idx, cat.Len())
			}
		}
	}
}

// ── Phase 2: Sampling Reproducibility ──
// Rebuilds every yearset twice and demands identical output, so a request's
// seed fully determines the draw.

func validateSamplingReproducibility(reqs []domain.CatalogRequest) *phase {
	p := &phase{name: "Phase 2: Sampling Reproducibility (seeds)"}

	for _, req := range reqs {
		first, err := buildEnvelope(req)
		if err != nil {
			p.errorf("%s: build: %v", req.CatalogID, err)
			continue
		}
		second, err := buildEnvelope(req)
		if err != nil {
			p.errorf("%s: rebuild: %v", req.CatalogID, err)
			continue
		}

		if first.ID != second.ID {
			p.errorf("%s: ID changed between builds: %s vs %s", req.CatalogID, first.ID, second.ID)
		}
		if !recordsEqual(first.SamplingRecord, second.SamplingRecord) {
			p.errorf("%s: sampling record changed between builds", req.CatalogID)
		}
		if len(first.Series) != len(second.Series) {
			p.errorf("%s: series length changed between builds: %d vs %d",
				req.CatalogID, len(first.Series), len(second.Series))
			continue
		}
		for i := range first.Series {
			// Identical code path, identical floats. No tolerance here.
			if first.Series[i] != second.Series[i] {
				p.errorf("%s: series[%d] changed between builds: %g vs %g",
					req.CatalogID, i, first.Series[i], second.Series[i])
			}
		}

		wantSource := domain.RecordSourceFresh
		if len(req.SamplingRecord) > 0 {
			wantSource = domain.RecordSourceReused
		}
		if first.RecordSource != wantSource {
			p.errorf("%s: record source %q, expected %q", req.CatalogID, first.RecordSource, wantSource)
		}
	}
	return p
}

// ── Phase 3: Correction Arithmetic ──
// Recomputes yearly sums from the sampling record and checks the correction
// relation: corrected series times factor equals the raw sums, and the
// factor is the catalog EAI over the raw mean.

func validateCorrectionArithmetic(reqs []domain.CatalogRequest) *phase {
	p := &phase{name: "Phase 3: Correction Arithmetic (series)"}

	for _, req := range reqs {
		env, err := buildEnvelope(req)
		if err != nil {
			p.errorf("%s: build: %v", req.CatalogID, err)
			continue
		}

		raw := resumSeries(env.SamplingRecord, req.Impacts)
		if len(raw) != len(env.Series) {
			p.errorf("%s: record spans %d years, series has %d", req.CatalogID, len(raw), len(env.Series))
			continue
		}

		eai := 0.0
		for i := range req.Impacts {
			eai += req.Impacts[i] * req.Frequencies[i]
		}
		if !floatEq(env.ExpectedAnnualImpact, eai) {
			p.errorf("%s: EAI %g, expected %g", req.CatalogID, env.ExpectedAnnualImpact, eai)
		}

		if !env.Corrected {
			if env.CorrectionFactor != 0 {
				p.errorf("%s: uncorrected result carries factor %g", req.CatalogID, env.CorrectionFactor)
			}
			for i := range raw {
				if !floatEq(env.Series[i], raw[i]) {
					p.errorf("%s: series[%d] = %g, record sums to %g", req.CatalogID, i, env.Series[i], raw[i])
				}
			}
			continue
		}

		factor := env.CorrectionFactor
		if factor <= 0 {
			p.errorf("%s: corrected result has factor %g", req.CatalogID, factor)
			continue
		}
		if rawMean := stat.Mean(raw, nil); !floatEq(factor*rawMean, eai) {
			p.errorf("%s: factor %g times raw mean %g misses EAI %g", req.CatalogID, factor, rawMean, eai)
		}
		for i := range raw {
			if !floatEq(env.Series[i]*factor, raw[i]) {
				p.errorf("%s: series[%d] times factor = %g, record sums to %g",
					req.CatalogID, i, env.Series[i]*factor, raw[i])
			}
		}
	}
	return p
}

// resumSeries independently aggregates the record so the core's own
// aggregation is not trusted to check itself.
func resumSeries(rec yearset.Record, impacts []float64) []float64 {
	out := make([]float64, len(rec))
	for y, events := range rec {
		for _, idx := range events {
			out[y] += impacts[idx]
		}
	}
	return out
}

// ── Phase 4: Envelope Alignment ──
// Validates the serialized sink document: required fields, provenance enum,
// header set, and curve shape.

var validRecordSources = map[string]bool{
	domain.RecordSourceFresh:  true,
	domain.RecordSourceReused: true,
	domain.RecordSourceCached: true,
}

func validateEnvelopeAlignment(reqs []domain.CatalogRequest) *phase {
	p := &phase{name: "Phase 4: Envelope Alignment (sink schema)"}

	for _, req := range reqs {
		env, err := buildEnvelope(req)
		if err != nil {
			p.errorf("%s: build: %v", req.CatalogID, err)
			continue
		}
		checkEnvelopeFields(p, req, env)
		checkEnvelopeMessage(p, env)
	}
	return p
}

func checkEnvelopeFields(p *phase, req domain.CatalogRequest, env domain.YearsetResult) {
	id := req.CatalogID

	if !strings.HasPrefix(env.ID, "yearset-") {
		p.errorf("%s: result ID %q missing yearset- prefix", id, env.ID)
	}
	if !validRecordSources[env.RecordSource] {
		p.errorf("%s: record_source %q not in {fresh, reused, cached}", id, env.RecordSource)
	}
	if env.Years != len(env.Series) {
		p.errorf("%s: years %d but series has %d entries", id, env.Years, len(env.Series))
	}
	if len(env.YearLabels) != env.Years {
		p.errorf("%s: %d year labels for %d years", id, len(env.YearLabels), env.Years)
	}
	if len(env.SamplingRecord) != env.Years {
		p.errorf("%s: sampling record covers %d years, result says %d", id, len(env.SamplingRecord), env.Years)
	}
	if !floatEq(env.PerYearFrequency, 1/float64(env.Years)) {
		p.errorf("%s: per_year_frequency %g, expected 1/%d", id, env.PerYearFrequency, env.Years)
	}
	if env.GeneratedAt.IsZero() {
		p.errorf("%s: generated_at is zero", id)
	}

	if env.FrequencyCurve != nil {
		checkCurveShape(p, id, env.FrequencyCurve)
	}
}

func checkCurveShape(p *phase, id string, curve *yearset.Curve) {
	if len(curve.ReturnPeriods) != len(curve.Impacts) {
		p.errorf("%s: curve has %d periods but %d impacts", id, len(curve.ReturnPeriods), len(curve.Impacts))
		return
	}
	for i := 1; i < len(curve.ReturnPeriods); i++ {
		if curve.ReturnPeriods[i] <= curve.ReturnPeriods[i-1] {
			p.errorf("%s: curve periods not increasing at %d: %g then %g",
				id, i, curve.ReturnPeriods[i-1], curve.ReturnPeriods[i])
		}
		if curve.Impacts[i] < curve.Impacts[i-1] {
			p.errorf("%s: curve impacts decrease at %d: %g then %g",
				id, i, curve.Impacts[i-1], curve.Impacts[i])
		}
	}
}

func checkEnvelopeMessage(p *phase, env domain.YearsetResult) {
	msg, err := domain.SerializeYearsetResult(env)
	if err != nil {
		p.errorf("%s: serialize: %v", env.CatalogID, err)
		return
	}
	if string(msg.Key) != env.CatalogID {
		p.errorf("%s: message key %q, expected catalog ID", env.CatalogID, msg.Key)
	}
	for _, h := range []string{"catalog_id", "record_source", "generated_at"} {
		if msg.Headers[h] == "" {
			p.errorf("%s: message missing %s header", env.CatalogID, h)
		}
	}

	var back domain.YearsetResult
	if err := json.Unmarshal(msg.Value, &back); err != nil {
		p.errorf("%s: message value does not reparse: %v", env.CatalogID, err)
		return
	}
	if back.ID != env.ID {
		p.errorf("%s: reparsed ID %q, expected %q", env.CatalogID, back.ID, env.ID)
	}
}

// ── Helpers ──

// floatEq compares with a relative tolerance so million-scale series and
// sub-one factors share one check.
func floatEq(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) < 1e-9*scale
}

func recordsEqual(a, b yearset.Record) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
