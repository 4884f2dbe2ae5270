// Command genmock generates the mock catalog request fixture consumed by the
// pipeline test suite. It runs every request through the actual sampling core
// so the printed stats match real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/catalog_requests.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/impact-yearset-service/internal/config"
	"github.com/couchcryptid/impact-yearset-service/internal/domain"
	"github.com/couchcryptid/impact-yearset-service/internal/yearset"
	"github.com/jonboulle/clockwork"
	"gonum.org/v1/gonum/stat"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the catalog request fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	// Set a fixed clock for reproducible GeneratedAt timestamps in the stats.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	reqs := buildRequests()

	if err := writeJSON(*out, reqs); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote %d catalog requests: %s", len(reqs), *out)

	printStats(reqs)
	return nil
}

// buildRequests assembles the fixture catalogs. The set covers a record
// replay, a shared hazard group, an explicit lambda override, a retired
// zero-frequency event, and a single-event catalog.
func buildRequests() []domain.CatalogRequest {
	return []domain.CatalogRequest{
		{
			CatalogID:   "cat-demo-uniform",
			Impacts:     ramp(10, 10),
			Frequencies: repeat(0.2, 10),
			SamplingRecord: yearset.Record{
				{0, 1, 2}, {2, 3}, {3, 4}, {9, 8, 6}, {},
				{9, 8, 7}, {5, 7}, {}, {9, 5, 4}, {9, 8},
			},
			ReturnPeriods: []float64{2.5, 5},
		},
		{
			CatalogID:   "cat-atl-wind",
			HazardGroup: "atl",
			Impacts:     ramp(50000, 20),
			Frequencies: repeat(0.05, 20),
			Years:       250,
			Seed:        42,
		},
		{
			CatalogID:   "cat-atl-surge",
			HazardGroup: "atl",
			Impacts:     ramp(20000, 20),
			Frequencies: repeat(0.05, 20),
			Years:       250,
			Seed:        43,
		},
		{
			CatalogID:       "cat-pac-quake",
			Impacts:         []float64{1000000, 5000000, 20000000, 80000000, 300000000},
			Frequencies:     []float64{0.05, 0.02, 0.01, 0.005, 0.002},
			Years:           500,
			Lambda:          ptr(0.1),
			ApplyCorrection: ptr(false),
			Seed:            7,
		},
		{
			CatalogID:   "cat-retired-event",
			Impacts:     []float64{10, 20, 30},
			Frequencies: []float64{0.5, 0, 0.3},
			Years:       100,
			Seed:        3,
		},
		{
			CatalogID:   "cat-single-event",
			Impacts:     []float64{500},
			Frequencies: []float64{0.25},
			Years:       100,
			Seed:        9,
		},
	}
}

func ptr[T any](v T) *T { return &v }

// ramp returns n impacts stepping up by step: step, 2*step, ...
func ramp(step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = step * float64(i+1)
	}
	return out
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// buildEnvelope mirrors the pipeline's source resolution, minus the hazard
// group cache, and returns the full result envelope for one request.
func buildEnvelope(req domain.CatalogRequest, defaults *config.Config) (domain.YearsetResult, error) {
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

func printStats(reqs []domain.CatalogRequest) {
	defaults := config.New()

	fmt.Println("\n=== Stats for updating test assertions ===")
	for _, req := range reqs {
		env, err := buildEnvelope(req, defaults)
		if err != nil {
			fmt.Printf("\n%s: build failed: %v\n", req.CatalogID, err)
			continue
		}

		fmt.Printf("\n%s:\n", env.CatalogID)
		fmt.Printf("  ID: %s\n", env.ID)
		fmt.Printf("  Years: %d, RecordSource: %s, Seed: %d\n", env.Years, env.RecordSource, env.Seed)
		fmt.Printf("  EAI: %g, MeanAnnualImpact: %g\n",
			env.ExpectedAnnualImpact, stat.Mean(env.Series, nil))
		if env.Corrected {
			fmt.Printf("  CorrectionFactor: %.9f\n", env.CorrectionFactor)
		}
		fmt.Printf("  Series[0]: %.6f\n", env.Series[0])
		if env.FrequencyCurve != nil {
			fmt.Printf("  Curve: periods=%v impacts=%v\n",
				env.FrequencyCurve.ReturnPeriods, env.FrequencyCurve.Impacts)
		} else {
			fmt.Println("  Curve: skipped")
		}
	}
}
