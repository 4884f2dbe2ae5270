package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/impact-yearset-service/internal/adapter/recordcache"
	"github.com/couchcryptid/impact-yearset-service/internal/config"
	"github.com/couchcryptid/impact-yearset-service/internal/domain"
	"github.com/couchcryptid/impact-yearset-service/internal/observability"
	"github.com/couchcryptid/impact-yearset-service/internal/yearset"
)

// YearsetTransformer implements Transformer: it parses catalog requests,
// builds yearsets through the sampling core, and serializes the results.
// Catalogs sharing a hazard group draw from one cached sampling record so
// their yearsets stay correlated.
type YearsetTransformer struct {
	cache   *recordcache.Store
	logger  *slog.Logger
	metrics *observability.Metrics

	defaultYears     int
	applyCorrection  bool
	maxCatalogEvents int
	maxTargetYears   int
}

// NewTransformer creates a YearsetTransformer backed by the given record
// cache.
func NewTransformer(cache *recordcache.Store, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *YearsetTransformer {
	return &YearsetTransformer{
		cache:   cache,
		logger:  logger,
		metrics: metrics,

		defaultYears:     cfg.DefaultTargetYears,
		applyCorrection:  cfg.ApplyCorrection,
		maxCatalogEvents: cfg.MaxCatalogEvents,
		maxTargetYears:   cfg.MaxTargetYears,
	}
}

func (t *YearsetTransformer) Transform(ctx context.Context, raw domain.RawMessage) (domain.OutputMessage, error) {
	req, err := domain.ParseCatalogRequest(raw)
	if err != nil {
		return domain.OutputMessage{}, err
	}

	cat := yearset.Catalog{Impacts: req.Impacts, Frequencies: req.Frequencies}
	if n := cat.Len(); n > t.maxCatalogEvents {
		return domain.OutputMessage{}, fmt.Errorf("catalog %s has %d events, limit is %d", req.CatalogID, n, t.maxCatalogEvents)
	}

	years := req.TargetYears(t.defaultYears)
	if years > t.maxTargetYears {
		return domain.OutputMessage{}, fmt.Errorf("catalog %s requests %d years, limit is %d", req.CatalogID, years, t.maxTargetYears)
	}

	source, recordSource := t.resolveSource(req, years)

	buildReq := yearset.Request{
		Years:           years,
		Labels:          req.YearLabels,
		Source:          source,
		ApplyCorrection: req.CorrectionEnabled(t.applyCorrection),
	}

	start := time.Now()
	res, err := yearset.Build(cat, buildReq)
	if err != nil && recordSource == domain.RecordSourceCached && errors.Is(err, yearset.ErrMalformedSamplingRecord) {
		// The group's record was drawn for a catalog with more events than
		// this one. Resample rather than fail the request.
		t.logger.Warn("cached record incompatible with catalog, resampling",
			"catalog_id", req.CatalogID, "hazard_group", req.HazardGroup, "error", err)
		recordSource = domain.RecordSourceFresh
		buildReq.Source = t.freshSource(req)
		res, err = yearset.Build(cat, buildReq)
	}
	if err != nil {
		return domain.OutputMessage{}, fmt.Errorf("build yearset for catalog %s: %w", req.CatalogID, err)
	}

	t.metrics.SamplingDuration.Observe(time.Since(start).Seconds())
	t.metrics.RecordSource.WithLabelValues(recordSource).Inc()
	if res.Corrected {
		t.metrics.CorrectionFactor.Observe(res.CorrectionFactor)
	}

	if req.HazardGroup != "" && recordSource != domain.RecordSourceCached {
		t.cache.Put(req.HazardGroup, res.Record)
	}

	result := domain.NewYearsetResult(req, cat, res, t.buildCurve(req, cat), recordSource)

	t.logger.Debug("yearset built",
		"catalog_id", req.CatalogID,
		"years", result.Years,
		"record_source", recordSource,
		"correction_factor", res.CorrectionFactor,
	)

	return domain.SerializeYearsetResult(result)
}

// resolveSource picks the sampling record source: an explicit record in the
// request wins, then a cached hazard group record spanning the same years,
// then a fresh draw.
func (t *YearsetTransformer) resolveSource(req domain.CatalogRequest, years int) (yearset.Source, string) {
	if len(req.SamplingRecord) > 0 {
		return yearset.Reuse(req.SamplingRecord), domain.RecordSourceReused
	}

	if req.HazardGroup != "" {
		rec, ok := t.cache.Get(req.HazardGroup)
		if ok && len(rec) == years {
			t.metrics.RecordCache.WithLabelValues("hit").Inc()
			return yearset.Reuse(rec), domain.RecordSourceCached
		}
		t.metrics.RecordCache.WithLabelValues("miss").Inc()
	}

	return t.freshSource(req), domain.RecordSourceFresh
}

func (t *YearsetTransformer) freshSource(req domain.CatalogRequest) yearset.Source {
	if req.Lambda != nil {
		return yearset.FreshWithLambda(*req.Lambda, req.Seed)
	}
	return yearset.Fresh(req.Seed)
}

// buildCurve derives the exceedance curve for the result. Curve failures
// (such as catalogs carrying zero-frequency events) degrade to a result
// without one rather than failing the build.
func (t *YearsetTransformer) buildCurve(req domain.CatalogRequest, cat yearset.Catalog) *yearset.Curve {
	periods := req.ReturnPeriods
	if periods == nil {
		periods = yearset.DefaultReturnPeriods
	}

	curve, err := yearset.FrequencyCurve(cat.Impacts, cat.Frequencies, periods)
	if err != nil {
		t.logger.Warn("frequency curve skipped", "catalog_id", req.CatalogID, "error", err)
		return nil
	}
	return &curve
}
