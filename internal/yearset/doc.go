// Package yearset resamples an event catalog into synthetic years of
// aggregate impact.
//
// # Sampling model
//
// A catalog is an ordered list of stochastic events, each carrying an
// impact and an annual occurrence frequency. For every target year the
// number of occurring events is drawn from a Poisson distribution whose
// mean defaults to the sum of catalog frequencies, and that many events
// are then selected with replacement, weighted by frequency. Summing the
// selected impacts per year yields a series whose long-run mean
// approximates the catalog's expected annual impact while exposing the
// year-to-year variance a single expectation hides.
//
// # Sampling records
//
// The indices drawn for each year form a [Record]. Builds return the
// record they used; passing it back via [Reuse] reproduces the series
// exactly, and applying one record to several catalogs that share hazard
// years yields physically consistent co-occurrence across all of them.
// Fresh draws take an explicit seed and are bit-reproducible for equal
// inputs. Reused records bypass randomness entirely.
//
// # Correction
//
// The mean of a sampled series only converges to the expected annual
// impact over long yearsets. [CorrectionFactor] is the ratio
// EAI / mean(series); enabling correction in [Build] divides every year
// by that factor. The factor is reported on [Result] so callers can log
// or export it.
//
// # Errors
//
// Invalid inputs fail at the first component that can detect them, as
// [ErrInvalidCatalog], [ErrInvalidParameter], [ErrDegenerateSeries], or
// [ErrMalformedSamplingRecord]. Nothing is retried and no partial series
// is ever returned.
package yearset
