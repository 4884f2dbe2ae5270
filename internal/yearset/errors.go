package yearset

import "errors"

// Failure classes surfaced by the sampling pipeline. Wrapped with
// additional context at the point of detection; match with errors.Is.
var (
	// ErrInvalidCatalog reports an empty catalog, mismatched impact and
	// frequency lengths, negative or non-finite values, or frequencies
	// that sum to zero.
	ErrInvalidCatalog = errors.New("yearset: invalid catalog")

	// ErrInvalidParameter reports a non-positive target year count, a
	// negative event count, or a negative Poisson intensity.
	ErrInvalidParameter = errors.New("yearset: invalid parameter")

	// ErrDegenerateSeries reports that correction was requested for a
	// series whose mean is zero, leaving the factor undefined.
	ErrDegenerateSeries = errors.New("yearset: degenerate series")

	// ErrMalformedSamplingRecord reports a reused record whose length does
	// not match the requested years or which references an event index
	// outside the catalog.
	ErrMalformedSamplingRecord = errors.New("yearset: malformed sampling record")
)
