package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the evaluation engine. Callers should test with
// errors.Is (or the checker helpers below) rather than comparing directly.
var (
	// ErrMissingSegments means a raw offer carried no segment data in any
	// of the known shapes. The offer is skipped; a route is never
	// fabricated.
	ErrMissingSegments = errors.New("offer has no segment data")

	// ErrMalformedOffer means a raw offer could not be normalized for a
	// reason other than missing segments. The offer is skipped.
	ErrMalformedOffer = errors.New("offer could not be normalized")

	// ErrOfferExcluded means an offer was dropped by a configured filter
	// (budget ceiling or cabin floor) before scoring.
	ErrOfferExcluded = errors.New("offer excluded by scan filters")

	// ErrCacheUnavailable means the price-history store could not be read.
	// Recovered locally by treating the store as empty.
	ErrCacheUnavailable = errors.New("price history store unavailable")

	// ErrInvalidConfig means the configuration would produce meaningless
	// scores (e.g., a zero weight divisor). Surfaced at startup; the
	// engine refuses to run.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidQuery means a provider query failed validation.
	ErrInvalidQuery = errors.New("invalid search query")
)

// ProviderError wraps a failure from the flight-search provider with the
// provider's name for logging.
type ProviderError struct {
	// Provider is the provider's unique identifier.
	Provider string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps err with the provider's name.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// IsMissingSegments reports whether err is (or wraps) ErrMissingSegments.
func IsMissingSegments(err error) bool {
	return errors.Is(err, ErrMissingSegments)
}

// IsMalformedOffer reports whether err is (or wraps) ErrMalformedOffer or
// ErrMissingSegments; both mean "skip this offer and keep scanning".
func IsMalformedOffer(err error) bool {
	return errors.Is(err, ErrMalformedOffer) || errors.Is(err, ErrMissingSegments)
}

// IsCacheUnavailable reports whether err is (or wraps) ErrCacheUnavailable.
func IsCacheUnavailable(err error) bool {
	return errors.Is(err, ErrCacheUnavailable)
}

// IsInvalidConfig reports whether err is (or wraps) ErrInvalidConfig.
func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

// WrapMalformedOffer wraps a formatted message with ErrMalformedOffer.
func WrapMalformedOffer(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedOffer, fmt.Sprintf(format, args...))
}
