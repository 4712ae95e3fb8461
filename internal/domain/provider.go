package domain

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=domain

// SearchQuery defines one round-trip provider query.
type SearchQuery struct {
	// Origin is the IATA code of the departure airport (e.g., "DEL").
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport (e.g., "LIS").
	Destination string `json:"destination"`

	// DepartDate is the outbound date in YYYY-MM-DD format.
	DepartDate string `json:"departDate"`

	// ReturnDate is the return date in YYYY-MM-DD format.
	ReturnDate string `json:"returnDate"`

	// CabinHint is the cabin tier requested from the provider. It is a
	// hint only; returned offers still go through classification.
	CabinHint Cabin `json:"cabinHint"`
}

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validate checks the query before it is sent to the provider.
// Returns a wrapped ErrInvalidQuery error if validation fails.
func (q *SearchQuery) Validate() error {
	if !airportCodeRegex.MatchString(q.Origin) {
		return fmt.Errorf("%w: origin must be a valid 3-letter IATA code, got %q", ErrInvalidQuery, q.Origin)
	}
	if !airportCodeRegex.MatchString(q.Destination) {
		return fmt.Errorf("%w: destination must be a valid 3-letter IATA code, got %q", ErrInvalidQuery, q.Destination)
	}
	if q.Origin == q.Destination {
		return fmt.Errorf("%w: origin and destination must be different", ErrInvalidQuery)
	}
	if !dateRegex.MatchString(q.DepartDate) {
		return fmt.Errorf("%w: departDate must be in YYYY-MM-DD format, got %q", ErrInvalidQuery, q.DepartDate)
	}
	if _, err := time.Parse("2006-01-02", q.DepartDate); err != nil {
		return fmt.Errorf("%w: departDate is not a valid date: %s", ErrInvalidQuery, q.DepartDate)
	}
	if q.ReturnDate != "" {
		if !dateRegex.MatchString(q.ReturnDate) {
			return fmt.Errorf("%w: returnDate must be in YYYY-MM-DD format, got %q", ErrInvalidQuery, q.ReturnDate)
		}
		if q.ReturnDate < q.DepartDate {
			return fmt.Errorf("%w: returnDate must not precede departDate", ErrInvalidQuery)
		}
	}
	return nil
}

// SearchProvider supplies raw offers for a query. The engine treats the
// response schema as untrusted and degrades gracefully on missing fields.
type SearchProvider interface {
	// Name returns the provider's unique identifier for logging.
	Name() string

	// Search returns the raw offers for one (origin, destination, dates)
	// query. An empty slice with a nil error means the provider answered
	// but found nothing.
	Search(ctx context.Context, query SearchQuery) ([]RawOffer, error)
}

// Notifier delivers structured scan output to a human channel. Rendering
// into text, links, or HTML is entirely the channel's responsibility.
type Notifier interface {
	// SendReport delivers the ranked result of one scan.
	SendReport(ctx context.Context, result *ScanResult) error

	// SendAlert delivers a single anomaly alert.
	SendAlert(ctx context.Context, alert Alert) error
}
