package usecase

import (
	"fmt"
	"strings"

	"github.com/flight-deals/flight-deal-radar/internal/domain"
)

// ScoringParams are the valuation constants. K (duration divisor) and W
// (value weight) are parameters rather than constants on purpose: earlier
// revisions of the formula disagreed on their exact values.
type ScoringParams struct {
	// DurationDivisor is K in score = price/1000 + duration/K - value*W.
	DurationDivisor float64

	// ValueWeight is W in the score formula.
	ValueWeight float64

	// AirlinePenalty is added when the airline matches no allowed entry.
	AirlinePenalty float64

	// AllowedAirlines are substrings matched against the airline name.
	// Empty disables the penalty entirely.
	AllowedAirlines []string

	// TaxesFees is subtracted from the price before computing mile value.
	TaxesFees int

	// MilesRequired maps destinations to redemption mile estimates.
	MilesRequired map[string]int

	// DefaultMilesRequired covers unconfigured destinations. Zero disables
	// value-based bonuses.
	DefaultMilesRequired int
}

// Scorer computes composite desirability scores. Lower score = more
// desirable (cheaper, shorter, better mile value).
type Scorer struct {
	params ScoringParams
}

// NewScorer validates the parameters and builds a Scorer. A non-positive
// duration divisor would divide by zero and is refused up front.
func NewScorer(params ScoringParams) (*Scorer, error) {
	if params.DurationDivisor <= 0 {
		return nil, fmt.Errorf("%w: duration divisor must be positive", domain.ErrInvalidConfig)
	}
	if params.ValueWeight < 0 {
		return nil, fmt.Errorf("%w: value weight must not be negative", domain.ErrInvalidConfig)
	}
	return &Scorer{params: params}, nil
}

// ValuePerMile estimates the redemption value (currency per mile) implied
// by paying cash instead of miles plus taxes. Returns 0 when the
// destination's mile requirement is zero or unset, which also disables the
// value term of the score.
func (s *Scorer) ValuePerMile(price int, destination string) float64 {
	miles, ok := s.params.MilesRequired[destination]
	if !ok {
		miles = s.params.DefaultMilesRequired
	}
	if miles <= 0 {
		return 0
	}
	return float64(price-s.params.TaxesFees) / float64(miles)
}

// Score computes the composite desirability score for a candidate:
//
//	score = price/1000 + duration/K - valuePerMile*W [+ airline penalty]
//
// Holding duration and value fixed, a higher price strictly worsens the
// score.
func (s *Scorer) Score(c domain.Candidate) float64 {
	score := float64(c.Price)/1000 +
		float64(c.TotalDurationMinutes)/s.params.DurationDivisor -
		s.ValuePerMile(c.Price, c.Destination)*s.params.ValueWeight

	if len(s.params.AllowedAirlines) > 0 && !s.airlineAllowed(c.Airline) {
		score += s.params.AirlinePenalty
	}
	return score
}

// airlineAllowed reports whether any allow-list substring occurs in the
// airline name. Substring matching is the documented rule; do not tighten
// it to equality.
func (s *Scorer) airlineAllowed(airline string) bool {
	for _, allowed := range s.params.AllowedAirlines {
		if allowed != "" && strings.Contains(airline, allowed) {
			return true
		}
	}
	return false
}

// Booking confidence price breakpoints, in whole currency units.
const (
	confidenceBookNowBelow  = 120000
	confidenceGoodDealBelow = 150000
	confidenceConsiderBelow = 200000
)

// ConfidenceFor derives the human-facing booking confidence for a price.
// It is display-only and never influences ranking order: confidence
// decreases monotonically with price through fixed breakpoints, clamped
// to [1, 10].
func ConfidenceFor(price int) domain.BookingConfidence {
	var bc domain.BookingConfidence
	switch {
	case price < confidenceBookNowBelow:
		bc = domain.BookingConfidence{Score: 9, Decision: "Book Now", Level: "High"}
	case price < confidenceGoodDealBelow:
		bc = domain.BookingConfidence{Score: 7.5, Decision: "Good Deal", Level: "Medium"}
	case price < confidenceConsiderBelow:
		bc = domain.BookingConfidence{Score: 6, Decision: "Consider", Level: "Medium"}
	default:
		bc = domain.BookingConfidence{Score: 4, Decision: "Wait", Level: "Low"}
	}

	if bc.Score < 1 {
		bc.Score = 1
	}
	if bc.Score > 10 {
		bc.Score = 10
	}
	return bc
}
