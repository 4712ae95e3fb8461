package domain

// Candidate is the canonical normalized unit produced by the evaluation
// engine: one itinerary-price pair ready for scoring and ranking.
type Candidate struct {
	// ID is a unique identifier for this candidate (generated internally).
	ID string `json:"id"`

	// Price is the total fare in whole currency units.
	Price int `json:"price"`

	// Route is the ordered airport sequence: outbound then, if present,
	// return. Always holds at least two airports.
	Route []string `json:"route"`

	// TotalDurationMinutes is the duration sum over all segments.
	TotalDurationMinutes int `json:"totalDurationMinutes"`

	// Layovers lists every intermediate stop in order. Empty means direct.
	Layovers []Layover `json:"layovers"`

	// Airline is the representative airline (first segment's airline).
	Airline string `json:"airline"`

	// Cabin is the classified cabin tier (Unknown when unlabeled).
	Cabin Cabin `json:"cabin"`

	// Destination is the IATA code of the scanned destination.
	Destination string `json:"destination"`

	// DepartDate is the outbound date in YYYY-MM-DD format.
	DepartDate string `json:"departDate"`

	// ReturnDate is the return date in YYYY-MM-DD format.
	ReturnDate string `json:"returnDate"`

	// Outbound summarizes the outbound leg for display.
	Outbound LegSummary `json:"outbound"`

	// Inbound summarizes the return leg. Zero when the offer carried a
	// single combined list.
	Inbound LegSummary `json:"inbound,omitzero"`
}

// LegSummary is the aggregated view of one direction of travel.
type LegSummary struct {
	// Route is the ordered airport sequence for this direction.
	Route []string `json:"route"`

	// DurationMinutes is the duration sum for this direction.
	DurationMinutes int `json:"durationMinutes"`

	// Layovers lists the intermediate stops for this direction.
	Layovers []Layover `json:"layovers"`
}

// Layover is one intermediate stop between segments.
type Layover struct {
	// Airport is the IATA code of the layover airport.
	Airport string `json:"airport"`

	// WaitMinutes is the ground time before the next departure.
	// Only meaningful when WaitKnown is true.
	WaitMinutes int `json:"waitMinutes"`

	// WaitKnown is false when either adjacent timestamp failed to parse;
	// the layover is still reported, with an unknown wait.
	WaitKnown bool `json:"waitKnown"`
}

// ScoredCandidate is a Candidate with its composite desirability score and
// any anomaly verdict attached. Lower score = more desirable.
type ScoredCandidate struct {
	Candidate

	// Score is the composite desirability score (lower is better).
	Score float64 `json:"score"`

	// Anomaly is the price-history verdict, empty when none fired.
	Anomaly Anomaly `json:"anomaly,omitempty"`

	// Confidence is the display-only booking confidence. It never affects
	// ranking order.
	Confidence BookingConfidence `json:"confidence"`
}

// BookingConfidence is a human-facing 1-10 read on how urgently a fare is
// worth booking, derived from fixed price breakpoints.
type BookingConfidence struct {
	// Score is in [1, 10]; higher means book sooner.
	Score float64 `json:"score"`

	// Decision is the suggested action ("Book Now", "Good Deal", ...).
	Decision string `json:"decision"`

	// Level is the coarse confidence bucket (High, Medium, Low).
	Level string `json:"level"`
}

// Anomaly tags a price as anomalous relative to its observed history.
type Anomaly string

// Anomaly verdicts, in detector priority order.
const (
	// AnomalyFarBelowAverage fires when the price undercuts the historical
	// mean by the configured ratio.
	AnomalyFarBelowAverage Anomaly = "far_below_average"

	// AnomalyBelowHistoricalLow fires when the price undercuts the
	// historical minimum by the configured ratio.
	AnomalyBelowHistoricalLow Anomaly = "below_historical_low"

	// AnomalyUltraLow fires when the price sits under the fixed ultra-low
	// threshold regardless of history shape.
	AnomalyUltraLow Anomaly = "ultra_low_fare"

	// AnomalySuddenDrop fires when the price fell from the previous
	// observation by more than the configured delta.
	AnomalySuddenDrop Anomaly = "sudden_drop"
)

// String returns the tag value.
func (a Anomaly) String() string {
	return string(a)
}
