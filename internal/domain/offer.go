// Package domain contains the core business entities and rules for the deal
// radar. These entities are provider-agnostic and form the foundation upon
// which all other components are built.
package domain

// OfferShape identifies which of the observed provider payload shapes a
// RawOffer carries. Providers are inconsistent about how they report the
// legs of a round trip, so the shape is resolved explicitly once instead of
// probing fields at every call site.
type OfferShape int

const (
	// ShapeMissing means the offer carries no segment data at all.
	ShapeMissing OfferShape = iota

	// ShapeSingle means the offer carries one combined segment list.
	ShapeSingle

	// ShapeDual means the offer carries separate outbound and inbound lists.
	ShapeDual
)

// RawOffer is the provider's record for one itinerary-price pair. Its shape
// is variable: segment data may arrive as a single list, as separate
// outbound/inbound lists, or not at all.
type RawOffer struct {
	// Price is the total fare in whole currency units.
	Price int `json:"price"`

	// Segments is the combined segment list (single-list shape).
	Segments []Segment `json:"flights,omitempty"`

	// OutboundSegments is the outbound leg list (dual-list shape).
	OutboundSegments []Segment `json:"outbound_flights,omitempty"`

	// InboundSegments is the return leg list (dual-list shape).
	InboundSegments []Segment `json:"return_flights,omitempty"`
}

// Shape resolves the offer's segment layout. A dual offer needs at least one
// populated directional list; an offer with only Segments is single-list;
// anything else is missing.
func (o RawOffer) Shape() OfferShape {
	if len(o.OutboundSegments) > 0 || len(o.InboundSegments) > 0 {
		return ShapeDual
	}
	if len(o.Segments) > 0 {
		return ShapeSingle
	}
	return ShapeMissing
}

// AllSegments returns every segment of the offer in flown order, regardless
// of shape. Used by the cabin classifier, which votes over all legs.
func (o RawOffer) AllSegments() []Segment {
	if o.Shape() == ShapeDual {
		all := make([]Segment, 0, len(o.OutboundSegments)+len(o.InboundSegments))
		all = append(all, o.OutboundSegments...)
		all = append(all, o.InboundSegments...)
		return all
	}
	return o.Segments
}

// Segment is one flown leg of an itinerary.
type Segment struct {
	// DepartureAirport is the IATA code of the departure airport.
	DepartureAirport string `json:"departure_airport"`

	// ArrivalAirport is the IATA code of the arrival airport.
	ArrivalAirport string `json:"arrival_airport"`

	// DepartureTime is the scheduled departure timestamp as reported by the
	// provider. May be empty or in a non-standard format.
	DepartureTime string `json:"departure_time,omitempty"`

	// ArrivalTime is the scheduled arrival timestamp as reported by the
	// provider. May be empty or in a non-standard format.
	ArrivalTime string `json:"arrival_time,omitempty"`

	// DurationMinutes is the leg duration in minutes (0 when unreported).
	DurationMinutes int `json:"duration"`

	// Airline is the operating airline name.
	Airline string `json:"airline,omitempty"`

	// CabinLabel is the provider's cabin label for this leg, already
	// coalesced from the two field names providers use (travel_class and
	// class). Empty means no label was reported.
	CabinLabel string `json:"travel_class,omitempty"`
}
