// Package usecase contains the deal evaluation engine: offer normalization,
// cabin classification, scoring, anomaly detection, and ranking.
package usecase

import (
	"time"

	"github.com/flight-deals/flight-deal-radar/internal/domain"
)

// segmentTimeLayouts are the timestamp formats providers have been seen to
// use for segment departure/arrival times.
var segmentTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// AggregateLegs converts a raw offer's segments into per-direction leg
// summaries. It resolves the offer's shape explicitly and never fabricates
// a route: an offer with no segment data returns ErrMissingSegments so the
// caller can skip it.
//
// The second summary is nil for the single-list shape.
func AggregateLegs(offer domain.RawOffer) (*domain.LegSummary, *domain.LegSummary, error) {
	switch offer.Shape() {
	case domain.ShapeSingle:
		out := summarizeLeg(offer.Segments)
		return &out, nil, nil
	case domain.ShapeDual:
		// Either directional list may still be empty; a dual offer with
		// only one populated direction is treated as one-way.
		var out, in *domain.LegSummary
		if len(offer.OutboundSegments) > 0 {
			s := summarizeLeg(offer.OutboundSegments)
			out = &s
		}
		if len(offer.InboundSegments) > 0 {
			s := summarizeLeg(offer.InboundSegments)
			in = &s
		}
		if out == nil {
			out, in = in, nil
		}
		return out, in, nil
	default:
		return nil, nil, domain.ErrMissingSegments
	}
}

// summarizeLeg builds the route, total duration, and layovers for one
// ordered segment list. A missing duration counts as 0; an unparseable
// timestamp marks the layover wait unknown instead of failing the leg.
func summarizeLeg(segments []domain.Segment) domain.LegSummary {
	route := make([]string, 0, len(segments)+1)
	total := 0
	for _, seg := range segments {
		route = append(route, seg.DepartureAirport)
		total += seg.DurationMinutes
	}
	route = append(route, segments[len(segments)-1].ArrivalAirport)

	layovers := make([]domain.Layover, 0)
	for i := 0; i < len(segments)-1; i++ {
		layover := domain.Layover{Airport: segments[i].ArrivalAirport}

		arrive, okArrive := parseSegmentTime(segments[i].ArrivalTime)
		depart, okDepart := parseSegmentTime(segments[i+1].DepartureTime)
		if okArrive && okDepart && !depart.Before(arrive) {
			layover.WaitMinutes = int(depart.Sub(arrive) / time.Minute)
			layover.WaitKnown = true
		}
		layovers = append(layovers, layover)
	}

	return domain.LegSummary{
		Route:           route,
		DurationMinutes: total,
		Layovers:        layovers,
	}
}

// parseSegmentTime tries each known provider timestamp layout.
func parseSegmentTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range segmentTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// representativeAirline picks the candidate's airline: the first segment's
// airline, or "Unknown" when absent.
func representativeAirline(segments []domain.Segment) string {
	if len(segments) == 0 || segments[0].Airline == "" {
		return "Unknown"
	}
	return segments[0].Airline
}
