package serpapi

import (
	"github.com/flight-deals/flight-deal-radar/internal/domain"
)

// normalizeOffers converts provider offers to domain raw offers. Offers
// are passed through as-is, variable shape included; resolving the shape
// is the leg aggregator's job, not the adapter's.
func normalizeOffers(offers []offerDTO) []domain.RawOffer {
	result := make([]domain.RawOffer, 0, len(offers))
	for _, o := range offers {
		result = append(result, normalizeOffer(o))
	}
	return result
}

// normalizeOffer converts one provider offer.
func normalizeOffer(o offerDTO) domain.RawOffer {
	return domain.RawOffer{
		Price:            o.Price,
		Segments:         normalizeSegments(o.Flights),
		OutboundSegments: normalizeSegments(o.OutboundFlights),
		InboundSegments:  normalizeSegments(o.ReturnFlights),
	}
}

// normalizeSegments converts a provider segment list, coalescing the two
// cabin label field names the provider has used.
func normalizeSegments(segments []segmentDTO) []domain.Segment {
	if len(segments) == 0 {
		return nil
	}
	result := make([]domain.Segment, 0, len(segments))
	for _, s := range segments {
		label := s.TravelClass
		if label == "" {
			label = s.Class
		}
		result = append(result, domain.Segment{
			DepartureAirport: s.DepartureAirport.ID,
			ArrivalAirport:   s.ArrivalAirport.ID,
			DepartureTime:    s.DepartureAirport.Time,
			ArrivalTime:      s.ArrivalAirport.Time,
			DurationMinutes:  s.Duration,
			Airline:          s.Airline,
			CabinLabel:       label,
		})
	}
	return result
}
