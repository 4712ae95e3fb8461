package serpapi

// searchResponse is the subset of the provider's google_flights payload the
// radar consumes. Everything else in the response is ignored.
type searchResponse struct {
	// BestFlights is the provider's curated offer list.
	BestFlights []offerDTO `json:"best_flights"`

	// OtherFlights holds the remaining offers; consulted only when the
	// curated list is empty.
	OtherFlights []offerDTO `json:"other_flights"`
}

// offerDTO is one itinerary-price pair as the provider reports it. The
// segment lists are mutually inconsistent across responses: some carry a
// single combined list, some carry directional lists, some carry nothing.
type offerDTO struct {
	Price           int          `json:"price"`
	Flights         []segmentDTO `json:"flights"`
	OutboundFlights []segmentDTO `json:"outbound_flights"`
	ReturnFlights   []segmentDTO `json:"return_flights"`
}

// segmentDTO is one flown leg. The cabin label arrives under either
// travel_class or class depending on response vintage.
type segmentDTO struct {
	DepartureAirport airportDTO `json:"departure_airport"`
	ArrivalAirport   airportDTO `json:"arrival_airport"`
	Duration         int        `json:"duration"`
	Airline          string     `json:"airline"`
	TravelClass      string     `json:"travel_class"`
	Class            string     `json:"class"`
}

// airportDTO is an airport reference with its scheduled time.
type airportDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Time string `json:"time"`
}
