package serpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-deals/flight-deal-radar/internal/domain"
)

const roundTripBody = `{
	"best_flights": [
		{
			"price": 140000,
			"flights": [
				{
					"departure_airport": {"id": "DEL", "name": "Indira Gandhi International Airport", "time": "2026-07-31 02:10"},
					"arrival_airport": {"id": "DOH", "name": "Hamad International Airport", "time": "2026-07-31 04:20"},
					"duration": 250,
					"airline": "Qatar Airways",
					"travel_class": "Business"
				},
				{
					"departure_airport": {"id": "DOH", "time": "2026-07-31 07:05"},
					"arrival_airport": {"id": "LIS", "time": "2026-07-31 13:55"},
					"duration": 470,
					"airline": "Qatar Airways",
					"class": "Business"
				}
			]
		}
	],
	"other_flights": [
		{
			"price": 95000,
			"flights": [
				{
					"departure_airport": {"id": "DEL"},
					"arrival_airport": {"id": "LIS"},
					"duration": 540,
					"airline": "IndiGo",
					"travel_class": "Economy"
				}
			]
		}
	]
}`

func testQuery() domain.SearchQuery {
	return domain.SearchQuery{
		Origin:      "DEL",
		Destination: "LIS",
		DepartDate:  "2026-07-31",
		ReturnDate:  "2026-08-07",
		CabinHint:   domain.CabinBusiness,
	}
}

func TestSearchRoundTrip(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(roundTripBody))
	}))
	defer server.Close()

	adapter := NewAdapter(Config{APIKey: "test-key", BaseURL: server.URL})

	offers, err := adapter.Search(context.Background(), testQuery())

	require.NoError(t, err)

	// best_flights wins over other_flights.
	require.Len(t, offers, 1)
	offer := offers[0]
	assert.Equal(t, 140000, offer.Price)
	assert.Equal(t, domain.ShapeSingle, offer.Shape())
	require.Len(t, offer.Segments, 2)

	first := offer.Segments[0]
	assert.Equal(t, "DEL", first.DepartureAirport)
	assert.Equal(t, "DOH", first.ArrivalAirport)
	assert.Equal(t, "2026-07-31 02:10", first.DepartureTime)
	assert.Equal(t, 250, first.DurationMinutes)
	assert.Equal(t, "Qatar Airways", first.Airline)
	assert.Equal(t, "Business", first.CabinLabel)

	// The legacy "class" field name is coalesced into the cabin label.
	assert.Equal(t, "Business", offer.Segments[1].CabinLabel)

	assert.Equal(t, "google_flights", gotQuery["engine"])
	assert.Equal(t, "DEL", gotQuery["departure_id"])
	assert.Equal(t, "LIS", gotQuery["arrival_id"])
	assert.Equal(t, "2026-07-31", gotQuery["outbound_date"])
	assert.Equal(t, "2026-08-07", gotQuery["return_date"])
	assert.Equal(t, "test-key", gotQuery["api_key"])
	assert.Equal(t, "INR", gotQuery["currency"])
	assert.Equal(t, "3", gotQuery["travel_class"])
	assert.NotContains(t, gotQuery, "type")
}

func TestSearchFallsBackToOtherFlights(t *testing.T) {
	body := `{"best_flights": [], "other_flights": [{"price": 95000, "flights": [{"departure_airport": {"id": "DEL"}, "arrival_airport": {"id": "LIS"}, "duration": 540, "airline": "IndiGo"}]}]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer server.Close()

	adapter := NewAdapter(Config{APIKey: "test-key", BaseURL: server.URL})

	offers, err := adapter.Search(context.Background(), testQuery())

	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, 95000, offers[0].Price)
	assert.Equal(t, "IndiGo", offers[0].Segments[0].Airline)
}

func TestSearchDualLegCombinesOffers(t *testing.T) {
	outBody := `{"best_flights": [
		{"price": 80000, "flights": [{"departure_airport": {"id": "DEL"}, "arrival_airport": {"id": "LIS"}, "duration": 660, "airline": "Qatar Airways", "travel_class": "Business"}]},
		{"price": 90000, "flights": [{"departure_airport": {"id": "DEL"}, "arrival_airport": {"id": "LIS"}, "duration": 700, "airline": "Lufthansa", "travel_class": "Business"}]}
	]}`
	inBody := `{"best_flights": [
		{"price": 70000, "flights": [{"departure_airport": {"id": "LIS"}, "arrival_airport": {"id": "DEL"}, "duration": 640, "airline": "Qatar Airways", "travel_class": "Business"}]}
	]}`

	var requests []map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := map[string]string{}
		for k := range r.URL.Query() {
			q[k] = r.URL.Query().Get(k)
		}
		requests = append(requests, q)

		w.Header().Set("Content-Type", "application/json")
		if q["departure_id"] == "DEL" {
			w.Write([]byte(outBody))
		} else {
			w.Write([]byte(inBody))
		}
	}))
	defer server.Close()

	adapter := NewAdapter(Config{
		APIKey:          "test-key",
		BaseURL:         server.URL,
		DualLeg:         true,
		TopOffersPerLeg: 5,
	})

	offers, err := adapter.Search(context.Background(), testQuery())

	require.NoError(t, err)

	// Both legs are one-way queries.
	require.Len(t, requests, 2)
	assert.Equal(t, "2", requests[0]["type"])
	assert.Equal(t, "DEL", requests[0]["departure_id"])
	assert.Equal(t, "2026-07-31", requests[0]["outbound_date"])
	assert.Equal(t, "LIS", requests[1]["departure_id"])
	assert.Equal(t, "DEL", requests[1]["arrival_id"])
	assert.Equal(t, "2026-08-07", requests[1]["outbound_date"])
	assert.NotContains(t, requests[0], "return_date")

	// 2 outbound x 1 inbound combinations, prices summed, dual shape.
	require.Len(t, offers, 2)
	assert.Equal(t, 150000, offers[0].Price)
	assert.Equal(t, 160000, offers[1].Price)
	for _, offer := range offers {
		assert.Equal(t, domain.ShapeDual, offer.Shape())
		assert.Len(t, offer.OutboundSegments, 1)
		assert.Len(t, offer.InboundSegments, 1)
	}
}

func TestSearchDualLegCapsOffersPerLeg(t *testing.T) {
	legBody := `{"best_flights": [
		{"price": 10, "flights": [{"departure_airport": {"id": "DEL"}, "arrival_airport": {"id": "LIS"}, "duration": 600}]},
		{"price": 20, "flights": [{"departure_airport": {"id": "DEL"}, "arrival_airport": {"id": "LIS"}, "duration": 600}]},
		{"price": 30, "flights": [{"departure_airport": {"id": "DEL"}, "arrival_airport": {"id": "LIS"}, "duration": 600}]}
	]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(legBody))
	}))
	defer server.Close()

	adapter := NewAdapter(Config{
		APIKey:          "test-key",
		BaseURL:         server.URL,
		DualLeg:         true,
		TopOffersPerLeg: 2,
	})

	offers, err := adapter.Search(context.Background(), testQuery())

	require.NoError(t, err)
	assert.Len(t, offers, 4) // 2 x 2 after capping
}

func TestSearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	adapter := NewAdapter(Config{APIKey: "test-key", BaseURL: server.URL})

	offers, err := adapter.Search(context.Background(), testQuery())

	require.Error(t, err)
	assert.Nil(t, offers)

	var provErr *domain.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, ProviderName, provErr.Provider)
	assert.Contains(t, err.Error(), "429")
}

func TestSearchRejectsInvalidQuery(t *testing.T) {
	adapter := NewAdapter(Config{APIKey: "test-key", BaseURL: "http://localhost:0"})

	q := testQuery()
	q.Origin = "delhi"

	offers, err := adapter.Search(context.Background(), q)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
	assert.Nil(t, offers)
}

func TestTravelClassParam(t *testing.T) {
	assert.Equal(t, "3", travelClassParam(domain.CabinBusiness))
	assert.Equal(t, "2", travelClassParam(domain.CabinPremiumEconomy))
	assert.Equal(t, "1", travelClassParam(domain.CabinEconomy))
	assert.Equal(t, "1", travelClassParam(domain.CabinUnknown))
}

func TestAdapterName(t *testing.T) {
	adapter := NewAdapter(Config{})
	assert.Equal(t, "serpapi_google_flights", adapter.Name())
}
