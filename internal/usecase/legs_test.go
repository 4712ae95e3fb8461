package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-deals/flight-deal-radar/internal/domain"
)

func TestAggregateLegsSingleList(t *testing.T) {
	offer := domain.RawOffer{
		Price: 140000,
		Segments: []domain.Segment{
			{
				DepartureAirport: "DEL",
				ArrivalAirport:   "DOH",
				DepartureTime:    "2026-07-31 02:10",
				ArrivalTime:      "2026-07-31 04:20",
				DurationMinutes:  250,
				Airline:          "Qatar Airways",
			},
			{
				DepartureAirport: "DOH",
				ArrivalAirport:   "LIS",
				DepartureTime:    "2026-07-31 07:05",
				ArrivalTime:      "2026-07-31 13:55",
				DurationMinutes:  470,
				Airline:          "Qatar Airways",
			},
		},
	}

	outbound, inbound, err := AggregateLegs(offer)

	require.NoError(t, err)
	require.NotNil(t, outbound)
	assert.Nil(t, inbound)

	assert.Equal(t, []string{"DEL", "DOH", "LIS"}, outbound.Route)
	assert.Equal(t, 720, outbound.DurationMinutes)

	require.Len(t, outbound.Layovers, 1)
	assert.Equal(t, "DOH", outbound.Layovers[0].Airport)
	assert.True(t, outbound.Layovers[0].WaitKnown)
	assert.Equal(t, 165, outbound.Layovers[0].WaitMinutes)
}

func TestAggregateLegsDualList(t *testing.T) {
	offer := domain.RawOffer{
		Price: 200000,
		OutboundSegments: []domain.Segment{
			{DepartureAirport: "DEL", ArrivalAirport: "LIS", DurationMinutes: 660},
		},
		InboundSegments: []domain.Segment{
			{DepartureAirport: "LIS", ArrivalAirport: "FRA", DurationMinutes: 180},
			{DepartureAirport: "FRA", ArrivalAirport: "DEL", DurationMinutes: 480},
		},
	}

	outbound, inbound, err := AggregateLegs(offer)

	require.NoError(t, err)
	require.NotNil(t, outbound)
	require.NotNil(t, inbound)

	assert.Equal(t, []string{"DEL", "LIS"}, outbound.Route)
	assert.Empty(t, outbound.Layovers)

	assert.Equal(t, []string{"LIS", "FRA", "DEL"}, inbound.Route)
	assert.Equal(t, 660, inbound.DurationMinutes)
	require.Len(t, inbound.Layovers, 1)
	assert.Equal(t, "FRA", inbound.Layovers[0].Airport)
}

func TestAggregateLegsMissingSegments(t *testing.T) {
	tests := []struct {
		name  string
		offer domain.RawOffer
	}{
		{name: "no segment fields at all", offer: domain.RawOffer{Price: 120000}},
		{name: "empty segment lists", offer: domain.RawOffer{
			Price:            120000,
			Segments:         []domain.Segment{},
			OutboundSegments: []domain.Segment{},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outbound, inbound, err := AggregateLegs(tt.offer)

			require.Error(t, err)
			assert.True(t, domain.IsMissingSegments(err))
			assert.Nil(t, outbound)
			assert.Nil(t, inbound)
		})
	}
}

func TestAggregateLegsDualWithOnlyInbound(t *testing.T) {
	// A dual offer with one populated direction is treated as one-way.
	offer := domain.RawOffer{
		Price: 90000,
		InboundSegments: []domain.Segment{
			{DepartureAirport: "LIS", ArrivalAirport: "DEL", DurationMinutes: 600},
		},
	}

	outbound, inbound, err := AggregateLegs(offer)

	require.NoError(t, err)
	require.NotNil(t, outbound)
	assert.Nil(t, inbound)
	assert.Equal(t, []string{"LIS", "DEL"}, outbound.Route)
}

func TestAggregateLegsMissingDurationCountsAsZero(t *testing.T) {
	offer := domain.RawOffer{
		Price: 100000,
		Segments: []domain.Segment{
			{DepartureAirport: "DEL", ArrivalAirport: "DOH", DurationMinutes: 250},
			{DepartureAirport: "DOH", ArrivalAirport: "LIS"}, // duration unreported
		},
	}

	outbound, _, err := AggregateLegs(offer)

	require.NoError(t, err)
	assert.Equal(t, 250, outbound.DurationMinutes)
}

func TestAggregateLegsUnparseableTimestampsMarkWaitUnknown(t *testing.T) {
	tests := []struct {
		name        string
		arrivalTime string
		departTime  string
	}{
		{name: "both timestamps missing", arrivalTime: "", departTime: ""},
		{name: "garbage arrival timestamp", arrivalTime: "not-a-time", departTime: "2026-07-31 07:05"},
		{name: "garbage departure timestamp", arrivalTime: "2026-07-31 04:20", departTime: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offer := domain.RawOffer{
				Price: 100000,
				Segments: []domain.Segment{
					{DepartureAirport: "DEL", ArrivalAirport: "DOH", ArrivalTime: tt.arrivalTime, DurationMinutes: 250},
					{DepartureAirport: "DOH", ArrivalAirport: "LIS", DepartureTime: tt.departTime, DurationMinutes: 470},
				},
			}

			outbound, _, err := AggregateLegs(offer)

			require.NoError(t, err)
			require.Len(t, outbound.Layovers, 1)
			assert.Equal(t, "DOH", outbound.Layovers[0].Airport)
			assert.False(t, outbound.Layovers[0].WaitKnown)
		})
	}
}

func TestRepresentativeAirline(t *testing.T) {
	tests := []struct {
		name     string
		segments []domain.Segment
		want     string
	}{
		{
			name: "first segment's airline wins",
			segments: []domain.Segment{
				{Airline: "Qatar Airways"},
				{Airline: "IndiGo"},
			},
			want: "Qatar Airways",
		},
		{
			name:     "empty airline falls back to Unknown",
			segments: []domain.Segment{{DepartureAirport: "DEL"}},
			want:     "Unknown",
		},
		{
			name:     "no segments falls back to Unknown",
			segments: nil,
			want:     "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, representativeAirline(tt.segments))
		})
	}
}
