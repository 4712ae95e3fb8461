// Package serpapi implements the flight-search provider adapter against
// the SerpAPI google_flights engine.
package serpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/flight-deals/flight-deal-radar/internal/domain"
)

// ProviderName is the unique identifier for this provider.
const ProviderName = "serpapi_google_flights"

// searchPath is the provider's search endpoint.
const searchPath = "/search.json"

// Config holds adapter settings.
type Config struct {
	// APIKey authenticates every request.
	APIKey string

	// BaseURL is the provider endpoint, overridable for tests.
	BaseURL string

	// Timeout bounds one HTTP call.
	Timeout time.Duration

	// Currency is the fare currency requested from the provider.
	Currency string

	// DualLeg switches Search to two one-way queries whose top offers are
	// combined into round-trip offers, instead of one round-trip query.
	DualLeg bool

	// TopOffersPerLeg caps each leg's offer list in dual mode.
	TopOffersPerLeg int
}

// Adapter queries the provider and returns raw offers. It performs no
// retries; retry/backoff policy belongs to the orchestrator's scheduler.
type Adapter struct {
	client *resty.Client
	cfg    Config
}

// NewAdapter creates a provider adapter with the given configuration.
func NewAdapter(cfg Config) *Adapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://serpapi.com"
	}
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.TopOffersPerLeg <= 0 {
		cfg.TopOffersPerLeg = 5
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)

	return &Adapter{client: client, cfg: cfg}
}

// Name returns the provider's unique identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Search implements domain.SearchProvider.
func (a *Adapter) Search(ctx context.Context, query domain.SearchQuery) ([]domain.RawOffer, error) {
	if err := query.Validate(); err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}
	if a.cfg.DualLeg && query.ReturnDate != "" {
		return a.searchDual(ctx, query)
	}
	return a.searchRoundTrip(ctx, query)
}

// searchRoundTrip issues a single round-trip query.
func (a *Adapter) searchRoundTrip(ctx context.Context, query domain.SearchQuery) ([]domain.RawOffer, error) {
	resp, err := a.fetch(ctx, query.Origin, query.Destination, query.DepartDate, query.ReturnDate, query.CabinHint)
	if err != nil {
		return nil, err
	}
	return normalizeOffers(resp.offers()), nil
}

// searchDual issues two one-way queries and combines the top offers of
// each leg into round-trip offers with summed prices and directional
// segment lists.
func (a *Adapter) searchDual(ctx context.Context, query domain.SearchQuery) ([]domain.RawOffer, error) {
	outResp, err := a.fetch(ctx, query.Origin, query.Destination, query.DepartDate, "", query.CabinHint)
	if err != nil {
		return nil, err
	}
	inResp, err := a.fetch(ctx, query.Destination, query.Origin, query.ReturnDate, "", query.CabinHint)
	if err != nil {
		return nil, err
	}

	outbound := capOffers(outResp.offers(), a.cfg.TopOffersPerLeg)
	inbound := capOffers(inResp.offers(), a.cfg.TopOffersPerLeg)

	var combined []domain.RawOffer
	for _, out := range outbound {
		if len(out.Flights) == 0 {
			continue
		}
		for _, in := range inbound {
			if len(in.Flights) == 0 {
				continue
			}
			combined = append(combined, domain.RawOffer{
				Price:            out.Price + in.Price,
				OutboundSegments: normalizeSegments(out.Flights),
				InboundSegments:  normalizeSegments(in.Flights),
			})
		}
	}
	return combined, nil
}

// fetch issues one provider query. An empty returnDate yields a one-way
// query.
func (a *Adapter) fetch(ctx context.Context, origin, dest, departDate, returnDate string, cabin domain.Cabin) (*searchResponse, error) {
	params := map[string]string{
		"engine":        "google_flights",
		"departure_id":  origin,
		"arrival_id":    dest,
		"outbound_date": departDate,
		"currency":      a.cfg.Currency,
		"api_key":       a.cfg.APIKey,
		"travel_class":  travelClassParam(cabin),
	}
	if returnDate != "" {
		params["return_date"] = returnDate
	} else {
		params["type"] = "2" // one-way
	}

	var result searchResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&result).
		Get(searchPath)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}
	if resp.IsError() {
		return nil, domain.NewProviderError(ProviderName,
			fmt.Errorf("unexpected status %d", resp.StatusCode()))
	}
	return &result, nil
}

// offers returns the curated list, falling back to the remainder when the
// provider curated nothing.
func (r *searchResponse) offers() []offerDTO {
	if len(r.BestFlights) > 0 {
		return r.BestFlights
	}
	return r.OtherFlights
}

// capOffers truncates a offer list to at most n entries.
func capOffers(offers []offerDTO, n int) []offerDTO {
	if len(offers) > n {
		return offers[:n]
	}
	return offers
}

// travelClassParam maps the cabin hint to the provider's class index.
func travelClassParam(cabin domain.Cabin) string {
	switch cabin {
	case domain.CabinBusiness:
		return "3"
	case domain.CabinPremiumEconomy:
		return "2"
	default:
		return "1"
	}
}

var _ domain.SearchProvider = (*Adapter)(nil)
