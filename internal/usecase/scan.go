package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flight-deals/flight-deal-radar/internal/domain"
	"github.com/flight-deals/flight-deal-radar/internal/history"
	"github.com/flight-deals/flight-deal-radar/internal/infrastructure/logger"
	"github.com/flight-deals/flight-deal-radar/internal/infrastructure/timeutil"
)

// dateLayout is the wire format for departure/return dates.
const dateLayout = "2006-01-02"

// ScanUseCase runs one full scan over the configured (date x destination)
// grid and returns the ranked result. Looping and sleeping belong to the
// orchestrator, not here.
type ScanUseCase interface {
	Scan(ctx context.Context) (*domain.ScanResult, error)
}

// Config holds the scan parameters.
type Config struct {
	// Origin is the fixed departure airport.
	Origin string

	// Destinations are the scanned destination airports.
	Destinations []string

	// BaseDeparture anchors the departure window.
	BaseDeparture time.Time

	// WindowDays extends the window to BaseDeparture +/- this many days.
	WindowDays int

	// ReturnTripDays is the trip length in days.
	ReturnTripDays int

	// MaxBudget excludes candidates above this price before scoring.
	MaxBudget int

	// MinCabin is the cabin floor; candidates below it are excluded
	// before scoring, not penalized.
	MinCabin domain.Cabin

	// TopK is how many ranked candidates the scan emits.
	TopK int

	// Scoring holds the valuation constants.
	Scoring ScoringParams

	// Anomaly holds the mistake-fare thresholds.
	Anomaly AnomalyThresholds
}

// scanUseCase implements ScanUseCase as a sequential pipeline.
type scanUseCase struct {
	provider domain.SearchProvider
	cache    *history.Cache
	scorer   *Scorer
	detector *Detector
	cfg      Config
	clock    timeutil.Clock
	log      *logger.Logger
}

// NewScanUseCase wires the evaluation engine. It validates the scoring
// parameters up front and refuses to build an engine that would produce
// meaningless scores.
func NewScanUseCase(provider domain.SearchProvider, cache *history.Cache, cfg Config, clock timeutil.Clock, log *logger.Logger) (ScanUseCase, error) {
	scorer, err := NewScorer(cfg.Scoring)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &scanUseCase{
		provider: provider,
		cache:    cache,
		scorer:   scorer,
		detector: NewDetector(cfg.Anomaly),
		cfg:      cfg,
		clock:    clock,
		log:      log.WithComponent("scan"),
	}, nil
}

// Scan visits every (departure date x destination) pair strictly in order,
// accumulates scored candidates, and ranks the top K at the end. A failed
// offer or provider query is logged and skipped; it never aborts the scan.
// Cancellation between pairs returns ctx.Err(); history entries already
// written stay valid because each key's update is self-contained.
func (uc *scanUseCase) Scan(ctx context.Context) (*domain.ScanResult, error) {
	startedAt := uc.clock.Now()

	var (
		candidates []domain.ScoredCandidate
		alerts     []domain.Alert
		meta       domain.ScanMetadata
	)

	first := uc.cfg.BaseDeparture.AddDate(0, 0, -uc.cfg.WindowDays)
	last := uc.cfg.BaseDeparture.AddDate(0, 0, uc.cfg.WindowDays)

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		departDate := day.Format(dateLayout)
		returnDate := day.AddDate(0, 0, uc.cfg.ReturnTripDays).Format(dateLayout)

		for _, dest := range uc.cfg.Destinations {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			meta.PairsScanned++

			scored, destAlerts := uc.scanPair(ctx, dest, departDate, returnDate, &meta)
			candidates = append(candidates, scored...)
			alerts = append(alerts, destAlerts...)
		}
	}

	meta.DurationMs = uc.clock.Now().Sub(startedAt).Milliseconds()

	uc.log.Info().
		Int("pairs", meta.PairsScanned).
		Int("offers", meta.OffersSeen).
		Int("evaluated", meta.Evaluated).
		Int("skipped", meta.Skipped).
		Int("alerts", len(alerts)).
		Msg("Scan complete")

	return domain.NewScanResult(startedAt, RankTop(candidates, uc.cfg.TopK), alerts, meta), nil
}

// scanPair queries the provider for one (destination, date) pair and
// evaluates every returned offer.
func (uc *scanUseCase) scanPair(ctx context.Context, dest, departDate, returnDate string, meta *domain.ScanMetadata) ([]domain.ScoredCandidate, []domain.Alert) {
	log := uc.log.WithDestination(dest)

	query := domain.SearchQuery{
		Origin:      uc.cfg.Origin,
		Destination: dest,
		DepartDate:  departDate,
		ReturnDate:  returnDate,
		CabinHint:   uc.cfg.MinCabin,
	}

	offers, err := uc.provider.Search(ctx, query)
	if err != nil {
		meta.ProviderErrors++
		log.Warn().Err(err).Str("depart", departDate).Msg("Provider query failed")
		return nil, nil
	}
	meta.OffersSeen += len(offers)

	var scored []domain.ScoredCandidate
	var alerts []domain.Alert

	for _, offer := range offers {
		sc, err := uc.evaluateOffer(offer, dest, departDate, returnDate)
		if err != nil {
			meta.Skipped++
			log.Debug().Err(err).Str("depart", departDate).Msg("Offer skipped")
			continue
		}
		meta.Evaluated++

		key := history.Key(dest, departDate)
		obs := uc.cache.Observe(ctx, key, sc.Price)
		sc.Anomaly = uc.detector.Detect(obs.Prior, sc.Price)
		if sc.Anomaly != "" {
			alerts = append(alerts, domain.Alert{
				Candidate:  sc,
				Anomaly:    sc.Anomaly,
				HistoryKey: key,
			})
			log.Info().
				Str("anomaly", sc.Anomaly.String()).
				Int("price", sc.Price).
				Str("key", key).
				Msg("Anomalous fare detected")
		}

		scored = append(scored, sc)
	}

	return scored, alerts
}

// evaluateOffer normalizes and scores one raw offer. Any failure,
// including a panic from unexpected payload shapes, skips only this offer.
func (uc *scanUseCase) evaluateOffer(offer domain.RawOffer, dest, departDate, returnDate string) (sc domain.ScoredCandidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = domain.WrapMalformedOffer("panic while evaluating offer: %v", r)
		}
	}()

	if offer.Price <= 0 {
		return sc, domain.WrapMalformedOffer("offer has no usable price")
	}

	outbound, inbound, err := AggregateLegs(offer)
	if err != nil {
		return sc, err
	}

	cand := domain.Candidate{
		ID:          uuid.NewString(),
		Price:       offer.Price,
		Airline:     representativeAirline(firstSegments(offer)),
		Cabin:       ClassifyCabin(offer.AllSegments()),
		Destination: dest,
		DepartDate:  departDate,
		ReturnDate:  returnDate,
		Outbound:    *outbound,
	}

	cand.Route = append(cand.Route, outbound.Route...)
	cand.TotalDurationMinutes = outbound.DurationMinutes
	cand.Layovers = append(cand.Layovers, outbound.Layovers...)
	if inbound != nil {
		cand.Inbound = *inbound
		cand.Route = append(cand.Route, inbound.Route...)
		cand.TotalDurationMinutes += inbound.DurationMinutes
		cand.Layovers = append(cand.Layovers, inbound.Layovers...)
	}

	if cand.Price > uc.cfg.MaxBudget {
		return sc, fmt.Errorf("%w: price %d exceeds budget %d", domain.ErrOfferExcluded, cand.Price, uc.cfg.MaxBudget)
	}
	if !cand.Cabin.AtLeast(uc.cfg.MinCabin) {
		return sc, fmt.Errorf("%w: cabin %s below floor %s", domain.ErrOfferExcluded, cand.Cabin, uc.cfg.MinCabin)
	}

	return domain.ScoredCandidate{
		Candidate:  cand,
		Score:      uc.scorer.Score(cand),
		Confidence: ConfidenceFor(cand.Price),
	}, nil
}

// firstSegments returns the offer's first populated segment list in flown
// order, for picking the representative airline.
func firstSegments(offer domain.RawOffer) []domain.Segment {
	if len(offer.OutboundSegments) > 0 {
		return offer.OutboundSegments
	}
	if len(offer.Segments) > 0 {
		return offer.Segments
	}
	return offer.InboundSegments
}
