// Package main is the entry point for the deal radar scan daemon. It runs
// one scan per interval over the configured routes and date window, logs
// each scan's ranked output to the deals log, and notifies on results and
// mistake-fare alerts. Looping, sleeping, and signal handling live here;
// the evaluation engine itself is a single-scan call.
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/flight-deals/flight-deal-radar/internal/adapter/notify"
	"github.com/flight-deals/flight-deal-radar/internal/adapter/provider/serpapi"
	"github.com/flight-deals/flight-deal-radar/internal/config"
	"github.com/flight-deals/flight-deal-radar/internal/dealslog"
	"github.com/flight-deals/flight-deal-radar/internal/domain"
	"github.com/flight-deals/flight-deal-radar/internal/history"
	"github.com/flight-deals/flight-deal-radar/internal/infrastructure/logger"
	"github.com/flight-deals/flight-deal-radar/internal/infrastructure/timeutil"
	"github.com/flight-deals/flight-deal-radar/internal/usecase"
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "fare-radar",
	})

	log.Info().
		Str("origin", cfg.Search.Origin).
		Strs("destinations", cfg.Search.Destinations).
		Str("base_departure", cfg.Search.BaseDeparture).
		Dur("interval", cfg.Search.ScanInterval).
		Msg("Configuration loaded")

	clock := timeutil.NewRealClock()

	store, cleanup, err := buildStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open price history store")
	}
	defer cleanup()

	cache := history.NewCache(store, cfg.History.WindowSize, clock, log)

	provider := serpapi.NewAdapter(serpapi.Config{
		APIKey:          cfg.Provider.SerpAPIKey,
		BaseURL:         cfg.Provider.BaseURL,
		Timeout:         cfg.Provider.Timeout,
		DualLeg:         cfg.Provider.DualLeg,
		TopOffersPerLeg: cfg.Provider.TopOffersPerLeg,
	})

	scan, err := usecase.NewScanUseCase(provider, cache, scanConfig(cfg), clock, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build scan engine")
	}

	notifier := buildNotifier(cfg, log)
	deals := dealslog.NewLog(cfg.Deals.FilePath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runLoop(ctx, cfg.Search.ScanInterval, scan, notifier, deals, clock, log)

	log.Info().Msg("Radar stopped")
}

// runLoop runs one scan immediately, then one per interval until the
// context is cancelled.
func runLoop(ctx context.Context, interval time.Duration, scan usecase.ScanUseCase, notifier domain.Notifier, deals *dealslog.Log, clock timeutil.Clock, log *logger.Logger) {
	for {
		runScan(ctx, scan, notifier, deals, clock, log)

		log.Info().Dur("interval", interval).Msg("Sleeping until next scan")
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

// runScan executes one scan and delivers its output. Scan and delivery
// failures are logged; the loop carries on regardless.
func runScan(ctx context.Context, scan usecase.ScanUseCase, notifier domain.Notifier, deals *dealslog.Log, clock timeutil.Clock, log *logger.Logger) {
	result, err := scan.Scan(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Scan aborted")
		return
	}

	scanDate := clock.Now().Format("2006-01-02")
	if err := deals.Append(scanDate, result); err != nil {
		log.Error().Err(err).Msg("Failed to record scan in deals log")
	}

	for _, alert := range result.Alerts {
		if err := notifier.SendAlert(ctx, alert); err != nil {
			log.Error().Err(err).Str("anomaly", alert.Anomaly.String()).Msg("Failed to deliver alert")
		}
	}

	if err := notifier.SendReport(ctx, result); err != nil {
		log.Error().Err(err).Msg("Failed to deliver report")
	}
}

// scanConfig maps loaded configuration onto the engine's config.
func scanConfig(cfg *config.Config) usecase.Config {
	base, _ := time.Parse("2006-01-02", cfg.Search.BaseDeparture) // validated at load

	return usecase.Config{
		Origin:         cfg.Search.Origin,
		Destinations:   cfg.Search.Destinations,
		BaseDeparture:  base,
		WindowDays:     cfg.Search.WindowDays,
		ReturnTripDays: cfg.Search.ReturnTripDays,
		MaxBudget:      cfg.Search.MaxBudget,
		MinCabin:       domain.ParseCabin(cfg.Search.MinCabin),
		TopK:           cfg.Ranking.TopK,
		Scoring: usecase.ScoringParams{
			DurationDivisor:      cfg.Scoring.DurationDivisor,
			ValueWeight:          cfg.Scoring.ValueWeight,
			AirlinePenalty:       cfg.Scoring.AirlinePenalty,
			AllowedAirlines:      cfg.Scoring.AllowedAirlines,
			TaxesFees:            cfg.Scoring.TaxesFees,
			MilesRequired:        cfg.Scoring.MilesRequired,
			DefaultMilesRequired: cfg.Scoring.DefaultMilesRequired,
		},
		Anomaly: usecase.AnomalyThresholds{
			FarBelowAverageRatio: cfg.Anomaly.FarBelowAverageRatio,
			BelowLowRatio:        cfg.Anomaly.BelowLowRatio,
			UltraLowThreshold:    cfg.Anomaly.UltraLowThreshold,
			SuddenDropThreshold:  cfg.Anomaly.SuddenDropThreshold,
		},
	}
}

// buildStore selects the price-history store backend.
func buildStore(cfg *config.Config, log *logger.Logger) (history.Store, func(), error) {
	switch cfg.History.Backend {
	case "redis":
		store, err := history.NewRedisStore(history.RedisConfig{
			Addr:     cfg.History.RedisAddr,
			Password: cfg.History.RedisPassword,
			DB:       cfg.History.RedisDB,
			Key:      cfg.History.RedisKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case "memory":
		log.Warn().Msg("Using in-memory price history, anomalies reset on restart")
		return history.NewMemoryStore(), func() {}, nil
	default:
		return history.NewFileStore(cfg.History.FilePath), func() {}, nil
	}
}

// buildNotifier selects mail delivery when credentials are configured,
// log-only delivery otherwise.
func buildNotifier(cfg *config.Config, log *logger.Logger) domain.Notifier {
	if cfg.Notify.SendGridKey == "" || cfg.Notify.AlertEmail == "" {
		log.Warn().Msg("No mail credentials configured, logging notifications instead")
		return notify.NewLogNotifier(log)
	}
	return notify.NewSendGridNotifier(notify.SendGridConfig{
		APIKey: cfg.Notify.SendGridKey,
		To:     cfg.Notify.AlertEmail,
		From:   cfg.Notify.FromEmail,
	}, log)
}
