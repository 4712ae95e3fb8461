// Package main is the entry point for the read-only deals dashboard. It
// serves the deals log and price history as structured JSON.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	dashhttp "github.com/flight-deals/flight-deal-radar/internal/adapter/http"
	"github.com/flight-deals/flight-deal-radar/internal/adapter/http/middleware"
	"github.com/flight-deals/flight-deal-radar/internal/config"
	"github.com/flight-deals/flight-deal-radar/internal/dealslog"
	"github.com/flight-deals/flight-deal-radar/internal/history"
	"github.com/flight-deals/flight-deal-radar/internal/infrastructure/logger"
	"github.com/flight-deals/flight-deal-radar/internal/infrastructure/timeutil"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "fare-radar-dashboard",
	})

	deals := dealslog.NewLog(cfg.Deals.FilePath)

	// The dashboard reads the same store the radar writes. File and redis
	// backends share state across processes; memory shows this process only.
	store, cleanup, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open price history store")
	}
	defer cleanup()
	cache := history.NewCache(store, cfg.History.WindowSize, timeutil.NewRealClock(), log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log.Logger)
	dashhttp.RegisterRoutes(e, dashhttp.NewDashboardHandler(deals, cache))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting dashboard")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start dashboard")
		}
	}()

	gracefulShutdown(e, log)
}

// openStore opens the configured price-history backend read-style: the
// cache never observes in this process, it only serves windows.
func openStore(cfg *config.Config) (history.Store, func(), error) {
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
		return history.NewMemoryStore(), func() {}, nil
	default:
		return history.NewFileStore(cfg.History.FilePath), func() {}, nil
	}
}

// gracefulShutdown stops the server on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down dashboard...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during dashboard shutdown")
	}

	log.Info().Msg("Dashboard stopped")
}
