// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/flight-deals/flight-deal-radar/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Search   SearchConfig
	Scoring  ScoringConfig
	Ranking  RankingConfig
	Anomaly  AnomalyConfig
	History  HistoryConfig
	Deals    DealsConfig
	Provider ProviderConfig
	Notify   NotifyConfig
	Server   ServerConfig
	Logging  LoggingConfig
}

// SearchConfig defines the scan grid: which routes and dates get queried.
type SearchConfig struct {
	// Origin is the fixed departure airport for every scan.
	Origin string `env:"ORIGIN" envDefault:"DEL"`

	// Destinations are the scanned destination airports.
	Destinations []string `env:"DESTINATIONS" envDefault:"LIS,OPO"`

	// BaseDeparture anchors the departure window (YYYY-MM-DD).
	BaseDeparture string `env:"BASE_DEPARTURE" envDefault:"2026-07-31"`

	// WindowDays extends the window to BaseDeparture +/- this many days.
	WindowDays int `env:"DEPARTURE_WINDOW_DAYS" envDefault:"2"`

	// ReturnTripDays is the trip length: return = departure + this.
	ReturnTripDays int `env:"RETURN_TRIP_DAYS" envDefault:"7"`

	// MaxBudget excludes candidates above this price before scoring.
	MaxBudget int `env:"MAX_BUDGET" envDefault:"350000"`

	// MinCabin is the cabin floor for this run (business, premium_economy,
	// economy, or empty for none). Candidates below it are excluded.
	MinCabin string `env:"MIN_CABIN" envDefault:"business"`

	// ScanInterval is the sleep between scheduled scans.
	ScanInterval time.Duration `env:"SCAN_INTERVAL" envDefault:"2h"`
}

// ScoringConfig holds the valuation constants. The duration divisor and
// value weight are deliberately configuration, not hard-coded: historical
// revisions of the scoring formula disagreed on their exact values.
type ScoringConfig struct {
	// DurationDivisor is K in score = price/1000 + duration/K - value*W.
	DurationDivisor float64 `env:"SCORE_DURATION_DIVISOR" envDefault:"12"`

	// ValueWeight is W in the score formula.
	ValueWeight float64 `env:"SCORE_VALUE_WEIGHT" envDefault:"55"`

	// AirlinePenalty is added to the score when the candidate's airline
	// matches none of AllowedAirlines. Ignored when the list is empty.
	AirlinePenalty float64 `env:"AIRLINE_PENALTY" envDefault:"40"`

	// AllowedAirlines are substrings matched against the airline name.
	AllowedAirlines []string `env:"ALLOWED_AIRLINES"`

	// TaxesFees is the cash-equivalent of unavoidable taxes and fees,
	// subtracted from the price before the per-mile value is computed.
	TaxesFees int `env:"TAXES_FEES" envDefault:"45000"`

	// MilesRequired maps a destination to its redemption mile estimate.
	MilesRequired map[string]int `env:"MILES_REQUIRED" envDefault:"LIS:135000,OPO:135000"`

	// DefaultMilesRequired is used for unconfigured destinations.
	DefaultMilesRequired int `env:"DEFAULT_MILES_REQUIRED" envDefault:"120000"`
}

// RankingConfig controls final selection.
type RankingConfig struct {
	// TopK is how many ranked candidates the scan emits.
	TopK int `env:"TOP_K" envDefault:"5"`
}

// AnomalyConfig holds the mistake-fare detection thresholds.
type AnomalyConfig struct {
	// FarBelowAverageRatio: price < ratio * mean fires the verdict.
	FarBelowAverageRatio float64 `env:"ANOMALY_BELOW_AVERAGE_RATIO" envDefault:"0.70"`

	// BelowLowRatio: price < ratio * historical minimum fires the verdict.
	BelowLowRatio float64 `env:"ANOMALY_BELOW_LOW_RATIO" envDefault:"0.85"`

	// UltraLowThreshold: any price under this fires regardless of history.
	UltraLowThreshold int `env:"ANOMALY_ULTRA_LOW_THRESHOLD" envDefault:"130000"`

	// SuddenDropThreshold: previous - current above this fires the verdict.
	SuddenDropThreshold int `env:"ANOMALY_SUDDEN_DROP_THRESHOLD" envDefault:"25000"`
}

// HistoryConfig selects and tunes the price-history store.
type HistoryConfig struct {
	// WindowSize is the observation cap per route/date key.
	WindowSize int `env:"HISTORY_WINDOW_SIZE" envDefault:"20"`

	// Backend is one of: memory, file, redis.
	Backend string `env:"HISTORY_BACKEND" envDefault:"file"`

	// FilePath is the store location for the file backend.
	FilePath string `env:"HISTORY_FILE" envDefault:"price_history.json"`

	// RedisAddr is the host:port for the redis backend.
	RedisAddr string `env:"HISTORY_REDIS_ADDR" envDefault:"localhost:6379"`

	// RedisPassword is the optional redis password.
	RedisPassword string `env:"HISTORY_REDIS_PASSWORD"`

	// RedisDB is the redis logical database index.
	RedisDB int `env:"HISTORY_REDIS_DB" envDefault:"0"`

	// RedisKey is the redis key holding the serialized history.
	RedisKey string `env:"HISTORY_REDIS_KEY" envDefault:"fare-radar:price-history"`
}

// DealsConfig locates the per-date deals log read by the dashboard.
type DealsConfig struct {
	// FilePath is the JSON deals log location.
	FilePath string `env:"DEALS_LOG_FILE" envDefault:"deals_log.json"`
}

// ProviderConfig holds flight-search provider settings.
type ProviderConfig struct {
	// SerpAPIKey authenticates against the search provider.
	SerpAPIKey string `env:"SERPAPI_KEY"`

	// BaseURL is the provider endpoint, overridable for tests.
	BaseURL string `env:"SERPAPI_BASE_URL" envDefault:"https://serpapi.com"`

	// Timeout bounds one provider HTTP call.
	Timeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"30s"`

	// DualLeg enables the dual one-way search mode, which combines the
	// top offers of two one-way queries into round-trip offers.
	DualLeg bool `env:"DUAL_LEG_SEARCH" envDefault:"false"`

	// TopOffersPerLeg caps each leg's offer list in dual mode.
	TopOffersPerLeg int `env:"TOP_OFFERS_PER_LEG" envDefault:"5"`
}

// NotifyConfig holds outbound notification settings. An empty API key
// disables email delivery (the report is logged instead).
type NotifyConfig struct {
	// SendGridKey authenticates against the SendGrid mail API.
	SendGridKey string `env:"SENDGRID_API_KEY"`

	// AlertEmail receives reports and alerts.
	AlertEmail string `env:"ALERT_EMAIL"`

	// FromEmail is the sender address (defaults to AlertEmail).
	FromEmail string `env:"FROM_EMAIL"`
}

// ServerConfig holds dashboard HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// airportRegex matches valid IATA airport codes (3 uppercase letters).
var airportRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Notify.FromEmail == "" {
		cfg.Notify.FromEmail = cfg.Notify.AlertEmail
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness. Scoring and window
// values that would produce meaningless scores refuse to start.
func validate(cfg *Config) error {
	if !airportRegex.MatchString(cfg.Search.Origin) {
		return fmt.Errorf("%w: ORIGIN must be a 3-letter IATA code, got %q", domain.ErrInvalidConfig, cfg.Search.Origin)
	}
	if len(cfg.Search.Destinations) == 0 {
		return fmt.Errorf("%w: DESTINATIONS must not be empty", domain.ErrInvalidConfig)
	}
	for _, dest := range cfg.Search.Destinations {
		if !airportRegex.MatchString(dest) {
			return fmt.Errorf("%w: DESTINATIONS entries must be 3-letter IATA codes, got %q", domain.ErrInvalidConfig, dest)
		}
	}
	if _, err := time.Parse("2006-01-02", cfg.Search.BaseDeparture); err != nil {
		return fmt.Errorf("%w: BASE_DEPARTURE must be a valid YYYY-MM-DD date, got %q", domain.ErrInvalidConfig, cfg.Search.BaseDeparture)
	}
	if cfg.Search.WindowDays < 0 {
		return fmt.Errorf("%w: DEPARTURE_WINDOW_DAYS must not be negative", domain.ErrInvalidConfig)
	}
	if cfg.Search.ReturnTripDays < 1 {
		return fmt.Errorf("%w: RETURN_TRIP_DAYS must be at least 1", domain.ErrInvalidConfig)
	}
	if cfg.Search.MaxBudget <= 0 {
		return fmt.Errorf("%w: MAX_BUDGET must be positive", domain.ErrInvalidConfig)
	}
	switch cfg.Search.MinCabin {
	case "", "economy", "premium_economy", "business":
	default:
		return fmt.Errorf("%w: MIN_CABIN must be one of: economy, premium_economy, business; got %q", domain.ErrInvalidConfig, cfg.Search.MinCabin)
	}
	if cfg.Search.ScanInterval <= 0 {
		return fmt.Errorf("%w: SCAN_INTERVAL must be positive", domain.ErrInvalidConfig)
	}

	if cfg.Scoring.DurationDivisor <= 0 {
		return fmt.Errorf("%w: SCORE_DURATION_DIVISOR must be positive", domain.ErrInvalidConfig)
	}
	if cfg.Scoring.ValueWeight < 0 {
		return fmt.Errorf("%w: SCORE_VALUE_WEIGHT must not be negative", domain.ErrInvalidConfig)
	}
	if cfg.Scoring.AirlinePenalty < 0 {
		return fmt.Errorf("%w: AIRLINE_PENALTY must not be negative", domain.ErrInvalidConfig)
	}
	if cfg.Scoring.DefaultMilesRequired < 0 {
		return fmt.Errorf("%w: DEFAULT_MILES_REQUIRED must not be negative", domain.ErrInvalidConfig)
	}

	if cfg.Ranking.TopK < 1 {
		return fmt.Errorf("%w: TOP_K must be at least 1", domain.ErrInvalidConfig)
	}

	if cfg.Anomaly.FarBelowAverageRatio <= 0 || cfg.Anomaly.FarBelowAverageRatio >= 1 {
		return fmt.Errorf("%w: ANOMALY_BELOW_AVERAGE_RATIO must be in (0, 1)", domain.ErrInvalidConfig)
	}
	if cfg.Anomaly.BelowLowRatio <= 0 || cfg.Anomaly.BelowLowRatio >= 1 {
		return fmt.Errorf("%w: ANOMALY_BELOW_LOW_RATIO must be in (0, 1)", domain.ErrInvalidConfig)
	}
	if cfg.Anomaly.UltraLowThreshold < 0 {
		return fmt.Errorf("%w: ANOMALY_ULTRA_LOW_THRESHOLD must not be negative", domain.ErrInvalidConfig)
	}
	if cfg.Anomaly.SuddenDropThreshold <= 0 {
		return fmt.Errorf("%w: ANOMALY_SUDDEN_DROP_THRESHOLD must be positive", domain.ErrInvalidConfig)
	}

	if cfg.History.WindowSize < 1 {
		return fmt.Errorf("%w: HISTORY_WINDOW_SIZE must be at least 1", domain.ErrInvalidConfig)
	}
	switch cfg.History.Backend {
	case "memory":
	case "file":
		if cfg.History.FilePath == "" {
			return fmt.Errorf("%w: HISTORY_FILE is required for the file backend", domain.ErrInvalidConfig)
		}
	case "redis":
		if cfg.History.RedisAddr == "" {
			return fmt.Errorf("%w: HISTORY_REDIS_ADDR is required for the redis backend", domain.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: HISTORY_BACKEND must be one of: memory, file, redis; got %q", domain.ErrInvalidConfig, cfg.History.Backend)
	}

	if cfg.Provider.TopOffersPerLeg < 1 {
		return fmt.Errorf("%w: TOP_OFFERS_PER_LEG must be at least 1", domain.ErrInvalidConfig)
	}
	if cfg.Provider.Timeout <= 0 {
		return fmt.Errorf("%w: PROVIDER_TIMEOUT must be positive", domain.ErrInvalidConfig)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("%w: SERVER_PORT must be between 1 and 65535, got %d", domain.ErrInvalidConfig, cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 || cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("%w: server timeouts must be positive", domain.ErrInvalidConfig)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("%w: LOG_LEVEL must be one of: debug, info, warn, error; got %q", domain.ErrInvalidConfig, cfg.Logging.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("%w: LOG_FORMAT must be one of: json, console; got %q", domain.ErrInvalidConfig, cfg.Logging.Format)
	}

	return nil
}
