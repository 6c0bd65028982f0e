package config

import (
	"fmt"
	"log"
	"time"

	"github.com/cocoluventas/sales_backend/internal/apperrors"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// Rate acquisition
	RateSourceURL     string
	RateSourceTimeout time.Duration
	RateFallback      decimal.Decimal // last-known-good, used by force mode
	PrimaryTrigger    string          // HH:MM, first daily scrape
	BackupTrigger     string          // HH:MM, second daily scrape

	// API rate limiting, ulule/limiter format (e.g. "300-H")
	APIRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if
// present. The database URL is the one hard requirement: without it every
// entry point is useless, so its absence is a fatal ErrConfig.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("RATE_SOURCE_URL", "https://www.bcv.org.ve/")
	viper.SetDefault("RATE_SOURCE_TIMEOUT", "15s")
	viper.SetDefault("RATE_FALLBACK", "166.58")
	viper.SetDefault("RATE_TRIGGER_PRIMARY", "08:30")
	viper.SetDefault("RATE_TRIGGER_BACKUP", "13:30")
	viper.SetDefault("API_RATE_LIMIT", "300-H")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("%w: PGSQL_URL environment variable not set", apperrors.ErrConfig)
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.RateSourceURL = viper.GetString("RATE_SOURCE_URL")

	timeoutStr := viper.GetString("RATE_SOURCE_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 15 * time.Second
		log.Printf("Warning: Invalid value for RATE_SOURCE_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.RateSourceTimeout = timeout

	fallbackStr := viper.GetString("RATE_FALLBACK")
	fallback, err := decimal.NewFromString(fallbackStr)
	if err != nil || fallback.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: RATE_FALLBACK must be a positive decimal, got %q", apperrors.ErrConfig, fallbackStr)
	}
	cfg.RateFallback = fallback

	cfg.PrimaryTrigger = viper.GetString("RATE_TRIGGER_PRIMARY")
	cfg.BackupTrigger = viper.GetString("RATE_TRIGGER_BACKUP")
	cfg.APIRateLimit = viper.GetString("API_RATE_LIMIT")

	return cfg, nil
}
