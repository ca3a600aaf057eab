package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every runtime setting, sourced from the environment with an
// optional .env file for local development.
type Config struct {
	PostgresURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTIssuer         string
	JWTExpiryDuration time.Duration
	SentryDSN         string
	OutboxTick        time.Duration
	OutboxMaxAttempts int
}

// LoadConfig reads configuration from environment variables, with sane
// development defaults for everything except secrets.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, relying on environment: %v", err)
	}

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_ISSUER", "hospital-finance")
	v.SetDefault("JWT_EXPIRY_DURATION", "12h")
	v.SetDefault("OUTBOX_TICK", "30s")
	v.SetDefault("OUTBOX_MAX_ATTEMPTS", 5)
	v.AutomaticEnv()

	expiry, err := time.ParseDuration(v.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		return nil, err
	}
	tick, err := time.ParseDuration(v.GetString("OUTBOX_TICK"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		PostgresURL:       v.GetString("PGSQL_URL"),
		Port:              v.GetString("PORT"),
		IsProduction:      v.GetBool("IS_PRODUCTION"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTIssuer:         v.GetString("JWT_ISSUER"),
		JWTExpiryDuration: expiry,
		SentryDSN:         v.GetString("SENTRY_DSN"),
		OutboxTick:        tick,
		OutboxMaxAttempts: v.GetInt("OUTBOX_MAX_ATTEMPTS"),
	}
	if cfg.PostgresURL == "" {
		log.Printf("warning: PGSQL_URL is not set")
	}
	if cfg.JWTSecret == "" {
		log.Printf("warning: JWT_SECRET is not set")
	}
	return cfg, nil
}
