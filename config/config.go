// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort          int
	RyanairBaseURL    string
	Operator          string
	MinConnectionTime time.Duration
	UpstreamTimeout   time.Duration
	UpstreamRPS       float64
	LogLevel          slog.Level
}

func Load() (Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:          8080,
		RyanairBaseURL:    "https://services-api.ryanair.com",
		Operator:          "RYANAIR",
		MinConnectionTime: 2 * time.Hour,
		UpstreamTimeout:   10 * time.Second,
		LogLevel:          slog.LevelInfo,
	}

	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid HTTP_PORT %q: %w", v, err)
		}

		cfg.HTTPPort = port
	}

	if v := os.Getenv("RYANAIR_BASE_URL"); v != "" {
		cfg.RyanairBaseURL = v
	}

	if v := os.Getenv("OPERATOR"); v != "" {
		cfg.Operator = v
	}

	if v := os.Getenv("MIN_CONNECTION_TIME"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MIN_CONNECTION_TIME %q: %w", v, err)
		}

		cfg.MinConnectionTime = d
	}

	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid UPSTREAM_TIMEOUT %q: %w", v, err)
		}

		cfg.UpstreamTimeout = d
	}

	if v := os.Getenv("UPSTREAM_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid UPSTREAM_RPS %q: %w", v, err)
		}

		cfg.UpstreamRPS = rps
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}

		cfg.LogLevel = level
	}

	return cfg, nil
}
