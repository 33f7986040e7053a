package app

import (
	"log/slog"
	"time"

	"github.com/thenoetrevino/flowboard/internal/metrics"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	userTTL time.Duration
	clock   func() time.Time
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// WithUserTTL sets how long user lookups are cached. Zero disables the cache.
func WithUserTTL(ttl time.Duration) Option {
	return func(cfg *appConfig) {
		cfg.userTTL = ttl
	}
}

// WithClock sets the time source every service stamps rows with
func WithClock(now func() time.Time) Option {
	return func(cfg *appConfig) {
		cfg.clock = now
	}
}

// WithMetrics shares a metrics registry with the application
func WithMetrics(m *metrics.Metrics) Option {
	return func(cfg *appConfig) {
		cfg.metrics = m
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}
