package server

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Environment variables read by DefaultConfig.
const (
	EnvPort      = "PORT"
	EnvRateLimit = "RATE_LIMIT"
)

// DefaultConfig returns the default configuration with PORT and RATE_LIMIT
// applied. Unparsable or non-positive values are ignored.
func DefaultConfig() *Config {
	cfg := &Config{
		Port:            8080,
		RateLimit:       100,
		RateLimitBurst:  200,
		MaxBodyBytes:    32 << 20,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    60 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}

	if v, ok := positiveEnv(EnvPort, strconv.Atoi); ok {
		cfg.Port = v
	}
	if v, ok := positiveEnv(EnvRateLimit, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	}); ok {
		cfg.RateLimit = rate.Limit(v)
		cfg.RateLimitBurst = max(1, int(v*2))
	}
	return cfg
}

func positiveEnv[T int | float64](key string, parse func(string) (T, error)) (T, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := parse(raw)
	if err != nil || v <= 0 {
		slog.Warn("ignoring invalid environment value", "key", key, "value", raw)
		return 0, false
	}
	return v, true
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}
