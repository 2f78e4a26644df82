package config

import (
	"fmt"
	"strconv"
	"time"
)

// Environment variable names understood by parseEnv.
const (
	EnvSecretKey      = "SECRET_KEY"
	EnvDatabaseDSN    = "DATABASE_DSN"
	EnvServerAddress  = "SERVER_ADDRESS"
	EnvMetricsAddress = "METRICS_ADDRESS"
	EnvAccessTokenTTL = "ACCESS_TOKEN_TTL"
	EnvAppEnv         = "APP_ENV"
	EnvLogLevel       = "LOG_LEVEL"
)

// parseEnv overlays values from the environment. Empty variables are ignored.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if lookup == nil {
		return nil
	}
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		return v, ok && v != ""
	}

	if v, ok := get(EnvSecretKey); ok {
		cfg.SecretKey = v
	}
	if v, ok := get(EnvDatabaseDSN); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := get(EnvServerAddress); ok {
		cfg.EndpointAddr = v
	}
	if v, ok := lookup(EnvMetricsAddress); ok {
		// an explicitly empty value disables the metrics server
		cfg.MetricsAddr = v
	}
	if v, ok := get(EnvAppEnv); ok {
		cfg.Env = v
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := get(EnvAccessTokenTTL); ok {
		d, err := parseTTL(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAccessTokenTTL, err)
		}
		cfg.AccessTokenTTL = d
	}
	return nil
}

// parseTTL accepts a Go duration ("20m") or a bare number of minutes ("20").
func parseTTL(v string) (time.Duration, error) {
	if minutes, err := strconv.Atoi(v); err == nil {
		return time.Duration(minutes) * time.Minute, nil
	}
	return time.ParseDuration(v)
}
