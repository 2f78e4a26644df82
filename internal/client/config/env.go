package config

import (
	"fmt"
	"time"
)

const (
	EnvServerURL = "GOPHTASKS_SERVER"
	EnvTokenFile = "GOPHTASKS_TOKEN_FILE"
	EnvTimeout   = "GOPHTASKS_TIMEOUT"
)

func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if lookup == nil {
		return nil
	}
	if v, ok := lookup(EnvServerURL); ok && v != "" {
		cfg.ServerURL = v
	}
	if v, ok := lookup(EnvTokenFile); ok && v != "" {
		cfg.TokenFile = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	return nil
}
