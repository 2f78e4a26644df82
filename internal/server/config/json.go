package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophtasks/internal/flagx"
	"github.com/dmitrijs2005/gophtasks/internal/timex"
)

// JSONConfig mirrors Config for unmarshalling. Only fields present in the
// file override the current values; durations accept "20m" or nanoseconds.
type JSONConfig struct {
	EndpointAddr   *string         `json:"endpoint_addr"`
	MetricsAddr    *string         `json:"metrics_addr"`
	DatabaseDSN    *string         `json:"database_dsn"`
	SecretKey      *string         `json:"secret_key"`
	AccessTokenTTL *timex.Duration `json:"access_token_ttl"`
	BcryptCost     *int            `json:"bcrypt_cost"`
	Env            *string         `json:"env"`
	LogLevel       *string         `json:"log_level"`
}

// parseJSON overlays values from the file named by -c / -config. Without the
// flag nothing is loaded.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var c JSONConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.EndpointAddr, c.EndpointAddr)
	setString(&cfg.MetricsAddr, c.MetricsAddr)
	setString(&cfg.DatabaseDSN, c.DatabaseDSN)
	setString(&cfg.SecretKey, c.SecretKey)
	setString(&cfg.Env, c.Env)
	setString(&cfg.LogLevel, c.LogLevel)
	if c.AccessTokenTTL != nil {
		cfg.AccessTokenTTL = c.AccessTokenTTL.Duration
	}
	if c.BcryptCost != nil {
		cfg.BcryptCost = *c.BcryptCost
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
