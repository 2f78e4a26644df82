package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophtasks/internal/timex"
)

// JSONConfig is the file representation of Config. Absent fields keep their
// current values.
type JSONConfig struct {
	ServerURL *string         `json:"server_url"`
	TokenFile *string         `json:"token_file"`
	Timeout   *timex.Duration `json:"timeout"`
}

func parseJSON(cfg *Config, path string) error {
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

	if c.ServerURL != nil {
		cfg.ServerURL = *c.ServerURL
	}
	if c.TokenFile != nil {
		cfg.TokenFile = *c.TokenFile
	}
	if c.Timeout != nil {
		cfg.Timeout = c.Timeout.Duration
	}
	return nil
}
