// Package config loads settings for the gophtasks CLI.
//
// Sources are applied in order, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. An optional JSON file, selected with the --config flag.
//  3. Environment variables GOPHTASKS_SERVER, GOPHTASKS_TOKEN_FILE and
//     GOPHTASKS_TIMEOUT.
//
// Command-line flags are bound by the cli package on top of the result.
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "token_file": "/home/me/.gophtasks/token",
//	  "timeout": "10s"
//	}
package config
