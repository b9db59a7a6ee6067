package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-base-url backend API root (e.g. "http://localhost:8000/api/v1")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-d local database path
//	-c/-config json file path with configs
//	-demo start in demo mode without a backend
//	-bank-refresh-interval background bank snapshot refresh interval
func ParseFlags() *StructuredConfig {
	var baseURL string
	var requestTimeout time.Duration
	var databaseDSN string
	var jsonConfigPath string
	var demo bool
	var bankRefreshInterval time.Duration

	flag.StringVar(&baseURL, "base-url", "", "Backend API base URL")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&databaseDSN, "d", "", "Local database path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.BoolVar(&demo, "demo", false, "Start in demo mode (no backend)")
	flag.DurationVar(&bankRefreshInterval, "bank-refresh-interval", 0, "Bank snapshot refresh interval (e.g., 15m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Demo: demo,
		},
		API: API{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Workers: Workers{
			BankRefreshInterval: bankRefreshInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
