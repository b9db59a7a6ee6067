package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the salim
// client. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the demo-mode toggle
	// and the application version.
	App App `envPrefix:"APP_"`

	// API holds the backend endpoint settings used by the HTTP gateway.
	API API `envPrefix:"API_"`

	// Storage holds configuration for the durable client-side store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the SALIM_CONFIG environment variable or the
	// -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Demo starts the client in demo mode: a fixed user record is
	// installed and no network requests are made.
	// Env: SALIM_APP_DEMO
	Demo bool `env:"DEMO"`

	// Version is the semantic version string of the running application.
	// Env: SALIM_APP_VERSION
	Version string `env:"VERSION"`
}

// API holds settings for the outbound HTTP gateway.
type API struct {
	// BaseURL is the backend API root, including the versioned base path
	// (e.g. "http://localhost:8000/api/v1").
	// Env: SALIM_API_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the default timeout applied to every outbound
	// request (e.g. "30s", "1m").
	// Env: SALIM_API_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage holds configuration for the durable client-side store.
type Storage struct {
	// DB holds the local SQLite settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database that backs the
// durable key-value store.
type DB struct {
	// DSN is the SQLite file path (e.g. "salim.db").
	// Env: SALIM_STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// BankRefreshInterval defines how often the background bank-link
	// refresh job re-fetches account and transaction snapshots. Zero
	// disables the job.
	// Env: SALIM_WORKERS_BANK_REFRESH_INTERVAL
	BankRefreshInterval time.Duration `env:"BANK_REFRESH_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the client configuration
// from all available sources in the following priority order (first source
// wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
