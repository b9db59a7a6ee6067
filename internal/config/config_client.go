package config

import (
	"fmt"
	"time"
)

// Defaults applied by GetClientConfig when neither environment, flags, nor
// the JSON file provide a value.
const (
	DefaultBaseURL        = "http://localhost:8000/api/v1"
	DefaultRequestTimeout = 30 * time.Second
	DefaultDatabasePath   = "salim.db"
)

// ClientApp holds application-level client settings.
type ClientApp struct {
	// Demo starts the session in demo mode.
	Demo bool
	// Version is the application version string.
	Version string
}

// ClientAPI holds network settings used by the HTTP gateway.
type ClientAPI struct {
	// BaseURL is the backend API root.
	BaseURL string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database settings.
type ClientDB struct {
	// DSN is the SQLite file path used by the durable store.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains background job settings.
type ClientWorkers struct {
	// BankRefreshInterval defines how often bank snapshots are refreshed
	// in the background. Zero disables the job.
	BankRefreshInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// API contains backend endpoint settings.
	API ClientAPI
	// Storage contains durable store settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates the client config view from the
// merged structured configuration, applying development defaults for any
// field left unset.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Demo:    cfg.App.Demo,
			Version: cfg.App.Version,
		},
		API: ClientAPI{
			BaseURL:        cfg.API.BaseURL,
			RequestTimeout: cfg.API.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{
			BankRefreshInterval: cfg.Workers.BankRefreshInterval,
		},
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.API.RequestTimeout <= 0 {
		cfg.API.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = DefaultDatabasePath
	}
}
