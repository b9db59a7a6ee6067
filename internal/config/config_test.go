package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string seconds", in: `"30s"`, want: 30 * time.Second},
		{name: "string composite", in: `"1h30m"`, want: 90 * time.Minute},
		{name: "numeric nanoseconds", in: `5000000000`, want: 5 * time.Second},
		{name: "garbage", in: `"soon"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestParseJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	payload := `{
		"app": {"demo": true, "version": "1.2.3"},
		"api": {"base_url": "https://api.salim.ai/api/v1", "request_timeout": "10s"},
		"storage": {"db": {"dsn": "/tmp/salim.db"}},
		"workers": {"bank_refresh_interval": "5m"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.True(t, cfg.App.Demo)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "https://api.salim.ai/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, "/tmp/salim.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 5*time.Minute, cfg.Workers.BankRefreshInterval)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestClientConfig_ApplyDefaults(t *testing.T) {
	cfg := &ClientConfig{}
	cfg.applyDefaults()

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultRequestTimeout, cfg.API.RequestTimeout)
	assert.Equal(t, DefaultDatabasePath, cfg.Storage.DB.DSN)
}

func TestClientConfig_DefaultsDoNotOverrideExplicitValues(t *testing.T) {
	cfg := &ClientConfig{}
	cfg.API.BaseURL = "http://somewhere:9000"
	cfg.API.RequestTimeout = time.Minute
	cfg.Storage.DB.DSN = "custom.db"
	cfg.applyDefaults()

	assert.Equal(t, "http://somewhere:9000", cfg.API.BaseURL)
	assert.Equal(t, time.Minute, cfg.API.RequestTimeout)
	assert.Equal(t, "custom.db", cfg.Storage.DB.DSN)
}

func TestClientConfig_Validate(t *testing.T) {
	valid := &ClientConfig{}
	valid.applyDefaults()
	assert.NoError(t, valid.validate())

	noDSN := &ClientConfig{}
	noDSN.applyDefaults()
	noDSN.Storage.DB.DSN = ""
	assert.ErrorIs(t, noDSN.validate(), ErrInvalidStorageConfigs)

	noTimeout := &ClientConfig{}
	noTimeout.applyDefaults()
	noTimeout.API.RequestTimeout = 0
	assert.ErrorIs(t, noTimeout.validate(), ErrInvalidAPIConfigs)
}

func TestConfigBuilder_MergePrecedence(t *testing.T) {
	// Earlier sources win: a field set by the first config is not
	// overridden by later ones, and gaps are filled in.
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{API: API{BaseURL: "http://from-env:8000"}},
		&StructuredConfig{
			API:     API{BaseURL: "http://from-flags:9000", RequestTimeout: 10 * time.Second},
			Storage: Storage{DB: DB{DSN: "flags.db"}},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "http://from-env:8000", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, "flags.db", cfg.Storage.DB.DSN)
}
