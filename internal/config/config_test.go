package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-tracker/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.coingecko.com/api/v3", cfg.CoinGecko.BaseURL)
	assert.Empty(t, cfg.CoinGecko.APIKey)
	assert.Equal(t, 30*time.Second, cfg.CoinGecko.Timeout)
	assert.Equal(t, 0, cfg.CoinGecko.MaxRetries)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, time.Minute, cfg.Session.SweepInterval)
	assert.Equal(t, domain.DefaultCurrency, cfg.DefaultCurrency)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
coingecko:
  base_url: http://localhost:9999/api/v3/
  api_key: CG-test
  timeout: 3s
  max_retries: 2
server:
  addr: 127.0.0.1:9000
session:
  ttl: 5m
default_currency: EUR
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/api/v3", cfg.CoinGecko.BaseURL)
	assert.Equal(t, "CG-test", cfg.CoinGecko.APIKey)
	assert.Equal(t, 3*time.Second, cfg.CoinGecko.Timeout)
	assert.Equal(t, 2, cfg.CoinGecko.MaxRetries)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "eur", cfg.DefaultCurrency.Code)
	assert.Equal(t, "€", cfg.DefaultCurrency.Symbol)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: :9000\n"), 0o644))

	t.Setenv("CRYPTO_TRACKER_SERVER_ADDR", ":7000")
	t.Setenv("CRYPTO_TRACKER_COINGECKO_API_KEY", "CG-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "CG-env", cfg.CoinGecko.APIKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_UnknownCurrency(t *testing.T) {
	t.Setenv("CRYPTO_TRACKER_DEFAULT_CURRENCY", "xyz")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xyz")
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	for _, key := range []string{KeyBaseURL, KeyTimeout, KeyServerAddr, KeySessionTTL, KeySweepInterval} {
		assert.Contains(t, err.Error(), key)
	}

	cfg.CoinGecko.MaxRetries = -1
	assert.Contains(t, cfg.Validate().Error(), KeyMaxRetries)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(`
# comment
CRYPTO_TRACKER_TEST_NEW=from-file
CRYPTO_TRACKER_TEST_SET=from-file
not a pair
`), 0o644))

	t.Setenv("CRYPTO_TRACKER_TEST_NEW", "")
	t.Setenv("CRYPTO_TRACKER_TEST_SET", "from-env")

	LoadEnvFile(path)

	assert.Equal(t, "from-file", os.Getenv("CRYPTO_TRACKER_TEST_NEW"))
	assert.Equal(t, "from-env", os.Getenv("CRYPTO_TRACKER_TEST_SET"))

	LoadEnvFile(filepath.Join(t.TempDir(), "missing"))
}
