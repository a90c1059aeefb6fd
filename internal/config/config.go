// Package config loads tracker settings from defaults, an optional YAML file
// and CRYPTO_TRACKER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"crypto-tracker/internal/domain"
)

// EnvPrefix is prepended to environment overrides, e.g. CRYPTO_TRACKER_SERVER_ADDR.
const EnvPrefix = "CRYPTO_TRACKER"

// Keys.
const (
	KeyBaseURL         = "coingecko.base_url"
	KeyAPIKey          = "coingecko.api_key"
	KeyTimeout         = "coingecko.timeout"
	KeyMaxRetries      = "coingecko.max_retries"
	KeyServerAddr      = "server.addr"
	KeySessionTTL      = "session.ttl"
	KeySweepInterval   = "session.sweep_interval"
	KeyDefaultCurrency = "default_currency"
)

// Config holds resolved settings.
type Config struct {
	CoinGecko CoinGecko
	Server    Server
	Session   Session

	DefaultCurrency domain.Currency
}

// CoinGecko configures the upstream client.
type CoinGecko struct {
	BaseURL    string
	APIKey     string // sent as x-cg-demo-api-key when set
	Timeout    time.Duration
	MaxRetries int
}

// Server configures the HTTP listener.
type Server struct {
	Addr string
}

// Session configures per-browser state expiry.
type Session struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// New returns a viper instance with defaults and env bindings applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyBaseURL, "https://api.coingecko.com/api/v3")
	v.SetDefault(KeyAPIKey, "")
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyMaxRetries, 0)
	v.SetDefault(KeyServerAddr, ":8080")
	v.SetDefault(KeySessionTTL, 30*time.Minute)
	v.SetDefault(KeySweepInterval, time.Minute)
	v.SetDefault(KeyDefaultCurrency, domain.DefaultCurrency.Code)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (when non-empty) on top of the defaults and resolves the result.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	return FromViper(v)
}

// FromViper resolves and validates settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		CoinGecko: CoinGecko{
			BaseURL:    strings.TrimRight(v.GetString(KeyBaseURL), "/"),
			APIKey:     v.GetString(KeyAPIKey),
			Timeout:    v.GetDuration(KeyTimeout),
			MaxRetries: v.GetInt(KeyMaxRetries),
		},
		Server: Server{
			Addr: v.GetString(KeyServerAddr),
		},
		Session: Session{
			TTL:           v.GetDuration(KeySessionTTL),
			SweepInterval: v.GetDuration(KeySweepInterval),
		},
	}

	code := v.GetString(KeyDefaultCurrency)
	cur, ok := domain.LookupCurrency(code)
	if !ok {
		return nil, fmt.Errorf("unknown %s %q", KeyDefaultCurrency, code)
	}
	cfg.DefaultCurrency = cur

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.CoinGecko.BaseURL == "" {
		errs = append(errs, fmt.Errorf("%s must be set", KeyBaseURL))
	}
	if c.CoinGecko.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyTimeout))
	}
	if c.CoinGecko.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyMaxRetries))
	}
	if c.Server.Addr == "" {
		errs = append(errs, fmt.Errorf("%s must be set", KeyServerAddr))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeySessionTTL))
	}
	if c.Session.SweepInterval <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeySweepInterval))
	}
	return errors.Join(errs...)
}

// LoadEnvFile loads environment variables from a .env file if it exists.
// Variables already set in the environment win.
func LoadEnvFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
