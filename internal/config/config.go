// Package config holds the dashboard configuration, read from the environment.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Environment variable names. They are also passed to the WASM build by the server.
const (
	EnvBackendHTTPBase = "BACKEND_HTTP_BASE"
	EnvAdminToken      = "ADMIN_TOKEN"
	EnvPollInterval    = "ADMIN_POLL_INTERVAL"
	EnvRequestTimeout  = "ADMIN_REQUEST_TIMEOUT"
	EnvHistoryLimit    = "ADMIN_HISTORY_LIMIT"
	EnvLocale          = "ADMIN_LOCALE"
)

// Config of the admin dashboard.
type Config struct {
	// BackendHTTPBase is the game server base URL, without the /admin/state path.
	BackendHTTPBase string `env:"BACKEND_HTTP_BASE" envDefault:"http://127.0.0.1:8080"`

	// AdminToken is passed as the token query parameter.
	AdminToken string `env:"ADMIN_TOKEN" envDefault:"admin"`

	PollInterval   time.Duration `env:"ADMIN_POLL_INTERVAL" envDefault:"1s"`
	RequestTimeout time.Duration `env:"ADMIN_REQUEST_TIMEOUT" envDefault:"10s"`

	// HistoryLimit is the maximum number of history entries shown, the most recent ones.
	// 0 shows them all.
	HistoryLimit int `env:"ADMIN_HISTORY_LIMIT" envDefault:"200"`

	// Locale of the dashboard texts, e.g. "zh-CN" or "en".
	Locale string `env:"ADMIN_LOCALE" envDefault:"zh-CN"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration with all default values.
func Default() Config {
	return Config{
		BackendHTTPBase: "http://127.0.0.1:8080",
		AdminToken:      "admin",
		PollInterval:    time.Second,
		RequestTimeout:  10 * time.Second,
		HistoryLimit:    200,
		Locale:          "zh-CN",
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	u, err := url.Parse(c.BackendHTTPBase)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", EnvBackendHTTPBase, c.BackendHTTPBase, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s %q: scheme must be http or https", EnvBackendHTTPBase, c.BackendHTTPBase)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid %s %q: missing host", EnvBackendHTTPBase, c.BackendHTTPBase)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%s must be positive, got %s", EnvPollInterval, c.PollInterval)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%s must be positive, got %s", EnvRequestTimeout, c.RequestTimeout)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("%s must not be negative, got %d", EnvHistoryLimit, c.HistoryLimit)
	}
	return nil
}

// StateURL returns the admin state endpoint, with the token as query parameter.
func (c Config) StateURL() string {
	base := strings.TrimRight(c.BackendHTTPBase, "/")
	return base + "/admin/state?token=" + url.QueryEscape(c.AdminToken)
}

// Environ returns the variables that reproduce this configuration, to be handed
// to a process (or the WASM app) that calls Load.
func (c Config) Environ() map[string]string {
	return map[string]string{
		EnvBackendHTTPBase: c.BackendHTTPBase,
		EnvAdminToken:      c.AdminToken,
		EnvPollInterval:    c.PollInterval.String(),
		EnvRequestTimeout:  c.RequestTimeout.String(),
		EnvHistoryLimit:    fmt.Sprintf("%d", c.HistoryLimit),
		EnvLocale:          c.Locale,
	}
}
