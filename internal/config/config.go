// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// CredentialBackend selects where workspace tokens are stored.
type CredentialBackend string

const (
	// BackendKeyring stores tokens in the operating system keychain.
	BackendKeyring CredentialBackend = "keyring"
	// BackendVault stores tokens AES-256-GCM encrypted in the SQLite database.
	BackendVault CredentialBackend = "vault"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath            string
	CredentialBackend CredentialBackend
	SecretKey         []byte // 32 bytes, or nil when STATUSPANEL_SECRET_KEY is unset.
	APIBaseURL        string
	HTTPTimeout       time.Duration
	APIRate           int // requests per second; 0 disables limiting.
	ResultDisplay     time.Duration
	ListenAddr        string
	LogPath           string
	LogLevel          slog.Level
	Headless          bool
}

// APIEnabled reports whether the local control API should be started.
func (c *Config) APIEnabled() bool {
	return c.ListenAddr != ""
}

// Load reads configuration from environment variables and returns a validated Config.
// All variables are optional. Defaults: STATUSPANEL_DB_PATH (statuspanel.db),
// STATUSPANEL_CREDENTIAL_BACKEND (keyring), STATUSPANEL_API_BASE_URL
// (https://slack.com/api), STATUSPANEL_HTTP_TIMEOUT (15s), STATUSPANEL_API_RATE
// (20 requests per second, 0 disables), STATUSPANEL_RESULT_DISPLAY
// (3s), STATUSPANEL_LISTEN_ADDR (empty, API disabled), STATUSPANEL_LOG_PATH
// (statuspanel.log), STATUSPANEL_LOG_LEVEL (info), STATUSPANEL_HEADLESS (false).
// STATUSPANEL_SECRET_KEY is required by the vault backend.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:            "statuspanel.db",
		CredentialBackend: BackendKeyring,
		APIBaseURL:        "https://slack.com/api",
		HTTPTimeout:       15 * time.Second,
		APIRate:           20,
		ResultDisplay:     3 * time.Second,
		LogPath:           "statuspanel.log",
		LogLevel:          slog.LevelInfo,
	}

	if v, ok := os.LookupEnv("STATUSPANEL_DB_PATH"); ok && v != "" {
		cfg.DBPath = v
	}

	if v, ok := os.LookupEnv("STATUSPANEL_CREDENTIAL_BACKEND"); ok && v != "" {
		backend := CredentialBackend(strings.ToLower(strings.TrimSpace(v)))
		switch backend {
		case BackendKeyring, BackendVault:
			cfg.CredentialBackend = backend
		default:
			return nil, fmt.Errorf("STATUSPANEL_CREDENTIAL_BACKEND must be %q or %q, got %q", BackendKeyring, BackendVault, v)
		}
	}

	if v, ok := os.LookupEnv("STATUSPANEL_SECRET_KEY"); ok && v != "" {
		key, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("STATUSPANEL_SECRET_KEY must be hex-encoded: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("STATUSPANEL_SECRET_KEY must be 64 hex characters (32 bytes), got %d bytes", len(key))
		}
		cfg.SecretKey = key
	}
	if cfg.CredentialBackend == BackendVault && cfg.SecretKey == nil {
		return nil, fmt.Errorf("STATUSPANEL_SECRET_KEY is required when STATUSPANEL_CREDENTIAL_BACKEND is %q", BackendVault)
	}

	if v, ok := os.LookupEnv("STATUSPANEL_API_BASE_URL"); ok && v != "" {
		u, err := url.Parse(v)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("STATUSPANEL_API_BASE_URL must be an absolute http(s) URL, got %q", v)
		}
		cfg.APIBaseURL = strings.TrimRight(v, "/")
	}

	var err error
	if cfg.HTTPTimeout, err = durationEnv("STATUSPANEL_HTTP_TIMEOUT", cfg.HTTPTimeout); err != nil {
		return nil, err
	}
	if v, ok := os.LookupEnv("STATUSPANEL_API_RATE"); ok && v != "" {
		rps, err := strconv.Atoi(v)
		if err != nil || rps < 0 {
			return nil, fmt.Errorf("STATUSPANEL_API_RATE must be a non-negative integer, got %q", v)
		}
		cfg.APIRate = rps
	}
	if cfg.ResultDisplay, err = durationEnv("STATUSPANEL_RESULT_DISPLAY", cfg.ResultDisplay); err != nil {
		return nil, err
	}

	if v, ok := os.LookupEnv("STATUSPANEL_LISTEN_ADDR"); ok && v != "" {
		if err := validateLoopback(v); err != nil {
			return nil, fmt.Errorf("STATUSPANEL_LISTEN_ADDR %q: %w", v, err)
		}
		cfg.ListenAddr = v
	}

	if v, ok := os.LookupEnv("STATUSPANEL_LOG_PATH"); ok && v != "" {
		cfg.LogPath = v
	}

	if v, ok := os.LookupEnv("STATUSPANEL_LOG_LEVEL"); ok && v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("STATUSPANEL_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	if v, ok := os.LookupEnv("STATUSPANEL_HEADLESS"); ok && v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("STATUSPANEL_HEADLESS has invalid boolean %q: %w", v, err)
		}
		cfg.Headless = headless
	}
	if cfg.Headless && !cfg.APIEnabled() {
		return nil, errors.New("STATUSPANEL_HEADLESS requires STATUSPANEL_LISTEN_ADDR")
	}

	return cfg, nil
}

// durationEnv parses a positive duration from the named variable, returning def
// when it is unset.
func durationEnv(name string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid duration %q: %w", name, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", name, d)
	}
	return d, nil
}

// validateLoopback rejects listen addresses that are reachable from other hosts.
// The control API has no authentication.
func validateLoopback(addr string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	if host == "localhost" {
		return nil
	}
	ip := net.ParseIP(host)
	if ip == nil || !ip.IsLoopback() {
		return errors.New("host must be a loopback address")
	}
	return nil
}
