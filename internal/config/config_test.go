package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every STATUSPANEL_ env var that Load() reads.
var allConfigKeys = []string{
	"STATUSPANEL_DB_PATH",
	"STATUSPANEL_CREDENTIAL_BACKEND",
	"STATUSPANEL_SECRET_KEY",
	"STATUSPANEL_API_BASE_URL",
	"STATUSPANEL_HTTP_TIMEOUT",
	"STATUSPANEL_API_RATE",
	"STATUSPANEL_RESULT_DISPLAY",
	"STATUSPANEL_LISTEN_ADDR",
	"STATUSPANEL_LOG_PATH",
	"STATUSPANEL_LOG_LEVEL",
	"STATUSPANEL_HEADLESS",
}

const validKey = "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20"

// isolateConfigEnv saves and unsets all STATUSPANEL_ env vars so tests don't
// inherit values from the host environment.
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "statuspanel.db", cfg.DBPath)
	assert.Equal(t, BackendKeyring, cfg.CredentialBackend)
	assert.Nil(t, cfg.SecretKey)
	assert.Equal(t, "https://slack.com/api", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 20, cfg.APIRate)
	assert.Equal(t, 3*time.Second, cfg.ResultDisplay)
	assert.Empty(t, cfg.ListenAddr)
	assert.False(t, cfg.APIEnabled())
	assert.Equal(t, "statuspanel.log", cfg.LogPath)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.Headless)
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("STATUSPANEL_DB_PATH", "/tmp/test.db")
	t.Setenv("STATUSPANEL_CREDENTIAL_BACKEND", "Vault")
	t.Setenv("STATUSPANEL_SECRET_KEY", validKey)
	t.Setenv("STATUSPANEL_API_BASE_URL", "http://127.0.0.1:9999/api/")
	t.Setenv("STATUSPANEL_HTTP_TIMEOUT", "5s")
	t.Setenv("STATUSPANEL_API_RATE", "0")
	t.Setenv("STATUSPANEL_RESULT_DISPLAY", "1500ms")
	t.Setenv("STATUSPANEL_LISTEN_ADDR", "127.0.0.1:8484")
	t.Setenv("STATUSPANEL_LOG_PATH", "/tmp/statuspanel.log")
	t.Setenv("STATUSPANEL_LOG_LEVEL", "debug")
	t.Setenv("STATUSPANEL_HEADLESS", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, BackendVault, cfg.CredentialBackend)
	assert.Len(t, cfg.SecretKey, 32)
	assert.Equal(t, "http://127.0.0.1:9999/api", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 0, cfg.APIRate)
	assert.Equal(t, 1500*time.Millisecond, cfg.ResultDisplay)
	assert.Equal(t, "127.0.0.1:8484", cfg.ListenAddr)
	assert.True(t, cfg.APIEnabled())
	assert.Equal(t, "/tmp/statuspanel.log", cfg.LogPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.Headless)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantVar string
	}{
		{
			name:    "unknown backend",
			env:     map[string]string{"STATUSPANEL_CREDENTIAL_BACKEND": "file"},
			wantVar: "STATUSPANEL_CREDENTIAL_BACKEND",
		},
		{
			name:    "vault without key",
			env:     map[string]string{"STATUSPANEL_CREDENTIAL_BACKEND": "vault"},
			wantVar: "STATUSPANEL_SECRET_KEY",
		},
		{
			name:    "key too short",
			env:     map[string]string{"STATUSPANEL_SECRET_KEY": "deadbeef"},
			wantVar: "STATUSPANEL_SECRET_KEY",
		},
		{
			name:    "key not hex",
			env:     map[string]string{"STATUSPANEL_SECRET_KEY": "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"},
			wantVar: "STATUSPANEL_SECRET_KEY",
		},
		{
			name:    "relative base url",
			env:     map[string]string{"STATUSPANEL_API_BASE_URL": "slack.com/api"},
			wantVar: "STATUSPANEL_API_BASE_URL",
		},
		{
			name:    "bad timeout",
			env:     map[string]string{"STATUSPANEL_HTTP_TIMEOUT": "soon"},
			wantVar: "STATUSPANEL_HTTP_TIMEOUT",
		},
		{
			name:    "negative api rate",
			env:     map[string]string{"STATUSPANEL_API_RATE": "-1"},
			wantVar: "STATUSPANEL_API_RATE",
		},
		{
			name:    "zero display window",
			env:     map[string]string{"STATUSPANEL_RESULT_DISPLAY": "0s"},
			wantVar: "STATUSPANEL_RESULT_DISPLAY",
		},
		{
			name:    "non-loopback listen address",
			env:     map[string]string{"STATUSPANEL_LISTEN_ADDR": "0.0.0.0:8484"},
			wantVar: "STATUSPANEL_LISTEN_ADDR",
		},
		{
			name:    "listen address without port",
			env:     map[string]string{"STATUSPANEL_LISTEN_ADDR": "localhost"},
			wantVar: "STATUSPANEL_LISTEN_ADDR",
		},
		{
			name:    "bad log level",
			env:     map[string]string{"STATUSPANEL_LOG_LEVEL": "verbose"},
			wantVar: "STATUSPANEL_LOG_LEVEL",
		},
		{
			name:    "bad headless flag",
			env:     map[string]string{"STATUSPANEL_HEADLESS": "maybe"},
			wantVar: "STATUSPANEL_HEADLESS",
		},
		{
			name:    "headless without api",
			env:     map[string]string{"STATUSPANEL_HEADLESS": "1"},
			wantVar: "STATUSPANEL_LISTEN_ADDR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantVar)
		})
	}
}

func TestLoad_LocalhostListenAddr(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("STATUSPANEL_LISTEN_ADDR", "localhost:8484")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "localhost:8484", cfg.ListenAddr)
}

func TestLoad_KeyringBackendIgnoresMissingKey(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("STATUSPANEL_CREDENTIAL_BACKEND", "keyring")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Nil(t, cfg.SecretKey)
}
