package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every CODEREVIEWER_ env var that Load() reads.
var allConfigKeys = []string{
	"CODEREVIEWER_API_BASE_URL",
	"CODEREVIEWER_API_TIMEOUT",
	"CODEREVIEWER_LISTEN_ADDR",
	"CODEREVIEWER_DB_PATH",
	"CODEREVIEWER_GITHUB_TOKEN",
	"CODEREVIEWER_SECURE_COOKIES",
}

// isolateConfigEnv saves and unsets all CODEREVIEWER_ env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
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

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("CODEREVIEWER_API_BASE_URL", "https://api.example.com/root")
	t.Setenv("CODEREVIEWER_API_TIMEOUT", "3s")
	t.Setenv("CODEREVIEWER_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("CODEREVIEWER_DB_PATH", "/tmp/test.db")
	t.Setenv("CODEREVIEWER_GITHUB_TOKEN", "ghp_test123")
	t.Setenv("CODEREVIEWER_SECURE_COOKIES", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/root", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "ghp_test123", cfg.GitHubToken)
	assert.True(t, cfg.HasGitHubToken())
	assert.True(t, cfg.SecureCookies)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, "127.0.0.1:3000", cfg.ListenAddr)
	assert.Equal(t, "codereviewer.db", cfg.DBPath)
	assert.Empty(t, cfg.GitHubToken)
	assert.False(t, cfg.HasGitHubToken())
	assert.False(t, cfg.SecureCookies)
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("CODEREVIEWER_LISTEN_ADDR", "")
	t.Setenv("CODEREVIEWER_DB_PATH", "")
	t.Setenv("CODEREVIEWER_SECURE_COOKIES", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:3000", cfg.ListenAddr)
	assert.Equal(t, "codereviewer.db", cfg.DBPath)
	assert.False(t, cfg.SecureCookies)
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	for _, v := range []string{"localhost:3001", "ftp://example.com", "http://", "/api", "::bad"} {
		t.Run(v, func(t *testing.T) {
			isolateConfigEnv(t)
			t.Setenv("CODEREVIEWER_API_BASE_URL", v)

			cfg, err := Load()

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "CODEREVIEWER_API_BASE_URL")
		})
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	for _, v := range []string{"not-a-duration", "0s", "-5s"} {
		t.Run(v, func(t *testing.T) {
			isolateConfigEnv(t)
			t.Setenv("CODEREVIEWER_API_TIMEOUT", v)

			cfg, err := Load()

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "CODEREVIEWER_API_TIMEOUT")
		})
	}
}

func TestLoad_InvalidSecureCookies(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("CODEREVIEWER_SECURE_COOKIES", "maybe")

	cfg, err := Load()

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "CODEREVIEWER_SECURE_COOKIES")
}
