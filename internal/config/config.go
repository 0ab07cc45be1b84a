// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	APIBaseURL    string
	APITimeout    time.Duration
	ListenAddr    string
	DBPath        string
	GitHubToken   string
	SecureCookies bool
}

// HasGitHubToken reports whether repository lookups can authenticate.
// Without a token they still run against the unauthenticated rate limit.
func (c *Config) HasGitHubToken() bool {
	return c.GitHubToken != ""
}

// Load reads configuration from environment variables and returns a validated Config.
// Optional variables with defaults: CODEREVIEWER_API_BASE_URL (http://localhost:3001),
// CODEREVIEWER_API_TIMEOUT (10s), CODEREVIEWER_LISTEN_ADDR (127.0.0.1:3000),
// CODEREVIEWER_DB_PATH (codereviewer.db), CODEREVIEWER_SECURE_COOKIES (false).
// CODEREVIEWER_GITHUB_TOKEN is optional and has no default.
func Load() (*Config, error) {
	apiBaseURL := "http://localhost:3001"
	if v, ok := os.LookupEnv("CODEREVIEWER_API_BASE_URL"); ok {
		apiBaseURL = v
	}
	if err := validateBaseURL(apiBaseURL); err != nil {
		return nil, fmt.Errorf("CODEREVIEWER_API_BASE_URL %w", err)
	}

	apiTimeout := 10 * time.Second
	if v, ok := os.LookupEnv("CODEREVIEWER_API_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CODEREVIEWER_API_TIMEOUT has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("CODEREVIEWER_API_TIMEOUT must be positive, got %s", parsed)
		}
		apiTimeout = parsed
	}

	listenAddr := "127.0.0.1:3000"
	if v, ok := os.LookupEnv("CODEREVIEWER_LISTEN_ADDR"); ok && v != "" {
		listenAddr = v
	}

	dbPath := "codereviewer.db"
	if v, ok := os.LookupEnv("CODEREVIEWER_DB_PATH"); ok && v != "" {
		dbPath = v
	}

	secureCookies := false
	if v, ok := os.LookupEnv("CODEREVIEWER_SECURE_COOKIES"); ok && v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("CODEREVIEWER_SECURE_COOKIES has invalid boolean %q: %w", v, err)
		}
		secureCookies = parsed
	}

	return &Config{
		APIBaseURL:    apiBaseURL,
		APITimeout:    apiTimeout,
		ListenAddr:    listenAddr,
		DBPath:        dbPath,
		GitHubToken:   os.Getenv("CODEREVIEWER_GITHUB_TOKEN"),
		SecureCookies: secureCookies,
	}, nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("is not a valid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("must include a host, got %q", raw)
	}
	return nil
}
