package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the coordinator service.
type Config struct {
	HTTPPort      int
	SQLiteDSN     string
	SessionTTL    time.Duration
	IssuerURL     string
	IssuerTimeout time.Duration
}

// Load parses configuration values from the current process environment.
//
// Optional fields fall back to defaults; required values and malformed
// entries are accumulated and reported together.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:      8080,
		SQLiteDSN:     "file:coordinator.db?_foreign_keys=on",
		SessionTTL:    24 * time.Hour,
		IssuerTimeout: 10 * time.Second,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("MEETING_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "MEETING_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("MEETING_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if ttlValue := strings.TrimSpace(os.Getenv("MEETING_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "MEETING_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if issuerValue := strings.TrimSpace(os.Getenv("MEETING_ISSUER_URL")); issuerValue == "" {
		missing = append(missing, "MEETING_ISSUER_URL")
	} else {
		parsed, err := url.Parse(issuerValue)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			invalid = append(invalid, "MEETING_ISSUER_URL")
		} else {
			cfg.IssuerURL = issuerValue
		}
	}

	if timeoutValue := strings.TrimSpace(os.Getenv("MEETING_ISSUER_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "MEETING_ISSUER_TIMEOUT")
		} else {
			cfg.IssuerTimeout = timeout
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("environment variables have invalid values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
