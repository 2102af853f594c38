package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port          string
	DatabaseURL   string
	PrivateKeyPEM string
	PublicKeyPEM  string
	TokenValidity time.Duration
	CORSOrigins   []string
	PublicRoutes  []string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:          fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		PrivateKeyPEM: normalizePEM(os.Getenv("JWT_PRIVATE_KEY")),
		PublicKeyPEM:  normalizePEM(os.Getenv("JWT_PUBLIC_KEY")),
		CORSOrigins:   parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		PublicRoutes:  parseCSV(fallback(os.Getenv("PUBLIC_ROUTES"), "/auth/,/health")),
	}

	ms := fallback(os.Getenv("TOKEN_VALIDITY_MS"), "3600000")
	validityMS, err := strconv.Atoi(ms)
	if err != nil || validityMS <= 0 {
		return Config{}, fmt.Errorf("TOKEN_VALIDITY_MS must be a positive integer, got %q", ms)
	}
	cfg.TokenValidity = time.Duration(validityMS) * time.Millisecond

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.PrivateKeyPEM == "" {
		return Config{}, errors.New("JWT_PRIVATE_KEY is required")
	}
	if cfg.PublicKeyPEM == "" {
		return Config{}, errors.New("JWT_PUBLIC_KEY is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// normalizePEM accepts PEM passed through env vars with literal "\n"
// sequences in place of newlines.
func normalizePEM(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, `\n`, "\n"))
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
