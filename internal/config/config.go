package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all gateway configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	Marketplace MarketplaceConfig
	Session     SessionConfig
	Catalog     CatalogConfig
	Worker      WorkerConfig
}

// MarketplaceConfig contains connection parameters for the remote
// marketplace REST API.
type MarketplaceConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig contains the local session store parameters. Tokens are
// encrypted at rest with AES-256-GCM; the key must be base64 of 32 bytes.
type SessionConfig struct {
	StorePath     string
	EncryptionKey []byte
	TTL           time.Duration
}

// CatalogConfig contains the catalog view tuning knobs.
type CatalogConfig struct {
	PageSize       int
	SearchDebounce time.Duration
	SelectionLimit int
	NoticeTTL      time.Duration
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	TaxonomyRefreshInterval time.Duration
	SessionPurgeInterval    time.Duration
}

// Load reads configuration from environment variables. If a .env file
// exists in the working directory, it will be loaded first. It returns a
// populated Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")

	// Marketplace
	cfg.Marketplace.BaseURL = getEnv("MARKETPLACE_BASE_URL", "")
	var err error
	if cfg.Marketplace.Timeout, err = parseDurationEnv("MARKETPLACE_TIMEOUT", "30s"); err != nil {
		return nil, fmt.Errorf("invalid MARKETPLACE_TIMEOUT: %w", err)
	}

	// Session store
	cfg.Session.StorePath = getEnv("SESSION_STORE_PATH", "sessions.db")
	if cfg.Session.TTL, err = parseDurationEnv("SESSION_TTL", "24h"); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	rawKey := getEnv("SESSION_ENCRYPTION_KEY", "")
	if rawKey != "" {
		key, err := base64.StdEncoding.DecodeString(rawKey)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_ENCRYPTION_KEY: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("invalid SESSION_ENCRYPTION_KEY length: got %d bytes, expected 32", len(key))
		}
		cfg.Session.EncryptionKey = key
	}

	// Catalog view
	cfg.Catalog.PageSize = getEnvInt("CATALOG_PAGE_SIZE", 12)
	cfg.Catalog.SelectionLimit = getEnvInt("CATALOG_SELECTION_LIMIT", 1000)
	if cfg.Catalog.SearchDebounce, err = parseDurationEnv("CATALOG_SEARCH_DEBOUNCE", "500ms"); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_SEARCH_DEBOUNCE: %w", err)
	}
	if cfg.Catalog.NoticeTTL, err = parseDurationEnv("CATALOG_NOTICE_TTL", "3s"); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_NOTICE_TTL: %w", err)
	}

	// Workers
	if cfg.Worker.TaxonomyRefreshInterval, err = parseDurationEnv("TAXONOMY_REFRESH_INTERVAL", "15m"); err != nil {
		return nil, fmt.Errorf("invalid TAXONOMY_REFRESH_INTERVAL: %w", err)
	}
	if cfg.Worker.SessionPurgeInterval, err = parseDurationEnv("SESSION_PURGE_INTERVAL", "1h"); err != nil {
		return nil, fmt.Errorf("invalid SESSION_PURGE_INTERVAL: %w", err)
	}

	if cfg.Marketplace.BaseURL == "" {
		return nil, errors.New("marketplace configuration incomplete: ensure MARKETPLACE_BASE_URL is set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}
	if cfg.Session.EncryptionKey == nil {
		return nil, errors.New("SESSION_ENCRYPTION_KEY must be set (base64 of 32 random bytes)")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
