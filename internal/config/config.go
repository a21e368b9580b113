// Package config reads hirely's runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the client and CLI.
type Config struct {
	APIBaseURL  string
	Storage     string
	StoragePath string
	LogLevel    string
	LogFormat   string
	HTTPTimeout time.Duration
}

// LoadEnvFiles merges .env style files into the process environment.
// Variables already set win. Missing files are skipped.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	cfg := Config{
		APIBaseURL:  envOr("HIRELY_API_BASE_URL", envOr("API_BASE_URL", "")),
		Storage:     strings.ToLower(envOr("HIRELY_STORAGE", "file")),
		StoragePath: envOr("HIRELY_STORAGE_PATH", ""),
		LogLevel:    envOr("HIRELY_LOG_LEVEL", "warn"),
		LogFormat:   strings.ToLower(envOr("HIRELY_LOG_FORMAT", "text")),
		HTTPTimeout: durationOr("HIRELY_HTTP_TIMEOUT", 0),
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("missing required env vars: HIRELY_API_BASE_URL")
	}
	switch cfg.Storage {
	case "file", "sqlite", "memory":
	default:
		return Config{}, fmt.Errorf("HIRELY_STORAGE must be one of file, sqlite, memory (got %q)", cfg.Storage)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("HIRELY_LOG_FORMAT must be text or json (got %q)", cfg.LogFormat)
	}

	if cfg.StoragePath == "" {
		p, err := defaultStoragePath(cfg.Storage)
		if err != nil {
			return Config{}, err
		}
		cfg.StoragePath = p
	}
	return cfg, nil
}

func defaultStoragePath(backend string) (string, error) {
	if backend == "memory" {
		return "", nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	dir = filepath.Join(dir, "hirely")
	if backend == "sqlite" {
		return filepath.Join(dir, "hirely.db"), nil
	}
	return dir, nil
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func durationOr(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}
