// File path: internal/tenant/config.go
package tenant

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config controls the SQLite-backed tenant store.
type Config struct {
	Path         string
	MaxOpenConns int
	MaxIdleConns int
	BusyTimeout  time.Duration
}

// DefaultConfig returns the settings used when the environment provides no
// overrides.
func DefaultConfig() Config {
	return Config{
		Path:         filepath.Join("data", "writway.db"),
		MaxOpenConns: 4,
		MaxIdleConns: 2,
		BusyTimeout:  5 * time.Second,
	}
}

// LoadConfig assembles configuration from the environment on top of the
// defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if path := strings.TrimSpace(os.Getenv("WRITWAY_DB_PATH")); path != "" {
		cfg.Path = path
	}
	if raw := strings.TrimSpace(os.Getenv("WRITWAY_DB_MAX_OPEN")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("invalid WRITWAY_DB_MAX_OPEN: %q", raw)
		}
		cfg.MaxOpenConns = parsed
	}
	if raw := strings.TrimSpace(os.Getenv("WRITWAY_DB_MAX_IDLE")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return Config{}, fmt.Errorf("invalid WRITWAY_DB_MAX_IDLE: %q", raw)
		}
		cfg.MaxIdleConns = parsed
	}
	if raw := strings.TrimSpace(os.Getenv("WRITWAY_DB_BUSY_TIMEOUT")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("invalid WRITWAY_DB_BUSY_TIMEOUT: %q", raw)
		}
		cfg.BusyTimeout = parsed
	}
	return cfg, nil
}
