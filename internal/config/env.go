package config

import (
	"os"
	"strconv"
)

// FromEnv overlays ULID_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("ULID_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("ULID_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("ULID_FSYNC"); v != "" {
		cfg.Fsync = v
	}
	if v := os.Getenv("ULID_FSYNC_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FsyncIntervalMs = n
		}
	}
	if v := os.Getenv("ULID_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ULID_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("ULID_MAX_BATCH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxBatch = n
		}
	}
}
