// Package config provides loading and environment overlay for the issuance
// server configuration. It exposes a Default() baseline, JSON file loading,
// and a ULID_* environment overlay.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/ulid.json"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
package config
