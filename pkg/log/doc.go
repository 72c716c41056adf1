// Package log provides the structured logging facade for the ulid server
// and CLI.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// Field type for structured context. It is backed by Go's standard library
// slog, so output format (text or JSON) and level filtering come from slog
// handlers while call sites stay on a stable, minimal surface.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormat("text"),
//	)
//	l = l.With(log.Component("server"))
//	l.Info("server started", log.Str("http", ":8080"))
//
// # Configuration
//
// Use ApplyConfig to build a logger from a declarative Config, typically
// populated from ULID_LOG_LEVEL and ULID_LOG_FORMAT.
//
// # Interop
//
// RedirectStdLog routes standard library log output (Pebble, net/http)
// through a Logger so all lines share one format.
package log
