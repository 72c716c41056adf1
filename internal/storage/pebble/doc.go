// Package pebblestore wraps cockroachdb/pebble with the small surface the
// issuance ledger needs: point reads/writes, an atomic multi-key batch, and a
// configurable fsync policy (always, interval, never).
package pebblestore
