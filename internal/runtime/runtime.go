// Package runtime wires storage, ledger, and config into a single-node
// issuance instance.
package runtime

import (
	"context"
	"errors"
	"time"

	cfgpkg "github.com/rzbill/ulid/internal/config"
	"github.com/rzbill/ulid/internal/ledger"
	pebblestore "github.com/rzbill/ulid/internal/storage/pebble"
	"github.com/rzbill/ulid/pkg/ulid"
)

// ErrExhausted reports that the generator could not produce another ULID,
// either because clock readout or entropy failed or because the remaining
// identifier space for the current state is gone.
var ErrExhausted = errors.New("runtime: no ULID available")

// Options for building the Runtime.
type Options struct {
	DataDir       string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
}

// Runtime wires storage, ledger, and config for a single-node instance.
type Runtime struct {
	db     *pebblestore.DB
	ledger *ledger.Ledger
	config cfgpkg.Config
}

// Open initializes storage, loads the ledger, and raises the generator
// floor above the last recorded ULID so restarts never repeat or go
// backwards.
func Open(opts Options) (*Runtime, error) {
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:       opts.DataDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
	})
	if err != nil {
		return nil, err
	}
	l, err := ledger.Open(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if last, ok := l.Last(); ok {
		ulid.SetFloor(last)
	}
	return &Runtime{db: db, ledger: l, config: opts.Config}, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Issue generates n fresh ULIDs and records the highest one in the ledger
// before returning. n must be at least 1.
func (r *Runtime) Issue(n int) ([]ulid.ULID, error) {
	if n < 1 {
		return nil, errors.New("runtime: issue count must be at least 1")
	}
	out := make([]ulid.ULID, 0, n)
	for i := 0; i < n; i++ {
		u, ok := ulid.TryNew()
		if !ok {
			return nil, ErrExhausted
		}
		out = append(out, u)
	}
	if err := r.ledger.Record(out[len(out)-1], uint64(len(out))); err != nil {
		return nil, err
	}
	return out, nil
}

// Issued returns the total number of ULIDs recorded by this instance.
func (r *Runtime) Issued() uint64 {
	return r.ledger.Count()
}

// CheckHealth performs a simple health check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	return r.db.Check()
}

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
