// Package ledger persists issuance state so a restarted process never hands
// out an identifier at or below one it already issued.
package ledger

import (
	"encoding/binary"
	"fmt"
	"sync"

	pebblestore "github.com/rzbill/ulid/internal/storage/pebble"
	"github.com/rzbill/ulid/pkg/ulid"
)

var (
	keyLast  = []byte("ledger/last")
	keyCount = []byte("ledger/count")
)

// Ledger records the highest issued ULID and a running issue count in a
// Pebble store. All methods are safe for concurrent use.
type Ledger struct {
	db *pebblestore.DB

	mu      sync.Mutex
	last    ulid.ULID
	hasLast bool
	count   uint64
}

// Open loads ledger state from the store.
func Open(db *pebblestore.DB) (*Ledger, error) {
	l := &Ledger{db: db}
	raw, ok, err := db.Get(keyCount)
	if err != nil {
		return nil, fmt.Errorf("ledger: load count: %w", err)
	}
	if ok {
		if len(raw) != 8 {
			return nil, fmt.Errorf("ledger: corrupt count record (%d bytes)", len(raw))
		}
		l.count = binary.BigEndian.Uint64(raw)
	}
	raw, ok, err = db.Get(keyLast)
	if err != nil {
		return nil, fmt.Errorf("ledger: load last: %w", err)
	}
	if ok {
		u, err := ulid.ParseBytes(raw)
		if err != nil {
			return nil, fmt.Errorf("ledger: corrupt last record: %w", err)
		}
		l.last, l.hasLast = u, true
	}
	return l, nil
}

// Last returns the highest ULID recorded so far. The second return is false
// when nothing has been issued yet.
func (l *Ledger) Last() (ulid.ULID, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last, l.hasLast
}

// Record persists u as the high-water mark and bumps the issue count by n.
// The mark only moves up: a ULID at or below the recorded one bumps the
// count but leaves the mark alone. Both keys commit in one batch.
func (l *Ledger) Record(u ulid.ULID, n uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cnt := make([]byte, 8)
	binary.BigEndian.PutUint64(cnt, l.count+n)
	pairs := map[string][]byte{string(keyCount): cnt}
	advances := !l.hasLast || u.Compare(l.last) > 0
	if advances {
		b := u.Bytes()
		pairs[string(keyLast)] = b[:]
	}
	if err := l.db.SetMany(pairs); err != nil {
		return fmt.Errorf("ledger: record: %w", err)
	}
	l.count += n
	if advances {
		l.last, l.hasLast = u, true
	}
	return nil
}

// Count returns the total number of ULIDs recorded.
func (l *Ledger) Count() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
