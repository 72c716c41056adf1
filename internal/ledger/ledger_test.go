package ledger

import (
	"errors"
	"sync"
	"testing"

	pebblestore "github.com/rzbill/ulid/internal/storage/pebble"
	"github.com/rzbill/ulid/pkg/ulid"
)

func openTestLedger(t *testing.T, dir string) (*Ledger, *pebblestore.DB) {
	t.Helper()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: dir, Fsync: pebblestore.FsyncModeNever})
	if err != nil {
		t.Fatalf("pebble open: %v", err)
	}
	l, err := Open(db)
	if err != nil {
		t.Fatalf("ledger open: %v", err)
	}
	return l, db
}

func TestEmptyLedger(t *testing.T) {
	l, db := openTestLedger(t, t.TempDir())
	defer db.Close()

	if _, ok := l.Last(); ok {
		t.Fatalf("empty ledger reported a last ULID")
	}
	if l.Count() != 0 {
		t.Fatalf("Count = %d, want 0", l.Count())
	}
}

func TestRecordAndReload(t *testing.T) {
	dir := t.TempDir()
	l, db := openTestLedger(t, dir)

	u := ulid.MustParse("01JB05JV6H9ZA2YQ6X3K1DAGVA")
	if err := l.Record(u, 3); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if l.Count() != 3 {
		t.Fatalf("Count = %d, want 3", l.Count())
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	l2, db2 := openTestLedger(t, dir)
	defer db2.Close()

	got, ok := l2.Last()
	if !ok {
		t.Fatalf("Last after reload: not found")
	}
	if got != u {
		t.Fatalf("Last = %s, want %s", got, u)
	}
	if l2.Count() != 3 {
		t.Fatalf("Count after reload = %d, want 3", l2.Count())
	}
}

func TestRecordAdvances(t *testing.T) {
	l, db := openTestLedger(t, t.TempDir())
	defer db.Close()

	a := ulid.MustParse("01JB05JV6H9ZA2YQ6X3K1DAGVA")
	b := ulid.MustParse("01JB07NQ643XZXVHZDY0JNYR02")
	if err := l.Record(a, 1); err != nil {
		t.Fatalf("Record a: %v", err)
	}
	if err := l.Record(b, 1); err != nil {
		t.Fatalf("Record b: %v", err)
	}
	got, ok := l.Last()
	if !ok {
		t.Fatalf("Last: not found")
	}
	if got != b {
		t.Fatalf("Last = %s, want %s", got, b)
	}
	if l.Count() != 2 {
		t.Fatalf("Count = %d, want 2", l.Count())
	}
}

func TestRecordNeverRegresses(t *testing.T) {
	dir := t.TempDir()
	l, db := openTestLedger(t, dir)

	lo := ulid.MustParse("01JB05JV6H9ZA2YQ6X3K1DAGVA")
	hi := ulid.MustParse("01JB07NQ643XZXVHZDY0JNYR02")
	if err := l.Record(hi, 1); err != nil {
		t.Fatalf("Record hi: %v", err)
	}
	if err := l.Record(lo, 1); err != nil {
		t.Fatalf("Record lo: %v", err)
	}
	got, ok := l.Last()
	if !ok || got != hi {
		t.Fatalf("Last = %s, want %s", got, hi)
	}
	if l.Count() != 2 {
		t.Fatalf("Count = %d, want 2", l.Count())
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// The persisted mark must match the in-memory one.
	l2, db2 := openTestLedger(t, dir)
	defer db2.Close()
	got, ok = l2.Last()
	if !ok || got != hi {
		t.Fatalf("Last after reload = %s, want %s", got, hi)
	}
}

func TestConcurrentRecord(t *testing.T) {
	l, db := openTestLedger(t, t.TempDir())
	defer db.Close()

	const goroutines = 8
	const perG = 25

	var wg sync.WaitGroup
	errs := make(chan error, goroutines)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				u, ok := ulid.TryNew()
				if !ok {
					errs <- errors.New("no ULID available")
					return
				}
				if err := l.Record(u, 1); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent record: %v", err)
	}
	if l.Count() != goroutines*perG {
		t.Fatalf("Count = %d, want %d", l.Count(), goroutines*perG)
	}
	if _, ok := l.Last(); !ok {
		t.Fatalf("Last: not found")
	}
}
