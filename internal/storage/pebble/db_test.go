package pebblestore

import (
	"bytes"
	"testing"
	"time"
)

func openTestDB(t *testing.T, mode FsyncMode) *DB {
	t.Helper()
	db, err := Open(Options{DataDir: t.TempDir(), Fsync: mode, FsyncInterval: time.Millisecond})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSetGet(t *testing.T) {
	db := openTestDB(t, FsyncModeAlways)

	if err := db.Set([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := db.Get([]byte("k"))
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, []byte("v")) {
		t.Fatalf("Get value = %q, want %q", got, "v")
	}
}

func TestGetMissing(t *testing.T) {
	db := openTestDB(t, FsyncModeNever)

	_, ok, err := db.Get([]byte("absent"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("Get reported a missing key as present")
	}
}

func TestSetMany(t *testing.T) {
	db := openTestDB(t, FsyncModeInterval)

	if err := db.SetMany(map[string][]byte{"a": []byte("1"), "b": []byte("2")}); err != nil {
		t.Fatalf("SetMany: %v", err)
	}
	for k, want := range map[string]string{"a": "1", "b": "2"} {
		got, ok, err := db.Get([]byte(k))
		if err != nil || !ok {
			t.Fatalf("Get %q: ok=%v err=%v", k, ok, err)
		}
		if string(got) != want {
			t.Fatalf("Get %q = %q, want %q", k, got, want)
		}
	}
}

func TestParseFsyncMode(t *testing.T) {
	cases := map[string]FsyncMode{
		"":         FsyncModeAlways,
		"always":   FsyncModeAlways,
		"interval": FsyncModeInterval,
		"never":    FsyncModeNever,
	}
	for in, want := range cases {
		got, err := ParseFsyncMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseFsyncMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFsyncMode("bogus"); err == nil {
		t.Fatalf("ParseFsyncMode accepted an invalid mode")
	}
}

func TestCheck(t *testing.T) {
	db := openTestDB(t, FsyncModeAlways)
	if err := db.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}
	var closed *DB
	if err := closed.Check(); err == nil {
		t.Fatalf("Check on nil DB succeeded")
	}
}
