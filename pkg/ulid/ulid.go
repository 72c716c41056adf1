package ulid

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// ULID is an identifier from the non-zero domain: no constructor ever yields
// the all-zero value. Note that the Go zero value `var u ULID` is that
// invalid all-zero ULID; treat an unassigned ULID like uuid.Nil and obtain
// real values through New, Parse or the From* constructors.
type ULID struct {
	n Uint128
}

// Min and Max bound the ULID domain. Min is 1, because zero is excluded.
var (
	Min = ULID{Uint128{Lo: 1}}
	Max = ULID{Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}}
)

// New generates the next ULID. Successive calls return strictly increasing,
// pairwise distinct values, across all goroutines.
//
// New panics when no ULID is available, which cannot happen with the
// standard entropy source under a sane clock. Callers that must tolerate
// unavailability use TryNew.
func New() ULID {
	u, ok := TryNew()
	if !ok {
		panic("ulid: no ULID available (entropy source unavailable or exhausted)")
	}
	return u
}

// TryNew generates the next ULID, reporting false when the entropy source is
// unavailable or the value space is exhausted. It never returns a duplicate
// or wrapped value.
func TryNew() (ULID, bool) {
	n, ok := gen.generate()
	if !ok {
		return ULID{}, false
	}
	return ULID{n: n}, true
}

// Parse decodes a 26-character ULID string. Input is case-insensitive and
// accepts the ambiguous letters i, l and o as aliases for 1 and 0. The
// all-zero string fails with ErrInvalidZero.
func Parse(s string) (ULID, error) {
	if err := checkLength(s); err != nil {
		return ULID{}, err
	}
	n, err := decode(s)
	if err != nil {
		return ULID{}, err
	}
	return FromUint128(n)
}

// MustParse is Parse, panicking on error. Intended for tests and constants.
func MustParse(s string) ULID {
	u, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("ulid: MustParse(%q): %v", s, err))
	}
	return u
}

// FromUint128 wraps a raw 128-bit value, rejecting zero.
func FromUint128(n Uint128) (ULID, error) {
	if n.IsZero() {
		return ULID{}, ErrInvalidZero
	}
	return ULID{n: n}, nil
}

// FromParts composes a ULID from a millisecond timestamp (48 bits) and a
// randomness value (80 bits). Fails with ErrTimestampOutOfRange or
// ErrRandomnessOutOfRange when a part exceeds its width, and with
// ErrInvalidZero when both parts are zero.
func FromParts(timestamp uint64, randomness Uint128) (ULID, error) {
	n, err := composeParts(timestamp, randomness)
	if err != nil {
		return ULID{}, err
	}
	return FromUint128(n)
}

func composeParts(timestamp uint64, randomness Uint128) (Uint128, error) {
	if timestamp > maxTimestamp {
		return Uint128{}, ErrTimestampOutOfRange
	}
	if randomness.Cmp(randomMask) > 0 {
		return Uint128{}, ErrRandomnessOutOfRange
	}
	return Uint128{Hi: timestamp << (randomBits - 64)}.Or(randomness), nil
}

// FromBytes interprets b as a big-endian 128-bit value, rejecting zero.
func FromBytes(b [16]byte) (ULID, error) {
	return FromUint128(Uint128FromBytes(b))
}

// ParseBytes is FromBytes for a slice, failing with ErrTooShort/ErrTooLong
// when b is not exactly 16 bytes.
func ParseBytes(b []byte) (ULID, error) {
	switch {
	case len(b) < 16:
		return ULID{}, ErrTooShort
	case len(b) > 16:
		return ULID{}, ErrTooLong
	}
	return FromBytes([16]byte(b))
}

// String returns the canonical 26-character form.
func (u ULID) String() string { return encode(u.n) }

// AppendFormat appends the canonical 26-character form to dst.
func (u ULID) AppendFormat(dst []byte) []byte { return appendEncode(dst, u.n) }

// Bytes returns the big-endian 16-byte binary form.
func (u ULID) Bytes() [16]byte { return u.n.Bytes() }

// Uint128 returns the raw 128-bit value.
func (u ULID) Uint128() Uint128 { return u.n }

// Timestamp returns the timestamp part in milliseconds since the Unix epoch.
func (u ULID) Timestamp() uint64 { return u.n.Rsh(randomBits).Lo }

// Time returns the timestamp part as a time.Time in UTC.
func (u ULID) Time() time.Time {
	return time.UnixMilli(int64(u.Timestamp())).UTC()
}

// Randomness returns the 80-bit random part.
func (u ULID) Randomness() Uint128 { return u.n.And(randomMask) }

// Parts returns the timestamp and randomness parts.
func (u ULID) Parts() (timestamp uint64, randomness Uint128) {
	return u.Timestamp(), u.Randomness()
}

// Compare returns -1, 0 or 1 by 128-bit integer order, which is also the
// lexicographic order of the string form.
func (u ULID) Compare(v ULID) int { return u.n.Cmp(v.n) }

// Zeroable converts to the zero-allowed domain. Always succeeds.
func (u ULID) Zeroable() ZeroableULID { return ZeroableULID{n: u.n} }

// FromZeroable converts from the zero-allowed domain, failing with
// ErrInvalidZero only for the literal zero value.
func FromZeroable(z ZeroableULID) (ULID, error) {
	return FromUint128(z.n)
}

// MarshalText implements encoding.TextMarshaler; the canonical string form.
// This is also what encoding/json uses.
func (u ULID) MarshalText() ([]byte, error) {
	return appendEncode(nil, u.n), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *ULID) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler; 16 bytes, big-endian.
func (u ULID) MarshalBinary() ([]byte, error) {
	b := u.n.Bytes()
	return b[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (u *ULID) UnmarshalBinary(b []byte) error {
	parsed, err := ParseBytes(b)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Value implements driver.Valuer, storing the canonical string form.
func (u ULID) Value() (driver.Value, error) {
	return u.String(), nil
}

// Scan implements sql.Scanner. It accepts the 26-character string form
// (as string or []byte) and the raw 16-byte binary form.
func (u *ULID) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return u.UnmarshalText([]byte(v))
	case []byte:
		if len(v) == 16 {
			return u.UnmarshalBinary(v)
		}
		return u.UnmarshalText(v)
	case nil:
		return ErrInvalidZero
	}
	return fmt.Errorf("ulid: cannot scan %T", src)
}
