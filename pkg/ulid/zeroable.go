package ulid

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// ZeroableULID is an identifier from the zero-allowed domain: it can hold the
// all-zero value "00000000000000000000000000", which some systems use to mean
// "absent". For everything else it behaves exactly like ULID; generated
// values are never zero. The Go zero value is the zero ULID.
type ZeroableULID struct {
	n Uint128
}

// Zero returns the all-zero ZeroableULID. Equivalent to ZeroableULID{}.
func Zero() ZeroableULID { return ZeroableULID{} }

// NewZeroable generates the next ULID in the zero-allowed domain. The value
// shares the process-wide generator with New, so the monotonicity guarantee
// spans both types. Panics when no ULID is available.
func NewZeroable() ZeroableULID {
	return New().Zeroable()
}

// TryNewZeroable is NewZeroable, reporting false instead of panicking.
func TryNewZeroable() (ZeroableULID, bool) {
	u, ok := TryNew()
	if !ok {
		return ZeroableULID{}, false
	}
	return u.Zeroable(), true
}

// ParseZeroable decodes a 26-character ULID string, accepting the all-zero
// string. Input is case-insensitive with i/l/o aliasing, like Parse.
func ParseZeroable(s string) (ZeroableULID, error) {
	if err := checkLength(s); err != nil {
		return ZeroableULID{}, err
	}
	n, err := decode(s)
	if err != nil {
		return ZeroableULID{}, err
	}
	return ZeroableULID{n: n}, nil
}

// MustParseZeroable is ParseZeroable, panicking on error.
func MustParseZeroable(s string) ZeroableULID {
	z, err := ParseZeroable(s)
	if err != nil {
		panic(fmt.Sprintf("ulid: MustParseZeroable(%q): %v", s, err))
	}
	return z
}

// ZeroableFromUint128 wraps a raw 128-bit value. Zero is allowed.
func ZeroableFromUint128(n Uint128) ZeroableULID { return ZeroableULID{n: n} }

// ZeroableFromParts composes a ZeroableULID from a millisecond timestamp (48
// bits) and a randomness value (80 bits). Both parts zero yields the zero
// ULID; parts exceeding their width fail like FromParts.
func ZeroableFromParts(timestamp uint64, randomness Uint128) (ZeroableULID, error) {
	n, err := composeParts(timestamp, randomness)
	if err != nil {
		return ZeroableULID{}, err
	}
	return ZeroableULID{n: n}, nil
}

// ZeroableFromBytes interprets b as a big-endian 128-bit value.
func ZeroableFromBytes(b [16]byte) ZeroableULID {
	return ZeroableULID{n: Uint128FromBytes(b)}
}

// ParseZeroableBytes is ZeroableFromBytes for a slice, failing with
// ErrTooShort/ErrTooLong when b is not exactly 16 bytes.
func ParseZeroableBytes(b []byte) (ZeroableULID, error) {
	switch {
	case len(b) < 16:
		return ZeroableULID{}, ErrTooShort
	case len(b) > 16:
		return ZeroableULID{}, ErrTooLong
	}
	return ZeroableFromBytes([16]byte(b)), nil
}

// IsZero reports whether z is the all-zero ULID.
func (z ZeroableULID) IsZero() bool { return z.n.IsZero() }

// NonZero converts to the non-zero domain, failing with ErrInvalidZero only
// for the literal zero value.
func (z ZeroableULID) NonZero() (ULID, error) { return FromZeroable(z) }

// String returns the canonical 26-character form.
func (z ZeroableULID) String() string { return encode(z.n) }

// AppendFormat appends the canonical 26-character form to dst.
func (z ZeroableULID) AppendFormat(dst []byte) []byte { return appendEncode(dst, z.n) }

// Bytes returns the big-endian 16-byte binary form.
func (z ZeroableULID) Bytes() [16]byte { return z.n.Bytes() }

// Uint128 returns the raw 128-bit value.
func (z ZeroableULID) Uint128() Uint128 { return z.n }

// Timestamp returns the timestamp part in milliseconds since the Unix epoch.
func (z ZeroableULID) Timestamp() uint64 { return z.n.Rsh(randomBits).Lo }

// Time returns the timestamp part as a time.Time in UTC.
func (z ZeroableULID) Time() time.Time {
	return time.UnixMilli(int64(z.Timestamp())).UTC()
}

// Randomness returns the 80-bit random part.
func (z ZeroableULID) Randomness() Uint128 { return z.n.And(randomMask) }

// Parts returns the timestamp and randomness parts.
func (z ZeroableULID) Parts() (timestamp uint64, randomness Uint128) {
	return z.Timestamp(), z.Randomness()
}

// Compare returns -1, 0 or 1 by 128-bit integer order.
func (z ZeroableULID) Compare(v ZeroableULID) int { return z.n.Cmp(v.n) }

// MarshalText implements encoding.TextMarshaler; the canonical string form.
func (z ZeroableULID) MarshalText() ([]byte, error) {
	return appendEncode(nil, z.n), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *ZeroableULID) UnmarshalText(b []byte) error {
	parsed, err := ParseZeroable(string(b))
	if err != nil {
		return err
	}
	*z = parsed
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler; 16 bytes, big-endian.
func (z ZeroableULID) MarshalBinary() ([]byte, error) {
	b := z.n.Bytes()
	return b[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (z *ZeroableULID) UnmarshalBinary(b []byte) error {
	parsed, err := ParseZeroableBytes(b)
	if err != nil {
		return err
	}
	*z = parsed
	return nil
}

// Value implements driver.Valuer, storing the canonical string form.
func (z ZeroableULID) Value() (driver.Value, error) {
	return z.String(), nil
}

// Scan implements sql.Scanner. It accepts the 26-character string form (as
// string or []byte), the raw 16-byte binary form, and nil for the zero ULID.
func (z *ZeroableULID) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return z.UnmarshalText([]byte(v))
	case []byte:
		if len(v) == 16 {
			return z.UnmarshalBinary(v)
		}
		return z.UnmarshalText(v)
	case nil:
		*z = ZeroableULID{}
		return nil
	}
	return fmt.Errorf("ulid: cannot scan %T", src)
}
