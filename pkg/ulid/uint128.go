package ulid

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// Uint128 is an unsigned 128-bit integer, the raw value underneath a ULID.
// The zero value is the number 0.
type Uint128 struct {
	Hi, Lo uint64
}

// Uint128FromBytes interprets b as a big-endian 128-bit integer.
func Uint128FromBytes(b [16]byte) Uint128 {
	return Uint128{
		Hi: binary.BigEndian.Uint64(b[0:8]),
		Lo: binary.BigEndian.Uint64(b[8:16]),
	}
}

// Bytes returns the big-endian 16-byte representation.
func (u Uint128) Bytes() [16]byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], u.Hi)
	binary.BigEndian.PutUint64(b[8:16], u.Lo)
	return b
}

// IsZero reports whether u == 0.
func (u Uint128) IsZero() bool { return u.Hi == 0 && u.Lo == 0 }

// Cmp returns -1, 0 or 1 depending on whether u is less than, equal to or
// greater than v.
func (u Uint128) Cmp(v Uint128) int {
	switch {
	case u.Hi != v.Hi:
		if u.Hi < v.Hi {
			return -1
		}
		return 1
	case u.Lo != v.Lo:
		if u.Lo < v.Lo {
			return -1
		}
		return 1
	}
	return 0
}

// Add returns u+v, wrapping on overflow.
func (u Uint128) Add(v Uint128) Uint128 {
	lo, carry := bits.Add64(u.Lo, v.Lo, 0)
	hi, _ := bits.Add64(u.Hi, v.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}
}

// Sub returns u-v, wrapping on underflow.
func (u Uint128) Sub(v Uint128) Uint128 {
	lo, borrow := bits.Sub64(u.Lo, v.Lo, 0)
	hi, _ := bits.Sub64(u.Hi, v.Hi, borrow)
	return Uint128{Hi: hi, Lo: lo}
}

// Inc returns u+1 and true, or u and false if the addition would overflow.
func (u Uint128) Inc() (Uint128, bool) {
	lo, carry := bits.Add64(u.Lo, 1, 0)
	hi, carry := bits.Add64(u.Hi, 0, carry)
	if carry != 0 {
		return u, false
	}
	return Uint128{Hi: hi, Lo: lo}, true
}

// And returns u & v.
func (u Uint128) And(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi & v.Hi, Lo: u.Lo & v.Lo}
}

// Or returns u | v.
func (u Uint128) Or(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi | v.Hi, Lo: u.Lo | v.Lo}
}

// Lsh returns u << n. Shifts of 128 or more yield 0.
func (u Uint128) Lsh(n uint) Uint128 {
	if n >= 64 {
		return Uint128{Hi: u.Lo << (n - 64)}
	}
	// Go defines x>>64 as 0 for 64-bit x, so n==0 is safe here.
	return Uint128{Hi: u.Hi<<n | u.Lo>>(64-n), Lo: u.Lo << n}
}

// Rsh returns u >> n. Shifts of 128 or more yield 0.
func (u Uint128) Rsh(n uint) Uint128 {
	if n >= 64 {
		return Uint128{Lo: u.Hi >> (n - 64)}
	}
	return Uint128{Hi: u.Hi >> n, Lo: u.Lo>>n | u.Hi<<(64-n)}
}

// leadingZeros returns the number of leading zero bits in u.
func (u Uint128) leadingZeros() int {
	if u.Hi != 0 {
		return bits.LeadingZeros64(u.Hi)
	}
	return 64 + bits.LeadingZeros64(u.Lo)
}

// maskLow keeps the low n bits of u and clears the rest.
func (u Uint128) maskLow(n uint) Uint128 {
	switch {
	case n >= 128:
		return u
	case n >= 64:
		return Uint128{Hi: u.Hi & (1<<(n-64) - 1), Lo: u.Lo}
	default:
		return Uint128{Lo: u.Lo & (1<<n - 1)}
	}
}

// String formats u as zero-padded hexadecimal, for debugging.
func (u Uint128) String() string {
	return fmt.Sprintf("%016x%016x", u.Hi, u.Lo)
}
