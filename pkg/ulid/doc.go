// Package ulid generates and manipulates Universally Unique Lexicographically
// Sortable Identifiers (ULIDs).
//
// # Format
//
// A ULID is a 128-bit value, partitioned as a 48-bit millisecond timestamp
// followed by 80 bits of randomness, most-significant bits first. The textual
// form is a fixed 26-character Crockford base32 string that sorts exactly like
// the underlying integer. The binary form is 16 bytes, big-endian.
//
// # Guarantees
//
// Every ULID produced by the in-process generator is unique and strictly
// monotonically increasing, even under concurrent use, even when the system
// clock stands still or regresses, and even in pathological clock/entropy
// conditions. The generator never silently wraps into a duplicate: when it
// cannot uphold the guarantee it reports that no ULID is available instead.
//
// Fresh random draws leave the top 10^10 values of the 80-bit random space
// untouched, so at least ten billion ULIDs per millisecond can be produced
// before the same-millisecond increment path could exhaust.
//
// # Types
//
//	u := ulid.New()        // ULID, never zero
//	z := ulid.Zero()       // ZeroableULID, the all-zero ULID
//
// ULID is the preferred type; it can never hold the all-zero value
// "00000000000000000000000000". ZeroableULID admits zero for interop with
// systems that use a zero ULID to mean "absent".
//
// # Entropy
//
// Generation reads the wall clock and random bits from a process-wide
// EntropySource. The default StandardEntropy uses the system clock and a
// ChaCha8 PRNG seeded once from the OS. SetEntropySource swaps in a custom
// source (for tests, or for platforms without a usable clock) and returns the
// displaced one.
package ulid
