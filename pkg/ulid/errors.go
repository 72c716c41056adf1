package ulid

import "errors"

// Errors reported when constructing ULIDs out of foreign data. They are
// sentinel values, comparable with errors.Is.
var (
	// ErrTooShort is returned when a textual or binary input is shorter
	// than the fixed ULID length.
	ErrTooShort = errors.New("ulid: input too short")

	// ErrTooLong is returned when a textual or binary input is longer
	// than the fixed ULID length.
	ErrTooLong = errors.New("ulid: input too long")

	// ErrInvalidChar is returned when a ULID string contains a character
	// outside the accepted alphabet, or its first character would encode a
	// value above the 128-bit range.
	ErrInvalidChar = errors.New("ulid: invalid character")

	// ErrInvalidZero is returned when the all-zero value reaches a
	// constructor of the non-zero ULID type.
	ErrInvalidZero = errors.New("ulid: invalid zero value")

	// ErrTimestampOutOfRange is returned by FromParts when the timestamp
	// does not fit in 48 bits.
	ErrTimestampOutOfRange = errors.New("ulid: timestamp out of range")

	// ErrRandomnessOutOfRange is returned by FromParts when the randomness
	// does not fit in 80 bits.
	ErrRandomnessOutOfRange = errors.New("ulid: randomness out of range")
)
