package ulid

// Crockford-style base32 codec. Each character carries 5 bits, MSB-first;
// 26 characters cover 130 bits, so the first character is restricted to 0..7
// to keep every valid string inside the 128-bit range.

// Alphabet is the canonical encoding alphabet. The letters I, L, O and U are
// excluded to avoid visual ambiguity.
const Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// EncodedLen is the length of a ULID string.
const EncodedLen = 26

// decodeTable maps input bytes to 5-bit values. Lowercase letters decode like
// their uppercase forms, and the ambiguous letters alias their look-alike
// digits (i/l -> 1, o -> 0). -1 marks an invalid byte.
var decodeTable [256]int8

func init() {
	for i := range decodeTable {
		decodeTable[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		c := Alphabet[i]
		decodeTable[c] = int8(i)
		if c >= 'A' && c <= 'Z' {
			decodeTable[c+'a'-'A'] = int8(i)
		}
	}
	for _, c := range []byte("iIlL") {
		decodeTable[c] = 1
	}
	for _, c := range []byte("oO") {
		decodeTable[c] = 0
	}
}

// checkLength gates every textual operation before any character inspection.
func checkLength(s string) error {
	switch {
	case len(s) < EncodedLen:
		return ErrTooShort
	case len(s) > EncodedLen:
		return ErrTooLong
	}
	return nil
}

// appendEncode appends the 26-character form of n to dst. Total: never fails.
func appendEncode(dst []byte, n Uint128) []byte {
	var buf [EncodedLen]byte
	for i := EncodedLen - 1; i >= 0; i-- {
		buf[i] = Alphabet[n.Lo&0x1F]
		n = n.Rsh(5)
	}
	return append(dst, buf[:]...)
}

func encode(n Uint128) string {
	return string(appendEncode(nil, n))
}

// decode parses a length-checked 26-character string. The left-to-right
// shift-accumulate together with the 0..7 restriction on the first character
// enforces the 128-bit range without a separate check.
func decode(s string) (Uint128, error) {
	d := decodeTable[s[0]]
	if d < 0 || d > 7 {
		return Uint128{}, ErrInvalidChar
	}
	n := Uint128{Lo: uint64(d)}
	for i := 1; i < EncodedLen; i++ {
		d := decodeTable[s[i]]
		if d < 0 {
			return Uint128{}, ErrInvalidChar
		}
		n = n.Lsh(5)
		n.Lo |= uint64(d)
	}
	return n, nil
}

// Validate checks that s is a well-formed ULID string: exactly 26 characters,
// legal character set, and a first character that keeps the value inside 128
// bits. Non-canonical casing and ambiguous letters are accepted; use
// Canonicalize to normalize them.
func Validate(s string) error {
	if err := checkLength(s); err != nil {
		return err
	}
	if !validFirstChar(s[0]) {
		return ErrInvalidChar
	}
	for i := 1; i < EncodedLen; i++ {
		if !validChar(s[i]) {
			return ErrInvalidChar
		}
	}
	return nil
}

// Canonicalize normalizes a ULID string to its canonical uppercase form:
// i, l and their uppercase forms become 1, o and O become 0, everything else
// is uppercased. When s is already canonical it is returned as-is, without
// allocating.
func Canonicalize(s string) (string, error) {
	if err := checkLength(s); err != nil {
		return "", err
	}
	var buf [EncodedLen]byte
	c, err := normalizeFirstChar(s[0])
	if err != nil {
		return "", err
	}
	buf[0] = c
	changed := c != s[0]
	for i := 1; i < EncodedLen; i++ {
		c, err := normalizeChar(s[i])
		if err != nil {
			return "", err
		}
		buf[i] = c
		changed = changed || c != s[i]
	}
	if !changed {
		return s, nil
	}
	return string(buf[:]), nil
}

func validFirstChar(c byte) bool {
	switch c {
	case 'o', 'i', 'l', 'O', 'I', 'L':
		return true
	}
	return c >= '0' && c <= '7'
}

func validChar(c byte) bool {
	return isAlphanumeric(c) && c != 'u' && c != 'U'
}

func normalizeFirstChar(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '7':
		return c, nil
	case c == 'i' || c == 'I' || c == 'l' || c == 'L':
		return '1', nil
	case c == 'o' || c == 'O':
		return '0', nil
	}
	return 0, ErrInvalidChar
}

func normalizeChar(c byte) (byte, error) {
	switch {
	case c == 'i' || c == 'I' || c == 'l' || c == 'L':
		return '1', nil
	case c == 'o' || c == 'O':
		return '0', nil
	case c == 'u' || c == 'U':
		return 0, ErrInvalidChar
	case c >= 'a' && c <= 'z':
		return c - 'a' + 'A', nil
	case isAlphanumeric(c):
		return c, nil
	}
	return 0, ErrInvalidChar
}

func isAlphanumeric(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}
