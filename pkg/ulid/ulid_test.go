package ulid

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseRoundTrip(t *testing.T) {
	installSource(t, &fixedSource{timestamp: 1234, random: Uint128{Lo: 99}})
	for i := 0; i < 50; i++ {
		u := New()
		got, err := Parse(u.String())
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if got != u {
			t.Fatalf("round trip: %v != %v", got, u)
		}
	}
}

func TestParseCaseInsensitive(t *testing.T) {
	u := MustParse("01JB07NQ643XZXVHZDY0JNYR02")
	v, err := Parse(strings.ToLower(u.String()))
	if err != nil {
		t.Fatalf("parse lowercase: %v", err)
	}
	if v != u {
		t.Fatalf("lowercase parse mismatch")
	}
}

func TestParseZero(t *testing.T) {
	if _, err := Parse("00000000000000000000000000"); !errors.Is(err, ErrInvalidZero) {
		t.Fatalf("zero string must fail for ULID, got %v", err)
	}
	z, err := ParseZeroable("00000000000000000000000000")
	if err != nil {
		t.Fatalf("zero string must parse as ZeroableULID: %v", err)
	}
	if !z.IsZero() {
		t.Fatalf("expected zero value")
	}
	z2, err := ParseZeroable("oooooooooooooooooooooooooo")
	if err != nil || !z2.IsZero() {
		t.Fatalf("o-alias zero: %v %v", z2, err)
	}
}

func TestParseLengths(t *testing.T) {
	cases := []struct {
		s    string
		want error
	}{
		{"", ErrTooShort},
		{"1234567890123456789012345", ErrTooShort},
		{"123456789012345678901234567", ErrTooLong},
		{"zzzzzzzzzzzzzzzzzzzzzzzzzz", ErrInvalidChar},
	}
	for _, c := range cases {
		if _, err := Parse(c.s); !errors.Is(err, c.want) {
			t.Fatalf("Parse(%q) = %v, want %v", c.s, err, c.want)
		}
		if _, err := ParseZeroable(c.s); !errors.Is(err, c.want) {
			t.Fatalf("ParseZeroable(%q) = %v, want %v", c.s, err, c.want)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min.Uint128() != (Uint128{Lo: 1}) {
		t.Fatalf("Min should be 1")
	}
	if Max.String() != "7ZZZZZZZZZZZZZZZZZZZZZZZZZ" {
		t.Fatalf("Max string: %q", Max.String())
	}
	if u := MustParse("7zzzzzzzzzzzzzzzzzzzzzzzzz"); u != Max {
		t.Fatalf("parsed max mismatch")
	}
	if _, err := Parse("80000000000000000000000000"); !errors.Is(err, ErrInvalidChar) {
		t.Fatalf("values above 2^128-1 are unrepresentable")
	}
}

func TestFromParts(t *testing.T) {
	if _, err := FromParts(0, Uint128{}); !errors.Is(err, ErrInvalidZero) {
		t.Fatalf("FromParts(0, 0) must fail for ULID")
	}
	z, err := ZeroableFromParts(0, Uint128{})
	if err != nil || !z.IsZero() {
		t.Fatalf("ZeroableFromParts(0, 0): %v %v", z, err)
	}

	u, err := FromParts(0, Uint128{Lo: 1})
	if err != nil || u != Min {
		t.Fatalf("FromParts(0, 1): %v %v", u, err)
	}

	if _, err := FromParts(maxTimestamp, randomMask); err != nil {
		t.Fatalf("max parts should compose: %v", err)
	}
	if _, err := FromParts(maxTimestamp+1, Uint128{Lo: 1}); !errors.Is(err, ErrTimestampOutOfRange) {
		t.Fatalf("timestamp 2^48 must fail")
	}
	over, _ := randomMask.Inc()
	if _, err := FromParts(1, over); !errors.Is(err, ErrRandomnessOutOfRange) {
		t.Fatalf("randomness 2^80 must fail")
	}

	ts, rnd := uint64(1234567), Uint128{Hi: 0xABC, Lo: 0xDEF}
	u, err = FromParts(ts, rnd)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if gotTS, gotRnd := u.Parts(); gotTS != ts || gotRnd != rnd {
		t.Fatalf("parts round trip: %d %v", gotTS, gotRnd)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	want := [16]byte{1, 146, 192, 89, 108, 209, 79, 212, 47, 92, 221, 28, 194, 213, 67, 106}
	u := MustParse("01JB05JV6H9ZA2YQ6X3K1DAGVA")
	if u.Bytes() != want {
		t.Fatalf("bytes: %v", u.Bytes())
	}
	v, err := FromBytes(want)
	if err != nil || v != u {
		t.Fatalf("from bytes: %v %v", v, err)
	}

	if _, err := FromBytes([16]byte{}); !errors.Is(err, ErrInvalidZero) {
		t.Fatalf("zero bytes must fail for ULID")
	}
	if _, err := ParseBytes(want[:15]); !errors.Is(err, ErrTooShort) {
		t.Fatalf("15 bytes must fail")
	}
	if _, err := ParseBytes(append(want[:], 0)); !errors.Is(err, ErrTooLong) {
		t.Fatalf("17 bytes must fail")
	}
}

func TestDomainConversions(t *testing.T) {
	installSource(t, &fixedSource{timestamp: 7, random: Uint128{Lo: 3}})

	u := New()
	z := u.Zeroable()
	if z.Uint128() != u.Uint128() {
		t.Fatalf("non-zero to zeroable must preserve the value")
	}
	back, err := z.NonZero()
	if err != nil || back != u {
		t.Fatalf("zeroable to non-zero: %v %v", back, err)
	}

	if _, err := Zero().NonZero(); !errors.Is(err, ErrInvalidZero) {
		t.Fatalf("zero must not convert to the non-zero domain")
	}
}

func TestTime(t *testing.T) {
	u, err := FromParts(1_700_000_000_000, Uint128{Lo: 1})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	want := time.UnixMilli(1_700_000_000_000).UTC()
	if !u.Time().Equal(want) {
		t.Fatalf("time: %v", u.Time())
	}

	// The full 48-bit range (year 10889) is representable.
	far, err := FromParts(maxTimestamp, Uint128{Lo: 1})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if far.Time().Year() != 10889 {
		t.Fatalf("max timestamp year: %d", far.Time().Year())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	type doc struct {
		ID   ULID         `json:"id"`
		Prev ZeroableULID `json:"prev"`
	}
	installSource(t, &fixedSource{timestamp: 42, random: Uint128{Lo: 42}})

	d1 := doc{ID: New(), Prev: Zero()}
	b, err := json.Marshal(d1)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Contains(b, []byte(d1.ID.String())) {
		t.Fatalf("json should carry the string form: %s", b)
	}
	var d2 doc
	if err := json.Unmarshal(b, &d2); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d2 != d1 {
		t.Fatalf("json round trip: %+v != %+v", d2, d1)
	}

	var d3 doc
	if err := json.Unmarshal([]byte(`{"id":"00000000000000000000000000","prev":"00000000000000000000000000"}`), &d3); err == nil {
		t.Fatalf("zero string must not unmarshal into ULID")
	}
}

func TestBinaryMarshal(t *testing.T) {
	u := MustParse("01JB05JV6H9ZA2YQ6X3K1DAGVA")
	b, err := u.MarshalBinary()
	if err != nil || len(b) != 16 {
		t.Fatalf("marshal binary: %v %d", err, len(b))
	}
	var v ULID
	if err := v.UnmarshalBinary(b); err != nil || v != u {
		t.Fatalf("unmarshal binary: %v %v", v, err)
	}
}

func TestSQLValueScan(t *testing.T) {
	u := MustParse("01JB07NQ643XZXVHZDY0JNYR02")

	val, err := u.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	s, ok := val.(string)
	if !ok || s != u.String() {
		t.Fatalf("driver value: %v", val)
	}

	var fromString ULID
	if err := fromString.Scan(s); err != nil || fromString != u {
		t.Fatalf("scan string: %v %v", fromString, err)
	}
	var fromText ULID
	if err := fromText.Scan([]byte(s)); err != nil || fromText != u {
		t.Fatalf("scan text bytes: %v %v", fromText, err)
	}
	raw := u.Bytes()
	var fromRaw ULID
	if err := fromRaw.Scan(raw[:]); err != nil || fromRaw != u {
		t.Fatalf("scan raw bytes: %v %v", fromRaw, err)
	}
	var fromNil ULID
	if err := fromNil.Scan(nil); !errors.Is(err, ErrInvalidZero) {
		t.Fatalf("scan nil into ULID: %v", err)
	}

	var z ZeroableULID
	if err := z.Scan(nil); err != nil || !z.IsZero() {
		t.Fatalf("scan nil into ZeroableULID: %v %v", z, err)
	}
	var bad ULID
	if err := bad.Scan(3.14); err == nil {
		t.Fatalf("scan float must fail")
	}
}

func TestAppendFormat(t *testing.T) {
	u := MustParse("01JB07NQ643XZXVHZDY0JNYR02")
	out := u.AppendFormat([]byte("id="))
	if string(out) != "id="+u.String() {
		t.Fatalf("append: %q", out)
	}
}

func TestStringLength(t *testing.T) {
	installSource(t, &fixedSource{timestamp: 9, random: Uint128{Lo: 9}})
	if len(New().String()) != EncodedLen {
		t.Fatalf("string length")
	}
	if len(Zero().String()) != EncodedLen {
		t.Fatalf("zero string length")
	}
}

func TestZeroableGenerateNeverZero(t *testing.T) {
	installSource(t, &fixedSource{timestamp: 3, random: Uint128{Lo: 1}})
	for i := 0; i < 10; i++ {
		z, ok := TryNewZeroable()
		if !ok || z.IsZero() {
			t.Fatalf("generated zeroable must be non-zero: %v ok=%v", z, ok)
		}
	}
}
