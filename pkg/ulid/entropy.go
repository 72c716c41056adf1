package ulid

import (
	crand "crypto/rand"
	"math/rand/v2"
	"time"
)

// EntropySource supplies the two nondeterministic inputs of ULID generation.
// Both methods report false when no value is available.
//
// The generator is the only caller and serializes all calls behind its lock,
// so implementations do not need to be safe for concurrent use by themselves.
type EntropySource interface {
	// Timestamp returns the current time in milliseconds since the Unix epoch.
	Timestamp() (uint64, bool)

	// Random returns a uniformly distributed value in [min, max]. Answers
	// outside the requested range are treated as failures by the generator,
	// never clamped.
	Random(min, max Uint128) (Uint128, bool)
}

// NoEntropy is an EntropySource that never yields a timestamp or random
// value. Installing it guarantees that no ULID can be generated: TryNew
// always reports false and New panics. It is the deliberate safety default
// for builds that must not mint identifiers.
var NoEntropy EntropySource = noEntropy{}

type noEntropy struct{}

func (noEntropy) Timestamp() (uint64, bool)           { return 0, false }
func (noEntropy) Random(_, _ Uint128) (Uint128, bool) { return Uint128{}, false }

// StandardEntropy reads the system clock and draws from a ChaCha8 PRNG
// seeded from the OS entropy pool on first use and reused for the process
// lifetime. It is the default source.
var StandardEntropy EntropySource = &standardEntropy{}

type standardEntropy struct {
	rng *rand.Rand
}

func (s *standardEntropy) Timestamp() (uint64, bool) {
	ms := time.Now().UnixMilli()
	if ms < 0 {
		return 0, false
	}
	return uint64(ms), true
}

func (s *standardEntropy) Random(min, max Uint128) (Uint128, bool) {
	if max.Cmp(min) < 0 {
		return Uint128{}, false
	}
	if s.rng == nil {
		var seed [32]byte
		if _, err := crand.Read(seed[:]); err != nil {
			return Uint128{}, false
		}
		s.rng = rand.New(rand.NewChaCha8(seed))
	}

	// Uniform draw over [min, max] by rejection sampling on the smallest
	// power-of-two window covering the span. Acceptance probability is at
	// least 1/2 per round.
	span := max.Sub(min)
	nbits := uint(128 - span.leadingZeros())
	for {
		r := Uint128{Hi: s.rng.Uint64(), Lo: s.rng.Uint64()}
		r = r.maskLow(nbits)
		if r.Cmp(span) <= 0 {
			return min.Add(r), true
		}
	}
}
