package ulid

import "sync"

const (
	timestampBits = 48
	randomBits    = 80

	// maxTimestamp (2^48-1) is reserved and never produced: it keeps a full
	// 80-bit window of headroom above every timestamp the generator emits.
	maxTimestamp = uint64(1)<<timestampBits - 1

	// reservedRandom values at the top of the random space are never chosen
	// by a fresh draw. They are reachable only through the increment path,
	// guaranteeing at least 10^10 ULIDs per millisecond before the same
	// millisecond can exhaust.
	reservedRandom = 10_000_000_000
)

var (
	randomMask    = Uint128{Hi: 1<<(randomBits-64) - 1, Lo: ^uint64(0)}
	randomCeil    = Uint128{Hi: 1<<(randomBits-64) - 1, Lo: ^uint64(0) - reservedRandom}
	timestampMask = Uint128{Hi: ^(uint64(1)<<(randomBits-64) - 1)}
	one           = Uint128{Lo: 1}
)

// generator holds the process-wide generation state. All generation and
// source swaps serialize on mu; last is only assigned after every check has
// passed, so a panicking call can never leave torn state behind.
type generator struct {
	mu     sync.Mutex
	source EntropySource
	last   Uint128
}

var gen = generator{source: StandardEntropy}

// generate returns the next ULID value, or false when none is available
// (clock unavailable or at the reserved maximum, entropy exhausted or out of
// range, or the 128-bit value space used up within one millisecond).
func (g *generator) generate() (Uint128, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now, ok := g.now()
	if !ok {
		return Uint128{}, false
	}

	candidate := Uint128{Hi: now << (randomBits - 64)} // now << 80
	lastTimestamp := g.last.And(timestampMask)

	var next Uint128
	if candidate.Cmp(lastTimestamp) > 0 {
		// Fresh millisecond window. The draw starts at 1 so the composed
		// value is non-zero even at timestamp 0, and stops short of the
		// reserved headroom.
		r, ok := g.draw(one, randomCeil)
		if !ok {
			return Uint128{}, false
		}
		next = candidate.Or(r)
	} else {
		// Clock stood still or regressed: continue the last window.
		next, ok = g.last.Inc()
		if !ok {
			return Uint128{}, false
		}
	}

	if next.Cmp(g.last) <= 0 {
		return Uint128{}, false
	}
	g.last = next
	return next, true
}

func (g *generator) now() (uint64, bool) {
	ms, ok := g.source.Timestamp()
	if !ok || ms >= maxTimestamp {
		return 0, false
	}
	return ms, true
}

func (g *generator) draw(min, max Uint128) (Uint128, bool) {
	r, ok := g.source.Random(min, max)
	if !ok || r.Cmp(min) < 0 || r.Cmp(max) > 0 {
		return Uint128{}, false
	}
	return r, true
}

// SetEntropySource installs src as the process-wide entropy source and
// returns the previously active one, so it can be restored. The swap
// serializes with in-flight generation on the same lock.
func SetEntropySource(src EntropySource) EntropySource {
	gen.mu.Lock()
	defer gen.mu.Unlock()
	prev := gen.source
	gen.source = src
	return prev
}

// SetFloor raises the generator's lower bound so that every subsequently
// generated ULID compares strictly greater than u. Lower floors are ignored;
// the bound only ever moves up. Services that persist issued ULIDs use this
// to extend monotonicity across restarts.
func SetFloor(u ULID) {
	gen.mu.Lock()
	defer gen.mu.Unlock()
	if u.n.Cmp(gen.last) > 0 {
		gen.last = u.n
	}
}
