// apps/go-server/internal/game/options.go
//
// Construction options shared by Drawer and Card.
// Notes:
//   - WithSeed pins the random source for reproducible games and tests.
//   - Unseeded values draw their seed from crypto/rand so separate
//     processes never replay the same shuffle.

package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// Option configures a Drawer or Card at construction (or reset) time.
type Option func(*options)

type options struct {
	seed   int64
	seeded bool
	free   bool
}

// WithSeed pins the random source. Two values built with the same seed
// produce identical shuffles and draw sequences.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithFreeCenter pre-marks the middle cell of a card. Only meaningful
// for odd board sizes; NewCard rejects it otherwise. Drawers ignore it.
func WithFreeCenter() Option {
	return func(o *options) { o.free = true }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// rng builds the random source for this option set, falling back to an
// entropy-based seed when none was pinned.
func (o options) rng() *rand.Rand {
	if o.seeded {
		return rand.New(rand.NewSource(o.seed))
	}
	return rand.New(rand.NewSource(randomSeed()))
}

// randomSeed produces a process-unique seed from crypto/rand. The clock
// fallback only matters if the OS entropy source is unreadable.
func randomSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
