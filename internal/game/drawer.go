// apps/go-server/internal/game/drawer.go
//
// Number drawer: deals 1..poolMax in a shuffled order without repeats.
// Responsibilities:
//   - Build a shuffled pile at construction and on Reset.
//   - Pop one number per Draw and track the history, oldest first.
//   - Guarantee no repeats even if the pile is ever rebuilt mid-cycle.

package game

import (
	"fmt"
	"math/rand"
)

// Drawer deals numbers from a finite pool without replacement.
// It is not safe for concurrent use; Session serializes access to it.
type Drawer struct {
	poolMax int
	rng     *rand.Rand
	pile    []int
	drawn   []int
	seen    map[int]bool
}

// NewDrawer builds a drawer over the pool 1..poolMax. Pass WithSeed for
// a reproducible draw order.
func NewDrawer(poolMax int, opts ...Option) (*Drawer, error) {
	if poolMax < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPool, poolMax)
	}
	d := &Drawer{poolMax: poolMax}
	d.Reset(opts...)
	return d, nil
}

// Reset rebuilds the full shuffled pile and clears the draw history.
// With WithSeed the generator is reseeded so the next cycle replays
// exactly; without options the existing generator keeps its stream, so
// two drawers built from the same seed stay aligned across resets.
func (d *Drawer) Reset(opts ...Option) {
	o := applyOptions(opts)
	if o.seeded || d.rng == nil {
		d.rng = o.rng()
	}
	d.pile = d.rng.Perm(d.poolMax)
	for i := range d.pile {
		d.pile[i]++
	}
	d.drawn = d.drawn[:0]
	d.seen = make(map[int]bool, d.poolMax)
}

// Draw removes and returns the next number. The second return is false
// once the pool is exhausted. Each value is checked against the seen set
// before it is released, so a repeat can never escape.
func (d *Drawer) Draw() (int, bool) {
	for len(d.pile) > 0 {
		last := len(d.pile) - 1
		n := d.pile[last]
		d.pile = d.pile[:last]
		if d.seen[n] {
			continue
		}
		d.seen[n] = true
		d.drawn = append(d.drawn, n)
		return n, true
	}
	return 0, false
}

// Remaining reports how many numbers are still in the pile.
func (d *Drawer) Remaining() int {
	return len(d.pile)
}

// Drawn returns a copy of the numbers drawn so far, oldest first.
func (d *Drawer) Drawn() []int {
	out := make([]int, len(d.drawn))
	copy(out, d.drawn)
	return out
}

// PoolMax returns the upper bound of the pool.
func (d *Drawer) PoolMax() int {
	return d.poolMax
}
