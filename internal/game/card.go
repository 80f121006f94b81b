// apps/go-server/internal/game/card.go
//
// Bingo card: an n by n grid of unique numbers drawn from 1..poolMax.
// Responsibilities:
//   - Generate a random grid at construction and on Regenerate.
//   - Track marked cells, including the optional pre-marked free center.
//   - Answer lookups (Find), apply marks (ToggleMark/AutoMark), and
//     detect wins (HasBingo).
// Notes:
//   - Board sizes 3, 4, and 5 are supported; free center needs an odd
//     size so the middle cell exists.

package game

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
)

// Card is a single player's board. It is not safe for concurrent use;
// Session serializes access to it.
type Card struct {
	size    int
	poolMax int
	free    bool
	center  Coord
	rng     *rand.Rand
	grid    [][]Cell
	marked  map[Coord]bool
}

// DefaultPoolMax returns the traditional pool size for a board: 30 for
// 3x3, 60 for 4x4, and 75 for the classic 5x5 game. Other sizes fall
// back to the minimum legal pool.
func DefaultPoolMax(size int) int {
	switch size {
	case 3:
		return 30
	case 4:
		return 60
	case 5:
		return 75
	}
	return size * size
}

// NewCard builds a card of the given board size over the pool
// 1..poolMax. Pass WithSeed for a reproducible grid and WithFreeCenter
// to pre-mark the middle cell.
func NewCard(size, poolMax int, opts ...Option) (*Card, error) {
	if size < 3 || size > 5 {
		return nil, fmt.Errorf("%w: size must be 3, 4, or 5, got %d", ErrInvalidBoard, size)
	}
	if poolMax < size*size {
		return nil, fmt.Errorf("%w: pool max %d cannot fill a %dx%d grid", ErrInvalidBoard, poolMax, size, size)
	}
	o := applyOptions(opts)
	if o.free && size%2 == 0 {
		return nil, fmt.Errorf("%w: free center needs an odd size, got %d", ErrInvalidBoard, size)
	}
	c := &Card{
		size:    size,
		poolMax: poolMax,
		free:    o.free,
		center:  Coord{Row: size / 2, Col: size / 2},
		rng:     o.rng(),
	}
	c.generate()
	return c, nil
}

// generate fills the grid with unique numbers and resets the marks.
// The free center, when enabled, starts marked and stays that way.
func (c *Card) generate() {
	picks := c.rng.Perm(c.poolMax)[:c.size*c.size]
	c.grid = make([][]Cell, c.size)
	c.marked = make(map[Coord]bool)
	for r := 0; r < c.size; r++ {
		c.grid[r] = make([]Cell, c.size)
		for col := 0; col < c.size; col++ {
			c.grid[r][col] = Cell{Value: picks[r*c.size+col] + 1}
		}
	}
	if c.free {
		c.grid[c.center.Row][c.center.Col] = Cell{Free: true}
		c.marked[c.center] = true
	}
}

// Regenerate rerolls the grid and clears all marks. With WithSeed the
// generator is reseeded first; otherwise the existing stream continues.
func (c *Card) Regenerate(opts ...Option) {
	o := applyOptions(opts)
	if o.seeded {
		c.rng = o.rng()
	}
	c.generate()
}

// Size returns the board dimension.
func (c *Card) Size() int {
	return c.size
}

// PoolMax returns the upper bound of the number pool.
func (c *Card) PoolMax() int {
	return c.poolMax
}

// FreeCenter reports whether the middle cell is a permanent free mark.
func (c *Card) FreeCenter() bool {
	return c.free
}

// Grid returns a copy of the card layout, row by row.
func (c *Card) Grid() [][]Cell {
	out := make([][]Cell, c.size)
	for r, row := range c.grid {
		out[r] = make([]Cell, c.size)
		copy(out[r], row)
	}
	return out
}

// Find returns the position of a number, scanning row-major. The free
// center never matches.
func (c *Card) Find(number int) (Coord, bool) {
	for r, row := range c.grid {
		for col, cell := range row {
			if !cell.Free && cell.Value == number {
				return Coord{Row: r, Col: col}, true
			}
		}
	}
	return Coord{}, false
}

// ToggleMark flips the mark at (row, col). Out-of-range coordinates are
// ignored, and the free center cannot be unmarked.
func (c *Card) ToggleMark(row, col int) {
	if row < 0 || row >= c.size || col < 0 || col >= c.size {
		return
	}
	pos := Coord{Row: row, Col: col}
	if c.free && pos == c.center {
		return
	}
	if c.marked[pos] {
		delete(c.marked, pos)
	} else {
		c.marked[pos] = true
	}
}

// AutoMark marks the cell holding number, if the card has it, and
// reports whether the number was found. Marking is idempotent.
func (c *Card) AutoMark(number int) bool {
	pos, ok := c.Find(number)
	if !ok {
		return false
	}
	c.marked[pos] = true
	return true
}

// IsMarked reports whether the cell at (row, col) is marked.
// Out-of-range coordinates are never marked.
func (c *Card) IsMarked(row, col int) bool {
	return c.marked[Coord{Row: row, Col: col}]
}

// Marked returns the marked positions sorted row-major, so callers get
// a stable order for serialization.
func (c *Card) Marked() []Coord {
	out := make([]Coord, 0, len(c.marked))
	for pos := range c.marked {
		out = append(out, pos)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// HasBingo reports whether the marks complete a row, column, or
// diagonal.
func (c *Card) HasBingo() bool {
	return HasBingo(c.marked, c.size)
}

// Render returns a plain-text view of the grid with row and column
// indexes. The free center prints as FREE.
func (c *Card) Render() string {
	width := 2
	for _, row := range c.grid {
		for _, cell := range row {
			if cell.Free {
				continue
			}
			if w := len(strconv.Itoa(cell.Value)); w > width {
				width = w
			}
		}
	}
	if c.free && len("FREE") > width {
		width = len("FREE")
	}

	var b strings.Builder
	b.WriteString("   ")
	for col := 0; col < c.size; col++ {
		fmt.Fprintf(&b, " %*d", width, col)
	}
	for r, row := range c.grid {
		fmt.Fprintf(&b, "\n%2d ", r)
		for _, cell := range row {
			if cell.Free {
				fmt.Fprintf(&b, " %*s", width, "FREE")
			} else {
				fmt.Fprintf(&b, " %*d", width, cell.Value)
			}
		}
	}
	return b.String()
}
