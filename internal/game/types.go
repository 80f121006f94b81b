// apps/go-server/internal/game/types.go
//
// Core type definitions for the Bingo game engine.
// Defines:
//   - Coord: zero-based (row, col) position on a card grid.
//   - Cell: a single card square, either a pool number or the free center.
//   - State: coarse lifecycle of a game session (playing/won/exhausted).
//   - Validation errors shared by the constructors in this package.

package game

import "errors"

// Validation errors returned by NewDrawer, NewCard, and NewSession.
// They fail fast at construction time and are never retried.
var (
	// ErrInvalidPool rejects a drawer pool with pool max < 1.
	ErrInvalidPool = errors.New("pool max must be at least 1")

	// ErrInvalidBoard rejects unsupported board sizes, pools smaller than
	// the number of cells, and free-center requests on even boards.
	ErrInvalidBoard = errors.New("invalid board")
)

// Coord identifies a cell by zero-based row and column.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Cell is one square of a card grid.
//
// The free center carries no number: Free is the tagged replacement for
// the historical 0 sentinel, so a drawable value can never collide with
// "no number here".
type Cell struct {
	Value int  `json:"value,omitempty"`
	Free  bool `json:"free,omitempty"`
}

// State reports where a session is in its lifecycle.
// Possible values:
//   - "playing":   draws are still being made.
//   - "won":       a player completed a line.
//   - "exhausted": the pool ran out before anyone won.
type State string

const (
	StatePlaying   State = "playing"
	StateWon       State = "won"
	StateExhausted State = "exhausted"
)
