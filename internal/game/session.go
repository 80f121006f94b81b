// apps/go-server/internal/game/session.go
//
// Multiplayer round: one shared drawer feeding every player's card.
// Responsibilities:
//   - Build cards and a drawer from a SessionConfig, applying defaults.
//   - Serialize all game mutations behind a mutex so concurrent HTTP
//     requests cannot corrupt a round.
//   - Settle the winner on the first completed line (lowest player
//     index breaks ties within a single draw).
// Notes:
//   - Snapshot returns a deep copy, safe to serialize while the round
//     keeps moving.

package game

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// SessionConfig describes a new round. Zero values fall back to a
// classic solo 5x5 game over the traditional pool.
type SessionConfig struct {
	// Players lists display names. Blanks become "Player N"; an empty
	// list means a single anonymous player.
	Players []string
	// BoardSize is the card dimension (3, 4, or 5). Zero means 5.
	BoardSize int
	// PoolMax is the top of the number pool. Zero picks the
	// traditional pool for the board size.
	PoolMax int
	// FreeCenter pre-marks the middle cell of every card.
	FreeCenter bool
	// Seed pins the shuffles for reproducible rounds. Each card gets a
	// distinct offset of the seed so players do not share a grid.
	Seed *int64
}

// Session is one multiplayer round. All methods are safe for
// concurrent use.
type Session struct {
	id         string
	boardSize  int
	poolMax    int
	freeCenter bool

	mu       sync.Mutex
	players  []string
	cards    []*Card
	drawer   *Drawer
	state    State
	winner   int
	recorded bool
}

// DrawOutcome describes a single draw pushed through every card.
type DrawOutcome struct {
	// Number is the value drawn; zero when the pool was already empty.
	Number int `json:"number,omitempty"`
	// Drawn is false when the pool ran out instead of producing a number.
	Drawn bool `json:"drawn"`
	// Hits aligns with Players: true where the draw marked a cell.
	Hits []bool `json:"hits,omitempty"`
	// State is the session state after the draw settled.
	State State `json:"state"`
	// Winner is the winning player's name once State is "won".
	Winner string `json:"winner,omitempty"`
}

// PlayerView is one player's slice of a session snapshot.
type PlayerView struct {
	Name   string   `json:"name"`
	Grid   [][]Cell `json:"grid"`
	Marked []Coord  `json:"marked"`
	Bingo  bool     `json:"bingo"`
}

// Snapshot is a copy of the observable session state.
type Snapshot struct {
	ID         string       `json:"game_id"`
	BoardSize  int          `json:"board_size"`
	PoolMax    int          `json:"pool_max"`
	FreeCenter bool         `json:"free_center"`
	State      State        `json:"state"`
	Winner     string       `json:"winner,omitempty"`
	DrawsCount int          `json:"draws_count"`
	LastDraw   int          `json:"last_draw,omitempty"`
	Drawn      []int        `json:"drawn"`
	Remaining  int          `json:"remaining"`
	Players    []PlayerView `json:"players"`
}

// NewSession builds a round from cfg. Every player gets a fresh card
// and the whole table shares one drawer.
func NewSession(cfg SessionConfig) (*Session, error) {
	size := cfg.BoardSize
	if size == 0 {
		size = 5
	}
	poolMax := cfg.PoolMax
	if poolMax == 0 {
		poolMax = DefaultPoolMax(size)
	}
	players := normalizePlayers(cfg.Players)

	cards := make([]*Card, len(players))
	for i := range players {
		opts := make([]Option, 0, 2)
		if cfg.FreeCenter {
			opts = append(opts, WithFreeCenter())
		}
		if cfg.Seed != nil {
			opts = append(opts, WithSeed(*cfg.Seed+int64(i)+1))
		}
		card, err := NewCard(size, poolMax, opts...)
		if err != nil {
			return nil, err
		}
		cards[i] = card
	}

	var drawOpts []Option
	if cfg.Seed != nil {
		drawOpts = append(drawOpts, WithSeed(*cfg.Seed))
	}
	drawer, err := NewDrawer(poolMax, drawOpts...)
	if err != nil {
		return nil, err
	}

	return &Session{
		id:         uuid.NewString(),
		boardSize:  size,
		poolMax:    poolMax,
		freeCenter: cfg.FreeCenter,
		players:    players,
		cards:      cards,
		drawer:     drawer,
		state:      StatePlaying,
		winner:     -1,
	}, nil
}

// normalizePlayers trims names and substitutes "Player N" for blanks so
// results always attach to a stable display name.
func normalizePlayers(names []string) []string {
	if len(names) == 0 {
		return []string{"Player 1"}
	}
	out := make([]string, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		out[i] = name
	}
	return out
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Players returns a copy of the normalized player names.
func (s *Session) Players() []string {
	out := make([]string, len(s.players))
	copy(out, s.players)
	return out
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Winner returns the winning player's name, or false while nobody has
// won.
func (s *Session) Winner() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.winner < 0 {
		return "", false
	}
	return s.players[s.winner], true
}

// WinnerIndex returns the winning player's index, or false while
// nobody has won. Display names may repeat; the index never does.
func (s *Session) WinnerIndex() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.winner < 0 {
		return 0, false
	}
	return s.winner, true
}

// DrawsCount reports how many numbers have been drawn.
func (s *Session) DrawsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drawer.Drawn())
}

// Draw takes the next number, auto-marks every card, and settles the
// state. Draws after the round has ended just report the terminal
// state.
func (s *Session) Draw() DrawOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying {
		return DrawOutcome{State: s.state, Winner: s.winnerName()}
	}
	number, ok := s.drawer.Draw()
	if !ok {
		s.state = StateExhausted
		return DrawOutcome{State: s.state}
	}

	hits := make([]bool, len(s.cards))
	for i, card := range s.cards {
		hits[i] = card.AutoMark(number)
	}
	for i, card := range s.cards {
		if card.HasBingo() {
			s.state = StateWon
			s.winner = i
			break
		}
	}
	return DrawOutcome{
		Number: number,
		Drawn:  true,
		Hits:   hits,
		State:  s.state,
		Winner: s.winnerName(),
	}
}

// ToggleMark flips a mark on one player's card. Only the player index
// is validated; cards ignore out-of-range coordinates themselves.
func (s *Session) ToggleMark(player, row, col int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if player < 0 || player >= len(s.cards) {
		return fmt.Errorf("no player %d in a %d-player session", player, len(s.cards))
	}
	s.cards[player].ToggleMark(row, col)
	return nil
}

// CallBingo validates a player's claim. A valid claim settles the round
// in that player's favor; an invalid one changes nothing.
func (s *Session) CallBingo(player int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if player < 0 || player >= len(s.cards) {
		return false, fmt.Errorf("no player %d in a %d-player session", player, len(s.cards))
	}
	if !s.cards[player].HasBingo() {
		return false, nil
	}
	if s.state == StatePlaying {
		s.state = StateWon
		s.winner = player
	}
	return true, nil
}

// MarkRecorded flips the one-shot persistence flag for a finished
// round. It reports true exactly once, and never while the round is
// still playing, so a finished game is recorded a single time no matter
// how many requests observe the ending.
func (s *Session) MarkRecorded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StatePlaying || s.recorded {
		return false
	}
	s.recorded = true
	return true
}

// Snapshot returns a deep copy of the observable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	drawn := s.drawer.Drawn()
	lastDraw := 0
	if len(drawn) > 0 {
		lastDraw = drawn[len(drawn)-1]
	}
	players := make([]PlayerView, len(s.players))
	for i, name := range s.players {
		players[i] = PlayerView{
			Name:   name,
			Grid:   s.cards[i].Grid(),
			Marked: s.cards[i].Marked(),
			Bingo:  s.cards[i].HasBingo(),
		}
	}
	return Snapshot{
		ID:         s.id,
		BoardSize:  s.boardSize,
		PoolMax:    s.poolMax,
		FreeCenter: s.freeCenter,
		State:      s.state,
		Winner:     s.winnerName(),
		DrawsCount: len(drawn),
		LastDraw:   lastDraw,
		Drawn:      drawn,
		Remaining:  s.drawer.Remaining(),
		Players:    players,
	}
}

// winnerName resolves the winner index to a name; callers hold the
// lock.
func (s *Session) winnerName() string {
	if s.winner < 0 {
		return ""
	}
	return s.players[s.winner]
}
