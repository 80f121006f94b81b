// apps/go-server/internal/results/results.go
//
// Persistence layer for finished Bingo games.
// Responsibilities:
//   - Resolving players by normalized display name (get-or-create).
//   - Recording finished games atomically: the player, game, and result
//     rows land together or not at all.
//   - Leaderboard aggregation (wins, games played, win rate) and recent
//     game history, newest first.
//
// Notes:
//   - Every storage failure is wrapped in *PersistenceError so callers
//     can treat the layer as a single error kind.
//   - win_rate is a 0..1 fraction everywhere, never a percentage.

package results

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Default row limits applied when a caller passes no usable limit.
const (
	DefaultLeaderboardLimit = 10
	DefaultHistoryLimit     = 200
)

// AnonymousPlayer is the display name given to blank player names.
const AnonymousPlayer = "Anonymous"

// PersistenceError wraps a storage failure with the operation that hit
// it. Use errors.As to recover it and Unwrap to reach the cause.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("results: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Result is a single player's finished game as submitted over the API.
type Result struct {
	PlayerName string `json:"player_name"`
	BoardSize  int    `json:"board_size"`
	PoolMax    int    `json:"pool_max"`
	Won        bool   `json:"won"`
	DrawsCount int    `json:"draws_count"`
}

// PlayerOutcome is one entry of a multiplayer GameRecord.
type PlayerOutcome struct {
	Name string
	Won  bool
}

// GameRecord is a finished multiplayer round: a single games row shared
// by one result per player.
type GameRecord struct {
	BoardSize  int
	PoolMax    int
	DrawsCount int
	Outcomes   []PlayerOutcome
}

// LeaderboardRow aggregates one player's lifetime stats.
type LeaderboardRow struct {
	Name        string  `json:"name"`
	Wins        int     `json:"wins"`
	GamesPlayed int     `json:"games_played"`
	WinRate     float64 `json:"win_rate"`
}

// HistoryRow is one recorded result joined with its game configuration.
type HistoryRow struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	BoardSize  int    `json:"board_size"`
	PoolMax    int    `json:"pool_max"`
	Won        bool   `json:"won"`
	DrawsCount int    `json:"draws_count"`
	PlayedAt   string `json:"played_at"`
}

// Store persists and aggregates game results.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open results database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close releases the underlying handle. Safe to call more than once.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// NormalizeName trims a display name; blank names become
// AnonymousPlayer so results never dangle without an owner.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return AnonymousPlayer
	}
	return name
}

// GetOrCreatePlayer resolves a display name to its players row,
// inserting one if needed. Repeat calls with the same normalized name
// return the same id; the unique constraint makes racing inserts
// converge on one row.
func (s *Store) GetOrCreatePlayer(ctx context.Context, name string) (int64, error) {
	id, err := getOrCreatePlayer(ctx, s.db, name)
	if err != nil {
		return 0, &PersistenceError{Op: "get_or_create_player", Err: err}
	}
	return id, nil
}

// execer covers *sql.DB and *sql.Tx so player resolution can run both
// standalone and inside a recording transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getOrCreatePlayer(ctx context.Context, db execer, name string) (int64, error) {
	name = NormalizeName(name)
	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO players(name) VALUES (?)`, name,
	); err != nil {
		return 0, fmt.Errorf("insert player %q: %w", name, err)
	}
	var id int64
	if err := db.QueryRowContext(ctx,
		`SELECT id FROM players WHERE name=?`, name,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("lookup player %q: %w", name, err)
	}
	return id, nil
}

// SaveResult records one player's finished game: the player is resolved,
// a games row is inserted, and the result row lands referencing both,
// all inside one transaction.
func (s *Store) SaveResult(ctx context.Context, r Result) error {
	record := GameRecord{
		BoardSize:  r.BoardSize,
		PoolMax:    r.PoolMax,
		DrawsCount: r.DrawsCount,
		Outcomes:   []PlayerOutcome{{Name: r.PlayerName, Won: r.Won}},
	}
	if err := s.recordGame(ctx, record); err != nil {
		return &PersistenceError{Op: "save_result", Err: err}
	}
	return nil
}

// RecordGame persists a full multiplayer round: one games row plus one
// result per player, atomically. Rounds without players are a no-op.
func (s *Store) RecordGame(ctx context.Context, record GameRecord) error {
	if len(record.Outcomes) == 0 {
		return nil
	}
	if err := s.recordGame(ctx, record); err != nil {
		return &PersistenceError{Op: "record_game", Err: err}
	}
	return nil
}

func (s *Store) recordGame(ctx context.Context, record GameRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO games(board_size, pool_max) VALUES (?, ?)`,
		record.BoardSize, record.PoolMax,
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	gameID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("game id: %w", err)
	}

	for _, outcome := range record.Outcomes {
		playerID, err := getOrCreatePlayer(ctx, tx, outcome.Name)
		if err != nil {
			return err
		}
		won := 0
		if outcome.Won {
			won = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO results(player_id, game_id, won, draws_count) VALUES (?, ?, ?, ?)`,
			playerID, gameID, won, record.DrawsCount,
		); err != nil {
			return fmt.Errorf("insert result for %q: %w", outcome.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Leaderboard aggregates per-player stats across all recorded results,
// ordered by wins, then games played, then name for a stable ranking.
// Players with no recorded games do not appear. Limits below one are
// clamped to one.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if limit < 1 {
		limit = 1
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT p.name,
               COALESCE(SUM(r.won), 0) AS wins,
               COUNT(r.id)             AS games_played,
               CAST(COALESCE(SUM(r.won), 0) AS REAL) / COUNT(r.id) AS win_rate
        FROM players p
        JOIN results r ON r.player_id = p.id
        GROUP BY p.id, p.name
        ORDER BY wins DESC, games_played DESC, p.name ASC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, &PersistenceError{Op: "leaderboard", Err: err}
	}
	defer rows.Close()

	// Non-nil so the rows always serialize as a JSON array.
	out := []LeaderboardRow{}
	for rows.Next() {
		var row LeaderboardRow
		if err := rows.Scan(&row.Name, &row.Wins, &row.GamesPlayed, &row.WinRate); err != nil {
			return nil, &PersistenceError{Op: "leaderboard", Err: err}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "leaderboard", Err: err}
	}
	return out, nil
}

// History returns recorded results, newest first, joined with their
// game configuration. Limits below one are clamped to one.
func (s *Store) History(ctx context.Context, limit int) ([]HistoryRow, error) {
	if limit < 1 {
		limit = 1
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT r.id, p.name, g.board_size, g.pool_max, r.won, r.draws_count, r.played_at
        FROM results r
        JOIN players p ON p.id = r.player_id
        JOIN games   g ON g.id = r.game_id
        ORDER BY r.played_at DESC, r.id DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, &PersistenceError{Op: "history", Err: err}
	}
	defer rows.Close()

	// Non-nil so the rows always serialize as a JSON array.
	out := []HistoryRow{}
	for rows.Next() {
		var row HistoryRow
		var won int
		if err := rows.Scan(&row.ID, &row.Name, &row.BoardSize, &row.PoolMax, &won, &row.DrawsCount, &row.PlayedAt); err != nil {
			return nil, &PersistenceError{Op: "history", Err: err}
		}
		row.Won = won == 1
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "history", Err: err}
	}
	return out, nil
}
