// apps/go-server/internal/httpserver/routes_game.go
//
// HTTP routes for live multiplayer Bingo rounds.
// Exposes endpoints under /game:
//   - POST /game/new    → start a round (players, board size, pool, seed)
//   - POST /game/draw   → draw the next number and auto-mark every card
//   - POST /game/mark   → toggle a mark on one player's card
//   - POST /game/bingo  → validate an explicit bingo claim
//   - GET  /game/{id}   → full snapshot of a round
//   - DELETE /game/{id} → drop a round from the registry
//
// Rounds live in the in-memory session registry while they are played.
// The first request that observes a finished round persists one result
// per player to the results store; the session's one-shot flag keeps
// duplicates out even under concurrent draws.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bingo/apps/go-server/internal/game"
	"github.com/robalobadob/bingo/apps/go-server/internal/results"
	"github.com/robalobadob/bingo/apps/go-server/internal/store"
)

// mountGame registers all /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Post("/draw", s.handleDraw)
		r.Post("/mark", s.handleMark)
		r.Post("/bingo", s.handleCallBingo)
		r.Get("/{id}", s.handleGameState)
		r.Delete("/{id}", s.handleDeleteGame)
	})
}

// -----------------------------------------------------------------------------
// /game/new

// newGameReq is the payload for POST /game/new. An empty body starts a
// default solo game.
type newGameReq struct {
	Players    []string `json:"players"`
	BoardSize  int      `json:"board_size"`
	PoolMax    int      `json:"pool_max"`
	FreeCenter bool     `json:"free_center"`
	Seed       *int64   `json:"seed"`
	// Daily pins the seed to today's shared schedule, so every daily
	// round of the same shape plays out identically until midnight
	// UTC. An explicit seed wins over the flag.
	Daily bool `json:"daily"`
}

// handleNewGame builds a session, registers it, and returns the full
// starting snapshot.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	seed := req.Seed
	if req.Daily && seed == nil {
		daily := game.DailySeed(time.Now(), s.dailySalt)
		seed = &daily
	}
	sess, err := game.NewSession(game.SessionConfig{
		Players:    req.Players,
		BoardSize:  req.BoardSize,
		PoolMax:    req.PoolMax,
		FreeCenter: req.FreeCenter,
		Seed:       seed,
	})
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("gameId", sess.ID()).
		Int("players", len(sess.Players())).
		Msg("new game")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

// -----------------------------------------------------------------------------
// /game/draw

// drawReq is the payload for POST /game/draw.
type drawReq struct {
	GameID string `json:"game_id"`
}

// drawRes pairs the draw outcome with the post-draw session state.
type drawRes struct {
	game.DrawOutcome
	DrawsCount   int  `json:"draws_count"`
	Remaining    int  `json:"remaining"`
	ResultsSaved bool `json:"results_saved,omitempty"`
}

// handleDraw advances a round by one number. The request that sees the
// round finish also persists its results, best effort.
func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	var req drawReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.sessions.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	out := sess.Draw()
	saved := s.recordIfFinished(r, sess)

	snap := sess.Snapshot()
	_ = json.NewEncoder(w).Encode(drawRes{
		DrawOutcome:  out,
		DrawsCount:   snap.DrawsCount,
		Remaining:    snap.Remaining,
		ResultsSaved: saved,
	})
}

// -----------------------------------------------------------------------------
// /game/mark

// markReq is the payload for POST /game/mark.
type markReq struct {
	GameID string `json:"game_id"`
	Player int    `json:"player"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

// handleMark toggles a cell on one player's card. Out-of-range
// coordinates are a silent no-op, matching the card's own behavior.
func (s *Server) handleMark(w http.ResponseWriter, r *http.Request) {
	var req markReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.sessions.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if err := sess.ToggleMark(req.Player, req.Row, req.Col); err != nil {
		http.Error(w, `{"error":"invalid_player"}`, http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// -----------------------------------------------------------------------------
// /game/bingo

// bingoReq is the payload for POST /game/bingo.
type bingoReq struct {
	GameID string `json:"game_id"`
	Player int    `json:"player"`
}

// bingoRes is the verdict on an explicit bingo claim.
type bingoRes struct {
	Bingo        bool       `json:"bingo"`
	State        game.State `json:"state"`
	Winner       string     `json:"winner,omitempty"`
	ResultsSaved bool       `json:"results_saved,omitempty"`
}

// handleCallBingo validates a player's claim. A valid claim settles the
// round and persists its results.
func (s *Server) handleCallBingo(w http.ResponseWriter, r *http.Request) {
	var req bingoReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.sessions.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	won, err := sess.CallBingo(req.Player)
	if err != nil {
		http.Error(w, `{"error":"invalid_player"}`, http.StatusBadRequest)
		return
	}
	saved := s.recordIfFinished(r, sess)

	winner, _ := sess.Winner()
	_ = json.NewEncoder(w).Encode(bingoRes{
		Bingo:        won,
		State:        sess.State(),
		Winner:       winner,
		ResultsSaved: saved,
	})
}

// -----------------------------------------------------------------------------
// /game/{id}

// handleGameState returns the full snapshot of a round.
func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

// handleDeleteGame drops a round from the registry. Finished rounds are
// already persisted; unfinished ones are simply abandoned.
func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"delete_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// -----------------------------------------------------------------------------
// result recording

// recordIfFinished persists one result per player the first time a
// finished round is observed, and reports whether this call saved them.
// Persistence problems are logged, not returned; the round outcome
// already happened and the response should carry it regardless.
func (s *Server) recordIfFinished(r *http.Request, sess *game.Session) bool {
	if !sess.MarkRecorded() {
		return false
	}
	snap := sess.Snapshot()
	winnerIdx, hasWinner := sess.WinnerIndex()

	record := results.GameRecord{
		BoardSize:  snap.BoardSize,
		PoolMax:    snap.PoolMax,
		DrawsCount: snap.DrawsCount,
	}
	for i, p := range snap.Players {
		record.Outcomes = append(record.Outcomes, results.PlayerOutcome{
			Name: p.Name,
			Won:  hasWinner && i == winnerIdx,
		})
	}
	if err := s.results.RecordGame(r.Context(), record); err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID()).Msg("record game results")
		return false
	}
	log.Info().
		Str("gameId", sess.ID()).
		Str("state", string(snap.State)).
		Str("winner", snap.Winner).
		Int("draws", snap.DrawsCount).
		Msg("game recorded")
	return true
}
