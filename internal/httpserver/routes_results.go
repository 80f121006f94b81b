// apps/go-server/internal/httpserver/routes_results.go
//
// HTTP routes for the persistence surface.
// Exposes three endpoints:
//   - GET  /leaderboard → per-player aggregates, best ranked first
//   - GET  /history     → recorded results, newest first
//   - POST /results     → record a single player's finished game
//
// Limits arrive as ?limit=N; missing or unparseable values use the
// store defaults, anything below one is clamped to one.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bingo/apps/go-server/internal/results"
)

// mountResults registers the persistence routes.
func (s *Server) mountResults(r chi.Router) {
	r.Get("/leaderboard", s.handleLeaderboard)
	r.Get("/history", s.handleHistory)
	r.Post("/results", s.handleSaveResult)
}

// handleLeaderboard returns aggregated player standings.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, results.DefaultLeaderboardLimit)
	rows, err := s.results.Leaderboard(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard query")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(rows)
}

// handleHistory returns recorded results, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, results.DefaultHistoryLimit)
	rows, err := s.results.History(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("history query")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(rows)
}

// handleSaveResult records one player's finished game.
func (s *Server) handleSaveResult(w http.ResponseWriter, r *http.Request) {
	var body results.Result
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if body.BoardSize < 3 || body.PoolMax < body.BoardSize*body.BoardSize {
		http.Error(w, `{"error":"invalid_board"}`, http.StatusBadRequest)
		return
	}
	if body.DrawsCount < 0 {
		http.Error(w, `{"error":"invalid_draws_count"}`, http.StatusBadRequest)
		return
	}
	if err := s.results.SaveResult(r.Context(), body); err != nil {
		log.Error().Err(err).Str("player", body.PlayerName).Msg("save result")
		http.Error(w, `{"error":"persistence_failed"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// parseLimit reads the ?limit query parameter. Missing or unparseable
// values fall back to def; parseable values are clamped to at least 1.
func parseLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if n < 1 {
		return 1
	}
	return n
}
