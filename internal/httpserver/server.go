// apps/go-server/internal/httpserver/server.go
//
// HTTP server wiring for the Bingo backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Game endpoints: mounted under /game (new, draw, mark, bingo, state).
//   - Persistence endpoints: /leaderboard, /history, POST /results.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so browser front-ends
//     can talk to it directly).
//   - Live rounds stay in the session registry; only finished games
//     reach the results store.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/robalobadob/bingo/apps/go-server/internal/results"
	"github.com/robalobadob/bingo/apps/go-server/internal/store"
)

// Server bundles the router, the live session registry, and the results
// store.
type Server struct {
	r         *chi.Mux
	sessions  store.Store
	results   *results.Store
	dailySalt string
}

// New constructs a Server, installs middleware, and registers routes.
// origin is the single CORS origin allowed to call the API; dailySalt
// keys the shared seed for daily rounds.
func New(origin, dailySalt string, sessions store.Store, res *results.Store) *Server {
	s := &Server{r: chi.NewRouter(), sessions: sessions, results: res, dailySalt: dailySalt}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsOrigin(origin))              // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"bingo-go","endpoints":["/health","/leaderboard","/history","POST /results","POST /game/new","POST /game/draw","POST /game/mark","POST /game/bingo","GET /game/{id}","DELETE /game/{id}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Game endpoints — live sessions
	s.mountGame(s.r)

	// Persistence endpoints — results, leaderboard, history
	s.mountResults(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsOrigin enables credentialed CORS for a single origin.
// An empty origin falls back to the local dev front-end.
func corsOrigin(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
