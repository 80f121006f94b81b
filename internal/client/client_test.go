package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/bingo/apps/go-server/internal/httpserver"
	"github.com/robalobadob/bingo/apps/go-server/internal/results"
	"github.com/robalobadob/bingo/apps/go-server/internal/store"
)

// startAPI runs the real router behind an httptest server so the
// client is exercised against the actual wire format.
func startAPI(t *testing.T) *Client {
	t.Helper()
	db, err := results.Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	res := results.NewStore(db)
	t.Cleanup(func() { _ = res.Close() })

	srv := httptest.NewServer(httpserver.New("", "test_salt", store.NewMemoryStore(), res).Router())
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestClient_Health(t *testing.T) {
	c := startAPI(t)
	require.NoError(t, c.Health(context.Background()))
}

func TestClient_RecordAndReadBack(t *testing.T) {
	ctx := context.Background()
	c := startAPI(t)

	require.NoError(t, c.RecordResult(ctx, results.Result{
		PlayerName: "Alice", BoardSize: 5, PoolMax: 75, Won: true, DrawsCount: 14,
	}))
	require.NoError(t, c.RecordResult(ctx, results.Result{
		PlayerName: "Bob", BoardSize: 5, PoolMax: 75, Won: false, DrawsCount: 14,
	}))

	board, err := c.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, board, 2)
	require.Equal(t, "Alice", board[0].Name)
	require.Equal(t, 1, board[0].Wins)

	history, err := c.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, "Bob", history[0].Name, "newest first")
}

func TestClient_APIErrorCarriesStatusAndBody(t *testing.T) {
	ctx := context.Background()
	c := startAPI(t)

	// board_size 2 is rejected by the API with a 400.
	err := c.RecordResult(ctx, results.Result{
		PlayerName: "Alice", BoardSize: 2, PoolMax: 30,
	})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Contains(t, apiErr.Body, "invalid_board")
}

func TestClient_ServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	_, err := c.Leaderboard(context.Background(), 5)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	require.Contains(t, apiErr.Body, "db_error")
}

func TestClient_BaseURLFallback(t *testing.T) {
	t.Setenv("PERSISTENCE_URL", "http://persistence.internal:8000")
	c := New("")
	require.Equal(t, "http://persistence.internal:8000", c.baseURL)

	t.Setenv("PERSISTENCE_URL", "")
	c = New("")
	require.Equal(t, DefaultBaseURL, c.baseURL)

	c = New("http://example.com/api/")
	require.Equal(t, "http://example.com/api", c.baseURL, "trailing slash is trimmed")
}
