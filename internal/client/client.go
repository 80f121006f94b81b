// apps/go-server/internal/client/client.go
//
// HTTP client for the Bingo results API.
// Responsibilities:
//   - Thin wrappers over /health, /leaderboard, /history, POST /results.
//   - Uniform error shape: any non-2xx response surfaces as *APIError
//     carrying the status code and response body, no retries.
//
// Notes:
//   - The base URL falls back to PERSISTENCE_URL, then to the local
//     default, so front-ends can run with zero configuration.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robalobadob/bingo/apps/go-server/internal/results"
)

// DefaultBaseURL is used when neither the constructor argument nor
// PERSISTENCE_URL names a server.
const DefaultBaseURL = "http://localhost:8000"

// requestTimeout bounds every call; the API only does short single-row
// and small-aggregate operations.
const requestTimeout = 5 * time.Second

// APIError reports a non-2xx response from the results API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Body)
}

// Client talks to a running results API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for baseURL. An empty baseURL falls back to
// PERSISTENCE_URL, then to DefaultBaseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("PERSISTENCE_URL")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Health checks that the API is up and reports itself healthy.
func (c *Client) Health(ctx context.Context) error {
	var status struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/health", &status); err != nil {
		return err
	}
	if status.Status != "ok" {
		return fmt.Errorf("unexpected health status %q", status.Status)
	}
	return nil
}

// Leaderboard fetches up to limit aggregated player rows, best ranked
// first. A non-positive limit lets the server apply its default.
func (c *Client) Leaderboard(ctx context.Context, limit int) ([]results.LeaderboardRow, error) {
	var rows []results.LeaderboardRow
	if err := c.get(ctx, "/leaderboard"+limitQuery(limit), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// History fetches up to limit recorded results, newest first. A
// non-positive limit lets the server apply its default.
func (c *Client) History(ctx context.Context, limit int) ([]results.HistoryRow, error) {
	var rows []results.HistoryRow
	if err := c.get(ctx, "/history"+limitQuery(limit), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// RecordResult submits one player's finished game.
func (c *Client) RecordResult(ctx context.Context, r results.Result) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/results", bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post /results: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return apiError(res)
	}
	return nil
}

// get fetches path and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return apiError(res)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// apiError drains a bounded slice of the body so the caller sees what
// the server said without risking an unbounded read.
func apiError(res *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	return &APIError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(body))}
}

func limitQuery(limit int) string {
	if limit <= 0 {
		return ""
	}
	return "?limit=" + strconv.Itoa(limit)
}
