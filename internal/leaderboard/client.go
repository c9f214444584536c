package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// clientTimeout bounds every leaderboard call so a slow or unreachable
// server can never block gameplay.
const clientTimeout = 2 * time.Second

// Client talks to the leaderboard API on behalf of one player identity.
// Every operation is best-effort: network failures are swallowed and
// surface only as missing data, never as errors the game must handle.
type Client struct {
	base string
	nick string
	http *http.Client

	mu        sync.Mutex
	submitted map[int]bool // run identifier → already submitted
}

// NewClient creates a client for the API at base (e.g.
// "https://example.com") submitting under the given nickname.
func NewClient(base, nick string) *Client {
	return &Client{
		base:      base,
		nick:      nick,
		http:      &http.Client{Timeout: clientTimeout},
		submitted: make(map[int]bool),
	}
}

// Nick returns the client's player identity.
func (c *Client) Nick() string { return c.nick }

// Top fetches the current standings. Returns nil on any failure.
func (c *Client) Top(ctx context.Context, limit int) []Entry {
	url := fmt.Sprintf("%s/api/leaderboard?limit=%d", c.base, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var body struct {
		Entries []Entry `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil
	}
	return body.Entries
}

// Submit posts a finished run's score, at most once per run identifier.
// Non-positive scores are never sent. Reports whether a request was
// actually attempted (for tests; gameplay ignores it).
func (c *Client) Submit(ctx context.Context, runID, score int) bool {
	if score <= 0 {
		return false
	}

	c.mu.Lock()
	if c.submitted[runID] {
		c.mu.Unlock()
		return false
	}
	c.submitted[runID] = true
	c.mu.Unlock()

	payload, err := json.Marshal(map[string]any{
		"score": score,
		"nick":  c.nick,
	})
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.base+"/api/leaderboard", bytes.NewReader(payload))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return true
	}
	resp.Body.Close()
	return true
}
