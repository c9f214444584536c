// Package leaderboard implements the global score board: validation,
// the SQLite-backed sorted store with capped retention, the service
// operations exposed over HTTP, and the best-effort client used by the
// game.
package leaderboard

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// Cap is the maximum number of retained entries; the lowest-ranked
	// surplus is evicted after every insert.
	Cap = 500

	// DefaultLimit and MaxLimit bound the TopN read operation.
	DefaultLimit = 5
	MaxLimit     = 20
)

// Entry is one persisted score record. Created on submit, never
// mutated, eventually evicted by capacity pressure.
type Entry struct {
	ID    string `json:"id"`
	Nick  string `json:"nick"`
	Score int    `json:"score"`
	Ts    int64  `json:"ts"` // submission time, Unix milliseconds
}

// SortKey is the composite ordering value: primarily the score, with
// the timestamp contributing a fractional recency tie-break that can
// never reorder distinct integer scores.
func SortKey(score int, ts int64) float64 {
	return float64(score) + float64(ts)/1e13
}

var nickPattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.[A-Z0-9]{3}$`)

// ValidNickname reports whether nick has the pseudonymous identity
// shape A.B.C.XXX with A, B, C integers in [0, 999] and XXX three
// uppercase alphanumerics.
func ValidNickname(nick string) bool {
	if !nickPattern.MatchString(nick) {
		return false
	}
	parts := strings.Split(nick, ".")
	if len(parts) != 4 {
		return false
	}
	for _, part := range parts[:3] {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 999 {
			return false
		}
	}
	return true
}

// ClampLimit normalizes a requested TopN limit: non-positive or absent
// falls back to the default, oversized is clamped to the maximum.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
