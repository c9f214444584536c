package server

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/avolkov/snakeboard/internal/identity"
	"github.com/avolkov/snakeboard/internal/leaderboard"
)

// wireEntry is the public shape of a leaderboard row. The internal id
// is never exposed.
type wireEntry struct {
	Nick  string `json:"nick"`
	Score int    `json:"score"`
	Ts    int64  `json:"ts"`
}

type entriesResponse struct {
	Entries []wireEntry `json:"entries"`
}

func standingsPayload(entries []leaderboard.Entry) entriesResponse {
	out := make([]wireEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, wireEntry{Nick: e.Nick, Score: e.Score, Ts: e.Ts})
	}
	return entriesResponse{Entries: out}
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleGet(w, r)
	case http.MethodPost:
		s.handlePost(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleGet serves the top-N standings. Reads never fail outward: any
// store problem degrades to an empty list with status 200. Callers
// without a nickname cookie are issued one.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(identity.CookieName); err != nil {
		nick := identity.Generate(rand.New(rand.NewSource(time.Now().UnixNano())))
		http.SetCookie(w, identity.Cookie(nick, r.TLS != nil))
	}

	limit := parseLimit(r.URL.Query().Get("limit"))
	entries, err := s.svc.Top(limit)
	if err != nil {
		s.logger.Error("leaderboard read failed", "error", err)
		writeJSON(w, http.StatusOK, entriesResponse{Entries: []wireEntry{}})
		return
	}
	writeJSON(w, http.StatusOK, standingsPayload(entries))
}

// handlePost accepts a score submission. The loosely-typed JSON body is
// validated into either a concrete (score, nick) pair or a 400 before
// anything touches the store.
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Score *float64 `json:"score"`
		Nick  string   `json:"nick"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid score"})
		return
	}

	score, ok := integralScore(body.Score)
	if !ok || score <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid score"})
		return
	}

	_, err := s.svc.Submit(score, body.Nick)
	switch {
	case errors.Is(err, leaderboard.ErrInvalidScore):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid score"})
	case errors.Is(err, leaderboard.ErrInvalidNickname):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid nickname"})
	case err != nil:
		s.logger.Error("leaderboard submit failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Server error"})
	default:
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// parseLimit mirrors the clamp semantics of the service: default on
// absent/invalid, upper clamp at the maximum.
func parseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return leaderboard.DefaultLimit
	}
	return leaderboard.ClampLimit(n)
}

// integralScore reports whether the submitted JSON number is a whole
// number and returns it as an int.
func integralScore(v *float64) (int, bool) {
	if v == nil {
		return 0, false
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v != math.Trunc(*v) {
		return 0, false
	}
	return int(*v), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Nothing to do if the client went away
	json.NewEncoder(w).Encode(v)
}
