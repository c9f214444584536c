package leaderboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Validation failures of a submission. Anything else coming out of
// Submit is a store failure.
var (
	ErrInvalidScore    = errors.New("leaderboard: invalid score")
	ErrInvalidNickname = errors.New("leaderboard: invalid nickname")
)

// Service implements the two leaderboard operations on top of the
// sorted store. Stateless per call; safe for concurrent use because the
// store's primitives are atomic.
type Service struct {
	store *Store
	now   func() time.Time

	// OnChange, when set, is invoked after every accepted submission.
	// Used to push refreshed standings to live subscribers.
	OnChange func()
}

// NewService creates a service over the given store.
func NewService(store *Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Submit validates and persists one finished-run score. The entry is
// keyed for ordering by score with a recency tie-break; after insertion
// the store evicts any surplus beyond the cap.
func (s *Service) Submit(score int, nick string) (Entry, error) {
	if score <= 0 {
		return Entry{}, ErrInvalidScore
	}
	if !ValidNickname(nick) {
		return Entry{}, ErrInvalidNickname
	}

	e := Entry{
		ID:    uuid.New().String(),
		Nick:  nick,
		Score: score,
		Ts:    s.now().UnixMilli(),
	}
	if err := s.store.Add(e); err != nil {
		return Entry{}, fmt.Errorf("leaderboard: submit failed: %w", err)
	}

	if s.OnChange != nil {
		s.OnChange()
	}
	return e, nil
}

// Top returns the top entries in descending score order. The limit is
// clamped to [1, MaxLimit] with DefaultLimit as the fallback.
func (s *Service) Top(limit int) ([]Entry, error) {
	return s.store.Top(ClampLimit(limit))
}
