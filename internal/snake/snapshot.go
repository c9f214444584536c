package snake

import "time"

// Snapshot is an immutable copy of everything a renderer or test needs.
// The body slice is copied so holders can never mutate live game state.
type Snapshot struct {
	State    State
	Run      int
	Score    int
	Body     []Position
	Dir      Direction
	Food     Position
	Interval time.Duration
}

// Snapshot captures the current game state.
func (g *Game) Snapshot() Snapshot {
	body := make([]Position, len(g.body))
	copy(body, g.body)
	return Snapshot{
		State:    g.state,
		Run:      g.run,
		Score:    g.score,
		Body:     body,
		Dir:      g.dir,
		Food:     g.food,
		Interval: g.TickInterval(),
	}
}
