package snake

import "math/rand"

// Outcome is the result of advancing the simulation by one tick.
type Outcome struct {
	Body     []Position // new body, head first; nil when Collided
	Food     Position   // food position after the move
	Ate      bool       // head landed on food this tick
	Collided bool       // terminal: wall or body hit
}

// Advance computes one simulation step as a pure state transition.
// The new head is the current head translated by dir. A move is a
// collision when the head leaves the board or enters any cell occupied
// by body[1:] of the pre-move snake (the tail cell counts: it is only
// vacated after the check). On food the snake grows by one and the food
// is respawned on a free cell; otherwise the tail is dropped so length
// stays constant. The input body is never mutated.
func Advance(body []Position, dir Direction, food Position, rng *rand.Rand) Outcome {
	head := body[0].Translate(dir)

	if !head.InBounds() {
		return Outcome{Collided: true, Food: food}
	}
	for _, seg := range body[1:] {
		if seg == head {
			return Outcome{Collided: true, Food: food}
		}
	}

	if head == food {
		next := make([]Position, 0, len(body)+1)
		next = append(next, head)
		next = append(next, body...)
		return Outcome{Body: next, Food: SpawnFood(next, rng), Ate: true}
	}

	next := make([]Position, 0, len(body))
	next = append(next, head)
	next = append(next, body[:len(body)-1]...)
	return Outcome{Body: next, Food: food}
}

// SpawnFood picks a uniformly random cell not occupied by the body.
// Rejection sampling; the board is 625 cells so this terminates fast for
// any reachable snake length.
func SpawnFood(body []Position, rng *rand.Rand) Position {
	for {
		p := Position{X: rng.Intn(GridSize), Y: rng.Intn(GridSize)}
		if !occupied(body, p) {
			return p
		}
	}
}

func occupied(body []Position, p Position) bool {
	for _, seg := range body {
		if seg == p {
			return true
		}
	}
	return false
}

// InitialBody returns the starting snake: three segments at the board
// center, head first, heading right.
func InitialBody() []Position {
	c := GridSize / 2
	return []Position{
		{X: c, Y: c},
		{X: c - 1, Y: c},
		{X: c - 2, Y: c},
	}
}
