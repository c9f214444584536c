// Package snake implements the Snake simulation: a deterministic
// tick-based engine on a fixed grid, the run state machine, the death
// dispersal sequencer and the tick clock. It contains no terminal or
// network dependencies so the whole game is testable headless.
package snake

import "time"

// GridSize is the board edge length in cells. The board is square.
const GridSize = 25

// Position is a cell on the board. Valid coordinates are [0, GridSize).
type Position struct {
	X, Y int
}

// InBounds reports whether the position lies on the board.
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < GridSize && p.Y >= 0 && p.Y < GridSize
}

// Translate returns the adjacent cell one step in the given direction.
func (p Position) Translate(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Direction is a movement direction on the board.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Delta returns the per-tick cell offset for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// Opposite returns the reversal of the direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Tuning holds the timing parameters of a run. All values have spec'd
// defaults; they are exposed so the YAML config can override them.
type Tuning struct {
	BaseInterval time.Duration // tick interval at score 0
	IntervalStep time.Duration // interval reduction per speed step
	MinInterval  time.Duration // interval floor
	FoodsPerStep int           // food items per speed step

	CrumbleDuration time.Duration // dying phase 1
	StaggerStep     time.Duration // extra start delay per segment index
	MaxStagger      time.Duration // cap on the per-segment delay
	FadeDuration    time.Duration // dying phase 2
}

// DefaultTuning returns the standard game timing.
func DefaultTuning() Tuning {
	return Tuning{
		BaseInterval:    150 * time.Millisecond,
		IntervalStep:    10 * time.Millisecond,
		MinInterval:     70 * time.Millisecond,
		FoodsPerStep:    4,
		CrumbleDuration: 500 * time.Millisecond,
		StaggerStep:     30 * time.Millisecond,
		MaxStagger:      250 * time.Millisecond,
		FadeDuration:    300 * time.Millisecond,
	}
}

// Interval returns the effective tick interval for a score. The interval
// shrinks by one step for every FoodsPerStep food eaten, down to the
// floor. Monotonic and a function of score alone.
func (t Tuning) Interval(score int) time.Duration {
	if t.FoodsPerStep <= 0 {
		return t.BaseInterval
	}
	iv := t.BaseInterval - time.Duration(score/t.FoodsPerStep)*t.IntervalStep
	if iv < t.MinInterval {
		iv = t.MinInterval
	}
	return iv
}
