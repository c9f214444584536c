package snake

import (
	"math/rand"
	"time"
)

// State is the run state machine:
//
//	idle → playing ⇄ paused
//	playing → dying → gameOver → playing (restart)
//
// Dying is mandatory and uninterruptible: it lasts at least the
// dispersal plan's duration before gameOver is reachable.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateDying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateDying:
		return "dying"
	case StateGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// Game owns all mutable run state. It is not safe for concurrent use:
// the driving loop (the tick clock's consumer) is the sole writer, and
// external readers go through Snapshot.
type Game struct {
	tuning Tuning
	rng    *rand.Rand
	now    func() time.Time

	state   State
	run     int // run identifier, bumped on every Start
	body    []Position
	dir     Direction // applied direction of travel
	pending Direction // buffered intent, committed at the next tick
	food    Position
	score   int

	plan    DispersalPlan
	dyingAt time.Time
}

// NewGame creates a game in the idle state.
func NewGame(t Tuning, seed int64) *Game {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Game{
		tuning: t,
		rng:    rand.New(rand.NewSource(seed)),
		now:    time.Now,
	}
}

// Start begins a fresh run from idle or gameOver. The run identifier is
// incremented so anything scheduled against the previous run (ticks,
// death timers, score submission) can be fenced off.
func (g *Game) Start() {
	if g.state != StateIdle && g.state != StateGameOver {
		return
	}
	g.run++
	g.body = InitialBody()
	g.dir = DirRight
	g.pending = DirRight
	g.food = SpawnFood(g.body, g.rng)
	g.score = 0
	g.plan = DispersalPlan{}
	g.state = StatePlaying
}

// TogglePause flips between playing and paused. Spatial state is frozen
// while paused; time simply does not advance.
func (g *Game) TogglePause() {
	switch g.state {
	case StatePlaying:
		g.state = StatePaused
	case StatePaused:
		g.state = StatePlaying
	}
}

// Steer records a directional intent for the next tick. Reversals of
// the current direction of travel are discarded; between ticks the last
// valid writer wins, with no queueing.
func (g *Game) Steer(d Direction) {
	if g.state != StatePlaying {
		return
	}
	if d == g.dir.Opposite() {
		return
	}
	g.pending = d
}

// Tick advances the simulation by one step. On collision the game
// enters dying immediately and builds the dispersal plan; the caller
// must stop the tick clock and schedule FinishDying after
// Plan().Duration().
func (g *Game) Tick() {
	if g.state != StatePlaying {
		return
	}
	g.dir = g.pending

	out := Advance(g.body, g.dir, g.food, g.rng)
	if out.Collided {
		g.plan = NewDispersalPlan(g.body, g.tuning, g.rng)
		g.dyingAt = g.now()
		g.state = StateDying
		return
	}
	g.body = out.Body
	g.food = out.Food
	if out.Ate {
		g.score++
	}
}

// FinishDying moves dying → gameOver. It refuses to transition before
// the dispersal plan's full duration has elapsed, so the death sequence
// is always visible before a score becomes submittable.
func (g *Game) FinishDying() {
	if g.state != StateDying {
		return
	}
	if g.now().Sub(g.dyingAt) < g.plan.Duration() {
		return
	}
	g.state = StateGameOver
}

// State returns the current state machine state.
func (g *Game) State() State { return g.state }

// Run returns the current run identifier. Zero before the first Start.
func (g *Game) Run() int { return g.run }

// Score returns the current run score.
func (g *Game) Score() int { return g.score }

// TickInterval returns the effective tick interval for the current
// score per the speed ramp.
func (g *Game) TickInterval() time.Duration {
	return g.tuning.Interval(g.score)
}

// Plan returns the dispersal plan of the current death. Zero value
// outside dying/gameOver.
func (g *Game) Plan() DispersalPlan { return g.plan }

// DyingElapsed returns how long the game has been in the dying state.
func (g *Game) DyingElapsed() time.Duration {
	if g.state != StateDying && g.state != StateGameOver {
		return 0
	}
	return g.now().Sub(g.dyingAt)
}
