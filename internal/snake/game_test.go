package snake

import (
	"testing"
	"time"
)

// testGame returns a seeded game whose clock is a controllable fake.
func testGame(t *testing.T) (*Game, *time.Time) {
	t.Helper()
	now := time.Unix(0, 0)
	g := NewGame(DefaultTuning(), 42)
	g.now = func() time.Time { return now }
	return g, &now
}

func TestGameStartsIdle(t *testing.T) {
	g, _ := testGame(t)
	if g.State() != StateIdle {
		t.Errorf("Expected idle, got %v", g.State())
	}
	if g.Run() != 0 {
		t.Errorf("Expected run 0 before first start, got %d", g.Run())
	}
}

func TestGameStart(t *testing.T) {
	g, _ := testGame(t)
	g.Start()

	if g.State() != StatePlaying {
		t.Fatalf("Expected playing, got %v", g.State())
	}
	if g.Run() != 1 {
		t.Errorf("Expected run 1, got %d", g.Run())
	}
	if g.Score() != 0 {
		t.Errorf("Expected score 0, got %d", g.Score())
	}
	if len(g.body) != 3 {
		t.Errorf("Expected fresh 3-segment body, got %d", len(g.body))
	}
	if g.dir != DirRight {
		t.Errorf("Expected initial direction right, got %v", g.dir)
	}
}

func TestGameStartOnlyFromIdleOrGameOver(t *testing.T) {
	g, _ := testGame(t)
	g.Start()

	// Start mid-run is ignored.
	g.Start()
	if g.Run() != 1 {
		t.Errorf("Start during playing bumped run to %d", g.Run())
	}

	g.TogglePause()
	g.Start()
	if g.Run() != 1 || g.State() != StatePaused {
		t.Error("Start during paused should be ignored")
	}
}

func TestGameRestartIncrementsRun(t *testing.T) {
	g, now := testGame(t)
	g.Start()
	killGame(t, g)
	*now = now.Add(g.Plan().Duration())
	g.FinishDying()

	if g.State() != StateGameOver {
		t.Fatalf("Expected gameOver, got %v", g.State())
	}

	g.Start()
	if g.Run() != 2 {
		t.Errorf("Expected run 2 after restart, got %d", g.Run())
	}
	if g.State() != StatePlaying {
		t.Errorf("Expected playing after restart, got %v", g.State())
	}
	if g.Score() != 0 {
		t.Errorf("Score not reset: %d", g.Score())
	}
}

func TestGamePauseFreezesState(t *testing.T) {
	g, _ := testGame(t)
	g.Start()
	head := g.body[0]

	g.TogglePause()
	if g.State() != StatePaused {
		t.Fatalf("Expected paused, got %v", g.State())
	}

	// Ticks and steering are inert while paused.
	g.Tick()
	g.Steer(DirUp)
	if g.body[0] != head {
		t.Error("Body moved while paused")
	}
	if g.pending != DirRight {
		t.Error("Steering accepted while paused")
	}

	g.TogglePause()
	if g.State() != StatePlaying {
		t.Errorf("Expected playing after unpause, got %v", g.State())
	}
}

func TestGamePauseOnlyWhilePlaying(t *testing.T) {
	g, _ := testGame(t)

	g.TogglePause()
	if g.State() != StateIdle {
		t.Errorf("Pause from idle changed state to %v", g.State())
	}

	g.Start()
	killGame(t, g)
	g.TogglePause()
	if g.State() != StateDying {
		t.Errorf("Pause during dying changed state to %v", g.State())
	}
}

func TestGameSteerRejectsReversal(t *testing.T) {
	g, _ := testGame(t)
	g.Start()

	// Travelling right; left is a reversal and must be dropped.
	g.Steer(DirLeft)
	if g.pending != DirRight {
		t.Errorf("Reversal accepted: pending %v", g.pending)
	}

	g.Steer(DirUp)
	if g.pending != DirUp {
		t.Errorf("Expected pending up, got %v", g.pending)
	}
}

func TestGameSteerLastWriterWins(t *testing.T) {
	g, _ := testGame(t)
	g.Start()

	// Multiple inputs between ticks: only the last valid one applies.
	g.Steer(DirUp)
	g.Steer(DirDown)
	if g.pending != DirDown {
		t.Errorf("Expected pending down, got %v", g.pending)
	}

	g.Tick()
	if g.dir != DirDown {
		t.Errorf("Expected applied direction down, got %v", g.dir)
	}
}

func TestGameSteerReversalCheckedAgainstTravel(t *testing.T) {
	g, _ := testGame(t)
	g.Start()

	// Buffer up, then try down. Down reverses the buffered intent but
	// not the applied direction (right), so it must win.
	g.Steer(DirUp)
	g.Steer(DirDown)
	if g.pending != DirDown {
		t.Errorf("Expected pending down, got %v", g.pending)
	}
}

func TestGameTickIntoDying(t *testing.T) {
	g, _ := testGame(t)
	g.Start()
	killGame(t, g)

	if g.State() != StateDying {
		t.Fatalf("Expected dying, got %v", g.State())
	}
	if len(g.Plan().Bursts) == 0 {
		t.Error("Expected a dispersal plan on death")
	}

	// Further ticks are inert.
	score := g.Score()
	g.Tick()
	if g.State() != StateDying || g.Score() != score {
		t.Error("Tick during dying changed state")
	}
}

func TestGameFinishDyingWaitsForPlan(t *testing.T) {
	g, now := testGame(t)
	g.Start()
	killGame(t, g)

	// Too early: the dispersal must play out in full.
	g.FinishDying()
	if g.State() != StateDying {
		t.Errorf("FinishDying fired early, state %v", g.State())
	}

	*now = now.Add(g.Plan().Duration() - time.Millisecond)
	g.FinishDying()
	if g.State() != StateDying {
		t.Errorf("FinishDying fired %v early", time.Millisecond)
	}

	*now = now.Add(time.Millisecond)
	g.FinishDying()
	if g.State() != StateGameOver {
		t.Errorf("Expected gameOver, got %v", g.State())
	}
}

func TestGameFinishDyingOnlyFromDying(t *testing.T) {
	g, _ := testGame(t)
	g.FinishDying()
	if g.State() != StateIdle {
		t.Errorf("FinishDying from idle changed state to %v", g.State())
	}

	g.Start()
	g.FinishDying()
	if g.State() != StatePlaying {
		t.Errorf("FinishDying from playing changed state to %v", g.State())
	}
}

func TestGameTickInterval(t *testing.T) {
	g, _ := testGame(t)
	g.Start()
	if got := g.TickInterval(); got != 150*time.Millisecond {
		t.Errorf("Expected 150ms at score 0, got %v", got)
	}
	g.score = 8
	if got := g.TickInterval(); got != 130*time.Millisecond {
		t.Errorf("Expected 130ms at score 8, got %v", got)
	}
}

func TestGameSnapshotCopiesBody(t *testing.T) {
	g, _ := testGame(t)
	g.Start()

	snap := g.Snapshot()
	if snap.State != StatePlaying || snap.Run != 1 {
		t.Errorf("Snapshot state/run mismatch: %v/%d", snap.State, snap.Run)
	}
	if len(snap.Body) != len(g.body) {
		t.Fatalf("Snapshot body length %d, want %d", len(snap.Body), len(g.body))
	}

	// Mutating the snapshot must not touch the live game.
	snap.Body[0] = Position{X: -1, Y: -1}
	if g.body[0] == snap.Body[0] {
		t.Error("Snapshot shares backing array with game body")
	}
}

// killGame drives the snake straight into the right wall.
func killGame(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < GridSize+2; i++ {
		if g.State() != StatePlaying {
			return
		}
		g.Tick()
	}
	t.Fatal("Snake did not die against the wall")
}
