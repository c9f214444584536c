package snake

import (
	"math"
	"math/rand"
	"time"
)

// maxBurstDistance is the largest displacement (in cells) a dispersing
// segment may travel before clamping to the board edge.
const maxBurstDistance = 3.0

// SegmentBurst is the animation plan for one body segment during the
// dying state: where it starts, how far it drifts, how it spins and
// when it begins moving.
type SegmentBurst struct {
	From     Position
	DX, DY   float64       // drift in cells, bounded by the board edge
	Rotation float64       // radians, applied over the crumble phase
	Delay    time.Duration // staggered start, smaller near the head
}

// DispersalPlan is the precomputed per-segment animation for one death.
// Pure presentation data; it never influences gameplay.
type DispersalPlan struct {
	Bursts  []SegmentBurst
	Crumble time.Duration
	Stagger time.Duration // maximum stagger window
	Fade    time.Duration
}

// Duration is the minimum time the dying state must last before the
// game may reach gameOver.
func (p DispersalPlan) Duration() time.Duration {
	return p.Crumble + p.Stagger + p.Fade
}

// NewDispersalPlan builds the dispersal animation for the given body.
// Each segment gets a pseudo-random drift vector clamped so the segment
// cannot leave the board, a rotation, and a start delay proportional to
// its index (head first) capped at the stagger window.
func NewDispersalPlan(body []Position, t Tuning, rng *rand.Rand) DispersalPlan {
	bursts := make([]SegmentBurst, len(body))
	for i, seg := range body {
		angle := rng.Float64() * 2 * math.Pi
		dist := 1.0 + rng.Float64()*(maxBurstDistance-1.0)
		dx := clampDrift(math.Cos(angle)*dist, seg.X)
		dy := clampDrift(math.Sin(angle)*dist, seg.Y)

		delay := time.Duration(i) * t.StaggerStep
		if delay > t.MaxStagger {
			delay = t.MaxStagger
		}

		bursts[i] = SegmentBurst{
			From:     seg,
			DX:       dx,
			DY:       dy,
			Rotation: (rng.Float64() - 0.5) * 2 * math.Pi,
			Delay:    delay,
		}
	}
	return DispersalPlan{
		Bursts:  bursts,
		Crumble: t.CrumbleDuration,
		Stagger: t.MaxStagger,
		Fade:    t.FadeDuration,
	}
}

// clampDrift bounds a drift component so origin+drift stays on the board.
func clampDrift(d float64, origin int) float64 {
	lo := -float64(origin)
	hi := float64(GridSize - 1 - origin)
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}
