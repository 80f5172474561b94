package engine

import (
	"image/color"

	"flakwall/internal/weblog"
)

// Phase is a particle's lifecycle state. Transitions are monotonic:
// Moving goes to exactly one of Blocked or Exploding at barrier contact,
// and neither of those ever transitions again.
type Phase int

const (
	// PhaseMoving is the initial in-flight state.
	PhaseMoving Phase = iota
	// PhaseBlocked marks a request the barrier let through; the particle
	// keeps drifting right until the off-screen cull.
	PhaseBlocked
	// PhaseExploding marks a rejected request detonating at the barrier.
	PhaseExploding
)

// TrailPoint is one element of a particle's fading position history.
type TrailPoint struct {
	X, Y  float64
	Alpha float64
}

// Callout is the one-shot status badge a particle shows at barrier contact.
// It is anchored at the barrier and rises while fading out.
type Callout struct {
	X, Y      float64
	Remaining float64 // seconds
	Total     float64
}

// Opacity returns the callout's current fade, 1 at spawn down to 0.
func (c *Callout) Opacity() float64 {
	if c.Total <= 0 {
		return 0
	}
	op := c.Remaining / c.Total
	if op < 0 {
		return 0
	}
	return op
}

// Particle is one animated log event. Owned by the Engine; everything else
// reads it within a single frame only.
type Particle struct {
	ID    string
	Event weblog.Event

	X, Y    float64
	TargetX float64
	Speed   float64 // base units, scaled by the multiplier each frame
	Size    float64
	Lane    int

	Color color.RGBA
	Glow  float64
	Trail []TrailPoint

	Phase         Phase
	ExplosionSize float64
	Callout       *Callout

	Alive bool
}
