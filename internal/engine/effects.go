package engine

import (
	"image/color"
	"math"
	"time"
)

const (
	glowTravelSpeed = 260.0 // px/s of vertical beam travel
	glowTargetY     = 24.0  // beam destination near the top edge
	glowBaseSize    = 7.0
)

// FeedGlow is the transient laser-beam effect spawned when a rejected
// request detonates at the barrier. Progress is derived from wall-clock
// elapsed time, not accumulated frame deltas, so the animation's real
// duration is exact regardless of frame jitter.
type FeedGlow struct {
	ID     string
	X      float64 // fixed at the barrier
	StartY float64
	EndY   float64

	Progress float64 // in [0,1]
	Y        float64 // current eased position
	Opacity  float64
	Size     float64
	Color    color.RGBA

	start time.Time
	done  bool
}

func (e *Engine) spawnFeedGlow(p *Particle) {
	e.effects = append(e.effects, &FeedGlow{
		ID:     p.ID,
		X:      e.BarrierX(),
		StartY: p.Y,
		EndY:   glowTargetY,
		Y:      p.Y,
		Size:   glowBaseSize,
		Color:  colorGlowBeam,
		start:  e.now(),
	})
}

// stepEffects advances every live effect. An effect that reaches full
// progress is destroyed and increments the blocked counter exactly once;
// that completion, not explosion start, is where a rejection is counted.
func (e *Engine) stepEffects() {
	now := e.now()
	for _, fx := range e.effects {
		if fx.done {
			continue
		}
		fx.update(now)
		if fx.Progress >= 1 {
			fx.done = true
			e.blocked++
		}
	}
}

func (fx *FeedGlow) update(now time.Time) {
	distance := math.Abs(fx.StartY - fx.EndY)
	duration := distance / glowTravelSpeed
	if duration <= 0 {
		fx.Progress = 1
		fx.Y = fx.EndY
		fx.Opacity = 0
		return
	}

	elapsed := now.Sub(fx.start).Seconds()
	progress := elapsed / duration
	if progress > 1 {
		progress = 1
	}
	fx.Progress = progress
	fx.Y = fx.StartY + (fx.EndY-fx.StartY)*easeOutCubic(progress)
	fx.Opacity = rampOpacity(progress)
}

// easeOutCubic gives the beam a fast start and slow finish.
func easeOutCubic(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv*inv
}

// rampOpacity fades the beam in over the first 10% of progress and out
// over the final 10%, avoiding pop-in and pop-out.
func rampOpacity(t float64) float64 {
	switch {
	case t < 0.1:
		return t / 0.1
	case t > 0.9:
		return (1 - t) / 0.1
	default:
		return 1
	}
}
