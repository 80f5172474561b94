package engine

import (
	"log"
	"math/rand"
	"time"

	"flakwall/internal/weblog"
)

// Simulation constants. Distances are pixels, times are seconds.
const (
	spawnX          = -40.0 // off-screen-left sentinel
	offscreenMargin = 50.0
	moveScale       = 60.0 // px/s per unit of particle speed

	lanePadding = 8.0

	minSize  = 2.5
	maxSize  = 5.5
	minSpeed = 1.2
	maxSpeed = 2.6

	trailMax = 12

	explosionGrowth = 34.0 // px/s of ring expansion
	explosionCap    = 26.0
	glowDecay       = 2.4 // glow intensity per second

	calloutDuration = 1.4
	calloutRise     = 22.0 // px/s upward drift

	maxParticles = 1500
	maxSeenIDs   = 8192
)

// Options configure a new Engine.
type Options struct {
	Width, Height float64
	Speed         float64 // initial global speed multiplier
	Seed          int64   // zero seeds from the clock
	Now           func() time.Time

	// OnClick receives a copy of the log event under the pointer when the
	// canvas is clicked. Optional.
	OnClick func(weblog.Event)
	// OnHover reports the sticky-hovered log id, or "" when cleared.
	// Optional.
	OnHover func(id string)
}

// Engine owns the particle and effect collections and advances them once
// per frame. It is the single mutation root: the renderer and hit-tester
// only read. Not safe for concurrent use; the frame loop is the one caller.
type Engine struct {
	width, height float64
	speed         float64

	particles []*Particle
	effects   []*FeedGlow

	seen      map[string]struct{}
	seenOrder []string

	blocked int
	passed  int

	hoverID string
	tooltip TooltipAnchor

	pendingReset bool

	rng     *rand.Rand
	now     func() time.Time
	onClick func(weblog.Event)
	onHover func(string)
}

// New builds an engine. Width and height may be zero; Resize must then be
// called before the first Ingest.
func New(opts Options) *Engine {
	speed := opts.Speed
	if speed <= 0 {
		speed = 1
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		width:   opts.Width,
		height:  opts.Height,
		speed:   speed,
		seen:    make(map[string]struct{}),
		rng:     rand.New(rand.NewSource(seed)),
		now:     now,
		onClick: opts.OnClick,
		onHover: opts.OnHover,
	}
}

// Resize updates the canvas geometry. Idempotent; live particles keep their
// trajectories, only future spawns and lane geometry change.
func (e *Engine) Resize(width, height float64) {
	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height
}

// BarrierX is the decision line where a particle's fate resolves.
func (e *Engine) BarrierX() float64 { return e.width / 2 }

// Width returns the current canvas width.
func (e *Engine) Width() float64 { return e.width }

// Height returns the current canvas height.
func (e *Engine) Height() float64 { return e.height }

// SetSpeed replaces the global speed multiplier, effective immediately for
// all particles including those already in flight.
func (e *Engine) SetSpeed(multiplier float64) {
	if multiplier > 0 {
		e.speed = multiplier
	}
}

// Speed returns the current global speed multiplier.
func (e *Engine) Speed() float64 { return e.speed }

// Blocked returns the number of rejected requests whose feed-glow effect
// has fully completed.
func (e *Engine) Blocked() int { return e.blocked }

// Passed returns the number of accepted requests that exited off-screen.
func (e *Engine) Passed() int { return e.passed }

// Particles exposes the live particle slice for the renderer and tests.
// Callers must not mutate or retain it past the current frame.
func (e *Engine) Particles() []*Particle { return e.particles }

// Effects exposes the live feed-glow slice under the same read-only terms.
func (e *Engine) Effects() []*FeedGlow { return e.effects }

// Reset schedules an atomic reset: at the start of the next Step both
// counters are zeroed and all live particles and effects are dropped.
// The seen-id set survives so ingestion stays idempotent across resets.
func (e *Engine) Reset() { e.pendingReset = true }

// Ingest spawns particles for events whose id has not been seen before.
// Duplicate and re-delivered ids are ignored, so feeding the same journal
// window twice creates nothing new.
func (e *Engine) Ingest(events []weblog.Event) {
	for _, ev := range events {
		if _, ok := e.seen[ev.ID]; ok {
			continue
		}
		e.remember(ev.ID)
		if len(e.particles) >= maxParticles {
			// Designed backpressure: evict the oldest particle rather
			// than refuse the newest event.
			e.particles = e.particles[1:]
		}
		e.particles = append(e.particles, e.spawn(ev.Normalize()))
	}
}

func (e *Engine) remember(id string) {
	e.seen[id] = struct{}{}
	e.seenOrder = append(e.seenOrder, id)
	if len(e.seenOrder) > maxSeenIDs {
		delete(e.seen, e.seenOrder[0])
		e.seenOrder = e.seenOrder[1:]
	}
}

// spawn is the particle factory. Panics when the engine has no geometry:
// ingesting before sizing is a caller ordering bug, not a runtime
// condition to mask.
func (e *Engine) spawn(ev weblog.Event) *Particle {
	if e.width <= 0 || e.height <= 0 {
		panic("engine: spawn before canvas sized")
	}

	lane := LaneForPath(ev.Path)
	laneHeight := e.height / LaneCount
	bandTop := float64(lane)*laneHeight + lanePadding
	band := laneHeight - 2*lanePadding
	if band < 1 {
		band = 1
	}
	y := bandTop + e.rng.Float64()*band

	targetX := e.width + offscreenMargin
	if ev.Rejected() {
		targetX = e.BarrierX()
	}

	return &Particle{
		ID:      ev.ID,
		Event:   ev,
		X:       spawnX,
		Y:       y,
		TargetX: targetX,
		Speed:   (minSpeed + e.rng.Float64()*(maxSpeed-minSpeed)) * e.speed,
		Size:    minSize + e.rng.Float64()*(maxSize-minSize),
		Lane:    lane,
		Color:   colorNeutral,
		Glow:    1,
		Phase:   PhaseMoving,
		Alive:   true,
	}
}

// Step advances the whole simulation by dt seconds: pending reset, every
// particle, every effect, then the end-of-frame cull.
func (e *Engine) Step(dt float64) {
	if e.pendingReset {
		e.pendingReset = false
		e.particles = nil
		e.effects = nil
		e.blocked = 0
		e.passed = 0
	}

	for _, p := range e.particles {
		e.stepParticle(p, dt)
	}
	e.stepEffects()
	e.cull()
}

// stepParticle advances one particle. A panic inside is isolated to that
// particle so one malformed entity cannot halt the frame loop.
func (e *Engine) stepParticle(p *Particle, dt float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("engine: particle %s failed: %v", p.ID, r)
			p.Alive = false
		}
	}()

	// A callout armed during this frame keeps its full duration until the
	// next one; only pre-existing callouts decay below.
	decaying := p.Callout

	if p.Phase == PhaseExploding {
		p.ExplosionSize += explosionGrowth * dt
		p.Glow -= glowDecay * dt
		if p.ExplosionSize > explosionCap || p.Glow <= 0 {
			p.Alive = false
		}
	} else {
		p.X += p.Speed * e.speed * dt * moveScale
		p.pushTrail()

		if p.Phase == PhaseMoving && p.X >= e.BarrierX() {
			e.resolveContact(p)
		}

		if p.X > e.width+offscreenMargin {
			if p.Alive && p.Phase == PhaseBlocked {
				e.passed++
			}
			p.Alive = false
		}
	}

	if decaying != nil {
		decaying.Remaining -= dt
		decaying.Y -= calloutRise * dt
		if decaying.Remaining <= 0 {
			p.Callout = nil
		}
	}
}

// resolveContact fires the one-shot barrier transition: reveal the true
// status color, arm the callout, and pick the particle's fate. Callers
// guarantee p.Phase == PhaseMoving, which is what makes this exactly-once.
func (e *Engine) resolveContact(p *Particle) {
	p.Color = StatusColor(p.Event.Status)
	p.Callout = &Callout{
		X:         e.BarrierX(),
		Y:         p.Y - p.Size - 10,
		Remaining: calloutDuration,
		Total:     calloutDuration,
	}

	if p.Event.Rejected() {
		p.Phase = PhaseExploding
		p.X = e.BarrierX()
		e.spawnFeedGlow(p)
	} else {
		p.Phase = PhaseBlocked
	}
}

func (p *Particle) pushTrail() {
	p.Trail = append(p.Trail, TrailPoint{X: p.X, Y: p.Y})
	if len(p.Trail) > trailMax {
		p.Trail = p.Trail[1:]
	}
	// Linear ramp: newest point most opaque.
	n := len(p.Trail)
	for i := range p.Trail {
		p.Trail[i].Alpha = float64(i+1) / float64(n)
	}
}

func (e *Engine) cull() {
	alive := e.particles[:0]
	for _, p := range e.particles {
		if p.Alive {
			alive = append(alive, p)
		}
	}
	e.particles = alive

	if e.hoverID != "" && e.findParticle(e.hoverID) == nil {
		e.clearHover()
	}

	live := e.effects[:0]
	for _, fx := range e.effects {
		if !fx.done {
			live = append(live, fx)
		}
	}
	e.effects = live
}

func (e *Engine) findParticle(id string) *Particle {
	for _, p := range e.particles {
		if p.ID == id {
			return p
		}
	}
	return nil
}
