package engine

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"flakwall/internal/feed"
	"flakwall/internal/stats"
)

// maxFrameDelta clamps delta time across stalls (window drag, debugger)
// so particles never teleport through the barrier check.
const maxFrameDelta = 0.1

// Game adapts the engine to ebiten's frame loop: it computes per-frame
// delta time, drains new journal events, routes input, and forwards
// resizes. All mutation happens here, on ebiten's single update thread.
type Game struct {
	ctx      context.Context
	engine   *Engine
	journal  *feed.Journal
	stats    *stats.Collector
	renderer *Renderer

	cursor uint64
	last   time.Time
	paused bool
}

// GameOptions wires a Game.
type GameOptions struct {
	Context  context.Context
	Engine   *Engine
	Journal  *feed.Journal
	Stats    *stats.Collector
	Renderer *Renderer
}

// NewGame builds the ebiten adapter.
func NewGame(opts GameOptions) *Game {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return &Game{
		ctx:      ctx,
		engine:   opts.Engine,
		journal:  opts.Journal,
		stats:    opts.Stats,
		renderer: opts.Renderer,
	}
}

// Update runs once per tick: ingest, input, simulate.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	now := time.Now()
	dt := 0.0
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds()
		if dt > maxFrameDelta {
			dt = maxFrameDelta
		}
	}
	g.last = now

	events, next := g.journal.Since(g.cursor)
	g.cursor = next
	if len(events) > 0 {
		g.engine.Ingest(events)
		if g.stats != nil {
			for _, ev := range events {
				g.stats.Observe(ev)
			}
		}
	}

	g.handleInput()

	if !g.paused {
		g.engine.Step(dt)
	}
	return nil
}

func (g *Game) handleInput() {
	mx, my := ebiten.CursorPosition()
	g.engine.HoverAt(float64(mx), float64(my))
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.engine.Click(float64(mx), float64(my))
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.engine.Reset()
		if g.stats != nil {
			g.stats.Reset()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.engine.SetSpeed(g.engine.Speed() * 1.25)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.engine.SetSpeed(g.engine.Speed() / 1.25)
	}
}

// Draw renders the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.engine)
	if g.stats != nil {
		g.renderer.drawTraffic(screen, g.engine, g.stats.Snapshot(1))
	}
}

// Layout reports the logical canvas size and keeps the engine's geometry in
// step with the window. Resizing is idempotent and only affects future
// spawn placement, never particles already in flight.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.engine.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}
