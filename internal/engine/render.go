package engine

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"flakwall/internal/stats"
)

const (
	labelFontSize = 11.0
	hudFontSize   = 15.0
)

// Renderer draws one frame of engine state. It is a pure read pass: engine
// state is never mutated here, only pixels are written. Every frame starts
// from a full clear; there is no alpha-accumulation motion blur, which
// avoids ghosting artifacts.
type Renderer struct {
	regular *text.GoTextFaceSource
	mono    *text.GoTextFaceSource
}

// NewRenderer loads the embedded fonts.
func NewRenderer() (*Renderer, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	mono, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("load mono font: %w", err)
	}
	return &Renderer{regular: regular, mono: mono}, nil
}

// Draw renders the full scene. Order matters: grid, barrier, beams and
// particles first; callouts, HUD and tooltip last so they are never
// occluded.
func (r *Renderer) Draw(screen *ebiten.Image, e *Engine) {
	screen.Fill(colorBackground)

	r.drawLanes(screen, e)
	r.drawBarrier(screen, e)
	for _, fx := range e.Effects() {
		r.drawFeedGlow(screen, fx)
	}
	for _, p := range e.Particles() {
		r.drawParticle(screen, p, p.ID == e.HoverID())
	}
	for _, p := range e.Particles() {
		if p.Callout != nil {
			r.drawCallout(screen, p)
		}
	}
	r.drawHUD(screen, e)
	r.drawTooltip(screen, e)
}

func (r *Renderer) drawLanes(screen *ebiten.Image, e *Engine) {
	w := float32(e.Width())
	laneHeight := e.Height() / LaneCount
	face := &text.GoTextFace{Source: r.mono, Size: labelFontSize}

	for lane := 0; lane < LaneCount; lane++ {
		y := float32(float64(lane) * laneHeight)
		if lane > 0 {
			vector.StrokeLine(screen, 0, y, w, y, 1, colorLaneLine, true)
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(6, float64(y)+4)
		op.ColorScale.ScaleWithColor(colorLaneLabel)
		text.Draw(screen, "lane "+strconv.Itoa(lane), face, op)
	}
}

func (r *Renderer) drawBarrier(screen *ebiten.Image, e *Engine) {
	x := float32(e.BarrierX())
	h := float32(e.Height())
	// Halo first, then the bright core.
	vector.StrokeLine(screen, x, 0, x, h, 7, scaleAlpha(colorBarrier, 0.12), true)
	vector.StrokeLine(screen, x, 0, x, h, 3, scaleAlpha(colorBarrier, 0.35), true)
	vector.StrokeLine(screen, x, 0, x, h, 1, colorBarrier, true)
}

func (r *Renderer) drawParticle(screen *ebiten.Image, p *Particle, hovered bool) {
	// Trail segments, oldest to newest.
	for i := 1; i < len(p.Trail); i++ {
		prev, curr := p.Trail[i-1], p.Trail[i]
		seg := scaleAlpha(p.Color, curr.Alpha*0.45)
		vector.StrokeLine(screen,
			float32(prev.X), float32(prev.Y),
			float32(curr.X), float32(curr.Y),
			1.5, seg, true)
	}

	x, y := float32(p.X), float32(p.Y)

	// Radial glow, scaled up while exploding.
	glowScale := 2.2
	if p.Phase == PhaseExploding {
		glowScale = 3.5
	}
	vector.DrawFilledCircle(screen, x, y,
		float32(p.Size*glowScale), scaleAlpha(p.Color, 0.18*p.Glow), true)

	if p.Phase == PhaseExploding {
		// Expanding multi-ring burst instead of a body.
		for ring := 0; ring < 3; ring++ {
			radius := p.ExplosionSize * (1 - 0.25*float64(ring))
			if radius <= 0 {
				continue
			}
			alpha := p.Glow * (1 - 0.3*float64(ring))
			vector.StrokeCircle(screen, x, y, float32(radius), 2,
				scaleAlpha(p.Color, alpha), true)
		}
	} else {
		vector.DrawFilledCircle(screen, x, y, float32(p.Size), p.Color, true)
	}

	if hovered {
		vector.StrokeCircle(screen, x, y, float32(p.Size+5), 1.5,
			scaleAlpha(colorBarrier, 0.9), true)
		vector.StrokeCircle(screen, x, y, float32(p.Size+9), 1,
			scaleAlpha(colorBarrier, 0.4), true)
	}
}

func (r *Renderer) drawFeedGlow(screen *ebiten.Image, fx *FeedGlow) {
	x := float32(fx.X)
	y := float32(fx.Y)

	// Radial halo around the leading point.
	vector.DrawFilledCircle(screen, x, y, float32(fx.Size*3),
		scaleAlpha(fx.Color, 0.15*fx.Opacity), true)

	// Beam body: a short gradient trail behind the leading point,
	// approximated with stacked segments of decreasing alpha.
	const segments = 6
	tail := (fx.StartY - fx.Y) * 0.35
	if tail > 80 {
		tail = 80
	}
	step := tail / segments
	for i := 0; i < segments; i++ {
		top := fx.Y + float64(i)*step
		alpha := fx.Opacity * (1 - float64(i)/segments) * 0.6
		vector.StrokeLine(screen, x, float32(top), x, float32(top+step),
			3, scaleAlpha(fx.Color, alpha), true)
	}

	// Bright core and leading point.
	vector.StrokeLine(screen, x, y, x, float32(fx.Y+tail*0.4), 1.5,
		scaleAlpha(colorHUD, 0.8*fx.Opacity), true)
	vector.DrawFilledCircle(screen, x, y, float32(fx.Size*0.6),
		scaleAlpha(colorHUD, fx.Opacity), true)
}

func (r *Renderer) drawCallout(screen *ebiten.Image, p *Particle) {
	c := p.Callout
	opacity := c.Opacity()
	label := strconv.Itoa(p.Event.Status)

	face := &text.GoTextFace{Source: r.mono, Size: labelFontSize}
	tw, th := text.Measure(label, face, 0)

	boxX := float32(c.X - tw/2 - 4)
	boxY := float32(c.Y - th/2 - 2)
	vector.DrawFilledRect(screen, boxX, boxY, float32(tw+8), float32(th+4),
		scaleAlpha(colorBackground, 0.8*opacity), true)

	op := &text.DrawOptions{}
	op.GeoM.Translate(c.X-tw/2, c.Y-th/2)
	op.ColorScale.ScaleWithColor(scaleAlpha(p.Color, opacity))
	text.Draw(screen, label, face, op)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, e *Engine) {
	face := &text.GoTextFace{Source: r.mono, Size: hudFontSize}

	blocked := fmt.Sprintf("BLOCKED %d", e.Blocked())
	op := &text.DrawOptions{}
	op.GeoM.Translate(e.BarrierX()-130, 12)
	op.ColorScale.ScaleWithColor(colorServer)
	text.Draw(screen, blocked, face, op)

	passed := fmt.Sprintf("PASSED %d", e.Passed())
	op = &text.DrawOptions{}
	op.GeoM.Translate(e.BarrierX()+24, 12)
	op.ColorScale.ScaleWithColor(colorSuccess)
	text.Draw(screen, passed, face, op)
}

// drawTraffic prints the live request rate and running total under the
// counters, centered on the barrier.
func (r *Renderer) drawTraffic(screen *ebiten.Image, e *Engine, snap stats.Snapshot) {
	face := &text.GoTextFace{Source: r.mono, Size: labelFontSize}
	line := trafficLine(snap)
	tw, _ := text.Measure(line, face, 0)

	op := &text.DrawOptions{}
	op.GeoM.Translate(e.BarrierX()-tw/2, 34)
	op.ColorScale.ScaleWithColor(scaleAlpha(colorHUD, 0.8))
	text.Draw(screen, line, face, op)
}

func trafficLine(snap stats.Snapshot) string {
	return fmt.Sprintf("%.1f req/s   %d total", snap.PerSecond, snap.Total)
}

func (r *Renderer) drawTooltip(screen *ebiten.Image, e *Engine) {
	id := e.HoverID()
	anchor := e.Tooltip()
	if id == "" || !anchor.Valid {
		return
	}
	p := e.findParticle(id)
	if p == nil {
		return
	}

	x, y := float32(anchor.X), float32(anchor.Y)
	vector.DrawFilledRect(screen, x, y, tooltipWidth, tooltipHeight,
		scaleAlpha(colorBackground, 0.92), true)
	vector.StrokeRect(screen, x, y, tooltipWidth, tooltipHeight, 1,
		scaleAlpha(colorBarrier, 0.6), true)

	face := &text.GoTextFace{Source: r.regular, Size: labelFontSize}
	ev := p.Event
	lines := []string{
		fmt.Sprintf("%s %s", ev.Method, truncate(ev.Path, 26)),
		fmt.Sprintf("status %d   %s", ev.Status, ev.IP),
		fmt.Sprintf("%.0f ms   %d bytes", ev.ResponseTime, ev.Bytes),
		truncate(ev.UserAgent, 32),
		ev.Time.Format("15:04:05.000"),
	}
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(anchor.X+8, anchor.Y+6+float64(i)*16)
		op.ColorScale.ScaleWithColor(colorHUD)
		text.Draw(screen, line, face, op)
	}
}

// truncate shortens s to at most n runes, cutting on rune boundaries so a
// multi-byte path or user agent is never split mid-character.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
