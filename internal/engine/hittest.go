package engine

import "math"

// hitMargin extends every particle's clickable radius beyond its drawn size.
const hitMargin = 6.0

// Tooltip geometry.
const (
	tooltipWidth  = 220.0
	tooltipHeight = 96.0
	tooltipMargin = 8.0
)

// TooltipAnchor is the fixed screen position chosen for the sticky tooltip.
type TooltipAnchor struct {
	X, Y  float64
	Valid bool
}

// ParticleAt returns the live particle nearest to (x, y) within its hit
// radius (size + margin), or nil. Ties between overlapping particles break
// to the smallest distance, a deterministic choice; slice iteration order
// would also satisfy the contract but carries no meaning. Read-only: no
// particle or effect state is touched.
func (e *Engine) ParticleAt(x, y float64) *Particle {
	var best *Particle
	bestDist := math.MaxFloat64
	for _, p := range e.particles {
		dx, dy := p.X-x, p.Y-y
		dist := math.Hypot(dx, dy)
		if dist <= p.Size+hitMargin && dist < bestDist {
			best = p
			bestDist = dist
		}
	}
	return best
}

// HoverAt updates the sticky hover state from pointer coordinates. Once a
// particle is hovered it stays hovered until a different particle takes
// over or the particle is culled; moving the pointer into empty space does
// not clear it.
func (e *Engine) HoverAt(x, y float64) {
	hit := e.ParticleAt(x, y)
	if hit == nil || hit.ID == e.hoverID {
		return
	}
	e.hoverID = hit.ID
	e.tooltip = e.placeTooltip(hit, x, y)
	if e.onHover != nil {
		e.onHover(hit.ID)
	}
}

// HoverID returns the sticky-hovered particle id, or "".
func (e *Engine) HoverID() string { return e.hoverID }

// Tooltip returns the sticky tooltip anchor.
func (e *Engine) Tooltip() TooltipAnchor { return e.tooltip }

func (e *Engine) clearHover() {
	e.hoverID = ""
	e.tooltip = TooltipAnchor{}
	if e.onHover != nil {
		e.onHover("")
	}
}

// Click dispatches the log event under the pointer, if any, to the click
// callback. The callback receives a copy, so later mutation or culling of
// the particle cannot corrupt an already-dispatched event.
func (e *Engine) Click(x, y float64) {
	if e.onClick == nil {
		return
	}
	if p := e.ParticleAt(x, y); p != nil {
		e.onClick(p.Event)
	}
}

// placeTooltip walks a fixed ordered candidate list and returns the first
// anchor whose box fits entirely inside the viewport with a margin: above
// the particle's lane band, below it, left of the path start, right of the
// path end, then the four viewport corners. When nothing fits the anchor
// falls back to a pointer-relative offset.
func (e *Engine) placeTooltip(p *Particle, pointerX, pointerY float64) TooltipAnchor {
	laneHeight := e.height / LaneCount
	bandTop := float64(p.Lane) * laneHeight
	bandBottom := bandTop + laneHeight

	candidates := [][2]float64{
		{p.X - tooltipWidth/2, bandTop - tooltipHeight - tooltipMargin},
		{p.X - tooltipWidth/2, bandBottom + tooltipMargin},
		{tooltipMargin, p.Y - tooltipHeight/2},
		{e.width - tooltipWidth - tooltipMargin, p.Y - tooltipHeight/2},
		{tooltipMargin, tooltipMargin},
		{e.width - tooltipWidth - tooltipMargin, tooltipMargin},
		{tooltipMargin, e.height - tooltipHeight - tooltipMargin},
		{e.width - tooltipWidth - tooltipMargin, e.height - tooltipHeight - tooltipMargin},
	}

	for _, c := range candidates {
		if e.tooltipFits(c[0], c[1]) {
			return TooltipAnchor{X: c[0], Y: c[1], Valid: true}
		}
	}
	return TooltipAnchor{X: pointerX + 16, Y: pointerY + 16, Valid: true}
}

func (e *Engine) tooltipFits(x, y float64) bool {
	return x >= tooltipMargin && y >= tooltipMargin &&
		x+tooltipWidth <= e.width-tooltipMargin &&
		y+tooltipHeight <= e.height-tooltipMargin
}
