package engine

import "image/color"

// Palette. Channel values are blended numerically; serialization to a draw
// call parameter happens only inside the renderer.
var (
	colorBackground = color.RGBA{10, 12, 18, 255}
	colorLaneLine   = color.RGBA{32, 38, 50, 255}
	colorLaneLabel  = color.RGBA{90, 100, 120, 255}
	colorBarrier    = color.RGBA{80, 200, 255, 255}
	colorNeutral    = color.RGBA{148, 155, 170, 255} // in-flight, fate not yet revealed
	colorHUD        = color.RGBA{210, 215, 225, 255}

	colorSuccess  = color.RGBA{80, 220, 120, 255}  // 2xx
	colorRedirect = color.RGBA{80, 160, 255, 255}  // 3xx
	colorClient   = color.RGBA{255, 170, 60, 255}  // 4xx
	colorServer   = color.RGBA{255, 70, 80, 255}   // 5xx
	colorGlowBeam = color.RGBA{255, 110, 110, 255} // feed glow beams
)

// StatusColor resolves the display color for a status code. Particles keep
// the neutral color until barrier contact; this is where the reveal happens.
func StatusColor(status int) color.RGBA {
	switch {
	case status >= 500:
		return colorServer
	case status >= 400:
		return colorClient
	case status >= 300:
		return colorRedirect
	case status >= 200:
		return colorSuccess
	default:
		return colorNeutral
	}
}

// scaleAlpha returns c with all channels scaled by a in [0,1]. Colors are
// premultiplied, so RGB scales along with A.
func scaleAlpha(c color.RGBA, a float64) color.RGBA {
	if a <= 0 {
		return color.RGBA{}
	}
	if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
