package grid

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	colorSaturation = 70.0
	lightnessBase   = 30.0
	lightnessRange  = 40.0
)

// HSL is a display color. H is in degrees [0, 360), S and L in percent.
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// String formats the color as a CSS hsl() value.
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%.1f, %.0f%%, %.1f%%)", c.H, c.S, c.L)
}

func (c HSL) colorful() colorful.Color {
	return colorful.Hsl(c.H, c.S/100, c.L/100).Clamped()
}

// Hex returns the color as #rrggbb.
func (c HSL) Hex() string {
	return c.colorful().Hex()
}

// RGBA returns the color as an opaque color.RGBA.
func (c HSL) RGBA() color.RGBA {
	r, g, b := c.colorful().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Color returns the repeatable pseudo-color of item index. The hue grows by
// a tenth of a degree per item; the lightness ramps from 30% to 70% across
// each ColorWindow items and then restarts.
func (c Config) Color(index int) HSL {
	w := c.window
	if w < 1 {
		w = 1
	}
	pos := index % w
	if pos < 0 {
		pos += w
	}
	return HSL{
		H: math.Mod(float64(index)/10, 360),
		S: colorSaturation,
		L: lightnessBase + lightnessRange*float64(pos)/float64(w),
	}
}
