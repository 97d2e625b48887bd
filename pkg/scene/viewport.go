package scene

import "math"

// Zoom limits applied by [Viewport.SetZoom].
const (
	MinZoom = 0.06
	MaxZoom = 8.0
)

// Viewport maps scene coordinates to output pixels:
// screen = scene*Zoom + Pan.
type Viewport struct {
	Zoom       float64
	PanX, PanY float64
}

// DefaultViewport is the identity mapping.
func DefaultViewport() Viewport { return Viewport{Zoom: 1} }

// SetZoom sets the zoom factor clamped to [MinZoom, MaxZoom].
// Non-finite or non-positive values reset to 1.
func (v *Viewport) SetZoom(z float64) {
	if !(z > 0) || math.IsInf(z, 0) {
		z = 1
	}
	v.Zoom = math.Max(MinZoom, math.Min(MaxZoom, z))
}

// Pan moves the viewport by dx, dy screen pixels.
func (v *Viewport) Pan(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}

// Factor returns the zoom factor, treating an unset zoom as 1.
func (v Viewport) Factor() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// ToScreen converts a scene point into output pixels.
func (v Viewport) ToScreen(x, y float64) (float64, float64) {
	z := v.Factor()
	return x*z + v.PanX, y*z + v.PanY
}

// ToScene converts an output pixel into scene coordinates.
func (v Viewport) ToScene(x, y float64) (float64, float64) {
	z := v.Factor()
	return (x - v.PanX) / z, (y - v.PanY) / z
}

// RectToScene converts a screen rectangle into scene coordinates.
func (v Viewport) RectToScene(r Rect) Rect {
	x, y := v.ToScene(r.X, r.Y)
	z := v.Factor()
	return Rect{X: x, Y: y, W: r.W / z, H: r.H / z}
}

// OutputSize returns the pixel size needed to show a w x h scene.
func (v Viewport) OutputSize(w, h float64) (int, int) {
	z := v.Factor()
	return max(int(math.Ceil(w*z+v.PanX)), 1), max(int(math.Ceil(h*z+v.PanY)), 1)
}
