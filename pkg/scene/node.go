package scene

import "math"

// Rect is an axis-aligned rectangle in canvas units.
type Rect struct {
	X, Y, W, H float64
}

// RectFromPoints returns the rectangle spanned by two corners in any order,
// as a rubber-band selection is dragged.
func RectFromPoints(x1, y1, x2, y2 float64) Rect {
	return Rect{
		X: math.Min(x1, x2),
		Y: math.Min(y1, y2),
		W: math.Abs(x2 - x1),
		H: math.Abs(y2 - y1),
	}
}

// Right returns the maximum x.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the maximum y.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Intersects reports whether r and o overlap or touch.
func (r Rect) Intersects(o Rect) bool {
	return !(o.X > r.Right() || o.Right() < r.X || o.Y > r.Bottom() || o.Bottom() < r.Y)
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Node is the capability every backend object exposes to the harness.
// Position is the node center; rotation is in degrees about the center.
type Node interface {
	ID() int
	Kind() Kind
	SetPosition(x, y float64)
	Position() (x, y float64)
	SetScale(s float64)
	Scale() float64
	SetRotation(deg float64)
	Rotation() float64
	// Size is the unscaled, unrotated size of the node.
	Size() (w, h float64)
	// Bounds is the axis-aligned box of the transformed node.
	Bounds() Rect
}

// Transform is the state shared by all backend nodes. Backends embed it and
// add whatever library objects they need to draw the node.
type Transform struct {
	id       int
	kind     Kind
	w, h     float64
	x, y     float64
	scale    float64
	rotation float64
}

// NewTransform returns an unscaled, unrotated node of intrinsic size w x h
// positioned at the origin.
func NewTransform(id int, kind Kind, w, h float64) Transform {
	return Transform{id: id, kind: kind, w: w, h: h, scale: 1}
}

func (t *Transform) ID() int                  { return t.id }
func (t *Transform) Kind() Kind               { return t.kind }
func (t *Transform) SetPosition(x, y float64) { t.x, t.y = x, y }
func (t *Transform) Position() (x, y float64) { return t.x, t.y }
func (t *Transform) SetScale(s float64)       { t.scale = s }
func (t *Transform) Scale() float64           { return t.scale }
func (t *Transform) Size() (w, h float64)     { return t.w, t.h }

// SetRotation normalises deg into [0, 360).
func (t *Transform) SetRotation(deg float64) {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	t.rotation = deg
}

func (t *Transform) Rotation() float64 { return t.rotation }

// Bounds returns the axis-aligned bounding box of the scaled and rotated node.
func (t *Transform) Bounds() Rect {
	hw, hh := t.w*t.scale/2, t.h*t.scale/2
	rad := t.rotation * math.Pi / 180
	sin, cos := math.Abs(math.Sin(rad)), math.Abs(math.Cos(rad))
	ex := hw*cos + hh*sin
	ey := hw*sin + hh*cos
	return Rect{X: t.x - ex, Y: t.y - ey, W: 2 * ex, H: 2 * ey}
}

var _ Node = (*Transform)(nil)
