package backend

import (
	"context"
	"math"
	"sync"

	"golang.org/x/image/font"

	"github.com/matzehuels/canvasbench/pkg/errors"
	"github.com/matzehuels/canvasbench/pkg/fonts"
	"github.com/matzehuels/canvasbench/pkg/grid"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

// Backend is one rendering library under test.
type Backend interface {
	scene.Factory

	// Name is the registry name, e.g. "svg".
	Name() string
	// Format is the file extension of what Draw produces.
	Format() string
	// Draw renders the current state of s.
	Draw(ctx context.Context, s *scene.Scene, f Frame) ([]byte, error)
}

// Limited is implemented by backends that cannot handle arbitrarily large
// scenes.
type Limited interface {
	MaxItems() int
}

// CheckCount reports an UNSUPPORTED error when count exceeds the backend's
// item limit.
func CheckCount(b Backend, count int) error {
	l, ok := b.(Limited)
	if !ok || l.MaxItems() <= 0 || count <= l.MaxItems() {
		return nil
	}
	return errors.New(errors.ErrCodeUnsupported, "%s backend supports at most %d items, got %d", b.Name(), l.MaxItems(), count)
}

// DefaultMaxPixels is the pixel budget of one raster frame: 128 Mpx, or
// 512 MiB of RGBA.
const DefaultMaxPixels = 1 << 27

// PixelBounded is implemented by backends that allocate a pixel canvas the
// size of the frame.
type PixelBounded interface {
	MaxPixels() int
}

// CheckPixels reports an UNSUPPORTED error when a w x h frame exceeds the
// backend's pixel budget.
func CheckPixels(b Backend, w, h int) error {
	p, ok := b.(PixelBounded)
	if !ok || p.MaxPixels() <= 0 || int64(w)*int64(h) <= int64(p.MaxPixels()) {
		return nil
	}
	return errors.New(errors.ErrCodeUnsupported, "%s backend frame of %dx%d px exceeds the budget of %d px", b.Name(), w, h, p.MaxPixels())
}

// CheckCanvas runs CheckCount and CheckPixels for count items laid out by g
// and drawn through each of the viewports. Callers use it before building a
// scene.
func CheckCanvas(b Backend, g grid.Config, count int, viewports ...scene.Viewport) error {
	if err := CheckCount(b, count); err != nil {
		return err
	}
	w, h := g.Extent(count)
	for _, v := range viewports {
		ow, oh := v.OutputSize(w, h)
		if err := CheckPixels(b, ow, oh); err != nil {
			return err
		}
	}
	return nil
}

// Drawing defaults shared by all backends. Selected nodes get the highlight
// stroke.
const (
	HighlightColor = "#1e90ff"
	HighlightWidth = 3.0
	StrokeWidth    = 1.0
	Background     = "#ffffff"
)

// Frame carries the per-draw settings.
type Frame struct {
	Viewport  scene.Viewport
	Antialias bool
	Selection *scene.Selection
}

// DefaultFrame is an unzoomed, antialiased frame with nothing selected.
func DefaultFrame() Frame {
	return Frame{Viewport: scene.DefaultViewport(), Antialias: true}
}

// Selected reports whether n should be highlighted.
func (f Frame) Selected(n scene.Node) bool {
	return f.Selection != nil && f.Selection.Has(n)
}

// OutputSize returns the pixel size of the drawn scene.
func (f Frame) OutputSize(s *scene.Scene) (int, int) {
	w, h := s.Extent()
	return f.Viewport.OutputSize(w, h)
}

// truetype faces keep glyph caches and are not safe for concurrent use.
var measureMu sync.Mutex

// MeasureText returns the width and line height of label in the bundled
// font at the given point size.
func MeasureText(label string, size float64) (w, h float64, err error) {
	measureMu.Lock()
	defer measureMu.Unlock()
	face, err := fonts.Face(size)
	if err != nil {
		return 0, 0, err
	}
	adv := font.MeasureString(face, label)
	m := face.Metrics()
	return float64(adv) / 64, float64(m.Ascent+m.Descent) / 64, nil
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Prepare runs the checks every Draw starts with.
func Prepare(ctx context.Context, b Backend, s *scene.Scene, f Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil scene")
	}
	if err := CheckCount(b, s.Len()); err != nil {
		return err
	}
	w, h := f.OutputSize(s)
	return CheckPixels(b, w, h)
}

// ForeignNode is returned when a scene holds nodes made by another backend.
func ForeignNode(backendName string, n scene.Node) error {
	return errors.New(errors.ErrCodeInvalidInput, "%s backend cannot draw node %d created by another backend", backendName, n.ID())
}

// IntrinsicSize returns the unscaled node size for spec, measuring text in
// the bundled font.
func IntrinsicSize(spec scene.Spec) (w, h float64, err error) {
	switch spec.Kind {
	case scene.KindText:
		return MeasureText(spec.Label, spec.FontSize)
	case scene.KindIcon:
		if spec.Icon == nil {
			return 0, 0, errors.New(errors.ErrCodeInvalidInput, "icon item %d has no icon", spec.Index)
		}
		w, h = spec.Icon.Size()
		return w, h, nil
	case scene.KindRect, scene.KindGroup:
		return spec.Size, spec.Size, nil
	default:
		return 0, 0, errors.New(errors.ErrCodeInvalidKind, "cannot create %q items", spec.Kind)
	}
}
