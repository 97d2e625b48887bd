// Package raster renders scenes to PNG with fogleman/gg, using freetype faces
// for labels. It always antialiases; Frame.Antialias is ignored.
package raster

import (
	"bytes"
	"context"
	"image"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/canvasbench/pkg/backend"
	"github.com/matzehuels/canvasbench/pkg/errors"
	"github.com/matzehuels/canvasbench/pkg/fonts"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

// Name is the registry name of this backend.
const Name = "raster"

// Backend draws with fogleman/gg.
type Backend struct {
	faces map[float64]font.Face
}

// New returns a raster backend.
func New() backend.Backend {
	return &Backend{faces: make(map[float64]font.Face)}
}

func (b *Backend) Name() string             { return Name }
func (b *Backend) Format() string           { return "png" }
func (b *Backend) Supports(scene.Kind) bool { return true }

// MaxPixels bounds the canvas allocated per frame.
func (b *Backend) MaxPixels() int { return backend.DefaultMaxPixels }

type node struct {
	scene.Transform
	spec scene.Spec
	img  image.Image
}

// NewNode creates a raster item for spec. Icons are rasterised once at their
// intrinsic size and shared between items.
func (b *Backend) NewNode(spec scene.Spec) (scene.Node, error) {
	w, h, err := backend.IntrinsicSize(spec)
	if err != nil {
		return nil, err
	}
	n := &node{Transform: scene.NewTransform(spec.Index, spec.Kind, w, h), spec: spec}
	if spec.Kind == scene.KindIcon {
		if n.img, err = spec.Icon.Raster(int(math.Ceil(math.Max(w, h)))); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (b *Backend) face(size float64) (font.Face, error) {
	if f, ok := b.faces[size]; ok {
		return f, nil
	}
	f, err := fonts.NewFace(size)
	if err != nil {
		return nil, err
	}
	b.faces[size] = f
	return f, nil
}

// Draw rasterises the scene and encodes it as PNG.
func (b *Backend) Draw(ctx context.Context, s *scene.Scene, f backend.Frame) ([]byte, error) {
	if err := backend.Prepare(ctx, b, s, f); err != nil {
		return nil, err
	}
	w, h := f.OutputSize(s)
	dc := gg.NewContext(w, h)
	dc.SetHexColor(backend.Background)
	dc.Clear()

	vp := f.Viewport
	dc.Translate(vp.PanX, vp.PanY)
	dc.Scale(vp.Factor(), vp.Factor())

	for i, n := range s.Nodes() {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rn, ok := n.(*node)
		if !ok {
			return nil, backend.ForeignNode(Name, n)
		}
		if err := b.drawNode(dc, rn, f.Selected(n)); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (b *Backend) drawNode(dc *gg.Context, n *node, selected bool) error {
	x, y := n.Position()
	dc.Push()
	defer dc.Pop()
	dc.Translate(x, y)
	dc.Rotate(gg.Radians(n.Rotation()))
	dc.Scale(n.Scale(), n.Scale())

	w, h := n.Size()
	stroke, width := n.spec.Stroke, backend.StrokeWidth
	if selected {
		stroke, width = backend.HighlightColor, backend.HighlightWidth
	}

	switch n.Kind() {
	case scene.KindRect:
		drawRect(dc, w, h, n.spec.Fill, stroke, width)
	case scene.KindText:
		return b.drawText(dc, n.spec)
	case scene.KindGroup:
		drawRect(dc, w, h, n.spec.Fill, stroke, width)
		return b.drawText(dc, n.spec)
	case scene.KindIcon:
		dc.DrawImageAnchored(n.img, 0, 0, 0.5, 0.5)
		if selected {
			drawRect(dc, w, h, "", stroke, width)
		}
	}
	return nil
}

func drawRect(dc *gg.Context, w, h float64, fill, stroke string, width float64) {
	dc.DrawRectangle(-w/2, -h/2, w, h)
	if fill != "" {
		dc.SetHexColor(fill)
		dc.FillPreserve()
	}
	if stroke != "" {
		dc.SetHexColor(stroke)
		dc.SetLineWidth(width)
		dc.StrokePreserve()
	}
	dc.ClearPath()
}

func (b *Backend) drawText(dc *gg.Context, spec scene.Spec) error {
	face, err := b.face(spec.FontSize)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetHexColor("#000000")
	dc.DrawStringAnchored(spec.Label, 0, 0, 0.5, 0.5)
	return nil
}
