// Package gpu renders scenes to PNG with gogpu/gg.
//
// Frame.Antialias selects the rasterizer: antialiased frames use automatic
// filler selection, aliased frames force the analytic scanline filler.
package gpu

import (
	"bytes"
	"context"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/matzehuels/canvasbench/pkg/backend"
	"github.com/matzehuels/canvasbench/pkg/errors"
	"github.com/matzehuels/canvasbench/pkg/fonts"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

// Name is the registry name of this backend.
const Name = "gpu"

// Backend draws with gogpu/gg.
type Backend struct {
	source *text.FontSource
	faces  map[float64]text.Face
	images map[string]*gg.ImageBuf
}

// New returns a gogpu backend.
func New() backend.Backend {
	return &Backend{
		faces:  make(map[float64]text.Face),
		images: make(map[string]*gg.ImageBuf),
	}
}

func (b *Backend) Name() string             { return Name }
func (b *Backend) Format() string           { return "png" }
func (b *Backend) Supports(scene.Kind) bool { return true }

// MaxPixels bounds the canvas allocated per frame.
func (b *Backend) MaxPixels() int { return backend.DefaultMaxPixels }

type node struct {
	scene.Transform
	spec scene.Spec
	img  *gg.ImageBuf
}

// NewNode creates a gogpu item for spec.
func (b *Backend) NewNode(spec scene.Spec) (scene.Node, error) {
	w, h, err := backend.IntrinsicSize(spec)
	if err != nil {
		return nil, err
	}
	n := &node{Transform: scene.NewTransform(spec.Index, spec.Kind, w, h), spec: spec}
	if spec.Kind == scene.KindIcon {
		if n.img, err = b.image(spec, w, h); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (b *Backend) image(spec scene.Spec, w, h float64) (*gg.ImageBuf, error) {
	key := spec.Icon.Name()
	if img, ok := b.images[key]; ok {
		return img, nil
	}
	px := int(max(w, h) + 0.5)
	rgba, err := spec.Icon.Raster(px)
	if err != nil {
		return nil, err
	}
	img := gg.ImageBufFromImage(rgba)
	b.images[key] = img
	return img, nil
}

func (b *Backend) face(size float64) (text.Face, error) {
	if f, ok := b.faces[size]; ok {
		return f, nil
	}
	if b.source == nil {
		src, err := text.NewFontSource(fonts.TTF())
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font source")
		}
		b.source = src
	}
	f := b.source.Face(size)
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
	defer func() { _ = dc.Close() }()

	if f.Antialias {
		dc.SetRasterizerMode(gg.RasterizerAuto)
	} else {
		dc.SetRasterizerMode(gg.RasterizerAnalytic)
	}
	dc.ClearWithColor(gg.White)

	vp := f.Viewport
	dc.Translate(vp.PanX, vp.PanY)
	dc.Scale(vp.Factor(), vp.Factor())

	for i, n := range s.Nodes() {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		gn, ok := n.(*node)
		if !ok {
			return nil, backend.ForeignNode(Name, n)
		}
		if err := b.drawNode(dc, gn, f.Selected(n)); err != nil {
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
	dc.Rotate(backend.Radians(n.Rotation()))
	dc.Scale(n.Scale(), n.Scale())

	w, h := n.Size()
	stroke, width := n.spec.Stroke, backend.StrokeWidth
	if selected {
		stroke, width = backend.HighlightColor, backend.HighlightWidth
	}

	switch n.Kind() {
	case scene.KindRect:
		return drawRect(dc, w, h, n.spec.Fill, stroke, width)
	case scene.KindText:
		return b.drawText(dc, n.spec)
	case scene.KindGroup:
		if err := drawRect(dc, w, h, n.spec.Fill, stroke, width); err != nil {
			return err
		}
		return b.drawText(dc, n.spec)
	case scene.KindIcon:
		dc.DrawImage(n.img, -w/2, -h/2)
		if selected {
			return drawRect(dc, w, h, "", stroke, width)
		}
	}
	return nil
}

func drawRect(dc *gg.Context, w, h float64, fill, stroke string, width float64) error {
	if fill != "" {
		dc.DrawRectangle(-w/2, -h/2, w, h)
		dc.SetHexColor(fill)
		if err := dc.Fill(); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "fill rect")
		}
	}
	if stroke != "" {
		dc.DrawRectangle(-w/2, -h/2, w, h)
		dc.SetHexColor(stroke)
		dc.SetLineWidth(width)
		if err := dc.Stroke(); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "stroke rect")
		}
	}
	return nil
}

func (b *Backend) drawText(dc *gg.Context, spec scene.Spec) error {
	face, err := b.face(spec.FontSize)
	if err != nil {
		return err
	}
	dc.SetFont(face)
	dc.SetHexColor("#000000")
	dc.DrawStringAnchored(spec.Label, 0, 0, 0.5, 0.5)
	return nil
}
