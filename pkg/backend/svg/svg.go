// Package svg renders scenes as SVG documents with ajstarks/svgo.
//
// Every item becomes a group carrying its own transform, so an animation
// frame only changes transform attributes. Icons are emitted once as a
// symbol and instanced with use elements.
package svg

import (
	"bytes"
	"context"
	"fmt"
	"math"

	svgo "github.com/ajstarks/svgo"

	"github.com/matzehuels/canvasbench/pkg/backend"
	"github.com/matzehuels/canvasbench/pkg/fonts"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

// Name is the registry name of this backend.
const Name = "svg"

const iconID = "item-icon"

// Backend draws with svgo.
type Backend struct{}

// New returns an SVG backend.
func New() backend.Backend { return &Backend{} }

func (b *Backend) Name() string   { return Name }
func (b *Backend) Format() string { return "svg" }

// Supports reports true for every kind.
func (b *Backend) Supports(scene.Kind) bool { return true }

type node struct {
	scene.Transform
	spec  scene.Spec
	style string
}

// NewNode creates an SVG item for spec.
func (b *Backend) NewNode(spec scene.Spec) (scene.Node, error) {
	w, h, err := backend.IntrinsicSize(spec)
	if err != nil {
		return nil, err
	}
	return &node{
		Transform: scene.NewTransform(spec.Index, spec.Kind, w, h),
		spec:      spec,
		style:     shapeStyle(spec.Fill, spec.Stroke, backend.StrokeWidth),
	}, nil
}

// Draw writes the scene as a standalone SVG document.
func (b *Backend) Draw(ctx context.Context, s *scene.Scene, f backend.Frame) ([]byte, error) {
	if err := backend.Prepare(ctx, b, s, f); err != nil {
		return nil, err
	}
	w, h := f.OutputSize(s)

	var buf bytes.Buffer
	canvas := svgo.New(&buf)
	canvas.Start(w, h)
	if s.Icon != nil && s.Kind == scene.KindIcon {
		iw, ih := s.Icon.Size()
		canvas.Def()
		fmt.Fprintf(canvas.Writer, "<symbol id=\"%s\" viewBox=\"0 0 %g %g\">%s</symbol>\n", iconID, iw, ih, s.Icon.Inner())
		canvas.DefEnd()
	}
	canvas.Rect(0, 0, w, h, "fill:"+backend.Background)

	vp := f.Viewport
	canvas.Gtransform(fmt.Sprintf("translate(%.2f,%.2f) scale(%.4f)", vp.PanX, vp.PanY, vp.Factor()))
	for i, n := range s.Nodes() {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		sn, ok := n.(*node)
		if !ok {
			return nil, backend.ForeignNode(Name, n)
		}
		drawNode(canvas, sn, f.Selected(n))
	}
	canvas.Gend()
	canvas.End()
	return buf.Bytes(), nil
}

func drawNode(canvas *svgo.SVG, n *node, selected bool) {
	x, y := n.Position()
	canvas.Gtransform(fmt.Sprintf("translate(%.2f,%.2f) rotate(%.2f) scale(%.4f)", x, y, n.Rotation(), n.Scale()))

	w, h := n.Size()
	style := n.style
	if selected {
		style = shapeStyle(n.spec.Fill, backend.HighlightColor, backend.HighlightWidth)
	}
	switch n.Kind() {
	case scene.KindRect:
		drawRect(canvas, w, h, style)
	case scene.KindText:
		drawText(canvas, n.spec)
	case scene.KindGroup:
		drawRect(canvas, w, h, style)
		drawText(canvas, n.spec)
	case scene.KindIcon:
		canvas.Use(-round(w/2), -round(h/2), "#"+iconID, fmt.Sprintf(`width="%d" height="%d"`, round(w), round(h)))
		if selected {
			drawRect(canvas, w, h, shapeStyle("", backend.HighlightColor, backend.HighlightWidth))
		}
	}
	canvas.Gend()
}

func drawRect(canvas *svgo.SVG, w, h float64, style string) {
	canvas.Rect(-round(w/2), -round(h/2), round(w), round(h), style)
}

func drawText(canvas *svgo.SVG, spec scene.Spec) {
	canvas.Text(0, 0, spec.Label, fmt.Sprintf(
		"text-anchor:middle;dominant-baseline:central;font-family:%s;font-size:%gpx;fill:#000000",
		fonts.FontFamily, spec.FontSize))
}

func shapeStyle(fill, stroke string, width float64) string {
	if fill == "" {
		fill = "none"
	}
	if stroke == "" {
		return "fill:" + fill
	}
	return fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%g", fill, stroke, width)
}

func round(v float64) int { return int(math.Round(v)) }
