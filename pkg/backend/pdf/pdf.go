// Package pdf renders scenes as single page vector PDFs with go-pdf/fpdf.
// One PDF point maps to one canvas pixel.
package pdf

import (
	"bytes"
	"context"
	"image/png"
	"math"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/canvasbench/pkg/backend"
	"github.com/matzehuels/canvasbench/pkg/errors"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

// Name is the registry name of this backend.
const Name = "pdf"

const fontFamily = "Helvetica"

// baselineShift moves Helvetica text from its baseline to its visual center,
// as a fraction of the font size.
const baselineShift = 0.35

// Backend draws with fpdf.
type Backend struct {
	measure *fpdf.Fpdf
	icons   map[string][]byte
}

// New returns a PDF backend.
func New() backend.Backend {
	return &Backend{icons: make(map[string][]byte)}
}

func (b *Backend) Name() string             { return Name }
func (b *Backend) Format() string           { return "pdf" }
func (b *Backend) Supports(scene.Kind) bool { return true }

type node struct {
	scene.Transform
	spec  scene.Spec
	textW float64
}

// NewNode creates a PDF item for spec. Text is measured in Helvetica, the
// font the item is drawn with.
func (b *Backend) NewNode(spec scene.Spec) (scene.Node, error) {
	n := &node{spec: spec}
	switch spec.Kind {
	case scene.KindText:
		n.textW = b.textWidth(spec.Label, spec.FontSize)
		n.Transform = scene.NewTransform(spec.Index, spec.Kind, n.textW, spec.FontSize)
		return n, nil
	case scene.KindGroup:
		n.textW = b.textWidth(spec.Label, spec.FontSize)
	case scene.KindIcon:
		if err := b.registerIcon(spec); err != nil {
			return nil, err
		}
	}
	w, h, err := backend.IntrinsicSize(spec)
	if err != nil {
		return nil, err
	}
	n.Transform = scene.NewTransform(spec.Index, spec.Kind, w, h)
	return n, nil
}

func (b *Backend) textWidth(label string, size float64) float64 {
	if b.measure == nil {
		b.measure = fpdf.New("P", "pt", "A4", "")
		b.measure.AddPage()
	}
	b.measure.SetFont(fontFamily, "", size)
	return b.measure.GetStringWidth(label)
}

func (b *Backend) registerIcon(spec scene.Spec) error {
	if spec.Icon == nil {
		return errors.New(errors.ErrCodeInvalidInput, "icon item %d has no icon", spec.Index)
	}
	name := spec.Icon.Name()
	if _, ok := b.icons[name]; ok {
		return nil
	}
	w, h := spec.Icon.Size()
	img, err := spec.Icon.Raster(int(math.Ceil(math.Max(w, h))))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode icon %s", name)
	}
	b.icons[name] = buf.Bytes()
	return nil
}

// Draw writes the scene as a one page PDF.
func (b *Backend) Draw(ctx context.Context, s *scene.Scene, f backend.Frame) ([]byte, error) {
	if err := backend.Prepare(ctx, b, s, f); err != nil {
		return nil, err
	}
	w, h := f.OutputSize(s)
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: float64(w), Ht: float64(h)},
	})
	doc.SetCreationDate(time.Unix(0, 0).UTC())
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	doc.SetFont(fontFamily, "", 12)

	if s.Kind == scene.KindIcon && s.Icon != nil {
		data, ok := b.icons[s.Icon.Name()]
		if ok {
			doc.RegisterImageOptionsReader(s.Icon.Name(), fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(data))
		}
	}

	vp := f.Viewport
	doc.TransformBegin()
	doc.TransformTranslate(vp.PanX, vp.PanY)
	doc.TransformScale(vp.Factor()*100, vp.Factor()*100, 0, 0)
	for i, n := range s.Nodes() {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		pn, ok := n.(*node)
		if !ok {
			return nil, backend.ForeignNode(Name, n)
		}
		if err := drawNode(doc, pn, f.Selected(n)); err != nil {
			return nil, err
		}
	}
	doc.TransformEnd()

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write pdf")
	}
	return buf.Bytes(), nil
}

func drawNode(doc *fpdf.Fpdf, n *node, selected bool) error {
	x, y := n.Position()
	doc.TransformBegin()
	defer doc.TransformEnd()
	doc.TransformTranslate(x, y)
	// fpdf rotates counter-clockwise.
	doc.TransformRotate(-n.Rotation(), 0, 0)
	doc.TransformScale(n.Scale()*100, n.Scale()*100, 0, 0)

	w, h := n.Size()
	stroke, width := n.spec.Stroke, backend.StrokeWidth
	if selected {
		stroke, width = backend.HighlightColor, backend.HighlightWidth
	}

	switch n.Kind() {
	case scene.KindRect:
		return drawRect(doc, w, h, n.spec.Fill, stroke, width)
	case scene.KindText:
		drawText(doc, n)
	case scene.KindGroup:
		if err := drawRect(doc, w, h, n.spec.Fill, stroke, width); err != nil {
			return err
		}
		drawText(doc, n)
	case scene.KindIcon:
		doc.ImageOptions(n.spec.Icon.Name(), -w/2, -h/2, w, h, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		if selected {
			return drawRect(doc, w, h, "", stroke, width)
		}
	}
	return doc.Error()
}

func drawRect(doc *fpdf.Fpdf, w, h float64, fill, stroke string, width float64) error {
	style := ""
	if fill != "" {
		r, g, b, err := rgb(fill)
		if err != nil {
			return err
		}
		doc.SetFillColor(r, g, b)
		style += "F"
	}
	if stroke != "" {
		r, g, b, err := rgb(stroke)
		if err != nil {
			return err
		}
		doc.SetDrawColor(r, g, b)
		doc.SetLineWidth(width)
		style += "D"
	}
	if style != "" {
		doc.Rect(-w/2, -h/2, w, h, style)
	}
	return nil
}

func drawText(doc *fpdf.Fpdf, n *node) {
	doc.SetFont(fontFamily, "", n.spec.FontSize)
	doc.SetTextColor(0, 0, 0)
	doc.Text(-n.textW/2, n.spec.FontSize*baselineShift, n.spec.Label)
}

func rgb(hex string) (int, int, int, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse color %q", hex)
	}
	r, g, b := c.RGB255()
	return int(r), int(g), int(b), nil
}
