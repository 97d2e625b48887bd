// Package graphviz renders scenes through Graphviz. Items become DOT nodes
// pinned at their grid positions and laid out with neato, so Graphviz only
// draws and never moves anything.
//
// The backend has three limits the others do not: it refuses icon items,
// scenes above [MaxItems], and it cannot rotate labels. DOT orientation
// turns node shapes only, so text items stay upright during animation and
// group labels keep their baseline while the box turns.
package graphviz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/canvasbench/pkg/backend"
	"github.com/matzehuels/canvasbench/pkg/errors"
	"github.com/matzehuels/canvasbench/pkg/fonts"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

// Name is the registry name of this backend.
const Name = "graphviz"

// MaxItems is the largest scene the backend accepts.
const MaxItems = 10000

// Graphviz measures node sizes in inches.
const pointsPerInch = 72.0

// Backend draws with Graphviz.
type Backend struct{}

// New returns a Graphviz backend.
func New() backend.Backend { return &Backend{} }

func (b *Backend) Name() string   { return Name }
func (b *Backend) Format() string { return "svg" }
func (b *Backend) MaxItems() int  { return MaxItems }

// Supports reports false for icons, which DOT nodes cannot embed from memory.
func (b *Backend) Supports(k scene.Kind) bool { return k != scene.KindIcon }

type node struct {
	scene.Transform
	spec scene.Spec
}

// NewNode creates a DOT node for spec.
func (b *Backend) NewNode(spec scene.Spec) (scene.Node, error) {
	if !b.Supports(spec.Kind) {
		return nil, errors.New(errors.ErrCodeUnsupported, "graphviz backend cannot draw %s items", spec.Kind)
	}
	w, h, err := backend.IntrinsicSize(spec)
	if err != nil {
		return nil, err
	}
	return &node{Transform: scene.NewTransform(spec.Index, spec.Kind, w, h), spec: spec}, nil
}

// ToDOT converts the scene into a neato graph with every node pinned at its
// viewport position. Graphviz y grows upwards, so y is flipped against the
// output height.
func ToDOT(s *scene.Scene, f backend.Frame) (string, error) {
	w, h := f.OutputSize(s)
	z := f.Viewport.Factor()

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  inputscale=72;\n")
	fmt.Fprintf(&buf, "  bb=\"0,0,%d,%d\";\n", w, h)
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", backend.Background)
	fmt.Fprintf(&buf, "  node [fixedsize=true, fontname=%q, margin=0];\n", strings.SplitN(fonts.FontFamily, ",", 2)[0])
	buf.WriteString("\n")

	for _, n := range s.Nodes() {
		dn, ok := n.(*node)
		if !ok {
			return "", backend.ForeignNode(Name, n)
		}
		x, y := dn.Position()
		sx, sy := f.Viewport.ToScreen(x, y)
		nw, nh := dn.Size()
		scale := dn.Scale() * z

		attrs := []string{
			fmt.Sprintf("pos=\"%.2f,%.2f!\"", sx, float64(h)-sy),
			fmt.Sprintf("width=%.4f", nw*scale/pointsPerInch),
			fmt.Sprintf("height=%.4f", nh*scale/pointsPerInch),
		}
		attrs = append(attrs, kindAttrs(dn, scale, f.Selected(n))...)
		fmt.Fprintf(&buf, "  n%d [%s];\n", dn.ID(), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func kindAttrs(n *node, scale float64, selected bool) []string {
	stroke, width := n.spec.Stroke, backend.StrokeWidth
	if selected {
		stroke, width = backend.HighlightColor, backend.HighlightWidth
	}
	label := `label=""`
	if n.Kind() == scene.KindText || n.Kind() == scene.KindGroup {
		label = fmt.Sprintf("label=%q, fontsize=%.2f", n.spec.Label, n.spec.FontSize*scale)
	}

	// Graphviz never rotates labels, and a plaintext node has no shape to
	// turn.
	if n.Kind() == scene.KindText {
		return []string{"shape=plaintext", label}
	}
	attrs := []string{
		"shape=box",
		label,
		fmt.Sprintf("orientation=%.2f", n.Rotation()),
		fmt.Sprintf("penwidth=%g", width),
	}
	if stroke != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", stroke))
	} else {
		attrs = append(attrs, `color="transparent"`)
	}
	if n.spec.Fill != "" {
		attrs = append(attrs, "style=filled", fmt.Sprintf("fillcolor=%q", n.spec.Fill))
	}
	return attrs
}

// Draw lays out the scene with neato and renders it as SVG.
func (b *Backend) Draw(ctx context.Context, s *scene.Scene, f backend.Frame) ([]byte, error) {
	if err := backend.Prepare(ctx, b, s, f); err != nil {
		return nil, err
	}
	dot, err := ToDOT(s, f)
	if err != nil {
		return nil, err
	}
	return RenderSVG(ctx, dot)
}

// RenderSVG renders a DOT graph to SVG with the neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt sized root element with a pixel
// sized one so the output matches the other SVG backend.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
