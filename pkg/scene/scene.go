package scene

import (
	"context"
	"math"

	"github.com/matzehuels/canvasbench/pkg/asset"
	"github.com/matzehuels/canvasbench/pkg/errors"
	"github.com/matzehuels/canvasbench/pkg/fonts"
	"github.com/matzehuels/canvasbench/pkg/grid"
)

// Default item styling, matching the stroke the harness has always used.
const (
	DefaultStroke = "#951f1f"
	DefaultLabel  = "Text"
)

// Spec describes one item a backend is asked to create.
type Spec struct {
	Index    int
	Kind     Kind // never KindMixed
	Size     float64
	Label    string
	FontSize float64
	Fill     string // #rrggbb, empty for no fill
	Stroke   string // #rrggbb, empty for no stroke
	Icon     *asset.Icon
}

// Factory creates backend nodes. Every backend implements it.
type Factory interface {
	Supports(k Kind) bool
	NewNode(spec Spec) (Node, error)
}

// Style controls how items look. The zero value draws unfilled squares with
// the default stroke.
type Style struct {
	Fill         string
	Stroke       string
	RandomColors bool // fill from grid.Config.Color instead of Fill
	Label        string
	FontSize     float64
	// FitThreshold skips rescaling fitted items (text, icons) whose fit scale
	// is within this distance of 1.
	FitThreshold float64
}

func (s Style) withDefaults() Style {
	if s.Stroke == "" {
		s.Stroke = DefaultStroke
	}
	if s.Label == "" {
		s.Label = DefaultLabel
	}
	if s.FontSize <= 0 {
		s.FontSize = fonts.DefaultSize
	}
	return s
}

// Scene is a set of backend nodes laid out on a grid.
type Scene struct {
	Grid     grid.Config
	Kind     Kind
	Icon     *asset.Icon
	Viewport Viewport

	nodes []Node
}

// New returns an empty scene.
func New(g grid.Config, kind Kind) *Scene {
	return &Scene{Grid: g, Kind: kind, Viewport: DefaultViewport()}
}

// Nodes returns the scene's nodes in creation order.
func (s *Scene) Nodes() []Node { return s.nodes }

// Len returns the number of nodes.
func (s *Scene) Len() int { return len(s.nodes) }

// Add appends a node.
func (s *Scene) Add(n Node) { s.nodes = append(s.nodes, n) }

// Clear removes all nodes.
func (s *Scene) Clear() { s.nodes = nil }

// Extent returns the unzoomed canvas size covering every node.
func (s *Scene) Extent() (w, h float64) {
	return s.Grid.Extent(len(s.nodes))
}

// Builder creates scenes through a backend factory, asking the grid once per
// item for its placement.
type Builder struct {
	Grid    grid.Config
	Factory Factory
	Style   Style
	Icon    *asset.Icon
}

// Build creates count items of kind k. It checks ctx periodically so large
// scenes can be cancelled.
func (b Builder) Build(ctx context.Context, k Kind, count int) (*Scene, error) {
	if b.Factory == nil {
		return nil, errors.New(errors.ErrCodeInternal, "scene builder has no factory")
	}
	if err := errors.ValidateCount(count, 0); err != nil {
		return nil, err
	}
	for _, concrete := range concreteKinds(k) {
		if !b.Factory.Supports(concrete) {
			return nil, errors.New(errors.ErrCodeUnsupported, "backend cannot draw %s items", concrete)
		}
	}
	icon := b.Icon
	if k == KindIcon && icon == nil {
		var err error
		if icon, err = asset.Builtin(asset.DefaultName); err != nil {
			return nil, err
		}
	}

	style := b.Style.withDefaults()
	s := New(b.Grid, k)
	s.Icon = icon
	s.nodes = make([]Node, 0, count)
	size := b.Grid.ItemSize()

	for i := 0; i < count; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		spec := Spec{
			Index:    i,
			Kind:     k.ForIndex(i),
			Size:     size,
			Label:    style.Label,
			FontSize: style.FontSize,
			Fill:     style.Fill,
			Stroke:   style.Stroke,
			Icon:     icon,
		}
		if style.RandomColors {
			spec.Fill = b.Grid.Color(i).Hex()
		}

		n, err := b.Factory.NewNode(spec)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "create item %d", i)
		}
		if spec.Kind == KindText || spec.Kind == KindIcon {
			w, h := n.Size()
			if scale := grid.FitScale(w, h, size); math.Abs(scale-1) > style.FitThreshold {
				n.SetScale(scale)
			}
		}
		c := b.Grid.Center(i)
		n.SetPosition(c.X, c.Y)
		s.nodes = append(s.nodes, n)
	}
	return s, nil
}

func concreteKinds(k Kind) []Kind {
	if k == KindMixed {
		return []Kind{KindRect, KindText}
	}
	return []Kind{k}
}
