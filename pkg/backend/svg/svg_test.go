package svg

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/canvasbench/pkg/backend"
	"github.com/matzehuels/canvasbench/pkg/grid"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

func build(t *testing.T, kind scene.Kind, count int) *scene.Scene {
	t.Helper()
	s, err := scene.Builder{Grid: grid.MustNew(grid.DefaultParams()), Factory: New()}.Build(context.Background(), kind, count)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return s
}

func TestDrawRects(t *testing.T) {
	s := build(t, scene.KindRect, 3)
	out, err := New().Draw(context.Background(), s, backend.DefaultFrame())
	if err != nil {
		t.Fatal(err)
	}
	doc := string(out)
	if !strings.Contains(doc, `width="170"`) || !strings.Contains(doc, `height="60"`) {
		t.Errorf("unexpected canvas size:\n%s", doc[:min(len(doc), 300)])
	}
	if n := strings.Count(doc, "stroke:#951f1f"); n != 3 {
		t.Errorf("stroked rects = %d, want 3", n)
	}
	if !strings.Contains(doc, "translate(30.00,30.00)") {
		t.Error("first item should be centered at (30,30)")
	}
	if !strings.HasSuffix(strings.TrimSpace(doc), "</svg>") {
		t.Error("document not closed")
	}
}

func TestDrawRotationAndViewport(t *testing.T) {
	s := build(t, scene.KindRect, 1)
	scene.Animator{Angle: 15}.Step(s)
	f := backend.DefaultFrame()
	f.Viewport.SetZoom(2)
	f.Viewport.Pan(5, 7)

	out, err := New().Draw(context.Background(), s, f)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(out)
	if !strings.Contains(doc, "rotate(15.00)") {
		t.Error("missing item rotation")
	}
	if !strings.Contains(doc, "translate(5.00,7.00) scale(2.0000)") {
		t.Error("missing viewport transform")
	}
}

func TestDrawIconUsesSymbol(t *testing.T) {
	s := build(t, scene.KindIcon, 4)
	out, err := New().Draw(context.Background(), s, backend.DefaultFrame())
	if err != nil {
		t.Fatal(err)
	}
	doc := string(out)
	if strings.Count(doc, "<symbol") != 1 {
		t.Error("icon should be defined once")
	}
	if n := strings.Count(doc, `href="#`+iconID+`"`); n != 4 {
		t.Errorf("icon uses = %d, want 4", n)
	}
}

func TestDrawTextAndSelection(t *testing.T) {
	s := build(t, scene.KindGroup, 2)
	f := backend.DefaultFrame()
	f.Selection = scene.NewSelection()
	f.Selection.Click(s.Nodes()[1], false)

	out, err := New().Draw(context.Background(), s, f)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(out)
	if strings.Count(doc, ">Text</text>") != 2 {
		t.Error("group items should carry their label")
	}
	if strings.Count(doc, backend.HighlightColor) != 1 {
		t.Error("exactly one item should be highlighted")
	}
}

func TestShapeStyle(t *testing.T) {
	tests := []struct {
		fill, stroke string
		want         string
	}{
		{"", "#000000", "fill:none;stroke:#000000;stroke-width:1"},
		{"#ff0000", "", "fill:#ff0000"},
		{"#ff0000", "#00ff00", "fill:#ff0000;stroke:#00ff00;stroke-width:1"},
	}
	for _, tt := range tests {
		if got := shapeStyle(tt.fill, tt.stroke, 1); got != tt.want {
			t.Errorf("shapeStyle(%q, %q) = %q, want %q", tt.fill, tt.stroke, got, tt.want)
		}
	}
}
