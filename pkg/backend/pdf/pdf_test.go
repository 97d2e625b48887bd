package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/canvasbench/pkg/backend"
	"github.com/matzehuels/canvasbench/pkg/errors"
	"github.com/matzehuels/canvasbench/pkg/grid"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

func TestDraw(t *testing.T) {
	for _, kind := range scene.Kinds {
		t.Run(string(kind), func(t *testing.T) {
			b := New()
			s, err := scene.Builder{
				Grid:    grid.MustNew(grid.DefaultParams()),
				Factory: b,
				Style:   scene.Style{RandomColors: true},
			}.Build(context.Background(), kind, 5)
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			scene.Animator{}.Step(s)
			out, err := b.Draw(context.Background(), s, backend.DefaultFrame())
			if err != nil {
				t.Fatalf("Draw() error: %v", err)
			}
			if !bytes.HasPrefix(out, []byte("%PDF-")) {
				t.Errorf("not a PDF: %q", out[:min(len(out), 16)])
			}
			if !bytes.Contains(out, []byte("%%EOF")) {
				t.Error("PDF not terminated")
			}
		})
	}
}

func TestDrawDeterministic(t *testing.T) {
	b := New()
	s, err := scene.Builder{Grid: grid.MustNew(grid.DefaultParams()), Factory: b}.Build(context.Background(), scene.KindRect, 3)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := b.Draw(context.Background(), s, backend.DefaultFrame())
	c, _ := b.Draw(context.Background(), s, backend.DefaultFrame())
	if !bytes.Equal(a, c) {
		t.Error("same scene should produce identical PDFs")
	}
}

func TestTextMeasuredInHelvetica(t *testing.T) {
	b := New().(*Backend)
	n, err := b.NewNode(scene.Spec{Kind: scene.KindText, Label: "Text", FontSize: 14})
	if err != nil {
		t.Fatal(err)
	}
	w, h := n.Size()
	if w <= 0 || h != 14 {
		t.Errorf("Size() = %v x %v", w, h)
	}
}

func TestRGB(t *testing.T) {
	r, g, b, err := rgb("#951f1f")
	if err != nil {
		t.Fatal(err)
	}
	if r != 0x95 || g != 0x1f || b != 0x1f {
		t.Errorf("rgb = %d,%d,%d", r, g, b)
	}
	if _, _, _, err := rgb("nope"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad color: %v", err)
	}
}
