package raster

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/matzehuels/canvasbench/pkg/backend"
	"github.com/matzehuels/canvasbench/pkg/grid"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

func draw(t *testing.T, kind scene.Kind, count int, f backend.Frame) image.Image {
	t.Helper()
	b := New()
	s, err := scene.Builder{Grid: grid.MustNew(grid.DefaultParams()), Factory: b}.Build(context.Background(), kind, count)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	out, err := b.Draw(context.Background(), s, f)
	if err != nil {
		t.Fatalf("Draw() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return img
}

func TestDrawSize(t *testing.T) {
	img := draw(t, scene.KindRect, 3, backend.DefaultFrame())
	if b := img.Bounds(); b.Dx() != 170 || b.Dy() != 60 {
		t.Errorf("image = %dx%d, want 170x60", b.Dx(), b.Dy())
	}

	f := backend.DefaultFrame()
	f.Viewport.SetZoom(0.5)
	img = draw(t, scene.KindRect, 3, f)
	if b := img.Bounds(); b.Dx() != 85 || b.Dy() != 30 {
		t.Errorf("zoomed image = %dx%d, want 85x30", b.Dx(), b.Dy())
	}
}

func TestDrawStrokesItemEdges(t *testing.T) {
	img := draw(t, scene.KindRect, 1, backend.DefaultFrame())
	// Item 0 spans 5..55; its left edge is stroked, its center is not.
	if r, g, b, _ := img.At(5, 30).RGBA(); r == g && g == b {
		t.Errorf("edge pixel should carry the stroke color, got %v %v %v", r>>8, g>>8, b>>8)
	}
	if r, g, b, _ := img.At(30, 30).RGBA(); r>>8 != 0xff || g>>8 != 0xff || b>>8 != 0xff {
		t.Errorf("unfilled center should stay white, got %v %v %v", r>>8, g>>8, b>>8)
	}
}

func TestDrawIconAndText(t *testing.T) {
	for _, kind := range []scene.Kind{scene.KindIcon, scene.KindText, scene.KindGroup} {
		img := draw(t, kind, 2, backend.DefaultFrame())
		if img.Bounds().Dx() != 115 {
			t.Errorf("%s: width = %d", kind, img.Bounds().Dx())
		}
	}
}

func TestFaceCachedPerBackend(t *testing.T) {
	b := New().(*Backend)
	f1, err := b.face(14)
	if err != nil {
		t.Fatal(err)
	}
	f2, _ := b.face(14)
	if f1 != f2 {
		t.Error("face should be cached")
	}
}
