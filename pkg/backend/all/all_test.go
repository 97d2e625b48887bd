package all

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/canvasbench/pkg/backend"
	"github.com/matzehuels/canvasbench/pkg/grid"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

var magic = map[string][]byte{
	"svg": []byte("<svg"),
	"png": []byte("\x89PNG"),
	"pdf": []byte("%PDF"),
}

func TestRegistryNames(t *testing.T) {
	want := []string{"gpu", "graphviz", "pdf", "raster", "svg"}
	got := Registry().Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEveryBackendDrawsEveryKind(t *testing.T) {
	reg := Registry()
	g := grid.MustNew(grid.DefaultParams())
	ctx := context.Background()

	for _, name := range reg.Names() {
		for _, kind := range scene.Kinds {
			t.Run(name+"/"+string(kind), func(t *testing.T) {
				b, err := reg.New(name)
				if err != nil {
					t.Fatal(err)
				}
				builder := scene.Builder{Grid: g, Factory: b, Style: scene.Style{RandomColors: true}}
				s, err := builder.Build(ctx, kind, 6)
				if !b.Supports(kind) {
					if err == nil {
						t.Fatal("unsupported kind should fail to build")
					}
					return
				}
				if err != nil {
					t.Fatalf("Build() error: %v", err)
				}

				scene.Animator{}.Step(s)
				f := backend.DefaultFrame()
				f.Selection = scene.NewSelection()
				f.Selection.SelectBox(s, scene.Rect{X: 0, Y: 0, W: 60, H: 60})

				out, err := b.Draw(ctx, s, f)
				if err != nil {
					t.Fatalf("Draw() error: %v", err)
				}
				if !bytes.Contains(out[:min(len(out), 512)], magic[b.Format()]) {
					t.Errorf("output does not look like %s: %q", b.Format(), out[:min(len(out), 32)])
				}
			})
		}
	}
}

func TestBackendsRejectForeignNodes(t *testing.T) {
	reg := Registry()
	g := grid.MustNew(grid.DefaultParams())
	svgBackend, _ := reg.New("svg")
	s, err := scene.Builder{Grid: g, Factory: svgBackend}.Build(context.Background(), scene.KindRect, 2)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"raster", "gpu", "pdf", "graphviz"} {
		b, _ := reg.New(name)
		if _, err := b.Draw(context.Background(), s, backend.DefaultFrame()); err == nil {
			t.Errorf("%s drew nodes created by svg", name)
		}
	}
}
