package fonts

import (
	"testing"

	"golang.org/x/image/font"
)

func TestTTF(t *testing.T) {
	if len(TTF()) == 0 {
		t.Fatal("TTF() returned no data")
	}
}

func TestFaceCached(t *testing.T) {
	a, err := Face(DefaultSize)
	if err != nil {
		t.Fatalf("Face() error: %v", err)
	}
	b, _ := Face(DefaultSize)
	if a != b {
		t.Error("Face() should cache per size")
	}
	c, _ := Face(DefaultSize * 2)
	if c == a {
		t.Error("different sizes should yield different faces")
	}
}

func TestFaceMeasures(t *testing.T) {
	small, err := NewFace(10)
	if err != nil {
		t.Fatal(err)
	}
	large, err := NewFace(20)
	if err != nil {
		t.Fatal(err)
	}
	ws := font.MeasureString(small, "Text")
	wl := font.MeasureString(large, "Text")
	if ws <= 0 || wl <= ws {
		t.Errorf("widths: small=%v large=%v", ws, wl)
	}
}
