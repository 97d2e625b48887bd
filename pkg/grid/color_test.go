package grid

import (
	"strings"
	"testing"
)

func TestColorDeterministic(t *testing.T) {
	c := MustNew(DefaultParams())
	for _, i := range []int{0, 1, 77, 494, 495, 10000} {
		if c.Color(i) != c.Color(i) || c.Color(i).String() != c.Color(i).String() {
			t.Errorf("Color(%d) not deterministic", i)
		}
	}
}

func TestColorHueAdvances(t *testing.T) {
	c := MustNew(DefaultParams())
	a, b := c.Color(0), c.Color(1)
	if a.H != 0 || b.H != 0.1 {
		t.Errorf("hues = %v, %v, want 0 and 0.1", a.H, b.H)
	}
	if a.String() == b.String() {
		t.Errorf("Color(0) and Color(1) render identically: %s", a)
	}
}

func TestColorLightnessWindow(t *testing.T) {
	c := MustNew(DefaultParams())
	w := c.ColorWindow()
	for _, i := range []int{0, 3, 100, w - 1} {
		if c.Color(i).L != c.Color(i+w).L {
			t.Errorf("lightness of %d and %d differ: %v vs %v", i, i+w, c.Color(i).L, c.Color(i+w).L)
		}
	}
	if c.Color(0).L != 30 {
		t.Errorf("Color(0).L = %v, want 30", c.Color(0).L)
	}
	if l := c.Color(w - 1).L; l <= 30 || l >= 70 {
		t.Errorf("Color(window-1).L = %v, want within (30, 70)", l)
	}
}

func TestColorHueWraps(t *testing.T) {
	c := MustNew(DefaultParams())
	if h := c.Color(3600).H; h != 0 {
		t.Errorf("Color(3600).H = %v, want 0", h)
	}
	if h := c.Color(3601).H; h < 0 || h >= 360 {
		t.Errorf("Color(3601).H = %v out of range", h)
	}
}

func TestHSLFormats(t *testing.T) {
	red := HSL{H: 0, S: 100, L: 50}
	if got := red.String(); got != "hsl(0.0, 100%, 50.0%)" {
		t.Errorf("String() = %q", got)
	}
	if got := red.Hex(); !strings.EqualFold(got, "#ff0000") {
		t.Errorf("Hex() = %q, want #ff0000", got)
	}
	rgba := red.RGBA()
	if rgba.R != 255 || rgba.G != 0 || rgba.B != 0 || rgba.A != 255 {
		t.Errorf("RGBA() = %+v", rgba)
	}
}
