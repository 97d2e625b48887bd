package cache

import "github.com/matzehuels/canvasbench/pkg/grid"

// FrameKeyOpts identifies a rendered frame. Two renders with equal options
// produce identical bytes.
type FrameKeyOpts struct {
	Backend      string      `json:"backend"`
	Kind         string      `json:"kind"`
	Count        int         `json:"count"`
	Grid         grid.Params `json:"grid"`
	Fill         string      `json:"fill,omitempty"`
	Stroke       string      `json:"stroke,omitempty"`
	RandomColors bool        `json:"random_colors,omitempty"`
	Label        string      `json:"label,omitempty"`
	FontSize     float64     `json:"font_size,omitempty"`
	FitThreshold float64     `json:"fit_threshold,omitempty"`
	Icon         string      `json:"icon,omitempty"`
	Rotation     float64     `json:"rotation,omitempty"`
	Zoom         float64     `json:"zoom,omitempty"`
	PanX         float64     `json:"pan_x,omitempty"`
	PanY         float64     `json:"pan_y,omitempty"`
	Antialias    bool        `json:"antialias,omitempty"`
	// Select is the highlighted screen box as x, y, w, h.
	Select []float64 `json:"select,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	FrameKey(opts FrameKeyOpts) string
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// FrameKey returns "frame:<backend>:<hash>".
func (DefaultKeyer) FrameKey(opts FrameKeyOpts) string {
	return hashKey("frame:"+opts.Backend, opts)
}
