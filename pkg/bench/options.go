package bench

import (
	"fmt"
	"slices"

	"github.com/matzehuels/canvasbench/pkg/config"
	"github.com/matzehuels/canvasbench/pkg/errors"
	"github.com/matzehuels/canvasbench/pkg/grid"
	"github.com/matzehuels/canvasbench/pkg/results"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

// Default values used when Options fields are left empty.
const (
	DefaultCount  = 1000
	DefaultFrames = 60
	MaxCount      = 1_000_000
)

// Options configures a benchmark run.
type Options struct {
	// Backends to measure, in order. Empty means every registered backend.
	Backends []string
	Kind     scene.Kind
	Count    int
	Grid     grid.Params
	Style    scene.Style
	// Icon is a builtin icon name or a path to an .svg file.
	Icon string

	// Frames is the number of animation frames drawn after the first one.
	Frames int
	// Angle is the rotation in degrees added to every item per frame. Zero
	// measures redraws without rotation.
	Angle float64
	// FPS paces the animation. Zero draws frames back to back.
	FPS int
	// Zoom is the factor applied for the zoom stage.
	Zoom float64
	// Select is the screen space box used for the selection stage. Nil
	// selects the top left quarter of the zoomed canvas.
	Select *scene.Rect

	Antialias bool
	Parallel  bool
	// Refresh ignores cached frames when rendering single frames.
	Refresh bool
}

// DefaultOptions returns the options of a stock run.
func DefaultOptions() Options {
	return Options{
		Kind:      scene.KindRect,
		Count:     DefaultCount,
		Grid:      grid.DefaultParams(),
		Frames:    DefaultFrames,
		Angle:     scene.DefaultAngle,
		Zoom:      1,
		Antialias: true,
	}
}

// FromConfig derives run options from a loaded configuration.
func FromConfig(cfg *config.Config) (Options, error) {
	kind, err := scene.ParseKind(cfg.Scene.Kind)
	if err != nil {
		return Options{}, err
	}
	opts := Options{
		Backends: slices.Clone(cfg.Bench.Backends),
		Kind:     kind,
		Count:    cfg.Bench.Count,
		Grid:     cfg.Grid,
		Style: scene.Style{
			Fill:         cfg.Scene.Fill,
			Stroke:       cfg.Scene.Stroke,
			RandomColors: cfg.Scene.RandomColors,
			Label:        cfg.Scene.Label,
			FontSize:     cfg.Scene.FontSize,
			FitThreshold: cfg.Scene.FitThreshold,
		},
		Icon:      cfg.Scene.Icon,
		Frames:    cfg.Bench.Frames,
		Angle:     cfg.Bench.Angle,
		FPS:       cfg.Bench.FPS,
		Zoom:      cfg.Bench.Zoom,
		Antialias: cfg.Bench.Antialias,
		Parallel:  cfg.Bench.Parallel,
	}
	if b := cfg.Bench.Select; len(b) > 0 {
		if len(b) != 4 {
			return Options{}, errors.New(errors.ErrCodeInvalidConfig, "bench.select needs 4 values (x, y, w, h), got %d", len(b))
		}
		r := scene.Rect{X: b[0], Y: b[1], W: b[2], H: b[3]}
		opts.Select = &r
	}
	return opts, nil
}

// ValidateAndSetDefaults checks the options and fills in zero values.
func (o *Options) ValidateAndSetDefaults() error {
	kind, err := scene.ParseKind(string(o.Kind))
	if err != nil {
		return err
	}
	o.Kind = kind
	if err := errors.ValidateCount(o.Count, MaxCount); err != nil {
		return err
	}
	for _, name := range o.Backends {
		if err := errors.ValidateBackendName(name); err != nil {
			return err
		}
	}
	if o.Grid == (grid.Params{}) {
		o.Grid = grid.DefaultParams()
	}
	if _, err := grid.New(o.Grid); err != nil {
		return err
	}
	if o.Frames < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "frames cannot be negative, got %d", o.Frames)
	}
	if o.FPS < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "fps cannot be negative, got %d", o.FPS)
	}
	if o.Zoom == 0 {
		o.Zoom = 1
	}
	if o.Zoom < scene.MinZoom || o.Zoom > scene.MaxZoom {
		return errors.New(errors.ErrCodeInvalidInput, "zoom must be within [%v, %v], got %v", scene.MinZoom, scene.MaxZoom, o.Zoom)
	}
	if o.Select != nil && (o.Select.W < 0 || o.Select.H < 0) {
		return errors.New(errors.ErrCodeInvalidInput, "selection box cannot have a negative size")
	}
	return nil
}

// Settings records the options on a stored run.
func (o Options) Settings() results.Settings {
	return results.Settings{
		Kind:         string(o.Kind),
		Count:        o.Count,
		Frames:       o.Frames,
		Angle:        o.Angle,
		Zoom:         o.Zoom,
		RandomColors: o.Style.RandomColors,
		Antialias:    o.Antialias,
		Parallel:     o.Parallel,
		Icon:         o.Icon,
		Grid:         o.Grid,
	}
}

// Viewport returns the viewport of the zoom stage.
func (o Options) Viewport() scene.Viewport {
	v := scene.DefaultViewport()
	v.SetZoom(o.Zoom)
	return v
}

// SelectBox returns the screen space selection box for a scene of o.Count
// items laid out by g and viewed through v.
func (o Options) SelectBox(g grid.Config, v scene.Viewport) scene.Rect {
	if o.Select != nil {
		return *o.Select
	}
	w, h := g.Extent(o.Count)
	ow, oh := v.OutputSize(w, h)
	return scene.Rect{W: float64(ow) / 2, H: float64(oh) / 2}
}

func (o Options) String() string {
	return fmt.Sprintf("%d %s items, %d frames, zoom %v", o.Count, o.Kind, o.Frames, o.Zoom)
}
