package grid

import (
	"fmt"
	"math"

	"github.com/matzehuels/canvasbench/pkg/errors"
)

// Mode selects how rows beyond the canvas height are placed.
type Mode string

const (
	// ModeFlat lays rows out top to bottom without a height limit.
	ModeFlat Mode = "flat"
	// ModePaged folds rows into side-by-side pages of RowsPerPage rows.
	ModePaged Mode = "paged"
)

// ParseMode converts a user supplied mode name. The empty string means flat.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeFlat:
		return ModeFlat, nil
	case ModePaged:
		return ModePaged, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidConfig, "unknown layout mode %q (must be 'flat' or 'paged')", s)
	}
}

// Defaults used by the harness when no configuration file overrides them.
const (
	DefaultCanvasWidth = 2500.0
	DefaultItemSize    = 50.0
	DefaultSpacing     = 5.0
	DefaultMaxHeight   = 8000.0

	// defaultHeightItems is the item count the default canvas height is sized for.
	defaultHeightItems = 10000

	// colorRows is the target height, in rows, of one lightness window.
	colorRows = 500
)

// Params are the user-facing inputs of a grid. Zero CanvasHeight means
// "derive it": enough rows for 10000 items, capped at DefaultMaxHeight.
type Params struct {
	CanvasWidth  float64 `json:"canvas_width" toml:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height" toml:"canvas_height"`
	ItemSize     float64 `json:"item_size" toml:"item_size"`
	Spacing      float64 `json:"spacing" toml:"spacing"`
	Mode         Mode    `json:"mode" toml:"mode"`
}

// DefaultParams returns the harness defaults: a 2500px wide canvas of 50px
// items separated by 5px.
func DefaultParams() Params {
	return Params{
		CanvasWidth: DefaultCanvasWidth,
		ItemSize:    DefaultItemSize,
		Spacing:     DefaultSpacing,
		Mode:        ModeFlat,
	}
}

// Config is an immutable, validated grid description.
// The zero value is not usable; build one with [New].
type Config struct {
	params      Params
	step        float64
	perRow      int
	rowsPerPage int
	window      int
}

// New validates p and derives the grid geometry.
func New(p Params) (Config, error) {
	if !(p.ItemSize > 0) {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "item size must be positive, got %v", p.ItemSize)
	}
	if p.Spacing < 0 || math.IsNaN(p.Spacing) {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "spacing cannot be negative, got %v", p.Spacing)
	}
	if !(p.CanvasWidth > 0) {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "canvas width must be positive, got %v", p.CanvasWidth)
	}
	if p.CanvasHeight < 0 || math.IsNaN(p.CanvasHeight) {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "canvas height cannot be negative, got %v", p.CanvasHeight)
	}
	mode, err := ParseMode(string(p.Mode))
	if err != nil {
		return Config{}, err
	}
	p.Mode = mode

	step := p.ItemSize + p.Spacing
	perRow := int(math.Round(p.CanvasWidth / step))
	if perRow < 1 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig,
			"canvas width %v fits no items of size %v with spacing %v", p.CanvasWidth, p.ItemSize, p.Spacing)
	}

	if p.CanvasHeight == 0 {
		p.CanvasHeight = math.Min(step*(defaultHeightItems/float64(perRow)), DefaultMaxHeight)
	}
	rowsPerPage := max(int(math.Round(p.CanvasHeight/step)), 1)

	windowRows := max(int(math.Round(colorRows/float64(perRow))), 1)

	return Config{
		params:      p,
		step:        step,
		perRow:      perRow,
		rowsPerPage: rowsPerPage,
		window:      perRow * windowRows,
	}, nil
}

// MustNew is like [New] but panics on invalid parameters. Intended for tests
// and package-level defaults.
func MustNew(p Params) Config {
	c, err := New(p)
	if err != nil {
		panic(err)
	}
	return c
}

// Params returns the normalised parameters the config was built from.
func (c Config) Params() Params { return c.params }

// CanvasWidth returns the configured canvas width.
func (c Config) CanvasWidth() float64 { return c.params.CanvasWidth }

// CanvasHeight returns the configured or derived canvas height.
func (c Config) CanvasHeight() float64 { return c.params.CanvasHeight }

// ItemSize returns the edge length of one item.
func (c Config) ItemSize() float64 { return c.params.ItemSize }

// Spacing returns the gap between neighbouring items.
func (c Config) Spacing() float64 { return c.params.Spacing }

// Mode returns the layout mode.
func (c Config) Mode() Mode { return c.params.Mode }

// Step returns the distance between the origins of neighbouring cells.
func (c Config) Step() float64 { return c.step }

// ItemsPerRow returns round(CanvasWidth / Step).
func (c Config) ItemsPerRow() int { return c.perRow }

// RowsPerPage returns round(CanvasHeight / Step), at least 1.
func (c Config) RowsPerPage() int { return c.rowsPerPage }

// ColorWindow returns the period, in items, of the lightness ramp.
func (c Config) ColorWindow() int { return c.window }

// String implements fmt.Stringer for log output.
func (c Config) String() string {
	return fmt.Sprintf("%s grid %gx%g, %d per row, item %g+%g",
		c.params.Mode, c.params.CanvasWidth, c.params.CanvasHeight, c.perRow, c.params.ItemSize, c.params.Spacing)
}
