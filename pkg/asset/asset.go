// Package asset loads the vector icons benchmark scenes can be built from.
//
// An [Icon] keeps the original SVG source (for vector backends that embed it)
// and lazily rasterises it with srwiley/oksvg for raster backends. Rasters
// are memoised per pixel size, so a scene of ten thousand icons rasterises
// the source once.
//
// Two icons are compiled into the binary: "fan" and "fan-gradient".
package asset

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/matzehuels/canvasbench/pkg/errors"
)

//go:embed builtin/*.svg
var builtinFS embed.FS

// DefaultName is the builtin icon used when none is configured.
const DefaultName = "fan"

// Icon is a parsed SVG graphic.
type Icon struct {
	name string
	data []byte
	w, h float64

	mu      sync.Mutex
	rasters map[int]*image.RGBA
}

// Parse parses SVG source. name is used in logs and as the symbol id by
// vector backends.
func Parse(name string, data []byte) (*Icon, error) {
	src, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse svg %s", name)
	}
	w, h := src.ViewBox.W, src.ViewBox.H
	if !(w > 0) || !(h > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "svg %s has an empty viewBox", name)
	}
	return &Icon{name: name, data: data, w: w, h: h, rasters: make(map[int]*image.RGBA)}, nil
}

// Load reads and parses an SVG file from disk.
func Load(path string) (*Icon, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeNotFound, "svg file %s does not exist", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read svg %s", path)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(name, data)
}

var (
	builtinMu    sync.Mutex
	builtinCache = map[string]*Icon{}
)

// Builtin returns one of the icons compiled into the binary.
func Builtin(name string) (*Icon, error) {
	builtinMu.Lock()
	defer builtinMu.Unlock()
	if ic, ok := builtinCache[name]; ok {
		return ic, nil
	}
	data, err := builtinFS.ReadFile("builtin/" + name + ".svg")
	if err != nil {
		return nil, errors.New(errors.ErrCodeNotFound, "unknown builtin icon %q (available: %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	ic, err := Parse(name, data)
	if err != nil {
		return nil, err
	}
	builtinCache[name] = ic
	return ic, nil
}

// BuiltinNames lists the embedded icons.
func BuiltinNames() []string {
	entries, _ := builtinFS.ReadDir("builtin")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".svg"))
	}
	sort.Strings(names)
	return names
}

// Resolve loads ref as a builtin name, or as a file path when it ends in .svg.
func Resolve(ref string) (*Icon, error) {
	if ref == "" {
		ref = DefaultName
	}
	if strings.HasSuffix(strings.ToLower(ref), ".svg") {
		return Load(ref)
	}
	return Builtin(ref)
}

// Name returns the icon name.
func (i *Icon) Name() string { return i.name }

// Size returns the intrinsic viewBox size.
func (i *Icon) Size() (w, h float64) { return i.w, i.h }

// Data returns the SVG source. Callers must not modify it.
func (i *Icon) Data() []byte { return i.data }

var (
	svgOpenRe  = regexp.MustCompile(`(?s)<svg[^>]*>`)
	svgCloseRe = regexp.MustCompile(`</svg>\s*$`)
)

// Inner returns the markup between the outer <svg> tags, suitable for
// wrapping in a <symbol>.
func (i *Icon) Inner() string {
	s := strings.TrimSpace(string(i.data))
	loc := svgOpenRe.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return strings.TrimSpace(svgCloseRe.ReplaceAllString(s[loc[1]:], ""))
}

// Raster returns the icon rasterised to fit a px x px box, preserving
// aspect ratio. Results are cached per size and shared; do not modify them.
func (i *Icon) Raster(px int) (*image.RGBA, error) {
	if px <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "raster size must be positive, got %d", px)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if img, ok := i.rasters[px]; ok {
		return img, nil
	}

	src, err := oksvg.ReadIconStream(bytes.NewReader(i.data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "reparse svg %s", i.name)
	}
	scale := math.Min(float64(px)/i.w, float64(px)/i.h)
	w := max(int(math.Ceil(i.w*scale)), 1)
	h := max(int(math.Ceil(i.h*scale)), 1)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	src.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	src.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	i.rasters[px] = img
	return img, nil
}

// String implements fmt.Stringer.
func (i *Icon) String() string {
	return fmt.Sprintf("%s (%gx%g)", i.name, i.w, i.h)
}
