// Package fonts provides the font used for text items in every backend.
//
// The Go Regular TrueType font ships with golang.org/x/image, so raster
// backends can measure and draw text without depending on system fonts.
// Vector backends reference it by family name with generic fallbacks.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultSize is the point size of text items.
const DefaultSize = 14.0

// FontFamily is the CSS font-family used by vector outputs.
const FontFamily = "Go, Helvetica, Arial, sans-serif"

// TTF returns the Go Regular font data.
func TTF() []byte {
	return goregular.TTF
}

var (
	parsed     *truetype.Font
	parseErr   error
	parsedOnce sync.Once

	facesMu sync.Mutex
	faces   = map[float64]font.Face{}
)

// Parsed returns the Go Regular font parsed by golang/freetype.
// The result is computed once.
func Parsed() (*truetype.Font, error) {
	parsedOnce.Do(func() {
		parsed, parseErr = truetype.Parse(goregular.TTF)
	})
	return parsed, parseErr
}

// Face returns a font.Face of the given point size. Faces are cached per
// size. A truetype face is not safe for concurrent use, so callers drawing
// from several goroutines should use [NewFace].
func Face(points float64) (font.Face, error) {
	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[points]; ok {
		return f, nil
	}
	f, err := NewFace(points)
	if err != nil {
		return nil, err
	}
	faces[points] = f
	return f, nil
}

// NewFace returns a fresh, uncached font.Face of the given point size.
func NewFace(points float64) (font.Face, error) {
	f, err := Parsed()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: points, Hinting: font.HintingFull}), nil
}
