// Package backend defines the contract between the benchmark harness and the
// rendering libraries it measures.
//
// Each subpackage adapts one library:
//
//   - [svg]: SVG documents via ajstarks/svgo
//   - [raster]: PNG via fogleman/gg and golang/freetype
//   - [gpu]: PNG via gogpu/gg with a selectable rasterizer
//   - [pdf]: vector PDF via go-pdf/fpdf
//   - [graphviz]: SVG via Graphviz neato with pinned node positions
//
// A backend creates its own node type for every item (see [scene.Factory])
// and renders a whole [scene.Scene] per call to Draw. The [all] subpackage
// registers every adapter in a [Registry].
package backend
