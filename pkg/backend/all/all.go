// Package all wires every rendering backend into a registry.
package all

import (
	"github.com/matzehuels/canvasbench/pkg/backend"
	"github.com/matzehuels/canvasbench/pkg/backend/gpu"
	"github.com/matzehuels/canvasbench/pkg/backend/graphviz"
	"github.com/matzehuels/canvasbench/pkg/backend/pdf"
	"github.com/matzehuels/canvasbench/pkg/backend/raster"
	"github.com/matzehuels/canvasbench/pkg/backend/svg"
)

// Registry returns a registry holding every backend.
func Registry() *backend.Registry {
	r := backend.NewRegistry()
	r.MustRegister(svg.Name, svg.New)
	r.MustRegister(raster.Name, raster.New)
	r.MustRegister(gpu.Name, gpu.New)
	r.MustRegister(pdf.Name, pdf.New)
	r.MustRegister(graphviz.Name, graphviz.New)
	return r
}
