// Package pkg provides the libraries behind canvasbench, a benchmark harness
// for 2D rendering backends.
//
// # Overview
//
// Canvasbench lays out thousands of identical items on a grid and measures how
// long each backend needs to build the scene, draw it, animate it, zoom and
// select. The pkg directory is organized into four areas:
//
//  1. Scene model: [grid] placement and colors, [scene] items, viewport,
//     animation and selection, [asset] SVG icons, [fonts]
//  2. Backends: [backend] and its svg, raster, gpu, pdf and graphviz packages
//  3. Orchestration: [bench] runs the five stages and renders single frames
//  4. Infrastructure: [cache] frames, [results] runs, [io] export,
//     [config], [errors], [observability], [httputil], [buildinfo]
//
// # Architecture
//
//	config.Config ─→ bench.Options
//	                      ↓
//	grid.Config ─→ scene.Builder ─→ backend.Backend (create)
//	                      ↓
//	       draw → animate → zoom → select   (timed per backend)
//	                      ↓
//	        results.Run ─→ results.Store / io export
//
// # Quick Start
//
// Benchmark two backends with the default scene:
//
//	runner := bench.NewRunner(nil, nil, nil, nil, nil)
//	opts := bench.DefaultOptions()
//	opts.Backends = []string{"svg", "gpu"}
//	report, err := runner.Run(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	for _, r := range report.Run.Results {
//	    fmt.Println(r.Backend, r.Stats.FPS)
//	}
package pkg
