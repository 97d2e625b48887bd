// Package bench measures rendering backends.
//
// A run builds the same scene once per backend and times five stages:
//
//  1. create: build one node per item through the backend's factory
//  2. draw: render the first frame
//  3. animate: rotate every item and redraw, once per frame
//  4. zoom: redraw through a zoomed viewport
//  5. select: box-select the items in a screen rectangle and redraw with
//     highlights
//
// A backend that fails a stage is recorded with its error and the run moves
// on to the next backend. Finished runs are saved to a [results.Store].
//
// # Usage
//
//	runner := bench.NewRunner(nil, cache, nil, store, logger)
//	report, err := runner.Run(ctx, bench.DefaultOptions())
//
// [Runner.Render] draws a single frame for the render command and the
// viewer. First frames are cached under the same key by both, so a render
// after a run of equal options is served from the cache.
package bench
