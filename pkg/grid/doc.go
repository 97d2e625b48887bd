// Package grid places benchmark items on an auto-wrapping grid.
//
// # Overview
//
// Every rendering backend builds its scene the same way: item i goes into
// the i-th cell of a row-major grid whose row length is derived from the
// canvas width. The grid is described by an immutable [Config]; coordinates
// and display colors are pure functions of the item index, so any number of
// goroutines may query the same Config concurrently.
//
//	cfg, err := grid.New(grid.DefaultParams())
//	if err != nil {
//	    return err
//	}
//	p := cfg.Coordinate(120)  // top-left corner of cell 120
//	c := cfg.Center(120)      // where backends anchor the shape
//	fill := cfg.Color(120)    // repeatable pseudo-color
//
// # Layout Modes
//
// [ModeFlat] grows downwards without bound. [ModePaged] folds rows into
// pages of RowsPerPage rows and places each page to the right of the
// previous one, separated by one spacing gap, which bounds the canvas height
// for very large item counts.
//
// # Colors
//
// [Config.Color] returns an [HSL] whose hue creeps up by 0.1 degree per item
// and whose lightness ramps inside a window of roughly 500/ItemsPerRow rows,
// so neighbouring items differ and re-runs look identical.
package grid
