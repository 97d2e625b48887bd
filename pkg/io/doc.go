// Package io exports benchmark runs for use outside canvasbench and reads
// them back.
//
// # Formats
//
//   - JSON: the stored form of a [results.Run], suitable for re-import
//   - CSV: one row per backend, durations in milliseconds
//   - Markdown: a table for pasting into issues and READMEs
//
// # JSON
//
// The JSON form matches what the file store writes:
//
//	{
//	  "id": "5f0c...",
//	  "version": "v0.3.0",
//	  "started_at": "2026-03-01T10:00:00Z",
//	  "settings": {"kind": "rect", "count": 1000, ...},
//	  "results": [{"backend": "svg", "format": "svg", "stats": {...}}]
//	}
//
// [ReadJSON] rejects runs without a valid ID or with results that name no
// backend.
//
// # CSV Columns
//
//	backend, format, create_ms, first_draw_ms, frames, frame_mean_ms,
//	frame_p95_ms, frame_max_ms, fps, zoom_draw_ms, select_ms, selected,
//	bytes, error
package io
