package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/canvasbench/pkg/results"
)

// Export formats.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "md"
)

// Formats lists the supported export formats.
var Formats = []string{FormatJSON, FormatCSV, FormatMarkdown}

var csvHeader = []string{
	"backend", "format", "create_ms", "first_draw_ms", "frames", "frame_mean_ms",
	"frame_p95_ms", "frame_max_ms", "fps", "zoom_draw_ms", "select_ms", "selected",
	"click_ms", "bytes", "error",
}

// Write encodes run to w in the given format.
func Write(run *results.Run, format string, w io.Writer) error {
	switch format {
	case FormatJSON:
		return WriteJSON(run, w)
	case FormatCSV:
		return WriteCSV(run, w)
	case FormatMarkdown:
		return WriteMarkdown(run, w)
	default:
		return fmt.Errorf("unknown export format %q (must be one of %s)", format, strings.Join(Formats, ", "))
	}
}

// WriteJSON encodes run as indented JSON.
func WriteJSON(run *results.Run, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

// WriteCSV writes a header and one row per backend.
func WriteCSV(run *results.Run, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range run.Results {
		s := r.Stats
		row := []string{
			r.Backend, r.Format,
			ms(s.Create), ms(s.FirstDraw), strconv.Itoa(s.Frames), ms(s.FrameMean),
			ms(s.FrameP95), ms(s.FrameMax), strconv.FormatFloat(s.FPS, 'f', 2, 64),
			ms(s.ZoomDraw), ms(s.Select), strconv.Itoa(s.Selected),
			ms(s.Click), strconv.Itoa(s.Bytes), r.Error,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMarkdown writes a heading with the run settings and a results table.
func WriteMarkdown(run *results.Run, w io.Writer) error {
	s := run.Settings
	var b strings.Builder
	fmt.Fprintf(&b, "### canvasbench run %s\n\n", run.ID)
	fmt.Fprintf(&b, "%d %s items, %d frames, zoom %g, grid %s (version %s)\n\n",
		s.Count, s.Kind, s.Frames, s.Zoom, s.Grid.Mode, run.Version)
	b.WriteString("| backend | create | first draw | frame mean | frame p95 | fps | zoom draw | select | selected | click |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|---:|---:|---:|---:|\n")
	for _, r := range run.Results {
		if !r.OK() {
			fmt.Fprintf(&b, "| %s | failed: %s ||||||||\n", r.Backend, r.Error)
			continue
		}
		st := r.Stats
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %.1f | %s | %s | %d | %s |\n",
			r.Backend, ms(st.Create), ms(st.FirstDraw), ms(st.FrameMean), ms(st.FrameP95),
			st.FPS, ms(st.ZoomDraw), ms(st.Select), st.Selected, ms(st.Click))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFile exports run to path, picking the format from the extension when
// format is empty.
func WriteFile(run *results.Run, format, path string) error {
	if format == "" {
		format = FormatFromPath(path)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(run, format, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FormatFromPath maps a file extension onto an export format. Unknown
// extensions export JSON.
func FormatFromPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".csv"):
		return FormatCSV
	case strings.HasSuffix(path, ".md"):
		return FormatMarkdown
	default:
		return FormatJSON
	}
}

func ms(d time.Duration) string {
	return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', 3, 64)
}
