package cli

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/canvasbench/pkg/results"
)

func quietLogger() *log.Logger { return log.New(io.Discard) }

func TestResultsTable(t *testing.T) {
	run := &results.Run{
		ID: "r1",
		Results: []results.Result{
			{Backend: "svg", Format: "svg", Stats: results.Stats{
				Create: 2 * time.Millisecond, FirstDraw: 1500 * time.Microsecond,
				FrameMean: 4 * time.Millisecond, FPS: 250, Selected: 12, Click: 300 * time.Microsecond, Bytes: 2048, Cached: true,
			}},
			{Backend: "graphviz", Format: "svg", Error: "create: too many items"},
		},
	}

	out := resultsTable(run)
	for _, want := range []string{"Backend", "svg", "250.0", "2.0ms", "2.0 KiB, cached", "(12), click 300µs", "graphviz", "create: too many items"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0"},
		{250 * time.Microsecond, "250µs"},
		{12500 * time.Microsecond, "12.5ms"},
		{1500 * time.Millisecond, "1.50s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{512, "512 B"},
		{1536, "1.5 KiB"},
		{3 << 20, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
