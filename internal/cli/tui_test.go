package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/canvasbench/pkg/bench"
	"github.com/matzehuels/canvasbench/pkg/grid"
	"github.com/matzehuels/canvasbench/pkg/results"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

func newTestDashboard(backends ...string) DashboardModel {
	opts := bench.DefaultOptions()
	opts.Backends = backends
	return NewDashboardModel(context.Background(), bench.NewRunner(nil, nil, nil, nil, quietLogger()), opts)
}

func press(t *testing.T, m DashboardModel, keys ...string) DashboardModel {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(DashboardModel)
	}
	return m
}

func TestDashboardEnabledBackends(t *testing.T) {
	m := newTestDashboard("svg", "pdf")
	if !m.Enabled["svg"] || !m.Enabled["pdf"] || m.Enabled["gpu"] {
		t.Errorf("Enabled = %v", m.Enabled)
	}

	all := newTestDashboard()
	for _, name := range all.Backends {
		if !all.Enabled[name] {
			t.Errorf("%s should start enabled", name)
		}
	}
}

func TestDashboardKeys(t *testing.T) {
	m := newTestDashboard()
	first := m.Backends[0]

	m = press(t, m, " ")
	if m.Enabled[first] {
		t.Errorf("space did not disable %s", first)
	}
	m = press(t, m, "down")
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d", m.Cursor)
	}

	m = press(t, m, "+", "+")
	if m.Opts.Count != 5000 {
		t.Errorf("Count = %d after two steps up from 1000", m.Opts.Count)
	}
	m = press(t, m, "-")
	if m.Opts.Count != 2500 {
		t.Errorf("Count = %d", m.Opts.Count)
	}

	m = press(t, m, "tab")
	if m.Opts.Kind != scene.KindText {
		t.Errorf("Kind = %s", m.Opts.Kind)
	}
	m = press(t, m, "m", "z", "p")
	if m.Opts.Grid.Mode != grid.ModePaged || m.Opts.Zoom != 2 || !m.Opts.Parallel {
		t.Errorf("Opts = %+v", m.Opts)
	}
}

func TestDashboardRunLifecycle(t *testing.T) {
	m := newTestDashboard("svg")

	next, cmd := m.start()
	m = next.(DashboardModel)
	if !m.Running || cmd == nil {
		t.Fatal("start did not launch a run")
	}

	// Keys other than quit are ignored while running.
	if m = press(t, m, "+"); m.Opts.Count != bench.DefaultCount {
		t.Errorf("Count changed during run: %d", m.Opts.Count)
	}

	run := &results.Run{ID: "r1", Results: []results.Result{{Backend: "svg", Format: "svg"}}}
	next, _ = m.Update(runDoneMsg{run: run})
	m = next.(DashboardModel)
	if m.Running || m.Last != run {
		t.Errorf("Running = %v, Last = %v", m.Running, m.Last)
	}
	if !strings.Contains(m.View(), "svg") {
		t.Error("View() missing result table")
	}

	next, _ = m.Update(runDoneMsg{err: errors.New("boom")})
	m = next.(DashboardModel)
	if m.Last != run || !strings.Contains(m.View(), "boom") {
		t.Error("failed run should keep the last result and show the error")
	}

	unsaved := &results.Run{ID: "r2", Results: []results.Result{{Backend: "pdf", Format: "pdf"}}}
	next, _ = m.Update(runDoneMsg{run: unsaved, err: errors.New("save run: disk full")})
	m = next.(DashboardModel)
	if m.Last != unsaved || !strings.Contains(m.View(), "disk full") {
		t.Error("unsaved run should be shown together with the save error")
	}
}

func TestDashboardNeedsBackend(t *testing.T) {
	m := newTestDashboard("svg")
	for i, name := range m.Backends {
		if name == "svg" {
			m.Cursor = i
		}
	}
	m = press(t, m, " ", "enter")
	if m.Running || m.Err == nil {
		t.Error("run without backends should be refused")
	}
}

func TestStepCount(t *testing.T) {
	tests := []struct{ n, dir, want int }{
		{1000, 1, 2500},
		{1000, -1, 500},
		{1200, 1, 2500},
		{1200, -1, 1000},
		{100, -1, 100},
		{100000, 1, 100000},
		{5, 1, 100},
	}
	for _, tt := range tests {
		if got := stepCount(tt.n, tt.dir); got != tt.want {
			t.Errorf("stepCount(%d, %d) = %d, want %d", tt.n, tt.dir, got, tt.want)
		}
	}
}
