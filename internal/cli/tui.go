package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasbench/pkg/bench"
	"github.com/matzehuels/canvasbench/pkg/grid"
	"github.com/matzehuels/canvasbench/pkg/observability"
	"github.com/matzehuels/canvasbench/pkg/results"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// tuiCommand creates the interactive dashboard command.
func (c *CLI) tuiCommand() *cobra.Command {
	var (
		flags   benchFlags
		noCache bool
		noSave  bool
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive benchmark dashboard",
		Long: `Interactive benchmark dashboard.

Toggle backends, change the item count, kind, layout mode and zoom, and run
the benchmark as often as you like. Every run is stored like one started with
'canvasbench run'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.configOptions(cmd, flags.apply)
			if err != nil {
				return err
			}
			return c.runTUI(cmd.Context(), opts, noCache, noSave)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the frame cache")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store runs")

	return cmd
}

func (c *CLI) runTUI(ctx context.Context, opts bench.Options, noCache, noSave bool) error {
	runner, err := c.newRunner(ctx, noCache, noSave)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Log lines would tear the alt screen apart.
	level := c.Logger.GetLevel()
	c.Logger.SetLevel(log.WarnLevel)
	defer c.Logger.SetLevel(level)

	m := NewDashboardModel(ctx, runner, opts)
	restore := watchStages(m.progress.set)
	defer restore()

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// DashboardModel - Interactive benchmark runs
// =============================================================================

// Count steps offered by the dashboard.
var dashboardCounts = []int{100, 500, 1000, 2500, 5000, 10000, 25000, 50000, 100000}

// stageProgress is written by bench hooks and read on every tick.
type stageProgress struct {
	mu      sync.Mutex
	current string
}

func (p *stageProgress) set(backend string, stage observability.Stage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = fmt.Sprintf("%s: %s", backend, stage)
}

func (p *stageProgress) get() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

type (
	tickMsg    time.Time
	runDoneMsg struct {
		run *results.Run
		err error
	}
)

// DashboardModel is the bubbletea model of the benchmark dashboard.
type DashboardModel struct {
	ctx      context.Context
	runner   *bench.Runner
	progress *stageProgress

	Opts     bench.Options
	Backends []string
	Enabled  map[string]bool
	Cursor   int

	Running bool
	Frame   int
	Last    *results.Run
	Err     error
}

// NewDashboardModel creates a dashboard over every backend of runner. The
// backends of opts start enabled; an empty list enables all of them.
func NewDashboardModel(ctx context.Context, runner *bench.Runner, opts bench.Options) DashboardModel {
	names := runner.Registry.Names()
	enabled := make(map[string]bool, len(names))
	for _, name := range names {
		enabled[name] = len(opts.Backends) == 0 || slices.Contains(opts.Backends, name)
	}
	if opts.Kind == "" {
		opts.Kind = scene.KindRect
	}
	if opts.Zoom <= 0 {
		opts.Zoom = 1
	}
	return DashboardModel{
		ctx:      ctx,
		runner:   runner,
		progress: &stageProgress{},
		Opts:     opts,
		Backends: names,
		Enabled:  enabled,
	}
}

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Running {
			if s := msg.String(); s == "ctrl+c" || s == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
		return m.handleKey(msg.String())
	case tickMsg:
		if !m.Running {
			return m, nil
		}
		m.Frame++
		return m, tick()
	case runDoneMsg:
		m.Running = false
		m.Err = msg.err
		if msg.run != nil {
			m.Last = msg.run
		}
	}
	return m, nil
}

func (m DashboardModel) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Backends)-1 {
			m.Cursor++
		}
	case " ", "space", "x":
		name := m.Backends[m.Cursor]
		m.Enabled[name] = !m.Enabled[name]
	case "+", "=":
		m.Opts.Count = stepCount(m.Opts.Count, 1)
	case "-", "_":
		m.Opts.Count = stepCount(m.Opts.Count, -1)
	case "tab":
		i := slices.Index(scene.Kinds, m.Opts.Kind)
		m.Opts.Kind = scene.Kinds[(i+1)%len(scene.Kinds)]
	case "m":
		if m.Opts.Grid.Mode == grid.ModePaged {
			m.Opts.Grid.Mode = grid.ModeFlat
		} else {
			m.Opts.Grid.Mode = grid.ModePaged
		}
	case "z":
		m.Opts.Zoom = min(m.Opts.Zoom*2, scene.MaxZoom)
	case "Z":
		m.Opts.Zoom = max(m.Opts.Zoom/2, scene.MinZoom)
	case "r":
		m.Opts.Style.RandomColors = !m.Opts.Style.RandomColors
	case "p":
		m.Opts.Parallel = !m.Opts.Parallel
	case "enter":
		return m.start()
	}
	return m, nil
}

// start launches a run with the enabled backends.
func (m DashboardModel) start() (tea.Model, tea.Cmd) {
	opts := m.Opts
	opts.Backends = nil
	for _, name := range m.Backends {
		if m.Enabled[name] {
			opts.Backends = append(opts.Backends, name)
		}
	}
	if len(opts.Backends) == 0 {
		m.Err = fmt.Errorf("enable at least one backend")
		return m, nil
	}

	m.Running = true
	m.Err = nil
	m.Frame = 0
	ctx, runner := m.ctx, m.runner
	run := func() tea.Msg {
		report, err := runner.Run(ctx, opts)
		if report == nil {
			return runDoneMsg{err: err}
		}
		return runDoneMsg{run: report.Run, err: err}
	}
	return m, tea.Batch(run, tick())
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// stepCount moves n to the next entry of dashboardCounts in direction dir.
func stepCount(n, dir int) int {
	i, found := slices.BinarySearch(dashboardCounts, n)
	switch {
	case dir > 0 && found:
		i++
	case dir < 0:
		i--
	}
	return dashboardCounts[max(0, min(i, len(dashboardCounts)-1))]
}

func (m DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("canvasbench"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ move  space toggle  +/- count  tab kind  m mode  z/Z zoom  r colors  p parallel  ⏎ run  q quit"))
	b.WriteString("\n\n")

	for i, name := range m.Backends {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if m.Enabled[name] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s%s %s", cursor, box, name)
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case m.Enabled[name]:
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	mode := m.Opts.Grid.Mode
	if mode == "" {
		mode = grid.ModeFlat
	}
	settings := []string{
		fmt.Sprintf("%s %s", StyleNumber.Render(fmt.Sprint(m.Opts.Count)), m.Opts.Kind),
		string(mode),
		fmt.Sprintf("zoom %gx", m.Opts.Zoom),
	}
	if m.Opts.Style.RandomColors {
		settings = append(settings, "random colors")
	}
	if m.Opts.Parallel {
		settings = append(settings, "parallel")
	}
	b.WriteString("  " + strings.Join(settings, StyleDim.Render(" · ")))
	b.WriteString("\n\n")

	switch {
	case m.Running:
		frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		status := m.progress.get()
		if status == "" {
			status = "starting"
		}
		b.WriteString(styleIconSpinner.Render(frames[m.Frame%len(frames)]) + " " + StyleDim.Render(status))
		b.WriteString("\n")
	case m.Err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.Err.Error())
		b.WriteString("\n")
	}

	if m.Last != nil {
		b.WriteString(resultsTable(m.Last))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  run %s · %s", m.Last.ID, m.Last.Duration().Round(time.Millisecond))))
		b.WriteString("\n")
	}

	return b.String()
}
