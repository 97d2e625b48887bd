package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasbench/pkg/bench"
	"github.com/matzehuels/canvasbench/pkg/grid"
	"github.com/matzehuels/canvasbench/pkg/io"
	"github.com/matzehuels/canvasbench/pkg/observability"
	"github.com/matzehuels/canvasbench/pkg/results"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

// testCLI returns a CLI whose config, cache and results live in temp dirs.
func testCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Cleanup(observability.Reset)
	return New(&bytes.Buffer{}, log.InfoLevel)
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"run", "render", "tui", "serve", "results", "cache", "config", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %q (have %v)", want, names)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
}

func TestBenchFlagsApply(t *testing.T) {
	var flags benchFlags
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	flags.register(cmd)
	if err := cmd.ParseFlags([]string{"-b", "svg,pdf", "-n", "250", "--kind", "group", "--mode", "paged", "--frames", "5", "--antialias=false"}); err != nil {
		t.Fatal(err)
	}

	opts := bench.DefaultOptions()
	opts.Zoom = 3
	if err := flags.apply(cmd, &opts); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(opts.Backends, []string{"svg", "pdf"}) {
		t.Errorf("Backends = %v", opts.Backends)
	}
	if opts.Count != 250 || opts.Kind != scene.KindGroup || opts.Grid.Mode != grid.ModePaged {
		t.Errorf("opts = %+v", opts)
	}
	if opts.Frames != 5 || opts.Antialias {
		t.Errorf("Frames = %d, Antialias = %v", opts.Frames, opts.Antialias)
	}
	if opts.Zoom != 3 {
		t.Errorf("unset --zoom changed Zoom to %v", opts.Zoom)
	}
}

func TestBenchFlagsApplyRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"kind", []string{"--kind", "circle"}},
		{"mode", []string{"--mode", "spiral"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flags benchFlags
			cmd := &cobra.Command{Use: "test"}
			flags.register(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			opts := bench.DefaultOptions()
			if err := flags.apply(cmd, &opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfigFromFlag(t *testing.T) {
	c := testCLI(t)
	path := filepath.Join(t.TempDir(), "bench.toml")
	if err := os.WriteFile(path, []byte("[bench]\ncount = 42\nbackends = [\"svg\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c.configPath = path
	if err := c.loadConfig(); err != nil {
		t.Fatal(err)
	}
	if c.Config.Bench.Count != 42 || c.Config.Path != path {
		t.Errorf("Config.Bench = %+v, Path = %q", c.Config.Bench, c.Config.Path)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	c := testCLI(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[bench]\nitems = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, c, "--config", path, "config", "show"); err == nil {
		t.Error("expected unknown key error")
	}
}

func TestCacheDirFromEnv(t *testing.T) {
	c := testCLI(t)
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	c.Config.Cache.Dir = "/tmp/frames"
	if dir, _ := c.cacheDir(); dir != "/tmp/frames" {
		t.Errorf("configured cacheDir() = %q", dir)
	}
}

func TestRunCommandStoresRun(t *testing.T) {
	c := testCLI(t)
	out := t.TempDir()

	if err := execute(t, c, "run", "-b", "svg,pdf", "-n", "20", "--frames", "2", "-o", out); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"svg.svg", "pdf.pdf"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("frame %s not written: %v", name, err)
		}
	}

	store, err := c.openStore(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	runs, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || len(runs[0].Results) != 2 || runs[0].Settings.Count != 20 {
		t.Fatalf("stored runs = %+v", runs)
	}
}

func TestRunCommandNoSave(t *testing.T) {
	c := testCLI(t)
	if err := execute(t, c, "run", "-b", "svg", "-n", "10", "--frames", "1", "--no-save", "--no-cache"); err != nil {
		t.Fatal(err)
	}
	dir, _ := c.Config.ResultsDir()
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("--no-save stored %d files", len(entries))
	}
}

func TestShowReportKeepsResultsWhenSaveFails(t *testing.T) {
	run := results.NewRun("test", bench.DefaultOptions().Settings())
	run.Results = []results.Result{{Backend: "svg", Format: "svg"}}
	report := &bench.Report{
		Run:    run,
		Frames: map[string]bench.Artifact{"svg": {Backend: "svg", Format: "svg", Data: []byte("<svg/>")}},
	}
	saveErr := stderrors.New("disk full")
	out := t.TempDir()

	err := showReport(report, out, false, saveErr)
	if !stderrors.Is(err, saveErr) {
		t.Errorf("showReport() error = %v, want %v", err, saveErr)
	}
	if _, err := os.Stat(filepath.Join(out, "svg.svg")); err != nil {
		t.Errorf("frame not written before the save error: %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	c := testCLI(t)
	out := filepath.Join(t.TempDir(), "frame.png")

	if err := execute(t, c, "render", "raster", "-n", "16", "--rotation", "30", "--highlight", "-o", out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("render output is not a PNG")
	}

	if err := execute(t, c, "render", "webgl"); err == nil {
		t.Error("expected unknown backend error")
	}
}

func TestResultsCommands(t *testing.T) {
	c := testCLI(t)
	ctx := context.Background()

	store, err := c.openStore(ctx)
	if err != nil {
		t.Fatal(err)
	}
	run := results.NewRun("test", bench.DefaultOptions().Settings())
	run.Results = []results.Result{{Backend: "svg", Format: "svg"}}
	if err := store.Save(ctx, run); err != nil {
		t.Fatal(err)
	}
	store.Close()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "run.csv")
	jsonPath := filepath.Join(dir, "run.json")

	if err := execute(t, c, "results", "list"); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, c, "results", "show", run.ID); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, c, "results", "export", run.ID, "-o", csvPath); err != nil {
		t.Fatal(err)
	}
	if data, _ := os.ReadFile(csvPath); !bytes.HasPrefix(data, []byte("backend,")) {
		t.Errorf("csv export = %q", data)
	}
	if err := execute(t, c, "results", "export", run.ID, "-o", jsonPath); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, c, "results", "delete", run.ID); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, c, "results", "show", run.ID); err == nil {
		t.Error("show after delete should fail")
	}

	if err := execute(t, c, "results", "import", jsonPath); err != nil {
		t.Fatal(err)
	}
	imported, err := io.ReadJSONFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if imported.ID != run.ID {
		t.Errorf("imported ID = %q, want %q", imported.ID, run.ID)
	}
	if err := execute(t, c, "results", "show", run.ID); err != nil {
		t.Errorf("show after import: %v", err)
	}

	if err := execute(t, c, "results", "show", "not-an-id"); err == nil {
		t.Error("expected invalid id error")
	}
}

func TestFlagCompletions(t *testing.T) {
	c := testCLI(t)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"__complete", "run", "--kind", ""}, "group"},
		{[]string{"__complete", "run", "--backend", ""}, "graphviz"},
		{[]string{"__complete", "render", "--mode", ""}, "paged"},
		{[]string{"__complete", "render", ""}, "raster"},
	}
	for _, tt := range tests {
		root := c.RootCommand()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(tt.args)
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out.String(), tt.want) {
			t.Errorf("%v: completions missing %q:\n%s", tt.args, tt.want, out.String())
		}
	}
}
