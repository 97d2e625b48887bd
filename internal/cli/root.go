package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasbench/pkg/bench"
	"github.com/matzehuels/canvasbench/pkg/buildinfo"
	"github.com/matzehuels/canvasbench/pkg/grid"
	"github.com/matzehuels/canvasbench/pkg/observability"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Canvasbench measures how fast rendering backends draw large scenes",
		Long: `Canvasbench is a benchmark harness for 2D rendering backends. It lays out
thousands of rectangles, labels, groups or icons on a grid and times how long
each backend takes to build the scene, draw it, animate it, zoom and select.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			observability.NewLogHooks(c.Logger).Register()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/canvasbench/config.toml)")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.resultsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Options Helpers
// =============================================================================

// sceneFlags are the flags shared by every command that builds a scene.
// Flags the user did not set leave the configured value alone.
type sceneFlags struct {
	kind      string
	count     int
	zoom      float64
	mode      string
	icon      string
	random    bool
	antialias bool
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "kind", "k", "", "item kind: rect, text, mixed, group, icon")
	cmd.Flags().IntVarP(&f.count, "count", "n", 0, "number of items to draw")
	cmd.Flags().Float64VarP(&f.zoom, "zoom", "z", 0, "zoom factor")
	cmd.Flags().StringVar(&f.mode, "mode", "", "layout mode: flat, paged")
	cmd.Flags().StringVar(&f.icon, "icon", "", "builtin icon name or path to an .svg file")
	cmd.Flags().BoolVar(&f.random, "random", false, "random item colors")
	cmd.Flags().BoolVar(&f.antialias, "antialias", true, "antialiased drawing")
}

func (f *sceneFlags) apply(cmd *cobra.Command, opts *bench.Options) error {
	set := cmd.Flags().Changed
	if set("kind") {
		k, err := scene.ParseKind(f.kind)
		if err != nil {
			return err
		}
		opts.Kind = k
	}
	if set("mode") {
		m, err := grid.ParseMode(f.mode)
		if err != nil {
			return err
		}
		opts.Grid.Mode = m
	}
	if set("count") {
		opts.Count = f.count
	}
	if set("zoom") {
		opts.Zoom = f.zoom
	}
	if set("icon") {
		opts.Icon = f.icon
	}
	if set("random") {
		opts.Style.RandomColors = f.random
	}
	if set("antialias") {
		opts.Antialias = f.antialias
	}
	return nil
}

// benchFlags adds the flags that only matter for a full run.
type benchFlags struct {
	sceneFlags
	backends []string
	frames   int
	angle    float64
	fps      int
	parallel bool
}

func (f *benchFlags) register(cmd *cobra.Command) {
	f.sceneFlags.register(cmd)
	cmd.Flags().StringSliceVarP(&f.backends, "backend", "b", nil, "backends to measure (repeatable or comma-separated)")
	cmd.Flags().IntVar(&f.frames, "frames", 0, "animation frames after the first draw")
	cmd.Flags().Float64Var(&f.angle, "angle", 0, "rotation per frame in degrees")
	cmd.Flags().IntVar(&f.fps, "fps", 0, "pace the animation (0 draws frames back to back)")
	cmd.Flags().BoolVar(&f.parallel, "parallel", false, "measure backends concurrently")
	registerSceneCompletions(cmd)
}

func (f *benchFlags) apply(cmd *cobra.Command, opts *bench.Options) error {
	if err := f.sceneFlags.apply(cmd, opts); err != nil {
		return err
	}
	set := cmd.Flags().Changed
	if set("backend") {
		opts.Backends = f.backends
	}
	if set("frames") {
		opts.Frames = f.frames
	}
	if set("angle") {
		opts.Angle = f.angle
	}
	if set("fps") {
		opts.FPS = f.fps
	}
	if set("parallel") {
		opts.Parallel = f.parallel
	}
	return nil
}

// configOptions returns the run options of the loaded config with the
// command's flags applied on top. A nil apply uses the config as is.
func (c *CLI) configOptions(cmd *cobra.Command, apply func(*cobra.Command, *bench.Options) error) (bench.Options, error) {
	opts, err := bench.FromConfig(c.Config)
	if err != nil || apply == nil {
		return opts, err
	}
	if err := apply(cmd, &opts); err != nil {
		return opts, err
	}
	return opts, nil
}
