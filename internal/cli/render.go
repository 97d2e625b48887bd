package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasbench/pkg/backend/all"
	"github.com/matzehuels/canvasbench/pkg/bench"
)

// renderCommand creates the render command for drawing a single frame.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags   sceneFlags
		frame   bench.FrameOptions
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render [backend]",
		Short: "Draw one frame with a backend",
		Long: `Draw one frame with a backend and write it to a file.

The frame uses the same scene as a benchmark run. --rotation turns every item,
--pan-x/--pan-y move the viewport and --highlight marks the items inside the
selection box. Frames are served from the frame cache unless --refresh is set.`,
		Example: `  canvasbench render svg
  canvasbench render gpu -n 5000 --kind icon --rotation 45 -o spin.png
  canvasbench render pdf --zoom 2 --pan-x 300 --highlight`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return all.Registry().Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.configOptions(cmd, flags.apply)
			if err != nil {
				return err
			}
			frame.Options = opts
			frame.Backend = args[0]
			return c.runRender(cmd.Context(), frame, output, noCache)
		},
	}

	flags.register(cmd)
	registerSceneCompletions(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <backend>.<format>)")
	cmd.Flags().Float64Var(&frame.Rotation, "rotation", 0, "rotation of every item in degrees")
	cmd.Flags().Float64Var(&frame.PanX, "pan-x", 0, "horizontal viewport offset in pixels")
	cmd.Flags().Float64Var(&frame.PanY, "pan-y", 0, "vertical viewport offset in pixels")
	cmd.Flags().BoolVar(&frame.Highlight, "highlight", false, "highlight the items inside the selection box")
	cmd.Flags().BoolVar(&frame.Refresh, "refresh", false, "ignore cached frames")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the frame cache")

	return cmd
}

// runRender draws the frame and writes it to output.
func (c *CLI) runRender(ctx context.Context, opts bench.FrameOptions, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.Backend))
	spinner.Start()

	a, err := runner.Render(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if output == "" {
		output = a.Filename()
	}
	if err := os.WriteFile(output, a.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	status := iconFresh
	if a.Cached {
		status = iconCached
	}
	printSuccess("Rendered %s frame", a.Backend)
	printDetail("%d %s items · %s · %s", opts.Count, opts.Kind, formatBytes(len(a.Data)), status)
	printFile(output)
	return nil
}
