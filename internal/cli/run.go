package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasbench/pkg/bench"
)

// runCommand creates the run command, the main benchmark entry point.
func (c *CLI) runCommand() *cobra.Command {
	var (
		flags   benchFlags
		output  string
		noCache bool
		noSave  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Benchmark rendering backends",
		Long: `Benchmark rendering backends.

Every backend builds the same scene and goes through five stages: create,
first draw, animation, zoom and rubber-band selection. Flags override the
values of the config file.

The first frame of each backend is kept in the frame cache. Use -o to write
those frames to a directory.`,
		Example: `  canvasbench run
  canvasbench run -b svg,gpu -n 20000 --kind group --frames 120
  canvasbench run --mode paged -n 50000 --parallel -o frames/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.configOptions(cmd, flags.apply)
			if err != nil {
				return err
			}
			return c.runBench(cmd.Context(), opts, output, noCache, noSave)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "directory for the first frame of each backend")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the frame cache")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	return cmd
}

// runBench runs the benchmark with a progress spinner and prints the results.
func (c *CLI) runBench(ctx context.Context, opts bench.Options, output string, noCache, noSave bool) error {
	runner, err := c.newRunner(ctx, noCache, noSave)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	c.Logger.Debug("starting run", "options", opts.String())
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, "Benchmarking...")
	restore := watchStages(spinnerStages(spinner))
	spinner.Start()

	report, err := runner.Run(ctx, opts)
	restore()
	if report == nil {
		spinner.StopWithError("Benchmark failed")
		return fmt.Errorf("run: %w", err)
	}
	spinner.Stop()
	prog.done("Benchmark finished")
	return showReport(report, output, noSave, err)
}

// showReport prints a finished run and writes its frames to output. A
// non-nil saveErr is returned after the results are shown.
func showReport(report *bench.Report, output string, noSave bool, saveErr error) error {
	run := report.Run
	printSuccess("Run %s", StyleHighlight.Render(run.ID))
	printRunStatus(run)
	fmt.Println(resultsTable(run))

	if output != "" {
		if err := writeFrames(report, output); err != nil {
			return err
		}
	}

	if run.Failed() > 0 {
		printWarning("%d of %d backends failed", run.Failed(), len(run.Results))
	}
	if saveErr != nil {
		return fmt.Errorf("run: %w", saveErr)
	}
	if !noSave {
		printNewline()
		printNextStep("Export", fmt.Sprintf("%s results export %s -f csv", appName, run.ID))
	}
	return nil
}

// writeFrames writes the first frame of each backend into dir.
func writeFrames(report *bench.Report, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	names := make([]string, 0, len(report.Frames))
	for name := range report.Frames {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		a := report.Frames[name]
		path := filepath.Join(dir, a.Filename())
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
