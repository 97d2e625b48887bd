package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasbench/pkg/errors"
	"github.com/matzehuels/canvasbench/pkg/io"
	"github.com/matzehuels/canvasbench/pkg/results"
)

// resultsCommand creates the results command for stored runs.
func (c *CLI) resultsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "results",
		Aliases: []string{"runs"},
		Short:   "Inspect, export and import stored runs",
	}

	cmd.AddCommand(c.resultsListCommand())
	cmd.AddCommand(c.resultsShowCommand())
	cmd.AddCommand(c.resultsDeleteCommand())
	cmd.AddCommand(c.resultsExportCommand())
	cmd.AddCommand(c.resultsImportCommand())

	return cmd
}

// withStore opens the run store for the duration of fn.
func (c *CLI) withStore(cmd *cobra.Command, fn func(results.Store) error) error {
	store, err := c.openStore(cmd.Context())
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func runIDArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	if !results.ValidID(args[0]) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid run id %q", args[0])
	}
	return nil
}

func (c *CLI) resultsListCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(store results.Store) error {
				runs, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					printInfo("No stored runs")
					return nil
				}
				for _, run := range runs {
					printRunLine(run)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "maximum number of runs (0 for all)")
	return cmd
}

// printRunLine prints one run of a listing.
func printRunLine(run *results.Run) {
	backends := make([]string, 0, len(run.Results))
	for _, r := range run.Results {
		backends = append(backends, r.Backend)
	}
	fmt.Printf("%s  %s  %s\n",
		StyleHighlight.Render(run.ID),
		StyleDim.Render(run.StartedAt.Local().Format(time.DateTime)),
		StyleValue.Render(fmt.Sprintf("%d %s × %v", run.Settings.Count, run.Settings.Kind, backends)),
	)
}

func (c *CLI) resultsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show the results of a stored run",
		Args:  runIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(store results.Store) error {
				run, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printRun(run)
				return nil
			})
		},
	}
}

// printRun prints the settings and the result table of run.
func printRun(run *results.Run) {
	s := run.Settings
	fmt.Println(StyleTitle.Render("Run " + run.ID))
	printKeyValue("Version", run.Version)
	printKeyValue("Started", run.StartedAt.Local().Format(time.DateTime))
	printKeyValue("Items", fmt.Sprintf("%d %s", s.Count, s.Kind))
	printKeyValue("Grid", fmt.Sprintf("%s, %gpx items, %gpx spacing", s.Grid.Mode, s.Grid.ItemSize, s.Grid.Spacing))
	printKeyValue("Frames", fmt.Sprintf("%d at %g° per frame", s.Frames, s.Angle))
	printKeyValue("Zoom", fmt.Sprintf("%gx", s.Zoom))
	if s.Icon != "" {
		printKeyValue("Icon", s.Icon)
	}
	printRunStatus(run)
	fmt.Println(resultsTable(run))
}

func (c *CLI) resultsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a stored run",
		Args:  runIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(store results.Store) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				printSuccess("Deleted run %s", args[0])
				return nil
			})
		},
	}
}

func (c *CLI) resultsExportCommand() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Export a stored run as JSON, CSV or Markdown",
		Example: `  canvasbench results export <id> -f csv > run.csv
  canvasbench results export <id> -o report.md`,
		Args: runIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(store results.Store) error {
				run, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if output == "" {
					return io.Write(run, format, os.Stdout)
				}
				if !cmd.Flags().Changed("format") {
					format = io.FormatFromPath(output)
				}
				if err := io.WriteFile(run, format, output); err != nil {
					return err
				}
				printSuccess("Exported run %s", run.ID)
				printFile(output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", io.FormatJSON, "export format: json, csv, md")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout, format from extension)")
	return cmd
}

func (c *CLI) resultsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file.json]",
		Short: "Import a run exported as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := io.ReadJSONFile(args[0])
			if err != nil {
				return err
			}
			return c.withStore(cmd, func(store results.Store) error {
				if err := store.Save(cmd.Context(), run); err != nil {
					return err
				}
				printSuccess("Imported run %s", StyleHighlight.Render(run.ID))
				printRunStatus(run)
				return nil
			})
		},
	}
}
