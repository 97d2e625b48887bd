package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasbench/internal/server"
)

// serveCommand creates the serve command for the browser viewer.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		maxCount int
		noCache  bool
		noSave   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser viewer and JSON API",
		Long: `Serve the browser viewer and JSON API.

The viewer at / draws frames with any backend and runs benchmarks from the
browser. The same operations are available under /api/v1 for scripts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}
			if cmd.Flags().Changed("max-count") {
				c.Config.Server.MaxCount = maxCount
			}
			return c.runServe(cmd.Context(), noCache, noSave)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config: 127.0.0.1:8080)")
	cmd.Flags().IntVar(&maxCount, "max-count", 0, "largest item count a request may ask for")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the frame cache")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store runs (disables /api/v1/runs)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache, noSave bool) error {
	defaults, err := c.configOptions(nil, nil)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, noCache, noSave)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	cfg := c.Config.Server
	srv := server.New(runner, defaults, cfg.MaxCount, c.Logger)

	printSuccess("Serving canvasbench at %s", StyleLink.Render("http://"+cfg.Addr))
	printDetail("Press Ctrl+C to stop")

	err = srv.ListenAndServe(ctx, server.Config{
		Addr:         cfg.Addr,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	if errors.Is(err, http.ErrServerClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
