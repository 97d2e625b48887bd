package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/canvasbench/pkg/bench"
	"github.com/matzehuels/canvasbench/pkg/buildinfo"
	"github.com/matzehuels/canvasbench/pkg/cache"
	"github.com/matzehuels/canvasbench/pkg/config"
	"github.com/matzehuels/canvasbench/pkg/results"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "canvasbench"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	// Config is loaded before any subcommand runs.
	Config *config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and the built-in
// configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the --config file, or the first config file found in the
// standard locations. Without either the defaults stay in place.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a benchmark runner for CLI use. Frame keys are scoped to
// the build so a new version never serves frames drawn by an old one.
func (c *CLI) newRunner(ctx context.Context, noCache, noSave bool) (*bench.Runner, error) {
	fc, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var store results.Store
	if !noSave {
		if store, err = c.openStore(ctx); err != nil {
			fc.Close()
			return nil, err
		}
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	r := bench.NewRunner(nil, fc, keyer, store, c.Logger)
	if c.Config.Cache.TTL > 0 {
		r.TTL = c.Config.Cache.TTL
	}
	return r, nil
}

// openCache returns the configured frame cache: Redis when a URL is set,
// otherwise a directory under the user cache dir.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	if url := c.Config.Cache.RedisURL; url != "" {
		return cache.NewRedisCache(ctx, url, appName+":")
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("frame cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// openStore returns the configured run store: MongoDB when a URI is set,
// otherwise JSON files under the user data dir.
func (c *CLI) openStore(ctx context.Context) (results.Store, error) {
	if uri := c.Config.Results.MongoURI; uri != "" {
		return results.NewMongoStore(ctx, uri, c.Config.Results.MongoDatabase)
	}
	dir, err := c.Config.ResultsDir()
	if err != nil {
		return nil, err
	}
	return results.NewFileStore(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the frame cache directory ($XDG_CACHE_HOME/canvasbench or
// ~/.cache/canvasbench unless the config names one).
func (c *CLI) cacheDir() (string, error) {
	return c.Config.CacheDir()
}
