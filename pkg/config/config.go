// Package config loads canvasbench settings from a TOML file.
//
// Missing files and missing keys fall back to [Default], whose values match
// the harness constants. Unknown keys are rejected so typos surface early.
//
//	[grid]
//	canvas_width = 2500
//	item_size = 50
//	spacing = 5
//	mode = "paged"
//
//	[bench]
//	backends = ["svg", "gpu"]
//	count = 5000
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/canvasbench/pkg/errors"
	"github.com/matzehuels/canvasbench/pkg/grid"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

const (
	appName  = "canvasbench"
	fileName = "config.toml"
)

// Scene controls what items look like.
type Scene struct {
	Kind         string  `toml:"kind"`
	Fill         string  `toml:"fill"`
	Stroke       string  `toml:"stroke"`
	RandomColors bool    `toml:"random_colors"`
	Label        string  `toml:"label"`
	FontSize     float64 `toml:"font_size"`
	FitThreshold float64 `toml:"fit_threshold"`
	// Icon is a builtin icon name or a path to an .svg file.
	Icon string `toml:"icon"`
}

// Bench controls a benchmark run.
type Bench struct {
	Backends  []string `toml:"backends"`
	Count     int      `toml:"count"`
	Frames    int      `toml:"frames"`
	Angle     float64  `toml:"angle"`
	Zoom      float64  `toml:"zoom"`
	FPS       int      `toml:"fps"`
	Antialias bool     `toml:"antialias"`
	Parallel  bool     `toml:"parallel"`
	// Select is the rubber-band box x, y, w, h in screen pixels. Empty
	// selects the top-left quarter of the canvas.
	Select []float64 `toml:"select"`
}

// Cache controls where rendered frames are kept.
type Cache struct {
	Disabled bool          `toml:"disabled"`
	Dir      string        `toml:"dir"`
	RedisURL string        `toml:"redis_url"`
	TTL      time.Duration `toml:"ttl"`
}

// Results controls where finished runs are stored.
type Results struct {
	Dir           string `toml:"dir"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Server controls the HTTP viewer.
type Server struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	MaxCount     int           `toml:"max_count"`
}

// Config is the full configuration file.
type Config struct {
	Grid    grid.Params `toml:"grid"`
	Scene   Scene       `toml:"scene"`
	Bench   Bench       `toml:"bench"`
	Cache   Cache       `toml:"cache"`
	Results Results     `toml:"results"`
	Server  Server      `toml:"server"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

// DefaultBackends lists every backend in the order they are benchmarked.
var DefaultBackends = []string{"svg", "raster", "gpu", "pdf", "graphviz"}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Grid: grid.DefaultParams(),
		Scene: Scene{
			Kind:     string(scene.KindRect),
			Stroke:   scene.DefaultStroke,
			Label:    scene.DefaultLabel,
			FontSize: 14,
			Icon:     "fan",
		},
		Bench: Bench{
			Backends:  append([]string(nil), DefaultBackends...),
			Count:     1000,
			Frames:    60,
			Angle:     scene.DefaultAngle,
			Zoom:      1,
			Antialias: true,
		},
		Cache: Cache{TTL: 7 * 24 * time.Hour},
		Server: Server{
			Addr:         "127.0.0.1:8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 2 * time.Minute,
			MaxCount:     50000,
		},
	}
}

// Load reads path over the defaults. An empty path searches the standard
// locations and returns the defaults when no file exists.
func Load(path string) (*Config, error) {
	if path == "" {
		found, ok := Find()
		if !ok {
			return Default(), nil
		}
		path = found
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values a file may have set.
func (c *Config) Validate() error {
	if _, err := grid.New(c.Grid); err != nil {
		return err
	}
	if _, err := scene.ParseKind(c.Scene.Kind); err != nil {
		return err
	}
	if c.Scene.FontSize < 0 || c.Scene.FitThreshold < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "font_size and fit_threshold cannot be negative")
	}
	for _, b := range c.Bench.Backends {
		if err := errors.ValidateBackendName(b); err != nil {
			return err
		}
	}
	if err := errors.ValidateCount(c.Bench.Count, 0); err != nil {
		return err
	}
	if c.Bench.Frames < 0 || c.Bench.FPS < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "frames and fps cannot be negative")
	}
	if n := len(c.Bench.Select); n != 0 && n != 4 {
		return errors.New(errors.ErrCodeInvalidConfig, "select needs four numbers (x, y, w, h), got %d", n)
	}
	return nil
}

// Encode writes the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}

// Find returns the first existing config file among
// $XDG_CONFIG_HOME/canvasbench/config.toml and ~/.config/canvasbench/config.toml.
func Find() (string, bool) {
	for _, dir := range searchDirs() {
		path := filepath.Join(dir, appName, fileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func searchDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, xdg)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config"))
	}
	return dirs
}

// CacheDir returns the frame cache directory: the configured one, else
// $XDG_CACHE_HOME/canvasbench or ~/.cache/canvasbench.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// ResultsDir returns the run store directory: the configured one, else
// $XDG_DATA_HOME/canvasbench/runs or ~/.local/share/canvasbench/runs.
func (c *Config) ResultsDir() (string, error) {
	if c.Results.Dir != "" {
		return c.Results.Dir, nil
	}
	dir, err := xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "runs"), nil
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}
