package bench

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/canvasbench/pkg/asset"
	"github.com/matzehuels/canvasbench/pkg/backend"
	"github.com/matzehuels/canvasbench/pkg/backend/all"
	"github.com/matzehuels/canvasbench/pkg/buildinfo"
	"github.com/matzehuels/canvasbench/pkg/cache"
	"github.com/matzehuels/canvasbench/pkg/errors"
	"github.com/matzehuels/canvasbench/pkg/grid"
	"github.com/matzehuels/canvasbench/pkg/observability"
	"github.com/matzehuels/canvasbench/pkg/results"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

// Runner measures backends and renders single frames with caching.
// Both the CLI and the HTTP server use it.
//
// The Runner keeps no per-run state, so one Runner may serve several
// goroutines with different options.
type Runner struct {
	Registry *backend.Registry
	Cache    cache.Cache
	Keyer    cache.Keyer
	// Store receives finished runs. Nil skips saving.
	Store  results.Store
	Logger *log.Logger
	// TTL applies to cached frames.
	TTL time.Duration
}

// NewRunner creates a runner. A nil registry holds every backend, a nil
// cache disables caching, a nil keyer uses DefaultKeyer and a nil logger
// uses log.Default().
func NewRunner(reg *backend.Registry, c cache.Cache, keyer cache.Keyer, store results.Store, logger *log.Logger) *Runner {
	if reg == nil {
		reg = all.Registry()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Registry: reg,
		Cache:    c,
		Keyer:    keyer,
		Store:    store,
		Logger:   logger,
		TTL:      cache.DefaultTTL,
	}
}

// Close releases the cache and the store.
func (r *Runner) Close() error {
	var errs []error
	if err := r.Cache.Close(); err != nil {
		errs = append(errs, err)
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// Report is what Run returns: the stored run plus the first frame each
// successful backend drew.
type Report struct {
	Run    *results.Run
	Frames map[string]Artifact
}

// Artifact is one rendered frame.
type Artifact struct {
	Backend string
	Format  string
	Data    []byte
	Cached  bool
}

// Filename is the conventional output name, e.g. "svg.svg" or "gpu.png".
func (a Artifact) Filename() string {
	return a.Backend + "." + a.Format
}

type backendOutcome struct {
	result results.Result
	frame  *Artifact
}

// Run benchmarks every backend of opts. A failing backend is recorded in its
// Result and does not stop the others. Run itself fails on invalid options,
// cancellation or when the finished run cannot be saved.
func (r *Runner) Run(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	names := opts.Backends
	if len(names) == 0 {
		names = r.Registry.Names()
	}
	for _, name := range names {
		if !r.Registry.Has(name) {
			return nil, errors.New(errors.ErrCodeInvalidBackend, "unknown backend %q (available: %v)", name, r.Registry.Names())
		}
	}
	g, err := grid.New(opts.Grid)
	if err != nil {
		return nil, err
	}
	icon, err := resolveIcon(opts)
	if err != nil {
		return nil, err
	}

	run := results.NewRun(buildinfo.Version, opts.Settings())
	r.Logger.Info("starting benchmark", "id", run.ID, "backends", len(names), "items", opts.Count, "kind", opts.Kind)

	outcomes := make([]backendOutcome, len(names))
	if opts.Parallel {
		var eg errgroup.Group
		for i, name := range names {
			eg.Go(func() error {
				outcomes[i] = r.benchBackend(ctx, opts, name, g, icon)
				return nil
			})
		}
		_ = eg.Wait()
	} else {
		for i, name := range names {
			if ctx.Err() != nil {
				break
			}
			outcomes[i] = r.benchBackend(ctx, opts, name, g, icon)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{Run: run, Frames: make(map[string]Artifact)}
	for _, o := range outcomes {
		run.Results = append(run.Results, o.result)
		if o.frame != nil {
			report.Frames[o.result.Backend] = *o.frame
		}
	}
	run.FinishedAt = time.Now().UTC()
	observability.Bench().OnRunComplete(ctx, run.ID, len(names), run.Failed(), run.Duration())

	if r.Store != nil {
		if err := r.Store.Save(ctx, run); err != nil {
			return report, fmt.Errorf("save run: %w", err)
		}
	}
	r.Logger.Info("benchmark finished", "id", run.ID, "failed", run.Failed(), "duration", run.Duration().Round(time.Millisecond))
	return report, nil
}

// benchBackend performs the five measured stages for one backend.
func (r *Runner) benchBackend(ctx context.Context, opts Options, name string, g grid.Config, icon *asset.Icon) backendOutcome {
	out := backendOutcome{result: results.Result{Backend: name}}
	fail := func(st observability.Stage, err error) backendOutcome {
		out.result.Error = fmt.Sprintf("%s: %s", st, errors.UserMessage(err))
		r.Logger.Warn("backend failed", "backend", name, "stage", st, "err", err)
		return out
	}

	b, err := r.Registry.New(name)
	if err != nil {
		return fail(observability.StageCreate, err)
	}
	out.result.Format = b.Format()
	stats := &out.result.Stats

	// Stage 1: create
	var s *scene.Scene
	stats.Create, err = r.stage(ctx, name, observability.StageCreate, func() error {
		if err := backend.CheckCanvas(b, g, opts.Count, scene.DefaultViewport(), opts.Viewport()); err != nil {
			return err
		}
		var err error
		s, err = builder(g, b, opts, icon).Build(ctx, opts.Kind, opts.Count)
		return err
	})
	if err != nil {
		return fail(observability.StageCreate, err)
	}
	r.Logger.Debug("created items", "backend", name, "items", s.Len(), "duration", stats.Create)

	// Stage 2: first draw
	frame := backend.Frame{Viewport: scene.DefaultViewport(), Antialias: opts.Antialias}
	var data []byte
	stats.FirstDraw, err = r.stage(ctx, name, observability.StageDraw, func() error {
		var err error
		data, err = b.Draw(ctx, s, frame)
		return err
	})
	if err != nil {
		return fail(observability.StageDraw, err)
	}
	stats.Bytes = len(data)
	key := r.Keyer.FrameKey(frameKeyOpts(opts, name, icon, 0, frame.Viewport, nil))
	stats.Cached = r.storeFrame(ctx, name, key, data)
	out.frame = &Artifact{Backend: name, Format: b.Format(), Data: data, Cached: stats.Cached}

	// Stage 3: animate
	anim := scene.Animator{Angle: opts.Angle, FPS: opts.FPS}
	var durations []time.Duration
	_, err = r.stage(ctx, name, observability.StageAnimate, func() error {
		var err error
		durations, err = anim.Run(ctx, s, opts.Frames, func(ctx context.Context, s *scene.Scene) error {
			_, err := b.Draw(ctx, s, frame)
			return err
		})
		return err
	})
	Summarize(durations).apply(stats, len(durations))
	if err != nil {
		return fail(observability.StageAnimate, err)
	}

	// Stage 4: zoom
	frame.Viewport = opts.Viewport()
	stats.ZoomDraw, err = r.stage(ctx, name, observability.StageZoom, func() error {
		_, err := b.Draw(ctx, s, frame)
		return err
	})
	if err != nil {
		return fail(observability.StageZoom, err)
	}

	// Stage 5: select
	frame.Selection = scene.NewSelection()
	box := opts.SelectBox(g, frame.Viewport)
	stats.Select, err = r.stage(ctx, name, observability.StageSelect, func() error {
		stats.Selected = frame.Selection.SelectBox(s, frame.Viewport.RectToScene(box))
		if _, err := b.Draw(ctx, s, frame); err != nil {
			return err
		}
		// Click the item under the box center.
		start := time.Now()
		x, y := frame.Viewport.ToScene(box.X+box.W/2, box.Y+box.H/2)
		frame.Selection.Click(scene.HitTest(s, x, y), false)
		_, err := b.Draw(ctx, s, frame)
		stats.Click = time.Since(start)
		return err
	})
	if err != nil {
		return fail(observability.StageSelect, err)
	}

	r.Logger.Info("benchmarked backend",
		"backend", name,
		"create", stats.Create.Round(time.Microsecond),
		"first_draw", stats.FirstDraw.Round(time.Microsecond),
		"fps", fmt.Sprintf("%.1f", stats.FPS),
		"selected", stats.Selected)
	return out
}

// stage times fn and reports it to the bench hooks.
func (r *Runner) stage(ctx context.Context, name string, st observability.Stage, fn func() error) (time.Duration, error) {
	hooks := observability.Bench()
	hooks.OnStageStart(ctx, name, st)
	start := time.Now()
	err := fn()
	d := time.Since(start)
	hooks.OnStageComplete(ctx, name, st, d, err)
	if err == nil {
		r.Logger.Debug(fmt.Sprintf("%d of %d", stageNumber(st), len(observability.Stages)), "backend", name, "stage", st, "duration", d)
	}
	return d, err
}

func stageNumber(st observability.Stage) int {
	for i, s := range observability.Stages {
		if s == st {
			return i + 1
		}
	}
	return 0
}

// storeFrame writes data to the frame cache unless it is already there and
// reports whether it was.
func (r *Runner) storeFrame(ctx context.Context, name, key string, data []byte) bool {
	if _, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, name)
		return true
	}
	observability.Cache().OnCacheMiss(ctx, name)
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("failed to cache frame", "backend", name, "err", err)
		return false
	}
	observability.Cache().OnCacheSet(ctx, name, len(data))
	return false
}

func builder(g grid.Config, f scene.Factory, opts Options, icon *asset.Icon) scene.Builder {
	return scene.Builder{Grid: g, Factory: f, Style: opts.Style, Icon: icon}
}

func resolveIcon(opts Options) (*asset.Icon, error) {
	if opts.Kind != scene.KindIcon {
		return nil, nil
	}
	return asset.Resolve(opts.Icon)
}

func frameKeyOpts(opts Options, name string, icon *asset.Icon, rotation float64, v scene.Viewport, sel *scene.Rect) cache.FrameKeyOpts {
	k := cache.FrameKeyOpts{
		Backend:      name,
		Kind:         string(opts.Kind),
		Count:        opts.Count,
		Grid:         opts.Grid,
		Fill:         opts.Style.Fill,
		Stroke:       opts.Style.Stroke,
		RandomColors: opts.Style.RandomColors,
		Label:        opts.Style.Label,
		FontSize:     opts.Style.FontSize,
		FitThreshold: opts.Style.FitThreshold,
		Rotation:     rotation,
		Zoom:         v.Factor(),
		PanX:         v.PanX,
		PanY:         v.PanY,
		Antialias:    opts.Antialias,
	}
	if icon != nil {
		k.Icon = icon.Name() + ":" + cache.Hash(icon.Data())
	}
	if sel != nil {
		k.Select = []float64{sel.X, sel.Y, sel.W, sel.H}
	}
	return k
}
