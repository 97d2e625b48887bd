package bench

import (
	"context"
	"fmt"

	"github.com/matzehuels/canvasbench/pkg/backend"
	"github.com/matzehuels/canvasbench/pkg/errors"
	"github.com/matzehuels/canvasbench/pkg/grid"
	"github.com/matzehuels/canvasbench/pkg/observability"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

// FrameOptions selects a single frame to render.
type FrameOptions struct {
	Options
	Backend string
	// Rotation in degrees applied to every item.
	Rotation   float64
	PanX, PanY float64
	// Highlight draws the items inside Options.Select (or the default
	// selection box) with the selection stroke.
	Highlight bool
}

// Render draws one frame with a single backend. Frames are looked up in the
// cache first unless Refresh is set, and stored after drawing.
func (r *Runner) Render(ctx context.Context, opts FrameOptions) (*Artifact, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Backend == "" {
		return nil, errors.New(errors.ErrCodeInvalidBackend, "no backend given")
	}
	b, err := r.Registry.New(opts.Backend)
	if err != nil {
		return nil, err
	}
	if !b.Supports(opts.Kind) {
		return nil, errors.New(errors.ErrCodeUnsupported, "%s backend cannot draw %s items", opts.Backend, opts.Kind)
	}
	g, err := grid.New(opts.Grid)
	if err != nil {
		return nil, err
	}
	icon, err := resolveIcon(opts.Options)
	if err != nil {
		return nil, err
	}

	frame := backend.Frame{Viewport: opts.Viewport(), Antialias: opts.Antialias}
	frame.Viewport.Pan(opts.PanX, opts.PanY)
	if err := backend.CheckCanvas(b, g, opts.Count, frame.Viewport); err != nil {
		return nil, err
	}

	var box *scene.Rect
	if opts.Highlight {
		sel := opts.SelectBox(g, frame.Viewport)
		box = &sel
	}

	key := r.Keyer.FrameKey(frameKeyOpts(opts.Options, opts.Backend, icon, opts.Rotation, frame.Viewport, box))
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, opts.Backend)
			r.Logger.Debug("frame from cache", "backend", opts.Backend, "bytes", len(data))
			return &Artifact{Backend: opts.Backend, Format: b.Format(), Data: data, Cached: true}, nil
		}
		observability.Cache().OnCacheMiss(ctx, opts.Backend)
	}

	s, err := builder(g, b, opts.Options, icon).Build(ctx, opts.Kind, opts.Count)
	if err != nil {
		return nil, err
	}
	if opts.Rotation != 0 {
		for _, n := range s.Nodes() {
			n.SetRotation(opts.Rotation)
		}
	}
	if box != nil {
		frame.Selection = scene.NewSelection()
		frame.Selection.SelectBox(s, frame.Viewport.RectToScene(*box))
	}

	data, err := b.Draw(ctx, s, frame)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("failed to cache frame", "backend", opts.Backend, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, opts.Backend, len(data))
	}
	r.Logger.Debug("rendered frame", "backend", opts.Backend, "items", s.Len(), "bytes", len(data))
	return &Artifact{Backend: opts.Backend, Format: b.Format(), Data: data}, nil
}
