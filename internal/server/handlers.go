package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/canvasbench/pkg/backend"
	"github.com/matzehuels/canvasbench/pkg/bench"
	"github.com/matzehuels/canvasbench/pkg/errors"
	"github.com/matzehuels/canvasbench/pkg/grid"
	"github.com/matzehuels/canvasbench/pkg/httputil"
	"github.com/matzehuels/canvasbench/pkg/results"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

// BackendInfo describes one backend in /api/v1/backends.
type BackendInfo struct {
	Name     string       `json:"name"`
	Format   string       `json:"format"`
	Kinds    []scene.Kind `json:"kinds"`
	MaxItems int          `json:"max_items,omitempty"`
}

func (s *Server) backendInfos() ([]BackendInfo, error) {
	names := s.Runner.Registry.Names()
	out := make([]BackendInfo, 0, len(names))
	for _, name := range names {
		b, err := s.Runner.Registry.New(name)
		if err != nil {
			return nil, err
		}
		info := BackendInfo{Name: name, Format: b.Format()}
		for _, k := range scene.Kinds {
			if b.Supports(k) {
				info.Kinds = append(info.Kinds, k)
			}
		}
		if l, ok := b.(backend.Limited); ok {
			info.MaxItems = l.MaxItems()
		}
		out = append(out, info)
	}
	return out, nil
}

func (s *Server) handleBackends(w http.ResponseWriter, r *http.Request) {
	infos, err := s.backendInfos()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, infos)
}

// frameOptions reads a render request from the query string.
func (s *Server) frameOptions(r *http.Request) (bench.FrameOptions, error) {
	q := httputil.NewQuery(r)
	opts := bench.FrameOptions{Options: s.Defaults}
	opts.Backends = nil

	opts.Backend = q.String("backend", "")
	opts.Kind = scene.Kind(q.String("kind", string(opts.Kind)))
	opts.Count = q.Int("count", opts.Count)
	opts.Zoom = q.Float("zoom", opts.Zoom)
	opts.Rotation = q.Float("rotation", 0)
	opts.PanX = q.Float("pan_x", 0)
	opts.PanY = q.Float("pan_y", 0)
	opts.Style.RandomColors = q.Bool("random", opts.Style.RandomColors)
	opts.Antialias = q.Bool("antialias", opts.Antialias)
	opts.Highlight = q.Bool("highlight", false)
	opts.Refresh = q.Bool("refresh", false)
	mode := q.String("mode", "")
	if err := q.Err(); err != nil {
		return opts, err
	}
	if mode != "" {
		m, err := grid.ParseMode(mode)
		if err != nil {
			return opts, err
		}
		opts.Grid.Mode = m
	}
	if err := errors.ValidateCount(opts.Count, s.MaxCount); err != nil {
		return opts, err
	}
	return opts, nil
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.frameOptions(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	a, err := s.Runner.Render(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cacheStatus := "MISS"
	if a.Cached {
		cacheStatus = "HIT"
	}
	w.Header().Set("Content-Type", httputil.ContentType(a.Format))
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Data)
}

// BenchRequest is the body of POST /api/v1/bench. Omitted fields keep the
// server defaults.
type BenchRequest struct {
	Backends     []string `json:"backends,omitempty"`
	Kind         string   `json:"kind,omitempty"`
	Count        *int     `json:"count,omitempty"`
	Frames       *int     `json:"frames,omitempty"`
	Angle        *float64 `json:"angle,omitempty"`
	Zoom         *float64 `json:"zoom,omitempty"`
	RandomColors *bool    `json:"random_colors,omitempty"`
	Antialias    *bool    `json:"antialias,omitempty"`
	Parallel     *bool    `json:"parallel,omitempty"`
	Mode         string   `json:"mode,omitempty"`
}

func (req BenchRequest) apply(opts *bench.Options) error {
	if len(req.Backends) > 0 {
		opts.Backends = req.Backends
	}
	if req.Kind != "" {
		k, err := scene.ParseKind(req.Kind)
		if err != nil {
			return err
		}
		opts.Kind = k
	}
	if req.Mode != "" {
		m, err := grid.ParseMode(req.Mode)
		if err != nil {
			return err
		}
		opts.Grid.Mode = m
	}
	if req.Count != nil {
		opts.Count = *req.Count
	}
	if req.Frames != nil {
		opts.Frames = *req.Frames
	}
	if req.Angle != nil {
		opts.Angle = *req.Angle
	}
	if req.Zoom != nil {
		opts.Zoom = *req.Zoom
	}
	if req.RandomColors != nil {
		opts.Style.RandomColors = *req.RandomColors
	}
	if req.Antialias != nil {
		opts.Antialias = *req.Antialias
	}
	if req.Parallel != nil {
		opts.Parallel = *req.Parallel
	}
	return nil
}

func (s *Server) handleBench(w http.ResponseWriter, r *http.Request) {
	var req BenchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		httputil.WriteError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	opts := s.Defaults
	opts.Backends = append([]string(nil), s.Defaults.Backends...)
	if err := req.apply(&opts); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := errors.ValidateCount(opts.Count, s.MaxCount); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if opts.Frames > MaxFrames {
		httputil.WriteError(w, errors.New(errors.ErrCodeInvalidInput, "frames %d exceeds limit %d", opts.Frames, MaxFrames))
		return
	}
	// FPS pacing would only hold the connection open.
	opts.FPS = 0

	report, err := s.Runner.Run(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report.Run)
}

func (s *Server) store() (results.Store, error) {
	if s.Runner.Store == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "run storage is disabled")
	}
	return s.Runner.Store, nil
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	store, err := s.store()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	q := httputil.NewQuery(r)
	limit := q.Int("limit", 20)
	if err := q.Err(); err != nil {
		httputil.WriteError(w, err)
		return
	}
	runs, err := store.List(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if runs == nil {
		runs = []*results.Run{}
	}
	httputil.WriteJSON(w, http.StatusOK, runs)
}

func (s *Server) runID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if !results.ValidID(id) {
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid run id %q", id)
	}
	return id, nil
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	store, err := s.store()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	id, err := s.runID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	run, err := store.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	store, err := s.store()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	id, err := s.runID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := store.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
