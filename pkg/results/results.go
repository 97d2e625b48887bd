// Package results stores finished benchmark runs.
//
// A [Run] holds one [Result] per backend. Runs are persisted through a
// [Store]: [FileStore] keeps JSON files for the CLI and [MongoStore] keeps a
// collection for the HTTP server.
package results

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/canvasbench/pkg/grid"
)

// Stats are the timings collected for one backend. Durations are wall time.
type Stats struct {
	Create    time.Duration `json:"create" bson:"create"`
	FirstDraw time.Duration `json:"first_draw" bson:"first_draw"`
	Frames    int           `json:"frames" bson:"frames"`
	FrameMean time.Duration `json:"frame_mean" bson:"frame_mean"`
	FrameP95  time.Duration `json:"frame_p95" bson:"frame_p95"`
	FrameMax  time.Duration `json:"frame_max" bson:"frame_max"`
	FPS       float64       `json:"fps" bson:"fps"`
	ZoomDraw  time.Duration `json:"zoom_draw" bson:"zoom_draw"`
	Select    time.Duration `json:"select" bson:"select"`
	Selected  int           `json:"selected" bson:"selected"`
	// Click is the part of Select spent on a single click and redraw.
	Click     time.Duration `json:"click" bson:"click"`
	Bytes     int           `json:"bytes" bson:"bytes"`
	Cached    bool          `json:"cached,omitempty" bson:"cached,omitempty"`
}

// Result is the outcome of benchmarking one backend.
type Result struct {
	Backend string `json:"backend" bson:"backend"`
	Format  string `json:"format" bson:"format"`
	Stats   Stats  `json:"stats" bson:"stats"`
	Error   string `json:"error,omitempty" bson:"error,omitempty"`
}

// OK reports whether the backend finished without error.
func (r Result) OK() bool { return r.Error == "" }

// Settings records what a run measured.
type Settings struct {
	Kind         string      `json:"kind" bson:"kind"`
	Count        int         `json:"count" bson:"count"`
	Frames       int         `json:"frames" bson:"frames"`
	Angle        float64     `json:"angle" bson:"angle"`
	Zoom         float64     `json:"zoom" bson:"zoom"`
	RandomColors bool        `json:"random_colors" bson:"random_colors"`
	Antialias    bool        `json:"antialias" bson:"antialias"`
	Parallel     bool        `json:"parallel" bson:"parallel"`
	Icon         string      `json:"icon,omitempty" bson:"icon,omitempty"`
	Grid         grid.Params `json:"grid" bson:"grid"`
}

// Run is one benchmark invocation across one or more backends.
type Run struct {
	ID         string    `json:"id" bson:"_id"`
	Version    string    `json:"version" bson:"version"`
	StartedAt  time.Time `json:"started_at" bson:"started_at"`
	FinishedAt time.Time `json:"finished_at" bson:"finished_at"`
	Settings   Settings  `json:"settings" bson:"settings"`
	Results    []Result  `json:"results" bson:"results"`
}

// NewRun starts a run with a fresh ID.
func NewRun(version string, s Settings) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Version:   version,
		StartedAt: time.Now().UTC(),
		Settings:  s,
	}
}

// Duration returns the wall time of the run.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Failed returns the number of backends that errored.
func (r *Run) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}

// Store persists runs.
type Store interface {
	Save(ctx context.Context, r *Run) error
	// Get returns a NOT_FOUND error for unknown IDs.
	Get(ctx context.Context, id string) (*Run, error)
	// List returns up to limit runs, newest first. A limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*Run, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// ValidID reports whether id is a well formed run ID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
