package scene

import (
	"context"
	"time"
)

// DefaultAngle is the rotation applied to every node per frame, in degrees.
const DefaultAngle = 5.0

// DrawFunc renders the current state of a scene for one frame.
type DrawFunc func(ctx context.Context, s *Scene) error

// Animator rotates every node of a scene a fixed angle per frame. A zero
// Angle redraws frames without rotating.
type Animator struct {
	Angle float64
	// FPS paces frames when positive. Zero runs frames back to back.
	FPS int
}

// Step advances the scene by one frame.
func (a Animator) Step(s *Scene) {
	if a.Angle == 0 {
		return
	}
	for _, n := range s.nodes {
		n.SetRotation(n.Rotation() + a.Angle)
	}
}

// Run steps and draws the scene frames times and returns the wall time spent
// on each frame. It stops early when ctx is done or draw fails, returning the
// durations collected so far.
func (a Animator) Run(ctx context.Context, s *Scene, frames int, draw DrawFunc) ([]time.Duration, error) {
	durations := make([]time.Duration, 0, max(frames, 0))

	var tick <-chan time.Time
	if a.FPS > 0 {
		t := time.NewTicker(time.Second / time.Duration(a.FPS))
		defer t.Stop()
		tick = t.C
	}

	for i := 0; i < frames; i++ {
		if tick != nil && i > 0 {
			select {
			case <-ctx.Done():
				return durations, ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return durations, err
		}

		start := time.Now()
		a.Step(s)
		if draw != nil {
			if err := draw(ctx, s); err != nil {
				return durations, err
			}
		}
		durations = append(durations, time.Since(start))
	}
	return durations, nil
}
