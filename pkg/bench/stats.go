package bench

import (
	"time"

	"github.com/montanaflynn/stats"

	"github.com/matzehuels/canvasbench/pkg/results"
)

// FrameStats summarizes animation frame times.
type FrameStats struct {
	Mean time.Duration
	P95  time.Duration
	Max  time.Duration
	FPS  float64
}

// Summarize computes frame statistics. An empty slice yields zero stats.
func Summarize(durations []time.Duration) FrameStats {
	if len(durations) == 0 {
		return FrameStats{}
	}
	data := make(stats.Float64Data, len(durations))
	for i, d := range durations {
		data[i] = float64(d)
	}

	var fs FrameStats
	if mean, err := data.Mean(); err == nil {
		fs.Mean = time.Duration(mean)
		if mean > 0 {
			fs.FPS = float64(time.Second) / mean
		}
	}
	if p95, err := data.Percentile(95); err == nil {
		fs.P95 = time.Duration(p95)
	}
	if m, err := data.Max(); err == nil {
		fs.Max = time.Duration(m)
	}
	return fs
}

// apply copies the summary onto backend stats.
func (fs FrameStats) apply(s *results.Stats, frames int) {
	s.Frames = frames
	s.FrameMean = fs.Mean
	s.FrameP95 = fs.P95
	s.FrameMax = fs.Max
	s.FPS = fs.FPS
}
