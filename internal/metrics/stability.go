package metrics

import (
	"math"

	"github.com/san-kum/dynfilter/internal/sim"
)

// Stability is the share of time the value spends within threshold of the
// target. Frames are weighted by their dt, so jittered clocks do not skew it.
// Without any elapsed time it falls back to counting frames.
type Stability struct {
	threshold float64

	inside, total float64
	framesIn      int
	frames        int
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(x sim.Sample) {
	in := math.Abs(x.Value-x.Target) <= s.threshold

	s.frames++
	s.total += x.Dt
	if in {
		s.framesIn++
		s.inside += x.Dt
	}
}

func (s *Stability) Value() float64 {
	switch {
	case s.total > 0:
		return s.inside / s.total
	case s.frames > 0:
		return float64(s.framesIn) / float64(s.frames)
	}
	return 1
}

func (s *Stability) Reset() {
	*s = Stability{threshold: s.threshold}
}
