package signal

import (
	"math/rand"

	"github.com/san-kum/dynfilter/internal/config"
)

// Clock produces frame durations, optionally jittered to mimic irregular
// frame times.
type Clock struct {
	dt     float64
	jitter float64
	rng    *rand.Rand
}

func NewClock(cfg config.ClockConfig) *Clock {
	return &Clock{
		dt:     cfg.Dt,
		jitter: cfg.Jitter,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Next returns the next frame duration, uniformly spread over
// dt·[1-jitter, 1+jitter].
func (c *Clock) Next() float64 {
	if c.jitter == 0 {
		return c.dt
	}
	return c.dt * (1 + c.jitter*(2*c.rng.Float64()-1))
}
