// Package signal generates target trajectories for driving a filter.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/dynfilter/internal/config"
)

// Signal is a target value as a function of time.
type Signal interface {
	At(t float64) float64
}

// Differentiable is implemented by signals with a known rate of change.
type Differentiable interface {
	Velocity(t float64) float64
}

// Velocity returns the analytic rate of s at t, or 0 if s has none.
func Velocity(s Signal, t float64) float64 {
	if d, ok := s.(Differentiable); ok {
		return d.Velocity(t)
	}
	return 0
}

type Step struct {
	Amplitude, Offset, Delay float64
}

func (s Step) At(t float64) float64 {
	if t < s.Delay {
		return s.Offset
	}
	return s.Offset + s.Amplitude
}

func (s Step) Velocity(float64) float64 { return 0 }

// Square alternates between Offset+Amplitude and Offset, starting high.
type Square struct {
	Amplitude, Offset, Period float64
}

func (s Square) At(t float64) float64 {
	_, frac := math.Modf(t / s.Period)
	if frac < 0 {
		frac++
	}
	if frac < 0.5 {
		return s.Offset + s.Amplitude
	}
	return s.Offset
}

func (s Square) Velocity(float64) float64 { return 0 }

type Sine struct {
	Amplitude, Offset, Period float64
}

func (s Sine) At(t float64) float64 {
	return s.Offset + s.Amplitude*math.Sin(2*math.Pi*t/s.Period)
}

func (s Sine) Velocity(t float64) float64 {
	w := 2 * math.Pi / s.Period
	return s.Amplitude * w * math.Cos(w*t)
}

// Ramp rises at Amplitude units per second after Delay.
type Ramp struct {
	Amplitude, Offset, Delay float64
}

func (r Ramp) At(t float64) float64 {
	return r.Offset + r.Amplitude*math.Max(0, t-r.Delay)
}

func (r Ramp) Velocity(t float64) float64 {
	if t < r.Delay {
		return 0
	}
	return r.Amplitude
}

// Held samples the inner signal every Hold seconds and holds the value in
// between, producing stepwise target updates.
type Held struct {
	Signal Signal
	Hold   float64
}

func (h Held) At(t float64) float64 {
	return h.Signal.At(math.Floor(t/h.Hold) * h.Hold)
}

func (h Held) Velocity(float64) float64 { return 0 }

// Noisy adds seeded Gaussian noise to the inner signal. Each call to At draws
// a new sample, so a Noisy signal is deterministic per call sequence.
type Noisy struct {
	Signal Signal
	Sigma  float64
	rng    *rand.Rand
}

func NewNoisy(s Signal, sigma float64, seed int64) *Noisy {
	return &Noisy{Signal: s, Sigma: sigma, rng: rand.New(rand.NewSource(seed))}
}

func (n *Noisy) At(t float64) float64 {
	return n.Signal.At(t) + n.rng.NormFloat64()*n.Sigma
}

func (n *Noisy) Velocity(t float64) float64 {
	return Velocity(n.Signal, t)
}

// New builds the signal described by cfg.
func New(cfg config.SignalConfig) (Signal, error) {
	var s Signal
	switch cfg.Kind {
	case config.SignalStep:
		s = Step{Amplitude: cfg.Amplitude, Offset: cfg.Offset, Delay: cfg.Delay}
	case config.SignalSquare:
		if cfg.Period <= 0 {
			return nil, fmt.Errorf("square signal needs a positive period, got %f", cfg.Period)
		}
		s = Square{Amplitude: cfg.Amplitude, Offset: cfg.Offset, Period: cfg.Period}
	case config.SignalSine:
		if cfg.Period <= 0 {
			return nil, fmt.Errorf("sine signal needs a positive period, got %f", cfg.Period)
		}
		s = Sine{Amplitude: cfg.Amplitude, Offset: cfg.Offset, Period: cfg.Period}
	case config.SignalRamp:
		s = Ramp{Amplitude: cfg.Amplitude, Offset: cfg.Offset, Delay: cfg.Delay}
	default:
		return nil, fmt.Errorf("unknown signal kind: %q", cfg.Kind)
	}

	if cfg.Hold > 0 {
		s = Held{Signal: s, Hold: cfg.Hold}
	}
	if cfg.Noise > 0 {
		s = NewNoisy(s, cfg.Noise, cfg.Seed)
	}
	return s, nil
}
