package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/dynfilter/internal/config"
	"github.com/san-kum/dynfilter/internal/signal"
)

type Simulator struct {
	smoother  Smoother
	signal    signal.Signal
	clock     *signal.Clock
	estimate  bool
	initial   float64
	metrics   []Metric
	observers []Observer
}

// New returns a simulator feeding sig to sm at the frame times of clock.
// When estimate is false the signal's analytic velocity is passed along with
// each target; otherwise the smoother has to do without.
func New(sm Smoother, sig signal.Signal, clock *signal.Clock, estimate bool) *Simulator {
	return &Simulator{
		smoother:  sm,
		signal:    sig,
		clock:     clock,
		estimate:  estimate,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

// FromConfig builds the signal and clock described by cfg around sm.
func FromConfig(sm Smoother, cfg *config.Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sig, err := signal.New(cfg.Signal)
	if err != nil {
		return nil, err
	}
	s := New(sm, sig, signal.NewClock(cfg.Clock), cfg.Estimate)
	s.initial = float64(cfg.InitValue)
	return s, nil
}

// FilterFromConfig is FromConfig with a dynamo filter built from cfg.
func FilterFromConfig(cfg *config.Config) (*Simulator, *Filter, error) {
	f, err := NewFilter(cfg.Filter, float64(cfg.InitValue))
	if err != nil {
		return nil, nil, err
	}
	s, err := FromConfig(f, cfg)
	if err != nil {
		return nil, nil, err
	}
	return s, f, nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetInitial sets the value reported for t=0. It must match the smoother's
// starting value.
func (s *Simulator) SetInitial(v float64) { s.initial = v }

func (s *Simulator) Run(ctx context.Context, duration float64) (*Result, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %f", duration)
	}

	result := &Result{
		Metrics: make(map[string]float64),
	}
	_, inspected := s.smoother.(Inspector)

	for _, m := range s.metrics {
		m.Reset()
	}

	err := s.RunWithCallback(ctx, duration, func(sample Sample) bool {
		result.append(sample, inspected)
		if sample.Step > 0 {
			result.StepsTaken++
		}
		return true
	})

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, err
}

// RunWithCallback runs the simulation, calling callback with every frame
// including the initial one. Returning false from callback stops the run.
func (s *Simulator) RunWithCallback(ctx context.Context, duration float64, callback func(Sample) bool) error {
	inspector, inspected := s.smoother.(Inspector)

	t := 0.0
	sample := Sample{Time: t, Target: s.signal.At(t), Value: s.initial}
	if !s.emit(sample, callback) {
		return nil
	}

	for step := 1; t < duration; step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		dt := s.clock.Next()
		t += dt
		target := s.signal.At(t)

		var velocity *float64
		if !s.estimate {
			v := signal.Velocity(s.signal, t)
			velocity = &v
		}

		value, err := s.smoother.Step(dt, target, velocity)
		if err != nil {
			return SimError{Time: t, Step: step, Message: err.Error(), Wrapped: err}
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return SimError{Time: t, Step: step, Message: "invalid state (NaN/Inf)"}
		}

		sample = Sample{Step: step, Time: t, Dt: dt, Target: target, Value: value}
		if inspected {
			sample.Rate = inspector.Rate()
			sample.Mode = inspector.Mode()
		}
		if !s.emit(sample, callback) {
			return nil
		}
	}

	return nil
}

func (s *Simulator) emit(sample Sample, callback func(Sample) bool) bool {
	for _, m := range s.metrics {
		m.Observe(sample)
	}
	for _, obs := range s.observers {
		obs.OnStep(sample)
	}
	return callback(sample)
}
