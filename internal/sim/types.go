package sim

import (
	"fmt"

	"github.com/san-kum/dynfilter/dynamo"
)

// Smoother advances a smoothed value by dt toward target. velocity is the
// target's rate of change, or nil when the smoother should do without it.
type Smoother interface {
	Step(dt, target float64, velocity *float64) (float64, error)
}

// Inspector is implemented by smoothers that expose their internal state.
type Inspector interface {
	Rate() float64
	Mode() dynamo.Mode
}

// Sample is one simulated frame.
type Sample struct {
	Step   int
	Time   float64
	Dt     float64
	Target float64
	Value  float64
	Rate   float64
	Mode   dynamo.Mode
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Sample)
}

type Result struct {
	Times      []float64          `json:"times"`
	Targets    []float64          `json:"targets"`
	Values     []float64          `json:"values"`
	Rates      []float64          `json:"rates,omitempty"`
	Modes      []dynamo.Mode      `json:"-"`
	Metrics    map[string]float64 `json:"metrics"`
	StepsTaken int                `json:"steps_taken"`
}

// Sample returns the i-th recorded frame.
func (r *Result) Sample(i int) Sample {
	s := Sample{Step: i, Time: r.Times[i], Target: r.Targets[i], Value: r.Values[i]}
	if i > 0 {
		s.Dt = r.Times[i] - r.Times[i-1]
	}
	if i < len(r.Rates) {
		s.Rate = r.Rates[i]
	}
	if i < len(r.Modes) {
		s.Mode = r.Modes[i]
	}
	return s
}

func (r *Result) append(s Sample, inspected bool) {
	r.Times = append(r.Times, s.Time)
	r.Targets = append(r.Targets, s.Target)
	r.Values = append(r.Values, s.Value)
	if inspected {
		r.Rates = append(r.Rates, s.Rate)
		r.Modes = append(r.Modes, s.Mode)
	}
}

type SimError struct {
	Time    float64
	Step    int
	Message string
	Wrapped error
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

func (e SimError) Unwrap() error {
	return e.Wrapped
}
