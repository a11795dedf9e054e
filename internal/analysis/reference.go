package analysis

import (
	"math"

	"github.com/san-kum/dynfilter/dynamo"
	"github.com/san-kum/dynfilter/internal/integrators"
	"github.com/san-kum/dynfilter/internal/signal"
	"github.com/san-kum/dynfilter/internal/sim"
)

// MaxSubstep bounds the RK4 step used for the reference solution.
const MaxSubstep = 1e-3

// Reference integrates the continuous filter model driven by a signal.
type Reference struct {
	c     dynamo.Coefficients
	sig   signal.Signal
	integ integrators.Integrator
	x     integrators.State
	t     float64
}

// NewReference starts the continuous model at rest at initial.
func NewReference(c dynamo.Coefficients, sig signal.Signal, initial float64) *Reference {
	return &Reference{
		c:     c,
		sig:   sig,
		integ: integrators.NewRK4(),
		x:     integrators.State{initial, 0},
	}
}

// Derive implements integrators.System over the state (y, y').
func (r *Reference) Derive(x integrators.State, t float64) integrators.State {
	k1, k2, k3 := float64(r.c.K1), float64(r.c.K2), float64(r.c.K3)
	target := r.sig.At(t)
	rate := signal.Velocity(r.sig, t)
	return integrators.State{x[1], (target + k3*rate - x[0] - k1*x[1]) / k2}
}

// Advance integrates to time t and returns the model output there.
func (r *Reference) Advance(t float64) float64 {
	span := t - r.t
	if span <= 0 {
		return r.x[0]
	}
	n := int(math.Ceil(span / MaxSubstep))
	h := span / float64(n)
	for i := 0; i < n; i++ {
		r.x = r.integ.Step(r, r.x, r.t, h)
		r.t += h
	}
	r.t = t
	return r.x[0]
}

func (r *Reference) Value() float64 { return r.x[0] }
func (r *Reference) Rate() float64  { return r.x[1] }

// DeviationReport summarizes how far a run strays from the reference.
type DeviationReport struct {
	RMS   float64 `json:"rms"`
	Max   float64 `json:"max"`
	MaxAt float64 `json:"max_at"`
}

// Deviation replays the times of a recorded run against the continuous model
// and reports the difference in output.
func Deviation(res *sim.Result, c dynamo.Coefficients, sig signal.Signal) DeviationReport {
	var rep DeviationReport
	if len(res.Times) == 0 {
		return rep
	}

	ref := NewReference(c, sig, res.Values[0])
	ref.t = res.Times[0]

	sum := 0.0
	for i, t := range res.Times {
		d := math.Abs(res.Values[i] - ref.Advance(t))
		sum += d * d
		if d > rep.Max {
			rep.Max = d
			rep.MaxAt = t
		}
	}
	rep.RMS = math.Sqrt(sum / float64(len(res.Times)))
	return rep
}
