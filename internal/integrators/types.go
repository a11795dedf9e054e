// Package integrators advances continuous-time systems with fixed-step
// explicit schemes. They are used as a reference against which the
// discrete filter is measured.
package integrators

// State is the state vector of a continuous system.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// System is a first-order ODE x' = f(x, t).
type System interface {
	Derive(x State, t float64) State
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(x State, t float64) State

func (f SystemFunc) Derive(x State, t float64) State { return f(x, t) }

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}
