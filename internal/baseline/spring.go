package baseline

import "github.com/charmbracelet/harmonica"

// Spring is a damped harmonic oscillator without target anticipation.
type Spring struct {
	spring   harmonica.Spring
	dt       float64
	w, z     float64
	pos, vel float64
}

func NewSpring(angularFrequency, damping, initial float64) *Spring {
	return &Spring{w: angularFrequency, z: damping, pos: initial}
}

// Step ignores velocity. The spring coefficients depend on dt and are
// recomputed whenever the frame duration changes.
func (s *Spring) Step(dt, target float64, _ *float64) (float64, error) {
	if dt <= 0 {
		return s.pos, nil
	}
	if dt != s.dt {
		s.spring = harmonica.NewSpring(dt, s.w, s.z)
		s.dt = dt
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, target)
	return s.pos, nil
}

func (s *Spring) Rate() float64 { return s.vel }
