package dynamo

import "math"

// Mode identifies the scheme used to stabilize one step.
type Mode uint8

const (
	// ModeClamped keeps the base coefficients and clamps k2.
	ModeClamped Mode = iota
	// ModePoleMatched uses coefficients matching the continuous system's poles.
	ModePoleMatched
)

func (m Mode) String() string {
	switch m {
	case ModeClamped:
		return "clamped"
	case ModePoleMatched:
		return "pole-matched"
	default:
		return "unknown"
	}
}

// Step holds the coefficients used for a single integration step.
type Step struct {
	K1   float32
	K2   float32
	Mode Mode
}

// Stabilize computes step-local k1/k2 for a step of length dt. For dt > 0 the
// returned K2 is strictly positive.
//
// Intermediate values are computed in float64; for small dt the pole-matched
// denominator 1+beta-alpha is below float32 resolution.
func Stabilize(c Coefficients, dt float32) Step {
	if c.W*dt < c.Z {
		return clamped(c, dt)
	}

	t := float64(dt)
	zw := float64(c.Z) * float64(c.W)
	d := float64(c.D)

	t1 := math.Exp(-zw * t)
	var alpha float64
	if c.Z <= 1 {
		alpha = 2 * t1 * math.Cos(d*t)
	} else {
		// 2·t1·cosh(d·t) without overflowing cosh for large d·t
		alpha = math.Exp((d-zw)*t) + math.Exp(-(d+zw)*t)
	}
	beta := t1 * t1

	den := 1 + beta - alpha
	if !(den > 0) {
		// undamped and sampled at a multiple of the natural period
		return clamped(c, dt)
	}

	t2 := t / den
	k2 := float32(t * t2)
	if math.IsInf(float64(k2), 0) {
		return clamped(c, dt)
	}
	return Step{
		K1:   float32((1 - beta) * t2),
		K2:   k2,
		Mode: ModePoleMatched,
	}
}

func clamped(c Coefficients, dt float32) Step {
	return Step{
		K1:   c.K1,
		K2:   max(c.K2, dt*dt/2+dt*c.K1/2, dt*c.K1),
		Mode: ModeClamped,
	}
}
