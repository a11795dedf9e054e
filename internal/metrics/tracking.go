package metrics

import (
	"math"

	"github.com/san-kum/dynfilter/internal/sim"
)

// RMSError is the root mean square distance between value and target.
type RMSError struct {
	sum     float64
	samples int
}

func NewRMSError() *RMSError { return &RMSError{} }

func (r *RMSError) Name() string { return "rms_error" }

func (r *RMSError) Observe(s sim.Sample) {
	d := s.Value - s.Target
	r.sum += d * d
	r.samples++
}

func (r *RMSError) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return math.Sqrt(r.sum / float64(r.samples))
}

func (r *RMSError) Reset() {
	r.sum = 0
	r.samples = 0
}

// MaxError is the largest distance between value and target.
type MaxError struct {
	max float64
}

func NewMaxError() *MaxError { return &MaxError{} }

func (m *MaxError) Name() string { return "max_error" }

func (m *MaxError) Observe(s sim.Sample) {
	m.max = math.Max(m.max, math.Abs(s.Value-s.Target))
}

func (m *MaxError) Value() float64 { return m.max }

func (m *MaxError) Reset() { m.max = 0 }

// Effort is the mean absolute rate of the filtered value, measured from
// consecutive frames.
type Effort struct {
	sum     float64
	samples int
	last    float64
	started bool
}

func NewEffort() *Effort { return &Effort{} }

func (e *Effort) Name() string { return "effort" }

func (e *Effort) Observe(s sim.Sample) {
	if e.started && s.Dt > 0 {
		e.sum += math.Abs(s.Value-e.last) / s.Dt
		e.samples++
	}
	e.last, e.started = s.Value, true
}

func (e *Effort) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *Effort) Reset() {
	e.sum = 0
	e.samples = 0
	e.started = false
}
