package metrics

import (
	"github.com/san-kum/dynfilter/dynamo"
	"github.com/san-kum/dynfilter/internal/sim"
)

// ModeShare is the fraction of steps stabilized by pole matching.
type ModeShare struct {
	matched int
	steps   int
}

func NewModeShare() *ModeShare { return &ModeShare{} }

func (m *ModeShare) Name() string { return "pole_matched" }

func (m *ModeShare) Observe(s sim.Sample) {
	if s.Step == 0 {
		return
	}
	m.steps++
	if s.Mode == dynamo.ModePoleMatched {
		m.matched++
	}
}

func (m *ModeShare) Value() float64 {
	if m.steps == 0 {
		return 0
	}
	return float64(m.matched) / float64(m.steps)
}

func (m *ModeShare) Reset() {
	m.matched = 0
	m.steps = 0
}

// Standard returns the metrics reported by the CLI.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewRMSError(),
		NewMaxError(),
		NewOvershoot(),
		NewUndershoot(),
		NewSettlingTime(0.02),
		NewStability(0.05),
		NewEffort(),
		NewModeShare(),
	}
}
