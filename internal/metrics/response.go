package metrics

import (
	"math"

	"github.com/san-kum/dynfilter/internal/sim"
)

// jump is the smallest target change treated as a new step.
const jump = 1e-9

// tracker follows the most recent target change.
type tracker struct {
	from, to float64
	dir      float64
	at       float64
	started  bool
}

// observe returns true when s starts a new target step. The first frame
// counts as a step from the initial value to the initial target.
func (k *tracker) observe(s sim.Sample) bool {
	if !k.started {
		k.from, k.to, k.at, k.started = s.Value, s.Target, s.Time, true
		if math.Abs(s.Target-s.Value) > jump {
			k.dir = math.Copysign(1, s.Target-s.Value)
		}
		return true
	}
	if math.Abs(s.Target-k.to) <= jump {
		return false
	}
	k.from, k.to, k.at = k.to, s.Target, s.Time
	k.dir = math.Copysign(1, s.Target-k.from)
	return true
}

// Overshoot is the largest distance the value travels past the target in the
// direction of the latest target change.
type Overshoot struct {
	k   tracker
	max float64
}

func NewOvershoot() *Overshoot { return &Overshoot{} }

func (o *Overshoot) Name() string { return "overshoot" }

func (o *Overshoot) Observe(s sim.Sample) {
	o.k.observe(s)
	if o.k.dir != 0 {
		o.max = math.Max(o.max, o.k.dir*(s.Value-s.Target))
	}
}

func (o *Overshoot) Value() float64 { return o.max }

func (o *Overshoot) Reset() { *o = Overshoot{} }

// Undershoot is the largest distance the value moves backwards past the
// previous target after a target change.
type Undershoot struct {
	k   tracker
	max float64
}

func NewUndershoot() *Undershoot { return &Undershoot{} }

func (u *Undershoot) Name() string { return "undershoot" }

func (u *Undershoot) Observe(s sim.Sample) {
	u.k.observe(s)
	if u.k.dir != 0 {
		u.max = math.Max(u.max, u.k.dir*(u.k.from-s.Value))
	}
}

func (u *Undershoot) Value() float64 { return u.max }

func (u *Undershoot) Reset() { *u = Undershoot{} }

// SettlingTime is the time from the latest target change until the value
// last entered a band of ±tolerance·|step| around the target. If the value
// is still outside the band at the end, it is the time elapsed since the
// change.
type SettlingTime struct {
	tolerance float64
	k         tracker
	settledAt float64
	inside    bool
	now       float64
}

func NewSettlingTime(tolerance float64) *SettlingTime {
	return &SettlingTime{tolerance: tolerance}
}

func (st *SettlingTime) Name() string { return "settling_time" }

func (st *SettlingTime) Observe(s sim.Sample) {
	if st.k.observe(s) {
		st.inside = false
	}
	st.now = s.Time

	band := st.tolerance * math.Abs(st.k.to-st.k.from)
	in := math.Abs(s.Value-s.Target) <= band
	if in && !st.inside {
		st.settledAt = s.Time
	}
	st.inside = in
}

func (st *SettlingTime) Value() float64 {
	if !st.k.started {
		return 0
	}
	if !st.inside {
		return st.now - st.k.at
	}
	return st.settledAt - st.k.at
}

func (st *SettlingTime) Reset() {
	*st = SettlingTime{tolerance: st.tolerance}
}
