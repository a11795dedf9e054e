package baseline

import (
	"time"

	"github.com/cloudflare/golibs/ewma"
)

// EWMA is a first-order exponential moving average driven by simulated
// time instead of the wall clock.
type EWMA struct {
	avg *ewma.Ewma
	now time.Time
}

// NewEWMA returns an average with the given half-life in seconds, primed
// with initial.
func NewEWMA(halfLife, initial float64) *EWMA {
	e := &EWMA{
		avg: ewma.NewEwma(time.Duration(halfLife * float64(time.Second))),
		now: time.Unix(0, 0),
	}
	// the first update only records the timestamp
	e.avg.Update(initial, e.now)
	e.avg.Current = initial
	return e
}

func (e *EWMA) Step(dt, target float64, _ *float64) (float64, error) {
	if dt <= 0 {
		return e.avg.Current, nil
	}
	e.now = e.now.Add(time.Duration(dt * float64(time.Second)))
	return e.avg.Update(target, e.now), nil
}

func (e *EWMA) Value() float64 { return e.avg.Current }
