// Package baseline provides reference smoothers to compare the dynamics
// filter against, all behind the sim.Smoother interface.
package baseline

import (
	"fmt"
	"math"

	"github.com/san-kum/dynfilter/dynamo"
	"github.com/san-kum/dynfilter/internal/sim"
)

const (
	KindDynamics = "dynamics"
	KindSpring   = "spring"
	KindEWMA     = "ewma"
)

// Kinds lists every smoother in comparison order.
var Kinds = []string{KindDynamics, KindSpring, KindEWMA}

// New builds the smoother named by kind, tuned from the same parameters so
// that all of them share the natural frequency 2π·p.Frequency.
func New(kind string, p dynamo.Params, initial float64) (sim.Smoother, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	w := 2 * math.Pi * float64(p.Frequency)

	switch kind {
	case KindDynamics:
		return sim.NewFilter(p, initial)
	case KindSpring:
		return NewSpring(w, float64(p.Damping), initial), nil
	case KindEWMA:
		return NewEWMA(math.Ln2/w, initial), nil
	default:
		return nil, fmt.Errorf("unknown smoother: %q", kind)
	}
}
