package sim

import (
	"github.com/san-kum/dynfilter/dynamo"
	"github.com/san-kum/dynfilter/vector"
)

// Filter adapts a scalar dynamo.Filter to the Smoother interface.
type Filter struct {
	f *dynamo.Filter[vector.Scalar]
}

func NewFilter(p dynamo.Params, initial float64) (*Filter, error) {
	f, err := dynamo.NewFromParams(p, vector.Scalar(initial))
	if err != nil {
		return nil, err
	}
	return &Filter{f: f}, nil
}

func (f *Filter) Step(dt, target float64, velocity *float64) (float64, error) {
	var rate *vector.Scalar
	if velocity != nil {
		r := vector.Scalar(*velocity)
		rate = &r
	}
	v, err := f.f.Update(float32(dt), vector.Scalar(target), rate)
	return float64(v), err
}

func (f *Filter) Rate() float64     { return float64(f.f.Rate()) }
func (f *Filter) Mode() dynamo.Mode { return f.f.LastStep().Mode }

// Dynamics returns the wrapped filter.
func (f *Filter) Dynamics() *dynamo.Filter[vector.Scalar] { return f.f }
