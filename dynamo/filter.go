package dynamo

// Filter drives a value toward a moving target with second-order dynamics.
type Filter[T Vector[T]] struct {
	// previous target, only tracked when the rate is estimated
	prevTarget T

	value T
	rate  T

	params Params
	c      Coefficients
	last   Step
}

// New compiles the parameters and returns a filter resting at initial.
func New[T Vector[T]](frequency, damping, response float32, initial T) (*Filter[T], error) {
	return NewFromParams(Params{Frequency: frequency, Damping: damping, Response: response}, initial)
}

// NewFromParams is like [New] but takes the parameters as a struct.
func NewFromParams[T Vector[T]](p Params, initial T) (*Filter[T], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Filter[T]{
		prevTarget: initial,
		value:      initial,
		params:     p,
		c:          p.Compile(),
	}, nil
}

// MustNew is like [New] but panics on invalid parameters.
func MustNew[T Vector[T]](frequency, damping, response float32, initial T) *Filter[T] {
	f, err := New(frequency, damping, response, initial)
	if err != nil {
		panic(err)
	}
	return f
}

// Update advances the filter by dt seconds toward target and returns the new
// value. If rate is nil the target's rate of change is estimated from the
// previous target, which requires dt != 0.
//
// dt must not be negative; negative steps are not checked and give undefined
// results.
func (f *Filter[T]) Update(dt float32, target T, rate *T) (T, error) {
	xd, err := f.estimateRate(dt, target, rate)
	if err != nil {
		return f.value, err
	}

	s := Stabilize(f.c, dt)

	// semi-implicit: position first with the old rate, then rate with the new position
	f.value = f.value.Add(f.rate.Mul(dt))
	accel := target.Add(xd.Mul(f.c.K3)).Sub(f.value).Sub(f.rate.Mul(s.K1))
	f.rate = f.rate.Add(accel.Mul(dt / s.K2))

	f.last = s
	return f.value, nil
}

func (f *Filter[T]) estimateRate(dt float32, target T, rate *T) (T, error) {
	if rate != nil {
		return *rate, nil
	}
	if dt == 0 {
		var zero T
		return zero, ErrZeroStep
	}
	xd := target.Sub(f.prevTarget).Mul(1 / dt)
	f.prevTarget = target
	return xd, nil
}

// Retune replaces the parameters, keeping the current value and rate.
func (f *Filter[T]) Retune(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	f.params = p
	f.c = p.Compile()
	return nil
}

// Value returns the current filtered value.
func (f *Filter[T]) Value() T { return f.value }

// Rate returns the current rate of change of the value.
func (f *Filter[T]) Rate() T { return f.rate }

// Params returns the parameters the filter was built with.
func (f *Filter[T]) Params() Params { return f.params }

// Coefficients returns the compiled base coefficients.
func (f *Filter[T]) Coefficients() Coefficients { return f.c }

// LastStep returns the coefficients used by the most recent successful update.
func (f *Filter[T]) LastStep() Step { return f.last }
