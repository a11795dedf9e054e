package dynamo

import "math"

// Params are the physical tuning parameters of a filter.
type Params struct {
	Frequency float32 `yaml:"frequency" json:"frequency"`
	Damping   float32 `yaml:"damping" json:"damping"`
	Response  float32 `yaml:"response" json:"response"`
}

// Coefficients are the continuous-time constants compiled from [Params].
type Coefficients struct {
	W  float32 // angular frequency
	Z  float32 // damping ratio
	D  float32 // damped frequency
	K1 float32
	K2 float32
	K3 float32
}

// Validate reports whether p can be compiled into finite coefficients.
func (p Params) Validate() error {
	if !finite(p.Frequency) || p.Frequency <= 0 {
		return &ParamError{Name: "frequency", Value: p.Frequency, Wrapped: ErrFrequency}
	}
	if !finite(p.Damping) || p.Damping < 0 {
		return &ParamError{Name: "damping", Value: p.Damping, Wrapped: ErrDamping}
	}
	if !finite(p.Response) {
		return &ParamError{Name: "response", Value: p.Response, Wrapped: ErrResponse}
	}
	return nil
}

// Compile converts p into coefficients. It does not validate p.
func (p Params) Compile() Coefficients {
	f, z, r := p.Frequency, p.Damping, p.Response
	w := 2 * math.Pi * f
	return Coefficients{
		W:  w,
		Z:  z,
		D:  w * float32(math.Sqrt(math.Abs(float64(z*z-1)))),
		K1: z / (math.Pi * f),
		K2: 1 / (w * w),
		K3: r * z / w,
	}
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
