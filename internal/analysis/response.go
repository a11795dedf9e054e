package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/dynfilter/dynamo"
	"github.com/san-kum/dynfilter/vector"
)

var ErrLength = errors.New("analysis: input and output lengths differ")

// Bin is one frequency of a measured response.
type Bin struct {
	Freq  float64 `json:"freq"`
	Gain  float64 `json:"gain"`
	Phase float64 `json:"phase"`
}

// Gain returns |H(j·2π·freq)| for the compiled coefficients.
func Gain(c dynamo.Coefficients, freq float64) float64 {
	return cmplx.Abs(transfer(c, freq))
}

// Phase returns the phase of H(j·2π·freq) in radians.
func Phase(c dynamo.Coefficients, freq float64) float64 {
	return cmplx.Phase(transfer(c, freq))
}

func transfer(c dynamo.Coefficients, freq float64) complex128 {
	s := complex(0, 2*math.Pi*freq)
	k1, k2, k3 := complex(float64(c.K1), 0), complex(float64(c.K2), 0), complex(float64(c.K3), 0)
	return (1 + k3*s) / (k2*s*s + k1*s + 1)
}

// Cutoff returns the highest frequency at which the analytic gain is still
// at least 1/√2. Resonant peaks below it are ignored.
func Cutoff(c dynamo.Coefficients) float64 {
	const (
		points  = 4000
		decades = 6
	)
	threshold := 1 / math.Sqrt2
	base := float64(c.W) / (2 * math.Pi)
	lo := base * 1e-3

	last := -1
	freqAt := func(i int) float64 {
		return lo * math.Pow(10, decades*float64(i)/points)
	}
	for i := 0; i <= points; i++ {
		if Gain(c, freqAt(i)) >= threshold {
			last = i
		}
	}
	if last < 0 {
		return 0
	}
	if last == points {
		return math.Inf(1)
	}

	a, b := freqAt(last), freqAt(last+1)
	for range 60 {
		m := math.Sqrt(a * b)
		if Gain(c, m) >= threshold {
			a = m
		} else {
			b = m
		}
	}
	return a
}

// FrequencyResponse compares the spectra of uniformly sampled input and
// output series. Bins where the input carries less than floor of its peak
// magnitude are skipped.
func FrequencyResponse(inputs, outputs []float64, dt, floor float64) ([]Bin, error) {
	if len(inputs) != len(outputs) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLength, len(inputs), len(outputs))
	}
	n := len(inputs)
	if n < 2 || dt <= 0 {
		return nil, nil
	}

	x := fft.FFTReal(inputs)
	y := fft.FFTReal(outputs)

	peak := 0.0
	for k := 1; k <= n/2; k++ {
		peak = max(peak, cmplx.Abs(x[k]))
	}

	var bins []Bin
	for k := 1; k <= n/2; k++ {
		mag := cmplx.Abs(x[k])
		if mag == 0 || mag < floor*peak {
			continue
		}
		h := y[k] / x[k]
		bins = append(bins, Bin{
			Freq:  float64(k) / (float64(n) * dt),
			Gain:  cmplx.Abs(h),
			Phase: cmplx.Phase(h),
		})
	}
	return bins, nil
}

// MeasureGain drives a fresh filter with a unit sine of the given frequency
// at a fixed step and returns the measured steady-state gain. The window
// length is chosen so that it spans a whole number of cycles.
func MeasureGain(p dynamo.Params, freq, dt float64) (float64, error) {
	if freq <= 0 || dt <= 0 {
		return 0, fmt.Errorf("analysis: invalid sweep point freq=%g dt=%g", freq, dt)
	}
	f, err := dynamo.NewFromParams(p, vector.Scalar(0))
	if err != nil {
		return 0, err
	}

	period := 1 / freq
	settle := 10 / max(float64(f.Coefficients().Z*f.Coefficients().W), 0.1)
	cycles := math.Ceil(max(4*period, 8.0) / period)
	n := int(math.Round(cycles * period / dt))
	skip := int(math.Ceil(settle / dt))

	w := 2 * math.Pi * freq
	in := make([]float64, 0, n)
	out := make([]float64, 0, n)
	for i := 1; i <= skip+n; i++ {
		t := float64(i) * dt
		x := vector.Scalar(math.Sin(w * t))
		xd := vector.Scalar(w * math.Cos(w*t))
		v, err := f.Update(float32(dt), x, &xd)
		if err != nil {
			return 0, err
		}
		if i > skip {
			in = append(in, float64(x))
			out = append(out, float64(v))
		}
	}

	// the window covers a whole number of cycles, so the tone sits in bin k
	k := int(math.Round(freq * float64(n) * dt))
	x := fft.FFTReal(in)
	y := fft.FFTReal(out)
	if k <= 0 || k >= len(x) || cmplx.Abs(x[k]) == 0 {
		return 0, fmt.Errorf("analysis: %g Hz not resolvable at dt=%g", freq, dt)
	}
	return cmplx.Abs(y[k]) / cmplx.Abs(x[k]), nil
}
