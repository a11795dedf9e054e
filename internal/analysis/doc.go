// Package analysis measures how the discrete filter behaves against its
// continuous-time model.
//
//   - [Gain]: analytic magnitude response of the continuous system
//   - [Cutoff]: frequency where the analytic gain falls to -3 dB
//   - [FrequencyResponse]: measured response from recorded input and output
//   - [MeasureGain]: drive a filter with a sine and measure its gain
//   - [Reference]: integrate the continuous system along a signal
//   - [Deviation]: compare a simulated run with the reference
//
// # Frequency Response
//
// The continuous model is
//
//	k2·y'' + k1·y' + y = x + k3·x'
//
// with transfer function H(s) = (1 + k3·s) / (k2·s² + k1·s + 1). The
// discrete filter tracks it closely while w·dt is small:
//
//	c := params.Compile()
//	fc := analysis.Cutoff(c)
//	g, _ := analysis.MeasureGain(params, fc, 1.0/240)
package analysis
