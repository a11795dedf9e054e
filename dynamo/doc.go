// Package dynamo provides a second-order dynamics filter for smoothing values
// toward a moving target.
//
// A [Filter] is tuned with three physical parameters:
//
//   - frequency: natural response speed in Hz
//   - damping: 0 oscillates forever, 1 is critically damped, >1 is overdamped
//   - response: sign and size of the anticipation at the onset of a target change
//
// and advanced once per frame with the elapsed time and the latest target.
// The filter is generic over any value type implementing [Vector]: scalars,
// mgl32 vectors, colors, rotation vectors.
//
// # Example
//
//	f, err := dynamo.New(2, 0.5, 1, vector.Scalar(0))
//	if err != nil {
//	    return err
//	}
//	for frame := range frames {
//	    y, err := f.Update(frame.Dt, frame.Target, nil)
//	    ...
//	}
//
// # Stability
//
// Coefficients are recomputed every step by [Stabilize]. Small steps use the
// base coefficients with k2 clamped, large steps use coefficients obtained by
// matching the poles of the continuous system, so the filter stays stable for
// any positive dt.
//
// # Thread Safety
//
// A Filter is a plain mutable value and is NOT safe for concurrent use.
// Calls on one instance must be made in temporal order.
package dynamo
