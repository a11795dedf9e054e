// Package vector provides value types usable with dynamo.Filter.
//
// mgl32.Vec2, mgl32.Vec3 and mgl32.Vec4 already satisfy dynamo.Vector and
// need no wrapper.
package vector

// Scalar is a float32 with vector-space methods.
type Scalar float32

func (s Scalar) Add(o Scalar) Scalar  { return s + o }
func (s Scalar) Sub(o Scalar) Scalar  { return s - o }
func (s Scalar) Mul(k float32) Scalar { return s * Scalar(k) }
