package dynamo

// Vector is the set of vector-space operations the filter needs from its
// value type. The zero value of T must be the additive identity, and T must
// have value semantics.
type Vector[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(float32) T
}
