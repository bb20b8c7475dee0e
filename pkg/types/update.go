package types

// Update carries either a literal next value or a transform of the
// previous value. Grid engines batch state transitions and pass updater
// functions that must observe the latest stored value, so setters resolve
// an Update against the current value at call time rather than against a
// captured snapshot.
type Update[T any] struct {
	value   T
	updater func(T) T
}

// Value wraps a literal next value.
func Value[T any](v T) Update[T] {
	return Update[T]{value: v}
}

// Updater wraps a transform of the previous value.
func Updater[T any](f func(T) T) Update[T] {
	return Update[T]{updater: f}
}

// Resolve returns the next value given the current one: the transform's
// result for an Updater, the literal for a Value.
func (u Update[T]) Resolve(prev T) T {
	if u.updater != nil {
		return u.updater(prev)
	}
	return u.value
}
