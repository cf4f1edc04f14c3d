package history

// Stack holds previous values of one component, oldest at the bottom.
type Stack[T any] struct {
	values []T
}

// Push adds a value on top.
func (s *Stack[T]) Push(v T) {
	s.values = append(s.values, v)
}

// Pop removes and returns the top value.
// Returns false if the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.values) == 0 {
		return zero, false
	}
	top := s.values[len(s.values)-1]
	s.values[len(s.values)-1] = zero
	s.values = s.values[:len(s.values)-1]
	return top, true
}

// Bottom returns the earliest stored value without removing it.
func (s *Stack[T]) Bottom() (T, bool) {
	var zero T
	if len(s.values) == 0 {
		return zero, false
	}
	return s.values[0], true
}

// Len returns the number of stored values.
func (s *Stack[T]) Len() int {
	return len(s.values)
}

// Values returns a copy of the stored values, bottom first.
func (s *Stack[T]) Values() []T {
	out := make([]T, len(s.values))
	copy(out, s.values)
	return out
}
