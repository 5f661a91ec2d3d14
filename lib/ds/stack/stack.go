package stack

import (
	"github.com/pkg/errors"
)

var ErrStackEmpty = errors.New("stack is empty")

// Stack is a LIFO backed by a slice.
type Stack[T any] struct{ underlying []T }

func New[T any](capacity int) *Stack[T] {
	return &Stack[T]{underlying: make([]T, 0, capacity)}
}

func (s *Stack[T]) Len() int { return len(s.underlying) }

// Data returns a copy of the elements, bottom first.
func (s *Stack[T]) Data() []T {
	out := make([]T, len(s.underlying))
	copy(out, s.underlying)
	return out
}

func (s *Stack[T]) Push(data T) {
	s.underlying = append(s.underlying, data)
}

func (s *Stack[T]) Pop() (T, error) {
	var zero T
	if s.Len() == 0 {
		return zero, ErrStackEmpty
	}

	data := s.underlying[s.Len()-1]
	s.underlying[s.Len()-1] = zero
	s.underlying = s.underlying[:s.Len()-1]

	return data, nil
}

func (s *Stack[T]) Peek() (T, error) {
	if s.Len() == 0 {
		var zero T
		return zero, ErrStackEmpty
	}

	return s.underlying[s.Len()-1], nil
}
