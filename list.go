package pluginmap

import (
	"iter"
	"slices"
)

// List is the mutable sequence handed to parameters declared with ListOf.
type List[T any] struct {
	items []T
}

// NewList returns a list holding a copy of items.
func NewList[T any](items ...T) *List[T] {
	return &List[T]{items: slices.Clone(items)}
}

// Add appends v.
func (l *List[T]) Add(v T) {
	l.items = append(l.items, v)
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns element i. It panics if i is out of range.
func (l *List[T]) At(i int) T {
	return l.items[i]
}

// All iterates index/element pairs in order.
func (l *List[T]) All() iter.Seq2[int, T] {
	if l == nil {
		return func(func(int, T) bool) {}
	}
	return slices.All(l.items)
}

// Values returns a copy of the elements.
func (l *List[T]) Values() []T {
	if l == nil {
		return nil
	}
	return slices.Clone(l.items)
}
