package obj

import "math"

// MaxElements is the largest element count any Array may reach.
// Triangle indices are int32, so nothing past it is addressable.
const MaxElements = math.MaxInt32

const minArrayCapacity = 8

// Array is an append-only sequence whose growth can fail.
// Growth is 1.5x, capped at the element limit; a failed growth leaves
// the existing content untouched.
type Array[T any] struct {
	data  []T
	limit int
}

// NewArray returns an empty array holding at most limit elements.
// A limit <= 0 or above MaxElements means MaxElements.
func NewArray[T any](limit int) *Array[T] {
	if limit <= 0 || limit > MaxElements {
		limit = MaxElements
	}
	return &Array[T]{limit: limit}
}

// Len returns the number of elements.
func (a *Array[T]) Len() int {
	return len(a.data)
}

// Cap returns the current capacity.
func (a *Array[T]) Cap() int {
	return cap(a.data)
}

// At returns the element at i.
func (a *Array[T]) At(i int) T {
	return a.data[i]
}

// Push appends v, returning ErrAllocationFailed if the array cannot grow.
func (a *Array[T]) Push(v T) error {
	if len(a.data) == cap(a.data) {
		if err := a.grow(); err != nil {
			return err
		}
	}
	a.data = append(a.data, v)
	return nil
}

func (a *Array[T]) grow() error {
	n := cap(a.data)
	if n >= a.limit {
		return ErrAllocationFailed
	}

	newCap := minArrayCapacity
	if n > 0 {
		// n + n/2 cannot overflow while n < limit <= MaxInt32.
		newCap = n + n/2
		if newCap <= n {
			newCap = n + 1
		}
	}
	if newCap > a.limit {
		newCap = a.limit
	}

	grown := make([]T, len(a.data), newCap)
	copy(grown, a.data)
	a.data = grown
	return nil
}

// Release returns the content as a slice and leaves the array empty.
func (a *Array[T]) Release() []T {
	out := a.data
	a.data = nil
	return out
}
