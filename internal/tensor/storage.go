package tensor

import (
	"sync/atomic"

	"k8s.io/klog/v2"
)

// storage is a reference-counted element buffer shared by every view that
// addresses it. Views retain it on creation and release it when done; the
// buffer is dropped when the last reference goes away.
type storage[T any] struct {
	data []T
	refs atomic.Int32
}

// newStorage allocates a zeroed buffer of n elements with one reference.
func newStorage[T any](n int) *storage[T] {
	return wrapStorage(make([]T, n))
}

// wrapStorage adopts data without copying, with one reference.
func wrapStorage[T any](data []T) *storage[T] {
	s := &storage[T]{data: data}
	s.refs.Store(1)
	return s
}

// retain increments the reference count.
func (s *storage[T]) retain() {
	s.refs.Add(1)
}

// release decrements the reference count and drops the buffer at zero.
func (s *storage[T]) release() {
	n := s.refs.Add(-1)
	switch {
	case n == 0:
		s.data = nil
	case n < 0:
		klog.Warningf("tensor: storage released %d more time(s) than retained", -n)
	}
}

// unique reports whether exactly one view references the buffer.
func (s *storage[T]) unique() bool {
	return s.refs.Load() == 1
}
