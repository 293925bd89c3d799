package tensor

import (
	"fmt"
	"iter"

	"github.com/born-ml/ndview/internal/shape"
	"github.com/pkg/errors"
)

// Dense is a view of elements: a Shape bound to a shared buffer at a base
// offset. Element (c0, c1, ...) lives at storage[offset + Shape.LinearIndex(c)].
//
// Views created by subscripting or transforms share the parent's buffer and
// never copy it. Writes through one view are visible through every view that
// overlaps it; concurrent writes to overlapping regions must be synchronized
// by the caller.
//
// Example:
//
//	m, _ := tensor.FromSlice([]float32{0, 1, 2, 3, 4, 5}, shape.RowMajor, 2, 3)
//	col, _ := m.Slice(1, 1, 2)  // shares m's buffer
//	v, _ := col.At(1, 0)        // 4
type Dense[T any] struct {
	storage *storage[T]
	shape   shape.Shape
	offset  int
}

// view creates a Dense that references st. The caller owns one reference.
func view[T any](st *storage[T], s shape.Shape, offset int) *Dense[T] {
	return &Dense[T]{storage: st, shape: s, offset: offset}
}

// Shape returns the view's shape.
func (d *Dense[T]) Shape() shape.Shape {
	return d.shape
}

// Offset returns the storage offset of the view's first element.
func (d *Dense[T]) Offset() int {
	return d.offset
}

// Rank returns the number of axes.
func (d *Dense[T]) Rank() int {
	return d.shape.Rank()
}

// Count returns the number of logical elements.
func (d *Dense[T]) Count() int {
	return d.shape.Count()
}

// DType returns the runtime tag of the element type.
func (d *Dense[T]) DType() DataType {
	return DataTypeOf[T]()
}

// IsSequential reports whether the view addresses a gapless run of storage.
func (d *Dense[T]) IsSequential() bool {
	return d.shape.IsSequential()
}

// IsDense reports whether the view addresses its storage exactly like a
// freshly allocated buffer: dense shape and no base offset.
func (d *Dense[T]) IsDense() bool {
	return d.shape.IsDense() && d.offset == 0
}

// Storage returns the whole underlying buffer, shared with every other view.
// WARNING: Direct access to underlying memory. Use with caution.
func (d *Dense[T]) Storage() []T {
	return d.storage.data
}

// Data returns the view's elements as one slice of the shared buffer when
// canonical traversal is contiguous. ok is false otherwise; use Elements or
// Copy for such views.
func (d *Dense[T]) Data() (data []T, ok bool) {
	if !d.shape.IsRowContiguous() {
		return nil, false
	}
	return d.storage.data[d.offset : d.offset+d.shape.Count()], true
}

// index converts coord to a storage index.
func (d *Dense[T]) index(coord []int) (int, error) {
	if len(coord) != d.shape.Rank() {
		return 0, errors.Wrapf(shape.ErrIndexOutOfBounds, "expected %d indices, got %d", d.shape.Rank(), len(coord))
	}
	off, err := d.shape.LinearIndex(shape.MakeDims(coord...))
	if err != nil {
		return 0, err
	}
	return d.offset + off, nil
}

// At returns the element at coord.
func (d *Dense[T]) At(coord ...int) (T, error) {
	i, err := d.index(coord)
	if err != nil {
		var zero T
		return zero, err
	}
	return d.storage.data[i], nil
}

// Set stores value at coord. On broadcast axes every repeated coordinate
// aliases the same cell.
func (d *Dense[T]) Set(value T, coord ...int) error {
	i, err := d.index(coord)
	if err != nil {
		return err
	}
	d.storage.data[i] = value
	return nil
}

// Elements yields the view's elements in canonical order.
func (d *Dense[T]) Elements() iter.Seq[T] {
	return func(yield func(T) bool) {
		data := d.storage.data
		for off := range d.shape.Offsets() {
			if !yield(data[d.offset+off]) {
				return
			}
		}
	}
}

// Values collects the view's elements in canonical order.
func (d *Dense[T]) Values() []T {
	out := make([]T, 0, d.shape.Count())
	for v := range d.Elements() {
		out = append(out, v)
	}
	return out
}

// Slice narrows axis to [lo, hi), sharing storage. The view's base offset
// grows by lo * stride(axis). Negative axes count from the end.
//
// Example:
//
//	m := tensor.Zeros[float32](shape.Of(4, 5))
//	rows, _ := m.Slice(0, 1, 3) // sequential: whole rows
//	cols, _ := m.Slice(1, 1, 3) // not sequential: skips row data
func (d *Dense[T]) Slice(axis, lo, hi int) (*Dense[T], error) {
	s, delta, err := d.shape.Sliced(axis, lo, hi)
	if err != nil {
		return nil, err
	}
	d.storage.retain()
	return view(d.storage, s, d.offset+delta), nil
}

// Subscript applies one Range per axis and returns the resulting view.
//
// Example:
//
//	rows, _ := m.Subscript(tensor.Through(1, 2), tensor.All())
func (d *Dense[T]) Subscript(ranges ...Range) (*Dense[T], error) {
	if len(ranges) != d.shape.Rank() {
		return nil, errors.Wrapf(shape.ErrIndexOutOfBounds, "expected %d ranges, got %d", d.shape.Rank(), len(ranges))
	}
	s, offset := d.shape, d.offset
	for axis, r := range ranges {
		lo, hi := r.bounds(s.Extents().At(axis))
		next, delta, err := s.Sliced(axis, lo, hi)
		if err != nil {
			return nil, err
		}
		s, offset = next, offset+delta
	}
	d.storage.retain()
	return view(d.storage, s, offset), nil
}

// Transposed returns a view with permuted axes (reversed if perm is empty).
func (d *Dense[T]) Transposed(perm ...int) (*Dense[T], error) {
	s, err := d.shape.Transposed(perm...)
	if err != nil {
		return nil, err
	}
	d.storage.retain()
	return view(d.storage, s, d.offset), nil
}

// Repeated returns a broadcast view of extents. Axes of extent 1 repeat their
// single element without copying.
func (d *Dense[T]) Repeated(extents ...int) (*Dense[T], error) {
	if len(extents) > shape.MaxRank {
		return nil, errors.Wrapf(shape.ErrIncompatibleShape, "rank %d exceeds %d", len(extents), shape.MaxRank)
	}
	s, err := d.shape.Repeated(shape.MakeDims(extents...))
	if err != nil {
		return nil, err
	}
	d.storage.retain()
	return view(d.storage, s, d.offset), nil
}

// Clone returns another view of the same elements sharing the buffer.
func (d *Dense[T]) Clone() *Dense[T] {
	d.storage.retain()
	return view(d.storage, d.shape, d.offset)
}

// Release drops this view's reference to the buffer. The view must not be
// used afterwards.
func (d *Dense[T]) Release() {
	d.storage.release()
}

// IsUnique reports whether this is the only view referencing the buffer.
func (d *Dense[T]) IsUnique() bool {
	return d.storage.unique()
}

// String returns a human-readable description of the view.
func (d *Dense[T]) String() string {
	return fmt.Sprintf("Dense[%s]%v offset %d", d.DType(), d.shape, d.offset)
}
