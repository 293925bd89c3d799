package tensor

import (
	"reflect"

	"github.com/born-ml/ndview/internal/shape"
	"github.com/pkg/errors"
)

// NewDense binds s to data without copying. data must hold at least s.Span()
// elements; the returned view owns the only reference to it.
func NewDense[T any](s shape.Shape, data []T) (*Dense[T], error) {
	if len(data) < s.Span() {
		return nil, errors.Wrapf(shape.ErrIndexOutOfBounds, "%v needs %d elements, buffer has %d", s, s.Span(), len(data))
	}
	return view(wrapStorage(data), s, 0), nil
}

// FromSlice creates a dense view of extents in order from a copy of data.
func FromSlice[T any](data []T, order shape.Order, extents ...int) (*Dense[T], error) {
	s, err := shape.New(order, extents...)
	if err != nil {
		return nil, err
	}
	if s.Count() != len(data) {
		return nil, errors.Wrapf(shape.ErrIncompatibleShape, "extents %v require %d elements, but got %d",
			s.Extents(), s.Count(), len(data))
	}
	st := newStorage[T](len(data))
	copy(st.data, data)
	return view(st, s, 0), nil
}

// Zeros allocates s.Span() zeroed elements and binds s to them.
//
// Example:
//
//	m := tensor.Zeros[float32](shape.Of(3, 4))
func Zeros[T any](s shape.Shape) *Dense[T] {
	// Data is already zero-initialized by make()
	return view(newStorage[T](s.Span()), s, 0)
}

// Full allocates storage for s with every cell set to value.
func Full[T any](s shape.Shape, value T) *Dense[T] {
	d := Zeros[T](s)
	for i := range d.storage.data {
		d.storage.data[i] = value
	}
	return d
}

// Indexed allocates storage for s with cell i holding the value i.
//
// Example:
//
//	v := tensor.Indexed[float64](shape.Of(2, 3, 4)) // 0, 1, ..., 23
func Indexed[T Number](s shape.Shape) *Dense[T] {
	d := Zeros[T](s)
	for i := range d.storage.data {
		d.storage.data[i] = T(i)
	}
	return d
}

// Array builds a row-major dense view from nested Go slices or arrays whose
// leaves are T. Rank and extents are inferred from the nesting.
//
// Example:
//
//	m, _ := tensor.Array[float64]([][]float64{{1, 2, 3}, {4, 5, 6}}) // extents (2, 3)
func Array[T any](nested any) (*Dense[T], error) {
	return ArrayOf(nested, func(v T) T { return v })
}

// ArrayOf builds a row-major dense view of D from nested Go slices or arrays
// whose leaves are S, converting each leaf with convert.
//
// Example:
//
//	m, _ := tensor.ArrayOf([][]int{{1, 2}, {3, 4}}, tensor.Cast[int, float32])
func ArrayOf[S, D any](nested any, convert func(S) D) (*Dense[D], error) {
	if nested == nil {
		return nil, errors.Wrap(shape.ErrInvalidShape, "nil literal")
	}
	root := reflect.ValueOf(nested)
	leaf := reflect.TypeFor[S]()

	extents, err := inferExtents(root, leaf)
	if err != nil {
		return nil, err
	}
	s, err := shape.New(shape.RowMajor, extents...)
	if err != nil {
		return nil, err
	}

	out := make([]D, 0, s.Count())
	var walk func(v reflect.Value, axis int) error
	walk = func(v reflect.Value, axis int) error {
		if axis == len(extents) {
			out = append(out, convert(v.Interface().(S)))
			return nil
		}
		if v.Len() != extents[axis] {
			return errors.Wrapf(shape.ErrIncompatibleShape, "ragged literal: axis %d has length %d, want %d",
				axis, v.Len(), extents[axis])
		}
		for i := 0; i < v.Len(); i++ {
			if err := walk(v.Index(i), axis+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root, 0); err != nil {
		return nil, err
	}
	return view(wrapStorage(out), s, 0), nil
}

// inferExtents follows the first element of each nesting level down to leaf.
func inferExtents(v reflect.Value, leaf reflect.Type) ([]int, error) {
	var extents []int
	t := v.Type()
	for t != leaf {
		if t.Kind() != reflect.Slice && t.Kind() != reflect.Array {
			return nil, errors.Wrapf(shape.ErrInvalidShape, "element type %v, want %v", t, leaf)
		}
		if len(extents) == shape.MaxRank {
			return nil, errors.Wrapf(shape.ErrInvalidShape, "literal nests deeper than %d", shape.MaxRank)
		}
		n := 0
		if v.IsValid() {
			n = v.Len()
		}
		extents = append(extents, n)
		if n > 0 {
			v = v.Index(0)
		} else {
			v = reflect.Value{}
		}
		t = t.Elem()
	}
	return extents, nil
}
