package shape

import (
	"math"

	"github.com/pkg/errors"
)

// Transposed returns the Shape with its axes relabeled by perm:
// extents[i] = s.extents[perm[i]], strides[i] = s.strides[perm[i]].
// With no arguments the axis order is reversed.
//
// Example:
//
//	s := shape.Of(2, 3, 4)         // strides (12, 4, 1)
//	t, _ := s.Transposed(2, 1, 0)  // extents (4, 3, 2), strides (1, 4, 12)
func (s Shape) Transposed(perm ...int) (Shape, error) {
	r := s.extents.rank
	if len(perm) == 0 {
		e, st := Dims{rank: r}, Dims{rank: r}
		for i := 0; i < r; i++ {
			e.v[i] = s.extents.v[r-1-i]
			st.v[i] = s.strides.v[r-1-i]
		}
		return build(e, st, s.order), nil
	}
	if len(perm) != r {
		return Shape{}, errors.Wrapf(ErrInvalidPermutation, "%v has %d axes, shape rank is %d", perm, len(perm), r)
	}
	var seen [MaxRank]bool
	e, st := Dims{rank: r}, Dims{rank: r}
	for i, p := range perm {
		if p < 0 || p >= r || seen[p] {
			return Shape{}, errors.Wrapf(ErrInvalidPermutation, "%v is not a permutation of 0..%d", perm, r-1)
		}
		seen[p] = true
		e.v[i] = s.extents.v[p]
		st.v[i] = s.strides.v[p]
	}
	return build(e, st, s.order), nil
}

// InversePermutation returns q such that q[perm[i]] = i.
func InversePermutation(perm ...int) ([]int, error) {
	inv := make([]int, len(perm))
	seen := make([]bool, len(perm))
	for i, p := range perm {
		if p < 0 || p >= len(perm) || seen[p] {
			return nil, errors.Wrapf(ErrInvalidPermutation, "%v", perm)
		}
		seen[p] = true
		inv[p] = i
	}
	return inv, nil
}

// ColumnMajor returns the Shape with the same extents and canonical
// column-major strides. It re-interprets storage; no data moves.
func (s Shape) ColumnMajor() Shape {
	return build(s.extents, ColumnMajorStrides(s.extents), ColumnMajor)
}

// RowMajor returns the Shape with the same extents and canonical row-major
// strides.
func (s Shape) RowMajor() Shape {
	return build(s.extents, RowMajorStrides(s.extents), RowMajor)
}

// Contiguous returns the layout of a freshly allocated buffer with the same
// extents in the declared order.
func (s Shape) Contiguous() Shape {
	return build(s.extents, s.order.Strides(s.extents), s.order)
}

// Repeated broadcasts the Shape to extents to. Each axis must either already
// have the target extent or have extent 1, in which case its stride becomes 0.
func (s Shape) Repeated(to Dims) (Shape, error) {
	if to.rank != s.extents.rank {
		return Shape{}, errors.Wrapf(ErrIncompatibleShape, "cannot repeat rank %d shape to rank %d extents %v",
			s.extents.rank, to.rank, to)
	}
	e, st := s.extents, s.strides
	for i := 0; i < to.rank; i++ {
		want := to.v[i]
		switch {
		case want < 0:
			return Shape{}, errors.Wrapf(ErrInvalidShape, "axis %d: negative extent %d", i, want)
		case want == s.extents.v[i]:
		case s.extents.v[i] == 1:
			e.v[i] = want
			st.v[i] = 0
		default:
			return Shape{}, errors.Wrapf(ErrIncompatibleShape, "axis %d: cannot repeat extent %d to %d",
				i, s.extents.v[i], want)
		}
	}
	return newShape(e, st, s.order)
}

// Joined returns the Shape of the concatenation of s and others along axis.
// All inputs must have the same rank and the same extents on every other axis.
// The result is contiguous in the declared order of s; filling it is left to
// the storage layer.
func (s Shape) Joined(others []Shape, axis int) (Shape, error) {
	axis, err := s.Axis(axis)
	if err != nil {
		return Shape{}, err
	}
	e := s.extents
	for j, o := range others {
		if o.extents.rank != e.rank {
			return Shape{}, errors.Wrapf(ErrIncompatibleShape, "join input %d has rank %d, want %d",
				j+1, o.extents.rank, e.rank)
		}
		for i := 0; i < e.rank; i++ {
			if i != axis && o.extents.v[i] != s.extents.v[i] {
				return Shape{}, errors.Wrapf(ErrIncompatibleShape, "join input %d: axis %d extent %d, want %d",
					j+1, i, o.extents.v[i], s.extents.v[i])
			}
		}
		if e.v[axis] > math.MaxInt-o.extents.v[axis] {
			return Shape{}, errors.Wrapf(ErrInvalidShape, "join along axis %d: extent overflows int", axis)
		}
		e.v[axis] += o.extents.v[axis]
	}
	return newShape(e, s.order.Strides(e), s.order)
}

// Sliced narrows axis to [lo, hi). It returns the narrowed Shape and the
// storage offset of its first element relative to s.
func (s Shape) Sliced(axis, lo, hi int) (Shape, int, error) {
	axis, err := s.Axis(axis)
	if err != nil {
		return Shape{}, 0, err
	}
	if lo < 0 || lo > hi || hi > s.extents.v[axis] {
		return Shape{}, 0, errors.Wrapf(ErrIndexOutOfBounds, "axis %d: range [%d, %d) outside extent %d",
			axis, lo, hi, s.extents.v[axis])
	}
	e := s.extents.With(axis, hi-lo)
	return build(e, s.strides, s.order), lo * s.strides.v[axis], nil
}

// Axis resolves a possibly negative axis against the rank of s.
func (s Shape) Axis(axis int) (int, error) {
	r := s.extents.rank
	a := axis
	if a < 0 {
		a += r
	}
	if a < 0 || a >= r {
		return 0, errors.Wrapf(ErrInvalidAxis, "axis %d for rank %d", axis, r)
	}
	return a, nil
}

// MakePositive resolves negative axis specifiers in dims against the rank of s.
func (s Shape) MakePositive(dims Dims) (Dims, error) {
	return MakePositive(s.extents.rank, dims)
}

// MakePositive resolves negative axis specifiers against rank: a negative
// d becomes rank + d. Values still outside [0, rank) fail with ErrInvalidAxis.
//
// Example:
//
//	d, _ := shape.MakePositive(2, shape.MakeDims(1, -1)) // (1, 1)
func MakePositive(rank int, dims Dims) (Dims, error) {
	out := dims
	for i := 0; i < dims.rank; i++ {
		d := dims.v[i]
		if d < 0 {
			d += rank
		}
		if d < 0 || d >= rank {
			return Dims{}, errors.Wrapf(ErrInvalidAxis, "component %d: axis %d for rank %d", i, dims.v[i], rank)
		}
		out.v[i] = d
	}
	return out, nil
}
