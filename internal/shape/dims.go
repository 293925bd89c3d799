// Package shape implements N-dimensional extents and strides: the mapping from
// coordinates to linear storage offsets, sequential/dense classification, view
// transforms (transpose, repeat, join) and lazy index sequences.
//
// Shapes are immutable values. Every transform returns a new Shape, so a Shape
// can be shared between goroutines without locking.
package shape

import (
	"fmt"
	"strings"
)

// MaxRank is the largest number of axes a Dims (and therefore a Shape) can hold.
const MaxRank = 8

// Dims is a fixed-capacity vector of per-axis integers: extents, strides or a
// coordinate. It is a plain value, so passing it around never allocates.
type Dims struct {
	rank int
	v    [MaxRank]int
}

// MakeDims builds a Dims from values.
// Panics if more than MaxRank values are given.
func MakeDims(values ...int) Dims {
	if len(values) > MaxRank {
		panic(fmt.Sprintf("shape: rank %d exceeds MaxRank %d", len(values), MaxRank))
	}
	var d Dims
	d.rank = len(values)
	copy(d.v[:], values)
	return d
}

// Filled returns a Dims of the given rank with every component set to value.
func Filled(rank, value int) Dims {
	if rank < 0 || rank > MaxRank {
		panic(fmt.Sprintf("shape: rank %d outside [0, %d]", rank, MaxRank))
	}
	d := Dims{rank: rank}
	for i := 0; i < rank; i++ {
		d.v[i] = value
	}
	return d
}

// Rank returns the number of components.
func (d Dims) Rank() int {
	return d.rank
}

// At returns component i.
func (d Dims) At(i int) int {
	if i < 0 || i >= d.rank {
		panic(fmt.Sprintf("shape: component %d out of range for rank %d", i, d.rank))
	}
	return d.v[i]
}

// With returns a copy of d with component i replaced by value.
func (d Dims) With(i, value int) Dims {
	if i < 0 || i >= d.rank {
		panic(fmt.Sprintf("shape: component %d out of range for rank %d", i, d.rank))
	}
	d.v[i] = value
	return d
}

// Slice copies the components out into a new slice.
func (d Dims) Slice() []int {
	out := make([]int, d.rank)
	copy(out, d.v[:d.rank])
	return out
}

// Product returns the product of all components (1 for rank 0).
func (d Dims) Product() int {
	n := 1
	for i := 0; i < d.rank; i++ {
		n *= d.v[i]
	}
	return n
}

// Sum returns the sum of all components.
func (d Dims) Sum() int {
	n := 0
	for i := 0; i < d.rank; i++ {
		n += d.v[i]
	}
	return n
}

// Equal reports whether both vectors have the same rank and components.
func (d Dims) Equal(o Dims) bool {
	return d == o
}

// String formats d as (a, b, c).
func (d Dims) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i := 0; i < d.rank; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d", d.v[i])
	}
	sb.WriteByte(')')
	return sb.String()
}

// RowMajorStrides returns the canonical strides of extents when the last axis
// varies fastest: stride[i] = product of extents after i.
func RowMajorStrides(extents Dims) Dims {
	strides := Dims{rank: extents.rank}
	n := 1
	for i := extents.rank - 1; i >= 0; i-- {
		strides.v[i] = n
		n *= extents.v[i]
	}
	return strides
}

// ColumnMajorStrides returns the canonical strides of extents when the first
// axis varies fastest: stride[i] = product of extents before i.
func ColumnMajorStrides(extents Dims) Dims {
	strides := Dims{rank: extents.rank}
	n := 1
	for i := 0; i < extents.rank; i++ {
		strides.v[i] = n
		n *= extents.v[i]
	}
	return strides
}
