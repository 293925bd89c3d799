package shape

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Order is the axis order used to assign canonical strides.
type Order int

// Storage orders.
const (
	RowMajor    Order = iota // Last axis varies fastest ("C").
	ColumnMajor              // First axis varies fastest ("F").
)

// String returns "C" for row-major and "F" for column-major.
func (o Order) String() string {
	switch o {
	case RowMajor:
		return "C"
	case ColumnMajor:
		return "F"
	default:
		return "unknown"
	}
}

// ParseOrder parses "C"/"row" or "F"/"column" (case-insensitive).
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "c", "row", "rowmajor", "row-major":
		return RowMajor, nil
	case "f", "col", "column", "columnmajor", "column-major":
		return ColumnMajor, nil
	default:
		return RowMajor, errors.Errorf("unknown storage order %q", s)
	}
}

// Strides returns the canonical strides of extents for the order.
func (o Order) Strides(extents Dims) Dims {
	if o == ColumnMajor {
		return ColumnMajorStrides(extents)
	}
	return RowMajorStrides(extents)
}

// Shape maps N-dimensional coordinates to linear storage offsets.
//
// A Shape never owns memory. Its sequential and dense flags are derived from
// the extents and strides when the Shape is built and cannot be asserted by
// the caller.
type Shape struct {
	extents    Dims
	strides    Dims
	order      Order
	count      int
	sequential bool
	dense      bool
}

// New creates a Shape with the canonical strides of order.
func New(order Order, extents ...int) (Shape, error) {
	if len(extents) > MaxRank {
		return Shape{}, errors.Wrapf(ErrInvalidShape, "rank %d exceeds %d", len(extents), MaxRank)
	}
	e := MakeDims(extents...)
	return newShape(e, order.Strides(e), order)
}

// WithStrides creates a row-major declared Shape with explicit strides.
// A stride of 0 makes its axis a broadcast axis.
func WithStrides(extents, strides Dims) (Shape, error) {
	if extents.Rank() != strides.Rank() {
		return Shape{}, errors.Wrapf(ErrInvalidShape, "extents %v and strides %v differ in rank", extents, strides)
	}
	return newShape(extents, strides, RowMajor)
}

// Of creates a row-major Shape and panics on invalid extents.
//
// Example:
//
//	s := shape.Of(2, 3, 4) // strides (12, 4, 1)
func Of(extents ...int) Shape {
	s, err := New(RowMajor, extents...)
	if err != nil {
		panic(err)
	}
	return s
}

// Scalar returns the rank-0 Shape: one element at offset 0.
func Scalar() Shape {
	return build(Dims{}, Dims{}, RowMajor)
}

func newShape(extents, strides Dims, order Order) (Shape, error) {
	for i := 0; i < extents.rank; i++ {
		if extents.v[i] < 0 {
			return Shape{}, errors.Wrapf(ErrInvalidShape, "axis %d: negative extent %d", i, extents.v[i])
		}
		if strides.v[i] < 0 {
			return Shape{}, errors.Wrapf(ErrInvalidShape, "axis %d: negative stride %d", i, strides.v[i])
		}
	}
	if err := checkSize(extents, strides); err != nil {
		return Shape{}, err
	}
	return build(extents, strides, order), nil
}

// checkSize rejects non-empty shapes whose element count or span does not fit
// in an int. Extents and strides must be non-negative.
func checkSize(extents, strides Dims) error {
	for i := 0; i < extents.rank; i++ {
		if extents.v[i] == 0 {
			return nil
		}
	}
	count := 1
	for i := 0; i < extents.rank; i++ {
		e := extents.v[i]
		if count > math.MaxInt/e {
			return errors.Wrapf(ErrInvalidShape, "extents %v: element count overflows int", extents)
		}
		count *= e
	}
	span := 1
	for i := 0; i < extents.rank; i++ {
		step, st := extents.v[i]-1, strides.v[i]
		if step == 0 || st == 0 {
			continue
		}
		if step > (math.MaxInt-span)/st {
			return errors.Wrapf(ErrInvalidShape, "extents %v, strides %v: span overflows int", extents, strides)
		}
		span += step * st
	}
	return nil
}

// build derives the cached properties. Inputs must already be valid.
func build(extents, strides Dims, order Order) Shape {
	s := Shape{
		extents: extents,
		strides: strides,
		order:   order,
		count:   extents.Product(),
	}
	s.sequential = isSequential(extents, strides)
	s.dense = s.sequential && matchesStrides(extents, strides, order.Strides(extents))
	return s
}

// isSequential reports whether the strides are the cumulative products of the
// extents in some axis order. Axes of extent 1 never move the offset and are
// ignored; a stride-0 axis of extent > 1 fails the check.
func isSequential(extents, strides Dims) bool {
	if extents.Product() == 0 {
		return true
	}
	var axes [MaxRank]int
	n := 0
	for i := 0; i < extents.rank; i++ {
		if extents.v[i] > 1 {
			axes[n] = i
			n++
		}
	}
	// ascending stride; n <= MaxRank so insertion sort is enough
	for i := 1; i < n; i++ {
		for j := i; j > 0 && strides.v[axes[j]] < strides.v[axes[j-1]]; j-- {
			axes[j], axes[j-1] = axes[j-1], axes[j]
		}
	}
	want := 1
	for _, a := range axes[:n] {
		if strides.v[a] != want {
			return false
		}
		want *= extents.v[a]
	}
	return true
}

// matchesStrides compares strides with canonical on every axis that has more
// than one element.
func matchesStrides(extents, strides, canonical Dims) bool {
	if extents.Product() == 0 {
		return true
	}
	for i := 0; i < extents.rank; i++ {
		if extents.v[i] > 1 && strides.v[i] != canonical.v[i] {
			return false
		}
	}
	return true
}

// Extents returns the per-axis sizes.
func (s Shape) Extents() Dims { return s.extents }

// Strides returns the per-axis strides in elements.
func (s Shape) Strides() Dims { return s.strides }

// Order returns the declared storage order.
func (s Shape) Order() Order { return s.order }

// Rank returns the number of axes.
func (s Shape) Rank() int { return s.extents.rank }

// Count returns the number of logical elements (0 if any extent is 0).
func (s Shape) Count() int { return s.count }

// IsEmpty reports whether the Shape has no elements.
func (s Shape) IsEmpty() bool { return s.count == 0 }

// IsSequential reports whether the Shape addresses a gapless, non-repeating
// run of storage cells, possibly in a permuted axis order.
func (s Shape) IsSequential() bool { return s.sequential }

// IsDense reports whether the Shape addresses storage exactly like a freshly
// allocated buffer of its extents in its declared order.
func (s Shape) IsDense() bool { return s.dense }

// HasBroadcast reports whether some axis with more than one element has
// stride 0, so that distinct coordinates share a storage cell.
func (s Shape) HasBroadcast() bool {
	for i := 0; i < s.extents.rank; i++ {
		if s.extents.v[i] > 1 && s.strides.v[i] == 0 {
			return true
		}
	}
	return false
}

// MayOverlap reports whether two coordinates of s might map to the same
// offset. A false result guarantees distinct offsets; a true result may be
// conservative for interleaved strides.
func (s Shape) MayOverlap() bool {
	if s.count == 0 || s.sequential {
		return false
	}
	var axes [MaxRank]int
	n := 0
	for i := 0; i < s.extents.rank; i++ {
		if s.extents.v[i] > 1 {
			axes[n] = i
			n++
		}
	}
	for i := 1; i < n; i++ {
		for j := i; j > 0 && s.strides.v[axes[j]] < s.strides.v[axes[j-1]]; j-- {
			axes[j], axes[j-1] = axes[j-1], axes[j]
		}
	}
	// every stride must clear the largest offset reachable by the smaller axes
	reach := 0
	for _, a := range axes[:n] {
		if s.strides.v[a] <= reach {
			return true
		}
		reach += (s.extents.v[a] - 1) * s.strides.v[a]
	}
	return false
}

// IsRowContiguous reports whether canonical traversal (axis 0 outermost)
// visits storage as one contiguous increasing run. Such shapes can be copied
// with a single slice copy.
func (s Shape) IsRowContiguous() bool {
	return s.sequential && matchesStrides(s.extents, s.strides, RowMajorStrides(s.extents))
}

// Span returns the number of storage cells the Shape reaches: the largest
// offset plus one, or 0 for an empty Shape.
func (s Shape) Span() int {
	if s.count == 0 {
		return 0
	}
	span := 1
	for i := 0; i < s.extents.rank; i++ {
		span += (s.extents.v[i] - 1) * s.strides.v[i]
	}
	return span
}

// LinearIndex returns the storage offset of coord.
//
// Every component must satisfy 0 <= coord[i] < extents[i].
func (s Shape) LinearIndex(coord Dims) (int, error) {
	if coord.rank != s.extents.rank {
		return 0, errors.Wrapf(ErrIndexOutOfBounds, "coordinate rank %d, shape rank %d", coord.rank, s.extents.rank)
	}
	offset := 0
	for i := 0; i < coord.rank; i++ {
		c := coord.v[i]
		if c < 0 || c >= s.extents.v[i] {
			return 0, errors.Wrapf(ErrIndexOutOfBounds, "axis %d: index %d, extent %d", i, c, s.extents.v[i])
		}
		offset += c * s.strides.v[i]
	}
	return offset, nil
}

// Unravel returns the coordinate at position flat of the canonical traversal.
// flat must be in [0, Count()).
func (s Shape) Unravel(flat int) Dims {
	coord := Dims{rank: s.extents.rank}
	for i := s.extents.rank - 1; i >= 0; i-- {
		e := s.extents.v[i]
		coord.v[i] = flat % e
		flat /= e
	}
	return coord
}

// OffsetAt returns the storage offset of the coordinate at position flat of
// the canonical traversal. flat must be in [0, Count()).
func (s Shape) OffsetAt(flat int) int {
	offset := 0
	for i := s.extents.rank - 1; i >= 0; i-- {
		e := s.extents.v[i]
		offset += (flat % e) * s.strides.v[i]
		flat /= e
	}
	return offset
}

// Equal reports whether both Shapes have the same extents and strides, that
// is, whether they address storage identically.
func (s Shape) Equal(o Shape) bool {
	return s.extents == o.extents && s.strides == o.strides
}

// String returns a human-readable description.
func (s Shape) String() string {
	return fmt.Sprintf("Shape(extents: %v, strides: %v)", s.extents, s.strides)
}
