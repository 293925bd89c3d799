// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/ndview/internal/parallel"
	"github.com/born-ml/ndview/internal/shape"
	"github.com/born-ml/ndview/internal/tensor"
)

// Type aliases for public API

// MaxRank is the largest supported number of axes.
const MaxRank = shape.MaxRank

// Dims is a fixed-capacity vector of per-axis extents, strides or coordinates.
type Dims = shape.Dims

// Shape maps N-dimensional coordinates to linear storage offsets.
type Shape = shape.Shape

// Order is the axis order used to assign canonical strides.
type Order = shape.Order

// Storage orders.
const (
	RowMajor    Order = shape.RowMajor
	ColumnMajor Order = shape.ColumnMajor
)

// Dense is a Shape bound to a shared, reference-counted buffer.
type Dense[T any] = tensor.Dense[T]

// Range selects part of one axis for Dense.Subscript.
type Range = tensor.Range

// Number is the constraint for numeric element types.
type Number = tensor.Number

// DataType represents runtime type information for element types.
type DataType = tensor.DataType

// Data type constants.
const (
	Unknown DataType = tensor.Unknown
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// ParallelConfig controls how large strided views are materialized.
type ParallelConfig = parallel.Config

// Errors.
var (
	ErrIndexOutOfBounds   = shape.ErrIndexOutOfBounds
	ErrInvalidPermutation = shape.ErrInvalidPermutation
	ErrIncompatibleShape  = shape.ErrIncompatibleShape
	ErrInvalidAxis        = shape.ErrInvalidAxis
	ErrInvalidShape       = shape.ErrInvalidShape
)

// MakeDims builds a Dims from values. Panics if more than MaxRank are given.
func MakeDims(values ...int) Dims {
	return shape.MakeDims(values...)
}

// NewShape creates a Shape with the canonical strides of order.
func NewShape(order Order, extents ...int) (Shape, error) {
	return shape.New(order, extents...)
}

// WithStrides creates a Shape with explicit strides.
func WithStrides(extents, strides Dims) (Shape, error) {
	return shape.WithStrides(extents, strides)
}

// Of creates a row-major Shape and panics on invalid extents.
func Of(extents ...int) Shape {
	return shape.Of(extents...)
}

// Scalar returns the rank-0 Shape.
func Scalar() Shape {
	return shape.Scalar()
}

// MakePositive resolves negative axis specifiers against rank.
func MakePositive(rank int, dims Dims) (Dims, error) {
	return shape.MakePositive(rank, dims)
}

// NewDense binds s to data without copying.
func NewDense[T any](s Shape, data []T) (*Dense[T], error) {
	return tensor.NewDense(s, data)
}

// FromSlice creates a dense view of extents in order from a copy of data.
func FromSlice[T any](data []T, order Order, extents ...int) (*Dense[T], error) {
	return tensor.FromSlice(data, order, extents...)
}

// Zeros allocates zeroed storage for s.
func Zeros[T any](s Shape) *Dense[T] {
	return tensor.Zeros[T](s)
}

// Full allocates storage for s filled with value.
func Full[T any](s Shape, value T) *Dense[T] {
	return tensor.Full(s, value)
}

// Indexed allocates storage for s with cell i holding i.
func Indexed[T Number](s Shape) *Dense[T] {
	return tensor.Indexed[T](s)
}

// Array builds a dense view from nested Go slices with leaves of type T.
func Array[T any](nested any) (*Dense[T], error) {
	return tensor.Array[T](nested)
}

// ArrayOf builds a dense view of D from nested slices of S using convert.
func ArrayOf[S, D any](nested any, convert func(S) D) (*Dense[D], error) {
	return tensor.ArrayOf(nested, convert)
}

// Cast converts a numeric value from S to D.
func Cast[S, D Number](v S) D {
	return tensor.Cast[S, D](v)
}

// Join concatenates views along axis into a new dense buffer.
func Join[T any](views []*Dense[T], axis int) (*Dense[T], error) {
	return tensor.Join(views, axis)
}

// CopyInto writes src into dst; both must have the same extents.
func CopyInto[T any](dst, src *Dense[T]) error {
	return tensor.CopyInto(dst, src)
}

// Between selects the half-open range [lo, hi).
func Between(lo, hi int) Range { return tensor.Between(lo, hi) }

// Through selects the closed range [lo, hi].
func Through(lo, hi int) Range { return tensor.Through(lo, hi) }

// At selects position i, keeping the axis.
func At(i int) Range { return tensor.At(i) }

// All selects the whole axis.
func All() Range { return tensor.All() }

// SetParallelConfig replaces the materialization configuration.
func SetParallelConfig(cfg ParallelConfig) {
	tensor.SetParallelConfig(cfg)
}

// DefaultParallelConfig returns defaults based on CPU count.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}
