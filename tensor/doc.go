// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides N-dimensional shapes and strided dense views.
//
// # Overview
//
// A Shape maps coordinates to linear storage offsets through per-axis extents
// and strides. A Dense view binds a Shape to a reference-counted buffer at a
// base offset. This package provides:
//   - Fixed-capacity extent/stride vectors (Dims, up to MaxRank axes)
//   - Sequential and dense classification derived from extents and strides
//   - Zero-copy transforms: transpose, repeat (broadcast), range slicing
//   - Join along an axis and materialization of strided views
//   - Lazy, restartable index and offset sequences
//
// # Basic Usage
//
//	import "github.com/born-ml/ndview/tensor"
//
//	func main() {
//	    v := tensor.Indexed[float64](tensor.Of(2, 3, 4))
//
//	    t, _ := v.Transposed(2, 1, 0)   // view, no copy
//	    rows, _ := v.Slice(1, 1, 3)     // view, shares v's buffer
//	    dense := t.Copy()               // materialized, row-major
//	    _ = rows
//	    fmt.Println(dense.Array())
//	}
//
// # Sequential and Dense
//
// A Shape is sequential when its offsets cover a gapless run of storage cells
// exactly once, in some axis order. It is dense when, in addition, its strides
// are the canonical strides of its declared order:
//
//	m := tensor.Of(4, 5)
//	rows, _, _ := m.Sliced(0, 1, 3) // sequential
//	cols, _, _ := m.Sliced(1, 1, 3) // not sequential
//	tr, _ := m.Transposed()         // sequential, not dense
//
// # Memory Management
//
// Views created by Slice, Subscript, Transposed, Repeated and Clone share the
// buffer and hold a reference to it. Writes through aliased views are visible
// through all of them; concurrent writes to overlapping regions must be
// synchronized by the caller. Shapes themselves are immutable values.
package tensor
