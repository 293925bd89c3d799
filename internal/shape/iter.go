package shape

import "iter"

// Enumerate yields every coordinate of s together with its position in the
// traversal. Axis 0 is outermost and the last axis innermost.
//
// Each range over the returned sequence starts from the first coordinate, so
// the sequence can be consumed any number of times, also concurrently.
func (s Shape) Enumerate() iter.Seq2[int, Dims] {
	return func(yield func(int, Dims) bool) {
		if s.count == 0 {
			return
		}
		r := s.extents.rank
		coord := Dims{rank: r}
		for flat := 0; ; flat++ {
			if !yield(flat, coord) {
				return
			}
			axis := r - 1
			for ; axis >= 0; axis-- {
				coord.v[axis]++
				if coord.v[axis] < s.extents.v[axis] {
					break
				}
				coord.v[axis] = 0
			}
			if axis < 0 {
				return
			}
		}
	}
}

// Indices yields every coordinate of s in canonical order.
func (s Shape) Indices() iter.Seq[Dims] {
	return func(yield func(Dims) bool) {
		for _, coord := range s.Enumerate() {
			if !yield(coord) {
				return
			}
		}
	}
}

// Offsets yields the storage offset of every coordinate of s in canonical
// order. The offset is updated incrementally instead of recomputed per step.
func (s Shape) Offsets() iter.Seq[int] {
	return func(yield func(int) bool) {
		if s.count == 0 {
			return
		}
		r := s.extents.rank
		var coord [MaxRank]int
		offset := 0
		for {
			if !yield(offset) {
				return
			}
			axis := r - 1
			for ; axis >= 0; axis-- {
				coord[axis]++
				offset += s.strides.v[axis]
				if coord[axis] < s.extents.v[axis] {
					break
				}
				offset -= coord[axis] * s.strides.v[axis]
				coord[axis] = 0
			}
			if axis < 0 {
				return
			}
		}
	}
}
