package tensor

// Range selects part of one axis for Subscript.
type Range struct {
	lo, hi int
	whole  bool
}

// Between selects the half-open range [lo, hi).
func Between(lo, hi int) Range {
	return Range{lo: lo, hi: hi}
}

// Through selects the closed range [lo, hi].
func Through(lo, hi int) Range {
	return Range{lo: lo, hi: hi + 1}
}

// At selects the single position i, keeping the axis with extent 1.
func At(i int) Range {
	return Range{lo: i, hi: i + 1}
}

// All selects the whole axis.
func All() Range {
	return Range{whole: true}
}

func (r Range) bounds(extent int) (lo, hi int) {
	if r.whole {
		return 0, extent
	}
	return r.lo, r.hi
}
