package shape

import "github.com/pkg/errors"

// Errors returned by shape construction, offset mapping and transforms.
// Callers match them with errors.Is; context is attached with errors.Wrapf.
var (
	// ErrIndexOutOfBounds is returned when a coordinate or a subrange exceeds
	// the extent of an axis.
	ErrIndexOutOfBounds = errors.New("shape: index out of bounds")

	// ErrInvalidPermutation is returned by Transposed when the axis order is
	// not a bijection on 0..<rank.
	ErrInvalidPermutation = errors.New("shape: invalid permutation")

	// ErrIncompatibleShape is returned when extents do not match where
	// equality or broadcastability is required (Repeated, Joined).
	ErrIncompatibleShape = errors.New("shape: incompatible shape")

	// ErrInvalidAxis is returned when an axis specifier, after resolving
	// negative values, falls outside [0, rank).
	ErrInvalidAxis = errors.New("shape: invalid axis")

	// ErrInvalidShape is returned for negative extents or strides, or a rank
	// above MaxRank.
	ErrInvalidShape = errors.New("shape: invalid shape")
)
