package tensor

import (
	"sync/atomic"

	"github.com/born-ml/ndview/internal/parallel"
	"github.com/born-ml/ndview/internal/shape"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var parallelConfig atomic.Pointer[parallel.Config]

func init() {
	cfg := parallel.DefaultConfig()
	parallelConfig.Store(&cfg)
}

// SetParallelConfig replaces the configuration used to materialize large
// strided views. Safe to call concurrently with materialization.
func SetParallelConfig(cfg parallel.Config) {
	parallelConfig.Store(&cfg)
}

// ParallelConfig returns the configuration used to materialize views.
func ParallelConfig() parallel.Config {
	return *parallelConfig.Load()
}

// Copy materializes the view into a new buffer laid out densely in the
// view's declared order. Broadcast axes are expanded.
func (d *Dense[T]) Copy() *Dense[T] {
	s := d.shape.Contiguous()
	out := view(newStorage[T](s.Count()), s, 0)
	copyElements(out, d)
	return out
}

// Join concatenates views along axis into a new dense buffer, in the declared
// order of the first view. Views must match on every other axis.
//
// Example:
//
//	a, _ := tensor.FromSlice([]int32{1, 2, 3, 4}, shape.RowMajor, 2, 2)
//	b, _ := tensor.FromSlice([]int32{5, 6}, shape.RowMajor, 2, 1)
//	c, _ := tensor.Join([]*tensor.Dense[int32]{a, b}, 1) // [[1 2 5] [3 4 6]]
func Join[T any](views []*Dense[T], axis int) (*Dense[T], error) {
	if len(views) == 0 {
		return nil, errors.Wrap(shape.ErrIncompatibleShape, "join needs at least one view")
	}
	first := views[0].shape
	others := make([]shape.Shape, len(views)-1)
	for i, v := range views[1:] {
		others[i] = v.shape
	}
	joined, err := first.Joined(others, axis)
	if err != nil {
		return nil, err
	}
	axis, _ = first.Axis(axis) // validated by Joined

	klog.V(2).Infof("tensor: joining %d views along axis %d into %v", len(views), axis, joined.Extents())

	out := view(newStorage[T](joined.Count()), joined, 0)
	lo := 0
	for _, v := range views {
		hi := lo + v.shape.Extents().At(axis)
		part, delta, err := joined.Sliced(axis, lo, hi)
		if err != nil {
			return nil, err
		}
		copyElements(view(out.storage, part, delta), v)
		lo = hi
	}
	return out, nil
}

// CopyInto writes the elements of src into dst in canonical order. Both views
// must have the same extents; dst may be any view, including a sub-range of a
// larger buffer, but not a broadcast view.
func CopyInto[T any](dst, src *Dense[T]) error {
	if !dst.shape.Extents().Equal(src.shape.Extents()) {
		return errors.Wrapf(shape.ErrIncompatibleShape, "copy %v into %v", src.shape.Extents(), dst.shape.Extents())
	}
	if dst.shape.HasBroadcast() {
		return errors.Wrapf(shape.ErrIncompatibleShape, "copy into broadcast view %v", dst.shape)
	}
	copyElements(dst, src)
	return nil
}

// copyElements assumes equal extents.
func copyElements[T any](dst, src *Dense[T]) {
	n := src.shape.Count()
	if n == 0 {
		return
	}
	dd, sd := dst.storage.data, src.storage.data
	if dst.shape.IsRowContiguous() && src.shape.IsRowContiguous() {
		klog.V(2).Infof("tensor: contiguous copy of %d elements", n)
		copy(dd[dst.offset:dst.offset+n], sd[src.offset:src.offset+n])
		return
	}

	klog.V(2).Infof("tensor: strided copy of %d elements from %v to %v", n, src.shape, dst.shape)
	ds, ss := dst.shape, src.shape
	cfg := ParallelConfig()
	if ds.MayOverlap() {
		// writes to shared cells must land in canonical order
		cfg = parallel.Sequential()
	}
	parallel.ForRange(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dd[dst.offset+ds.OffsetAt(i)] = sd[src.offset+ss.OffsetAt(i)]
		}
	}, cfg)
}
