package tensor

import "reflect"

// Array reads the view back as nested Go slices: [][]T for rank 2,
// [][][]T for rank 3 and so on. A rank-0 view yields a T.
func (d *Dense[T]) Array() any {
	r := d.shape.Rank()
	types := make([]reflect.Type, r+1)
	types[r] = reflect.TypeFor[T]()
	for i := r - 1; i >= 0; i-- {
		types[i] = reflect.SliceOf(types[i+1])
	}

	extents, strides := d.shape.Extents(), d.shape.Strides()
	data := d.storage.data
	var build func(axis, base int) reflect.Value
	build = func(axis, base int) reflect.Value {
		if axis == r {
			return reflect.ValueOf(&data[base]).Elem()
		}
		n := extents.At(axis)
		v := reflect.MakeSlice(types[axis], n, n)
		for i := 0; i < n; i++ {
			v.Index(i).Set(build(axis+1, base+i*strides.At(axis)))
		}
		return v
	}
	return build(0, d.offset).Interface()
}
