package tensor

import (
	"testing"

	"github.com/born-ml/ndview/internal/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustFromSlice creates a row-major view, failing the test on error.
func mustFromSlice[T any](t *testing.T, data []T, extents ...int) *Dense[T] {
	t.Helper()
	d, err := FromSlice(data, shape.RowMajor, extents...)
	require.NoError(t, err)
	return d
}

func TestSequentialViews(t *testing.T) {
	t.Run("vector views are always sequential", func(t *testing.T) {
		v := Indexed[float32](shape.Of(6))
		sub, err := v.Subscript(Through(1, 2))
		require.NoError(t, err)
		assert.True(t, sub.IsSequential())
		assert.Equal(t, []float32{1, 2}, sub.Values())
	})

	t.Run("a batch of rows is sequential", func(t *testing.T) {
		m := Zeros[float32](shape.Of(4, 5))
		rows, err := m.Subscript(Through(1, 2), All())
		require.NoError(t, err)
		assert.True(t, rows.IsSequential())
		assert.Equal(t, 5, rows.Offset())
		assert.False(t, rows.IsDense(), "offset view is not a fresh buffer")
	})

	t.Run("a batch of columns is not sequential", func(t *testing.T) {
		m := Zeros[float32](shape.Of(4, 5))
		cols, err := m.Subscript(All(), Through(1, 2))
		require.NoError(t, err)
		assert.False(t, cols.IsSequential())
		assert.Equal(t, 1, cols.Offset())
	})
}

func TestSliceSharesStorage(t *testing.T) {
	m := mustFromSlice(t, []int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, 3, 4)

	col, err := m.Slice(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, shape.MakeDims(3, 1), col.Shape().Extents())
	assert.Equal(t, []int32{2, 6, 10}, col.Values())

	require.NoError(t, col.Set(-1, 1, 0))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(-1), v)

	last, err := m.Slice(-1, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, []int32{3, 7, 11}, last.Values())

	t.Run("nested slices accumulate offsets", func(t *testing.T) {
		rows, err := m.Slice(0, 1, 3)
		require.NoError(t, err)
		inner, err := rows.Slice(1, 1, 3)
		require.NoError(t, err)
		assert.Equal(t, 5, inner.Offset())
		assert.Equal(t, []int32{5, -1, 9, 10}, inner.Values())
	})

	t.Run("out of bounds", func(t *testing.T) {
		for _, r := range [][3]int{{0, -1, 1}, {0, 2, 1}, {0, 0, 4}, {1, 3, 5}} {
			_, err := m.Slice(r[0], r[1], r[2])
			require.ErrorIs(t, err, shape.ErrIndexOutOfBounds, "slice %v", r)
		}
		_, err := m.Slice(2, 0, 1)
		require.ErrorIs(t, err, shape.ErrInvalidAxis)
		_, err = m.Subscript(All())
		require.ErrorIs(t, err, shape.ErrIndexOutOfBounds)
	})

	t.Run("empty range", func(t *testing.T) {
		e, err := m.Slice(0, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, 0, e.Count())
		assert.Empty(t, e.Values())
	})
}

func TestAtSet(t *testing.T) {
	m := Zeros[float64](shape.Of(2, 3))
	require.NoError(t, m.Set(7.5, 1, 2))

	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 7.5, v)
	assert.Equal(t, 7.5, m.Storage()[5])

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, shape.ErrIndexOutOfBounds)
	_, err = m.At(0, 3)
	require.ErrorIs(t, err, shape.ErrIndexOutOfBounds)
	_, err = m.At(0)
	require.ErrorIs(t, err, shape.ErrIndexOutOfBounds)
	require.ErrorIs(t, m.Set(1, -1, 0), shape.ErrIndexOutOfBounds)
}

func TestTransposedView(t *testing.T) {
	m := mustFromSlice(t, []int64{1, 2, 3, 4, 5, 6}, 2, 3)
	tr, err := m.Transposed()
	require.NoError(t, err)

	assert.Equal(t, shape.MakeDims(3, 2), tr.Shape().Extents())
	assert.Equal(t, []int64{1, 4, 2, 5, 3, 6}, tr.Values())
	assert.True(t, tr.IsSequential())
	assert.False(t, tr.IsDense())

	_, ok := tr.Data()
	assert.False(t, ok)

	_, err = m.Transposed(0, 0)
	require.ErrorIs(t, err, shape.ErrInvalidPermutation)
}

func TestRepeatedView(t *testing.T) {
	row := mustFromSlice(t, []int32{1, 2, 3}, 1, 3)
	r, err := row.Repeated(2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3, 1, 2, 3}, r.Values())
	assert.False(t, r.IsSequential())

	require.NoError(t, r.Set(9, 1, 0))
	v, err := r.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(9), v, "broadcast coordinates alias one cell")

	_, err = row.Repeated(2, 4)
	require.ErrorIs(t, err, shape.ErrIncompatibleShape)
}

func TestData(t *testing.T) {
	m := Indexed[int32](shape.Of(4, 5))
	rows, err := m.Slice(0, 1, 3)
	require.NoError(t, err)

	data, ok := rows.Data()
	require.True(t, ok)
	assert.Equal(t, []int32{5, 6, 7, 8, 9, 10, 11, 12, 13, 14}, data)

	cols, err := m.Slice(1, 0, 2)
	require.NoError(t, err)
	_, ok = cols.Data()
	assert.False(t, ok)
}

func TestEarlyTerminatedElements(t *testing.T) {
	m := Indexed[int64](shape.Of(3, 3))
	var got []int64
	for v := range m.Elements() {
		if v == 4 {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int64{0, 1, 2, 3}, got)
	assert.Len(t, m.Values(), 9)
}

func TestReferenceCounting(t *testing.T) {
	m := Zeros[float32](shape.Of(2, 2))
	assert.True(t, m.IsUnique())

	c := m.Clone()
	assert.False(t, m.IsUnique())

	sub, err := c.Slice(0, 0, 1)
	require.NoError(t, err)

	sub.Release()
	c.Release()
	assert.True(t, m.IsUnique())
	assert.NotNil(t, m.Storage())

	m.Release()
	assert.Nil(t, m.Storage())
}

func TestDenseString(t *testing.T) {
	m := Zeros[float32](shape.Of(2, 3))
	assert.Equal(t, "Dense[float32]Shape(extents: (2, 3), strides: (3, 1)) offset 0", m.String())
	assert.Equal(t, Float32, m.DType())
}
