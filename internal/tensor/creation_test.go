package tensor

import (
	"testing"

	"github.com/born-ml/ndview/internal/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDense(t *testing.T) {
	s, err := shape.WithStrides(shape.MakeDims(2, 3), shape.MakeDims(6, 2))
	require.NoError(t, err)

	buf := make([]int32, 11)
	for i := range buf {
		buf[i] = int32(i)
	}
	d, err := NewDense(s, buf)
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 2, 4, 6, 8, 10}, d.Values())

	buf[4] = 40
	v, err := d.At(0, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(40), v, "NewDense binds without copying")

	_, err = NewDense(s, buf[:10])
	require.ErrorIs(t, err, shape.ErrIndexOutOfBounds)
}

func TestFromSlice(t *testing.T) {
	data := []float32{1, 2, 3, 4, 5, 6}
	d, err := FromSlice(data, shape.ColumnMajor, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 3, 5}, {2, 4, 6}}, d.Array())

	data[0] = 100
	v, err := d.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(1), v, "FromSlice copies its input")

	_, err = FromSlice(data, shape.RowMajor, 4, 2)
	require.ErrorIs(t, err, shape.ErrIncompatibleShape)

	_, err = FromSlice(data, shape.RowMajor, -6)
	require.ErrorIs(t, err, shape.ErrInvalidShape)
}

func TestFullAndIndexed(t *testing.T) {
	f := Full(shape.Of(2, 2), true)
	assert.Equal(t, []bool{true, true, true, true}, f.Values())

	idx := Indexed[uint8](shape.Of(5))
	assert.Equal(t, []uint8{0, 1, 2, 3, 4}, idx.Values())

	s := Zeros[float64](shape.Scalar())
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, 0.0, s.Array())
}

func TestArray(t *testing.T) {
	t.Run("infers extents", func(t *testing.T) {
		d, err := Array[float64]([][][]float64{
			{{1, 2}, {3, 4}, {5, 6}},
			{{7, 8}, {9, 10}, {11, 12}},
		})
		require.NoError(t, err)
		assert.Equal(t, shape.MakeDims(2, 3, 2), d.Shape().Extents())
		assert.True(t, d.IsDense())
		assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, d.Storage())
	})

	t.Run("fixed size arrays", func(t *testing.T) {
		d, err := Array[int32]([2][3]int32{{1, 2, 3}, {4, 5, 6}})
		require.NoError(t, err)
		assert.Equal(t, shape.MakeDims(2, 3), d.Shape().Extents())
	})

	t.Run("scalar", func(t *testing.T) {
		d, err := Array[int64](int64(42))
		require.NoError(t, err)
		assert.Equal(t, 0, d.Rank())
		assert.Equal(t, int64(42), d.Array())
	})

	t.Run("empty", func(t *testing.T) {
		d, err := Array[float32]([][]float32{})
		require.NoError(t, err)
		assert.Equal(t, shape.MakeDims(0, 0), d.Shape().Extents())
		assert.Equal(t, 0, d.Count())
	})

	t.Run("ragged", func(t *testing.T) {
		_, err := Array[int32]([][]int32{{1, 2}, {3}})
		require.ErrorIs(t, err, shape.ErrIncompatibleShape)
	})

	t.Run("wrong leaf type", func(t *testing.T) {
		_, err := Array[float32]([][]int{{1}})
		require.ErrorIs(t, err, shape.ErrInvalidShape)

		_, err = Array[float32](nil)
		require.ErrorIs(t, err, shape.ErrInvalidShape)
	})
}

func TestArrayOfConversions(t *testing.T) {
	t.Run("integer widening", func(t *testing.T) {
		d, err := ArrayOf([][]int32{{1, 2}, {3, 4}}, Cast[int32, int64])
		require.NoError(t, err)
		assert.Equal(t, [][]int64{{1, 2}, {3, 4}}, d.Array())
	})

	t.Run("float narrowing", func(t *testing.T) {
		d, err := ArrayOf([]float64{0.5, 1.25}, Cast[float64, float32])
		require.NoError(t, err)
		assert.Equal(t, []float32{0.5, 1.25}, d.Values())
	})

	t.Run("float widening", func(t *testing.T) {
		d, err := ArrayOf([]float32{2.5}, Cast[float32, float64])
		require.NoError(t, err)
		assert.Equal(t, []float64{2.5}, d.Values())
	})

	t.Run("int to float", func(t *testing.T) {
		d, err := ArrayOf([]int{1, 2, 3}, Cast[int, float32])
		require.NoError(t, err)
		assert.Equal(t, Float32, d.DType())
		assert.Equal(t, []float32{1, 2, 3}, d.Values())
	})

	t.Run("custom conversion", func(t *testing.T) {
		d, err := ArrayOf([]int{0, 3}, func(v int) bool { return v != 0 })
		require.NoError(t, err)
		assert.Equal(t, []bool{false, true}, d.Values())
	})
}

func TestDataTypes(t *testing.T) {
	for _, dt := range []DataType{Float32, Float64, Int32, Int64, Uint8, Bool} {
		parsed, err := ParseDataType(dt.String())
		require.NoError(t, err)
		assert.Equal(t, dt, parsed)
		assert.Positive(t, dt.Size())
	}
	_, err := ParseDataType("complex64")
	require.Error(t, err)

	assert.Equal(t, Int64, DataTypeOf[int64]())
	assert.Equal(t, Unknown, DataTypeOf[string]())
	assert.Equal(t, 0, Unknown.Size())
}
