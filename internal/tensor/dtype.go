// Package tensor binds shapes to element storage: dense views that share a
// reference-counted buffer, range subscripting, materialization of strided
// views, and construction from flat or nested Go data.
package tensor

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Number is the constraint for numeric element types that can be converted
// into one another with Cast and filled by Indexed.
type Number interface {
	constraints.Integer | constraints.Float
}

// DataType represents runtime type information for element types.
type DataType int

// Supported data types.
const (
	Unknown DataType = iota
	Float32
	Float64
	Int32
	Int64
	Uint8
	Bool
)

// Size returns the byte size of the data type, or 0 for Unknown.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8, Bool:
		return 1
	default:
		return 0
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// ParseDataType parses a data type name such as "float32".
func ParseDataType(s string) (DataType, error) {
	switch strings.ToLower(s) {
	case "float32", "f32":
		return Float32, nil
	case "float64", "f64":
		return Float64, nil
	case "int32", "i32":
		return Int32, nil
	case "int64", "i64":
		return Int64, nil
	case "uint8", "u8", "byte":
		return Uint8, nil
	case "bool":
		return Bool, nil
	default:
		return Unknown, errors.Errorf("unknown data type %q", s)
	}
}

// DataTypeOf returns the DataType for T, or Unknown if T has no tag.
func DataTypeOf[T any]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		return Unknown
	}
}

// Cast converts a numeric value from S to D with Go conversion semantics
// (widening is exact, narrowing truncates). It is meant to be passed to
// ArrayOf as the element conversion.
func Cast[S, D Number](v S) D {
	return D(v)
}
