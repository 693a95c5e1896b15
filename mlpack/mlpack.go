package mlpack

import (
	"fmt"

	"github.com/benedoc-inc/mlbind/mlpack/internal/capi"
)

// ParamKind identifies the kind of value stored under a parameter identifier.
type ParamKind int

// Parameter kinds transferred between Go and the native bindings.
const (
	// ParamKindInvalid is the zero value and never stored.
	ParamKindInvalid ParamKind = iota
	// ParamKindBool is a boolean flag.
	ParamKindBool
	// ParamKindInt is an integer.
	ParamKindInt
	// ParamKindDouble is a float64.
	ParamKindDouble
	// ParamKindString is a string.
	ParamKindString
	// ParamKindIntSlice is a vector of integers.
	ParamKindIntSlice
	// ParamKindStringSlice is a vector of strings.
	ParamKindStringSlice
	// ParamKindMatrix is a dense float64 matrix; rows are points.
	ParamKindMatrix
	// ParamKindUMatrix is a dense matrix of non-negative integers.
	ParamKindUMatrix
	// ParamKindRow is a float64 row vector.
	ParamKindRow
	// ParamKindURow is a row vector of non-negative integers.
	ParamKindURow
	// ParamKindCol is a float64 column vector.
	ParamKindCol
	// ParamKindUCol is a column vector of non-negative integers.
	ParamKindUCol
	// ParamKindMatrixWithInfo is a matrix with per-dimension categorical info.
	ParamKindMatrixWithInfo
	// ParamKindModel is a model handle.
	ParamKindModel
)

func (k ParamKind) String() string {
	switch k {
	case ParamKindBool:
		return "bool"
	case ParamKindInt:
		return "int"
	case ParamKindDouble:
		return "double"
	case ParamKindString:
		return "string"
	case ParamKindIntSlice:
		return "[]int"
	case ParamKindStringSlice:
		return "[]string"
	case ParamKindMatrix:
		return "matrix"
	case ParamKindUMatrix:
		return "umatrix"
	case ParamKindRow:
		return "row"
	case ParamKindURow:
		return "urow"
	case ParamKindCol:
		return "col"
	case ParamKindUCol:
		return "ucol"
	case ParamKindMatrixWithInfo:
		return "matrixWithInfo"
	case ParamKindModel:
		return "model"
	default:
		return fmt.Sprintf("ParamKind(%d)", int(k))
	}
}

// ErrorCode represents error codes reported by a dispatch.
type ErrorCode = capi.ErrorCode

// Error codes reported by a dispatch. Native libraries use the same values.
const (
	// ErrorCodeOK indicates success (no error).
	ErrorCodeOK ErrorCode = 0
	// ErrorCodeFail indicates a generic failure.
	ErrorCodeFail ErrorCode = 1
	// ErrorCodeInvalidArgument indicates a malformed parameter or an
	// unsatisfiable parameter combination.
	ErrorCodeInvalidArgument ErrorCode = 2
	// ErrorCodeMissingParameter indicates a required parameter was not set.
	ErrorCodeMissingParameter ErrorCode = 3
	// ErrorCodeRuntimeException indicates the algorithm raised an exception.
	ErrorCodeRuntimeException ErrorCode = 4
	// ErrorCodeNotImplemented indicates an unsupported parameter kind.
	ErrorCodeNotImplemented ErrorCode = 5
)
