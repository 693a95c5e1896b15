package mlpack

import (
	"errors"
	"fmt"
)

var (
	// ErrParamsClosed is returned when a closed Params is used.
	ErrParamsClosed = errors.New("params are closed")

	// ErrDispatchFailed is returned when outputs are read from a Params whose
	// dispatch failed. Such a context must be discarded.
	ErrDispatchFailed = errors.New("dispatch failed; params are unusable")

	// ErrLibraryClosed is returned when a closed Library is used.
	ErrLibraryClosed = errors.New("library is closed")
)

// NotFoundError is returned when an identifier is absent from a Params.
type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("parameter %q not found", e.Identifier)
}

// TypeMismatchError is returned when an identifier is read through an
// accessor of a different kind or model type than the one it was stored with.
type TypeMismatchError struct {
	Identifier string
	Want       string
	Got        string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("parameter %q holds %s, not %s", e.Identifier, e.Got, e.Want)
}

// AlgorithmError represents a failed dispatch.
type AlgorithmError struct {
	Binding string
	Code    ErrorCode
	Message string
	// Err is the error returned by an in-process Algorithm, if any.
	Err error
}

func (e *AlgorithmError) Error() string {
	return fmt.Sprintf("mlpack %s error (%s): %s", e.Binding, errorCodeName(e.Code), e.Message)
}

func (e *AlgorithmError) Unwrap() error {
	return e.Err
}

// errorCodeName returns a human-readable name for an error code.
func errorCodeName(code ErrorCode) string {
	switch code {
	case ErrorCodeOK:
		return "OK"
	case ErrorCodeFail:
		return "Fail"
	case ErrorCodeInvalidArgument:
		return "InvalidArgument"
	case ErrorCodeMissingParameter:
		return "MissingParameter"
	case ErrorCodeRuntimeException:
		return "RuntimeException"
	case ErrorCodeNotImplemented:
		return "NotImplemented"
	default:
		return fmt.Sprintf("ErrorCode(%d)", code)
	}
}
