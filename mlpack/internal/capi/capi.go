// Package capi declares the C ABI shared by the mlpack 4 Go binding libraries.
//
// Every native binding ships as libmlpack_go_<name>.so exporting three symbols
// (mlpack<Name>, mlpackSet<Model>Ptr, mlpackGet<Model>Ptr). The parameter
// plumbing lives in a shared utility library. Tables cross the boundary in
// Go's view: rows are points. The SetParam functions copy the buffers they
// receive; buffers returned by the GetParam functions belong to the parameter
// set and die with CleanParams.
//
// Stock mlpack entry points return void and report nothing. Two optional
// extensions are used when a library exports them: a status object returned
// by the entry point (mlpackGetErrorCode, mlpackGetErrorMessage,
// mlpackReleaseStatus in the utility library) and a model deleter
// (mlpackDelete<Model>Ptr in the binding library).
//
// CleanParams never frees a model pointer that was installed with
// SetModelPtr or handed out by GetModelPtr; those belong to the caller.
package capi

// Params is an opaque pointer to a native parameter set (one dispatch).
type Params uintptr

// Timers is an opaque pointer to a native timer set.
type Timers uintptr

// Status is an opaque pointer to a native status object. Zero means success,
// and is all a library without status support ever returns.
type Status uintptr

// ModelPtr is an opaque pointer to a native model object.
type ModelPtr uintptr

// ErrorCode represents error codes carried by a native Status.
type ErrorCode int32

// Funcs is an interface for the utility library functions.
type Funcs interface {
	// Status and error handling. ReportsStatus is false when the utility
	// library has no status extension; entry points are then void.
	ReportsStatus() bool
	GetErrorCode(Status) ErrorCode
	GetErrorMessage(Status) *byte
	ReleaseStatus(Status)

	// Parameter and timer sets
	GetParams(*byte) Params
	CleanParams(Params)
	GetTimers() Timers
	CleanTimers(Timers)
	SetPassed(Params, *byte)

	// Output control
	EnableVerbose()
	DisableVerbose()
	DisableBacktrace()

	// Scalars
	SetParamBool(Params, *byte, bool)
	SetParamInt(Params, *byte, int32)
	SetParamDouble(Params, *byte, float64)
	SetParamString(Params, *byte, *byte)
	SetParamVecInt(Params, *byte, *int32, uintptr)
	SetParamVecString(Params, *byte, **byte, uintptr)
	GetParamBool(Params, *byte) bool
	GetParamInt(Params, *byte) int32
	GetParamDouble(Params, *byte) float64
	GetParamString(Params, *byte) *byte
	GetParamVecIntSize(Params, *byte) uintptr
	GetParamVecInt(Params, *byte) *int32
	GetParamVecStringSize(Params, *byte) uintptr
	GetParamVecString(Params, *byte, uintptr) *byte

	// Tables
	SetParamMat(Params, *byte, *float64, uintptr, uintptr)
	SetParamUMat(Params, *byte, *uint64, uintptr, uintptr)
	SetParamRow(Params, *byte, *float64, uintptr)
	SetParamURow(Params, *byte, *uint64, uintptr)
	SetParamCol(Params, *byte, *float64, uintptr)
	SetParamUCol(Params, *byte, *uint64, uintptr)
	SetParamMatWithInfo(Params, *byte, *bool, *float64, uintptr, uintptr)
	GetParamMat(Params, *byte, *uintptr, *uintptr) *float64
	GetParamUMat(Params, *byte, *uintptr, *uintptr) *uint64
	GetParamRow(Params, *byte, *uintptr) *float64
	GetParamURow(Params, *byte, *uintptr) *uint64
	GetParamCol(Params, *byte, *uintptr) *float64
	GetParamUCol(Params, *byte, *uintptr) *uint64
}

// BindingFuncs is an interface for the symbols of one binding library.
type BindingFuncs interface {
	Run(Params, Timers) Status
	SetModelPtr(Params, *byte, ModelPtr)
	GetModelPtr(Params, *byte) ModelPtr
	// DeleteModelPtr is a no-op when the library exports no deleter.
	DeleteModelPtr(ModelPtr)
}
