// Package v4 binds the C ABI of the mlpack 4 Go binding libraries with purego.
// Parameter and timer sets are passed explicitly to every call.
package v4

import (
	"fmt"

	"github.com/benedoc-inc/mlbind/mlpack/internal/capi"
	"github.com/ebitengine/purego"
)

// Funcs contains cached function pointers to the utility library.
type Funcs struct {
	// Status extension, nil when the library does not export it
	getErrorCode    func(capi.Status) capi.ErrorCode
	getErrorMessage func(capi.Status) *byte
	releaseStatus   func(capi.Status)

	// Parameter and timer sets
	getParams   func(*byte) capi.Params
	cleanParams func(capi.Params)
	getTimers   func() capi.Timers
	cleanTimers func(capi.Timers)
	setPassed   func(capi.Params, *byte)

	// Output control
	enableVerbose    func()
	disableVerbose   func()
	disableBacktrace func()

	// Scalars
	setParamBool          func(capi.Params, *byte, bool)
	setParamInt           func(capi.Params, *byte, int32)
	setParamDouble        func(capi.Params, *byte, float64)
	setParamString        func(capi.Params, *byte, *byte)
	setParamVecInt        func(capi.Params, *byte, *int32, uintptr)
	setParamVecString     func(capi.Params, *byte, **byte, uintptr)
	getParamBool          func(capi.Params, *byte) bool
	getParamInt           func(capi.Params, *byte) int32
	getParamDouble        func(capi.Params, *byte) float64
	getParamString        func(capi.Params, *byte) *byte
	getParamVecIntSize    func(capi.Params, *byte) uintptr
	getParamVecInt        func(capi.Params, *byte) *int32
	getParamVecStringSize func(capi.Params, *byte) uintptr
	getParamVecString     func(capi.Params, *byte, uintptr) *byte

	// Tables
	setParamMat         func(capi.Params, *byte, *float64, uintptr, uintptr)
	setParamUMat        func(capi.Params, *byte, *uint64, uintptr, uintptr)
	setParamRow         func(capi.Params, *byte, *float64, uintptr)
	setParamURow        func(capi.Params, *byte, *uint64, uintptr)
	setParamCol         func(capi.Params, *byte, *float64, uintptr)
	setParamUCol        func(capi.Params, *byte, *uint64, uintptr)
	setParamMatWithInfo func(capi.Params, *byte, *bool, *float64, uintptr, uintptr)
	getParamMat         func(capi.Params, *byte, *uintptr, *uintptr) *float64
	getParamUMat        func(capi.Params, *byte, *uintptr, *uintptr) *uint64
	getParamRow         func(capi.Params, *byte, *uintptr) *float64
	getParamURow        func(capi.Params, *byte, *uintptr) *uint64
	getParamCol         func(capi.Params, *byte, *uintptr) *float64
	getParamUCol        func(capi.Params, *byte, *uintptr) *uint64
}

// Open loads a shared library and returns its handle.
func Open(path string) (uintptr, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, fmt.Errorf("failed to load library %s: %w", path, err)
	}
	return handle, nil
}

// Close unloads a shared library opened with Open.
func Close(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	return purego.Dlclose(handle)
}

// register resolves name in the library and binds it to fptr.
// Unlike purego.RegisterLibFunc it reports a missing symbol as an error.
func register(fptr any, handle uintptr, name string) error {
	sym, err := purego.Dlsym(handle, name)
	if err != nil {
		return fmt.Errorf("symbol %s not found: %w", name, err)
	}
	purego.RegisterFunc(fptr, sym)
	return nil
}

// InitializeFuncs initializes the utility function pointers from the library handle.
// This is called once per Library to avoid repeated symbol lookups.
func InitializeFuncs(libraryHandle uintptr) (*Funcs, error) {
	funcs := &Funcs{}

	symbols := []struct {
		fptr any
		name string
	}{
		{&funcs.getParams, "mlpackGetParams"},
		{&funcs.cleanParams, "mlpackCleanParams"},
		{&funcs.getTimers, "mlpackGetTimers"},
		{&funcs.cleanTimers, "mlpackCleanTimers"},
		{&funcs.setPassed, "mlpackSetPassed"},

		{&funcs.enableVerbose, "mlpackEnableVerbose"},
		{&funcs.disableVerbose, "mlpackDisableVerbose"},
		{&funcs.disableBacktrace, "mlpackDisableBacktrace"},

		{&funcs.setParamBool, "mlpackSetParamBool"},
		{&funcs.setParamInt, "mlpackSetParamInt"},
		{&funcs.setParamDouble, "mlpackSetParamDouble"},
		{&funcs.setParamString, "mlpackSetParamString"},
		{&funcs.setParamVecInt, "mlpackSetParamVectorInt"},
		{&funcs.setParamVecString, "mlpackSetParamVectorStr"},
		{&funcs.getParamBool, "mlpackGetParamBool"},
		{&funcs.getParamInt, "mlpackGetParamInt"},
		{&funcs.getParamDouble, "mlpackGetParamDouble"},
		{&funcs.getParamString, "mlpackGetParamString"},
		{&funcs.getParamVecIntSize, "mlpackGetVecIntSize"},
		{&funcs.getParamVecInt, "mlpackGetVecIntPtr"},
		{&funcs.getParamVecStringSize, "mlpackGetVecStringSize"},
		{&funcs.getParamVecString, "mlpackGetVecStringPtr"},

		{&funcs.setParamMat, "mlpackToArmaMat"},
		{&funcs.setParamUMat, "mlpackToArmaUmat"},
		{&funcs.setParamRow, "mlpackToArmaRow"},
		{&funcs.setParamURow, "mlpackToArmaUrow"},
		{&funcs.setParamCol, "mlpackToArmaCol"},
		{&funcs.setParamUCol, "mlpackToArmaUcol"},
		{&funcs.setParamMatWithInfo, "mlpackToArmaMatWithInfo"},
		{&funcs.getParamMat, "mlpackArmaPtrMat"},
		{&funcs.getParamUMat, "mlpackArmaPtrUmat"},
		{&funcs.getParamRow, "mlpackArmaPtrRow"},
		{&funcs.getParamURow, "mlpackArmaPtrUrow"},
		{&funcs.getParamCol, "mlpackArmaPtrCol"},
		{&funcs.getParamUCol, "mlpackArmaPtrUcol"},
	}

	for _, s := range symbols {
		if err := register(s.fptr, libraryHandle, s.name); err != nil {
			return nil, err
		}
	}

	// The status extension is all or nothing; stock libraries export none of it.
	statusSymbols := []string{"mlpackGetErrorCode", "mlpackGetErrorMessage", "mlpackReleaseStatus"}
	syms := make([]uintptr, 0, len(statusSymbols))
	for _, name := range statusSymbols {
		sym, err := purego.Dlsym(libraryHandle, name)
		if err != nil {
			return funcs, nil
		}
		syms = append(syms, sym)
	}
	purego.RegisterFunc(&funcs.getErrorCode, syms[0])
	purego.RegisterFunc(&funcs.getErrorMessage, syms[1])
	purego.RegisterFunc(&funcs.releaseStatus, syms[2])

	return funcs, nil
}

// Status and error handling methods

// ReportsStatus reports whether the library exports the status extension.
func (f *Funcs) ReportsStatus() bool {
	return f.releaseStatus != nil
}

// errorCodeFail mirrors the generic failure code of the status extension.
const errorCodeFail capi.ErrorCode = 1

func (f *Funcs) GetErrorCode(status capi.Status) capi.ErrorCode {
	if f.getErrorCode == nil {
		return errorCodeFail
	}
	return f.getErrorCode(status)
}

func (f *Funcs) GetErrorMessage(status capi.Status) *byte {
	if f.getErrorMessage == nil {
		return nil
	}
	return f.getErrorMessage(status)
}

func (f *Funcs) ReleaseStatus(status capi.Status) {
	if f.releaseStatus == nil {
		return
	}
	f.releaseStatus(status)
}

// Parameter and timer set methods

func (f *Funcs) GetParams(bindingName *byte) capi.Params {
	return f.getParams(bindingName)
}

func (f *Funcs) CleanParams(params capi.Params) {
	f.cleanParams(params)
}

func (f *Funcs) GetTimers() capi.Timers {
	return f.getTimers()
}

func (f *Funcs) CleanTimers(timers capi.Timers) {
	f.cleanTimers(timers)
}

func (f *Funcs) SetPassed(params capi.Params, identifier *byte) {
	f.setPassed(params, identifier)
}

// Output control methods

func (f *Funcs) EnableVerbose() {
	f.enableVerbose()
}

func (f *Funcs) DisableVerbose() {
	f.disableVerbose()
}

func (f *Funcs) DisableBacktrace() {
	f.disableBacktrace()
}

// Scalar methods

func (f *Funcs) SetParamBool(params capi.Params, identifier *byte, value bool) {
	f.setParamBool(params, identifier, value)
}

func (f *Funcs) SetParamInt(params capi.Params, identifier *byte, value int32) {
	f.setParamInt(params, identifier, value)
}

func (f *Funcs) SetParamDouble(params capi.Params, identifier *byte, value float64) {
	f.setParamDouble(params, identifier, value)
}

func (f *Funcs) SetParamString(params capi.Params, identifier *byte, value *byte) {
	f.setParamString(params, identifier, value)
}

func (f *Funcs) SetParamVecInt(params capi.Params, identifier *byte, values *int32, n uintptr) {
	f.setParamVecInt(params, identifier, values, n)
}

func (f *Funcs) SetParamVecString(params capi.Params, identifier *byte, values **byte, n uintptr) {
	f.setParamVecString(params, identifier, values, n)
}

func (f *Funcs) GetParamBool(params capi.Params, identifier *byte) bool {
	return f.getParamBool(params, identifier)
}

func (f *Funcs) GetParamInt(params capi.Params, identifier *byte) int32 {
	return f.getParamInt(params, identifier)
}

func (f *Funcs) GetParamDouble(params capi.Params, identifier *byte) float64 {
	return f.getParamDouble(params, identifier)
}

func (f *Funcs) GetParamString(params capi.Params, identifier *byte) *byte {
	return f.getParamString(params, identifier)
}

func (f *Funcs) GetParamVecIntSize(params capi.Params, identifier *byte) uintptr {
	return f.getParamVecIntSize(params, identifier)
}

func (f *Funcs) GetParamVecInt(params capi.Params, identifier *byte) *int32 {
	return f.getParamVecInt(params, identifier)
}

func (f *Funcs) GetParamVecStringSize(params capi.Params, identifier *byte) uintptr {
	return f.getParamVecStringSize(params, identifier)
}

func (f *Funcs) GetParamVecString(params capi.Params, identifier *byte, index uintptr) *byte {
	return f.getParamVecString(params, identifier, index)
}

// Table methods

func (f *Funcs) SetParamMat(params capi.Params, identifier *byte, data *float64, rows, cols uintptr) {
	f.setParamMat(params, identifier, data, rows, cols)
}

func (f *Funcs) SetParamUMat(params capi.Params, identifier *byte, data *uint64, rows, cols uintptr) {
	f.setParamUMat(params, identifier, data, rows, cols)
}

func (f *Funcs) SetParamRow(params capi.Params, identifier *byte, data *float64, n uintptr) {
	f.setParamRow(params, identifier, data, n)
}

func (f *Funcs) SetParamURow(params capi.Params, identifier *byte, data *uint64, n uintptr) {
	f.setParamURow(params, identifier, data, n)
}

func (f *Funcs) SetParamCol(params capi.Params, identifier *byte, data *float64, n uintptr) {
	f.setParamCol(params, identifier, data, n)
}

func (f *Funcs) SetParamUCol(params capi.Params, identifier *byte, data *uint64, n uintptr) {
	f.setParamUCol(params, identifier, data, n)
}

func (f *Funcs) SetParamMatWithInfo(params capi.Params, identifier *byte, categorical *bool, data *float64, rows, cols uintptr) {
	f.setParamMatWithInfo(params, identifier, categorical, data, rows, cols)
}

func (f *Funcs) GetParamMat(params capi.Params, identifier *byte, rows, cols *uintptr) *float64 {
	return f.getParamMat(params, identifier, rows, cols)
}

func (f *Funcs) GetParamUMat(params capi.Params, identifier *byte, rows, cols *uintptr) *uint64 {
	return f.getParamUMat(params, identifier, rows, cols)
}

func (f *Funcs) GetParamRow(params capi.Params, identifier *byte, n *uintptr) *float64 {
	return f.getParamRow(params, identifier, n)
}

func (f *Funcs) GetParamURow(params capi.Params, identifier *byte, n *uintptr) *uint64 {
	return f.getParamURow(params, identifier, n)
}

func (f *Funcs) GetParamCol(params capi.Params, identifier *byte, n *uintptr) *float64 {
	return f.getParamCol(params, identifier, n)
}

func (f *Funcs) GetParamUCol(params capi.Params, identifier *byte, n *uintptr) *uint64 {
	return f.getParamUCol(params, identifier, n)
}
