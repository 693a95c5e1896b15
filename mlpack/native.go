package mlpack

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"

	"github.com/benedoc-inc/mlbind/internal/cstrings"
	"github.com/benedoc-inc/mlbind/mlpack/internal/capi"
	"gonum.org/v1/gonum/mat"
)

// Bind returns a Binding whose algorithm is the native binding library of
// spec, loaded from lib on first use.
//
// Model handles produced by the binding own their native pointer and are
// freed through the binding library by Handle.Destroy.
func Bind[T any, PT interface {
	*T
	nativeModel
}](lib *Library, spec *BindingSpec[T], opts ...Option) (*Binding[T], error) {
	if lib == nil {
		return nil, fmt.Errorf("library cannot be nil")
	}
	funcs, err := lib.binding(spec.Name, spec.Symbol(), spec.Models.Name())
	if err != nil {
		return nil, err
	}
	algo := &nativeAlgorithm[T, PT]{
		lib:   lib,
		spec:  spec,
		funcs: funcs,
	}
	opts = append([]Option{WithLogger(lib.logger)}, opts...)
	return NewBinding(spec, algo, opts...), nil
}

// nativeAlgorithm marshals a Params into a native parameter set, calls the
// binding entry point and copies the outputs back.
type nativeAlgorithm[T any, PT interface {
	*T
	nativeModel
}] struct {
	lib   *Library
	spec  *BindingSpec[T]
	funcs capi.BindingFuncs
}

func (a *nativeAlgorithm[T, PT]) Run(p *Params, _ *Timers) error {
	if a.lib.isClosed() {
		return ErrLibraryClosed
	}
	f := a.lib.funcs

	name := cstrings.StringToBytes(a.spec.Name)
	params := f.GetParams(&name[0])
	defer f.CleanParams(params)
	timers := f.GetTimers()
	defer f.CleanTimers(timers)

	a.lib.applyOutputControl()

	m := &marshaller{funcs: f, params: params, binding: a.spec.Name}
	inputs := make(map[capi.ModelPtr]*T)
	for _, id := range p.Identifiers() {
		v := p.values[id]
		if v.kind == ParamKindModel {
			model, err := a.spec.Models.Get(p, id)
			if err != nil {
				return &AlgorithmError{Binding: a.spec.Name, Code: ErrorCodeInvalidArgument, Message: err.Error(), Err: err}
			}
			ptr := PT(model).handle().ptr
			if ptr == 0 {
				return &AlgorithmError{
					Binding: a.spec.Name,
					Code:    ErrorCodeInvalidArgument,
					Message: fmt.Sprintf("parameter %q: model handle was destroyed", id),
				}
			}
			a.funcs.SetModelPtr(params, m.cstr(id), ptr)
			f.SetPassed(params, m.cstr(id))
			inputs[ptr] = model
			continue
		}
		if err := m.push(id, v); err != nil {
			return err
		}
	}
	for _, out := range a.spec.Outputs {
		f.SetPassed(params, m.cstr(out.Name))
	}

	status := a.funcs.Run(params, timers)
	runtime.KeepAlive(m)
	if err := a.lib.statusError(a.spec.Name, status); err != nil {
		return err
	}

	for _, out := range a.spec.Outputs {
		if out.Kind == ParamKindModel {
			ptr := a.funcs.GetModelPtr(params, m.cstr(out.Name))
			if ptr == 0 {
				continue
			}
			model, ok := inputs[ptr]
			if !ok {
				model = new(T)
				*PT(model).handle() = newHandle(ptr, a.funcs.DeleteModelPtr)
			}
			if err := a.spec.Models.Set(p, out.Name, model); err != nil {
				return err
			}
			continue
		}
		if err := m.pull(p, out); err != nil {
			return err
		}
	}
	return nil
}

// marshaller moves values of one dispatch across the C boundary.
// It keeps every buffer handed to C alive until the dispatch returns.
type marshaller struct {
	funcs   capi.Funcs
	params  capi.Params
	binding string
	keep    []any
}

func (m *marshaller) cstr(s string) *byte {
	b := cstrings.StringToBytes(s)
	m.keep = append(m.keep, b)
	return &b[0]
}

func (m *marshaller) push(id string, v param) error {
	f, params := m.funcs, m.params
	switch v.kind {
	case ParamKindBool:
		f.SetParamBool(params, m.cstr(id), v.value.(bool))
	case ParamKindInt:
		n := v.value.(int)
		if n < math.MinInt32 || n > math.MaxInt32 {
			return m.invalid(id, fmt.Sprintf("integer %d overflows int32", n))
		}
		f.SetParamInt(params, m.cstr(id), int32(n))
	case ParamKindDouble:
		f.SetParamDouble(params, m.cstr(id), v.value.(float64))
	case ParamKindString:
		f.SetParamString(params, m.cstr(id), m.cstr(v.value.(string)))
	case ParamKindIntSlice:
		ints := v.value.([]int)
		data := make([]int32, len(ints))
		for i, n := range ints {
			if n < math.MinInt32 || n > math.MaxInt32 {
				return m.invalid(id, fmt.Sprintf("integer %d at index %d overflows int32", n, i))
			}
			data[i] = int32(n)
		}
		m.keep = append(m.keep, data)
		f.SetParamVecInt(params, m.cstr(id), first(data), uintptr(len(data)))
	case ParamKindStringSlice:
		bufs, ptrs := cstrings.StringsToPtrs(v.value.([]string))
		m.keep = append(m.keep, bufs, ptrs)
		f.SetParamVecString(params, m.cstr(id), first(ptrs), uintptr(len(ptrs)))
	case ParamKindMatrix:
		rows, cols, data := denseData(v.value.(*mat.Dense))
		m.keep = append(m.keep, data)
		f.SetParamMat(params, m.cstr(id), first(data), uintptr(rows), uintptr(cols))
	case ParamKindUMatrix:
		rows, cols, data := denseData(v.value.(*mat.Dense))
		udata := toUnsigned(data)
		m.keep = append(m.keep, udata)
		f.SetParamUMat(params, m.cstr(id), first(udata), uintptr(rows), uintptr(cols))
	case ParamKindRow, ParamKindCol:
		data := vecData(v.value.(*mat.VecDense))
		m.keep = append(m.keep, data)
		if v.kind == ParamKindRow {
			f.SetParamRow(params, m.cstr(id), first(data), uintptr(len(data)))
		} else {
			f.SetParamCol(params, m.cstr(id), first(data), uintptr(len(data)))
		}
	case ParamKindURow, ParamKindUCol:
		udata := toUnsigned(vecData(v.value.(*mat.VecDense)))
		m.keep = append(m.keep, udata)
		if v.kind == ParamKindURow {
			f.SetParamURow(params, m.cstr(id), first(udata), uintptr(len(udata)))
		} else {
			f.SetParamUCol(params, m.cstr(id), first(udata), uintptr(len(udata)))
		}
	case ParamKindMatrixWithInfo:
		info := v.value.(*MatrixWithInfo)
		rows, cols, data := denseData(info.Data)
		categorical := make([]bool, cols)
		copy(categorical, info.Categorical)
		m.keep = append(m.keep, data, categorical)
		f.SetParamMatWithInfo(params, m.cstr(id), first(categorical), first(data), uintptr(rows), uintptr(cols))
	default:
		return &AlgorithmError{
			Binding: m.binding,
			Code:    ErrorCodeNotImplemented,
			Message: fmt.Sprintf("parameter %q: unsupported kind %s", id, v.kind),
		}
	}
	f.SetPassed(params, m.cstr(id))
	return nil
}

func (m *marshaller) pull(p *Params, out Output) error {
	f, params := m.funcs, m.params
	id := m.cstr(out.Name)
	switch out.Kind {
	case ParamKindBool:
		return p.SetBool(out.Name, f.GetParamBool(params, id))
	case ParamKindInt:
		return p.SetInt(out.Name, int(f.GetParamInt(params, id)))
	case ParamKindDouble:
		return p.SetDouble(out.Name, f.GetParamDouble(params, id))
	case ParamKindString:
		return p.SetString(out.Name, cstrings.CStringToString(f.GetParamString(params, id)))
	case ParamKindIntSlice:
		n := int(f.GetParamVecIntSize(params, id))
		values := make([]int, n)
		if n > 0 {
			for i, x := range unsafe.Slice(f.GetParamVecInt(params, id), n) {
				values[i] = int(x)
			}
		}
		return p.SetIntSlice(out.Name, values)
	case ParamKindStringSlice:
		n := f.GetParamVecStringSize(params, id)
		values := make([]string, n)
		for i := range n {
			values[i] = cstrings.CStringToString(f.GetParamVecString(params, id, i))
		}
		return p.SetStringSlice(out.Name, values)
	case ParamKindMatrix:
		var rows, cols uintptr
		ptr := f.GetParamMat(params, id, &rows, &cols)
		if ptr == nil || rows == 0 || cols == 0 {
			return nil
		}
		data := make([]float64, rows*cols)
		copy(data, unsafe.Slice(ptr, rows*cols))
		return p.SetMatrix(out.Name, mat.NewDense(int(rows), int(cols), data))
	case ParamKindUMatrix:
		var rows, cols uintptr
		ptr := f.GetParamUMat(params, id, &rows, &cols)
		if ptr == nil || rows == 0 || cols == 0 {
			return nil
		}
		data := fromUnsigned(unsafe.Slice(ptr, rows*cols))
		return p.SetUMatrix(out.Name, mat.NewDense(int(rows), int(cols), data))
	case ParamKindRow, ParamKindCol:
		var n uintptr
		var ptr *float64
		if out.Kind == ParamKindRow {
			ptr = f.GetParamRow(params, id, &n)
		} else {
			ptr = f.GetParamCol(params, id, &n)
		}
		if ptr == nil || n == 0 {
			return nil
		}
		data := make([]float64, n)
		copy(data, unsafe.Slice(ptr, n))
		return p.setVector(out.Name, out.Kind, mat.NewVecDense(int(n), data))
	case ParamKindURow, ParamKindUCol:
		var n uintptr
		var ptr *uint64
		if out.Kind == ParamKindURow {
			ptr = f.GetParamURow(params, id, &n)
		} else {
			ptr = f.GetParamUCol(params, id, &n)
		}
		if ptr == nil || n == 0 {
			return nil
		}
		return p.setVector(out.Name, out.Kind, mat.NewVecDense(int(n), fromUnsigned(unsafe.Slice(ptr, n))))
	default:
		return &AlgorithmError{
			Binding: m.binding,
			Code:    ErrorCodeNotImplemented,
			Message: fmt.Sprintf("output %q: unsupported kind %s", out.Name, out.Kind),
		}
	}
}

func (m *marshaller) invalid(id, msg string) error {
	return &AlgorithmError{
		Binding: m.binding,
		Code:    ErrorCodeInvalidArgument,
		Message: fmt.Sprintf("parameter %q: %s", id, msg),
	}
}

// first returns a pointer to the first element of s, or nil if s is empty.
func first[E any](s []E) *E {
	if len(s) == 0 {
		return nil
	}
	return &s[0]
}

// denseData returns the row-major cells of d without padding.
func denseData(d *mat.Dense) (rows, cols int, data []float64) {
	raw := d.RawMatrix()
	if raw.Stride == raw.Cols {
		return raw.Rows, raw.Cols, raw.Data[:raw.Rows*raw.Cols]
	}
	return raw.Rows, raw.Cols, mat.DenseCopyOf(d).RawMatrix().Data
}

func vecData(v *mat.VecDense) []float64 {
	data := make([]float64, v.Len())
	for i := range data {
		data[i] = v.AtVec(i)
	}
	return data
}

func toUnsigned(data []float64) []uint64 {
	out := make([]uint64, len(data))
	for i, x := range data {
		out[i] = uint64(x)
	}
	return out
}

func fromUnsigned(data []uint64) []float64 {
	out := make([]float64, len(data))
	for i, x := range data {
		out[i] = float64(x)
	}
	return out
}
