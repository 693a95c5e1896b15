package mlpack

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"unsafe"

	"github.com/benedoc-inc/mlbind/internal/cstrings"
	"github.com/benedoc-inc/mlbind/mlpack/internal/capi"
	"gonum.org/v1/gonum/mat"
)

// fakeValue is one parameter held by the in-memory native library.
type fakeValue struct {
	kind  ParamKind
	b     bool
	i     int32
	d     float64
	s     []byte
	ints  []int32
	strs  [][]byte
	f64   []float64
	u64   []uint64
	rows  uintptr
	cols  uintptr
	cat   []bool
	model capi.ModelPtr
}

type fakeParamSet struct {
	binding string
	values  map[string]*fakeValue
	passed  map[string]bool
}

func (s *fakeParamSet) doubles(id string) []float64 {
	if v, ok := s.values[id]; ok {
		return v.f64
	}
	return nil
}

type fakeStatus struct {
	code capi.ErrorCode
	msg  []byte
}

// fakeFuncs implements capi.Funcs in memory.
type fakeFuncs struct {
	mu       sync.Mutex
	next     uintptr
	sets     map[capi.Params]*fakeParamSet
	statuses map[capi.Status]*fakeStatus

	created, cleaned   int
	timers, timersDone int
	released           int
	verbose            bool
	backtraceOff       bool

	// noStatus mimics a stock utility library without the status extension.
	noStatus bool
}

func newFakeFuncs() *fakeFuncs {
	return &fakeFuncs{
		next:     100,
		sets:     make(map[capi.Params]*fakeParamSet),
		statuses: make(map[capi.Status]*fakeStatus),
	}
}

func (f *fakeFuncs) id() uintptr {
	f.next++
	return f.next
}

func (f *fakeFuncs) set(p capi.Params) *fakeParamSet {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets[p]
}

func (f *fakeFuncs) put(p capi.Params, id *byte, v *fakeValue) {
	f.set(p).values[cstrings.CStringToString(id)] = v
}

func (f *fakeFuncs) get(p capi.Params, id *byte) *fakeValue {
	if v, ok := f.set(p).values[cstrings.CStringToString(id)]; ok {
		return v
	}
	return &fakeValue{}
}

func (f *fakeFuncs) newStatus(code capi.ErrorCode, msg string) capi.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := capi.Status(f.id())
	f.statuses[s] = &fakeStatus{code: code, msg: cstrings.StringToBytes(msg)}
	return s
}

func (f *fakeFuncs) ReportsStatus() bool { return !f.noStatus }

func (f *fakeFuncs) GetErrorCode(s capi.Status) capi.ErrorCode {
	return f.statuses[s].code
}

func (f *fakeFuncs) GetErrorMessage(s capi.Status) *byte {
	return &f.statuses[s].msg[0]
}

func (f *fakeFuncs) ReleaseStatus(s capi.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.statuses, s)
	f.released++
}

func (f *fakeFuncs) GetParams(name *byte) capi.Params {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := capi.Params(f.id())
	f.sets[p] = &fakeParamSet{
		binding: cstrings.CStringToString(name),
		values:  make(map[string]*fakeValue),
		passed:  make(map[string]bool),
	}
	f.created++
	return p
}

func (f *fakeFuncs) CleanParams(p capi.Params) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleaned++
}

func (f *fakeFuncs) GetTimers() capi.Timers {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timers++
	return capi.Timers(f.id())
}

func (f *fakeFuncs) CleanTimers(capi.Timers) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timersDone++
}

func (f *fakeFuncs) SetPassed(p capi.Params, id *byte) {
	f.set(p).passed[cstrings.CStringToString(id)] = true
}

func (f *fakeFuncs) EnableVerbose()    { f.verbose = true }
func (f *fakeFuncs) DisableVerbose()   { f.verbose = false }
func (f *fakeFuncs) DisableBacktrace() { f.backtraceOff = true }

func (f *fakeFuncs) SetParamBool(p capi.Params, id *byte, v bool) {
	f.put(p, id, &fakeValue{kind: ParamKindBool, b: v})
}

func (f *fakeFuncs) SetParamInt(p capi.Params, id *byte, v int32) {
	f.put(p, id, &fakeValue{kind: ParamKindInt, i: v})
}

func (f *fakeFuncs) SetParamDouble(p capi.Params, id *byte, v float64) {
	f.put(p, id, &fakeValue{kind: ParamKindDouble, d: v})
}

func (f *fakeFuncs) SetParamString(p capi.Params, id *byte, v *byte) {
	f.put(p, id, &fakeValue{kind: ParamKindString, s: cstrings.StringToBytes(cstrings.CStringToString(v))})
}

func (f *fakeFuncs) SetParamVecInt(p capi.Params, id *byte, data *int32, n uintptr) {
	f.put(p, id, &fakeValue{kind: ParamKindIntSlice, ints: slices.Clone(unsafe.Slice(data, n))})
}

func (f *fakeFuncs) SetParamVecString(p capi.Params, id *byte, data **byte, n uintptr) {
	v := &fakeValue{kind: ParamKindStringSlice}
	for _, s := range unsafe.Slice(data, n) {
		v.strs = append(v.strs, cstrings.StringToBytes(cstrings.CStringToString(s)))
	}
	f.put(p, id, v)
}

func (f *fakeFuncs) GetParamBool(p capi.Params, id *byte) bool      { return f.get(p, id).b }
func (f *fakeFuncs) GetParamInt(p capi.Params, id *byte) int32      { return f.get(p, id).i }
func (f *fakeFuncs) GetParamDouble(p capi.Params, id *byte) float64 { return f.get(p, id).d }
func (f *fakeFuncs) GetParamString(p capi.Params, id *byte) *byte   { return first(f.get(p, id).s) }

func (f *fakeFuncs) GetParamVecIntSize(p capi.Params, id *byte) uintptr {
	return uintptr(len(f.get(p, id).ints))
}

func (f *fakeFuncs) GetParamVecInt(p capi.Params, id *byte) *int32 {
	return first(f.get(p, id).ints)
}

func (f *fakeFuncs) GetParamVecStringSize(p capi.Params, id *byte) uintptr {
	return uintptr(len(f.get(p, id).strs))
}

func (f *fakeFuncs) GetParamVecString(p capi.Params, id *byte, i uintptr) *byte {
	return &f.get(p, id).strs[i][0]
}

func (f *fakeFuncs) SetParamMat(p capi.Params, id *byte, data *float64, rows, cols uintptr) {
	f.put(p, id, &fakeValue{kind: ParamKindMatrix, f64: slices.Clone(unsafe.Slice(data, rows*cols)), rows: rows, cols: cols})
}

func (f *fakeFuncs) SetParamUMat(p capi.Params, id *byte, data *uint64, rows, cols uintptr) {
	f.put(p, id, &fakeValue{kind: ParamKindUMatrix, u64: slices.Clone(unsafe.Slice(data, rows*cols)), rows: rows, cols: cols})
}

func (f *fakeFuncs) SetParamRow(p capi.Params, id *byte, data *float64, n uintptr) {
	f.put(p, id, &fakeValue{kind: ParamKindRow, f64: slices.Clone(unsafe.Slice(data, n)), cols: n})
}

func (f *fakeFuncs) SetParamURow(p capi.Params, id *byte, data *uint64, n uintptr) {
	f.put(p, id, &fakeValue{kind: ParamKindURow, u64: slices.Clone(unsafe.Slice(data, n)), cols: n})
}

func (f *fakeFuncs) SetParamCol(p capi.Params, id *byte, data *float64, n uintptr) {
	f.put(p, id, &fakeValue{kind: ParamKindCol, f64: slices.Clone(unsafe.Slice(data, n)), rows: n})
}

func (f *fakeFuncs) SetParamUCol(p capi.Params, id *byte, data *uint64, n uintptr) {
	f.put(p, id, &fakeValue{kind: ParamKindUCol, u64: slices.Clone(unsafe.Slice(data, n)), rows: n})
}

func (f *fakeFuncs) SetParamMatWithInfo(p capi.Params, id *byte, cat *bool, data *float64, rows, cols uintptr) {
	f.put(p, id, &fakeValue{
		kind: ParamKindMatrixWithInfo,
		f64:  slices.Clone(unsafe.Slice(data, rows*cols)),
		cat:  slices.Clone(unsafe.Slice(cat, cols)),
		rows: rows,
		cols: cols,
	})
}

func (f *fakeFuncs) GetParamMat(p capi.Params, id *byte, rows, cols *uintptr) *float64 {
	v := f.get(p, id)
	*rows, *cols = v.rows, v.cols
	return first(v.f64)
}

func (f *fakeFuncs) GetParamUMat(p capi.Params, id *byte, rows, cols *uintptr) *uint64 {
	v := f.get(p, id)
	*rows, *cols = v.rows, v.cols
	return first(v.u64)
}

func (f *fakeFuncs) GetParamRow(p capi.Params, id *byte, n *uintptr) *float64 {
	v := f.get(p, id)
	*n = uintptr(len(v.f64))
	return first(v.f64)
}

func (f *fakeFuncs) GetParamURow(p capi.Params, id *byte, n *uintptr) *uint64 {
	v := f.get(p, id)
	*n = uintptr(len(v.u64))
	return first(v.u64)
}

func (f *fakeFuncs) GetParamCol(p capi.Params, id *byte, n *uintptr) *float64 {
	return f.GetParamRow(p, id, n)
}

func (f *fakeFuncs) GetParamUCol(p capi.Params, id *byte, n *uintptr) *uint64 {
	return f.GetParamURow(p, id, n)
}

// fakeBinding implements capi.BindingFuncs on top of fakeFuncs.
type fakeBinding struct {
	funcs   *fakeFuncs
	run     func(set *fakeParamSet) (capi.ErrorCode, string)
	calls   int
	deleted []capi.ModelPtr
}

func (b *fakeBinding) Run(p capi.Params, _ capi.Timers) capi.Status {
	b.calls++
	code, msg := b.run(b.funcs.set(p))
	if code == ErrorCodeOK {
		return 0
	}
	return b.funcs.newStatus(code, msg)
}

func (b *fakeBinding) SetModelPtr(p capi.Params, id *byte, ptr capi.ModelPtr) {
	b.funcs.put(p, id, &fakeValue{kind: ParamKindModel, model: ptr})
}

func (b *fakeBinding) GetModelPtr(p capi.Params, id *byte) capi.ModelPtr {
	return b.funcs.get(p, id).model
}

func (b *fakeBinding) DeleteModelPtr(ptr capi.ModelPtr) {
	b.deleted = append(b.deleted, ptr)
}

type loadCall struct {
	path, symbol, model string
	status              bool
}

// newFakeLibrary returns a Library whose binding libraries all resolve to b.
func newFakeLibrary(t *testing.T, config *Config, b *fakeBinding) (*Library, *[]loadCall) {
	t.Helper()
	var loads []loadCall
	lib := newLibrary(b.funcs, config, func(path, symbol, model string, status bool) (capi.BindingFuncs, func() error, error) {
		loads = append(loads, loadCall{path, symbol, model, status})
		return b, nil, nil
	})
	t.Cleanup(func() { lib.Close() })
	return lib, &loads
}

// nativeTestGoBinding echoes every input kind back through the C boundary.
func nativeTestGoBinding(funcs *fakeFuncs) *fakeBinding {
	b := &fakeBinding{funcs: funcs}
	b.run = func(set *fakeParamSet) (capi.ErrorCode, string) {
		in := set.values
		out := func(id string, v *fakeValue) { in[id] = v }

		s := cstrings.CStringToString(first(in["string_in"].s))
		out("string_out", &fakeValue{s: cstrings.StringToBytes(s + "2")})
		out("int_out", &fakeValue{i: in["int_in"].i + 1})
		out("double_out", &fakeValue{d: in["double_in"].d + 1})

		if m, ok := in["matrix_in"]; ok {
			doubled := make([]float64, len(m.f64))
			for i, x := range m.f64 {
				doubled[i] = 2 * x
			}
			out("matrix_out", &fakeValue{f64: doubled, rows: m.rows, cols: m.cols})
		}
		if m, ok := in["umatrix_in"]; ok {
			out("umatrix_out", &fakeValue{u64: m.u64, rows: m.rows, cols: m.cols})
		}
		if m, ok := in["matrix_and_info_in"]; ok {
			out("matrix_and_info_out", &fakeValue{f64: m.f64, rows: m.rows, cols: m.cols})
			if !m.cat[1] || m.cat[0] {
				return ErrorCodeInvalidArgument, "categorical flags lost"
			}
		}
		for _, pair := range [][2]string{{"row_in", "row_out"}, {"col_in", "col_out"}, {"urow_in", "urow_out"}, {"ucol_in", "ucol_out"}} {
			if v, ok := in[pair[0]]; ok {
				out(pair[1], v)
			}
		}
		if v, ok := in["vector_in"]; ok {
			out("vector_out", &fakeValue{ints: v.ints[:len(v.ints)-1]})
		}
		if v, ok := in["str_vector_in"]; ok {
			out("str_vector_out", &fakeValue{strs: v.strs[:len(v.strs)-1]})
		}
		if v, ok := in["build_model"]; ok && v.b {
			out("model_out", &fakeValue{model: 0xbeef})
		}
		if v, ok := in["model_in"]; ok {
			out("model_bw_out", &fakeValue{d: float64(v.model) * 2})
		}
		return ErrorCodeOK, ""
	}
	return b
}

func TestNativeMarshalsEveryKind(t *testing.T) {
	funcs := newFakeFuncs()
	fb := nativeTestGoBinding(funcs)
	lib, _ := newFakeLibrary(t, nil, fb)

	b, err := Bind(lib, TestGoBindingBinding)
	if err != nil {
		t.Fatalf("Failed to bind: %v", err)
	}

	p := newTestGoBindingParams(t)
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	p.SetMatrix("matrix_in", m)
	p.SetUMatrix("umatrix_in", m)
	p.SetMatrixWithInfo("matrix_and_info_in", &MatrixWithInfo{Data: m, Categorical: []bool{false, true, false}})
	p.SetRow("row_in", mat.NewVecDense(2, []float64{0.5, 1.5}))
	p.SetCol("col_in", mat.NewVecDense(3, []float64{1, 2, 3}))
	p.SetURow("urow_in", mat.NewVecDense(2, []float64{7, 8}))
	p.SetUCol("ucol_in", mat.NewVecDense(1, []float64{9}))
	p.SetIntSlice("vector_in", []int{1, 2, 3})
	p.SetStringSlice("str_vector_in", []string{"a", "b", "c"})
	p.SetBool("build_model", true)

	if err := b.Run(p, nil); err != nil {
		t.Fatalf("Failed to run: %v", err)
	}

	if v, _ := p.Str("string_out"); v != "hello2" {
		t.Errorf("Expected string_out hello2, got %q", v)
	}
	if v, _ := p.Int("int_out"); v != 13 {
		t.Errorf("Expected int_out 13, got %d", v)
	}
	if v, _ := p.Double("double_out"); v != 5 {
		t.Errorf("Expected double_out 5, got %v", v)
	}
	if got, err := p.Matrix("matrix_out"); err != nil || !mat.Equal(got, mat.NewDense(2, 3, []float64{2, 4, 6, 8, 10, 12})) {
		t.Errorf("Unexpected matrix_out %v (%v)", got, err)
	}
	if got, err := p.UMatrix("umatrix_out"); err != nil || !mat.Equal(got, m) {
		t.Errorf("Unexpected umatrix_out %v (%v)", got, err)
	}
	if got, err := p.Matrix("matrix_and_info_out"); err != nil || !mat.Equal(got, m) {
		t.Errorf("Unexpected matrix_and_info_out %v (%v)", got, err)
	}
	if got, err := p.Row("row_out"); err != nil || !mat.Equal(got, mat.NewVecDense(2, []float64{0.5, 1.5})) {
		t.Errorf("Unexpected row_out %v (%v)", got, err)
	}
	if got, err := p.Col("col_out"); err != nil || got.Len() != 3 {
		t.Errorf("Unexpected col_out %v (%v)", got, err)
	}
	if got, err := p.URow("urow_out"); err != nil || !mat.Equal(got, mat.NewVecDense(2, []float64{7, 8})) {
		t.Errorf("Unexpected urow_out %v (%v)", got, err)
	}
	if got, err := p.UCol("ucol_out"); err != nil || got.AtVec(0) != 9 {
		t.Errorf("Unexpected ucol_out %v (%v)", got, err)
	}
	if got, _ := p.IntSlice("vector_out"); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("Expected vector_out [1 2], got %v", got)
	}
	if got, _ := p.StringSlice("str_vector_out"); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Expected str_vector_out [a b], got %v", got)
	}

	kernel, err := b.GetPtr(p, "model_out")
	if err != nil {
		t.Fatalf("Failed to get model_out: %v", err)
	}
	if kernel.Ptr() != 0xbeef {
		t.Errorf("Expected native pointer 0xbeef, got %#x", kernel.Ptr())
	}
	kernel.Destroy()
	if !slices.Equal(fb.deleted, []capi.ModelPtr{0xbeef}) {
		t.Errorf("Expected Destroy to delete through the binding, got %v", fb.deleted)
	}

	if funcs.created != 1 || funcs.cleaned != 1 || funcs.timers != funcs.timersDone {
		t.Errorf("Expected native sets to be cleaned, got %d created, %d cleaned", funcs.created, funcs.cleaned)
	}
	if !funcs.backtraceOff || funcs.verbose {
		t.Error("Expected backtraces off and verbose output disabled")
	}
}

func TestNativeMarksPassed(t *testing.T) {
	funcs := newFakeFuncs()
	var passed map[string]bool
	fb := &fakeBinding{funcs: funcs, run: func(set *fakeParamSet) (capi.ErrorCode, string) {
		passed = set.passed
		if set.binding != "knn" {
			return ErrorCodeFail, "wrong parameter set " + set.binding
		}
		return ErrorCodeOK, ""
	}}
	lib, _ := newFakeLibrary(t, nil, fb)
	b, err := Bind(lib, KnnBinding)
	if err != nil {
		t.Fatalf("Failed to bind: %v", err)
	}

	p := NewParams()
	defer p.Close()
	p.SetMatrix("reference", mat.NewDense(1, 1, []float64{1}))
	p.SetInt("k", 1)
	if err := b.Run(p, nil); err != nil {
		t.Fatalf("Failed to run: %v", err)
	}

	for _, id := range []string{"reference", "k", "distances", "neighbors", "output_model"} {
		if !passed[id] {
			t.Errorf("Expected %q to be marked passed", id)
		}
	}
	if p.Has("output_model") {
		t.Error("Expected a zero model pointer not to be installed")
	}
}

// nativeDecisionTree trains a new model or reuses the input model in place.
func nativeDecisionTree(funcs *fakeFuncs) *fakeBinding {
	b := &fakeBinding{funcs: funcs}
	b.run = func(set *fakeParamSet) (capi.ErrorCode, string) {
		model := capi.ModelPtr(0)
		if v, ok := set.values["input_model"]; ok {
			model = v.model
		} else if _, ok := set.values["training"]; ok {
			model = 0xd7
		} else {
			return ErrorCodeMissingParameter, "training or input_model required"
		}
		set.values["output_model"] = &fakeValue{model: model}
		if test := set.doubles("test"); test != nil {
			rows := set.values["test"].rows
			set.values["predictions"] = &fakeValue{u64: make([]uint64, rows)}
		}
		return ErrorCodeOK, ""
	}
	return b
}

func TestNativeOutputModelAliasesInput(t *testing.T) {
	funcs := newFakeFuncs()
	fb := nativeDecisionTree(funcs)
	lib, _ := newFakeLibrary(t, nil, fb)
	b, err := Bind(lib, DecisionTreeBinding)
	if err != nil {
		t.Fatalf("Failed to bind: %v", err)
	}

	train := NewParams()
	defer train.Close()
	train.SetMatrix("training", mat.NewDense(2, 2, []float64{0, 0, 1, 1}))
	train.SetURow("labels", mat.NewVecDense(2, []float64{0, 1}))
	if err := b.Run(train, nil); err != nil {
		t.Fatalf("Failed to train: %v", err)
	}
	model, err := b.GetPtr(train, "output_model")
	if err != nil {
		t.Fatalf("Failed to get output model: %v", err)
	}
	defer model.Destroy()

	predict := NewParams()
	defer predict.Close()
	b.SetPtr(predict, "input_model", model)
	predict.SetMatrix("test", mat.NewDense(3, 2, nil))
	if err := b.Run(predict, nil); err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}

	out, err := b.GetPtr(predict, "output_model")
	if err != nil {
		t.Fatalf("Failed to get output model: %v", err)
	}
	if out != model {
		t.Error("Expected the output model to be the caller's input handle")
	}
	if predictions, err := predict.URow("predictions"); err != nil || predictions.Len() != 3 {
		t.Errorf("Expected 3 predictions, got %v (%v)", predictions, err)
	}
	if len(fb.deleted) != 0 {
		t.Errorf("Expected no native deletes during dispatch, got %v", fb.deleted)
	}
}

func TestNativeStatusError(t *testing.T) {
	funcs := newFakeFuncs()
	fb := &fakeBinding{funcs: funcs, run: func(*fakeParamSet) (capi.ErrorCode, string) {
		return ErrorCodeRuntimeException, "matrix is singular"
	}}
	lib, _ := newFakeLibrary(t, nil, fb)
	b, err := Bind(lib, LarsBinding)
	if err != nil {
		t.Fatalf("Failed to bind: %v", err)
	}

	p := NewParams()
	defer p.Close()
	p.SetMatrix("input", mat.NewDense(1, 1, []float64{1}))

	err = b.Run(p, nil)
	var algoErr *AlgorithmError
	if !errors.As(err, &algoErr) {
		t.Fatalf("Expected AlgorithmError, got %v", err)
	}
	if algoErr.Code != ErrorCodeRuntimeException || algoErr.Message != "matrix is singular" || algoErr.Binding != "lars" {
		t.Errorf("Unexpected error %+v", algoErr)
	}
	if funcs.released != 1 || len(funcs.statuses) != 0 {
		t.Error("Expected the native status to be released")
	}
	if funcs.cleaned != funcs.created {
		t.Error("Expected the native parameter set to be cleaned after a failure")
	}
	if p.Has("output_model") {
		t.Error("Expected no model after a failed dispatch")
	}
}

func TestNativeRejectsBeforeCall(t *testing.T) {
	funcs := newFakeFuncs()
	fb := nativeDecisionTree(funcs)
	lib, _ := newFakeLibrary(t, nil, fb)
	b, err := Bind(lib, DecisionTreeBinding)
	if err != nil {
		t.Fatalf("Failed to bind: %v", err)
	}

	tests := []struct {
		name  string
		setup func(p *Params)
		code  ErrorCode
	}{
		{"IntOverflow", func(p *Params) {
			p.SetMatrix("training", mat.NewDense(1, 1, nil))
			p.SetInt("maximum_depth", 1<<40)
		}, ErrorCodeInvalidArgument},
		{"DestroyedModel", func(p *Params) {
			DecisionTreeModelType.Set(p, "input_model", &DecisionTreeModel{})
		}, ErrorCodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParams()
			defer p.Close()
			tt.setup(p)

			calls := fb.calls
			err := b.Run(p, nil)
			var algoErr *AlgorithmError
			if !errors.As(err, &algoErr) || algoErr.Code != tt.code {
				t.Fatalf("Expected %s AlgorithmError, got %v", errorCodeName(tt.code), err)
			}
			if fb.calls != calls {
				t.Error("Expected the entry point not to be called")
			}
		})
	}
}

func TestBindLoadsLibraryOnce(t *testing.T) {
	t.Setenv(LibraryDirEnv, "")
	funcs := newFakeFuncs()
	lib, loads := newFakeLibrary(t, &Config{LibraryDir: "/opt/mlpack/lib"}, nativeDecisionTree(funcs))

	for range 3 {
		if _, err := Bind(lib, KnnBinding); err != nil {
			t.Fatalf("Failed to bind: %v", err)
		}
	}
	want := []loadCall{{"/opt/mlpack/lib/libmlpack_go_knn.so", "mlpackKnn", "KNNModel", true}}
	if !slices.Equal(*loads, want) {
		t.Errorf("Expected loads %v, got %v", want, *loads)
	}
}

func TestBindWithoutStatusExtension(t *testing.T) {
	funcs := newFakeFuncs()
	funcs.noStatus = true
	lib, loads := newFakeLibrary(t, nil, nativeDecisionTree(funcs))

	dt, err := Bind(lib, DecisionTreeBinding)
	if err != nil {
		t.Fatalf("Failed to bind: %v", err)
	}
	if len(*loads) != 1 || (*loads)[0].status {
		t.Fatalf("Expected a void entry point to be requested, got %v", *loads)
	}

	p := NewParams()
	defer p.Close()
	p.SetMatrix("training", mat.NewDense(2, 1, []float64{0, 1}))
	p.SetURow("labels", mat.NewVecDense(2, []float64{0, 1}))
	if err := dt.Run(p, nil); err != nil {
		t.Fatalf("Failed to run: %v", err)
	}
	if funcs.released != 0 {
		t.Errorf("Expected no status to be released, got %d", funcs.released)
	}
}

func TestBindLoadError(t *testing.T) {
	funcs := newFakeFuncs()
	lib := newLibrary(funcs, nil, func(path, symbol, model string, _ bool) (capi.BindingFuncs, func() error, error) {
		return nil, nil, fmt.Errorf("symbol %s not found", symbol)
	})
	defer lib.Close()

	if _, err := Bind(lib, GmmTrainBinding); err == nil {
		t.Error("Expected error for a library without the entry point")
	}
	if _, err := Bind[GMM](nil, GmmTrainBinding); err == nil {
		t.Error("Expected error for nil library")
	}
}

func TestLibraryClose(t *testing.T) {
	funcs := newFakeFuncs()
	fb := nativeDecisionTree(funcs)
	closes := 0
	lib := newLibrary(funcs, &Config{Verbose: true}, func(string, string, string, bool) (capi.BindingFuncs, func() error, error) {
		return fb, func() error { closes++; return nil }, nil
	})

	b, err := Bind(lib, DecisionTreeBinding)
	if err != nil {
		t.Fatalf("Failed to bind: %v", err)
	}
	p := NewParams()
	defer p.Close()
	p.SetMatrix("training", mat.NewDense(1, 1, nil))
	if err := b.Run(p, nil); err != nil {
		t.Fatalf("Failed to run: %v", err)
	}
	if !funcs.verbose {
		t.Error("Expected verbose output to be enabled")
	}

	if err := lib.Close(); err != nil {
		t.Fatalf("Failed to close library: %v", err)
	}
	lib.Close()
	if closes != 1 {
		t.Errorf("Expected one library unload, got %d", closes)
	}

	if _, err := Bind(lib, DecisionTreeBinding); !errors.Is(err, ErrLibraryClosed) {
		t.Errorf("Expected ErrLibraryClosed from Bind, got %v", err)
	}
	p2 := NewParams()
	defer p2.Close()
	p2.SetMatrix("training", mat.NewDense(1, 1, nil))
	if err := b.Run(p2, nil); !errors.Is(err, ErrLibraryClosed) {
		t.Errorf("Expected ErrLibraryClosed from Run, got %v", err)
	}
}
