package v4

import (
	"fmt"

	"github.com/benedoc-inc/mlbind/mlpack/internal/capi"
	"github.com/ebitengine/purego"
)

// BindingFuncs contains cached function pointers of one binding library.
type BindingFuncs struct {
	run            func(capi.Params, capi.Timers) capi.Status
	runVoid        func(capi.Params, capi.Timers)
	setModelPtr    func(capi.Params, *byte, capi.ModelPtr)
	getModelPtr    func(capi.Params, *byte) capi.ModelPtr
	deleteModelPtr func(capi.ModelPtr)
}

// LoadBinding binds the entry point and the model accessor pair of a binding library.
// runSymbol is the entry point (e.g. "mlpackDecisionTree") and modelType the
// native model type name (e.g. "DecisionTreeModel"). withStatus selects the
// entry point signature: a returned status object, or void as in stock mlpack.
func LoadBinding(libraryHandle uintptr, runSymbol, modelType string, withStatus bool) (*BindingFuncs, error) {
	funcs := &BindingFuncs{}

	entry := any(&funcs.runVoid)
	if withStatus {
		entry = &funcs.run
	}
	if err := register(entry, libraryHandle, runSymbol); err != nil {
		return nil, err
	}
	if err := register(&funcs.setModelPtr, libraryHandle, "mlpackSet"+modelType+"Ptr"); err != nil {
		return nil, err
	}
	if err := register(&funcs.getModelPtr, libraryHandle, "mlpackGet"+modelType+"Ptr"); err != nil {
		return nil, err
	}

	// The deleter is an extension; stock mlpack libraries do not export it.
	if sym, err := purego.Dlsym(libraryHandle, "mlpackDelete"+modelType+"Ptr"); err == nil {
		purego.RegisterFunc(&funcs.deleteModelPtr, sym)
	}

	if funcs.run == nil && funcs.runVoid == nil {
		return nil, fmt.Errorf("entry point %s could not be bound", runSymbol)
	}
	return funcs, nil
}

// Run calls the entry point. A void entry point always reports success.
func (f *BindingFuncs) Run(params capi.Params, timers capi.Timers) capi.Status {
	if f.run == nil {
		f.runVoid(params, timers)
		return 0
	}
	return f.run(params, timers)
}

func (f *BindingFuncs) SetModelPtr(params capi.Params, identifier *byte, ptr capi.ModelPtr) {
	f.setModelPtr(params, identifier, ptr)
}

func (f *BindingFuncs) GetModelPtr(params capi.Params, identifier *byte) capi.ModelPtr {
	return f.getModelPtr(params, identifier)
}

func (f *BindingFuncs) DeleteModelPtr(ptr capi.ModelPtr) {
	if f.deleteModelPtr == nil || ptr == 0 {
		return
	}
	f.deleteModelPtr(ptr)
}
