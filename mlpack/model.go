package mlpack

import (
	"fmt"

	"github.com/benedoc-inc/mlbind/mlpack/internal/capi"
)

// Handle is an opaque reference to a native model object.
// Concrete model types embed Handle.
//
// A Handle must be destroyed exactly once, by whoever owns it last. Storing it
// in or reading it from a Params never transfers or duplicates ownership.
type Handle struct {
	ptr     capi.ModelPtr
	release func(capi.ModelPtr)
}

func newHandle(ptr capi.ModelPtr, release func(capi.ModelPtr)) Handle {
	return Handle{ptr: ptr, release: release}
}

// Ptr returns the native pointer, or 0 after Destroy.
func (h *Handle) Ptr() uintptr {
	return uintptr(h.ptr)
}

// Valid reports whether the handle still refers to a native object.
func (h *Handle) Valid() bool {
	return h.ptr != 0
}

// Destroy frees the native object through the library that produced it.
// It is safe to call Destroy multiple times.
func (h *Handle) Destroy() {
	if h.ptr != 0 && h.release != nil {
		h.release(h.ptr)
	}
	h.ptr = 0
}

func (h *Handle) handle() *Handle {
	return h
}

// nativeModel is satisfied by pointers to every type that embeds Handle.
type nativeModel interface {
	handle() *Handle
}

// ModelType is the accessor pair of one model kind. Handles stored through a
// ModelType can only be read back through a ModelType with the same name;
// any other accessor fails with a TypeMismatchError.
type ModelType[T any] struct {
	name string
}

// NewModelType declares a model kind. name is the native type name used in
// the binding library symbols (mlpackSet<name>Ptr, mlpackGet<name>Ptr).
func NewModelType[T any](name string) *ModelType[T] {
	return &ModelType[T]{name: name}
}

// Name returns the model type name.
func (mt *ModelType[T]) Name() string {
	return mt.name
}

// Set installs model under identifier, replacing any previous value.
// The previous value is not destroyed.
func (mt *ModelType[T]) Set(p *Params, identifier string, model *T) error {
	if model == nil {
		return fmt.Errorf("parameter %q: %s handle cannot be nil", identifier, mt.name)
	}
	return p.set(identifier, param{kind: ParamKindModel, tag: mt.name, value: model})
}

// Get returns the handle stored under identifier. Repeated calls return the
// same pointer; the context keeps it.
func (mt *ModelType[T]) Get(p *Params, identifier string) (*T, error) {
	v, err := p.get(identifier, ParamKindModel)
	if err != nil {
		if mismatch, ok := err.(*TypeMismatchError); ok {
			mismatch.Want = mt.name
		}
		return nil, err
	}
	if v.tag != mt.name {
		return nil, &TypeMismatchError{Identifier: identifier, Want: mt.name, Got: v.tag}
	}
	model, ok := v.value.(*T)
	if !ok {
		return nil, &TypeMismatchError{Identifier: identifier, Want: mt.name, Got: fmt.Sprintf("%T", v.value)}
	}
	return model, nil
}

// modelTag returns the model type name stored under identifier.
func (p *Params) modelTag(identifier string) (string, bool) {
	if p.closed {
		return "", false
	}
	v, ok := p.values[identifier]
	if !ok || v.kind != ParamKindModel {
		return "", false
	}
	return v.tag, true
}
