package mlpack

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// MatrixWithInfo is a matrix whose dimensions (columns) may be categorical.
// A nil Categorical slice marks every dimension as numeric.
type MatrixWithInfo struct {
	Data        *mat.Dense
	Categorical []bool
}

type param struct {
	kind ParamKind
	// tag is the model type name for ParamKindModel.
	tag   string
	value any
}

// Params is the execution context of one dispatch. It maps parameter
// identifiers to values; each identifier holds exactly one value.
//
// Params keeps references to the tables and models it is given rather than
// copies. A Params is NOT safe for concurrent use. Independent Params values
// share nothing and may be used from different goroutines.
type Params struct {
	values map[string]param
	closed bool
	// failed records the error of a failed dispatch; outputs are unreadable afterwards.
	failed error
}

// NewParams creates an empty execution context.
func NewParams() *Params {
	return &Params{values: make(map[string]param)}
}

// Close drops every reference held by the context. Model handles are not
// destroyed; they remain owned by whoever holds them.
// It is safe to call Close multiple times.
func (p *Params) Close() {
	p.values = nil
	p.closed = true
}

// Has reports whether identifier holds a value.
func (p *Params) Has(identifier string) bool {
	if p.closed {
		return false
	}
	_, ok := p.values[identifier]
	return ok
}

// Kind returns the kind of the value stored under identifier.
func (p *Params) Kind(identifier string) (ParamKind, bool) {
	if p.closed {
		return ParamKindInvalid, false
	}
	v, ok := p.values[identifier]
	return v.kind, ok
}

// Identifiers returns all identifiers in sorted order.
func (p *Params) Identifiers() []string {
	if p.closed {
		return nil
	}
	return slices.Sorted(maps.Keys(p.values))
}

// Len returns the number of stored identifiers.
func (p *Params) Len() int {
	return len(p.values)
}

// Delete removes identifier. A model handle stored there is not destroyed.
func (p *Params) Delete(identifier string) {
	if p.closed {
		return
	}
	delete(p.values, identifier)
}

// Failed returns the error of the failed dispatch that made this context
// unusable, or nil.
func (p *Params) Failed() error {
	return p.failed
}

func (p *Params) usable() error {
	if p.closed {
		return ErrParamsClosed
	}
	if p.failed != nil {
		return fmt.Errorf("%w: %v", ErrDispatchFailed, p.failed)
	}
	return nil
}

func (p *Params) set(identifier string, v param) error {
	if err := p.usable(); err != nil {
		return err
	}
	p.values[identifier] = v
	return nil
}

func (p *Params) get(identifier string, kind ParamKind) (param, error) {
	if err := p.usable(); err != nil {
		return param{}, err
	}
	v, ok := p.values[identifier]
	if !ok {
		return param{}, &NotFoundError{Identifier: identifier}
	}
	if v.kind != kind {
		return param{}, &TypeMismatchError{Identifier: identifier, Want: kind.String(), Got: v.describe()}
	}
	return v, nil
}

func (v param) describe() string {
	if v.kind == ParamKindModel {
		return v.tag
	}
	return v.kind.String()
}

// SetBool stores a boolean flag.
func (p *Params) SetBool(identifier string, value bool) error {
	return p.set(identifier, param{kind: ParamKindBool, value: value})
}

// Bool returns the boolean flag stored under identifier.
func (p *Params) Bool(identifier string) (bool, error) {
	v, err := p.get(identifier, ParamKindBool)
	if err != nil {
		return false, err
	}
	return v.value.(bool), nil
}

// SetInt stores an integer.
func (p *Params) SetInt(identifier string, value int) error {
	return p.set(identifier, param{kind: ParamKindInt, value: value})
}

// Int returns the integer stored under identifier.
func (p *Params) Int(identifier string) (int, error) {
	v, err := p.get(identifier, ParamKindInt)
	if err != nil {
		return 0, err
	}
	return v.value.(int), nil
}

// SetDouble stores a float64.
func (p *Params) SetDouble(identifier string, value float64) error {
	return p.set(identifier, param{kind: ParamKindDouble, value: value})
}

// Double returns the float64 stored under identifier.
func (p *Params) Double(identifier string) (float64, error) {
	v, err := p.get(identifier, ParamKindDouble)
	if err != nil {
		return 0, err
	}
	return v.value.(float64), nil
}

// SetString stores a string.
func (p *Params) SetString(identifier string, value string) error {
	return p.set(identifier, param{kind: ParamKindString, value: value})
}

// Str returns the string stored under identifier.
func (p *Params) Str(identifier string) (string, error) {
	v, err := p.get(identifier, ParamKindString)
	if err != nil {
		return "", err
	}
	return v.value.(string), nil
}

// SetIntSlice stores a vector of integers.
func (p *Params) SetIntSlice(identifier string, values []int) error {
	return p.set(identifier, param{kind: ParamKindIntSlice, value: values})
}

// IntSlice returns the vector of integers stored under identifier.
func (p *Params) IntSlice(identifier string) ([]int, error) {
	v, err := p.get(identifier, ParamKindIntSlice)
	if err != nil {
		return nil, err
	}
	return v.value.([]int), nil
}

// SetStringSlice stores a vector of strings.
func (p *Params) SetStringSlice(identifier string, values []string) error {
	return p.set(identifier, param{kind: ParamKindStringSlice, value: values})
}

// StringSlice returns the vector of strings stored under identifier.
func (p *Params) StringSlice(identifier string) ([]string, error) {
	v, err := p.get(identifier, ParamKindStringSlice)
	if err != nil {
		return nil, err
	}
	return v.value.([]string), nil
}

// SetMatrix stores a dense matrix whose rows are points.
func (p *Params) SetMatrix(identifier string, m *mat.Dense) error {
	if m == nil {
		return fmt.Errorf("parameter %q: matrix cannot be nil", identifier)
	}
	return p.set(identifier, param{kind: ParamKindMatrix, value: m})
}

// Matrix returns the dense matrix stored under identifier.
func (p *Params) Matrix(identifier string) (*mat.Dense, error) {
	v, err := p.get(identifier, ParamKindMatrix)
	if err != nil {
		return nil, err
	}
	return v.value.(*mat.Dense), nil
}

// SetUMatrix stores a dense matrix of non-negative integers.
func (p *Params) SetUMatrix(identifier string, m *mat.Dense) error {
	if m == nil {
		return fmt.Errorf("parameter %q: matrix cannot be nil", identifier)
	}
	if err := checkUnsigned(identifier, m); err != nil {
		return err
	}
	return p.set(identifier, param{kind: ParamKindUMatrix, value: m})
}

// UMatrix returns the unsigned matrix stored under identifier.
func (p *Params) UMatrix(identifier string) (*mat.Dense, error) {
	v, err := p.get(identifier, ParamKindUMatrix)
	if err != nil {
		return nil, err
	}
	return v.value.(*mat.Dense), nil
}

// SetRow stores a row vector.
func (p *Params) SetRow(identifier string, v *mat.VecDense) error {
	return p.setVector(identifier, ParamKindRow, v)
}

// Row returns the row vector stored under identifier.
func (p *Params) Row(identifier string) (*mat.VecDense, error) {
	return p.vector(identifier, ParamKindRow)
}

// SetURow stores a row vector of non-negative integers.
func (p *Params) SetURow(identifier string, v *mat.VecDense) error {
	return p.setVector(identifier, ParamKindURow, v)
}

// URow returns the unsigned row vector stored under identifier.
func (p *Params) URow(identifier string) (*mat.VecDense, error) {
	return p.vector(identifier, ParamKindURow)
}

// SetCol stores a column vector.
func (p *Params) SetCol(identifier string, v *mat.VecDense) error {
	return p.setVector(identifier, ParamKindCol, v)
}

// Col returns the column vector stored under identifier.
func (p *Params) Col(identifier string) (*mat.VecDense, error) {
	return p.vector(identifier, ParamKindCol)
}

// SetUCol stores a column vector of non-negative integers.
func (p *Params) SetUCol(identifier string, v *mat.VecDense) error {
	return p.setVector(identifier, ParamKindUCol, v)
}

// UCol returns the unsigned column vector stored under identifier.
func (p *Params) UCol(identifier string) (*mat.VecDense, error) {
	return p.vector(identifier, ParamKindUCol)
}

func (p *Params) setVector(identifier string, kind ParamKind, v *mat.VecDense) error {
	if v == nil {
		return fmt.Errorf("parameter %q: vector cannot be nil", identifier)
	}
	if kind == ParamKindURow || kind == ParamKindUCol {
		if err := checkUnsigned(identifier, v); err != nil {
			return err
		}
	}
	return p.set(identifier, param{kind: kind, value: v})
}

func (p *Params) vector(identifier string, kind ParamKind) (*mat.VecDense, error) {
	v, err := p.get(identifier, kind)
	if err != nil {
		return nil, err
	}
	return v.value.(*mat.VecDense), nil
}

// SetMatrixWithInfo stores a matrix with categorical dimension info.
func (p *Params) SetMatrixWithInfo(identifier string, m *MatrixWithInfo) error {
	if m == nil || m.Data == nil {
		return fmt.Errorf("parameter %q: matrix cannot be nil", identifier)
	}
	if _, cols := m.Data.Dims(); m.Categorical != nil && len(m.Categorical) != cols {
		return fmt.Errorf("parameter %q: %d categorical flags for %d dimensions", identifier, len(m.Categorical), cols)
	}
	return p.set(identifier, param{kind: ParamKindMatrixWithInfo, value: m})
}

// MatrixWithInfo returns the matrix with info stored under identifier.
func (p *Params) MatrixWithInfo(identifier string) (*MatrixWithInfo, error) {
	v, err := p.get(identifier, ParamKindMatrixWithInfo)
	if err != nil {
		return nil, err
	}
	return v.value.(*MatrixWithInfo), nil
}

// checkUnsigned rejects negative or fractional cells.
func checkUnsigned(identifier string, m mat.Matrix) error {
	rows, cols := m.Dims()
	for i := range rows {
		for j := range cols {
			x := m.At(i, j)
			if x < 0 || x != math.Trunc(x) {
				return fmt.Errorf("parameter %q: value %v at (%d, %d) is not a non-negative integer", identifier, x, i, j)
			}
		}
	}
	return nil
}
