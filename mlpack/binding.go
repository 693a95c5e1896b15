package mlpack

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Algorithm is the numerical routine behind a binding. It reads its inputs
// from p and writes its outputs back into p.
type Algorithm interface {
	Run(p *Params, t *Timers) error
}

// AlgorithmFunc adapts an ordinary function to the Algorithm interface.
type AlgorithmFunc func(p *Params, t *Timers) error

func (f AlgorithmFunc) Run(p *Params, t *Timers) error {
	return f(p, t)
}

// Output describes one documented output parameter of a binding.
type Output struct {
	Name string
	Kind ParamKind
}

// ConstraintKind selects how many parameters of a Constraint group must be set.
type ConstraintKind int

const (
	// AtLeastOne requires one or more parameters of the group.
	AtLeastOne ConstraintKind = iota
	// ExactlyOne requires exactly one parameter of the group.
	ExactlyOne
)

// Constraint is a group of parameters validated together before dispatch,
// e.g. "training" and "input_model" for a classifier.
type Constraint struct {
	Kind   ConstraintKind
	Params []string
}

func (c Constraint) check(p *Params) error {
	n := 0
	for _, id := range c.Params {
		if p.Has(id) {
			n++
		}
	}
	quoted := make([]string, len(c.Params))
	for i, id := range c.Params {
		quoted[i] = fmt.Sprintf("%q", id)
	}
	switch c.Kind {
	case ExactlyOne:
		if n != 1 {
			return fmt.Errorf("exactly one of %s must be specified, got %d", strings.Join(quoted, ", "), n)
		}
	default:
		if n == 0 {
			return fmt.Errorf("at least one of %s must be specified", strings.Join(quoted, ", "))
		}
	}
	return nil
}

// BindingSpec describes one binding: its name, model type, and parameter contract.
type BindingSpec[T any] struct {
	// Name is the mlpack program name, e.g. "decision_tree".
	Name string

	// Models is the accessor pair of the binding's model type.
	Models *ModelType[T]

	// InputModel is the identifier of the model consumed by the binding, if any.
	InputModel string

	// Outputs lists the documented outputs in the order the binding emits them.
	Outputs []Output

	// Required parameters must be present before dispatch.
	Required []string

	// Constraints are parameter groups validated before dispatch.
	Constraints []Constraint

	// Incremental reports that the binding may update the model supplied under
	// InputModel in place. The output model then aliases the input: both
	// identifiers hold the same handle, which must be destroyed once.
	Incremental bool
}

// Symbol returns the native entry point name, e.g. "mlpackDecisionTree".
func (s *BindingSpec[T]) Symbol() string {
	return "mlpack" + camelCase(s.Name)
}

// OutputModel returns the identifier of the model output, or "" if the
// binding emits no model.
func (s *BindingSpec[T]) OutputModel() string {
	for _, out := range s.Outputs {
		if out.Kind == ParamKindModel {
			return out.Name
		}
	}
	return ""
}

func (s *BindingSpec[T]) validate(p *Params) error {
	for _, id := range s.Required {
		if !p.Has(id) {
			return &AlgorithmError{
				Binding: s.Name,
				Code:    ErrorCodeMissingParameter,
				Message: fmt.Sprintf("missing required parameter %q", id),
			}
		}
	}
	for _, c := range s.Constraints {
		if err := c.check(p); err != nil {
			return &AlgorithmError{Binding: s.Name, Code: ErrorCodeInvalidArgument, Message: err.Error()}
		}
	}
	if s.InputModel != "" && p.Has(s.InputModel) {
		if _, err := s.Models.Get(p, s.InputModel); err != nil {
			return &AlgorithmError{Binding: s.Name, Code: ErrorCodeInvalidArgument, Message: err.Error(), Err: err}
		}
	}
	return nil
}

// camelCase converts a snake_case program name to the CamelCase used in
// native symbols ("approx_kfn" -> "ApproxKfn").
func camelCase(name string) string {
	var b strings.Builder
	for part := range strings.SplitSeq(name, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// Option configures a Binding.
type Option func(*bindingConfig)

type bindingConfig struct {
	hooks  []Hook
	logger *slog.Logger
}

// WithHooks adds hooks called around every dispatch.
func WithHooks(hooks ...Hook) Option {
	return func(c *bindingConfig) {
		c.hooks = append(c.hooks, hooks...)
	}
}

// WithLogger sets the logger used for dispatch debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *bindingConfig) {
		c.logger = logger
	}
}

// Binding is one algorithm's entry point plus its model accessor pair.
// A Binding holds no per-call state; it is safe to dispatch concurrently on
// independent Params.
type Binding[T any] struct {
	spec   *BindingSpec[T]
	algo   Algorithm
	hooks  []Hook
	logger *slog.Logger
}

// NewBinding creates a Binding that runs algo for spec.
func NewBinding[T any](spec *BindingSpec[T], algo Algorithm, opts ...Option) *Binding[T] {
	config := &bindingConfig{}
	for _, opt := range opts {
		opt(config)
	}
	logger := config.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Binding[T]{
		spec:   spec,
		algo:   algo,
		hooks:  config.hooks,
		logger: logger,
	}
}

// Name returns the binding name.
func (b *Binding[T]) Name() string {
	return b.spec.Name
}

// Spec returns the binding description.
func (b *Binding[T]) Spec() *BindingSpec[T] {
	return b.spec
}

// Run dispatches the binding against p. t may be nil.
//
// Required parameters and constraint groups are checked before the algorithm
// runs. On failure p is marked failed: its outputs can no longer be read and
// it must be discarded. Model handles supplied as inputs stay owned by the
// caller and are never destroyed by Run.
func (b *Binding[T]) Run(p *Params, t *Timers) error {
	if p == nil {
		return fmt.Errorf("params cannot be nil")
	}
	if err := p.usable(); err != nil {
		return err
	}
	if err := b.spec.validate(p); err != nil {
		p.failed = err
		b.logger.Debug("dispatch rejected", slog.String("binding", b.spec.Name), slog.String("error", err.Error()))
		return err
	}

	info := &DispatchInfo{
		Binding: b.spec.Name,
		Inputs:  p.Identifiers(),
	}
	for _, h := range b.hooks {
		h.BeforeDispatch(info)
	}

	t.Start(b.spec.Name)
	start := time.Now()
	err := b.algo.Run(p, t)
	elapsed := time.Since(start)
	t.Stop(b.spec.Name)

	if err != nil {
		err = b.algorithmError(err)
		p.failed = err
	}

	info.Duration = elapsed
	info.Error = err
	if err == nil {
		for _, out := range b.spec.Outputs {
			if p.Has(out.Name) {
				info.Outputs = append(info.Outputs, out.Name)
			}
		}
	}

	for _, h := range b.hooks {
		h.AfterDispatch(info)
	}

	b.logger.Debug("dispatch finished",
		slog.String("binding", b.spec.Name),
		slog.Duration("duration", elapsed),
		slog.Bool("ok", err == nil),
	)
	return err
}

// algorithmError turns err into an *AlgorithmError attributed to this binding.
func (b *Binding[T]) algorithmError(err error) error {
	var algoErr *AlgorithmError
	if errors.As(err, &algoErr) {
		if algoErr.Binding == "" {
			algoErr.Binding = b.spec.Name
		}
		return algoErr
	}
	return &AlgorithmError{
		Binding: b.spec.Name,
		Code:    ErrorCodeFail,
		Message: err.Error(),
		Err:     err,
	}
}

// SetPtr installs a model handle of the binding's model type.
func (b *Binding[T]) SetPtr(p *Params, identifier string, model *T) error {
	return b.spec.Models.Set(p, identifier, model)
}

// GetPtr returns the model handle of the binding's model type stored under identifier.
func (b *Binding[T]) GetPtr(p *Params, identifier string) (*T, error) {
	return b.spec.Models.Get(p, identifier)
}
