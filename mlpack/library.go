package mlpack

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/benedoc-inc/mlbind/internal/cstrings"
	"github.com/benedoc-inc/mlbind/mlpack/internal/capi"
	v4 "github.com/benedoc-inc/mlbind/mlpack/internal/capi/v4"
)

// bindingLoader opens the library of one binding and binds its entry point
// and model accessors. withStatus selects an entry point returning a status
// over a void one. The returned closer unloads the library.
type bindingLoader func(path, symbol, modelType string, withStatus bool) (capi.BindingFuncs, func() error, error)

// Library is a loaded set of native mlpack binding libraries.
//
// The utility library is loaded by OpenLibrary; binding libraries are loaded
// on first use by Bind and cached. A Library is safe for concurrent use.
type Library struct {
	mu     sync.Mutex
	config *Config
	funcs  capi.Funcs
	logger *slog.Logger
	load   bindingLoader

	bindings map[string]capi.BindingFuncs
	closers  []func() error
	closed   bool
}

// OpenLibrary loads the utility library described by config and binds its
// parameter functions. config may be nil.
func OpenLibrary(config *Config) (*Library, error) {
	path := config.utilPath()
	handle, err := v4.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open utility library: %w", err)
	}

	funcs, err := v4.InitializeFuncs(handle)
	if err != nil {
		v4.Close(handle)
		return nil, fmt.Errorf("failed to initialize utility functions: %w", err)
	}

	lib := newLibrary(funcs, config, loadNativeBinding)
	lib.closers = append(lib.closers, func() error { return v4.Close(handle) })
	lib.logger.Debug("utility library loaded",
		slog.String("path", path),
		slog.Bool("status", funcs.ReportsStatus()),
	)
	return lib, nil
}

func newLibrary(funcs capi.Funcs, config *Config, load bindingLoader) *Library {
	return &Library{
		config:   config,
		funcs:    funcs,
		logger:   config.logger(),
		load:     load,
		bindings: make(map[string]capi.BindingFuncs),
	}
}

func loadNativeBinding(path, symbol, modelType string, withStatus bool) (capi.BindingFuncs, func() error, error) {
	handle, err := v4.Open(path)
	if err != nil {
		return nil, nil, err
	}
	funcs, err := v4.LoadBinding(handle, symbol, modelType, withStatus)
	if err != nil {
		v4.Close(handle)
		return nil, nil, err
	}
	return funcs, func() error { return v4.Close(handle) }, nil
}

// Available reports whether the library file of the named binding exists.
// It only inspects LibraryDir; without one it reports false.
func (l *Library) Available(name string) bool {
	if l.config.libraryDir() == "" {
		return false
	}
	_, err := os.Stat(l.config.bindingPath(name))
	return err == nil
}

// Close unloads every library. Model handles created through the library
// must be destroyed before Close.
// It is safe to call Close multiple times.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	var firstErr error
	for i := len(l.closers) - 1; i >= 0; i-- {
		if err := l.closers[i](); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close library: %w", err)
		}
	}
	l.closers = nil
	l.bindings = nil
	return firstErr
}

// binding returns the cached functions of a binding, loading its library on first use.
func (l *Library) binding(name, symbol, modelType string) (capi.BindingFuncs, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, ErrLibraryClosed
	}
	if funcs, ok := l.bindings[name]; ok {
		return funcs, nil
	}

	path := l.config.bindingPath(name)
	funcs, closer, err := l.load(path, symbol, modelType, l.funcs.ReportsStatus())
	if err != nil {
		return nil, fmt.Errorf("failed to load binding %s: %w", name, err)
	}
	l.bindings[name] = funcs
	if closer != nil {
		l.closers = append(l.closers, closer)
	}
	l.logger.Debug("binding library loaded",
		slog.String("binding", name),
		slog.String("path", path),
		slog.String("symbol", symbol),
		slog.String("model", modelType),
		slog.Bool("status", l.funcs.ReportsStatus()),
	)
	return funcs, nil
}

// isClosed reports whether Close was called.
func (l *Library) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// applyOutputControl sets the native output flags before a dispatch.
func (l *Library) applyOutputControl() {
	l.funcs.DisableBacktrace()
	if l.config.verbose() {
		l.funcs.EnableVerbose()
	} else {
		l.funcs.DisableVerbose()
	}
}

// statusError converts a native status into an error, releasing the status.
func (l *Library) statusError(binding string, status capi.Status) error {
	if status == 0 {
		return nil
	}
	defer l.funcs.ReleaseStatus(status)

	code := l.funcs.GetErrorCode(status)
	msg := cstrings.CStringToString(l.funcs.GetErrorMessage(status))
	if code == ErrorCodeOK {
		code = ErrorCodeFail
	}
	return &AlgorithmError{
		Binding: binding,
		Code:    code,
		Message: msg,
	}
}
