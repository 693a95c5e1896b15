// Package mlpack exposes mlpack's command-line programs ("bindings") to Go
// through a typed handle registry and a per-binding dispatcher.
//
// A Params value is the execution context of one dispatch: it maps parameter
// identifiers to scalars, gonum tables and model handles. Each model kind has
// its own ModelType accessor pair, so a handle can only be stored and
// retrieved through the accessor of its own type. A Binding runs one
// algorithm against a Params value and writes its outputs back into it.
//
// Native bindings are loaded at runtime with purego, without cgo. Any Go
// function satisfying Algorithm can be dispatched the same way.
package mlpack
