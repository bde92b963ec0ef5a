package rendergraph

import "github.com/cockroachdb/errors"

var (
	// ErrStaleResource is returned for a ResourceID from an earlier epoch of the graph, or for a
	// version that has already been superseded by a write
	ErrStaleResource = errors.New("stale resource id")
	// ErrInvalidResource is returned for a ResourceID the graph never issued
	ErrInvalidResource = errors.New("invalid resource id")
	// ErrUninitialisedRead is returned when a pass reads a resource that nothing has written
	ErrUninitialisedRead = errors.New("read of uninitialised resource")
	// ErrCycle is returned by Compile when passes depend on each other in a loop
	ErrCycle = errors.New("dependency cycle")
	// ErrNoProducer is returned when a resource that must have been written by a pass was not
	ErrNoProducer = errors.New("resource has no producer")
	// ErrNotCompiled is returned by Execute before a successful Compile
	ErrNotCompiled = errors.New("render graph has not been compiled")
	// ErrWrongKind is returned when a buffer is used as an image or the other way round
	ErrWrongKind = errors.New("resource is the wrong kind")
	// ErrStalePass is returned when a pass from before the last Reset declares a read or write
	ErrStalePass = errors.New("pass does not belong to the current graph")
)
