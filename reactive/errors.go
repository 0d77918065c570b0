package reactive

import "errors"

var (
	// ErrInvalidOperation is returned on illegal API use: writing to a computed,
	// a nil callback, an unbalanced EndBatch or a mistyped SetAny.
	ErrInvalidOperation = errors.New("reactive: invalid operation")

	// ErrCircularDependency is returned when a computed or effect is asked to
	// evaluate while it is already evaluating. It is never retried.
	ErrCircularDependency = errors.New("reactive: circular dependency")
)
