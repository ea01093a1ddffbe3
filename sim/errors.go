package sim

import "errors"

var (
	// ErrNilConfig is returned when an engine or runner is built
	// without a configuration.
	ErrNilConfig = errors.New("configuration is nil")

	// ErrNilFile is returned when an engine is built without a
	// register file.
	ErrNilFile = errors.New("register file is nil")

	// ErrLayoutMismatch is returned when the register file layout does
	// not match the configured lattice and worker count.
	ErrLayoutMismatch = errors.New("register layout does not match configuration")

	// ErrWorkerFailure is returned when a worker panics mid-round. The
	// run aborts and the register file keeps its imported state.
	ErrWorkerFailure = errors.New("worker failure")
)
