package pool

import "errors"

var (
	// ErrTimeout is returned when a batch does not complete within the
	// duration configured with WithTimeout. No BatchResult accompanies it.
	ErrTimeout = errors.New("pool: batch timed out")

	// ErrWorkerPanic wraps a panic raised by a unit of work. The unit is
	// recorded as a failure; the batch carries on.
	ErrWorkerPanic = errors.New("worker panic")
)
