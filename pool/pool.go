package pool

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WorkerPool runs a function over a batch of inputs with a fixed number of
// concurrent workers, recording every input's success or failure.
//
// A WorkerPool holds configuration only; workers exist for the duration of a
// single Run or RunWithRetry call. It is safe to use from several goroutines.
//
// Type parameters:
//   - T: The input type
//   - R: The result type
type WorkerPool[T any, R any] struct {
	conf *processorConfig[T, R]
}

// NewWorkerPool creates a new worker pool with the given options.
//
// Default configuration:
//   - workerCount: DefaultWorkerCount (10)
//   - timeout: none
//   - params: empty
//   - retries: DefaultRetries (5)
//   - round backoff: none
//   - logger: the global zerolog logger
//
// Panics if a WithOnTaskEnd hook does not match T and R.
//
// Example:
//
//	pool := NewWorkerPool[string, []byte](
//	    WithWorkerCount(8),
//	    WithTimeout(30*time.Second),
//	    WithParams(Params{"region": "eu"}),
//	)
func NewWorkerPool[T any, R any](opts ...WorkerPoolOption) *WorkerPool[T, R] {
	return &WorkerPool[T, R]{
		conf: createConfig[T, R](opts...),
	}
}

// Run executes processFn once per input and waits for every unit to finish.
//
// Every input is queued before the first result is awaited. At most
// workerCount units run at the same time. A failing or panicking unit is
// recorded in BatchResult.Failures and never stops the others.
//
// Parameters:
//   - ctx: Context for cancellation; also handed to every unit
//   - inputs: Inputs to process
//   - processFn: Function run for each input
//
// Returns:
//   - result: Successes and failures in completion order, with
//     len(Successes)+len(Failures) == len(inputs)
//   - error: ErrTimeout (wrapped) when the batch timeout elapses, or ctx.Err()
//     when ctx is done first; result is nil in both cases
//
// Example:
//
//	res, err := pool.Run(ctx, urls, func(ctx context.Context, u string, p Params) ([]byte, error) {
//	    return fetch(ctx, u)
//	})
//	if err != nil {
//	    return err
//	}
//	for _, f := range res.Failures {
//	    log.Printf("%s: %v", f.Input, f.Err)
//	}
func (wp *WorkerPool[T, R]) Run(
	ctx context.Context,
	inputs []T,
	processFn ProcessFunc[T, R],
) (*BatchResult[T, R], error) {
	start := time.Now()
	id := uuid.New()

	successes, failures, err := newBatch(id, 0, inputs, processFn, wp.conf).run(ctx)
	if err != nil {
		return nil, err
	}

	return &BatchResult[T, R]{
		ID:        id,
		Successes: successes,
		Failures:  failures,
		Elapsed:   time.Since(start),
		PeakRSS:   samplePeakRSS(wp.conf.logger),
		Rounds:    1,
	}, nil
}

// Run is shorthand for NewWorkerPool[T, R](opts...).Run(ctx, inputs, processFn).
func Run[T any, R any](
	ctx context.Context,
	inputs []T,
	processFn ProcessFunc[T, R],
	opts ...WorkerPoolOption,
) (*BatchResult[T, R], error) {
	return NewWorkerPool[T, R](opts...).Run(ctx, inputs, processFn)
}

// RunWithRetry is shorthand for NewWorkerPool[T, R](opts...).RunWithRetry(ctx, inputs, processFn).
func RunWithRetry[T any, R any](
	ctx context.Context,
	inputs []T,
	processFn ProcessFunc[T, R],
	opts ...WorkerPoolOption,
) (*BatchResult[T, R], error) {
	return NewWorkerPool[T, R](opts...).RunWithRetry(ctx, inputs, processFn)
}
