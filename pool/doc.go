// Package pool runs a function over a batch of inputs on a bounded worker
// pool and reports, per input, whether it succeeded or failed.
//
// The primary type is WorkerPool[T, R]. Unlike a fail-fast pool, a failing
// input never aborts the batch: every input ends up as an Outcome in either
// BatchResult.Successes or BatchResult.Failures, together with the wall-clock
// time of the call and the process's peak resident memory.
//
// # Basic Usage
//
//	ctx := context.Background()
//	inputs := []int{1, 2, 3, 4}
//	pool := NewWorkerPool[int, int](WithWorkerCount(4))
//	res, err := pool.Run(ctx, inputs, func(ctx context.Context, n int, _ Params) (int, error) {
//	    return n * 2, nil
//	})
//	// res.Successes holds 4 outcomes in completion order
//
// # Extra Parameters
//
// Read-only parameters shared by every unit are passed with WithParams and
// arrive as the third argument of the ProcessFunc:
//
//	pool := NewWorkerPool[string, Frame](WithParams(Params{"start": 0, "end": 100}))
//
// # Retrying Failed Inputs
//
// RunWithRetry re-runs only the inputs that failed, for up to WithRetries
// rounds (default 5), optionally pausing between rounds:
//
//	pool := NewWorkerPool[string, Frame](
//	    WithRetries(3),
//	    WithRoundBackoff(BackoffExponential, 100*time.Millisecond, 2*time.Second),
//	)
//	res, err := pool.RunWithRetry(ctx, series, explore)
//	if err == nil && !res.OK() {
//	    // res.Failures holds what still failed in the last round
//	}
//
// # Flattening Records
//
// Chain turns a collection of records into a flat input list, splicing
// sequence values, before handing it to the pool:
//
//	records := []map[string]any{{"ids": []any{1, 2}}, {"ids": 3}}
//	list := Chain(records, Key[int]("ids")) // 1, 2, 3
//	res, err := pool.RunList(ctx, list, process)
//
// # Timeouts
//
// WithTimeout bounds the wait for a whole batch. When it elapses Run returns
// an error wrapping ErrTimeout and no result. Units still running at that
// point are abandoned: their context is cancelled, no new inputs are started,
// and anything they produce later is discarded. Side effects a unit performs
// after the timeout may still happen.
//
// # Configuration Options
//
//   - WithWorkerCount(n): Number of concurrent workers (default: 10)
//   - WithTimeout(d): Batch-wide wait bound (default: none)
//   - WithParams(p): Extra parameters for every unit (default: empty)
//   - WithRetries(n): Round cap for RunWithRetry (default: 5)
//   - WithRoundBackoff(type, initial, max): Pause between retry rounds
//   - WithRateLimit(tasksPerSecond, burst): Token bucket over unit starts
//   - WithLogger(l): zerolog logger for per-unit and per-round lines
//   - WithOnTaskEnd(fn): Hook receiving every collected outcome
//
// # Error Handling
//
// Per-unit errors and panics are captured as failures and logged at error
// level; a panic is wrapped in ErrWorkerPanic with its stack trace. Only a
// batch timeout or a done context is returned as an error.
package pool
