package pool

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// batch is a single fan-out of a round's inputs over a fixed set of workers.
type batch[T, R any] struct {
	round     int
	inputs    []T
	processFn ProcessFunc[T, R]
	conf      *processorConfig[T, R]
	logger    zerolog.Logger
}

func newBatch[T, R any](id uuid.UUID, round int, inputs []T, processFn ProcessFunc[T, R], conf *processorConfig[T, R]) *batch[T, R] {
	return &batch[T, R]{
		round:     round,
		inputs:    inputs,
		processFn: processFn,
		conf:      conf,
		logger: conf.logger.With().
			Str("batch", id.String()).
			Int("round", round).
			Logger(),
	}
}

// run submits every input up front, then collects outcomes as units complete.
//
// It returns ErrTimeout (or the caller's context error) without outcomes when
// the batch cannot finish. Units still executing at that point are abandoned:
// their context is cancelled and whatever they produce afterwards is dropped.
func (b *batch[T, R]) run(ctx context.Context) (successes, failures []Outcome[T, R], err error) {
	n := len(b.inputs)
	successes = make([]Outcome[T, R], 0, n)
	failures = make([]Outcome[T, R], 0)
	if n == 0 {
		return successes, failures, nil
	}

	// Both channels hold the whole batch so neither submission nor a late,
	// abandoned worker ever blocks.
	taskChan := make(chan indexedTask[T], n)
	resultChan := make(chan Outcome[T, R], n)

	for i, input := range b.inputs {
		taskChan <- indexedTask[T]{index: i, input: input}
	}
	close(taskChan)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	for range min(b.conf.workerCount, n) {
		g.Go(func() error {
			return b.worker(runCtx, taskChan, resultChan)
		})
	}

	var timeout <-chan time.Time
	if b.conf.timeout > 0 {
		timer := time.NewTimer(b.conf.timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	for completed := range n {
		select {
		case o := <-resultChan:
			b.logger.Info().Int("index", completed).Msg("handling unit")
			if o.Failed() {
				b.logger.Error().
					Err(o.Err).
					Interface("input", o.Input).
					Msg("unit failed")
				failures = append(failures, o)
			} else {
				successes = append(successes, o)
			}
			if b.conf.onTaskEnd != nil {
				b.conf.onTaskEnd(o)
			}

		case <-timeout:
			b.logger.Warn().
				Int("pending", n-completed).
				Dur("timeout", b.conf.timeout).
				Msg("batch timed out, abandoning pending units")
			return nil, nil, fmt.Errorf("%w after %v: %d of %d units pending", ErrTimeout, b.conf.timeout, n-completed, n)

		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}

	// Every outcome is in, so the task channel is drained and the workers are
	// returning; this only waits for their exit.
	_ = g.Wait()
	return successes, failures, nil
}

// worker takes inputs until the task channel is drained or the batch is
// cancelled, and reports one outcome per input it started.
func (b *batch[T, R]) worker(
	ctx context.Context,
	taskChan <-chan indexedTask[T],
	resultChan chan<- Outcome[T, R],
) error {
	for t := range taskChan {
		if err := ctx.Err(); err != nil {
			return err
		}
		resultChan <- b.execute(ctx, t)
	}
	return nil
}

func (b *batch[T, R]) execute(ctx context.Context, t indexedTask[T]) Outcome[T, R] {
	if b.conf.rateLimiter != nil {
		if err := b.conf.rateLimiter.Wait(ctx); err != nil {
			var zero R
			// Rate limiter's error doesn't wrap context errors, so check context explicitly
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			}
			return newOutcome(t, b.round, b.conf.params, zero, err)
		}
	}

	value, err := processWithRecovery(ctx, t.input, b.conf.params, b.processFn)
	return newOutcome(t, b.round, b.conf.params, value, err)
}

// processWithRecovery executes a unit with panic recovery.
// If a panic occurs, it's converted to an error wrapping ErrWorkerPanic so the
// worker survives and the unit is recorded as a failure.
func processWithRecovery[T, R any](
	ctx context.Context,
	input T,
	params Params,
	processFn ProcessFunc[T, R],
) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("%w: %v\nstack trace:\n%s", ErrWorkerPanic, r, buf[:n])
		}
	}()

	return processFn(ctx, input, params)
}
