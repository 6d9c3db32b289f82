package pool

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Params are the extra named parameters broadcast, unchanged, to every unit of
// a batch. Units share the same map and must not modify it.
type Params map[string]any

// ProcessFunc is a function type that defines how a single input is processed.
// It receives the unit's context, one input and the pool's Params, and returns
// a result or an error. An error marks only this input as failed; the rest of
// the batch is unaffected.
//
// The context is cancelled when the batch times out or the caller's context is
// done. Functions that honour it stop promptly once their outcome can no longer
// be observed.
//
// Type parameters:
//   - T: The type of input processed by the function
//   - R: The type of result produced
type ProcessFunc[T any, R any] func(ctx context.Context, input T, params Params) (R, error)

// Outcome is the result of one unit of work: either a success carrying Value
// or a failure carrying Err. The originating Input is always kept so failures
// can be traced and retried.
//
// Fields:
//   - Input: The input the unit was run with
//   - Value: The value returned by the unit (zero if Err is set)
//   - Err: The error returned or the recovered panic (nil on success)
//   - Params: The extra parameters the unit received
//   - Index: Position of Input in the inputs of its round
//   - Round: The retry round that produced the outcome (0 for the first run)
type Outcome[T any, R any] struct {
	Input  T
	Value  R
	Err    error
	Params Params
	Index  int
	Round  int
}

// Failed reports whether the outcome is a failure.
func (o Outcome[T, R]) Failed() bool {
	return o.Err != nil
}

func newOutcome[T, R any](t indexedTask[T], round int, params Params, value R, err error) Outcome[T, R] {
	o := Outcome[T, R]{
		Input:  t.input,
		Err:    err,
		Params: params,
		Index:  t.index,
		Round:  round,
	}
	if err == nil {
		o.Value = value
	}
	return o
}

// BatchResult aggregates the outcomes of one Run call or one whole
// RunWithRetry session. It is built once and not modified afterwards.
//
// Successes and Failures are in completion order, which may differ from input
// order and from run to run.
//
// PeakRSS is the peak resident set size of the whole process in bytes,
// sampled when the call finished. It is a process-wide diagnostic and says
// nothing precise about the memory used by this batch alone; it is 0 when the
// platform cannot report it.
type BatchResult[T any, R any] struct {
	ID        uuid.UUID
	Successes []Outcome[T, R]
	Failures  []Outcome[T, R]
	Elapsed   time.Duration
	PeakRSS   uint64
	Rounds    int // pool runs performed
}

// Total returns the number of outcomes held by the result.
func (b *BatchResult[T, R]) Total() int {
	return len(b.Successes) + len(b.Failures)
}

// OK reports whether every input eventually succeeded.
func (b *BatchResult[T, R]) OK() bool {
	return len(b.Failures) == 0
}

// Values returns the values of all successes, in completion order.
func (b *BatchResult[T, R]) Values() []R {
	values := make([]R, len(b.Successes))
	for i, s := range b.Successes {
		values[i] = s.Value
	}
	return values
}

// FailedInputs returns the inputs of all failures, in completion order.
func (b *BatchResult[T, R]) FailedInputs() []T {
	return inputsOf(b.Failures)
}

func inputsOf[T, R any](outcomes []Outcome[T, R]) []T {
	inputs := make([]T, len(outcomes))
	for i, o := range outcomes {
		inputs[i] = o.Input
	}
	return inputs
}

// indexedTask wraps an input with its position in the round's inputs.
type indexedTask[T any] struct {
	index int
	input T
}
