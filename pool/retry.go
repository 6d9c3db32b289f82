package pool

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunWithRetry runs the inputs through Run-style rounds, feeding only the
// inputs that failed in one round into the next.
//
// Round 0 processes all inputs. Each following round processes exactly the
// inputs of the previous round's failures; their errors are discarded. The
// session stops when a round has no failures or when max(retries, 1) rounds
// have been performed (see WithRetries), so retries=0 is a single Run.
//
// Exhausting the rounds is not an error: the returned BatchResult then holds
// the last round's failures and callers must inspect them. Successes are the
// union of every round's successes. Elapsed spans the whole session and
// PeakRSS is sampled once it ends.
//
// The only fatal errors are a round timing out (ErrTimeout) and ctx being
// done; either aborts the whole session and no BatchResult is returned.
//
// Example:
//
//	pool := NewWorkerPool[string, Page](WithRetries(3), WithTimeout(time.Minute))
//	res, err := pool.RunWithRetry(ctx, urls, fetchPage)
//	if err != nil {
//	    return err // timed out
//	}
//	if !res.OK() {
//	    log.Printf("%d urls still failing after %d rounds", len(res.Failures), res.Rounds)
//	}
func (wp *WorkerPool[T, R]) RunWithRetry(
	ctx context.Context,
	inputs []T,
	processFn ProcessFunc[T, R],
) (*BatchResult[T, R], error) {
	start := time.Now()
	id := uuid.New()
	logger := wp.conf.logger.With().Str("session", id.String()).Logger()

	res := &BatchResult[T, R]{
		ID:        id,
		Successes: make([]Outcome[T, R], 0, len(inputs)),
		Failures:  make([]Outcome[T, R], 0),
	}

	backoff := wp.conf.newBackoff()
	maxRounds := max(wp.conf.retries, 1)
	pending := inputs

	for round := 0; round < maxRounds && len(pending) > 0; round++ {
		if round > 0 {
			delay := backoff.Delay(round)
			logger.Info().
				Int("round", round).
				Int("inputs", len(pending)).
				Dur("delay", delay).
				Msg("retrying failed inputs")

			if err := sleepCtx(ctx, delay); err != nil {
				return nil, fmt.Errorf("waiting for round %d: %w", round, err)
			}
		}

		successes, failures, err := newBatch(id, round, pending, processFn, wp.conf).run(ctx)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round, err)
		}

		res.Rounds++
		res.Successes = append(res.Successes, successes...)
		res.Failures = failures
		pending = inputsOf(failures)
	}

	if len(res.Failures) > 0 {
		logger.Warn().
			Int("failures", len(res.Failures)).
			Int("rounds", res.Rounds).
			Msg("retries exhausted")
	}

	res.Elapsed = time.Since(start)
	res.PeakRSS = samplePeakRSS(wp.conf.logger)
	return res, nil
}
