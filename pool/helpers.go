package pool

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/utkarsh5026/pooler/internal/rusage"
)

// createConfig applies the options over the defaults and resolves the typed hook.
//
// Panics if a WithOnTaskEnd hook was registered for different type parameters.
func createConfig[T, R any](opts ...WorkerPoolOption) *processorConfig[T, R] {
	cfg := &workerPoolConfig{
		workerCount: DefaultWorkerCount,
		retries:     DefaultRetries,
		params:      Params{},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if !cfg.loggerSet {
		cfg.logger = log.Logger
	}

	if cfg.params == nil {
		cfg.params = Params{}
	}

	return &processorConfig[T, R]{
		workerCount:    cfg.workerCount,
		timeout:        cfg.timeout,
		params:         cfg.params,
		retries:        cfg.retries,
		backoffType:    cfg.backoffType,
		backoffInitial: cfg.backoffInitial,
		backoffMax:     cfg.backoffMax,
		rateLimiter:    cfg.rateLimiter,
		logger:         cfg.logger,
		onTaskEnd:      checkHook[T, R](cfg.onTaskEnd),
	}
}

// checkHook converts the type-erased WithOnTaskEnd hook back to the pool's
// outcome type.
func checkHook[T, R any](hook any) func(Outcome[T, R]) {
	if hook == nil {
		return nil
	}

	fn, ok := hook.(func(Outcome[T, R]))
	if !ok {
		var want func(Outcome[T, R])
		panic(fmt.Sprintf("WithOnTaskEnd hook has type %T, but pool expects %T", hook, want))
	}
	return fn
}

// samplePeakRSS reads the process peak RSS. Failures are logged and reported as 0.
func samplePeakRSS(logger zerolog.Logger) uint64 {
	peak, err := rusage.PeakRSS()
	if err != nil {
		logger.Debug().Err(err).Msg("peak rss unavailable")
		return 0
	}
	return peak
}

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
