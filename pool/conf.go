package pool

import (
	"maps"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/utkarsh5026/pooler/internal/algorithms"
)

const (
	// DefaultWorkerCount is the number of workers used when WithWorkerCount is not given.
	DefaultWorkerCount = 10

	// DefaultRetries is the retry round cap used by RunWithRetry when WithRetries is not given.
	DefaultRetries = 5
)

// BackoffType selects how the pause between retry rounds grows.
type BackoffType = algorithms.BackoffType

const (
	BackoffNone         = algorithms.BackoffNone
	BackoffExponential  = algorithms.BackoffExponential
	BackoffJittered     = algorithms.BackoffJittered
	BackoffDecorrelated = algorithms.BackoffDecorrelated
)

// WorkerPoolOption is a functional option for configuring the worker pool.
type WorkerPoolOption func(*workerPoolConfig)

type workerPoolConfig struct {
	workerCount int
	timeout     time.Duration
	params      Params
	retries     int

	backoffType    BackoffType
	backoffInitial time.Duration
	backoffMax     time.Duration

	rateLimiter *rate.Limiter

	logger    zerolog.Logger
	loggerSet bool

	onTaskEnd any
}

// WithWorkerCount sets the number of concurrent workers.
// Values below 1 are ignored. If not specified, defaults to DefaultWorkerCount.
func WithWorkerCount(count int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if count > 0 {
			cfg.workerCount = count
		}
	}
}

// WithTimeout bounds how long a single batch waits for all of its units.
// The bound applies to the whole batch, not to individual units. With
// RunWithRetry every round gets the full timeout. Zero or negative durations
// mean "wait forever", which is also the default.
func WithTimeout(timeout time.Duration) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		cfg.timeout = max(timeout, 0)
	}
}

// WithParams sets the extra named parameters handed to every unit of work.
// The map is copied; units must treat it as read-only.
func WithParams(params Params) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		cfg.params = maps.Clone(params)
	}
}

// WithRetries caps the number of rounds RunWithRetry performs.
// Zero behaves like a single Run. Negative values are ignored.
func WithRetries(retries int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if retries >= 0 {
			cfg.retries = retries
		}
	}
}

// WithRoundBackoff makes RunWithRetry pause between rounds.
// initialDelay is the pause before the first retry round; later pauses grow
// according to backoffType and never exceed maxDelay.
//
// Example:
//
//	WithRoundBackoff(BackoffExponential, 200*time.Millisecond, 5*time.Second)
func WithRoundBackoff(backoffType BackoffType, initialDelay, maxDelay time.Duration) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		cfg.backoffType = backoffType
		cfg.backoffInitial = initialDelay
		cfg.backoffMax = maxDelay
	}
}

// WithRateLimit sets a rate limiter for controlling unit throughput.
// tasksPerSecond specifies the maximum number of units started per second and
// burst the maximum number started at once. The limiter is shared by every
// batch the pool runs.
//
// Example:
//
//	WithRateLimit(10, 5) // Allow 10 units/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithLogger sets the logger used for per-unit and per-round log lines.
// If not specified, the global zerolog logger (github.com/rs/zerolog/log) is used.
func WithLogger(logger zerolog.Logger) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		cfg.logger = logger
		cfg.loggerSet = true
	}
}

// WithOnTaskEnd registers a hook called once for every collected outcome,
// in completion order, from the goroutine that called Run or RunWithRetry.
// Outcomes of units abandoned by a timeout are never reported.
//
// The hook's type parameters must match the pool's; NewWorkerPool panics otherwise.
func WithOnTaskEnd[T, R any](fn func(Outcome[T, R])) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if fn != nil {
			cfg.onTaskEnd = fn
		}
	}
}

// processorConfig is the resolved, typed form of workerPoolConfig.
type processorConfig[T, R any] struct {
	workerCount int
	timeout     time.Duration
	params      Params
	retries     int

	backoffType    BackoffType
	backoffInitial time.Duration
	backoffMax     time.Duration

	rateLimiter *rate.Limiter
	logger      zerolog.Logger
	onTaskEnd   func(Outcome[T, R])
}

// newBackoff returns a fresh round backoff. A new one is built per retry
// session because the decorrelated strategy remembers its previous pause.
func (c *processorConfig[T, R]) newBackoff() algorithms.Backoff {
	return algorithms.NewBackoff(c.backoffType, c.backoffInitial, c.backoffMax)
}
