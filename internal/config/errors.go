package config

import "errors"

// Sentinel errors for run profile validation.
var (
	// ErrConfigEmpty is returned when the profile data is empty (zero bytes).
	ErrConfigEmpty = errors.New("run profile is empty")

	// ErrInvalidWorkers is returned when pool.max_workers is below 1.
	ErrInvalidWorkers = errors.New("pool.max_workers must be at least 1")

	// ErrNegativeTimeout is returned when pool.timeout is negative.
	ErrNegativeTimeout = errors.New("pool.timeout must not be negative")

	// ErrNegativeRetries is returned when pool.retries is negative.
	ErrNegativeRetries = errors.New("pool.retries must not be negative")

	// ErrInvalidRateLimit is returned when only one of per_second and burst is set,
	// or either is negative.
	ErrInvalidRateLimit = errors.New("pool.rate_limit needs both per_second and burst > 0")

	// ErrUnknownBackoff is returned when pool.backoff.type is not a known strategy.
	ErrUnknownBackoff = errors.New("unknown pool.backoff.type")

	// ErrInvalidBackoffDelay is returned when backoff delays are negative or max < initial.
	ErrInvalidBackoffDelay = errors.New("pool.backoff delays must be >= 0 with max >= initial")

	// ErrUnknownLogLevel is returned when log.level is not a zerolog level.
	ErrUnknownLogLevel = errors.New("unknown log.level")

	// ErrUnknownLogFormat is returned when log.format is neither console nor json.
	ErrUnknownLogFormat = errors.New("log.format must be console or json")
)
