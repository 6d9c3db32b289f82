package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/utkarsh5026/pooler/internal/algorithms"
)

// Validate checks every section of the profile and reports all problems at
// once, joined with errors.Join. Each problem wraps one of the sentinel errors.
func Validate(p *Profile) error {
	if p == nil {
		return ErrConfigEmpty
	}

	var errs []error

	if p.Pool.MaxWorkers < 1 {
		errs = append(errs, fmt.Errorf("max_workers=%d: %w", p.Pool.MaxWorkers, ErrInvalidWorkers))
	}

	if p.Pool.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout=%v: %w", p.Pool.Timeout, ErrNegativeTimeout))
	}

	if p.Pool.Retries < 0 {
		errs = append(errs, fmt.Errorf("retries=%d: %w", p.Pool.Retries, ErrNegativeRetries))
	}

	rl := p.Pool.RateLimit
	rateSet := rl.PerSecond != 0 || rl.Burst != 0
	if rateSet && (rl.PerSecond <= 0 || rl.Burst <= 0) {
		errs = append(errs, fmt.Errorf("per_second=%v burst=%d: %w", rl.PerSecond, rl.Burst, ErrInvalidRateLimit))
	}

	b := p.Pool.Backoff
	if _, ok := algorithms.ParseBackoffType(b.Type); !ok {
		errs = append(errs, fmt.Errorf("type=%q: %w", b.Type, ErrUnknownBackoff))
	}
	if b.Initial < 0 || b.Max < 0 || (b.Max > 0 && b.Max < b.Initial) {
		errs = append(errs, fmt.Errorf("initial=%v max=%v: %w", b.Initial, b.Max, ErrInvalidBackoffDelay))
	}

	if _, err := zerolog.ParseLevel(p.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("level=%q: %w", p.Log.Level, ErrUnknownLogLevel))
	}

	switch p.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("format=%q: %w", p.Log.Format, ErrUnknownLogFormat))
	}

	return errors.Join(errs...)
}
