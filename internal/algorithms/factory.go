package algorithms

import "time"

// BackoffType selects how the pause between retry rounds grows.
type BackoffType int

const (
	// BackoffNone retries immediately.
	BackoffNone BackoffType = iota
	// BackoffExponential doubles the pause every round.
	BackoffExponential
	// BackoffJittered is exponential with a random +/- jitter.
	BackoffJittered
	// BackoffDecorrelated picks each pause from [initial, 3*previous].
	BackoffDecorrelated
)

// String returns the profile name of the backoff type.
func (b BackoffType) String() string {
	switch b {
	case BackoffExponential:
		return "exponential"
	case BackoffJittered:
		return "jittered"
	case BackoffDecorrelated:
		return "decorrelated"
	default:
		return "none"
	}
}

// ParseBackoffType maps a profile name back to its BackoffType.
// The empty string means BackoffNone.
func ParseBackoffType(name string) (BackoffType, bool) {
	switch name {
	case "", "none":
		return BackoffNone, true
	case "exponential":
		return BackoffExponential, true
	case "jittered":
		return BackoffJittered, true
	case "decorrelated":
		return BackoffDecorrelated, true
	}
	return BackoffNone, false
}

// NewBackoff builds the round backoff for the given type.
// A non-positive initial delay always yields a backoff that never waits.
func NewBackoff(backoffType BackoffType, initialDelay, maxDelay time.Duration) Backoff {
	if initialDelay <= 0 || backoffType == BackoffNone {
		return noBackoff{}
	}
	if maxDelay < initialDelay {
		maxDelay = initialDelay
	}

	switch backoffType {
	case BackoffJittered:
		return newJitteredBackoff(initialDelay, maxDelay, defaultJitterFactor)
	case BackoffDecorrelated:
		return newDecorrelatedBackoff(initialDelay, maxDelay)
	default:
		return newExponentialBackoff(initialDelay, maxDelay)
	}
}
