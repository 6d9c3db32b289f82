package algorithms

import (
	"math/rand"
	"sync"
	"time"
)

const (
	maxShift            = 62 // 1<<63 overflows int64
	defaultJitterFactor = 0.1
)

// Backoff computes the pause taken before a retry round.
//
// round is 1-indexed: Delay(1) is the pause between the first run and the
// first retry. Implementations are safe for concurrent use.
type Backoff interface {
	Delay(round int) time.Duration
}

type noBackoff struct{}

func (noBackoff) Delay(int) time.Duration { return 0 }

// exponentialBackoff waits initial * 2^(round-1), capped at max.
type exponentialBackoff struct {
	initial, max time.Duration
}

func newExponentialBackoff(initial, max time.Duration) *exponentialBackoff {
	return &exponentialBackoff{initial: initial, max: max}
}

func (e *exponentialBackoff) Delay(round int) time.Duration {
	return exponentialDelay(round, e.initial, e.max)
}

// jitteredBackoff spreads the exponential delay by +/- jitter so that several
// sessions failing against the same dependency do not retry in lockstep.
type jitteredBackoff struct {
	initial, max time.Duration
	jitter       float64

	mu  sync.Mutex
	rng *rand.Rand
}

func newJitteredBackoff(initial, max time.Duration, jitter float64) *jitteredBackoff {
	return &jitteredBackoff{
		initial: initial,
		max:     max,
		jitter:  clamp(jitter, 0, 1),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- jitter only
	}
}

func (j *jitteredBackoff) Delay(round int) time.Duration {
	base := exponentialDelay(round, j.initial, j.max)
	if base == 0 {
		return 0
	}

	j.mu.Lock()
	factor := 1 + (j.rng.Float64()*2-1)*j.jitter
	j.mu.Unlock()

	return clamp(time.Duration(float64(base)*factor), 0, j.max)
}

// decorrelatedBackoff implements "decorrelated jitter":
// sleep = min(max, random(initial, previous*3)).
// The previous pause is remembered, so one instance belongs to one session.
type decorrelatedBackoff struct {
	initial, max time.Duration

	mu   sync.Mutex
	prev time.Duration
	rng  *rand.Rand
}

func newDecorrelatedBackoff(initial, max time.Duration) *decorrelatedBackoff {
	return &decorrelatedBackoff{
		initial: initial,
		max:     max,
		prev:    initial,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- jitter only
	}
}

func (d *decorrelatedBackoff) Delay(round int) time.Duration {
	if round <= 0 {
		return 0
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if round == 1 {
		d.prev = d.initial
		return d.initial
	}

	upper := min(3*d.prev, d.max)
	span := upper - d.initial
	if span <= 0 {
		d.prev = d.initial
		return d.initial
	}

	d.prev = d.initial + time.Duration(d.rng.Int63n(int64(span)))
	return d.prev
}

func exponentialDelay(round int, initial, max time.Duration) time.Duration {
	if round <= 0 {
		return 0
	}

	shift := round - 1
	if shift >= maxShift {
		return max
	}

	delay := time.Duration(int64(1)<<uint(shift)) * initial
	if delay > max || delay <= 0 {
		return max
	}
	return delay
}

func clamp[N ~int64 | ~float64](v, lo, hi N) N {
	return min(max(v, lo), hi)
}
