package pool

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestWithOnTaskEnd_ReceivesEveryOutcome(t *testing.T) {
	var outcomes []Outcome[int, string]
	pool := NewWorkerPool[int, string](quiet(
		WithWorkerCount(4),
		WithOnTaskEnd(func(o Outcome[int, string]) {
			// Called from the collecting goroutine only, so no locking needed.
			outcomes = append(outcomes, o)
		}),
	)...)

	res, err := pool.Run(context.Background(), makeInputs(20), func(ctx context.Context, n int, _ Params) (string, error) {
		if n == 7 {
			return "", errors.New("seven")
		}
		return strings.Repeat("x", n), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(outcomes) != res.Total() {
		t.Fatalf("hook saw %d outcomes, result has %d", len(outcomes), res.Total())
	}

	var failed int
	for _, o := range outcomes {
		if o.Failed() {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("hook saw %d failures, want 1", failed)
	}
}

func TestWithOnTaskEnd_TypeMismatchPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected NewWorkerPool to panic on a mismatched hook")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "WithOnTaskEnd") {
			t.Errorf("unexpected panic value: %v", r)
		}
	}()

	NewWorkerPool[int, int](WithOnTaskEnd(func(o Outcome[string, int]) {}))
}

func TestWithOnTaskEnd_NilIgnored(t *testing.T) {
	pool := NewWorkerPool[int, int](WithOnTaskEnd[int, int](nil))
	if pool.conf.onTaskEnd != nil {
		t.Error("expected a nil hook to be ignored")
	}
}
