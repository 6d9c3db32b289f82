package pool

import (
	"testing"

	"github.com/rs/zerolog"
)

// workerConfig defines a pool size a test runs against.
type workerConfig struct {
	name string
	opts []WorkerPoolOption
}

// getWorkerConfigs returns the pool sizes every behavioural test is run with:
// a single worker, fewer workers than inputs, and more workers than inputs.
func getWorkerConfigs(additionalOpts ...WorkerPoolOption) []workerConfig {
	configs := []workerConfig{
		{name: "SingleWorker", opts: []WorkerPoolOption{WithWorkerCount(1)}},
		{name: "FourWorkers", opts: []WorkerPoolOption{WithWorkerCount(4)}},
		{name: "ManyWorkers", opts: []WorkerPoolOption{WithWorkerCount(64)}},
	}
	for i := range configs {
		configs[i].opts = append(configs[i].opts, WithLogger(zerolog.Nop()))
		configs[i].opts = append(configs[i].opts, additionalOpts...)
	}
	return configs
}

func runWorkerTest(t *testing.T, testFunc func(t *testing.T, c workerConfig), additionalOpts ...WorkerPoolOption) {
	for _, c := range getWorkerConfigs(additionalOpts...) {
		t.Run(c.name, func(t *testing.T) {
			testFunc(t, c)
		})
	}
}

func quiet(opts ...WorkerPoolOption) []WorkerPoolOption {
	return append([]WorkerPoolOption{WithLogger(zerolog.Nop())}, opts...)
}

func makeInputs(n int) []int {
	inputs := make([]int, n)
	for i := range inputs {
		inputs[i] = i
	}
	return inputs
}

// inputSet returns the outcomes' inputs as a set.
func inputSet[R any](outcomes []Outcome[int, R]) map[int]bool {
	set := make(map[int]bool, len(outcomes))
	for _, o := range outcomes {
		set[o.Input] = true
	}
	return set
}
