// Package config loads the YAML run profile used by the pooler command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/utkarsh5026/pooler/internal/algorithms"
	"github.com/utkarsh5026/pooler/pool"
)

// ─── YAML schema ───────────────────────────────────────────────────────────

// Profile is the full run profile.
type Profile struct {
	Pool   Pool           `yaml:"pool"`
	Params map[string]any `yaml:"params"`
	Log    Log            `yaml:"log"`
}

// Pool mirrors the worker pool options.
type Pool struct {
	MaxWorkers int           `yaml:"max_workers"`
	Timeout    time.Duration `yaml:"timeout"`
	Retries    int           `yaml:"retries"`
	RateLimit  RateLimit     `yaml:"rate_limit"`
	Backoff    Backoff       `yaml:"backoff"`
}

type RateLimit struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

type Backoff struct {
	Type    string        `yaml:"type"`
	Initial time.Duration `yaml:"initial"`
	Max     time.Duration `yaml:"max"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the profile used when no file is given.
func Default() *Profile {
	return &Profile{
		Pool: Pool{
			MaxWorkers: pool.DefaultWorkerCount,
			Retries:    pool.DefaultRetries,
		},
		Params: map[string]any{},
		Log: Log{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load reads and validates the profile at path. Keys missing from the file
// keep their Default values.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}

	p, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading profile %s: %w", path, err)
	}
	return p, nil
}

// LoadFromBytes parses and validates a YAML (or JSON) profile.
// Unknown keys are rejected so that typos do not silently fall back to defaults.
func LoadFromBytes(data []byte) (*Profile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrConfigEmpty
	}

	p := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if p.Params == nil {
		p.Params = map[string]any{}
	}

	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Options converts the pool section and params into worker pool options.
// The profile must have passed Validate.
func (p *Profile) Options() []pool.WorkerPoolOption {
	backoffType, _ := algorithms.ParseBackoffType(p.Pool.Backoff.Type)

	opts := []pool.WorkerPoolOption{
		pool.WithWorkerCount(p.Pool.MaxWorkers),
		pool.WithTimeout(p.Pool.Timeout),
		pool.WithRetries(p.Pool.Retries),
		pool.WithParams(p.Params),
		pool.WithRoundBackoff(backoffType, p.Pool.Backoff.Initial, p.Pool.Backoff.Max),
	}

	if rl := p.Pool.RateLimit; rl.PerSecond > 0 && rl.Burst > 0 {
		opts = append(opts, pool.WithRateLimit(rl.PerSecond, rl.Burst))
	}
	return opts
}
