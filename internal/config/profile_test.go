package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/pooler/pool"
)

func TestLoadFromBytes_FullProfile(t *testing.T) {
	data := []byte(`
pool:
  max_workers: 4
  timeout: 30s
  retries: 3
  rate_limit:
    per_second: 5
    burst: 10
  backoff:
    type: jittered
    initial: 200ms
    max: 2s
params:
  start: 0
  end: 100
  series: pressure
log:
  level: info
  format: json
`)

	p, err := LoadFromBytes(data)
	require.NoError(t, err)

	assert.Equal(t, 4, p.Pool.MaxWorkers)
	assert.Equal(t, 30*time.Second, p.Pool.Timeout)
	assert.Equal(t, 3, p.Pool.Retries)
	assert.Equal(t, RateLimit{PerSecond: 5, Burst: 10}, p.Pool.RateLimit)
	assert.Equal(t, Backoff{Type: "jittered", Initial: 200 * time.Millisecond, Max: 2 * time.Second}, p.Pool.Backoff)
	assert.Equal(t, map[string]any{"start": 0, "end": 100, "series": "pressure"}, p.Params)
	assert.Equal(t, Log{Level: "info", Format: "json"}, p.Log)
}

func TestLoadFromBytes_KeepsDefaults(t *testing.T) {
	p, err := LoadFromBytes([]byte("pool:\n  timeout: 1m\n"))
	require.NoError(t, err)

	assert.Equal(t, pool.DefaultWorkerCount, p.Pool.MaxWorkers)
	assert.Equal(t, pool.DefaultRetries, p.Pool.Retries)
	assert.Equal(t, time.Minute, p.Pool.Timeout)
	assert.Equal(t, "console", p.Log.Format)
	assert.NotNil(t, p.Params)
}

func TestLoadFromBytes_ZeroRetriesKept(t *testing.T) {
	p, err := LoadFromBytes([]byte("pool:\n  retries: 0\n"))
	require.NoError(t, err)
	assert.Zero(t, p.Pool.Retries)
}

func TestLoadFromBytes_Empty(t *testing.T) {
	_, err := LoadFromBytes(nil)
	assert.ErrorIs(t, err, ErrConfigEmpty)

	_, err = LoadFromBytes([]byte("   \n"))
	assert.ErrorIs(t, err, ErrConfigEmpty)
}

func TestLoadFromBytes_UnknownKey(t *testing.T) {
	_, err := LoadFromBytes([]byte("pool:\n  max_worker: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_worker")
}

func TestLoadFromBytes_InvalidYAML(t *testing.T) {
	_, err := LoadFromBytes([]byte("pool: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing YAML")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Profile)
		wantErr []error
	}{
		{
			name:   "defaults are valid",
			mutate: func(p *Profile) {},
		},
		{
			name:    "zero workers",
			mutate:  func(p *Profile) { p.Pool.MaxWorkers = 0 },
			wantErr: []error{ErrInvalidWorkers},
		},
		{
			name:    "negative timeout and retries",
			mutate:  func(p *Profile) { p.Pool.Timeout = -time.Second; p.Pool.Retries = -1 },
			wantErr: []error{ErrNegativeTimeout, ErrNegativeRetries},
		},
		{
			name:    "rate limit without burst",
			mutate:  func(p *Profile) { p.Pool.RateLimit.PerSecond = 3 },
			wantErr: []error{ErrInvalidRateLimit},
		},
		{
			name:    "unknown backoff",
			mutate:  func(p *Profile) { p.Pool.Backoff.Type = "linear" },
			wantErr: []error{ErrUnknownBackoff},
		},
		{
			name: "backoff max below initial",
			mutate: func(p *Profile) {
				p.Pool.Backoff = Backoff{Type: "exponential", Initial: time.Second, Max: time.Millisecond}
			},
			wantErr: []error{ErrInvalidBackoffDelay},
		},
		{
			name:    "bad log settings",
			mutate:  func(p *Profile) { p.Log = Log{Level: "loud", Format: "xml"} },
			wantErr: []error{ErrUnknownLogLevel, ErrUnknownLogFormat},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(p)

			err := Validate(p)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	assert.ErrorIs(t, Validate(nil), ErrConfigEmpty)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pooler.yml")
	require.NoError(t, os.WriteFile(path, []byte("pool:\n  max_workers: 2\n"), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Pool.MaxWorkers)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestProfile_Options(t *testing.T) {
	p := Default()
	p.Pool.RateLimit = RateLimit{PerSecond: 1, Burst: 1}
	assert.Len(t, p.Options(), 6)

	p.Pool.RateLimit = RateLimit{}
	assert.Len(t, p.Options(), 5)

	// The options must build a working pool.
	assert.NotNil(t, pool.NewWorkerPool[string, string](p.Options()...))
}
