package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/pooler/pool"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.n), "formatBytes(%d)", tt.n)
	}
}

func sampleResult() *result {
	return &result{
		ID: uuid.New(),
		Successes: []pool.Outcome[string, string]{
			{Input: "ok-input", Value: "ok-output", Round: 0},
		},
		Failures: []pool.Outcome[string, string]{
			{Input: "bad-input", Err: errors.New("exit status 1"), Round: 2},
		},
		Elapsed: 1500 * time.Millisecond,
		PeakRSS: 2048,
		Rounds:  3,
	}
}

func TestRender_Tables(t *testing.T) {
	res := sampleResult()
	var buf bytes.Buffer

	require.NoError(t, renderSuccesses(&buf, res))
	require.NoError(t, renderFailures(&buf, res))
	require.NoError(t, renderSummary(&buf, res))
	renderVerdict(&buf, res)

	out := buf.String()
	for _, want := range []string{
		"ok-input", "ok-output",
		"bad-input", "exit status 1",
		res.ID.String()[:8], "2.0 KiB", "1.5s",
		"1 of 2 input(s) still failing",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderFailures_NothingWhenOK(t *testing.T) {
	res := sampleResult()
	res.Failures = nil

	var buf bytes.Buffer
	require.NoError(t, renderFailures(&buf, res))
	assert.Empty(t, buf.String())

	renderVerdict(&buf, res)
	assert.Contains(t, buf.String(), "all 1 input(s) succeeded")
}
