package main

import (
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/pooler/pool"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestNewCommand_Empty(t *testing.T) {
	_, err := newCommand(nil)
	assert.Error(t, err)
}

func TestCommand_Expand(t *testing.T) {
	tests := []struct {
		name  string
		argv  []string
		input string
		want  []string
	}{
		{
			name:  "appends without placeholder",
			argv:  []string{"echo", "-n"},
			input: "a",
			want:  []string{"echo", "-n", "a"},
		},
		{
			name:  "replaces placeholder",
			argv:  []string{"curl", "https://host/{}/data"},
			input: "42",
			want:  []string{"curl", "https://host/42/data"},
		},
		{
			name:  "replaces every placeholder",
			argv:  []string{"cp", "{}", "{}.bak"},
			input: "f",
			want:  []string{"cp", "f", "f.bak"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newCommand(tt.argv)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.expand(tt.input))
		})
	}
}

func TestCommand_ExpandDoesNotMutateArgv(t *testing.T) {
	argv := []string{"echo", "{}"}
	c, err := newCommand(argv)
	require.NoError(t, err)

	c.expand("x")
	argv[0] = "changed"

	assert.Equal(t, []string{"echo", "y"}, c.expand("y"))
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "START", envName("start"))
	assert.Equal(t, "TIME_WINDOW", envName("time-window"))
	assert.Equal(t, "A_B_2", envName("a.b 2"))
}

func TestParamEnv(t *testing.T) {
	env := paramEnv("in", pool.Params{"end": 10, "start": 0, "region": "eu"})

	assert.Equal(t, []string{
		"POOLER_INPUT=in",
		"POOLER_END=10",
		"POOLER_REGION=eu",
		"POOLER_START=0",
	}, env)
}

func TestCommand_Process(t *testing.T) {
	requireShell(t)

	c, err := newCommand([]string{"sh", "-c", `echo "$1-$POOLER_STAGE"`, "_"})
	require.NoError(t, err)

	out, err := c.process(context.Background(), "unit", pool.Params{"stage": "dev"})
	require.NoError(t, err)
	assert.Equal(t, "unit-dev", out)
}

func TestCommand_ProcessFailureCarriesStderr(t *testing.T) {
	requireShell(t)

	c, err := newCommand([]string{"sh", "-c", `echo "no such $1" >&2; exit 3`, "_"})
	require.NoError(t, err)

	_, err = c.process(context.Background(), "thing", pool.Params{})
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
	assert.True(t, strings.HasSuffix(err.Error(), "no such thing"), err.Error())
}
