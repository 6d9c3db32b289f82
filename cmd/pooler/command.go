package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"unicode"

	"github.com/utkarsh5026/pooler/pool"
)

const placeholder = "{}"

// command runs argv once per input. Every "{}" in argv is replaced by the
// input; when there is none the input is appended as the last argument.
type command struct {
	argv []string
}

func newCommand(argv []string) (*command, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("no command given")
	}
	return &command{argv: slices.Clone(argv)}, nil
}

// expand returns the argv for one input.
func (c *command) expand(input string) []string {
	args := make([]string, len(c.argv))
	replaced := false
	for i, a := range c.argv {
		if strings.Contains(a, placeholder) {
			a = strings.ReplaceAll(a, placeholder, input)
			replaced = true
		}
		args[i] = a
	}
	if !replaced {
		args = append(args, input)
	}
	return args
}

// process is the pool.ProcessFunc: it runs the command and returns its
// trimmed stdout. A non-zero exit fails the input, with stderr attached.
func (c *command) process(ctx context.Context, input string, params pool.Params) (string, error) {
	args := c.expand(input)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Env = append(os.Environ(), paramEnv(input, params)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

// paramEnv exports the input and every param as POOLER_* variables, sorted by name.
func paramEnv(input string, params pool.Params) []string {
	env := make([]string, 0, len(params)+1)
	env = append(env, "POOLER_INPUT="+input)
	for name, value := range params {
		env = append(env, fmt.Sprintf("POOLER_%s=%v", envName(name), value))
	}
	slices.Sort(env[1:])
	return env
}

func envName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return unicode.ToUpper(r)
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}
