package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/utkarsh5026/pooler/pool"
)

// readInputs reads one input per non-blank line, or, when key is set, a YAML
// or JSON list of records whose key field is flattened into the inputs.
func readInputs(r io.Reader, key string) (*pool.List[string], error) {
	if key == "" {
		return readLines(r)
	}
	return readRecords(r, key)
}

func readLines(r io.Reader) (*pool.List[string], error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading inputs: %w", err)
	}
	return pool.NewList(lines...), nil
}

func readRecords(r io.Reader, key string) (*pool.List[string], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}

	var records []map[string]any
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing records: %w", err)
	}

	return pool.Chain(records, stringKey(key)), nil
}

// stringKey extracts key from a record and renders every value as the
// string handed to the command.
func stringKey(key string) pool.Extractor[map[string]any, string] {
	anyKey := pool.Key[any](key)
	return func(record map[string]any) ([]string, bool) {
		values, ok := anyKey(record)
		if !ok {
			return nil, false
		}
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = fmt.Sprint(v)
		}
		return out, true
	}
}
