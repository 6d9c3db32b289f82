// Command pooler runs a shell command once per input on a bounded worker pool
// and reports which inputs succeeded and which failed.
//
//	pooler [flags] -- command [args...]
//
// Every "{}" in the command is replaced by the input; without one the input
// is appended. Inputs are read one per line from -input (stdin by default) or,
// with -key, taken from a field of a YAML/JSON list of records:
//
//	pooler -workers 8 -retry -- curl -sf https://example.com/{} < ids.txt
//	pooler -key urls -input targets.json -- ./probe.sh
//
// Params from the -config profile reach the command as POOLER_<NAME>
// environment variables; POOLER_INPUT holds the input.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/utkarsh5026/pooler/internal/config"
	"github.com/utkarsh5026/pooler/pool"
)

const (
	exitOK       = 0
	exitFailures = 1
	exitError    = 2
)

type options struct {
	configPath string
	inputPath  string
	key        string
	workers    int
	timeout    time.Duration
	retries    int
	retry      bool
	metrics    string
	results    bool
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pooler", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.StringVar(&o.configPath, "config", "", "YAML run profile")
	fs.StringVar(&o.inputPath, "input", "", "Input file (default: stdin)")
	fs.StringVar(&o.key, "key", "", "Read a YAML/JSON list of records and flatten this field into inputs")
	fs.IntVar(&o.workers, "workers", pool.DefaultWorkerCount, "Number of concurrent workers")
	fs.DurationVar(&o.timeout, "timeout", 0, "Batch-wide timeout per round (0 = none)")
	fs.IntVar(&o.retries, "retries", pool.DefaultRetries, "Maximum number of rounds with -retry")
	fs.BoolVar(&o.retry, "retry", false, "Re-run failed inputs")
	fs.StringVar(&o.metrics, "metrics", "", "Write Prometheus textfile metrics to this path")
	fs.BoolVar(&o.results, "results", false, "Print the output of every successful input")
	fs.BoolVar(&o.verbose, "v", false, "Log every unit (info level)")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: pooler [flags] -- command [args...]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	profile, err := loadProfile(fs, o)
	if err != nil {
		red.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	logger := newLogger(stderr, profile.Log, o.verbose)

	cmd, err := newCommand(fs.Args())
	if err != nil {
		red.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return exitError
	}

	inputs, err := openInputs(o.inputPath, stdin, o.key)
	if err != nil {
		red.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if inputs.Skipped() > 0 {
		logger.Warn().Int("skipped", inputs.Skipped()).Str("key", o.key).Msg("records without key")
	}

	bar := makeProgressBar(stderr, inputs.Len(), o.retry)
	metrics := newRunMetrics()
	opts := append(profile.Options(),
		pool.WithLogger(logger),
		pool.WithOnTaskEnd(func(out pool.Outcome[string, string]) {
			metrics.observe(out)
			_ = bar.Add(1)
		}),
	)
	wp := pool.NewWorkerPool[string, string](opts...)

	var res *result
	if o.retry {
		res, err = wp.RunListWithRetry(ctx, inputs, cmd.process)
	} else {
		res, err = wp.RunList(ctx, inputs, cmd.process)
	}
	_ = bar.Finish()

	if err != nil {
		if errors.Is(err, pool.ErrTimeout) {
			red.Fprintf(stderr, "Timed out: %v\n", err)
		} else {
			red.Fprintf(stderr, "Error: %v\n", err)
		}
		return exitError
	}

	if o.metrics != "" {
		metrics.record(res)
		if err := metrics.write(o.metrics); err != nil {
			logger.Error().Err(err).Str("path", o.metrics).Msg("writing metrics")
		}
	}

	if o.results {
		if err := renderSuccesses(stdout, res); err != nil {
			logger.Error().Err(err).Msg("rendering results")
		}
	}
	if err := renderFailures(stdout, res); err != nil {
		logger.Error().Err(err).Msg("rendering failures")
	}
	fmt.Fprintln(stdout)
	if err := renderSummary(stdout, res); err != nil {
		logger.Error().Err(err).Msg("rendering summary")
	}
	renderVerdict(stdout, res)

	if !res.OK() {
		return exitFailures
	}
	return exitOK
}

// loadProfile reads the profile (or the defaults) and applies the flags that
// were set explicitly on top of it.
func loadProfile(fs *flag.FlagSet, o options) (*config.Profile, error) {
	profile := config.Default()
	if o.configPath != "" {
		var err error
		if profile, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			profile.Pool.MaxWorkers = o.workers
		case "timeout":
			profile.Pool.Timeout = o.timeout
		case "retries":
			profile.Pool.Retries = o.retries
		}
	})

	if err := config.Validate(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func openInputs(path string, stdin io.Reader, key string) (*pool.List[string], error) {
	if path == "" || path == "-" {
		return readInputs(stdin, key)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening inputs: %w", err)
	}
	defer f.Close()

	return readInputs(f, key)
}

func newLogger(w io.Writer, cfg config.Log, verbose bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}
	if verbose {
		level = zerolog.InfoLevel
	}

	var out io.Writer = w
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
