// Command urlx parses URLs and prints their components or canonical form.
//
// Usage:
//
//	urlx [flags] [url...]
//
// URLs are read line by line from standard input when none are given.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	sliceutil "urlkit/lib/slice"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type config struct {
	workers   int
	json      bool
	canonical bool
	verbose   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, clock.New())
	stop()
	os.Exit(code)
}

func parseFlags(args []string, stderr io.Writer) (config, []string, error) {
	var cfg config

	fs := flag.NewFlagSet("urlx", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.workers, "workers", runtime.NumCPU(), "Number of URLs parsed concurrently.")
	fs.BoolVar(&cfg.json, "json", false, "Print one JSON object per URL.")
	fs.BoolVar(&cfg.canonical, "canonical", false, "Print only the canonical form of valid URLs.")
	fs.BoolVar(&cfg.verbose, "v", false, "Enable debug logging.")

	if err := fs.Parse(args); err != nil {
		return config{}, nil, err
	}
	if cfg.workers < 1 {
		return config{}, nil, errors.Errorf("workers must be positive: %d", cfg.workers)
	}
	return cfg, fs.Args(), nil
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(level)
}

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

func readInputs(r io.Reader) ([]string, error) {
	var inputs []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading inputs")
	}
	return inputs, nil
}

// run returns the process exit code: 0 if every input is valid, 1 otherwise and 2 on usage errors.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, clk clock.Clock) int {
	cfg, inputs, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, err)
		}
		return 2
	}

	logger := newLogger(stderr, cfg.verbose)

	if len(inputs) == 0 {
		if inputs, err = readInputs(stdin); err != nil {
			logger.Error().Err(err).Msg("failed to read inputs")
			return 1
		}
	}

	results, elapsed, err := NewRunner(cfg.workers, clk, logger).Run(ctx, inputs)
	if err != nil {
		logger.Error().Err(err).Msg("interrupted")
		return 1
	}

	if err := writeReport(stdout, results, cfg); err != nil {
		logger.Error().Err(err).Msg("failed to write report")
		return 1
	}

	failed := sliceutil.Filter(results, func(res Result) bool { return !res.OK() })
	logger.Debug().Int("Total", len(results)).Int("Failed", len(failed)).Dur("Elapsed", elapsed).Msg("done")

	if len(failed) > 0 {
		return 1
	}
	return 0
}
