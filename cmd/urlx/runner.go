package main

import (
	"context"
	"time"
	"urlkit/application/util/uri"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of parsing a single input.
type Result struct {
	Input     string
	URL       uri.URL
	Canonical string
	Err       error
}

func (r Result) OK() bool { return r.Err == nil }

// Runner parses inputs on a bounded number of goroutines.
type Runner struct {
	workers int
	clock   clock.Clock
	logger  zerolog.Logger
	parse   func(string) (uri.URL, error)
}

func NewRunner(workers int, clock clock.Clock, logger zerolog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{workers: workers, clock: clock, logger: logger, parse: uri.Parse}
}

// Run parses every input and returns the results in input order.
// Malformed inputs are reported through Result.Err, the returned error is only
// set when ctx is done before every input was handled.
func (r *Runner) Run(ctx context.Context, inputs []string) ([]Result, time.Duration, error) {
	start := r.clock.Now()
	results := make([]Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	// Set when inputs are left unhandled.
	var canceled error
	for idx, input := range inputs {
		if err := gctx.Err(); err != nil {
			canceled = err
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[idx] = r.process(input)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = canceled
	}
	elapsed := r.clock.Since(start)

	if err != nil {
		return nil, elapsed, errors.Wrap(err, "parsing inputs")
	}

	r.logger.Debug().Int("Inputs", len(inputs)).Dur("Elapsed", elapsed).Msg("parsed")
	return results, elapsed, nil
}

func (r *Runner) process(input string) Result {
	res := Result{Input: input}

	u, err := r.parse(input)
	if err != nil {
		r.logger.Debug().Str("Input", input).Err(err).Msg("malformed")
		res.Err = err
		return res
	}
	res.URL = u

	canonical, err := u.Encode()
	if err != nil {
		r.logger.Debug().Str("Input", input).Err(err).Msg("cannot encode")
		res.Err = err
		return res
	}
	res.Canonical = canonical

	r.logger.Debug().Str("Input", input).Str("Canonical", canonical).Msg("parsed")
	return res
}
