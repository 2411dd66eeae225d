// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package portfolio

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/castor-software/gecode/search"
)

type config struct {
	logger logrus.FieldLogger
	slice  int
}

// Option configures a portfolio.
type Option func(*config)

// WithLogger sets the logger of the portfolio.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithSlice sets the number of steps a Sequential portfolio runs on a slave
// before moving to the next one. The default is 1.
func WithSlice(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.slice = n
		}
	}
}

func makeconfig(options []Option) *config {
	c := &config{logger: logrus.StandardLogger(), slice: 1}
	for _, f := range options {
		f(c)
	}
	return c
}

func checkSlaves[S any](slaves []search.Engine[S], stop *Stop) error {
	if len(slaves) == 0 {
		return errors.New("portfolio: no slave")
	}
	for i, s := range slaves {
		if s == nil {
			return errors.Errorf("portfolio: nil slave %d", i)
		}
	}
	if stop == nil {
		return errors.New("portfolio: nil stop")
	}
	return nil
}

// checkStops verifies that there is one stop per slave and that each one is
// derived from root, so that halting root reaches every slave.
func checkStops(stops []*Stop, n int, root *Stop) error {
	if len(stops) != n {
		return errors.Errorf("portfolio: %d stops for %d slaves", len(stops), n)
	}
	for i, s := range stops {
		if s == nil || !s.derives(root) {
			return errors.Errorf("portfolio: stop %d is not derived from the root stop", i)
		}
	}
	return nil
}

// Portfolio is the interface common to Sequential and Parallel.
type Portfolio[S any] interface {
	search.Engine[S]
	// Done reports whether the portfolio is finished.
	Done() bool
	// Result returns the solution retained so far.
	Result() (S, bool)
	Close() error
}

// Run steps p until it is finished, closes it and returns its result.
func Run[S any](p Portfolio[S]) (S, bool, error) {
	for !p.Done() {
		p.Step()
	}
	err := p.Close()
	sol, ok := p.Result()
	return sol, ok, err
}
