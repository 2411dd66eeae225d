// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package portfolio

import (
	"github.com/sirupsen/logrus"

	"github.com/castor-software/gecode/search"
)

var _ Portfolio[int] = (*Sequential[int])(nil)

// Sequential interleaves the steps of its slaves, round robin, on the calling
// goroutine. Slaves should all poll the same Stop, the one given to
// NewSequential.
type Sequential[S any] struct {
	slaves    []search.Engine[S]
	exhausted []bool
	alive     int
	next      int
	stop      *Stop
	mode      Mode
	result    *Result[S]
	slice     int
	done      bool
	stopped   bool
	logger    logrus.FieldLogger
}

// NewSequential returns a portfolio of slaves. The comparison better is only
// used in Best mode.
func NewSequential[S any](slaves []search.Engine[S], stop *Stop, mode Mode, better Better[S], options ...Option) (*Sequential[S], error) {
	if err := checkSlaves(slaves, stop); err != nil {
		return nil, err
	}
	result, err := NewResult(mode, better)
	if err != nil {
		return nil, err
	}
	c := makeconfig(options)
	return &Sequential[S]{
		slaves:    append([]search.Engine[S](nil), slaves...),
		exhausted: make([]bool, len(slaves)),
		alive:     len(slaves),
		stop:      stop,
		mode:      mode,
		result:    result,
		slice:     c.slice,
		logger:    c.logger.WithFields(logrus.Fields{"variant": sequentialVariant, "mode": mode}),
	}, nil
}

// Step runs the next slave for one slice. It returns the solutions retained
// by the portfolio: the winning one in First mode, every improvement in Best
// mode.
func (e *Sequential[S]) Step() (S, search.Status) {
	var zero S
	if e.done {
		return zero, search.Exhausted
	}
	if e.stop.Stopped() {
		e.finish(true)
		return zero, search.NoSolution
	}
	i := e.next
	for e.exhausted[i] {
		i = (i + 1) % len(e.slaves)
	}
	e.next = (i + 1) % len(e.slaves)
	slave := e.slaves[i]
	for k := 0; k < e.slice; k++ {
		stepCount.WithLabelValues(sequentialVariant).Inc()
		sol, st := slave.Step()
		switch st {
		case search.Solution:
			accepted := e.result.Offer(sol)
			emitSolution(sequentialVariant, accepted)
			e.logger.WithFields(logrus.Fields{"slave": i, "accepted": accepted}).Debug("solution")
			if !accepted {
				continue
			}
			if e.mode == First {
				e.stop.Halt()
				e.finish(false)
			}
			return sol, search.Solution
		case search.Exhausted:
			e.exhausted[i] = true
			e.alive--
			e.logger.WithField("slave", i).Debug("slave exhausted")
			if e.alive == 0 {
				e.finish(false)
				return zero, search.Exhausted
			}
			return zero, search.NoSolution
		default:
			if slave.Stopped() {
				e.finish(true)
				return zero, search.NoSolution
			}
		}
	}
	return zero, search.NoSolution
}

func (e *Sequential[S]) finish(stopped bool) {
	e.done = true
	e.stopped = stopped
	_, found := e.result.Get()
	e.logger.WithFields(logrus.Fields{"stopped": stopped, "found": found}).Debug("portfolio done")
}

// Stopped reports whether the portfolio finished because of its stop.
func (e *Sequential[S]) Stopped() bool {
	return e.stopped
}

// Statistics returns the sum of the statistics of the slaves.
func (e *Sequential[S]) Statistics() search.Statistics {
	var res search.Statistics
	for _, s := range e.slaves {
		res = res.Add(s.Statistics())
	}
	return res
}

func (e *Sequential[S]) Done() bool {
	return e.done
}

func (e *Sequential[S]) Result() (S, bool) {
	return e.result.Get()
}

// Close finishes the portfolio. Slaves are not stepped anymore.
func (e *Sequential[S]) Close() error {
	if !e.done {
		e.finish(e.stop.Stopped())
	}
	return nil
}
