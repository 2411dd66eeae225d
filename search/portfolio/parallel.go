// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package portfolio

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/castor-software/gecode/search"
)

var _ Portfolio[int] = (*Parallel[int])(nil)

type event[S any] struct {
	slave int
	sol   S
}

// Parallel runs each slave on its own goroutine. Slave i polls stops[i], a
// Stop derived from the root, so that halting the root reaches every slave at
// its next step.
type Parallel[S any] struct {
	slaves  []search.Engine[S]
	stops   []*Stop
	root    *Stop
	mode    Mode
	result  *Result[S]
	events  chan event[S]
	err     error // set before events is closed
	done    bool
	stopped bool
	halted  atomic.Bool // a slave returned because of its stop
	once    sync.Once
	logger  logrus.FieldLogger

	mu    sync.Mutex
	stats search.Statistics // of the slaves that returned
}

// NewParallel starts a goroutine per slave and returns the portfolio. Slave i
// must poll stops[i], which must be derived from root. The comparison better
// is only used in Best mode.
func NewParallel[S any](slaves []search.Engine[S], stops []*Stop, root *Stop, mode Mode, better Better[S], options ...Option) (*Parallel[S], error) {
	if err := checkSlaves(slaves, root); err != nil {
		return nil, err
	}
	if err := checkStops(stops, len(slaves), root); err != nil {
		return nil, err
	}
	result, err := NewResult(mode, better)
	if err != nil {
		return nil, err
	}
	c := makeconfig(options)
	e := &Parallel[S]{
		slaves: append([]search.Engine[S](nil), slaves...),
		stops:  append([]*Stop(nil), stops...),
		root:   root,
		mode:   mode,
		result: result,
		events: make(chan event[S], len(slaves)),
		logger: c.logger.WithFields(logrus.Fields{"variant": parallelVariant, "mode": mode}),
	}
	var g errgroup.Group
	for i := range e.slaves {
		i := i
		g.Go(func() error {
			return e.work(i)
		})
	}
	go func() {
		e.err = g.Wait()
		close(e.events)
	}()
	return e, nil
}

// work steps slave i until it is exhausted or stopped.
func (e *Parallel[S]) work(i int) error {
	slave := e.slaves[i]
	log := e.logger.WithField("slave", i)
	defer func() {
		e.mu.Lock()
		e.stats = e.stats.Add(slave.Statistics())
		e.mu.Unlock()
	}()
	for {
		stepCount.WithLabelValues(parallelVariant).Inc()
		sol, st := slave.Step()
		switch st {
		case search.Exhausted:
			log.Debug("slave exhausted")
			return nil
		case search.Solution:
			accepted := e.result.Offer(sol)
			emitSolution(parallelVariant, accepted)
			log.WithField("accepted", accepted).Debug("solution")
			if !accepted {
				continue
			}
			if e.mode == First {
				e.root.Halt()
			}
			e.events <- event[S]{slave: i, sol: sol}
		default:
			if slave.Stopped() || e.stops[i].Stopped() {
				log.Debug("slave stopped")
				e.halted.Store(true)
				return nil
			}
		}
	}
}

// Step waits for the next solution retained by the portfolio: the winning one
// in First mode, every improvement in Best mode. It returns Exhausted once
// every slave is exhausted, or NoSolution with Stopped set when a slave
// returned because of its stop.
func (e *Parallel[S]) Step() (S, search.Status) {
	var zero S
	if e.done {
		return zero, search.Exhausted
	}
	ev, ok := <-e.events
	if !ok {
		e.finish()
		if e.stopped {
			return zero, search.NoSolution
		}
		return zero, search.Exhausted
	}
	if e.mode == First {
		e.Close()
	}
	return ev.sol, search.Solution
}

func (e *Parallel[S]) finish() {
	e.done = true
	e.stopped = e.root.Stopped() || e.halted.Load()
	_, found := e.result.Get()
	e.logger.WithFields(logrus.Fields{"stopped": e.stopped, "found": found}).Debug("portfolio done")
}

// Close halts the slaves and waits for their goroutines to return. Solutions
// that were not returned by Step are still available through Result.
func (e *Parallel[S]) Close() error {
	e.once.Do(func() {
		if !e.done {
			e.root.Halt()
			for range e.events {
			}
			e.finish()
		}
	})
	return e.err
}

// Stopped reports whether the portfolio finished because of its stop.
func (e *Parallel[S]) Stopped() bool {
	return e.stopped
}

// Statistics returns the sum of the statistics of the slaves that have
// returned. It is complete once the portfolio is done.
func (e *Parallel[S]) Statistics() search.Statistics {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

func (e *Parallel[S]) Done() bool {
	return e.done
}

func (e *Parallel[S]) Result() (S, bool) {
	return e.result.Get()
}
