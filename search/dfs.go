// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package search

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/castor-software/gecode/kernel"
)

var _ Engine[*kernel.Space] = (*DFS)(nil)

// edge is an open node of the search tree: a clone of the space taken before
// committing to alternative alt of choice.
type edge struct {
	space  *kernel.Space
	choice kernel.Choice
	alt    int
}

// DFS explores the search tree of a space depth first. Each call to Step
// explores one node; solutions are returned as spaces that the engine no
// longer uses.
type DFS struct {
	cur       *kernel.Space // next node to explore, nil when backtracking
	path      []edge
	stop      Stop
	stopped   bool
	exhausted bool
	stats     Statistics
	logger    logrus.FieldLogger
}

// Option configures a DFS engine.
type Option func(*DFS)

// WithStop sets the stop condition polled before every step.
func WithStop(s Stop) Option {
	return func(e *DFS) {
		e.stop = s
	}
}

// WithLogger sets the logger of the engine.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *DFS) {
		e.logger = l
	}
}

// NewDFS returns an engine exploring a clone of root.
func NewDFS(root *kernel.Space, options ...Option) (*DFS, error) {
	if root == nil {
		return nil, errors.New("search: nil root space")
	}
	e := &DFS{logger: logrus.StandardLogger()}
	for _, f := range options {
		f(e)
	}
	e.cur = root.Clone()
	return e, nil
}

// Step explores the next node of the search tree.
func (e *DFS) Step() (*kernel.Space, Status) {
	if e.exhausted {
		return nil, Exhausted
	}
	if e.stop != nil && e.stop.Stop(e.stats) {
		e.stopped = true
		return nil, NoSolution
	}
	e.stopped = false
	if e.cur == nil && !e.backtrack() {
		e.exhausted = true
		e.logger.WithField("nodes", e.stats.Nodes).Debug("search tree exhausted")
		return nil, Exhausted
	}
	e.stats.Nodes++
	before := e.cur.Propagations()
	st := e.cur.Status()
	e.stats.Propagations += e.cur.Propagations() - before
	switch st {
	case kernel.SSFailed:
		e.stats.Fails++
		e.cur = nil
		return nil, NoSolution
	case kernel.SSSolved:
		sol := e.cur
		e.cur = nil
		return sol, Solution
	}
	ch := e.cur.Choice()
	if ch.Alternatives() > 1 {
		e.path = append(e.path, edge{space: e.cur.Clone(), choice: ch})
		if len(e.path) > e.stats.Depth {
			e.stats.Depth = len(e.path)
		}
	}
	e.cur.Commit(ch, 0)
	return nil, NoSolution
}

// backtrack moves to the next alternative of the deepest open node. It
// returns false when there is none.
func (e *DFS) backtrack() bool {
	for len(e.path) > 0 {
		top := &e.path[len(e.path)-1]
		top.alt++
		if top.alt >= top.choice.Alternatives() {
			e.path = e.path[:len(e.path)-1]
			continue
		}
		if top.alt == top.choice.Alternatives()-1 {
			// last alternative: the clone is not needed anymore
			e.cur = top.space
			e.path = e.path[:len(e.path)-1]
			e.cur.Commit(top.choice, top.alt)
			return true
		}
		e.cur = top.space.Clone()
		e.cur.Commit(top.choice, top.alt)
		return true
	}
	return false
}

// Stopped reports whether the last step was interrupted by the stop
// condition.
func (e *DFS) Stopped() bool {
	return e.stopped
}

// Statistics returns the statistics of the search so far.
func (e *DFS) Statistics() Statistics {
	return e.stats
}
