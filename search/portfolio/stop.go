// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package portfolio

import (
	"context"
	"sync/atomic"

	"github.com/castor-software/gecode/search"
)

var _ search.Stop = (*Stop)(nil)

// Stop is the stop policy shared by the slaves of a portfolio. It goes from
// running to stopped once and never back. A Stop is stopped when it is halted,
// when its context is done, when its limit fires, or when its parent is
// stopped.
type Stop struct {
	stopped atomic.Bool
	parent  *Stop
	ctx     context.Context
	limit   search.Stop
}

// NewStop returns a running Stop. Both ctx and limit may be nil.
func NewStop(ctx context.Context, limit search.Stop) *Stop {
	return &Stop{ctx: ctx, limit: limit}
}

// Derive returns a Stop that is stopped when s is. Halting the result, or
// reaching its limit, does not stop s. The result has the same limit as s,
// evaluated on the statistics of its own engine.
func (s *Stop) Derive() *Stop {
	return &Stop{parent: s, limit: s.limit}
}

// derives reports whether root is a strict ancestor of s.
func (s *Stop) derives(root *Stop) bool {
	for p := s.parent; p != nil; p = p.parent {
		if p == root {
			return true
		}
	}
	return false
}

// Halt stops s.
func (s *Stop) Halt() {
	s.stopped.Store(true)
}

// Stopped reports whether s is stopped, without evaluating its limit.
func (s *Stop) Stopped() bool {
	if s.stopped.Load() {
		return true
	}
	if s.ctx != nil && s.ctx.Err() != nil {
		s.Halt()
		return true
	}
	return s.parent != nil && s.parent.Stopped()
}

// Stop is polled by the engines before every step.
func (s *Stop) Stop(stats search.Statistics) bool {
	if s.Stopped() {
		return true
	}
	if s.limit != nil && s.limit.Stop(stats) {
		s.Halt()
		return true
	}
	return false
}
