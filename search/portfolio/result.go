// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package portfolio

import (
	"sync"

	"github.com/pkg/errors"
)

// Mode selects which solution a portfolio returns.
type Mode int

const (
	First Mode = iota // the first solution found by any slave
	Best              // the best solution found by all the slaves
)

func (m Mode) String() string {
	switch m {
	case First:
		return "first"
	case Best:
		return "best"
	}
	return "unknown"
}

// Better reports whether a is strictly better than b.
type Better[S any] func(a, b S) bool

// Result is the solution retained by a portfolio. It is safe for concurrent
// use.
type Result[S any] struct {
	mu     sync.Mutex
	mode   Mode
	better Better[S]
	sol    S
	ok     bool
}

// NewResult returns an empty result. better is only used, and then required,
// in Best mode.
func NewResult[S any](mode Mode, better Better[S]) (*Result[S], error) {
	switch {
	case mode != First && mode != Best:
		return nil, errors.Errorf("portfolio: unknown mode %d", mode)
	case mode == Best && better == nil:
		return nil, errors.New("portfolio: best mode requires a comparison")
	}
	return &Result[S]{mode: mode, better: better}, nil
}

// Offer records s if it is the first solution or, in Best mode, if it is
// strictly better than the current one. It reports whether s was recorded.
func (r *Result[S]) Offer(s S) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ok && (r.mode == First || !r.better(s, r.sol)) {
		return false
	}
	r.sol, r.ok = s, true
	return true
}

// Get returns the recorded solution, if any.
func (r *Result[S]) Get() (S, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sol, r.ok
}
