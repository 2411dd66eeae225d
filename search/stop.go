// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package search

import (
	"time"

	"k8s.io/utils/clock"
)

// Stop is a condition polled by engines between two steps. The search stops
// as soon as Stop returns true.
type Stop interface {
	Stop(s Statistics) bool
}

// NodeLimit stops a search after a given number of nodes.
type NodeLimit uint64

func (l NodeLimit) Stop(s Statistics) bool {
	return s.Nodes >= uint64(l)
}

// FailLimit stops a search after a given number of failures.
type FailLimit uint64

func (l FailLimit) Stop(s Statistics) bool {
	return s.Fails >= uint64(l)
}

// TimeLimit stops a search when a time budget is spent. The budget starts
// when the limit is created.
type TimeLimit struct {
	clock clock.PassiveClock
	start time.Time
	limit time.Duration
}

// NewTimeLimit returns a TimeLimit of d measured with c. A nil clock means the
// system clock.
func NewTimeLimit(d time.Duration, c clock.PassiveClock) *TimeLimit {
	if c == nil {
		c = clock.RealClock{}
	}
	return &TimeLimit{clock: c, start: c.Now(), limit: d}
}

func (l *TimeLimit) Stop(Statistics) bool {
	return l.clock.Since(l.start) >= l.limit
}

type anyStop []Stop

func (a anyStop) Stop(s Statistics) bool {
	for _, st := range a {
		if st != nil && st.Stop(s) {
			return true
		}
	}
	return false
}

// Any returns a Stop that fires when one of stops fires.
func Any(stops ...Stop) Stop {
	return anyStop(stops)
}
