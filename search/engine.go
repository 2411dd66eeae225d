// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package search

// Status is the outcome of one step of an engine.
type Status int

const (
	NoSolution Status = iota // the step did not produce a solution
	Solution                 // the step produced a solution
	Exhausted                // there are no more solutions
)

var statusnames = [...]string{
	NoSolution: "nosolution",
	Solution:   "solution",
	Exhausted:  "exhausted",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusnames) {
		return "unknown"
	}
	return statusnames[s]
}

// Engine is a search loop that can be advanced one unit of work at a time.
// The solution returned by Step is only meaningful when the status is
// Solution. Once Step returned Exhausted, it keeps doing so.
type Engine[S any] interface {
	Step() (S, Status)
	// Stopped reports whether the last call to Step was interrupted by a stop
	// condition.
	Stopped() bool
	Statistics() Statistics
}

// Statistics collects information about a search.
type Statistics struct {
	Nodes        uint64 // Number of nodes explored
	Fails        uint64 // Number of failed nodes
	Depth        int    // Maximal depth of the search tree
	Propagations uint64 // Number of calls to Propagate
}

// Add returns the sum of s and o. The depth is the maximum of the two.
func (s Statistics) Add(o Statistics) Statistics {
	res := Statistics{
		Nodes:        s.Nodes + o.Nodes,
		Fails:        s.Fails + o.Fails,
		Depth:        s.Depth,
		Propagations: s.Propagations + o.Propagations,
	}
	if o.Depth > res.Depth {
		res.Depth = o.Depth
	}
	return res
}
