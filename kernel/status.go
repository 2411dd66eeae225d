// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package kernel

// ExecStatus is returned by propagators and by Commit.
type ExecStatus int

const (
	ESFailed   ExecStatus = iota // the space is failed
	ESFix                        // the propagator is at fixpoint
	ESNoFix                      // the propagator may not be at fixpoint
	ESSubsumed                   // the propagator is entailed and can be discarded
)

var esnames = [...]string{
	ESFailed:   "failed",
	ESFix:      "fix",
	ESNoFix:    "nofix",
	ESSubsumed: "subsumed",
}

func (es ExecStatus) String() string {
	if es < 0 || int(es) >= len(esnames) {
		return "unknown"
	}
	return esnames[es]
}

// ModEvent describes how an operation modified the domain of a variable.
type ModEvent int

const (
	MEFailed   ModEvent = -1 // the domain became empty
	MENone     ModEvent = 0  // the domain did not change
	MEAssigned ModEvent = 1  // the variable became assigned
	MEDomain   ModEvent = 2  // the domain changed
)

// Failed reports whether me signals a failure.
func (me ModEvent) Failed() bool {
	return me == MEFailed
}

// SpaceStatus is the result of Status.
type SpaceStatus int

const (
	SSFailed SpaceStatus = iota // the space is failed
	SSSolved                    // the space has no more alternatives
	SSBranch                    // the space has a choice to branch on
)

var ssnames = [...]string{
	SSFailed: "failed",
	SSSolved: "solved",
	SSBranch: "branch",
}

func (ss SpaceStatus) String() string {
	if ss < 0 || int(ss) >= len(ssnames) {
		return "unknown"
	}
	return ssnames[ss]
}
