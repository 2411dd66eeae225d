// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package cpltset

import "github.com/prometheus/client_golang/prometheus"

const (
	// Outcomes of a constraint compilation
	outcomePosted   = "posted"
	outcomeShortcut = "shortcut"
	outcomeFailed   = "failed"
	outcomeSkipped  = "skipped"
)

var (
	compileCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cpltset_compile_total",
			Help: "Number of constraints compiled, by constraint and outcome",
		},
		[]string{"constraint", "outcome"},
	)

	diagramBuilds = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cpltset_diagram_builds_total",
			Help: "Number of cardinality, intersection and ordering diagrams built",
		},
	)
)

// Register adds the collectors of the package to r.
func Register(r prometheus.Registerer) {
	r.MustRegister(compileCount)
	r.MustRegister(diagramBuilds)
}

func emitCompile(constraint, outcome string) {
	compileCount.WithLabelValues(constraint, outcome).Inc()
}
