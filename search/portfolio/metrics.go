// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package portfolio

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	sequentialVariant = "sequential"
	parallelVariant   = "parallel"
)

var (
	stepCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_steps_total",
			Help: "Number of slave steps run by portfolios",
		},
		[]string{"variant"},
	)

	solutionCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_solutions_total",
			Help: "Number of solutions reported by slaves, by whether the portfolio kept them",
		},
		[]string{"variant", "accepted"},
	)
)

// Register adds the collectors of the package to r.
func Register(r prometheus.Registerer) {
	r.MustRegister(stepCount)
	r.MustRegister(solutionCount)
}

func emitSolution(variant string, accepted bool) {
	solutionCount.WithLabelValues(variant, strconv.FormatBool(accepted)).Inc()
}
