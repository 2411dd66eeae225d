// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	clocktesting "k8s.io/utils/clock/testing"
)

func TestLimits(t *testing.T) {
	var limitTests = []struct {
		name     string
		stop     Stop
		stats    Statistics
		expected bool
	}{
		{"nodes below", NodeLimit(10), Statistics{Nodes: 9}, false},
		{"nodes reached", NodeLimit(10), Statistics{Nodes: 10}, true},
		{"fails below", FailLimit(3), Statistics{Nodes: 100, Fails: 2}, false},
		{"fails reached", FailLimit(3), Statistics{Fails: 3}, true},
		{"any none", Any(NodeLimit(10), FailLimit(3)), Statistics{Nodes: 1}, false},
		{"any one", Any(NodeLimit(10), FailLimit(3)), Statistics{Fails: 5}, true},
		{"any nil", Any(nil, NodeLimit(1)), Statistics{Nodes: 1}, true},
		{"any empty", Any(), Statistics{Nodes: 1000}, false},
	}
	for _, tt := range limitTests {
		assert.Equal(t, tt.expected, tt.stop.Stop(tt.stats), tt.name)
	}
}

func TestTimeLimit(t *testing.T) {
	clk := clocktesting.NewFakeClock(time.Date(2018, time.January, 26, 20, 40, 0, 0, time.UTC))
	limit := NewTimeLimit(time.Second, clk)
	assert.False(t, limit.Stop(Statistics{}))
	clk.Step(999 * time.Millisecond)
	assert.False(t, limit.Stop(Statistics{}))
	clk.Step(time.Millisecond)
	assert.True(t, limit.Stop(Statistics{}))
}

func TestStatisticsAdd(t *testing.T) {
	a := Statistics{Nodes: 3, Fails: 1, Depth: 4, Propagations: 10}
	b := Statistics{Nodes: 2, Fails: 2, Depth: 6, Propagations: 1}
	assert.Equal(t, Statistics{Nodes: 5, Fails: 3, Depth: 6, Propagations: 11}, a.Add(b))
	assert.Equal(t, "exhausted", Exhausted.String())
}
