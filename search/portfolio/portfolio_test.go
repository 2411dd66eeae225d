// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package portfolio

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castor-software/gecode/search"
)

// slave is a scripted engine. It reports the solutions of sols at the given
// steps and is exhausted after length steps, or never when length is
// negative. When wait is set, every call to Step blocks until the stop fires.
type slave struct {
	stop    search.Stop
	sols    map[int]int
	length  int
	wait    bool
	steps   atomic.Int32
	stopped bool
	// sawStop is set when the stop was observed at a step boundary
	sawStop atomic.Bool
}

func (s *slave) Step() (int, search.Status) {
	if s.wait {
		s.steps.Add(1)
		for !s.stop.Stop(search.Statistics{}) {
			time.Sleep(time.Millisecond)
		}
		s.stopped = true
		s.sawStop.Store(true)
		return 0, search.NoSolution
	}
	n := int(s.steps.Load())
	if s.stop != nil && s.stop.Stop(search.Statistics{Nodes: uint64(n)}) {
		s.stopped = true
		s.sawStop.Store(true)
		return 0, search.NoSolution
	}
	s.steps.Add(1)
	if s.length >= 0 && n >= s.length {
		return 0, search.Exhausted
	}
	if v, ok := s.sols[n]; ok {
		return v, search.Solution
	}
	return 0, search.NoSolution
}

func (s *slave) Stopped() bool {
	return s.stopped
}

func (s *slave) Statistics() search.Statistics {
	return search.Statistics{Nodes: uint64(s.steps.Load())}
}

func greater(a, b int) bool {
	return a > b
}

func engines(slaves []*slave) []search.Engine[int] {
	res := make([]search.Engine[int], len(slaves))
	for i, s := range slaves {
		res[i] = s
	}
	return res
}

// stopsOf returns the stops polled by slaves, which must be portfolio stops.
func stopsOf(slaves []*slave) []*Stop {
	res := make([]*Stop, len(slaves))
	for i, s := range slaves {
		res[i] = s.stop.(*Stop)
	}
	return res
}

func TestSequentialFirst(t *testing.T) {
	stop := NewStop(context.Background(), nil)
	slaves := []*slave{
		{stop: stop, length: -1},
		{stop: stop, length: -1, sols: map[int]int{0: 42}},
		{stop: stop, length: -1},
	}
	steps := testutil.ToFloat64(stepCount.WithLabelValues(sequentialVariant))
	e, err := NewSequential(engines(slaves), stop, First, nil)
	require.NoError(t, err)

	_, st := e.Step()
	require.Equal(t, search.NoSolution, st)
	require.False(t, e.Done())
	sol, st := e.Step()
	require.Equal(t, search.Solution, st)
	assert.Equal(t, 42, sol)
	assert.True(t, e.Done())
	assert.True(t, stop.Stopped())
	assert.Equal(t, steps+2, testutil.ToFloat64(stepCount.WithLabelValues(sequentialVariant)))

	// the other slaves would see the stop before their next step
	assert.True(t, slaves[0].stop.Stop(slaves[0].Statistics()))
	assert.True(t, slaves[2].stop.Stop(slaves[2].Statistics()))
	assert.Equal(t, []int32{1, 1, 0}, []int32{slaves[0].steps.Load(), slaves[1].steps.Load(), slaves[2].steps.Load()})

	_, st = e.Step()
	assert.Equal(t, search.Exhausted, st)
	res, ok := e.Result()
	assert.True(t, ok)
	assert.Equal(t, 42, res)
	assert.Equal(t, search.Statistics{Nodes: 2}, e.Statistics())
}

func TestParallelFirst(t *testing.T) {
	root := NewStop(context.Background(), nil)
	slaves := []*slave{
		{stop: root.Derive(), wait: true},
		{stop: root.Derive(), length: -1, sols: map[int]int{0: 42}},
		{stop: root.Derive(), wait: true},
	}
	e, err := NewParallel(engines(slaves), stopsOf(slaves), root, First, nil)
	require.NoError(t, err)

	sol, st := e.Step()
	require.Equal(t, search.Solution, st)
	assert.Equal(t, 42, sol)
	assert.True(t, e.Done())
	assert.True(t, root.Stopped())
	for _, i := range []int{0, 2} {
		assert.True(t, slaves[i].sawStop.Load())
		assert.Equal(t, int32(1), slaves[i].steps.Load())
	}
	assert.NoError(t, e.Close())
	res, ok := e.Result()
	assert.True(t, ok)
	assert.Equal(t, 42, res)
	_, st = e.Step()
	assert.Equal(t, search.Exhausted, st)
}

func permutations(xs []int) [][]int {
	if len(xs) <= 1 {
		return [][]int{append([]int(nil), xs...)}
	}
	var res [][]int
	for i := range xs {
		rest := append(append([]int(nil), xs[:i]...), xs[i+1:]...)
		for _, p := range permutations(rest) {
			res = append(res, append([]int{xs[i]}, p...))
		}
	}
	return res
}

func TestSequentialBest(t *testing.T) {
	for _, order := range permutations([]int{5, 3, 8}) {
		stop := NewStop(context.Background(), nil)
		slaves := make([]*slave, len(order))
		for i, q := range order {
			slaves[i] = &slave{stop: stop, length: 2, sols: map[int]int{1: q}}
		}
		e, err := NewSequential(engines(slaves), stop, Best, greater)
		require.NoError(t, err)
		sol, ok, err := Run[int](e)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 8, sol, "arrival order %v", order)
		assert.False(t, e.Stopped())
		assert.False(t, stop.Stopped())
	}
}

func TestParallelBest(t *testing.T) {
	for _, order := range permutations([]int{5, 3, 8}) {
		root := NewStop(context.Background(), nil)
		slaves := make([]*slave, len(order))
		for i, q := range order {
			slaves[i] = &slave{stop: root.Derive(), length: 3, sols: map[int]int{i: q}}
		}
		e, err := NewParallel(engines(slaves), stopsOf(slaves), root, Best, greater)
		require.NoError(t, err)
		var last int
		for {
			sol, st := e.Step()
			if st == search.Exhausted {
				break
			}
			require.Equal(t, search.Solution, st)
			last = sol
		}
		assert.NotZero(t, last)
		res, ok := e.Result()
		require.True(t, ok)
		assert.Equal(t, 8, res, "arrival order %v", order)
		assert.False(t, e.Stopped())
		assert.Equal(t, uint64(3*4), e.Statistics().Nodes)
		assert.NoError(t, e.Close())
	}
}

func TestSequentialSlice(t *testing.T) {
	stop := NewStop(context.Background(), nil)
	slaves := []*slave{
		{stop: stop, length: -1},
		{stop: stop, length: -1, sols: map[int]int{5: 1}},
	}
	e, err := NewSequential(engines(slaves), stop, First, nil, WithSlice(3))
	require.NoError(t, err)
	sol, ok, err := Run[int](e)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, sol)
	// slave 0 ran two slices, slave 1 found its solution in its second one
	assert.Equal(t, int32(6), slaves[0].steps.Load())
	assert.Equal(t, int32(6), slaves[1].steps.Load())
}

func TestLimitStopsPortfolio(t *testing.T) {
	stop := NewStop(context.Background(), search.NodeLimit(4))
	slaves := []*slave{{stop: stop, length: -1}, {stop: stop, length: -1}}
	e, err := NewSequential(engines(slaves), stop, Best, greater)
	require.NoError(t, err)
	_, ok, err := Run[int](e)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, e.Stopped())
	assert.True(t, stop.Stopped())
	assert.Equal(t, int32(4), slaves[0].steps.Load())
}

func TestContextStopsParallel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	root := NewStop(ctx, nil)
	slaves := []*slave{{stop: root.Derive(), length: -1}, {stop: root.Derive(), wait: true}}
	e, err := NewParallel(engines(slaves), stopsOf(slaves), root, Best, greater)
	require.NoError(t, err)
	cancel()
	_, st := e.Step()
	assert.Equal(t, search.NoSolution, st)
	assert.True(t, e.Stopped())
	assert.True(t, e.Done())
	_, ok := e.Result()
	assert.False(t, ok)
}

func TestAllSlaveLimitsStopParallel(t *testing.T) {
	root := NewStop(context.Background(), search.NodeLimit(3))
	slaves := []*slave{{stop: root.Derive(), length: -1}, {stop: root.Derive(), length: -1}}
	e, err := NewParallel(engines(slaves), stopsOf(slaves), root, Best, greater)
	require.NoError(t, err)
	// both slaves run out of budget: the search is incomplete, not exhausted
	_, st := e.Step()
	assert.Equal(t, search.NoSolution, st)
	assert.True(t, e.Stopped())
	assert.True(t, e.Done())
	assert.False(t, root.Stopped())
	assert.Equal(t, []int32{3, 3}, []int32{slaves[0].steps.Load(), slaves[1].steps.Load()})
	assert.NoError(t, e.Close())
}

// TestOneSlaveLimitStopsParallel checks that a single slave stopped by its budget
// is enough for the portfolio to report that it was stopped.
func TestOneSlaveLimitStopsParallel(t *testing.T) {
	root := NewStop(context.Background(), nil)
	limited := root.Derive()
	limited.limit = search.NodeLimit(2)
	slaves := []*slave{{stop: limited, length: -1}, {stop: root.Derive(), length: 5, sols: map[int]int{1: 4}}}
	e, err := NewParallel(engines(slaves), stopsOf(slaves), root, Best, greater)
	require.NoError(t, err)
	sol, ok, err := Run[int](e)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4, sol)
	assert.True(t, e.Stopped())
	_, st := e.Step()
	assert.Equal(t, search.Exhausted, st)
}

func TestDerivedStop(t *testing.T) {
	root := NewStop(context.Background(), search.NodeLimit(10))
	a, b := root.Derive(), root.Derive()
	assert.True(t, a.Stop(search.Statistics{Nodes: 10}))
	assert.True(t, a.Stopped())
	assert.False(t, b.Stopped())
	assert.False(t, root.Stopped())
	root.Halt()
	assert.True(t, b.Stopped())
	assert.True(t, b.Derive().Stop(search.Statistics{}))
}

func TestConstructorErrors(t *testing.T) {
	stop := NewStop(context.Background(), nil)
	_, err := NewSequential[int](nil, stop, First, nil)
	assert.Error(t, err)
	_, err = NewSequential(engines([]*slave{{}}), nil, First, nil)
	assert.Error(t, err)
	_, err = NewSequential(engines([]*slave{{}}), stop, Best, nil)
	assert.Error(t, err)
	_, err = NewParallel(engines([]*slave{{}}), []*Stop{stop.Derive()}, stop, Mode(7), greater)
	assert.Error(t, err)
	// every slave needs its own stop derived from the root
	_, err = NewParallel(engines([]*slave{{}, {}}), []*Stop{stop.Derive()}, stop, Best, greater)
	assert.Error(t, err)
	_, err = NewParallel(engines([]*slave{{}}), []*Stop{stop}, stop, Best, greater)
	assert.Error(t, err)
	_, err = NewParallel(engines([]*slave{{}}), []*Stop{NewStop(context.Background(), nil)}, stop, Best, greater)
	assert.Error(t, err)
	_, err = NewParallel(engines([]*slave{{}}), []*Stop{nil}, stop, Best, greater)
	assert.Error(t, err)
}

// TestNested runs a sequential portfolio as a slave of a parallel one.
func TestNested(t *testing.T) {
	root := NewStop(context.Background(), nil)
	inner := root.Derive()
	sub, err := NewSequential(engines([]*slave{
		{stop: inner, length: 4, sols: map[int]int{2: 7}},
		{stop: inner, length: 4, sols: map[int]int{3: 9}},
	}), inner, Best, greater)
	require.NoError(t, err)
	other := &slave{stop: root.Derive(), length: 4, sols: map[int]int{0: 8}}
	e, err := NewParallel([]search.Engine[int]{sub, other}, []*Stop{inner, other.stop.(*Stop)}, root, Best, greater)
	require.NoError(t, err)
	sol, ok, err := Run[int](e)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 9, sol)
}
