// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package cpltset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castor-software/gecode/search"
)

func TestBranchValues(t *testing.T) {
	var branchTests = []struct {
		valsel   ValSel
		expected []int
	}{
		{ValMinInc, []int{0}},
		{ValMinExc, []int{}},
		{ValMaxInc, []int{2}},
		{ValMaxExc, []int{}},
	}
	for _, tt := range branchTests {
		home := newSpace(t)
		x := newVar(t, home, 0, 2)
		AtMostSet(home, x, []int{0, 1, 2}, 1)
		require.NoError(t, Branch(home, []View{x}, VarFirst, tt.valsel))
		all := solutions(t, home)
		require.Len(t, all, 4)
		assert.Equal(t, tt.expected, x.In(all[0]).Glb(), "value selection %d", tt.valsel)
	}
}

func TestBranchVariables(t *testing.T) {
	home := newSpace(t)
	x := newVar(t, home, 0, 3)
	y := newVar(t, home, 0, 3)
	x.Include(home, 0)
	y.Include(home, 0)
	y.Include(home, 1)
	y.Include(home, 2)
	require.NoError(t, Branch(home, []View{x, y}, VarMinUnknown, ValMinInc))
	e, err := search.NewDFS(home)
	require.NoError(t, err)
	// the root node decides 3 in y, which has a single undecided value
	_, st := e.Step()
	require.Equal(t, search.NoSolution, st)
	assert.Equal(t, uint64(1), e.Statistics().Nodes)
	assert.Equal(t, 1, e.Statistics().Depth)

	require.Error(t, Branch(home, nil, VarSel(5), ValMinInc))
	require.Error(t, Branch(home, nil, VarFirst, ValSel(-1)))
}

func TestSearchSolutions(t *testing.T) {
	home := newSpace(t)
	x := newVar(t, home, 0, 2)
	y := newVar(t, home, 0, 2)
	AtMostCard(home, x, y, 0, 1)
	require.NoError(t, Branch(home, []View{x, y}, VarFirst, ValMinInc))
	// two different singletons
	all := solutions(t, home)
	require.Len(t, all, 6)
	assert.Equal(t, []int{0}, x.In(all[0]).Glb())
	assert.Equal(t, []int{1}, y.In(all[0]).Glb())
	for _, s := range all {
		assert.NotEqual(t, x.In(s).Glb(), y.In(s).Glb())
	}
}
