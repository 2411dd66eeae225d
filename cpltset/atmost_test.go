// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package cpltset

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castor-software/gecode/kernel"
	"github.com/castor-software/gecode/search"
)

// solutions returns every solution of home.
func solutions(t *testing.T, home *kernel.Space) []*kernel.Space {
	t.Helper()
	e, err := search.NewDFS(home)
	require.NoError(t, err)
	res := []*kernel.Space{}
	for {
		s, st := e.Step()
		switch st {
		case search.Solution:
			res = append(res, s)
		case search.Exhausted:
			return res
		}
	}
}

func TestExactlyLowerBoundShortcut(t *testing.T) {
	home := newSpace(t)
	x := newVar(t, home, 0, 5)
	x.Include(home, 2)
	builds := testutil.ToFloat64(diagramBuilds)
	shortcuts := testutil.ToFloat64(compileCount.WithLabelValues("exactly", outcomeShortcut))

	Exactly(home, x, []int{2, 3, 4}, 1)
	require.False(t, home.Failed())
	assert.Equal(t, builds, testutil.ToFloat64(diagramBuilds))
	assert.Equal(t, shortcuts+1, testutil.ToFloat64(compileCount.WithLabelValues("exactly", outcomeShortcut)))
	assert.Equal(t, 0, home.Propagators())
	assert.Equal(t, []int{0, 1, 2, 5}, x.Lub())
}

func TestExactlySingleCandidate(t *testing.T) {
	home := newSpace(t)
	x := newVar(t, home, 0, 5)
	builds := testutil.ToFloat64(diagramBuilds)
	// 7 is not in the universe of x
	Exactly(home, x, []int{7, 3}, 1)
	require.False(t, home.Failed())
	assert.Equal(t, builds, testutil.ToFloat64(diagramBuilds))
	assert.Equal(t, []int{3}, x.Glb())
}

func TestExactlyFailures(t *testing.T) {
	home := newSpace(t)
	x := newVar(t, home, 0, 5)
	x.Include(home, 2)
	x.Include(home, 3)
	Exactly(home, x, []int{2, 3}, 1)
	require.True(t, home.Failed())

	home = newSpace(t)
	x = newVar(t, home, 0, 5)
	Exactly(home, x, nil, 1)
	require.True(t, home.Failed())

	home = newSpace(t)
	x = newVar(t, home, 0, 5)
	x.Exclude(home, 1)
	Exactly(home, x, []int{0, 1}, 2)
	require.True(t, home.Failed())
}

func TestExactlyPropagation(t *testing.T) {
	home := newSpace(t)
	x := newVar(t, home, 0, 5)
	builds := testutil.ToFloat64(diagramBuilds)
	Exactly(home, x, []int{1, 2, 3}, 2)
	require.False(t, home.Failed())
	require.Greater(t, testutil.ToFloat64(diagramBuilds), builds)
	require.Equal(t, 1, home.Propagators())

	require.Equal(t, kernel.SSSolved, home.Status())
	x.Include(home, 1)
	x.Include(home, 3)
	require.Equal(t, kernel.SSSolved, home.Status())
	assert.Equal(t, []int{0, 1, 3, 4, 5}, x.Lub())
	assert.Equal(t, 0, home.Propagators())
}

func TestSkippedOnFailedSpace(t *testing.T) {
	home := newSpace(t)
	x := newVar(t, home, 0, 3)
	y := newVar(t, home, 0, 3)
	home.Fail()
	skipped := testutil.ToFloat64(compileCount.WithLabelValues("atmost", outcomeSkipped))
	builds := testutil.ToFloat64(diagramBuilds)

	Exactly(home, x, []int{1}, 1)
	AtMostSet(home, x, []int{1}, 0)
	AtMost(home, x, y, 1)
	AtMostLex(home, x, y, 1, LexRel{LexLe, Forward})
	AtMostLexCard(home, x, y, 1, LexRel{LexLe, Forward}, 2)
	AtMostCard(home, x, y, 1, 2)
	AtMost3(home, x, y, x, 1)
	AtMost3Lex(home, x, y, x, 1, LexRel{LexGq, Reverse})
	AtMostOne(home, []View{x, y}, 1)

	assert.Equal(t, skipped+1, testutil.ToFloat64(compileCount.WithLabelValues("atmost", outcomeSkipped)))
	assert.Equal(t, builds, testutil.ToFloat64(diagramBuilds))
	assert.Equal(t, 0, home.Propagators())
}

func TestAtMostSet(t *testing.T) {
	home := newSpace(t)
	x := newVar(t, home, 0, 3)
	AtMostSet(home, x, []int{0, 1, 2}, 1)
	x.Include(home, 0)
	require.Equal(t, kernel.SSSolved, home.Status())
	assert.Equal(t, []int{0, 3}, x.Lub())

	home = newSpace(t)
	x = newVar(t, home, 0, 3)
	AtMostSet(home, x, []int{0, 1}, -1)
	assert.True(t, home.Failed())
}

func TestAtMost(t *testing.T) {
	home := newSpace(t)
	x := newVar(t, home, 0, 3)
	y := newVar(t, home, 0, 3)
	AtMost(home, x, y, 1)
	x.Include(home, 0)
	x.Include(home, 1)
	y.Include(home, 0)
	require.Equal(t, kernel.SSSolved, home.Status())
	assert.Equal(t, []int{0, 2, 3}, y.Lub())
}

func TestAtMostCard(t *testing.T) {
	home := newSpace(t)
	x := newVar(t, home, 0, 3)
	y := newVar(t, home, 0, 3)
	AtMostCard(home, x, y, 0, 2)
	x.Include(home, 0)
	x.Include(home, 1)
	require.Equal(t, kernel.SSSolved, home.Status())
	assert.True(t, x.Assigned())
	assert.True(t, y.Assigned())
	assert.Equal(t, []int{2, 3}, y.Glb())
}

func TestAtMostLex(t *testing.T) {
	home := newSpace(t)
	x := newVar(t, home, 0, 2)
	y := newVar(t, home, 0, 2)
	AtMostLex(home, x, y, 3, LexRel{LexLe, Forward})
	x.Include(home, 0)
	x.Exclude(home, 1)
	x.Exclude(home, 2)
	require.Equal(t, kernel.SSSolved, home.Status())
	// y is 1 followed by something greater than 00
	assert.Equal(t, []int{0}, y.Glb())
	assert.Equal(t, []int{1, 2}, y.Unknown())

	home = newSpace(t)
	x = newVar(t, home, 0, 2)
	y = newVar(t, home, 0, 2)
	AtMostLexCard(home, x, y, 0, LexRel{LexGr, Reverse}, 1)
	require.False(t, home.Failed())
	require.NoError(t, Branch(home, []View{x, y}, VarFirst, ValMinInc))
	// x and y are disjoint singletons and the element of x is the largest
	all := solutions(t, home)
	require.Len(t, all, 3)
	for _, s := range all {
		gx, gy := x.In(s).Glb(), y.In(s).Glb()
		require.Len(t, gx, 1)
		require.Len(t, gy, 1)
		require.Greater(t, gx[0], gy[0])
	}
}

func TestAtMostMismatch(t *testing.T) {
	home := newSpace(t)
	x := newVar(t, home, 0, 3)
	y := newVar(t, home, 0, 4)
	AtMost(home, x, y, 1)
	assert.True(t, home.Failed())

	home = newSpace(t)
	x = newVar(t, home, 0, 3)
	y = newVar(t, home, 1, 4)
	AtMost3(home, x, x, y, 1)
	assert.True(t, home.Failed())

	home = newSpace(t)
	x = newVar(t, home, 0, 3)
	y = newVar(t, home, 0, 3)
	AtMostCard(home, x, y, 1, -2)
	assert.True(t, home.Failed())
}

func TestAtMost3(t *testing.T) {
	home := newSpace(t)
	x := newVar(t, home, 0, 2)
	y := newVar(t, home, 0, 2)
	z := newVar(t, home, 0, 2)
	AtMost3(home, x, y, z, 1)
	x.Include(home, 0)
	x.Include(home, 1)
	x.Exclude(home, 2)
	y.Include(home, 0)
	require.NotEqual(t, kernel.SSFailed, home.Status())
	assert.Equal(t, []int{0, 2}, y.Lub())
	assert.True(t, z.Assigned())
	assert.Equal(t, []int{0}, z.Glb())

	home = newSpace(t)
	x = newVar(t, home, 0, 1)
	y = newVar(t, home, 0, 1)
	z = newVar(t, home, 0, 1)
	AtMost3Lex(home, x, y, z, 0, LexRel{LexLe, Reverse})
	require.NoError(t, Branch(home, []View{x, y, z}, VarFirst, ValMinInc))
	// disjoint x and y with y > x, bit 1 being the most significant
	var got [][2][]int
	for _, s := range solutions(t, home) {
		got = append(got, [2][]int{x.In(s).Glb(), y.In(s).Glb()})
		require.Empty(t, z.In(s).Glb())
	}
	assert.ElementsMatch(t, [][2][]int{
		{{}, {0}}, {{}, {1}}, {{}, {0, 1}}, {{0}, {1}},
	}, got)
}

// TestAtMostOne checks every solution of the constraint on three views: each
// view has exactly c elements and two views share at most one element.
func TestAtMostOne(t *testing.T) {
	home := newSpace(t)
	xs := []View{newVar(t, home, 0, 3), newVar(t, home, 0, 3), newVar(t, home, 0, 3)}
	AtMostOne(home, xs, 2)
	require.False(t, home.Failed())
	require.NoError(t, Branch(home, xs, VarMinUnknown, ValMaxExc))
	all := solutions(t, home)
	// three different pairs out of four values, in order
	require.Len(t, all, 6*5*4)
	for _, s := range all {
		sets := make([]map[int]bool, len(xs))
		for i, x := range xs {
			glb := x.In(s).Glb()
			require.Len(t, glb, 2)
			sets[i] = map[int]bool{glb[0]: true, glb[1]: true}
		}
		for i := range sets {
			for j := i + 1; j < len(sets); j++ {
				common := 0
				for v := range sets[i] {
					if sets[j][v] {
						common++
					}
				}
				require.LessOrEqual(t, common, 1)
			}
		}
	}
}
