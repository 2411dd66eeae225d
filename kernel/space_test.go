// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/castor-software/gecode/arena"
	"github.com/castor-software/gecode/bdd"
)

// intVar is an interval variable used to exercise the kernel.
type intVar struct {
	id       int
	min, max int
}

func (x *intVar) ID() int        { return x.id }
func (x *intVar) Assigned() bool { return x.min == x.max }
func (x *intVar) Copy(*Space) VarImp {
	c := *x
	return &c
}

func (x *intVar) lq(home *Space, n int) ModEvent {
	switch {
	case n >= x.max:
		return MENone
	case n < x.min:
		home.Fail()
		return MEFailed
	}
	x.max = n
	home.Notify()
	return MEDomain
}

func (x *intVar) gq(home *Space, n int) ModEvent {
	switch {
	case n <= x.min:
		return MENone
	case n > x.max:
		home.Fail()
		return MEFailed
	}
	x.min = n
	home.Notify()
	return MEDomain
}

// less propagates x < y.
type less struct {
	x, y int
}

func (p *less) Propagate(home *Space) ExecStatus {
	x := home.Var(p.x).(*intVar)
	y := home.Var(p.y).(*intVar)
	if x.lq(home, y.max-1).Failed() || y.gq(home, x.min+1).Failed() {
		return ESFailed
	}
	if x.max < y.min {
		return ESSubsumed
	}
	return ESFix
}

func (p *less) Copy(*Space) Propagator {
	c := *p
	return &c
}

// split branches on x <= mid or x > mid for the first unassigned variable.
type split struct{}

type splitChoice struct {
	id, mid int
}

func (splitChoice) Alternatives() int { return 2 }

func (split) Status(home *Space) bool {
	for k := 0; k < home.Vars(); k++ {
		if !home.Var(k).Assigned() {
			return true
		}
	}
	return false
}

func (split) Choice(home *Space) Choice {
	for k := 0; k < home.Vars(); k++ {
		if x := home.Var(k).(*intVar); !x.Assigned() {
			return splitChoice{k, (x.min + x.max) / 2}
		}
	}
	return nil
}

func (split) Commit(home *Space, c Choice, alt int) ExecStatus {
	ch := c.(splitChoice)
	x := home.Var(ch.id).(*intVar)
	var me ModEvent
	if alt == 0 {
		me = x.lq(home, ch.mid)
	} else {
		me = x.gq(home, ch.mid+1)
	}
	if me.Failed() {
		return ESFailed
	}
	return ESNoFix
}

func (s split) Copy(*Space) Brancher { return s }

func newTestSpace(t *testing.T, bounds ...[2]int) *Space {
	mgr, err := bdd.New(0)
	require.NoError(t, err)
	home, err := New(mgr)
	require.NoError(t, err)
	for _, b := range bounds {
		b := b
		home.AddVar(func(id int) VarImp { return &intVar{id: id, min: b[0], max: b[1]} })
	}
	return home
}

func TestStatusFixpoint(t *testing.T) {
	home := newTestSpace(t, [2]int{0, 9}, [2]int{0, 9}, [2]int{0, 9})
	// x0 < x1 < x2, posted in an order that needs several passes
	home.Post(&less{1, 2})
	home.Post(&less{0, 1})
	require.Equal(t, SSSolved, home.Status())
	require.Equal(t, 7, home.Var(0).(*intVar).max)
	require.Equal(t, 8, home.Var(1).(*intVar).max)
	require.Equal(t, 1, home.Var(1).(*intVar).min)
	require.Equal(t, 2, home.Var(2).(*intVar).min)
	require.Greater(t, home.Propagations(), uint64(2))
}

func TestStatusFailure(t *testing.T) {
	home := newTestSpace(t, [2]int{0, 3}, [2]int{0, 3})
	home.Post(&less{0, 1})
	home.Post(&less{1, 0})
	require.Equal(t, SSFailed, home.Status())
	require.True(t, home.Failed())
	// less{1, 0} is subsumed on the first pass, before less{0, 1} fails
	live := home.Propagators()
	require.Equal(t, 1, live)
	// posting on a failed space does nothing
	home.Post(&less{0, 1})
	require.Equal(t, live, home.Propagators())
}

func TestSubsumption(t *testing.T) {
	home := newTestSpace(t, [2]int{0, 1}, [2]int{5, 6})
	home.Post(&less{0, 1})
	require.Equal(t, SSSolved, home.Status())
	require.Equal(t, 0, home.Propagators())
}

func TestCloneAndCommit(t *testing.T) {
	home := newTestSpace(t, [2]int{0, 3}, [2]int{0, 3})
	home.Post(&less{0, 1})
	home.SetBrancher(split{})
	require.Equal(t, SSBranch, home.Status())

	ch := home.Choice()
	require.Equal(t, 2, ch.Alternatives())
	c := home.Clone()
	home.Commit(ch, 0)
	c.Commit(ch, 1)

	// the two spaces are independent
	require.Equal(t, 1, home.Var(0).(*intVar).max)
	require.Equal(t, 2, c.Var(0).(*intVar).min)
	require.Equal(t, SSBranch, home.Status())
	require.Equal(t, SSSolved, c.Status())
	require.Equal(t, [2]int{2, 2}, [2]int{c.Var(0).(*intVar).min, c.Var(0).(*intVar).max})
	require.Equal(t, 3, c.Var(1).(*intVar).min)
	require.NotSame(t, home.Buffer(), c.Buffer())
	require.Same(t, home.Manager(), c.Manager())

	home.Commit(ch, 5)
	require.True(t, home.Failed())
}

func TestRegionUsesSpaceBuffer(t *testing.T) {
	mgr, err := bdd.New(0)
	require.NoError(t, err)
	buf := arena.NewBuffer(arena.Size(64))
	home, err := New(mgr, WithBuffer(buf))
	require.NoError(t, err)
	r := home.Region()
	arena.Alloc[int](r, 4)
	require.Equal(t, 32, buf.Free())
	r.Release()
	require.Equal(t, 0, buf.Free())

	_, err = New(nil)
	require.Error(t, err)
}
