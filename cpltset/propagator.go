// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package cpltset

import (
	"github.com/castor-software/gecode/arena"
	"github.com/castor-software/gecode/bdd"
	"github.com/castor-software/gecode/kernel"
)

// bddProp enforces a BDD over the bits of its views. The BDD itself is never
// modified after posting and is shared by every clone of the propagator.
type bddProp struct {
	views []View
	d     bdd.Node
}

// Post adds a propagator enforcing d on the given views. Unary, binary and
// n-ary constraints all go through Post. It fails home when d is nil (an
// error occurred while building it) or False.
func Post(home *kernel.Space, d bdd.Node, views ...View) kernel.ExecStatus {
	if home.Failed() {
		return kernel.ESFailed
	}
	mgr := home.Manager()
	if d == nil {
		home.Logger().WithField("error", mgr.Error()).Error("cannot post a propagator on a nil BDD")
		home.Fail()
		return kernel.ESFailed
	}
	if mgr.Equal(d, mgr.False()) {
		home.Fail()
		return kernel.ESFailed
	}
	if len(views) == 0 {
		return kernel.ESSubsumed
	}
	home.Post(&bddProp{views: views, d: d})
	return kernel.ESFix
}

func (p *bddProp) domains() []bdd.Node {
	doms := make([]bdd.Node, len(p.views))
	for i, v := range p.views {
		doms[i] = v.BDDDomain()
	}
	return doms
}

func (p *bddProp) Propagate(home *kernel.Space) kernel.ExecStatus {
	mgr := home.Manager()
	conj := mgr.And(append(p.domains(), p.d)...)
	if conj == nil || mgr.Equal(conj, mgr.False()) {
		return kernel.ESFailed
	}
	if len(p.views) > 1 {
		width := 0
		for _, v := range p.views {
			width += v.TableWidth()
		}
		r := home.Region()
		defer r.Release()
		levels := arena.Alloc[int](r, width)
		for i, x := range p.views {
			// quantify the bits of every other view
			levels = levels[:0]
			for j, y := range p.views {
				if j == i || y.Offset() == x.Offset() {
					continue
				}
				for k := 0; k < y.TableWidth(); k++ {
					levels = append(levels, y.Offset()+k)
				}
			}
			if x.Update(home, mgr.Exist(conj, mgr.Makeset(levels))).Failed() {
				return kernel.ESFailed
			}
		}
	} else if p.views[0].Update(home, conj).Failed() {
		return kernel.ESFailed
	}
	if mgr.Equal(conj, mgr.And(p.domains()...)) {
		return kernel.ESSubsumed
	}
	return kernel.ESFix
}

func (p *bddProp) Copy(home *kernel.Space) kernel.Propagator {
	views := make([]View, len(p.views))
	for i, v := range p.views {
		views[i] = v.In(home)
	}
	return &bddProp{views: views, d: p.d}
}
