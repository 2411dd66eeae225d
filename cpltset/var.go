// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package cpltset

import (
	"github.com/pkg/errors"

	"github.com/castor-software/gecode/bdd"
	"github.com/castor-software/gecode/kernel"
)

// View is the capability set used by the constraint compiler. The bits of all
// the views of a space are numbered in the same BDD manager and never overlap.
type View interface {
	// Offset is the level of the first bit of the view.
	Offset() int
	// TableWidth is the number of bits of the view.
	TableWidth() int
	// MgrMin and MgrMax are the bounds of the universe of the view.
	MgrMin() int
	MgrMax() int
	// GetBDD returns the function for bit i, that is for the membership of
	// MgrMin()+i.
	GetBDD(i int) bdd.Node
	Assigned() bool
	// BDDDomain returns the domain of the view.
	BDDDomain() bdd.Node
	Include(home *kernel.Space, v int) kernel.ModEvent
	Exclude(home *kernel.Space, v int) kernel.ModEvent
	// Update restricts the domain to the sets accepted by d.
	Update(home *kernel.Space, d bdd.Node) kernel.ModEvent
	// Glb and Unknown return the values that are in every set of the domain,
	// and the ones that are in some sets but not all.
	Glb() []int
	Unknown() []int
	// In returns the same view in a clone of the space where it was created.
	In(home *kernel.Space) View
}

// SetVarImp is the implementation of a set variable.
type SetVarImp struct {
	id       int
	min, max int
	offset   int
	mgr      *bdd.BDD
	dom      bdd.Node
}

func (x *SetVarImp) ID() int {
	return x.id
}

func (x *SetVarImp) Copy(*kernel.Space) kernel.VarImp {
	c := *x
	return &c
}

func (x *SetVarImp) width() int {
	return x.max - x.min + 1
}

func (x *SetVarImp) bit(i int) bdd.Node {
	return x.mgr.Ithvar(x.offset + i)
}

// bounds returns the greatest lower bound and the least upper bound of the
// domain, as positions relative to min.
func (x *SetVarImp) bounds() (glb, lub []bool) {
	glb = make([]bool, x.width())
	lub = make([]bool, x.width())
	for i := range glb {
		b := x.bit(i)
		glb[i] = x.mgr.Equal(x.mgr.Apply(x.dom, b, bdd.OPdiff), x.mgr.False())
		lub[i] = !x.mgr.Equal(x.mgr.And(x.dom, b), x.mgr.False())
	}
	return glb, lub
}

func (x *SetVarImp) Assigned() bool {
	glb, lub := x.bounds()
	for i := range glb {
		if glb[i] != lub[i] {
			return false
		}
	}
	return true
}

func (x *SetVarImp) update(home *kernel.Space, d bdd.Node) kernel.ModEvent {
	if d == nil {
		home.Logger().WithField("error", x.mgr.Error()).Error("BDD operation failed")
		home.Fail()
		return kernel.MEFailed
	}
	if x.mgr.Equal(d, x.mgr.False()) {
		home.Fail()
		return kernel.MEFailed
	}
	if x.mgr.Equal(d, x.dom) {
		return kernel.MENone
	}
	x.dom = d
	home.Notify()
	if x.Assigned() {
		return kernel.MEAssigned
	}
	return kernel.MEDomain
}

// SetView is the View of a SetVarImp.
type SetView struct {
	x *SetVarImp
}

// NewSetVar adds to home a set variable whose domain is every subset of
// [min, max]. Its bits are allocated in the manager of home.
func NewSetVar(home *kernel.Space, min, max int) (SetView, error) {
	if max < min {
		return SetView{}, errors.Errorf("cpltset: empty universe [%d, %d]", min, max)
	}
	mgr := home.Manager()
	offset, err := mgr.Extend(max - min + 1)
	if err != nil {
		return SetView{}, errors.Wrap(err, "cpltset: cannot allocate set variable")
	}
	v := home.AddVar(func(id int) kernel.VarImp {
		return &SetVarImp{
			id:     id,
			min:    min,
			max:    max,
			offset: offset,
			mgr:    mgr,
			dom:    mgr.True(),
		}
	})
	return SetView{v.(*SetVarImp)}, nil
}

// NewSetVarBounds is like NewSetVar but the values in glb are included and
// the ones in [min, max] that are not in lub are excluded.
func NewSetVarBounds(home *kernel.Space, min, max int, glb, lub []int) (SetView, error) {
	x, err := NewSetVar(home, min, max)
	if err != nil {
		return x, err
	}
	in := make(map[int]bool, len(lub))
	for _, v := range lub {
		in[v] = true
	}
	for v := min; v <= max; v++ {
		if !in[v] {
			x.Exclude(home, v)
		}
	}
	for _, v := range glb {
		x.Include(home, v)
	}
	if home.Failed() {
		return x, errors.Errorf("cpltset: inconsistent bounds for [%d, %d]", min, max)
	}
	return x, nil
}

func (v SetView) Offset() int     { return v.x.offset }
func (v SetView) TableWidth() int { return v.x.width() }
func (v SetView) MgrMin() int     { return v.x.min }
func (v SetView) MgrMax() int     { return v.x.max }
func (v SetView) Assigned() bool  { return v.x.Assigned() }

func (v SetView) GetBDD(i int) bdd.Node {
	return v.x.bit(i)
}

func (v SetView) BDDDomain() bdd.Node {
	return v.x.dom
}

func (v SetView) Include(home *kernel.Space, n int) kernel.ModEvent {
	if n < v.x.min || n > v.x.max {
		home.Fail()
		return kernel.MEFailed
	}
	return v.x.update(home, v.x.mgr.And(v.x.dom, v.x.bit(n-v.x.min)))
}

func (v SetView) Exclude(home *kernel.Space, n int) kernel.ModEvent {
	if n < v.x.min || n > v.x.max {
		return kernel.MENone
	}
	return v.x.update(home, v.x.mgr.Apply(v.x.dom, v.x.bit(n-v.x.min), bdd.OPdiff))
}

func (v SetView) Update(home *kernel.Space, d bdd.Node) kernel.ModEvent {
	return v.x.update(home, v.x.mgr.And(v.x.dom, d))
}

func (v SetView) Glb() []int {
	glb, _ := v.x.bounds()
	res := []int{}
	for i, in := range glb {
		if in {
			res = append(res, v.x.min+i)
		}
	}
	return res
}

// Lub returns the values that belong to at least one set of the domain.
func (v SetView) Lub() []int {
	_, lub := v.x.bounds()
	res := []int{}
	for i, in := range lub {
		if in {
			res = append(res, v.x.min+i)
		}
	}
	return res
}

func (v SetView) Unknown() []int {
	glb, lub := v.x.bounds()
	res := []int{}
	for i := range glb {
		if lub[i] && !glb[i] {
			res = append(res, v.x.min+i)
		}
	}
	return res
}

func (v SetView) In(home *kernel.Space) View {
	return SetView{home.Var(v.x.id).(*SetVarImp)}
}
