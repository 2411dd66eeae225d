// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package cpltset

import (
	"github.com/pkg/errors"

	"github.com/castor-software/gecode/kernel"
)

// VarSel selects the view to branch on.
type VarSel int

const (
	VarFirst       VarSel = iota // first view that is not assigned
	VarMinUnknown                // view with the fewest undecided values
)

// ValSel selects the value to branch on, and whether it is included or
// excluded in the first alternative.
type ValSel int

const (
	ValMinInc ValSel = iota // include the smallest undecided value first
	ValMinExc               // exclude the smallest undecided value first
	ValMaxInc               // include the largest undecided value first
	ValMaxExc               // exclude the largest undecided value first
)

type brancher struct {
	views  []View
	start  int // views before start are assigned
	varsel VarSel
	valsel ValSel
}

type choice struct {
	pos     int
	value   int
	include bool
}

func (choice) Alternatives() int {
	return 2
}

// Branch installs a brancher on views. It returns an error for an unknown
// selection strategy.
func Branch(home *kernel.Space, views []View, vars VarSel, vals ValSel) error {
	if vars < VarFirst || vars > VarMinUnknown {
		return errors.Errorf("cpltset: unknown variable selection %d", vars)
	}
	if vals < ValMinInc || vals > ValMaxExc {
		return errors.Errorf("cpltset: unknown value selection %d", vals)
	}
	home.SetBrancher(&brancher{
		views:  append([]View(nil), views...),
		varsel: vars,
		valsel: vals,
	})
	return nil
}

func (b *brancher) Status(*kernel.Space) bool {
	for ; b.start < len(b.views); b.start++ {
		if !b.views[b.start].Assigned() {
			return true
		}
	}
	return false
}

func (b *brancher) Choice(*kernel.Space) kernel.Choice {
	pos := b.start
	if b.varsel == VarMinUnknown {
		best := len(b.views[pos].Unknown())
		for i := pos + 1; i < len(b.views); i++ {
			if n := len(b.views[i].Unknown()); n > 0 && n < best {
				pos, best = i, n
			}
		}
	}
	unknown := b.views[pos].Unknown()
	c := choice{pos: pos}
	switch b.valsel {
	case ValMinInc, ValMinExc:
		c.value = unknown[0]
	default:
		c.value = unknown[len(unknown)-1]
	}
	c.include = b.valsel == ValMinInc || b.valsel == ValMaxInc
	return c
}

func (b *brancher) Commit(home *kernel.Space, c kernel.Choice, alt int) kernel.ExecStatus {
	ch := c.(choice)
	x := b.views[ch.pos]
	var me kernel.ModEvent
	if ch.include == (alt == 0) {
		me = x.Include(home, ch.value)
	} else {
		me = x.Exclude(home, ch.value)
	}
	if me.Failed() {
		return kernel.ESFailed
	}
	return kernel.ESNoFix
}

func (b *brancher) Copy(home *kernel.Space) kernel.Brancher {
	c := &brancher{
		views:  make([]View, len(b.views)),
		start:  b.start,
		varsel: b.varsel,
		valsel: b.valsel,
	}
	for i, v := range b.views {
		c.views[i] = v.In(home)
	}
	return c
}
