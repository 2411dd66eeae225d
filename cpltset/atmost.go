// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package cpltset

import (
	"github.com/sirupsen/logrus"

	"github.com/castor-software/gecode/bdd"
	"github.com/castor-software/gecode/kernel"
)

// Exactly constrains exactly c of the values in values to belong to x.
//
// Nothing is built when the bounds of x are enough to decide: when the values
// already in x account for c, the undecided ones are excluded; when exactly
// as many values are undecided as are still needed, they are included.
// Otherwise a cardinality diagram over the undecided values is posted.
func Exactly(home *kernel.Space, x View, values []int, c int) {
	const name = "exactly"
	if home.Failed() {
		emitCompile(name, outcomeSkipped)
		return
	}
	in := valueSet(x, values)
	hits := 0
	for _, v := range x.Glb() {
		if in[v] {
			hits++
		}
	}
	undecided := []int{}
	for _, v := range x.Unknown() {
		if in[v] {
			undecided = append(undecided, v)
		}
	}
	need := c - hits
	switch {
	case need < 0 || need > len(undecided):
		home.Fail()
		emitCompile(name, outcomeFailed)
		return
	case need == 0 || need == len(undecided):
		for _, v := range undecided {
			var me kernel.ModEvent
			if need == 0 {
				me = x.Exclude(home, v)
			} else {
				me = x.Include(home, v)
			}
			if me.Failed() {
				emitCompile(name, outcomeFailed)
				return
			}
		}
		emitCompile(name, outcomeShortcut)
		return
	}
	mgr := home.Manager()
	d := cardConst(mgr, x.TableWidth(), x.Offset(), x.MgrMin(), need, need, undecided)
	post(home, name, d, x)
}

// AtMostSet constrains at most c of the values in values to belong to x.
func AtMostSet(home *kernel.Space, x View, values []int, c int) {
	const name = "atmost_set"
	if home.Failed() {
		emitCompile(name, outcomeSkipped)
		return
	}
	if c < 0 {
		home.Fail()
		emitCompile(name, outcomeFailed)
		return
	}
	mgr := home.Manager()
	d := cardConst(mgr, x.TableWidth(), x.Offset(), x.MgrMin(), 0, c, values)
	post(home, name, d, x)
}

// AtMost constrains x and y to have at most c common elements.
func AtMost(home *kernel.Space, x, y View, c int) {
	atmost2(home, "atmost", x, y, c, LexRel{}, false, 0)
}

// AtMostLex is AtMost with the bit strings of x and y ordered by rel.
func AtMostLex(home *kernel.Space, x, y View, c int, rel LexRel) {
	atmost2(home, "atmost_lex", x, y, c, rel, false, 0)
}

// AtMostLexCard is AtMostLex where x and y also have exactly d elements.
func AtMostLexCard(home *kernel.Space, x, y View, c int, rel LexRel, d int) {
	atmost2(home, "atmost_lex_card", x, y, c, rel, true, d)
}

// AtMostCard is AtMost where x and y also have exactly d elements.
func AtMostCard(home *kernel.Space, x, y View, c int, d int) {
	atmost2(home, "atmost_card", x, y, c, LexRel{}, true, d)
}

// atmost2 builds the binary constraints. When withCard is set, x and y also
// have exactly card elements.
func atmost2(home *kernel.Space, name string, x, y View, c int, rel LexRel, withCard bool, card int) {
	if home.Failed() {
		emitCompile(name, outcomeSkipped)
		return
	}
	if !compatible(home, x, y) || c < 0 || (withCard && card < 0) {
		home.Fail()
		emitCompile(name, outcomeFailed)
		return
	}
	mgr := home.Manager()
	s, err := newScratch(mgr, x.TableWidth())
	if err != nil {
		home.Logger().WithError(err).Error("cannot allocate intersection bits")
		home.Fail()
		emitCompile(name, outcomeFailed)
		return
	}
	fs := []bdd.Node{extCardCheck(mgr, s, x, y, 0, c)}
	lex, err := lexRel(mgr, rel, x, y)
	if err != nil {
		home.Logger().WithError(err).Error("invalid ordering")
		home.Fail()
		emitCompile(name, outcomeFailed)
		return
	}
	fs = append(fs, lex)
	if withCard {
		fs = append(fs,
			cardCheck(mgr, x.TableWidth(), x.Offset(), card, card),
			cardCheck(mgr, y.TableWidth(), y.Offset(), card, card))
	}
	for _, v := range []View{x, y} {
		if v.Assigned() {
			fs = append(fs, v.BDDDomain())
		}
	}
	post(home, name, conjoin(mgr, fs...), x, y)
}

// AtMost3 constrains z to be the intersection of x and y, with at most c
// elements.
func AtMost3(home *kernel.Space, x, y, z View, c int) {
	atmost3(home, "atmost3", x, y, z, c, LexRel{})
}

// AtMost3Lex is AtMost3 with the bit strings of x and y ordered by rel.
func AtMost3Lex(home *kernel.Space, x, y, z View, c int, rel LexRel) {
	atmost3(home, "atmost3_lex", x, y, z, c, rel)
}

func atmost3(home *kernel.Space, name string, x, y, z View, c int, rel LexRel) {
	if home.Failed() {
		emitCompile(name, outcomeSkipped)
		return
	}
	if !compatible(home, x, y, z) || c < 0 {
		home.Fail()
		emitCompile(name, outcomeFailed)
		return
	}
	mgr := home.Manager()
	lex, err := lexRel(mgr, rel, x, y)
	if err != nil {
		home.Logger().WithError(err).Error("invalid ordering")
		home.Fail()
		emitCompile(name, outcomeFailed)
		return
	}
	d := conjoin(mgr,
		intersection(mgr, x, y, viewBits(z, 0, z.TableWidth())),
		cardCheck(mgr, z.TableWidth(), z.Offset(), 0, c),
		lex)
	post(home, name, d, x, y, z)
}

// AtMostOne constrains every view of xs to have exactly c elements, and every
// two of them to have at most one common element.
//
// Every pair of views gets its own intersection diagram, so the cost is
// quadratic in the number of views.
func AtMostOne(home *kernel.Space, xs []View, c int) {
	const name = "atmost_one"
	if home.Failed() {
		emitCompile(name, outcomeSkipped)
		return
	}
	if len(xs) == 0 {
		emitCompile(name, outcomeShortcut)
		return
	}
	if !compatible(home, xs...) || c < 0 {
		home.Fail()
		emitCompile(name, outcomeFailed)
		return
	}
	mgr := home.Manager()
	s, err := newScratch(mgr, xs[0].TableWidth())
	if err != nil {
		home.Logger().WithError(err).Error("cannot allocate intersection bits")
		home.Fail()
		emitCompile(name, outcomeFailed)
		return
	}
	fs := make([]bdd.Node, 0, len(xs)*(len(xs)+1)/2)
	for _, x := range xs {
		fs = append(fs, cardCheck(mgr, x.TableWidth(), x.Offset(), c, c))
	}
	for i := 0; i < len(xs)-1; i++ {
		for j := i + 1; j < len(xs); j++ {
			fs = append(fs, extCardCheck(mgr, s, xs[i], xs[j], 0, 1))
		}
	}
	post(home, name, conjoin(mgr, fs...), xs...)
}

// compatible checks that the views range over the same universe. Otherwise the
// bits at the same position would not stand for the same value.
func compatible(home *kernel.Space, views ...View) bool {
	for _, v := range views[1:] {
		if v.MgrMin() != views[0].MgrMin() || v.TableWidth() != views[0].TableWidth() {
			home.Logger().WithFields(logrus.Fields{
				"min":   []int{views[0].MgrMin(), v.MgrMin()},
				"width": []int{views[0].TableWidth(), v.TableWidth()},
			}).Error("views over different universes")
			return false
		}
	}
	return true
}

// valueSet returns the values of values that are in the universe of x.
func valueSet(x View, values []int) map[int]bool {
	res := make(map[int]bool, len(values))
	for _, v := range values {
		if v >= x.MgrMin() && v <= x.MgrMax() {
			res[v] = true
		}
	}
	return res
}

func post(home *kernel.Space, name string, d bdd.Node, views ...View) {
	if Post(home, d, views...) == kernel.ESFailed {
		emitCompile(name, outcomeFailed)
		return
	}
	emitCompile(name, outcomePosted)
}
