// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package cpltset

import (
	"github.com/castor-software/gecode/bdd"
)

// cardinality returns the function accepting the assignments where the number
// of true terms is in [lo, hi]. It is built from the last term to the first:
// layer[k] is the function of the remaining terms knowing that k of the
// previous ones are true.
func cardinality(mgr *bdd.BDD, terms []bdd.Node, lo, hi int) bdd.Node {
	diagramBuilds.Inc()
	n := len(terms)
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo > hi {
		return mgr.False()
	}
	// counts above hi are all equivalent
	top := hi + 1
	layer := make([]bdd.Node, top+1)
	for k := range layer {
		layer[k] = mgr.From(k >= lo && k <= hi)
	}
	next := make([]bdd.Node, top+1)
	for i := n - 1; i >= 0; i-- {
		for k := 0; k <= top; k++ {
			up := k + 1
			if up > top {
				up = top
			}
			next[k] = mgr.Ite(terms[i], layer[up], layer[k])
		}
		layer, next = next, layer
	}
	return layer[0]
}

// viewBits returns the functions of the positions of view x in [from, from+width).
func viewBits(x View, from, width int) []bdd.Node {
	res := make([]bdd.Node, width)
	for i := range res {
		res[i] = x.GetBDD(from + i)
	}
	return res
}

// cardCheck returns the function accepting the assignments of the bits
// [off, off+width) of mgr with between lo and hi bits set.
func cardCheck(mgr *bdd.BDD, width, off, lo, hi int) bdd.Node {
	terms := make([]bdd.Node, width)
	for i := range terms {
		terms[i] = mgr.Ithvar(off + i)
	}
	return cardinality(mgr, terms, lo, hi)
}

// cardConst is like cardCheck but only counts the bits standing for the
// values in vals, for a variable whose bit 0 stands for value min. Values out
// of [min, min+width) are ignored.
func cardConst(mgr *bdd.BDD, width, off, min, lo, hi int, vals []int) bdd.Node {
	seen := make(map[int]bool, len(vals))
	terms := []bdd.Node{}
	for _, v := range vals {
		i := v - min
		if i < 0 || i >= width || seen[i] {
			continue
		}
		seen[i] = true
		terms = append(terms, mgr.Ithvar(off+i))
	}
	return cardinality(mgr, terms, lo, hi)
}

// scratch is a range of auxiliary bits, allocated at the end of the manager
// order, standing for the intersection of two views. The bits never appear in
// a posted BDD since extCardCheck quantifies them away, so one range can be
// shared by every intersection of the same width.
type scratch struct {
	z   []bdd.Node
	set bdd.Node
}

func newScratch(mgr *bdd.BDD, width int) (*scratch, error) {
	off, err := mgr.Extend(width)
	if err != nil {
		return nil, err
	}
	s := &scratch{z: make([]bdd.Node, width)}
	levels := make([]int, width)
	for i := range s.z {
		s.z[i] = mgr.Ithvar(off + i)
		levels[i] = off + i
	}
	s.set = mgr.Makeset(levels)
	return s, nil
}

// extCardCheck returns the function stating that the intersection of x and y
// has between lo and hi elements. The intersection is bound, through
// equivalences, to the bits of s that are quantified away once the cardinality
// of the intersection is conjoined.
func extCardCheck(mgr *bdd.BDD, s *scratch, x, y View, lo, hi int) bdd.Node {
	eqs := intersection(mgr, x, y, s.z)
	card := cardinality(mgr, s.z, lo, hi)
	return mgr.AndExist(s.set, eqs, card)
}

// intersection returns the function stating that z[i] is equivalent to
// bit i of x and of y, that is z = x ∩ y.
func intersection(mgr *bdd.BDD, x, y View, z []bdd.Node) bdd.Node {
	diagramBuilds.Inc()
	eqs := make([]bdd.Node, len(z))
	for i := range z {
		eqs[i] = mgr.Equiv(mgr.And(x.GetBDD(i), y.GetBDD(i)), z[i])
	}
	return conjoin(mgr, eqs...)
}
