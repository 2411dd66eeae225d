// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package cpltset

import (
	"container/heap"

	"github.com/castor-software/gecode/bdd"
)

type sized struct {
	n    bdd.Node
	size int
}

// bysize is a min-heap of functions ordered by node count.
type bysize []sized

func (h bysize) Len() int            { return len(h) }
func (h bysize) Less(i, j int) bool  { return h[i].size < h[j].size }
func (h bysize) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *bysize) Push(x interface{}) { *h = append(*h, x.(sized)) }
func (h *bysize) Pop() interface{} {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}

// conjoin returns the conjunction of fs, always combining the two smallest
// functions first. It returns nil if one of the functions is nil, and False as
// soon as one conjunction is False.
func conjoin(mgr *bdd.BDD, fs ...bdd.Node) bdd.Node {
	h := make(bysize, 0, len(fs))
	for _, f := range fs {
		if f == nil {
			return nil
		}
		if mgr.Equal(f, mgr.False()) {
			return f
		}
		if mgr.Equal(f, mgr.True()) {
			continue
		}
		h = append(h, sized{f, mgr.Nodecount(f)})
	}
	if len(h) == 0 {
		return mgr.True()
	}
	heap.Init(&h)
	for h.Len() > 1 {
		a := heap.Pop(&h).(sized)
		b := heap.Pop(&h).(sized)
		n := mgr.And(a.n, b.n)
		if n == nil || mgr.Equal(n, mgr.False()) {
			return n
		}
		heap.Push(&h, sized{n, mgr.Nodecount(n)})
	}
	return h[0].n
}
