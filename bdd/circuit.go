// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package bdd

import (
	"fmt"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

// Circuit adds to c a gate that is true exactly when the function denoted by n
// is true, and returns it. The literal ins[i] stands for the variable at level
// i; there must be at least one literal for each level used in n. Each node is
// translated into a single multiplexer (a Choice gate in c), so the size of
// the circuit is linear in Nodecount(n).
func (b *BDD) Circuit(c *logic.C, n Node, ins []z.Lit) (z.Lit, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		return z.LitNull, err
	}
	memo := map[int]z.Lit{0: c.F, 1: c.T}
	var rec func(k int) (z.Lit, error)
	rec = func(k int) (z.Lit, error) {
		if g, ok := memo[k]; ok {
			return g, nil
		}
		lvl := int(b.level(k))
		if lvl >= len(ins) {
			return z.LitNull, fmt.Errorf("no input literal for level %d", lvl)
		}
		lo, err := rec(b.low(k))
		if err != nil {
			return z.LitNull, err
		}
		hi, err := rec(b.high(k))
		if err != nil {
			return z.LitNull, err
		}
		g := c.Choice(ins[lvl], hi, lo)
		memo[k] = g
		return g, nil
	}
	return rec(*n)
}
