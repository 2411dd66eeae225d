// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"log"
	"math/big"
)

// Scanset returns the set of variables (levels) found when following the high
// branch of node n. This is the dual of function Makeset. The result may be nil
// if there is an error. The result follows the level order.
func (b *BDD) Scanset(n Node) []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.checkptr(n) != nil {
		return nil
	}
	if *n < 2 {
		return nil
	}
	res := []int{}
	for i := *n; i > 1; i = b.high(i) {
		res = append(res, int(b.level(i)))
	}
	return res
}

// Makeset returns a node corresponding to the conjunction (the cube) of all the
// variable in varset, in their positive form. It is such that
// scanset(Makeset(a)) == a. It returns nil and sets the error condition in b
// if one of the variables is outside the scope of the BDD (see documentation
// for function *Ithvar*).
func (b *BDD) Makeset(varset []int) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initref()
	res := 1
	b.applycache.op = int(OPand)
	for _, level := range varset {
		if (level < 0) || (int32(level) >= b.varnum) {
			return b.seterror("Unknown variable used (%d) in call to Makeset", level)
		}
		b.pushref(res)
		tmp := b.apply(res, b.varset[level][0])
		b.popref(1)
		if tmp < 0 {
			return nil
		}
		res = tmp
	}
	return b.retnode(res)
}

// Not returns the negation of the expression corresponding to node n. It
// negates a BDD by exchanging all references to the zero-terminal with
// references to the one-terminal and vice versa.
func (b *BDD) Not(n Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.checkptr(n) != nil {
		return b.seterror("Wrong operand in call to Not")
	}
	b.initref()
	b.pushref(*n)
	res := b.not(*n)
	b.popref(1)
	if res < 0 {
		return nil
	}
	return b.retnode(res)
}

func (b *BDD) not(n int) int {
	if n == 0 {
		return 1
	}
	if n == 1 {
		return 0
	}
	// The hash for a not operation is simply n
	if res := b.matchnot(n); res >= 0 {
		return res
	}
	low := b.pushref(b.not(b.low(n)))
	high := b.pushref(b.not(b.high(n)))
	res := b.makenode(b.level(n), low, high)
	b.popref(2)
	return b.setnot(n, res)
}

// Apply performs all of the basic bdd operations with two operands, such as
// AND, OR etc. Left and right are the operand and opr is the requested
// operation and must be one of the following:
//
//  Identifier    Description             Truth table
//
//  OPand         logical and             [0,0,0,1]
//  OPxor         logical xor             [0,1,1,0]
//  OPor          logical or              [0,1,1,1]
//  OPnand        logical not-and         [1,1,1,0]
//  OPnor         logical not-or          [1,0,0,0]
//  OPimp         implication             [1,1,0,1]
//  OPbiimp       equivalence             [1,0,0,1]
//  OPdiff        set difference          [0,0,1,0]
//  OPless        less than               [0,1,0,0]
//  OPinvimp      reverse implication     [1,0,1,1]
func (b *BDD) Apply(left Node, right Node, op Operator) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.apply2(left, right, op)
}

func (b *BDD) apply2(left Node, right Node, op Operator) Node {
	if op < OPand || op > OPinvimp {
		return b.seterror("Unauthorized operation (%s) in apply", op)
	}
	if b.checkptr(left) != nil {
		return b.seterror("Wrong operand in call to Apply %s(left, ...)", op)
	}
	if b.checkptr(right) != nil {
		return b.seterror("Wrong operand in call to Apply %s(..., right)", op)
	}
	b.applycache.op = int(op)
	b.initref()
	b.pushref(*left)
	b.pushref(*right)
	res := b.apply(*left, *right)
	b.popref(2)
	if res < 0 {
		return nil
	}
	return b.retnode(res)
}

func (b *BDD) apply(left int, right int) int {
	if left < 0 || right < 0 {
		if _DEBUG {
			log.Panicf("panic in apply(%d,%d,%s)\n", left, right, Operator(b.applycache.op))
		}
		return -1
	}
	if res := terminal(b.applycache.op, left, right); res >= 0 {
		return res
	}
	if res := b.matchapply(left, right); res >= 0 {
		return res
	}
	lvl := min(b.level(left), b.level(right))
	l0, l1 := b.cofactor(left, lvl)
	r0, r1 := b.cofactor(right, lvl)
	low := b.pushref(b.apply(l0, r0))
	high := b.pushref(b.apply(l1, r1))
	res := b.makenode(lvl, low, high)
	b.popref(2)
	return b.setapply(left, right, res)
}

// terminal returns the result of op on left and right when it can be read
// from the truth table of op, that is when it is a constant or one of the
// operands. Otherwise it returns -1.
func terminal(op int, left, right int) int {
	t := opres[op]
	switch {
	case left < 2 && right < 2:
		return t[left][right]
	case left == right:
		return pick(t[0][0], t[1][1], left)
	case left < 2:
		return pick(t[left][0], t[left][1], right)
	case right < 2:
		return pick(t[0][right], t[1][right], left)
	}
	return -1
}

// pick returns the node of the function equal to lo when n is false and to hi
// when n is true, unless it is the negation of n.
func pick(lo, hi, n int) int {
	switch {
	case lo == hi:
		return lo
	case lo == 0:
		return n
	}
	return -1
}

// cofactor returns the low and high successors of n when n is at level lvl,
// and n itself twice when n is below lvl.
func (b *BDD) cofactor(n int, lvl int32) (int, int) {
	if b.level(n) != lvl {
		return n, n
	}
	return b.low(n), b.high(n)
}

// Ite, short for if-then-else operator, computes the BDD for the expression [(f
// /\ g) \/ (not f /\ h)] more efficiently than doing the three operations
// separately.
func (b *BDD) Ite(f, g, h Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.checkptr(f) != nil {
		return b.seterror("Wrong operand in call to Ite (f)")
	}
	if b.checkptr(g) != nil {
		return b.seterror("Wrong operand in call to Ite (g)")
	}
	if b.checkptr(h) != nil {
		return b.seterror("Wrong operand in call to Ite (h)")
	}
	b.initref()
	b.pushref(*f)
	b.pushref(*g)
	b.pushref(*h)
	res := b.ite(*f, *g, *h)
	b.popref(3)
	if res < 0 {
		return nil
	}
	return b.retnode(res)
}

func (b *BDD) ite(f, g, h int) int {
	switch {
	case f == 1:
		return g
	case f == 0:
		return h
	case g == h:
		return g
	case (g == 1) && (h == 0):
		return f
	case (g == 0) && (h == 1):
		return b.not(f)
	}
	if f < 0 || g < 0 || h < 0 {
		b.seterror("unexpected error in ite")
		return -1
	}
	if res := b.matchite(f, g, h); res >= 0 {
		return res
	}
	// we follow the operands tested at the smallest level
	lvl := min(b.level(f), b.level(g), b.level(h))
	f0, f1 := b.cofactor(f, lvl)
	g0, g1 := b.cofactor(g, lvl)
	h0, h1 := b.cofactor(h, lvl)
	low := b.pushref(b.ite(f0, g0, h0))
	high := b.pushref(b.ite(f1, g1, h1))
	res := b.makenode(lvl, low, high)
	b.popref(2)
	return b.setite(f, g, h, res)
}

// Exist returns the existential quantification of n for the variables in
// varset, where varset is a node built with a method such as Makeset. We return
// nil and set the error flag in b if there is an error.
func (b *BDD) Exist(n, varset Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.checkptr(n) != nil {
		return b.seterror("Wrong node in call to Exist")
	}
	if b.checkptr(varset) != nil {
		return b.seterror("Wrong varset in call to Exist")
	}
	if *varset < 2 { // we have an empty set or a constant
		return n
	}
	if err := b.quantset2cache(*varset); err != nil {
		return nil
	}
	b.quantcache.id = (*varset << 3) | cacheid_EXIST
	b.applycache.op = int(OPor)
	b.initref()
	b.pushref(*n)
	b.pushref(*varset)
	res := b.quant(*n, *varset)
	b.popref(2)
	if res < 0 {
		return nil
	}
	return b.retnode(res)
}

func (b *BDD) quant(n, varset int) int {
	if (n < 2) || (b.level(n) > b.quantlast) {
		return n
	}
	// the hash for a quantification operation is simply n
	if res := b.matchquant(n); res >= 0 {
		return res
	}
	low := b.pushref(b.quant(b.low(n), varset))
	high := b.pushref(b.quant(b.high(n), varset))
	var res int
	if b.quantset[b.level(n)] == b.quantsetID {
		res = b.apply(low, high)
	} else {
		res = b.makenode(b.level(n), low, high)
	}
	b.popref(2)
	return b.setquant(n, res)
}

// AppEx applies the binary operator *op* on the two operands left and right
// then performs an existential quantification over the variables in varset.
// This is done in a bottom up manner such that both the apply and
// quantification is done on the lower nodes before stepping up to the higher
// nodes. This makes AppEx much more efficient than an apply operation followed
// by a quantification. Note that, when *op* is a conjunction, this operation
// returns the relational product of two BDDs.
func (b *BDD) AppEx(left Node, right Node, op Operator, varset Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if op < OPand || op > OPnand {
		return b.seterror("operator %s not supported in call to AppEx", op)
	}
	if b.checkptr(varset) != nil {
		return b.seterror("wrong varset in call to AppEx")
	}
	if *varset < 2 { // we have an empty set
		return b.apply2(left, right, op)
	}
	if b.checkptr(left) != nil {
		return b.seterror("wrong operand in call to AppEx %s(left)", op)
	}
	if b.checkptr(right) != nil {
		return b.seterror("wrong operand in call to AppEx %s(right)", op)
	}
	if err := b.quantset2cache(*varset); err != nil {
		return nil
	}

	b.applycache.op = int(OPor)
	b.appexcache.op = int(op)
	b.appexcache.id = (*varset << 2) | b.appexcache.op
	b.quantcache.id = (b.appexcache.id << 3) | cacheid_APPEX
	b.initref()
	b.pushref(*left)
	b.pushref(*right)
	b.pushref(*varset)
	res := b.appquant(*left, *right, *varset)
	b.popref(3)
	if res < 0 {
		return nil
	}
	return b.retnode(res)
}

func (b *BDD) appquant(left, right, varset int) int {
	if left < 0 || right < 0 {
		b.seterror("unexpected error in appquant")
		return -1
	}
	if res := terminal(b.appexcache.op, left, right); res >= 0 {
		if res < 2 {
			return res
		}
		return b.quant(res, varset)
	}
	// no more variables to quantify
	if (b.level(left) > b.quantlast) && (b.level(right) > b.quantlast) {
		oldop := b.applycache.op
		b.applycache.op = b.appexcache.op
		res := b.apply(left, right)
		b.applycache.op = oldop
		return res
	}
	if res := b.matchappex(left, right); res >= 0 {
		return res
	}
	lvl := min(b.level(left), b.level(right))
	l0, l1 := b.cofactor(left, lvl)
	r0, r1 := b.cofactor(right, lvl)
	low := b.pushref(b.appquant(l0, r0, varset))
	high := b.pushref(b.appquant(l1, r1, varset))
	var res int
	if b.quantset[lvl] == b.quantsetID {
		res = b.apply(low, high)
	} else {
		res = b.makenode(lvl, low, high)
	}
	b.popref(2)
	return b.setappex(left, right, res)
}

// Satcount computes the number of satisfying variable assignments for the
// function denoted by n. We return a result using arbitrary-precision
// arithmetic to avoid possible overflows. The result is zero (and we set the
// error flag of b) if there is an error.
func (b *BDD) Satcount(n Node) *big.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	res := big.NewInt(0)
	if b.checkptr(n) != nil {
		b.seterror("Wrong operand in call to Satcount")
		return res
	}
	// We compute 2^level with a bit shift 1 << level
	res.SetBit(res, int(b.level(*n)), 1)
	satc := make(map[int]*big.Int)
	return res.Mul(res, b.satcount(*n, satc))
}

func (b *BDD) satcount(n int, satc map[int]*big.Int) *big.Int {
	if n < 2 {
		return big.NewInt(int64(n))
	}
	// we use satc to memoize the value of satcount for each nodes
	res, ok := satc[n]
	if ok {
		return res
	}
	level := b.level(n)
	low := b.low(n)
	high := b.high(n)

	res = big.NewInt(0)
	two := big.NewInt(0)
	two.SetBit(two, int(b.level(low)-level-1), 1)
	res.Add(res, two.Mul(two, b.satcount(low, satc)))
	two = big.NewInt(0)
	two.SetBit(two, int(b.level(high)-level-1), 1)
	res.Add(res, two.Mul(two, b.satcount(high, satc)))
	satc[n] = res
	return res
}

// Allsat Iterates through all legal variable assignments for n and calls the
// function f on each of them. We pass an int slice of length varnum to f where
// each entry is either  0 if the variable is false, 1 if it is true, and -1 if
// it is a don't care. We stop and return an error if f returns an error at some
// point. Function f must not call back into b.
func (b *BDD) Allsat(n Node, f func([]int) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.checkptr(n) != nil {
		return fmt.Errorf("wrong node in call to Allsat")
	}
	prof := make([]int, b.varnum)
	for k := range prof {
		prof[k] = -1
	}
	// the function does not create new nodes, so we do not need to take care of
	// possible resizing
	return b.allsat(*n, prof, f)
}

func (b *BDD) allsat(n int, prof []int, f func([]int) error) error {
	if n == 1 {
		return f(prof)
	}
	if n == 0 {
		return nil
	}

	if low := b.low(n); low != 0 {
		prof[b.level(n)] = 0
		for v := b.level(low) - 1; v > b.level(n); v-- {
			prof[v] = -1
		}
		if err := b.allsat(low, prof, f); err != nil {
			return err
		}
	}

	if high := b.high(n); high != 0 {
		prof[b.level(n)] = 1
		for v := b.level(high) - 1; v > b.level(n); v-- {
			prof[v] = -1
		}
		if err := b.allsat(high, prof, f); err != nil {
			return err
		}
	}
	return nil
}

// Allnodes applies function f over all the nodes accessible from the nodes in
// the sequence n..., or all the active nodes if n is absent. The parameters to
// function f are the id, level, and id's of the low and high successors of each
// node. The two constant nodes (True and False) have always the id 1 and 0,
// respectively.
//
// The order in which nodes are visited is increasing by id, so a node is
// always visited after the nodes it was built from. Function f must not call
// back into b.
func (b *BDD) Allnodes(f func(id, level, low, high int) error, n ...Node) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, v := range n {
		if b.checkptr(v) != nil {
			return fmt.Errorf("wrong node in call to Allnodes")
		}
	}
	if len(n) > 0 {
		for _, v := range n {
			b.markrec(*v)
		}
	}
	defer b.unmarkall()
	if err := f(0, int(b.varnum), 0, 0); err != nil {
		return err
	}
	if err := f(1, int(b.varnum), 1, 1); err != nil {
		return err
	}
	for k := 2; k < len(b.nodes); k++ {
		v := b.nodes[k]
		if v.low == -1 {
			continue
		}
		if len(n) > 0 && !b.ismarked(k) {
			continue
		}
		if err := f(k, int(v.level&_MAXVAR), v.low, v.high); err != nil {
			return err
		}
	}
	return nil
}

// Nodecount returns the number of internal nodes (constants excluded) used in
// the representation of n. It is a measure of the size of a Boolean function.
func (b *BDD) Nodecount(n Node) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.checkptr(n) != nil {
		return -1
	}
	res := b.markcount(*n)
	b.unmarkall()
	return res
}
