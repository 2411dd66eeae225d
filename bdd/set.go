// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// And returns the logical 'and' of a sequence of nodes. The result is True
// for an empty sequence.
func (b *BDD) And(n ...Node) Node {
	return b.fold(OPand, 1, n)
}

// Or returns the logical 'or' of a sequence of nodes. The result is False for
// an empty sequence.
func (b *BDD) Or(n ...Node) Node {
	return b.fold(OPor, 0, n)
}

// fold combines the nodes in n from left to right using op, starting from the
// neutral element init. All the intermediate results are computed while
// holding the lock of b.
func (b *BDD) fold(op Operator, init int, n []Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, v := range n {
		if b.checkptr(v) != nil {
			return b.seterror("Wrong operand in call to %s(...)", op)
		}
	}
	if len(n) == 1 {
		return n[0]
	}
	b.initref()
	res := init
	for _, v := range n {
		b.applycache.op = int(op)
		b.pushref(res)
		tmp := b.apply(res, *v)
		b.popref(1)
		if tmp < 0 {
			return nil
		}
		res = tmp
	}
	return b.retnode(res)
}

// Imp returns the logical 'implication' between two BDDs.
func (b *BDD) Imp(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPimp)
}

// Equiv returns the logical 'bi-implication' between two BDDs.
func (b *BDD) Equiv(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPbiimp)
}

// Equal tests equivalence between nodes. Since BDDs are canonical, two nodes
// are equal if and only if they denote the same Boolean function.
func (b *BDD) Equal(n1, n2 Node) bool {
	if n1 == n2 {
		return true
	}
	if n1 == nil || n2 == nil {
		return false
	}
	return *n1 == *n2
}

// AndExist returns the "relational composition" of two nodes with respect to
// varset, meaning the result of (Exists varset . n1 & n2).
func (b *BDD) AndExist(varset, n1, n2 Node) Node {
	return b.AppEx(n1, n2, OPand, varset)
}
