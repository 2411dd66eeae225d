// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"log"
	"sync"
)

// Node is a reference to an element of a BDD. It represents the atomic unit of
// interactions and computations within a BDD.
type Node *int

// BDD is a manager for Binary Decision Diagrams implemented using the runtime
// hashmap as a unicity table. All the Nodes returned by a manager share its
// node table; Nodes from different managers must never be mixed.
type BDD struct {
	mu            sync.Mutex
	varnum        int32             // number of BDD variables
	varset        [][2]int          // Set of variables used: we have a pair for each variable for its positive and negative occurrence
	refstack      []int             // Internal node reference stack
	nodes         []node            // List of all the BDD nodes. Constants are always kept at index 0 and 1
	unique        map[nodekey]int   // Unicity table, used to associate each triplet to a single node
	freenum       int               // Number of free nodes
	freepos       int               // First free node
	produced      int               // Total number of new nodes ever produced
	nodefinalizer func(n *int)      // Finalizer used to decrement the ref count of external references
	quantset      []int32           // Current variable set for quant.
	quantsetID    int32             // Current id used in quantset
	quantlast     int32             // Current last variable to be quant.
	error                           // Error status to help chain operations
	gcstat                          // Information about garbage collections
	cacheStat                       // Information about the caches
	caches                          // Operation caches
	configs                         // Configurable parameters
}

// ************************************************************

// New returns a new BDD manager with varnum variables (possibly zero; more
// variables can be added with Extend). Options are used to configure the size
// of the node table and of the operation caches.
func New(varnum int, options ...func(*configs)) (*BDD, error) {
	if (varnum < 0) || (varnum > int(_MAXVAR)) {
		return nil, fmt.Errorf("bad number of variable (%d)", varnum)
	}
	c := makeconfigs(varnum)
	for _, f := range options {
		f(c)
	}
	b := &BDD{configs: *c}
	nodesize := bdd_prime_gte(c.nodesize)
	b.nodes = make([]node, nodesize)
	for k := range b.nodes {
		b.nodes[k] = node{
			level:  0,
			low:    -1,
			high:   k + 1,
			refcou: 0,
		}
	}
	b.nodes[nodesize-1].high = 0
	b.unique = make(map[nodekey]int, nodesize)
	// creating the constants. We do not add them to the unique table.
	b.nodes[0] = node{level: 0, low: 0, high: 0, refcou: _MAXREFCOUNT}
	b.nodes[1] = node{level: 0, low: 1, high: 1, refcou: _MAXREFCOUNT}
	b.freepos = 2
	b.freenum = nodesize - 2
	b.refstack = make([]int, 0, 2*varnum+4)
	b.nodefinalizer = func(n *int) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _DEBUG {
			b.gcstat.calledfinalizers++
		}
		if *n < len(b.nodes) && b.nodes[*n].refcou > 0 {
			b.nodes[*n].refcou--
		}
	}
	b.gcstat.history = []gcpoint{}
	b.cacheinit(c.cachesize, c.cacheratio)
	if varnum > 0 {
		if _, err := b.extend(varnum); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Extend adds num fresh variables to the manager and returns the level of the
// first one. Variables are appended after the existing ones so the relative
// order of the current variables, and therefore all existing Nodes, are left
// unchanged.
func (b *BDD) Extend(num int) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.extend(num)
}

func (b *BDD) extend(num int) (int, error) {
	if b.error != nil {
		return -1, b.error
	}
	if (num < 1) || (int(b.varnum)+num > int(_MAXVAR)) {
		b.seterror("bad number of new variables (%d) in Extend", num)
		return -1, b.error
	}
	offset := b.varnum
	b.varnum += int32(num)
	// Constants always have the highest level.
	b.nodes[0].level = b.varnum
	b.nodes[1].level = b.varnum
	b.quantset = append(b.quantset, make([]int32, num)...)
	b.initref()
	for k := offset; k < b.varnum; k++ {
		v0 := b.makenode(k, 0, 1)
		if v0 < 0 {
			b.seterror("cannot allocate new variable %d in Extend", k)
			return -1, b.error
		}
		b.pushref(v0)
		v1 := b.makenode(k, 1, 0)
		if v1 < 0 {
			b.seterror("cannot allocate new variable %d in Extend", k)
			return -1, b.error
		}
		b.popref(1)
		b.varset = append(b.varset, [2]int{v0, v1})
		b.nodes[v0].refcou = _MAXREFCOUNT
		b.nodes[v1].refcou = _MAXREFCOUNT
	}
	if _LOGLEVEL > 0 {
		log.Printf("set varnum to %d\n", b.varnum)
	}
	return int(offset), nil
}

// Varnum returns the number of defined variables.
func (b *BDD) Varnum() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return int(b.varnum)
}

// ************************************************************

// True returns the constant true BDD
func (b *BDD) True() Node {
	return bddone
}

// False returns the constant false BDD
func (b *BDD) False() Node {
	return bddzero
}

// From returns a (constant) Node from a boolean value.
func (b *BDD) From(v bool) Node {
	if v {
		return bddone
	}
	return bddzero
}

// Ithvar returns a BDD representing the i'th variable on success. The
// requested variable must be in the range [0..Varnum).
func (b *BDD) Ithvar(i int) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if (i < 0) || (int32(i) >= b.varnum) {
		return b.seterror("Unknown variable used (%d) in call to ithvar", i)
	}
	// we do not need to reference count variables
	return inode(b.varset[i][0])
}

// NIthvar returns a bdd representing the negation of the i'th variable on
// success. See *ithvar* for further info.
func (b *BDD) NIthvar(i int) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if (i < 0) || (int32(i) >= b.varnum) {
		return b.seterror("Unknown variable used (%d) in call to nithvar", i)
	}
	return inode(b.varset[i][1])
}

// Level returns the variable (level) tested by node n. Constants have a level
// equal to Varnum.
func (b *BDD) Level(n Node) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.checkptr(n) != nil {
		return -1
	}
	return int(b.level(*n))
}

// Low returns the false branch of a BDD or nil if there is an error.
func (b *BDD) Low(n Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.checkptr(n) != nil {
		return nil
	}
	return b.retnode(b.low(*n))
}

// High returns the true branch of a BDD.
func (b *BDD) High(n Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.checkptr(n) != nil {
		return nil
	}
	return b.retnode(b.high(*n))
}

// ************************************************************

// checkptr performs a sanity check prior to accessing a node and return eventual
// error code.
func (b *BDD) checkptr(n Node) error {
	switch {
	case n == nil:
		b.seterror("Illegal acces to node (nil value)")
		return b.error
	case (*n < 0) || (*n >= len(b.nodes)):
		b.seterror("Illegal acces to node %d", *n)
		return b.error
	case (*n >= 2) && (b.nodes[*n].low == -1):
		b.seterror("Illegal acces to node %d", *n)
		return b.error
	}
	return nil
}
