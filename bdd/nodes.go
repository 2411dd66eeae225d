// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"log"
	"runtime"
)

type node struct {
	level  int32 // Order of the variable in the BDD
	low    int   // Reference to the false branch
	high   int   // Reference to the true branch
	refcou int32 // Count the number of external references
}

// nodekey is the key of the unicity table. A node is uniquely identified by
// the triplet (level, low, high).
type nodekey struct {
	level int32
	low   int
	high  int
}

// ************************************************************

// inode returns a Node for known nodes, such as variables, that do not need to
// increase their reference count.
func inode(n int) Node {
	x := n
	return &x
}

var bddone Node = inode(1)

var bddzero Node = inode(0)

// ************************************************************

func (b *BDD) ismarked(n int) bool {
	return (b.nodes[n].level & _MARK) != 0
}

func (b *BDD) marknode(n int) {
	b.nodes[n].level |= _MARK
}

func (b *BDD) unmarknode(n int) {
	b.nodes[n].level &= _MAXVAR
}

func (b *BDD) level(n int) int32 {
	return b.nodes[n].level
}

func (b *BDD) low(n int) int {
	return b.nodes[n].low
}

func (b *BDD) high(n int) int {
	return b.nodes[n].high
}

// ************************************************************

// retnode returns a Node for the node at address n. We increase the reference
// count of the node and attach a finalizer that will decrease it when the Node
// is no longer referenced by user code.
func (b *BDD) retnode(n int) Node {
	if n < 0 || n >= len(b.nodes) {
		if _DEBUG {
			log.Panicf("b.retnode(%d) not valid\n", n)
		}
		return nil
	}
	if n == 0 {
		return bddzero
	}
	if n == 1 {
		return bddone
	}
	x := n
	if b.nodes[n].refcou < _MAXREFCOUNT {
		b.nodes[n].refcou++
		runtime.SetFinalizer(&x, b.nodefinalizer)
		if _DEBUG {
			b.gcstat.setfinalizers++
		}
	}
	return &x
}

// makenode returns the address of the node (level, low, high), building it if
// necessary. We return -1 and set the error status of b if we cannot find room
// for a new node.
func (b *BDD) makenode(level int32, low int, high int) int {
	if _DEBUG {
		b.cacheStat.uniqueAccess++
	}
	// an error occurred while building one of the children
	if low < 0 || high < 0 {
		return -1
	}
	// check whether children are equal, in which case we can skip the node
	if low == high {
		return low
	}
	// otherwise try to find an existing node using the unique table
	if res, ok := b.unique[nodekey{level, low, high}]; ok {
		if _DEBUG {
			b.cacheStat.uniqueHit++
		}
		return res
	}
	if _DEBUG {
		b.cacheStat.uniqueMiss++
	}
	// If no existing node, we build one. If there is no available spot
	// (b.freepos == 0), we try garbage collection and, as a last resort,
	// resizing the BDD list.
	if b.freepos == 0 {
		// We garbage collect unused nodes to try and find spare space.
		b.gbc()
		// We also test if we are under the threshold for resising.
		if (b.freenum*100)/len(b.nodes) <= b.minfreenodes {
			if err := b.noderesize(); err != nil {
				b.seterror("unable to resize BDD: %w", err)
				return -1
			}
			b.cacheresize(len(b.nodes))
		}
		if b.freepos == 0 {
			b.seterror("unable to find a free node: %w", errMemory)
			return -1
		}
	}
	// We can now build the new node in the first available spot
	b.produced++
	return b.setnode(level, low, high)
}

// When a slot is unused in b.nodes, we have low set to -1 and high set to the
// next free position. The value of b.freepos gives the index of the lowest
// unused slot, except when freenum is 0, in which case it is also 0.

func (b *BDD) setnode(level int32, low int, high int) int {
	b.freenum--
	res := b.freepos
	b.unique[nodekey{level, low, high}] = res
	b.freepos = b.nodes[res].high
	b.nodes[res] = node{level, low, high, 0}
	return res
}

func (b *BDD) delnode(n node) {
	delete(b.unique, nodekey{n.level & _MAXVAR, n.low, n.high})
}
