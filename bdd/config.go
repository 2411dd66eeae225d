// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// configs holds the tuning parameters of a BDD manager. Options passed to New
// update it before the node table is allocated.
type configs struct {
	vars            int // variables created by New
	nodesize        int // initial size of the node table
	maxnodesize     int // bound on the size of the node table, 0 for none
	maxnodeincrease int // bound on the growth of the table at each resize, 0 for none
	minfreenodes    int // resize when less than this ratio (%) is free after a GC
	cachesize       int // initial size of each operation cache
	cacheratio      int // cache slots per 100 nodes, 0 for a fixed size
}

func makeconfigs(vars int) *configs {
	return &configs{
		vars:            vars,
		nodesize:        max(2*vars+2, _DEFAULTNODESIZE),
		maxnodeincrease: _DEFAULTMAXNODEINC,
		minfreenodes:    _MINFREENODES,
	}
}

// Nodesize sets the initial size of the node table. Sizes too small to hold
// the constants and the variables given to New are ignored. The table grows
// when needed.
func Nodesize(size int) func(*configs) {
	return func(c *configs) {
		if size >= 2*c.vars+2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize bounds the size of the node table. Operations that would need
// more nodes fail: they return nil and set the error status. The default, 0,
// leaves the table unbounded.
func Maxnodesize(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Maxnodeincrease bounds the number of nodes added by a resize. Below the
// bound the table doubles. The default is about a million nodes; 0 removes
// the bound.
func Maxnodeincrease(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodeincrease = size
	}
}

// Minfreenodes sets the ratio (%) of the table that must be free after a
// garbage collection; below it the table is resized. The default is 20.
func Minfreenodes(ratio int) func(*configs) {
	return func(c *configs) {
		c.minfreenodes = ratio
	}
}

// Cachesize sets the initial number of slots of each operation cache. The
// default is a fifth of the node table.
func Cachesize(size int) func(*configs) {
	return func(c *configs) {
		c.cachesize = size
	}
}

// Cacheratio makes the caches grow with the node table, with ratio slots for
// every 100 nodes. The default, 0, keeps their size fixed.
func Cacheratio(ratio int) func(*configs) {
	return func(c *configs) {
		c.cacheratio = ratio
	}
}
