// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"errors"
)

// _MINFREENODES is the minimal number of nodes (%) that has to be left after a
// garbage collect unless a resize should be done.
const _MINFREENODES int = 20

// _MAXVAR is the maximal number of levels in the BDD. We use only the first 21
// bits for encoding levels (so also the max number of variables). The bit just
// above is used for marking nodes during garbage collection.
const _MAXVAR int32 = 0x1FFFFF

// _MARK is the bit used to mark the level of a node during a traversal.
const _MARK int32 = 0x200000

// _MAXREFCOUNT is the maximal value of the reference counter (refcou), also
// used to stick nodes (like constants and variables) in the node list. It is
// egal to 1023 (10 bits).
const _MAXREFCOUNT int32 = 0x3FF

// _DEFAULTMAXNODEINC is the default value for the maximal increase in the
// number of nodes during a resize. It is approx. one million nodes (1 048 576).
const _DEFAULTMAXNODEINC int = 1 << 20

// _DEFAULTNODESIZE is the size of the node table when no Nodesize option is
// given.
const _DEFAULTNODESIZE int = 1 << 12

var errMemory = errors.New("unable to free memory or resize BDD")
