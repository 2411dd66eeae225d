// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package cpltset

import (
	"fmt"

	"github.com/castor-software/gecode/bdd"
)

// LexOp is a lexicographic comparison between the bit strings of two views.
type LexOp uint8

const (
	LexNone LexOp = iota // no ordering
	LexLe                // strictly less
	LexGr                // strictly greater
	LexLq                // less or equal
	LexGq                // greater or equal
)

// Direction is the order in which bits are compared. With Forward the bit of
// the smallest value is the most significant one; with Reverse it is the bit
// of the largest value.
type Direction uint8

const (
	Forward Direction = iota
	Reverse
)

// LexRel is one of the eight lexicographic relations, or none.
type LexRel struct {
	Op  LexOp
	Dir Direction
}

func (r LexRel) String() string {
	op := [...]string{"none", "le", "gr", "lq", "gq"}
	if int(r.Op) >= len(op) {
		return "unknown"
	}
	if r.Op == LexNone || r.Dir == Forward {
		return op[r.Op]
	}
	return op[r.Op] + "_rev"
}

// lexTable gives, for each operator, whether the operands are swapped and
// whether the comparison is strict. Greater relations are less relations on
// swapped operands.
var lexTable = [...]struct {
	swap   bool
	strict bool
}{
	LexLe: {swap: false, strict: true},
	LexGr: {swap: true, strict: true},
	LexLq: {swap: false, strict: false},
	LexGq: {swap: true, strict: false},
}

// lexLess returns the function stating that the bit string xs is less than
// ys, comparing xs[0] with ys[0] first. Both slices have the same length.
func lexLess(mgr *bdd.BDD, xs, ys []bdd.Node, strict bool) bdd.Node {
	diagramBuilds.Inc()
	res := mgr.From(!strict)
	for i := len(xs) - 1; i >= 0; i-- {
		lt := mgr.Apply(xs[i], ys[i], bdd.OPless)
		eq := mgr.Equiv(xs[i], ys[i])
		res = mgr.Or(lt, mgr.And(eq, res))
	}
	return res
}

// order returns the bits of x in the traversal order of dir.
func order(x View, dir Direction) []bdd.Node {
	res := viewBits(x, 0, x.TableWidth())
	if dir == Reverse {
		for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
			res[i], res[j] = res[j], res[i]
		}
	}
	return res
}

// lexRel returns the function for relation r between x and y.
func lexRel(mgr *bdd.BDD, r LexRel, x, y View) (bdd.Node, error) {
	if r.Op == LexNone {
		return mgr.True(), nil
	}
	if int(r.Op) >= len(lexTable) || r.Dir > Reverse {
		return nil, fmt.Errorf("unknown lexicographic relation %v", r)
	}
	if x.TableWidth() != y.TableWidth() {
		return nil, fmt.Errorf("lexicographic relation on views of width %d and %d", x.TableWidth(), y.TableWidth())
	}
	e := lexTable[r.Op]
	if e.swap {
		x, y = y, x
	}
	return lexLess(mgr, order(x, r.Dir), order(y, r.Dir), e.strict), nil
}
