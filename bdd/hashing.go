// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// Results are looked up by hashing their operands. Slots store the operands,
// so a collision only costs a recomputation.

// pair is the Cantor pairing of a and b.
func pair(a, b uint64) uint64 {
	return (a+b)*(a+b+1)/2 + a
}

func triple(a, b, c int) uint64 {
	return pair(uint64(c), pair(uint64(a), uint64(b)))
}

// lookup returns the result stored in s for the operands (x, y, z), or -1.
func (b *BDD) lookup(s *slot, x, y, z int) int {
	if s.a == x && s.b == y && s.c == z {
		if _DEBUG {
			b.cacheStat.opHit++
		}
		return s.res
	}
	if _DEBUG {
		b.cacheStat.opMiss++
	}
	return -1
}

// store records res in s and returns it. A negative res is an error raised
// while computing operation op.
func (b *BDD) store(s *slot, x, y, z, res int, op string) int {
	if res < 0 {
		b.seterror("problem in call to %s", op)
		return -1
	}
	*s = slot{a: x, b: y, c: z, res: res}
	return res
}

// Not shares the apply cache, with op_not as operator.

func (b *BDD) matchnot(n int) int {
	return b.lookup(b.applycache.at(uint64(n)), n, 0, int(op_not))
}

func (b *BDD) setnot(n int, res int) int {
	return b.store(b.applycache.at(uint64(n)), n, 0, int(op_not), res, "not")
}

func (b *BDD) matchapply(left, right int) int {
	op := b.applycache.op
	return b.lookup(b.applycache.at(triple(left, right, op)), left, right, op)
}

func (b *BDD) setapply(left, right, res int) int {
	op := b.applycache.op
	return b.store(b.applycache.at(triple(left, right, op)), left, right, op, res, "apply")
}

func (b *BDD) matchite(f, g, h int) int {
	return b.lookup(b.itecache.at(triple(f, g, h)), f, g, h)
}

func (b *BDD) setite(f, g, h, res int) int {
	return b.store(b.itecache.at(triple(f, g, h)), f, g, h, res, "ite")
}

// Quantification results are indexed by node; the id tells varsets apart.

func (b *BDD) matchquant(n int) int {
	return b.lookup(b.quantcache.at(uint64(n)), n, 0, b.quantcache.id)
}

func (b *BDD) setquant(n int, res int) int {
	return b.store(b.quantcache.at(uint64(n)), n, 0, b.quantcache.id, res, "quantification")
}

func (b *BDD) matchappex(left, right int) int {
	id := b.appexcache.id
	return b.lookup(b.appexcache.at(pair(uint64(left), uint64(right))), left, right, id)
}

func (b *BDD) setappex(left, right, res int) int {
	id := b.appexcache.id
	return b.store(b.appexcache.at(pair(uint64(left), uint64(right))), left, right, id, res, "appex")
}
