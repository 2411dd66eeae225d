// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package bdd

import (
	"fmt"
)

// slot is an entry of an operation cache. Empty slots have a set to -1.
type slot struct {
	a, b, c int
	res     int
}

// table is a direct-mapped cache of operation results. A positive ratio (%)
// makes its size follow the size of the node table.
type table struct {
	ratio int
	slots []slot
}

func (t *table) init(size int) {
	t.slots = make([]slot, bdd_prime_gte(size))
	t.reset()
}

func (t *table) resize(nodes int) {
	if t.ratio > 0 {
		t.init(nodes * t.ratio / 100)
		return
	}
	t.reset()
}

func (t *table) reset() {
	for k := range t.slots {
		t.slots[k].a = -1
	}
}

func (t *table) at(h uint64) *slot {
	return &t.slots[h%uint64(len(t.slots))]
}

type applycache struct {
	table
	op int // operator of the current apply
}

type itecache struct {
	table
}

type quantcache struct {
	table
	id int // varset and kind of the current quantification
}

type appexcache struct {
	table
	id int // varset and operator of the current appex
	op int
}

type caches struct {
	applycache *applycache
	itecache   *itecache
	quantcache *quantcache
	appexcache *appexcache
}

// Kind of quantification, in the low bits of quantcache.id.
const (
	cacheid_EXIST int = 0x0
	cacheid_APPEX int = 0x3
)

func (b *BDD) cacheinit(size, ratio int) {
	if size <= 0 {
		size = len(b.nodes)/5 + 1
	}
	b.applycache = &applycache{table: table{ratio: ratio}}
	b.itecache = &itecache{table: table{ratio: ratio}}
	b.quantcache = &quantcache{table: table{ratio: ratio}}
	b.appexcache = &appexcache{table: table{ratio: ratio}}
	for _, t := range b.tables() {
		t.init(size)
	}
}

func (b *BDD) tables() []*table {
	return []*table{&b.applycache.table, &b.itecache.table, &b.quantcache.table, &b.appexcache.table}
}

func (b *BDD) cachereset() {
	for _, t := range b.tables() {
		t.reset()
	}
}

func (b *BDD) cacheresize(nodes int) {
	for _, t := range b.tables() {
		t.resize(nodes)
	}
}

// quantset2cache marks the levels of the cube n with a fresh quantsetID and
// records the deepest one in quantlast.
func (b *BDD) quantset2cache(n int) error {
	if n < 2 {
		b.quantlast = -1
		return nil
	}
	b.quantsetID++
	if b.quantsetID == _MAXVAR {
		b.quantset = make([]int32, b.varnum)
		b.quantsetID = 1
	}
	for i := n; i > 1; i = b.nodes[i].high {
		b.quantset[b.nodes[i].level] = b.quantsetID
		b.quantlast = b.nodes[i].level
	}
	return nil
}

// cacheStat counts the accesses to the unique table and to the operation
// caches. It is only updated in debug builds.
type cacheStat struct {
	uniqueAccess int
	uniqueHit    int
	uniqueMiss   int
	opHit        int
	opMiss       int
}

func (c cacheStat) String() string {
	return fmt.Sprintf("Unique Access:  %d\nUnique Hit:     %d\nUnique Miss:    %d\nOperator Hits:  %d\nOperator Miss:  %d",
		c.uniqueAccess, c.uniqueHit, c.uniqueMiss, c.opHit, c.opMiss)
}
