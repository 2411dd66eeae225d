// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package bdd defines the Boolean functions manipulated by the constraint
compiler: reduced, ordered Binary Decision Diagrams sharing one node table.

Basics

A BDD manager holds a growing set of variables, each represented by an
(integer) index called a level. New variables are appended with Extend, which
returns the level of the first fresh variable; a set variable with a domain of
width w owns the bit range [offset, offset+w).

Most operations return a Node; that is a reference to a "vertex" of the
diagram. We use integers for the address of Nodes, with the convention that 1
(respectively 0) is the address of the constant function True (respectively
False). Nodes are hash-consed in a unicity table, so two Nodes denote the same
Boolean function if and only if they have the same address (see Equal).

Concurrency

A manager can be shared by several goroutines: every exported operation takes
the manager lock. Nodes themselves are immutable and can be freely passed
around.

Automatic memory management

Like MuDDy, a ML interface to BuDDy, we piggyback on the garbage collection
mechanism of the host language. "External" references to nodes made by user
code are tracked with finalizers; nodes that are not referenced anymore are
reclaimed by a mark and sweep pass when the node table is full, before trying
to resize it.

Use of build tags

Compile with the build tag `debug` to unlock logging of garbage collections
and resizing, and extra sanity checks.
*/
package bdd
