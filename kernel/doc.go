// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

/*
Package kernel implements the spaces explored during search.

A Space holds variable implementations, the propagators posted on them and
at most one brancher. Status runs the propagators until a fixpoint is
reached; Clone copies a stable space so that search can backtrack to it, and
Commit applies one alternative of a choice computed by the brancher.

Spaces are not safe for concurrent use. Each search worker explores its own
clones, each with a private arena.Buffer. All the clones of a space share the
bdd.BDD manager used to represent set domains.
*/
package kernel
