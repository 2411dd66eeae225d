// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

/*
Package cpltset implements set variables with a complete domain representation
and the constraints that compile cardinality, intersection and lexicographic
relations into Boolean functions.

The domain of a set variable over the universe [min, max] is a Boolean
function over max-min+1 bits, bit i standing for the membership of min+i.
Every constraint builds one function over the bits of its views and posts a
propagator that conjoins it with the domains and projects the result back on
each view.
*/
package cpltset
