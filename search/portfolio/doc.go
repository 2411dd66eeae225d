// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

// Package portfolio runs several search engines, the slaves, over the same
// problem and returns the first or the best of their solutions.
//
// A Sequential portfolio interleaves the steps of its slaves on the calling
// goroutine. A Parallel portfolio runs each slave on its own goroutine; slaves
// are then given stops derived from the stop of the portfolio, so that halting
// the portfolio halts every slave at its next step boundary.
//
// Both portfolios are search engines themselves and can be nested.
package portfolio
