// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

// Package search defines the contract of search engines and provides a depth
// first engine over kernel spaces, together with the stop conditions that
// bound a search.
package search
