// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"log"
)

// Error returns the error status of the BDD. We return an empty string if
// there are no errors.
func (b *BDD) Error() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.error == nil {
		return ""
	}
	return b.error.Error()
}

// Errored returns true if there was an error during a computation.
func (b *BDD) Errored() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.error != nil
}

// Err returns the error status of the BDD as an error value, or nil.
func (b *BDD) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.error
}

// seterror records an error and returns a nil Node so that it can be used as
// the result of a failed operation. Errors are chained.
func (b *BDD) seterror(format string, a ...interface{}) Node {
	if b.error != nil {
		b.error = fmt.Errorf(format+"; %w", append(a, b.error)...)
		return nil
	}
	b.error = fmt.Errorf(format, a...)
	if _DEBUG {
		log.Println(b.error)
	}
	return nil
}
