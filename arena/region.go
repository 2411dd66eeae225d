// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package arena

import (
	"fmt"
	"unsafe"
)

// overflowKind is the discriminator of the overflow record of a Region.
type overflowKind uint8

const (
	overflowNone   overflowKind = iota // no heap block
	overflowSingle                     // one heap block, in single
	overflowMany                       // several heap blocks, in many
)

// overflow records the heap blocks allocated by a Region.
type overflow struct {
	kind   overflowKind
	single []byte
	many   [][]byte
}

func (o *overflow) add(blk []byte) {
	switch o.kind {
	case overflowNone:
		o.kind = overflowSingle
		o.single = blk
	case overflowSingle:
		o.kind = overflowMany
		o.many = [][]byte{o.single, blk}
		o.single = nil
	default:
		o.many = append(o.many, blk)
	}
}

func (o *overflow) blocks() [][]byte {
	switch o.kind {
	case overflowSingle:
		return [][]byte{o.single}
	case overflowMany:
		return o.many
	}
	return nil
}

// Region is a handle to temporary memory taken from a Buffer. The memory
// allocated through a region is given back only when the region is released,
// and regions sharing a buffer must be released in LIFO order. A Region must
// not be copied or used from several goroutines.
type Region struct {
	buf      *Buffer
	reset    int    // value of the free cursor at creation
	gen      uint64 // position in the LIFO order of buf
	hi       overflow
	released bool
}

// NewRegion returns a region starting at the current free cursor of buf.
func NewRegion(buf *Buffer) *Region {
	return &Region{
		buf:   buf,
		reset: buf.free,
		gen:   buf.push(),
	}
}

// Ralloc returns a zeroed block of size bytes, aligned on 8 bytes. It is taken
// from the buffer when possible and from the heap otherwise.
func (r *Region) Ralloc(size int) []byte {
	if p, ok := r.buf.Allocate(size); ok {
		return p
	}
	blk := r.buf.heap.Alloc(size)
	r.buf.stats.Overflows++
	r.hi.add(blk)
	return blk
}

// Rfree does nothing: memory is only reclaimed when r is released.
func (r *Region) Rfree([]byte) {}

// Release moves the free cursor of the buffer back to its value when r was
// created and returns every heap block to the heap. Releasing a region twice
// is a no-op.
func (r *Region) Release() {
	if r.released {
		return
	}
	r.released = true
	if !r.buf.pop(r.gen) {
		msg := fmt.Sprintf("region %d released out of LIFO order", r.gen)
		if _DEBUG {
			panic(msg)
		}
		r.buf.logger.WithField("live", len(r.buf.live)).Warn(msg)
	}
	r.buf.free = r.reset
	for _, blk := range r.hi.blocks() {
		r.buf.heap.Release(blk)
	}
	r.hi = overflow{}
}

// Scalar are the element types that can be allocated in a Region. They
// contain no pointer, so the garbage collector does not need to scan regions.
type Scalar interface {
	~bool | ~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

func bytesOf[T Scalar](b []T) []byte {
	if len(b) == 0 {
		return nil
	}
	var x T
	return unsafe.Slice((*byte)(unsafe.Pointer(&b[0])), len(b)*int(unsafe.Sizeof(x)))
}

// Alloc returns n zero values of type T allocated from r.
func Alloc[T Scalar](r *Region, n int) []T {
	if n <= 0 {
		return nil
	}
	var x T
	raw := r.Ralloc(n * int(unsafe.Sizeof(x)))
	return unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), n)
}

// Free clears the elements of b. The memory itself is only reclaimed when r is
// released.
func Free[T Scalar](r *Region, b []T) {
	clear(b)
	r.Rfree(bytesOf(b))
}

// Realloc resizes b to m elements. When b grows, a new block is allocated, the
// elements of b are copied and the remaining ones are zero; b is then freed.
// When b shrinks, the trailing elements are freed and b is returned in place.
func Realloc[T Scalar](r *Region, b []T, m int) []T {
	n := len(b)
	if n < m {
		p := Alloc[T](r, m)
		copy(p, b)
		Free(r, b)
		return p
	}
	Free(r, b[m:n])
	return b[:m]
}
