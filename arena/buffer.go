// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

package arena

import (
	"unsafe"

	"github.com/sirupsen/logrus"
)

// _ALIGN is the alignment of every block returned by a Buffer or a Heap.
const _ALIGN int = 8

// _DEFAULTSIZE is the capacity of a Buffer when no Size option is given.
const _DEFAULTSIZE int = 16 << 10

// Heap is the allocator used when a request cannot be served by a Buffer.
// Exhaustion of the heap is fatal: Alloc never returns a short block.
type Heap interface {
	Alloc(size int) []byte
	Release(b []byte)
}

// runtimeHeap allocates blocks from the Go runtime. Release is a no-op and
// memory is reclaimed by the garbage collector.
type runtimeHeap struct{}

func (runtimeHeap) Alloc(size int) []byte {
	return aligned(size)
}

func (runtimeHeap) Release([]byte) {}

// aligned returns a zeroed block of size bytes whose first byte is aligned on
// _ALIGN.
func aligned(size int) []byte {
	if size == 0 {
		return nil
	}
	words := make([]uint64, (size+_ALIGN-1)/_ALIGN)
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), size)
}

// Stats gives information about the use of a Buffer.
type Stats struct {
	Capacity  int // Size of the bump buffer
	Used      int // Current position of the free cursor
	HighWater int // Largest position ever reached by the free cursor
	Overflows int // Number of requests served by the heap
	Live      int // Number of regions not yet released
}

// Buffer is the bump allocator of a space. It is not safe for concurrent use:
// every space (and therefore every search worker) owns its own Buffer.
type Buffer struct {
	mem    []byte
	free   int      // free cursor
	heap   Heap     // fallback allocator
	gen    uint64   // generation of the last region created
	live   []uint64 // generations of the live regions, innermost last
	stats  Stats
	logger logrus.FieldLogger
}

// Option configures a Buffer.
type Option func(*Buffer)

// Size sets the capacity of the bump buffer.
func Size(size int) Option {
	return func(b *Buffer) {
		if size >= 0 {
			b.mem = aligned(size)
		}
	}
}

// WithHeap sets the allocator used for requests that do not fit in the buffer.
func WithHeap(h Heap) Option {
	return func(b *Buffer) {
		b.heap = h
	}
}

// WithLogger sets the logger used to report misuses of regions.
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Buffer) {
		b.logger = l
	}
}

// NewBuffer returns an empty Buffer.
func NewBuffer(options ...Option) *Buffer {
	b := &Buffer{
		heap:   runtimeHeap{},
		logger: logrus.StandardLogger(),
	}
	for _, f := range options {
		f(b)
	}
	if b.mem == nil {
		b.mem = aligned(_DEFAULTSIZE)
	}
	b.stats.Capacity = len(b.mem)
	return b
}

// Allocate returns a zeroed block of size bytes taken from the buffer. The
// second result is false, and the cursor unchanged, when there is not enough
// room left.
func (b *Buffer) Allocate(size int) ([]byte, bool) {
	if size < 0 {
		return nil, false
	}
	start := (b.free + _ALIGN - 1) &^ (_ALIGN - 1)
	end := start + size
	if end > len(b.mem) {
		return nil, false
	}
	res := b.mem[start:end:end]
	clear(res)
	b.free = end
	if end > b.stats.HighWater {
		b.stats.HighWater = end
	}
	return res, true
}

// Free returns the position of the free cursor.
func (b *Buffer) Free() int {
	return b.free
}

// Reset moves the free cursor back to the start of the buffer. It must not be
// called while regions are live.
func (b *Buffer) Reset() {
	if len(b.live) > 0 {
		b.logger.WithField("live", len(b.live)).Warn("resetting a buffer with live regions")
		b.live = b.live[:0]
	}
	b.free = 0
}

// Stats returns a snapshot of the usage of b.
func (b *Buffer) Stats() Stats {
	s := b.stats
	s.Used = b.free
	s.Live = len(b.live)
	return s
}

// Clone returns a new, empty, Buffer with the same capacity, heap and logger
// as b.
func (b *Buffer) Clone() *Buffer {
	return NewBuffer(Size(len(b.mem)), WithHeap(b.heap), WithLogger(b.logger))
}

// push registers a new live region and returns its generation.
func (b *Buffer) push() uint64 {
	b.gen++
	b.live = append(b.live, b.gen)
	return b.gen
}

// pop unregisters the region with generation gen. It returns false if gen is
// not the innermost live region.
func (b *Buffer) pop(gen uint64) bool {
	n := len(b.live)
	if n > 0 && b.live[n-1] == gen {
		b.live = b.live[:n-1]
		return true
	}
	for k := n - 1; k >= 0; k-- {
		if b.live[k] == gen {
			b.live = append(b.live[:k], b.live[k+1:]...)
			break
		}
	}
	return false
}
