// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

/*
Package arena provides the transient memory used while propagating and
cloning spaces during search.

A Buffer is the bump allocator owned by one space. A Region is a scoped handle
on that buffer: it records the free cursor when it is created and puts it back
when it is released, so regions must be released in the reverse order of their
creation. Requests that do not fit in the buffer are served by a Heap and the
blocks are returned to it when the region is released.

Compile with the build tag `debug` to panic, instead of logging a warning,
when regions are not released in LIFO order.
*/
package arena
