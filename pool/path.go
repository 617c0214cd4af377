// Package pool provides sync.Pool wrappers for reducing GC pressure.
package pool

import (
	"strconv"
	"sync"
)

// PathBuilder builds tree-path strings without intermediate allocations.
// Paths take the form "clinicalDocument.measureSection[0].measure[2]".
// Instances are reused via sync.Pool.
type PathBuilder struct {
	buf []byte
	// marks records segment start offsets so segments can be popped
	// while the dispatcher descends and re-ascends the tree.
	marks []int
}

// pathBuilderPool holds reusable PathBuilder instances.
var pathBuilderPool = sync.Pool{
	New: func() any {
		return &PathBuilder{
			buf:   make([]byte, 0, 256),
			marks: make([]int, 0, 16),
		}
	},
}

// AcquirePathBuilder gets a PathBuilder from the pool.
// Call Release() when done to return it to the pool.
func AcquirePathBuilder() *PathBuilder {
	pb := pathBuilderPool.Get().(*PathBuilder)
	pb.Reset()
	return pb
}

// Release returns the PathBuilder to the pool.
func (b *PathBuilder) Release() {
	if b == nil {
		return
	}
	// Don't return oversized buffers to the pool
	if cap(b.buf) <= 4096 {
		pathBuilderPool.Put(b)
	}
}

// Reset clears the builder without deallocating.
func (b *PathBuilder) Reset() {
	b.buf = b.buf[:0]
	b.marks = b.marks[:0]
}

// Push appends a path segment "name[index]", with a leading dot unless the
// builder is empty. A negative index suppresses the bracket suffix.
func (b *PathBuilder) Push(name string, index int) {
	b.marks = append(b.marks, len(b.buf))
	if len(b.buf) > 0 {
		b.buf = append(b.buf, '.')
	}
	b.buf = append(b.buf, name...)
	if index >= 0 {
		b.buf = append(b.buf, '[')
		b.buf = strconv.AppendInt(b.buf, int64(index), 10)
		b.buf = append(b.buf, ']')
	}
}

// Pop removes the most recently pushed segment.
func (b *PathBuilder) Pop() {
	if len(b.marks) == 0 {
		return
	}
	b.buf = b.buf[:b.marks[len(b.marks)-1]]
	b.marks = b.marks[:len(b.marks)-1]
}

// Depth returns the number of pushed segments.
func (b *PathBuilder) Depth() int {
	return len(b.marks)
}

// String returns the built path. This is the only allocation point.
func (b *PathBuilder) String() string {
	return string(b.buf)
}

// Segment builds a single "name[index]" path segment.
func Segment(name string, index int) string {
	pb := AcquirePathBuilder()
	defer pb.Release()
	pb.Push(name, index)
	return pb.String()
}
