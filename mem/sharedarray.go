// Copyright 2016 The OpenMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mem implements fixed-capacity storage appended to by concurrent
// particle histories and mirrored to accelerator memory
package mem

import (
	"sync/atomic"
)

// SharedArray is a fixed-capacity array that many worker goroutines may
// append to concurrently without locks. Only the append is protected: slot
// reservation happens through an atomic fetch-and-increment of the size
// counter, so no two appenders are ever handed the same index and the value
// write into a reserved slot needs no synchronization. Reading or iterating
// is valid only after all appenders have joined; append order across
// goroutines is not guaranteed, only slot exclusivity.
//
// There is no resizing: capacity is fixed at creation and an append beyond
// it fails softly with -1.
type SharedArray[T any] struct {
	data     []T         // backing storage; exclusively owned
	size     atomic.Int64 // number of valid elements; mutated only atomically
	capacity int64       // total space allocated for elements
	mirror   *Mirror[T]  // device-resident alias; nil while not staged
}

// NewSharedArray returns a zero-size array with space for capacity elements
func NewSharedArray[T any](capacity int64) *SharedArray[T] {
	var o SharedArray[T]
	o.Reserve(capacity)
	return &o
}

// Reserve allocates space for capacity elements. The size is unchanged.
func (o *SharedArray[T]) Reserve(capacity int64) {
	o.data = make([]T, capacity)
	o.capacity = capacity
}

// ThreadSafeAppend reserves the next slot by atomically incrementing the
// size counter, writes value there and returns its index. If the reserved
// index falls beyond the capacity, the counter is clamped back to the
// capacity (so later callers fail fast) and -1 is returned without writing.
func (o *SharedArray[T]) ThreadSafeAppend(value T) int64 {

	// atomically capture the index to write to
	idx := o.size.Add(1) - 1

	// clamp on overflow; the counter may transiently read above capacity
	// between the increment and this store, but no reader runs concurrently
	// with appenders
	if idx >= o.capacity {
		o.size.Store(o.capacity)
		return -1
	}

	o.data[idx] = value
	return idx
}

// At returns the element at index i. No bounds checking beyond the slice's.
func (o *SharedArray[T]) At(i int64) T { return o.data[i] }

// Set writes the element at index i; for callers that fill the array through
// a separately-synchronized bulk write
func (o *SharedArray[T]) Set(i int64, value T) { o.data[i] = value }

// Data returns the valid prefix [0,size) of the backing storage
func (o *SharedArray[T]) Data() []T { return o.data[:o.Size()] }

// Size returns the number of valid elements
func (o *SharedArray[T]) Size() int64 { return o.size.Load() }

// Capacity returns the number of elements the array has space for
func (o *SharedArray[T]) Capacity() int64 { return o.capacity }

// Resize declares how many elements are valid; for callers that fill the
// array through a separately-synchronized bulk write. The caller must ensure
// n ≤ capacity.
func (o *SharedArray[T]) Resize(n int64) { o.size.Store(n) }

// Clear releases the backing storage and resets size and capacity to zero.
// Idempotent.
func (o *SharedArray[T]) Clear() {
	o.ReleaseFromDevice()
	o.data = nil
	o.size.Store(0)
	o.capacity = 0
}

// AllocateOnDevice establishes the device-resident mirror of the backing
// storage. Must run outside the multi-threaded transport phase.
func (o *SharedArray[T]) AllocateOnDevice() {
	o.mirror = NewMirror(o.data)
	o.mirror.Stage()
}

// CopyHostToDevice pushes current host values to the device mirror
func (o *SharedArray[T]) CopyHostToDevice() error {
	if o.mirror == nil {
		return errNotStaged("SharedArray")
	}
	return o.mirror.Push()
}

// CopyDeviceToHost pulls device values back into host storage
func (o *SharedArray[T]) CopyDeviceToHost() error {
	if o.mirror == nil {
		return errNotStaged("SharedArray")
	}
	return o.mirror.Pull()
}

// ReleaseFromDevice frees the device mirror. Idempotent.
func (o *SharedArray[T]) ReleaseFromDevice() {
	if o.mirror != nil {
		o.mirror.Release()
		o.mirror = nil
	}
}

// DeviceAt returns the element at index i of the device mirror
func (o *SharedArray[T]) DeviceAt(i int64) T { return o.mirror.Device()[i] }
