// Copyright 2016 The OpenMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mem

import (
	"github.com/cpmech/gosl/chk"
)

// Mirror pairs a host slice with a device-resident copy of it. Host and
// device contents are never implicitly kept in sync: Stage allocates the
// device copy, Push and Pull move data in each direction, Release frees the
// device copy. The host slice is a non-owning alias; the mirror owns only
// the device allocation.
//
// All calls must run outside the multi-threaded transport phase; the caller
// serializes them at phase boundaries (before a kernel launch, after it
// completes).
type Mirror[T any] struct {
	host   []T // non-owning alias of the host storage
	device []T // device-resident copy; owned
}

// NewMirror returns an unstaged mirror over host
func NewMirror[T any](host []T) *Mirror[T] {
	return &Mirror[T]{host: host}
}

// Stage allocates the device copy. Contents are undefined until Push.
func (o *Mirror[T]) Stage() {
	o.device = make([]T, len(o.host))
}

// Staged tells whether the device copy is allocated
func (o *Mirror[T]) Staged() bool { return o.device != nil }

// Push copies current host values to the device
func (o *Mirror[T]) Push() error {
	if o.device == nil {
		return errNotStaged("Mirror")
	}
	copy(o.device, o.host)
	return nil
}

// Pull copies device values back to the host
func (o *Mirror[T]) Pull() error {
	if o.device == nil {
		return errNotStaged("Mirror")
	}
	copy(o.host, o.device)
	return nil
}

// Release frees the device copy. Idempotent.
func (o *Mirror[T]) Release() {
	o.device = nil
}

// Device returns the device-resident slice
func (o *Mirror[T]) Device() []T { return o.device }

// errNotStaged builds the error returned by device operations invoked before
// the mapping is established
func errNotStaged(what string) error {
	return chk.Err("%s: device mirror is not staged; call Stage/AllocateOnDevice first", what)
}
