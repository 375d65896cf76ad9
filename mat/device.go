// Copyright 2016 The OpenMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mat

import (
	"github.com/cpmech/gosl/chk"

	"github.com/ivanradanov/openmc/mem"
)

// deviceRow holds the device mirrors of one material's row. Host and device
// are synchronized only at the explicit push/pull calls below; there is no
// implicit caching.
type deviceRow struct {
	nuclide         *mem.Mirror[int]
	element         *mem.Mirror[int]
	atomDensity     *mem.Mirror[float64]
	p0              *mem.Mirror[bool]
	matNuclideIndex *mem.Mirror[int]
	thermalTables   *mem.Mirror[ThermalTable]
}

// stage allocates all mirrors of one row
func (o *Registry) stageRow(slot int) *deviceRow {
	r := &deviceRow{
		nuclide:         mem.NewMirror(o.nuclide[slot]),
		element:         mem.NewMirror(o.element[slot]),
		atomDensity:     mem.NewMirror(o.atomDensity[slot]),
		p0:              mem.NewMirror(o.p0[slot]),
		matNuclideIndex: mem.NewMirror(o.matNuclideIndex[slot]),
		thermalTables:   mem.NewMirror(o.thermalTables[slot]),
	}
	r.nuclide.Stage()
	r.element.Stage()
	r.atomDensity.Stage()
	r.p0.Stage()
	r.matNuclideIndex.Stage()
	r.thermalTables.Stage()
	return r
}

// push copies current host values of one row to the device
func (o *deviceRow) push() error {
	if err := o.nuclide.Push(); err != nil {
		return err
	}
	if err := o.element.Push(); err != nil {
		return err
	}
	if err := o.atomDensity.Push(); err != nil {
		return err
	}
	if err := o.p0.Push(); err != nil {
		return err
	}
	if err := o.matNuclideIndex.Push(); err != nil {
		return err
	}
	return o.thermalTables.Push()
}

// pull copies device values of one row back to the host
func (o *deviceRow) pull() error {
	if err := o.nuclide.Pull(); err != nil {
		return err
	}
	if err := o.element.Pull(); err != nil {
		return err
	}
	if err := o.atomDensity.Pull(); err != nil {
		return err
	}
	if err := o.p0.Pull(); err != nil {
		return err
	}
	if err := o.matNuclideIndex.Pull(); err != nil {
		return err
	}
	return o.thermalTables.Pull()
}

type deviceRows []*deviceRow

// CopyToDevice freezes the registry, allocates a device mirror of every
// row and pushes current host values. Runs outside the transport phase;
// concurrent calls are undefined and must be serialized by the caller.
func (o *Registry) CopyToDevice() error {
	if o.device != nil {
		return chk.Err("registry is already mapped to the device")
	}
	o.Freeze()
	o.device = make(deviceRows, len(o.mats))
	for slot := range o.mats {
		r := o.stageRow(slot)
		if err := r.push(); err != nil {
			return err
		}
		o.device[slot] = r
	}
	return nil
}

// CopyHostToDevice pushes current host values of every row; a no-op error
// if the registry is not mapped
func (o *Registry) CopyHostToDevice() error {
	if o.device == nil {
		return chk.Err("registry is not mapped to the device")
	}
	for _, r := range o.device {
		if err := r.push(); err != nil {
			return err
		}
	}
	return nil
}

// CopyDeviceToHost pulls device values of every row back to the host
func (o *Registry) CopyDeviceToHost() error {
	if o.device == nil {
		return chk.Err("registry is not mapped to the device")
	}
	for _, r := range o.device {
		if err := r.pull(); err != nil {
			return err
		}
	}
	return nil
}

// ReleaseFromDevice frees all device mirrors. Idempotent.
func (o *Registry) ReleaseFromDevice() {
	o.device = nil
}

// Mapped tells whether the registry is mapped to the device
func (o *Registry) Mapped() bool { return o.device != nil }
