// Copyright 2016 The OpenMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mat implements the material registry, macroscopic cross section
// evaluation and the charged-particle stopping-power apparatus
package mat

import (
	"github.com/cpmech/gosl/chk"

	"github.com/ivanradanov/openmc/nuc"
)

// ThermalTable associates a bound thermal scattering table with one nuclide
// of a material
type ThermalTable struct {
	Table    int     // index of the table in the data library
	Slot     int     // local slot of the bound nuclide in the material's nuclide list
	Fraction float64 // how often to use the table; remainder uses free-gas treatment
}

// Registry is the process-wide store of all materials of one run. Row data
// is held in columnar (structure-of-arrays) form: each attribute lives in
// its own jagged array indexed by (material slot, local slot), so the flat
// per-row slices can be mirrored to accelerator memory directly.
//
// The registry is populated during setup, frozen before the transport phase
// and then only read; no locking is needed for concurrent readers.
type Registry struct {

	// data collaborators
	Lib       *nuc.Library        // shared nuclide/element/thermal tables
	Neutron   nuc.NeutronSource   // neutron micro xs lookup
	Photon    nuc.PhotonSource    // photon micro xs lookup; nil disables photon physics
	Thermal   nuc.ThermalSource   // bound thermal scattering lookup; nil disables overrides
	Depletion nuc.DepletionSource // depletion reaction rates; nil disables the side channel

	// materials
	mats     []*Material // one view per registered material
	idToSlot map[int]int // material id => slot

	// columnar row data, one row per material slot
	nuclide         [][]int          // constituent nuclide indices
	element         [][]int          // element index of each constituent (parallel to nuclide)
	atomDensity     [][]float64      // atom density of each constituent in [atom/b-cm]
	p0              [][]bool         // iso-in-lab scattering flag of each constituent
	matNuclideIndex [][]int          // direct-address table: global nuclide => local slot or -1
	thermalTables   [][]ThermalTable // bound thermal scattering assignments

	// lifecycle
	frozen bool       // no further registration or composition changes
	device deviceRows // device mirrors of all rows; nil while unmapped
}

// NewRegistry returns an empty registry. neutron is the required cross
// section collaborator; photon, thermal and depletion sources are optional
// and may be assigned to the corresponding fields before setup completes.
func NewRegistry(lib *nuc.Library, neutron nuc.NeutronSource) (*Registry, error) {
	if lib == nil || neutron == nil {
		return nil, chk.Err("library and neutron data source must be both non-nil")
	}
	return &Registry{
		Lib:      lib,
		Neutron:  neutron,
		idToSlot: make(map[int]int),
	}, nil
}

// NewMaterial registers a new material and returns its view. A slot index is
// assigned across all columns and never reused. id = -1 requests automatic
// assignment of the smallest unused positive id.
func (o *Registry) NewMaterial(id int, name string) (*Material, error) {
	if o.frozen {
		return nil, chk.Err("cannot register material %q: registry is frozen", name)
	}
	if id < 0 {
		id = o.nextID()
	}
	if slot, ok := o.idToSlot[id]; ok {
		return nil, chk.Err("two materials have the same id: %d (slots %d and %d)", id, slot, len(o.mats))
	}
	slot := len(o.mats)
	o.nuclide = append(o.nuclide, nil)
	o.element = append(o.element, nil)
	o.atomDensity = append(o.atomDensity, nil)
	o.p0 = append(o.p0, nil)
	o.matNuclideIndex = append(o.matNuclideIndex, nil)
	o.thermalTables = append(o.thermalTables, nil)
	m := &Material{
		reg:         o,
		index:       slot,
		id:          id,
		name:        name,
		volume:      -1,
		temperature: -1,
	}
	o.mats = append(o.mats, m)
	o.idToSlot[id] = slot
	return m, nil
}

// nextID returns the smallest unused positive material id
func (o *Registry) nextID() int {
	id := 1
	for {
		if _, ok := o.idToSlot[id]; !ok {
			return id
		}
		id++
	}
}

// MaterialByID returns the material with the given id
func (o *Registry) MaterialByID(id int) (*Material, error) {
	slot, ok := o.idToSlot[id]
	if !ok {
		return nil, chk.Err("material with id %d does not exist", id)
	}
	return o.mats[slot], nil
}

// Material returns the material at the given slot
func (o *Registry) Material(slot int) *Material { return o.mats[slot] }

// Materials returns all registered materials in slot order
func (o *Registry) Materials() []*Material { return o.mats }

// NumMaterials returns the number of registered materials
func (o *Registry) NumMaterials() int { return len(o.mats) }

// Freeze forbids further registration and composition changes. Called by the
// transport driver once setup completes; must precede CopyToDevice.
func (o *Registry) Freeze() { o.frozen = true }

// Frozen tells whether the registry is frozen
func (o *Registry) Frozen() bool { return o.frozen }

// Free releases all row data and device mirrors; the registry is unusable
// afterwards. Individual rows cannot be deleted mid-run: a material that
// must go away is rebuilt from scratch in a new registry.
func (o *Registry) Free() {
	o.ReleaseFromDevice()
	o.mats = nil
	o.idToSlot = nil
	o.nuclide = nil
	o.element = nil
	o.atomDensity = nil
	o.p0 = nil
	o.matNuclideIndex = nil
	o.thermalTables = nil
}
