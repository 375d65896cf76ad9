// Copyright 2016 The OpenMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nuc

import (
	"github.com/cpmech/gosl/chk"
)

// Nuclide holds the identity of one nuclide in the shared nuclide table
type Nuclide struct {
	Name       string  // name; e.g. "U235", "H1"
	Z          int     // atomic number
	A          int     // mass number
	Metastable int     // metastable state; 0 for ground state
	AWR        float64 // atomic weight ratio: mass ÷ neutron mass
}

// Fissionable tells whether this nuclide can fission
func (o *Nuclide) Fissionable() bool {
	return o.Z >= ZFissionable
}

// AtomicWeight returns the atomic mass in [g/mol]
func (o *Nuclide) AtomicWeight() float64 {
	return o.AWR * MassNeutron
}

// Element holds the identity of one element in the shared element table
type Element struct {
	Symbol       string  // symbol; e.g. "H", "U"
	Z            int     // atomic number
	AtomicWeight float64 // standard atomic weight in [g/mol]
	IPot         float64 // mean excitation energy in [eV]
}

// ThermalData holds the identity and applicability window of one bound
// thermal scattering table
type ThermalData struct {
	Name    string  // name; e.g. "c_H_in_H2O"
	Nuclide string  // name of the nuclide the table binds
	CutoffE float64 // maximum energy in [eV] at which the table applies
	KTmin   float64 // minimum thermal energy kT in [eV]
	KTmax   float64 // maximum thermal energy kT in [eV]
}

// Library is the shared table of nuclides, elements and thermal scattering
// data. Materials refer to entries by stable index; indices are assigned at
// registration and never reused.
type Library struct {

	// tables
	Nuclides []*Nuclide     // all nuclides
	Elements []*Element     // all elements
	Thermal  []*ThermalData // all thermal scattering tables

	// lookup maps
	nucIndex     map[string]int // nuclide name => index
	elemIndex    map[string]int // element symbol => index
	elemZIndex   map[int]int    // atomic number => element index
	thermalIndex map[string]int // thermal table name => index
}

// NewLibrary returns an empty library
func NewLibrary() *Library {
	return &Library{
		nucIndex:     make(map[string]int),
		elemIndex:    make(map[string]int),
		elemZIndex:   make(map[int]int),
		thermalIndex: make(map[string]int),
	}
}

// AddElement registers an element and returns its stable index.
// Registering the same symbol twice returns the existing index.
func (o *Library) AddElement(e *Element) int {
	if idx, ok := o.elemIndex[e.Symbol]; ok {
		return idx
	}
	idx := len(o.Elements)
	o.Elements = append(o.Elements, e)
	o.elemIndex[e.Symbol] = idx
	o.elemZIndex[e.Z] = idx
	return idx
}

// AddNuclide registers a nuclide and returns its stable index.
// Registering the same name twice returns the existing index.
func (o *Library) AddNuclide(n *Nuclide) int {
	if idx, ok := o.nucIndex[n.Name]; ok {
		return idx
	}
	idx := len(o.Nuclides)
	o.Nuclides = append(o.Nuclides, n)
	o.nucIndex[n.Name] = idx
	return idx
}

// AddThermal registers a thermal scattering table and returns its stable index
func (o *Library) AddThermal(t *ThermalData) int {
	if idx, ok := o.thermalIndex[t.Name]; ok {
		return idx
	}
	idx := len(o.Thermal)
	o.Thermal = append(o.Thermal, t)
	o.thermalIndex[t.Name] = idx
	return idx
}

// IndexNuclide resolves a nuclide name to its stable index
func (o *Library) IndexNuclide(name string) (int, error) {
	idx, ok := o.nucIndex[name]
	if !ok {
		return -1, chk.Err("nuclide %q is not available in the data library", name)
	}
	return idx, nil
}

// IndexElement resolves an element symbol to its stable index
func (o *Library) IndexElement(symbol string) (int, error) {
	idx, ok := o.elemIndex[symbol]
	if !ok {
		return -1, chk.Err("element %q is not available in the data library", symbol)
	}
	return idx, nil
}

// IndexElementZ resolves an atomic number to its element index
func (o *Library) IndexElementZ(z int) (int, error) {
	idx, ok := o.elemZIndex[z]
	if !ok {
		return -1, chk.Err("element with Z=%d is not available in the data library", z)
	}
	return idx, nil
}

// IndexThermal resolves a thermal scattering table name to its stable index
func (o *Library) IndexThermal(name string) (int, error) {
	idx, ok := o.thermalIndex[name]
	if !ok {
		return -1, chk.Err("thermal scattering table %q is not available in the data library", name)
	}
	return idx, nil
}

// NumNuclides returns the number of registered nuclides
func (o *Library) NumNuclides() int { return len(o.Nuclides) }

// NumElements returns the number of registered elements
func (o *Library) NumElements() int { return len(o.Elements) }
