// Copyright 2016 The OpenMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nuc

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// XSLaw holds the coefficients of the analytic cross section law used by
// MemData for one nuclide:
//   elastic    = El                      [b]
//   absorption = Ab・√(E0/E)             [b]  (1/v law, E0 = 0.0253 eV)
//   fission    = Fi・√(E0/E)             [b]
//   ν          = Nu                      [-]
type XSLaw struct {
	El float64 // elastic scattering coefficient
	Ab float64 // absorption coefficient at thermal energy
	Fi float64 // fission coefficient at thermal energy
	Nu float64 // neutrons per fission
}

// PhotonLaw holds the coefficients of the analytic photon cross section law
// used by MemData for one element:
//   photoelectric  = Pe・(E0/E)³         [b]  (E0 = 1 keV reference)
//   incoherent     = In・Z               [b]
//   coherent       = Co・Z²・(E0/E)²     [b]
//   pair           = Pa・Z²・ln(E/Eth)   [b]  above threshold Eth = 2・m_e c²
type PhotonLaw struct {
	Pe float64 // photoelectric coefficient
	In float64 // incoherent coefficient
	Co float64 // coherent coefficient
	Pa float64 // pair production coefficient
}

// reference energies of the analytic laws in [eV]
const (
	eThermal   = 0.0253
	ePhotonRef = 1e3
)

// MemData is an in-memory implementation of the data collaborators
// (NeutronSource, PhotonSource, ThermalSource, DepletionSource) backed by
// analytic cross section laws. It serves setup checks, examples and tests;
// production runs plug in tabulated data libraries instead.
type MemData struct {
	Lib     *Library    // the shared tables
	Laws    []XSLaw     // one law per nuclide, parallel to Lib.Nuclides
	PLaws   []PhotonLaw // one law per element, parallel to Lib.Elements
	Bound   []float64   // bound elastic xs per thermal table, parallel to Lib.Thermal
}

// NewMemData returns a MemData over lib with zeroed laws
func NewMemData(lib *Library) *MemData {
	return &MemData{
		Lib:   lib,
		Laws:  make([]XSLaw, lib.NumNuclides()),
		PLaws: make([]PhotonLaw, lib.NumElements()),
		Bound: make([]float64, len(lib.Thermal)),
	}
}

// SetLaw sets the analytic law of one nuclide
func (o *MemData) SetLaw(name string, law XSLaw) error {
	idx, err := o.Lib.IndexNuclide(name)
	if err != nil {
		return err
	}
	o.Laws[idx] = law
	return nil
}

// SetPhotonLaw sets the analytic photon law of one element
func (o *MemData) SetPhotonLaw(symbol string, law PhotonLaw) error {
	idx, err := o.Lib.IndexElement(symbol)
	if err != nil {
		return err
	}
	o.PLaws[idx] = law
	return nil
}

// SetBound sets the bound elastic cross section of one thermal table
func (o *MemData) SetBound(name string, xs float64) error {
	idx, err := o.Lib.IndexThermal(name)
	if err != nil {
		return err
	}
	o.Bound[idx] = xs
	return nil
}

// CalcMicroXS computes microscopic neutron cross sections of nuclide inuc
func (o *MemData) CalcMicroXS(inuc int, E, sqrtkT float64) MicroXS {
	law := o.Laws[inuc]
	inv := math.Sqrt(eThermal / E)
	xs := MicroXS{
		Elastic:    law.El,
		Absorption: law.Ab * inv,
		Fission:    law.Fi * inv,
		LastE:      E,
		LastSqrtkT: sqrtkT,
	}
	xs.NuFission = law.Nu * xs.Fission
	xs.Total = xs.Elastic + xs.Absorption
	return xs
}

// CalcPhotonXS computes microscopic photon cross sections of element ielem
func (o *MemData) CalcPhotonXS(ielem int, E float64) PhotonXS {
	law := o.PLaws[ielem]
	z := float64(o.Lib.Elements[ielem].Z)
	xs := PhotonXS{
		Photoelectric: law.Pe * math.Pow(ePhotonRef/E, 3),
		Incoherent:    law.In * z,
		Coherent:      law.Co * z * z * math.Pow(ePhotonRef/E, 2),
		LastE:         E,
	}
	if eth := 2 * MassElectronEV; E > eth {
		xs.PairProduction = law.Pa * z * z * math.Log(E/eth)
	}
	xs.Total = xs.Photoelectric + xs.Incoherent + xs.Coherent + xs.PairProduction
	return xs
}

// ThermalApplies tells whether thermal table itable applies at (E, √kT)
func (o *MemData) ThermalApplies(itable int, E, sqrtkT float64) bool {
	t := o.Lib.Thermal[itable]
	kT := sqrtkT * sqrtkT
	return E < t.CutoffE && kT >= t.KTmin && kT <= t.KTmax
}

// CalcThermalXS computes the bound elastic cross section of table itable
func (o *MemData) CalcThermalXS(itable int, E, sqrtkT float64) float64 {
	return o.Bound[itable]
}

// CalcDepletionRx fills rx with the depletion reaction cross sections of
// nuclide inuc. rx must have length NumDepletionRx.
func (o *MemData) CalcDepletionRx(inuc int, E float64, rx []float64) {
	law := o.Laws[inuc]
	inv := math.Sqrt(eThermal / E)
	rx[RxNGamma] = (law.Ab - law.Fi) * inv
	rx[RxN2N] = 0.1 * law.El * math.Exp(-1e6/E)
	rx[RxFission] = law.Fi * inv
}

// StandardLibrary returns a small library with common nuclides and analytic
// laws roughly matching thermal-energy data; handy for examples and tests
func StandardLibrary() (*Library, *MemData) {
	lib := NewLibrary()
	lib.AddElement(&Element{Symbol: "H", Z: 1, AtomicWeight: 1.008, IPot: 19.2})
	lib.AddElement(&Element{Symbol: "O", Z: 8, AtomicWeight: 15.999, IPot: 95.0})
	lib.AddElement(&Element{Symbol: "U", Z: 92, AtomicWeight: 238.029, IPot: 890.0})
	lib.AddNuclide(&Nuclide{Name: "H1", Z: 1, A: 1, AWR: 0.999167})
	lib.AddNuclide(&Nuclide{Name: "O16", Z: 8, A: 16, AWR: 15.857510})
	lib.AddNuclide(&Nuclide{Name: "U235", Z: 92, A: 235, AWR: 233.024790})
	lib.AddNuclide(&Nuclide{Name: "U238", Z: 92, A: 238, AWR: 236.005800})
	lib.AddThermal(&ThermalData{Name: "c_H_in_H2O", Nuclide: "H1", CutoffE: 4.0, KTmin: 0.0, KTmax: 0.1})
	dat := NewMemData(lib)
	for name, law := range map[string]XSLaw{
		"H1":   {El: 20.5, Ab: 0.332},
		"O16":  {El: 3.9, Ab: 1.9e-4},
		"U235": {El: 15.0, Ab: 680.0, Fi: 583.0, Nu: 2.43},
		"U238": {El: 9.3, Ab: 2.7},
	} {
		if err := dat.SetLaw(name, law); err != nil {
			chk.Panic("cannot set analytic law for %q: %v", name, err)
		}
	}
	for symbol, law := range map[string]PhotonLaw{
		"H": {Pe: 1e-3, In: 0.4, Co: 1e-2, Pa: 1e-3},
		"O": {Pe: 0.2, In: 0.4, Co: 1e-2, Pa: 1e-3},
		"U": {Pe: 90.0, In: 0.4, Co: 1e-2, Pa: 1e-3},
	} {
		if err := dat.SetPhotonLaw(symbol, law); err != nil {
			chk.Panic("cannot set photon law for %q: %v", symbol, err)
		}
	}
	dat.SetBound("c_H_in_H2O", 30.0)
	return lib, dat
}
