// Copyright 2016 The OpenMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mat

import (
	"bytes"
	"encoding/gob"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/ivanradanov/openmc/nuc"
)

// newTestRegistry returns a registry over the standard library with the
// in-memory data implementation wired to every collaborator slot
func newTestRegistry(tst *testing.T) (*Registry, *nuc.Library, *nuc.MemData) {
	lib, dat := nuc.StandardLibrary()
	reg, err := NewRegistry(lib, dat)
	if err != nil {
		tst.Fatalf("cannot create registry: %v\n", err)
	}
	reg.Photon = dat
	reg.Thermal = dat
	reg.Depletion = dat
	return reg, lib, dat
}

func Test_mat01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat01. end-to-end: H1 + O16 with summed density")

	reg, lib, _ := newTestRegistry(tst)
	m, err := reg.NewMaterial(1, "moderator")
	if err != nil {
		tst.Errorf("registration failed: %v\n", err)
		return
	}
	if err = m.AddNuclide("H1", 0.02); err != nil {
		tst.Errorf("add H1 failed: %v\n", err)
		return
	}
	if err = m.AddNuclide("O16", 0.01); err != nil {
		tst.Errorf("add O16 failed: %v\n", err)
		return
	}
	if err = m.Finalize(); err != nil {
		tst.Errorf("finalize failed: %v\n", err)
		return
	}

	chk.IntAssert(m.ID(), 1)
	chk.IntAssert(len(m.Nuclides()), 2)
	chk.Float64(tst, "density", 1e-14, m.Density(), 0.03)
	if m.Fissionable() {
		tst.Errorf("moderator must not be fissionable\n")
		return
	}

	// Σ constituent densities equals density()
	sum := 0.0
	for _, d := range m.Densities() {
		sum += d
	}
	chk.Float64(tst, "Σρ", 1e-14, sum, m.Density())

	// mass density from atomic weights
	ih, _ := lib.IndexNuclide("H1")
	io16, _ := lib.IndexNuclide("O16")
	gpcc := (0.02*lib.Nuclides[ih].AtomicWeight() + 0.01*lib.Nuclides[io16].AtomicWeight()) / nuc.NAvogadro
	chk.Float64(tst, "density gpcc", 1e-14, m.DensityGpcc(), gpcc)

	// sentinel scalars
	chk.Float64(tst, "volume", 1e-17, m.Volume(), -1)
	chk.Float64(tst, "temperature", 1e-17, m.Temperature(), -1)

	// finalize is idempotent
	rho, rhoG := m.Density(), m.DensityGpcc()
	dens0 := append([]float64(nil), m.Densities()...)
	if err = m.Finalize(); err != nil {
		tst.Errorf("second finalize failed: %v\n", err)
		return
	}
	chk.Float64(tst, "density unchanged", 1e-17, m.Density(), rho)
	chk.Float64(tst, "gpcc unchanged", 1e-17, m.DensityGpcc(), rhoG)
	chk.Array(tst, "densities unchanged", 1e-17, m.Densities(), dens0)
}

func Test_mat02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat02. density normalization with g/cm3 and weight fractions")

	reg, lib, _ := newTestRegistry(tst)
	m, _ := reg.NewMaterial(1, "water")
	if err := m.SetDensity(1.0, "g/cm3"); err != nil {
		tst.Errorf("set density failed: %v\n", err)
		return
	}
	m.AddNuclide("H1", 2)
	m.AddNuclide("O16", 1)
	if err := m.Finalize(); err != nil {
		tst.Errorf("finalize failed: %v\n", err)
		return
	}

	// atom density reproduces the mass density
	ih, _ := lib.IndexNuclide("H1")
	io16, _ := lib.IndexNuclide("O16")
	mass := 2*lib.Nuclides[ih].AtomicWeight() + lib.Nuclides[io16].AtomicWeight()
	chk.Float64(tst, "density", 1e-14, m.Density(), nuc.NAvogadro*3/mass)
	chk.Float64(tst, "gpcc round trip", 1e-14, m.DensityGpcc(), 1.0)

	// atom proportions preserved
	d := m.Densities()
	chk.Float64(tst, "H:O ratio", 1e-14, d[0]/d[1], 2.0)

	// weight fractions convert through the atomic weight ratio
	m2, _ := reg.NewMaterial(2, "water-wo")
	m2.SetDensity(1.0, "g/cm3")
	m2.AddNuclide("H1", -0.111894)
	m2.AddNuclide("O16", -0.888106)
	if err := m2.Finalize(); err != nil {
		tst.Errorf("finalize failed: %v\n", err)
		return
	}
	d2 := m2.Densities()
	chk.Float64(tst, "H:O ratio from wo", 1e-3, d2[0]/d2[1], 2.0)
	chk.Float64(tst, "gpcc round trip", 1e-14, m2.DensityGpcc(), 1.0)

	// kg/m3 agrees with g/cm3
	m3, _ := reg.NewMaterial(3, "water-kgm3")
	m3.SetDensity(1000.0, "kg/m3")
	m3.AddNuclide("H1", 2)
	m3.AddNuclide("O16", 1)
	if err := m3.Finalize(); err != nil {
		tst.Errorf("finalize failed: %v\n", err)
		return
	}
	chk.Float64(tst, "kg/m3", 1e-14, m3.Density(), m.Density())

	// unknown units fail
	if err := m3.SetDensity(1, "lb/ft3"); err == nil {
		tst.Errorf("unknown units must fail\n")
		return
	}
}

func Test_mat03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat03. direct-address nuclide index")

	reg, lib, _ := newTestRegistry(tst)
	m, _ := reg.NewMaterial(1, "fuel")
	m.AddNuclide("U235", 0.001)
	m.AddNuclide("O16", 0.002)
	if err := m.Finalize(); err != nil {
		tst.Errorf("finalize failed: %v\n", err)
		return
	}

	// present nuclides index their own slot; absent entries are exactly -1
	tbl := m.NuclideIndex()
	chk.IntAssert(len(tbl), lib.NumNuclides())
	for inuc, slot := range tbl {
		if slot < 0 {
			chk.IntAssert(slot, -1)
			if m.ContainsNuclide(inuc) {
				tst.Errorf("nuclide %d must not be contained\n", inuc)
				return
			}
			continue
		}
		chk.IntAssert(m.Nuclides()[slot], inuc)
	}
	iu, _ := lib.IndexNuclide("U235")
	chk.IntAssert(tbl[iu], 0)
	ih, _ := lib.IndexNuclide("H1")
	chk.IntAssert(tbl[ih], -1)

	// fuel contains fissionable nuclides
	if !m.Fissionable() {
		tst.Errorf("fuel must be fissionable\n")
		return
	}
}

func Test_mat04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat04. configuration errors abort setup")

	reg, _, _ := newTestRegistry(tst)
	m, _ := reg.NewMaterial(1, "broken")

	// unknown nuclide
	if err := m.AddNuclide("Xx999", 0.1); err == nil {
		tst.Errorf("unknown nuclide must fail\n")
		return
	}

	// mismatched lengths
	if err := m.SetDensities([]string{"H1", "O16"}, []float64{0.1}); err == nil {
		tst.Errorf("dimension mismatch must fail\n")
		return
	}

	// mixing atom and weight fractions
	m.AddNuclide("H1", 0.1)
	if err := m.AddNuclide("O16", -0.5); err == nil {
		tst.Errorf("mixing ao and wo must fail\n")
		return
	}

	// finalize without nuclides
	m2, _ := reg.NewMaterial(2, "empty")
	if err := m2.Finalize(); err == nil {
		tst.Errorf("finalize without nuclides must fail\n")
		return
	}

	// duplicate id
	if _, err := reg.NewMaterial(1, "dup"); err == nil {
		tst.Errorf("duplicate id must fail\n")
		return
	}

	// thermal table bound to an absent nuclide
	m3, _ := reg.NewMaterial(3, "dry")
	m3.AddNuclide("O16", 0.04)
	m3.AssignThermalTable("c_H_in_H2O", 1.0)
	if err := m3.Finalize(); err == nil {
		tst.Errorf("thermal table for absent nuclide must fail\n")
		return
	}

	// thermal fractions above one
	m4, _ := reg.NewMaterial(4, "wet")
	m4.AddNuclide("H1", 0.06)
	m4.AssignThermalTable("c_H_in_H2O", 0.7)
	m4.AssignThermalTable("c_H_in_H2O", 0.5)
	if err := m4.Finalize(); err == nil {
		tst.Errorf("thermal fractions above one must fail\n")
		return
	}
}

func Test_mat05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat05. slot stability and thermal resolution")

	reg, lib, _ := newTestRegistry(tst)
	a, _ := reg.NewMaterial(10, "a")
	b, _ := reg.NewMaterial(-1, "b") // auto id
	c, _ := reg.NewMaterial(7, "c")
	chk.IntAssert(a.Index(), 0)
	chk.IntAssert(b.Index(), 1)
	chk.IntAssert(c.Index(), 2)
	chk.IntAssert(b.ID(), 1)
	chk.IntAssert(reg.NumMaterials(), 3)

	got, err := reg.MaterialByID(7)
	if err != nil {
		tst.Errorf("lookup failed: %v\n", err)
		return
	}
	chk.StrAssert(got.Name(), "c")
	if _, err := reg.MaterialByID(99); err == nil {
		tst.Errorf("missing id must fail\n")
		return
	}

	// partial thermal fraction leaves the remainder to free gas
	a.AddNuclide("H1", 0.04)
	a.AddNuclide("O16", 0.02)
	a.AssignThermalTable("c_H_in_H2O", 0.6)
	if err := a.Finalize(); err != nil {
		tst.Errorf("finalize failed: %v\n", err)
		return
	}
	tts := a.ThermalTables()
	chk.IntAssert(len(tts), 1)
	ih, _ := lib.IndexNuclide("H1")
	chk.IntAssert(tts[0].Slot, 0)
	chk.IntAssert(a.Nuclides()[tts[0].Slot], ih)
	chk.Float64(tst, "fraction", 1e-17, tts[0].Fraction, 0.6)

	// isotropic flags land on the right slot
	if err := a.SetIsotropic([]string{"O16"}); err != nil {
		tst.Errorf("set isotropic failed: %v\n", err)
		return
	}
	iso := a.Isotropic()
	if iso[0] || !iso[1] {
		tst.Errorf("isotropic flags wrong: %v\n", iso)
		return
	}
}

func Test_mat06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat06. persistent snapshot round trip")

	reg, _, _ := newTestRegistry(tst)
	m, _ := reg.NewMaterial(5, "fuel")
	m.SetVolume(275.3)
	m.SetTemperature(600)
	m.SetDepletable(true)
	m.AddNuclide("U235", 0.001)
	m.AddNuclide("U238", 0.02)
	if err := m.Finalize(); err != nil {
		tst.Errorf("finalize failed: %v\n", err)
		return
	}

	// encode
	var buf bytes.Buffer
	if err := m.Encode(gob.NewEncoder(&buf)); err != nil {
		tst.Errorf("encode failed: %v\n", err)
		return
	}

	// decode into a fresh registry
	reg2, _, _ := newTestRegistry(tst)
	m2, _ := reg2.NewMaterial(5, "")
	if err := m2.Decode(gob.NewDecoder(&buf)); err != nil {
		tst.Errorf("decode failed: %v\n", err)
		return
	}
	if err := m2.Finalize(); err != nil {
		tst.Errorf("finalize failed: %v\n", err)
		return
	}
	chk.StrAssert(m2.Name(), "fuel")
	chk.Float64(tst, "density", 1e-14, m2.Density(), m.Density())
	chk.Float64(tst, "gpcc", 1e-14, m2.DensityGpcc(), m.DensityGpcc())
	chk.Float64(tst, "volume", 1e-17, m2.Volume(), 275.3)
	chk.Float64(tst, "temperature", 1e-17, m2.Temperature(), 600)
	chk.Array(tst, "densities", 1e-15, m2.Densities(), m.Densities())
	if !m2.Fissionable() || !m2.Depletable() {
		tst.Errorf("flags lost in round trip\n")
		return
	}

	// snapshot carries the identity check
	var buf2 bytes.Buffer
	m.Encode(gob.NewEncoder(&buf2))
	wrong, _ := reg2.NewMaterial(6, "other")
	if err := wrong.Decode(gob.NewDecoder(&buf2)); err == nil {
		tst.Errorf("id mismatch must fail\n")
		return
	}

	// normalization invariant holds after the round trip
	sum := 0.0
	for _, d := range m2.Densities() {
		sum += d
	}
	if math.Abs(sum-m2.Density()) > 1e-14 {
		tst.Errorf("Σρ=%g differs from ρ=%g\n", sum, m2.Density())
		return
	}
}
