// Copyright 2016 The OpenMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mat

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/ivanradanov/openmc/nuc"
)

// thermalAssign is one pending thermal table assignment recorded during
// setup and resolved against the nuclide list by InitThermal
type thermalAssign struct {
	table    int     // index of the table in the data library
	fraction float64 // how often to use the table
}

// Material is a lightweight view over one row of the Registry plus
// material-level scalars. The row data (nuclide indices, densities, flags)
// is owned by the registry; the view owns only its scalars and the
// stopping-power apparatus.
type Material struct {

	// registry row
	reg   *Registry // owning registry
	index int       // slot in the registry; assigned once, never reused

	// identity
	id   int    // unique id
	name string // name of material

	// scalars
	density     float64 // total atom density in [atom/b-cm]
	densityGpcc float64 // total mass density in [g/cm³]
	volume      float64 // volume in [cm³]; -1 means unknown
	temperature float64 // default temperature in [K]; negative means unspecified
	fissionable bool    // does this material contain fissionable nuclides
	depletable  bool    // is the material tracked for burnup

	// density specification from configuration
	densValue float64 // specified density value
	densUnits string  // specified density units; "" means "sum"

	// pending setup state
	thermalAssign []thermalAssign // thermal assignments resolved by InitThermal

	// model options and stopping-power apparatus
	Options dbf.Params      // extra model parameters; e.g. conduction electron count
	ttb     *Bremsstrahlung // thick-target bremsstrahlung data; nil until initialised
}

// density units accepted by SetDensity
var densityUnits = map[string]bool{
	"atom/b-cm": true,
	"g/cm3":     true,
	"g/cc":      true,
	"kg/m3":     true,
	"sum":       true,
}

// SetDensity sets the total density of the material. Units "sum" declare the
// total as the sum of the constituent atom densities (the default).
func (o *Material) SetDensity(value float64, units string) error {
	if !densityUnits[units] {
		return chk.Err("material %d: unknown density units %q; options are \"atom/b-cm\", \"g/cm3\", \"g/cc\", \"kg/m3\" and \"sum\"", o.id, units)
	}
	if units != "sum" && value <= 0 {
		return chk.Err("material %d: density must be positive; %g is invalid", o.id, value)
	}
	o.densValue = value
	o.densUnits = units
	if units == "atom/b-cm" {
		o.density = value
	}
	return nil
}

// SetVolume sets the volume in [cm³]
func (o *Material) SetVolume(v float64) { o.volume = v }

// SetTemperature sets the default temperature in [K]
func (o *Material) SetTemperature(t float64) { o.temperature = t }

// SetDepletable marks the material as tracked for burnup
func (o *Material) SetDepletable(d bool) { o.depletable = d }

// AddNuclide appends one constituent to the material. A positive density is
// an atom density in [atom/b-cm] (or an atom fraction when the total density
// is specified separately); a negative density is a weight fraction. Atom
// and weight fractions cannot be mixed within one material.
func (o *Material) AddNuclide(nuclide string, density float64) error {
	if o.reg.frozen {
		return chk.Err("material %d: cannot add nuclide %q: registry is frozen", o.id, nuclide)
	}
	if density == 0 {
		return chk.Err("material %d: nuclide %q has zero density", o.id, nuclide)
	}
	inuc, err := o.reg.Lib.IndexNuclide(nuclide)
	if err != nil {
		return chk.Err("material %d: %v", o.id, err)
	}
	dens := o.reg.atomDensity[o.index]
	if len(dens) > 0 && (dens[0] > 0) != (density > 0) {
		return chk.Err("material %d: cannot mix atom and weight fractions", o.id)
	}
	n := o.reg.Lib.Nuclides[inuc]
	ielem, err := o.reg.Lib.IndexElementZ(n.Z)
	if err != nil {
		return chk.Err("material %d: %v", o.id, err)
	}
	o.reg.nuclide[o.index] = append(o.reg.nuclide[o.index], inuc)
	o.reg.element[o.index] = append(o.reg.element[o.index], ielem)
	o.reg.atomDensity[o.index] = append(dens, density)
	o.reg.p0[o.index] = append(o.reg.p0[o.index], false)
	if n.Fissionable() {
		o.fissionable = true
	}
	return nil
}

// SetDensities replaces the whole nuclide list. name and density must have
// the same length; densities follow the AddNuclide conventions.
func (o *Material) SetDensities(name []string, density []float64) error {
	if len(name) != len(density) {
		return chk.Err("material %d: number of nuclides (%d) does not match number of densities (%d)", o.id, len(name), len(density))
	}
	o.reg.nuclide[o.index] = o.reg.nuclide[o.index][:0]
	o.reg.element[o.index] = o.reg.element[o.index][:0]
	o.reg.atomDensity[o.index] = o.reg.atomDensity[o.index][:0]
	o.reg.p0[o.index] = o.reg.p0[o.index][:0]
	o.fissionable = false
	for i := range name {
		if err := o.AddNuclide(name[i], density[i]); err != nil {
			return err
		}
	}
	return nil
}

// SetIsotropic flags the named nuclides for isotropic-in-lab scattering
func (o *Material) SetIsotropic(name []string) error {
	for _, nm := range name {
		inuc, err := o.reg.Lib.IndexNuclide(nm)
		if err != nil {
			return chk.Err("material %d: %v", o.id, err)
		}
		slot := o.localSlot(inuc)
		if slot < 0 {
			return chk.Err("material %d: cannot set isotropic scattering for nuclide %q which is not in the material", o.id, nm)
		}
		o.reg.p0[o.index][slot] = true
	}
	return nil
}

// AssignThermalTable records that the named bound thermal scattering table
// applies to this material with the given usage fraction. The bound nuclide
// comes from the table data; the assignment is resolved by InitThermal.
func (o *Material) AssignThermalTable(table string, fraction float64) error {
	itable, err := o.reg.Lib.IndexThermal(table)
	if err != nil {
		return chk.Err("material %d: %v", o.id, err)
	}
	if fraction <= 0 || fraction > 1 {
		return chk.Err("material %d: thermal table %q has invalid fraction %g", o.id, table, fraction)
	}
	o.thermalAssign = append(o.thermalAssign, thermalAssign{table: itable, fraction: fraction})
	return nil
}

// localSlot returns the local slot of a global nuclide index, or -1 if the
// nuclide is not in the material. Works before InitNuclideIndex by scanning
// the (short) nuclide list.
func (o *Material) localSlot(inuc int) int {
	if tbl := o.reg.matNuclideIndex[o.index]; len(tbl) > 0 {
		return tbl[inuc]
	}
	for slot, idx := range o.reg.nuclide[o.index] {
		if idx == inuc {
			return slot
		}
	}
	return -1
}

// NormalizeDensity computes the total atom density and rescales constituent
// densities so that their sum equals it, converting weight fractions to atom
// fractions on the way. Reapplying is a no-op: after the first call the
// densities already reflect their own sum.
func (o *Material) NormalizeDensity() error {
	nucs := o.reg.nuclide[o.index]
	dens := o.reg.atomDensity[o.index]
	if len(nucs) == 0 {
		return chk.Err("material %d has no nuclides", o.id)
	}

	// atom fractions and mass sums
	sumPercent := 0.0
	sumMass := 0.0
	for i, inuc := range nucs {
		a := dens[i]
		if a < 0 { // weight fraction
			a = -a / o.reg.Lib.Nuclides[inuc].AWR
		}
		dens[i] = a
		sumPercent += a
		sumMass += a * o.reg.Lib.Nuclides[inuc].AtomicWeight()
	}

	// total atom density from the density specification
	switch o.densUnits {
	case "", "sum":
		o.density = sumPercent
	case "atom/b-cm":
		o.density = o.densValue
	case "g/cm3", "g/cc":
		o.density = o.densValue * nuc.NAvogadro * sumPercent / sumMass
	case "kg/m3":
		o.density = 1e-3 * o.densValue * nuc.NAvogadro * sumPercent / sumMass
	}

	// rescale so Σ atom densities == density
	scale := o.density / sumPercent
	for i := range dens {
		dens[i] *= scale
	}
	o.densityGpcc = o.density * sumMass / sumPercent / nuc.NAvogadro
	o.checkNormalized()
	return nil
}

// InitNuclideIndex builds the direct-address table mapping every nuclide in
// the shared nuclide table to this material's local slot, or -1 if absent.
// Enables the O(1) contains-nuclide test used heavily during tallying.
func (o *Material) InitNuclideIndex() {
	tbl := o.reg.matNuclideIndex[o.index]
	if len(tbl) != o.reg.Lib.NumNuclides() {
		tbl = make([]int, o.reg.Lib.NumNuclides())
	}
	for i := range tbl {
		tbl[i] = -1
	}
	for slot, inuc := range o.reg.nuclide[o.index] {
		tbl[inuc] = slot
	}
	o.reg.matNuclideIndex[o.index] = tbl
}

// InitThermal resolves the recorded thermal table assignments against the
// nuclide list. A table whose bound nuclide is absent from the material is a
// configuration error, as are usage fractions summing above one for a
// single nuclide; a sum below one leaves the remainder to free-gas
// treatment. Rebuilds the row from scratch, so reapplying is safe.
func (o *Material) InitThermal() error {
	row := o.reg.thermalTables[o.index][:0]
	fracSum := make([]float64, len(o.reg.nuclide[o.index]))
	for _, a := range o.thermalAssign {
		t := o.reg.Lib.Thermal[a.table]
		inuc, err := o.reg.Lib.IndexNuclide(t.Nuclide)
		if err != nil {
			return chk.Err("material %d: thermal table %q: %v", o.id, t.Name, err)
		}
		slot := o.localSlot(inuc)
		if slot < 0 {
			return chk.Err("material %d: thermal table %q is for nuclide %q which is not in the material", o.id, t.Name, t.Nuclide)
		}
		fracSum[slot] += a.fraction
		if fracSum[slot] > 1+1e-12 {
			return chk.Err("material %d: thermal table fractions for nuclide %q sum to %g > 1", o.id, t.Nuclide, fracSum[slot])
		}
		row = append(row, ThermalTable{Table: a.table, Slot: slot, Fraction: a.fraction})
	}
	o.reg.thermalTables[o.index] = row
	return nil
}

// Finalize orchestrates, in order, density normalization, the direct-address
// nuclide index, thermal table resolution and (when photon physics is
// active) the bremsstrahlung apparatus. Expected to run once per material at
// setup; running it again leaves all computed values unchanged.
func (o *Material) Finalize() (err error) {
	if err = o.NormalizeDensity(); err != nil {
		return
	}
	o.InitNuclideIndex()
	if err = o.InitThermal(); err != nil {
		return
	}
	if o.reg.Photon != nil {
		err = o.InitBremsstrahlung()
	}
	return
}

// accessors //////////////////////////////////////////////////////////////////////////////////////

// ID returns the unique id of the material
func (o *Material) ID() int { return o.id }

// Index returns the registry slot of the material
func (o *Material) Index() int { return o.index }

// Name returns the name of the material
func (o *Material) Name() string { return o.name }

// Density returns the total atom density in [atom/b-cm]
func (o *Material) Density() float64 { return o.density }

// DensityGpcc returns the total mass density in [g/cm³]
func (o *Material) DensityGpcc() float64 { return o.densityGpcc }

// Volume returns the volume in [cm³]; -1 means unknown
func (o *Material) Volume() float64 { return o.volume }

// Temperature returns the default temperature in [K]; negative means
// unspecified
func (o *Material) Temperature() float64 { return o.temperature }

// Fissionable tells whether the material contains fissionable nuclides
func (o *Material) Fissionable() bool { return o.fissionable }

// Depletable tells whether the material is tracked for burnup
func (o *Material) Depletable() bool { return o.depletable }

// Nuclides returns the constituent nuclide indices (indices into the shared
// nuclide table)
func (o *Material) Nuclides() []int { return o.reg.nuclide[o.index] }

// Elements returns the element index of each constituent (parallel to
// Nuclides)
func (o *Material) Elements() []int { return o.reg.element[o.index] }

// Densities returns the atom density of each constituent in [atom/b-cm]
func (o *Material) Densities() []float64 { return o.reg.atomDensity[o.index] }

// Isotropic returns the iso-in-lab flag of each constituent
func (o *Material) Isotropic() []bool { return o.reg.p0[o.index] }

// NuclideIndex returns the direct-address table built by InitNuclideIndex
func (o *Material) NuclideIndex() []int { return o.reg.matNuclideIndex[o.index] }

// ThermalTables returns the resolved thermal table associations
func (o *Material) ThermalTables() []ThermalTable { return o.reg.thermalTables[o.index] }

// ContainsNuclide tells whether the material contains the given global
// nuclide; O(1) after InitNuclideIndex
func (o *Material) ContainsNuclide(inuc int) bool { return o.localSlot(inuc) >= 0 }

// Ttb returns the bremsstrahlung apparatus; nil until InitBremsstrahlung
func (o *Material) Ttb() *Bremsstrahlung { return o.ttb }

// ConductionElectrons returns the conduction electron count per atom from
// the model options; 0 unless the material is flagged as a conductor
func (o *Material) ConductionElectrons() float64 {
	if p := o.Options.Find("conduction"); p != nil {
		return p.V
	}
	return 0
}

// checkTol is the tolerance used for internal consistency checks
const checkTol = 1e-12

// checkNormalized verifies the normalization invariant; programmer error if
// violated
func (o *Material) checkNormalized() {
	sum := 0.0
	for _, d := range o.Densities() {
		sum += d
	}
	if math.Abs(sum-o.density) > checkTol*(1+math.Abs(o.density)) {
		chk.Panic("material %d: normalization invariant broken: Σρ=%g ρ=%g", o.id, sum, o.density)
	}
}
