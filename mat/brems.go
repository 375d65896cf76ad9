// Copyright 2016 The OpenMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mat

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/ivanradanov/openmc/nuc"
)

// bremsstrahlung energy grid
const (
	bremsEmin = 1e3 // [eV]
	bremsEmax = 1e9 // [eV]
	bremsNE   = 200
)

// Bremsstrahlung is the per-material thick-target bremsstrahlung apparatus:
// the log-spaced electron energy grid and the collision stopping powers for
// electrons and positrons, with the oscillator data of the Sternheimer
// density-effect model. Used only by charged-particle and photon physics.
type Bremsstrahlung struct {

	// tables
	Egrid      []float64 // electron kinetic energy grid in [eV], log-spaced
	ElectronSP []float64 // collision stopping power for e⁻ in [eV/cm]
	PositronSP []float64 // collision stopping power for e⁺ in [eV/cm]

	// Sternheimer oscillator model
	f           []float64 // oscillator strengths, one per distinct element
	eBSq        []float64 // binding energies squared in [eV²]
	ePSq        float64   // plasma energy squared in [eV²]
	nConduction float64   // conduction electron strength
	logI        float64   // ln of the mean excitation energy [eV]
	rho         float64   // Sternheimer adjustment factor
	ne          float64   // electron density in [1/cm³]

	// diagnostics
	nonConverged int // grid points where the density-effect iteration hit maxIter
}

// NonConverged reports how many grid points fell back to the last iterate of
// the density-effect root find; an observability hook, never an error
func (o *Bremsstrahlung) NonConverged() int { return o.nonConverged }

// InitBremsstrahlung builds the stopping-power apparatus from the material
// composition. Requires a normalized density (Finalize order guarantees it).
func (o *Material) InitBremsstrahlung() error {
	nucs := o.reg.nuclide[o.index]
	elems := o.reg.element[o.index]
	dens := o.reg.atomDensity[o.index]
	if len(nucs) == 0 {
		return chk.Err("material %d: cannot initialise bremsstrahlung data without nuclides", o.id)
	}

	t := new(Bremsstrahlung)

	// electron densities per distinct element, in first-appearance order so
	// the oscillator layout is deterministic
	var order []int                // distinct element indices
	zDens := make(map[int]float64) // element index => Σ n_i・Z
	sumZ := 0.0                    // Σ n_i・Z  [atom/b-cm]
	sumM := 0.0                    // Σ n_i・M  [g/mol・atom/b-cm]
	for i, ielem := range elems {
		z := float64(o.reg.Lib.Elements[ielem].Z)
		if _, ok := zDens[ielem]; !ok {
			order = append(order, ielem)
		}
		zDens[ielem] += dens[i] * z
		sumZ += dens[i] * z
		sumM += dens[i] * o.reg.Lib.Nuclides[nucs[i]].AtomicWeight()
	}
	t.ne = sumZ * 1e24 // [1/cm³]

	// oscillator model: one oscillator per distinct element, strength
	// proportional to its share of the electrons, bound at the element's
	// mean excitation energy; an optional conduction term takes its share
	// from the bound oscillators
	t.nConduction = o.ConductionElectrons()
	if t.nConduction < 0 || t.nConduction >= 1 {
		return chk.Err("material %d: conduction electron strength %g is invalid", o.id, t.nConduction)
	}
	for _, ielem := range order {
		zd := zDens[ielem]
		e := o.reg.Lib.Elements[ielem]
		if e.IPot <= 0 {
			return chk.Err("material %d: element %q has no mean excitation energy", o.id, e.Symbol)
		}
		frac := zd / sumZ
		t.f = append(t.f, frac*(1-t.nConduction))
		t.eBSq = append(t.eBSq, e.IPot*e.IPot)
		t.logI += frac * math.Log(e.IPot)
	}

	// plasma energy from the mass density: E_p = C・√(ρ・⟨Z/A⟩)
	ep := nuc.PlasmaCoef * math.Sqrt(o.densityGpcc*sumZ/sumM)
	t.ePSq = ep * ep

	// adjustment factor; graceful on non-convergence
	t.rho, _ = SternheimerAdjustment(t.f, t.eBSq, t.ePSq, t.nConduction, t.logI, StopowTol, StopowMaxIter)

	// stopping powers over the log energy grid
	logE := utl.LinSpace(math.Log(bremsEmin), math.Log(bremsEmax), bremsNE)
	t.Egrid = make([]float64, bremsNE)
	for i, le := range logE {
		t.Egrid[i] = math.Exp(le)
	}
	t.ElectronSP = make([]float64, bremsNE)
	t.PositronSP = make([]float64, bremsNE)
	o.ttb = t
	o.collisionStoppingPower(t.ElectronSP, false)
	o.collisionStoppingPower(t.PositronSP, true)
	return nil
}
