// Copyright 2016 The OpenMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package par implements particle state carried through the transport loop
package par

import (
	"github.com/cpmech/gosl/la"
	"github.com/go-hep/fmom"

	"github.com/ivanradanov/openmc/nuc"
)

// Kind labels the kind of a particle. The set is closed: cross section
// dispatch switches on it directly instead of going through an interface.
type Kind int

const (
	Neutron Kind = iota
	Photon
	Electron
	Positron
)

// String returns the name of the particle kind
func (k Kind) String() string {
	switch k {
	case Neutron:
		return "neutron"
	case Photon:
		return "photon"
	case Electron:
		return "electron"
	case Positron:
		return "positron"
	}
	return "unknown"
}

// MacroXS holds macroscopic cross sections of the material the particle is
// travelling through, in [1/cm]. Neutron and photon channels share the
// struct; only the channels of the active kind are filled.
type MacroXS struct {

	// neutron channels
	Total      float64 // total
	Scatter    float64 // elastic scattering, thermal overrides included
	Absorption float64 // absorption
	Fission    float64 // fission
	NuFission  float64 // ν・fission

	// photon channels
	Photoelectric  float64 // photoelectric absorption
	Incoherent     float64 // incoherent (Compton) scattering
	Coherent       float64 // coherent (Rayleigh) scattering
	PairProduction float64 // pair production
}

// Particle holds the full state of one particle history. Each history owns
// its particle exclusively; during the transport phase many particles are
// advanced concurrently, all reading shared material data that is frozen
// after setup.
type Particle struct {

	// state
	Kind      Kind      // kind of particle
	E         float64   // energy in [eV]
	SqrtkT    float64   // √kT of the current cell in [√eV]
	Wgt       float64   // statistical weight
	Position  fmom.Vec3 // position in [cm]
	Direction fmom.Vec3 // direction of flight (unit vector)
	Material  int       // index of current material; -1 in void

	// cross section caches; indexed by global nuclide/element
	NeutronXS []nuc.MicroXS  // per-nuclide neutron micro xs at the cached energy
	ElementXS []nuc.PhotonXS // per-element photon micro xs at the cached energy
	MacroXS   MacroXS        // macroscopic xs of the current material

	// depletion side channel; nil unless burnup bookkeeping is on
	DepletionRx [][]float64 // [global nuclide][reaction] rates in [1/cm]
	rxScratch   []float64   // scratch for one nuclide's micro reaction xs
}

// NewParticle returns a particle of the given kind with cross section caches
// sized to the library. Cache tags start invalid (negative energy).
func NewParticle(kind Kind, lib *nuc.Library) *Particle {
	o := &Particle{
		Kind:     kind,
		Wgt:      1,
		Material: -1,
	}
	o.NeutronXS = make([]nuc.MicroXS, lib.NumNuclides())
	o.ElementXS = make([]nuc.PhotonXS, lib.NumElements())
	o.InvalidateCaches()
	return o
}

// InvalidateCaches marks all cached micro cross sections stale
func (o *Particle) InvalidateCaches() {
	for i := range o.NeutronXS {
		o.NeutronXS[i].LastE = -1
	}
	for i := range o.ElementXS {
		o.ElementXS[i].LastE = -1
	}
}

// EnableDepletionRx allocates the depletion reaction-rate side channel
func (o *Particle) EnableDepletionRx() {
	if o.DepletionRx != nil {
		return
	}
	o.DepletionRx = make([][]float64, len(o.NeutronXS))
	for i := range o.DepletionRx {
		o.DepletionRx[i] = make([]float64, nuc.NumDepletionRx)
	}
	o.rxScratch = make([]float64, nuc.NumDepletionRx)
}

// RxScratch returns the per-nuclide scratch of the depletion side channel
func (o *Particle) RxScratch() []float64 { return o.rxScratch }

// ResetDepletionRx zeroes the accumulated depletion reaction rates; called
// between batches
func (o *Particle) ResetDepletionRx() {
	for _, rx := range o.DepletionRx {
		la.Vector(rx).Fill(0)
	}
}
