// Copyright 2016 The OpenMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mat

import (
	"github.com/ivanradanov/openmc/par"
)

// CalcXS computes the macroscopic cross sections of this material for the
// particle's current state, dispatching on the particle kind. The kind set
// is closed, so dispatch is a plain switch. Runs inside the transport inner
// loop: it must stay allocation-free and lock-free, reading only frozen
// registry data and the particle's own caches.
func (o *Material) CalcXS(p *par.Particle, needDepletionRx bool) {
	switch p.Kind {
	case par.Neutron:
		o.calcNeutronXS(p, needDepletionRx)
	case par.Photon:
		o.calcPhotonXS(p)
	default:
		// charged particles lose energy continuously; no collision xs
		p.MacroXS = par.MacroXS{}
	}
}

// calcNeutronXS sums microscopic neutron cross sections weighted by atom
// density over the constituents, in nuclide-list order (deterministic per
// material regardless of thread count). A bound thermal scattering table
// overrides the standard elastic evaluation for its nuclide only; two
// nuclides of the same material may be in different thermal regimes at once.
func (o *Material) calcNeutronXS(p *par.Particle, needDepletionRx bool) {
	m := &p.MacroXS
	*m = par.MacroXS{}
	nucs := o.reg.nuclide[o.index]
	dens := o.reg.atomDensity[o.index]
	tts := o.reg.thermalTables[o.index]
	for i, inuc := range nucs {

		// microscopic xs, reusing the particle's cache when the state matches
		micro := &p.NeutronXS[inuc]
		if micro.LastE != p.E || micro.LastSqrtkT != p.SqrtkT {
			*micro = o.reg.Neutron.CalcMicroXS(inuc, p.E, p.SqrtkT)
		}

		// bound thermal override for this nuclide
		elastic := micro.Elastic
		if o.reg.Thermal != nil {
			for _, tt := range tts {
				if tt.Slot != i || !o.reg.Thermal.ThermalApplies(tt.Table, p.E, p.SqrtkT) {
					continue
				}
				bound := o.reg.Thermal.CalcThermalXS(tt.Table, p.E, p.SqrtkT)
				elastic += tt.Fraction * (bound - micro.Elastic)
			}
		}

		ad := dens[i]
		m.Total += ad * (micro.Total + elastic - micro.Elastic)
		m.Scatter += ad * elastic
		m.Absorption += ad * micro.Absorption
		m.Fission += ad * micro.Fission
		m.NuFission += ad * micro.NuFission

		// depletion side channel; an additional accumulation, not an
		// alternative total
		if needDepletionRx && o.reg.Depletion != nil && p.DepletionRx != nil {
			rx := p.RxScratch()
			o.reg.Depletion.CalcDepletionRx(inuc, p.E, rx)
			acc := p.DepletionRx[inuc]
			for k, v := range rx {
				acc[k] += ad * v
			}
		}
	}
}

// calcPhotonXS sums microscopic photon cross sections weighted by atom
// density. Photon data is indexed by atomic number, so the sum runs over the
// element of each constituent.
func (o *Material) calcPhotonXS(p *par.Particle) {
	m := &p.MacroXS
	*m = par.MacroXS{}
	elems := o.reg.element[o.index]
	dens := o.reg.atomDensity[o.index]
	for i, ielem := range elems {
		micro := &p.ElementXS[ielem]
		if micro.LastE != p.E {
			*micro = o.reg.Photon.CalcPhotonXS(ielem, p.E)
		}
		ad := dens[i]
		m.Total += ad * micro.Total
		m.Photoelectric += ad * micro.Photoelectric
		m.Incoherent += ad * micro.Incoherent
		m.Coherent += ad * micro.Coherent
		m.PairProduction += ad * micro.PairProduction
	}
}
