// Copyright 2016 The OpenMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nuc

// MicroXS holds microscopic neutron cross sections of one nuclide at one
// energy, in [b]. LastE/LastSqrtkT tag the state the values were computed at
// so per-particle caches can be reused between collisions.
type MicroXS struct {

	// cross sections
	Total      float64 // total
	Elastic    float64 // elastic scattering
	Absorption float64 // absorption; i.e. disappearance
	Fission    float64 // fission
	NuFission  float64 // ν・fission; i.e. neutron production

	// cache tags
	LastE      float64 // energy in [eV] the values correspond to
	LastSqrtkT float64 // √kT in [√eV] the values correspond to
}

// PhotonXS holds microscopic photon cross sections of one element at one
// energy, in [b]. Photon data is indexed by atomic number, not isotope.
type PhotonXS struct {

	// cross sections
	Total          float64 // total
	Photoelectric  float64 // photoelectric absorption
	Incoherent     float64 // incoherent (Compton) scattering
	Coherent       float64 // coherent (Rayleigh) scattering
	PairProduction float64 // pair production

	// cache tag
	LastE float64 // energy in [eV] the values correspond to
}

// Depletion reaction channels tracked for burnup bookkeeping
const (
	RxNGamma  = iota // (n,γ) radiative capture
	RxN2N            // (n,2n)
	RxFission        // fission
	NumDepletionRx
)

// NeutronSource computes microscopic neutron cross sections.
// Implementations must be safe for concurrent readers: CalcMicroXS is invoked
// from many particle histories at once during the transport phase.
type NeutronSource interface {
	CalcMicroXS(inuc int, E, sqrtkT float64) MicroXS // micro xs of nuclide inuc at energy E [eV]
}

// PhotonSource computes microscopic photon cross sections per element
type PhotonSource interface {
	CalcPhotonXS(ielem int, E float64) PhotonXS // photon xs of element ielem at energy E [eV]
}

// ThermalSource answers thermal scattering queries for bound tables
type ThermalSource interface {
	ThermalApplies(itable int, E, sqrtkT float64) bool       // does table itable apply at this state?
	CalcThermalXS(itable int, E, sqrtkT float64) float64     // bound elastic xs in [b]
}

// DepletionSource computes reaction rates tracked for burnup bookkeeping.
// CalcDepletionRx fills rx (length NumDepletionRx) with microscopic reaction
// cross sections of nuclide inuc at energy E.
type DepletionSource interface {
	CalcDepletionRx(inuc int, E float64, rx []float64)
}
