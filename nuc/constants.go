// Copyright 2016 The OpenMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package nuc implements nuclide, element and thermal scattering data collaborators
package nuc

// physical constants
const (

	// NAvogadro is Avogadro's number in [1e24/mol]; with atom densities in
	// [atom/b-cm] and atomic masses in [g/mol], mass density in [g/cm³] is
	// Σ n_i・M_i ÷ NAvogadro
	NAvogadro = 0.602214076

	// MassNeutron is the mass of the neutron in [amu]
	MassNeutron = 1.00866491588

	// MassElectronEV is the electron rest mass energy in [eV]
	MassElectronEV = 0.51099895e6

	// RadiusElectron is the classical electron radius in [cm]
	RadiusElectron = 2.8179403262e-13

	// PlasmaCoef is the coefficient of the plasma energy formula in [eV];
	// E_p = PlasmaCoef・√(ρ・Σ w_i Z_i/A_i) with ρ in [g/cm³]
	PlasmaCoef = 28.8159

	// BoltzmannEV is Boltzmann's constant in [eV/K]
	BoltzmannEV = 8.617333262e-5
)

// ZFissionable is the smallest atomic number treated as fissionable
const ZFissionable = 90
