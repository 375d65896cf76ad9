// Copyright 2016 The OpenMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mat

import (
	"math"

	"github.com/ivanradanov/openmc/nuc"
)

// default iteration controls of the stopping-power root finds
const (
	StopowTol     = 1e-6
	StopowMaxIter = 100
)

const twoThirds = 2.0 / 3.0

// SternheimerAdjustment computes the adjustment factor ρ of Sternheimer's
// oscillator model: the factor scaling the binding energies so that the
// model reproduces the material's mean excitation energy,
//
//	Σ_j f_j・ln√(ρ²e_b_j² + ⅔f_j・e_p²) + n_c・ln√(n_c・e_p²) = ln I
//
// f are the oscillator strengths, eBSq the binding energies squared [eV²],
// ePSq the plasma energy squared [eV²], nConduction the conduction electron
// strength and logI the log of the mean excitation energy [eV]. Newton
// iteration; if convergence within tol is not reached in maxIter steps the
// last iterate is returned with converged=false, which degrades the
// stopping-power correction gracefully instead of aborting transport.
func SternheimerAdjustment(f, eBSq []float64, ePSq, nConduction, logI, tol float64, maxIter int) (rho float64, converged bool) {
	rho = 2.0
	for it := 0; it < maxIter; it++ {
		g := -logI
		gp := 0.0
		for j := range f {
			eSq := rho*rho*eBSq[j] + twoThirds*f[j]*ePSq
			g += 0.5 * f[j] * math.Log(eSq)
			gp += f[j] * rho * eBSq[j] / eSq
		}
		if nConduction > 0 {
			g += 0.5 * nConduction * math.Log(nConduction*ePSq)
		}
		step := g / gp
		rho -= step
		if rho <= 0 {
			// halve the step instead of leaving the physical domain
			rho += 0.5 * step
		}
		if math.Abs(step) < tol {
			return rho, true
		}
	}
	return rho, false
}

// DensityEffect computes the density-effect correction δ to the collision
// stopping power at kinetic energy E [eV], solving Sternheimer's equation
//
//	Σ_j f_j/(ℓ_j² + L) + n_c/(n_c + L) = 1/(β²γ²)
//
// for L ≥ 0, with reduced oscillator levels ℓ_j² = (ρ²e_b_j² + ⅔f_j・e_p²)/e_p²,
// and then
//
//	δ = Σ_j f_j・ln(1 + L/ℓ_j²) + n_c・ln(1 + L/n_c) − L/γ²
//
// δ is zero below the threshold where the equation has no non-negative
// solution, and monotonically non-decreasing in E. Non-convergence returns
// the δ of the last iterate with converged=false.
func DensityEffect(f, eBSq []float64, ePSq, nConduction, rho, E, tol float64, maxIter int) (delta float64, converged bool) {
	gamma := 1 + E/nuc.MassElectronEV
	gammaSq := gamma * gamma
	betaGammaSq := gammaSq - 1
	target := 1 / betaGammaSq

	// reduced oscillator levels
	lSq := make([]float64, len(f))
	for j := range f {
		lSq[j] = (rho*rho*eBSq[j] + twoThirds*f[j]*ePSq) / ePSq
	}

	// below threshold the medium cannot screen: δ = 0. With conduction
	// electrons the left side diverges at L→0 only through the n_c term,
	// which contributes exactly 1 at L=0.
	h0 := 0.0
	for j := range f {
		h0 += f[j] / lSq[j]
	}
	if nConduction > 0 {
		h0 += 1
	}
	if h0 <= target {
		return 0, true
	}

	// Newton iteration for L
	L := betaGammaSq
	for it := 0; it < maxIter; it++ {
		g := -target
		gp := 0.0
		for j := range f {
			d := lSq[j] + L
			g += f[j] / d
			gp -= f[j] / (d * d)
		}
		if nConduction > 0 {
			d := nConduction + L
			g += nConduction / d
			gp -= nConduction / (d * d)
		}
		step := g / gp
		L -= step
		if L < 0 {
			L = 0
		}
		if math.Abs(step) < tol*(1+L) {
			converged = true
			break
		}
	}

	for j := range f {
		delta += f[j] * math.Log(1+L/lSq[j])
	}
	if nConduction > 0 {
		delta += nConduction * math.Log(1+L/nConduction)
	}
	delta -= L / gammaSq
	return delta, converged
}

// collisionStoppingPower evaluates the Bethe collision stopping power
// [eV/cm] over the bremsstrahlung energy grid, density-effect correction
// included. positron selects the positron form of the shell term.
func (o *Material) collisionStoppingPower(sCol []float64, positron bool) {
	t := o.ttb
	coef := 2 * math.Pi * nuc.RadiusElectron * nuc.RadiusElectron * nuc.MassElectronEV * t.ne
	for i, E := range t.Egrid {
		tau := E / nuc.MassElectronEV
		gammaSq := (tau + 1) * (tau + 1)
		betaSq := 1 - 1/gammaSq

		delta, ok := DensityEffect(t.f, t.eBSq, t.ePSq, t.nConduction, t.rho, E, StopowTol, StopowMaxIter)
		if !ok {
			t.nonConverged++
		}

		var shell float64
		if positron {
			d := tau + 2
			shell = 2*math.Ln2 - betaSq/12*(23+14/d+10/(d*d)+4/(d*d*d))
		} else {
			d := tau + 1
			shell = 1 - betaSq + (tau*tau/8-(2*tau+1)*math.Ln2)/(d*d)
		}

		lnTerm := math.Log(tau*tau*(tau+2)/2) - 2*(t.logI-math.Log(nuc.MassElectronEV))
		sCol[i] = coef / betaSq * (lnTerm + shell - delta)
	}
}
