// Copyright 2016 The OpenMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/ivanradanov/openmc/inp"
	"github.com/ivanradanov/openmc/nuc"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v", err)
			io.Pf("See location of error below:\n")
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".mat", true)
	verbose := io.ArgToBool(1, true)

	// message
	if verbose {
		io.PfWhite("\nOpenMC Materials -- Monte Carlo particle transport core\n")
		io.Pf("Copyright 2016 The OpenMC Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")

		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
		))
	}

	// materials database
	lib, dat := nuc.StandardLibrary()
	dir, fn := filepath.Split(fnamepath)
	reg, err := inp.ReadMat(dir, fn, lib, dat)
	if err != nil {
		chk.Panic("cannot build materials:\n%v", err)
	}

	// summary
	if verbose {
		io.Pf("\n%d materials:\n", reg.NumMaterials())
		for _, m := range reg.Materials() {
			io.Pf("\n%4d %-20s ρ = %.6f atom/b-cm = %.6f g/cm³\n", m.ID(), m.Name(), m.Density(), m.DensityGpcc())
			for i, inuc := range m.Nuclides() {
				io.Pf("     %-8s %.6e atom/b-cm\n", lib.Nuclides[inuc].Name, m.Densities()[i])
			}
			for _, tt := range m.ThermalTables() {
				io.Pf("     thermal %s on %s (fraction %g)\n", lib.Thermal[tt.Table].Name, lib.Nuclides[m.Nuclides()[tt.Slot]].Name, tt.Fraction)
			}
			if t := m.Ttb(); t != nil {
				n := len(t.Egrid)
				io.Pf("     stopping power: %d points in [%g, %g] eV\n", n, t.Egrid[0], t.Egrid[n-1])
			}
		}
	}
}
