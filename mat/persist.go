// Copyright 2016 The OpenMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mat

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Snapshot is the persistent form of one material's full row: identity,
// composition and densities. This core only produces the data; the on-disk
// layout belongs to the persistence collaborator.
type Snapshot struct {
	Id          int       // unique id
	Name        string    // name of material
	Nuclides    []string  // constituent nuclide names
	Densities   []float64 // atom densities in [atom/b-cm]
	Isotropic   []bool    // iso-in-lab scattering flags
	Density     float64   // total atom density in [atom/b-cm]
	DensityGpcc float64   // total mass density in [g/cm³]
	Volume      float64   // volume in [cm³]; -1 unknown
	Temperature float64   // default temperature in [K]; negative unspecified
	Fissionable bool      // contains fissionable nuclides
	Depletable  bool      // tracked for burnup
}

// ToPersistentForm builds the serialized snapshot of the material
func (o *Material) ToPersistentForm() *Snapshot {
	nucs := o.Nuclides()
	s := &Snapshot{
		Id:          o.id,
		Name:        o.name,
		Nuclides:    make([]string, len(nucs)),
		Densities:   make([]float64, len(nucs)),
		Isotropic:   make([]bool, len(nucs)),
		Density:     o.density,
		DensityGpcc: o.densityGpcc,
		Volume:      o.volume,
		Temperature: o.temperature,
		Fissionable: o.fissionable,
		Depletable:  o.depletable,
	}
	copy(s.Densities, o.Densities())
	copy(s.Isotropic, o.Isotropic())
	for i, inuc := range nucs {
		s.Nuclides[i] = o.reg.Lib.Nuclides[inuc].Name
	}
	return s
}

// Encode writes the material snapshot to the encoder
func (o *Material) Encode(enc utl.Encoder) error {
	return enc.Encode(o.ToPersistentForm())
}

// Decode reads a snapshot from the decoder and restores the material's
// composition and scalars. The material must already be registered; the
// caller re-runs Finalize afterwards.
func (o *Material) Decode(dec utl.Decoder) error {
	var s Snapshot
	if err := dec.Decode(&s); err != nil {
		return chk.Err("material: cannot decode snapshot: %v", err)
	}
	if s.Id != o.id {
		return chk.Err("material %d: snapshot belongs to material %d", o.id, s.Id)
	}
	o.name = s.Name
	o.volume = s.Volume
	o.temperature = s.Temperature
	o.depletable = s.Depletable
	if err := o.SetDensities(s.Nuclides, s.Densities); err != nil {
		return err
	}
	copy(o.reg.p0[o.index], s.Isotropic)
	o.density = s.Density
	o.densityGpcc = s.DensityGpcc
	return nil
}
