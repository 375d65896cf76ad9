// Copyright 2016 The OpenMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the reading of material definitions from input files
package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"

	"github.com/ivanradanov/openmc/mat"
	"github.com/ivanradanov/openmc/nuc"
)

// DensitySpec holds a density value with units
type DensitySpec struct {
	Value float64 `json:"value"` // density value
	Units string  `json:"units"` // units; e.g. "g/cm3", "atom/b-cm", "sum"
}

// NuclideSpec holds one constituent nuclide with either an atom or a weight
// fraction (exactly one of the two)
type NuclideSpec struct {
	Name string  `json:"name"` // name of nuclide; e.g. "U235"
	Ao   float64 `json:"ao"`   // atom fraction or atom density
	Wo   float64 `json:"wo"`   // weight fraction
}

// ThermalSpec assigns a bound thermal scattering table to the material
type ThermalSpec struct {
	Table    string  `json:"table"`    // name of table; e.g. "c_H_in_H2O"
	Fraction float64 `json:"fraction"` // how often to use the table
}

// MatData holds one material definition as parsed from the input file
type MatData struct {
	Id          int           `json:"id"`          // unique id; -1 or 0 means auto-assign
	Name        string        `json:"name"`        // name of material
	Density     DensitySpec   `json:"density"`     // total density specification
	Nuclides    []NuclideSpec `json:"nuclides"`    // constituents
	Thermal     []ThermalSpec `json:"thermal"`     // thermal scattering assignments
	Temperature float64       `json:"temperature"` // default temperature in [K]; 0 means unspecified
	Volume      float64       `json:"volume"`      // volume in [cm³]; 0 means unknown
	Depletable  bool          `json:"depletable"`  // tracked for burnup
	Isotropic   []string      `json:"isotropic"`   // nuclides with iso-in-lab scattering
	Options     dbf.Params    `json:"options"`     // extra model parameters
}

// MatsData holds all material definitions
type MatsData []*MatData

// MatDb implements the materials database of one input file
type MatDb struct {
	Materials MatsData `json:"materials"` // all materials
}

// ReadMat reads all material definitions from a .mat JSON file and builds
// the finalized registry. Any malformed definition aborts the whole read:
// a material that cannot be constructed must not participate in transport.
func ReadMat(dir, fn string, lib *nuc.Library, neutron nuc.NeutronSource) (reg *mat.Registry, err error) {

	// read file
	fnpath := filepath.Join(dir, fn)
	if !io.FnExist(fnpath) {
		return nil, chk.Err("cannot find materials file %q", fnpath)
	}
	b := io.ReadFile(fnpath)

	// decode
	var mdb MatDb
	err = json.Unmarshal(b, &mdb)
	if err != nil {
		return nil, chk.Err("cannot decode materials file %q: %v", fn, err)
	}

	// registry; a data source implementing the optional collaborator
	// interfaces activates the corresponding physics
	reg, err = mat.NewRegistry(lib, neutron)
	if err != nil {
		return nil, err
	}
	if p, ok := neutron.(nuc.PhotonSource); ok {
		reg.Photon = p
	}
	if t, ok := neutron.(nuc.ThermalSource); ok {
		reg.Thermal = t
	}
	if d, ok := neutron.(nuc.DepletionSource); ok {
		reg.Depletion = d
	}
	err = Build(reg, mdb.Materials)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// Build constructs and finalizes one material per definition into reg
func Build(reg *mat.Registry, defs MatsData) (err error) {
	for _, d := range defs {
		id := d.Id
		if id == 0 {
			id = -1 // auto-assign
		}
		m, err := reg.NewMaterial(id, d.Name)
		if err != nil {
			return err
		}
		if d.Density.Units != "" {
			if err = m.SetDensity(d.Density.Value, d.Density.Units); err != nil {
				return err
			}
		}
		if d.Temperature > 0 {
			m.SetTemperature(d.Temperature)
		}
		if d.Volume > 0 {
			m.SetVolume(d.Volume)
		}
		m.SetDepletable(d.Depletable)
		m.Options = d.Options
		for _, n := range d.Nuclides {
			switch {
			case n.Ao != 0 && n.Wo != 0:
				return chk.Err("material %q: nuclide %q has both atom and weight fractions", d.Name, n.Name)
			case n.Ao != 0:
				err = m.AddNuclide(n.Name, n.Ao)
			case n.Wo != 0:
				err = m.AddNuclide(n.Name, -n.Wo)
			default:
				err = chk.Err("material %q: nuclide %q has neither atom nor weight fraction", d.Name, n.Name)
			}
			if err != nil {
				return err
			}
		}
		for _, t := range d.Thermal {
			if err = m.AssignThermalTable(t.Table, t.Fraction); err != nil {
				return err
			}
		}
		if len(d.Isotropic) > 0 {
			if err = m.SetIsotropic(d.Isotropic); err != nil {
				return err
			}
		}
		if err = m.Finalize(); err != nil {
			return err
		}
	}
	return nil
}

// String prints one material definition
func (o *MatData) String() string {
	l := io.Sf("    {\n      \"id\"      : %d,\n      \"name\"    : %q,\n      \"density\" : {\"value\":%g, \"units\":%q},\n      \"nuclides\" : [", o.Id, o.Name, o.Density.Value, o.Density.Units)
	for i, n := range o.Nuclides {
		if i > 0 {
			l += ", "
		}
		if n.Wo != 0 {
			l += io.Sf("{\"name\":%q, \"wo\":%g}", n.Name, n.Wo)
		} else {
			l += io.Sf("{\"name\":%q, \"ao\":%g}", n.Name, n.Ao)
		}
	}
	l += "]\n    }"
	return l
}

// String prints all material definitions
func (o MatsData) String() string {
	l := "  \"materials\" : [\n"
	for i, m := range o {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("%v", m)
	}
	l += "\n  ]"
	return l
}

// String outputs the database
func (o MatDb) String() string {
	return io.Sf("{\n%v\n}", o.Materials)
}
