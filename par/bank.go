// Copyright 2016 The OpenMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package par

import (
	"github.com/go-hep/fmom"

	"github.com/ivanradanov/openmc/mem"
)

// SourceSite is one banked source particle; e.g. a fission site recorded
// during a neutron history for the next generation
type SourceSite struct {
	Position     fmom.Vec3 // position in [cm]
	Direction    fmom.Vec3 // direction of flight (unit vector)
	E            float64   // energy in [eV]
	Wgt          float64   // statistical weight
	Kind         Kind      // kind of particle
	DelayedGroup int       // delayed neutron precursor group; 0 for prompt
	ParentID     int64     // id of the history that banked this site
	ProgenyID    int64     // ordinal of this site among the parent's progeny
}

// NewFissionBank returns the shared array used to bank fission sites from
// concurrent histories. A full bank is a soft condition: ThreadSafeAppend
// returns -1 and the site is dropped, which is preferable to aborting a
// long-running batch.
func NewFissionBank(capacity int64) *mem.SharedArray[SourceSite] {
	return mem.NewSharedArray[SourceSite](capacity)
}
