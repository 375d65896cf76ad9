// Copyright 2016 The OpenMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mem

import (
	"sync"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_sharr01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sharr01. serial append and overflow")

	a := NewSharedArray[float64](4)
	chk.IntAssert(int(a.Size()), 0)
	chk.IntAssert(int(a.Capacity()), 4)

	// appends within capacity return consecutive indices
	for i := 0; i < 4; i++ {
		idx := a.ThreadSafeAppend(float64(10 * i))
		chk.IntAssert(int(idx), i)
	}
	chk.IntAssert(int(a.Size()), 4)

	// appends beyond capacity fail softly and clamp the size
	for k := 0; k < 3; k++ {
		idx := a.ThreadSafeAppend(999)
		chk.IntAssert(int(idx), -1)
		chk.IntAssert(int(a.Size()), 4)
	}

	// stored values are intact
	for i := 0; i < 4; i++ {
		chk.Float64(tst, "a[i]", 1e-17, a.At(int64(i)), float64(10*i))
	}
}

func Test_sharr02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sharr02. concurrent appends below capacity")

	nthreads := 8
	nperthread := 250
	n := nthreads * nperthread
	a := NewSharedArray[int](int64(n))

	// each goroutine appends its own sentinel values
	indices := make([][]int64, nthreads)
	var wg sync.WaitGroup
	for t := 0; t < nthreads; t++ {
		wg.Add(1)
		go func(t int) {
			defer wg.Done()
			indices[t] = make([]int64, nperthread)
			for i := 0; i < nperthread; i++ {
				indices[t][i] = a.ThreadSafeAppend(t*nperthread + i)
			}
		}(t)
	}
	wg.Wait()

	// size equals the number of appends
	chk.IntAssert(int(a.Size()), n)

	// all returned indices are distinct and within [0,n)
	seen := make([]bool, n)
	for t := 0; t < nthreads; t++ {
		for _, idx := range indices[t] {
			if idx < 0 || idx >= int64(n) {
				tst.Errorf("index %d out of range\n", idx)
				return
			}
			if seen[idx] {
				tst.Errorf("index %d handed to two appenders\n", idx)
				return
			}
			seen[idx] = true
		}
	}

	// every value written by the owner of its slot
	for t := 0; t < nthreads; t++ {
		for i := 0; i < nperthread; i++ {
			chk.IntAssert(a.At(indices[t][i]), t*nperthread+i)
		}
	}
}

func Test_sharr03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sharr03. concurrent overflow: capacity 4, six appenders")

	a := NewSharedArray[int](4)
	res := make([]int64, 6)
	var wg sync.WaitGroup
	for t := 0; t < 6; t++ {
		wg.Add(1)
		go func(t int) {
			defer wg.Done()
			res[t] = a.ThreadSafeAppend(100 + t)
		}(t)
	}
	wg.Wait()

	// exactly 4 succeed with indices {0,1,2,3}, 2 fail
	chk.IntAssert(int(a.Size()), 4)
	nfull := 0
	got := make([]bool, 4)
	for t := 0; t < 6; t++ {
		if res[t] < 0 {
			nfull++
			continue
		}
		if got[res[t]] {
			tst.Errorf("index %d assigned twice\n", res[t])
			return
		}
		got[res[t]] = true
	}
	chk.IntAssert(nfull, 2)
	for i := 0; i < 4; i++ {
		if !got[i] {
			tst.Errorf("index %d never assigned\n", i)
			return
		}
	}

	// successful slots hold sentinel values from distinct appenders
	vals := make(map[int]bool)
	for i := int64(0); i < 4; i++ {
		v := a.At(i)
		if v < 100 || v > 105 || vals[v] {
			tst.Errorf("slot %d holds corrupt value %d\n", i, v)
			return
		}
		vals[v] = true
	}
}

func Test_sharr04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sharr04. clear and reserve restore a fresh buffer")

	a := NewSharedArray[int](3)
	a.ThreadSafeAppend(1)
	a.ThreadSafeAppend(2)

	// clear is idempotent
	a.Clear()
	a.Clear()
	chk.IntAssert(int(a.Size()), 0)
	chk.IntAssert(int(a.Capacity()), 0)

	// reserve brings back a state indistinguishable from a fresh buffer
	a.Reserve(3)
	chk.IntAssert(int(a.Size()), 0)
	chk.IntAssert(int(a.Capacity()), 3)
	for i := 0; i < 3; i++ {
		chk.IntAssert(int(a.ThreadSafeAppend(i)), i)
	}
	chk.IntAssert(int(a.ThreadSafeAppend(9)), -1)
}

func Test_sharr05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sharr05. bulk write with administrative resize")

	a := NewSharedArray[float64](10)
	for i := int64(0); i < 6; i++ {
		a.Set(i, float64(i)*1.5)
	}
	a.Resize(6)
	chk.IntAssert(int(a.Size()), 6)
	d := a.Data()
	chk.IntAssert(len(d), 6)
	for i := 0; i < 6; i++ {
		chk.Float64(tst, "d[i]", 1e-17, d[i], float64(i)*1.5)
	}

	// atomic appends continue after the declared prefix
	chk.IntAssert(int(a.ThreadSafeAppend(99)), 6)
}
