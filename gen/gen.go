// Copyright 2026 The Turn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package gen generates random majority networks for testing and
// benchmarking.
package gen

import (
	"math/rand"
	"sync"

	"github.com/go-air/turn/mig"
	"github.com/go-air/turn/ntk"
)

/// make the rng seedable
var rng = rand.New(rand.NewSource(33))
var mu sync.Mutex

func Seed(s int64) {
	mu.Lock()
	defer mu.Unlock()
	rng = rand.New(rand.NewSource(s))
}

// Rand generates a random majority network with nIns inputs and at
// most nGates gates.  Gate operands are drawn from the inputs and
// previously created gates with random polarity, so strash hits and
// simplifications can make the result smaller than nGates.  Every
// gate with no fanout becomes an output.
func Rand(nIns, nGates int) *mig.M {
	mu.Lock()
	defer mu.Unlock()
	m := mig.NewCap(nIns + nGates)
	sigs := make([]ntk.Sig, 0, nIns+nGates)
	for i := 0; i < nIns; i++ {
		sigs = append(sigs, m.NewIn())
	}
	for i := 0; i < nGates; i++ {
		a := randSig(sigs)
		b := randSig(sigs)
		c := randSig(sigs)
		g := m.Maj(a, b, c)
		if !m.IsMaj(g.Node()) {
			continue
		}
		sigs = append(sigs, g)
	}
	for _, s := range sigs[nIns:] {
		if m.NRef(s.Node()) == 0 {
			m.AddOut(s)
		}
	}
	if m.NumOuts() == 0 && len(sigs) > 0 {
		m.AddOut(sigs[len(sigs)-1])
	}
	return m
}

// RandVals generates n random 64-bit simulation words.
func RandVals(n int) []uint64 {
	mu.Lock()
	defer mu.Unlock()
	vs := make([]uint64, n)
	for i := range vs {
		vs[i] = rng.Uint64()
	}
	return vs
}

func randSig(sigs []ntk.Sig) ntk.Sig {
	s := sigs[rng.Intn(len(sigs))]
	if rng.Intn(2) == 1 {
		s = s.Not()
	}
	return s
}
