// Copyright 2026 The Turn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"testing"
)

func TestRand(t *testing.T) {
	Seed(44)
	m := Rand(8, 64)
	if m.NumIns() != 8 {
		t.Errorf("got %d inputs, want 8", m.NumIns())
	}
	if m.NumOuts() == 0 {
		t.Errorf("no outputs")
	}
	if m.Len() > 1+8+64 {
		t.Errorf("too many nodes: %d", m.Len())
	}
}

func TestRandSeedRepeatable(t *testing.T) {
	Seed(7)
	a := Rand(6, 40)
	Seed(7)
	b := Rand(6, 40)
	if a.Len() != b.Len() || a.NumOuts() != b.NumOuts() {
		t.Errorf("seeded runs differ: %d/%d vs %d/%d", a.Len(), a.NumOuts(), b.Len(), b.NumOuts())
	}
}

func TestRandVals(t *testing.T) {
	Seed(3)
	vs := RandVals(16)
	if len(vs) != 16 {
		t.Errorf("got %d vals", len(vs))
	}
}
