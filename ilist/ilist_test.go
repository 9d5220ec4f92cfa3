// Copyright 2026 The Turn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package ilist

import "testing"

func TestLitRoundTrip(t *testing.T) {
	for i := uint32(0); i < 100; i++ {
		for _, neg := range []bool{false, true} {
			l := MakeLit(i, neg)
			if l.IsConst() {
				t.Fatalf("encode(%d,%v) decodes as constant", i, neg)
			}
			if l.Index() != i {
				t.Errorf("index round trip %d", i)
			}
			if l.IsNeg() != neg {
				t.Errorf("polarity round trip %d", i)
			}
		}
	}
}

func TestConstLits(t *testing.T) {
	if !False.IsConst() || !True.IsConst() {
		t.Errorf("constants not constant")
	}
	if False.Not() != True || True.Not() != False {
		t.Errorf("constant complement")
	}
	if MakeLit(0, false) != 2 {
		t.Errorf("input 0 must encode as literal 2")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("Index on constant must panic")
		}
	}()
	_ = False.Index()
}

func TestGateLits(t *testing.T) {
	l := New(3)
	g0 := l.AddMaj(MakeLit(0, false), MakeLit(1, false), False)
	g1 := l.AddMaj(g0, MakeLit(2, true), True)
	if g0 != MakeLit(3, false) {
		t.Errorf("first gate literal %d", g0)
	}
	if g1 != MakeLit(4, false) {
		t.Errorf("second gate literal %d", g1)
	}
	if g0.IsNeg() || g1.IsNeg() {
		t.Errorf("gate result literals must be even")
	}
	l.AddOut(g1.Not())
	if l.NumIns() != 3 || l.NumGates() != 2 || l.NumOuts() != 1 {
		t.Errorf("counts")
	}
	if l.Outs()[0] != g1.Not() {
		t.Errorf("output literal")
	}
}
