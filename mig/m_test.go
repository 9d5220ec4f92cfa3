// Copyright 2026 The Turn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package mig_test

import (
	"math/rand"
	"testing"

	"github.com/go-air/turn/ilist"
	"github.com/go-air/turn/mig"
	"github.com/go-air/turn/ntk"
)

func TestMajSimp(t *testing.T) {
	m := mig.New()
	a, b := m.NewIn(), m.NewIn()
	if m.Maj(a, a, b) != a {
		t.Errorf("xx simp")
	}
	if m.Maj(a, a.Not(), b) != b {
		t.Errorf("x!x simp")
	}
	if m.And(a, m.T) != a {
		t.Errorf("and true simp")
	}
	if m.And(a, m.F) != m.F {
		t.Errorf("and false simp")
	}
	if m.Or(a, m.F) != a {
		t.Errorf("or false simp")
	}
	if m.Or(a, m.T) != m.T {
		t.Errorf("or true simp")
	}
	if m.And(a, a.Not()) != m.F {
		t.Errorf("contradiction simp")
	}
}

func TestStrash(t *testing.T) {
	m := mig.New()
	a, b, c := m.NewIn(), m.NewIn(), m.NewIn()
	g1 := m.Maj(a, b, c)
	g2 := m.Maj(c, a, b)
	g3 := m.Maj(b.Not(), a, c)
	if g1 != g2 {
		t.Errorf("strash miss on permuted operands")
	}
	if g1 == g3 {
		t.Errorf("strash hit on different gate")
	}
}

func TestGrowStrash(t *testing.T) {
	m := mig.NewCap(4)
	N := 500
	ins := make([]ntk.Sig, 0, N)
	for i := 0; i < N; i++ {
		ins = append(ins, m.NewIn())
	}
	gs := make([]ntk.Sig, N/2)
	for i := 0; i < N/2; i++ {
		j := N - 1 - i
		gs[i] = m.Maj(ins[i], ins[j], m.F)
	}
	for i := 0; i < N/2; i++ {
		j := N - 1 - i
		if m.Maj(ins[i], ins[j], m.F) != gs[i] {
			t.Errorf("invalid strash after grow")
		}
	}
}

var rnd = rand.New(rand.NewSource(1))

func TestEval64(t *testing.T) {
	m := mig.New()
	a, b, c := m.NewIn(), m.NewIn(), m.NewIn()
	g := m.Maj(a, b, c)
	h := m.And(g, c.Not())
	m.AddOut(h)
	vs := make([]uint64, m.Len())
	for _, in := range m.Ins() {
		vs[in] = uint64(rnd.Int63())
	}
	m.Eval64(vs)
	av, bv, cv := vs[a.Node()], vs[b.Node()], vs[c.Node()]
	maj := (av & bv) | (av & cv) | (bv & cv)
	want := maj &^ cv
	if m.OutVal64(vs, 0) != want {
		t.Errorf("eval64 mismatch")
	}
}

func TestMFFC(t *testing.T) {
	m := mig.New()
	a, b, c, d := m.NewIn(), m.NewIn(), m.NewIn(), m.NewIn()
	g1 := m.And(a, b)
	g2 := m.And(c, d)
	g3 := m.And(g1, g2)
	g4 := m.And(g2, d.Not()) // shares g2
	m.AddOut(g3)
	m.AddOut(g4)
	size, in := m.MFFC(g3.Node())
	if size != 2 {
		t.Errorf("mffc size %d, want 2", size)
	}
	if !in[g3.Node()] || !in[g1.Node()] {
		t.Errorf("mffc membership")
	}
	if in[g2.Node()] {
		t.Errorf("shared node in mffc")
	}
	// counts must be restored
	size2, _ := m.MFFC(g3.Node())
	if size2 != size {
		t.Errorf("mffc not idempotent")
	}
}

func TestSubstitute(t *testing.T) {
	m := mig.New()
	a, b := m.NewIn(), m.NewIn()
	i := m.And(b, a) // a&b via a redundant chain
	g := m.And(a, i)
	m.AddOut(g)
	direct := m.And(a, b)
	if direct != i {
		t.Fatalf("strash should fold a&b")
	}
	m.Substitute(g.Node(), i)
	if m.Out(0) != i {
		t.Errorf("output not redirected")
	}
	if !m.IsDead(g.Node()) {
		t.Errorf("substituted gate not dead")
	}
	if m.NumLiveGates() != 1 {
		t.Errorf("live gates %d, want 1", m.NumLiveGates())
	}
}

func TestSubstituteKeepsFunction(t *testing.T) {
	m := mig.New()
	a, b, c := m.NewIn(), m.NewIn(), m.NewIn()
	g1 := m.And(a, b)
	g2 := m.Or(g1, c)
	m.AddOut(g2)

	vs := make([]uint64, m.Len()+8)
	for _, in := range m.Ins() {
		vs[in] = uint64(rnd.Int63())
	}
	m.Eval64(vs)
	want := m.OutVal64(vs, 0)

	// a&b as !(!a | !b): same function, different structure
	alt := m.Or(a.Not(), b.Not()).Not()
	if alt.Node() == g1.Node() {
		t.Fatalf("expected structurally distinct gate")
	}
	m.Substitute(g1.Node(), alt)

	got := make([]uint64, m.Len()+8)
	copy(got, vs)
	m.Eval64(got)
	if m.OutVal64(got, 0) != want {
		t.Errorf("function changed by substitution")
	}
}

func TestInsert(t *testing.T) {
	m := mig.New()
	a, b := m.NewIn(), m.NewIn()
	l := ilist.New(2)
	g := l.AddMaj(ilist.MakeLit(0, false), ilist.MakeLit(1, false), ilist.False)
	l.AddOut(g.Not())
	outs := m.Insert(l, []ntk.Sig{a, b})
	if len(outs) != 1 {
		t.Fatalf("outs %d", len(outs))
	}
	if outs[0] != m.And(a, b).Not() {
		t.Errorf("insert built wrong gate")
	}
}

func TestInsertConstOut(t *testing.T) {
	m := mig.New()
	a := m.NewIn()
	l := ilist.New(1)
	l.AddOut(ilist.True)
	outs := m.Insert(l, []ntk.Sig{a})
	if outs[0] != m.T {
		t.Errorf("constant output")
	}
}
