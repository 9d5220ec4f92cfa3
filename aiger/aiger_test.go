// Copyright 2026 The Turn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package aiger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-air/turn/mig"
	"github.com/go-air/turn/ntk"
)

func evalOuts(m *mig.M, ins []ntk.Node, vals []uint64) []uint64 {
	vs := make([]uint64, m.Len())
	for i, in := range ins {
		vs[in] = vals[i]
	}
	m.Eval64(vs)
	res := make([]uint64, m.NumOuts())
	for i := range res {
		res[i] = m.OutVal64(vs, i)
	}
	return res
}

func TestReadBasic(t *testing.T) {
	src := "aag 3 2 0 1 1\n2\n4\n6\n6 2 4\ni0 x\no0 y\n"
	a, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	m := a.Mig()
	if m.NumIns() != 2 {
		t.Errorf("got %d inputs", m.NumIns())
	}
	if m.NumOuts() != 1 {
		t.Errorf("got %d outputs", m.NumOuts())
	}
	if m.NumLiveGates() != 1 {
		t.Errorf("got %d gates", m.NumLiveGates())
	}
	if nm, ok := a.InputName(0); !ok || nm != "x" {
		t.Errorf("input name %q %t", nm, ok)
	}
	if nm, ok := a.OutputName(0); !ok || nm != "y" {
		t.Errorf("output name %q %t", nm, ok)
	}
	// 6 = 2 & 4
	vals := []uint64{0b1100, 0b1010}
	outs := evalOuts(m, m.Ins(), vals)
	if outs[0]&0xf != 0b1000 {
		t.Errorf("got out %b", outs[0]&0xf)
	}
}

func TestReadNegatedOutput(t *testing.T) {
	src := "aag 1 1 0 1 0\n2\n3\n"
	a, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	m := a.Mig()
	outs := evalOuts(m, m.Ins(), []uint64{0b10})
	if outs[0]&0b11 != 0b01 {
		t.Errorf("got out %b", outs[0]&0b11)
	}
}

func TestReadLatches(t *testing.T) {
	_, err := Read(strings.NewReader("aag 2 1 1 0 0\n2\n4 2\n"))
	if !errors.Is(err, HasLatches) {
		t.Errorf("got %v", err)
	}
}

func TestReadUndefined(t *testing.T) {
	_, err := Read(strings.NewReader("aag 3 1 0 1 1\n2\n6\n6 2 4\n"))
	if !errors.Is(err, UndefinedLit) {
		t.Errorf("got %v", err)
	}
}

func TestReadBadHeader(t *testing.T) {
	_, err := Read(strings.NewReader("aig 1 1 0 0 0\n"))
	if !errors.Is(err, BadHeader) {
		t.Errorf("got %v", err)
	}
}

func TestWriteAndShortcut(t *testing.T) {
	m := mig.New()
	a, b := m.NewIn(), m.NewIn()
	m.AddOut(m.And(a, b))
	var buf bytes.Buffer
	if err := MakeFor(m).Write(&buf); err != nil {
		t.Fatal(err)
	}
	want := "aag 3 2 0 1 1\n2\n4\n6\n6 2 4\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteOrShortcut(t *testing.T) {
	m := mig.New()
	a, b := m.NewIn(), m.NewIn()
	m.AddOut(m.Or(a, b))
	var buf bytes.Buffer
	if err := MakeFor(m).Write(&buf); err != nil {
		t.Fatal(err)
	}
	want := "aag 3 2 0 1 1\n2\n4\n7\n6 3 5\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestRoundTrip(t *testing.T) {
	m := mig.New()
	a, b, c, d := m.NewIn(), m.NewIn(), m.NewIn(), m.NewIn()
	f := m.Maj(a, b, c)
	g := m.Maj(f, d.Not(), a)
	m.AddOut(g.Not())
	m.AddOut(f)

	var buf bytes.Buffer
	orig := MakeFor(m)
	orig.NameInput(0, "a")
	orig.NameOutput(0, "ng")
	if err := orig.Write(&buf); err != nil {
		t.Fatal(err)
	}

	back, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	bm := back.Mig()
	if bm.NumIns() != 4 || bm.NumOuts() != 2 {
		t.Fatalf("got %d ins %d outs", bm.NumIns(), bm.NumOuts())
	}
	if nm, ok := back.InputName(0); !ok || nm != "a" {
		t.Errorf("input name %q %t", nm, ok)
	}

	vs := []uint64{0xf0f0f0f0f0f0f0f0, 0xcccccccccccccccc, 0xaaaaaaaaaaaaaaaa, 0xff00ff00ff00ff00}
	want := evalOuts(m, m.Ins(), vs)
	got := evalOuts(bm, bm.Ins(), vs)
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("out %d: got %x, want %x", i, got[i], want[i])
		}
	}
}
