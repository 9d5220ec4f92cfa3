// Copyright 2026 The Turn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package ilist implements a portable, literal-encoded instruction
// list describing a small majority-gate circuit.  A list declares a
// number of inputs, a sequence of 3-input majority gates over
// literals, and a sequence of output literals.  It is the handoff
// artifact between the resynthesis engine and whatever splices the
// result back into a host graph.
package ilist

import (
	"fmt"
	"strings"
)

// Type Lit is a literal in an instruction list.  Literal 0 is
// constant false and literal 1 is constant true.  Input or gate
// index i with polarity p encodes as (i+1)*2 + p; inputs occupy the
// first declared indices, gate results follow in creation order.
type Lit uint32

// The constant literals.
const (
	False Lit = 0
	True  Lit = 1
)

// MakeLit encodes index with polarity neg.
func MakeLit(index uint32, neg bool) Lit {
	l := Lit(index+1) * 2
	if neg {
		l |= 1
	}
	return l
}

// IsConst tells whether l is one of the constant literals.
func (l Lit) IsConst() bool {
	return l < 2
}

// IsNeg tells whether l is complemented.  For constants, True
// reports complemented (it is the complement of constant false).
func (l Lit) IsNeg() bool {
	return l&1 == 1
}

// Not gives the complement of l.
func (l Lit) Not() Lit {
	return l ^ 1
}

// Index decodes the input or gate index of l.  Index panics on
// constant literals, which carry no index.
func (l Lit) Index() uint32 {
	if l.IsConst() {
		panic("ilist: constant literal has no index")
	}
	return uint32(l)/2 - 1
}

func (l Lit) String() string {
	switch l {
	case False:
		return "F"
	case True:
		return "T"
	}
	if l.IsNeg() {
		return fmt.Sprintf("!%d", l.Index())
	}
	return fmt.Sprintf("%d", l.Index())
}

// Type Gate is a 3-input majority operation over literals.
type Gate struct {
	A, B, C Lit
}

// Type List is an instruction list.  Once handed to a caller it is
// not aliased by the producer; treat it as immutable.
type List struct {
	nIns  uint32
	gates []Gate
	outs  []Lit
}

// New creates an empty list declaring nIns inputs.
func New(nIns uint32) *List {
	return &List{nIns: nIns}
}

// NumIns gives the declared number of inputs.
func (l *List) NumIns() uint32 { return l.nIns }

// NumGates gives the number of gates.
func (l *List) NumGates() uint32 { return uint32(len(l.gates)) }

// NumOuts gives the number of declared outputs.
func (l *List) NumOuts() uint32 { return uint32(len(l.outs)) }

// AddMaj appends a majority gate over a, b, c and gives the
// uncomplemented literal of its result.
func (l *List) AddMaj(a, b, c Lit) Lit {
	l.gates = append(l.gates, Gate{A: a, B: b, C: c})
	return MakeLit(l.nIns+uint32(len(l.gates))-1, false)
}

// AddOut declares o as the next output of the list.
func (l *List) AddOut(o Lit) {
	l.outs = append(l.outs, o)
}

// Gates gives the gate records in creation order.
func (l *List) Gates() []Gate { return l.gates }

// Outs gives the output literals in declaration order.
func (l *List) Outs() []Lit { return l.outs }

func (l *List) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "{ins=%d", l.nIns)
	for _, g := range l.gates {
		fmt.Fprintf(&sb, " maj(%s,%s,%s)", g.A, g.B, g.C)
	}
	for _, o := range l.outs {
		fmt.Fprintf(&sb, " >%s", o)
	}
	sb.WriteString("}")
	return sb.String()
}
