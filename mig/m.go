// Copyright 2026 The Turn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package mig implements a majority-inverter graph: a combinational
// logic network whose gates are 3-input majority operations over
// possibly complemented signals.  And/or gates are majority gates
// with one constant operand.  Nodes are structurally hashed, so
// building the same gate twice yields the same node.
package mig

import (
	"github.com/go-air/turn/ilist"
	"github.com/go-air/turn/ntk"
)

type kind uint8

const (
	konst kind = iota
	kin
	kmaj
)

type node struct {
	a, b, c ntk.Sig
	next    uint32 // strash chain
	nref    uint32 // fanout reference count
	kind    kind
}

// Type M represents a majority-inverter graph.
type M struct {
	nodes  []node
	strash []uint32
	repl   []ntk.Sig // node substitutions, SigNull when none
	ins    []ntk.Node
	outs   []ntk.Sig
	F      ntk.Sig // constant false
	T      ntk.Sig // constant true
}

// New creates an empty graph.
func New() *M {
	m := &M{}
	initM(m, 128)
	return m
}

// NewCap creates an empty graph with initial capacity capHint.
func NewCap(capHint int) *M {
	if capHint < 2 {
		capHint = 2
	}
	m := &M{}
	initM(m, capHint)
	return m
}

func initM(m *M, capHint int) {
	m.nodes = make([]node, 1, capHint)
	m.nodes[0] = node{kind: konst}
	m.strash = make([]uint32, capHint)
	m.repl = make([]ntk.Sig, 1, capHint)
	m.repl[0] = ntk.SigNull
	m.F = ntk.MakeSig(0, false)
	m.T = m.F.Not()
}

// Len gives the number of nodes, constants and inputs included.
// Node identifiers are always smaller than Len.
func (m *M) Len() int {
	return len(m.nodes)
}

// NewIn creates a new primary input and gives its signal.
func (m *M) NewIn() ntk.Sig {
	n, id := m.newNode()
	n.kind = kin
	m.ins = append(m.ins, ntk.Node(id))
	return ntk.MakeSig(ntk.Node(id), false)
}

// NumIns gives the number of primary inputs.
func (m *M) NumIns() int { return len(m.ins) }

// Ins gives the primary inputs in creation order.
func (m *M) Ins() []ntk.Node { return m.ins }

// AddOut declares s as the next primary output.
func (m *M) AddOut(s ntk.Sig) {
	s = m.resolve(s)
	m.nodes[s.Node()].nref++
	m.outs = append(m.outs, s)
}

// NumOuts gives the number of primary outputs.
func (m *M) NumOuts() int { return len(m.outs) }

// Out gives the i'th primary output, tracking substitutions.
func (m *M) Out(i int) ntk.Sig {
	return m.resolve(m.outs[i])
}

// resolve follows recorded substitutions with path compression.
func (m *M) resolve(s ntk.Sig) ntk.Sig {
	n := s.Node()
	r := m.repl[n]
	if r == ntk.SigNull {
		return s
	}
	r = m.resolve(r)
	m.repl[n] = r
	return r.NotIf(s.IsNeg())
}

// Maj gives a signal equivalent to the majority of a, b and c,
// which may be a new node.  Standard simplifications apply: two
// equal operands win, a complementary operand pair yields the third
// operand, and operands are canonically ordered before hashing.
func (m *M) Maj(a, b, c ntk.Sig) ntk.Sig {
	a, b, c = m.resolve(a), m.resolve(b), m.resolve(c)
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	if a == b {
		return a
	}
	if b == c {
		return b
	}
	if a == b.Not() {
		return c
	}
	if b == c.Not() {
		return a
	}
	code := strashCode(a, b, c)
	ucap := uint32(cap(m.nodes))
	si := m.strash[code%ucap]
	for si != 0 {
		n := &m.nodes[si]
		if n.a == a && n.b == b && n.c == c {
			return ntk.MakeSig(ntk.Node(si), false)
		}
		si = n.next
	}
	n, id := m.newNode()
	n.kind = kmaj
	n.a, n.b, n.c = a, b, c
	m.nodes[a.Node()].nref++
	m.nodes[b.Node()].nref++
	m.nodes[c.Node()].nref++
	k := code % uint32(cap(m.nodes))
	n.next = m.strash[k]
	m.strash[k] = id
	return ntk.MakeSig(ntk.Node(id), false)
}

// And gives the conjunction of a and b as majority with false.
func (m *M) And(a, b ntk.Sig) ntk.Sig {
	return m.Maj(a, b, m.F)
}

// Or gives the disjunction of a and b as majority with true.
func (m *M) Or(a, b ntk.Sig) ntk.Sig {
	return m.Maj(a, b, m.T)
}

// Ands constructs the conjunction of ms.  If ms is empty, Ands
// gives true.
func (m *M) Ands(ms ...ntk.Sig) ntk.Sig {
	a := m.T
	for _, s := range ms {
		a = m.And(a, s)
	}
	return a
}

// Ors constructs the disjunction of ms.  If ms is empty, Ors gives
// false.
func (m *M) Ors(ms ...ntk.Sig) ntk.Sig {
	d := m.F
	for _, s := range ms {
		d = m.Or(d, s)
	}
	return d
}

// Constant gives the signal of the constant v.
func (m *M) Constant(v bool) ntk.Sig {
	if v {
		return m.T
	}
	return m.F
}

// IsConstant tells whether n is the constant node.
func (m *M) IsConstant(n ntk.Node) bool {
	return n == 0
}

// IsPI tells whether n is a primary input.
func (m *M) IsPI(n ntk.Node) bool {
	return m.nodes[n].kind == kin
}

// IsMaj tells whether n is a majority node.
func (m *M) IsMaj(n ntk.Node) bool {
	return m.nodes[n].kind == kmaj
}

// NRef gives the fanout reference count of n.
func (m *M) NRef(n ntk.Node) uint32 {
	return m.nodes[n].nref
}

// Fanins gives the fanin signals of majority node n, tracking
// substitutions.  Fanins panics if n is not a majority node.
func (m *M) Fanins(n ntk.Node) (a, b, c ntk.Sig) {
	nd := &m.nodes[n]
	if nd.kind != kmaj {
		panic("mig: fanins of non-gate")
	}
	return m.resolve(nd.a), m.resolve(nd.b), m.resolve(nd.c)
}

// ForeachFanin visits the fanin signals of n in stored order.  The
// visitor returns false to stop early.  Inputs and constants have
// no fanins.
func (m *M) ForeachFanin(n ntk.Node, fn func(f ntk.Sig) bool) {
	nd := &m.nodes[n]
	if nd.kind != kmaj {
		return
	}
	if !fn(m.resolve(nd.a)) {
		return
	}
	if !fn(m.resolve(nd.b)) {
		return
	}
	fn(m.resolve(nd.c))
}

// Substitute redirects every use of node old, including outputs, to
// the signal with.  old's exclusive cone is dereferenced.  The
// substitution is recorded, not rewritten: stored fanins still name
// old but resolve to with.
func (m *M) Substitute(old ntk.Node, with ntk.Sig) {
	with = m.resolve(with)
	if with.Node() == old {
		panic("mig: substitution with own signal")
	}
	if m.nodes[old].kind != kmaj {
		panic("mig: substitution of non-gate")
	}
	m.nodes[with.Node()].nref += m.nodes[old].nref
	m.nodes[old].nref = 0
	m.repl[old] = with
	m.derefCone(old)
}

// derefCone releases the fanin references held by a dead node,
// recursively killing gates whose count drops to zero.
func (m *M) derefCone(n ntk.Node) {
	m.ForeachFanin(n, func(f ntk.Sig) bool {
		fn := f.Node()
		m.nodes[fn].nref--
		if m.nodes[fn].nref == 0 && m.nodes[fn].kind == kmaj {
			m.derefCone(fn)
		}
		return true
	})
}

// IsDead tells whether gate n is unreferenced.
func (m *M) IsDead(n ntk.Node) bool {
	nd := &m.nodes[n]
	return nd.kind == kmaj && (nd.nref == 0 || m.repl[n] != ntk.SigNull)
}

// MFFC computes the maximum fanout-free cone of gate n: the set of
// gates that become unreferenced if n is removed.  It gives the
// cone size, n included, and a membership test.  Reference counts
// are restored before returning.
func (m *M) MFFC(n ntk.Node) (int, map[ntk.Node]bool) {
	if m.nodes[n].kind != kmaj {
		panic("mig: mffc of non-gate")
	}
	in := map[ntk.Node]bool{n: true}
	size := 1
	var deref func(x ntk.Node)
	deref = func(x ntk.Node) {
		m.ForeachFanin(x, func(f ntk.Sig) bool {
			fn := f.Node()
			if m.nodes[fn].kind != kmaj {
				return true
			}
			m.nodes[fn].nref--
			if m.nodes[fn].nref == 0 {
				size++
				in[fn] = true
				deref(fn)
			}
			return true
		})
	}
	var reref func(x ntk.Node)
	reref = func(x ntk.Node) {
		m.ForeachFanin(x, func(f ntk.Sig) bool {
			fn := f.Node()
			if m.nodes[fn].kind != kmaj {
				return true
			}
			if m.nodes[fn].nref == 0 {
				reref(fn)
			}
			m.nodes[fn].nref++
			return true
		})
	}
	deref(n)
	reref(n)
	return size, in
}

// Insert instantiates the instruction list l into the graph, wiring
// the list's declared inputs to leaves, and gives the signals of
// the list's declared outputs.
func (m *M) Insert(l *ilist.List, leaves []ntk.Sig) []ntk.Sig {
	if uint32(len(leaves)) != l.NumIns() {
		panic("mig: instruction list leaf count mismatch")
	}
	gates := make([]ntk.Sig, 0, l.NumGates())
	sigOf := func(x ilist.Lit) ntk.Sig {
		switch x {
		case ilist.False:
			return m.F
		case ilist.True:
			return m.T
		}
		i := x.Index()
		var s ntk.Sig
		if i < l.NumIns() {
			s = leaves[i]
		} else {
			s = gates[i-l.NumIns()]
		}
		return s.NotIf(x.IsNeg())
	}
	for _, g := range l.Gates() {
		gates = append(gates, m.Maj(sigOf(g.A), sigOf(g.B), sigOf(g.C)))
	}
	outs := make([]ntk.Sig, 0, l.NumOuts())
	for _, o := range l.Outs() {
		outs = append(outs, sigOf(o))
	}
	return outs
}

func (m *M) newNode() (*node, uint32) {
	if len(m.nodes) == cap(m.nodes) {
		m.grow()
	}
	id := len(m.nodes)
	m.nodes = m.nodes[:id+1]
	m.nodes[id] = node{}
	m.repl = append(m.repl, ntk.SigNull)
	return &m.nodes[id], uint32(id)
}

func (m *M) grow() {
	newCap := cap(m.nodes) * 2
	nodes := make([]node, len(m.nodes), newCap)
	strash := make([]uint32, newCap)
	copy(nodes, m.nodes)
	ucap := uint32(newCap)
	for i := range nodes {
		n := &nodes[i]
		if n.kind != kmaj {
			continue
		}
		code := strashCode(n.a, n.b, n.c)
		j := code % ucap
		n.next = strash[j]
		strash[j] = uint32(i)
	}
	m.nodes = nodes
	m.strash = strash
}

func strashCode(a, b, c ntk.Sig) uint32 {
	return uint32((a<<13)*b) ^ uint32((b<<7)*c)
}
