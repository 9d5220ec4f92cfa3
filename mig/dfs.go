// Copyright 2026 The Turn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package mig

import "github.com/go-air/turn/ntk"

// GatesTopo gives the majority nodes reachable from the primary
// outputs in topological order: fanins precede consumers.  Dangling
// gates are not visited.
func (m *M) GatesTopo() []ntk.Node {
	roots := make([]ntk.Sig, 0, len(m.outs))
	for i := range m.outs {
		roots = append(roots, m.Out(i))
	}
	return m.topoFrom(roots)
}

func (m *M) topoFrom(roots []ntk.Sig) []ntk.Node {
	marks := make([]byte, len(m.nodes))
	order := make([]ntk.Node, 0, len(m.nodes))
	var vis func(n ntk.Node)
	vis = func(n ntk.Node) {
		switch marks[n] {
		case 2:
			return
		case 1:
			panic("mig: loop")
		}
		marks[n] = 1
		if m.nodes[n].kind == kmaj {
			m.ForeachFanin(n, func(f ntk.Sig) bool {
				vis(f.Node())
				return true
			})
			order = append(order, n)
		}
		marks[n] = 2
	}
	for _, r := range roots {
		vis(r.Node())
	}
	return order
}

// NumLiveGates gives the number of majority nodes reachable from
// the primary outputs.
func (m *M) NumLiveGates() int {
	return len(m.GatesTopo())
}

// Eval64 evaluates 64 input assignments in parallel as the bits of
// a uint64.  vs is indexed by node identifier; callers fill input
// positions, Eval64 fills gates reachable from the outputs.
func (m *M) Eval64(vs []uint64) {
	if len(vs) < len(m.nodes) {
		panic("mig: eval value slice too short")
	}
	vs[0] = 0
	val := func(s ntk.Sig) uint64 {
		v := vs[s.Node()]
		if s.IsNeg() {
			return ^v
		}
		return v
	}
	for _, n := range m.GatesTopo() {
		a, b, c := m.Fanins(n)
		x, y, z := val(a), val(b), val(c)
		vs[n] = (x & y) | (x & z) | (y & z)
	}
}

// OutVal64 gives the value of the i'th output under vs, as filled
// by Eval64.
func (m *M) OutVal64(vs []uint64, i int) uint64 {
	s := m.Out(i)
	v := vs[s.Node()]
	if s.IsNeg() {
		return ^v
	}
	return v
}
