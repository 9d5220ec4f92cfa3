// Copyright 2026 The Turn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package coi implements an isolated window on the cone of
// influence of a set of pivot nodes in a host network.
//
// Given the pivots, the cone grows towards the combinational
// inputs; unlike size-bounded windows there is no cap on the number
// of leaves or nodes collected.  The window partitions the cone
// into constants, leaves (host inputs) and inner nodes, assigns
// dense window-local indices, and orders inner nodes topologically.
// Pivots double as the window's outputs, in pivot-list order.
//
// A window observes the host network by reference and holds no
// ownership over it; if the host mutates, call Update to recompute.
package coi

import (
	"sort"

	"github.com/go-air/turn/ntk"
)

// Type Window is a cone-of-influence view of a host network.
type Window struct {
	host          ntk.Network
	pivots        []ntk.Node
	seqWrapAround bool // reserved for sequential cones, no effect

	constants []ntk.Node
	nodes     []ntk.Node // collected ancestry, scratch
	leaves    []ntk.Node
	inner     []ntk.Node
	index     map[ntk.Node]uint32
	seen      map[ntk.Node]bool
}

// New creates a window over host rooted at pivots and computes it.
// The pivot list may be empty, yielding a window of constants only.
// seqWrapAround is accepted for future sequential-feedback support
// and currently has no effect.
func New(host ntk.Network, pivots []ntk.Node, seqWrapAround bool) *Window {
	w := &Window{
		host:          host,
		pivots:        append([]ntk.Node(nil), pivots...),
		seqWrapAround: seqWrapAround,
	}
	c0 := host.Constant(false).Node()
	w.constants = append(w.constants, c0)
	if c1 := host.Constant(true).Node(); c1 != c0 {
		w.constants = append(w.constants, c1)
	}
	w.Update()
	return w
}

// Pivots gives the window's pivot nodes in given order.
func (w *Window) Pivots() []ntk.Node { return w.pivots }

// SetPivots re-seeds the pivot list.  The window keeps its previous
// contents until Update is called.
func (w *Window) SetPivots(pivots []ntk.Node) {
	w.pivots = append(w.pivots[:0], pivots...)
}

// Update recomputes leaves, inner nodes and indices from the
// current pivot list.  Update panics if the cone contains an
// undeclared combinational loop.
func (w *Window) Update() {
	w.nodes = w.nodes[:0]
	w.leaves = w.leaves[:0]
	w.inner = w.inner[:0]
	w.seen = make(map[ntk.Node]bool, len(w.nodes))
	w.index = make(map[ntk.Node]uint32, len(w.index))
	for _, c := range w.constants {
		w.index[c] = uint32(len(w.index))
	}
	for _, p := range w.pivots {
		w.collect(p)
	}
	w.computeSets()
}

// collect gathers the ancestry of n.  Pivot nodes themselves are
// only recorded when they are inputs; gate pivots join the window
// at the inner tail during classification.
func (w *Window) collect(n ntk.Node) {
	if w.host.IsConstant(n) {
		return
	}
	if w.host.IsPI(n) {
		if !w.seen[n] {
			w.seen[n] = true
			w.nodes = append(w.nodes, n)
		}
		return
	}
	w.host.ForeachFanin(n, func(f ntk.Sig) bool {
		fn := f.Node()
		if w.host.IsConstant(fn) || w.seen[fn] {
			return true
		}
		w.seen[fn] = true
		w.nodes = append(w.nodes, fn)
		w.collect(fn)
		return true
	})
}

func (w *Window) computeSets() {
	sort.Slice(w.nodes, func(i, j int) bool { return w.nodes[i] < w.nodes[j] })

	pivotGate := make(map[ntk.Node]bool, len(w.pivots))
	for _, p := range w.pivots {
		if !w.host.IsConstant(p) && !w.host.IsPI(p) {
			pivotGate[p] = true
		}
	}

	for _, n := range w.nodes {
		if w.host.IsPI(n) {
			if len(w.leaves) == 0 || w.leaves[len(w.leaves)-1] != n {
				w.leaves = append(w.leaves, n)
			}
		} else if !pivotGate[n] {
			if len(w.inner) == 0 || w.inner[len(w.inner)-1] != n {
				w.inner = append(w.inner, n)
			}
		}
	}

	for _, n := range w.leaves {
		w.index[n] = uint32(len(w.index))
	}
	for _, n := range w.inner {
		w.index[n] = uint32(len(w.index))
	}
	// gate pivots take the tail of the inner range, pivot order,
	// one membership per node
	for _, p := range w.pivots {
		if !pivotGate[p] {
			continue
		}
		if _, ok := w.index[p]; ok {
			continue
		}
		w.inner = append(w.inner, p)
		w.index[p] = uint32(len(w.index))
	}

	w.sortTopologically()
}

// Three-color DFS over inner nodes: 0 unvisited, 1 in progress,
// 2 done.  Constants and leaves are done up front and never move.
func (w *Window) sortTopologically() {
	colors := make([]uint8, len(w.index))
	for _, c := range w.constants {
		colors[w.index[c]] = 2
	}
	for _, l := range w.leaves {
		colors[w.index[l]] = 2
	}
	topo := make([]ntk.Node, 0, len(w.inner))
	for _, p := range w.pivots {
		if w.host.IsConstant(p) {
			continue
		}
		w.topoRec(p, colors, &topo)
	}
	if len(topo) != len(w.inner) {
		panic("coi: inner node count changed by topological sort")
	}
	w.inner = topo
	base := uint32(len(w.constants) + len(w.leaves))
	for i, n := range w.inner {
		w.index[n] = base + uint32(i)
	}
}

func (w *Window) topoRec(n ntk.Node, colors []uint8, topo *[]ntk.Node) {
	idx := w.index[n]
	switch colors[idx] {
	case 2:
		return
	case 1:
		panic("coi: combinational loop")
	}
	colors[idx] = 1
	w.host.ForeachFanin(n, func(f ntk.Sig) bool {
		w.topoRec(f.Node(), colors, topo)
		return true
	})
	colors[idx] = 2
	*topo = append(*topo, n)
}

// Size gives the number of window nodes: constants, leaves and
// inner nodes.
func (w *Window) Size() int {
	return len(w.constants) + len(w.leaves) + len(w.inner)
}

// NumConstants gives the number of constant nodes in the window.
func (w *Window) NumConstants() int { return len(w.constants) }

// NumCIs gives the number of leaves.
func (w *Window) NumCIs() int { return len(w.leaves) }

// NumPIs gives the number of leaves.
func (w *Window) NumPIs() int { return len(w.leaves) }

// NumCOs gives the number of outputs, one per pivot-list entry.
func (w *Window) NumCOs() int { return len(w.pivots) }

// NumPOs gives the number of outputs, one per pivot-list entry.
func (w *Window) NumPOs() int { return len(w.pivots) }

// NumGates gives the number of inner nodes.
func (w *Window) NumGates() int { return len(w.inner) }

// IsPI tells whether n is one of the window's leaves.
func (w *Window) IsPI(n ntk.Node) bool {
	i := sort.Search(len(w.leaves), func(i int) bool { return w.leaves[i] >= n })
	return i < len(w.leaves) && w.leaves[i] == n
}

// ForeachPI visits the leaves in stored (sorted) order.
func (w *Window) ForeachPI(fn func(n ntk.Node, i int) bool) {
	for i, n := range w.leaves {
		if !fn(n, i) {
			return
		}
	}
}

// ForeachCI visits the leaves in stored (sorted) order.
func (w *Window) ForeachCI(fn func(n ntk.Node, i int) bool) {
	w.ForeachPI(fn)
}

// ForeachPO visits one uncomplemented signal per pivot-list entry,
// in pivot-list order.
func (w *Window) ForeachPO(fn func(s ntk.Sig, i int) bool) {
	for i, p := range w.pivots {
		if !fn(ntk.MakeSig(p, false), i) {
			return
		}
	}
}

// ForeachCO visits one uncomplemented signal per pivot-list entry,
// in pivot-list order.
func (w *Window) ForeachCO(fn func(s ntk.Sig, i int) bool) {
	w.ForeachPO(fn)
}

// ForeachGate visits the inner nodes in topological order.
func (w *Window) ForeachGate(fn func(n ntk.Node, i int) bool) {
	for i, n := range w.inner {
		if !fn(n, i) {
			return
		}
	}
}

// ForeachNode visits constants, then leaves, then inner nodes.  The
// visit position equals the node's window index.
func (w *Window) ForeachNode(fn func(n ntk.Node, i int) bool) {
	i := 0
	for _, n := range w.constants {
		if !fn(n, i) {
			return
		}
		i++
	}
	for _, n := range w.leaves {
		if !fn(n, i) {
			return
		}
		i++
	}
	for _, n := range w.inner {
		if !fn(n, i) {
			return
		}
		i++
	}
}

// IndexToNode gives the node at window index i.
func (w *Window) IndexToNode(i uint32) ntk.Node {
	nc := uint32(len(w.constants))
	if i < nc {
		return w.constants[i]
	}
	if i < nc+uint32(len(w.leaves)) {
		return w.leaves[i-nc]
	}
	return w.inner[i-nc-uint32(len(w.leaves))]
}

// NodeToIndex gives the window index of n.  It panics when n is not
// part of the window; asking for a foreign node is a caller error,
// not a runtime condition.
func (w *Window) NodeToIndex(n ntk.Node) uint32 {
	i, ok := w.index[n]
	if !ok {
		panic("coi: node not in window")
	}
	return i
}
