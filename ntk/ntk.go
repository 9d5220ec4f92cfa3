// Copyright 2026 The Turn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package ntk defines node and signal identity together with the
// capability interface a host network must provide to the window
// extractor and the optimization passes.
package ntk

// Type Network is the minimal contract required from a host graph.
//
// Implementations expose structure only; nothing here mutates the
// network.  Fanin enumeration visits each fanin signal in a fixed
// order and stops early when the visitor returns false.
type Network interface {
	// Constant gives the signal of the constant v.
	Constant(v bool) Sig

	// IsConstant tells whether n is a constant node.
	IsConstant(n Node) bool

	// IsPI tells whether n is a primary/combinational input.
	IsPI(n Node) bool

	// ForeachFanin visits the fanin signals of n.  Inputs and
	// constants have no fanins.
	ForeachFanin(n Node, fn func(f Sig) bool)
}
