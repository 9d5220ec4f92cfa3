// Copyright 2026 The Turn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package ntk

import "fmt"

// Type Node identifies a node in a host network.  Nodes are dense
// non-negative identifiers.  Node 0 is the constant-false node by
// convention.  Some networks fold both constants into node 0, others
// keep a distinct constant-true node; consumers must tolerate either.
type Node uint32

// Type Sig is a signal: a possibly complemented reference to the
// output of a node.  A signal packs the node identifier with a
// polarity bit in its least significant bit.
type Sig uint32

// SigNull is an invalid signal, usable as a sentinel.  Its node
// part is the largest representable identifier, which real networks
// never reach.
const SigNull Sig = ^Sig(0)

// MakeSig makes a signal referencing n, complemented if neg.
func MakeSig(n Node, neg bool) Sig {
	s := Sig(n) << 1
	if neg {
		s |= 1
	}
	return s
}

// Node gives the node s refers to.
func (s Sig) Node() Node {
	return Node(s >> 1)
}

// IsNeg tells whether s is complemented.
func (s Sig) IsNeg() bool {
	return s&1 == 1
}

// Not gives the complement of s.
func (s Sig) Not() Sig {
	return s ^ 1
}

// NotIf complements s when cond holds.
func (s Sig) NotIf(cond bool) Sig {
	if cond {
		return s ^ 1
	}
	return s
}

func (s Sig) String() string {
	if s.IsNeg() {
		return fmt.Sprintf("!n%d", s.Node())
	}
	return fmt.Sprintf("n%d", s.Node())
}

func (n Node) String() string {
	return fmt.Sprintf("n%d", n)
}
