// Copyright 2026 The Turn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package tt implements packed truth tables over a fixed number of
// variables, with the bitwise operations required by enumerative
// resynthesis: and/or/xor/not, ternary majority, and implication.
package tt

import (
	"fmt"
	"math/bits"
	"strings"
)

// projections of the first 6 variables within a single word
var projs = [6]uint64{
	0xaaaaaaaaaaaaaaaa,
	0xcccccccccccccccc,
	0xf0f0f0f0f0f0f0f0,
	0xff00ff00ff00ff00,
	0xffff0000ffff0000,
	0xffffffff00000000,
}

// Type T is a truth table over NumVars variables.  Bit i of the
// table is the function value on the input assignment encoded by i.
// Unused high bits of the last word are kept zero so that tables of
// equal width compare with ==-style word equality.
type T struct {
	nVars int
	words []uint64
}

func nWords(nVars int) int {
	if nVars <= 6 {
		return 1
	}
	return 1 << (nVars - 6)
}

// New creates a constant-false table over nVars variables.
func New(nVars int) T {
	if nVars < 0 {
		panic("tt: negative variable count")
	}
	return T{nVars: nVars, words: make([]uint64, nWords(nVars))}
}

// NewConst creates a constant table over nVars variables.
func NewConst(nVars int, v bool) T {
	t := New(nVars)
	if v {
		for i := range t.words {
			t.words[i] = ^uint64(0)
		}
		t.maskOff()
	}
	return t
}

// NthVar creates the projection table of variable i over nVars
// variables.
func NthVar(nVars, i int) T {
	if i < 0 || i >= nVars {
		panic("tt: variable index out of range")
	}
	t := New(nVars)
	if i < 6 {
		for w := range t.words {
			t.words[w] = projs[i]
		}
		t.maskOff()
		return t
	}
	period := 1 << (i - 6) // words per half-period
	for w := range t.words {
		if (w/period)&1 == 1 {
			t.words[w] = ^uint64(0)
		}
	}
	return t
}

// NumVars gives the number of variables of t.
func (t T) NumVars() int { return t.nVars }

// NumBits gives the number of function bits of t.
func (t T) NumBits() int { return 1 << t.nVars }

func (t T) mask() uint64 {
	if t.nVars >= 6 {
		return ^uint64(0)
	}
	return (uint64(1) << (1 << t.nVars)) - 1
}

func (t *T) maskOff() {
	t.words[len(t.words)-1] &= t.mask()
}

func (t T) like() T {
	return T{nVars: t.nVars, words: make([]uint64, len(t.words))}
}

func ckVars(a, b T) {
	if a.nVars != b.nVars {
		panic("tt: variable count mismatch")
	}
}

// Bit gives bit i of t.
func (t T) Bit(i int) bool {
	return t.words[i>>6]&(1<<(uint(i)&63)) != 0
}

// SetBit sets bit i of t to v.
func (t *T) SetBit(i int, v bool) {
	if v {
		t.words[i>>6] |= 1 << (uint(i) & 63)
	} else {
		t.words[i>>6] &^= 1 << (uint(i) & 63)
	}
}

// Not gives the complement of t.
func (t T) Not() T {
	r := t.like()
	for i, w := range t.words {
		r.words[i] = ^w
	}
	r.maskOff()
	return r
}

// And gives the conjunction of t and o.
func (t T) And(o T) T {
	ckVars(t, o)
	r := t.like()
	for i := range t.words {
		r.words[i] = t.words[i] & o.words[i]
	}
	return r
}

// Or gives the disjunction of t and o.
func (t T) Or(o T) T {
	ckVars(t, o)
	r := t.like()
	for i := range t.words {
		r.words[i] = t.words[i] | o.words[i]
	}
	return r
}

// Xor gives the exclusive or of t and o.
func (t T) Xor(o T) T {
	ckVars(t, o)
	r := t.like()
	for i := range t.words {
		r.words[i] = t.words[i] ^ o.words[i]
	}
	return r
}

// Maj3 gives the bitwise ternary majority of a, b and c.
func Maj3(a, b, c T) T {
	ckVars(a, b)
	ckVars(b, c)
	r := a.like()
	for i := range a.words {
		x, y, z := a.words[i], b.words[i], c.words[i]
		r.words[i] = (x & y) | (x & z) | (y & z)
	}
	return r
}

// Implies tells whether t implies o, i.e. whether t and-not o is
// constant false.
func (t T) Implies(o T) bool {
	ckVars(t, o)
	for i := range t.words {
		if t.words[i]&^o.words[i] != 0 {
			return false
		}
	}
	return true
}

// IsConst0 tells whether t is constant false.
func (t T) IsConst0() bool {
	for _, w := range t.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// IsConst1 tells whether t is constant true.
func (t T) IsConst1() bool {
	m := t.mask()
	for i, w := range t.words {
		want := ^uint64(0)
		if i == len(t.words)-1 {
			want = m
		}
		if w != want {
			return false
		}
	}
	return true
}

// Equal tells whether t and o denote the same function.
func (t T) Equal(o T) bool {
	if t.nVars != o.nVars {
		return false
	}
	for i := range t.words {
		if t.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

// Count gives the number of set bits of t.
func (t T) Count() int {
	c := 0
	for _, w := range t.words {
		c += bits.OnesCount64(w)
	}
	return c
}

// Clone gives a copy of t sharing no storage with it.
func (t T) Clone() T {
	r := t.like()
	copy(r.words, t.words)
	return r
}

// String formats t as a hex string, most significant word first.
func (t T) String() string {
	var sb strings.Builder
	digits := (t.NumBits() + 3) / 4
	if digits == 0 {
		digits = 1
	}
	for i := len(t.words) - 1; i >= 0; i-- {
		d := digits
		if d > 16 {
			d = 16
		}
		fmt.Fprintf(&sb, "%0*x", d, t.words[i])
		digits -= d
	}
	return sb.String()
}
