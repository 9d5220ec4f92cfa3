// Copyright 2026 The Turn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package resyn implements enumerative Boolean resynthesis: given a
// target truth table and candidate signals with known truth tables,
// it searches for a small majority-gate circuit realizing the target
// and emits it as an instruction list.
//
// The search is greedy and bounded: constant match, then single
// candidate match, then a single majority gate built from a filtered
// candidate-pair worklist.  Solutions needing two or more new gates
// are not searched; the engine reports no solution instead.  Don't
// cares are not supported: the care table must be complete.
package resyn

import (
	"github.com/go-air/turn/ilist"
	"github.com/go-air/turn/tt"
)

// Type Stats counts search outcomes across calls on one engine.
type Stats struct {
	Calls     uint64
	ConstHits uint64
	ZeroHits  uint64
	OneHits   uint64
	Fails     uint64
}

// Type Engine is an enumerative majority resynthesis engine.  The
// zero value is ready for use.  An engine holds no state besides
// statistics; calls are independent.
type Engine struct {
	Stats Stats
}

// a filtered candidate pair: a majority gate over U and V and some
// third signal reproduces the target.  V may be a constant literal,
// meaning U alone and-s or or-s toward the target.
type pair struct {
	u, v ilist.Lit
}

// Mig searches for a majority-gate realization of target using at
// most maxSize new gates.  cands lists candidate identifiers in
// order; tts[id] is the truth table of candidate id, all of the
// target's width.  Candidate order fixes the input literal encoding
// of the result and breaks ties: the first fit wins.
//
// The second result is false when no realization within maxSize
// exists.  A care table that is not constant true is a caller error
// and panics.
func (e *Engine) Mig(target, care tt.T, cands []uint32, tts []tt.T, maxSize uint32) (*ilist.List, bool) {
	e.Stats.Calls++
	if !care.IsConst1() {
		panic("resyn: incomplete care table, don't cares unsupported")
	}

	il := ilist.New(uint32(len(cands)))
	ntarget := target.Not()

	// constant match
	if target.IsConst0() {
		e.Stats.ConstHits++
		il.AddOut(ilist.False)
		return il, true
	}
	if ntarget.IsConst0() {
		e.Stats.ConstHits++
		il.AddOut(ilist.True)
		return il, true
	}

	// 0-resub
	for i, id := range cands {
		if target.Equal(tts[id]) {
			e.Stats.ZeroHits++
			il.AddOut(ilist.MakeLit(uint32(i), false))
			return il, true
		}
		if ntarget.Equal(tts[id]) {
			e.Stats.ZeroHits++
			il.AddOut(ilist.MakeLit(uint32(i), true))
			return il, true
		}
	}

	if maxSize == 0 {
		e.Stats.Fails++
		return nil, false
	}

	// collect candidate pairs using the majority filtering rule:
	// maj(x, y, target) == target means some majority gate over x, y
	// and a third signal can produce the target.  A single candidate
	// implying (or implied by) the target combines with a constant
	// the same way.
	var pairs []pair
	for i, idi := range cands {
		xi := tts[idi]
		nxi := xi.Not()
		for j := i + 1; j < len(cands); j++ {
			xj := tts[cands[j]]
			li, lj := ilist.MakeLit(uint32(i), false), ilist.MakeLit(uint32(j), false)
			switch {
			case tt.Maj3(xi, xj, target).Equal(target):
				pairs = append(pairs, pair{li, lj})
			case tt.Maj3(nxi, xj, target).Equal(target):
				pairs = append(pairs, pair{li.Not(), lj})
			case tt.Maj3(xi, xj.Not(), target).Equal(target):
				pairs = append(pairs, pair{li, lj.Not()})
			case tt.Maj3(nxi, xj.Not(), target).Equal(target):
				pairs = append(pairs, pair{li.Not(), lj.Not()})
			}
		}
		li := ilist.MakeLit(uint32(i), false)
		switch {
		case xi.Implies(target):
			pairs = append(pairs, pair{li, ilist.True})
		case nxi.Implies(target):
			pairs = append(pairs, pair{li.Not(), ilist.True})
		case target.Implies(xi):
			pairs = append(pairs, pair{li, ilist.False})
		case target.Implies(nxi):
			pairs = append(pairs, pair{li.Not(), ilist.False})
		}
	}

	// 1-resub: complete a filtered pair into one majority gate
	emit := func(a, b, c ilist.Lit) (*ilist.List, bool) {
		e.Stats.OneHits++
		il.AddOut(il.AddMaj(a, b, c))
		return il, true
	}
	for i := range pairs {
		x := litTT(pairs[i].u, cands, tts)
		if pairs[i].v.IsConst() {
			// x with a constant: and/or against a partner literal
			for j := i + 1; j < len(pairs); j++ {
				if pairs[i].v == ilist.False && target.Equal(x.And(litTT(pairs[j].u, cands, tts))) {
					return emit(pairs[i].u, pairs[i].v, pairs[j].u)
				}
				if pairs[i].v == ilist.True && target.Equal(x.Or(litTT(pairs[j].u, cands, tts))) {
					return emit(pairs[i].u, pairs[i].v, pairs[j].u)
				}
				if pairs[j].v.IsConst() {
					continue
				}
				if pairs[i].v == ilist.False && target.Equal(x.And(litTT(pairs[j].v, cands, tts))) {
					return emit(pairs[i].u, pairs[i].v, pairs[j].v)
				}
				if pairs[i].v == ilist.True && target.Equal(x.Or(litTT(pairs[j].v, cands, tts))) {
					return emit(pairs[i].u, pairs[i].v, pairs[j].v)
				}
			}
		} else {
			y := litTT(pairs[i].v, cands, tts)
			for j := i + 1; j < len(pairs); j++ {
				if target.Equal(tt.Maj3(x, y, litTT(pairs[j].u, cands, tts))) {
					return emit(pairs[i].u, pairs[i].v, pairs[j].u)
				}
				if pairs[j].v.IsConst() {
					if pairs[j].v == ilist.False && target.Equal(x.And(y)) {
						return emit(pairs[i].u, pairs[i].v, pairs[j].v)
					}
					if pairs[j].v == ilist.True && target.Equal(x.Or(y)) {
						return emit(pairs[i].u, pairs[i].v, pairs[j].v)
					}
				} else if target.Equal(tt.Maj3(x, y, litTT(pairs[j].v, cands, tts))) {
					return emit(pairs[i].u, pairs[i].v, pairs[j].v)
				}
			}
		}
	}

	// deeper resubstitution (2+ new gates) is not implemented;
	// report no solution regardless of remaining budget
	e.Stats.Fails++
	return nil, false
}

// litTT resolves a candidate literal to its (possibly complemented)
// truth table.
func litTT(l ilist.Lit, cands []uint32, tts []tt.T) tt.T {
	x := tts[cands[l.Index()]]
	if l.IsNeg() {
		return x.Not()
	}
	return x
}

// Mig is the convenience form of Engine.Mig for one-off calls.
func Mig(target, care tt.T, cands []uint32, tts []tt.T, maxSize uint32) (*ilist.List, bool) {
	var e Engine
	return e.Mig(target, care, cands, tts, maxSize)
}
