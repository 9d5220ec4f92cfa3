// Copyright 2026 The Turn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package resub implements windowed resubstitution on majority
// networks.  For every gate it opens a cone-of-influence window,
// simulates it, and asks the resynthesis engine for a smaller
// realization of the gate over the window's other signals.  A found
// realization replaces the gate in place.
package resub

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/go-air/turn/coi"
	"github.com/go-air/turn/mig"
	"github.com/go-air/turn/ntk"
	"github.com/go-air/turn/resyn"
	"github.com/go-air/turn/tt"
)

// Type Params configures a resubstitution run.
type Params struct {
	// MaxLeaves bounds the window input count; windows with more
	// leaves are skipped.  Simulation cost is exponential in it.
	MaxLeaves int

	// MaxInserts bounds the number of gates a replacement may add.
	MaxInserts int

	// SkipFanoutLimit skips pivots whose fanout exceeds it.
	SkipFanoutLimit uint32

	// Verbose logs every substitution at debug level.
	Verbose bool

	Logger logrus.FieldLogger
}

// NewParams gives the default parameters.
func NewParams() Params {
	return Params{
		MaxLeaves:       8,
		MaxInserts:      2,
		SkipFanoutLimit: 1000,
		Logger:          logrus.StandardLogger(),
	}
}

// Type Stats records what a run did and where the time went.
type Stats struct {
	Windows       int
	Substitutions int
	EstGain       int
	NumLeaves     int
	NumDivisors   int

	TimeTotal   time.Duration
	TimeWindows time.Duration
	TimeSim     time.Duration
	TimeResyn   time.Duration
}

// Report logs the run statistics.
func (st *Stats) Report(log logrus.FieldLogger) {
	log.WithFields(logrus.Fields{
		"windows":  st.Windows,
		"subs":     st.Substitutions,
		"gain":     st.EstGain,
		"leaves":   st.NumLeaves,
		"divisors": st.NumDivisors,
		"total":    st.TimeTotal,
		"win":      st.TimeWindows,
		"sim":      st.TimeSim,
		"resyn":    st.TimeResyn,
	}).Info("resub done")
}

// Run resubstitutes gates of m in place and gives the run
// statistics.  Gates created by substitutions during the run are
// not themselves visited.
func Run(m *mig.M, ps Params) Stats {
	if ps.Logger == nil {
		ps.Logger = logrus.StandardLogger()
	}
	var (
		st  Stats
		eng resyn.Engine
	)
	start := time.Now()
	n0 := m.Len()
	for id := 1; id < n0; id++ {
		n := ntk.Node(id)
		if !m.IsMaj(n) || m.IsDead(n) {
			continue
		}
		if m.NRef(n) > ps.SkipFanoutLimit {
			continue
		}

		tw := time.Now()
		w := coi.New(m, []ntk.Node{n}, false)
		st.TimeWindows += time.Since(tw)
		if w.NumPIs() == 0 || w.NumPIs() > ps.MaxLeaves {
			continue
		}
		st.Windows++
		st.NumLeaves += w.NumPIs()

		ts := time.Now()
		tts := simWindow(m, w)
		st.TimeSim += time.Since(ts)

		mffcSize, mffc := m.MFFC(n)

		// divisors: window leaves and inner gates outside the
		// pivot's exclusive cone
		var cands []uint32
		w.ForeachPI(func(l ntk.Node, i int) bool {
			cands = append(cands, w.NodeToIndex(l))
			return true
		})
		w.ForeachGate(func(g ntk.Node, i int) bool {
			if g == n || mffc[g] {
				return true
			}
			cands = append(cands, w.NodeToIndex(g))
			return true
		})
		st.NumDivisors += len(cands)

		maxSize := uint32(mffcSize - 1)
		if mi := uint32(ps.MaxInserts); maxSize > mi {
			maxSize = mi
		}
		target := tts[w.NodeToIndex(n)]
		care := tt.NewConst(w.NumPIs(), true)

		tr := time.Now()
		res, ok := eng.Mig(target, care, cands, tts, maxSize)
		st.TimeResyn += time.Since(tr)
		if !ok {
			continue
		}
		gain := mffcSize - int(res.NumGates())
		if gain <= 0 {
			continue
		}

		leafSigs := make([]ntk.Sig, len(cands))
		for i, ci := range cands {
			leafSigs[i] = ntk.MakeSig(w.IndexToNode(ci), false)
		}
		outs := m.Insert(res, leafSigs)
		m.Substitute(n, outs[0])
		st.Substitutions++
		st.EstGain += gain
		if ps.Verbose {
			ps.Logger.WithFields(logrus.Fields{
				"pivot": n,
				"mffc":  mffcSize,
				"gates": res.NumGates(),
			}).Debug("substituted")
		}
	}
	st.TimeTotal = time.Since(start)
	return st
}

// simWindow simulates every window node over the leaf variables,
// indexed by window index.
func simWindow(m *mig.M, w *coi.Window) []tt.T {
	nv := w.NumPIs()
	tts := make([]tt.T, w.Size())
	tts[0] = tt.NewConst(nv, false)
	w.ForeachPI(func(l ntk.Node, i int) bool {
		tts[w.NodeToIndex(l)] = tt.NthVar(nv, i)
		return true
	})
	w.ForeachGate(func(g ntk.Node, i int) bool {
		a, b, c := m.Fanins(g)
		tts[w.NodeToIndex(g)] = tt.Maj3(sigTT(tts, w, a), sigTT(tts, w, b), sigTT(tts, w, c))
		return true
	})
	return tts
}

func sigTT(tts []tt.T, w *coi.Window, s ntk.Sig) tt.T {
	x := tts[w.NodeToIndex(s.Node())]
	if s.IsNeg() {
		return x.Not()
	}
	return x
}
