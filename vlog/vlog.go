// Copyright 2026 The Turn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package vlog writes majority networks as structural Verilog.
package vlog

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/go-air/turn/mig"
	"github.com/go-air/turn/ntk"
)

// Type Params names the module and its ports.  Empty fields get
// defaults: module "top", inputs x0, x1, ..., outputs y0, y1, ....
type Params struct {
	ModuleName string
	InNames    []string
	OutNames   []string
}

// Write writes m to w as a structural Verilog module, one
// continuous assign per live gate in topological order.  Majority
// gates with a constant operand print as and or or; the rest print
// as the three-term majority expansion.
func Write(w io.Writer, m *mig.M, ps Params) error {
	if ps.ModuleName == "" {
		ps.ModuleName = "top"
	}
	ins, err := portNames(ps.InNames, m.NumIns(), "x")
	if err != nil {
		return errors.Wrap(err, "inputs")
	}
	outs, err := portNames(ps.OutNames, m.NumOuts(), "y")
	if err != nil {
		return errors.Wrap(err, "outputs")
	}

	topo := m.GatesTopo()
	names := make(map[ntk.Node]string, m.NumIns()+len(topo))
	for i, in := range m.Ins() {
		names[in] = ins[i]
	}
	for _, g := range topo {
		names[g] = fmt.Sprintf("n%d", g)
	}
	cnode := m.Constant(false).Node()
	opnd := func(s ntk.Sig) string {
		if s.Node() == cnode {
			if s.IsNeg() {
				return "1'b1"
			}
			return "1'b0"
		}
		if s.IsNeg() {
			return "~" + names[s.Node()]
		}
		return names[s.Node()]
	}

	bw := bufio.NewWriter(w)
	ports := append(append([]string{}, ins...), outs...)
	fmt.Fprintf(bw, "module %s( %s );\n", ps.ModuleName, strings.Join(ports, " , "))
	if len(ins) > 0 {
		fmt.Fprintf(bw, "  input %s ;\n", strings.Join(ins, " , "))
	}
	if len(outs) > 0 {
		fmt.Fprintf(bw, "  output %s ;\n", strings.Join(outs, " , "))
	}
	if len(topo) > 0 {
		ws := make([]string, len(topo))
		for i, g := range topo {
			ws[i] = names[g]
		}
		fmt.Fprintf(bw, "  wire %s ;\n", strings.Join(ws, " , "))
	}

	cF, cT := m.Constant(false), m.Constant(true)
	for _, g := range topo {
		a, b, c := m.Fanins(g)
		switch a {
		case cF:
			fmt.Fprintf(bw, "  assign %s = %s & %s ;\n", names[g], opnd(b), opnd(c))
		case cT:
			fmt.Fprintf(bw, "  assign %s = %s | %s ;\n", names[g], opnd(b), opnd(c))
		default:
			oa, ob, oc := opnd(a), opnd(b), opnd(c)
			fmt.Fprintf(bw, "  assign %s = ( %s & %s ) | ( %s & %s ) | ( %s & %s ) ;\n",
				names[g], oa, ob, oa, oc, ob, oc)
		}
	}
	for i := 0; i < m.NumOuts(); i++ {
		fmt.Fprintf(bw, "  assign %s = %s ;\n", outs[i], opnd(m.Out(i)))
	}
	fmt.Fprintln(bw, "endmodule")
	return errors.Wrap(bw.Flush(), "vlog write")
}

func portNames(given []string, n int, prefix string) ([]string, error) {
	if len(given) == 0 {
		names := make([]string, n)
		for i := range names {
			names[i] = fmt.Sprintf("%s%d", prefix, i)
		}
		return names, nil
	}
	if len(given) != n {
		return nil, errors.Errorf("got %d names, want %d", len(given), n)
	}
	return given, nil
}
