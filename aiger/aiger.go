// Copyright 2026 The Turn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package aiger reads and writes combinational majority networks in
// ASCII AIGER (aag) format.  Majority gates are expanded into and
// gates on write and rebuilt by structural hashing on read, so a
// round trip preserves function, not structure.
package aiger

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/go-air/turn/mig"
	"github.com/go-air/turn/ntk"
)

// Errors related to IO and formatting
var (
	BadHeader       = errors.New("bad header")
	HasLatches      = errors.New("latches unsupported")
	LitOOB          = errors.New("literal out of bounds")
	SignedInput     = errors.New("input is negated")
	SignedAnd       = errors.New("and gate def is negated")
	MultiplyDefined = errors.New("literal multiply defined")
	UndefinedLit    = errors.New("literal not defined")
	InvalidIndex    = errors.New("invalid index")
	InvalidName     = errors.New("invalid symbol name")
	InvalidSymbol   = errors.New("invalid symbol type")
)

// Type T wraps a majority network with aiger symbol tables.
type T struct {
	m        *mig.M
	inNames  map[int]string
	outNames map[int]string
}

// MakeFor makes an aiger object for m.  The network is the backing
// store, no copy is made.
func MakeFor(m *mig.M) *T {
	return &T{
		m:        m,
		inNames:  make(map[int]string),
		outNames: make(map[int]string),
	}
}

// Mig gives the network backing this aiger object.
func (a *T) Mig() *mig.M { return a.m }

// NameInput names the index'th input.  It gives a non-nil error if
// index is out of bounds or nm contains a new line.
func (a *T) NameInput(index int, nm string) error {
	if index < 0 || index >= a.m.NumIns() {
		return InvalidIndex
	}
	if strings.ContainsRune(nm, '\n') {
		return InvalidName
	}
	a.inNames[index] = nm
	return nil
}

// InputName gives the name of the index'th input and whether one
// was set.
func (a *T) InputName(index int) (string, bool) {
	nm, ok := a.inNames[index]
	return nm, ok
}

// NameOutput names the index'th output.  It gives a non-nil error
// if index is out of bounds or nm contains a new line.
func (a *T) NameOutput(index int, nm string) error {
	if index < 0 || index >= a.m.NumOuts() {
		return InvalidIndex
	}
	if strings.ContainsRune(nm, '\n') {
		return InvalidName
	}
	a.outNames[index] = nm
	return nil
}

// OutputName gives the name of the index'th output and whether one
// was set.
func (a *T) OutputName(index int) (string, bool) {
	nm, ok := a.outNames[index]
	return nm, ok
}

// Read reads an ASCII aag file into a majority network.  And gates
// become majority gates with a constant operand.  Gate operands
// must be defined before use; latches are rejected.
func Read(r io.Reader) (*T, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<16), 1<<24)
	line := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		line++
		return sc.Text(), true
	}

	hdr, ok := next()
	if !ok {
		return nil, errors.Wrap(BadHeader, "empty input")
	}
	var nM, nI, nL, nO, nA uint64
	if n, err := fmt.Sscanf(hdr, "aag %d %d %d %d %d", &nM, &nI, &nL, &nO, &nA); n != 5 || err != nil {
		return nil, errors.Wrapf(BadHeader, "line %d: %q", line, hdr)
	}
	if nL != 0 {
		return nil, HasLatches
	}

	m := mig.NewCap(int(nM) + 1)
	a := MakeFor(m)
	sigs := make([]ntk.Sig, nM+1)
	defined := make([]bool, nM+1)
	sigs[0] = m.Constant(false)
	defined[0] = true

	lit2sig := func(l uint64) (ntk.Sig, error) {
		v := l / 2
		if v > nM {
			return 0, errors.Wrapf(LitOOB, "line %d: literal %d", line, l)
		}
		if !defined[v] {
			return 0, errors.Wrapf(UndefinedLit, "line %d: literal %d", line, l)
		}
		return sigs[v].NotIf(l&1 == 1), nil
	}

	for i := uint64(0); i < nI; i++ {
		s, ok := next()
		if !ok {
			return nil, errors.Wrapf(io.ErrUnexpectedEOF, "line %d: want %d inputs", line, nI)
		}
		l, err := parseUint(s)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if l&1 == 1 {
			return nil, errors.Wrapf(SignedInput, "line %d: literal %d", line, l)
		}
		v := l / 2
		if v == 0 || v > nM {
			return nil, errors.Wrapf(LitOOB, "line %d: literal %d", line, l)
		}
		if defined[v] {
			return nil, errors.Wrapf(MultiplyDefined, "line %d: literal %d", line, l)
		}
		sigs[v] = m.NewIn()
		defined[v] = true
	}

	outLits := make([]uint64, nO)
	for i := range outLits {
		s, ok := next()
		if !ok {
			return nil, errors.Wrapf(io.ErrUnexpectedEOF, "line %d: want %d outputs", line, nO)
		}
		l, err := parseUint(s)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		outLits[i] = l
	}

	for i := uint64(0); i < nA; i++ {
		s, ok := next()
		if !ok {
			return nil, errors.Wrapf(io.ErrUnexpectedEOF, "line %d: want %d ands", line, nA)
		}
		var lhs, r0, r1 uint64
		if n, err := fmt.Sscanf(s, "%d %d %d", &lhs, &r0, &r1); n != 3 || err != nil {
			return nil, errors.Wrapf(BadHeader, "line %d: %q", line, s)
		}
		if lhs&1 == 1 {
			return nil, errors.Wrapf(SignedAnd, "line %d: literal %d", line, lhs)
		}
		v := lhs / 2
		if v == 0 || v > nM {
			return nil, errors.Wrapf(LitOOB, "line %d: literal %d", line, lhs)
		}
		if defined[v] {
			return nil, errors.Wrapf(MultiplyDefined, "line %d: literal %d", line, lhs)
		}
		s0, err := lit2sig(r0)
		if err != nil {
			return nil, err
		}
		s1, err := lit2sig(r1)
		if err != nil {
			return nil, err
		}
		sigs[v] = m.And(s0, s1)
		defined[v] = true
	}

	for _, l := range outLits {
		s, err := lit2sig(l)
		if err != nil {
			return nil, err
		}
		m.AddOut(s)
	}

	// symbol table and comment section
	for {
		s, ok := next()
		if !ok {
			break
		}
		if s == "c" {
			break
		}
		if s == "" {
			continue
		}
		var idx int
		var nm string
		switch s[0] {
		case 'i':
			if n, err := fmt.Sscanf(s, "i%d %s", &idx, &nm); n == 2 && err == nil {
				a.inNames[idx] = nm
				continue
			}
		case 'o':
			if n, err := fmt.Sscanf(s, "o%d %s", &idx, &nm); n == 2 && err == nil {
				a.outNames[idx] = nm
				continue
			}
		}
		return nil, errors.Wrapf(InvalidSymbol, "line %d: %q", line, s)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "aiger read")
	}
	return a, nil
}

// Write writes the network in ASCII aag format.  Each live majority
// gate becomes four and gates, ab + c(a+b); gates with a constant
// operand become a single and.
func (a *T) Write(w io.Writer) error {
	m := a.m
	topo := m.GatesTopo()

	// aig literal of each node's positive output; may be odd for
	// gates whose expansion ends in an inverter
	lits := make(map[ntk.Node]uint64, m.NumIns()+len(topo))
	lits[m.Constant(false).Node()] = 0
	for i, in := range m.Ins() {
		lits[in] = uint64(i+1) * 2
	}
	nextVar := uint64(m.NumIns())

	type and struct{ lhs, r0, r1 uint64 }
	var ands []and
	newAnd := func(r0, r1 uint64) uint64 {
		nextVar++
		lhs := nextVar * 2
		ands = append(ands, and{lhs, r0, r1})
		return lhs
	}
	lit := func(s ntk.Sig) uint64 {
		l := lits[s.Node()]
		if s.IsNeg() {
			l ^= 1
		}
		return l
	}

	cF, cT := m.Constant(false), m.Constant(true)
	for _, g := range topo {
		fa, fb, fc := m.Fanins(g)
		switch fa {
		case cF:
			lits[g] = newAnd(lit(fb), lit(fc))
		case cT:
			lits[g] = newAnd(lit(fb)^1, lit(fc)^1) ^ 1
		default:
			la, lb, lc := lit(fa), lit(fb), lit(fc)
			u1 := newAnd(la, lb)
			u2 := newAnd(la^1, lb^1)
			u3 := newAnd(lc, u2^1)
			lits[g] = newAnd(u1^1, u3^1) ^ 1
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "aag %d %d 0 %d %d\n", nextVar, m.NumIns(), m.NumOuts(), len(ands))
	for i := range m.Ins() {
		fmt.Fprintf(bw, "%d\n", uint64(i+1)*2)
	}
	for i := 0; i < m.NumOuts(); i++ {
		fmt.Fprintf(bw, "%d\n", lit(m.Out(i)))
	}
	for _, g := range ands {
		fmt.Fprintf(bw, "%d %d %d\n", g.lhs, g.r0, g.r1)
	}
	for i := 0; i < m.NumIns(); i++ {
		if nm, ok := a.inNames[i]; ok {
			fmt.Fprintf(bw, "i%d %s\n", i, nm)
		}
	}
	for i := 0; i < m.NumOuts(); i++ {
		if nm, ok := a.outNames[i]; ok {
			fmt.Fprintf(bw, "o%d %s\n", i, nm)
		}
	}
	return errors.Wrap(bw.Flush(), "aiger write")
}

func parseUint(s string) (uint64, error) {
	var l uint64
	if n, err := fmt.Sscanf(s, "%d", &l); n != 1 || err != nil {
		return 0, errors.Errorf("malformed literal %q", s)
	}
	return l, nil
}
