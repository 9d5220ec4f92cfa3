// Copyright 2026 The Turn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package vlog

import (
	"bytes"
	"testing"

	"github.com/go-air/turn/mig"
)

func TestWrite(t *testing.T) {
	m := mig.New()
	a, b, c := m.NewIn(), m.NewIn(), m.NewIn()
	f := m.Maj(a, b, c)
	g := m.And(f, a.Not())
	m.AddOut(g)
	m.AddOut(f.Not())

	var buf bytes.Buffer
	if err := Write(&buf, m, Params{}); err != nil {
		t.Fatal(err)
	}
	want := `module top( x0 , x1 , x2 , y0 , y1 );
  input x0 , x1 , x2 ;
  output y0 , y1 ;
  wire n4 , n5 ;
  assign n4 = ( x0 & x1 ) | ( x0 & x2 ) | ( x1 & x2 ) ;
  assign n5 = ~x0 & n4 ;
  assign y0 = n5 ;
  assign y1 = ~n4 ;
endmodule
`
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteOrNames(t *testing.T) {
	m := mig.New()
	a, b := m.NewIn(), m.NewIn()
	m.AddOut(m.Or(a, b))

	var buf bytes.Buffer
	ps := Params{ModuleName: "orgate", InNames: []string{"p", "q"}, OutNames: []string{"r"}}
	if err := Write(&buf, m, ps); err != nil {
		t.Fatal(err)
	}
	want := `module orgate( p , q , r );
  input p , q ;
  output r ;
  wire n3 ;
  assign n3 = p | q ;
  assign r = n3 ;
endmodule
`
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteConstOut(t *testing.T) {
	m := mig.New()
	m.NewIn()
	m.AddOut(m.Constant(true))

	var buf bytes.Buffer
	if err := Write(&buf, m, Params{}); err != nil {
		t.Fatal(err)
	}
	want := `module top( x0 , y0 );
  input x0 ;
  output y0 ;
  assign y0 = 1'b1 ;
endmodule
`
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteBadNames(t *testing.T) {
	m := mig.New()
	m.NewIn()
	m.NewIn()
	if err := Write(&bytes.Buffer{}, m, Params{InNames: []string{"only"}}); err == nil {
		t.Errorf("want error on name count mismatch")
	}
}
