// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package blocksim_test

import (
	"testing"

	bs "github.com/db47h/blocksim"
	"github.com/db47h/blocksim/blocktest"
)

func Test_gate_builtin(t *testing.T) {
	td := []struct {
		kind   bs.Kind
		result []bool // a=0 && b=0, a=0 && b=1, a=1 && b=0, a=1 && b=1
	}{
		{bs.Not, []bool{true, false}},
		{bs.And, []bool{false, false, false, true}},
		{bs.Or, []bool{false, true, true, true}},
		{bs.Xor, []bool{false, true, true, false}},
	}
	for _, d := range td {
		t.Run(d.kind.String(), func(t *testing.T) {
			blocktest.CheckGate(t, d.kind, d.result)

			// same table through Eval
			for i, want := range d.result {
				var a, b bool
				if len(d.result) == 2 {
					a = i == 1
				} else {
					a, b = i&2 != 0, i&1 != 0
				}
				if got := bs.Eval(d.kind, a, b); got != want {
					t.Errorf("Eval(%s, %v, %v) = %v, expected %v", d.kind, a, b, got, want)
				}
			}
		})
	}
}

// Unconnected gate inputs read 0.
func Test_gate_unconnected(t *testing.T) {
	td := []struct {
		kind bs.Kind
		b    bool // signal on input b, a is left unconnected
		want bool
	}{
		{bs.And, true, false},
		{bs.Or, false, false},
		{bs.Or, true, true},
		{bs.Xor, true, true},
		{bs.Xor, false, false},
	}
	for _, d := range td {
		c := bs.New()
		g := c.AddBlock(d.kind, bs.Point{})
		in := c.AddBlock(bs.Input, bs.Point{})
		out := c.AddBlock(bs.Output, bs.Point{})
		if _, err := c.Connect(bs.Pin(in, bs.PinOut), bs.Pin(g, bs.PinB)); err != nil {
			t.Fatal(err)
		}
		if _, err := c.Connect(bs.Pin(g, bs.PinOut), bs.Pin(out, bs.PinIn)); err != nil {
			t.Fatal(err)
		}
		s := "0"
		if d.b {
			s = "1"
		}
		if err := c.SetInputStream(in, s); err != nil {
			t.Fatal(err)
		}
		c.Tick()
		got, err := c.Signal(bs.Pin(g, bs.PinOut))
		if err != nil {
			t.Fatal(err)
		}
		if got != d.want {
			t.Errorf("%s(a=<unconnected>, b=%v) = %v, expected %v", d.kind, d.b, got, d.want)
		}
	}

	// a NOT gate with nothing attached outputs 1.
	c := bs.New()
	n := c.AddBlock(bs.Not, bs.Point{})
	c.Tick()
	if v, _ := c.Signal(bs.Pin(n, bs.PinOut)); !v {
		t.Error("unconnected NOT gate should output 1")
	}
}

func TestEval_panicsOnNonGate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	bs.Eval(bs.Memory, true, true)
}
