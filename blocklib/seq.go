// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package blocklib

import (
	"strconv"

	bs "github.com/db47h/blocksim"
	"github.com/pkg/errors"
)

// Mux adds a multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
//
func Mux(c *bs.Circuit, at bs.Point) (*Assembly, error) {
	b := newBuilder(c, at, "mux")
	n := b.add(bs.Not, 0, 0)
	a1 := b.add(bs.And, 1, 0)
	a2 := b.add(bs.And, 1, 1)
	o := b.add(bs.Or, 2, 0)
	b.wire(bs.Pin(n, bs.PinOut), bs.Pin(a1, bs.PinB))
	b.wire(bs.Pin(a1, bs.PinOut), bs.Pin(o, bs.PinA))
	b.wire(bs.Pin(a2, bs.PinOut), bs.Pin(o, bs.PinB))
	b.in(bs.PinA, bs.Pin(a1, bs.PinA))
	b.in(bs.PinB, bs.Pin(a2, bs.PinA))
	b.in("sel", bs.Pin(n, bs.PinIn), bs.Pin(a2, bs.PinB))
	b.out(bs.PinOut, bs.Pin(o, bs.PinOut))
	return b.done()
}

// Toggle adds a Memory block fed back through a NOT gate. Its output flips
// on every tick, starting at 0.
//
//	Outputs: out
//	Function: out(t) = !out(t-1)
//
func Toggle(c *bs.Circuit, at bs.Point) (*Assembly, error) {
	b := newBuilder(c, at, "toggle")
	m := b.add(bs.Memory, 0, 0)
	n := b.add(bs.Not, 1, 0)
	b.wire(bs.Pin(m, bs.PinOut), bs.Pin(n, bs.PinIn))
	b.wire(bs.Pin(n, bs.PinOut), bs.Pin(m, bs.PinIn))
	b.out(bs.PinOut, bs.Pin(m, bs.PinOut))
	return b.done()
}

// ShiftRegister returns a Builder for a chain of n Memory blocks.
//
//	Inputs: in
//	Outputs: out
//	Function: out(t) = in(t-n)
//
func ShiftRegister(n int) Builder {
	return func(c *bs.Circuit, at bs.Point) (*Assembly, error) {
		if n < 1 {
			return nil, errors.Errorf("invalid shift register length %d", n)
		}
		b := newBuilder(c, at, "shift"+strconv.Itoa(n))
		prev := b.add(bs.Memory, 0, 0)
		b.in(bs.PinIn, bs.Pin(prev, bs.PinIn))
		for i := 1; i < n; i++ {
			m := b.add(bs.Memory, i, 0)
			b.wire(bs.Pin(prev, bs.PinOut), bs.Pin(m, bs.PinIn))
			prev = m
		}
		b.out(bs.PinOut, bs.Pin(prev, bs.PinOut))
		return b.done()
	}
}
