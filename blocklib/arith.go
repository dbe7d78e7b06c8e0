// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package blocklib

import (
	bs "github.com/db47h/blocksim"
)

// HalfAdder adds a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder(c *bs.Circuit, at bs.Point) (*Assembly, error) {
	b := newBuilder(c, at, "halfadder")
	x := b.add(bs.Xor, 0, 0)
	a := b.add(bs.And, 0, 1)
	b.in(bs.PinA, bs.Pin(x, bs.PinA), bs.Pin(a, bs.PinA))
	b.in(bs.PinB, bs.Pin(x, bs.PinB), bs.Pin(a, bs.PinB))
	b.out("s", bs.Pin(x, bs.PinOut))
	b.out("c", bs.Pin(a, bs.PinOut))
	return b.done()
}

// fullAdder adds the blocks of a full adder and returns the ports the carry
// input must be wired to and the carry output port.
//
func (b *builder) fullAdder() (cin []bs.PortRef, cout bs.PortRef) {
	x1 := b.add(bs.Xor, 0, 0)
	s := b.add(bs.Xor, 1, 0)
	a1 := b.add(bs.And, 0, 1)
	a2 := b.add(bs.And, 1, 1)
	o := b.add(bs.Or, 2, 1)

	b.wire(bs.Pin(x1, bs.PinOut), bs.Pin(s, bs.PinA))
	b.wire(bs.Pin(x1, bs.PinOut), bs.Pin(a2, bs.PinA))
	b.wire(bs.Pin(a1, bs.PinOut), bs.Pin(o, bs.PinA))
	b.wire(bs.Pin(a2, bs.PinOut), bs.Pin(o, bs.PinB))

	b.in(bs.PinA, bs.Pin(x1, bs.PinA), bs.Pin(a1, bs.PinA))
	b.in(bs.PinB, bs.Pin(x1, bs.PinB), bs.Pin(a1, bs.PinB))
	b.out("s", bs.Pin(s, bs.PinOut))
	return []bs.PortRef{bs.Pin(s, bs.PinB), bs.Pin(a2, bs.PinB)}, bs.Pin(o, bs.PinOut)
}

// FullAdder adds a full adder.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func FullAdder(c *bs.Circuit, at bs.Point) (*Assembly, error) {
	b := newBuilder(c, at, "fulladder")
	cin, cout := b.fullAdder()
	b.in("cin", cin...)
	b.out("cout", cout)
	return b.done()
}

// SerialAdder adds a bit-serial adder: a full adder whose carry is held in a
// Memory block between ticks. Feeding it two numbers lsb first yields their
// sum lsb first.
//
//	Inputs: a, b
//	Outputs: s
//	Function: s(t) = lsb(a(t) + b(t) + carry(t-1))
//
func SerialAdder(c *bs.Circuit, at bs.Point) (*Assembly, error) {
	b := newBuilder(c, at, "serialadder")
	cin, cout := b.fullAdder()
	m := b.add(bs.Memory, 2, 0)
	b.wire(cout, bs.Pin(m, bs.PinIn))
	for _, p := range cin {
		b.wire(bs.Pin(m, bs.PinOut), p)
	}
	return b.done()
}
