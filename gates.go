// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package blocksim

type gate func(a, b bool) bool

var gates = [kindCount]gate{
	And: func(a, b bool) bool { return a && b },
	Or:  func(a, b bool) bool { return a || b },
	Xor: func(a, b bool) bool { return a && !b || !a && b },
	Not: func(a, _ bool) bool { return !a },
}

// Eval returns the output of a gate of kind k for inputs a and b. The b input
// is ignored by Not gates. Eval panics if k is not a gate.
//
//	AND: out = a && b
//	OR:  out = a || b
//	XOR: out = a != b
//	NOT: out = !a
//
func Eval(k Kind, a, b bool) bool {
	if !k.IsGate() {
		panic("blocksim: " + k.String() + " is not a gate")
	}
	return gates[k](a, b)
}

// evaluate recomputes a gate's output. Unconnected inputs hold a 0 signal, so
// this never fails for partially wired gates.
//
func (b *block) evaluate() bool {
	var x, y bool
	x = b.in[0].signal
	if len(b.in) > 1 {
		y = b.in[1].signal
	}
	return b.drive(gates[b.kind](x, y))
}
