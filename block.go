// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package blocksim

import "strconv"

// Kind is the block variant tag.
//
type Kind int

// Block kinds.
//
const (
	Input Kind = iota
	Output
	And
	Or
	Xor
	Not
	Memory
	kindCount
)

var kindNames = [kindCount]string{
	Input:  "INPUT",
	Output: "OUTPUT",
	And:    "AND",
	Or:     "OR",
	Xor:    "XOR",
	Not:    "NOT",
	Memory: "M",
}

func (k Kind) String() string {
	if !k.Valid() {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Valid returns true if k is one of the defined block kinds.
//
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

// IsGate returns true for the combinational logic gates.
//
func (k Kind) IsGate() bool {
	switch k {
	case And, Or, Xor, Not:
		return true
	}
	return false
}

// Kinds returns all block kinds, in toolbar order.
//
func Kinds() []Kind {
	return []Kind{Input, Output, And, Or, Xor, Not, Memory}
}

// block is the tagged union of all block variants. Which of the state fields
// are in use depends on kind.
//
type block struct {
	id   BlockID
	kind Kind
	pos  Point
	in   []*port
	out  *port // nil for Output blocks

	// Input
	stream string
	cursor int

	// Output, in capture order
	captured []bool

	// Memory
	stored  bool
	pending bool
}

func newBlock(id BlockID, k Kind, pos Point) *block {
	b := &block{id: id, kind: k, pos: pos}
	po := pinouts[k]
	for _, name := range po.in {
		b.in = append(b.in, &port{name: name, dir: In})
	}
	if po.out != "" {
		b.out = &port{name: po.out, dir: Out}
	}
	return b
}

// port returns the named port or nil.
//
func (b *block) port(name string) *port {
	if b.out != nil && b.out.name == name {
		return b.out
	}
	for _, p := range b.in {
		if p.name == name {
			return p
		}
	}
	return nil
}

// ports returns all ports, inputs first.
//
func (b *block) ports() []*port {
	ps := append([]*port(nil), b.in...)
	if b.out != nil {
		ps = append(ps, b.out)
	}
	return ps
}

// compute recomputes the block's output from its current inputs and the
// block's committed state. It reports whether the output signal changed.
//
func (b *block) compute() bool {
	switch b.kind {
	case Input, Output:
		// Inputs only change in advanceBit, outputs are sinks.
		return false
	case And, Or, Xor, Not:
		return b.evaluate()
	case Memory:
		return b.readOutput()
	}
	panic("blocksim: unhandled block kind " + b.kind.String())
}

// drive sets the output signal and reports whether it changed.
//
func (b *block) drive(v bool) bool {
	changed := b.out.signal != v
	b.out.signal = v
	return changed
}
