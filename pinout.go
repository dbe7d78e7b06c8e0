// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package blocksim

import (
	"strconv"

	"github.com/pkg/errors"
)

// Common port names.
//
const (
	PinA   = "a"
	PinB   = "b"
	PinIn  = "in"
	PinOut = "out"
)

// Dir is the direction of a port.
//
type Dir int

// Port directions.
//
const (
	In  Dir = iota // fan-in of at most one wire
	Out            // unrestricted fan-out
)

func (d Dir) String() string {
	if d == In {
		return "in"
	}
	return "out"
}

type pinout struct {
	in  []string
	out string
}

// port names are stable for the lifetime of a block.
var pinouts = [kindCount]pinout{
	Input:  {out: PinOut},
	Output: {in: []string{PinIn}},
	And:    {in: []string{PinA, PinB}, out: PinOut},
	Or:     {in: []string{PinA, PinB}, out: PinOut},
	Xor:    {in: []string{PinA, PinB}, out: PinOut},
	Not:    {in: []string{PinIn}, out: PinOut},
	Memory: {in: []string{PinIn}, out: PinOut},
}

// Inputs returns the names of the input ports of a block of kind k.
//
func (k Kind) Inputs() []string {
	if !k.Valid() {
		return nil
	}
	return append([]string(nil), pinouts[k].in...)
}

// Output returns the name of the output port of a block of kind k, or an
// empty string if it has none.
//
func (k Kind) Output() string {
	if !k.Valid() {
		return ""
	}
	return pinouts[k].out
}

// PortRef refers to a port by block ID and port name.
//
type PortRef struct {
	Block BlockID
	Port  string
}

// Pin returns a PortRef for the named port of block id.
//
func Pin(id BlockID, name string) PortRef {
	return PortRef{Block: id, Port: name}
}

// String returns the "block.port" form of r, as accepted by ParsePortRef.
//
func (r PortRef) String() string {
	return strconv.FormatUint(uint64(r.Block), 10) + "." + r.Port
}

type port struct {
	name   string
	dir    Dir
	signal bool
	wires  []WireID
}

func (p *port) attach(id WireID) {
	p.wires = append(p.wires, id)
}

func (p *port) detach(id WireID) {
	for i, w := range p.wires {
		if w == id {
			p.wires = append(p.wires[:i], p.wires[i+1:]...)
			return
		}
	}
}

// port resolves a port reference.
//
func (c *Circuit) port(r PortRef) (*port, error) {
	b, err := c.block(r.Block)
	if err != nil {
		return nil, err
	}
	p := b.port(r.Port)
	if p == nil {
		return nil, errorf(ErrNoSuchPort, "%s block %d has no port %q", b.kind, r.Block, r.Port)
	}
	return p, nil
}

// mustPort resolves a port reference held by a wire. Wires never outlive
// their endpoints, so a failure here is a bug in the engine.
//
func (c *Circuit) mustPort(r PortRef) *port {
	p, err := c.port(r)
	if err != nil {
		panic(errors.Wrap(err, "blocksim: dangling wire endpoint"))
	}
	return p
}

// Signal returns the current signal of a port.
//
func (c *Circuit) Signal(r PortRef) (bool, error) {
	p, err := c.port(r)
	if err != nil {
		return false, err
	}
	return p.signal, nil
}
