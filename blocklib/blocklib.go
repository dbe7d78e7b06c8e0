// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package blocklib provides a library of reusable assemblies built out of
// blocksim blocks.
//
package blocklib

import (
	"sort"

	"github.com/db47h/blocksim"
	"github.com/pkg/errors"
)

// An Assembly is a group of blocks added to a circuit, with named terminals.
//
// An input terminal may feed several input ports inside the assembly, hence
// the slice. Output terminals are a single output port.
//
type Assembly struct {
	Name    string
	Blocks  []blocksim.BlockID
	Inputs  map[string][]blocksim.PortRef
	Outputs map[string]blocksim.PortRef
}

// A Builder adds an assembly to circuit c, with its top-left block at
// position at.
//
type Builder func(c *blocksim.Circuit, at blocksim.Point) (*Assembly, error)

// InputNames returns the sorted names of the input terminals.
//
func (a *Assembly) InputNames() []string {
	ns := make([]string, 0, len(a.Inputs))
	for n := range a.Inputs {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}

// OutputNames returns the sorted names of the output terminals.
//
func (a *Assembly) OutputNames() []string {
	ns := make([]string, 0, len(a.Outputs))
	for n := range a.Outputs {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}

// Attach wires output port src to every port of the named input terminal.
// If any of the connections is rejected, the ones already made are removed
// and c is left as it was.
//
func (a *Assembly) Attach(c *blocksim.Circuit, src blocksim.PortRef, terminal string) error {
	dsts, ok := a.Inputs[terminal]
	if !ok {
		return errors.Errorf("%s has no input terminal %q", a.Name, terminal)
	}
	ws := make([]blocksim.WireID, 0, len(dsts))
	for _, dst := range dsts {
		id, err := c.Connect(src, dst)
		if err != nil {
			for _, w := range ws {
				c.Disconnect(w)
			}
			return errors.Wrapf(err, "%s.%s", a.Name, terminal)
		}
		ws = append(ws, id)
	}
	return nil
}

// Connect wires the named output terminal to input port dst.
//
func (a *Assembly) Connect(c *blocksim.Circuit, terminal string, dst blocksim.PortRef) (blocksim.WireID, error) {
	src, ok := a.Outputs[terminal]
	if !ok {
		return 0, errors.Errorf("%s has no output terminal %q", a.Name, terminal)
	}
	id, err := c.Connect(src, dst)
	return id, errors.Wrapf(err, "%s.%s", a.Name, terminal)
}

// Remove removes all of the assembly's blocks from c.
//
func (a *Assembly) Remove(c *blocksim.Circuit) {
	for _, id := range a.Blocks {
		c.RemoveBlock(id)
	}
}

// builder collects the blocks of an assembly under construction. The first
// error is kept and every later call is a no-op.
//
type builder struct {
	c   *blocksim.Circuit
	at  blocksim.Point
	asm *Assembly
	err error
}

// block column and row spacing.
const (
	dx = 140
	dy = 100
)

func newBuilder(c *blocksim.Circuit, at blocksim.Point, name string) *builder {
	return &builder{
		c:  c,
		at: at,
		asm: &Assembly{
			Name:    name,
			Inputs:  make(map[string][]blocksim.PortRef),
			Outputs: make(map[string]blocksim.PortRef),
		},
	}
}

// add adds a block in grid cell (col, row).
//
func (b *builder) add(k blocksim.Kind, col, row int) blocksim.BlockID {
	id := b.c.AddBlock(k, blocksim.Point{X: b.at.X + col*dx, Y: b.at.Y + row*dy})
	b.asm.Blocks = append(b.asm.Blocks, id)
	return id
}

func (b *builder) wire(from, to blocksim.PortRef) {
	if b.err != nil {
		return
	}
	if _, err := b.c.Connect(from, to); err != nil {
		b.err = errors.Wrap(err, b.asm.Name)
	}
}

func (b *builder) in(name string, ports ...blocksim.PortRef) {
	b.asm.Inputs[name] = append(b.asm.Inputs[name], ports...)
}

func (b *builder) out(name string, port blocksim.PortRef) {
	b.asm.Outputs[name] = port
}

// done returns the assembly, or removes all its blocks and returns the first
// error encountered.
//
func (b *builder) done() (*Assembly, error) {
	if b.err != nil {
		b.asm.Remove(b.c)
		return nil, b.err
	}
	return b.asm, nil
}

var prefabs = map[string]Builder{
	"halfadder":   HalfAdder,
	"fulladder":   FullAdder,
	"serialadder": SerialAdder,
	"mux":         Mux,
	"toggle":      Toggle,
	"shift4":      ShiftRegister(4),
}

// Lookup returns the named builder.
//
func Lookup(name string) (Builder, bool) {
	b, ok := prefabs[name]
	return b, ok
}

// Names returns the sorted names of all assemblies known to Lookup.
//
func Names() []string {
	ns := make([]string, 0, len(prefabs))
	for n := range prefabs {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}
