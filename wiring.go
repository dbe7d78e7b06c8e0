// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package blocksim

import (
	"go.uber.org/zap"
)

// a wire always runs from an output port to an input port.
type wire struct {
	id       WireID
	from, to PortRef
}

// Connect wires output port from to input port to.
//
// The connection is rejected, and the circuit left untouched, if from is not
// an output port or to is not an input port (ErrDirection), if both ports
// belong to the same block (ErrSameBlock), or if to is already connected
// (ErrFanIn).
//
func (c *Circuit) Connect(from, to PortRef) (WireID, error) {
	src, err := c.port(from)
	if err != nil {
		return 0, errorf(err, "connect %s to %s", from, to)
	}
	dst, err := c.port(to)
	if err != nil {
		return 0, errorf(err, "connect %s to %s", from, to)
	}
	switch {
	case src.dir != Out || dst.dir != In:
		return 0, errorf(ErrDirection, "connect %s to %s", from, to)
	case from.Block == to.Block:
		return 0, errorf(ErrSameBlock, "connect %s to %s", from, to)
	case len(dst.wires) > 0:
		return 0, errorf(ErrFanIn, "connect %s to %s", from, to)
	}

	c.lastWire++
	id := c.lastWire
	c.wires[id] = &wire{id: id, from: from, to: to}
	c.worder = append(c.worder, id)
	src.attach(id)
	dst.attach(id)
	c.log.Debug("wire added", zap.Uint64("wire", uint64(id)), zap.Stringer("from", from), zap.Stringer("to", to))
	return id, nil
}

// Disconnect removes a wire. The input port it was feeding reverts to a 0
// signal. It returns false if there is no such wire.
//
func (c *Circuit) Disconnect(id WireID) bool {
	if _, ok := c.wires[id]; !ok {
		return false
	}
	c.removeWire(id)
	c.log.Debug("wire removed", zap.Uint64("wire", uint64(id)))
	return true
}

func (c *Circuit) removeWire(id WireID) {
	w := c.wires[id]
	c.mustPort(w.from).detach(id)
	dst := c.mustPort(w.to)
	dst.detach(id)
	dst.signal = false
	delete(c.wires, id)
	for i, wid := range c.worder {
		if wid == id {
			c.worder = append(c.worder[:i], c.worder[i+1:]...)
			break
		}
	}
}

// RemoveBlock removes a block together with every wire attached to any of its
// ports. It returns false if there is no such block.
//
func (c *Circuit) RemoveBlock(id BlockID) bool {
	b, ok := c.blocks[id]
	if !ok {
		return false
	}
	n := 0
	for _, p := range b.ports() {
		// removeWire edits p.wires
		for len(p.wires) > 0 {
			c.removeWire(p.wires[0])
			n++
		}
	}
	delete(c.blocks, id)
	for i, bid := range c.border {
		if bid == id {
			c.border = append(c.border[:i], c.border[i+1:]...)
			break
		}
	}
	c.log.Debug("block removed", zap.Uint64("block", uint64(id)), zap.Int("wires", n))
	return true
}

// check verifies that the block and wire arenas agree with each other: every
// wire is attached to both of its endpoints, every port only lists live
// wires that actually end on it, and input ports have a fan-in of at most
// one.
//
func (c *Circuit) check() error {
	if len(c.border) != len(c.blocks) || len(c.worder) != len(c.wires) {
		return errorf(ErrNoSuchBlock, "arena order out of sync")
	}
	for _, id := range c.worder {
		w, ok := c.wires[id]
		if !ok {
			return errorf(ErrNoSuchWire, "wire %d listed but missing", id)
		}
		for _, r := range []PortRef{w.from, w.to} {
			p, err := c.port(r)
			if err != nil {
				return errorf(err, "wire %d", id)
			}
			if !hasWire(p.wires, id) {
				return errorf(ErrNoSuchWire, "wire %d not attached to %s", id, r)
			}
		}
	}
	for _, bid := range c.border {
		b, ok := c.blocks[bid]
		if !ok {
			return errorf(ErrNoSuchBlock, "block %d listed but missing", bid)
		}
		for _, p := range b.ports() {
			if p.dir == In && len(p.wires) > 1 {
				return errorf(ErrFanIn, "%s", Pin(bid, p.name))
			}
			for _, wid := range p.wires {
				w, ok := c.wires[wid]
				if !ok {
					return errorf(ErrNoSuchWire, "%s lists wire %d", Pin(bid, p.name), wid)
				}
				end := w.from
				if p.dir == In {
					end = w.to
				}
				if end != Pin(bid, p.name) {
					return errorf(ErrNoSuchWire, "%s lists foreign wire %d", Pin(bid, p.name), wid)
				}
			}
		}
	}
	return nil
}

func hasWire(ws []WireID, id WireID) bool {
	for _, w := range ws {
		if w == id {
			return true
		}
	}
	return false
}
