// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package blocksim

// PortInfo is a snapshot of a port.
//
type PortInfo struct {
	Name   string
	Dir    Dir
	Signal bool
	Wires  []WireID
}

// BlockInfo is a snapshot of a block's state. Only the fields relevant to the
// block's kind are set.
//
type BlockInfo struct {
	ID    BlockID
	Kind  Kind
	Pos   Point
	Ports []PortInfo // inputs first, then the output if any

	Stream  string // Input: bits in typing order
	Cursor  int    // Input: number of bits already emitted
	History string // Output: captured bits, most recent first
	Stored  bool   // Memory: committed bit
}

// Port returns the named port snapshot.
//
func (bi *BlockInfo) Port(name string) (PortInfo, bool) {
	for _, p := range bi.Ports {
		if p.Name == name {
			return p, true
		}
	}
	return PortInfo{}, false
}

// Block returns a snapshot of a block.
//
func (c *Circuit) Block(id BlockID) (BlockInfo, error) {
	b, err := c.block(id)
	if err != nil {
		return BlockInfo{}, err
	}
	bi := BlockInfo{ID: id, Kind: b.kind, Pos: b.pos}
	for _, p := range b.ports() {
		bi.Ports = append(bi.Ports, PortInfo{
			Name:   p.name,
			Dir:    p.dir,
			Signal: p.signal,
			Wires:  append([]WireID(nil), p.wires...),
		})
	}
	switch b.kind {
	case Input:
		bi.Stream, bi.Cursor = b.stream, b.cursor
	case Output:
		bi.History = b.history()
	case Memory:
		bi.Stored = b.stored
	}
	return bi, nil
}

// WireInfo is a snapshot of a wire.
//
type WireInfo struct {
	ID       WireID
	From, To PortRef
	Signal   bool // signal of the source port
}

// Wire returns a snapshot of a wire.
//
func (c *Circuit) Wire(id WireID) (WireInfo, error) {
	w, ok := c.wires[id]
	if !ok {
		return WireInfo{}, errorf(ErrNoSuchWire, "wire %d", id)
	}
	return WireInfo{ID: id, From: w.from, To: w.to, Signal: c.mustPort(w.from).signal}, nil
}

// Wires returns snapshots of all wires in insertion order.
//
func (c *Circuit) Wires() []WireInfo {
	ws := make([]WireInfo, 0, len(c.worder))
	for _, id := range c.worder {
		w, _ := c.Wire(id)
		ws = append(ws, w)
	}
	return ws
}
