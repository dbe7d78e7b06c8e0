// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package blocksim

// Memory blocks are 1 bit registers:
//
//	Inputs: in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the current clock tick.
//
// The update is split in two phases so that the order in which memory blocks
// are visited never matters: every memory block captures its input before any
// of them commits.

// readOutput drives the committed bit.
//
func (b *block) readOutput() bool {
	return b.drive(b.stored)
}

// capture latches the input into the pending slot.
//
func (b *block) capture() {
	b.pending = b.in[0].signal
}

// commit makes the pending bit the committed bit.
//
func (b *block) commit() {
	b.stored = b.pending
}
