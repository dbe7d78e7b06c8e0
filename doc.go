/*
Package blocksim is a clocked simulator for small digital logic networks built
out of blocks and wires.

A Circuit holds blocks of a handful of kinds: Input blocks that replay a
stream of bits (lsb first), Output blocks that record what they see, AND, OR,
XOR and NOT gates, and 1 bit Memory registers. Wires run from the output port
of one block to an input port of another; an input port takes at most one
wire while an output port can feed any number of them.

Each call to Circuit.Tick runs one clock cycle: inputs emit their next bit, the
combinational logic is settled by repeatedly propagating signals along wires
and recomputing gates, outputs capture their input, and memory blocks latch
their input in two phases (all captures, then all commits) so that the order
in which blocks are visited never matters.

Settling is bounded: a circuit with a combinational loop that oscillates is
left in whatever state it was in after SettleLimit passes.

	c := blocksim.New()
	in := c.AddBlock(blocksim.Input, blocksim.Point{})
	not := c.AddBlock(blocksim.Not, blocksim.Point{})
	out := c.AddBlock(blocksim.Output, blocksim.Point{})
	c.Connect(blocksim.Pin(in, "out"), blocksim.Pin(not, "in"))
	c.Connect(blocksim.Pin(not, "out"), blocksim.Pin(out, "in"))
	c.SetInputStream(in, "110")
	c.TickN(3)
	bi, _ := c.Block(out)
	fmt.Println(bi.History) // 001

*/
package blocksim
