// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package blocksim

import (
	"strconv"

	"go.uber.org/zap"
)

// Phase is a step of the clock tick state machine.
//
type Phase int

// Tick phases, in the order they run.
//
const (
	PhaseIdle Phase = iota
	PhaseSampleInputs
	PhaseSettle
	PhaseCaptureOutputs
	PhaseCaptureMemory
	PhaseCommitMemory
)

var phaseNames = [...]string{
	PhaseIdle:           "idle",
	PhaseSampleInputs:   "sample-inputs",
	PhaseSettle:         "settle",
	PhaseCaptureOutputs: "capture-outputs",
	PhaseCaptureMemory:  "capture-memory",
	PhaseCommitMemory:   "commit-memory",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "Phase(" + strconv.Itoa(int(p)) + ")"
	}
	return phaseNames[p]
}

// TickReport summarizes a clock tick.
//
type TickReport struct {
	Tick     uint64 // tick number, starting at 1
	Inputs   int    // Input blocks sampled
	Outputs  int    // Output blocks captured
	Memories int    // Memory blocks committed
	Settle   SettleResult
}

// Tick runs one full clock cycle:
//
//	1. every Input block emits its next bit,
//	2. every block computes its output once (Memory blocks drive their
//	   committed bit),
//	3. the circuit settles (see Settle),
//	4. every Output block captures its input,
//	5. every Memory block captures its input,
//	6. every Memory block commits the captured bit.
//
// Because all memory blocks capture before any of them commits, a memory
// block never sees the value another memory block committed during the same
// tick.
//
// Tick must not be called while a tick is in progress; it panics if it is.
// Hooks registered with OnTick run after the circuit is back to PhaseIdle.
//
func (c *Circuit) Tick() TickReport {
	if c.phase != PhaseIdle {
		panic("blocksim: Tick called during " + c.phase.String())
	}
	r := TickReport{Tick: c.ticks + 1}

	c.phase = PhaseSampleInputs
	c.each(func(b *block) {
		if b.kind == Input {
			b.advanceBit()
			r.Inputs++
		}
	})

	c.phase = PhaseSettle
	c.each(func(b *block) { b.compute() })
	r.Settle = c.Settle()

	c.phase = PhaseCaptureOutputs
	c.each(func(b *block) {
		if b.kind == Output {
			b.captureBit()
			r.Outputs++
		}
	})

	c.phase = PhaseCaptureMemory
	c.each(func(b *block) {
		if b.kind == Memory {
			b.capture()
		}
	})

	c.phase = PhaseCommitMemory
	c.each(func(b *block) {
		if b.kind == Memory {
			b.commit()
			r.Memories++
		}
	})

	c.phase = PhaseIdle
	c.ticks++
	c.log.Debug("tick",
		zap.Uint64("tick", r.Tick),
		zap.Int("passes", r.Settle.Passes),
		zap.Bool("stable", r.Settle.Stable))
	for _, h := range c.hooks {
		h(c, r)
	}
	return r
}

// TickN runs n clock ticks and returns the report of the last one.
//
func (c *Circuit) TickN(n int) TickReport {
	var r TickReport
	for i := 0; i < n; i++ {
		r = c.Tick()
	}
	return r
}

// Reset brings the circuit back to its power-on state while keeping blocks,
// wires and input streams: input cursors are rewound, output histories
// cleared, memory blocks and all port signals set to 0 and the tick counter
// reset.
//
func (c *Circuit) Reset() {
	c.each(func(b *block) {
		b.cursor = 0
		b.captured = nil
		b.stored, b.pending = false, false
		for _, p := range b.ports() {
			p.signal = false
		}
	})
	c.ticks = 0
	c.log.Debug("reset")
}
