// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package blocksim

import "go.uber.org/zap"

// SettleResult reports how a call to Settle ended.
//
type SettleResult struct {
	Passes int  // number of propagate/recompute passes run
	Stable bool // false if the pass limit was hit before the signals settled
}

// Settle propagates signals along wires and recomputes every gate until a
// full pass changes nothing or the settle limit is reached. Memory blocks are
// left alone: their output only depends on their committed bit.
//
// Circuits with combinational loops may never settle (a ring of three NOT
// gates oscillates forever). Settle then gives up after SettleLimit passes
// and leaves the signals as last computed. This is an approximation; no
// attempt is made to detect or break loops.
//
func (c *Circuit) Settle() SettleResult {
	for pass := 1; pass <= c.limit; pass++ {
		changed := c.propagate()
		if c.recompute() {
			changed = true
		}
		if !changed {
			return SettleResult{Passes: pass, Stable: true}
		}
	}
	fields := []zap.Field{zap.Int("passes", c.limit)}
	if c.phase == PhaseSettle {
		fields = append(fields, zap.Uint64("tick", c.ticks+1))
	}
	c.log.Warn("circuit did not settle", fields...)
	return SettleResult{Passes: c.limit, Stable: false}
}

// propagate copies the source signal of every wire to its destination and
// reports whether any destination changed.
//
func (c *Circuit) propagate() bool {
	changed := false
	for _, id := range c.worder {
		w := c.wires[id]
		src, dst := c.mustPort(w.from), c.mustPort(w.to)
		if dst.signal != src.signal {
			dst.signal = src.signal
			changed = true
		}
	}
	return changed
}

// recompute runs compute on every non-memory block and reports whether any
// output changed.
//
func (c *Circuit) recompute() bool {
	changed := false
	c.each(func(b *block) {
		if b.kind == Memory {
			return
		}
		if b.compute() {
			changed = true
		}
	})
	return changed
}
