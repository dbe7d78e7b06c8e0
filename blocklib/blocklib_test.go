// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package blocklib_test

import (
	"testing"

	bs "github.com/db47h/blocksim"
	"github.com/db47h/blocksim/blocklib"
	"github.com/db47h/blocksim/blocktest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestHalfAdder(t *testing.T) {
	blocktest.CompareAssembly(t, blocklib.HalfAdder, func(in map[string]bool) map[string]bool {
		s := b2i(in["a"]) + b2i(in["b"])
		return map[string]bool{"s": s&1 != 0, "c": s&2 != 0}
	}, 64)
}

func TestFullAdder(t *testing.T) {
	blocktest.CompareAssembly(t, blocklib.FullAdder, func(in map[string]bool) map[string]bool {
		s := b2i(in["a"]) + b2i(in["b"]) + b2i(in["cin"])
		return map[string]bool{"s": s&1 != 0, "cout": s&2 != 0}
	}, 128)
}

func TestMux(t *testing.T) {
	blocktest.CompareAssembly(t, blocklib.Mux, func(in map[string]bool) map[string]bool {
		if in["sel"] {
			return map[string]bool{"out": in["b"]}
		}
		return map[string]bool{"out": in["a"]}
	}, 128)
}

func TestSerialAdder(t *testing.T) {
	carry := 0
	blocktest.CompareAssembly(t, blocklib.SerialAdder, func(in map[string]bool) map[string]bool {
		s := b2i(in["a"]) + b2i(in["b"]) + carry
		carry = s >> 1
		return map[string]bool{"s": s&1 != 0}
	}, 256)
}

// 3 + 1, lsb first.
func TestSerialAdder_sum(t *testing.T) {
	c := bs.New()
	asm, err := blocklib.SerialAdder(c, bs.Point{})
	require.NoError(t, err)
	a := c.AddBlock(bs.Input, bs.Point{})
	b := c.AddBlock(bs.Input, bs.Point{})
	out := c.AddBlock(bs.Output, bs.Point{})
	require.NoError(t, asm.Attach(c, bs.Pin(a, bs.PinOut), "a"))
	require.NoError(t, asm.Attach(c, bs.Pin(b, bs.PinOut), "b"))
	_, err = asm.Connect(c, "s", bs.Pin(out, bs.PinIn))
	require.NoError(t, err)
	require.NoError(t, c.SetInputStream(a, "011"))
	require.NoError(t, c.SetInputStream(b, "001"))

	c.TickN(3)
	bi, err := c.Block(out)
	require.NoError(t, err)
	assert.Equal(t, "100", bi.History)
}

func TestToggle(t *testing.T) {
	blocktest.CompareAssembly(t, blocklib.Toggle, func() blocktest.Reference {
		v := true
		return func(map[string]bool) map[string]bool {
			v = !v
			return map[string]bool{"out": v}
		}
	}(), 16)
}

func TestShiftRegister(t *testing.T) {
	for _, n := range []int{1, 3, 8} {
		q := make([]bool, n)
		blocktest.CompareAssembly(t, blocklib.ShiftRegister(n), func(in map[string]bool) map[string]bool {
			out := q[0]
			q = append(q[1:], in["in"])
			return map[string]bool{"out": out}
		}, 64)
	}

	c := bs.New()
	_, err := blocklib.ShiftRegister(0)(c, bs.Point{})
	assert.EqualError(t, err, "invalid shift register length 0")
	assert.Zero(t, c.Size())
}

func TestAssembly_terminals(t *testing.T) {
	c := bs.New()
	asm, err := blocklib.FullAdder(c, bs.Point{X: 100, Y: 50})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "cin"}, asm.InputNames())
	assert.Equal(t, []string{"cout", "s"}, asm.OutputNames())
	assert.Len(t, asm.Blocks, 5)

	bi, err := c.Block(asm.Blocks[0])
	require.NoError(t, err)
	assert.Equal(t, bs.Point{X: 100, Y: 50}, bi.Pos)

	in := c.AddBlock(bs.Input, bs.Point{})
	assert.EqualError(t, asm.Attach(c, bs.Pin(in, bs.PinOut), "x"), `fulladder has no input terminal "x"`)
	_, err = asm.Connect(c, "y", bs.Pin(in, bs.PinOut))
	assert.EqualError(t, err, `fulladder has no output terminal "y"`)
	// wrong direction is reported with the terminal name
	_, err = asm.Connect(c, "s", bs.Pin(in, bs.PinOut))
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "fulladder.s")
	}

	asm.Remove(c)
	assert.Equal(t, 1, c.Size())
	assert.Empty(t, c.Wires())
}

func TestAssembly_attachRejected(t *testing.T) {
	c := bs.New()
	asm, err := blocklib.HalfAdder(c, bs.Point{})
	require.NoError(t, err)
	busy := c.AddBlock(bs.Input, bs.Point{})
	// the second port of terminal a is already taken
	_, err = c.Connect(bs.Pin(busy, bs.PinOut), asm.Inputs["a"][1])
	require.NoError(t, err)
	before := c.Wires()

	in := c.AddBlock(bs.Input, bs.Point{})
	err = asm.Attach(c, bs.Pin(in, bs.PinOut), "a")
	if assert.Error(t, err) {
		assert.Equal(t, bs.ErrFanIn, errors.Cause(err))
		assert.Contains(t, err.Error(), "halfadder.a")
	}
	assert.Equal(t, before, c.Wires())
	v, err := c.Signal(asm.Inputs["a"][0])
	require.NoError(t, err)
	assert.False(t, v)
	bi, err := c.Block(in)
	require.NoError(t, err)
	p, _ := bi.Port(bs.PinOut)
	assert.Empty(t, p.Wires)
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"fulladder", "halfadder", "mux", "serialadder", "shift4", "toggle"}, blocklib.Names())
	for _, n := range blocklib.Names() {
		b, ok := blocklib.Lookup(n)
		require.True(t, ok, n)
		c := bs.New()
		asm, err := b(c, bs.Point{})
		require.NoError(t, err, n)
		assert.NotEmpty(t, asm.Blocks)
		assert.NotEmpty(t, asm.Outputs)
		assert.Equal(t, len(asm.Blocks), c.Size(), n)
	}
	_, ok := blocklib.Lookup("cpu")
	assert.False(t, ok)
}
