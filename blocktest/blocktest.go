// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package blocktest provides utility functions for testing circuits.
//
package blocktest

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/blocksim"
	"github.com/db47h/blocksim/blocklib"
	"github.com/stretchr/testify/require"
)

// Stream returns the Input block stream that emits v[0], v[1], ... on
// successive ticks. Streams are emitted lsb first, so this is v reversed.
//
func Stream(v []bool) string {
	var b strings.Builder
	for i := len(v) - 1; i >= 0; i-- {
		if v[i] {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Captured decodes an Output block history (most recent first) into the
// sequence of captured bits, oldest first.
//
func Captured(history string) []bool {
	v := make([]bool, len(history))
	for i := range history {
		v[len(v)-1-i] = history[i] == '1'
	}
	return v
}

// CheckGate drives a gate of kind k through every combination of its inputs,
// one combination per tick, and fails t wherever the output differs from
// want. Combinations are numbered with the first input as the msb:
//
//	want[0]: a=0, b=0
//	want[1]: a=0, b=1
//	want[2]: a=1, b=0
//	want[3]: a=1, b=1
//
func CheckGate(t testing.TB, k blocksim.Kind, want []bool) {
	t.Helper()

	ins := k.Inputs()
	n := 1 << uint(len(ins))
	require.Len(t, want, n, "%s truth table size", k)

	c := blocksim.New()
	g := c.AddBlock(k, blocksim.Point{})
	out := c.AddBlock(blocksim.Output, blocksim.Point{})
	_, err := c.Connect(blocksim.Pin(g, k.Output()), blocksim.Pin(out, blocksim.PinIn))
	require.NoError(t, err)

	for i, name := range ins {
		in := c.AddBlock(blocksim.Input, blocksim.Point{})
		_, err := c.Connect(blocksim.Pin(in, blocksim.PinOut), blocksim.Pin(g, name))
		require.NoError(t, err)
		v := make([]bool, n)
		for j := range v {
			v[j] = j>>uint(len(ins)-1-i)&1 != 0
		}
		require.NoError(t, c.SetInputStream(in, Stream(v)))
	}

	c.TickN(n)
	bi, err := c.Block(out)
	require.NoError(t, err)
	got := Captured(bi.History)
	for j := range want {
		if got[j] != want[j] {
			t.Errorf("%s %0*b = %v, got %v", k, len(ins), j, want[j], got[j])
		}
	}
}

// A Reference computes the expected outputs of an assembly for one tick from
// that tick's inputs. It may keep state across calls to model sequential
// assemblies.
//
type Reference func(in map[string]bool) map[string]bool

// CompareAssembly builds an assembly in a new circuit, feeds each of its
// input terminals a random stream of the given length, and fails t at the
// first tick where an output terminal differs from ref.
//
func CompareAssembly(t testing.TB, build blocklib.Builder, ref Reference, ticks int) {
	t.Helper()

	seed := time.Now().UnixNano()
	rnd := rand.New(rand.NewSource(seed))

	c := blocksim.New()
	asm, err := build(c, blocksim.Point{})
	require.NoError(t, err)

	inNames, outNames := asm.InputNames(), asm.OutputNames()
	inputs := make(map[string][]bool, len(inNames))
	for _, n := range inNames {
		v := make([]bool, ticks)
		for i := range v {
			v[i] = rnd.Int63()&(1<<62) != 0
		}
		inputs[n] = v
		in := c.AddBlock(blocksim.Input, blocksim.Point{})
		require.NoError(t, asm.Attach(c, blocksim.Pin(in, blocksim.PinOut), n))
		require.NoError(t, c.SetInputStream(in, Stream(v)))
	}
	outs := make(map[string]blocksim.BlockID, len(outNames))
	for _, n := range outNames {
		out := c.AddBlock(blocksim.Output, blocksim.Point{})
		_, err := asm.Connect(c, n, blocksim.Pin(out, blocksim.PinIn))
		require.NoError(t, err)
		outs[n] = out
	}

	start := time.Now()
	c.TickN(ticks)
	elapsed := time.Since(start)

	got := make(map[string][]bool, len(outs))
	for n, id := range outs {
		bi, err := c.Block(id)
		require.NoError(t, err)
		got[n] = Captured(bi.History)
	}
	for i := 0; i < ticks; i++ {
		in := make(map[string]bool, len(inputs))
		for n, v := range inputs {
			in[n] = v[i]
		}
		want := ref(in)
		for _, n := range outNames {
			if got[n][i] != want[n] {
				t.Fatalf("%s (seed %d) tick %d: inputs %v: expected %s=%v, got %v", asm.Name, seed, i+1, in, n, want[n], got[n][i])
			}
		}
	}
	t.Logf("%d blocks. %d ticks in %v", c.Size(), ticks, elapsed)
}
