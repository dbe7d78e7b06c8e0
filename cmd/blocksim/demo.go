// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"math/rand"
	"strings"

	"github.com/db47h/blocksim"
	"github.com/db47h/blocksim/blocklib"
	"github.com/db47h/blocksim/internal/command"
	"github.com/db47h/blocksim/trace"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"
)

var (
	demoTicks   int
	demoSeed    int64
	demoPlot    string
	demoStreams map[string]string
)

var demoCmd = &cobra.Command{
	Use:   "demo [prefab]",
	Short: "Simulate a prefabricated assembly and show its waveforms",
	Long: `Builds a prefabricated assembly, feeds each of its input terminals a bit
stream, runs the clock and prints the waveforms of all terminals.

Available prefabs: ` + strings.Join(blocklib.Names(), ", ") + `.

Streams are given in typing order, the rightmost bit being emitted first.
Terminals without a stream get random bits.

Example:
  blocksim demo serialadder --stream a=0011 --stream b=0001 --ticks 4`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: blocklib.Names(),
	RunE:      runDemo,
}

func init() {
	demoCmd.Flags().IntVarP(&demoTicks, "ticks", "n", 16, "number of clock ticks")
	demoCmd.Flags().Int64Var(&demoSeed, "seed", 1, "random seed for streams not given with --stream")
	demoCmd.Flags().StringVar(&demoPlot, "plot", "", "also save the waveforms to this image file (png, svg, pdf)")
	demoCmd.Flags().StringToStringVarP(&demoStreams, "stream", "s", nil, "input stream for a terminal, as name=bits")
}

func runDemo(cmd *cobra.Command, args []string) error {
	name := "serialadder"
	if len(args) == 1 {
		name = args[0]
	}
	build, ok := blocklib.Lookup(name)
	if !ok {
		return errors.Errorf("unknown prefab %q (available: %s)", name, strings.Join(blocklib.Names(), ", "))
	}
	if demoTicks < 1 {
		return errors.Errorf("invalid tick count %d", demoTicks)
	}

	s := command.New(cfg, logger)
	c, rec := s.Circuit(), s.Recorder()
	asm, err := build(c, cfg.Editor.Spawn)
	if err != nil {
		return err
	}

	for n := range demoStreams {
		if _, ok := asm.Inputs[n]; !ok {
			return errors.Errorf("%s has no input terminal %q", asm.Name, n)
		}
	}
	rnd := rand.New(rand.NewSource(demoSeed))
	for i, n := range asm.InputNames() {
		bits, ok := demoStreams[n]
		if !ok {
			bits = randomBits(rnd, demoTicks)
		}
		in := c.AddBlock(blocksim.Input, cfg.Editor.Snap(blocksim.Point{X: cfg.Editor.Spawn.X - 140, Y: cfg.Editor.Spawn.Y + i*100}))
		src := blocksim.Pin(in, blocksim.PinOut)
		if err = asm.Attach(c, src, n); err != nil {
			return err
		}
		if err = c.SetInputStream(in, bits); err != nil {
			return err
		}
		if err = rec.Add(trace.Probe{Name: n, Port: src}); err != nil {
			return err
		}
	}
	for _, n := range asm.OutputNames() {
		if err = rec.Add(trace.Probe{Name: n, Port: asm.Outputs[n]}); err != nil {
			return err
		}
	}

	r := c.TickN(demoTicks)
	logger.Debug("demo done",
		zap.String("prefab", asm.Name),
		zap.Uint64("tick", r.Tick),
		zap.Int("blocks", c.Size()))

	if _, err = rec.WriteTo(cmd.OutOrStdout()); err != nil {
		return err
	}
	if demoPlot != "" {
		return rec.Save(demoPlot, asm.Name, 8*vg.Inch, vg.Length(len(rec.Probes())+1)*vg.Inch/2)
	}
	return nil
}

func randomBits(rnd *rand.Rand, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + rnd.Intn(2)))
	}
	return b.String()
}
