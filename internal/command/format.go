// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package command

import (
	"strconv"
	"strings"

	"github.com/db47h/blocksim"
	"gonum.org/v1/plot/vg"
)

// waveform image size: fixed width, one lane per probe plus room for the
// axis.
const (
	plotWidth = 8 * vg.Inch
	plotLane  = vg.Inch / 2
)

func bit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func blockName(id blocksim.BlockID, k blocksim.Kind) string {
	return strconv.FormatUint(uint64(id), 10) + " (" + k.String() + ")"
}

func pointString(p blocksim.Point) string {
	return "(" + strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y) + ")"
}

// blockString formats a block the way the editor displays it:
//
//	1 INPUT (500,300) stream=0110 idx=2 out=1
//	2 NOT (520,300) in=1 out=0
//	3 OUTPUT (540,300) in=0 history=01
//	4 M (560,300) in=0 out=1 Stored=1
//
func blockString(bi *blocksim.BlockInfo) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(bi.ID), 10) + " " + bi.Kind.String() + " " + pointString(bi.Pos))
	if bi.Kind == blocksim.Input {
		b.WriteString(" stream=" + bi.Stream + " idx=" + strconv.Itoa(bi.Cursor))
	}
	for _, p := range bi.Ports {
		b.WriteString(" " + p.Name + "=" + bit(p.Signal))
	}
	switch bi.Kind {
	case blocksim.Output:
		b.WriteString(" history=" + bi.History)
	case blocksim.Memory:
		b.WriteString(" Stored=" + bit(bi.Stored))
	}
	return b.String()
}

func wireString(w blocksim.WireInfo) string {
	return "wire " + strconv.FormatUint(uint64(w.ID), 10) + ": " + w.From.String() + " -> " + w.To.String() + " =" + bit(w.Signal)
}

func reportString(r blocksim.TickReport) string {
	s := "tick " + strconv.FormatUint(r.Tick, 10) + ": "
	if !r.Settle.Stable {
		return s + "did not settle after " + strconv.Itoa(r.Settle.Passes) + " passes"
	}
	s += "settled in " + strconv.Itoa(r.Settle.Passes) + " pass"
	if r.Settle.Passes != 1 {
		s += "es"
	}
	return s
}
