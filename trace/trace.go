// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package trace records port signals tick after tick and renders them as
// waveforms.
//
package trace

import (
	"io"
	"strings"

	"github.com/db47h/blocksim"
	"github.com/pkg/errors"
)

// A Probe names a port to record.
//
type Probe struct {
	Name string
	Port blocksim.PortRef
}

type track struct {
	Probe
	start   int // index of the first sample
	samples []bool
	valid   []bool // false once the port is gone
}

// Recorder samples a set of probes at the end of every tick.
//
type Recorder struct {
	tracks []*track
	ticks  []uint64
}

// NewRecorder returns a recorder for the given probes.
//
func NewRecorder(probes ...Probe) *Recorder {
	r := &Recorder{}
	for _, p := range probes {
		r.tracks = append(r.tracks, &track{Probe: p})
	}
	return r
}

// Attach registers r as a tick hook of c, so that it samples its probes at
// the end of every tick.
//
func (r *Recorder) Attach(c *blocksim.Circuit) {
	c.OnTick(r.Sample)
}

// Add adds a probe. Its waveform starts with the next sample.
//
func (r *Recorder) Add(p Probe) error {
	if p.Name == "" {
		return errors.New("empty probe name")
	}
	for _, t := range r.tracks {
		if t.Name == p.Name {
			return errors.Errorf("duplicate probe name %q", p.Name)
		}
	}
	r.tracks = append(r.tracks, &track{Probe: p, start: len(r.ticks)})
	return nil
}

// Probes returns the recorded probes.
//
func (r *Recorder) Probes() []Probe {
	ps := make([]Probe, len(r.tracks))
	for i, t := range r.tracks {
		ps[i] = t.Probe
	}
	return ps
}

// Sample records the current signal of every probe. It has the signature of
// a blocksim.TickHook.
//
func (r *Recorder) Sample(c *blocksim.Circuit, rep blocksim.TickReport) {
	r.ticks = append(r.ticks, rep.Tick)
	for _, t := range r.tracks {
		v, err := c.Signal(t.Port)
		t.samples = append(t.samples, v)
		t.valid = append(t.valid, err == nil)
	}
}

// Len returns the number of samples taken.
//
func (r *Recorder) Len() int { return len(r.ticks) }

// Ticks returns the tick number of every sample.
//
func (r *Recorder) Ticks() []uint64 {
	return append([]uint64(nil), r.ticks...)
}

// Signal returns the samples of the named probe, starting with the first
// sample taken after the probe was added.
//
func (r *Recorder) Signal(name string) ([]bool, bool) {
	for _, t := range r.tracks {
		if t.Name == name {
			return append([]bool(nil), t.samples...), true
		}
	}
	return nil, false
}

// Reset discards all samples, keeping probes.
//
func (r *Recorder) Reset() {
	r.ticks = nil
	for _, t := range r.tracks {
		t.start, t.samples, t.valid = 0, nil, nil
	}
}

// WriteTo writes an ASCII waveform of all probes to w:
//
//	a   |‾‾__‾_
//	out |__‾‾_‾
//
// Samples taken before a probe was added are left blank, samples of ports
// that no longer exist are rendered as 'x'.
//
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	width := 0
	for _, t := range r.tracks {
		if len(t.Name) > width {
			width = len(t.Name)
		}
	}
	var sb strings.Builder
	for _, t := range r.tracks {
		sb.WriteString(t.Name)
		sb.WriteString(strings.Repeat(" ", width-len(t.Name)))
		sb.WriteString(" |")
		sb.WriteString(strings.Repeat(" ", t.start))
		for i, v := range t.samples {
			switch {
			case !t.valid[i]:
				sb.WriteByte('x')
			case v:
				sb.WriteString("‾")
			default:
				sb.WriteByte('_')
			}
		}
		sb.WriteByte('\n')
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// String returns the ASCII waveform.
//
func (r *Recorder) String() string {
	var sb strings.Builder
	r.WriteTo(&sb)
	return sb.String()
}
