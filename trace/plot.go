// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trace

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// lane height of a probe in the plot; high signals are drawn at 1 within
// their lane.
const lane = 1.5

// Plot renders all probes as a timing diagram, one lane per probe, first
// probe on top.
//
func (r *Recorder) Plot(title string) (*plot.Plot, error) {
	if len(r.tracks) == 0 {
		return nil, errors.New("no probes")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "tick"
	p.Y.Tick.Marker = plot.ConstantTicks(r.laneTicks())
	p.Y.Min = -0.5
	p.Y.Max = float64(len(r.tracks)) * lane

	for i, t := range r.tracks {
		base := float64(len(r.tracks)-1-i) * lane
		var xys plotter.XYs
		for j, v := range t.samples {
			if !t.valid[j] {
				continue
			}
			y := base
			if v {
				y++
			}
			xys = append(xys, plotter.XY{X: float64(t.start + j + 1), Y: y})
		}
		if len(xys) == 0 {
			continue
		}
		// hold the last value for a full tick
		last := xys[len(xys)-1]
		xys = append(xys, plotter.XY{X: last.X + 1, Y: last.Y})

		l, err := plotter.NewLine(xys)
		if err != nil {
			return nil, errors.Wrapf(err, "probe %s", t.Name)
		}
		l.StepStyle = plotter.PostStep
		l.Color = plotutil.Color(i)
		l.Width = vg.Points(1.5)
		p.Add(l)
	}
	return p, nil
}

func (r *Recorder) laneTicks() []plot.Tick {
	ts := make([]plot.Tick, len(r.tracks))
	for i, t := range r.tracks {
		ts[i] = plot.Tick{Value: float64(len(r.tracks)-1-i)*lane + 0.5, Label: t.Name}
	}
	return ts
}

// Save renders the timing diagram to a file. The image format is picked
// from the file extension (png, svg, pdf, ...).
//
func (r *Recorder) Save(path, title string, width, height vg.Length) error {
	p, err := r.Plot(title)
	if err != nil {
		return err
	}
	return errors.Wrap(p.Save(width, height, path), "save plot")
}
