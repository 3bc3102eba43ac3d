// Package stats summarises the structure codes of a mapped grid.
package stats

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Structure code bounds, mirroring the grid conventions.
const (
	excluded = 128
	invalid  = 200
)

// ErrEmpty is returned when there is nothing to plot.
var ErrEmpty = errors.New("stats: no samples")

// Counts holds the number of samples carrying each structure code.
type Counts [256]int

// Histogram counts the structure codes.
func Histogram(structure []uint8) Counts {
	var c Counts
	for _, s := range structure {
		c[s]++
	}
	return c
}

// Total returns the number of samples.
func (c *Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Active returns the number of samples with a code below 128.
func (c *Counts) Active() int {
	n := 0
	for _, v := range c[:excluded] {
		n += v
	}
	return n
}

// Invalid returns the number of out-of-domain samples.
func (c *Counts) Invalid() int {
	return c[invalid]
}

// MaxActiveCode returns the largest code below 128 that occurs, or -1.
func (c *Counts) MaxActiveCode() int {
	for code := excluded - 1; code >= 0; code-- {
		if c[code] > 0 {
			return code
		}
	}
	return -1
}

// Plot builds a bar chart of the active codes 0..MaxActiveCode.
func Plot(c Counts, title string) (*plot.Plot, error) {
	top := c.MaxActiveCode()
	if top < 0 {
		return nil, ErrEmpty
	}

	values := make(plotter.Values, top+1)
	for code := range values {
		values[code] = float64(c[code])
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "structure code"
	p.Y.Label.Text = "samples"
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(values, vg.Points(8))
	if err != nil {
		return nil, fmt.Errorf("stats: bar chart: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	return p, nil
}

// WritePNG renders the bar chart of c as a PNG image to w.
func WritePNG(w io.Writer, c Counts, title string) error {
	p, err := Plot(c, title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("stats: render: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("stats: write: %w", err)
	}
	return nil
}

// Save renders the bar chart of c to path. The format follows the
// extension (png, svg, pdf, ...).
func Save(path string, c Counts, title string) error {
	p, err := Plot(c, title)
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("stats: save: %w", err)
	}
	return nil
}
