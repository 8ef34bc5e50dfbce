/*
 * convergence.go, part of goCrystal.
 *
 * Copyright 2026 The goCrystal Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * goCrystal grows out of the goChem library.
 *
 */

//Package chemplot draws plots of goCrystal results with gonum/plot.
package chemplot

import (
	"fmt"
	"image/color"
	"math"

	"github.com/rmera/gocrystal/ewald"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//The size of the plots.
var (
	Width  = 5 * vg.Inch
	Height = 4 * vg.Inch
)

var colors = []color.Color{
	color.RGBA{R: 200, A: 255},
	color.RGBA{G: 150, A: 255},
	color.RGBA{B: 200, A: 255},
	color.RGBA{A: 255},
}

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//addSeries adds a line with points, in the color number c, to the plot.
func addSeries(p *plot.Plot, pts plotter.XYs, name string, c int) error {
	l, s, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	col := colors[c%len(colors)]
	l.Color = col
	s.GlyphStyle.Color = col
	p.Add(l, s)
	p.Legend.Add(name, l, s)
	return nil
}

//ConvergencePlot plots the total, real, reciprocal and point energies of each step of the scan
//against the real space cutoff, and saves it to filename. The format is given by the
//extension of filename (png, svg, pdf...).
func ConvergencePlot(scan *ewald.Scan, title, filename string) error {
	if scan == nil || len(scan.Steps) == 0 {
		return fmt.Errorf("ConvergencePlot: empty scan")
	}
	if title == "" {
		title = fmt.Sprintf("Ewald convergence (eta = %.4g)", scan.Eta)
	}
	p := basicPlot(title, "Real space cutoff (A)", "Energy (eV)")
	names := []string{"Total", "Real", "Reciprocal", "Point"}
	for c, name := range names {
		pts := make(plotter.XYs, len(scan.Steps))
		for i, st := range scan.Steps {
			pts[i].X = st.Cutoff.Real
			switch c {
			case 0:
				pts[i].Y = st.Total
			case 1:
				pts[i].Y = st.Real
			case 2:
				pts[i].Y = st.Reciprocal
			default:
				pts[i].Y = st.Point
			}
		}
		if err := addSeries(p, pts, name, c); err != nil {
			return fmt.Errorf("ConvergencePlot: %s: %w", name, err)
		}
	}
	p.Legend.Top = true
	if err := p.Save(Width, Height, filename); err != nil {
		return fmt.Errorf("ConvergencePlot: %w", err)
	}
	return nil
}

//ChangePlot plots the base 10 logarithm of the change in the total energy between
//consecutive steps of the scan, against the real space cutoff, and saves it to filename.
//Steps without a change, or with a change of exactly 0, are skipped.
func ChangePlot(scan *ewald.Scan, title, filename string) error {
	if scan == nil {
		return fmt.Errorf("ChangePlot: nil scan")
	}
	pts := make(plotter.XYs, 0, len(scan.Steps))
	for _, st := range scan.Steps {
		if math.IsNaN(st.Change) || st.Change <= 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: st.Cutoff.Real, Y: math.Log10(st.Change)})
	}
	if len(pts) == 0 {
		return fmt.Errorf("ChangePlot: no energy changes to plot")
	}
	if title == "" {
		title = "Ewald convergence"
	}
	p := basicPlot(title, "Real space cutoff (A)", "log10 |dE| (eV)")
	if err := addSeries(p, pts, "Change", 0); err != nil {
		return fmt.Errorf("ChangePlot: %w", err)
	}
	if err := p.Save(Width, Height, filename); err != nil {
		return fmt.Errorf("ChangePlot: %w", err)
	}
	return nil
}
