/*
 * sfplot.go, part of goXtal.
 *
 *
 * Copyright 2022 Raul Mera rauldotmeraatusachdotcl
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
 *
 */

//Package sfplot draws quick diagnostic figures from goxtal validation
//reports. Nothing here is needed for the numbers; it just makes the
//agreement (or lack of it) between computed and reference amplitudes
//easy to look at.
package sfplot

import (
	"fmt"
	"image/color"

	xtal "github.com/rmera/goxtal"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//AmplitudeScatter plots |Fref| (x) against |Fcalc| (y) for every compared
//reflection of the report, with the identity line for reference, and saves
//the figure to fname (format by extension: .png, .svg, .pdf...). It
//returns an error if the report contains no compared reflections.
func AmplitudeScatter(rep *xtal.Report, title, fname string) error {
	pts := make(plotter.XYs, 0, len(rep.Records))
	max := 0.0
	for _, rec := range rep.Records {
		if !rec.HasRef {
			continue
		}
		x := xtal.Amplitude(rec.Ref)
		y := xtal.Amplitude(rec.F)
		pts = append(pts, plotter.XY{X: x, Y: y})
		if x > max {
			max = x
		}
		if y > max {
			max = y
		}
	}
	if len(pts) == 0 {
		return fmt.Errorf("sfplot: report for %q has no compared reflections", rep.Model)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "|F| reference"
	p.Y.Label.Text = "|F| computed"

	ident := plotter.XYs{{X: 0, Y: 0}, {X: max, Y: max}}
	line, err := plotter.NewLine(ident)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 196, G: 196, B: 196, A: 255}
	p.Add(line)

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Radius = vg.Points(1.5)
	sc.GlyphStyle.Color = color.RGBA{R: 20, G: 60, B: 180, A: 255}
	p.Add(sc)

	return p.Save(14*vg.Centimeter, 14*vg.Centimeter, fname)
}
