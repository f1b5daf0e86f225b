/*
 * profile.go, part of foldvis.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 */

package foldplot

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Plot sizes.
const (
	ProfileWidth  = 8 * vg.Inch
	ProfileHeight = 3 * vg.Inch
)

var thresholdColor = color.RGBA{R: 200, G: 30, B: 30, A: 255}

//profileXYs returns the points of the profile, with the 1-based residue position as X.
//NaN values are omitted.
func profileXYs(values []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i + 1), Y: v})
	}
	return pts
}

//NewProfile returns a plot of the per-residue profile values, with a dashed horizontal
//line for each of the thresholds given.
func NewProfile(values []float64, title string, thresholds ...float64) (*plot.Plot, error) {
	pts := profileXYs(values)
	if len(pts) == 0 {
		return nil, fmt.Errorf("foldplot.NewProfile: no finite values to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "Residue"
	p.Y.Label.Text = "Value"
	p.Add(plotter.NewGrid())
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("foldplot.NewProfile: %w", err)
	}
	l.LineStyle.Width = vg.Points(1)
	p.Add(l)
	for _, t := range thresholds {
		t := t
		f := plotter.NewFunction(func(float64) float64 { return t })
		f.Color = thresholdColor
		f.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		f.XMin = 1
		f.XMax = float64(len(values))
		p.Add(f)
	}
	p.X.Min = 1
	p.X.Max = math.Max(2, float64(len(values)))
	//plotter.Function doesn't report a data range, so the thresholds could fall off the plot.
	all := make([]float64, 0, len(values)+len(thresholds))
	all = append(append(all, values...), thresholds...)
	ymin, ymax := Range(all)
	pad := 0.05 * (ymax - ymin)
	if pad == 0 {
		pad = 1
	}
	p.Y.Min = ymin - pad
	p.Y.Max = ymax + pad
	return p, nil
}

//Profile plots the per-residue profile values in filename, with optional horizontal threshold
//lines, such as ±1.96 for Z-scores. The format (png, svg, pdf, eps, jpg, tif) is given by
//the file extension.
func Profile(values []float64, title, filename string, thresholds ...float64) error {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff":
	default:
		return fmt.Errorf("foldplot.Profile: unsupported plot format for %s", filename)
	}
	p, err := NewProfile(values, title, thresholds...)
	if err != nil {
		return err
	}
	//here I intentionally shadow err.
	if err := p.Save(ProfileWidth, ProfileHeight, filename); err != nil {
		return fmt.Errorf("foldplot.Profile: couldn't save %s: %w", filename, err)
	}
	return nil
}
