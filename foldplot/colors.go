/*
 * colors.go, part of foldvis.
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
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

//DefaultPalette is used when no palette name is given.
const DefaultPalette = "kindlmann"

//ErrUnknownPalette is returned when a palette name is not known.
var ErrUnknownPalette = errors.New("unknown palette")

var palettes = map[string]func() palette.ColorMap{
	"kindlmann":         moreland.Kindlmann,
	"extendedkindlmann": moreland.ExtendedKindlmann,
	"blackbody":         moreland.BlackBody,
	"extendedblackbody": moreland.ExtendedBlackBody,
	"smoothbluered":     func() palette.ColorMap { return moreland.SmoothBlueRed() },
}

//Palettes returns the names of the available palettes, sorted.
func Palettes() []string {
	ret := make([]string, 0, len(palettes))
	for k := range palettes {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//ColorMap returns the color map with the given name, with its range set to [0,1].
//An empty name gives the DefaultPalette.
func ColorMap(name string) (palette.ColorMap, error) {
	if name == "" {
		name = DefaultPalette
	}
	f, ok := palettes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("foldplot.ColorMap: %w: %q (available: %s)", ErrUnknownPalette, name, strings.Join(Palettes(), ", "))
	}
	cm := f()
	cm.SetMin(0)
	cm.SetMax(1)
	return cm, nil
}

//Normalize returns the values of v rescaled to [0,1] by min-max normalization.
//If all the values are equal, they are all mapped to 0. NaN values are kept as NaN,
//and are ignored to determine the range.
func Normalize(v []float64) []float64 {
	ret := make([]float64, len(v))
	min, max := math.Inf(1), math.Inf(-1)
	for _, f := range v {
		if math.IsNaN(f) {
			continue
		}
		min = math.Min(min, f)
		max = math.Max(max, f)
	}
	span := max - min
	for i, f := range v {
		switch {
		case math.IsNaN(f):
			ret[i] = f
		case span <= 0 || math.IsInf(span, 0):
			ret[i] = 0
		default:
			ret[i] = (f - min) / span
		}
	}
	return ret
}

//Hex returns the "#rrggbb" representation of c.
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

//MapColors normalizes v to [0,1] and maps each value to a color of the named palette,
//returned as "#rrggbb" strings. NaN values get the low end of the palette.
func MapColors(v []float64, paletteName string) ([]string, error) {
	cm, err := ColorMap(paletteName)
	if err != nil {
		return nil, err
	}
	norm := Normalize(v)
	ret := make([]string, len(norm))
	for i, f := range norm {
		if math.IsNaN(f) {
			f = 0
		}
		//rounding can put us a hair out of range.
		f = math.Max(0, math.Min(1, f))
		c, err := cm.At(f)
		if err != nil {
			return nil, fmt.Errorf("foldplot.MapColors: value %d (%g): %w", i, v[i], err)
		}
		ret[i] = Hex(c)
	}
	return ret, nil
}

//Range returns the smallest and largest non-NaN values in v.
func Range(v []float64) (float64, float64) {
	clean := make([]float64, 0, len(v))
	for _, f := range v {
		if !math.IsNaN(f) {
			clean = append(clean, f)
		}
	}
	if len(clean) == 0 {
		return math.NaN(), math.NaN()
	}
	return floats.Min(clean), floats.Max(clean)
}
