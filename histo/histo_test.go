/*
 * histo_test.go, part of foldvis.
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

package histo

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestHisto(Te *testing.T) {
	dividers := []float64{0, 1, 2, 3, 4, 8}
	rawdata := []float64{0.5, 1, 1.5, 2, 3.5, 4, 7, 8, 10, -1}
	D := NewData(dividers, rawdata, 3)
	fmt.Println(D)
	expected := []float64{1, 2, 1, 1, 2}
	if !floats.Equal(D.View(), expected) {
		Te.Errorf("Got %v, expected %v", D.View(), expected)
	}
	if D.Total() != 7 || D.ID() != 3 {
		Te.Errorf("Wrong total (%d) or ID (%d)", D.Total(), D.ID())
	}
	D.Normalize()
	if !scalar.EqualWithinAbs(D.Sum(), 1, 1e-9) {
		Te.Errorf("Normalized histogram sums %g", D.Sum())
	}
	D.AddData(5, 9)
	if !D.Normalized() || D.Total() != 8 {
		Te.Errorf("AddData should keep the normalization and count only in-range data, total %d", D.Total())
	}
	D.UnNormalize()
	expected[4] = 3
	if !scalar.EqualWithinAbs(D.Sum(), 8, 1e-9) || !floats.EqualApprox(D.Copy(), expected, 1e-9) {
		Te.Errorf("Got %v, expected %v", D.View(), expected)
	}
	if d := D.CopyDividers(); !floats.Equal(d, dividers) {
		Te.Errorf("Dividers changed: %v", d)
	}
}

func TestHistoJSON(Te *testing.T) {
	D := NewData(Dividers(0, 4, 4), []float64{0.5, 1.5, 1.7, 3.9})
	j, err := json.Marshal(D)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("JSON:", string(j))
	D2 := new(Data)
	if err := json.Unmarshal(j, D2); err != nil {
		Te.Fatal(err)
	}
	if !floats.Equal(D.View(), D2.View()) || D2.ID() != -1 || D2.Total() != 4 {
		Te.Errorf("Histogram not recovered: %v", D2)
	}
	if err := json.Unmarshal([]byte(`{"dividers":[0,1,2],"histo":[1]}`), D2); err == nil {
		Te.Error("Expected an error for inconsistent bins")
	}
}

func TestFromProfile(Te *testing.T) {
	profile := []float64{-2, math.NaN(), 0, 1, 2}
	D, err := FromProfile(profile, 4)
	if err != nil {
		Te.Fatal(err)
	}
	if D.Total() != 4 {
		Te.Errorf("All the non-NaN values should be counted, got %d", D.Total())
	}
	if _, err := FromProfile([]float64{math.NaN()}, 4); err == nil {
		Te.Error("Expected an error for an all-NaN profile")
	}
	if d := Dividers(0, 1, 4); !floats.EqualApprox(d, []float64{0, 0.25, 0.5, 0.75, 1}, 1e-12) {
		Te.Errorf("Wrong dividers %v", d)
	}
}

//The largest value of a profile must land in the last bin, whatever the
//rounding of the bin width.
func TestFromProfileMax(Te *testing.T) {
	profiles := [][]float64{
		{0, 1, 2, 3},
		{0.1, 0.2, 0.3},
		{-1.7, 0.35, 2.9, 2.9},
	}
	for _, p := range profiles {
		for _, nbins := range []int{1, 3, 7} {
			D, err := FromProfile(p, nbins)
			if err != nil {
				Te.Fatal(err)
			}
			if D.Total() != len(p) {
				Te.Errorf("profile %v, %d bins: %d of %d values counted", p, nbins, D.Total(), len(p))
			}
			d := D.CopyDividers()
			if last := d[len(d)-1]; last <= floats.Max(p) {
				Te.Errorf("profile %v, %d bins: last divider %g not above the maximum", p, nbins, last)
			}
			h := D.View()
			if h[len(h)-1] < 1 {
				Te.Errorf("profile %v, %d bins: the maximum is not in the last bin %v", p, nbins, h)
			}
		}
	}
	D, err := FromProfile([]float64{0, 1, 2, 3}, 3)
	if err != nil {
		Te.Fatal(err)
	}
	if h := D.View(); !floats.Equal(h, []float64{1, 1, 2}) {
		Te.Errorf("Wrong counts %v", h)
	}
}
