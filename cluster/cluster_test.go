/*
 * cluster_test.go, part of foldvis.
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

package cluster

import (
	"errors"
	"testing"

	v3 "github.com/rmera/foldvis/v3"
)

func line(xs ...float64) *v3.Matrix {
	data := make([]float64, 0, 3*len(xs))
	for _, x := range xs {
		data = append(data, x, 0, 0)
	}
	m, err := v3.NewMatrix(data)
	if err != nil {
		panic(err)
	}
	return m
}

func TestResidues(Te *testing.T) {
	coords := line(0, 3, 6, 30, 33, 60, 90)
	mask := []bool{true, true, true, true, true, false, true}
	labels, err := Residues(coords, mask, &Options{Eps: 4, MinClusterSize: 2})
	if err != nil {
		Te.Fatal(err)
	}
	expected := []int{0, 0, 0, 1, 1, Noise}
	if len(labels) != len(expected) {
		Te.Fatalf("Got %v, expected %v", labels, expected)
	}
	for i := range labels {
		if labels[i] != expected[i] {
			Te.Errorf("Got %v, expected %v", labels, expected)
			break
		}
	}
	full, err := Expand(mask, labels)
	if err != nil {
		Te.Fatal(err)
	}
	if full[5] != Noise || full[4] != 1 || full[6] != Noise || len(full) != 7 {
		Te.Errorf("Wrong expanded labels %v", full)
	}
}

func TestResiduesSingletons(Te *testing.T) {
	coords := line(0, 3, 6)
	labels, err := Residues(coords, []bool{true, true, true}, &Options{Eps: 1, MinClusterSize: 1})
	if err != nil {
		Te.Fatal(err)
	}
	for i, l := range labels {
		if l != i {
			Te.Errorf("Isolated points should be their own clusters: %v", labels)
		}
	}
	g := ContactGraph(coords, []int{0, 1, 2}, 3.5)
	if g.Edges().Len() != 2 {
		Te.Errorf("Expected 2 contacts, got %d", g.Edges().Len())
	}
}

func TestLengthMismatch(Te *testing.T) {
	if _, err := Residues(line(0, 1), []bool{true}, nil); !errors.Is(err, ErrLengthMismatch) {
		Te.Errorf("Expected ErrLengthMismatch, got %v", err)
	}
	if _, err := Expand([]bool{true, true}, []int{0}); !errors.Is(err, ErrLengthMismatch) {
		Te.Errorf("Expected ErrLengthMismatch, got %v", err)
	}
}
