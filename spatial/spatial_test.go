/*
 * spatial_test.go, part of foldvis.
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

package spatial

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/rmera/foldvis"
	v3 "github.com/rmera/foldvis/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func points(Te *testing.T, data ...float64) *v3.Matrix {
	m, err := v3.NewMatrix(data)
	if err != nil {
		Te.Fatal(err)
	}
	return m
}

func TestIsClose(Te *testing.T) {
	coords := points(Te, 0, 0, 0, 1, 0, 0, 10, 0, 0)
	w, err := IsClose(0, coords, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if !w[0] || !w[1] || w[2] {
		Te.Errorf("Expected [true true false], got %v", w)
	}
	//the limit is strict.
	if w, _ = IsClose(0, coords, 1); w[1] {
		Te.Error("A point exactly at the radius should not be close")
	}
	for _, r := range []float64{0, -1} {
		w, _ = IsClose(1, coords, r)
		for i, v := range w {
			if v {
				Te.Errorf("Radius %g: point %d marked as close", r, i)
			}
		}
	}
	if _, err := IsClose(3, coords, 2); !errors.Is(err, ErrPosOutOfRange) {
		Te.Errorf("Expected ErrPosOutOfRange, got %v", err)
	}
	n, _ := Neighbors(1, coords, 2)
	if len(n) != 2 || n[0] != 0 || n[1] != 1 {
		Te.Errorf("Wrong neighbors %v", n)
	}
}

func TestGi(Te *testing.T) {
	features := []float64{1, 2, 3, 4}
	w := []bool{true, true, false, false}
	G, Z, err := Gi(w, features, 0)
	if err != nil {
		Te.Fatal(err)
	}
	if !scalar.EqualWithinAbs(G, 2.0/9.0, 1e-12) || !scalar.EqualWithinAbs(Z, -math.Sqrt(1.5), 1e-9) {
		Te.Errorf("Got G=%g Z=%g, expected G=%g Z=%g", G, Z, 2.0/9.0, -math.Sqrt(1.5))
	}
	//w and features are not modified.
	if !w[0] || features[0] != 1 {
		Te.Error("Gi modified its input")
	}
}

//With the residue itself out of the sphere and with a zero feature, Gi* sums the same
//neighbors as Gi.
func TestGiStarReducesToGi(Te *testing.T) {
	features := []float64{0, 2, 3, 4, 1.5}
	w := []bool{false, true, false, true, true}
	g, _, err := Gi(w, features, 0)
	if err != nil {
		Te.Fatal(err)
	}
	//the Z-score is not defined here, but G is.
	gs, _, err := GiStar(w, features, 0)
	if err != nil && !errors.Is(err, ErrNegativeVariance) && !errors.Is(err, ErrZeroVariance) {
		Te.Fatal(err)
	}
	if !scalar.EqualWithinAbs(g, gs, 1e-12) {
		Te.Errorf("Gi G=%g, Gi* G=%g", g, gs)
	}
}

func TestStatisticErrors(Te *testing.T) {
	w := []bool{true, true, false}
	if _, _, err := Gi(w, []float64{0, 0, 0}, 0); !errors.Is(err, ErrZeroTotal) {
		Te.Errorf("Expected ErrZeroTotal, got %v", err)
	}
	if _, _, err := GiStar(w, []float64{0, 0, 0}, 1); !errors.Is(err, ErrZeroTotal) {
		Te.Errorf("Expected ErrZeroTotal, got %v", err)
	}
	if _, _, err := Gi(w, []float64{1, 2}, 0); !errors.Is(err, ErrLengthMismatch) {
		Te.Errorf("Expected ErrLengthMismatch, got %v", err)
	}
	if _, _, err := Gi([]bool{true, false}, []float64{1, 2}, 0); !errors.Is(err, ErrTooFewPoints) {
		Te.Errorf("Expected ErrTooFewPoints, got %v", err)
	}
	if _, _, err := Gi(w, []float64{1, 2, 3}, 5); !errors.Is(err, ErrPosOutOfRange) {
		Te.Errorf("Expected ErrPosOutOfRange, got %v", err)
	}
	//all the other points in the sphere
	if _, _, err := Gi([]bool{true, true, true}, []float64{1, 2, 3}, 0); !errors.Is(err, ErrZeroVariance) {
		Te.Errorf("Expected ErrZeroVariance, got %v", err)
	}
	if _, err := ParseStatistic("Moran"); !errors.Is(err, ErrUnknownStatistic) {
		Te.Errorf("Expected ErrUnknownStatistic, got %v", err)
	}
	if _, err := Statistic(7).Func(); !errors.Is(err, ErrUnknownStatistic) {
		Te.Errorf("Expected ErrUnknownStatistic, got %v", err)
	}
	for name, s := range map[string]Statistic{"Gi": StatGi, "GI_STAR": StatGiStar, "Gi*": StatGiStar} {
		if p, err := ParseStatistic(name); err != nil || p != s {
			Te.Errorf("%s parsed as %s, %v", name, p, err)
		}
	}
}

func readPeptide(Te *testing.T) *foldvis.Molecule {
	mol, err := foldvis.PDBFileRead("../test/peptide.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	return mol
}

func sameProfile(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.IsNaN(a[i]) != math.IsNaN(b[i]) {
			return false
		}
		if !math.IsNaN(a[i]) && a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAssociation(Te *testing.T) {
	mol := readPeptide(Te)
	features := []float64{0, 1, 1, 0, 0, 0, 0}
	o := DefaultOptions()
	o.SkipErrors(true)
	for _, s := range []Statistic{StatGi, StatGiStar} {
		o.Statistic(s)
		o.Cpus(1)
		serial, err := Association(mol, features, o)
		if err != nil && serial == nil {
			Te.Fatal(err)
		}
		o.Cpus(4)
		parallel, err := Association(mol, features, o)
		if err != nil && parallel == nil {
			Te.Fatal(err)
		}
		fmt.Println(s, serial)
		if !sameProfile(serial, parallel) {
			Te.Errorf("%s: serial %v and parallel %v profiles differ", s, serial, parallel)
		}
		coords, err := foldvis.ResidueCoords(mol, 0, foldvis.BackboneMarker)
		if err != nil {
			Te.Fatal(err)
		}
		direct, _ := AssociationCoords(coords, features, o)
		if !sameProfile(serial, direct) {
			Te.Errorf("%s: %v and %v profiles differ", s, serial, direct)
		}
	}
	if _, err := Association(mol, features[:3], o); !errors.Is(err, ErrLengthMismatch) {
		Te.Errorf("Expected ErrLengthMismatch, got %v", err)
	}
	o.Marker("CB") //no residue has one
	if _, err := Association(mol, features, o); !errors.Is(err, foldvis.ErrNoAtoms) {
		Te.Errorf("Expected ErrNoAtoms, got %v", err)
	}
}

//The third residue of peptide_noca.pdb has no alpha carbon.
func TestAssociationMissingMarker(Te *testing.T) {
	mol, err := foldvis.PDBFileRead("../test/peptide_noca.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	features := []float64{0, 1, 1, 0, 0, 0, 0}
	o := DefaultOptions()
	o.SkipErrors(true)
	if _, err := Association(mol, features, o); !errors.Is(err, ErrLengthMismatch) {
		Te.Errorf("Expected ErrLengthMismatch, got %v", err)
	}
	o.CoordMode(foldvis.CenterOfMass)
	z, err := Association(mol, features, o)
	if errors.Is(err, ErrLengthMismatch) || z == nil {
		Te.Fatalf("The center of mass mode should use every residue, got %v", err)
	}
	if len(z) != len(features) {
		Te.Errorf("Expected %d values, got %d", len(features), len(z))
	}
}

func TestAssociationErrors(Te *testing.T) {
	mol := readPeptide(Te)
	zeros := make([]float64, mol.NResidues())
	o := DefaultOptions()
	_, err := Association(mol, zeros, o)
	var serr *Error
	if !errors.As(err, &serr) || !errors.Is(err, ErrZeroTotal) || serr.Pos != 0 {
		Te.Errorf("Expected ErrZeroTotal at position 0, got %v", err)
	}
	o.SkipErrors(true)
	z, err := Association(mol, zeros, o)
	var perr *PositionErrors
	if !errors.As(err, &perr) || len(perr.Positions) != len(zeros) || !errors.Is(err, ErrZeroTotal) {
		Te.Fatalf("Expected errors for all positions, got %v", err)
	}
	for i, v := range z {
		if !math.IsNaN(v) {
			Te.Errorf("Position %d should be NaN, got %g", i, v)
		}
	}
}

func TestDistanceToClosestActive(Te *testing.T) {
	coords := points(Te, 0, 0, 0, 1, 0, 0, 10, 0, 0)
	d, err := DistanceToClosestActive(coords, []float64{1, 0, 0.2}, 0.5)
	if err != nil {
		Te.Fatal(err)
	}
	if !floats.EqualApprox(d, []float64{0, 1, 10}, 1e-12) {
		Te.Errorf("Got %v", d)
	}
	if _, err := DistanceToClosestActive(coords, []float64{0, 0, 0}, 0.5); !errors.Is(err, ErrNoActive) {
		Te.Errorf("Expected ErrNoActive, got %v", err)
	}
	if _, err := DistanceToClosestActive(coords, []float64{0, 0}, 0.5); !errors.Is(err, ErrLengthMismatch) {
		Te.Errorf("Expected ErrLengthMismatch, got %v", err)
	}
}
