/*
 * foldvis_test.go, part of foldvis.
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

package foldvis

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	v3 "github.com/rmera/foldvis/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

func TestPDBIO(Te *testing.T) {
	mol, err := PDBFileRead("test/peptide.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println(mol)
	if mol.Len() != 28 || mol.NResidues() != 7 || mol.LenFrames() != 1 {
		Te.Fatalf("Wrong molecule read: %s", mol)
	}
	if seq := mol.Sequence(); seq != "AGSLKFW" {
		Te.Errorf("Wrong sequence %s", seq)
	}
	if ch := mol.Chains(); len(ch) != 2 || ch[0] != "A" || ch[1] != "B" {
		Te.Errorf("Wrong chains %v", ch)
	}
	at := mol.Atom(1)
	if at.Name != "CA" || at.Symbol != "C" || at.MolName != "ALA" || at.MolID != 1 {
		Te.Errorf("Wrong atom %+v", at)
	}
	if mol.Bfactors[0][5] != 20 {
		Te.Errorf("Wrong b-factor %g", mol.Bfactors[0][5])
	}
	bfac, err := ResidueBfactors(mol.Topology, []float64{1, 2, 3, 4, 5, 6, 7})
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "out", "peptide.pdb.zst")
	if err := PDBFileWrite(name, mol, 0, bfac); err != nil {
		Te.Fatal(err)
	}
	mol2, err := PDBFileRead(name)
	if err != nil {
		Te.Fatal(err)
	}
	if mol2.Len() != mol.Len() || !mat.EqualApprox(mol.Coords[0], mol2.Coords[0], 1e-3) {
		Te.Error("Coordinates not recovered after writing and reading")
	}
	if mol2.Bfactors[0][27] != 7 || mol2.Atom(27).Chain != "B" {
		Te.Errorf("Wrong b-factor %g or chain %s", mol2.Bfactors[0][27], mol2.Atom(27).Chain)
	}
	if _, err := ResidueBfactors(mol.Topology, []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		Te.Errorf("Expected ErrLengthMismatch, got %v", err)
	}
}

func TestPDBModels(Te *testing.T) {
	mol, err := PDBFileRead("test/peptide2models.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.LenFrames() != 2 || mol.Len() != 28 {
		Te.Fatalf("Wrong molecule read: %s", mol)
	}
	d := v3.Zeros(mol.Len())
	d.Sub(mol.Coords[1], mol.Coords[0])
	if !floats.EqualApprox(d.Vec(10), []float64{0.5, -0.2, 1.0}, 2e-3) {
		Te.Errorf("Wrong displacement between models %v", d.Vec(10))
	}
	if _, err := mol.Frame(2); !errors.Is(err, ErrFrameOutOfRange) {
		Te.Errorf("Expected ErrFrameOutOfRange, got %v", err)
	}
	var buf bytes.Buffer
	if err := PDBWrite(&buf, mol, 1, nil); err != nil {
		Te.Fatal(err)
	}
	if strings.Count(buf.String(), "TER") != 1 {
		Te.Errorf("Expected one chain break in the output:\n%s", buf.String())
	}
}

func TestPDBErrors(Te *testing.T) {
	bad := "ATOM      1  CA  ALA A   1       0.000   abc     0.000  1.00 10.00           C\n"
	_, err := PDBRead(strings.NewReader(bad))
	if err == nil || !strings.Contains(err.Error(), "line 1") {
		Te.Errorf("Expected an error citing line 1, got %v", err)
	}
	if _, err := PDBRead(strings.NewReader("HEADER\nEND\n")); !errors.Is(err, ErrNoAtoms) {
		Te.Errorf("Expected ErrNoAtoms, got %v", err)
	}
	models := "MODEL 1\n" +
		"ATOM      1  CA  ALA A   1       0.000   0.000   0.000  1.00 10.00           C\n" +
		"ATOM      2  CA  GLY A   2       3.800   0.000   0.000  1.00 10.00           C\n" +
		"ENDMDL\nMODEL 2\n" +
		"ATOM      1  CA  ALA A   1       0.000   0.000   0.000  1.00 10.00           C\n" +
		"ENDMDL\n"
	if _, err := PDBRead(strings.NewReader(models)); !errors.Is(err, ErrLengthMismatch) {
		Te.Errorf("Expected ErrLengthMismatch, got %v", err)
	}
}

func TestResidueCoords(Te *testing.T) {
	mol, err := PDBFileRead("test/peptide.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	ca, err := ResidueCoords(mol, 0, BackboneMarker)
	if err != nil {
		Te.Fatal(err)
	}
	if ca.NVecs() != 7 || !floats.EqualApprox(ca.Vec(1), mol.Coords[0].Vec(5), 1e-12) {
		Te.Errorf("Wrong alpha carbon coordinates:\n%s", ca)
	}
	com, err := ResidueCoords(mol, 0, CenterOfMass)
	if err != nil {
		Te.Fatal(err)
	}
	//the backbone atoms in the test file are placed around the CA with these offsets.
	expected := []float64{ca.At(0, 0) + 0.375, ca.At(0, 1) + 0.65, ca.At(0, 2)}
	if com.NVecs() != 7 || !floats.EqualApprox(com.Vec(0), expected, 1e-3) {
		Te.Errorf("Wrong center, got %v, expected %v", com.Vec(0), expected)
	}
	o, err := ResidueCoords(mol, 0, BackboneMarker, "O")
	if err != nil || o.NVecs() != 7 {
		Te.Errorf("Marker O: %v", err)
	}
	if _, err := ResidueCoords(mol, 0, BackboneMarker, "CB"); !errors.Is(err, ErrNoAtoms) {
		Te.Errorf("Expected ErrNoAtoms, got %v", err)
	}
	if _, err := ResidueCoords(mol, 0, CoordMode(5)); !errors.Is(err, ErrUnsupportedCoordMode) {
		Te.Errorf("Expected ErrUnsupportedCoordMode, got %v", err)
	}
	for name, m := range map[string]CoordMode{"com": CenterOfMass, "CA": BackboneMarker, "alpha_carbons": BackboneMarker} {
		if p, err := ParseCoordMode(name); err != nil || p != m {
			Te.Errorf("%s parsed as %s, %v", name, p, err)
		}
	}
	if _, err := ParseCoordMode("sidechain"); !errors.Is(err, ErrUnsupportedCoordMode) {
		Te.Errorf("Expected ErrUnsupportedCoordMode, got %v", err)
	}
}

//The third residue of peptide_noca.pdb has no alpha carbon.
func TestMissingMarker(Te *testing.T) {
	mol, err := PDBFileRead("test/peptide_noca.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.NResidues() != 7 {
		Te.Fatalf("Expected 7 residues, got %d", mol.NResidues())
	}
	ca, err := ResidueCoords(mol, 0, BackboneMarker)
	if err != nil {
		Te.Fatal(err)
	}
	if ca.NVecs() != 6 {
		Te.Errorf("Expected 6 alpha carbons, got %d", ca.NVecs())
	}
	//the LEU alpha carbon follows the GLY one.
	if !floats.EqualApprox(ca.Vec(2), []float64{11.4, 0.141, 0}, 1e-6) {
		Te.Errorf("Wrong coordinates after the missing atom: %v", ca.Vec(2))
	}
	kept := MarkerResidues(mol, DefaultMarker)
	if !reflect.DeepEqual(kept, []int{0, 1, 3, 4, 5, 6}) {
		Te.Errorf("Wrong residues with marker %v", kept)
	}
	if at := MarkerAtoms(mol, DefaultMarker); len(at) != 6 || mol.Atom(at[2]).Name != "CA" || mol.Atom(at[2]).MolName != "LEU" {
		Te.Errorf("Wrong marker atoms %v", at)
	}
	com, err := ResidueCoords(mol, 0, CenterOfMass)
	if err != nil {
		Te.Fatal(err)
	}
	if com.NVecs() != 7 {
		Te.Errorf("Expected 7 centers, got %d", com.NVecs())
	}
}

func TestSuper(Te *testing.T) {
	mol, err := PDBFileRead("test/peptide.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	templa := mol.Coords[0]
	//rotate 90 degrees around z and translate.
	rot := mat.NewDense(3, 3, []float64{0, 1, 0, -1, 0, 0, 0, 0, 1})
	test := v3.Zeros(templa.NVecs())
	test.Mul(templa, rot)
	shift, _ := v3.NewMatrix([]float64{5, -3, 2})
	test.AddVec(test, shift)
	if r, _ := RMSD(test, templa); r < 1 {
		Te.Fatalf("The test coordinates should be displaced, RMSD: %g", r)
	}
	T, err := Super(test, templa)
	if err != nil {
		Te.Fatal(err)
	}
	r, err := RMSD(T.Apply(test), templa)
	if err != nil {
		Te.Fatal(err)
	}
	if r > 1e-6 {
		Te.Errorf("RMSD after superposition: %g", r)
	}
	if det := mat.Det(T.Rotation); !scalar.EqualWithinAbs(det, 1, 1e-9) {
		Te.Errorf("The rotation should be proper, det: %g", det)
	}
	if _, err := Super(test.View(0, 2), templa.View(0, 2)); !errors.Is(err, ErrNoAtoms) {
		Te.Errorf("Expected ErrNoAtoms, got %v", err)
	}
	if _, err := RMSD(test, templa.View(0, 3)); !errors.Is(err, ErrLengthMismatch) {
		Te.Errorf("Expected ErrLengthMismatch, got %v", err)
	}
}

func TestEnsemble(Te *testing.T) {
	ens, err := ReadEnsemble("test/ensemble")
	if err != nil {
		Te.Fatal(err)
	}
	if len(ens.Models) != 2 || ens.Ranks[0] != 1 || ens.Ranks[1] != 2 {
		Te.Fatalf("Wrong ensemble, ranks %v", ens.Ranks)
	}
	if r, _ := RMSD(ens.Models[0].Coords[0], ens.Models[1].Coords[0]); r < 1 {
		Te.Fatalf("The models should differ before the superposition, RMSD %g", r)
	}
	rmsds, err := ens.Superimpose("CA")
	if err != nil {
		Te.Fatal(err)
	}
	if rmsds[0] != 0 || rmsds[1] > 5e-3 {
		Te.Errorf("Wrong RMSDs %v", rmsds)
	}
	r, _ := RMSD(ens.Best().Coords[0], ens.Models[1].Coords[0])
	if r > 5e-3 {
		Te.Errorf("All atoms should be superimposed, RMSD %g", r)
	}
	if _, err := ReadEnsemble("test"); err == nil {
		Te.Error("Expected an error for a directory without ranked models")
	}
}

func TestAnnotations(Te *testing.T) {
	mol, err := PDBFileRead("test/peptide.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	if err := mol.Annotate("z", []float64{1, 2}); !errors.Is(err, ErrLengthMismatch) {
		Te.Errorf("Expected ErrLengthMismatch, got %v", err)
	}
	z := []float64{1, 2, 3, 4, 5, 6, math.NaN()}
	if err := mol.Annotate("z", z); err != nil {
		Te.Fatal(err)
	}
	mol.Annotate("a", make([]float64, 7))
	c := mol.Copy()
	c.Coords[0].Set(0, 0, 99)
	if mol.Coords[0].At(0, 0) == 99 {
		Te.Error("Copy should not share coordinates")
	}
	if v, ok := c.Annotation("z"); !ok || v[3] != 4 {
		Te.Error("Annotation not copied")
	}
	if l := c.Labels(); len(l) != 2 || l[0] != "a" {
		Te.Errorf("Wrong labels %v", l)
	}
	if n := c.RenameChains(map[string]string{"B": "C"}); n != 1 || c.Chains()[1] != "C" {
		Te.Errorf("Chain B not renamed")
	}
	if mol.Chains()[1] != "B" {
		Te.Error("Renaming chains in a copy should not affect the original")
	}
	res := c.Residues()
	if res[6].String() != "C:TRP2" || res[6].AtomNamed(c, "CA") != 25 {
		Te.Errorf("Wrong residue %s", res[6])
	}
}
