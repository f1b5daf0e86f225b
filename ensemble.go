/*
 * ensemble.go, part of foldvis.
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
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	v3 "github.com/rmera/foldvis/v3"
)

//matchedMarkers returns, for each residue of mol with a marker atom that has a counterpart
//(same chain and residue number) with a marker atom in ref, the marker atom indexes in mol and in ref.
func matchedMarkers(mol, ref *Molecule, marker string) ([]int, []int) {
	type key struct {
		chain string
		molid int
		icode byte
	}
	refidx := make(map[key]int)
	for _, r := range ref.Residues() {
		if i := r.AtomNamed(ref, marker); i >= 0 {
			refidx[key{r.Chain, r.MolID, r.ICode}] = i
		}
	}
	var m, t []int
	for _, r := range mol.Residues() {
		i := r.AtomNamed(mol, marker)
		if i < 0 {
			continue
		}
		if j, ok := refidx[key{r.Chain, r.MolID, r.ICode}]; ok {
			m = append(m, i)
			t = append(t, j)
		}
	}
	return m, t
}

//AlignTo returns a copy of mol with all its frames superimposed on the first frame of ref, and
//the RMSD of the first frame after the superposition. The superposition uses the marker
//atoms (DefaultMarker if marker is empty) of the residues present in both molecules, matched
//by chain and residue number. mol is not modified.
func AlignTo(mol, ref *Molecule, marker string) (*Molecule, float64, error) {
	if marker == "" {
		marker = DefaultMarker
	}
	mi, ri := matchedMarkers(mol, ref, marker)
	if len(mi) < 3 {
		return nil, 0, newError(ErrNoAtoms, "AlignTo", "Only %d matching %s atoms between %s and %s", len(mi), marker, mol.Name, ref.Name)
	}
	templa := v3.Zeros(len(ri))
	templa.SomeVecs(ref.Coords[0], ri)
	test := v3.Zeros(len(mi))
	ret := mol.Copy()
	var rmsd float64
	for f, c := range ret.Coords {
		test.SomeVecs(c, mi)
		T, err := Super(test, templa)
		if err != nil {
			return nil, 0, errDecorate(err, "AlignTo")
		}
		ret.Coords[f] = T.Apply(c)
		if f == 0 {
			test.SomeVecs(ret.Coords[0], mi)
			rmsd, err = RMSD(test, templa)
			if err != nil {
				return nil, 0, errDecorate(err, "AlignTo")
			}
		}
	}
	return ret, rmsd, nil
}

//Ensemble is a set of models of the same protein, such as the ranked models produced by AlphaFold.
type Ensemble struct {
	Models []*Molecule //sorted by rank, best first
	Ranks  []int
}

var rankRegexp = regexp.MustCompile(`rank_0*([0-9]+)`)

//ReadEnsemble reads all the PDB files (compressed or not) in dir with a rank in their names
//(as in "..._rank_001_..." or "..._rank_1_model_2.pdb") and returns them sorted by rank.
func ReadEnsemble(dir string) (*Ensemble, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, newError(err, "ReadEnsemble", "Couldn't read directory %s", dir)
	}
	type ranked struct {
		rank int
		name string
	}
	files := make([]ranked, 0, 5)
	for _, e := range entries {
		if e.IsDir() || getExtension(e.Name()) != "pdb" {
			continue
		}
		m := rankRegexp.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		r, _ := strconv.Atoi(m[1]) //the regexp guarantees a number
		files = append(files, ranked{r, filepath.Join(dir, e.Name())})
	}
	if len(files) == 0 {
		return nil, newError(ErrNoAtoms, "ReadEnsemble", "No ranked PDB models in %s", dir)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].rank < files[j].rank })
	ret := &Ensemble{}
	for _, f := range files {
		mol, err := PDBFileRead(f.name)
		if err != nil {
			return nil, errDecorate(err, "ReadEnsemble")
		}
		ret.Models = append(ret.Models, mol)
		ret.Ranks = append(ret.Ranks, f.rank)
	}
	return ret, nil
}

//Best returns the best-ranked model.
func (E *Ensemble) Best() *Molecule {
	return E.Models[0]
}

//Superimpose aligns, in place, every model of the ensemble onto the best-ranked one, using
//the given marker atoms. It returns the RMSD of each model to the best one after the
//superposition (0 for the best model itself).
func (E *Ensemble) Superimpose(marker string) ([]float64, error) {
	rmsds := make([]float64, len(E.Models))
	best := E.Best()
	for i := 1; i < len(E.Models); i++ {
		aligned, rmsd, err := AlignTo(E.Models[i], best, marker)
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("Ensemble.Superimpose model %d", E.Ranks[i]))
		}
		E.Models[i] = aligned
		rmsds[i] = rmsd
		log.Printf("Model rank %d superimposed on rank %d, RMSD: %5.3f A", E.Ranks[i], E.Ranks[0], rmsd)
	}
	return rmsds, nil
}
