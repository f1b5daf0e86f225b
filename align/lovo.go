/*
 * lovo.go, part of foldvis.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package align

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/rmera/foldvis"
	v3 "github.com/rmera/foldvis/v3"
)

//Return contains the information returned by RigidCore
type Return struct {
	N          int
	Residues   []int     //indexes, in the reference model, of the residues with a marker atom.
	Rigid      []int     //residue indexes of the N most rigid residues, sorted.
	MSD        []float64 //the MSD for all residues in Residues, not only the N most rigid.
	Iterations int       //The iterations that were needed for convergency.
}

//String returns a string representation of the Return object.
func (L *Return) String() string {
	return fmt.Sprintf("N: %d, Rigid: %v, MSD: %v, Iterations needed: %d", L.N, L.Rigid, L.MSD, L.Iterations)
}

//PerResidue returns the MSD of each of the nres residues of the reference model.
//Residues without a marker atom get NaN.
func (L *Return) PerResidue(nres int) []float64 {
	ret := make([]float64, nres)
	for i := range ret {
		ret[i] = math.NaN()
	}
	for k, r := range L.Residues {
		if r < nres {
			ret[r] = L.MSD[k]
		}
	}
	return ret
}

//PyMOLSel returns a string of text to create a PyMOL
//selection with the L.N most rigid residues of mol.
func (L *Return) PyMOLSel(mol foldvis.Residuer) string {
	res := mol.Residues()
	sel := make([]string, 0, len(L.Rigid))
	for _, v := range L.Rigid {
		r := res[v]
		sel = append(sel, fmt.Sprintf("(chain %s and resi %d)", r.Chain, r.MolID))
	}
	return "select rigid, " + strings.Join(sel, " or ")
}

type msdandcoords struct {
	msd []float64
	err error
}

func concproc(c, ref *v3.Matrix, r chan<- *msdandcoords, indexes []int) {
	ret := &msdandcoords{msd: make([]float64, c.NVecs())}
	test := v3.Zeros(len(indexes))
	templa := v3.Zeros(len(indexes))
	test.SomeVecs(c, indexes)
	templa.SomeVecs(ref, indexes)
	T, err := foldvis.Super(test, templa)
	if err != nil {
		ret.err = err
		r <- ret
		return
	}
	cr := T.Apply(c)
	for i := range ret.msd {
		d := cr.Dist(i, ref, i)
		ret.msd[i] = d * d
	}
	r <- ret
}

//MSD superimposes each of the models on ref, using the points with indexes in indexes, and
//returns, for every point, the mean square deviation from ref averaged over all the models.
//Up to cpus models are processed at the same time.
func MSD(ref *v3.Matrix, models []*v3.Matrix, indexes []int, cpus int) ([]float64, error) {
	if cpus < 1 {
		cpus = 1
	}
	n := ref.NVecs()
	for i, m := range models {
		if m.NVecs() != n {
			return nil, fmt.Errorf("align.MSD: model %d has %d points, reference has %d: %w", i, m.NVecs(), n, foldvis.ErrLengthMismatch)
		}
	}
	ret := make([]float64, n)
	results := make(chan *msdandcoords, len(models))
	sem := make(chan struct{}, cpus)
	for _, m := range models {
		go func(c *v3.Matrix) {
			sem <- struct{}{}
			concproc(c, ref, results, indexes)
			<-sem
		}(m)
	}
	var err error
	for range models {
		res := <-results
		if res.err != nil {
			err = res.err
			continue
		}
		for i, v := range res.msd {
			ret[i] += v
		}
	}
	if err != nil {
		return nil, fmt.Errorf("align.MSD: %w", err)
	}
	for i := range ret {
		ret[i] /= float64(len(models))
	}
	return ret, nil
}

//RigidCore finds the most rigid residues of an ensemble of models of the same protein, by the
//LOVO method. The models are superimposed on the first one using their marker atoms, the
//residues are sorted by their MSD over the ensemble, and the superposition is repeated using only
//the most rigid ones, until the rigid set doesn't change. All the models must have the same number
//of marker atoms. The models are not modified.
//If you use this function in your research, please cite the reference for the LOVO alignment method:
//10.1371/journal.pone.0119264.
func RigidCore(models []*foldvis.Molecule, o *Options) (*Return, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if len(models) < 2 {
		return nil, fmt.Errorf("align.RigidCore: at least 2 models needed, got %d", len(models))
	}
	coords := make([]*v3.Matrix, len(models))
	for i, m := range models {
		c, err := foldvis.ResidueCoords(m, 0, foldvis.BackboneMarker, o.Marker())
		if err != nil {
			return nil, fmt.Errorf("align.RigidCore: model %d: %w", i, err)
		}
		coords[i] = c
	}
	ref := coords[0]
	npoints := ref.NVecs()
	if npoints < 3 {
		return nil, fmt.Errorf("align.RigidCore: only %d %s atoms: %w", npoints, o.Marker(), foldvis.ErrNoAtoms)
	}
	indexesold := make([]int, npoints)
	for i := range indexesold {
		indexesold[i] = i
	}
	var msd []float64
	var err error
	var itercount int
	for {
		msd, err = MSD(ref, coords[1:], indexesold, o.Cpus())
		if err != nil {
			return nil, fmt.Errorf("align.RigidCore: %w", err)
		}
		itercount++
		indexes := mostRigid(msd, o)
		if sameElementsInt(indexes, indexesold) {
			break //converged
		}
		if itercount >= o.MaxIter() {
			log.Printf("align.RigidCore: no convergence after %d iterations, %d residues disagree", itercount, disagreementInt(indexes, indexesold))
			break
		}
		indexesold = indexes
	}
	sort.Ints(indexesold)
	residues := foldvis.MarkerResidues(models[0], o.Marker())
	rigid := make([]int, len(indexesold))
	for i, v := range indexesold {
		rigid[i] = residues[v]
	}
	return &Return{N: len(rigid), Residues: residues, Rigid: rigid, MSD: msd, Iterations: itercount}, nil
}

//returns the indexes of the most rigid points, given their msd and the options.
func mostRigid(msd []float64, o *Options) []int {
	sorted := make([]int, len(msd))
	for i := range sorted {
		sorted[i] = i
	}
	sort.SliceStable(sorted, func(i, j int) bool { return msd[sorted[i]] < msd[sorted[j]] })
	var n int
	if o.LessThanRMSD() > 0 {
		lim := o.LessThanRMSD() * o.LessThanRMSD()
		for n < len(sorted) && msd[sorted[n]] < lim {
			n++
		}
		if n < o.MinimumN() {
			n = o.MinimumN()
		}
	} else {
		n = o.NMostRigid()
		if n <= 0 {
			n = len(msd) / 10
		}
	}
	//the superposition needs at least 3 points.
	if n < 3 {
		n = 3
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

//helper functions

//returns true if t1 and t2 have the same elements
//(whether or not in the same order) and false otherwise.
func sameElementsInt(t1, t2 []int) bool {
	if len(t1) != len(t2) {
		return false
	}
	for _, v := range t1 {
		if !isInInt(v, t2) {
			return false
		}
	}
	return true
}

func disagreementInt(t1, t2 []int) int {
	var dis int
	for _, v := range t1 {
		if !isInInt(v, t2) {
			dis++
		}
	}
	return dis
}

//isInInt returns true if test is in container, false otherwise.
func isInInt(test int, container []int) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
