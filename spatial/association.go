/*
 * association.go, part of foldvis.
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
	"log"
	"math"
	"sync"

	"github.com/rmera/foldvis"
	v3 "github.com/rmera/foldvis/v3"
)

// Association returns the Z-score of the statistic selected in o for every residue of mol, in residue
// order. features must have one value per residue. The neighbor sphere of each residue is built
// from the residue coordinates given by o.CoordMode(). If o is nil, DefaultOptions() is used.
//
// If the coordinate mode skips residues (a BackboneMarker mode with residues lacking the marker
// atom) the features can't be mapped to positions, and an error is returned.
func Association(mol *foldvis.Molecule, features []float64, o *Options) ([]float64, error) {
	if o == nil {
		o = DefaultOptions()
	}
	nres := mol.NResidues()
	if len(features) != nres {
		return nil, newError(ErrLengthMismatch, -1, "Association", "Residue to feature mapping not unique: %d features for %d residues", len(features), nres)
	}
	coords, err := foldvis.ResidueCoords(mol, o.Frame(), o.CoordMode(), o.Marker())
	if err != nil {
		return nil, newError(err, -1, "Association", "Couldn't obtain residue coordinates")
	}
	if coords.NVecs() != nres {
		return nil, newError(ErrLengthMismatch, -1, "Association", "Only %d of %d residues have a %s atom", coords.NVecs(), nres, o.Marker())
	}
	ret, err := AssociationCoords(coords, features, o)
	return ret, errDecorate(err, "Association")
}

// AssociationCoords is like Association, but takes one point per residue directly.
// The positions are processed concurrently, by o.Cpus() goroutines.
func AssociationCoords(coords *v3.Matrix, features []float64, o *Options) ([]float64, error) {
	if o == nil {
		o = DefaultOptions()
	}
	n := coords.NVecs()
	if len(features) != n {
		return nil, newError(ErrLengthMismatch, -1, "AssociationCoords", "%d features for %d points", len(features), n)
	}
	f, err := o.Statistic().Func()
	if err != nil {
		return nil, errDecorate(err, "AssociationCoords")
	}
	cpus := o.Cpus()
	if cpus > n {
		cpus = n
	}
	if cpus < 1 {
		cpus = 1
	}
	radius := o.Radius()
	ret := make([]float64, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for g := 0; g < cpus; g++ {
		wg.Add(1)
		go func(first int) {
			defer wg.Done()
			w := make([]bool, n)
			for pos := first; pos < n; pos += cpus {
				closeInto(w, pos, coords, radius)
				_, z, err := f(w, features, pos)
				if err != nil {
					errs[pos] = err
					ret[pos] = math.NaN()
					continue
				}
				ret[pos] = z
			}
		}(g)
	}
	wg.Wait()
	perr := &PositionErrors{}
	for pos, err := range errs {
		if err == nil {
			continue
		}
		if !o.SkipErrors() {
			return nil, errDecorate(err, "AssociationCoords")
		}
		perr.Positions = append(perr.Positions, pos)
		perr.Errs = append(perr.Errs, err)
	}
	if len(perr.Positions) > 0 {
		log.Printf("spatial: %s failed for %d of %d positions, their Z-scores are set to NaN", o.Statistic(), len(perr.Positions), n)
		return ret, perr
	}
	return ret, nil
}

// DistanceToClosestActive returns, for each point in coords, the distance to the closest point
// whose frequency in freq is larger or equal than threshold. Active points get a distance of 0.
func DistanceToClosestActive(coords *v3.Matrix, freq []float64, threshold float64) ([]float64, error) {
	n := coords.NVecs()
	if len(freq) != n {
		return nil, newError(ErrLengthMismatch, -1, "DistanceToClosestActive", "%d frequencies for %d points", len(freq), n)
	}
	active := make([]int, 0, n/4)
	for i, f := range freq {
		if f >= threshold {
			active = append(active, i)
		}
	}
	if len(active) == 0 {
		return nil, newError(ErrNoActive, -1, "DistanceToClosestActive", "threshold %g", threshold)
	}
	ret := make([]float64, n)
	for i := range ret {
		min := math.Inf(1)
		for _, a := range active {
			if d := coords.Dist(i, coords, a); d < min {
				min = d
			}
		}
		ret[i] = min
	}
	return ret, nil
}
