/*
 * coords.go, part of foldvis.
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
	"strings"

	v3 "github.com/rmera/foldvis/v3"
)

//CoordMode selects how a residue is represented by a single point.
type CoordMode int

const (
	//CenterOfMass uses the unweighted mean of all the atoms in the residue.
	CenterOfMass CoordMode = iota
	//BackboneMarker uses the position of a single named atom (the alpha carbon by default).
	BackboneMarker
)

//DefaultMarker is the name of the atom used by BackboneMarker if no other is given.
const DefaultMarker = "CA"

func (C CoordMode) String() string {
	switch C {
	case CenterOfMass:
		return "center_of_mass"
	case BackboneMarker:
		return "backbone_marker"
	}
	return "unknown"
}

//ParseCoordMode returns the CoordMode for the given name.
func ParseCoordMode(name string) (CoordMode, error) {
	switch strings.ToLower(name) {
	case "com", "center_of_mass", "centerofmass":
		return CenterOfMass, nil
	case "ca", "alpha_carbons", "backbone", "backbone_marker":
		return BackboneMarker, nil
	}
	return -1, newError(ErrUnsupportedCoordMode, "ParseCoordMode", "Unknown coordinate mode %q", name)
}

//ResidueCoords returns one representative point per residue of mol, for the given frame, in residue order.
//For CenterOfMass, the point is the unweighted mean of the residue's atoms. For BackboneMarker,
//it is the position of the atom named marker[0] (DefaultMarker if not given). Residues without
//that atom are skipped, so the result can have fewer points than mol has residues. Use
//MarkerResidues to know which residues were kept.
func ResidueCoords(mol *Molecule, frame int, mode CoordMode, marker ...string) (*v3.Matrix, error) {
	coords, err := mol.Frame(frame)
	if err != nil {
		return nil, errDecorate(err, "ResidueCoords")
	}
	res := mol.Residues()
	switch mode {
	case CenterOfMass:
		ret := v3.Zeros(len(res))
		tmp := v3.Zeros(1)
		for i, r := range res {
			if len(r.Atoms) != tmp.NVecs() {
				tmp = v3.Zeros(len(r.Atoms))
			}
			tmp.SomeVecs(coords, r.Atoms)
			copy(ret.Vec(i), tmp.Centroid().Vec(0))
		}
		return ret, nil
	case BackboneMarker:
		indexes := MarkerAtoms(mol, markerName(marker))
		if len(indexes) == 0 {
			return nil, newError(ErrNoAtoms, "ResidueCoords", "No residue has a %s atom", markerName(marker))
		}
		ret := v3.Zeros(len(indexes))
		ret.SomeVecs(coords, indexes)
		return ret, nil
	}
	return nil, newError(ErrUnsupportedCoordMode, "ResidueCoords", "Coordinate mode %d", int(mode))
}

func markerName(marker []string) string {
	if len(marker) > 0 && marker[0] != "" {
		return marker[0]
	}
	return DefaultMarker
}

//MarkerAtoms returns the topology indexes of the marker atom of each residue that has one, in residue order.
func MarkerAtoms(T Residuer, marker string) []int {
	res := T.Residues()
	ret := make([]int, 0, len(res))
	for _, r := range res {
		if i := r.AtomNamed(T, marker); i >= 0 {
			ret = append(ret, i)
		}
	}
	return ret
}

//MarkerResidues returns the indexes of the residues that have a marker atom, in residue order.
func MarkerResidues(T Residuer, marker string) []int {
	res := T.Residues()
	ret := make([]int, 0, len(res))
	for i, r := range res {
		if r.AtomNamed(T, marker) >= 0 {
			ret = append(ret, i)
		}
	}
	return ret
}
