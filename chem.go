/*
 * chem.go, part of foldvis.
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

package foldvis

import (
	"fmt"
	"log"
	"sort"

	v3 "github.com/rmera/foldvis/v3"
)

//Atom contains the atoms read except for the coordinates, which will be in a matrix
//and the b-factors, which are in a separate slice of float64.
type Atom struct {
	Name      string //PDB name of the atom
	ID        int    //PDB serial number
	MolName   string //3-letter residue name
	MolName1  byte   //the one letter name for residues
	MolID     int    //residue number
	Char16    byte   //alternate location indicator
	ICode     byte   //insertion code
	Chain     string
	Occupancy float64
	Charge    float64
	Symbol    string
	Het       bool // is hetatm in the pdb file?
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	n := *A
	return &n
}

//sameResidue returns true if A and B belong to the same residue.
func (A *Atom) sameResidue(B *Atom) bool {
	return A.Chain == B.Chain && A.MolID == B.MolID && A.ICode == B.ICode
}

/*****Topology type***/

//Topology contains information about a molecule which is not expected to change in time (i.e. everything except for coordinates and b-factors)
type Topology struct {
	Atoms    []*Atom
	residues []*Residue //lazily built
}

//NewTopology returns a topology with the given atoms. The slice is not copied.
func NewTopology(ats []*Atom) *Topology {
	return &Topology{Atoms: ats}
}

//Atom returns the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if
//out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() || i < 0 {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.Atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//CopyAtoms returns a deep copy of the topology.
func (T *Topology) CopyAtoms() *Topology {
	ret := &Topology{Atoms: make([]*Atom, T.Len())}
	for i, v := range T.Atoms {
		ret.Atoms[i] = v.Copy()
	}
	return ret
}

//Residues returns the residues of the topology, in the order in which they first
//appear. A residue is a run of consecutive atoms sharing chain, residue number and
//insertion code. The returned slice is cached, and should not be modified.
func (T *Topology) Residues() []*Residue {
	if T.residues != nil {
		return T.residues
	}
	res := make([]*Residue, 0, T.Len()/8+1)
	var curr *Residue
	for i, at := range T.Atoms {
		if curr == nil || !T.Atoms[curr.Atoms[0]].sameResidue(at) {
			curr = &Residue{Chain: at.Chain, MolID: at.MolID, ICode: at.ICode, MolName: at.MolName, MolName1: at.MolName1, Index: len(res)}
			res = append(res, curr)
		}
		curr.Atoms = append(curr.Atoms, i)
	}
	T.residues = res
	return res
}

//NResidues returns the number of residues in the topology.
func (T *Topology) NResidues() int {
	return len(T.Residues())
}

//Sequence returns the one-letter sequence of the topology's residues.
//Residues without a known one-letter code are given as 'X'.
func (T *Topology) Sequence() string {
	res := T.Residues()
	seq := make([]byte, len(res))
	for i, r := range res {
		seq[i] = r.MolName1
		if seq[i] == 0 {
			seq[i] = 'X'
		}
	}
	return string(seq)
}

//Chains returns the chain identifiers present in the topology, sorted.
func (T *Topology) Chains() []string {
	ret := make([]string, 0, 2)
	for _, at := range T.Atoms {
		if !isInString(ret, at.Chain) {
			ret = append(ret, at.Chain)
		}
	}
	sort.Strings(ret)
	return ret
}

//RenameChains renames, in place, the chains of the topology according to renames (old to new).
//Chains not in renames are kept, and a message is logged for them. Returns the number of
//chains renamed.
func (T *Topology) RenameChains(renames map[string]string) int {
	var n int
	for _, old := range T.Chains() {
		nw, ok := renames[old]
		if !ok || nw == "" {
			log.Printf("Keeping chain name %s, no new name found", old)
			continue
		}
		for _, at := range T.Atoms {
			if at.Chain == old {
				at.Chain = nw
			}
		}
		n++
	}
	T.residues = nil
	return n
}

//Residue is a set of atoms in a topology sharing chain, residue number and insertion code.
type Residue struct {
	Index    int //position of the residue in the topology
	Chain    string
	MolID    int
	ICode    byte
	MolName  string
	MolName1 byte
	Atoms    []int //indexes of the residue's atoms in the topology
}

//String returns a short identifier for the residue, such as "A:ALA12".
func (R *Residue) String() string {
	if R.ICode != 0 && R.ICode != ' ' {
		return fmt.Sprintf("%s:%s%d%c", R.Chain, R.MolName, R.MolID, R.ICode)
	}
	return fmt.Sprintf("%s:%s%d", R.Chain, R.MolName, R.MolID)
}

//AtomNamed returns the index, in the topology T, of the atom of the residue with the given name, or -1.
func (R *Residue) AtomNamed(T Atomer, name string) int {
	for _, i := range R.Atoms {
		if T.Atom(i).Name == name {
			return i
		}
	}
	return -1
}

/**Type Molecule**/

//Molecule contains all the info for a molecule in many states. The info that is expected to change between states,
//Coordinates and b-factors are stored separately from other atomic info.
type Molecule struct {
	*Topology
	Coords     []*v3.Matrix
	Bfactors   [][]float64
	Name       string               //usually the file it was read from
	annotation map[string][]float64 //per-residue annotations
}

//NewMolecule makes a molecule with ats topology, coords coordinates and bfactors b-factors.
//bfactors can be nil, in which case they are filled with zeros. It returns an error if the
//number of coordinates or b-factors in any frame doesn't match the number of atoms.
func NewMolecule(ats *Topology, coords []*v3.Matrix, bfactors [][]float64) (*Molecule, error) {
	if ats == nil || ats.Len() == 0 {
		return nil, newError(ErrNoAtoms, "NewMolecule", "Supplied a nil or empty topology")
	}
	if len(coords) == 0 {
		return nil, newError(ErrNoAtoms, "NewMolecule", "Supplied no coordinates")
	}
	if bfactors == nil {
		bfactors = make([][]float64, len(coords))
		for i := range bfactors {
			bfactors[i] = make([]float64, ats.Len())
		}
	}
	if len(bfactors) != len(coords) {
		return nil, newError(ErrLengthMismatch, "NewMolecule", "%d coordinate frames but %d b-factor frames", len(coords), len(bfactors))
	}
	for i, c := range coords {
		if c.NVecs() != ats.Len() || len(bfactors[i]) != ats.Len() {
			return nil, newError(ErrLengthMismatch, "NewMolecule", "Frame %d has %d coordinates and %d b-factors for %d atoms", i, c.NVecs(), len(bfactors[i]), ats.Len())
		}
	}
	return &Molecule{Topology: ats, Coords: coords, Bfactors: bfactors}, nil
}

//Copy returns a deep copy of the molecule, including coordinates and annotations.
func (M *Molecule) Copy() *Molecule {
	ret := &Molecule{Topology: M.Topology.CopyAtoms(), Name: M.Name}
	ret.Coords = make([]*v3.Matrix, len(M.Coords))
	for i, c := range M.Coords {
		ret.Coords[i] = v3.Zeros(c.NVecs())
		ret.Coords[i].Copy(c)
	}
	ret.Bfactors = make([][]float64, len(M.Bfactors))
	for i, b := range M.Bfactors {
		ret.Bfactors[i] = append([]float64(nil), b...)
	}
	for k, v := range M.annotation {
		ret.Annotate(k, append([]float64(nil), v...))
	}
	return ret
}

//LenFrames returns the number of frames in the molecule
func (M *Molecule) LenFrames() int {
	return len(M.Coords)
}

//Frame returns the coordinates for the given frame, or an error if out of range.
func (M *Molecule) Frame(frame int) (*v3.Matrix, error) {
	if frame < 0 || frame >= len(M.Coords) {
		return nil, newError(ErrFrameOutOfRange, "Molecule.Frame", "Frame %d requested, molecule has %d", frame, len(M.Coords))
	}
	return M.Coords[frame], nil
}

//Annotate attaches the per-residue values v to the molecule under label. It returns an error
//if the number of values doesn't match the number of residues.
func (M *Molecule) Annotate(label string, v []float64) error {
	if len(v) != M.NResidues() {
		return newError(ErrLengthMismatch, "Molecule.Annotate", "Annotation %s has %d values, molecule has %d residues", label, len(v), M.NResidues())
	}
	if M.annotation == nil {
		M.annotation = make(map[string][]float64)
	}
	M.annotation[label] = v
	return nil
}

//Annotation returns the annotation with the given label, and whether it was found.
func (M *Molecule) Annotation(label string) ([]float64, bool) {
	v, ok := M.annotation[label]
	return v, ok
}

//Labels returns the labels of all the annotations of the molecule, sorted.
func (M *Molecule) Labels() []string {
	ret := make([]string, 0, len(M.annotation))
	for k := range M.annotation {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//String returns a short description of the molecule.
func (M *Molecule) String() string {
	return fmt.Sprintf("Molecule %s: %d atoms, %d residues, %d frames", M.Name, M.Len(), M.NResidues(), M.LenFrames())
}
