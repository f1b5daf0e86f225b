/*
 * files.go, part of foldvis.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rmera/foldvis/internal/zio"
	v3 "github.com/rmera/foldvis/v3"
)

//PDB reading family

//pdbReadState accumulates the data read from a PDB stream.
type pdbReadState struct {
	atoms    []*Atom
	coords   [][]float64
	bfactors [][]float64
	line     int
}

func (s *pdbReadState) newFrame() {
	s.coords = append(s.coords, make([]float64, 0, 3*len(s.atoms)))
	s.bfactors = append(s.bfactors, make([]float64, 0, len(s.atoms)))
}

//Parses a float field of a PDB line, as given by the from and to columns.
//If the line is too short and required is false, returns 0 and no error.
func pdbFloat(line string, from, to int, required bool, field string, nline int) (float64, error) {
	if len(line) < to {
		if !required {
			return 0, nil
		}
		return 0, fmt.Errorf("line %d too short to contain %s", nline, field)
	}
	s := strings.TrimSpace(line[from:to])
	if s == "" && !required {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: Couldn't parse %s from %q: %w", nline, field, s, err)
	}
	return f, nil
}

//Parses a valid ATOM or HETATM line of a PDB file, returns an Atom
//object with the info except for the coordinates and b-factors, which  are returned
//separately as an array of 3 float64 and a float64, respectively.
func pdbParseLine(line string, nline int, full bool) (*Atom, [3]float64, float64, error) {
	var coords [3]float64
	var err error
	for i, from := range []int{30, 38, 46} {
		coords[i], err = pdbFloat(line, from, from+8, true, "coordinates", nline)
		if err != nil {
			return nil, coords, 0, err
		}
	}
	bfactor, err := pdbFloat(line, 60, 66, false, "b-factor", nline)
	if err != nil {
		return nil, coords, 0, err
	}
	if !full {
		return nil, coords, bfactor, nil
	}
	atom := new(Atom)
	atom.Het = strings.HasPrefix(line, "HETATM")
	atom.ID, err = strconv.Atoi(strings.TrimSpace(line[6:11]))
	if err != nil {
		return nil, coords, 0, fmt.Errorf("line %d: Couldn't parse atom serial: %w", nline, err)
	}
	atom.Name = strings.TrimSpace(line[12:16])
	atom.Char16 = line[16]
	atom.MolName = strings.TrimSpace(line[17:20])
	atom.MolName1 = three2OneLetter[atom.MolName]
	atom.Chain = strings.TrimSpace(line[21:22])
	atom.MolID, err = strconv.Atoi(strings.TrimSpace(line[22:26]))
	if err != nil {
		return nil, coords, 0, fmt.Errorf("line %d: Couldn't parse residue number: %w", nline, err)
	}
	atom.ICode = line[26]
	atom.Occupancy, err = pdbFloat(line, 54, 60, false, "occupancy", nline)
	if err != nil {
		return nil, coords, 0, err
	}
	//we try to read the additional only if it is there.
	//If something is missing we just omit it
	if len(line) >= 78 {
		atom.Symbol = strings.TrimSpace(line[76:78])
	}
	if len(line) >= 80 {
		ch := strings.TrimSpace(line[78:80])
		if len(ch) == 2 {
			if n, err := strconv.Atoi(ch[:1]); err == nil {
				atom.Charge = float64(n)
				if ch[1] == '-' {
					atom.Charge *= -1
				}
			}
		}
	}
	//This part tries to guess the symbol from the atom name, if it has not been read
	if atom.Symbol == "" {
		atom.Symbol = symbolFromName(atom.Name, atom.Het)
	}
	return atom, coords, bfactor, nil
}

//PDBRead reads the ATOM and HETATM records of a PDB stream and returns a Molecule.
//The atoms are taken from the first model. Each MODEL is read as an additional coordinate
//frame, and must have the same number of atoms as the first. Only the first alternate
//location of each atom (blank or 'A') is kept.
func PDBRead(pdb io.Reader) (*Molecule, error) {
	s := new(pdbReadState)
	s.newFrame()
	scanner := bufio.NewScanner(pdb)
	scanner.Buffer(make([]byte, 0, 1024), 1024*1024)
	for scanner.Scan() {
		s.line++
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case strings.HasPrefix(line, "MODEL"):
			if len(s.coords[len(s.coords)-1]) > 0 {
				s.newFrame()
			}
			continue
		case strings.HasPrefix(line, "ATOM"), strings.HasPrefix(line, "HETATM"):
		default:
			continue
		}
		if len(line) < 54 {
			return nil, newError(nil, "PDBRead", "Line %d is too short for an ATOM/HETATM record", s.line)
		}
		if alt := line[16]; alt != ' ' && alt != 'A' {
			continue
		}
		first := len(s.coords) == 1
		at, c, b, err := pdbParseLine(line, s.line, first)
		if err != nil {
			return nil, newError(err, "PDBRead", "Couldn't read PDB")
		}
		if first {
			s.atoms = append(s.atoms, at)
		}
		last := len(s.coords) - 1
		s.coords[last] = append(s.coords[last], c[0], c[1], c[2])
		s.bfactors[last] = append(s.bfactors[last], b)
	}
	if err := scanner.Err(); err != nil {
		return nil, newError(err, "PDBRead", "Error reading PDB at line %d", s.line)
	}
	if len(s.atoms) == 0 {
		return nil, newError(ErrNoAtoms, "PDBRead", "No ATOM/HETATM records found")
	}
	//a trailing MODEL line with no atoms leaves an empty frame.
	if len(s.coords[len(s.coords)-1]) == 0 {
		s.coords = s.coords[:len(s.coords)-1]
		s.bfactors = s.bfactors[:len(s.bfactors)-1]
	}
	mcoords := make([]*v3.Matrix, len(s.coords))
	for i, c := range s.coords {
		if len(c) != 3*len(s.atoms) {
			return nil, newError(ErrLengthMismatch, "PDBRead", "Model %d has %d atoms, the first model has %d", i+1, len(c)/3, len(s.atoms))
		}
		mcoords[i], _ = v3.NewMatrix(c) //can't fail, we checked the length above.
	}
	mol, err := NewMolecule(NewTopology(s.atoms), mcoords, s.bfactors)
	return mol, errDecorate(err, "PDBRead")
}

//PDBFileRead reads a PDB file, which can be gzip- or zstd-compressed. The name of
//the file is set as the name of the returned molecule.
func PDBFileRead(pdbname string) (*Molecule, error) {
	f, err := zio.Open(pdbname)
	if err != nil {
		return nil, newError(err, "PDBFileRead", "Couldn't open %s", pdbname)
	}
	defer f.Close()
	mol, err := PDBRead(f)
	if err != nil {
		return nil, errDecorate(err, "PDBFileRead "+pdbname)
	}
	mol.Name = pdbname
	return mol, nil
}

//End PDB reading family

//ResidueBfactors expands the per-residue values v into a per-atom slice, so they can
//be written in the b-factor column of a PDB file.
func ResidueBfactors(T *Topology, v []float64) ([]float64, error) {
	res := T.Residues()
	if len(v) != len(res) {
		return nil, newError(ErrLengthMismatch, "ResidueBfactors", "%d values given for %d residues", len(v), len(res))
	}
	ret := make([]float64, T.Len())
	for i, r := range res {
		for _, at := range r.Atoms {
			ret[at] = v[i]
		}
	}
	return ret, nil
}

func blankIfZero(b byte) byte {
	if b == 0 {
		return ' '
	}
	return b
}

//pdbAtomName returns the 4-character atom name field. Names shorter than
//4 characters start in the second column of the field.
func pdbAtomName(name string) string {
	if len(name) >= 4 {
		return name[:4]
	}
	return " " + name
}

//PDBWrite writes the given frame of the molecule mol to out, in PDB format.
//If bfactors is not nil, it is used instead of the molecule's b-factors, and must have
//one value per atom.
func PDBWrite(out io.Writer, mol *Molecule, frame int, bfactors []float64) error {
	coords, err := mol.Frame(frame)
	if err != nil {
		return errDecorate(err, "PDBWrite")
	}
	if bfactors == nil {
		bfactors = mol.Bfactors[frame]
	}
	if len(bfactors) != mol.Len() {
		return newError(ErrLengthMismatch, "PDBWrite", "%d b-factors given for %d atoms", len(bfactors), mol.Len())
	}
	w := bufio.NewWriter(out)
	fmt.Fprint(w, "REMARK     WRITTEN WITH FOLDVIS\n")
	chainprev := mol.Atom(0).Chain //this is to know when the chain changes.
	for i, at := range mol.Atoms {
		if at.Chain != chainprev {
			fmt.Fprintln(w, "TER")
			chainprev = at.Chain
		}
		first := "ATOM"
		if at.Het {
			first = "HETATM"
		}
		chain := at.Chain
		if chain == "" {
			chain = " "
		}
		c := coords.Vec(i)
		_, err = fmt.Fprintf(w, "%-6s%5d %-4s%c%3s %1s%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n", first, at.ID%100000, pdbAtomName(at.Name),
			blankIfZero(at.Char16), at.MolName, chain[:1], at.MolID%10000, blankIfZero(at.ICode), c[0], c[1], c[2], at.Occupancy, bfactors[i], at.Symbol)
		if err != nil {
			return newError(err, "PDBWrite", "Couldn't write atom %d", i)
		}
	}
	fmt.Fprint(w, "END\n")
	if err := w.Flush(); err != nil {
		return newError(err, "PDBWrite", "Couldn't flush output")
	}
	return nil
}

//PDBFileWrite writes the given frame of mol to the file pdbname, creating any missing
//parent directory. Files ending in .zst are zstd-compressed.
func PDBFileWrite(pdbname string, mol *Molecule, frame int, bfactors []float64) error {
	if err := os.MkdirAll(filepath.Dir(pdbname), 0o755); err != nil {
		return newError(err, "PDBFileWrite", "Couldn't create directory for %s", pdbname)
	}
	level := 0
	if strings.HasSuffix(pdbname, ".zst") {
		level = 2
	}
	out, err := zio.Create(pdbname, level)
	if err != nil {
		return newError(err, "PDBFileWrite", "Couldn't create %s", pdbname)
	}
	err = PDBWrite(out, mol, frame, bfactors)
	if err2 := out.Close(); err == nil && err2 != nil {
		err = newError(err2, "PDBFileWrite", "Couldn't close %s", pdbname)
	}
	return errDecorate(err, "PDBFileWrite")
}
