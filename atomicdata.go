/*
 * atomicdata.go, part of foldvis.
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

//A map between 3-letters name for aminoacidic residues to the corresponding 1-letter names.
var three2OneLetter = map[string]byte{
	"SER": 'S',
	"THR": 'T',
	"ASN": 'N',
	"GLN": 'Q',
	"SEC": 'U', //Selenocysteine!
	"CYS": 'C',
	"GLY": 'G',
	"PRO": 'P',
	"ALA": 'A',
	"VAL": 'V',
	"ILE": 'I',
	"LEU": 'L',
	"MET": 'M',
	"MSE": 'M', //selenomethionine
	"PHE": 'F',
	"TYR": 'Y',
	"TRP": 'W',
	"ARG": 'R',
	"HIS": 'H',
	"HID": 'H',
	"HIE": 'H',
	"HIP": 'H',
	"LYS": 'K',
	"ASP": 'D',
	"GLU": 'E',
	"PYL": 'O',
}

//Elements we try to recognize from PDB atom names when the element column is missing.
var twoLetterSymbols = map[string]string{
	"CU": "Cu",
	"CO": "Co",
	"CL": "Cl",
	"NA": "Na",
	"SE": "Se",
	"ZN": "Zn",
	"FE": "Fe",
	"MG": "Mg",
	"MN": "Mn",
	"CA": "Ca",
}

//This tries to guess a chemical element symbol from a PDB atom name.
//It only deals with some common bio-elements. het should be true for HETATM
//records, as in proteins "CA" is an alpha carbon, not calcium.
func symbolFromName(name string, het bool) string {
	if name == "" {
		return ""
	}
	if s, ok := twoLetterSymbols[name]; het && ok {
		return s
	}
	switch name[0] {
	case 'H', 'C', 'N', 'O', 'P', 'S':
		return name[:1]
	case '1', '2', '3', '4': //old-style hydrogen names, like 1HB
		if len(name) > 1 && name[1] == 'H' {
			return "H"
		}
	}
	return ""
}
