/*
 * doc.go, part of foldvis.
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

/*Package foldvis provides the structure model types used by the foldvis tools: atoms, residues
and molecules with one or more coordinate frames. It reads and writes PDB files (plain, gzip- or
zstd-compressed), extracts one representative point per residue, and superimposes predicted models
(for instance, the ranked models produced by AlphaFold) into a common coordinate frame.

	**foldvis capabilities**

    Reads multi-model PDB files. Writes PDB files with arbitrary per-atom or per-residue
	values in the b-factor column, so annotations can be displayed in any molecular viewer.

    Extracts residue coordinates, either as the unweighted center of the residue's atoms or as
	the position of a backbone marker atom (the alpha carbon, by default).

    Superimposes models with the Kabsch method and calculates RMSDs.

    Per-residue analyses live in subpackages: spatial (neighbor spheres and Getis-Ord Gi/Gi*
	statistics), conserv (conservation scores from multiple sequence alignments), cluster (spatial
	clustering of residue subsets), histo, foldplot (color maps and plots) and annot (JSON export).

Coordinates are kept in v3.Matrix objects, each row of which represents one point in space.*/
package foldvis
