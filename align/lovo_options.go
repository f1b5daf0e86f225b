/*
 * lovo_options.go, part of foldvis.
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

package align

import (
	"runtime"

	"github.com/rmera/foldvis"
)

//Options contains the options for the RigidCore function.
type Options struct {
	cpus         int
	marker       string
	nMostRigid   int
	lessThanRMSD float64
	minimumN     int
	maxIter      int
}

//DefaultOptions returns reasonable options for protein models.
//It prepares a superposition of alpha carbons (CA) with all logical CPUs,
//trying to use for the superposition all CAs with RMSD lower than 1.0 A.
func DefaultOptions() *Options {
	r := new(Options)
	r.cpus = runtime.NumCPU()
	r.marker = foldvis.DefaultMarker
	r.nMostRigid = -1
	r.lessThanRMSD = 1.0
	r.minimumN = 10 //just a reasonable value.
	r.maxIter = 50
	return r
}

//SetRigidPercent sets the number of most rigid residues to the perc percent of
//the seqlen residues in the sequence, and disables the LessThanRMSD criterion.
func (O *Options) SetRigidPercent(perc int, seqlen int) {
	frac := float64(perc) / 100
	O.nMostRigid = int(frac * float64(seqlen))
	O.lessThanRMSD = 0
}

//NMostRigid returns the number of residues used in the superposition when the
//LessThanRMSD criterion is not active, and sets it to a new value, if given.
//A value of 0 or less means one tenth of the residues.
func (O *Options) NMostRigid(n ...int) int {
	if len(n) > 0 {
		O.nMostRigid = n[0]
	}
	return O.nMostRigid
}

//Cpus returns the number of gorutines to be used,
//and sets it to a new value, if given.
func (O *Options) Cpus(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.cpus = n[0]
	}
	return O.cpus
}

//LessThanRMSD returns the RMSD under which a residue is considered
//part of the rigid core, and sets it to a new value, if given.
//if this is set to 0 or less, the NMostRigid residues are used instead.
func (O *Options) LessThanRMSD(rmsd ...float64) float64 {
	if len(rmsd) > 0 {
		O.lessThanRMSD = rmsd[0]
	}
	return O.lessThanRMSD
}

//MinimumN returns the smallest acceptable number of residues
//in the rigid core. Only used if the LessThanRMSD is active.
//Sets it to a new value, if given.
func (O *Options) MinimumN(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.minimumN = n[0]
	}
	return O.minimumN
}

//Marker returns the name of the atom representing each residue,
//and sets it to a new value, if given.
func (O *Options) Marker(name ...string) string {
	if len(name) > 0 && name[0] != "" {
		O.marker = name[0]
	}
	return O.marker
}

//MaxIter returns the maximum number of superposition cycles, and sets it to a
//new value, if given.
func (O *Options) MaxIter(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.maxIter = n[0]
	}
	return O.maxIter
}
