/*
 * options.go, part of foldvis.
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
	"runtime"

	"github.com/rmera/foldvis"
)

// Options contains the parameters for the Association family of functions.
type Options struct {
	statistic  Statistic
	radius     float64
	coordMode  foldvis.CoordMode
	marker     string
	frame      int
	cpus       int
	skipErrors bool
}

// DefaultOptions returns reasonable options: the Gi statistic with spheres of 8 A around
// the alpha carbons of the first frame, using all logical CPUs.
func DefaultOptions() *Options {
	r := new(Options)
	r.statistic = StatGi
	r.radius = 8
	r.coordMode = foldvis.BackboneMarker
	r.marker = foldvis.DefaultMarker
	r.cpus = runtime.NumCPU()
	return r
}

// Statistic returns the statistic to be used, and sets it to a new value, if given.
func (O *Options) Statistic(s ...Statistic) Statistic {
	if len(s) > 0 {
		O.statistic = s[0]
	}
	return O.statistic
}

// Radius returns the radius, in A, of the neighbor spheres, and sets it
// to a new value, if given.
func (O *Options) Radius(r ...float64) float64 {
	if len(r) > 0 {
		O.radius = r[0]
	}
	return O.radius
}

// CoordMode returns the way residue positions are obtained, and sets it to a
// new value, if given.
func (O *Options) CoordMode(m ...foldvis.CoordMode) foldvis.CoordMode {
	if len(m) > 0 {
		O.coordMode = m[0]
	}
	return O.coordMode
}

// Marker returns the name of the atom used as residue position for the
// BackboneMarker coordinate mode, and sets it to a new value, if given.
func (O *Options) Marker(name ...string) string {
	if len(name) > 0 && name[0] != "" {
		O.marker = name[0]
	}
	return O.marker
}

// Frame returns the frame of the structure to be used, and sets it to a new
// value, if given.
func (O *Options) Frame(f ...int) int {
	if len(f) > 0 && f[0] >= 0 {
		O.frame = f[0]
	}
	return O.frame
}

// Cpus returns the number of goroutines to be used, and sets it to a new value, if given.
func (O *Options) Cpus(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.cpus = n[0]
	}
	return O.cpus
}

// SkipErrors returns whether positions where the statistic fails are skipped,
// and sets it to a new value, if given. Skipped positions get a NaN Z-score, and the
// errors are returned together in a *PositionErrors. If false, the first failing
// position aborts the whole profile.
func (O *Options) SkipErrors(skip ...bool) bool {
	if len(skip) > 0 {
		O.skipErrors = skip[0]
	}
	return O.skipErrors
}
