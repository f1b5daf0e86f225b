/*
 * neighbor.go, part of foldvis.
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
	v3 "github.com/rmera/foldvis/v3"
)

// IsClose returns, for each point in coords, whether its Euclidean distance to the point pos
// is strictly smaller than radius. The point pos itself is included, with a distance of 0, so it
// is marked as close for any positive radius and as not close for radius <= 0.
func IsClose(pos int, coords *v3.Matrix, radius float64) ([]bool, error) {
	n := coords.NVecs()
	if pos < 0 || pos >= n {
		return nil, newError(ErrPosOutOfRange, pos, "IsClose", "%d points", n)
	}
	return closeInto(make([]bool, n), pos, coords, radius), nil
}

// closeInto fills w with the neighbor sphere of pos and returns it. w must have one
// element per point in coords.
func closeInto(w []bool, pos int, coords *v3.Matrix, radius float64) []bool {
	for i := range w {
		w[i] = coords.Dist(pos, coords, i) < radius
	}
	return w
}

// Neighbors returns the indexes of the points closer than radius to the point pos,
// including pos itself if radius > 0.
func Neighbors(pos int, coords *v3.Matrix, radius float64) ([]int, error) {
	w, err := IsClose(pos, coords, radius)
	if err != nil {
		return nil, errDecorate(err, "Neighbors")
	}
	ret := make([]int, 0, 16)
	for i, v := range w {
		if v {
			ret = append(ret, i)
		}
	}
	return ret, nil
}
