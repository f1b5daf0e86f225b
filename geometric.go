/*
 * geometric.go, part of foldvis.
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
	"math"

	v3 "github.com/rmera/foldvis/v3"
	"gonum.org/v1/gonum/mat"
)

//Transform is a rigid-body transformation. To apply it to a set of row vectors,
//the From translation is subtracted, then the vectors are multiplied by Rotation
//(on the right) and finally To is added.
type Transform struct {
	Rotation *mat.Dense //3x3
	From     *v3.Matrix
	To       *v3.Matrix
}

//Apply returns a transformed copy of coords. coords is not modified.
func (T *Transform) Apply(coords *v3.Matrix) *v3.Matrix {
	n := coords.NVecs()
	tmp := v3.Zeros(n)
	tmp.SubVec(coords, T.From)
	var rotated mat.Dense
	rotated.Mul(tmp.Dense, T.Rotation)
	ret := v3.Dense2Matrix(&rotated)
	ret.AddVec(ret, T.To)
	return ret
}

//Super returns the rigid-body transformation that best superimposes, in the least-squares
//sense, the vectors in test onto the vectors in templa. Both must have the same number of
//vectors, and at least 3. The rotation is obtained from the singular value decomposition
//of the covariance matrix (the Kabsch method) and is always proper: if the best
//orthogonal transformation is a reflection, the closest rotation is returned instead.
func Super(test, templa *v3.Matrix) (*Transform, error) {
	n := test.NVecs()
	if n != templa.NVecs() {
		return nil, newError(ErrLengthMismatch, "Super", "Ill-formed matrices: %d test and %d template vectors", n, templa.NVecs())
	}
	if n < 3 {
		return nil, newError(ErrNoAtoms, "Super", "At least 3 vectors needed, got %d", n)
	}
	ctest := test.Centroid()
	ctempla := templa.Centroid()
	t := v3.Zeros(n)
	t.SubVec(test, ctest)
	m := v3.Zeros(n)
	m.SubVec(templa, ctempla)
	//covariance matrix
	H := mat.NewDense(3, 3, nil)
	H.Mul(t.Dense.T(), m.Dense)
	var svd mat.SVD
	if ok := svd.Factorize(H, mat.SVDFull); !ok {
		return nil, newError(nil, "Super", "SVD factorization failed")
	}
	var U, V mat.Dense
	svd.UTo(&U)
	svd.VTo(&V)
	//correct for a reflection, if needed.
	d := mat.NewDiagDense(3, []float64{1, 1, 1})
	var VUt mat.Dense
	VUt.Mul(&V, U.T())
	if mat.Det(&VUt) < 0 {
		d.SetDiag(2, -1)
	}
	//for row vectors, the rotation is U d Vt
	rot := mat.NewDense(3, 3, nil)
	var Ud mat.Dense
	Ud.Mul(&U, d)
	rot.Mul(&Ud, V.T())
	return &Transform{Rotation: rot, From: ctest, To: ctempla}, nil
}

//RMSD returns the root mean square deviation between the vectors of a and b,
//without superimposing them first.
func RMSD(a, b *v3.Matrix) (float64, error) {
	n := a.NVecs()
	if n != b.NVecs() || n == 0 {
		return 0, newError(ErrLengthMismatch, "RMSD", "%d and %d vectors", n, b.NVecs())
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := a.Dist(i, b, i)
		sum += d * d
	}
	return math.Sqrt(sum / float64(n)), nil
}
