/*
 * v3_test.go, part of foldvis.
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

package v3

import (
	"fmt"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// Returns an identity matrix spanning span cols and rows
func gnEye(span int) *mat.Dense {
	A := mat.NewDense(span, span, nil)
	for i := 0; i < span; i++ {
		A.Set(i, i, 1.0)
	}
	return A
}

func TestGeo(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	ar, _ := A.Dims()
	T := Zeros(ar)
	T.Mul(gnEye(ar), A)
	if !mat.Equal(T, A) {
		Te.Errorf("I*A != A:\n%s\n%s", T, A)
	}
	View := A.VecView(1)
	View.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Error("Changes in a view should be seen in the matrix")
	}
	if _, err := NewMatrix([]float64{1, 2}); err == nil {
		Te.Error("Expected an error for a slice not divisible by 3")
	}
	var empty *Matrix
	if empty.NVecs() != 0 {
		Te.Error("A nil matrix should have 0 vectors")
	}
}

func TestDense2Matrix(Te *testing.T) {
	D := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	M := Dense2Matrix(D)
	if M.NVecs() != 2 || M.At(1, 2) != 6 {
		Te.Errorf("Wrong matrix:\n%s", M)
	}
	M.Set(0, 0, 10)
	if D.At(0, 0) != 10 {
		Te.Error("The Matrix should share the Dense's storage")
	}
	defer func() {
		if r := recover(); r != ErrNotXx3Matrix {
			Te.Errorf("Expected a panic with ErrNotXx3Matrix, got %v", r)
		}
	}()
	Dense2Matrix(gnEye(2))
}

func TestSomeVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	B := Zeros(3)
	cind := []int{1, 3, 5}
	if err = B.SomeVecsSafe(A, cind); err != nil {
		Te.Fatal(err)
	}
	if !floats.Equal(B.Vec(2), []float64{16, 17, 18}) {
		Te.Errorf("Wrong vectors copied:\n%s", B)
	}
	B.Set(1, 1, 55)
	A.SetVecs(B, cind)
	fmt.Println("Now A should see changes in B")
	fmt.Println(A, "\n", B)
	if A.At(3, 1) != 55 {
		Te.Error("SetVecs didn't set the vectors")
	}
	if err := B.SomeVecsSafe(A, []int{0, 1, 9}); err == nil {
		Te.Error("Expected an error for an index out of range")
	}
	if err := B.SomeVecsSafe(A, []int{0, 1}); err == nil {
		Te.Error("Expected an error for a shape mismatch")
	}
}

func TestVecOps(Te *testing.T) {
	A, _ := NewMatrix([]float64{0, 0, 0, 2, 0, 0, 2, 2, 0, 0, 2, 0})
	c := A.Centroid()
	if !floats.Equal(c.Vec(0), []float64{1, 1, 0}) {
		Te.Errorf("Wrong centroid %v", c.Vec(0))
	}
	B := Zeros(A.NVecs())
	B.SubVec(A, c)
	if !floats.Equal(B.Vec(0), []float64{-1, -1, 0}) {
		Te.Errorf("Wrong centered coordinates:\n%s", B)
	}
	B.AddVec(B, c)
	if !mat.Equal(A, B) {
		Te.Errorf("AddVec should undo SubVec:\n%s\n%s", A, B)
	}
	if d := A.Dist(0, B, 2); !scalar.EqualWithinAbs(d, 2.8284271247, 1e-9) {
		Te.Errorf("Wrong distance %g", d)
	}
	C := Zeros(A.NVecs())
	C.Copy(A)
	C.Set(0, 0, 5)
	if A.At(0, 0) != 0 {
		Te.Error("Copy should not share storage")
	}
}
