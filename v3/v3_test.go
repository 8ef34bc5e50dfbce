/*
 * v3_test.go, part of goCrystal.
 *
 * Copyright 2026 The goCrystal Authors
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
 * goCrystal grows out of the goChem library.
 *
 */

package v3

import (
	"math"
	"strings"
	"testing"
)

func TestVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 3 {
		Te.Errorf("expected 3 vectors, got %d", A.NVecs())
	}
	if v := A.Vec(1); v != [3]float64{4, 5, 6} {
		Te.Errorf("wrong second vector %v", v)
	}
	A.SetVec(1, [3]float64{100, 5, 6})
	if A.At(1, 0) != 100 {
		Te.Errorf("SetVec didn't change the matrix")
	}
	C := A.Clone()
	C.SetVec(0, [3]float64{0, 0, 0})
	if A.At(0, 0) != 1 {
		Te.Errorf("changes in a clone should not reflect in the original matrix")
	}
	if m := A.MaxVecNorm(); math.Abs(m-math.Sqrt(10000+25+36)) > 1e-9 {
		Te.Errorf("wrong largest norm %f", m)
	}
	if math.Abs(A.VecNorm(0)-math.Sqrt(14)) > 1e-12 {
		Te.Errorf("wrong norm %f", A.VecNorm(0))
	}
	if !strings.Contains(A.String(), "100.00") {
		Te.Errorf("unexpected string %s", A.String())
	}
}

func TestNewMatrixError(Te *testing.T) {
	if _, err := NewMatrix([]float64{1, 2}); err == nil {
		Te.Errorf("a slice with 2 elements should not make a Matrix")
	}
}

func TestSomeVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	B := Zeros(3)
	B.SomeVecs(A, []int{5, 1, 3})
	if B.Vec(0) != [3]float64{16, 17, 18} || B.Vec(1) != [3]float64{4, 5, 6} {
		Te.Errorf("wrong vectors selected %v", B)
	}
	defer func() {
		if r := recover(); r != ErrShape {
			Te.Errorf("expected a %q panic, got %v", ErrShape, r)
		}
	}()
	C := Zeros(2)
	C.SomeVecs(A, []int{1, 3, 5})
}
