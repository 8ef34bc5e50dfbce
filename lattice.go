/*
 * lattice.go, part of goCrystal.
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

package crystal

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//MaxLatticeTerms is the largest number of lattice images a single enumeration
//is allowed to visit. Larger requests fail with ErrTooManyImages.
var MaxLatticeTerms = 50000000

//Lattice is a set of 3 lattice vectors. They are the rows of
//the underlying matrix.
type Lattice struct {
	m   *mat.Dense
	inv *mat.Dense
	vol float64
}

//NewLattice returns a lattice whose vectors are the rows of the 3x3 matrix m.
//The matrix is copied. It returns an error if m is not 3x3 or if the vectors
//span no volume.
func NewLattice(m mat.Matrix) (*Lattice, error) {
	r, c := m.Dims()
	if r != 3 || c != 3 {
		return nil, fmt.Errorf("NewLattice: a %dx%d matrix can't be a lattice: %w", r, c, ErrDegenerateLattice)
	}
	L := &Lattice{m: mat.DenseCopyOf(m)}
	L.vol = math.Abs(mat.Det(L.m))
	if L.vol < ZeroTol || math.IsNaN(L.vol) {
		return nil, fmt.Errorf("NewLattice: volume %g: %w", L.vol, ErrDegenerateLattice)
	}
	L.inv = mat.NewDense(3, 3, nil)
	if err := L.inv.Inverse(L.m); err != nil {
		return nil, fmt.Errorf("NewLattice: %v: %w", err, ErrDegenerateLattice)
	}
	return L, nil
}

//NewLatticeFromVectors returns the lattice with vectors a, b and c.
func NewLatticeFromVectors(a, b, c [3]float64) (*Lattice, error) {
	data := make([]float64, 0, 9)
	data = append(data, a[:]...)
	data = append(data, b[:]...)
	data = append(data, c[:]...)
	return NewLattice(mat.NewDense(3, 3, data))
}

//CubicLattice returns a cubic lattice with the given side.
func CubicLattice(side float64) (*Lattice, error) {
	return NewLatticeFromVectors([3]float64{side, 0, 0}, [3]float64{0, side, 0}, [3]float64{0, 0, side})
}

//LatticeFromParameters builds a lattice from the lengths of the vectors (a, b, c, in A)
//and the angles between them (alpha, beta, gamma, in degrees). The c vector is put
//along the z axis.
func LatticeFromParameters(a, b, c, alpha, beta, gamma float64) (*Lattice, error) {
	ar := alpha * Deg2Rad
	br := beta * Deg2Rad
	gr := gamma * Deg2Rad
	val := (math.Cos(ar)*math.Cos(br) - math.Cos(gr)) / (math.Sin(ar) * math.Sin(br))
	//rounding can take val slightly out of the domain of acos
	val = math.Max(-1, math.Min(1, val))
	gammaStar := math.Acos(val)
	va := [3]float64{a * math.Sin(br), 0, a * math.Cos(br)}
	vb := [3]float64{-b * math.Sin(ar) * math.Cos(gammaStar), b * math.Sin(ar) * math.Sin(gammaStar), b * math.Cos(ar)}
	vc := [3]float64{0, 0, c}
	return NewLatticeFromVectors(va, vb, vc)
}

//Vector returns the ith lattice vector.
func (L *Lattice) Vector(i int) [3]float64 {
	return [3]float64{L.m.At(i, 0), L.m.At(i, 1), L.m.At(i, 2)}
}

//Matrix returns a copy of the matrix with the lattice vectors as rows.
func (L *Lattice) Matrix() *mat.Dense {
	return mat.DenseCopyOf(L.m)
}

//Volume returns the volume of the cell.
func (L *Lattice) Volume() float64 {
	return L.vol
}

//Abc returns the lengths of the 3 lattice vectors.
func (L *Lattice) Abc() [3]float64 {
	var ret [3]float64
	for i := range ret {
		v := L.Vector(i)
		ret[i] = floats.Norm(v[:], 2)
	}
	return ret
}

//Angles returns alpha, beta and gamma, in degrees.
func (L *Lattice) Angles() [3]float64 {
	var ret [3]float64
	abc := L.Abc()
	for i := range ret {
		j := (i + 1) % 3
		k := (i + 2) % 3
		vj := L.Vector(j)
		vk := L.Vector(k)
		cos := floats.Dot(vj[:], vk[:]) / (abc[j] * abc[k])
		cos = math.Max(-1, math.Min(1, cos))
		ret[i] = math.Acos(cos) * Rad2Deg
	}
	return ret
}

//Reciprocal returns the reciprocal lattice, including the 2*Pi factor,
//so that a_i . b_j = 2*Pi*delta_ij.
func (L *Lattice) Reciprocal() *Lattice {
	r := mat.NewDense(3, 3, nil)
	r.Scale(2*math.Pi, L.inv.T())
	R, err := NewLattice(r)
	if err != nil {
		//The inverse of a non-degenerate matrix is non-degenerate.
		panic("goCrystal: reciprocal of a valid lattice is degenerate: " + err.Error())
	}
	return R
}

//FracToCart transforms fractional coordinates into cartesian ones.
func (L *Lattice) FracToCart(f [3]float64) [3]float64 {
	return rowTimes(f, L.m)
}

//CartToFrac transforms cartesian coordinates into fractional ones.
func (L *Lattice) CartToFrac(c [3]float64) [3]float64 {
	return rowTimes(c, L.inv)
}

//InterplanarSpacings returns the distances between consecutive lattice planes
//perpendicular to each of the reciprocal vectors.
func (L *Lattice) InterplanarSpacings() [3]float64 {
	var ret [3]float64
	for i := range ret {
		//row i of the inverse transposed is b_i/(2 Pi)
		b := [3]float64{L.inv.At(0, i), L.inv.At(1, i), L.inv.At(2, i)}
		ret[i] = 1 / floats.Norm(b[:], 2)
	}
	return ret
}

//LatticePoint is one point of a lattice, given by its integer coordinates (Image),
//its cartesian coordinates and its distance to some reference point.
type LatticePoint struct {
	Image    [3]int
	Cart     [3]float64
	Distance float64
}

//PointsInSphere returns all the points of the lattice that are at a distance
//equal or smaller than r from center (in cartesian coordinates). The points are
//given in a fixed order: increasing first, second and third integer coordinates.
func (L *Lattice) PointsInSphere(center [3]float64, r float64) ([]LatticePoint, error) {
	lo, hi, n := L.imageBox(center, r)
	if n > float64(MaxLatticeTerms) {
		return nil, fmt.Errorf("PointsInSphere: radius %g requires %g images: %w", r, n, ErrTooManyImages)
	}
	var ret []LatticePoint
	rows := [3][3]float64{L.Vector(0), L.Vector(1), L.Vector(2)}
	for a := lo[0]; a <= hi[0]; a++ {
		for b := lo[1]; b <= hi[1]; b++ {
			for c := lo[2]; c <= hi[2]; c++ {
				var p [3]float64
				for k := 0; k < 3; k++ {
					p[k] = float64(a)*rows[0][k] + float64(b)*rows[1][k] + float64(c)*rows[2][k]
				}
				d := dist(p, center)
				if d <= r {
					ret = append(ret, LatticePoint{Image: [3]int{a, b, c}, Cart: p, Distance: d})
				}
			}
		}
	}
	return ret, nil
}

//imageBox returns the smallest box of integer lattice coordinates that
//contains the sphere of radius r around center, and the number of points in it.
func (L *Lattice) imageBox(center [3]float64, r float64) ([3]int, [3]int, float64) {
	var lo, hi [3]int
	fc := L.CartToFrac(center)
	sp := L.InterplanarSpacings()
	n := 1.0
	for k := 0; k < 3; k++ {
		span := r / sp[k]
		l := math.Floor(fc[k] - span)
		h := math.Ceil(fc[k] + span)
		n *= h - l + 1
		if n > float64(MaxLatticeTerms) {
			return lo, hi, n
		}
		lo[k] = int(l)
		hi[k] = int(h)
	}
	return lo, hi, n
}

func rowTimes(v [3]float64, m *mat.Dense) [3]float64 {
	var ret [3]float64
	for j := 0; j < 3; j++ {
		ret[j] = v[0]*m.At(0, j) + v[1]*m.At(1, j) + v[2]*m.At(2, j)
	}
	return ret
}

func dist(a, b [3]float64) float64 {
	return floats.Distance(a[:], b[:], 2)
}
