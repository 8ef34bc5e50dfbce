/*
 * recip.go, part of goCrystal.
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

package ewald

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

//gTol is the smallest |G|^2 accepted in the reciprocal sum.
const gTol = 1e-12

//reciprocal performs the reciprocal space summation. It calculates the quantity
//
//	E_recip = 2Pi/V sum_{0<|G|<Gmax} exp(-G.G/4eta)/(G.G) |S(G)|^2
//
//where S(G) = sum_k q_k exp(i G.r_k) is the structure factor, and
//|S(G)|^2 = Re(S)^2 + Im(S)^2. The structure factor is completed for each G before
//the forces, which depend on all of it, are accumulated.
func reciprocal(gvecs, coords [][3]float64, q []float64, p Parameters, volume float64, cpus int) (partial, error) {
	prefactor := 2 * math.Pi / volume
	n := len(coords)
	ret, err := reduce(len(gvecs), cpus, n, func(lo, hi int) (partial, error) {
		part := newPartial(n)
		cos := make([]float64, n)
		sin := make([]float64, n)
		for _, g := range gvecs[lo:hi] {
			gsquare := floats.Dot(g[:], g[:])
			if gsquare < gTol {
				return part, fmt.Errorf("reciprocal: vector %v: %w", g, ErrZeroReciprocal)
			}
			expval := math.Exp(-gsquare / (4 * p.Eta))
			//the structure factor
			var sreal, simag float64
			for i, r := range coords {
				exparg := floats.Dot(g[:], r[:])
				sin[i], cos[i] = math.Sincos(exparg)
				sreal += q[i] * cos[i]
				simag += q[i] * sin[i]
			}
			part.energy += expval / gsquare * (sreal*sreal + simag*simag)
			for i := range coords {
				pref := 2 * expval / gsquare * q[i]
				part.addForce(i, prefactor*pref*(sreal*sin[i]-simag*cos[i])*ConvFact, g)
			}
		}
		return part, nil
	})
	if err != nil {
		return partial{}, err
	}
	ret.energy *= prefactor * ConvFact
	return ret, nil
}
