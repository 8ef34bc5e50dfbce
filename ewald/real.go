/*
 * real.go, part of goCrystal.
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

	crystal "github.com/rmera/gocrystal"
)

//realSpace performs the real space summation over the neighbor lists:
//
//	E_real = 1/2 sum_i sum_j erfc(sqrt(eta) r_ij) q_i q_j / r_ij
//
//Every ordered pair contributes its own force on the center site, so forces are not halved.
func realSpace(neighbors [][]crystal.Neighbor, coords [][3]float64, q []float64, p Parameters, cpus int) (partial, error) {
	n := len(coords)
	forcepf := 2 * p.SqrtEta / math.Sqrt(math.Pi)
	ret, err := reduce(n, cpus, n, func(lo, hi int) (partial, error) {
		part := newPartial(n)
		for i := lo; i < hi; i++ {
			qi := q[i]
			ri := coords[i]
			for _, nb := range neighbors[i] {
				rij := nb.Distance
				if rij < crystal.ZeroTol {
					return part, fmt.Errorf("realSpace: sites %d and %d (image %v) are %g A apart: %w", i, nb.Index, nb.Image, rij, ErrCoincidentSites)
				}
				qj := q[nb.Index]
				erfcval := math.Erfc(p.SqrtEta * rij)
				part.energy += erfcval * qi * qj / rij
				fijpf := qj / (rij * rij * rij) * (erfcval + forcepf*rij*math.Exp(-p.Eta*rij*rij))
				d := [3]float64{ri[0] - nb.Cart[0], ri[1] - nb.Cart[1], ri[2] - nb.Cart[2]}
				part.addForce(i, fijpf*qi*ConvFact, d)
			}
		}
		return part, nil
	})
	if err != nil {
		return partial{}, err
	}
	ret.energy *= 0.5 * ConvFact
	return ret, nil
}

//point returns the self energy of the screening charges,
//
//	-(eta/Pi)^(1/2) sum_i q_i^2
//
//and the compensating background term (the G=0 term of the reciprocal sum), which only matters
//for charged cells, both in eV.
func point(q []float64, p Parameters, volume float64) (self, background float64) {
	var qsq, total float64
	for _, v := range q {
		qsq += v * v
		total += v
	}
	self = -math.Sqrt(p.Eta/math.Pi) * qsq * ConvFact
	background = total * math.Pi / (2 * volume * p.Eta) * ConvFact
	return self, background
}
