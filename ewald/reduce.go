/*
 * reduce.go, part of goCrystal.
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
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

//partial is the contribution of some set of terms to an energy and to the
//forces on each site. Forces are stored row-major, 3 per site.
type partial struct {
	energy float64
	forces []float64
}

func newPartial(sites int) partial {
	return partial{forces: make([]float64, 3*sites)}
}

//addForce adds scale*v to the force on site i.
func (p partial) addForce(i int, scale float64, v [3]float64) {
	floats.AddScaled(p.forces[3*i:3*i+3], scale, v[:])
}

//chunks splits the range [0,n) in at most parts contiguous ranges of similar size.
func chunks(n, parts int) [][2]int {
	if parts < 1 {
		parts = 1
	}
	if parts > n {
		parts = n
	}
	ret := make([][2]int, 0, parts)
	for c := 0; c < parts; c++ {
		lo := c * n / parts
		hi := (c + 1) * n / parts
		ret = append(ret, [2]int{lo, hi})
	}
	return ret
}

//reduce evaluates f for each of at most cpus chunks of the range [0,n), concurrently,
//and adds up the results. The addition is done in chunk order, so the result
//doesn't depend on which gorutine finishes first.
func reduce(n, cpus, sites int, f func(lo, hi int) (partial, error)) (partial, error) {
	ranges := chunks(n, cpus)
	results := make([]partial, len(ranges))
	var g errgroup.Group
	for c, r := range ranges {
		g.Go(func() error {
			p, err := f(r[0], r[1])
			results[c] = p
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return partial{}, err
	}
	total := newPartial(sites)
	for _, p := range results {
		total.energy += p.energy
		floats.Add(total.forces, p.forces)
	}
	return total, nil
}
