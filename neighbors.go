/*
 * neighbors.go, part of goCrystal.
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
)

//Neighbor is a site, or one of its periodic images, found within some
//distance of a center site.
type Neighbor struct {
	Index    int        //index of the site in the structure
	Image    [3]int     //lattice translation applied to the site
	Cart     [3]float64 //cartesian coordinates of the image
	Distance float64
}

//Neighbors returns the sites (and periodic images) at a distance equal or smaller than r
//from the ith site, ordered by site index and then by image. The site itself (with a zero image)
//is never included. Other images of the site are.
//Distinct sites (or images) sitting on top of the center are included, with a distance
//close to zero; it is up to the caller to decide what to do with them.
func (S *Structure) Neighbors(i int, r float64) ([]Neighbor, error) {
	ci := S.Cart(i)
	var ret []Neighbor
	for j, site := range S.sites {
		//We look for lattice points L such that |cj + L - ci| <= r,
		//i.e. lattice points within r of ci - cj
		var center [3]float64
		for k := range center {
			center[k] = ci[k] - site.Cart[k]
		}
		points, err := S.lattice.PointsInSphere(center, r)
		if err != nil {
			return nil, fmt.Errorf("Neighbors: site %d: %w", i, err)
		}
		for _, p := range points {
			if j == i && p.Image == [3]int{0, 0, 0} {
				continue
			}
			var c [3]float64
			for k := range c {
				c[k] = site.Cart[k] + p.Cart[k]
			}
			ret = append(ret, Neighbor{Index: j, Image: p.Image, Cart: c, Distance: p.Distance})
		}
	}
	return ret, nil
}

//AllNeighbors returns, for each site in the structure, the result of Neighbors(i, r).
func (S *Structure) AllNeighbors(r float64) ([][]Neighbor, error) {
	if S.Len() > 0 {
		_, _, n := S.lattice.imageBox([3]float64{}, r)
		if n*float64(S.Len())*float64(S.Len()) > float64(MaxLatticeTerms) {
			return nil, fmt.Errorf("AllNeighbors: radius %g with %d sites: %w", r, S.Len(), ErrTooManyImages)
		}
	}
	ret := make([][]Neighbor, S.Len())
	var err error
	for i := range S.sites {
		ret[i], err = S.Neighbors(i, r)
		if err != nil {
			return nil, fmt.Errorf("AllNeighbors: %w", err)
		}
	}
	return ret, nil
}

//ReciprocalPoints returns the cartesian coordinates of the points of the reciprocal lattice
//strictly inside the sphere of radius g around the origin, excluding the origin itself.
//Points exactly at a distance g are left out.
func (S *Structure) ReciprocalPoints(g float64) ([][3]float64, error) {
	points, err := S.lattice.Reciprocal().PointsInSphere([3]float64{}, g)
	if err != nil {
		return nil, fmt.Errorf("ReciprocalPoints: %w", err)
	}
	ret := make([][3]float64, 0, len(points))
	for _, p := range points {
		if p.Image == [3]int{0, 0, 0} || p.Distance >= g {
			continue
		}
		ret = append(ret, p.Cart)
	}
	return ret, nil
}
