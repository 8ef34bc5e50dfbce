/*
 * rdf.go, part of goCrystal.
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

package histo

import (
	"fmt"
	"math"

	crystal "github.com/rmera/gocrystal"
)

//Periodic is a crystal that can list the neighbors of its sites.
type Periodic interface {
	Len() int
	Volume() float64
	AllNeighbors(r float64) ([][]crystal.Neighbor, error)
}

//PairDistances returns the distances between every site of s and all the sites and
//images within rmax of it. Each pair is counted once from each of its sites.
func PairDistances(s Periodic, rmax float64) ([]float64, error) {
	neighbors, err := s.AllNeighbors(rmax)
	if err != nil {
		return nil, fmt.Errorf("PairDistances: %w", err)
	}
	var ret []float64
	for _, v := range neighbors {
		for _, n := range v {
			ret = append(ret, n.Distance)
		}
	}
	return ret, nil
}

//PairDistribution returns the radial pair distribution function g(r) of the sites of s,
//up to rmax, in bins of the given width. Each bin is divided by the number of pairs expected
//in its spherical shell for an ideal gas with the same density, so g(r) goes to 1 for large r.
func PairDistribution(s Periodic, rmax, width float64) (*Data, error) {
	if width <= 0 || rmax <= width {
		return nil, fmt.Errorf("PairDistribution: invalid bin width %g for a maximum distance of %g", width, rmax)
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("PairDistribution: no sites")
	}
	d, err := PairDistances(s, rmax)
	if err != nil {
		return nil, err
	}
	n := int(math.Ceil(rmax / width))
	D := NewData(Dividers(0, float64(n)*width, n), d)
	N := float64(s.Len())
	density := N / s.Volume()
	for i := range D.histo {
		r1, r2 := D.dividers[i], D.dividers[i+1]
		shell := 4.0 / 3.0 * math.Pi * (r2*r2*r2 - r1*r1*r1)
		D.histo[i] /= N * density * shell
	}
	return D, nil
}

//MinDistance returns the shortest distance between two sites, or between a site and its images,
//among those closer than rmax. It returns +Inf if there are none.
func MinDistance(s Periodic, rmax float64) (float64, error) {
	d, err := PairDistances(s, rmax)
	if err != nil {
		return 0, fmt.Errorf("MinDistance: %w", err)
	}
	ret := math.Inf(1)
	for _, v := range d {
		ret = math.Min(ret, v)
	}
	return ret, nil
}
