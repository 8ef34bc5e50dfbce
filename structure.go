/*
 * structure.go, part of goCrystal.
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

	v3 "github.com/rmera/gocrystal/v3"
)

//Site is a position in a crystal, occupied by one or more species.
//Fractions may sum to less than 1 for partially occupied sites.
type Site struct {
	Species []Occupancy
	Frac    [3]float64
	Cart    [3]float64
	Label   string
}

//IsOrdered returns true if the site is fully occupied by only one species.
func (S *Site) IsOrdered() bool {
	return len(S.Species) == 1 && math.Abs(S.Species[0].Fraction-1) < 1e-8
}

//Copy returns a deep copy of the site.
func (S *Site) Copy() *Site {
	if S == nil {
		panic("Attempted to copy a nil site")
	}
	ret := *S
	ret.Species = append([]Occupancy(nil), S.Species...)
	return &ret
}

//String returns a short description of the site.
func (S *Site) String() string {
	sp := ""
	for i, v := range S.Species {
		if i > 0 {
			sp += ","
		}
		if S.IsOrdered() {
			sp += v.Species.String()
		} else {
			sp += fmt.Sprintf("%s:%g", v.Species, v.Fraction)
		}
	}
	return fmt.Sprintf("[%s] %.6f %.6f %.6f", sp, S.Frac[0], S.Frac[1], S.Frac[2])
}

//Structure is a periodic arrangement of sites in a lattice.
type Structure struct {
	lattice *Lattice
	sites   []*Site
}

//NewStructure returns a structure with the given lattice and one site for each element of species,
//located at the corresponding element of coords. The coordinates are taken as cartesian if cartesian
//is true, fractional otherwise.
func NewStructure(lattice *Lattice, species [][]Occupancy, coords [][3]float64, cartesian bool) (*Structure, error) {
	if lattice == nil {
		return nil, fmt.Errorf("NewStructure: nil lattice")
	}
	if len(species) != len(coords) {
		return nil, fmt.Errorf("NewStructure: %d species given for %d coordinates", len(species), len(coords))
	}
	S := &Structure{lattice: lattice, sites: make([]*Site, 0, len(coords))}
	for i, c := range coords {
		if len(species[i]) == 0 {
			return nil, fmt.Errorf("NewStructure: site %d has no species", i)
		}
		site := &Site{Species: append([]Occupancy(nil), species[i]...)}
		if cartesian {
			site.Cart = c
			site.Frac = lattice.CartToFrac(c)
		} else {
			site.Frac = c
			site.Cart = lattice.FracToCart(c)
		}
		S.sites = append(S.sites, site)
	}
	return S, nil
}

//NewOrderedStructure is a shortcut for NewStructure when each site has only one species,
//fully occupying it.
func NewOrderedStructure(lattice *Lattice, species []Species, coords [][3]float64, cartesian bool) (*Structure, error) {
	occ := make([][]Occupancy, len(species))
	for i, v := range species {
		occ[i] = []Occupancy{{Species: v, Fraction: 1}}
	}
	return NewStructure(lattice, occ, coords, cartesian)
}

//Len returns the number of sites in the structure.
func (S *Structure) Len() int {
	return len(S.sites)
}

//Site returns the ith site. It panics if out of range.
func (S *Structure) Site(i int) *Site {
	if i >= S.Len() || i < 0 {
		panic("Structure: Requested Site out of bounds")
	}
	return S.sites[i]
}

//Lattice returns the lattice of the structure.
func (S *Structure) Lattice() *Lattice {
	return S.lattice
}

//Volume returns the volume of the unit cell.
func (S *Structure) Volume() float64 {
	return S.lattice.Volume()
}

//Cart returns the cartesian coordinates of the ith site.
func (S *Structure) Cart(i int) [3]float64 {
	return S.Site(i).Cart
}

//Occupancies returns the species occupying the ith site.
func (S *Structure) Occupancies(i int) []Occupancy {
	return S.Site(i).Species
}

//Coords returns the cartesian coordinates of all the sites.
func (S *Structure) Coords() *v3.Matrix {
	ret := v3.Zeros(S.Len())
	for i, v := range S.sites {
		ret.SetVec(i, v.Cart)
	}
	return ret
}

//FracCoords returns the fractional coordinates of all the sites.
func (S *Structure) FracCoords() *v3.Matrix {
	ret := v3.Zeros(S.Len())
	for i, v := range S.sites {
		ret.SetVec(i, v.Frac)
	}
	return ret
}

//IsOrdered returns true if all the sites are ordered.
func (S *Structure) IsOrdered() bool {
	for _, v := range S.sites {
		if !v.IsOrdered() {
			return false
		}
	}
	return true
}

//Copy returns a deep copy of the structure. The lattice is shared, as
//it can't be modified.
func (S *Structure) Copy() *Structure {
	ret := &Structure{lattice: S.lattice, sites: make([]*Site, len(S.sites))}
	for i, v := range S.sites {
		ret.sites[i] = v.Copy()
	}
	return ret
}

//AddOxidationStates sets, in place, the oxidation state of every species whose element is a key of oxi.
//Species of other elements are left as they are.
func (S *Structure) AddOxidationStates(oxi map[string]float64) {
	for _, site := range S.sites {
		for j, v := range site.Species {
			if o, ok := oxi[v.Symbol]; ok {
				site.Species[j].Species = v.Species.WithOxidationState(o)
			}
		}
	}
}

//SiteCharge returns the average charge of the ith site, i.e. the sum over the species
//occupying it of the occupancy times the oxidation state. Species without
//oxidation state contribute nothing.
func (S *Structure) SiteCharge(i int) float64 {
	return AverageCharge(S.Site(i).Species)
}

//Charge returns the total charge of the cell.
func (S *Structure) Charge() float64 {
	q := 0.0
	for i := range S.sites {
		q += S.SiteCharge(i)
	}
	return q
}

//Density returns the density of the structure in g/cm^3.
func (S *Structure) Density() float64 {
	m := 0.0
	for _, site := range S.sites {
		for _, v := range site.Species {
			m += Mass(v.Symbol) * v.Fraction
		}
	}
	//g/mol / (A^3 * 1e-24 cm^3/A^3) / Na
	return m / Avogadro / (S.Volume() * 1e-24)
}

//AverageCharge returns the occupancy-weighted sum of the oxidation states of the
//given species. Species with no oxidation state contribute 0.
func AverageCharge(occ []Occupancy) float64 {
	q := 0.0
	for _, v := range occ {
		if o, ok := v.OxidationState(); ok {
			q += o * v.Fraction
		}
	}
	return q
}

//String returns a human-readable description of the structure.
func (S *Structure) String() string {
	abc := S.lattice.Abc()
	ang := S.lattice.Angles()
	ret := fmt.Sprintf("Structure %s\nabc: %.6f %.6f %.6f\nangles: %.6f %.6f %.6f\nSites (%d)\n", S.Formula(), abc[0], abc[1], abc[2], ang[0], ang[1], ang[2], S.Len())
	for i, v := range S.sites {
		ret += fmt.Sprintf("%d %s\n", i+1, v)
	}
	return ret
}
