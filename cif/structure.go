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

package cif

import (
	"errors"
	"fmt"
	"log"

	crystal "github.com/rmera/gocrystal"
)

//ErrNoAtomSites is returned when a structure is requested from a block, or file, without atom sites.
var ErrNoAtomSites = errors.New("cif: no atom sites")

//PositionTol is the tolerance, in fractional coordinates, under which two positions
//generated by the symmetry operations are taken to be the same.
var PositionTol = 1e-4

//occupancyTol is how much the total occupancy of a site can exceed 1 before we complain.
const occupancyTol = 1e-3

var symopTags = []string{"_symmetry_equiv_pos_as_xyz", "_space_group_symop_operation_xyz"}

//SymOps returns the symmetry operations in the block, or only the identity, if there are none.
func (B *Block) SymOps() ([]SymOp, error) {
	for _, tag := range symopTags {
		col := B.Column(tag)
		if col == nil {
			continue
		}
		ops := make([]SymOp, 0, len(col))
		for _, v := range col {
			op, err := ParseSymOp(v)
			if err != nil {
				return nil, fmt.Errorf("SymOps: block %s: %w", B.Name, err)
			}
			ops = append(ops, op)
		}
		return ops, nil
	}
	return []SymOp{Identity}, nil
}

//OxidationNumbers returns the oxidation number of each atom type in the block, or
//nil if they are not given.
func (B *Block) OxidationNumbers() (map[string]float64, error) {
	sym := B.Column("_atom_type_symbol")
	oxi := B.Column("_atom_type_oxidation_number")
	if sym == nil || oxi == nil {
		return nil, nil
	}
	ret := make(map[string]float64, len(sym))
	for i, s := range sym {
		v, err := ParseNumber(oxi[i])
		if err != nil {
			return nil, fmt.Errorf("OxidationNumbers: atom type %s: %w", s, err)
		}
		ret[s] = v
	}
	return ret, nil
}

//HasSites returns true if the block contains atom sites.
func (B *Block) HasSites() bool {
	return B.Column("_atom_site_type_symbol") != nil || B.Column("_atom_site_label") != nil
}

//Lattice builds the lattice from the cell parameters in the block.
func (B *Block) Lattice() (*crystal.Lattice, error) {
	var p [6]float64
	for i, tag := range []string{"_cell_length_a", "_cell_length_b", "_cell_length_c", "_cell_angle_alpha", "_cell_angle_beta", "_cell_angle_gamma"} {
		var err error
		p[i], err = B.Float(tag)
		if err != nil {
			return nil, fmt.Errorf("Lattice: %w", err)
		}
	}
	L, err := crystal.LatticeFromParameters(p[0], p[1], p[2], p[3], p[4], p[5])
	if err != nil {
		return nil, fmt.Errorf("Lattice: block %s: %w", B.Name, err)
	}
	return L, nil
}

type cifSite struct {
	frac  [3]float64
	occ   []crystal.Occupancy
	label string
}

//Structure builds the crystal structure described by the block. Every site is expanded
//by all the symmetry operations. Images within PositionTol of each other are merged:
//the same species at the same position is a symmetry duplicate and is dropped, while different
//species at the same position form a disordered site.
func (B *Block) Structure() (*crystal.Structure, error) {
	symbols := B.Column("_atom_site_type_symbol")
	labels := B.Column("_atom_site_label")
	if symbols == nil {
		symbols = labels
	}
	if symbols == nil {
		return nil, fmt.Errorf("Structure: block %s: %w", B.Name, ErrNoAtomSites)
	}
	L, err := B.Lattice()
	if err != nil {
		return nil, fmt.Errorf("Structure: %w", err)
	}
	ops, err := B.SymOps()
	if err != nil {
		return nil, fmt.Errorf("Structure: %w", err)
	}
	oxi, err := B.OxidationNumbers()
	if err != nil {
		return nil, fmt.Errorf("Structure: block %s: %w", B.Name, err)
	}
	var xyz [3][]string
	for i, tag := range []string{"_atom_site_fract_x", "_atom_site_fract_y", "_atom_site_fract_z"} {
		xyz[i] = B.Column(tag)
		if len(xyz[i]) != len(symbols) {
			return nil, fmt.Errorf("Structure: block %s: %d values of %s for %d atom sites", B.Name, len(xyz[i]), tag, len(symbols))
		}
	}
	occupancies := B.Column("_atom_site_occupancy")
	var sites []*cifSite
	for i, symbol := range symbols {
		sp, err := crystal.ParseSpecies(symbol)
		if err != nil {
			return nil, fmt.Errorf("Structure: block %s, atom site %d: %w", B.Name, i, err)
		}
		if o, ok := oxi[symbol]; ok {
			sp = sp.WithOxidationState(o)
		}
		var f [3]float64
		for k := range f {
			f[k], err = ParseNumber(xyz[k][i])
			if err != nil {
				return nil, fmt.Errorf("Structure: block %s, atom site %d: %w", B.Name, i, err)
			}
		}
		occ := 1.0
		if len(occupancies) == len(symbols) {
			if v, err := ParseNumber(occupancies[i]); err == nil {
				occ = v
			}
		}
		label := ""
		if labels != nil {
			label = labels[i]
		}
		for _, op := range ops {
			sites = addPosition(sites, wrap(op.Apply(f), PositionTol), sp, occ, label)
		}
	}
	fracs := make([][3]float64, len(sites))
	occs := make([][]crystal.Occupancy, len(sites))
	for i, s := range sites {
		fracs[i] = s.frac
		occs[i] = s.occ
		total := 0.0
		for _, o := range s.occ {
			total += o.Fraction
		}
		if total > 1+occupancyTol {
			log.Printf("Structure: block %s: site %s at %v has a total occupancy of %g", B.Name, s.label, s.frac, total)
		}
	}
	S, err := crystal.NewStructure(L, occs, fracs, false)
	if err != nil {
		return nil, fmt.Errorf("Structure: block %s: %w", B.Name, err)
	}
	for i, s := range sites {
		S.Site(i).Label = s.label
	}
	return S, nil
}

//addPosition adds the species sp, with occupancy occ, at the fractional position f.
func addPosition(sites []*cifSite, f [3]float64, sp crystal.Species, occ float64, label string) []*cifSite {
	for _, s := range sites {
		if !samePosition(s.frac, f, PositionTol) {
			continue
		}
		for _, o := range s.occ {
			if o.Species == sp {
				return sites
			}
		}
		s.occ = append(s.occ, crystal.Occupancy{Species: sp, Fraction: occ})
		return sites
	}
	return append(sites, &cifSite{frac: f, occ: []crystal.Occupancy{{Species: sp, Fraction: occ}}, label: label})
}

//Structures returns the structures of all the blocks in the file that contain atom sites.
func (F *File) Structures() ([]*crystal.Structure, error) {
	var ret []*crystal.Structure
	for _, b := range F.Blocks {
		if !b.HasSites() {
			continue
		}
		s, err := b.Structure()
		if err != nil {
			return nil, fmt.Errorf("Structures: %w", err)
		}
		ret = append(ret, s)
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("Structures: %w", ErrNoAtomSites)
	}
	return ret, nil
}
