/*
 * writer.go, part of goCrystal.
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
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	crystal "github.com/rmera/gocrystal"
)

const header = `#\#CIF1.1
##########################################################################
#               Crystallographic Information Format file
#               Produced by goCrystal
#
#  This is a CIF file.  CIF has been adopted by the International
#  Union of Crystallography as the standard for data archiving and
#  transmission.
#
#  For information on this file format, follow the CIF links at
#  http://www.iucr.org
##########################################################################

`

//Writer writes a structure as a CIF file in space group P 1.
type Writer struct {
	s    *crystal.Structure
	name string
}

//NewWriter returns a Writer for the structure s. The data block will be named after
//the reduced formula of s, unless a name is given.
func NewWriter(s *crystal.Structure, name ...string) *Writer {
	w := &Writer{s: s}
	if len(name) > 0 && name[0] != "" {
		w.name = name[0]
	} else {
		w.name, _ = s.Composition().ReducedFormula()
	}
	return w
}

//ftoa writes floats the way CIF files usually show them: 12 significant
//figures, always with a decimal point.
func ftoa(f float64) string {
	s := strconv.FormatFloat(f, 'g', 12, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

//coord writes coordinates and occupancies rounded to 8 decimals, without trailing zeros.
func coord(f float64) string {
	f = math.Round(f*1e8) / 1e8
	if f == 0 {
		f = 0 //no negative zeros
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (W *Writer) field(b *bytes.Buffer, tag, value string) {
	fmt.Fprintf(b, "%-40s%s\n", tag, value)
}

//String returns the CIF file.
func (W *Writer) String() string {
	var b bytes.Buffer
	s := W.s
	comp := s.Composition()
	reduced, factor := comp.ReducedFormula()
	b.WriteString(header)
	b.WriteString("data_" + W.name + "\n")
	W.field(&b, "_symmetry_space_group_name_H-M", "'P 1'")
	abc := s.Lattice().Abc()
	angles := s.Lattice().Angles()
	for i, l := range "abc" {
		W.field(&b, "_cell_length_"+string(l), ftoa(abc[i]))
	}
	for i, a := range []string{"alpha", "beta", "gamma"} {
		W.field(&b, "_cell_angle_"+a, ftoa(angles[i]))
	}
	W.field(&b, "_chemical_name_systematic", "'Generated by goCrystal'")
	W.field(&b, "_symmetry_Int_Tables_number", "1")
	W.field(&b, "_chemical_formula_structural", reduced)
	W.field(&b, "_chemical_formula_sum", "'"+comp.Formula()+"'")
	W.field(&b, "_cell_volume", ftoa(s.Volume()))
	W.field(&b, "_cell_formula_units_Z", strconv.Itoa(int(factor)))
	b.WriteString("loop_\n  _symmetry_equiv_pos_site_id\n  _symmetry_equiv_pos_as_xyz\n   1  'x, y, z'\n \n")

	//the atom types, only if there are oxidation states
	var types []crystal.Species
	seen := make(map[crystal.Species]bool)
	withoxi := false
	for i := 0; i < s.Len(); i++ {
		for _, o := range s.Site(i).Species {
			if seen[o.Species] {
				continue
			}
			seen[o.Species] = true
			types = append(types, o.Species)
			if _, ok := o.OxidationState(); ok {
				withoxi = true
			}
		}
	}
	if withoxi {
		b.WriteString("loop_\n  _atom_type_symbol\n  _atom_type_oxidation_number\n")
		for _, t := range types {
			oxi, _ := t.OxidationState()
			fmt.Fprintf(&b, "   %s  %s\n", t.String(), strconv.FormatFloat(oxi, 'f', -1, 64))
		}
		b.WriteString(" \n")
	}

	b.WriteString("loop_\n")
	for _, tag := range []string{"type_symbol", "symmetry_multiplicity", "fract_x", "fract_y", "fract_z",
		"attached_hydrogens", "B_iso_or_equiv", "label", "occupancy"} {
		b.WriteString("  _atom_site_" + tag + "\n")
	}
	count := 0
	for i := 0; i < s.Len(); i++ {
		site := s.Site(i)
		for _, o := range site.Species {
			count++
			fmt.Fprintf(&b, "   %s  1  %s  %s  %s  0  .  %s%d  %s\n", o.Species.String(),
				coord(site.Frac[0]), coord(site.Frac[1]), coord(site.Frac[2]), o.Symbol, count, coord(o.Fraction))
		}
	}
	b.WriteString(" \n")
	return b.String()
}

//WriteTo writes the CIF file to w.
func (W *Writer) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, W.String())
	if err != nil {
		return int64(n), fmt.Errorf("WriteTo: %w", err)
	}
	return int64(n), nil
}

//WriteFile writes s as a CIF file with the given name, which is compressed
//if it ends in .gz or .zst.
func WriteFile(name string, s *crystal.Structure) error {
	f, err := crystal.CreateFile(name)
	if err != nil {
		return err
	}
	if _, err = NewWriter(s).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("WriteFile: %s: %w", name, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("WriteFile: %s: %w", name, err)
	}
	return nil
}
