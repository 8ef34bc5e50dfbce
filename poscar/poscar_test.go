/*
 * poscar_test.go, part of goCrystal.
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

package poscar

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	crystal "github.com/rmera/gocrystal"
)

func TestRead(Te *testing.T) {
	P, err := ReadFile(filepath.Join("testdata", "POSCAR.LiFePO4"))
	if err != nil {
		Te.Fatal(err)
	}
	s := P.Structure
	if P.Comment != "Li4 Fe4 P4 O16" {
		Te.Errorf("wrong comment %q", P.Comment)
	}
	if f := s.Formula(); f != "Li4 Fe4 P4 O16" {
		Te.Errorf("wrong formula %s", f)
	}
	if math.Abs(s.Volume()-291.0212) > 1e-8 {
		Te.Errorf("the negative scale should set the volume to 291.0212, not %f", s.Volume())
	}
	if P.Selective != nil {
		Te.Errorf("no selective dynamics in this file")
	}
	if diff := cmp.Diff([3]float64{0.28219, 0.25, 0.9747}, s.Site(4).Frac, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		Te.Errorf("wrong coordinates (-want +got):\n%s", diff)
	}
}

func TestReadVASP4(Te *testing.T) {
	P, err := ReadFile(filepath.Join("testdata", "POSCAR.vasp4"))
	if err != nil {
		Te.Fatal(err)
	}
	s := P.Structure
	if s.Len() != 2 || s.Site(0).Species[0].Symbol != "Cs" || s.Site(1).Species[0].Symbol != "Cl" {
		Te.Fatalf("wrong species in %s", s)
	}
	if diff := cmp.Diff([3]float64{0.5, 0.5, 0.5}, s.Site(1).Frac, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		Te.Errorf("cartesian coordinates not scaled (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][3]bool{{false, false, false}, {true, true, false}}, P.Selective); diff != "" {
		Te.Errorf("wrong selective dynamics flags (-want +got):\n%s", diff)
	}
}

func TestReadErrors(Te *testing.T) {
	bad := map[string]string{
		"empty":      "",
		"scale":      "comment\nabc\n",
		"lattice":    "comment\n1.0\n1 0 0\n0 1\n",
		"degenerate": "comment\n1.0\n1 0 0\n0 1 0\n1 1 0\nNa\n1\nDirect\n0 0 0\n",
		"counts":     "comment\n1.0\n1 0 0\n0 1 0\n0 0 1\nNa Cl\n1\nDirect\n0 0 0\n",
		"element":    "comment\n1.0\n1 0 0\n0 1 0\n0 0 1\nXx\n1\nDirect\n0 0 0\n",
		"short":      "comment\n1.0\n1 0 0\n0 1 0\n0 0 1\nNa\n2\nDirect\n0 0 0\n",
	}
	for name, in := range bad {
		_, err := Read(strings.NewReader(in))
		var e *crystal.Error
		if !errors.As(err, &e) {
			Te.Errorf("%s: expected a crystal.Error, got %v", name, err)
		}
	}
}

//Sites come out grouped by element, and read back as they were.
func TestWriteRead(Te *testing.T) {
	L, err := crystal.LatticeFromParameters(4, 5, 6, 80, 95, 110)
	if err != nil {
		Te.Fatal(err)
	}
	sp := []crystal.Species{crystal.NewSpecie("O", -2), crystal.NewElement("Mg"), crystal.NewElement("O"), crystal.NewElement("Mg")}
	coords := [][3]float64{{0.1, 0.2, 0.3}, {0.5, 0.5, 0.5}, {0.9, 0.8, 0.7}, {0, 0, 0}}
	s, err := crystal.NewOrderedStructure(L, sp, coords, false)
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "POSCAR.zst")
	if err := WriteFile(name, s, ""); err != nil {
		Te.Fatal(err)
	}
	P, err := ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	if P.Comment != "Mg2 O2" {
		Te.Errorf("the default comment should be the formula, not %q", P.Comment)
	}
	r := P.Structure
	approx := cmpopts.EquateApprox(0, 1e-12)
	order := []int{0, 2, 1, 3}
	for i, j := range order {
		if diff := cmp.Diff(coords[j], r.Site(i).Frac, approx); diff != "" {
			Te.Errorf("site %d (-want +got):\n%s", i, diff)
		}
		if r.Site(i).Species[0].Symbol != sp[j].Symbol {
			Te.Errorf("site %d should be %s, not %s", i, sp[j].Symbol, r.Site(i).Species[0].Symbol)
		}
	}
	if diff := cmp.Diff(s.Lattice().Abc(), r.Lattice().Abc(), approx); diff != "" {
		Te.Errorf("different cell (-want +got):\n%s", diff)
	}
}

func TestWriteDisordered(Te *testing.T) {
	L, _ := crystal.CubicLattice(3)
	s, err := crystal.NewStructure(L, [][]crystal.Occupancy{{{Species: crystal.NewElement("Si"), Fraction: 0.5}}}, [][3]float64{{0, 0, 0}}, false)
	if err != nil {
		Te.Fatal(err)
	}
	var b bytes.Buffer
	if err := Write(&b, s, "partial"); !errors.Is(err, crystal.ErrDisordered) {
		Te.Errorf("expected ErrDisordered, got %v", err)
	}
}
