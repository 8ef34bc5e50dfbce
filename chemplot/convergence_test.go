/*
 * convergence_test.go, part of goCrystal.
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

package chemplot

import (
	"os"
	"path/filepath"
	"testing"

	crystal "github.com/rmera/gocrystal"
	"github.com/rmera/gocrystal/ewald"
)

func TestConvergencePlot(Te *testing.T) {
	L, err := crystal.CubicLattice(4.11)
	if err != nil {
		Te.Fatal(err)
	}
	s, err := crystal.NewOrderedStructure(L, []crystal.Species{crystal.NewSpecie("Cs", 1), crystal.NewSpecie("Cl", -1)},
		[][3]float64{{0, 0, 0}, {0.5, 0.5, 0.5}}, false)
	if err != nil {
		Te.Fatal(err)
	}
	p := ewald.Params(s.Len(), s.Volume(), 8, -1, -1, -1)
	scan, err := ewald.ConvergenceScan(s, p.Eta, ewald.ScaledCutoffs(p, []float64{0.6, 0.8, 1, 1.2}))
	if err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	for name, f := range map[string]func(*ewald.Scan, string, string) error{"energies.png": ConvergencePlot, "change.png": ChangePlot} {
		out := filepath.Join(dir, name)
		if err := f(scan, "", out); err != nil {
			Te.Fatal(err)
		}
		info, err := os.Stat(out)
		if err != nil {
			Te.Fatal(err)
		}
		if info.Size() == 0 {
			Te.Errorf("%s is empty", name)
		}
	}
	if err := ConvergencePlot(&ewald.Scan{}, "", filepath.Join(dir, "empty.png")); err == nil {
		Te.Errorf("an empty scan should not be plotted")
	}
}
