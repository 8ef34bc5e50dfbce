/*
 * histo_test.go, part of goCrystal.
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
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	crystal "github.com/rmera/gocrystal"
)

func TestHisto(Te *testing.T) {
	rawdata := []float64{1, 6, 3, 2, 4, 5, 7, 6, 3.5, 3, 5, 1, 1, 0, 0, 5, 8, 1, 2, 3, 44, 3, 7, 3, 1, 3, 5, 32, 1}
	D := NewData([]float64{0, 1, 2, 3, 4, 8}, rawdata)
	want := []float64{2, 6, 2, 7, 9}
	if diff := cmp.Diff(want, D.View()); diff != "" {
		Te.Errorf("wrong histogram (-want +got):\n%s", diff)
	}
	if D.Total() != len(rawdata) {
		Te.Errorf("the total should count all the data, %d, not %d", len(rawdata), D.Total())
	}
	D.AddData(0.5, 7.9, 8, -1)
	want = []float64{3, 6, 2, 7, 10}
	if diff := cmp.Diff(want, D.View()); diff != "" {
		Te.Errorf("wrong histogram after AddData (-want +got):\n%s", diff)
	}
	D.Normalize()
	D.Normalize()
	if math.Abs(D.Sum()-28.0/33.0) > 1e-12 {
		Te.Errorf("wrong normalization, the sum is %f", D.Sum())
	}
	D.AddData(2.5)
	D.UnNormalize()
	if math.Abs(D.View()[2]-3) > 1e-12 {
		Te.Errorf("data added to a normalized histogram was lost: %v", D.View())
	}
	j, err := json.Marshal(D)
	if err != nil {
		Te.Fatal(err)
	}
	D2 := new(Data)
	if err := json.Unmarshal(j, D2); err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff(D.Report(), D2.Report()); diff != "" {
		Te.Errorf("JSON round trip changed the histogram (-want +got):\n%s", diff)
	}
	if err := json.Unmarshal([]byte(`{"dividers":[0,1],"histo":[1,2]}`), D2); err == nil {
		Te.Errorf("histograms with the wrong number of bins should not be accepted")
	}
}

func TestPairDistribution(Te *testing.T) {
	L, err := crystal.CubicLattice(2)
	if err != nil {
		Te.Fatal(err)
	}
	s, err := crystal.NewOrderedStructure(L, []crystal.Species{crystal.NewElement("Po")}, [][3]float64{{0, 0, 0}}, false)
	if err != nil {
		Te.Fatal(err)
	}
	d, err := MinDistance(s, 3)
	if err != nil {
		Te.Fatal(err)
	}
	if d != 2 {
		Te.Errorf("the nearest neighbor should be at 2 A, not %f", d)
	}
	D, err := PairDistribution(s, 3, 0.5)
	if err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff(Dividers(0, 3, 6), D.CopyDividers(), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		Te.Errorf("wrong dividers (-want +got):\n%s", diff)
	}
	//6 neighbors at 2, 12 at 2.83, in the bins [2,2.5) and [2.5,3)
	g := D.View()
	density := 1.0 / 8
	for i, count := range map[int]float64{4: 6, 5: 12} {
		r1, r2 := 0.5*float64(i), 0.5*float64(i+1)
		want := count / (density * 4.0 / 3.0 * math.Pi * (r2*r2*r2 - r1*r1*r1))
		if math.Abs(g[i]-want) > 1e-10 {
			Te.Errorf("bin %d: g = %f, expected %f", i, g[i], want)
		}
	}
	if g[0] != 0 || g[3] != 0 {
		Te.Errorf("no pairs closer than 2 A: %v", g)
	}
	if _, err := PairDistribution(s, 3, 0); err == nil {
		Te.Errorf("a zero width should not be accepted")
	}
}
