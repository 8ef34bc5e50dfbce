/*
 * ewald_test.go, part of goCrystal.
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
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	crystal "github.com/rmera/gocrystal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

//The Madelung constant of the rock salt structure.
const madelungNaCl = 1.747564594633

//rocksalt returns a conventional NaCl cell with 4 Na+ and 4 Cl-.
func rocksalt(Te *testing.T, a float64) *crystal.Structure {
	Te.Helper()
	L, err := crystal.CubicLattice(a)
	require.NoError(Te, err)
	na := crystal.NewSpecie("Na", 1)
	cl := crystal.NewSpecie("Cl", -1)
	sp := []crystal.Species{na, na, na, na, cl, cl, cl, cl}
	coords := [][3]float64{{0, 0, 0}, {0, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 0.5, 0},
		{0.5, 0, 0}, {0, 0.5, 0}, {0, 0, 0.5}, {0.5, 0.5, 0.5}}
	S, err := crystal.NewOrderedStructure(L, sp, coords, false)
	require.NoError(Te, err)
	return S
}

//distorted returns a neutral, low symmetry structure where all sites feel forces.
func distorted(Te *testing.T) *crystal.Structure {
	Te.Helper()
	L, err := crystal.NewLatticeFromVectors([3]float64{5, 0, 0}, [3]float64{0.5, 4.5, 0}, [3]float64{0, 0.3, 6})
	require.NoError(Te, err)
	sp := []crystal.Species{crystal.NewSpecie("Na", 1), crystal.NewSpecie("Cl", -1), crystal.NewSpecie("Mg", 2), crystal.NewSpecie("O", -2)}
	coords := [][3]float64{{0, 0, 0}, {1.7, 1.1, 0.6}, {2.5, 3.0, 3.1}, {4.0, 0.5, 4.4}}
	S, err := crystal.NewOrderedStructure(L, sp, coords, true)
	require.NoError(Te, err)
	return S
}

func TestMadelung(Te *testing.T) {
	a := 5.64
	E, err := New(rocksalt(Te, a))
	require.NoError(Te, err)
	want := -4 * madelungNaCl * ConvFact / (a / 2)
	assert.InEpsilon(Te, want, E.TotalEnergy(), 1e-7)
	assert.InDelta(Te, 1.4347557763787995, E.ReciprocalEnergy(), 1e-6)
	assert.InDelta(Te, -5.288018715773007, E.RealEnergy(), 1e-6)
	assert.InDelta(Te, -31.840794756136294, E.PointEnergy(), 1e-6)
}

func TestConvFact(Te *testing.T) {
	assert.InDelta(Te, 14.39964547842567, ConvFact, 1e-10)
}

func TestSinglePair(Te *testing.T) {
	L, err := crystal.CubicLattice(10)
	require.NoError(Te, err)
	S, err := crystal.NewOrderedStructure(L, []crystal.Species{crystal.NewSpecie("Na", 1), crystal.NewSpecie("Cl", -1)},
		[][3]float64{{0, 0, 0}, {2, 0, 0}}, true)
	require.NoError(Te, err)
	o := DefaultOptions()
	o.Eta(0.5)
	o.RealCut(3) //only the first shell: each ion sees the other one once.
	E, err := New(S, o)
	require.NoError(Te, err)
	r := 2.0
	want := -math.Erfc(math.Sqrt(0.5)*r) / r * ConvFact
	assert.InEpsilon(Te, want, E.RealEnergy(), 1e-9)
	assert.InEpsilon(Te, -0.32759383464118597, E.RealEnergy(), 1e-6)
	_, pairs := E.Terms()
	assert.Equal(Te, 2, pairs)
}

//Reciprocal vectors exactly on the cutoff sphere are not summed. The reciprocal
//lattice of the unit cube is 2*Pi times the identity, so the first shell is at exactly 2*Pi.
func TestRecipCutoffIsStrict(Te *testing.T) {
	L, err := crystal.CubicLattice(1)
	require.NoError(Te, err)
	S, err := crystal.NewOrderedStructure(L, []crystal.Species{crystal.NewSpecie("Cs", 1), crystal.NewSpecie("Cl", -1)},
		[][3]float64{{0, 0, 0}, {0.5, 0.5, 0.5}}, false)
	require.NoError(Te, err)
	o := DefaultOptions()
	o.Eta(0.5)
	o.RecipCut(2 * math.Pi)
	E, err := New(S, o)
	require.NoError(Te, err)
	gvecs, _ := E.Terms()
	assert.Equal(Te, 0, gvecs)
	assert.Equal(Te, 0.0, E.ReciprocalEnergy())

	o.RecipCut(math.Nextafter(2*math.Pi, 10))
	E, err = New(S, o)
	require.NoError(Te, err)
	gvecs, _ = E.Terms()
	assert.Equal(Te, 6, gvecs)
	//S(G) = 2 for the six shortest vectors
	G2 := 4 * math.Pi * math.Pi
	want := 2 * math.Pi / S.Volume() * 6 * math.Exp(-G2/(4*0.5)) / G2 * 4 * ConvFact
	assert.InEpsilon(Te, want, E.ReciprocalEnergy(), 1e-9)
}

func TestAdditivity(Te *testing.T) {
	for _, S := range []*crystal.Structure{rocksalt(Te, 5.64), distorted(Te)} {
		E, err := New(S)
		require.NoError(Te, err)
		assert.InDelta(Te, E.ReciprocalEnergy()+E.RealEnergy()+E.PointEnergy(), E.TotalEnergy(), 1e-12)
		assert.InDelta(Te, E.SelfEnergy()+E.BackgroundEnergy(), E.PointEnergy(), 1e-12)
	}
}

func TestNeutralBackground(Te *testing.T) {
	S := rocksalt(Te, 5.64)
	for _, eta := range []float64{-1, 0.1, 0.35, 1.2} {
		o := DefaultOptions()
		o.Eta(eta)
		E, err := New(S, o)
		require.NoError(Te, err)
		assert.InDelta(Te, 0, E.BackgroundEnergy(), 1e-12, "eta %f", eta)
	}
	big := rocksalt(Te, 8)
	E, err := New(big)
	require.NoError(Te, err)
	assert.InDelta(Te, 0, E.BackgroundEnergy(), 1e-12)
}

func TestChargedCell(Te *testing.T) {
	L, _ := crystal.CubicLattice(6)
	S, err := crystal.NewOrderedStructure(L, []crystal.Species{crystal.NewSpecie("Na", 1)}, [][3]float64{{0, 0, 0}}, false)
	require.NoError(Te, err)
	E, err := New(S)
	require.NoError(Te, err)
	p := E.Parameters()
	assert.InEpsilon(Te, math.Pi/(2*216*p.Eta)*ConvFact, E.BackgroundEnergy(), 1e-12)
	assert.InEpsilon(Te, -math.Sqrt(p.Eta/math.Pi)*ConvFact, E.SelfEnergy(), 1e-12)
}

func TestNoOxidationStates(Te *testing.T) {
	L, _ := crystal.CubicLattice(5)
	S, err := crystal.NewStructure(L, [][]crystal.Occupancy{
		{{Species: crystal.NewElement("Na"), Fraction: 1}},
		{{Species: crystal.NewSpecie("Cl", -1), Fraction: 0.5}, {Species: crystal.NewElement("Br"), Fraction: 0.5}},
	}, [][3]float64{{0, 0, 0}, {0.5, 0.5, 0.5}}, false)
	require.NoError(Te, err)
	E, err := New(S)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{0, -0.5}, E.Charges())
}

func TestOverrideEquivalence(Te *testing.T) {
	for _, S := range []*crystal.Structure{rocksalt(Te, 5.64), distorted(Te)} {
		def, err := New(S)
		require.NoError(Te, err)
		p := Params(S.Len(), S.Volume(), 8, -1, -1, -1)
		o := DefaultOptions()
		o.Eta(p.Eta)
		o.RealCut(p.RMax)
		o.RecipCut(p.GMax)
		over, err := New(S, o)
		require.NoError(Te, err)
		assert.Equal(Te, def.Parameters(), over.Parameters())
		assert.Equal(Te, def.ReciprocalEnergy(), over.ReciprocalEnergy())
		assert.Equal(Te, def.RealEnergy(), over.RealEnergy())
		assert.Equal(Te, def.PointEnergy(), over.PointEnergy())
		assert.Equal(Te, def.TotalEnergy(), over.TotalEnergy())
		//negative values other than -1 also mean "default"
		o = DefaultOptions()
		o.Eta(-3)
		o.RealCut(-0.5)
		o.RecipCut(0)
		neg, err := New(S, o)
		require.NoError(Te, err)
		assert.Equal(Te, def.TotalEnergy(), neg.TotalEnergy())
	}
}

func TestInversionForces(Te *testing.T) {
	L, _ := crystal.CubicLattice(4.11)
	cscl, err := crystal.NewOrderedStructure(L, []crystal.Species{crystal.NewSpecie("Cs", 1), crystal.NewSpecie("Cl", -1)},
		[][3]float64{{0, 0, 0}, {0.5, 0.5, 0.5}}, false)
	require.NoError(Te, err)
	for _, S := range []*crystal.Structure{cscl, rocksalt(Te, 5.64)} {
		E, err := New(S)
		require.NoError(Te, err)
		for i := 0; i < S.Len(); i++ {
			f := E.Force(i)
			for _, v := range f {
				assert.InDelta(Te, 0, v, 1e-8, "site %d force %v", i, f)
			}
		}
	}
}

func TestForcesAddToZero(Te *testing.T) {
	E, err := New(distorted(Te))
	require.NoError(Te, err)
	F := E.Forces()
	var sum [3]float64
	for i := 0; i < F.NVecs(); i++ {
		v := F.Vec(i)
		for k := range sum {
			sum[k] += v[k]
		}
	}
	for _, v := range sum {
		assert.InDelta(Te, 0, v, 1e-9)
	}
	assert.Greater(Te, F.MaxVecNorm(), 1.0)
}

//The forces must be minus the gradient of the energy, which we get by finite differences.
func TestForcesGradient(Te *testing.T) {
	S := distorted(Te)
	o := DefaultOptions()
	o.AccFactor(12)
	E, err := New(S, o)
	require.NoError(Te, err)
	p := E.Parameters()
	o.Eta(p.Eta)
	o.RealCut(p.RMax)
	o.RecipCut(p.GMax)
	const h = 1e-4
	energy := func(site, k int, delta float64) float64 {
		moved := S.Copy()
		c := moved.Site(site).Cart
		c[k] += delta
		moved.Site(site).Cart = c
		moved.Site(site).Frac = moved.Lattice().CartToFrac(c)
		M, err := New(moved, o)
		require.NoError(Te, err)
		return M.TotalEnergy()
	}
	for _, site := range []int{0, 1} {
		f := E.Force(site)
		for k := 0; k < 3; k++ {
			num := -(energy(site, k, h) - energy(site, k, -h)) / (2 * h)
			assert.InDelta(Te, num, f[k], 1e-5, "site %d component %d", site, k)
		}
	}
}

func TestCpusDeterminism(Te *testing.T) {
	S := distorted(Te)
	o := DefaultOptions()
	o.Cpus(1)
	one, err := New(S, o)
	require.NoError(Te, err)
	o.Cpus(7)
	seven, err := New(S, o)
	require.NoError(Te, err)
	assert.InDelta(Te, one.TotalEnergy(), seven.TotalEnergy(), 1e-9)
	for i := 0; i < S.Len(); i++ {
		a, b := one.Force(i), seven.Force(i)
		for k := range a {
			assert.InDelta(Te, a[k], b[k], 1e-9)
		}
	}
	again, err := New(S, o)
	require.NoError(Te, err)
	assert.Equal(Te, seven.TotalEnergy(), again.TotalEnergy())
}

func TestCoincidentSites(Te *testing.T) {
	L, _ := crystal.CubicLattice(5)
	S, err := crystal.NewOrderedStructure(L, []crystal.Species{crystal.NewSpecie("Na", 1), crystal.NewSpecie("Cl", -1)},
		[][3]float64{{0.1, 0.1, 0.1}, {0.1, 0.1, 0.1}}, false)
	require.NoError(Te, err)
	_, err = New(S)
	assert.True(Te, errors.Is(err, ErrCoincidentSites), "got %v", err)
}

func TestNoSites(Te *testing.T) {
	L, _ := crystal.CubicLattice(5)
	S, err := crystal.NewOrderedStructure(L, nil, nil, false)
	require.NoError(Te, err)
	_, err = New(S)
	assert.ErrorIs(Te, err, ErrNoSites)
}

func TestTooLargeCutoff(Te *testing.T) {
	o := DefaultOptions()
	o.RealCut(1e5)
	_, err := New(rocksalt(Te, 5.64), o)
	assert.ErrorIs(Te, err, crystal.ErrTooManyImages)
}

func TestString(Te *testing.T) {
	S := distorted(Te)
	E, err := New(S)
	require.NoError(Te, err)
	lines := strings.Split(E.String(), "\n")
	require.Len(Te, lines, 5+S.Len())
	assert.Equal(Te, "Forces:", lines[4])
	total, err := strconv.ParseFloat(strings.TrimPrefix(lines[3], "Total = "), 64)
	require.NoError(Te, err)
	assert.Equal(Te, E.TotalEnergy(), total)
	fx, err := strconv.ParseFloat(strings.Fields(lines[5])[0], 64)
	require.NoError(Te, err)
	assert.Equal(Te, E.Force(0)[0], fx)

	j, err := json.Marshal(E)
	require.NoError(Te, err)
	var r Report
	require.NoError(Te, json.Unmarshal(j, &r))
	assert.Equal(Te, E.TotalEnergy(), r.Total)
	assert.Equal(Te, E.Force(3), r.Forces[3])
}
