/*
 * formula.go, part of goCrystal.
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
	"math"
	"sort"
	"strconv"
	"strings"
)

//Composition is the amount of each element in something.
type Composition map[string]float64

//CompositionOf returns the composition of S, adding up the occupancies of
//each element over all the sites. Different oxidation states of the same
//element count together.
func CompositionOf(S Siter) Composition {
	c := make(Composition)
	for i := 0; i < S.Len(); i++ {
		for _, v := range S.Site(i).Species {
			c[v.Symbol] += v.Fraction
		}
	}
	return c
}

//Elements returns the elements in the composition, sorted by increasing
//electronegativity, and by symbol for equal electronegativities.
func (C Composition) Elements() []string {
	ret := make([]string, 0, len(C))
	for k, v := range C {
		if math.Abs(v) < amountTol {
			continue
		}
		ret = append(ret, k)
	}
	sort.Slice(ret, func(i, j int) bool {
		xi, xj := Electronegativity(ret[i]), Electronegativity(ret[j])
		if xi != xj {
			return xi < xj
		}
		return ret[i] < ret[j]
	})
	return ret
}

//Formula returns the formula with the amount of every element given explicitly, i.e. "Fe4 P4 O16".
func (C Composition) Formula() string {
	els := C.Elements()
	t := make([]string, 0, len(els))
	for _, v := range els {
		t = append(t, v+formatAmount(C[v]))
	}
	return strings.Join(t, " ")
}

//ReducedFormula returns the formula scaled down to the smallest integer amounts,
//omitting amounts of 1, i.e. "FePO4". It also returns the factor by which the composition was scaled.
func (C Composition) ReducedFormula() (string, float64) {
	els := C.Elements()
	if len(els) == 0 {
		return "", 0
	}
	amounts := make([]float64, len(els))
	for i, v := range els {
		amounts[i] = C[v]
	}
	factor := reductionFactor(amounts)
	var b strings.Builder
	for i, v := range els {
		b.WriteString(v)
		a := amounts[i] / factor
		if math.Abs(a-1) > amountTol {
			b.WriteString(formatAmount(a))
		}
	}
	return b.String(), factor
}

//AlphabeticalFormula is like Formula, but the elements are sorted by symbol, i.e. "Fe4 O16 P4".
func (C Composition) AlphabeticalFormula() string {
	els := C.Elements()
	sort.Strings(els)
	t := make([]string, 0, len(els))
	for _, v := range els {
		t = append(t, v+formatAmount(C[v]))
	}
	return strings.Join(t, " ")
}

//Composition returns the composition of the structure.
func (S *Structure) Composition() Composition {
	return CompositionOf(S)
}

//Formula returns the full formula of the structure, i.e. "Fe4 P4 O16".
func (S *Structure) Formula() string {
	return CompositionOf(S).Formula()
}

//AlphabeticalFormula returns the full formula of the structure with the elements in alphabetical order.
func (S *Structure) AlphabeticalFormula() string {
	return CompositionOf(S).AlphabeticalFormula()
}

//ReducedFormula returns the reduced formula of the structure, i.e. "FePO4".
func (S *Structure) ReducedFormula() string {
	f, _ := CompositionOf(S).ReducedFormula()
	return f
}

const amountTol = 1e-8

//The largest multiplier tried to turn fractional amounts into integers.
const maxMultiplier = 1000

//reductionFactor returns the number f such that amounts/f are the smallest
//integers proportional to amounts. If the amounts can't be made integers, f is 1.
func reductionFactor(amounts []float64) float64 {
	for m := 1; m <= maxMultiplier; m++ {
		ints := make([]int, len(amounts))
		ok := true
		for i, a := range amounts {
			s := a * float64(m)
			r := math.Round(s)
			if math.Abs(s-r) > 1e-4 || r == 0 {
				ok = false
				break
			}
			ints[i] = int(r)
		}
		if !ok {
			continue
		}
		g := ints[0]
		for _, v := range ints[1:] {
			g = gcd(g, v)
		}
		return float64(g) / float64(m)
	}
	return 1
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

//formatAmount writes a with up to 8 significant decimals, and no trailing zeros.
func formatAmount(a float64) string {
	a = math.Round(a*1e8) / 1e8
	return strconv.FormatFloat(a, 'f', -1, 64)
}
