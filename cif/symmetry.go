/*
 * symmetry.go, part of goCrystal.
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
	"fmt"
	"math"
	"strconv"
	"strings"
)

//SymOp is a symmetry operation in fractional coordinates: r' = Rot r + Trans.
type SymOp struct {
	Rot   [3][3]float64
	Trans [3]float64
}

//Identity is the x, y, z operation.
var Identity = SymOp{Rot: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}

//Apply returns the image of the fractional coordinates f under the operation.
func (S SymOp) Apply(f [3]float64) [3]float64 {
	var ret [3]float64
	for i := range ret {
		ret[i] = S.Rot[i][0]*f[0] + S.Rot[i][1]*f[1] + S.Rot[i][2]*f[2] + S.Trans[i]
	}
	return ret
}

//ParseSymOp reads an operation written as in CIF files, i.e. "-x+1/2, y, z+0.5" or "x-y,x,z".
func ParseSymOp(s string) (SymOp, error) {
	var ret SymOp
	parts := strings.Split(strings.ToLower(strings.ReplaceAll(s, " ", "")), ",")
	if len(parts) != 3 {
		return ret, fmt.Errorf("ParseSymOp: %q doesn't have 3 components", s)
	}
	for i, p := range parts {
		if p == "" {
			return ret, fmt.Errorf("ParseSymOp: empty component in %q", s)
		}
		err := parseComponent(p, &ret.Rot[i], &ret.Trans[i])
		if err != nil {
			return ret, fmt.Errorf("ParseSymOp: %q: %w", s, err)
		}
	}
	return ret, nil
}

//parseComponent reads one coordinate of a symmetry operation, a sum of terms like
//"x", "-y", "+1/2", "0.25" or "2*z".
func parseComponent(p string, rot *[3]float64, trans *float64) error {
	i := 0
	for i < len(p) {
		sign := 1.0
		if p[i] == '+' || p[i] == '-' {
			if p[i] == '-' {
				sign = -1
			}
			i++
		}
		j := i
		for j < len(p) && strings.IndexByte("0123456789./", p[j]) >= 0 {
			j++
		}
		coef := 1.0
		hasnum := j > i
		if hasnum {
			var err error
			coef, err = parseFraction(p[i:j])
			if err != nil {
				return err
			}
		}
		i = j
		if i < len(p) && p[i] == '*' {
			i++
		}
		if i < len(p) && p[i] >= 'x' && p[i] <= 'z' {
			rot[p[i]-'x'] += sign * coef
			i++
			continue
		}
		if !hasnum {
			return fmt.Errorf("parseComponent: can't read %q", p)
		}
		*trans += sign * coef
	}
	return nil
}

func parseFraction(s string) (float64, error) {
	num, den, isfrac := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, err
	}
	if !isfrac {
		return n, nil
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, fmt.Errorf("parseFraction: zero denominator in %q", s)
	}
	return n / d, nil
}

//wrap brings fractional coordinates to [0,1). Values within tol of 1 become 0.
func wrap(f [3]float64, tol float64) [3]float64 {
	for i, v := range f {
		v -= math.Floor(v)
		if v > 1-tol {
			v = 0
		}
		f[i] = v
	}
	return f
}

//samePosition is true if a and b are the same point within tol, in every fractional
//coordinate, modulo lattice translations.
func samePosition(a, b [3]float64, tol float64) bool {
	for i := range a {
		d := a[i] - b[i]
		d -= math.Round(d)
		if math.Abs(d) > tol {
			return false
		}
	}
	return true
}
