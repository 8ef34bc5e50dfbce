/*
 * species.go, part of goCrystal.
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
	"strconv"
	"strings"
	"unicode"
)

//Species is an element, optionally carrying an oxidation state.
type Species struct {
	Symbol string
	oxi    float64
	hasOxi bool
}

//NewElement returns a Species for the element with the given symbol,
//without oxidation state.
func NewElement(symbol string) Species {
	return Species{Symbol: symbol}
}

//NewSpecie returns a Species for the element with the given symbol
//and oxidation state.
func NewSpecie(symbol string, oxi float64) Species {
	return Species{Symbol: symbol, oxi: oxi, hasOxi: true}
}

//OxidationState returns the oxidation state of the species, and
//whether it is defined at all.
func (S Species) OxidationState() (float64, bool) {
	return S.oxi, S.hasOxi
}

//WithOxidationState returns a copy of S with the oxidation state set to oxi.
func (S Species) WithOxidationState(oxi float64) Species {
	S.oxi = oxi
	S.hasOxi = true
	return S
}

//String returns the symbol followed, if defined, by the oxidation state
//in the usual notation (Fe2+, O2-, Li+).
func (S Species) String() string {
	if !S.hasOxi {
		return S.Symbol
	}
	sign := "+"
	if S.oxi < 0 {
		sign = "-"
	}
	mag := math.Abs(S.oxi)
	if mag == 1 {
		return S.Symbol + sign
	}
	return S.Symbol + strconv.FormatFloat(mag, 'f', -1, 64) + sign
}

//ParseSpecies reads species in the forms used by crystallographic files:
//"Fe", "Fe2+", "Fe+2", "Li+", "O2-", "O-2". Trailing digits without a sign
//(as in the label "Fe1") are ignored, and give a species with no oxidation state.
func ParseSpecies(s string) (Species, error) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && unicode.IsLetter(rune(s[i])) {
		i++
	}
	letters := s[:i]
	if letters == "" {
		return Species{}, fmt.Errorf("ParseSpecies: no element symbol in %q", s)
	}
	symbol := ""
	switch {
	case len(letters) >= 2 && IsElement(normalizeSymbol(letters[:2])):
		symbol = normalizeSymbol(letters[:2])
	case IsElement(normalizeSymbol(letters[:1])):
		symbol = normalizeSymbol(letters[:1])
	default:
		return Species{}, fmt.Errorf("ParseSpecies: unknown element in %q", s)
	}
	rest := s[i:]
	if !strings.ContainsAny(rest, "+-") {
		return NewElement(symbol), nil
	}
	sign := 1.0
	if strings.Contains(rest, "-") {
		sign = -1
	}
	num := strings.Trim(rest, "+-")
	if num == "" {
		return NewSpecie(symbol, sign), nil
	}
	mag, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Species{}, fmt.Errorf("ParseSpecies: can't read oxidation state from %q: %w", s, err)
	}
	return NewSpecie(symbol, sign*mag), nil
}

//normalizeSymbol turns "FE" or "fe" into "Fe".
func normalizeSymbol(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

//Occupancy is a species and the fraction of a site it occupies.
type Occupancy struct {
	Species
	Fraction float64
}
