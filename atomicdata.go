/*
 * atomicdata.go, part of goCrystal.
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

//elementData holds what goCrystal needs to know about each element.
//Masses in g/mol, electronegativities in the Pauling scale. A zero
//electronegativity means it is not defined (noble gases).
type elementData struct {
	z    int
	mass float64
	x    float64
}

//Values from the CRC Handbook of Chemistry and Physics.
var elements = map[string]elementData{
	"H":  {1, 1.008, 2.20},
	"He": {2, 4.0026, 0},
	"Li": {3, 6.94, 0.98},
	"Be": {4, 9.0122, 1.57},
	"B":  {5, 10.81, 2.04},
	"C":  {6, 12.011, 2.55},
	"N":  {7, 14.007, 3.04},
	"O":  {8, 15.999, 3.44},
	"F":  {9, 18.998, 3.98},
	"Ne": {10, 20.180, 0},
	"Na": {11, 22.990, 0.93},
	"Mg": {12, 24.305, 1.31},
	"Al": {13, 26.982, 1.61},
	"Si": {14, 28.085, 1.90},
	"P":  {15, 30.974, 2.19},
	"S":  {16, 32.06, 2.58},
	"Cl": {17, 35.45, 3.16},
	"Ar": {18, 39.948, 0},
	"K":  {19, 39.098, 0.82},
	"Ca": {20, 40.078, 1.00},
	"Sc": {21, 44.956, 1.36},
	"Ti": {22, 47.867, 1.54},
	"V":  {23, 50.942, 1.63},
	"Cr": {24, 51.996, 1.66},
	"Mn": {25, 54.938, 1.55},
	"Fe": {26, 55.845, 1.83},
	"Co": {27, 58.933, 1.88},
	"Ni": {28, 58.693, 1.91},
	"Cu": {29, 63.546, 1.90},
	"Zn": {30, 65.38, 1.65},
	"Ga": {31, 69.723, 1.81},
	"Ge": {32, 72.630, 2.01},
	"As": {33, 74.922, 2.18},
	"Se": {34, 78.971, 2.55},
	"Br": {35, 79.904, 2.96},
	"Kr": {36, 83.798, 3.00},
	"Rb": {37, 85.468, 0.82},
	"Sr": {38, 87.62, 0.95},
	"Y":  {39, 88.906, 1.22},
	"Zr": {40, 91.224, 1.33},
	"Nb": {41, 92.906, 1.6},
	"Mo": {42, 95.95, 2.16},
	"Tc": {43, 98, 1.9},
	"Ru": {44, 101.07, 2.2},
	"Rh": {45, 102.91, 2.28},
	"Pd": {46, 106.42, 2.20},
	"Ag": {47, 107.87, 1.93},
	"Cd": {48, 112.41, 1.69},
	"In": {49, 114.82, 1.78},
	"Sn": {50, 118.71, 1.96},
	"Sb": {51, 121.76, 2.05},
	"Te": {52, 127.60, 2.1},
	"I":  {53, 126.90, 2.66},
	"Xe": {54, 131.29, 2.6},
	"Cs": {55, 132.91, 0.79},
	"Ba": {56, 137.33, 0.89},
	"La": {57, 138.91, 1.10},
	"Ce": {58, 140.12, 1.12},
	"Pr": {59, 140.91, 1.13},
	"Nd": {60, 144.24, 1.14},
	"Pm": {61, 145, 1.13},
	"Sm": {62, 150.36, 1.17},
	"Eu": {63, 151.96, 1.2},
	"Gd": {64, 157.25, 1.2},
	"Tb": {65, 158.93, 1.1},
	"Dy": {66, 162.50, 1.22},
	"Ho": {67, 164.93, 1.23},
	"Er": {68, 167.26, 1.24},
	"Tm": {69, 168.93, 1.25},
	"Yb": {70, 173.05, 1.1},
	"Lu": {71, 174.97, 1.27},
	"Hf": {72, 178.49, 1.3},
	"Ta": {73, 180.95, 1.5},
	"W":  {74, 183.84, 2.36},
	"Re": {75, 186.21, 1.9},
	"Os": {76, 190.23, 2.2},
	"Ir": {77, 192.22, 2.20},
	"Pt": {78, 195.08, 2.28},
	"Au": {79, 196.97, 2.54},
	"Hg": {80, 200.59, 2.00},
	"Tl": {81, 204.38, 1.62},
	"Pb": {82, 207.2, 2.33},
	"Bi": {83, 208.98, 2.02},
	"Po": {84, 209, 2.0},
	"At": {85, 210, 2.2},
	"Rn": {86, 222, 2.2},
	"Fr": {87, 223, 0.7},
	"Ra": {88, 226, 0.9},
	"Ac": {89, 227, 1.1},
	"Th": {90, 232.04, 1.3},
	"Pa": {91, 231.04, 1.5},
	"U":  {92, 238.03, 1.38},
	"Np": {93, 237, 1.36},
	"Pu": {94, 244, 1.28},
}

//IsElement returns true if symbol is the symbol of an element goCrystal knows about.
func IsElement(symbol string) bool {
	_, ok := elements[symbol]
	return ok
}

//AtomicNumber returns the atomic number of the element, or 0 if unknown.
func AtomicNumber(symbol string) int {
	return elements[symbol].z
}

//Mass returns the atomic mass of the element in g/mol, or 0 if unknown.
func Mass(symbol string) float64 {
	return elements[symbol].mass
}

//Electronegativity returns the Pauling electronegativity of the element.
//Elements without a defined value (and unknown ones) return 0.
func Electronegativity(symbol string) float64 {
	return elements[symbol].x
}
