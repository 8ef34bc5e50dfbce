/*
 * conversion.go, part of goCrystal.
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

//This provides useful conversion factors and other constants

//Conversions
const (
	Deg2Rad = 0.017453292519943295
	Rad2Deg = 1 / Deg2Rad
	A2Bohr  = 1.889725989
	Bohr2A  = 1 / 1.889725989
)

//Physical constants, CODATA 2018, SI units.
const (
	ElementaryCharge   = 1.602176634e-19  //C
	VacuumPermittivity = 8.8541878128e-12 //F/m
	Avogadro           = 6.02214076e23    //1/mol
	Angstrom           = 1e-10            //m
)

//ZeroTol is the distance, in A, under which two points are considered to
//be the same point.
const ZeroTol = 1e-8
