/*
 * doc.go, part of goCrystal.
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

/*Package crystal is the main package of the goCrystal library. It provides the structure of
periodic crystals (species, sites, lattices) and the geometric machinery needed to compute
their electrostatic energy.



	**goCrystal Capabilities**


    Species with or without oxidation states, and partially occupied (disordered) sites.

    Lattices built from vectors or from cell parameters, with their reciprocal lattices
	and the conversion between fractional and cartesian coordinates.

    Neighbor search under periodic boundary conditions, and enumeration of lattice
	points within a sphere (used for the reciprocal-space sums).

    Composition and formulas (full and reduced).

    Transparent reading and writing of gzip and zstd compressed files.

    Ewald summation of the electrostatic energy and forces (package ewald).

    Reading and writing CIF (package cif) and VASP POSCAR files (package poscar).

    Plots of Ewald convergence scans (package chemplot).


Cartesian coordinates and forces are stored in a v3.Matrix, a Nx3 matrix based on
gonum.org/v1/gonum/mat. Distances are in A, energies in eV.*/
package crystal
