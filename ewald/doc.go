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

/*Package ewald computes the electrostatic energy of a periodic array of point charges, and the forces
on each of them, using the Ewald technique.

The slowly converging lattice sum is split into

	E = E_recip + E_real + E_point

where E_real is a sum of screened (erfc-damped) Coulomb terms over real-space neighbors within
a cutoff, E_recip is a sum of Gaussian-damped structure factor terms over reciprocal lattice
vectors within a cutoff, and E_point holds the self-energy of the screening charges plus the
compensating background for charged cells. The screening parameter eta and both cutoffs
are chosen automatically from the number of sites, the volume and an accuracy factor
(the number of significant figures each sum is converged to, see the GULP manual), unless
given by the user.

Charges are the occupancy-weighted oxidation states of the species on each site. Species with
no oxidation state contribute nothing. Energies are in eV, forces in eV/A.

Reference: http://www.ee.duke.edu/~ayt/ewaldpaper/ewaldpaper.html
*/
package ewald
