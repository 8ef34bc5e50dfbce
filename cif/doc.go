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

//Package cif reads and writes files in the Crystallographic Information Format (CIF 1.1).
//
//A CIF file is parsed into data blocks, each a set of tag-value pairs and loops.
//Blocks that describe a crystal (unit cell, symmetry operations and atom sites) can be
//turned into a crystal.Structure, with all the symmetry-equivalent positions generated.
//Structures are written in space group P 1, one line per species in each site.
package cif
