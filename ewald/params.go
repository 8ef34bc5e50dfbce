/*
 * params.go, part of goCrystal.
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
	"math"

	crystal "github.com/rmera/gocrystal"
)

//ConvFact converts q*q/r, with charges in units of the elementary charge and r in A, into eV.
const ConvFact = 1e10 * crystal.ElementaryCharge / (4 * math.Pi * crystal.VacuumPermittivity)

//Parameters are the convergence parameters of an Ewald summation.
type Parameters struct {
	Eta       float64 //screening parameter, 1/A^2
	SqrtEta   float64
	RMax      float64 //real-space cutoff, A
	GMax      float64 //reciprocal-space cutoff, 1/A
	AccFactor float64
	AccF      float64 //sqrt(ln(10^AccFactor))
}

//Params returns the parameters for a sum over n sites in a cell of the given volume, converged
//to accFactor significant figures. Positive values of eta, rmax and gmax are used as given, while
//non-positive ones are replaced by the values from the formulas in the GULP 3.1 documentation,
//which make the real and reciprocal sums converge with similar numbers of terms.
func Params(n int, volume, accFactor, eta, rmax, gmax float64) Parameters {
	var p Parameters
	p.AccFactor = accFactor
	//ln(10^A) written so that large factors don't overflow.
	p.AccF = math.Sqrt(accFactor * math.Ln10)
	if eta > 0 {
		p.Eta = eta
	} else {
		p.Eta = math.Pow(float64(n)*0.01/volume, 1.0/3.0) * math.Pi
	}
	p.SqrtEta = math.Sqrt(p.Eta)
	if rmax > 0 {
		p.RMax = rmax
	} else {
		p.RMax = p.AccF / p.SqrtEta
	}
	if gmax > 0 {
		p.GMax = gmax
	} else {
		p.GMax = 2 * p.SqrtEta * p.AccF
	}
	return p
}
