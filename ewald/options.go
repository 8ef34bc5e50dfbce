/*
 * options.go, part of goCrystal.
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
	"runtime"

	"go.uber.org/zap"
)

//Options contains the parameters of an Ewald summation. A non-positive Eta, RealCut or RecipCut
//means that the value will be determined automatically.
type Options struct {
	eta    float64
	rcut   float64
	gcut   float64
	acc    float64
	cpus   int
	logger *zap.Logger
}

//DefaultOptions returns an Options with the default options: automatic eta and cutoffs,
//an accuracy factor of 8, as many workers as logical CPUs and no logging.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.eta = -1
	ret.rcut = -1
	ret.gcut = -1
	ret.acc = 8
	ret.cpus = runtime.NumCPU()
	ret.logger = zap.NewNop()
	return ret
}

//Eta returns the current screening parameter and sets it to the given value, if any.
//Non-positive values mean the parameter will be determined automatically.
func (o *Options) Eta(eta ...float64) float64 {
	ret := o.eta
	if len(eta) > 0 {
		o.eta = eta[0]
	}
	return ret
}

//RealCut returns the current real-space cutoff radius and sets it to the given value,
//if any. Non-positive values mean the cutoff will be determined automatically.
func (o *Options) RealCut(r ...float64) float64 {
	ret := o.rcut
	if len(r) > 0 {
		o.rcut = r[0]
	}
	return ret
}

//RecipCut returns the current reciprocal-space cutoff radius and sets it to the given value,
//if any. Non-positive values mean the cutoff will be determined automatically.
func (o *Options) RecipCut(g ...float64) float64 {
	ret := o.gcut
	if len(g) > 0 {
		o.gcut = g[0]
	}
	return ret
}

//AccFactor returns the current accuracy factor (the number of significant figures
//each sum is converged to) and sets it, if a positive value is given.
func (o *Options) AccFactor(acc ...float64) float64 {
	ret := o.acc
	if len(acc) > 0 && acc[0] > 0 {
		o.acc = acc[0]
	}
	return ret
}

//Cpus returns the current number of gorutines used for each of the sums and sets it,
//if a valid value is given.
func (o *Options) Cpus(cpus ...int) int {
	ret := o.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		o.cpus = cpus[0]
	}
	return ret
}

//Logger returns the current logger and sets it, if a non-nil one is given.
func (o *Options) Logger(l ...*zap.Logger) *zap.Logger {
	ret := o.logger
	if len(l) > 0 && l[0] != nil {
		o.logger = l[0]
	}
	return ret
}

//Copy returns a copy of the options.
func (o *Options) Copy() *Options {
	ret := *o
	return &ret
}
