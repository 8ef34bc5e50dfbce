/*
 * converge.go, part of goCrystal.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

//Cutoff is a pair of real and reciprocal space cutoff radii.
type Cutoff struct {
	Real  float64
	Recip float64
}

//ScanStep is the result of one summation in a convergence scan.
type ScanStep struct {
	Cutoff
	Real       float64
	Reciprocal float64
	Point      float64
	Total      float64
	Change     float64 //absolute change in the total energy from the previous step. NaN for the first one.
}

//Scan is a series of Ewald summations for the same structure and eta, with
//increasing cutoffs.
type Scan struct {
	Eta   float64
	Steps []ScanStep
}

//ScaledCutoffs returns the cutoffs of p, multiplied by each of the factors.
func ScaledCutoffs(p Parameters, factors []float64) []Cutoff {
	ret := make([]Cutoff, len(factors))
	for i, f := range factors {
		ret[i] = Cutoff{Real: p.RMax * f, Recip: p.GMax * f}
	}
	return ret
}

//ConvergenceScan performs one Ewald summation of s for each of the given cutoffs,
//keeping eta fixed. A non-positive eta is determined automatically, as in New.
//The other options are taken from the optional Options, which are not modified.
func ConvergenceScan(s Periodic, eta float64, cuts []Cutoff, options ...*Options) (*Scan, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0].Copy()
	} else {
		o = DefaultOptions()
	}
	if s.Len() == 0 {
		return nil, ErrNoSites
	}
	if eta <= 0 {
		eta = Params(s.Len(), s.Volume(), o.AccFactor(), -1, -1, -1).Eta
	}
	o.Eta(eta)
	ret := &Scan{Eta: eta, Steps: make([]ScanStep, 0, len(cuts))}
	prev := math.NaN()
	for i, c := range cuts {
		o.RealCut(c.Real)
		o.RecipCut(c.Recip)
		E, err := New(s, o)
		if err != nil {
			return nil, fmt.Errorf("ConvergenceScan: step %d (cutoffs %g, %g): %w", i, c.Real, c.Recip, err)
		}
		p := E.Parameters()
		st := ScanStep{
			Cutoff:     Cutoff{Real: p.RMax, Recip: p.GMax},
			Real:       E.RealEnergy(),
			Reciprocal: E.ReciprocalEnergy(),
			Point:      E.PointEnergy(),
			Total:      E.TotalEnergy(),
			Change:     math.Abs(E.TotalEnergy() - prev),
		}
		prev = st.Total
		ret.Steps = append(ret.Steps, st)
	}
	return ret, nil
}

//TailChanges returns the mean and standard deviation of the last n
//changes in the total energy. The first step has no change and is never included.
//Both are NaN if there are no changes to consider, including when n is not positive.
func (S *Scan) TailChanges(n int) (mean, std float64) {
	if n < 1 {
		return math.NaN(), math.NaN()
	}
	changes := make([]float64, 0, n)
	for i := len(S.Steps) - 1; i >= 1 && len(changes) < n; i-- {
		changes = append(changes, S.Steps[i].Change)
	}
	if len(changes) == 0 {
		return math.NaN(), math.NaN()
	}
	if len(changes) == 1 {
		return changes[0], 0
	}
	return stat.MeanStdDev(changes, nil)
}

//Converged returns true if the mean of the last n changes in the total energy,
//plus their standard deviation, is smaller than tol.
func (S *Scan) Converged(tol float64, n int) bool {
	m, s := S.TailChanges(n)
	if math.IsNaN(m) {
		return false
	}
	return m+s < tol
}
