/*
 * ewald.go, part of goCrystal.
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
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	crystal "github.com/rmera/gocrystal"
	v3 "github.com/rmera/gocrystal/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//Periodic is what an Ewald summation needs from a crystal. *crystal.Structure implements it.
type Periodic interface {
	//Len returns the number of sites.
	Len() int

	//Volume returns the volume of the unit cell.
	Volume() float64

	//Cart returns the cartesian coordinates of the ith site.
	Cart(i int) [3]float64

	//Occupancies returns the species on the ith site, with their fractions.
	Occupancies(i int) []crystal.Occupancy

	//AllNeighbors returns, for each site, the sites and periodic images
	//within r of it, excluding the site itself.
	AllNeighbors(r float64) ([][]crystal.Neighbor, error)

	//ReciprocalPoints returns the non-zero reciprocal lattice vectors within g of the origin.
	ReciprocalPoints(g float64) ([][3]float64, error)
}

var (
	ErrNoSites         = errors.New("ewald: the structure has no sites")
	ErrCoincidentSites = errors.New("ewald: two sites are on top of each other")
	ErrZeroReciprocal  = errors.New("ewald: zero reciprocal vector in the reciprocal sum")
)

//Summation holds the result of an Ewald summation. It is computed once, by New, and
//can't be modified afterwards.
type Summation struct {
	params     Parameters
	volume     float64
	charges    []float64
	recip      float64
	real       float64
	self       float64
	background float64
	forces     *v3.Matrix
	nrecip     int //number of G vectors in the reciprocal sum
	npairs     int //number of ordered pairs in the real sum
}

//New performs the Ewald summation for the structure s. The optional options set the convergence
//parameters, otherwise they are determined automatically. The real and reciprocal sums are computed
//concurrently, each of them split among Options.Cpus() gorutines.
func New(s Periodic, options ...*Options) (*Summation, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	log := o.Logger()
	if log == nil {
		log = zap.NewNop()
	}
	n := s.Len()
	if n == 0 {
		return nil, ErrNoSites
	}
	E := new(Summation)
	E.volume = s.Volume()
	E.params = Params(n, E.volume, o.AccFactor(), o.Eta(), o.RealCut(), o.RecipCut())
	E.charges = make([]float64, n)
	coords := make([][3]float64, n)
	for i := range coords {
		coords[i] = s.Cart(i)
		E.charges[i] = crystal.AverageCharge(s.Occupancies(i))
	}
	log.Debug("Ewald parameters",
		zap.Int("sites", n),
		zap.Float64("volume", E.volume),
		zap.Float64("eta", E.params.Eta),
		zap.Float64("rmax", E.params.RMax),
		zap.Float64("gmax", E.params.GMax))

	var rp, rs partial
	var g errgroup.Group
	g.Go(func() error {
		gvecs, err := s.ReciprocalPoints(E.params.GMax)
		if err != nil {
			return err
		}
		E.nrecip = len(gvecs)
		rp, err = reciprocal(gvecs, coords, E.charges, E.params, E.volume, o.Cpus())
		return err
	})
	g.Go(func() error {
		neighbors, err := s.AllNeighbors(E.params.RMax)
		if err != nil {
			return err
		}
		for _, v := range neighbors {
			E.npairs += len(v)
		}
		rs, err = realSpace(neighbors, coords, E.charges, E.params, o.Cpus())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	E.recip = rp.energy
	E.real = rs.energy
	E.self, E.background = point(E.charges, E.params, E.volume)
	forces := make([]float64, 3*n)
	for i := range forces {
		forces[i] = rp.forces[i] + rs.forces[i]
	}
	//n>0, so this can't fail.
	E.forces, _ = v3.NewMatrix(forces)
	log.Debug("Ewald summation done",
		zap.Int("gvectors", E.nrecip),
		zap.Int("pairs", E.npairs),
		zap.Float64("total", E.TotalEnergy()))
	return E, nil
}

//ReciprocalEnergy returns the reciprocal space energy, in eV.
func (E *Summation) ReciprocalEnergy() float64 {
	return E.recip
}

//RealEnergy returns the real space energy, in eV.
func (E *Summation) RealEnergy() float64 {
	return E.real
}

//PointEnergy returns the self energy plus the compensating background, in eV.
func (E *Summation) PointEnergy() float64 {
	return E.self + E.background
}

//SelfEnergy returns the self energy part of the point energy.
func (E *Summation) SelfEnergy() float64 {
	return E.self
}

//BackgroundEnergy returns the part of the point energy that compensates the net charge of the cell.
//It is zero for neutral cells.
func (E *Summation) BackgroundEnergy() float64 {
	return E.background
}

//TotalEnergy returns the sum of the reciprocal, real and point energies.
func (E *Summation) TotalEnergy() float64 {
	return E.recip + E.real + E.PointEnergy()
}

//Forces returns a copy of the forces on each site, in eV/A.
func (E *Summation) Forces() *v3.Matrix {
	return E.forces.Clone()
}

//Force returns the force on the ith site.
func (E *Summation) Force(i int) [3]float64 {
	return E.forces.Vec(i)
}

//Charges returns a copy of the average charge of each site.
func (E *Summation) Charges() []float64 {
	return append([]float64(nil), E.charges...)
}

//Eta returns the screening parameter used.
func (E *Summation) Eta() float64 {
	return E.params.Eta
}

//Parameters returns all the convergence parameters used.
func (E *Summation) Parameters() Parameters {
	return E.params
}

//Terms returns the number of reciprocal vectors and of real-space pairs summed over.
func (E *Summation) Terms() (gvectors, pairs int) {
	return E.nrecip, E.npairs
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

//String returns the energies and the forces in a human-readable form.
//No precision is lost in the process.
func (E *Summation) String() string {
	output := []string{"Real = " + ftoa(E.RealEnergy())}
	output = append(output, "Reciprocal = "+ftoa(E.ReciprocalEnergy()))
	output = append(output, "Point = "+ftoa(E.PointEnergy()))
	output = append(output, "Total = "+ftoa(E.TotalEnergy()))
	output = append(output, "Forces:")
	for i := 0; i < E.forces.NVecs(); i++ {
		f := E.forces.Vec(i)
		output = append(output, ftoa(f[0])+" "+ftoa(f[1])+" "+ftoa(f[2]))
	}
	return strings.Join(output, "\n")
}

//Report is the exported form of a Summation, used for JSON and YAML output.
type Report struct {
	Eta        float64      `json:"eta" yaml:"eta"`
	RealCut    float64      `json:"real_cut" yaml:"real_cut"`
	RecipCut   float64      `json:"recip_cut" yaml:"recip_cut"`
	Real       float64      `json:"real" yaml:"real"`
	Reciprocal float64      `json:"reciprocal" yaml:"reciprocal"`
	Point      float64      `json:"point" yaml:"point"`
	Total      float64      `json:"total" yaml:"total"`
	Forces     [][3]float64 `json:"forces" yaml:"forces"`
}

//Report returns the results of the summation as a Report.
func (E *Summation) Report() Report {
	r := Report{
		Eta:        E.params.Eta,
		RealCut:    E.params.RMax,
		RecipCut:   E.params.GMax,
		Real:       E.RealEnergy(),
		Reciprocal: E.ReciprocalEnergy(),
		Point:      E.PointEnergy(),
		Total:      E.TotalEnergy(),
		Forces:     make([][3]float64, E.forces.NVecs()),
	}
	for i := range r.Forces {
		r.Forces[i] = E.forces.Vec(i)
	}
	return r
}

//MarshalJSON encodes the results of the summation.
func (E *Summation) MarshalJSON() ([]byte, error) {
	return json.Marshal(E.Report())
}
