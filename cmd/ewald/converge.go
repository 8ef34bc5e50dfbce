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

package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/rmera/gocrystal/chemplot"
	"github.com/rmera/gocrystal/ewald"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type convergeFlags struct {
	steps      []float64
	plot       string
	changePlot string
	tol        float64
}

func newConvergeCmd(a *app) *cobra.Command {
	f := new(convergeFlags)
	cmd := &cobra.Command{
		Use:   "converge FILE",
		Short: "Check the convergence of the Ewald sums with the cutoffs",
		Long: `converge repeats the summation for the first structure in FILE with eta fixed, and
the automatic cutoffs (or those given) multiplied by each of the --steps factors.
It prints the energies for each step and the change in the total energy from the previous one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.converge(cmd.OutOrStdout(), args[0], f)
		},
	}
	cmd.Flags().Float64SliceVar(&f.steps, "steps", []float64{0.5, 0.75, 1, 1.25, 1.5}, "factors by which the cutoffs are multiplied")
	cmd.Flags().StringVar(&f.plot, "plot", "", "plot the energies against the real space cutoff to this file")
	cmd.Flags().StringVar(&f.changePlot, "change-plot", "", "plot the changes in energy against the real space cutoff to this file")
	cmd.Flags().Float64Var(&f.tol, "tol", 1e-6, "tolerance for the change in the total energy, in eV")
	return cmd
}

func (a *app) converge(out io.Writer, name string, f *convergeFlags) error {
	structs, err := readStructures(name)
	if err != nil {
		return err
	}
	s := structs[0]
	a.prepare(s, name)
	o := a.cfg.Options()
	o.Logger(a.logger)
	p := ewald.Params(s.Len(), s.Volume(), o.AccFactor(), o.Eta(), o.RealCut(), o.RecipCut())
	scan, err := ewald.ConvergenceScan(s, p.Eta, ewald.ScaledCutoffs(p, f.steps), o)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	converged := scan.Converged(f.tol, 2)
	a.logger.Info("convergence scan done", zap.String("file", name), zap.Int("steps", len(scan.Steps)), zap.Bool("converged", converged))
	if a.cfg.Format == FText {
		fmt.Fprint(out, scanTable(scan))
		fmt.Fprintf(out, "Converged to %g eV: %t\n", f.tol, converged)
	} else if err := writeReports(out, a.cfg.Format, newScanReport(scan, converged)); err != nil {
		return err
	}
	if f.plot != "" {
		if err := chemplot.ConvergencePlot(scan, "", f.plot); err != nil {
			return err
		}
	}
	if f.changePlot != "" {
		if err := chemplot.ChangePlot(scan, "", f.changePlot); err != nil {
			return err
		}
	}
	return nil
}

//stepReport is a step of a convergence scan, for JSON and YAML output.
//JSON can't represent NaN, so the change is missing in the first step.
type stepReport struct {
	RealCut    float64  `json:"real_cut" yaml:"real_cut"`
	RecipCut   float64  `json:"recip_cut" yaml:"recip_cut"`
	Real       float64  `json:"real" yaml:"real"`
	Reciprocal float64  `json:"reciprocal" yaml:"reciprocal"`
	Point      float64  `json:"point" yaml:"point"`
	Total      float64  `json:"total" yaml:"total"`
	Change     *float64 `json:"change,omitempty" yaml:"change,omitempty"`
}

type scanReport struct {
	Eta       float64      `json:"eta" yaml:"eta"`
	Converged bool         `json:"converged" yaml:"converged"`
	Steps     []stepReport `json:"steps" yaml:"steps"`
}

func newScanReport(scan *ewald.Scan, converged bool) scanReport {
	r := scanReport{Eta: scan.Eta, Converged: converged, Steps: make([]stepReport, len(scan.Steps))}
	for i, st := range scan.Steps {
		r.Steps[i] = stepReport{RealCut: st.Cutoff.Real, RecipCut: st.Cutoff.Recip, Real: st.Real,
			Reciprocal: st.Reciprocal, Point: st.Point, Total: st.Total}
		if !math.IsNaN(st.Change) {
			c := st.Change
			r.Steps[i].Change = &c
		}
	}
	return r
}

func scanTable(scan *ewald.Scan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# eta = %g\n", scan.Eta)
	fmt.Fprintf(&b, "%10s %10s %16s %16s %16s %16s %12s\n", "rcut", "gcut", "real", "reciprocal", "point", "total", "change")
	for _, st := range scan.Steps {
		fmt.Fprintf(&b, "%10.4f %10.4f %16.8f %16.8f %16.8f %16.8f %12.3e\n", st.Cutoff.Real, st.Cutoff.Recip,
			st.Real, st.Reciprocal, st.Point, st.Total, st.Change)
	}
	return b.String()
}
