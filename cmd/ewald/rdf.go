/*
 * rdf.go, part of goCrystal.
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

	"github.com/rmera/gocrystal/histo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rdfFlags struct {
	rmax  float64
	width float64
}

func newRDFCmd(a *app) *cobra.Command {
	f := new(rdfFlags)
	cmd := &cobra.Command{
		Use:   "rdf FILE",
		Short: "Print the pair distribution function of the first structure in FILE",
		Long: `rdf prints the radial pair distribution function g(r) of the sites of the first
structure in FILE, and the shortest distance between sites. Sites closer than about 1e-8 A
make the Ewald summation fail.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.rdf(cmd.OutOrStdout(), args[0], f)
		},
	}
	cmd.Flags().Float64Var(&f.rmax, "rmax", 8, "largest distance, in A")
	cmd.Flags().Float64Var(&f.width, "width", 0.1, "width of each bin, in A")
	return cmd
}

func (a *app) rdf(out io.Writer, name string, f *rdfFlags) error {
	structs, err := readStructures(name)
	if err != nil {
		return err
	}
	s := structs[0]
	g, err := histo.PairDistribution(s, f.rmax, f.width)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	dmin, err := histo.MinDistance(s, f.rmax)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	a.logger.Info("pair distribution done", zap.String("file", name), zap.Int("pairs", g.Total()), zap.Float64("min_distance", dmin))
	if a.cfg.Format != FText {
		return writeReports(out, a.cfg.Format, g.Report())
	}
	fmt.Fprintf(out, "# %s: shortest distance %g A, density %.4f g/cm^3\n", name, dmin, s.Density())
	fmt.Fprintf(out, "%10s %10s %12s\n", "r1", "r2", "g(r)")
	div := g.CopyDividers()
	for i, v := range g.View() {
		fmt.Fprintf(out, "%10.4f %10.4f %12.6f\n", div[i], div[i+1], v)
	}
	return nil
}
