/*
 * main.go, part of goCrystal.
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

//Command ewald computes the electrostatic energy and forces of ionic crystals
//by Ewald summation. It reads CIF and POSCAR files, possibly compressed.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	crystal "github.com/rmera/gocrystal"
	"github.com/rmera/gocrystal/cif"
	"github.com/rmera/gocrystal/poscar"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//app holds the state shared by all the commands.
type app struct {
	verbose    bool
	configPath string
	oxi        string
	format     string
	eta        float64
	rcut       float64
	gcut       float64
	acc        float64
	cpus       int

	cfg    *Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:   "ewald",
		Short: "Ewald summation of the Coulomb energy of crystals",
		Long: `ewald computes the electrostatic energy of a crystal of point charges, and the forces
on each site, by Ewald summation. The charge of each site is obtained from the oxidation
states of its species, which can be given in the structure file or with --oxi.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			a.logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return a.loadConfig(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	pf := root.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log the details of each summation")
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&a.oxi, "oxi", "", "oxidation states, as in Li=1,O=-2")
	pf.Float64Var(&a.eta, "eta", -1, "screening parameter, in 1/A^2 (automatic if not positive)")
	pf.Float64Var(&a.rcut, "rcut", -1, "real space cutoff, in A (automatic if not positive)")
	pf.Float64Var(&a.gcut, "gcut", -1, "reciprocal space cutoff, in 1/A (automatic if not positive)")
	pf.Float64Var(&a.acc, "acc", 8, "significant figures to which each sum is converged")
	pf.IntVar(&a.cpus, "cpus", 0, "gorutines used for each sum (0 for one per CPU)")
	pf.StringVarP(&a.format, "format", "f", FText, "output format: text, json or yaml")

	root.AddCommand(newEnergyCmd(a), newConvergeCmd(a), newConvertCmd(a), newRDFCmd(a))
	return root
}

//loadConfig reads the configuration file, if any, and applies on top of it the flags
//set in the command line.
func (a *app) loadConfig(cmd *cobra.Command) error {
	var err error
	a.cfg = DefaultConfig()
	if a.configPath != "" {
		a.cfg, err = LoadConfig(a.configPath)
		if err != nil {
			return err
		}
	}
	fl := cmd.Flags()
	if fl.Changed("eta") {
		a.cfg.Eta = a.eta
	}
	if fl.Changed("rcut") {
		a.cfg.RealCut = a.rcut
	}
	if fl.Changed("gcut") {
		a.cfg.RecipCut = a.gcut
	}
	if fl.Changed("acc") {
		a.cfg.AccFactor = a.acc
	}
	if fl.Changed("cpus") {
		a.cfg.Cpus = a.cpus
	}
	if fl.Changed("format") {
		a.cfg.Format = a.format
	}
	if fl.Changed("oxi") {
		oxi, err := ParseOxidationStates(a.oxi)
		if err != nil {
			return err
		}
		if a.cfg.OxidationStates == nil {
			a.cfg.OxidationStates = make(map[string]float64)
		}
		for k, v := range oxi {
			a.cfg.OxidationStates[k] = v
		}
	}
	if err := a.cfg.Check(); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	a.logger.Debug("configuration", zap.Any("config", a.cfg))
	return nil
}

//Supported structure file formats.
const (
	formatCIF    = "cif"
	formatPOSCAR = "poscar"
)

//fileFormat guesses the format of a structure file from its name.
func fileFormat(name string) (string, error) {
	base := strings.ToLower(filepath.Base(crystal.TrimCompression(name)))
	switch {
	case strings.HasSuffix(base, ".cif") || strings.HasSuffix(base, ".mcif"):
		return formatCIF, nil
	case strings.HasSuffix(base, ".vasp") || strings.HasSuffix(base, ".poscar") ||
		strings.Contains(base, "poscar") || strings.Contains(base, "contcar"):
		return formatPOSCAR, nil
	}
	return "", fmt.Errorf("can't tell the format of %s from its name", name)
}

//readStructures reads all the structures in the file name.
func readStructures(name string) ([]*crystal.Structure, error) {
	format, err := fileFormat(name)
	if err != nil {
		return nil, err
	}
	if format == formatPOSCAR {
		P, err := poscar.ReadFile(name)
		if err != nil {
			return nil, err
		}
		return []*crystal.Structure{P.Structure}, nil
	}
	F, err := cif.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return F.Structures()
}

//prepare assigns the configured oxidation states to s, and warns about
//structures that will give odd results.
func (a *app) prepare(s *crystal.Structure, name string) {
	if len(a.cfg.OxidationStates) > 0 {
		s.AddOxidationStates(a.cfg.OxidationStates)
	}
	if q := s.Charge(); q > crystal.ZeroTol || q < -crystal.ZeroTol {
		a.logger.Warn("charged cell, a neutralizing background will be added", zap.String("file", name), zap.Float64("charge", q))
	}
	for i := 0; i < s.Len(); i++ {
		for _, o := range s.Site(i).Species {
			if _, ok := o.OxidationState(); !ok {
				a.logger.Warn("species without oxidation state, its charge is taken as 0", zap.String("file", name), zap.String("element", o.Symbol))
				return
			}
		}
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
