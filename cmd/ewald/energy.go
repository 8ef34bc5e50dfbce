/*
 * energy.go, part of goCrystal.
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
	"encoding/json"
	"fmt"
	"io"

	"github.com/rmera/gocrystal/ewald"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//fileReport is the result of the summation for one structure.
type fileReport struct {
	File      string `json:"file" yaml:"file"`
	Structure int    `json:"structure" yaml:"structure"`
	Formula   string `json:"formula" yaml:"formula"`
	ewald.Report `yaml:",inline"`
}

func newEnergyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "energy FILE...",
		Short: "Compute the Ewald energy and forces of each structure",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.energy(cmd.OutOrStdout(), args)
		},
	}
}

func (a *app) energy(out io.Writer, files []string) error {
	o := a.cfg.Options()
	o.Logger(a.logger)
	var reports []fileReport
	for _, name := range files {
		structs, err := readStructures(name)
		if err != nil {
			return err
		}
		for i, s := range structs {
			a.prepare(s, name)
			E, err := ewald.New(s, o)
			if err != nil {
				return fmt.Errorf("%s, structure %d: %w", name, i, err)
			}
			a.logger.Info("summation done", zap.String("file", name), zap.Int("structure", i), zap.Float64("total", E.TotalEnergy()))
			if a.cfg.Format == FText {
				fmt.Fprintf(out, "# %s (structure %d, %s)\n%s\n", name, i, s.Formula(), E.String())
				continue
			}
			reports = append(reports, fileReport{File: name, Structure: i, Formula: s.Formula(), Report: E.Report()})
		}
	}
	return writeReports(out, a.cfg.Format, reports)
}

//writeReports writes v as JSON or YAML. Nothing is written for text output.
func writeReports(out io.Writer, format string, v any) error {
	switch format {
	case FJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FYAML:
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return nil
}
