/*
 * convert.go, part of goCrystal.
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

	"github.com/rmera/gocrystal/cif"
	"github.com/rmera/gocrystal/poscar"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a structure between the CIF and POSCAR formats",
		Long: `convert reads the first structure in IN and writes it to OUT. The formats are
guessed from the file names, and files ending in .gz or .zst are compressed.
Oxidation states given with --oxi are added to the structure.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.convert(args[0], args[1])
		},
	}
}

func (a *app) convert(in, out string) error {
	structs, err := readStructures(in)
	if err != nil {
		return err
	}
	s := structs[0]
	if len(a.cfg.OxidationStates) > 0 {
		s.AddOxidationStates(a.cfg.OxidationStates)
	}
	format, err := fileFormat(out)
	if err != nil {
		return err
	}
	switch format {
	case formatCIF:
		err = cif.WriteFile(out, s)
	case formatPOSCAR:
		err = poscar.WriteFile(out, s, s.Formula())
	}
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	a.logger.Info("structure converted", zap.String("in", in), zap.String("out", out), zap.Int("sites", s.Len()))
	return nil
}
