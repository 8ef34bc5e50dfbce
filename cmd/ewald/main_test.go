/*
 * main_test.go, part of goCrystal.
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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/gocrystal/poscar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var naclCIF = filepath.Join("..", "..", "cif", "testdata", "NaCl.cif")

//The Madelung energy of the conventional NaCl cell with a = 5.64 A, in eV.
const naclEnergy = -35.69405760760833

func run(Te *testing.T, args ...string) (string, error) {
	Te.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseOxidationStates(Te *testing.T) {
	oxi, err := ParseOxidationStates("Li=1, O=-2,Fe=2.5,")
	require.NoError(Te, err)
	assert.Equal(Te, map[string]float64{"Li": 1, "O": -2, "Fe": 2.5}, oxi)
	for _, bad := range []string{"Li", "Xx=1", "O=two"} {
		_, err := ParseOxidationStates(bad)
		assert.Error(Te, err, bad)
	}
}

func TestConfig(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "ewald.yaml")
	require.NoError(Te, os.WriteFile(path, []byte("eta: 0.3\ncpus: 2\nformat: json\noxidation_states:\n  Na: 1\n  Cl: -1\n"), 0644))
	c, err := LoadConfig(path)
	require.NoError(Te, err)
	assert.Equal(Te, 0.3, c.Eta)
	assert.Equal(Te, -1.0, c.RealCut, "values missing from the file keep their defaults")
	assert.Equal(Te, 8.0, c.AccFactor)
	assert.Equal(Te, FJSON, c.Format)
	assert.Equal(Te, map[string]float64{"Na": 1, "Cl": -1}, c.OxidationStates)
	o := c.Options()
	assert.Equal(Te, 0.3, o.Eta())
	assert.Equal(Te, 2, o.Cpus())

	for _, bad := range []string{"format: xml\n", "acc_factor: -1\n", "cpus: -3\n", "oxidation_states:\n  Qq: 1\n", "unknown_key: 1\n"} {
		require.NoError(Te, os.WriteFile(path, []byte(bad), 0644))
		_, err := LoadConfig(path)
		assert.Error(Te, err, bad)
	}
}

func TestFileFormat(Te *testing.T) {
	for name, want := range map[string]string{"a.cif": formatCIF, "A.CIF.gz": formatCIF, "POSCAR": formatPOSCAR,
		"CONTCAR.zst": formatPOSCAR, "x/LiFePO4.vasp": formatPOSCAR, "POSCAR_relaxed": formatPOSCAR} {
		got, err := fileFormat(name)
		require.NoError(Te, err, name)
		assert.Equal(Te, want, got, name)
	}
	_, err := fileFormat("structure.xyz")
	assert.Error(Te, err)
}

func TestEnergy(Te *testing.T) {
	out, err := run(Te, "energy", "--oxi", "Na=1,Cl=-1", "--format", "json", naclCIF)
	require.NoError(Te, err)
	var reports []fileReport
	require.NoError(Te, json.Unmarshal([]byte(out), &reports))
	require.Len(Te, reports, 1)
	assert.Equal(Te, "Na4 Cl4", reports[0].Formula)
	assert.InEpsilon(Te, naclEnergy, reports[0].Total, 1e-7)
	assert.Len(Te, reports[0].Forces, 8)

	out, err = run(Te, "energy", "--oxi", "Na=1,Cl=-1", naclCIF)
	require.NoError(Te, err)
	assert.Contains(Te, out, "Total = -35.69")
	assert.Contains(Te, out, "Forces:")
}

//Flags win over the configuration file.
func TestConfigPrecedence(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "ewald.yaml")
	require.NoError(Te, os.WriteFile(path, []byte("format: json\neta: 0.2\noxidation_states:\n  Na: 1\n  Cl: -1\n"), 0644))
	out, err := run(Te, "energy", "--config", path, "--format", "yaml", "--eta", "0.25", naclCIF)
	require.NoError(Te, err)
	var reports []fileReport
	require.NoError(Te, yaml.Unmarshal([]byte(out), &reports))
	require.Len(Te, reports, 1)
	assert.Equal(Te, 0.25, reports[0].Eta)
	assert.InEpsilon(Te, naclEnergy, reports[0].Total, 1e-7)
}

func TestConverge(Te *testing.T) {
	dir := Te.TempDir()
	plot := filepath.Join(dir, "scan.png")
	out, err := run(Te, "converge", "--oxi", "Na=1,Cl=-1", "--steps", "0.8,1,1.2,1.4", "--plot", plot, naclCIF)
	require.NoError(Te, err)
	assert.Contains(Te, out, "Converged to 1e-06 eV: true")
	assert.Equal(Te, 4+2, len(strings.Split(strings.TrimSpace(out), "\n"))-1)
	info, err := os.Stat(plot)
	require.NoError(Te, err)
	assert.NotZero(Te, info.Size())

	out, err = run(Te, "converge", "--oxi", "Na=1,Cl=-1", "-f", "json", "--steps", "0.8,1", naclCIF)
	require.NoError(Te, err)
	var r scanReport
	require.NoError(Te, json.Unmarshal([]byte(out), &r))
	require.Len(Te, r.Steps, 2)
	assert.Nil(Te, r.Steps[0].Change)
	assert.NotNil(Te, r.Steps[1].Change)
}

func TestConvert(Te *testing.T) {
	dir := Te.TempDir()
	pos := filepath.Join(dir, "NaCl.vasp.gz")
	_, err := run(Te, "convert", naclCIF, pos)
	require.NoError(Te, err)
	P, err := poscar.ReadFile(pos)
	require.NoError(Te, err)
	assert.Equal(Te, "Na4 Cl4", P.Structure.Formula())

	back := filepath.Join(dir, "NaCl.cif")
	_, err = run(Te, "convert", "--oxi", "Na=1,Cl=-1", pos, back)
	require.NoError(Te, err)
	out, err := run(Te, "energy", "-f", "json", back)
	require.NoError(Te, err)
	var reports []fileReport
	require.NoError(Te, json.Unmarshal([]byte(out), &reports))
	assert.InEpsilon(Te, naclEnergy, reports[0].Total, 1e-7)
}

func TestErrors(Te *testing.T) {
	_, err := run(Te, "energy", "missing.cif")
	assert.Error(Te, err)
	_, err = run(Te, "energy", "--format", "xml", naclCIF)
	assert.Error(Te, err)
	_, err = run(Te, "energy", "--oxi", "Na", naclCIF)
	assert.Error(Te, err)
	_, err = run(Te, "convert", naclCIF, filepath.Join(Te.TempDir(), "out.xyz"))
	assert.Error(Te, err)
}

func TestRDF(Te *testing.T) {
	out, err := run(Te, "rdf", "--rmax", "4", "--width", "0.5", naclCIF)
	require.NoError(Te, err)
	assert.Contains(Te, out, "shortest distance 2.82")
	assert.Contains(Te, out, "density 2.1636 g/cm^3")
	assert.Len(Te, strings.Split(strings.TrimSpace(out), "\n"), 2+8)

	_, err = run(Te, "rdf", "--width", "0", naclCIF)
	assert.Error(Te, err)
}
