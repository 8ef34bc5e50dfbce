/*
 * config.go, part of goCrystal.
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
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	crystal "github.com/rmera/gocrystal"
	"github.com/rmera/gocrystal/ewald"
	"gopkg.in/yaml.v3"
)

//Output formats.
const (
	FText = "text"
	FJSON = "json"
	FYAML = "yaml"
)

//Config contains the parameters that can be given in a YAML configuration file.
//Flags given in the command line take precedence over the file.
type Config struct {
	//Eta is the screening parameter. Non-positive values mean it is determined automatically.
	Eta float64 `yaml:"eta"`

	//RealCut and RecipCut are the cutoffs for the real and reciprocal space sums.
	//Non-positive values mean they are determined automatically.
	RealCut  float64 `yaml:"real_cut"`
	RecipCut float64 `yaml:"recip_cut"`

	//AccFactor is the number of significant figures to which the sums are converged.
	AccFactor float64 `yaml:"acc_factor"`

	//Cpus is the number of gorutines used in each sum. 0 means one per logical CPU.
	Cpus int `yaml:"cpus"`

	//OxidationStates are assigned to every species of each element in the map.
	OxidationStates map[string]float64 `yaml:"oxidation_states"`

	//Format is the output format: text, json or yaml.
	Format string `yaml:"format"`
}

//DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{Eta: -1, RealCut: -1, RecipCut: -1, AccFactor: 8, Format: FText}
}

//LoadConfig reads and checks the YAML configuration file in path. Values missing from the file
//keep their defaults.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c := DefaultConfig()
	dec := yaml.NewDecoder(bufio.NewReader(f))
	dec.KnownFields(true)
	if err = dec.Decode(c); err != nil {
		return nil, fmt.Errorf("LoadConfig: %s: %w", path, err)
	}
	if err = c.Check(); err != nil {
		return nil, fmt.Errorf("LoadConfig: %s: %w", path, err)
	}
	return c, nil
}

//Check returns an error if a field of the configuration has an invalid value.
func (c *Config) Check() error {
	if c.AccFactor <= 0 {
		return fmt.Errorf("acc_factor must be positive")
	}
	if c.Cpus < 0 {
		return fmt.Errorf("cpus can't be negative")
	}
	switch c.Format {
	case FText, FJSON, FYAML:
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	for k := range c.OxidationStates {
		if !crystal.IsElement(k) {
			return fmt.Errorf("unknown element %q in oxidation_states", k)
		}
	}
	return nil
}

//Options returns the Ewald summation options for the configuration.
func (c *Config) Options() *ewald.Options {
	o := ewald.DefaultOptions()
	o.Eta(c.Eta)
	o.RealCut(c.RealCut)
	o.RecipCut(c.RecipCut)
	o.AccFactor(c.AccFactor)
	o.Cpus(c.Cpus)
	return o
}

//ParseOxidationStates reads oxidation states given as "Li=1,O=-2".
func ParseOxidationStates(s string) (map[string]float64, error) {
	ret := make(map[string]float64)
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		el, val, ok := strings.Cut(f, "=")
		el = strings.TrimSpace(el)
		if !ok || !crystal.IsElement(el) {
			return nil, fmt.Errorf("ParseOxidationStates: can't read %q, expected Element=state", f)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("ParseOxidationStates: %q: %w", f, err)
		}
		ret[el] = v
	}
	return ret, nil
}
