/*
 * poscar.go, part of goCrystal.
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

//Package poscar reads and writes crystal structures in the POSCAR format of the
//VASP program.
package poscar

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	crystal "github.com/rmera/gocrystal"
	v3 "github.com/rmera/gocrystal/v3"
	"gonum.org/v1/gonum/mat"
)

//Poscar is the content of a POSCAR file.
type Poscar struct {
	Comment   string
	Structure *crystal.Structure
	//Selective contains, for each site, whether each coordinate is allowed to relax.
	//It is nil if the file doesn't use selective dynamics.
	Selective [][3]bool
}

//lineReader returns the non-empty lines of a file, one at the time, keeping track of the line number.
type lineReader struct {
	s    *bufio.Scanner
	line int
}

func (l *lineReader) next() (string, error) {
	for l.s.Scan() {
		l.line++
		t := strings.TrimSpace(l.s.Text())
		if t != "" {
			return t, nil
		}
	}
	if err := l.s.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}

func (l *lineReader) floats(n int) ([]float64, error) {
	line, err := l.next()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) < n {
		return nil, fmt.Errorf("line %d: expected %d numbers, found %d", l.line, n, len(fields))
	}
	ret := make([]float64, n)
	for i := range ret {
		ret[i], err = strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", l.line, err)
		}
	}
	return ret, nil
}

func perr(message string, err error) error {
	return crystal.NewError(message, "", "poscar.Read", true, err)
}

//Read reads a POSCAR file in the VASP 5 format, with the element symbols before the counts.
//In VASP 4 files, the symbols are taken from the comment line.
//A negative scale factor is the volume of the cell.
func Read(r io.Reader) (*Poscar, error) {
	l := &lineReader{s: bufio.NewScanner(r)}
	P := new(Poscar)
	var err error
	if l.s.Scan() {
		l.line++
		P.Comment = strings.TrimSpace(l.s.Text())
	} else {
		return nil, perr("Empty file", l.s.Err())
	}
	sc, err := l.floats(1)
	if err != nil {
		return nil, perr("Can't read scale factor", err)
	}
	scale := sc[0]
	vecs := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		v, err := l.floats(3)
		if err != nil {
			return nil, perr("Can't read lattice vectors", err)
		}
		vecs = append(vecs, v...)
	}
	m := mat.NewDense(3, 3, vecs)
	if scale < 0 {
		vol := math.Abs(mat.Det(m))
		if vol < crystal.ZeroTol {
			return nil, perr("Can't scale lattice", crystal.ErrDegenerateLattice)
		}
		scale = math.Cbrt(-scale / vol)
	}
	m.Scale(scale, m)
	L, err := crystal.NewLattice(m)
	if err != nil {
		return nil, perr("Wrong lattice", err)
	}
	line, err := l.next()
	if err != nil {
		return nil, perr("Can't read species", err)
	}
	fields := strings.Fields(line)
	var symbols []string
	if _, err := strconv.Atoi(fields[0]); err != nil {
		symbols = fields
		line, err = l.next()
		if err != nil {
			return nil, perr("Can't read species counts", err)
		}
		fields = strings.Fields(line)
	}
	counts := make([]int, 0, len(fields))
	for _, f := range fields {
		c, err := strconv.Atoi(f)
		if err != nil {
			break
		}
		counts = append(counts, c)
	}
	if symbols == nil {
		symbols = strings.Fields(P.Comment)
		if len(symbols) < len(counts) {
			return nil, perr(fmt.Sprintf("VASP 4 file with %d species but only %d symbols in the comment", len(counts), len(symbols)), nil)
		}
		symbols = symbols[:len(counts)]
	}
	if len(symbols) != len(counts) {
		return nil, perr(fmt.Sprintf("%d species symbols for %d counts", len(symbols), len(counts)), nil)
	}
	species := make([]crystal.Species, 0)
	for i, s := range symbols {
		//POTCAR names (Fe_pv, Li_sv/1234) and amounts (Fe4, in VASP 4 comments) are dropped.
		sp, err := crystal.ParseSpecies(s)
		if err != nil {
			return nil, perr("Unknown species", err)
		}
		for j := 0; j < counts[i]; j++ {
			species = append(species, crystal.NewElement(sp.Symbol))
		}
	}
	line, err = l.next()
	if err != nil {
		return nil, perr("Can't read coordinate type", err)
	}
	selective := false
	if c := line[0]; c == 'S' || c == 's' {
		selective = true
		line, err = l.next()
		if err != nil {
			return nil, perr("Can't read coordinate type", err)
		}
	}
	cartesian := false
	if c := line[0]; c == 'C' || c == 'c' || c == 'K' || c == 'k' {
		cartesian = true
	}
	coords := make([][3]float64, len(species))
	if selective {
		P.Selective = make([][3]bool, len(species))
	}
	for i := range coords {
		line, err := l.next()
		if err != nil {
			return nil, perr(fmt.Sprintf("Can't read coordinates of site %d", i), err)
		}
		fields := strings.Fields(line)
		if len(fields) < 3 || (selective && len(fields) < 6) {
			return nil, perr(fmt.Sprintf("Line %d is ill formed", l.line), nil)
		}
		for k := 0; k < 3; k++ {
			coords[i][k], err = strconv.ParseFloat(fields[k], 64)
			if err != nil {
				return nil, perr(fmt.Sprintf("Can't read coordinates in line %d", l.line), err)
			}
			if cartesian {
				coords[i][k] *= scale
			}
			if selective {
				P.Selective[i][k] = strings.HasPrefix(strings.ToUpper(fields[3+k]), "T")
			}
		}
	}
	P.Structure, err = crystal.NewOrderedStructure(L, species, coords, cartesian)
	if err != nil {
		return nil, perr("Can't build structure", err)
	}
	return P, nil
}

//ReadFile reads the POSCAR file with the given name, which may be compressed.
func ReadFile(name string) (*Poscar, error) {
	f, err := crystal.OpenFile(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	P, err := Read(f)
	if err != nil {
		if e, ok := err.(*crystal.Error); ok {
			e.Decorate("ReadFile " + name)
		}
		return nil, err
	}
	return P, nil
}

//Write writes s in the VASP 5 POSCAR format, with fractional coordinates. Sites are grouped
//by element, in order of first appearance. Disordered structures can't be written.
func Write(w io.Writer, s *crystal.Structure, comment string) error {
	if s.Len() == 0 {
		return fmt.Errorf("Write: structure without sites")
	}
	if !s.IsOrdered() {
		return fmt.Errorf("Write: %w", crystal.ErrDisordered)
	}
	var symbols []string
	groups := make(map[string][]int)
	for i := 0; i < s.Len(); i++ {
		sym := s.Site(i).Species[0].Symbol
		if _, ok := groups[sym]; !ok {
			symbols = append(symbols, sym)
		}
		groups[sym] = append(groups[sym], i)
	}
	if comment == "" {
		comment = s.Formula()
	}
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "%s\n1.0\n", strings.ReplaceAll(comment, "\n", " "))
	for i := 0; i < 3; i++ {
		v := s.Lattice().Vector(i)
		fmt.Fprintf(b, " %22.16f %22.16f %22.16f\n", v[0], v[1], v[2])
	}
	counts := make([]string, len(symbols))
	for i, sym := range symbols {
		counts[i] = strconv.Itoa(len(groups[sym]))
	}
	fmt.Fprintf(b, "%s\n%s\ndirect\n", strings.Join(symbols, " "), strings.Join(counts, " "))
	order := make([]int, 0, s.Len())
	labels := make([]string, 0, s.Len())
	for _, sym := range symbols {
		order = append(order, groups[sym]...)
		for range groups[sym] {
			labels = append(labels, sym)
		}
	}
	frac := v3.Zeros(len(order))
	frac.SomeVecs(s.FracCoords(), order)
	for i, sym := range labels {
		f := frac.Vec(i)
		fmt.Fprintf(b, " %20.16f %20.16f %20.16f %s\n", f[0], f[1], f[2], sym)
	}
	if err := b.Flush(); err != nil {
		return fmt.Errorf("Write: %w", err)
	}
	return nil
}

//WriteFile writes s to a POSCAR file with the given name, compressed if the name
//ends in .gz or .zst.
func WriteFile(name string, s *crystal.Structure, comment string) error {
	f, err := crystal.CreateFile(name)
	if err != nil {
		return err
	}
	if err := Write(f, s, comment); err != nil {
		f.Close()
		return fmt.Errorf("WriteFile: %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("WriteFile: %s: %w", name, err)
	}
	return nil
}
