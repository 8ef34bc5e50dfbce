/*
 * cif.go, part of goCrystal.
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

package cif

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	crystal "github.com/rmera/gocrystal"
)

//Loop is a table in a CIF block. Each row has one value per tag.
type Loop struct {
	Tags []string
	Rows [][]string
}

//Column returns the values of the column with the given tag, or nil
//if the tag is not in the loop.
func (L *Loop) Column(tag string) []string {
	tag = strings.ToLower(tag)
	for j, t := range L.Tags {
		if t != tag {
			continue
		}
		ret := make([]string, len(L.Rows))
		for i, row := range L.Rows {
			ret[i] = row[j]
		}
		return ret
	}
	return nil
}

//Block is a CIF data block.
type Block struct {
	Name   string
	values map[string]string
	order  []string //tags of the scalar values, in the order they were read
	loops  []*Loop
	looped map[string]*Loop
}

func newBlock(name string) *Block {
	return &Block{Name: name, values: make(map[string]string), looped: make(map[string]*Loop)}
}

//Get returns the (not looped) value for the tag, and whether it was present.
//Tags are case-insensitive.
func (B *Block) Get(tag string) (string, bool) {
	v, ok := B.values[strings.ToLower(tag)]
	return v, ok
}

//Tags returns the tags of the values that are not in loops, in the order they
//appear in the file.
func (B *Block) Tags() []string {
	return append([]string(nil), B.order...)
}

//Loop returns the loop that contains the tag, or nil.
func (B *Block) Loop(tag string) *Loop {
	return B.looped[strings.ToLower(tag)]
}

//Loops returns all the loops in the block.
func (B *Block) Loops() []*Loop {
	return B.loops
}

//Column returns the values for tag in whatever loop contains it. A tag
//given as a single value gives a column of length 1. If the tag is not present,
//it returns nil.
func (B *Block) Column(tag string) []string {
	if l := B.Loop(tag); l != nil {
		return l.Column(tag)
	}
	if v, ok := B.Get(tag); ok {
		return []string{v}
	}
	return nil
}

//Float returns the value for the tag as a number, ignoring the standard uncertainty, if any.
func (B *Block) Float(tag string) (float64, error) {
	v, ok := B.Get(tag)
	if !ok {
		return 0, fmt.Errorf("Float: tag %s not found in block %s", tag, B.Name)
	}
	f, err := ParseNumber(v)
	if err != nil {
		return 0, fmt.Errorf("Float: tag %s in block %s: %w", tag, B.Name, err)
	}
	return f, nil
}

func (B *Block) set(tag, value string) {
	if _, ok := B.values[tag]; !ok {
		B.order = append(B.order, tag)
	}
	B.values[tag] = value
}

//File is a parsed CIF file.
type File struct {
	Blocks []*Block
}

//Block returns the data block with the given name (case-insensitive), or nil.
func (F *File) Block(name string) *Block {
	for _, b := range F.Blocks {
		if strings.EqualFold(b.Name, name) {
			return b
		}
	}
	return nil
}

//Parse reads a CIF file from r.
func Parse(r io.Reader) (*File, error) {
	tokens, err := lex(r)
	if err != nil {
		return nil, crystal.NewError("Can't tokenize CIF", "", "Parse", true, err)
	}
	F := new(File)
	var B *Block
	for i := 0; i < len(tokens); {
		t := tokens[i]
		switch t.kind {
		case tData:
			B = newBlock(t.value)
			F.Blocks = append(F.Blocks, B)
			i++
			continue
		case tGlobal, tSave:
			i++
			continue
		}
		if B == nil {
			return nil, crystal.NewError(fmt.Sprintf("content before the first data block in line %d", t.line), "", "Parse", true, nil)
		}
		switch t.kind {
		case tTag:
			if i+1 >= len(tokens) || tokens[i+1].kind != tValue {
				return nil, crystal.NewError(fmt.Sprintf("tag %s in line %d has no value", t.value, t.line), "", "Parse", true, nil)
			}
			B.set(t.value, tokens[i+1].value)
			i += 2
		case tLoop:
			var L *Loop
			L, i, err = parseLoop(tokens, i+1)
			if err != nil {
				return nil, crystal.NewError("Malformed loop", "", "Parse", true, err)
			}
			B.loops = append(B.loops, L)
			for _, tag := range L.Tags {
				B.looped[tag] = L
			}
		default:
			return nil, crystal.NewError(fmt.Sprintf("unexpected value %q in line %d", t.value, t.line), "", "Parse", true, nil)
		}
	}
	return F, nil
}

//parseLoop reads the tags and rows of a loop starting at tokens[i], right after
//the loop_ keyword. It returns the loop and the index of the first token after it.
func parseLoop(tokens []token, i int) (*Loop, int, error) {
	L := new(Loop)
	start := i
	for ; i < len(tokens) && tokens[i].kind == tTag; i++ {
		L.Tags = append(L.Tags, tokens[i].value)
	}
	if len(L.Tags) == 0 {
		line := 0
		if start < len(tokens) {
			line = tokens[start].line
		}
		return nil, i, fmt.Errorf("parseLoop: loop without tags near line %d", line)
	}
	var values []string
	for ; i < len(tokens) && tokens[i].kind == tValue; i++ {
		values = append(values, tokens[i].value)
	}
	if len(values)%len(L.Tags) != 0 {
		return nil, i, fmt.Errorf("parseLoop: loop starting with %s has %d values for %d tags", L.Tags[0], len(values), len(L.Tags))
	}
	for j := 0; j < len(values); j += len(L.Tags) {
		L.Rows = append(L.Rows, values[j:j+len(L.Tags)])
	}
	return L, i, nil
}

//ReadFile reads the CIF file with the given name, which can be compressed with
//gzip or zstd.
func ReadFile(name string) (*File, error) {
	f, err := crystal.OpenFile(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	F, err := Parse(f)
	if err != nil {
		if e, ok := err.(*crystal.Error); ok {
			e.Decorate("ReadFile " + name)
		}
		return nil, err
	}
	return F, nil
}

//ParseNumber reads a CIF number, which may carry its standard uncertainty
//in parentheses, as in 0.1234(5).
func ParseNumber(s string) (float64, error) {
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	if s == "?" || s == "." || s == "" {
		return 0, fmt.Errorf("ParseNumber: missing value %q", s)
	}
	return strconv.ParseFloat(s, 64)
}
