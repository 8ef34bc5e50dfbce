/*
 * lexer.go, part of goCrystal.
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
	"bufio"
	"fmt"
	"io"
	"strings"
)

type tokenKind int

const (
	tData tokenKind = iota
	tLoop
	tTag
	tValue
	tSave //save frames are read as part of the block that contains them
	tGlobal
)

type token struct {
	kind  tokenKind
	value string
	line  int
}

//lex splits a CIF stream into tokens. Quoted values lose their quotes,
//and text fields (delimited by lines starting with ';') become one value.
func lex(r io.Reader) ([]token, error) {
	var tokens []token
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lnum := 0
	var text []string
	intext := false
	textstart := 0
	for s.Scan() {
		lnum++
		line := s.Text()
		if intext {
			if strings.HasPrefix(line, ";") {
				tokens = append(tokens, token{tValue, strings.Join(text, "\n"), textstart})
				intext = false
				text = nil
				line = line[1:]
			} else {
				text = append(text, line)
				continue
			}
		} else if strings.HasPrefix(line, ";") {
			intext = true
			textstart = lnum
			text = append(text, line[1:])
			continue
		}
		t, err := lexLine(line, lnum)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t...)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("lex: %w", err)
	}
	if intext {
		return nil, fmt.Errorf("lex: text field opened in line %d is never closed", textstart)
	}
	return tokens, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}

//lexLine tokenizes a line that is not part of a text field.
func lexLine(line string, lnum int) ([]token, error) {
	var ret []token
	i := 0
	for i < len(line) {
		if isSpace(line[i]) {
			i++
			continue
		}
		if line[i] == '#' {
			break
		}
		if q := line[i]; q == '\'' || q == '"' {
			//A quote only closes the value when followed by whitespace or the end of the line.
			j := i + 1
			for {
				if j >= len(line) {
					return nil, fmt.Errorf("lexLine: unterminated quote in line %d", lnum)
				}
				if line[j] == q && (j+1 == len(line) || isSpace(line[j+1])) {
					break
				}
				j++
			}
			ret = append(ret, token{tValue, line[i+1 : j], lnum})
			i = j + 1
			continue
		}
		j := i
		for j < len(line) && !isSpace(line[j]) {
			j++
		}
		word := line[i:j]
		i = j
		lw := strings.ToLower(word)
		switch {
		case strings.HasPrefix(lw, "data_"):
			ret = append(ret, token{tData, word[5:], lnum})
		case lw == "loop_":
			ret = append(ret, token{tLoop, "", lnum})
		case strings.HasPrefix(lw, "save_"):
			ret = append(ret, token{tSave, word[5:], lnum})
		case lw == "global_":
			ret = append(ret, token{tGlobal, "", lnum})
		case word[0] == '_':
			ret = append(ret, token{tTag, lw, lnum})
		default:
			ret = append(ret, token{tValue, word, lnum})
		}
	}
	return ret, nil
}
