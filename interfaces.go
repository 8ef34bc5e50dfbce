/*
 * interfaces.go, part of goCrystal.
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

package crystal

import (
	"errors"
	"strings"
)

//Siter is the basic interface for something made of sites,
//like a Structure.
type Siter interface {

	//Site returns the Site corresponding to the index i.
	//Should panic if out of range.
	Site(i int) *Site

	Len() int
}

//Errors

var (
	ErrDegenerateLattice = errors.New("goCrystal: degenerate lattice (zero or negative volume)")
	ErrTooManyImages     = errors.New("goCrystal: too many lattice images within the requested radius")
	ErrDisordered        = errors.New("goCrystal: operation not supported for disordered structures")
)

//Error is the error type for parsers and other fallible operations in goCrystal.
//The Decorate method allows to add and retrieve info from the
//error, without changing it's type or wrapping it around something else.
type Error struct {
	message  string
	filename string //the file involved, if any
	deco     []string
	critical bool
	err      error
}

//NewError returns an Error with the given message, file name and calling function.
//err can be nil.
func NewError(message, filename, function string, critical bool, err error) *Error {
	return &Error{message: message, filename: filename, deco: []string{function}, critical: critical, err: err}
}

//Error returns a string with an error message.
func (err *Error) Error() string {
	msg := err.message
	if err.filename != "" {
		msg = msg + " (file: " + err.filename + ")"
	}
	if len(err.deco) > 0 {
		msg = strings.Join(err.deco, ": ") + ": " + msg
	}
	if err.err != nil {
		msg = msg + ": " + err.err.Error()
	}
	return msg
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice. An empty dec just returns the current slice.
func (err *Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append([]string{dec}, err.deco...)
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored
func (err *Error) Critical() bool { return err.critical }

//FileName returns the name of the file involved in the error, if any.
func (err *Error) FileName() string { return err.filename }

func (err *Error) Unwrap() error { return err.err }
