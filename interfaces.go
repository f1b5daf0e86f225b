/*
 * interfaces.go, part of foldvis.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 */

package foldvis

import (
	"errors"
	"fmt"
)

// Atomer is the basic interface for a topology.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i
	//of the Atom slice in the Topology. Should panic if
	//out of range.
	Atom(i int) *Atom

	Len() int
}

// Residuer is implemented by anything that can be split into residues.
type Residuer interface {
	Atomer
	Residues() []*Residue
}

//Errors

// Sentinel errors. Errors returned by this library wrap one of these when the
// condition is one a caller may want to handle, so errors.Is can be used.
var (
	ErrLengthMismatch       = errors.New("length mismatch")
	ErrUnsupportedCoordMode = errors.New("unsupported coordinate mode")
	ErrFrameOutOfRange      = errors.New("frame out of range")
	ErrNoAtoms              = errors.New("no atoms")
)

// Error is the error type for this package. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
type Error struct {
	message  string
	deco     []string
	critical bool
	err      error //the sentinel or underlying error, if any.
}

// Error returns a string with an error message.
func (err *Error) Error() string {
	return err.message
}

// Unwrap returns the wrapped error, or nil.
func (err *Error) Unwrap() error {
	return err.err
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice. If dec is empty it only returns the slice.
func (err *Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical return whether the error is critical or it can be ignored
func (err *Error) Critical() bool { return err.critical }

// newError builds a critical *Error wrapping cause, with the message formatted from format and args.
func newError(cause error, caller, format string, args ...interface{}) *Error {
	msg := fmt.Sprintf(format, args...)
	if cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, cause.Error())
	}
	return &Error{message: msg, deco: []string{caller}, critical: true, err: cause}
}

// decorator is implemented by this library's error types.
type decorator interface {
	error
	Decorate(string) []string
}

// errDecorate adds the caller's name to the decoration of err, if err supports it,
// and returns err. nil errors are returned as nil.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var d decorator
	if errors.As(err, &d) {
		d.Decorate(caller)
	}
	return err
}
