/*
 * errors.go, part of foldvis.
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

package spatial

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rmera/foldvis"
)

var (
	ErrPosOutOfRange    = errors.New("position out of range")
	ErrZeroTotal        = errors.New("features sum to zero")
	ErrNegativeVariance = errors.New("negative variance")
	ErrZeroVariance     = errors.New("zero variance")
	ErrTooFewPoints     = errors.New("too few points")
	ErrUnknownStatistic = errors.New("unsupported statistic name")
	ErrNoActive         = errors.New("no active residue")
	//ErrLengthMismatch is the same error as foldvis.ErrLengthMismatch
	ErrLengthMismatch = foldvis.ErrLengthMismatch
)

// Error is the error type for the spatial package.
type Error struct {
	message string
	deco    []string
	Pos     int //the position being processed when the error happened, or -1
	err     error
}

func newError(cause error, pos int, caller, format string, args ...interface{}) *Error {
	msg := fmt.Sprintf(format, args...)
	if cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, cause.Error())
	}
	return &Error{message: msg, deco: []string{caller}, Pos: pos, err: cause}
}

// Error returns a string with an error message.
func (err *Error) Error() string {
	if err.Pos >= 0 {
		return fmt.Sprintf("position %d: %s", err.Pos, err.message)
	}
	return err.message
}

// Unwrap returns the wrapped error, if any.
func (err *Error) Unwrap() error { return err.err }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical always returns true.
func (err *Error) Critical() bool { return true }

func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

// PositionErrors collects the errors of the positions that failed while
// computing a profile with Options.SkipErrors set.
type PositionErrors struct {
	Positions []int
	Errs      []error
}

func (P *PositionErrors) Error() string {
	s := make([]string, 0, 3)
	for i, e := range P.Errs {
		if i == 3 {
			s = append(s, "...")
			break
		}
		s = append(s, e.Error())
	}
	return fmt.Sprintf("%d positions failed: %s", len(P.Positions), strings.Join(s, "; "))
}

// Unwrap returns all the errors collected.
func (P *PositionErrors) Unwrap() []error {
	return P.Errs
}
