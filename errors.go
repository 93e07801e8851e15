/*
 * errors.go, part of goXtal.
 *
 *
 * Copyright 2022 Raul Mera rauldotmeraatusachdotcl
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
 *
 */

package xtal

import "fmt"

//ErrKind classifies the errors produced by this library, so callers can
//react to the condition without parsing message strings.
type ErrKind int

const (
	ErrGeneral ErrKind = iota
	//ErrUnresolvedElement means an atom carries the "X" placeholder element
	//and no fallback element was configured.
	ErrUnresolvedElement
	//ErrMissingFormFactor means an element present in the model has no
	//tabulated scattering coefficients.
	ErrMissingFormFactor
	//ErrInvalidGridSize means the requested density grid dimensions cannot
	//be handled by the Fourier transform.
	ErrInvalidGridSize
	//ErrColumnNotFound means a requested label is absent from a reflection file.
	ErrColumnNotFound
	//ErrCacheOrderMismatch means a cache file lists reflections in a
	//different order than the current enumeration.
	ErrCacheOrderMismatch
	//ErrInsufficientData means a statistic was requested from a comparator
	//with no samples.
	ErrInsufficientData
	//ErrNotFound is a non-fatal "no reference value for this reflection".
	ErrNotFound
	//ErrParse means a reference file line could not be interpreted.
	ErrParse
)

//Error is the concrete error type used along the library. The Decorate method allows
//to add and retrieve info from the error, without changing its type or wrapping it
//around something else. Kind gives the machine-readable classification.
type Error struct {
	message  string
	kind     ErrKind
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice. If given an empty string it just returns the
//current decoration.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Kind returns the classification of the error.
func (err Error) Kind() ErrKind {
	return err.kind
}

//Critical returns whether the error is critical or it can be ignored.
func (err Error) Critical() bool { return err.critical }

//newError builds a critical Error of the given kind, fmt.Sprintf-style.
func newError(kind ErrKind, format string, args ...interface{}) Error {
	return Error{message: fmt.Sprintf(format, args...), kind: kind, critical: true}
}

//Kind returns the ErrKind of err, or ErrGeneral if err is not an Error
//from this library. A nil error has no kind, so we panic on it; asking for
//the kind of nil is always a bug in the caller.
func Kind(err error) ErrKind {
	if err == nil {
		panic("goXtal: Kind called with a nil error")
	}
	if e, ok := err.(Error); ok {
		return e.kind
	}
	return ErrGeneral
}

//errDecorate asserts that err is an Error and decorates it with the
//caller's name before returning it. Other error types are returned as they came.
func errDecorate(err error, caller string) error {
	e, ok := err.(Error)
	if !ok {
		return err
	}
	e.deco = e.Decorate(caller)
	return e
}
