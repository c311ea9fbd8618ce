/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package errors provides a small HTTP-status-flavored error code system:
// a CodeError is a uint16 with a registered human message, wrapped into an
// Error that carries at most one parent cause.
package errors

import (
	"strconv"
)

// Message renders a human string for a CodeError.
type Message func(code CodeError) string

// CodeError is a numeric error code, analogous to an HTTP status code.
type CodeError uint16

const (
	// UnknownError is returned for any code with no registered message.
	UnknownError CodeError = 0

	UnknownMessage = "unknown error"
	NullMessage    = ""
)

var idMsgFct = make(map[CodeError]Message)

// RegisterIdFctMessage registers the message function for the range of
// codes starting at code (up to the next registered range). Called from
// each package's init() that defines its own CodeError constants.
func RegisterIdFctMessage(code CodeError, fct Message) {
	if idMsgFct == nil {
		idMsgFct = make(map[CodeError]Message)
	}
	idMsgFct[code] = fct
}

// ExistInMapMessage reports whether a message function is registered for code.
func ExistInMapMessage(code CodeError) bool {
	_, ok := idMsgFct[code]
	return ok
}

func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

func (c CodeError) Int() int {
	return int(c)
}

func (c CodeError) String() string {
	return strconv.Itoa(c.Int())
}

// Message returns the registered human string for c, or UnknownMessage.
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}

	var (
		base  CodeError
		found bool
	)
	for k := range idMsgFct {
		if k <= c && (!found || k > base) {
			base = k
			found = true
		}
	}

	if found {
		if m := idMsgFct[base](c); m != "" {
			return m
		}
	}

	return UnknownMessage
}

// Error builds an Error from this code, optionally wrapping one parent cause.
func (c CodeError) Error(parent error) Error {
	return newError(c, parent)
}

// ErrorParent is an alias of Error kept for call sites that read better with
// an explicit name when the parent is always present.
func (c CodeError) ErrorParent(parent error) Error {
	return newError(c, parent)
}
