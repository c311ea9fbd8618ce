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

package errors

import "fmt"

// Error is a CodeError wrapped with an optional parent cause.
type Error interface {
	error

	// Code returns the CodeError this Error was built from.
	Code() CodeError
	// Is reports whether this Error (or its parent chain) carries code.
	Is(code CodeError) bool
	// Unwrap exposes the parent cause for errors.Is/errors.As.
	Unwrap() error
}

type codeErr struct {
	code   CodeError
	parent error
}

func newError(code CodeError, parent error) Error {
	return &codeErr{code: code, parent: parent}
}

func (e *codeErr) Code() CodeError {
	return e.code
}

func (e *codeErr) Error() string {
	if e.parent != nil {
		return fmt.Sprintf("[%d] %s: %s", e.code.Uint16(), e.code.Message(), e.parent.Error())
	}
	return fmt.Sprintf("[%d] %s", e.code.Uint16(), e.code.Message())
}

func (e *codeErr) Unwrap() error {
	return e.parent
}

func (e *codeErr) Is(code CodeError) bool {
	if e.code == code {
		return true
	}

	var ce Error
	if p, ok := e.parent.(Error); ok {
		ce = p
	} else {
		return false
	}

	return ce.Is(code)
}
